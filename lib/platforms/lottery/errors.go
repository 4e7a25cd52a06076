package lottery

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds, match them with errors.Is.
var (
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrUnauthorizedUser   = errors.New("unauthorized user")
	ErrTicketNotFound     = errors.New("ticket not found")
	ErrAlreadyExists      = errors.New("ticket already exists")
	ErrInvalidField       = errors.New("invalid field")
	ErrUnknownValidate    = errors.New("unknown validation error")
)

// Field is the business name of a ticket field the portal can reject.
type Field string

const (
	FieldPointOfSale           Field = "pointOfSale"
	FieldEmail                 Field = "email"
	FieldPhone                 Field = "phone"
	FieldPurchaseOrderNumber   Field = "purchaseOrderNumber"
	FieldDate                  Field = "date"
	FieldAmount                Field = "amount.value"
	FieldTrade                 Field = "trade"
	FieldTaxRegistrationNumber Field = "taxRegistrationNumber"
)

// Error is the single error type returned by every flow.
type Error struct {
	// Kind is one of the Err* sentinels.
	Kind    error
	Message string
	// Detail is the raw message of the portal, if there was one.
	Detail string
	// Field is only set when Kind is ErrInvalidField.
	Field Field
	Err   error
}

func (e *Error) Error() string {
	var out strings.Builder
	out.WriteString("lottery: ")
	out.WriteString(e.Kind.Error())
	if e.Field != "" {
		fmt.Fprintf(&out, " (%s)", e.Field)
	}
	if e.Message != "" {
		out.WriteString(": ")
		out.WriteString(e.Message)
	}
	if e.Detail != "" {
		fmt.Fprintf(&out, " [%s]", e.Detail)
	}
	if e.Err != nil {
		out.WriteString(": ")
		out.WriteString(e.Err.Error())
	}
	return out.String()
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

func serviceUnavailable(message string, cause error) *Error {
	return &Error{Kind: ErrServiceUnavailable, Message: message, Err: cause}
}

func unauthorizedUser(message string) *Error {
	return &Error{Kind: ErrUnauthorizedUser, Message: message}
}

func ticketNotFound(id string) *Error {
	return &Error{Kind: ErrTicketNotFound, Message: fmt.Sprintf("ticket %q not found", id)}
}

func alreadyExists(detail string) *Error {
	return &Error{Kind: ErrAlreadyExists, Message: "Ticket already exists", Detail: detail}
}

func invalidField(field Field, detail string) *Error {
	return &Error{
		Kind:    ErrInvalidField,
		Message: fmt.Sprintf("Invalid %s value", strings.TrimSuffix(string(field), ".value")),
		Detail:  detail,
		Field:   field,
	}
}

func unknownValidate(message, detail string) *Error {
	return &Error{Kind: ErrUnknownValidate, Message: message, Detail: detail}
}
