package lottery

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	sentinelDuplicate       = "paragon fiskalny został już zgłoszony."
	sentinelNoQueryResults  = "No query results for model"
	sentinelTradeLocked     = "loteria.receipts.special.2"
	sentinelNotEditable     = "Trying to get property of non-object"
	sentinelApplicationFail = "Whoops, looks like something went wrong."
)

// envelope is the JSON answer of every submission endpoint, either
// {success, message} or a map of form field name to validation messages.
type envelope struct {
	hasSuccess bool
	success    bool
	message    string
	fields     map[string][]string
}

func parseEnvelope(body []byte) (envelope, error) {
	var raw map[string]json.RawMessage
	err := json.Unmarshal(body, &raw)
	if err != nil {
		return envelope{}, serviceUnavailable(
			"Unable to get data from service",
			fmt.Errorf("unmarshal submission response: %w", err),
		)
	}

	env := envelope{fields: map[string][]string{}}
	for key, value := range raw {
		switch key {
		case "success":
			env.hasSuccess = true
			var success any
			_ = json.Unmarshal(value, &success)
			env.success = success == true
		case "message":
			var message string
			err := json.Unmarshal(value, &message)
			if err != nil {
				message = string(value)
			}
			env.message = message
		default:
			var messages []string
			err := json.Unmarshal(value, &messages)
			if err != nil {
				var message string
				if json.Unmarshal(value, &message) != nil {
					continue
				}
				messages = []string{message}
			}
			env.fields[key] = messages
		}
	}
	return env, nil
}

// notFound reports the update endpoint's answer for an id that does not
// exist in the requested period.
func (e envelope) notFound() bool {
	return e.hasSuccess && !e.success && strings.Contains(e.message, sentinelNoQueryResults)
}

// fieldPriority is the order validation errors are reported in, only the
// first field present surfaces.
var fieldPriority = []struct {
	formName string
	field    Field
}{
	{formName: "nr_kasy", field: FieldPointOfSale},
	{formName: "email", field: FieldEmail},
	{formName: "nr_tel", field: FieldPhone},
	{formName: "nr_wydruku", field: FieldPurchaseOrderNumber},
	{formName: "miesiac", field: FieldDate},
	{formName: "kwota_zl", field: FieldAmount},
	{formName: "branza", field: FieldTrade},
	{formName: "nip", field: FieldTaxRegistrationNumber},
}

// fieldError maps the validation messages of the envelope to the error of
// its highest priority field.
func (e envelope) fieldError() error {
	for _, entry := range fieldPriority {
		messages, ok := e.fields[entry.formName]
		if !ok {
			continue
		}
		detail := strings.Join(messages, ",")
		if entry.field == FieldTaxRegistrationNumber {
			// the first nip message is a generic one when there are several
			switch {
			case len(messages) > 1:
				detail = messages[1]
			case len(messages) == 1:
				detail = messages[0]
			}
		}
		return invalidField(entry.field, detail)
	}
	return unknownValidate("Unknown validate exception", "")
}

// parseCreated reads the receipt code and id out of the success message of
// the creation endpoint. The last matching link wins.
func parseCreated(message string, markup Markup) (TicketResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(message))
	if err != nil {
		return TicketResult{}, serviceUnavailable("Unable to create receipt", err)
	}

	code := strings.TrimSpace(doc.Find(markup.ReceiptNumber).Text())
	id := ""
	doc.Find(markup.ReceiptLinks).Each(func(_ int, link *goquery.Selection) {
		href, ok := link.Attr("href")
		if !ok {
			return
		}
		groups := receiptIdPattern.FindStringSubmatch(href)
		if len(groups) == 3 {
			id = groups[2]
		}
	})

	return TicketResult{Id: id, Code: code}, nil
}
