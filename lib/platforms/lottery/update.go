package lottery

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"receiptlottery/internal/components/assert"
)

// UpdateTicket changes an existing receipt through an authenticated session.
// The table of the month of `details.Date` is tried first, then the special
// one. The result echoes `details`, the portal does not answer with a code.
func (c *Client) UpdateTicket(ctx context.Context, session *Session, id string, details TicketDetails) (TicketResult, error) {
	assert.NotNil(session)
	if id == "" {
		return TicketResult{}, ticketNotFound(id)
	}

	challenge, err := c.Bootstrap(ctx, session)
	if err != nil {
		return TicketResult{}, err
	}

	conf, err := c.config.Request(RequestUpdateTicket)
	if err != nil {
		return TicketResult{}, serviceUnavailable("Unable to prepare data", err)
	}

	loc := c.time.Location()
	form := buildUpdateForm(details, loc)
	primary := MonthPeriod(details.Date.In(loc))

	env, period, err := withPeriodFallback(id, primary, func(period Period) (envelope, bool, error) {
		req, err := c.newRequest(
			RequestUpdateTicket,
			http.MethodPost,
			fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(conf.Url, "/"), url.PathEscape(id), period),
			c.submissionHeaders(challenge),
		)
		if err != nil {
			return envelope{}, false, err
		}
		req = req.
			withForm(form).
			withRedirectFollow().
			withUnauthorized(serviceUnavailable("Unable to get data from service", nil)).
			withFailure("Unable to update receipt")

		res, err := session.do(ctx, req)
		if err != nil {
			return envelope{}, false, err
		}
		env, err := parseEnvelope(res.body)
		if err != nil {
			return envelope{}, false, err
		}
		if env.notFound() {
			c.tel.ReportDebug("ticket not in period", id, period.String())
			return envelope{}, false, nil
		}
		return env, true, nil
	})
	if err != nil {
		if !errors.Is(err, ErrTicketNotFound) {
			c.tel.ReportBroken(report_update_ticket, err, id)
		}
		return TicketResult{}, err
	}

	err = interpretUpdated(env, id)
	if err != nil {
		c.tel.ReportWarning(report_update_ticket, err, id, period.String())
		return TicketResult{}, err
	}

	return TicketResult{
		Id:                    id,
		PointOfSale:           details.PointOfSale,
		PurchaseOrderNumber:   details.PurchaseOrderNumber,
		TaxRegistrationNumber: details.TaxRegistrationNumber,
		Phone:                 details.Phone,
		Date:                  details.Date,
		Amount:                details.Amount,
		Trade:                 details.Trade,
		Special:               period.Special(),
	}, nil
}

func interpretUpdated(env envelope, id string) error {
	if !env.hasSuccess {
		return env.fieldError()
	}
	if env.success {
		return nil
	}

	switch {
	case strings.Contains(env.message, sentinelTradeLocked):
		return &Error{
			Kind:    ErrServiceUnavailable,
			Message: "Unable to update ticket (trade parameter)",
			Detail:  "Zmiana parametru \"branża\" jest w tym momencie nie możliwa",
		}
	case strings.Contains(env.message, sentinelNoQueryResults):
		return ticketNotFound(id)
	case strings.Contains(env.message, sentinelNotEditable):
		return &Error{
			Kind:    ErrServiceUnavailable,
			Message: "Unable to update ticket",
			Detail:  "Nie możesz edytować danych wybranego paragonu",
		}
	}
	return unknownValidate("Unable to validate parameters", env.message)
}
