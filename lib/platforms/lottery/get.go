package lottery

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"receiptlottery/internal/components/assert"

	"github.com/PuerkitoBio/goquery"
)

// GetTicket reads a receipt through an authenticated session. The current
// month's table is looked up first, then the special one.
//
// The day of the scraped date is combined with the current month and year,
// the detail page does not carry the rest of the original date.
func (c *Client) GetTicket(ctx context.Context, session *Session, id string) (TicketResult, error) {
	assert.NotNil(session)
	if id == "" {
		return TicketResult{}, ticketNotFound(id)
	}

	challenge, err := c.Bootstrap(ctx, session)
	if err != nil {
		return TicketResult{}, err
	}

	conf, err := c.config.Request(RequestGetTicket)
	if err != nil {
		return TicketResult{}, serviceUnavailable("Unable to prepare data", err)
	}

	now := c.time.Now().In(c.time.Location())
	body, period, err := withPeriodFallback(id, MonthPeriod(now), func(period Period) ([]byte, bool, error) {
		req, err := c.newRequest(
			RequestGetTicket,
			http.MethodGet,
			fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(conf.Url, "/"), url.PathEscape(id), period),
			map[string]string{tokenHeader: challenge.Token},
		)
		if err != nil {
			return nil, false, err
		}
		req = req.withUnauthorized(serviceUnavailable("Unable to get data from service", nil))

		res, err := session.do(ctx, req)
		if err != nil {
			return nil, false, err
		}
		if bytes.Contains(res.body, []byte(sentinelApplicationFail)) {
			c.tel.ReportDebug("ticket not in period", id, period.String())
			return nil, false, nil
		}
		return res.body, true, nil
	})
	if err != nil {
		if !errors.Is(err, ErrTicketNotFound) {
			c.tel.ReportBroken(report_get_ticket, err, id)
		}
		return TicketResult{}, err
	}

	result, err := c.scrapeTicket(body, now)
	if err != nil {
		c.tel.ReportBroken(report_get_ticket, err, id, period.String())
		return TicketResult{}, err
	}
	result.Id = id
	result.Special = period.Special()
	return result, nil
}

func inputValue(doc *goquery.Document, selector string) string {
	return strings.TrimSpace(doc.Find(selector).AttrOr("value", ""))
}

// scrapeTicket reads the detail page of a receipt.
func (c *Client) scrapeTicket(body []byte, now time.Time) (TicketResult, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return TicketResult{}, serviceUnavailable("Unable to get data from service", err)
	}
	m := c.markup

	// older pages split the point of sale into one input per character
	pointOfSale := inputValue(doc, m.DetailPointOfSale)
	if len(pointOfSale) < 2 {
		var joined strings.Builder
		for i := 1; i <= m.DetailPointOfSaleLen; i++ {
			joined.WriteString(inputValue(doc, fmt.Sprintf(m.DetailPointOfSaleCell, i)))
		}
		pointOfSale = joined.String()
	}

	var tax strings.Builder
	for i := 1; i <= m.DetailTaxLen; i++ {
		tax.WriteString(inputValue(doc, fmt.Sprintf(m.DetailTaxCell, i)))
	}

	dayText := inputValue(doc, m.DetailDay)
	day, err := strconv.Atoi(dayText)
	if err != nil {
		return TicketResult{}, serviceUnavailable(
			"Unable to get data from service",
			fmt.Errorf("parse day %q: %w", dayText, err),
		)
	}

	whole := inputValue(doc, m.DetailAmountWhole)
	fraction := inputValue(doc, m.DetailAmountFraction)
	if fraction == "" {
		fraction = "00"
	}

	return TicketResult{
		Code:                  strings.TrimSpace(doc.Find(m.DetailCode).Text()),
		PointOfSale:           pointOfSale,
		PurchaseOrderNumber:   inputValue(doc, m.DetailPurchaseOrder),
		TaxRegistrationNumber: tax.String(),
		Date:                  time.Date(now.Year(), now.Month(), day, 0, 0, 0, 0, now.Location()),
		Amount: Amount{
			Value:    whole + "." + fraction,
			Currency: CurrencyPLN,
		},
		Trade: TradeFromId(strings.TrimSpace(doc.Find(m.DetailTrade).AttrOr("value", ""))),
	}, nil
}
