package lottery

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"receiptlottery/internal/components/assert"
	"receiptlottery/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// pageFetcher returns the markup of the 1-based page `page` of a listing.
type pageFetcher func(ctx context.Context, page int) ([]byte, error)

// rowParser reads the rows of a single listing page.
type rowParser[T any] func(doc *goquery.Document) []T

// listAll pages through a listing from page 1 until a page without rows,
// the rows keep the order they were listed in.
func listAll[T any](ctx context.Context, fetch pageFetcher, parse rowParser[T]) ([]T, error) {
	out := []T{}
	for page := 1; ; page++ {
		body, err := fetch(ctx, page)
		if err != nil {
			return nil, err
		}
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
		if err != nil {
			return nil, serviceUnavailable("Unable to get data from service", err)
		}
		rows := parse(doc)
		if len(rows) == 0 {
			return out, nil
		}
		out = append(out, rows...)
	}
}

// collectPeriods lists every period in order and combines the results with
// the last period's rows first.
func collectPeriods[T any](
	ctx context.Context,
	periods []Period,
	list func(ctx context.Context, period Period) ([]T, error),
) ([]T, error) {
	collections := make([][]T, len(periods))
	for i, period := range periods {
		rows, err := list(ctx, period)
		if err != nil {
			return nil, err
		}
		collections[i] = rows
	}

	out := []T{}
	for i := len(collections) - 1; i >= 0; i-- {
		out = append(out, collections[i]...)
	}
	return out, nil
}

func (c *Client) listingFetcher(session *Session, name string, query func(page int) string) pageFetcher {
	return func(ctx context.Context, page int) ([]byte, error) {
		conf, err := c.config.Request(name)
		if err != nil {
			return nil, serviceUnavailable("Unable to prepare data", err)
		}
		req, err := c.newRequest(
			name,
			http.MethodGet,
			fmt.Sprintf("%s?%s", conf.Url, query(page)),
			nil,
		)
		if err != nil {
			return nil, err
		}
		req = req.withUnauthorized(unauthorizedUser("Unauthorized access"))

		res, err := session.do(ctx, req)
		if err != nil {
			return nil, err
		}
		return res.body, nil
	}
}

func (c *Client) historyPeriods() ([]Period, error) {
	periods := make([]Period, len(c.config.Periods))
	for i, token := range c.config.Periods {
		period, err := ParsePeriod(token)
		if err != nil {
			return nil, err
		}
		periods[i] = period
	}
	return periods, nil
}

// GetTickets lists the receipt history of an authenticated session, the
// most recent period comes first.
func (c *Client) GetTickets(ctx context.Context, session *Session) ([]HistoryRow, error) {
	assert.NotNil(session)

	periods, err := c.historyPeriods()
	if err != nil {
		return nil, serviceUnavailable("Unable to prepare data", err)
	}

	rows, err := collectPeriods(ctx, periods, func(ctx context.Context, period Period) ([]HistoryRow, error) {
		fetch := c.listingFetcher(session, RequestAccount, func(page int) string {
			return fmt.Sprintf("type=%s&page=%d", url.QueryEscape(period.String()), page)
		})
		return listAll(ctx, fetch, c.historyParser(period))
	})
	if err != nil {
		c.tel.ReportBroken(report_list_tickets, err)
		return nil, err
	}

	c.tel.ReportCount(report_list_tickets, int64(len(rows)))
	return rows, nil
}

// GetResults lists every published draw result with an anonymous session.
func (c *Client) GetResults(ctx context.Context) ([]ResultRow, error) {
	session, err := c.NewSession()
	if err != nil {
		return nil, serviceUnavailable("Unable to get data from service", err)
	}

	fetch := c.listingFetcher(session, RequestResults, func(page int) string {
		return fmt.Sprintf("page=%d", page)
	})
	rows, err := listAll(ctx, fetch, c.parseResults)
	if err != nil {
		c.tel.ReportBroken(report_list_results, err)
		return nil, err
	}

	c.tel.ReportCount(report_list_results, int64(len(rows)))
	return rows, nil
}

var historyDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02.01.2006",
}

func (c *Client) parseHistoryDate(text string) (time.Time, error) {
	loc := c.time.Location()
	for _, layout := range historyDateLayouts {
		t, err := time.ParseInLocation(layout, text, loc)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
		}
	}
	return time.Time{}, fmt.Errorf("unknown date format %q", text)
}

func (c *Client) historyParser(period Period) rowParser[HistoryRow] {
	return func(doc *goquery.Document) []HistoryRow {
		rows := []HistoryRow{}
		doc.Find(c.markup.HistoryRows).Each(func(_ int, tr *goquery.Selection) {
			cells := tr.Find("td")
			if cells.Length() == 0 {
				return
			}

			row := HistoryRow{Special: period.Special()}
			cells.Each(func(i int, td *goquery.Selection) {
				text := htmlutil.CleanText(td.Text())
				switch i {
				case 0:
					date, err := c.parseHistoryDate(text)
					if err != nil {
						c.tel.ReportWarning(report_list_tickets, err, period.String())
						return
					}
					row.Date = date
				case 1:
					row.AmountValue = text
				case 2:
					row.PurchaseOrderNumber = text
				case 3:
					row.Code = text
				case 4, 5:
					for _, anchor := range htmlutil.GetAnchors(td.Find("a")) {
						groups := receiptIdPattern.FindStringSubmatch(anchor.Href)
						if len(groups) == 3 {
							row.Id = groups[2]
						}
					}
				}
			})
			rows = append(rows, row)
		})
		return rows
	}
}

func (c *Client) parseResults(doc *goquery.Document) []ResultRow {
	rows := []ResultRow{}
	doc.Find(c.markup.ResultRows).Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td")
		if cells.Length() == 0 {
			return
		}

		var row ResultRow
		cells.Each(func(i int, td *goquery.Selection) {
			switch i {
			case 0:
				row.Date = strings.TrimSpace(td.Text())
			case 1:
				row.Name = strings.TrimSpace(td.Text())
			case 2:
				row.Code = strings.TrimSpace(td.Text())
			case 3:
				row.Type = strings.TrimSpace(td.Find("span").Text())
				row.Prize = strings.TrimSpace(td.Find("div").Text())
			}
		})
		rows = append(rows, row)
	})
	return rows
}
