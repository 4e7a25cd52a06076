package lottery

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// itemsPage renders one listing page as <li> items.
func itemsPage(items ...string) []byte {
	var out strings.Builder
	out.WriteString("<ul>")
	for _, item := range items {
		fmt.Fprintf(&out, "<li>%s</li>", item)
	}
	out.WriteString("</ul>")
	return []byte(out.String())
}

func parseItems(doc *goquery.Document) []string {
	return doc.Find("li").Map(func(_ int, li *goquery.Selection) string {
		return li.Text()
	})
}

func TestListAllPagination(t *testing.T) {
	pages := [][]byte{
		itemsPage("a", "b"),
		itemsPage("c"),
		itemsPage("d", "e", "f"),
		itemsPage(),
		itemsPage("never"),
	}

	fetched := []int{}
	fetch := func(_ context.Context, page int) ([]byte, error) {
		fetched = append(fetched, page)
		return pages[page-1], nil
	}

	rows, err := listAll(context.Background(), fetch, parseItems)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, []string{"a", "b", "c", "d", "e", "f"}, rows)
	require.Equal(t, []int{1, 2, 3, 4}, fetched)
}

func TestListAllError(t *testing.T) {
	failure := serviceUnavailable("Unable to get data from service", nil)
	calls := 0
	fetch := func(_ context.Context, page int) ([]byte, error) {
		calls++
		if page == 2 {
			return nil, failure
		}
		return itemsPage("a"), nil
	}

	_, err := listAll(context.Background(), fetch, parseItems)
	require.ErrorIs(t, err, ErrServiceUnavailable)
	require.Equal(t, 2, calls)
}

func TestCollectPeriodsReverse(t *testing.T) {
	earlier, err := ParsePeriod("1.2016")
	if err != nil {
		t.Fatal(err)
	}
	later, err := ParsePeriod("2.2016")
	if err != nil {
		t.Fatal(err)
	}

	listed := []string{}
	rows, err := collectPeriods(
		context.Background(),
		[]Period{SpecialPeriod, earlier, later},
		func(_ context.Context, period Period) ([]string, error) {
			listed = append(listed, period.String())
			return []string{period.String() + "#1", period.String() + "#2"}, nil
		},
	)
	if err != nil {
		t.Fatal(err)
	}

	require.Equal(t, []string{"special", "1.2016", "2.2016"}, listed)
	require.Equal(t, []string{
		"2.2016#1", "2.2016#2",
		"1.2016#1", "1.2016#2",
		"special#1", "special#2",
	}, rows)
}

func historyPage(period string, page int, count int) []byte {
	var out strings.Builder
	out.WriteString(`<div class="table-responsive"><table>`)
	out.WriteString(`<tr><th>Data</th><th>Kwota</th><th>Nr wydruku</th><th>Kod</th><th></th><th></th></tr>`)
	for i := 0; i < count; i++ {
		id := fmt.Sprintf("%s-%d-%d", strings.ReplaceAll(period, ".", "_"), page, i)
		fmt.Fprintf(
			&out,
			`<tr><td>2016-02-0%d</td><td>%d,00 zł</td><td>%d</td><td>XK-%d</td>`+
				`<td><a href="/paragon/drukuj/%s/%s">Drukuj</a></td><td></td></tr>`,
			i+1, 10*(i+1), i, page*100+i, id, period,
		)
	}
	out.WriteString(`</table></div>`)
	return []byte(out.String())
}

func TestGetTickets(t *testing.T) {
	portal := newFakePortal(t, mainPageTest)
	// two pages of rows per period, except 1.2016 which is empty
	portal.handle("GET /moje-paragony", func(w http.ResponseWriter, r *http.Request) {
		period := r.URL.Query().Get("type")
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		count := 0
		if period != "1.2016" && page <= 2 {
			count = 1
		}
		writeHtml(w, historyPage(period, page, count))
	})
	client := newTestClient(t, testConfig(portal))

	rows, err := client.GetTickets(context.Background(), newTestSession(t, client))
	if err != nil {
		t.Fatal(err)
	}

	loc := warsaw(t)
	expected := []HistoryRow{
		{Id: "2_2016-1-0", Date: time.Date(2016, 2, 1, 0, 0, 0, 0, loc), AmountValue: "10,00 zł", PurchaseOrderNumber: "0", Code: "XK-100"},
		{Id: "2_2016-2-0", Date: time.Date(2016, 2, 1, 0, 0, 0, 0, loc), AmountValue: "10,00 zł", PurchaseOrderNumber: "0", Code: "XK-200"},
		{Id: "special-1-0", Special: true, Date: time.Date(2016, 2, 1, 0, 0, 0, 0, loc), AmountValue: "10,00 zł", PurchaseOrderNumber: "0", Code: "XK-100"},
		{Id: "special-2-0", Special: true, Date: time.Date(2016, 2, 1, 0, 0, 0, 0, loc), AmountValue: "10,00 zł", PurchaseOrderNumber: "0", Code: "XK-200"},
	}
	if diff := cmp.Diff(expected, rows); diff != "" {
		t.Fatal(diff)
	}

	// 3 fetches for each period with rows, 1 for the empty one
	require.Len(t, portal.requestsTo("/moje-paragony"), 7)
}

func TestGetTicketsUnauthorized(t *testing.T) {
	portal := newFakePortal(t, mainPageTest)
	portal.handle("GET /moje-paragony", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	client := newTestClient(t, testConfig(portal))

	_, err := client.GetTickets(context.Background(), newTestSession(t, client))
	require.ErrorIs(t, err, ErrUnauthorizedUser)
	require.Len(t, portal.requestsTo("/moje-paragony"), 1)
}

func TestGetResults(t *testing.T) {
	portal := newFakePortal(t, mainPageTest)
	portal.handle("GET /wyniki", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "1" {
			writeHtml(w, resultsPageTest)
			return
		}
		writeHtml(w, []byte(`<div class="results-table"><table></table></div>`))
	})
	client := newTestClient(t, testConfig(portal))

	rows, err := client.GetResults(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, []ResultRow{
		{Date: "2016-03-10", Name: "Anna K.", Code: "XK-11111", Type: "miesięczne", Prize: "Samochód"},
		{Date: "2016-03-10", Name: "Jan N.", Code: "XK-22222", Type: "cotygodniowe", Prize: "Laptop"},
	}, rows)
	require.Len(t, portal.requestsTo("/wyniki"), 2)
}

func TestParseHistoryDate(t *testing.T) {
	client := &Client{time: fixedClock(t)}
	loc := warsaw(t)

	for _, text := range []string{"2016-02-03", "2016-02-03 17:45:00", "03.02.2016"} {
		date, err := client.parseHistoryDate(text)
		if err != nil {
			t.Fatal(err)
		}
		require.True(t, date.Equal(time.Date(2016, 2, 3, 0, 0, 0, 0, loc)), text)
	}

	_, err := client.parseHistoryDate("wczoraj")
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrServiceUnavailable))
}
