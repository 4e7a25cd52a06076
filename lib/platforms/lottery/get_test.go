package lottery

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func newTestSession(t testing.TB, client *Client) *Session {
	session, err := client.NewSession()
	if err != nil {
		t.Fatal(err)
	}
	return session
}

func TestGetTicket(t *testing.T) {
	portal := newFakePortal(t, mainPageTest)
	portal.handle("GET /paragon/edytuj/5708a1b2c4/3.2016", func(w http.ResponseWriter, r *http.Request) {
		writeHtml(w, ticketPageTest)
	})
	client := newTestClient(t, testConfig(portal))

	result, err := client.GetTicket(context.Background(), newTestSession(t, client), "5708a1b2c4")
	if err != nil {
		t.Fatal(err)
	}

	expected := TicketResult{
		Id:                    "5708a1b2c4",
		Code:                  "XK-00042",
		PointOfSale:           "ABC12345678",
		PurchaseOrderNumber:   "0042",
		TaxRegistrationNumber: "5261040828",
		Date:                  time.Date(2016, time.March, 14, 0, 0, 0, 0, warsaw(t)),
		Amount:                Amount{Value: "12.00", Currency: CurrencyPLN},
		Trade:                 TradeHairdressing,
		Special:               false,
	}
	if diff := cmp.Diff(expected, result); diff != "" {
		t.Fatal(diff)
	}

	gets := portal.requestsTo("/paragon/edytuj/5708a1b2c4/3.2016")
	require.Len(t, gets, 1)
	require.Equal(t, "tok-123", gets[0].token)
	require.True(t, gets[0].hasCookie)
}

func TestGetTicketSpecialFallback(t *testing.T) {
	portal := newFakePortal(t, mainPageTest)
	portal.handle("GET /paragon/edytuj/77/3.2016", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		writeHtml(w, errorPageTest)
	})
	portal.handle("GET /paragon/edytuj/77/special", func(w http.ResponseWriter, r *http.Request) {
		writeHtml(w, ticketSplitPageTest)
	})
	client := newTestClient(t, testConfig(portal))

	result, err := client.GetTicket(context.Background(), newTestSession(t, client), "77")
	if err != nil {
		t.Fatal(err)
	}

	require.True(t, result.Special)
	require.Equal(t, "BCD1234567890", result.PointOfSale)
	require.Equal(t, "1111111111", result.TaxRegistrationNumber)
	require.Equal(t, "1234.56", result.Amount.Value)
	require.Equal(t, TradeOther, result.Trade)
	require.Equal(t, 3, result.Date.Day())
	require.Len(t, portal.requestsTo("/paragon/edytuj/77/3.2016"), 1)
	require.Len(t, portal.requestsTo("/paragon/edytuj/77/special"), 1)
}

func TestGetTicketNotFound(t *testing.T) {
	portal := newFakePortal(t, mainPageTest)
	portal.handle("GET /paragon/edytuj/", func(w http.ResponseWriter, r *http.Request) {
		writeHtml(w, errorPageTest)
	})
	client := newTestClient(t, testConfig(portal))

	_, err := client.GetTicket(context.Background(), newTestSession(t, client), "missing")
	require.ErrorIs(t, err, ErrTicketNotFound)

	require.Len(t, portal.requestsTo("/paragon/edytuj/missing/3.2016"), 1)
	require.Len(t, portal.requestsTo("/paragon/edytuj/missing/special"), 1)
}

func TestGetTicketEscapesId(t *testing.T) {
	portal := newFakePortal(t, mainPageTest)
	var ids, periods []string
	portal.handle("GET /paragon/edytuj/{id}/{period}", func(w http.ResponseWriter, r *http.Request) {
		ids = append(ids, r.PathValue("id"))
		periods = append(periods, r.PathValue("period"))
		writeHtml(w, ticketPageTest)
	})
	client := newTestClient(t, testConfig(portal))

	id := "12/34?x=1#frag"
	result, err := client.GetTicket(context.Background(), newTestSession(t, client), id)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, id, result.Id)
	require.Equal(t, []string{id}, ids)
	require.Equal(t, []string{"3.2016"}, periods)
}

func TestGetTicketEmptyId(t *testing.T) {
	portal := newFakePortal(t, mainPageTest)
	client := newTestClient(t, testConfig(portal))

	_, err := client.GetTicket(context.Background(), newTestSession(t, client), "")
	require.ErrorIs(t, err, ErrTicketNotFound)
	require.Empty(t, portal.requestsTo("/"))
}

func TestGetTicketForbidden(t *testing.T) {
	portal := newFakePortal(t, mainPageTest)
	portal.handle("GET /paragon/edytuj/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	client := newTestClient(t, testConfig(portal))

	_, err := client.GetTicket(context.Background(), newTestSession(t, client), "77")
	require.ErrorIs(t, err, ErrServiceUnavailable)
	// no fallback after a failed request
	require.Empty(t, portal.requestsTo("/paragon/edytuj/77/special"))
}
