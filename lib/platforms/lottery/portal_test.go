package lottery

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"sync"
	"testing"
	"time"

	"receiptlottery/internal/components/chrono"
	"receiptlottery/internal/components/telemetry"

	_ "embed"
)

//go:embed main_page_test.html
var mainPageTest []byte

//go:embed main_page_legacy_test.html
var mainPageLegacyTest []byte

//go:embed ticket_page_test.html
var ticketPageTest []byte

//go:embed ticket_split_page_test.html
var ticketSplitPageTest []byte

//go:embed error_page_test.html
var errorPageTest []byte

//go:embed created_message_test.html
var createdMessageTest string

//go:embed results_page_test.html
var resultsPageTest []byte

const sessionCookie = "laravel_session"

type recordedRequest struct {
	method    string
	path      string
	query     url.Values
	form      url.Values
	token     string
	userAgent string
	hasCookie bool
}

// fakePortal emulates the portal with an httptest server, it records every
// request it receives. The landing page is served at / and sets the
// session cookie.
type fakePortal struct {
	server *httptest.Server
	mux    *http.ServeMux

	mu       sync.Mutex
	requests []recordedRequest
}

func newFakePortal(t testing.TB, mainPage []byte) *fakePortal {
	p := &fakePortal{mux: http.NewServeMux()}
	p.mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "s1", Path: "/"})
		w.Header().Set("content-type", "text/html; charset=utf-8")
		w.Write(mainPage)
	})
	p.server = httptest.NewServer(http.HandlerFunc(p.serve))
	t.Cleanup(p.server.Close)
	return p
}

func (p *fakePortal) serve(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	_, err := r.Cookie(sessionCookie)

	p.mu.Lock()
	p.requests = append(p.requests, recordedRequest{
		method:    r.Method,
		path:      r.URL.Path,
		query:     r.URL.Query(),
		form:      r.PostForm,
		token:     r.Header.Get(tokenHeader),
		userAgent: r.UserAgent(),
		hasCookie: err == nil,
	})
	p.mu.Unlock()

	p.mux.ServeHTTP(w, r)
}

func (p *fakePortal) handle(pattern string, handler http.HandlerFunc) {
	p.mux.HandleFunc(pattern, handler)
}

// requestsTo returns the recorded requests to `path` in order.
func (p *fakePortal) requestsTo(path string) []recordedRequest {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := []recordedRequest{}
	for _, req := range p.requests {
		if req.path == path {
			out = append(out, req)
		}
	}
	return out
}

func mustParseUrl(t testing.TB, raw string) *url.URL {
	parsed, err := url.Parse(raw)
	if err != nil {
		t.Fatal(err)
	}
	return parsed
}

func (p *fakePortal) url(path string) string {
	return p.server.URL + path
}

func testConfig(p *fakePortal) Config {
	request := func(path string) RequestConfig {
		return RequestConfig{
			Url:     p.url(path),
			Headers: map[string]string{"accept": "*/*"},
			Timeout: 2000,
		}
	}
	return Config{
		Requests: map[string]RequestConfig{
			RequestMain:         request("/"),
			RequestAuth:         request("/login"),
			RequestCaptcha:      request("/captcha"),
			RequestCreateTicket: request("/paragon/stworz"),
			RequestGetTicket:    request("/paragon/edytuj"),
			RequestUpdateTicket: request("/paragon/edytuj"),
			RequestAccount:      request("/moje-paragony"),
			RequestResults:      request("/wyniki"),
		},
		Location: chrono.PortalLocation,
		Markup:   markupCurrent,
		Periods:  []string{"special", "1.2016", "2.2016"},
	}
}

func warsaw(t testing.TB) *time.Location {
	loc, err := time.LoadLocation(chrono.PortalLocation)
	if err != nil {
		t.Fatal(err)
	}
	return loc
}

// testNow is the fixed clock of every flow test, March 2016 in the portal's zone.
func testNow(t testing.TB) time.Time {
	return time.Date(2016, time.March, 15, 10, 30, 0, 0, warsaw(t))
}

func fixedClock(t testing.TB) chrono.FixedImpl {
	return chrono.NewFixedImpl(testNow(t))
}

func newTestClient(t testing.TB, config Config) *Client {
	tel := telemetry.NewSlogAPI(telemetry.NewTextLogger(os.Stderr, "warn"))
	client, err := NewClient(config, tel, fixedClock(t))
	if err != nil {
		t.Fatal(err)
	}
	return client
}

func writeJson(w http.ResponseWriter, status int, body string) {
	w.Header().Set("content-type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(body))
}

func writeHtml(w http.ResponseWriter, body []byte) {
	w.Header().Set("content-type", "text/html; charset=utf-8")
	w.Write(body)
}
