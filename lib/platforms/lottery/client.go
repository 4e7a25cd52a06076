package lottery

import (
	"fmt"
	"math"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"

	"receiptlottery/internal/components/assert"
	"receiptlottery/internal/components/chrono"
	"receiptlottery/internal/components/telemetry"
	"receiptlottery/lib/restyutil"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const VERSION = "1.4.0"

const (
	report_bootstrap      = "bootstrap"
	report_authorize_user = "authorize-user"
	report_send_captcha   = "send-captcha"
	report_create_ticket  = "create-ticket"
	report_get_ticket     = "get-ticket"
	report_update_ticket  = "update-ticket"
	report_list_tickets   = "list-tickets"
	report_list_results   = "list-results"
)

const tokenHeader = "x-csrf-token"

// Client runs the portal flows, it holds no per-user state so a single
// value may be shared by concurrent callers as long as each of them uses its
// own Session.
type Client struct {
	config Config
	markup Markup
	tel    telemetry.API
	time   chrono.API

	// run names the dump directory of this client, sessions numbers its
	// sessions
	run      string
	sessions atomic.Uint64
}

// NewClient validates `config` and returns a client for it. `clock` decides
// the current period, a nil clock is the system clock in config.Location.
// A clock in any other location is rejected.
func NewClient(config Config, tel telemetry.API, clock chrono.API) (*Client, error) {
	assert.NotNil(tel)

	err := config.Validate()
	if err != nil {
		return nil, fmt.Errorf("lottery: invalid config: %w", err)
	}

	if clock == nil {
		clock, err = chrono.NewStandardImpl(config.locationName())
		if err != nil {
			return nil, fmt.Errorf("lottery: load location: %w", err)
		}
	} else if clock.Location().String() != config.locationName() {
		return nil, fmt.Errorf(
			"lottery: clock location %s does not match configured location %s",
			clock.Location(), config.locationName(),
		)
	}

	return &Client{
		config: config,
		markup: markups[config.markupName()],
		tel:    telemetry.NewScopedAPI("lottery_client", tel),
		time:   clock,
		run:    fmt.Sprintf("%s-%d", clock.Now().Format("20060102-150405"), os.Getpid()),
	}, nil
}

// Session is the cookie jar of one (anonymous or authenticated) interaction
// with the portal. It is not safe for concurrent use by flows that mutate
// the same entries.
type Session struct {
	http *resty.Client
	jar  http.CookieJar
}

// NewSession creates an empty session.
func (c *Client) NewSession() (*Session, error) {
	httpClient := resty.New()
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	httpClient.SetCookieJar(jar)
	if c.config.CloudflareBypass {
		httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)
	}
	if c.config.UserAgent != "" {
		httpClient.SetHeader("user-agent", c.config.UserAgent)
	}

	// submissions are redirected at most once, session.do follows that hop
	// itself so the form can be sent again
	httpClient.SetRedirectPolicy(resty.RedirectPolicyFunc(func(req *http.Request, via []*http.Request) error {
		if via[0].Method != http.MethodGet {
			return http.ErrUseLastResponse
		}
		if len(via) >= 10 {
			return fmt.Errorf("stopped after %d redirects", len(via))
		}
		return nil
	}))

	if c.config.RateLimit > 0 {
		// max burst >= limit just means that no requests will be dropped
		rateLimiter := rate.NewLimiter(
			rate.Limit(c.config.RateLimit),
			int(math.Ceil(c.config.RateLimit)),
		)
		httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			return rateLimiter.Wait(req.Context())
		})
	}

	telemetry.InstrumentResty(httpClient, "lottery/http", c.tel)

	if c.config.DumpDirectory != "" {
		sessionId := strconv.FormatUint(c.sessions.Add(1), 10)
		output, err := restyutil.NewDirectoryOutput(
			filepath.Join(c.config.DumpDirectory, c.run),
			sessionId+"-",
		)
		if err != nil {
			return nil, err
		}
		restyutil.Record(httpClient, output, "password")
	}

	return &Session{http: httpClient, jar: jar}, nil
}

// Cookies returns the cookies the session would send to `u`.
func (s *Session) Cookies(u *url.URL) []*http.Cookie {
	return s.jar.Cookies(u)
}

// resolveUrl resolves `ref` against `base`, an unparsable reference is
// returned unchanged.
func resolveUrl(base, ref string) string {
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}
