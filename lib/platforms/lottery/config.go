package lottery

import (
	_ "embed"
	"errors"
	"fmt"
	"time"

	"receiptlottery/internal/components/chrono"
	"receiptlottery/lib/configutil"
)

// logical request names, the keys of Config.Requests
const (
	RequestMain         = "main-request"
	RequestAuth         = "auth-request"
	RequestCaptcha      = "captcha-request"
	RequestCreateTicket = "create-ticket-request"
	RequestGetTicket    = "get-ticket-request"
	RequestUpdateTicket = "update-ticket-request"
	RequestAccount      = "account-request"
	RequestResults      = "results-request"
)

var requestNames = []string{
	RequestMain,
	RequestAuth,
	RequestCaptcha,
	RequestCreateTicket,
	RequestGetTicket,
	RequestUpdateTicket,
	RequestAccount,
	RequestResults,
}

// FieldConfig binds a form field to one of the statically defined
// extraction patterns of the legacy markup (see fieldPatterns).
type FieldConfig struct {
	FieldName string `json:"fieldName"`
	Pattern   string `json:"pattern"`
}

type RequestConfig struct {
	Url     string            `json:"url"`
	Headers map[string]string `json:"headers"`
	// Timeout is in milliseconds.
	Timeout int           `json:"timeout"`
	Fields  []FieldConfig `json:"fields,omitempty"`
}

func (r RequestConfig) timeout() time.Duration {
	return time.Duration(r.Timeout) * time.Millisecond
}

type Config struct {
	Requests map[string]RequestConfig `json:"requests"`
	// Location is the IANA zone of the portal, empty means Europe/Warsaw.
	// The client's clock must be in this zone.
	Location string `json:"location"`
	// Markup selects one of the known page revisions, see markups.
	Markup string `json:"markup"`
	// Periods are the history tables to list, oldest first.
	Periods []string `json:"periods"`
	// RateLimit is the maximum number of requests per second of a single
	// session, 0 disables limiting.
	RateLimit        float64 `json:"rate_limit"`
	CloudflareBypass bool    `json:"cloudflare_bypass"`
	UserAgent        string  `json:"user_agent"`
	// DumpDirectory receives a text rendering of every exchange when set,
	// files are named "<run>/<session>-<exchange>.txt" where run is the
	// client's start time and process id. Passwords are masked.
	DumpDirectory string `json:"dump_directory"`
}

//go:embed config.default.json5
var defaultConfigFile []byte

// DefaultConfig returns the configuration for the public portal.
func DefaultConfig() Config {
	config, err := configutil.Merge(Config{}, defaultConfigFile)
	if err != nil {
		panic(fmt.Sprintf("embedded default config: %s", err.Error()))
	}
	return config
}

// Request looks up the configuration of a logical request.
func (c Config) Request(name string) (RequestConfig, error) {
	req, ok := c.Requests[name]
	if !ok {
		return RequestConfig{}, fmt.Errorf("missing configuration for %s", name)
	}
	return req, nil
}

func (c Config) Validate() error {
	errlist := []error{}
	for _, name := range requestNames {
		req, err := c.Request(name)
		if err != nil {
			errlist = append(errlist, err)
			continue
		}
		if req.Url == "" {
			errlist = append(errlist, fmt.Errorf("%s: url is required", name))
		}
		if req.Timeout <= 0 {
			errlist = append(errlist, fmt.Errorf("%s: timeout must be positive", name))
		}
		for _, field := range req.Fields {
			if _, ok := fieldPatterns[field.Pattern]; !ok {
				errlist = append(errlist, fmt.Errorf(
					"%s: field %s: unknown pattern %q",
					name, field.FieldName, field.Pattern,
				))
			}
		}
	}
	if _, ok := markups[c.markupName()]; !ok {
		errlist = append(errlist, fmt.Errorf("unknown markup %q", c.Markup))
	}
	for _, token := range c.Periods {
		if _, err := ParsePeriod(token); err != nil {
			errlist = append(errlist, err)
		}
	}
	if _, err := time.LoadLocation(c.locationName()); err != nil {
		errlist = append(errlist, fmt.Errorf("location: %w", err))
	}
	if c.RateLimit < 0 {
		errlist = append(errlist, fmt.Errorf("rate_limit must not be negative"))
	}
	return errors.Join(errlist...)
}

func (c Config) locationName() string {
	if c.Location == "" {
		return chrono.PortalLocation
	}
	return c.Location
}

func (c Config) markupName() string {
	if c.Markup == "" {
		return markupCurrent
	}
	return c.Markup
}
