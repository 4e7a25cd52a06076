package lottery

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"receiptlottery/internal/components/assert"
	"receiptlottery/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// PageChallenge is what a flow needs from a freshly fetched landing page.
// The token and the challenge are single use, never keep one around longer
// than the flow that fetched it.
type PageChallenge struct {
	// SubmissionUrl is the absolute action of the registration form, empty
	// when the page did not carry one.
	SubmissionUrl string
	Token         string
	ChallengeText string
	// Headers are the values the legacy markup extracts through config
	// `fields`, they are sent with every submission of the flow.
	Headers map[string]string
}

const (
	legacyTokenField   = "_token"
	legacyCaptchaField = "captcha"
)

var defaultLegacyFields = []FieldConfig{
	{FieldName: legacyTokenField, Pattern: "csrf-input"},
	{FieldName: legacyCaptchaField, Pattern: "captcha-operation"},
}

// Bootstrap fetches the landing page through `session` and extracts the
// anti-forgery token, the captcha challenge and the submission url.
func (c *Client) Bootstrap(ctx context.Context, session *Session) (PageChallenge, error) {
	assert.NotNil(session)

	req, err := c.newRequest(RequestMain, http.MethodGet, "", nil)
	if err != nil {
		return PageChallenge{}, err
	}
	res, err := session.do(ctx, req.withFailure("Unable to create receipt"))
	if err != nil {
		c.tel.ReportBroken(report_bootstrap, err)
		return PageChallenge{}, err
	}

	var challenge PageChallenge
	if c.markup.Legacy {
		challenge, err = c.parseLegacyPage(string(res.body))
	} else {
		challenge, err = c.parsePage(res.body)
	}
	if err != nil {
		c.tel.ReportBroken(report_bootstrap, err)
		return PageChallenge{}, err
	}

	c.tel.ReportDebug("bootstrap", challenge.SubmissionUrl, challenge.ChallengeText)
	return challenge, nil
}

func (c *Client) parsePage(body []byte) (PageChallenge, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return PageChallenge{}, serviceUnavailable("Unable to prepare data", err)
	}

	token := strings.TrimSpace(doc.Find(c.markup.TokenInput).AttrOr("value", ""))
	if token == "" {
		return PageChallenge{}, serviceUnavailable(
			"Unable to prepare data",
			fmt.Errorf("could not find anti-forgery token (%s)", c.markup.TokenInput),
		)
	}
	challengeText := htmlutil.CleanText(doc.Find(c.markup.ChallengeText).Text())
	if challengeText == "" {
		return PageChallenge{}, serviceUnavailable(
			"Unable to prepare data",
			fmt.Errorf("could not find captcha challenge (%s)", c.markup.ChallengeText),
		)
	}

	action := strings.TrimSpace(doc.Find(c.markup.SubmissionForm).AttrOr("action", ""))
	if action != "" {
		main, _ := c.config.Request(RequestMain)
		action = resolveUrl(main.Url, action)
	}

	return PageChallenge{
		SubmissionUrl: action,
		Token:         token,
		ChallengeText: challengeText,
	}, nil
}

func (c *Client) parseLegacyPage(body string) (PageChallenge, error) {
	main, _ := c.config.Request(RequestMain)
	fields := main.Fields
	if len(fields) == 0 {
		fields = defaultLegacyFields
	}

	challenge := PageChallenge{Headers: map[string]string{}}
	for _, field := range fields {
		value, ok := extractField(body, field.Pattern)
		if !ok {
			return PageChallenge{}, serviceUnavailable(
				"Unable to prepare data",
				fmt.Errorf("failed to parse form param: %s", field.FieldName),
			)
		}
		switch field.FieldName {
		case legacyCaptchaField:
			challenge.ChallengeText = htmlutil.CleanText(htmlutil.StripTags(value))
		case legacyTokenField, tokenHeader:
			challenge.Token = value
			challenge.Headers[field.FieldName] = value
		default:
			challenge.Headers[field.FieldName] = value
		}
	}
	if challenge.Token == "" || challenge.ChallengeText == "" {
		return PageChallenge{}, serviceUnavailable(
			"Unable to prepare data",
			fmt.Errorf("legacy fields must extract %s and %s", legacyTokenField, legacyCaptchaField),
		)
	}

	action, err := c.legacySubmissionUrl(body)
	if err != nil {
		return PageChallenge{}, serviceUnavailable("Unable to prepare data", err)
	}
	challenge.SubmissionUrl = action

	return challenge, nil
}

// legacySubmissionUrl finds the absolute form action pointing at the
// configured creation endpoint's host.
func (c *Client) legacySubmissionUrl(body string) (string, error) {
	create, _ := c.config.Request(RequestCreateTicket)
	configured, err := url.Parse(create.Url)
	if err != nil {
		return "", err
	}
	for _, groups := range legacyActionPattern.FindAllStringSubmatch(body, -1) {
		action, err := url.Parse(groups[1])
		if err != nil {
			continue
		}
		if action.Host == configured.Host {
			return action.String(), nil
		}
	}
	return "", fmt.Errorf("failed to parse form url")
}
