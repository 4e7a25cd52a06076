package lottery

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// CreateTicket registers a new receipt with a fresh anonymous session. On
// success only the id and code of the result are set.
func (c *Client) CreateTicket(ctx context.Context, ticket TicketRequest) (TicketResult, error) {
	session, err := c.NewSession()
	if err != nil {
		return TicketResult{}, serviceUnavailable("Unable to create receipt", err)
	}

	challenge, err := c.Bootstrap(ctx, session)
	if err != nil {
		return TicketResult{}, err
	}

	captcha, err := EvaluateChallenge(challenge.ChallengeText)
	if err != nil {
		c.tel.ReportBroken(report_create_ticket, err, challenge.ChallengeText)
		return TicketResult{}, serviceUnavailable("Unable to prepare data", err)
	}

	err = c.sendCaptcha(ctx, session, challenge, captcha)
	if err != nil {
		return TicketResult{}, err
	}

	req, err := c.newRequest(
		RequestCreateTicket,
		http.MethodPost,
		"",
		c.submissionHeaders(challenge),
	)
	if err != nil {
		return TicketResult{}, err
	}
	if challenge.SubmissionUrl != "" && challenge.SubmissionUrl != req.url {
		c.tel.ReportDebug("using page submission url", challenge.SubmissionUrl)
		req.url = challenge.SubmissionUrl
	}
	req = req.
		withForm(buildTicketForm(ticket, captcha, c.time.Location())).
		withRedirectFollow().
		withFailure("Unable to create receipt")

	res, err := session.do(ctx, req)
	if err != nil {
		c.tel.ReportBroken(report_create_ticket, err)
		return TicketResult{}, err
	}

	env, err := parseEnvelope(res.body)
	if err != nil {
		c.tel.ReportBroken(report_create_ticket, err, string(res.body))
		return TicketResult{}, err
	}
	return c.interpretCreated(env)
}

func (c *Client) interpretCreated(env envelope) (TicketResult, error) {
	if !env.hasSuccess {
		return TicketResult{}, env.fieldError()
	}
	if !env.success {
		if strings.Contains(env.message, sentinelDuplicate) {
			return TicketResult{}, alreadyExists(env.message)
		}
		return TicketResult{}, unknownValidate("Unable to validate parameters", env.message)
	}

	result, err := parseCreated(env.message, c.markup)
	if err != nil {
		return TicketResult{}, err
	}
	if result.Id == "" {
		c.tel.ReportWarning(report_create_ticket, "created receipt without an id link", result.Code)
	}
	return result, nil
}

// sendCaptcha submits the solved challenge, the portal must answer with
// exactly "true" before it accepts the ticket form.
func (c *Client) sendCaptcha(ctx context.Context, session *Session, challenge PageChallenge, captcha int) error {
	req, err := c.newRequest(
		RequestCaptcha,
		http.MethodPost,
		"",
		c.submissionHeaders(challenge),
	)
	if err != nil {
		return err
	}
	req = req.
		withForm(map[string]string{"captcha": fmt.Sprint(captcha)}).
		withRedirectFollow().
		withFailure("Unable to send captcha")

	res, err := session.do(ctx, req)
	if err != nil {
		c.tel.ReportBroken(report_send_captcha, err)
		return err
	}
	if string(res.body) != "true" {
		err := serviceUnavailable("Unable to send captcha", nil)
		c.tel.ReportWarning(report_send_captcha, err, captcha, string(res.body))
		return err
	}
	return nil
}

// submissionHeaders are the extra headers of every form submission.
func (c *Client) submissionHeaders(challenge PageChallenge) map[string]string {
	headers := make(map[string]string, len(challenge.Headers)+1)
	for k, v := range challenge.Headers {
		headers[k] = v
	}
	headers[tokenHeader] = challenge.Token
	return headers
}
