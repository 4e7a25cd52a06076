package lottery

import (
	"context"
	"encoding/json"
	"net/http"
)

// AuthorizeUser logs into the portal with a new session and returns it once
// the portal confirmed the credentials.
func (c *Client) AuthorizeUser(ctx context.Context, credentials Credentials) (*Session, error) {
	session, err := c.NewSession()
	if err != nil {
		return nil, serviceUnavailable("Unable to authorize", err)
	}

	challenge, err := c.Bootstrap(ctx, session)
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(
		RequestAuth,
		http.MethodPost,
		"",
		map[string]string{tokenHeader: challenge.Token},
	)
	if err != nil {
		return nil, err
	}
	req = req.
		withForm(map[string]string{
			"email":    credentials.Email,
			"password": credentials.Password,
			"_token":   challenge.Token,
		}).
		withUnauthorized(unauthorizedUser("Unauthorized access")).
		withFailure("Unable to authorize")

	res, err := session.do(ctx, req)
	if err != nil {
		c.tel.ReportWarning(report_authorize_user, err, credentials.Email)
		return nil, err
	}

	var envelope struct {
		Success bool `json:"success"`
	}
	err = json.Unmarshal(res.body, &envelope)
	if err != nil {
		c.tel.ReportBroken(report_authorize_user, err, credentials.Email)
		return nil, serviceUnavailable("Unable to authorize", err)
	}
	if !envelope.Success {
		return nil, unauthorizedUser("Unauthorized access")
	}

	c.tel.ReportDebug("authorized user", credentials.Email)
	return session, nil
}
