package lottery

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// request describes a single round trip. Values are never modified once
// built, following a redirect derives a new one.
type request struct {
	method  string
	url     string
	headers map[string]string
	form    map[string]string
	timeout time.Duration
	// followRedirect makes a 302 answer be requested again, once, at its
	// Location with the same method, headers and form.
	followRedirect bool
	// unauthorized is returned for 401 and 403 answers, the body is passed
	// through when it is nil.
	unauthorized error
	// failure is the message of the ServiceUnavailable error returned for
	// transport errors.
	failure string
}

type response struct {
	status int
	body   []byte
}

// newRequest starts a request from the named config entry, `extra` headers
// are applied over the configured ones.
func (c *Client) newRequest(name, method, url string, extra map[string]string) (request, error) {
	conf, err := c.config.Request(name)
	if err != nil {
		return request{}, serviceUnavailable("Unable to prepare data", err)
	}
	if url == "" {
		url = conf.Url
	}

	headers := make(map[string]string, len(conf.Headers)+len(extra))
	for k, v := range conf.Headers {
		headers[k] = v
	}
	for k, v := range extra {
		headers[k] = v
	}

	return request{
		method:  method,
		url:     url,
		headers: headers,
		timeout: conf.timeout(),
		failure: "Unable to get data from service",
	}, nil
}

func (r request) withForm(form map[string]string) request {
	r.form = form
	return r
}

func (r request) withRedirectFollow() request {
	r.followRedirect = true
	return r
}

func (r request) withUnauthorized(err error) request {
	r.unauthorized = err
	return r
}

func (r request) withFailure(message string) request {
	r.failure = message
	return r
}

func (r request) redirectedTo(location string) request {
	r.url = resolveUrl(r.url, location)
	r.followRedirect = false
	return r
}

func (s *Session) do(ctx context.Context, req request) (response, error) {
	ctx, cancel := context.WithTimeout(ctx, req.timeout)
	defer cancel()

	r := s.http.R().
		SetContext(ctx).
		SetHeaders(req.headers)
	if req.form != nil {
		r.SetFormData(req.form)
	}

	res, err := r.Execute(req.method, req.url)
	if err != nil {
		return response{}, serviceUnavailable(
			req.failure,
			fmt.Errorf("%s %s: %w", req.method, req.url, err),
		)
	}

	switch res.StatusCode() {
	case http.StatusFound:
		location := res.Header().Get("location")
		if req.followRedirect && location != "" {
			return s.do(ctx, req.redirectedTo(location))
		}
	case http.StatusBadRequest:
		return response{}, serviceUnavailable("Unable to get data from service", nil)
	case http.StatusUnauthorized, http.StatusForbidden:
		if req.unauthorized != nil {
			return response{}, req.unauthorized
		}
	}

	return response{status: res.StatusCode(), body: res.Body()}, nil
}
