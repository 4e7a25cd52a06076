package restyutil

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/go-resty/resty/v2"
)

// Output receives one rendered exchange per response.
type Output interface {
	Write(id string, contents string)
}

const redactedValue = "[redacted]"

// Record renders every completed exchange of `client` into `output`,
// exchanges are numbered in the order their responses arrive. The values of
// the form fields named in `redact` are replaced in the rendered request.
func Record(client *resty.Client, output Output, redact ...string) {
	if output == nil {
		return
	}
	var counter uint64
	client.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		id := strconv.FormatUint(atomic.AddUint64(&counter, 1), 10)
		output.Write(id, FormatExchange(res, redact...))
		return nil
	})
}

func formatHeaders(headers http.Header) string {
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var lines []string
	for _, k := range keys {
		for _, v := range headers[k] {
			lines = append(lines, fmt.Sprintf("%s: %s", k, v))
		}
	}
	return strings.Join(lines, "\n")
}

func formatRequestBody(req *http.Request, redact []string) string {
	if req == nil || req.GetBody == nil {
		return ""
	}
	// GetBody of a request without a body returns a nil reader
	body, err := req.GetBody()
	if err != nil {
		return fmt.Sprintf("failed to get request body: %s", err.Error())
	}
	if body == nil {
		return ""
	}
	defer body.Close()
	read, err := io.ReadAll(body)
	if err != nil {
		return fmt.Sprintf("failed to read request body: %s", err.Error())
	}
	return redactForm(req.Header.Get("content-type"), string(read), redact)
}

func redactForm(contentType, body string, redact []string) string {
	if len(redact) == 0 || !strings.HasPrefix(contentType, "application/x-www-form-urlencoded") {
		return body
	}
	values, err := url.ParseQuery(body)
	if err != nil {
		return body
	}
	changed := false
	for _, field := range redact {
		if values.Has(field) {
			values.Set(field, redactedValue)
			changed = true
		}
	}
	if !changed {
		return body
	}
	return values.Encode()
}

// 1: request method
// 2: request url
// 3: request headers
// 4: request body
// 5: response status
// 6: response url (the Location header when redirected)
// 7: response headers
// 8: response body
const exchangeTemplate = `---- REQUEST ----

%s %s

%s

%s

---- RESPONSE ----

%s %s

%s

%s`

// FormatExchange renders a request and its response as plain text, the form
// fields named in `redact` are masked.
func FormatExchange(res *resty.Response, redact ...string) string {
	var requestHeaders string
	raw := res.Request.RawRequest
	if raw != nil {
		requestHeaders = formatHeaders(raw.Header)
	}

	responseUrl := res.Request.URL
	if res.RawResponse != nil {
		redirected, err := res.RawResponse.Location()
		if err == nil {
			responseUrl = redirected.String()
		}
	}

	return fmt.Sprintf(
		exchangeTemplate,
		res.Request.Method, res.Request.URL,
		requestHeaders,
		formatRequestBody(raw, redact),
		strconv.Itoa(res.StatusCode()), responseUrl,
		formatHeaders(res.Header()),
		res.String(),
	)
}

// DirectoryOutput writes each exchange to its own file under a directory.
type DirectoryOutput struct {
	directory string
	prefix    string
}

// NewDirectoryOutput creates `dir` if needed, files are named
// "<prefix><id>.txt".
func NewDirectoryOutput(dir, prefix string) (DirectoryOutput, error) {
	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return DirectoryOutput{}, err
	}
	return DirectoryOutput{directory: dir, prefix: prefix}, nil
}

func (o DirectoryOutput) Write(id string, contents string) {
	path := filepath.Join(o.directory, o.prefix+id+".txt")
	err := os.WriteFile(path, []byte(contents), 0o600)
	if err != nil {
		slog.Warn("failed to write exchange", "path", path, "err", err)
	}
}
