package providers

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"
)

const defaultHTTPTimeout = 30 * time.Second

// NetHTTPCaller is the default HTTPCaller, backed by net/http with a
// per-request timeout.
type NetHTTPCaller struct {
	client *http.Client
}

// NewNetHTTPCaller returns a caller using the default transport.
func NewNetHTTPCaller() *NetHTTPCaller {
	return &NetHTTPCaller{client: &http.Client{}}
}

// Do issues the request and returns status plus raw body. Non-2xx statuses
// are returned to the caller, not converted to errors; the node decides how
// to surface them.
func (c *NetHTTPCaller) Do(ctx context.Context, req HTTPRequest) (HTTPResponse, error) {
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return HTTPResponse{}, NewError("http", err)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return HTTPResponse{}, NewError("http", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return HTTPResponse{}, NewError("http", err)
	}
	return HTTPResponse{StatusCode: resp.StatusCode, Body: raw}, nil
}
