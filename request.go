package meteolux

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/elnormous/contenttype"
	j "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/sim0nx/meteolux-go/schema"
)

// request describes one API call. path is the concrete request path; op is
// the path template used for logs and metric labels, so parameterized
// endpoints aggregate under one label.
type request struct {
	method string
	path   string
	op     string
	query  url.Values
	body   any
}

func (r request) label() string {
	if r.op != "" {
		return r.op
	}
	return r.path
}

// target builds the full request URL against base, query included.
func (r request) target(base string) string {
	t := base + r.path
	if len(r.query) > 0 {
		t += "?" + r.query.Encode()
	}
	return t
}

// do executes req and validates the decoded payload against s. A 204
// response yields (nil, nil).
func do[T any](ctx context.Context, c *Client, req request, s schema.Schema[T]) (*T, error) {
	raw, ok, err := roundTrip(ctx, c, req)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	out, err := s.Parse(ctx, raw)
	if err != nil {
		return nil, &APIError{
			Kind:   KindSchemaValidation,
			Method: req.method,
			URL:    req.target(c.baseURL),
			Detail: "response failed validation",
			Err:    err,
		}
	}
	return &out, nil
}

// doRaw executes req and returns the decoded payload without validation.
func doRaw(ctx context.Context, c *Client, req request) (any, error) {
	raw, ok, err := roundTrip(ctx, c, req)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return raw, nil
}

// roundTrip sends req and decodes the JSON body. ok reports whether a body
// was present; a 204 returns (nil, false, nil).
func roundTrip(ctx context.Context, c *Client, req request) (any, bool, error) {
	resp, target, err := c.send(ctx, req)
	if err != nil {
		return nil, false, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNoContent:
		return nil, false, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, false, &APIError{
			Kind:       KindNotFound,
			StatusCode: resp.StatusCode,
			Method:     req.method,
			URL:        target,
			Detail:     bodyText(resp.Body),
		}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, false, &APIError{
			Kind:       KindHTTP,
			StatusCode: resp.StatusCode,
			Method:     req.method,
			URL:        target,
			Detail:     bodyText(resp.Body),
		}
	}

	dec := j.NewDecoder(resp.Body)
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, false, &APIError{
			Kind:       KindMalformedResponse,
			StatusCode: resp.StatusCode,
			Method:     req.method,
			URL:        target,
			Detail:     "response body is not valid JSON",
			Err:        err,
		}
	}
	return raw, true, nil
}

// send issues the HTTP request and returns the raw response together with
// the full target URL. Transport failures come back as KindTransport.
func (c *Client) send(ctx context.Context, req request) (*http.Response, string, error) {
	target := req.target(c.baseURL)

	var body io.Reader
	if req.body != nil {
		buf, err := j.Marshal(req.body)
		if err != nil {
			return nil, target, fmt.Errorf("meteolux: encode body: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	hr, err := http.NewRequestWithContext(ctx, req.method, target, body)
	if err != nil {
		return nil, target, fmt.Errorf("meteolux: build request: %w", err)
	}
	hr.Header.Set("Accept", "application/json")
	hr.Header.Set("User-Agent", c.userAgent)
	requestID := uuid.NewString()
	hr.Header.Set("X-Request-Id", requestID)
	if req.body != nil {
		hr.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.hc.Do(hr)
	elapsed := time.Since(start)
	if err != nil {
		c.metrics.observe(req.method, req.label(), 0, elapsed)
		c.log.Warn().
			Str("method", req.method).
			Str("url", target).
			Str("request_id", requestID).
			Dur("elapsed", elapsed).
			Err(err).
			Msg("request failed")
		return nil, target, &APIError{
			Kind:   KindTransport,
			Method: req.method,
			URL:    target,
			Detail: "request did not complete",
			Err:    err,
		}
	}

	c.metrics.observe(req.method, req.label(), resp.StatusCode, elapsed)
	ev := c.log.Debug()
	if resp.StatusCode >= 400 {
		ev = c.log.Warn()
	}
	ev.Str("method", req.method).
		Str("url", target).
		Int("status", resp.StatusCode).
		Str("request_id", requestID).
		Dur("elapsed", elapsed).
		Msg("request completed")
	return resp, target, nil
}

// doImage executes req and hands the undecoded response body to the caller.
func doImage(ctx context.Context, c *Client, req request) (*ImageResponse, error) {
	resp, _, err := c.send(ctx, req)
	if err != nil {
		return nil, err
	}
	out := &ImageResponse{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       resp.Body,
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" {
		out.MediaType = contenttype.NewMediaType(ct)
	}
	return out, nil
}

func bodyText(r io.Reader) string {
	b, err := io.ReadAll(r)
	if err != nil {
		return ""
	}
	return string(b)
}
