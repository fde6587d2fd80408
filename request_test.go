package meteolux_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	meteolux "github.com/sim0nx/meteolux-go"
	"github.com/sim0nx/meteolux-go/schema"
)

func validUser() meteolux.User {
	return meteolux.User{
		Language:     meteolux.LanguageEN,
		PushToken:    "token-123",
		Device:       "ios",
		Version:      "1.2.3",
		BuildVersion: "456",
		Vigilance: meteolux.VigilanceSettings{
			Level:     2,
			ZoneNorth: true,
			ZoneSouth: true,
		},
	}
}

func TestNotFoundKeepsBodyAsDetail(t *testing.T) {
	ctx := context.Background()
	const body = `{"detail": "Not Found"}`
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, body)
	}))

	_, err := c.GetATCReport(ctx)
	var apiErr *meteolux.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Kind != meteolux.KindNotFound {
		t.Fatalf("kind: got %v, want not_found", apiErr.Kind)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Fatalf("status: got %d, want 404", apiErr.StatusCode)
	}
	if apiErr.Detail != body {
		t.Fatalf("detail: got %q, want the raw response body", apiErr.Detail)
	}
	if !meteolux.IsNotFound(err) {
		t.Fatalf("IsNotFound should report true")
	}
}

func TestHTTPErrorCarriesStatus(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, "upstream exploded")
	}))

	_, err := c.GetObservationsHVD(ctx)
	var apiErr *meteolux.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Kind != meteolux.KindHTTP {
		t.Fatalf("kind: got %v, want http", apiErr.Kind)
	}
	if apiErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status: got %d, want 500", apiErr.StatusCode)
	}
	if apiErr.Detail != "upstream exploded" {
		t.Fatalf("detail: got %q", apiErr.Detail)
	}
	if meteolux.IsNotFound(err) {
		t.Fatalf("IsNotFound should report false for a 500")
	}
}

func TestMalformedResponse(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, "{not json")
	}))

	_, err := c.GetATCReport(ctx)
	var apiErr *meteolux.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Kind != meteolux.KindMalformedResponse {
		t.Fatalf("kind: got %v, want malformed_response", apiErr.Kind)
	}
	if apiErr.Err == nil {
		t.Fatalf("expected the decode error to be wrapped")
	}
}

func TestSchemaValidationFailureExposesIssues(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{}`)
	}))

	_, err := c.GetATCReport(ctx)
	var apiErr *meteolux.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Kind != meteolux.KindSchemaValidation {
		t.Fatalf("kind: got %v, want schema_validation", apiErr.Kind)
	}
	iss, ok := schema.AsIssues(err)
	if !ok {
		t.Fatalf("expected schema.Issues in the chain, got %v", err)
	}
	if len(iss) != 1 || iss[0].Code != schema.CodeRequired || iss[0].Path != "/forecast" {
		t.Fatalf("unexpected issues: %+v", iss)
	}
}

func TestSchemaValidationErrorKeepsQueryInURL(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{}`)
	}))

	city := 1
	_, err := c.GetWeather(ctx, meteolux.WeatherParams{City: &city})
	var apiErr *meteolux.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if want := c.BaseURL() + "/metapp/weather?city=1&langcode=fr"; apiErr.URL != want {
		t.Fatalf("url: got %q, want %q", apiErr.URL, want)
	}
}

func TestTransportError(t *testing.T) {
	ctx := context.Background()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()

	c, err := meteolux.New(meteolux.WithBaseURL(base))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	defer c.Close()

	_, err = c.GetATCReport(ctx)
	var apiErr *meteolux.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Kind != meteolux.KindTransport {
		t.Fatalf("kind: got %v, want transport", apiErr.Kind)
	}
	if apiErr.StatusCode != 0 {
		t.Fatalf("status: got %d, want 0 for a transport failure", apiErr.StatusCode)
	}
}

func TestNoContentMeansAbsent(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	if err := c.UpdateUser(ctx, validUser()); err != nil {
		t.Fatalf("update user on 204: %v", err)
	}

	texts, err := c.GetInterfaceTexts(ctx, meteolux.LanguageDE)
	if err != nil {
		t.Fatalf("interface texts on 204: %v", err)
	}
	if texts != nil {
		t.Fatalf("expected nil map on 204, got %v", texts)
	}

	msg, err := c.AddObservation(ctx, meteolux.InObservation{Lat: 49.6, Long: 6.1, Description: "fog", Weather: 1})
	if err != nil {
		t.Fatalf("add observation on 204: %v", err)
	}
	if msg != "" {
		t.Fatalf("expected empty message on 204, got %q", msg)
	}
}

func TestRequestHeaders(t *testing.T) {
	ctx := context.Background()
	var got http.Header
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.WriteHeader(http.StatusNoContent)
	}))

	if _, err := c.GetObservationsMetapp(ctx); err != nil {
		t.Fatalf("request: %v", err)
	}
	if got.Get("Accept") != "application/json" {
		t.Fatalf("accept: got %q", got.Get("Accept"))
	}
	if ua := got.Get("User-Agent"); !strings.HasPrefix(ua, "meteolux-go/") {
		t.Fatalf("user agent: got %q", ua)
	}
	if _, err := uuid.Parse(got.Get("X-Request-Id")); err != nil {
		t.Fatalf("x-request-id %q is not a uuid: %v", got.Get("X-Request-Id"), err)
	}
	if got.Get("Content-Type") != "" {
		t.Fatalf("content type on a GET without body: got %q", got.Get("Content-Type"))
	}
}

func TestPostSetsContentType(t *testing.T) {
	ctx := context.Background()
	var got http.Header
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.WriteHeader(http.StatusNoContent)
	}))

	if err := c.UpdateUser(ctx, validUser()); err != nil {
		t.Fatalf("update user: %v", err)
	}
	if got.Get("Content-Type") != "application/json" {
		t.Fatalf("content type: got %q", got.Get("Content-Type"))
	}
}

func TestQueryParameters(t *testing.T) {
	ctx := context.Background()
	var got url.Values
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		w.WriteHeader(http.StatusNoContent)
	}))

	lat, long := 49.6116, 6.1319
	if _, err := c.GetWeather(ctx, meteolux.WeatherParams{Langcode: meteolux.LanguageEN, Lat: &lat, Long: &long}); err != nil {
		t.Fatalf("get weather: %v", err)
	}
	if got.Get("langcode") != "en" {
		t.Fatalf("langcode: got %q", got.Get("langcode"))
	}
	if got.Get("lat") != "49.6116" || got.Get("long") != "6.1319" {
		t.Fatalf("coordinates: got lat=%q long=%q", got.Get("lat"), got.Get("long"))
	}
	if got.Has("city") {
		t.Fatalf("city should be omitted when unset")
	}
}

func TestQueryLangcodeDefaultsToFrench(t *testing.T) {
	ctx := context.Background()
	var got url.Values
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		w.WriteHeader(http.StatusNoContent)
	}))

	city := 1
	if _, err := c.GetWeather(ctx, meteolux.WeatherParams{City: &city}); err != nil {
		t.Fatalf("get weather: %v", err)
	}
	if got.Get("langcode") != "fr" {
		t.Fatalf("langcode: got %q, want fr", got.Get("langcode"))
	}
	if got.Get("city") != "1" {
		t.Fatalf("city: got %q, want 1", got.Get("city"))
	}
}

func TestMetricsRecordRequests(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}), meteolux.WithMetrics(reg))

	if _, err := c.GetObservationsMetapp(ctx); err != nil {
		t.Fatalf("request: %v", err)
	}

	n, err := testutil.GatherAndCount(reg, "meteolux_requests_total")
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if n != 1 {
		t.Fatalf("requests_total series: got %d, want 1", n)
	}
	n, err = testutil.GatherAndCount(reg, "meteolux_request_duration_seconds")
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if n != 1 {
		t.Fatalf("request_duration_seconds series: got %d, want 1", n)
	}
}
