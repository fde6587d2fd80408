package meteolux

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/elnormous/contenttype"
)

// WeatherParams selects the forecast location for GetWeather. Either City or
// the Lat/Long pair is given; the service resolves coordinates to the nearest
// city. A zero Langcode means French.
type WeatherParams struct {
	Langcode Language
	City     *int
	Lat      *float64
	Long     *float64
}

func (p WeatherParams) values() url.Values {
	q := url.Values{}
	q.Set("langcode", string(langOrDefault(p.Langcode)))
	if p.City != nil {
		q.Set("city", strconv.Itoa(*p.City))
	}
	if p.Lat != nil {
		q.Set("lat", formatFloat(*p.Lat))
	}
	if p.Long != nil {
		q.Set("long", formatFloat(*p.Long))
	}
	return q
}

// GetWeather returns the weather for a city or a coordinate pair.
//
// GET /metapp/weather.
func (c *Client) GetWeather(ctx context.Context, p WeatherParams) (*WeatherResponse, error) {
	return do(ctx, c, request{
		method: "GET",
		path:   "/metapp/weather",
		query:  p.values(),
	}, weatherResponseSchema)
}

// UpdateUser adds or updates a user's push token and preferences. The user
// is checked locally before the request is sent.
//
// POST /metapp/user.
func (c *Client) UpdateUser(ctx context.Context, u User) error {
	if err := u.Validate(ctx); err != nil {
		return err
	}
	_, err := doRaw(ctx, c, request{
		method: "POST",
		path:   "/metapp/user",
		body:   u,
	})
	return err
}

// BookmarksParams selects the language and, optionally, a coordinate pair
// for GetBookmarks. A zero Langcode means French.
type BookmarksParams struct {
	Langcode Language
	Lat      *float64
	Long     *float64
}

func (p BookmarksParams) values() url.Values {
	q := url.Values{}
	q.Set("langcode", string(langOrDefault(p.Langcode)))
	if p.Lat != nil {
		q.Set("lat", formatFloat(*p.Lat))
	}
	if p.Long != nil {
		q.Set("long", formatFloat(*p.Long))
	}
	return q
}

// GetBookmarks returns all cities, plus the nearest one when a coordinate
// pair is given.
//
// GET /metapp/bookmarks.
func (c *Client) GetBookmarks(ctx context.Context, p BookmarksParams) (*Bookmarks, error) {
	return do(ctx, c, request{
		method: "GET",
		path:   "/metapp/bookmarks",
		query:  p.values(),
	}, bookmarksSchema)
}

// GetInterfaceTexts returns the app's interface strings for one language.
// A zero lang means French.
//
// GET /metapp/text.
func (c *Client) GetInterfaceTexts(ctx context.Context, lang Language) (map[string]any, error) {
	q := url.Values{}
	q.Set("lang", string(langOrDefault(lang)))
	out, err := do(ctx, c, request{
		method: "GET",
		path:   "/metapp/text",
		query:  q,
	}, interfaceTextsSchema)
	if err != nil || out == nil {
		return nil, err
	}
	return *out, nil
}

// ImageResponse carries an image payload. The caller owns Body and must
// Close it.
type ImageResponse struct {
	StatusCode int
	Header     http.Header
	MediaType  contenttype.MediaType
	Body       io.ReadCloser
}

// Close releases the response body.
func (r *ImageResponse) Close() error {
	return r.Body.Close()
}

// StreamImage fetches an image such as a radar frame. The response body is
// returned undecoded along with its status code and media type; the status
// is passed through as is, so callers decide how to treat non-2xx replies.
//
// GET /metapp/image/{filename}.
func (c *Client) StreamImage(ctx context.Context, filename string) (*ImageResponse, error) {
	return doImage(ctx, c, request{
		method: "GET",
		path:   "/metapp/image/" + url.PathEscape(filename),
		op:     "/metapp/image/{filename}",
	})
}

// GetObservationsMetapp returns the app-facing observation feed, as decoded
// JSON.
//
// GET /metapp/observations.
func (c *Client) GetObservationsMetapp(ctx context.Context) (any, error) {
	return doRaw(ctx, c, request{method: "GET", path: "/metapp/observations"})
}

// AddObservation submits a public user observation and returns the service's
// confirmation message. The observation is checked locally before the
// request is sent.
//
// POST /metapp/observation.
func (c *Client) AddObservation(ctx context.Context, obs InObservation) (string, error) {
	if err := obs.Validate(ctx); err != nil {
		return "", err
	}
	out, err := do(ctx, c, request{
		method: "POST",
		path:   "/metapp/observation",
		body:   obs,
	}, addObservationSchema)
	if err != nil || out == nil {
		return "", err
	}
	return *out, nil
}

func langOrDefault(l Language) Language {
	if l == "" {
		return LanguageFR
	}
	return l
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
