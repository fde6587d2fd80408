package meteolux

// Package meteolux is a typed client for the MeteoLux weather service API.
//
// A Client is an explicit resource: build one with New, share it across
// goroutines, and release it with Close. Every endpoint method takes a
// context and funnels through one execution path, so timeouts, logging,
// metrics and the error taxonomy behave the same everywhere.
//
// Responses with a documented shape are validated before they reach the
// caller; a payload that drifts from that shape surfaces as an APIError of
// KindSchemaValidation carrying schema.Issues, never as a partially filled
// struct. Endpoints without a documented shape return decoded JSON as is.
//
// Typical usage:
//
//	c, err := meteolux.New()
//	defer c.Close()
//
//	w, err := c.GetWeather(ctx, meteolux.WeatherParams{Langcode: meteolux.LanguageEN})
//
//	var apiErr *meteolux.APIError
//	if errors.As(err, &apiErr) && apiErr.Kind == meteolux.KindNotFound { ... }
