package fetcher

import (
	"log/slog"

	"resty.dev/v3"
)

const userAgent = "inputfetcher"

// NewHTTPClient creates an HTTP client that sends the session credential on every request.
// Retries are disabled: a rejected credential must surface on the first attempt.
func NewHTTPClient(session string) *resty.Client {
	return resty.New().
		SetHeader("Accept", "text/plain").
		SetHeader("User-Agent", userAgent).
		// Set verbatim: the credential is opaque and must not be re-quoted by cookie sanitising.
		SetHeader("Cookie", "session="+session).
		SetRetryCount(0).
		AddResponseMiddleware(logResponse)
}

// logResponse records each completed round trip for observability
func logResponse(_ *resty.Client, r *resty.Response) error {
	slog.Debug("remote response",
		"url", r.Request.URL,
		"status_code", r.StatusCode(),
		"duration", r.Duration())
	return nil
}
