package fetcher

import (
	"context"
	"io"
	"net/url"

	"resty.dev/v3"
)

// Remote performs the authenticated GET against the puzzle server.
type Remote struct {
	client *resty.Client
}

// NewRemote wraps client. The client is expected to carry the session header already.
func NewRemote(client *resty.Client) *Remote {
	return &Remote{client: client}
}

// Fetch issues a single GET for endpoint and returns the body text on a 2xx response.
func (r *Remote) Fetch(ctx context.Context, endpoint *url.URL) (string, error) {
	// The body is read here rather than by resty, which treats a truncated
	// body as complete.
	resp, err := r.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(endpoint.String())
	if err != nil {
		return "", NewHTTPError(err)
	}
	defer func() {
		if resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	if !resp.IsSuccess() {
		return "", NewRejectedError(resp.StatusCode(), resp.Status())
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", NewHTTPError(err)
	}
	return string(body), nil
}
