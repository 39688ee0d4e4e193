package fetcher

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
)

// ParseBaseURL validates raw as an absolute hierarchical URL that resource paths can be appended to.
func ParseBaseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, NewURLParseError(raw, err)
	}
	// Opaque URLs such as "mailto:x" have no path to extend.
	if u.Opaque != "" {
		return nil, NewConfigurationError(fmt.Sprintf("base url %q cannot have path segments appended", raw), nil)
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, NewURLParseError(raw, errors.New("url must be absolute"))
	}
	return u, nil
}

// ResolveEndpoint returns <base>/day/<day>/input. base is never modified.
func ResolveEndpoint(base *url.URL, day int) *url.URL {
	return base.JoinPath("day", strconv.Itoa(day), "input")
}
