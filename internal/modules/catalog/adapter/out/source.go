package out

import (
	"net/url"
	"strings"

	catalogout "niamverse/internal/modules/catalog/port/out"
)

// NewSource returns an HTTP source for http(s) locations and a file source otherwise.
func NewSource(location string) catalogout.Source {
	if u, err := url.Parse(location); err == nil {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return NewHTTPSource(location, nil)
		case "file":
			return NewFileSource(u.Path)
		}
	}
	return NewFileSource(location)
}

// IsRemote reports whether location would be fetched over the network.
func IsRemote(location string) bool {
	_, ok := NewSource(location).(*HTTPSource)
	return ok
}
