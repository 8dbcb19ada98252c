// Package jurisdiction defines the lottery-issuing regions the service can rank
// games for, along with their media and deep-link URL conventions.
package jurisdiction

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrUnsupported is returned for jurisdiction codes outside the registry.
var ErrUnsupported = errors.New("unsupported jurisdiction")

// Code is the upstream state code, e.g. "NY".
type Code string

const (
	NY Code = "NY"
	FL Code = "FL"
)

func (c Code) String() string { return string(c) }

// Jurisdiction describes one supported region.
type Jurisdiction struct {
	Code Code   `json:"code" toml:"code"`
	Name string `json:"name" toml:"name"`
	// MediaBaseURL is prepended to upstream image paths. Empty means upstream
	// already supplies absolute image URLs.
	MediaBaseURL string `json:"-" toml:"media_base_url"`
	// LinkBaseURL is the official game page prefix; the game number is appended.
	LinkBaseURL string `json:"-" toml:"link_base_url"`
}

// RewritesImages reports whether upstream image paths are relative for this jurisdiction.
func (j Jurisdiction) RewritesImages() bool {
	return j.MediaBaseURL != ""
}

// ImageURL returns the absolute image URL for an upstream gameImage value.
func (j Jurisdiction) ImageURL(raw string) string {
	if !j.RewritesImages() {
		return raw
	}
	return j.MediaBaseURL + raw
}

// Link builds the official game page URL for a jurisdiction-issued game number.
func (j Jurisdiction) Link(number string) (string, error) {
	if j.LinkBaseURL == "" {
		return "", fmt.Errorf("%w: %s has no game link", ErrUnsupported, j.Code)
	}
	return j.LinkBaseURL + url.QueryEscape(number), nil
}

// ParseCode normalizes user input into a Code without checking support.
func ParseCode(raw string) Code {
	return Code(strings.ToUpper(strings.TrimSpace(raw)))
}
