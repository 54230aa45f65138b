// Package validation holds advisory checks that go beyond the structural
// rules enforced by the feed model.
package validation

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
)

var (
	ErrEmptyURL       = errors.New("URL cannot be empty")
	ErrURLTooLong     = errors.New("URL too long")
	ErrInvalidURLChar = errors.New("URL contains invalid characters")
	ErrNotAbsolute    = errors.New("URL must be absolute and use http or https")
	ErrLocalhost      = errors.New("localhost URLs are not permitted")
	ErrPrivateIP      = errors.New("private IP addresses are not permitted")
)

// URLValidator checks the URL-valued fields of a feed.
type URLValidator struct {
	// AllowLocalhost determines if localhost URLs are permitted
	AllowLocalhost bool
	// AllowPrivateIPs determines if private IP addresses are permitted
	AllowPrivateIPs bool
	// MaxLength is the maximum allowed URL length
	MaxLength int
}

// NewURLValidator returns a validator that rejects local and private hosts.
func NewURLValidator() *URLValidator {
	return &URLValidator{
		AllowLocalhost:  false,
		AllowPrivateIPs: false,
		MaxLength:       2048,
	}
}

// NewPermissiveURLValidator returns a validator for feeds served from a
// development machine.
func NewPermissiveURLValidator() *URLValidator {
	return &URLValidator{
		AllowLocalhost:  true,
		AllowPrivateIPs: true,
		MaxLength:       2048,
	}
}

// Validate reports why raw is not a usable absolute http(s) URL, or nil.
// Unlike a browser address bar, a missing scheme is an error: URLs inside a
// feed are never completed.
func (v *URLValidator) Validate(raw string) error {
	_, err := v.parse(raw)
	return err
}

// Normalize validates raw and returns its canonical string form.
func (v *URLValidator) Normalize(raw string) (string, error) {
	u, err := v.parse(raw)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

func (v *URLValidator) parse(raw string) (*url.URL, error) {
	input := strings.TrimSpace(raw)

	if input == "" {
		return nil, ErrEmptyURL
	}
	if v.MaxLength > 0 && len(input) > v.MaxLength {
		return nil, fmt.Errorf("%w (max %d characters)", ErrURLTooLong, v.MaxLength)
	}
	if strings.ContainsAny(input, "<>\"'` ") {
		return nil, ErrInvalidURLChar
	}

	parsedURL, err := url.Parse(input)
	if err != nil {
		return nil, fmt.Errorf("invalid URL format: %w", err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return nil, ErrNotAbsolute
	}
	if parsedURL.Host == "" {
		return nil, fmt.Errorf("%w: missing hostname", ErrNotAbsolute)
	}

	if err := v.validateHost(parsedURL.Hostname()); err != nil {
		return nil, err
	}

	if strings.Contains(parsedURL.RawQuery, "javascript:") {
		return nil, fmt.Errorf("suspicious query parameters detected")
	}

	return parsedURL, nil
}

func (v *URLValidator) validateHost(hostname string) error {
	if !v.AllowLocalhost && isLocalhost(hostname) {
		return ErrLocalhost
	}

	if !v.AllowPrivateIPs {
		if ip := net.ParseIP(hostname); ip != nil && isPrivateIP(ip) {
			return ErrPrivateIP
		}
	}

	return nil
}

func isLocalhost(hostname string) bool {
	hostname = strings.ToLower(hostname)
	return hostname == "localhost" ||
		hostname == "127.0.0.1" ||
		hostname == "::1" ||
		strings.HasSuffix(hostname, ".localhost")
}

// isPrivateIP covers RFC 1918, loopback, link-local and IPv6 ULA ranges.
func isPrivateIP(ip net.IP) bool {
	return ip.IsPrivate() || ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsUnspecified()
}
