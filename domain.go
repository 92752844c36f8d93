package shopcrawl

import (
	"net/url"
	"strings"
)

// Domain is a normalized origin: scheme plus host, no path, no
// trailing slash. One Domain owns exactly one crawl frontier.
type Domain string

// NormalizeDomain converts a bare host or full origin into a Domain.
// Hosts without a scheme default to https.
func NormalizeDomain(raw string) (Domain, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", Errorf(EINVALID, "domain required")
	}
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		s = "https://" + s
	}
	u, err := url.Parse(strings.TrimRight(s, "/"))
	if err != nil || u.Host == "" {
		return "", Errorf(EINVALID, "invalid domain %q", raw)
	}
	return Domain(u.Scheme + "://" + u.Host), nil
}

// Origin extracts the scheme+host origin of a URL as a Domain.
func Origin(rawURL string) (Domain, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", Errorf(EINVALID, "invalid URL %q", rawURL)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", Errorf(EINVALID, "URL %q has no origin", rawURL)
	}
	return Domain(u.Scheme + "://" + u.Host), nil
}

// Host returns the host portion of the domain.
func (d Domain) Host() string {
	u, err := url.Parse(string(d))
	if err != nil {
		return ""
	}
	return u.Host
}

// String returns the domain as a string.
func (d Domain) String() string {
	return string(d)
}

// Contains reports whether rawURL has the same origin as the domain.
// This is the same-domain policy: a link is followed only if its
// resolved origin matches the crawl's starting origin.
func (d Domain) Contains(rawURL string) bool {
	origin, err := Origin(rawURL)
	if err != nil {
		return false
	}
	return origin == d
}
