// Package location turns library Location URLs into local filesystem paths.
package location

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	// ErrEmpty is returned for a blank Location.
	ErrEmpty = errors.New("location is empty")
	// ErrUnsupportedScheme is returned for URLs that do not name a local file.
	ErrUnsupportedScheme = errors.New("location scheme is not file")
	// ErrRemoteHost is returned for file URLs that point at another machine.
	ErrRemoteHost = errors.New("location host is not local")
)

var windowsDrivePath = regexp.MustCompile(`^/[A-Za-z]:/`)

// Rewrite maps a decoded path prefix to a replacement prefix.
type Rewrite struct {
	From string
	To   string
}

// Resolver converts Location values to local paths. The zero value performs
// no prefix rewriting.
type Resolver struct {
	Rewrites []Rewrite
}

// NewResolver returns a resolver applying rewrites in order.
func NewResolver(rewrites []Rewrite) *Resolver {
	cp := make([]Rewrite, 0, len(rewrites))
	for _, rw := range rewrites {
		if strings.TrimSpace(rw.From) == "" {
			continue
		}
		cp = append(cp, rw)
	}
	return &Resolver{Rewrites: cp}
}

// Resolve decodes raw into a local path. It never touches the filesystem and
// never fetches remote content.
func (r *Resolver) Resolve(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmpty
	}

	var path string
	if strings.HasPrefix(raw, "/") {
		unescaped, err := url.PathUnescape(raw)
		if err != nil {
			return "", fmt.Errorf("decode location: %w", err)
		}
		path = unescaped
	} else {
		u, err := url.Parse(raw)
		if err != nil {
			return "", fmt.Errorf("parse location: %w", err)
		}
		if !strings.EqualFold(u.Scheme, "file") {
			return "", fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
		}
		if host := strings.ToLower(u.Host); host != "" && host != "localhost" {
			return "", fmt.Errorf("%w: %q", ErrRemoteHost, u.Host)
		}
		path = u.Path
		if path == "" {
			return "", ErrEmpty
		}
		if windowsDrivePath.MatchString(path) {
			path = path[1:]
		}
	}

	return r.rewrite(path), nil
}

func (r *Resolver) rewrite(path string) string {
	if r == nil {
		return path
	}
	for _, rw := range r.Rewrites {
		if strings.HasPrefix(path, rw.From) {
			return filepath.FromSlash(rw.To + strings.TrimPrefix(path, rw.From))
		}
	}
	return path
}
