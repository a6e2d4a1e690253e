// Package guard decides whether a page request may proceed, given the
// request path and whether the caller holds a valid session.
//
// Paths are classified against a static table of public patterns. Anything
// not listed is protected. Public pages (login, password reset) are for
// anonymous visitors only, so a signed-in administrator is sent to the
// dashboard instead.
package guard

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/gobwas/glob"
)

type Class int

const (
	Protected Class = iota
	Public
)

func (c Class) String() string {
	if c == Public {
		return "public"
	}
	return "protected"
}

type Decision int

const (
	Allow Decision = iota
	RedirectLogin
	RedirectHome
)

func (d Decision) String() string {
	switch d {
	case RedirectLogin:
		return "redirect-login"
	case RedirectHome:
		return "redirect-home"
	default:
		return "allow"
	}
}

// Decide maps a classified path and session state to an outcome.
func Decide(class Class, authenticated bool) Decision {
	switch {
	case authenticated && class == Public:
		return RedirectHome
	case !authenticated && class == Protected:
		return RedirectLogin
	default:
		return Allow
	}
}

var ErrInvalidPath = errors.New("guard: invalid request path")

// Matcher matches request paths against glob patterns. A single `*` stays
// within one path segment; `**` spans segments.
type Matcher struct {
	patterns []string
	globs    []glob.Glob
}

func NewMatcher(patterns ...string) (*Matcher, error) {
	m := &Matcher{}
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("guard: compile pattern %q: %w", p, err)
		}
		m.patterns = append(m.patterns, p)
		m.globs = append(m.globs, g)
	}
	return m, nil
}

func (m *Matcher) Match(p string) bool {
	if m == nil {
		return false
	}
	for _, g := range m.globs {
		if g.Match(p) {
			return true
		}
	}
	return false
}

func (m *Matcher) Patterns() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.patterns...)
}

// Policy is the route classification table.
type Policy struct {
	public *Matcher
}

func NewPolicy(public ...string) (*Policy, error) {
	m, err := NewMatcher(public...)
	if err != nil {
		return nil, err
	}
	return &Policy{public: m}, nil
}

// Classify returns Public when p matches a public pattern and Protected
// otherwise. Relative or empty paths are rejected so callers can fail closed.
func (p *Policy) Classify(reqPath string) (Class, error) {
	if p == nil {
		return Protected, errors.New("guard: nil policy")
	}
	clean, err := Normalize(reqPath)
	if err != nil {
		return Protected, err
	}
	if p.public.Match(clean) {
		return Public, nil
	}
	return Protected, nil
}

// Normalize cleans an absolute request path and drops a trailing slash so
// "/login/" and "/login" classify the same way.
func Normalize(reqPath string) (string, error) {
	if reqPath == "" || !strings.HasPrefix(reqPath, "/") {
		return "", ErrInvalidPath
	}
	return path.Clean(reqPath), nil
}
