// Package naming derives the identifier forms used across generated files
// from a single model name.
//
// The conversions are deliberately literal. Spaces, digits and non-ASCII
// characters pass through untouched, so "order item" stays "order item" in
// every form. Model names are expected to be a single CamelCase or
// hyphenated word. Names that would leave the services directory when used
// as a path are not Valid.
package naming

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Variants holds every form of a model name that templates refer to.
type Variants struct {
	Name   string // as entered
	Pascal string // type and file names, e.g. "OrderItem"
	Kebab  string // directory names, e.g. "order-item"
	Lower  string // variables, routes and database names, e.g. "orderitem"
}

// Derive computes all variants of name.
func Derive(name string) Variants {
	return Variants{
		Name:   name,
		Pascal: Pascal(name),
		Kebab:  Kebab(name),
		Lower:  Lower(name),
	}
}

// Pascal upper-cases the first rune of s and the first rune following each
// hyphen, and drops the hyphens. Nothing else is touched: "orderitem" stays
// "Orderitem".
func Pascal(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	upper := true
	for _, r := range s {
		if r == '-' {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

var reBoundary = regexp.MustCompile(`([a-z])([A-Z])`)

// Kebab puts a hyphen between every lowercase letter directly followed by an
// uppercase letter and lowercases the result.
func Kebab(s string) string {
	return strings.ToLower(reBoundary.ReplaceAllString(s, "$1-$2"))
}

// Lower lowercases s.
func Lower(s string) string {
	return strings.ToLower(s)
}

// Valid reports whether s is usable as a model name at all. The kebab form
// names a directory, so path separators and "." or ".." are rejected.
func Valid(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || !utf8.ValidString(s) {
		return false
	}
	return !strings.ContainsAny(s, `/\`) && s != "." && !strings.Contains(s, "..")
}
