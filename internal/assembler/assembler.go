// Package assembler merges a title, a date and a generated body into a fixed document template.
package assembler

import (
	"errors"
	"strings"
)

// Placeholders recognised in templates. Substitution happens in the order
// title, date, body so that placeholder text inside the body is never expanded.
const (
	PlaceholderTitle = "@@TITLE@@"
	PlaceholderDate  = "@@DATE@@"
	PlaceholderBody  = "@@BODY@@"
)

var ErrNoBodyPlaceholder = errors.New("template has no " + PlaceholderBody + " placeholder")

// Assemble substitutes title, date and body into tmpl. The body is inserted
// verbatim; its markup is not checked.
func Assemble(tmpl, title, date, body string) (string, error) {
	if !strings.Contains(tmpl, PlaceholderBody) {
		return "", ErrNoBodyPlaceholder
	}

	out := strings.ReplaceAll(tmpl, PlaceholderTitle, title)
	out = strings.ReplaceAll(out, PlaceholderDate, date)
	out = strings.ReplaceAll(out, PlaceholderBody, body)
	return out, nil
}
