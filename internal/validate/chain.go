// Package validate implements the ordered, short-circuiting input checks run
// before any persistence call. The first failing check decides the single
// error message returned to the client.
package validate

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/todoapp/todo-api/internal/apperr"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email reports whether s has a basic local@domain.tld shape.
func Email(s string) bool {
	return emailPattern.MatchString(s)
}

// Chain accumulates at most one validation failure.
type Chain struct {
	err *apperr.Error
}

// New starts an empty chain.
func New() *Chain {
	return &Chain{}
}

func (c *Chain) fail(msg string) *Chain {
	if c.err == nil {
		c.err = apperr.Validation(msg)
	}
	return c
}

// Check fails with msg when ok is false.
func (c *Chain) Check(ok bool, msg string) *Chain {
	if c.err != nil || ok {
		return c
	}
	return c.fail(msg)
}

// Text checks a required free-text field: present and non-null, a string,
// and not blank after trimming.
func (c *Chain) Text(name string, f String) *Chain {
	if c.err != nil {
		return c
	}
	switch {
	case !f.present || f.null:
		return c.fail(name + " is required")
	case !f.typed:
		return c.fail(name + " must be a string")
	case strings.TrimSpace(f.Value) == "":
		return c.fail(name + " is required")
	}
	return c
}

// OptionalText accepts an absent or null field but rejects a non-string value.
func (c *Chain) OptionalText(name string, f String) *Chain {
	if c.err != nil || !f.present || f.null {
		return c
	}
	if !f.typed {
		return c.fail(name + " must be a string")
	}
	return c
}

// OptionalBool accepts an absent or null field but rejects a non-boolean value.
func (c *Chain) OptionalBool(name string, f Bool) *Chain {
	if c.err != nil || !f.present || f.null {
		return c
	}
	if !f.typed {
		return c.fail(name + " must be a boolean")
	}
	return c
}

// MaxRunes fails with msg when value is longer than n characters.
func (c *Chain) MaxRunes(value string, n int, msg string) *Chain {
	return c.Check(utf8.RuneCountInString(value) <= n, msg)
}

// ID checks that raw is a canonical UUID and stores its normalized form in
// dst. The failure message is "Invalid <name>".
func (c *Chain) ID(name, raw string, dst *string) *Chain {
	if c.err != nil {
		return c
	}
	if len(raw) != 36 {
		return c.fail("Invalid " + name)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return c.fail("Invalid " + name)
	}
	*dst = id.String()
	return c
}

// IntParam checks an optional integer query parameter. When the parameter is
// present it must be a single, non-blank base-10 integer within [min, max];
// the parsed value is stored in dst and set is flipped to true.
func (c *Chain) IntParam(q url.Values, name string, min, max int, rangeMsg string, dst *int, set *bool) *Chain {
	if c.err != nil {
		return c
	}
	values, ok := q[name]
	if !ok {
		return c
	}
	if len(values) != 1 {
		return c.fail(name + " must be a string")
	}
	raw := strings.TrimSpace(values[0])
	if raw == "" {
		return c.fail(name + " must not be empty")
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return c.fail("Invalid " + name)
	}
	if n < min || n > max {
		return c.fail(rangeMsg)
	}
	*dst = n
	*set = true
	return c
}

// Err returns the first failure, or nil.
func (c *Chain) Err() error {
	if c.err == nil {
		return nil
	}
	return c.err
}
