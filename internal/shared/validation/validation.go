// Package validation holds the primitives shared by the planet parameter validators:
// numeric range tables, presence checks and an ordered violation collector.
package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"planet-designer/internal/shared/errors"
)

// Result is the non-failing outcome of validating a parameter set
type Result struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors"`
}

// Range is an inclusive numeric bound with the unit used in messages
type Range struct {
	Min  float64
	Max  float64
	Unit string
}

func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

func (r Range) String() string {
	s := fmt.Sprintf("between %s and %s", FormatNumber(r.Min), FormatNumber(r.Max))
	switch r.Unit {
	case "":
		return s
	case "%":
		return s + "%"
	default:
		return s + " " + r.Unit
	}
}

// FormatNumber renders a bound in its shortest exact form (1e+20, 0.1, 15000)
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// IsNumber reports whether v is present and finite
func IsNumber(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}

// NumberFromJSON decodes one JSON field value. An absent or null value is nil; any
// other value that is not a JSON number becomes NaN so it fails IsNumber instead of
// failing the whole decode.
func NumberFromJSON(raw json.RawMessage) *float64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	v := math.NaN()
	if err := json.Unmarshal(raw, &v); err != nil {
		v = math.NaN()
	}
	return &v
}

// Float returns a pointer to v, for building parameter literals
func Float(v float64) *float64 {
	return &v
}

// Collector accumulates violations in the order checks are run
type Collector struct {
	violations []string
}

func (c *Collector) Add(message string) {
	c.violations = append(c.violations, message)
}

func (c *Collector) Addf(format string, args ...interface{}) {
	c.violations = append(c.violations, fmt.Sprintf(format, args...))
}

// Number runs the presence, optional positivity and range checks for one field.
// A field that is not a number gets no further checks.
func (c *Collector) Number(label string, v *float64, r Range, positive bool) {
	if !IsNumber(v) {
		c.Addf("%s must be a number", label)
		return
	}
	if positive && *v <= 0 {
		c.Addf("%s must be positive", label)
	}
	if !r.Contains(*v) {
		c.Addf("%s must be %s", label, r)
	}
}

func (c *Collector) Len() int {
	return len(c.violations)
}

func (c *Collector) Result() Result {
	errs := make([]string, len(c.violations))
	copy(errs, c.violations)
	return Result{
		IsValid: len(errs) == 0,
		Errors:  errs,
	}
}

// Err returns nil when nothing was collected, otherwise a *errors.ValidationError
func (c *Collector) Err() error {
	if len(c.violations) == 0 {
		return nil
	}
	return errors.NewValidation(c.violations)
}
