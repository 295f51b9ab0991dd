package books

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Item is a single book held in the local collection.
type Item struct {
	ID     string
	Title  string
	Author string
	Price  float64
}

// Fields returns the editable fields of the item as a Draft.
func (i Item) Fields() Draft {
	return Draft{Title: i.Title, Author: i.Author, Price: i.Price}
}

// WithFields returns a copy of the item with the draft's fields merged in.
// The identifier is never touched.
func (i Item) WithFields(d Draft) Item {
	i.Title = d.Title
	i.Author = d.Author
	i.Price = d.Price
	return i
}

// Draft is an unconfirmed copy of a book's editable fields.
type Draft struct {
	Title  string
	Author string
	Price  float64
}

// Equal reports whether two drafts hold the same values. NaN prices compare
// equal to each other so an untouched NaN draft is not reported as changed.
func (d Draft) Equal(o Draft) bool {
	if d.Title != o.Title || d.Author != o.Author {
		return false
	}
	if math.IsNaN(d.Price) && math.IsNaN(o.Price) {
		return true
	}
	return d.Price == o.Price
}

// Field names a draft field.
type Field string

const (
	FieldTitle  Field = "title"
	FieldAuthor Field = "author"
	FieldPrice  Field = "price"
)

// AllFields lists the editable fields in display order.
func AllFields() []Field {
	return []Field{FieldTitle, FieldAuthor, FieldPrice}
}

// ParseField normalizes a user-supplied field name.
func ParseField(name string) (Field, error) {
	f := Field(strings.ToLower(strings.TrimSpace(name)))
	switch f {
	case FieldTitle, FieldAuthor, FieldPrice:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// Set stores raw into the named field. Price is parsed with ParsePrice;
// text fields are stored verbatim.
func (d *Draft) Set(field Field, raw string) error {
	switch field {
	case FieldTitle:
		d.Title = raw
	case FieldAuthor:
		d.Author = raw
	case FieldPrice:
		d.Price = ParsePrice(raw)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, string(field))
	}
	return nil
}

// Get returns the named field rendered as text.
func (d Draft) Get(field Field) string {
	switch field {
	case FieldTitle:
		return d.Title
	case FieldAuthor:
		return d.Author
	case FieldPrice:
		return FormatPrice(d.Price)
	}
	return ""
}

// Validate rejects prices that are not a non-negative number.
func (d Draft) Validate() error {
	if math.IsNaN(d.Price) || math.IsInf(d.Price, 0) || d.Price < 0 {
		return fmt.Errorf("%w: %s", ErrInvalidPrice, FormatPrice(d.Price))
	}
	return nil
}

var numericPrefix = regexp.MustCompile(`^[+-]?(Infinity|(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?)`)

// ParsePrice converts text to a price the way a lenient float parser does:
// leading whitespace is ignored and the longest numeric prefix is used, so
// "12.5abc" yields 12.5. Text with no numeric prefix yields NaN.
func ParsePrice(raw string) float64 {
	s := strings.TrimLeft(raw, " \t\n\r\v\f")
	m := numericPrefix.FindString(s)
	if m == "" {
		return math.NaN()
	}
	switch strings.TrimLeft(m, "+") {
	case "Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		// Exponent overflow still carries a usable value (±Inf).
		if errors.Is(err, strconv.ErrRange) {
			return v
		}
		return math.NaN()
	}
	return v
}

// FormatPrice renders a price for display and for editing.
func FormatPrice(p float64) string {
	switch {
	case math.IsNaN(p):
		return "NaN"
	case math.IsInf(p, 1):
		return "Infinity"
	case math.IsInf(p, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(p, 'f', -1, 64)
}
