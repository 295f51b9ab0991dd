package remote

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/five82/folio/internal/books"
)

// BookID is the remote identifier. The list endpoint may send it as a JSON
// string or number; it is kept as opaque text either way.
type BookID string

// UnmarshalJSON accepts string and numeric identifiers.
func (id *BookID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = BookID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("book id: %w", err)
	}
	*id = BookID(n.String())
	return nil
}

// Price is a price on the wire. NaN and infinities have no JSON form and
// are sent as null; a null price decodes as zero.
type Price float64

// MarshalJSON implements json.Marshaler.
func (p Price) MarshalJSON() ([]byte, error) {
	f := float64(p)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(f, 'g', -1, 64)), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Price) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*p = Price(f)
	return nil
}

// Book mirrors an element of the GET /books response. The identifier key
// is "_id" here, unlike the create response.
type Book struct {
	ID     BookID `json:"_id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Price  Price  `json:"price"`
}

// Item converts the wire form to the local type.
func (b Book) Item() books.Item {
	return books.Item{
		ID:     string(b.ID),
		Title:  b.Title,
		Author: b.Author,
		Price:  float64(b.Price),
	}
}

// BookPayload is the request body for POST /books and PUT /books/{id}.
type BookPayload struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Price  Price  `json:"price"`
}

// PayloadFor builds a request body from a draft.
func PayloadFor(d books.Draft) BookPayload {
	return BookPayload{Title: d.Title, Author: d.Author, Price: Price(d.Price)}
}

// CreateResponse mirrors the POST /books response, which names the new
// identifier "id".
type CreateResponse struct {
	ID BookID `json:"id"`
}
