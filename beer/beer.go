package beer

import (
	"encoding/json"
	"fmt"

	"github.com/go-faster/jx"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Beer is the resource served by the beer API.
type Beer struct {
	// ID is assigned by the server. The zero UUID means "not yet created".
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"beerName" validate:"required"`
	Style          Style           `json:"beerStyle" validate:"required,beerstyle"`
	Price          decimal.Decimal `json:"price" validate:"gte=0"`
	QuantityOnHand *int            `json:"quantityOnHand" validate:"omitempty,gte=0"`
	UPC            string          `json:"upc" validate:"required"`
}

// HasID reports whether the server has assigned an identity.
func (b Beer) HasID() bool {
	return b.ID != uuid.Nil
}

// WithoutID returns a copy with the identity cleared, as sent on creation.
func (b Beer) WithoutID() Beer {
	b.ID = uuid.Nil
	return b
}

// Equal compares every field, using decimal equality for the price.
func (b Beer) Equal(other Beer) bool {
	return b.ID == other.ID && b.EqualIgnoringID(other)
}

// EqualIgnoringID compares every field except the server-assigned ID.
func (b Beer) EqualIgnoringID(other Beer) bool {
	if b.Name != other.Name || b.Style != other.Style || b.UPC != other.UPC {
		return false
	}
	if !b.Price.Equal(other.Price) {
		return false
	}
	switch {
	case b.QuantityOnHand == nil && other.QuantityOnHand == nil:
		return true
	case b.QuantityOnHand == nil || other.QuantityOnHand == nil:
		return false
	default:
		return *b.QuantityOnHand == *other.QuantityOnHand
	}
}

type beerOut struct {
	ID             *uuid.UUID  `json:"id,omitempty"`
	BeerName       string      `json:"beerName"`
	BeerStyle      Style       `json:"beerStyle,omitempty"`
	Price          json.Number `json:"price"`
	QuantityOnHand *int        `json:"quantityOnHand"`
	UPC            string      `json:"upc"`
}

type beerIn struct {
	ID             *uuid.UUID       `json:"id"`
	BeerName       *string          `json:"beerName"`
	Name           *string          `json:"name"`
	BeerStyle      *Style           `json:"beerStyle"`
	Style          *Style           `json:"style"`
	Price          *decimal.Decimal `json:"price"`
	QuantityOnHand *int             `json:"quantityOnHand"`
	UPC            *string          `json:"upc"`
}

// MarshalJSON writes the API representation. The id is omitted while unassigned and the
// price is written as a JSON number.
func (b Beer) MarshalJSON() ([]byte, error) {
	out := beerOut{
		BeerName:       b.Name,
		BeerStyle:      b.Style,
		Price:          json.Number(b.Price.String()),
		QuantityOnHand: b.QuantityOnHand,
		UPC:            b.UPC,
	}
	if b.HasID() {
		id := b.ID
		out.ID = &id
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads the API representation, accepting the short field aliases.
func (b *Beer) UnmarshalJSON(data []byte) error {
	if next := jx.DecodeBytes(data).Next(); next != jx.Object {
		return fmt.Errorf("decode beer: expected object, got %s", next)
	}

	var in beerIn
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("decode beer: %w", err)
	}

	decoded := Beer{
		QuantityOnHand: in.QuantityOnHand,
	}
	if in.ID != nil {
		decoded.ID = *in.ID
	}
	switch {
	case in.BeerName != nil:
		decoded.Name = *in.BeerName
	case in.Name != nil:
		decoded.Name = *in.Name
	}
	switch {
	case in.BeerStyle != nil:
		decoded.Style = *in.BeerStyle
	case in.Style != nil:
		decoded.Style = *in.Style
	}
	if in.Price != nil {
		decoded.Price = *in.Price
	}
	if in.UPC != nil {
		decoded.UPC = *in.UPC
	}

	*b = decoded
	return nil
}
