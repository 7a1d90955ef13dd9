package beer

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(b *Beer)
		wantFields []string
	}{
		{name: "valid", mutate: func(b *Beer) {}},
		{name: "valid without id", mutate: func(b *Beer) { *b = b.WithoutID() }},
		{name: "valid without quantity", mutate: func(b *Beer) { b.QuantityOnHand = nil }},
		{name: "zero price", mutate: func(b *Beer) { b.Price = decimal.Zero }},
		{name: "missing name", mutate: func(b *Beer) { b.Name = "" }, wantFields: []string{"beerName"}},
		{name: "missing style", mutate: func(b *Beer) { b.Style = "" }, wantFields: []string{"beerStyle"}},
		{name: "unknown style", mutate: func(b *Beer) { b.Style = "CIDER" }, wantFields: []string{"beerStyle"}},
		{name: "negative price", mutate: func(b *Beer) { b.Price = decimal.RequireFromString("-0.01") }, wantFields: []string{"price"}},
		{name: "negative quantity", mutate: func(b *Beer) { b.QuantityOnHand = intPtr(-1) }, wantFields: []string{"quantityOnHand"}},
		{
			name:       "several violations",
			mutate:     func(b *Beer) { b.Name = ""; b.UPC = "" },
			wantFields: []string{"beerName", "upc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mangoBobs()
			tt.mutate(&b)

			err := b.Validate()
			if len(tt.wantFields) == 0 {
				require.NoError(t, err)
				return
			}

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected *ValidationError, got %T", err)
			assert.Equal(t, tt.wantFields, verr.FieldNames())
			assert.Contains(t, verr.Error(), "invalid beer")
		})
	}
}
