package beer

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func mangoBobs() Beer {
	return Beer{
		ID:             uuid.MustParse("5d1c2f0c-9b43-4e43-a1a6-5d8b0ad6c41e"),
		Name:           "Mango Bobs",
		Style:          StyleIPA,
		Price:          decimal.RequireFromString("10.99"),
		QuantityOnHand: intPtr(500),
		UPC:            "123245",
	}
}

func TestBeerMarshalOmitsUnassignedID(t *testing.T) {
	data, err := json.Marshal(mangoBobs().WithoutID())
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))

	assert.NotContains(t, fields, "id")
	assert.Equal(t, "Mango Bobs", fields["beerName"])
	assert.Equal(t, "IPA", fields["beerStyle"])
	assert.Equal(t, 10.99, fields["price"])
	assert.Equal(t, float64(500), fields["quantityOnHand"])
	assert.Equal(t, "123245", fields["upc"])
}

func TestBeerMarshalIncludesAssignedID(t *testing.T) {
	b := mangoBobs()
	data, err := json.Marshal(b)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"id":"`+b.ID.String()+`"`)
}

func TestBeerRoundTrip(t *testing.T) {
	b := mangoBobs()
	data, err := json.Marshal(b)
	require.NoError(t, err)

	var decoded Beer
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, b.Equal(decoded), "got %+v", decoded)
}

func TestBeerUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		check   func(t *testing.T, b Beer)
		wantErr bool
	}{
		{
			name:    "long field names",
			payload: `{"id":"5d1c2f0c-9b43-4e43-a1a6-5d8b0ad6c41e","beerName":"Mango Bobs","beerStyle":"IPA","price":10.99,"quantityOnHand":500,"upc":"123245"}`,
			check: func(t *testing.T, b Beer) {
				assert.True(t, mangoBobs().Equal(b))
			},
		},
		{
			name:    "short aliases and string price",
			payload: `{"name":"Galaxy Cat","style":"PALE_ALE","price":"12.50","upc":"0631234200036"}`,
			check: func(t *testing.T, b Beer) {
				assert.Equal(t, "Galaxy Cat", b.Name)
				assert.Equal(t, StylePaleAle, b.Style)
				assert.True(t, decimal.RequireFromString("12.5").Equal(b.Price))
				assert.Nil(t, b.QuantityOnHand)
				assert.False(t, b.HasID())
			},
		},
		{
			name:    "unknown fields ignored",
			payload: `{"beerName":"Crank","beerStyle":"ALE","price":1,"upc":"1","version":3,"createdDate":"2024-01-01T00:00:00"}`,
			check: func(t *testing.T, b Beer) {
				assert.Equal(t, "Crank", b.Name)
			},
		},
		{
			name:    "null quantity",
			payload: `{"beerName":"Crank","beerStyle":"ALE","price":1,"quantityOnHand":null,"upc":"1"}`,
			check: func(t *testing.T, b Beer) {
				assert.Nil(t, b.QuantityOnHand)
			},
		},
		{
			name:    "invalid style",
			payload: `{"beerName":"Crank","beerStyle":"CIDER","price":1,"upc":"1"}`,
			wantErr: true,
		},
		{
			name:    "non-numeric price",
			payload: `{"beerName":"Crank","beerStyle":"ALE","price":"cheap","upc":"1"}`,
			wantErr: true,
		},
		{
			name:    "null",
			payload: `null`,
			wantErr: true,
		},
		{
			name:    "array",
			payload: `[{"beerName":"Crank"}]`,
			wantErr: true,
		},
		{
			name:    "string",
			payload: `"Crank"`,
			wantErr: true,
		},
		{
			name:    "invalid id",
			payload: `{"id":"not-a-uuid","beerName":"Crank","beerStyle":"ALE","price":1,"upc":"1"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b Beer
			err := json.Unmarshal([]byte(tt.payload), &b)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, b)
		})
	}
}

func TestBeerEqualIgnoringID(t *testing.T) {
	a := mangoBobs()
	b := mangoBobs()
	b.ID = uuid.New()
	b.Price = decimal.RequireFromString("10.990")

	assert.True(t, a.EqualIgnoringID(b))
	assert.False(t, a.Equal(b))

	b.QuantityOnHand = nil
	assert.False(t, a.EqualIgnoringID(b))
}

func TestParseStyle(t *testing.T) {
	for _, s := range Styles() {
		parsed, err := ParseStyle(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
		assert.True(t, parsed.IsValid())
	}

	_, err := ParseStyle("ipa")
	assert.Error(t, err)
	assert.False(t, Style("CIDER").IsValid())
}
