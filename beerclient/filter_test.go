package beerclient

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GooseZen/spring-6-resttemplate/beer"
)

func TestListFilter_Encode(t *testing.T) {
	tests := []struct {
		name   string
		filter *ListFilter
		want   string
	}{
		{name: "nil filter", filter: nil, want: ""},
		{name: "empty filter", filter: &ListFilter{}, want: ""},
		{
			name: "all fields in fixed order",
			filter: &ListFilter{
				PageSize:      Ptr(25),
				PageNumber:    Ptr(0),
				ShowInventory: Ptr(true),
				Style:         Ptr(beer.StyleIPA),
				Name:          Ptr("ALE"),
			},
			want: "beerName=ALE&beerStyle=IPA&showInventory=true&pageNumber=0&pageSize=25",
		},
		{
			name:   "subset keeps relative order",
			filter: &ListFilter{PageSize: Ptr(10), Name: Ptr("Galaxy")},
			want:   "beerName=Galaxy&pageSize=10",
		},
		{
			name:   "values are escaped",
			filter: &ListFilter{Name: Ptr("Pale & Hoppy")},
			want:   "beerName=Pale+%26+Hoppy",
		},
		{
			name:   "false is sent",
			filter: &ListFilter{ShowInventory: Ptr(false)},
			want:   "showInventory=false",
		},
		{
			name:   "empty name is sent",
			filter: &ListFilter{Name: Ptr("")},
			want:   "beerName=",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.encode())
		})
	}
}

func TestListFilter_Validate(t *testing.T) {
	tests := []struct {
		name      string
		filter    *ListFilter
		wantField string
	}{
		{name: "nil filter", filter: nil},
		{name: "empty filter", filter: &ListFilter{}},
		{name: "valid filter", filter: &ListFilter{Style: Ptr(beer.StylePaleAle), PageNumber: Ptr(0), PageSize: Ptr(1)}},
		{name: "unknown style", filter: &ListFilter{Style: Ptr(beer.Style("LAMBIC"))}, wantField: "beerStyle"},
		{name: "negative page number", filter: &ListFilter{PageNumber: Ptr(-1)}, wantField: "pageNumber"},
		{name: "zero page size", filter: &ListFilter{PageSize: Ptr(0)}, wantField: "pageSize"},
		{name: "negative page size", filter: &ListFilter{PageSize: Ptr(-5)}, wantField: "pageSize"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.filter.validate("list")
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var argErr *InvalidArgumentError
			require.True(t, errors.As(err, &argErr), "expected *InvalidArgumentError, got %v", err)
			assert.Equal(t, "list", argErr.Op)
			assert.Equal(t, tt.wantField, argErr.Field)
		})
	}
}
