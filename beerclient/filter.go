package beerclient

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/GooseZen/spring-6-resttemplate/beer"
)

// ListFilter narrows a listing. Nil fields are left out of the request.
type ListFilter struct {
	// Name matches beer names per server semantics.
	Name  *string
	Style *beer.Style
	// ShowInventory asks the server to populate QuantityOnHand.
	ShowInventory *bool
	// PageNumber is 0-based.
	PageNumber *int
	PageSize   *int
}

// Ptr returns a pointer to v, for filling ListFilter literals.
func Ptr[T any](v T) *T {
	return &v
}

func (f *ListFilter) validate(op string) error {
	if f == nil {
		return nil
	}
	if f.Style != nil && !f.Style.IsValid() {
		return &InvalidArgumentError{Op: op, Field: "beerStyle", Reason: "unknown style " + strconv.Quote(string(*f.Style))}
	}
	if f.PageNumber != nil && *f.PageNumber < 0 {
		return &InvalidArgumentError{Op: op, Field: "pageNumber", Reason: "must not be negative"}
	}
	if f.PageSize != nil && *f.PageSize <= 0 {
		return &InvalidArgumentError{Op: op, Field: "pageSize", Reason: "must be positive"}
	}
	return nil
}

// encode renders the query string. Parameters keep the order beerName, beerStyle,
// showInventory, pageNumber, pageSize; url.Values would sort them.
func (f *ListFilter) encode() string {
	if f == nil {
		return ""
	}

	var params []string
	add := func(key, value string) {
		params = append(params, url.QueryEscape(key)+"="+url.QueryEscape(value))
	}

	if f.Name != nil {
		add("beerName", *f.Name)
	}
	if f.Style != nil {
		add("beerStyle", f.Style.String())
	}
	if f.ShowInventory != nil {
		add("showInventory", strconv.FormatBool(*f.ShowInventory))
	}
	if f.PageNumber != nil {
		add("pageNumber", strconv.Itoa(*f.PageNumber))
	}
	if f.PageSize != nil {
		add("pageSize", strconv.Itoa(*f.PageSize))
	}

	return strings.Join(params, "&")
}
