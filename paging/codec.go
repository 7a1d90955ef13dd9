package paging

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-faster/jx"
)

const (
	fieldContent       = "content"
	fieldNumber        = "number"
	fieldSize          = "size"
	fieldTotalElements = "totalElements"
)

// MalformedResponseError reports a page payload that is present but does not satisfy the
// page or element schema.
type MalformedResponseError struct {
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("paging: malformed response: %s: %v", e.Reason, e.Err)
	}
	return "paging: malformed response: " + e.Reason
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

func malformed(reason string, err error) *MalformedResponseError {
	return &MalformedResponseError{Reason: reason, Err: err}
}

// Decode reads a page envelope. Unknown top-level keys are skipped. The envelope must carry
// a positive size and no more elements than that size.
func Decode[T any](data []byte) (Page[T], error) {
	var (
		page       Page[T]
		hasContent bool
		hasSize    bool
	)

	d := jx.DecodeBytes(data)
	if d.Next() != jx.Object {
		return Page[T]{}, malformed("page is not a JSON object", nil)
	}

	err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		switch string(key) {
		case fieldContent:
			if d.Next() != jx.Array {
				return malformed("content is not an array", nil)
			}
			hasContent = true
			page.Content = make([]T, 0)
			index := 0
			return d.Arr(func(d *jx.Decoder) error {
				if d.Next() == jx.Null {
					return malformed(fmt.Sprintf("content[%d] is null", index), nil)
				}
				raw, err := d.Raw()
				if err != nil {
					return malformed(fmt.Sprintf("content[%d] is not valid JSON", index), err)
				}
				var item T
				if err := json.Unmarshal(raw, &item); err != nil {
					return malformed(fmt.Sprintf("content[%d] cannot be decoded", index), err)
				}
				page.Content = append(page.Content, item)
				index++
				return nil
			})
		case fieldNumber:
			n, err := d.Int()
			if err != nil {
				return malformed("number is not an integer", err)
			}
			page.Number = n
		case fieldSize:
			n, err := d.Int()
			if err != nil {
				return malformed("size is not an integer", err)
			}
			page.Size = n
			hasSize = true
		case fieldTotalElements:
			n, err := d.Int64()
			if err != nil {
				return malformed("totalElements is not an integer", err)
			}
			page.TotalElements = n
		default:
			return d.Skip()
		}
		return nil
	})
	if err != nil {
		var merr *MalformedResponseError
		if errors.As(err, &merr) {
			return Page[T]{}, merr
		}
		return Page[T]{}, malformed("invalid JSON", err)
	}

	if !hasContent {
		return Page[T]{}, malformed("content is missing", nil)
	}
	if page.Number < 0 {
		return Page[T]{}, malformed("number is negative", nil)
	}
	if !hasSize {
		return Page[T]{}, malformed("size is missing", nil)
	}
	if page.Size <= 0 {
		return Page[T]{}, malformed(fmt.Sprintf("size must be positive, got %d", page.Size), nil)
	}
	if page.TotalElements < 0 {
		return Page[T]{}, malformed("totalElements is negative", nil)
	}
	if len(page.Content) > page.Size {
		return Page[T]{}, malformed(fmt.Sprintf("content has %d elements but size is %d", len(page.Content), page.Size), nil)
	}

	return page, nil
}

// Encode writes the page envelope read by Decode.
func Encode[T any](page Page[T]) ([]byte, error) {
	items := make([][]byte, 0, len(page.Content))
	for i, item := range page.Content {
		raw, err := json.Marshal(item)
		if err != nil {
			return nil, fmt.Errorf("paging: encode content[%d]: %w", i, err)
		}
		items = append(items, raw)
	}

	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field(fieldContent, func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, raw := range items {
					e.Raw(raw)
				}
			})
		})
		e.Field(fieldNumber, func(e *jx.Encoder) {
			e.Int(page.Number)
		})
		e.Field(fieldSize, func(e *jx.Encoder) {
			e.Int(page.Size)
		})
		e.Field(fieldTotalElements, func(e *jx.Encoder) {
			e.Int64(page.TotalElements)
		})
	})

	return e.Bytes(), nil
}
