package paging

// Page is one slice of a server-side result set.
type Page[T any] struct {
	// Content holds the elements in server order.
	Content []T
	// Number is the 0-based page index.
	Number int
	// Size is the requested page size.
	Size int
	// TotalElements counts every matching element server-side.
	TotalElements int64
}

// New builds a page, mirroring the server's envelope.
func New[T any](content []T, number, size int, total int64) Page[T] {
	return Page[T]{
		Content:       content,
		Number:        number,
		Size:          size,
		TotalElements: total,
	}
}

// Len returns the number of elements on this page.
func (p Page[T]) Len() int {
	return len(p.Content)
}

// TotalPages returns how many pages of Size cover TotalElements.
// A page without a size counts as a single page.
func (p Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 1
	}
	return int((p.TotalElements + int64(p.Size) - 1) / int64(p.Size))
}

// IsFirst reports whether this is the first page.
func (p Page[T]) IsFirst() bool {
	return p.Number == 0
}

// HasNext reports whether another page follows this one.
func (p Page[T]) HasNext() bool {
	return p.Number+1 < p.TotalPages()
}

// IsLast reports whether no page follows this one.
func (p Page[T]) IsLast() bool {
	return !p.HasNext()
}
