// Package paging decodes and encodes the page envelope returned by list endpoints.
//
// A page is a bounded slice of a larger server-side result set plus the metadata that locates
// the slice:
//
//	{
//	    "content": [ ... ],
//	    "number": 0,
//	    "size": 25,
//	    "totalElements": 1,
//	    "pageable": { ... }
//	}
//
// Only content, number, size and totalElements are read. Every other top-level key is skipped,
// so servers may add fields without breaking older clients. Elements are decoded with
// encoding/json into the page's element type.
//
// Page is generic over its element type; Decode and Encode work for any type that round-trips
// through encoding/json.
package paging
