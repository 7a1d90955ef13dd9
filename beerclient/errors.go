package beerclient

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/GooseZen/spring-6-resttemplate/oauth2client"
	"github.com/GooseZen/spring-6-resttemplate/paging"
)

// ErrResponseTooLarge is returned when a response body exceeds the client's read limit.
var ErrResponseTooLarge = errors.New("response body too large")

// AuthenticationError is returned when no access token could be obtained. The resource API
// was not called.
type AuthenticationError = oauth2client.AuthenticationError

// MalformedResponseError is returned when a response body cannot be decoded.
type MalformedResponseError = paging.MalformedResponseError

// NotFoundError reports a 404 from the resource API.
type NotFoundError struct {
	Op string
	ID uuid.UUID
}

func (e *NotFoundError) Error() string {
	if e.ID == uuid.Nil {
		return fmt.Sprintf("beerclient: %s: beer not found", e.Op)
	}
	return fmt.Sprintf("beerclient: %s: beer %s not found", e.Op, e.ID)
}

// InvalidArgumentError reports a caller-supplied value that cannot be sent. Nothing was sent.
type InvalidArgumentError struct {
	Op     string
	Field  string
	Reason string
	Err    error
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("beerclient: %s: invalid %s: %s", e.Op, e.Field, e.Reason)
}

func (e *InvalidArgumentError) Unwrap() error {
	return e.Err
}

// PartialSuccessError reports that a mutation was accepted but fetching the resulting
// representation failed. The change may have taken effect server-side.
type PartialSuccessError struct {
	Op string
	// ID of the mutated beer, when known.
	ID uuid.UUID
	// Location is the reference returned by create, if any.
	Location string
	Err      error
}

func (e *PartialSuccessError) Error() string {
	target := e.Location
	if e.ID != uuid.Nil {
		target = e.ID.String()
	}
	if target == "" {
		return fmt.Sprintf("beerclient: %s: accepted but not confirmed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("beerclient: %s: accepted %s but not confirmed: %v", e.Op, target, e.Err)
}

func (e *PartialSuccessError) Unwrap() error {
	return e.Err
}

// UpstreamError reports any other non-success status from the resource API.
type UpstreamError struct {
	Op         string
	ID         uuid.UUID
	StatusCode int
	// Body holds the start of the response body.
	Body string
}

func (e *UpstreamError) Error() string {
	msg := fmt.Sprintf("beerclient: %s: unexpected status %d", e.Op, e.StatusCode)
	if e.ID != uuid.Nil {
		msg += " for beer " + e.ID.String()
	}
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}
