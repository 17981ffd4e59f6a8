package shopify

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrRemoteAPI matches every failure of a remote Admin API call:
// transport errors, non-2xx statuses and GraphQL error payloads.
var ErrRemoteAPI = errors.New("remote api error")

// APIError describes a failed Admin API call. Details holds the remote error
// payload (the GraphQL "errors" array, or the raw body for non-JSON replies)
// so it can be surfaced to the caller unchanged.
type APIError struct {
	Operation  string
	StatusCode int
	Details    json.RawMessage
	Err        error
}

func (e *APIError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("shopify %s: %v", e.Operation, e.Err)
	case e.StatusCode != 0 && e.StatusCode/100 != 2:
		return fmt.Sprintf("shopify %s: status %d", e.Operation, e.StatusCode)
	default:
		return fmt.Sprintf("shopify %s: graphql errors", e.Operation)
	}
}

// Is reports ErrRemoteAPI as a match so callers can use errors.Is.
func (e *APIError) Is(target error) bool {
	return target == ErrRemoteAPI
}

func (e *APIError) Unwrap() error {
	return e.Err
}
