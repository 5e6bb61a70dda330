package domain

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyClientID     = errors.New("client id is empty")
	ErrNotLoaded         = errors.New("client data not loaded")
	ErrIdentityNotFound  = errors.New("no stored client id")
	ErrSessionDeclined   = errors.New("no client id supplied")
	ErrUnknownMutation   = errors.New("unknown mutation")
	ErrMalformedResponse = errors.New("malformed response")
	ErrTemplateNotFound  = errors.New("chat template not found")
)

// NetworkError is a transport-level failure. Retrying the same request is safe.
type NetworkError struct {
	Action     Action
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		if e.Err != nil {
			return fmt.Sprintf("network error on %s: status %d: %v", e.Action, e.StatusCode, e.Err)
		}
		return fmt.Sprintf("network error on %s: status %d", e.Action, e.StatusCode)
	}
	return fmt.Sprintf("network error on %s: %v", e.Action, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// APIError is a logical failure reported by the portal in the payload's error field.
type APIError struct {
	Action  Action
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server rejected %s: %s", e.Action, e.Message)
}

// ValidationError is a local precondition that failed before any request was sent.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

type LoadError struct {
	ClientID ClientID
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load client %s: %v", e.ClientID, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

type SubmitError struct {
	Mutation string
	Err      error
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("%s: %v", e.Mutation, e.Err)
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}

// IsRetryable reports whether err stems from the transport rather than from the request itself.
func IsRetryable(err error) bool {
	var networkErr *NetworkError
	return errors.As(err, &networkErr)
}
