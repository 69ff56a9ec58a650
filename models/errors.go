package models

import "fmt"

// AuthorizationRequiredError signals that no usable session exists and the
// caller must send the end user through the authorization redirect. This is a
// hard interrupt of the pipeline, not a retryable failure.
type AuthorizationRequiredError struct {
	AuthURL string
}

func (e *AuthorizationRequiredError) Error() string {
	return "spotify authorization required"
}

// AuthError covers expired, invalid or revoked credentials that could not be
// recovered by a token refresh. The pipeline halts until re-authorization.
type AuthError struct {
	Op  string
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth: %s: %v", e.Op, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// GenerationError means the text-generation call failed. Fatal for the request.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// PlaylistCreationError means the remote playlist could not be created.
// Fatal for the request.
type PlaylistCreationError struct {
	Err error
}

func (e *PlaylistCreationError) Error() string {
	return fmt.Sprintf("playlist creation failed: %v", e.Err)
}

func (e *PlaylistCreationError) Unwrap() error { return e.Err }

// TrackAdditionError means the batch add failed after the playlist was
// created. The now-empty playlist persists remotely; no rollback is attempted.
type TrackAdditionError struct {
	PlaylistID string
	URL        string
	Err        error
}

func (e *TrackAdditionError) Error() string {
	return fmt.Sprintf("adding tracks to playlist %s failed: %v", e.PlaylistID, e.Err)
}

func (e *TrackAdditionError) Unwrap() error { return e.Err }
