// Package client is the terminal client's view of the assistant backend.
//
// # Overview
//
// HTTPClient speaks the JSON API under /api: registration and login, the
// companion chat and its history, event and note listings, and the
// attachment upload handshake. Access tokens are sent as bearer tokens; when
// a request comes back 401 and a refresh token is known, the client rotates
// the pair once via /api/auth/refresh and retries.
//
// # Error Handling
//
// Non-2xx answers are returned as *APIError. Transport failures wrap
// ErrUnavailable; 401 and 404 answers match ErrUnauthorized and ErrNotFound
// with errors.Is.
//
// The client is not safe for concurrent use while tokens are rotating.
package client
