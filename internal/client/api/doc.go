// Package api is the storefront's REST transport.
//
// # Overview
//
// Client sends JSON requests to the remote API relative to a base URL and
// decodes JSON responses. On every request it asks its TokenSource for the
// current credential; when one is present the request carries
// "Authorization: Bearer <credential>", otherwise the request is anonymous.
// The source is consulted per request, so a login or logout takes effect on
// the very next call without rebuilding the client.
//
// # Error Handling
//
// Failures fall into three kinds, all returned unchanged to the caller:
//
//   - *TransportError: no response was received (dial error, timeout, cancel).
//   - *HTTPError: a response with status >= 400.
//   - *DecodeError: a response body that is not the expected JSON.
//
// They can be matched with errors.As, or coarsely with errors.Is against
// ErrUnauthorized (401/403), ErrUnavailable (transport failure, 502/503/504)
// and ErrDecode. Describe turns any error into the (status, message) pair
// shown to users.
//
// There are no retries and no caching. The only timeout is the client-wide
// one from Options.Timeout (10s by default).
package api
