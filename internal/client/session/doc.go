// Package session owns the signed-in state of the storefront client: the
// bearer credential and the identity fetched with it.
//
// The credential is mirrored into the local key-value store under
// "access_token"; the identity is kept in memory only and is re-fetched from
// /collection/user/me on every start (InitializeSession). Any failure during
// that refresh logs the user out: the store fails closed rather than keep a
// half-known session.
//
// Store is safe for concurrent use. Concurrent InitializeSession calls share
// a single in-flight run.
package session
