// Package cli is the interactive storefront client.
//
// The App owns every piece of client state (local store, session, cart
// count, theme preference) and is built once at startup; there are no
// package-level singletons apart from the I/O seams used by tests.
//
// Views of the storefront are reached with "go <path>" or one of the
// shortcuts (shop, cart, orders, ...). Navigation passes the route guard
// first, so protected views redirect to the login view when no credential
// is stored.
package cli
