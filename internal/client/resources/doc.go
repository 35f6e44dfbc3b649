// Package resources holds one accessor per remote resource of the storefront
// API. Each function issues exactly one HTTP call (method + path + optional
// query or body) and returns the decoded body; errors from the transport are
// returned unchanged. There is no validation, caching or retry here.
//
// Identifiers are interpolated into paths as given.
package resources
