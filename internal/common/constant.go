// Package common contains constants and sentinel errors shared by the
// storefront client and the development API.
package common

const (
	// AccessTokenKey is the local storage key holding the bearer credential.
	AccessTokenKey = "access_token"

	// ThemeSettingsKey is the local storage key holding the serialized
	// theme preference record.
	ThemeSettingsKey = "themeSettings"

	AuthorizationHeader = "Authorization"
	BearerPrefix        = "Bearer "
	RequestIDHeader     = "X-Request-ID"
)
