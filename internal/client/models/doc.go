// Package models defines the JSON wire types exchanged with the storefront
// API. The client and the development API share them.
package models
