// Package common contains shared constants, sentinel errors and the closed
// error-kind taxonomy used across blogkeeper components.
package common

// AuthorizationHeaderName is the HTTP header carrying the access token.
const AuthorizationHeaderName = "Authorization"

// BearerScheme is the only accepted authorization scheme prefix.
const BearerScheme = "Bearer "
