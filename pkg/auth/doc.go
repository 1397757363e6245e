// Package auth provides bearer-token identity resolution.
//
// Tokens are opaque pre-issued credentials: an operator mints one per user
// (see cmd/quill-admin) and callers present it as
//
//	Authorization: Bearer <token>
//
// Resolver maps that header to a *User. Absence of a usable token is not an
// error; it simply yields an anonymous request. Read endpoints accept
// anonymous callers, write endpoints reject them at the middleware layer.
package auth
