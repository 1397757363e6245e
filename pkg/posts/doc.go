// Package posts implements the post access service: list, show, create and
// update operations composing identity, visibility policy and the cached
// title search, plus their HTTP handlers.
//
// Error translation is 1:1 — storage.ErrNotFound and policy denials become
// 404 "Post Not Found", *storage.ValidationError becomes 422 with the
// validation message, missing identity on a write becomes 401, and anything
// unclassified becomes a generic 500.
package posts
