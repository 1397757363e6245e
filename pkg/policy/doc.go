// Package policy decides whether an identity may read or mutate a post.
//
// Drafts are visible only to their author. A denied read is surfaced by the
// service layer as not-found rather than forbidden so that the existence of
// a private post is never confirmed to other callers.
package policy
