package posts

import "errors"

// ErrUnauthorized is returned when an operation requiring identity is
// attempted anonymously.
var ErrUnauthorized = errors.New("unauthorized")

// ErrReportUnavailable is returned when report generation cannot be
// scheduled right now.
var ErrReportUnavailable = errors.New("report generation unavailable")
