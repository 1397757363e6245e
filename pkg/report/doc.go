// Package report generates post reports (word count and word histogram)
// off the request path and hands them to a Mailer for delivery.
//
// Jobs carry ids only; the user and post are re-fetched when the job runs
// so a report always reflects the stored content at generation time. The
// Dispatcher owns a bounded queue and a fixed worker pool, recovers worker
// panics, and drains outstanding jobs on Stop.
package report
