// Package httputil provides HTTP utilities for fetching remote
// annotation documents.
//
//   - [FetchDocument]: GET a document body with size limits
//   - [Retry]: automatic retry with exponential backoff
//
// Transient failures (network errors, 5xx responses, rate limits) are
// wrapped in [RetryableError] so [Retry] attempts them again; anything
// else fails immediately. A missing resource is reported as
// [ErrNotFound] so callers can map it to their own not-found handling.
package httputil
