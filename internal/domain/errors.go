package domain

import "errors"

var (
	// ErrUpstreamNotFound means the account or match does not exist
	// upstream. Not retried; treated as empty data.
	ErrUpstreamNotFound = errors.New("upstream resource not found")

	// ErrUpstreamUnavailable covers transport failures, 5xx responses
	// and timeouts. The affected account falls back to its last-known
	// stats for the current pass.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	ErrAccountNotFound = errors.New("account not found")
)
