// Package timeouts provides centralized deadlines for handler operations.
//
// Every store call made from an HTTP handler runs under context.WithTimeout
// using one of these values, so I/O budgets are consistent and adjustable in
// one place.
package timeouts

import "time"

const (
	ping   = 2 * time.Second
	short  = 5 * time.Second
	medium = 10 * time.Second
)

// Ping returns the timeout for health checks.
func Ping() time.Duration { return ping }

// Short returns the timeout for single-document reads.
// Examples: get by ID, lookup by email.
func Short() time.Duration { return short }

// Medium returns the timeout for list queries and aggregate writes,
// including the retry loop around an optimistic replace.
func Medium() time.Duration { return medium }
