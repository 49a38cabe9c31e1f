package domain

import "errors"

var (
	// ErrNotFound means the character search returned zero candidates.
	ErrNotFound = errors.New("character not found")

	// ErrAmbiguousTeamMatch means no historical team's member set matches
	// the live roster. Distinct from ErrNotFound so callers can skip the
	// team panel while still showing individual player panels.
	ErrAmbiguousTeamMatch = errors.New("no matching team for roster")

	// ErrUpstreamUnavailable wraps transport, timeout, and non-2xx failures
	// from a collaborator. The poll loop retries on the next tick.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)
