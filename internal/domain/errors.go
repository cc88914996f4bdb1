package domain

import "errors"

var (
	// ErrRoomNotConfigured blocks link generation until a room name is set.
	// A loud failure here is deliberate: a link without its room parameter
	// still parses as a URL but joins nothing.
	ErrRoomNotConfigured = errors.New("room name is not configured")

	// ErrPlayerNotFound is returned when a link is requested for a
	// username that is not part of the roster.
	ErrPlayerNotFound = errors.New("player not found in room")
)
