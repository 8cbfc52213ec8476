package models

import "errors"

var (
	ErrInvalidTab       = errors.New("invalid tab")
	ErrInvalidRange     = errors.New("invalid time range")
	ErrInvalidRegion    = errors.New("invalid region")
	ErrPanelNotMounted  = errors.New("panel not mounted")
	ErrUnknownContainer = errors.New("unknown widget container")
	ErrSessionClosed    = errors.New("dashboard closed")

	// ErrDownstreamUnavailable marks a publish refused without being attempted.
	ErrDownstreamUnavailable = errors.New("downstream unavailable")
)
