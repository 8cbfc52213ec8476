package models

// Requests for dashboard HTTP endpoints. Defined in domain for consistency and reuse.

type PageRequest struct {
	Tab    string `query:"tab" validate:"omitempty,oneof=markets charts reserves"`
	Range  string `query:"range" validate:"omitempty,oneof=1D 1W 1M 3M 1Y"`
	Region string `query:"region" validate:"omitempty,oneof=all 'North America' Europe Asia Others"`
}

type TabRequest struct {
	Tab string `json:"tab" validate:"required,oneof=markets charts reserves"`
}

type RangeRequest struct {
	Range string `json:"range" default:"1D" validate:"oneof=1D 1W 1M 3M 1Y"`
}

type ReservesRequest struct {
	Region string `query:"region" default:"all" validate:"oneof=all 'North America' Europe Asia Others"`
}
