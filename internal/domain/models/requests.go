package models

// HistoryRequest filters the rate-history endpoint. From/To accept
// RFC3339 timestamps or unix seconds; empty values fall back to the
// last 24 hours.
type HistoryRequest struct {
	Domain string `query:"domain" default:"currency" validate:"oneof=currency gold stocks"`
	From   string `query:"from" validate:"omitempty"`
	To     string `query:"to" validate:"omitempty"`
	Limit  int    `query:"limit" default:"288" validate:"gte=1,lte=10000"`
}
