package models

import "time"

// AnalyticsSnapshot is the persisted daily rollup for one agent. One
// document per (agent, day), upserted by the snapshot worker; monthly trend
// and growth figures are derived from these instead of rescanning raw
// collections per request.
type AnalyticsSnapshot struct {
	AgentID         string    `json:"agentid" bson:"agentid"`
	Date            string    `json:"date" bson:"date"` // YYYY-MM-DD
	TotalCandidates int       `json:"total_candidates" bson:"total_candidates"`
	Total           int       `json:"total_applications" bson:"total_applications"`
	Pending         int       `json:"pending" bson:"pending"`
	Approved        int       `json:"approved" bson:"approved"`
	Rejected        int       `json:"rejected" bson:"rejected"`
	SuccessRate     float64   `json:"success_rate" bson:"success_rate"`
	UpdatedAt       time.Time `json:"updated_at" bson:"updated_at"`
}

// DashboardStats is the live rollup returned by the dashboard endpoint.
type DashboardStats struct {
	TotalCandidates int     `json:"total_candidates"`
	Total           int     `json:"total_applications"`
	Pending         int     `json:"pending"`
	Approved        int     `json:"approved"`
	Rejected        int     `json:"rejected"`
	SuccessRate     float64 `json:"success_rate"`
}

// TrendBucket is one month of snapshot history.
type TrendBucket struct {
	Month        string  `json:"month"` // YYYY-MM
	Applications int     `json:"applications"`
	Approved     int     `json:"approved"`
	Rejected     int     `json:"rejected"`
	SuccessRate  float64 `json:"success_rate"`
}
