package models

import "time"

// Application statuses. The set is flat: any status may follow any other,
// including moving out of Accepted or Rejected.
const (
	StatusPending  = "Pending"
	StatusInReview = "In Review"
	StatusAccepted = "Accepted"
	StatusRejected = "Rejected"
)

var ApplicationStatuses = []string{StatusPending, StatusInReview, StatusAccepted, StatusRejected}

type Application struct {
	ApplicationID string    `json:"applicationid" bson:"applicationid"`
	JobID         string    `json:"jobid" bson:"jobid"`
	UserID        string    `json:"userid" bson:"userid"`
	AgentID       string    `json:"agentid,omitempty" bson:"agentid,omitempty"`
	CoverLetter   string    `json:"cover_letter,omitempty" bson:"cover_letter,omitempty"`
	CV            string    `json:"cv,omitempty" bson:"cv,omitempty"`
	Status        string    `json:"status" bson:"status"`
	AppliedAt     time.Time `json:"applied_at" bson:"applied_at"`
	UpdatedAt     time.Time `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}
