package models

import "time"

type Job struct {
	JobID        string    `json:"jobid" bson:"jobid"`
	Title        string    `json:"title" bson:"title"`
	Company      string    `json:"company" bson:"company"`
	Location     string    `json:"location" bson:"location"`
	Country      string    `json:"country,omitempty" bson:"country,omitempty"`
	Type         string    `json:"type" bson:"type"`
	Description  string    `json:"description" bson:"description"`
	Requirements []string  `json:"requirements,omitempty" bson:"requirements,omitempty"`
	Skills       []string  `json:"skills,omitempty" bson:"skills,omitempty"`
	Benefits     []string  `json:"benefits,omitempty" bson:"benefits,omitempty"`
	Salary       string    `json:"salary,omitempty" bson:"salary,omitempty"`
	AgeLimitMin  int       `json:"age_limit_min,omitempty" bson:"age_limit_min,omitempty"`
	AgeLimitMax  int       `json:"age_limit_max,omitempty" bson:"age_limit_max,omitempty"`
	PostedBy     string    `json:"posted_by" bson:"posted_by"`
	PostedAt     time.Time `json:"posted_at" bson:"posted_at"`
	ExpiresAt    time.Time `json:"expires_at,omitempty" bson:"expires_at,omitempty"`
	UpdatedAt    time.Time `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

// Employment types accepted for Job.Type.
var JobTypes = []string{"Full-time", "Part-time", "Contract", "Internship", "Temporary"}

// Inquiry statuses
const (
	InquiryPending  = "Pending"
	InquiryAnswered = "Answered"
)

type JobInquiry struct {
	InquiryID  string    `json:"inquiryid" bson:"inquiryid"`
	JobID      string    `json:"jobid" bson:"jobid"`
	UserID     string    `json:"userid,omitempty" bson:"userid,omitempty"`
	Email      string    `json:"email" bson:"email"`
	Subject    string    `json:"subject" bson:"subject"`
	Message    string    `json:"message" bson:"message"`
	Status     string    `json:"status" bson:"status"`
	Answer     string    `json:"answer,omitempty" bson:"answer,omitempty"`
	AnsweredBy string    `json:"answered_by,omitempty" bson:"answered_by,omitempty"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	AnsweredAt time.Time `json:"answered_at,omitempty" bson:"answered_at,omitempty"`
}
