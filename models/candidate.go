package models

import "time"

// Candidate is an agent-managed CRM record, owned by exactly one agent.
type Candidate struct {
	CandidateID    string    `json:"candidateid" bson:"candidateid"`
	AgentID        string    `json:"agentid" bson:"agentid"`
	Name           string    `json:"name" bson:"name"`
	Email          string    `json:"email" bson:"email"`
	Phone          string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Address        string    `json:"address,omitempty" bson:"address,omitempty"`
	Country        string    `json:"country,omitempty" bson:"country,omitempty"`
	Skills         []string  `json:"skills,omitempty" bson:"skills,omitempty"`
	Qualifications []string  `json:"qualifications,omitempty" bson:"qualifications,omitempty"`
	Status         string    `json:"status" bson:"status"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

type CandidateInquiry struct {
	InquiryID   string    `json:"inquiryid" bson:"inquiryid"`
	CandidateID string    `json:"candidateid" bson:"candidateid"`
	AgentID     string    `json:"agentid" bson:"agentid"`
	Subject     string    `json:"subject" bson:"subject"`
	Message     string    `json:"message" bson:"message"`
	Status      string    `json:"status" bson:"status"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}
