package models

import "time"

// Bike listing statuses
const (
	BikeAvailable = "Available"
	BikeSold      = "Sold"
)

type Bike struct {
	BikeID      string    `json:"bikeid" bson:"bikeid"`
	Title       string    `json:"title" bson:"title"`
	Brand       string    `json:"brand" bson:"brand"`
	Model       string    `json:"model" bson:"model"`
	Year        int       `json:"year,omitempty" bson:"year,omitempty"`
	Price       float64   `json:"price" bson:"price"`
	Mileage     int       `json:"mileage,omitempty" bson:"mileage,omitempty"`
	Location    string    `json:"location,omitempty" bson:"location,omitempty"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Images      []string  `json:"images,omitempty" bson:"images,omitempty"`
	Status      string    `json:"status" bson:"status"`
	PostedBy    string    `json:"posted_by" bson:"posted_by"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

// Submission statuses
const (
	SubmissionPending  = "Pending"
	SubmissionApproved = "Approved"
	SubmissionRejected = "Rejected"
)

type BikeSubmission struct {
	SubmissionID string    `json:"submissionid" bson:"submissionid"`
	UserID       string    `json:"userid" bson:"userid"`
	Title        string    `json:"title" bson:"title"`
	Brand        string    `json:"brand" bson:"brand"`
	Model        string    `json:"model" bson:"model"`
	Year         int       `json:"year,omitempty" bson:"year,omitempty"`
	Price        float64   `json:"price" bson:"price"`
	Mileage      int       `json:"mileage,omitempty" bson:"mileage,omitempty"`
	Location     string    `json:"location,omitempty" bson:"location,omitempty"`
	Description  string    `json:"description,omitempty" bson:"description,omitempty"`
	Images       []string  `json:"images,omitempty" bson:"images,omitempty"`
	Status       string    `json:"status" bson:"status"`
	BikeID       string    `json:"bikeid,omitempty" bson:"bikeid,omitempty"`
	ReviewedBy   string    `json:"reviewed_by,omitempty" bson:"reviewed_by,omitempty"`
	SubmittedAt  time.Time `json:"submitted_at" bson:"submitted_at"`
	ReviewedAt   time.Time `json:"reviewed_at,omitempty" bson:"reviewed_at,omitempty"`
}
