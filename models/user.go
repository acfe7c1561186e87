package models

import "time"

// Actor roles
const (
	RoleCandidate = "candidate"
	RoleAgent     = "agent"
)

type User struct {
	UserID       string    `json:"userid" bson:"userid"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	Password     string    `json:"-" bson:"password"`
	Role         string    `json:"role" bson:"role"`
	Phone        string    `json:"phone,omitempty" bson:"phone,omitempty"`

	// candidate fields
	Address string `json:"address,omitempty" bson:"address,omitempty"`
	Country string `json:"country,omitempty" bson:"country,omitempty"`
	Photo   string `json:"photo,omitempty" bson:"photo,omitempty"`
	CV      string `json:"cv,omitempty" bson:"cv,omitempty"`

	// agent fields
	CompanyName    string `json:"company_name,omitempty" bson:"company_name,omitempty"`
	CompanyAddress string `json:"company_address,omitempty" bson:"company_address,omitempty"`
	ContactPerson  string `json:"contact_person,omitempty" bson:"contact_person,omitempty"`
	Logo           string `json:"logo,omitempty" bson:"logo,omitempty"`
	Verified       bool   `json:"verified" bson:"verified"`

	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
	LastLogin     time.Time `json:"last_login,omitempty" bson:"last_login,omitempty"`
	RefreshToken  string    `json:"-" bson:"refresh_token,omitempty"`
	RefreshExpiry time.Time `json:"-" bson:"refresh_expiry,omitempty"`
}

// UserProfileResponse is the actor record exposed over the API (no password,
// no refresh token bookkeeping).
type UserProfileResponse struct {
	UserID         string    `json:"userid" bson:"userid"`
	Name           string    `json:"name" bson:"name"`
	Email          string    `json:"email" bson:"email"`
	Role           string    `json:"role" bson:"role"`
	Phone          string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Address        string    `json:"address,omitempty" bson:"address,omitempty"`
	Country        string    `json:"country,omitempty" bson:"country,omitempty"`
	Photo          string    `json:"photo,omitempty" bson:"photo,omitempty"`
	CV             string    `json:"cv,omitempty" bson:"cv,omitempty"`
	CompanyName    string    `json:"company_name,omitempty" bson:"company_name,omitempty"`
	CompanyAddress string    `json:"company_address,omitempty" bson:"company_address,omitempty"`
	ContactPerson  string    `json:"contact_person,omitempty" bson:"contact_person,omitempty"`
	Logo           string    `json:"logo,omitempty" bson:"logo,omitempty"`
	Verified       bool      `json:"verified" bson:"verified"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
	LastLogin      time.Time `json:"last_login,omitempty" bson:"last_login,omitempty"`
}
