package models

import "time"

// Admin roles. Admins live in their own collection and sign in against a
// separate secret, so an actor token can never pass the admin gate.
const (
	RoleMainAdmin  = "MainAdmin"
	RoleSalesAdmin = "SalesAdmin"
	RoleAgentAdmin = "AgentAdmin"
)

type Admin struct {
	AdminID   string    `json:"adminid" bson:"adminid"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Password  string    `json:"-" bson:"password"`
	Role      string    `json:"role" bson:"role"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	LastLogin time.Time `json:"last_login,omitempty" bson:"last_login,omitempty"`
}
