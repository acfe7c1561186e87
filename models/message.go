package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sender/recipient types on the chat log
const (
	ChatUser  = "user"
	ChatAdmin = "admin"
)

// Message is append-only; entries are never edited or deleted and ordering
// is by CreatedAt.
type Message struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Content       string             `json:"content" bson:"content"`
	SenderID      string             `json:"senderId" bson:"senderid"`
	SenderType    string             `json:"senderType" bson:"sendertype"`
	RecipientID   string             `json:"recipientId" bson:"recipientid"`
	RecipientType string             `json:"recipientType" bson:"recipienttype"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
}

// ChatAssignment maps an actor to the admin handling their conversation.
type ChatAssignment struct {
	UserID     string    `json:"userid" bson:"userid"`
	UserType   string    `json:"usertype" bson:"usertype"`
	AdminID    string    `json:"adminid" bson:"adminid"`
	AssignedAt time.Time `json:"assigned_at" bson:"assigned_at"`
}
