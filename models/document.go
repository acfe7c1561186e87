package models

import "time"

// Document types. Photo, passport and driving licence are single-slot per
// owner; a new upload replaces the old one. CVs accumulate.
const (
	DocPhoto    = "photo"
	DocCV       = "cv"
	DocPassport = "passport"
	DocLicense  = "drivingLicense"
)

var DocumentTypes = []string{DocPhoto, DocCV, DocPassport, DocLicense}

// Owner types for documents (a portal user or an agent-managed candidate).
const (
	OwnerUser      = "user"
	OwnerCandidate = "candidate"
)

type Document struct {
	DocumentID string    `json:"documentid" bson:"documentid"`
	OwnerID    string    `json:"ownerid" bson:"ownerid"`
	OwnerType  string    `json:"ownertype" bson:"ownertype"`
	Type       string    `json:"type" bson:"type"`
	FileName   string    `json:"filename" bson:"filename"`
	URL        string    `json:"url" bson:"url"`
	MimeType   string    `json:"mimetype,omitempty" bson:"mimetype,omitempty"`
	Size       int64     `json:"size,omitempty" bson:"size,omitempty"`
	UploadedAt time.Time `json:"uploaded_at" bson:"uploaded_at"`
}

// IsSingleSlot reports whether a document type holds at most one record per
// owner.
func IsSingleSlot(docType string) bool {
	switch docType {
	case DocPhoto, DocPassport, DocLicense:
		return true
	default:
		return false
	}
}
