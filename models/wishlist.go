package models

import "time"

// Wishlist item types
const (
	ItemJob  = "job"
	ItemBike = "bike"
)

type WishlistItem struct {
	EntryID  string    `json:"entryid" bson:"entryid"`
	UserID   string    `json:"userid" bson:"userid"`
	ItemType string    `json:"itemtype" bson:"itemtype"`
	ItemID   string    `json:"itemid" bson:"itemid"`
	SavedAt  time.Time `json:"saved_at" bson:"savedAt"`
}
