package wishlist

import (
	"encoding/json"
	"net/http"
	"time"

	"workline/db"
	"workline/models"
	"workline/utils"

	"github.com/julienschmidt/httprouter"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func validItemType(t string) bool {
	return t == models.ItemJob || t == models.ItemBike
}

// Save adds a (user, itemtype, itemid) entry. The unique index makes a
// concurrent double-save impossible; the second writer gets a 409.
func Save(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromRequest(r)

	var input struct {
		ItemType string `json:"itemtype"`
		ItemID   string `json:"itemid"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if !validItemType(input.ItemType) || input.ItemID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "itemtype (job|bike) and itemid are required")
		return
	}

	// The target must exist before it can be saved.
	var err error
	switch input.ItemType {
	case models.ItemJob:
		err = db.JobsCollection.FindOne(ctx, bson.M{"jobid": input.ItemID}).Err()
	case models.ItemBike:
		err = db.BikesCollection.FindOne(ctx, bson.M{"bikeid": input.ItemID}).Err()
	}
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Item not found")
		return
	} else if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	entry := models.WishlistItem{
		EntryID:  "w" + utils.GenerateRandomString(10),
		UserID:   userID,
		ItemType: input.ItemType,
		ItemID:   input.ItemID,
		SavedAt:  time.Now(),
	}

	if _, err := db.WishlistCollection.InsertOne(ctx, entry); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusConflict, "Already saved")
			return
		}
		log.Printf("wishlist: insert error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save item")
		return
	}

	utils.SendResponse(w, http.StatusCreated, entry, "Saved", nil)
}

// Unsave removes an entry. Removing something that is not saved is a
// success no-op, so save/unsave sequences always net out.
func Unsave(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromRequest(r)

	itemType := ps.ByName("itemtype")
	if !validItemType(itemType) {
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown item type")
		return
	}

	_, err := db.WishlistCollection.DeleteOne(ctx, bson.M{
		"userid":   userID,
		"itemtype": itemType,
		"itemid":   ps.ByName("itemid"),
	})
	if err != nil {
		log.Printf("wishlist: delete error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to remove item")
		return
	}

	utils.SendResponse(w, http.StatusOK, nil, "Removed", nil)
}

// List returns the actor's wishlist, optionally scoped to one item type.
func List(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromRequest(r)

	filter := bson.M{"userid": userID}
	if itemType := ps.ByName("itemtype"); itemType != "" {
		if !validItemType(itemType) {
			utils.RespondWithError(w, http.StatusBadRequest, "Unknown item type")
			return
		}
		filter["itemtype"] = itemType
	}

	cursor, err := db.WishlistCollection.Find(ctx, filter, options.Find().SetSort(bson.M{"savedAt": -1}))
	if err != nil {
		log.Printf("wishlist: db error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer cursor.Close(ctx)

	var results []models.WishlistItem
	if err := cursor.All(ctx, &results); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to parse results")
		return
	}
	if len(results) == 0 {
		results = []models.WishlistItem{}
	}
	utils.RespondWithJSON(w, http.StatusOK, results)
}
