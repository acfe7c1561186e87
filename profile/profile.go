package profile

import (
	"net/http"
	"strings"
	"time"

	"workline/db"
	"workline/filemgr"
	"workline/models"
	"workline/utils"

	"github.com/julienschmidt/httprouter"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetProfile returns the authenticated actor's record minus credentials.
func GetProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var profile models.UserProfileResponse
	err := db.UserCollection.FindOne(r.Context(), bson.M{"userid": userID}).Decode(&profile)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "User not found")
		} else {
			log.Printf("profile: db error: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, profile)
}

// UpdateProfile edits the mutable fields and optionally replaces the photo
// (candidate) or logo (agent). A replaced file purges the previous object.
func UpdateProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	if err := r.ParseMultipartForm(12 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid form data")
		return
	}
	defer r.MultipartForm.RemoveAll()

	var current models.User
	if err := db.UserCollection.FindOne(r.Context(), bson.M{"userid": userID}).Decode(&current); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	update := bson.M{"updated_at": time.Now()}
	setIf := func(field, value string) {
		if v := strings.TrimSpace(value); v != "" {
			update[field] = v
		}
	}
	setIf("name", r.FormValue("name"))
	setIf("phone", r.FormValue("phone"))
	setIf("address", r.FormValue("address"))
	setIf("country", r.FormValue("country"))

	if current.Role == models.RoleAgent {
		setIf("company_name", r.FormValue("company_name"))
		setIf("company_address", r.FormValue("company_address"))
		setIf("contact_person", r.FormValue("contact_person"))

		logo, err := filemgr.SaveFormFile(r.MultipartForm, "logo", filemgr.EntityUser, filemgr.FileLogo, false)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		if logo != "" {
			update["logo"] = logo
			if err := filemgr.DeleteFile(current.Logo); err != nil {
				log.Printf("profile: purge old logo: %v", err)
			}
		}
	} else {
		photo, err := filemgr.SaveFormFile(r.MultipartForm, "photo", filemgr.EntityUser, filemgr.FilePhoto, false)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		if photo != "" {
			update["photo"] = photo
			if err := filemgr.DeleteFile(current.Photo); err != nil {
				log.Printf("profile: purge old photo: %v", err)
			}
		}
	}

	_, err := db.UserCollection.UpdateOne(r.Context(), bson.M{"userid": userID}, bson.M{"$set": update})
	if err != nil {
		log.Printf("profile: update error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	var updated models.UserProfileResponse
	if err := db.UserCollection.FindOne(r.Context(), bson.M{"userid": userID}).Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load updated profile")
		return
	}

	utils.SendResponse(w, http.StatusOK, updated, "Profile updated", nil)
}

// GetSavedJobs joins the actor's wishlist entries against the jobs
// collection, newest saves first.
func GetSavedJobs(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	ctx := r.Context()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"userid": userID, "itemtype": models.ItemJob}}},
		{{Key: "$sort", Value: bson.M{"savedAt": -1}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "jobs",
			"localField":   "itemid",
			"foreignField": "jobid",
			"as":           "job",
		}}},
		{{Key: "$unwind", Value: "$job"}},
		{{Key: "$project", Value: bson.M{
			"_id":      0,
			"entryid":  1,
			"savedAt":  1,
			"jobid":    "$job.jobid",
			"title":    "$job.title",
			"company":  "$job.company",
			"location": "$job.location",
			"type":     "$job.type",
			"salary":   "$job.salary",
		}}},
	}

	cursor, err := db.WishlistCollection.Aggregate(ctx, pipeline)
	if err != nil {
		log.Printf("saved jobs: aggregate error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch saved jobs")
		return
	}
	defer cursor.Close(ctx)

	var results []bson.M
	if err := cursor.All(ctx, &results); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to parse results")
		return
	}
	if len(results) == 0 {
		results = []bson.M{}
	}

	utils.RespondWithJSON(w, http.StatusOK, results)
}
