package bikes

import (
	"encoding/json"
	"net/http"
	"time"

	"workline/db"
	"workline/filemgr"
	"workline/models"
	"workline/utils"

	"github.com/julienschmidt/httprouter"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateSubmission lets an authenticated user offer a bike for sale.
// Listings only go live once an admin approves the submission.
func CreateSubmission(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromRequest(r)

	if err := r.ParseMultipartForm(16 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid form data")
		return
	}
	defer r.MultipartForm.RemoveAll()

	bike, missing := bikeFromForm(r)
	if len(missing) > 0 {
		utils.SendResponse(w, http.StatusBadRequest, missing, "Missing or invalid fields", nil)
		return
	}

	images, err := filemgr.SaveFormFiles(r.MultipartForm, "images", filemgr.EntityBike, filemgr.FileImage, false)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	sub := models.BikeSubmission{
		SubmissionID: "s" + utils.GenerateRandomString(10),
		UserID:       userID,
		Title:        bike.Title,
		Brand:        bike.Brand,
		Model:        bike.Model,
		Year:         bike.Year,
		Price:        bike.Price,
		Mileage:      bike.Mileage,
		Location:     bike.Location,
		Description:  bike.Description,
		Images:       images,
		Status:       models.SubmissionPending,
		SubmittedAt:  time.Now(),
	}

	if _, err := db.BikeSubmissionsCollection.InsertOne(ctx, sub); err != nil {
		log.Printf("bikes: submission insert error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to submit bike")
		return
	}

	utils.SendResponse(w, http.StatusCreated, sub, "Submission received", nil)
}

// GetSubmissions lists submissions for admin review, optionally by status.
func GetSubmissions(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	filter := bson.M{}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}

	cursor, err := db.BikeSubmissionsCollection.Find(ctx, filter,
		options.Find().SetSort(bson.M{"submitted_at": -1}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer cursor.Close(ctx)

	var subs []models.BikeSubmission
	if err := cursor.All(ctx, &subs); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to parse results")
		return
	}
	if len(subs) == 0 {
		subs = []models.BikeSubmission{}
	}
	utils.RespondWithJSON(w, http.StatusOK, subs)
}

// GetMySubmissions lists the caller's own submissions.
func GetMySubmissions(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromRequest(r)

	cursor, err := db.BikeSubmissionsCollection.Find(ctx, bson.M{"userid": userID},
		options.Find().SetSort(bson.M{"submitted_at": -1}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer cursor.Close(ctx)

	var subs []models.BikeSubmission
	if err := cursor.All(ctx, &subs); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to parse results")
		return
	}
	if len(subs) == 0 {
		subs = []models.BikeSubmission{}
	}
	utils.RespondWithJSON(w, http.StatusOK, subs)
}

// UpdateSubmissionStatus moves a submission through review. Approving a
// pending submission also publishes a listing; if that second write fails
// the response says so instead of pretending both happened.
func UpdateSubmissionStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	subID := ps.ByName("id")

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	switch payload.Status {
	case models.SubmissionApproved, models.SubmissionRejected, models.SubmissionPending:
	default:
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown status")
		return
	}

	var sub models.BikeSubmission
	err := db.BikeSubmissionsCollection.FindOne(ctx, bson.M{"submissionid": subID}).Decode(&sub)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Submission not found")
		} else {
			utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		}
		return
	}

	adminID := utils.GetAdminIDFromRequest(r)
	now := time.Now()
	update := bson.M{
		"status":      payload.Status,
		"reviewed_by": adminID,
		"reviewed_at": now,
	}

	publish := payload.Status == models.SubmissionApproved && sub.Status != models.SubmissionApproved

	if _, err := db.BikeSubmissionsCollection.UpdateOne(ctx,
		bson.M{"submissionid": subID}, bson.M{"$set": update}); err != nil {
		log.Printf("bikes: submission status update error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update submission")
		return
	}

	if !publish {
		utils.SendResponse(w, http.StatusOK, utils.M{"status": payload.Status}, "Submission updated", nil)
		return
	}

	bike := models.Bike{
		BikeID:      "b" + utils.GenerateRandomString(10),
		Title:       sub.Title,
		Brand:       sub.Brand,
		Model:       sub.Model,
		Year:        sub.Year,
		Price:       sub.Price,
		Mileage:     sub.Mileage,
		Location:    sub.Location,
		Description: sub.Description,
		Images:      sub.Images,
		Status:      models.BikeAvailable,
		PostedBy:    sub.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := db.BikesCollection.InsertOne(ctx, bike); err != nil {
		// Submission is already marked Approved; report the half-done state
		// so an operator can retry the publish rather than lose it silently.
		log.Printf("bikes: listing publish error for %s: %v", subID, err)
		utils.SendResponse(w, http.StatusInternalServerError,
			utils.M{"status": payload.Status, "published": false},
			"Submission approved but listing could not be published", nil)
		return
	}

	if _, err := db.BikeSubmissionsCollection.UpdateOne(ctx,
		bson.M{"submissionid": subID}, bson.M{"$set": bson.M{"bikeid": bike.BikeID}}); err != nil {
		log.Printf("bikes: submission backlink error for %s: %v", subID, err)
	}

	utils.SendResponse(w, http.StatusOK,
		utils.M{"status": payload.Status, "published": true, "bikeid": bike.BikeID},
		"Submission approved and listing published", nil)
}
