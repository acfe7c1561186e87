package jobs

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"workline/db"
	"workline/models"
	"workline/mq"
	"workline/utils"

	"github.com/julienschmidt/httprouter"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CreateInquiry files a question against a posting. Works for anonymous
// visitors too; an authenticated caller gets the answer relayed to their
// room when an admin responds.
func CreateInquiry(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	jobID := ps.ByName("id")

	var input struct {
		Email   string `json:"email"`
		Subject string `json:"subject"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	var missing []string
	for name, v := range map[string]string{"email": input.Email, "subject": input.Subject, "message": input.Message} {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		utils.SendResponse(w, http.StatusBadRequest, missing, "Missing required fields", nil)
		return
	}

	err := db.JobsCollection.FindOne(ctx, bson.M{"jobid": jobID}).Err()
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Job not found")
		return
	} else if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	inquiry := models.JobInquiry{
		InquiryID: "q" + utils.GenerateRandomString(10),
		JobID:     jobID,
		UserID:    utils.GetUserIDFromRequest(r),
		Email:     strings.TrimSpace(input.Email),
		Subject:   strings.TrimSpace(input.Subject),
		Message:   strings.TrimSpace(input.Message),
		Status:    models.InquiryPending,
		CreatedAt: time.Now(),
	}

	if _, err := db.JobInquiriesCollection.InsertOne(ctx, inquiry); err != nil {
		log.Printf("inquiry: insert error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save inquiry")
		return
	}

	utils.SendResponse(w, http.StatusCreated, inquiry, "Inquiry submitted", nil)
}

// GetJobInquiries lists inquiries for a posting (admin view).
func GetJobInquiries(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()

	cursor, err := db.JobInquiriesCollection.Find(ctx, bson.M{"jobid": ps.ByName("id")})
	if err != nil {
		log.Printf("inquiry: db error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer cursor.Close(ctx)

	var results []models.JobInquiry
	if err := cursor.All(ctx, &results); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to parse results")
		return
	}
	if len(results) == 0 {
		results = []models.JobInquiry{}
	}
	utils.RespondWithJSON(w, http.StatusOK, results)
}

// AnswerInquiry records an admin's answer and relays it to the asking
// actor's room after the write commits.
func AnswerInquiry(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	inquiryID := ps.ByName("id")

	var input struct {
		Answer string `json:"answer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || strings.TrimSpace(input.Answer) == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Answer required")
		return
	}

	var inquiry models.JobInquiry
	if err := db.JobInquiriesCollection.FindOne(ctx, bson.M{"inquiryid": inquiryID}).Decode(&inquiry); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Inquiry not found")
		return
	}

	now := time.Now()
	_, err := db.JobInquiriesCollection.UpdateOne(ctx,
		bson.M{"inquiryid": inquiryID},
		bson.M{"$set": bson.M{
			"status":      models.InquiryAnswered,
			"answer":      strings.TrimSpace(input.Answer),
			"answered_by": utils.GetAdminIDFromRequest(r),
			"answered_at": now,
		}},
	)
	if err != nil {
		log.Printf("inquiry: answer error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save answer")
		return
	}

	if inquiry.UserID != "" {
		mq.Emit(ctx, mq.EventInquiryResponse, inquiry.UserID, map[string]any{
			"inquiryid": inquiry.InquiryID,
			"jobid":     inquiry.JobID,
			"subject":   inquiry.Subject,
			"answer":    strings.TrimSpace(input.Answer),
		})
	}

	utils.SendResponse(w, http.StatusOK, nil, "Inquiry answered", nil)
}
