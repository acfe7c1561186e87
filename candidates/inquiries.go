package candidates

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"workline/db"
	"workline/models"
	"workline/utils"

	"github.com/julienschmidt/httprouter"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
)

// CreateCandidateInquiry files a note/question on an owned candidate.
func CreateCandidateInquiry(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	agentID := utils.GetUserIDFromRequest(r)

	candidate, code, msg := loadOwned(ctx, ps.ByName("id"), agentID)
	if candidate == nil {
		utils.RespondWithError(w, code, msg)
		return
	}

	var input struct {
		Subject string `json:"subject"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if strings.TrimSpace(input.Subject) == "" || strings.TrimSpace(input.Message) == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Subject and message are required")
		return
	}

	inquiry := models.CandidateInquiry{
		InquiryID:   "q" + utils.GenerateRandomString(10),
		CandidateID: candidate.CandidateID,
		AgentID:     agentID,
		Subject:     strings.TrimSpace(input.Subject),
		Message:     strings.TrimSpace(input.Message),
		Status:      models.InquiryPending,
		CreatedAt:   time.Now(),
	}

	if _, err := db.CandidateInquiryCollection.InsertOne(ctx, inquiry); err != nil {
		log.Printf("candidates: inquiry insert error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save inquiry")
		return
	}

	utils.SendResponse(w, http.StatusCreated, inquiry, "Inquiry saved", nil)
}

// GetCandidateInquiries lists inquiries on an owned candidate.
func GetCandidateInquiries(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	agentID := utils.GetUserIDFromRequest(r)

	candidate, code, msg := loadOwned(ctx, ps.ByName("id"), agentID)
	if candidate == nil {
		utils.RespondWithError(w, code, msg)
		return
	}

	cursor, err := db.CandidateInquiryCollection.Find(ctx, bson.M{"candidateid": candidate.CandidateID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer cursor.Close(ctx)

	var results []models.CandidateInquiry
	if err := cursor.All(ctx, &results); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to parse results")
		return
	}
	if len(results) == 0 {
		results = []models.CandidateInquiry{}
	}
	utils.RespondWithJSON(w, http.StatusOK, results)
}
