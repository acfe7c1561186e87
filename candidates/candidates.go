package candidates

import (
	"context"
	"net/http"
	"strings"
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

// loadOwned fetches a candidate and checks it belongs to the calling agent.
func loadOwned(ctx context.Context, candidateID, agentID string) (*models.Candidate, int, string) {
	var candidate models.Candidate
	err := db.CandidatesCollection.FindOne(ctx, bson.M{"candidateid": candidateID}).Decode(&candidate)
	if err == mongo.ErrNoDocuments {
		return nil, http.StatusNotFound, "Candidate not found"
	} else if err != nil {
		log.Printf("candidates: db error: %v", err)
		return nil, http.StatusInternalServerError, "Database error"
	}
	if candidate.AgentID != agentID {
		return nil, http.StatusForbidden, "Candidate is not managed by you"
	}
	return &candidate, 0, ""
}

// GetCandidates lists the calling agent's managed candidates.
func GetCandidates(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	agentID := utils.GetUserIDFromRequest(r)

	cursor, err := db.CandidatesCollection.Find(ctx,
		bson.M{"agentid": agentID},
		options.Find().SetSort(bson.M{"created_at": -1}),
	)
	if err != nil {
		log.Printf("candidates: db error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer cursor.Close(ctx)

	var results []models.Candidate
	if err := cursor.All(ctx, &results); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to parse results")
		return
	}
	if len(results) == 0 {
		results = []models.Candidate{}
	}
	utils.RespondWithJSON(w, http.StatusOK, results)
}

// GetCandidate returns one managed candidate together with their documents.
func GetCandidate(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	agentID := utils.GetUserIDFromRequest(r)

	candidate, code, msg := loadOwned(ctx, ps.ByName("id"), agentID)
	if candidate == nil {
		utils.RespondWithError(w, code, msg)
		return
	}

	docs := []models.Document{}
	cursor, err := db.DocumentsCollection.Find(ctx, bson.M{
		"ownerid":   candidate.CandidateID,
		"ownertype": models.OwnerCandidate,
	})
	if err == nil {
		defer cursor.Close(ctx)
		if err := cursor.All(ctx, &docs); err != nil {
			docs = []models.Document{}
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"candidate": candidate,
		"documents": docs,
	})
}

func candidateFromForm(r *http.Request) (models.Candidate, []string) {
	var missing []string
	field := func(name string) string {
		v := strings.TrimSpace(r.FormValue(name))
		if v == "" {
			missing = append(missing, name)
		}
		return v
	}

	candidate := models.Candidate{
		Name:    field("name"),
		Email:   strings.ToLower(field("email")),
		Phone:   strings.TrimSpace(r.FormValue("phone")),
		Address: strings.TrimSpace(r.FormValue("address")),
		Country: strings.TrimSpace(r.FormValue("country")),
	}

	// Skills and qualifications arrive either as one comma-separated string
	// or as repeated form values; both shapes normalize to a trimmed slice.
	candidate.Skills = utils.NormalizeList(r.Form["skills"])
	candidate.Qualifications = utils.NormalizeList(r.Form["qualifications"])

	return candidate, missing
}

// CreateCandidate adds a managed candidate for the calling agent.
func CreateCandidate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	agentID := utils.GetUserIDFromRequest(r)

	if err := r.ParseMultipartForm(12 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid form data")
		return
	}
	defer r.MultipartForm.RemoveAll()

	candidate, missing := candidateFromForm(r)
	if len(missing) > 0 {
		utils.SendResponse(w, http.StatusBadRequest, missing, "Missing required fields", nil)
		return
	}

	candidate.CandidateID = "c" + utils.GenerateRandomString(10)
	candidate.AgentID = agentID
	candidate.Status = models.StatusPending
	candidate.CreatedAt = time.Now()
	candidate.UpdatedAt = candidate.CreatedAt

	if _, err := db.CandidatesCollection.InsertOne(ctx, candidate); err != nil {
		log.Printf("candidates: insert error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create candidate")
		return
	}

	utils.SendResponse(w, http.StatusCreated, candidate, "Candidate created", nil)
}

// UpdateCandidate edits an owned candidate record. Status accepts any value
// from the flat enum, including moves out of Accepted/Rejected.
func UpdateCandidate(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	agentID := utils.GetUserIDFromRequest(r)

	if err := r.ParseMultipartForm(12 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid form data")
		return
	}
	defer r.MultipartForm.RemoveAll()

	candidate, code, msg := loadOwned(ctx, ps.ByName("id"), agentID)
	if candidate == nil {
		utils.RespondWithError(w, code, msg)
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
	if email := strings.TrimSpace(r.FormValue("email")); email != "" {
		update["email"] = strings.ToLower(email)
	}
	if len(r.Form["skills"]) > 0 {
		update["skills"] = utils.NormalizeList(r.Form["skills"])
	}
	if len(r.Form["qualifications"]) > 0 {
		update["qualifications"] = utils.NormalizeList(r.Form["qualifications"])
	}
	if status := r.FormValue("status"); status != "" {
		if !utils.Contains(models.ApplicationStatuses, status) {
			utils.RespondWithError(w, http.StatusBadRequest, "Unknown status")
			return
		}
		update["status"] = status
	}

	_, err := db.CandidatesCollection.UpdateOne(ctx,
		bson.M{"candidateid": candidate.CandidateID},
		bson.M{"$set": update},
	)
	if err != nil {
		log.Printf("candidates: update error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update candidate")
		return
	}

	utils.SendResponse(w, http.StatusOK, nil, "Candidate updated", nil)
}

// DeleteCandidate removes an owned candidate and purges their documents.
func DeleteCandidate(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	agentID := utils.GetUserIDFromRequest(r)

	candidate, code, msg := loadOwned(ctx, ps.ByName("id"), agentID)
	if candidate == nil {
		utils.RespondWithError(w, code, msg)
		return
	}

	if _, err := db.CandidatesCollection.DeleteOne(ctx, bson.M{"candidateid": candidate.CandidateID}); err != nil {
		log.Printf("candidates: delete error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete candidate")
		return
	}

	// Best effort cleanup of the candidate's child records.
	if _, err := db.DocumentsCollection.DeleteMany(ctx, bson.M{
		"ownerid":   candidate.CandidateID,
		"ownertype": models.OwnerCandidate,
	}); err != nil {
		log.Printf("candidates: document cleanup: %v", err)
	}
	if _, err := db.CandidateInquiryCollection.DeleteMany(ctx, bson.M{"candidateid": candidate.CandidateID}); err != nil {
		log.Printf("candidates: inquiry cleanup: %v", err)
	}

	utils.SendResponse(w, http.StatusOK, nil, "Candidate deleted", nil)
}
