package jobs

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

// ApplyToJob records one application per (job, user). The uniqueness is a
// storage-level index, so two racing submissions cannot both land; the
// loser sees a 409.
func ApplyToJob(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	jobID := ps.ByName("id")
	userID := utils.GetUserIDFromRequest(r)

	if err := r.ParseMultipartForm(12 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid form data")
		return
	}
	defer r.MultipartForm.RemoveAll()

	err := db.JobsCollection.FindOne(ctx, bson.M{"jobid": jobID}).Err()
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Job not found")
		return
	} else if err != nil {
		log.Printf("apply: db error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	app := models.Application{
		ApplicationID: "a" + utils.GenerateRandomString(10),
		JobID:         jobID,
		UserID:        userID,
		CoverLetter:   strings.TrimSpace(r.FormValue("cover_letter")),
		Status:        models.StatusPending,
		AppliedAt:     time.Now(),
	}

	// Agents may apply on a managed candidate's behalf; the application
	// keeps a back-reference to the submitting agent.
	if utils.GetRoleFromRequest(r) == models.RoleAgent {
		app.AgentID = utils.GetUserIDFromRequest(r)
		if onBehalf := strings.TrimSpace(r.FormValue("candidate_id")); onBehalf != "" {
			var candidate models.Candidate
			err := db.CandidatesCollection.FindOne(ctx, bson.M{"candidateid": onBehalf}).Decode(&candidate)
			if err != nil {
				utils.RespondWithError(w, http.StatusNotFound, "Candidate not found")
				return
			}
			if candidate.AgentID != app.AgentID {
				utils.RespondWithError(w, http.StatusForbidden, "Candidate is not managed by you")
				return
			}
			app.UserID = candidate.CandidateID
		}
	}

	cv, err := filemgr.SaveFormFile(r.MultipartForm, "cv", filemgr.EntityUser, filemgr.FileCV, false)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	app.CV = cv

	if _, err := db.ApplicationsCollection.InsertOne(ctx, app); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusConflict, "Already applied to this job")
			return
		}
		log.Printf("apply: insert error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save application")
		return
	}

	utils.SendResponse(w, http.StatusCreated, app, "Application submitted", nil)
}
