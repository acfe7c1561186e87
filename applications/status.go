package applications

import (
	"encoding/json"
	"net/http"
	"time"

	"workline/db"
	"workline/models"
	"workline/mq"
	"workline/utils"

	"github.com/julienschmidt/httprouter"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
)

// UpdateStatus sets an application's status. The enum is flat: any status
// may follow any other, and repeating the current status is a no-op that
// still succeeds. The applicant's room gets a statusUpdate event after the
// write commits.
func UpdateStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	applicationID := ps.ByName("id")

	var input struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if !utils.Contains(models.ApplicationStatuses, input.Status) {
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown status")
		return
	}

	var app models.Application
	if err := db.ApplicationsCollection.FindOne(ctx, bson.M{"applicationid": applicationID}).Decode(&app); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Application not found")
		return
	}

	if app.Status != input.Status {
		_, err := db.ApplicationsCollection.UpdateOne(ctx,
			bson.M{"applicationid": applicationID},
			bson.M{"$set": bson.M{"status": input.Status, "updated_at": time.Now()}},
		)
		if err != nil {
			log.Printf("applications: status update error: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update status")
			return
		}

		mq.Emit(ctx, mq.EventStatusUpdate, app.UserID, map[string]string{
			"applicationid": app.ApplicationID,
			"jobid":         app.JobID,
			"status":        input.Status,
		})
		if app.AgentID != "" && app.AgentID != app.UserID {
			mq.Emit(ctx, mq.EventStatusUpdate, app.AgentID, map[string]string{
				"applicationid": app.ApplicationID,
				"jobid":         app.JobID,
				"status":        input.Status,
			})
		}
	}

	utils.SendResponse(w, http.StatusOK, map[string]string{
		"applicationid": applicationID,
		"status":        input.Status,
	}, "Status updated", nil)
}
