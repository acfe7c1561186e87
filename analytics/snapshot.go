package analytics

import (
	"context"
	"net/http"
	"time"

	"workline/db"
	"workline/utils"

	"github.com/julienschmidt/httprouter"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Snapshot upserts today's rollup for one agent. The unique (agentid, date)
// index makes concurrent runs converge on a single document per day.
func Snapshot(ctx context.Context, agentID string) error {
	stats, err := computeStats(ctx, agentID)
	if err != nil {
		return err
	}

	now := time.Now()
	_, err = db.AnalyticsSnapshotCollection.UpdateOne(ctx,
		bson.M{"agentid": agentID, "date": now.Format("2006-01-02")},
		bson.M{"$set": bson.M{
			"total_candidates":   stats.TotalCandidates,
			"total_applications": stats.Total,
			"pending":            stats.Pending,
			"approved":           stats.Approved,
			"rejected":           stats.Rejected,
			"success_rate":       stats.SuccessRate,
			"updated_at":         now,
		}},
		options.Update().SetUpsert(true))
	return err
}

// SnapshotAll rolls up every agent. Failures are logged per agent so one
// bad document does not stop the rest of the run.
func SnapshotAll(ctx context.Context) {
	cursor, err := db.UserCollection.Find(ctx, bson.M{"role": "agent"},
		options.Find().SetProjection(bson.M{"userid": 1}))
	if err != nil {
		log.Printf("analytics: snapshot agent scan error: %v", err)
		return
	}
	defer cursor.Close(ctx)

	var agents []struct {
		UserID string `bson:"userid"`
	}
	if err := cursor.All(ctx, &agents); err != nil {
		log.Printf("analytics: snapshot agent decode error: %v", err)
		return
	}

	for _, agent := range agents {
		if err := Snapshot(ctx, agent.UserID); err != nil {
			log.Printf("analytics: snapshot error for %s: %v", agent.UserID, err)
		}
	}
	log.Printf("analytics: snapshot run finished for %d agents", len(agents))
}

// ForceSnapshot lets an agent refresh their own snapshot on demand.
func ForceSnapshot(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	agentID := utils.GetUserIDFromRequest(r)

	if err := Snapshot(r.Context(), agentID); err != nil {
		log.Printf("analytics: forced snapshot error for %s: %v", agentID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update snapshot")
		return
	}
	dashCache.Delete(agentID)
	utils.SendResponse(w, http.StatusOK, nil, "Snapshot updated", nil)
}
