package analytics

import (
	"context"
	"net/http"
	"sort"
	"time"

	"workline/db"
	"workline/models"
	"workline/utils"

	"github.com/julienschmidt/httprouter"
	gocache "github.com/patrickmn/go-cache"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Dashboard rollups are cheap but hit three collections; a short TTL keeps
// repeated page loads off Mongo without serving stale numbers for long.
var dashCache = gocache.New(5*time.Minute, 10*time.Minute)

func computeStats(ctx context.Context, agentID string) (models.DashboardStats, error) {
	var stats models.DashboardStats

	candidates, err := db.CandidatesCollection.CountDocuments(ctx, bson.M{"agentid": agentID})
	if err != nil {
		return stats, err
	}
	stats.TotalCandidates = int(candidates)

	cursor, err := db.ApplicationsCollection.Aggregate(ctx, bson.A{
		bson.M{"$match": bson.M{"agentid": agentID}},
		bson.M{"$group": bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}},
	})
	if err != nil {
		return stats, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Status string `bson:"_id"`
		Count  int    `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return stats, err
	}

	for _, row := range rows {
		stats.Total += row.Count
		switch row.Status {
		case models.StatusPending, models.StatusInReview:
			stats.Pending += row.Count
		case models.StatusAccepted:
			stats.Approved += row.Count
		case models.StatusRejected:
			stats.Rejected += row.Count
		}
	}

	stats.SuccessRate = successRate(stats.Approved, stats.Total)
	return stats, nil
}

// successRate is approved over all applications, pending ones included.
// Zero applications means zero, not NaN.
func successRate(approved, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(approved) / float64(total) * 100
}

// GetDashboard returns the live rollup for the calling agent.
func GetDashboard(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	agentID := utils.GetUserIDFromRequest(r)

	if cached, ok := dashCache.Get(agentID); ok {
		utils.RespondWithJSON(w, http.StatusOK, cached)
		return
	}

	stats, err := computeStats(r.Context(), agentID)
	if err != nil {
		log.Printf("analytics: dashboard error for %s: %v", agentID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute stats")
		return
	}

	dashCache.Set(agentID, stats, gocache.DefaultExpiration)
	utils.RespondWithJSON(w, http.StatusOK, stats)
}

type detailedResponse struct {
	Trend  []models.TrendBucket `json:"trend"`
	Growth float64              `json:"growth"`
}

// GetDetailed returns monthly trend buckets built from persisted daily
// snapshots, plus period-over-period growth of application volume.
func GetDetailed(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	agentID := utils.GetUserIDFromRequest(r)

	since := time.Now().AddDate(0, -6, 0).Format("2006-01-02")
	cursor, err := db.AnalyticsSnapshotCollection.Find(ctx,
		bson.M{"agentid": agentID, "date": bson.M{"$gte": since}},
		options.Find().SetSort(bson.M{"date": 1}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer cursor.Close(ctx)

	var snaps []models.AnalyticsSnapshot
	if err := cursor.All(ctx, &snaps); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to parse snapshots")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, detailedResponse{
		Trend:  BucketByMonth(snaps),
		Growth: Growth(snaps),
	})
}

// BucketByMonth keeps the last snapshot of each month; snapshots are
// cumulative rollups, so the latest one represents the month.
func BucketByMonth(snaps []models.AnalyticsSnapshot) []models.TrendBucket {
	byMonth := lo.GroupBy(snaps, func(s models.AnalyticsSnapshot) string {
		if len(s.Date) < 7 {
			return s.Date
		}
		return s.Date[:7]
	})

	months := lo.Keys(byMonth)
	sort.Strings(months)

	return lo.Map(months, func(month string, _ int) models.TrendBucket {
		snap := lo.MaxBy(byMonth[month], func(a, b models.AnalyticsSnapshot) bool {
			return a.Date > b.Date
		})
		return models.TrendBucket{
			Month:        month,
			Applications: snap.Total,
			Approved:     snap.Approved,
			Rejected:     snap.Rejected,
			SuccessRate:  snap.SuccessRate,
		}
	})
}

// Growth compares the latest snapshot's application total with the earliest
// in the window. Returns 0 when there is nothing to compare against.
func Growth(snaps []models.AnalyticsSnapshot) float64 {
	if len(snaps) < 2 {
		return 0
	}
	first := snaps[0].Total
	last := snaps[len(snaps)-1].Total
	if first == 0 {
		return 0
	}
	return float64(last-first) / float64(first) * 100
}
