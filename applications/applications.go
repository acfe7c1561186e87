package applications

import (
	"net/http"

	"workline/db"
	"workline/models"
	"workline/utils"

	"github.com/julienschmidt/httprouter"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetAllApplications is the admin listing, newest first.
func GetAllApplications(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	opts := utils.ParseQueryOptions(r)

	filter := bson.M{}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}

	findOpts := options.Find().
		SetSort(bson.M{"applied_at": -1}).
		SetSkip(int64((opts.Page - 1) * opts.Limit)).
		SetLimit(int64(opts.Limit))

	cursor, err := db.ApplicationsCollection.Find(ctx, filter, findOpts)
	if err != nil {
		log.Printf("applications: db error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer cursor.Close(ctx)

	var results []models.Application
	if err := cursor.All(ctx, &results); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to parse results")
		return
	}
	if len(results) == 0 {
		results = []models.Application{}
	}
	utils.RespondWithJSON(w, http.StatusOK, results)
}

// GetMyApplications joins the caller's applications against their jobs.
func GetMyApplications(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromRequest(r)

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"$or": []bson.M{{"userid": userID}, {"agentid": userID}}}}},
		{{Key: "$sort", Value: bson.M{"applied_at": -1}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "jobs",
			"localField":   "jobid",
			"foreignField": "jobid",
			"as":           "job",
		}}},
		{{Key: "$unwind", Value: "$job"}},
		{{Key: "$project", Value: bson.M{
			"_id":           0,
			"applicationid": 1,
			"status":        1,
			"applied_at":    1,
			"cover_letter":  1,
			"jobid":         "$job.jobid",
			"title":         "$job.title",
			"company":       "$job.company",
			"location":      "$job.location",
			"salary":        "$job.salary",
		}}},
	}

	cursor, err := db.ApplicationsCollection.Aggregate(ctx, pipeline)
	if err != nil {
		log.Printf("applications: aggregate error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch applications")
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

// GetJobApplications lists applicants for one posting (admin view).
func GetJobApplications(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()

	cursor, err := db.ApplicationsCollection.Find(ctx, bson.M{"jobid": ps.ByName("id")})
	if err != nil {
		log.Printf("applications: db error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer cursor.Close(ctx)

	var results []models.Application
	if err := cursor.All(ctx, &results); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to parse results")
		return
	}
	if len(results) == 0 {
		results = []models.Application{}
	}
	utils.RespondWithJSON(w, http.StatusOK, results)
}
