package jobs

import (
	"context"
	"net/http"
	"strconv"
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

func findAndRespondJobs(ctx context.Context, w http.ResponseWriter, cursor *mongo.Cursor) {
	defer cursor.Close(ctx)
	var results []models.Job
	if err := cursor.All(ctx, &results); err != nil {
		log.Printf("jobs: cursor decode error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to parse results")
		return
	}
	if len(results) == 0 {
		results = []models.Job{}
	}
	utils.RespondWithJSON(w, http.StatusOK, results)
}

// GetJobs lists postings with optional search/type/location filters and
// pagination.
func GetJobs(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	opts := utils.ParseQueryOptions(r)

	filter := bson.M{}
	if opts.Search != "" {
		filter["$or"] = []bson.M{
			{"title": bson.M{"$regex": opts.Search, "$options": "i"}},
			{"company": bson.M{"$regex": opts.Search, "$options": "i"}},
			{"skills": bson.M{"$regex": opts.Search, "$options": "i"}},
		}
	}
	if opts.Type != "" {
		filter["type"] = opts.Type
	}
	if opts.Location != "" {
		filter["location"] = bson.M{"$regex": opts.Location, "$options": "i"}
	}

	findOpts := options.Find().
		SetSort(bson.M{"posted_at": -1}).
		SetSkip(int64((opts.Page - 1) * opts.Limit)).
		SetLimit(int64(opts.Limit))

	cursor, err := db.JobsCollection.Find(ctx, filter, findOpts)
	if err != nil {
		log.Printf("jobs: db error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	findAndRespondJobs(ctx, w, cursor)
}

func GetLatestJobs(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	opts := options.Find().SetSort(bson.M{"posted_at": -1}).SetLimit(20)

	cursor, err := db.JobsCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		log.Printf("jobs: db error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	findAndRespondJobs(ctx, w, cursor)
}

func GetJobByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var job models.Job
	err := db.JobsCollection.FindOne(r.Context(), bson.M{"jobid": ps.ByName("id")}).Decode(&job)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Job not found")
		} else {
			log.Printf("jobs: db error: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, job)
}

// jobFromForm builds a Job from form values. List fields accept either a
// comma-separated string or repeated form values.
func jobFromForm(r *http.Request) (models.Job, []string) {
	var missing []string
	field := func(name string) string {
		v := strings.TrimSpace(r.FormValue(name))
		if v == "" {
			missing = append(missing, name)
		}
		return v
	}

	job := models.Job{
		Title:       field("title"),
		Company:     field("company"),
		Location:    field("location"),
		Type:        field("type"),
		Description: field("description"),
		Country:     strings.TrimSpace(r.FormValue("country")),
		Salary:      strings.TrimSpace(r.FormValue("salary")),
	}

	if job.Type != "" && !utils.Contains(models.JobTypes, job.Type) {
		missing = append(missing, "type")
	}

	job.Requirements = utils.NormalizeList(r.Form["requirements"])
	job.Skills = utils.NormalizeList(r.Form["skills"])
	job.Benefits = utils.NormalizeList(r.Form["benefits"])

	job.AgeLimitMin, _ = strconv.Atoi(r.FormValue("age_limit_min"))
	job.AgeLimitMax, _ = strconv.Atoi(r.FormValue("age_limit_max"))

	if v := r.FormValue("expires_at"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			job.ExpiresAt = t
		}
	}

	return job, missing
}

// CreateJob is admin-gated (Sales/Main).
func CreateJob(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseForm(); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	job, missing := jobFromForm(r)
	if len(missing) > 0 {
		utils.SendResponse(w, http.StatusBadRequest, missing, "Missing or invalid fields", nil)
		return
	}

	job.JobID = "j" + utils.GenerateRandomString(10)
	job.PostedBy = utils.GetAdminIDFromRequest(r)
	job.PostedAt = time.Now()
	job.UpdatedAt = job.PostedAt

	if _, err := db.JobsCollection.InsertOne(r.Context(), job); err != nil {
		log.Printf("jobs: insert error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create job")
		return
	}

	utils.SendResponse(w, http.StatusCreated, job, "Job created", nil)
}

func UpdateJob(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := r.ParseForm(); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	job, missing := jobFromForm(r)
	if len(missing) > 0 {
		utils.SendResponse(w, http.StatusBadRequest, missing, "Missing or invalid fields", nil)
		return
	}

	update := bson.M{
		"title":         job.Title,
		"company":       job.Company,
		"location":      job.Location,
		"country":       job.Country,
		"type":          job.Type,
		"description":   job.Description,
		"requirements":  job.Requirements,
		"skills":        job.Skills,
		"benefits":      job.Benefits,
		"salary":        job.Salary,
		"age_limit_min": job.AgeLimitMin,
		"age_limit_max": job.AgeLimitMax,
		"updated_at":    time.Now(),
	}
	if !job.ExpiresAt.IsZero() {
		update["expires_at"] = job.ExpiresAt
	}

	res, err := db.JobsCollection.UpdateOne(r.Context(), bson.M{"jobid": ps.ByName("id")}, bson.M{"$set": update})
	if err != nil {
		log.Printf("jobs: update error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update job")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Job not found")
		return
	}

	utils.SendResponse(w, http.StatusOK, nil, "Job updated", nil)
}

func DeleteJob(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	res, err := db.JobsCollection.DeleteOne(r.Context(), bson.M{"jobid": ps.ByName("id")})
	if err != nil {
		log.Printf("jobs: delete error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete job")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Job not found")
		return
	}

	utils.SendResponse(w, http.StatusOK, nil, "Job deleted", nil)
}
