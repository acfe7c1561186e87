package bikes

import (
	"net/http"
	"strconv"
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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetBikes lists marketplace inventory with optional search and pagination.
func GetBikes(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	opts := utils.ParseQueryOptions(r)

	filter := bson.M{"status": models.BikeAvailable}
	if opts.Search != "" {
		filter["$or"] = []bson.M{
			{"title": bson.M{"$regex": opts.Search, "$options": "i"}},
			{"brand": bson.M{"$regex": opts.Search, "$options": "i"}},
			{"model": bson.M{"$regex": opts.Search, "$options": "i"}},
		}
	}
	if opts.Location != "" {
		filter["location"] = bson.M{"$regex": opts.Location, "$options": "i"}
	}

	findOpts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetSkip(int64((opts.Page - 1) * opts.Limit)).
		SetLimit(int64(opts.Limit))

	cursor, err := db.BikesCollection.Find(ctx, filter, findOpts)
	if err != nil {
		log.Printf("bikes: db error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer cursor.Close(ctx)

	var results []models.Bike
	if err := cursor.All(ctx, &results); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to parse results")
		return
	}
	if len(results) == 0 {
		results = []models.Bike{}
	}
	utils.RespondWithJSON(w, http.StatusOK, results)
}

func GetBikeByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var bike models.Bike
	err := db.BikesCollection.FindOne(r.Context(), bson.M{"bikeid": ps.ByName("id")}).Decode(&bike)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Bike not found")
		} else {
			utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, bike)
}

func bikeFromForm(r *http.Request) (models.Bike, []string) {
	var missing []string
	field := func(name string) string {
		v := strings.TrimSpace(r.FormValue(name))
		if v == "" {
			missing = append(missing, name)
		}
		return v
	}

	bike := models.Bike{
		Title:       field("title"),
		Brand:       field("brand"),
		Model:       field("model"),
		Location:    strings.TrimSpace(r.FormValue("location")),
		Description: strings.TrimSpace(r.FormValue("description")),
	}

	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil || price <= 0 {
		missing = append(missing, "price")
	}
	bike.Price = price

	bike.Year, _ = strconv.Atoi(r.FormValue("year"))
	bike.Mileage, _ = strconv.Atoi(r.FormValue("mileage"))

	return bike, missing
}

// CreateBike publishes a listing directly (admin path).
func CreateBike(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

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
	bike.Images = images

	bike.BikeID = "b" + utils.GenerateRandomString(10)
	bike.Status = models.BikeAvailable
	bike.PostedBy = utils.GetAdminIDFromRequest(r)
	bike.CreatedAt = time.Now()
	bike.UpdatedAt = bike.CreatedAt

	if _, err := db.BikesCollection.InsertOne(ctx, bike); err != nil {
		log.Printf("bikes: insert error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create listing")
		return
	}

	utils.SendResponse(w, http.StatusCreated, bike, "Listing created", nil)
}

func UpdateBike(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(16 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid form data")
		return
	}
	defer r.MultipartForm.RemoveAll()

	update := bson.M{"updated_at": time.Now()}
	setIf := func(field, value string) {
		if v := strings.TrimSpace(value); v != "" {
			update[field] = v
		}
	}
	setIf("title", r.FormValue("title"))
	setIf("brand", r.FormValue("brand"))
	setIf("model", r.FormValue("model"))
	setIf("location", r.FormValue("location"))
	setIf("description", r.FormValue("description"))
	if v := r.FormValue("price"); v != "" {
		if price, err := strconv.ParseFloat(v, 64); err == nil && price > 0 {
			update["price"] = price
		}
	}
	if status := r.FormValue("status"); status != "" {
		if status != models.BikeAvailable && status != models.BikeSold {
			utils.RespondWithError(w, http.StatusBadRequest, "Unknown status")
			return
		}
		update["status"] = status
	}

	images, err := filemgr.SaveFormFiles(r.MultipartForm, "images", filemgr.EntityBike, filemgr.FileImage, false)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(images) > 0 {
		update["images"] = images
	}

	res, err := db.BikesCollection.UpdateOne(ctx, bson.M{"bikeid": ps.ByName("id")}, bson.M{"$set": update})
	if err != nil {
		log.Printf("bikes: update error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update listing")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Bike not found")
		return
	}

	utils.SendResponse(w, http.StatusOK, nil, "Listing updated", nil)
}

func DeleteBike(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	res, err := db.BikesCollection.DeleteOne(r.Context(), bson.M{"bikeid": ps.ByName("id")})
	if err != nil {
		log.Printf("bikes: delete error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete listing")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Bike not found")
		return
	}
	utils.SendResponse(w, http.StatusOK, nil, "Listing deleted", nil)
}
