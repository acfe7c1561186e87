package admin

import (
	"encoding/json"
	"net/http"
	"time"

	"workline/db"
	"workline/globals"
	"workline/middleware"
	"workline/models"
	"workline/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

const adminTokenTTL = 8 * time.Hour

// Login authenticates against the admin collection. Admin tokens are signed
// with their own secret, so they never pass the actor middleware and actor
// tokens never pass RequireAdmin.
func Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if creds.Email == "" || creds.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	var account models.Admin
	err := db.AdminCollection.FindOne(ctx, bson.M{"email": creds.Email}).Decode(&account)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(creds.Password)) != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	claims := &middleware.AdminClaims{
		AdminID: account.AdminID,
		Role:    account.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(adminTokenTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.AdminJwtSecret)
	if err != nil {
		log.Printf("admin: token sign error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	_, _ = db.AdminCollection.UpdateOne(ctx,
		bson.M{"adminid": account.AdminID},
		bson.M{"$set": bson.M{"last_login": time.Now()}})

	utils.SendResponse(w, http.StatusOK, utils.M{
		"token":   token,
		"adminid": account.AdminID,
		"role":    account.Role,
	}, "Login successful", nil)
}

// GetUsers lists portal accounts for administration, optionally by role.
func GetUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	opts := utils.ParseQueryOptions(r)

	filter := bson.M{}
	if role := r.URL.Query().Get("role"); role != "" {
		filter["role"] = role
	}
	if opts.Search != "" {
		filter["$or"] = []bson.M{
			{"username": bson.M{"$regex": opts.Search, "$options": "i"}},
			{"email": bson.M{"$regex": opts.Search, "$options": "i"}},
		}
	}

	findOpts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetSkip(int64((opts.Page - 1) * opts.Limit)).
		SetLimit(int64(opts.Limit)).
		SetProjection(bson.M{"password": 0, "refresh_token": 0})

	cursor, err := db.UserCollection.Find(ctx, filter, findOpts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode users")
		return
	}
	if len(users) == 0 {
		users = []models.User{}
	}
	utils.RespondWithJSON(w, http.StatusOK, users)
}

// DeleteUser removes an account and its dependent records. Each cleanup is
// attempted independently; failures are reported rather than rolled back.
func DeleteUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	userID := ps.ByName("id")

	res, err := db.UserCollection.DeleteOne(ctx, bson.M{"userid": userID})
	if err != nil {
		log.Printf("admin: user delete error for %s: %v", userID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete user")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	var failed []string
	cleanup := func(name string, coll *mongo.Collection, filter bson.M) {
		if _, err := coll.DeleteMany(ctx, filter); err != nil {
			log.Printf("admin: %s cleanup error for %s: %v", name, userID, err)
			failed = append(failed, name)
		}
	}
	cleanup("applications", db.ApplicationsCollection, bson.M{"userid": userID})
	cleanup("documents", db.DocumentsCollection, bson.M{"ownerid": userID})
	cleanup("wishlist", db.WishlistCollection, bson.M{"userid": userID})
	cleanup("assignments", db.ChatAssignmentsCollection, bson.M{"userid": userID})

	if len(failed) > 0 {
		utils.SendResponse(w, http.StatusOK,
			utils.M{"cleanup_failed": failed},
			"User deleted but some related records remain", nil)
		return
	}
	utils.SendResponse(w, http.StatusOK, nil, "User deleted", nil)
}

// VerifyAgent marks an agent account as verified.
func VerifyAgent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	agentID := ps.ByName("id")

	res, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": agentID, "role": models.RoleAgent},
		bson.M{"$set": bson.M{"verified": true, "updated_at": time.Now()}})
	if err != nil {
		log.Printf("admin: verify error for %s: %v", agentID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to verify agent")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Agent not found")
		return
	}
	utils.SendResponse(w, http.StatusOK, nil, "Agent verified", nil)
}
