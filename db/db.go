package db

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection              *mongo.Collection
	AdminCollection             *mongo.Collection
	JobsCollection              *mongo.Collection
	ApplicationsCollection      *mongo.Collection
	JobInquiriesCollection      *mongo.Collection
	CandidatesCollection        *mongo.Collection
	CandidateInquiryCollection  *mongo.Collection
	DocumentsCollection         *mongo.Collection
	WishlistCollection          *mongo.Collection
	BikesCollection             *mongo.Collection
	BikeSubmissionsCollection   *mongo.Collection
	MessagesCollection          *mongo.Collection
	ChatAssignmentsCollection   *mongo.Collection
	AnalyticsSnapshotCollection *mongo.Collection
	Client                      *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	var err error
	Client, err = mongo.Connect(context.TODO(), options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	database := Client.Database("worklinedb")
	UserCollection = database.Collection("users")
	AdminCollection = database.Collection("admins")
	JobsCollection = database.Collection("jobs")
	ApplicationsCollection = database.Collection("applications")
	JobInquiriesCollection = database.Collection("jobinquiries")
	CandidatesCollection = database.Collection("candidates")
	CandidateInquiryCollection = database.Collection("candidateinquiries")
	DocumentsCollection = database.Collection("documents")
	WishlistCollection = database.Collection("wishlist")
	BikesCollection = database.Collection("bikes")
	BikeSubmissionsCollection = database.Collection("bikesubmissions")
	MessagesCollection = database.Collection("messages")
	ChatAssignmentsCollection = database.Collection("chatassignments")
	AnalyticsSnapshotCollection = database.Collection("analyticssnapshots")
}

// EnsureIndexes creates the unique indexes that back the portal's
// at-most-once invariants. Duplicate signups, duplicate applications and
// duplicate wishlist saves fail at the storage layer instead of relying on
// a read-then-write check.
func EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	type indexDef struct {
		coll *mongo.Collection
		keys bson.D
	}

	unique := []indexDef{
		{UserCollection, bson.D{{Key: "email", Value: 1}}},
		{AdminCollection, bson.D{{Key: "email", Value: 1}}},
		{ApplicationsCollection, bson.D{{Key: "jobid", Value: 1}, {Key: "userid", Value: 1}}},
		{WishlistCollection, bson.D{{Key: "userid", Value: 1}, {Key: "itemtype", Value: 1}, {Key: "itemid", Value: 1}}},
		{AnalyticsSnapshotCollection, bson.D{{Key: "agentid", Value: 1}, {Key: "date", Value: 1}}},
		{ChatAssignmentsCollection, bson.D{{Key: "userid", Value: 1}}},
	}
	for _, s := range unique {
		_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    s.keys,
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			return err
		}
	}

	plain := []indexDef{
		{ApplicationsCollection, bson.D{{Key: "agentid", Value: 1}}},
		{CandidatesCollection, bson.D{{Key: "agentid", Value: 1}}},
		{DocumentsCollection, bson.D{{Key: "ownerid", Value: 1}, {Key: "type", Value: 1}}},
		{MessagesCollection, bson.D{{Key: "senderid", Value: 1}, {Key: "createdAt", Value: 1}}},
		{MessagesCollection, bson.D{{Key: "recipientid", Value: 1}, {Key: "createdAt", Value: 1}}},
	}
	for _, s := range plain {
		if _, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: s.keys}); err != nil {
			return err
		}
	}
	return nil
}

func OptionsFindLatest(limit int64) *options.FindOptions {
	return options.Find().SetLimit(limit)
}

func OptionsFindAsc(field string) *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: field, Value: 1}})
}
