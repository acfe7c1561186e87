package documents

import (
	"context"
	"net/http"
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

func deleteExistingDocument(ctx context.Context, filter bson.M) (*models.Document, error) {
	var existing models.Document
	err := db.DocumentsCollection.FindOneAndDelete(ctx, filter).Decode(&existing)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &existing, nil
}

func insertDocument(ctx context.Context, doc models.Document) error {
	_, err := db.DocumentsCollection.InsertOne(ctx, doc)
	return err
}

// Indirections swapped out in tests.
var (
	removeExisting = deleteExistingDocument
	saveDocument   = insertDocument
	purgeFile      = filemgr.DeleteFile
)

// storeDocument persists an uploaded file record for an owner. Single-slot
// types (photo, passport, drivingLicense) replace any existing record of
// that type and purge its file; cv always appends.
func storeDocument(ctx context.Context, ownerID, ownerType, docType, path, fileName, mimeType string, size int64) (*models.Document, error) {
	if models.IsSingleSlot(docType) {
		existing, err := removeExisting(ctx, bson.M{
			"ownerid":   ownerID,
			"ownertype": ownerType,
			"type":      docType,
		})
		if err != nil {
			return nil, err
		}
		if existing != nil {
			if err := purgeFile(existing.URL); err != nil {
				log.Printf("documents: purge replaced file: %v", err)
			}
		}
	}

	doc := models.Document{
		DocumentID: "d" + utils.GenerateRandomString(10),
		OwnerID:    ownerID,
		OwnerType:  ownerType,
		Type:       docType,
		FileName:   fileName,
		URL:        path,
		MimeType:   mimeType,
		Size:       size,
		UploadedAt: time.Now(),
	}
	if err := saveDocument(ctx, doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// UploadDocument handles POST /api/documents/:type for the authenticated
// actor. The path segment doubles as the multipart field name.
func UploadDocument(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromRequest(r)
	docType := ps.ByName("type")

	fileType, ok := filemgr.ForDocumentType(docType)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown document type")
		return
	}

	if err := r.ParseMultipartForm(12 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid form data")
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File[docType]
	if len(files) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing file: "+docType)
		return
	}

	path, err := filemgr.SaveFormFile(r.MultipartForm, docType, filemgr.EntityUser, fileType, true)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	hdr := files[0]
	doc, err := storeDocument(ctx, userID, models.OwnerUser, docType, path, hdr.Filename, hdr.Header.Get("Content-Type"), hdr.Size)
	if err != nil {
		log.Printf("documents: store error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save document")
		return
	}

	utils.SendResponse(w, http.StatusCreated, doc, "Document uploaded", nil)
}

// UploadCandidateDocument stores a document against one of the calling
// agent's managed candidates.
func UploadCandidateDocument(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	agentID := utils.GetUserIDFromRequest(r)
	candidateID := ps.ByName("id")
	docType := ps.ByName("type")

	fileType, ok := filemgr.ForDocumentType(docType)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown document type")
		return
	}

	var candidate models.Candidate
	err := db.CandidatesCollection.FindOne(ctx, bson.M{"candidateid": candidateID}).Decode(&candidate)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Candidate not found")
		return
	} else if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if candidate.AgentID != agentID {
		utils.RespondWithError(w, http.StatusForbidden, "Candidate is not managed by you")
		return
	}

	if err := r.ParseMultipartForm(12 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid form data")
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File[docType]
	if len(files) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing file: "+docType)
		return
	}

	path, err := filemgr.SaveFormFile(r.MultipartForm, docType, filemgr.EntityCandidate, fileType, true)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	hdr := files[0]
	doc, err := storeDocument(ctx, candidateID, models.OwnerCandidate, docType, path, hdr.Filename, hdr.Header.Get("Content-Type"), hdr.Size)
	if err != nil {
		log.Printf("documents: store error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save document")
		return
	}

	utils.SendResponse(w, http.StatusCreated, doc, "Document uploaded", nil)
}

// GetDocuments lists the actor's documents, optionally scoped by type via
// GET /api/documents/type/:type.
func GetDocuments(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromRequest(r)

	filter := bson.M{"ownerid": userID, "ownertype": models.OwnerUser}
	if docType := ps.ByName("type"); docType != "" {
		if !utils.Contains(models.DocumentTypes, docType) {
			utils.RespondWithError(w, http.StatusBadRequest, "Unknown document type")
			return
		}
		filter["type"] = docType
	}

	cursor, err := db.DocumentsCollection.Find(ctx, filter, options.Find().SetSort(bson.M{"uploaded_at": -1}))
	if err != nil {
		log.Printf("documents: db error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer cursor.Close(ctx)

	var results []models.Document
	if err := cursor.All(ctx, &results); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to parse results")
		return
	}
	if len(results) == 0 {
		results = []models.Document{}
	}
	utils.RespondWithJSON(w, http.StatusOK, results)
}

// DeleteDocument removes one document by id, purging the stored file. Only
// the owner (or the owning agent, for candidate documents) may delete.
func DeleteDocument(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromRequest(r)
	documentID := ps.ByName("id")

	var doc models.Document
	err := db.DocumentsCollection.FindOne(ctx, bson.M{"documentid": documentID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Document not found")
		return
	} else if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	switch doc.OwnerType {
	case models.OwnerUser:
		if doc.OwnerID != userID {
			utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
			return
		}
	case models.OwnerCandidate:
		var candidate models.Candidate
		if err := db.CandidatesCollection.FindOne(ctx, bson.M{"candidateid": doc.OwnerID}).Decode(&candidate); err != nil || candidate.AgentID != userID {
			utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
			return
		}
	}

	if _, err := db.DocumentsCollection.DeleteOne(ctx, bson.M{"documentid": documentID}); err != nil {
		log.Printf("documents: delete error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete document")
		return
	}

	if err := filemgr.DeleteFile(doc.URL); err != nil {
		log.Printf("documents: purge file: %v", err)
	}

	utils.SendResponse(w, http.StatusOK, nil, "Document deleted", nil)
}
