package documents

import (
	"context"
	"testing"

	"workline/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type docStoreRecorder struct {
	existing *models.Document
	removed  []bson.M
	inserted []models.Document
	purged   []string
}

// stubDocStore swaps the storage indirections for recorders and restores
// them when the test finishes.
func stubDocStore(t *testing.T, existing *models.Document) *docStoreRecorder {
	t.Helper()

	origRemove := removeExisting
	origSave := saveDocument
	origPurge := purgeFile
	t.Cleanup(func() {
		removeExisting = origRemove
		saveDocument = origSave
		purgeFile = origPurge
	})

	rec := &docStoreRecorder{existing: existing}
	removeExisting = func(_ context.Context, filter bson.M) (*models.Document, error) {
		rec.removed = append(rec.removed, filter)
		return rec.existing, nil
	}
	saveDocument = func(_ context.Context, doc models.Document) error {
		rec.inserted = append(rec.inserted, doc)
		return nil
	}
	purgeFile = func(path string) error {
		rec.purged = append(rec.purged, path)
		return nil
	}
	return rec
}

func TestStoreDocumentSingleSlotReplaces(t *testing.T) {
	prior := &models.Document{DocumentID: "dOLD", URL: "/static/uploads/user/old.jpg"}
	rec := stubDocStore(t, prior)

	doc, err := storeDocument(context.Background(), "u1", models.OwnerUser,
		models.DocPhoto, "/static/uploads/user/new.jpg", "new.jpg", "image/jpeg", 1024)
	require.NoError(t, err)

	// second photo replaces the first: old record gone, old file purged
	require.Len(t, rec.removed, 1)
	assert.Equal(t, models.DocPhoto, rec.removed[0]["type"])
	assert.Equal(t, []string{"/static/uploads/user/old.jpg"}, rec.purged)

	require.Len(t, rec.inserted, 1)
	assert.Equal(t, doc.DocumentID, rec.inserted[0].DocumentID)
	assert.Equal(t, "/static/uploads/user/new.jpg", rec.inserted[0].URL)
}

func TestStoreDocumentSingleSlotFirstUpload(t *testing.T) {
	rec := stubDocStore(t, nil)

	_, err := storeDocument(context.Background(), "u1", models.OwnerUser,
		models.DocPassport, "/static/uploads/user/pass.pdf", "pass.pdf", "application/pdf", 2048)
	require.NoError(t, err)

	assert.Len(t, rec.removed, 1)
	assert.Empty(t, rec.purged)
	assert.Len(t, rec.inserted, 1)
}

func TestStoreDocumentCvAppends(t *testing.T) {
	rec := stubDocStore(t, &models.Document{DocumentID: "dOLD", URL: "/static/uploads/user/old.pdf"})

	doc, err := storeDocument(context.Background(), "u1", models.OwnerUser,
		models.DocCV, "/static/uploads/user/cv2.pdf", "cv2.pdf", "application/pdf", 4096)
	require.NoError(t, err)

	// cv is append-only: nothing removed or purged even with a prior upload
	assert.Empty(t, rec.removed)
	assert.Empty(t, rec.purged)
	require.Len(t, rec.inserted, 1)
	assert.Equal(t, "u1", rec.inserted[0].OwnerID)
	assert.NotEmpty(t, doc.DocumentID)
}
