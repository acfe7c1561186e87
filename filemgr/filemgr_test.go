package filemgr

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnsureSafeFilename(t *testing.T) {
	assert.Equal(t, "my_resume.pdf", ensureSafeFilename("My Resume.docx", ".pdf"))
	assert.Equal(t, "file.jpg", ensureSafeFilename("", ".jpg"))
	assert.Equal(t, "file.jpg", ensureSafeFilename("@@@.png", ".jpg"))

	// path traversal attempts collapse to the base name
	assert.Equal(t, "passwd.png", ensureSafeFilename("../../etc/passwd", ".png"))
}

func TestExtensionAllowList(t *testing.T) {
	assert.True(t, isExtensionAllowed(".pdf", FileCV))
	assert.True(t, isExtensionAllowed(".jpg", FilePhoto))
	assert.False(t, isExtensionAllowed(".exe", FileCV))
	assert.False(t, isExtensionAllowed(".pdf", FilePhoto))
	assert.False(t, isExtensionAllowed(".jpg", "unknown"))
}

func TestMIMEAllowList(t *testing.T) {
	assert.True(t, isMIMEAllowed("application/pdf", FilePassport))
	assert.False(t, isMIMEAllowed("text/html", FilePassport))
	assert.False(t, isMIMEAllowed("image/jpeg", FileCV))
}

func TestResolvePath(t *testing.T) {
	assert.Equal(t,
		filepath.Join("static", "uploads", "user", "photo"),
		ResolvePath(EntityUser, FilePhoto))
	assert.Equal(t,
		filepath.Join("static", "uploads", "candidate", "cv"),
		ResolvePath(EntityCandidate, FileCV))
	assert.Equal(t,
		filepath.Join("static", "uploads", "bike", "images"),
		ResolvePath(EntityBike, FileImage))
}

func TestForDocumentType(t *testing.T) {
	for docType, want := range map[string]FileType{
		"photo":          FilePhoto,
		"cv":             FileCV,
		"passport":       FilePassport,
		"drivingLicense": FileLicense,
	} {
		got, ok := ForDocumentType(docType)
		assert.True(t, ok, docType)
		assert.Equal(t, want, got)
	}

	_, ok := ForDocumentType("visa")
	assert.False(t, ok)
}

func TestDeleteFileMissing(t *testing.T) {
	assert.NoError(t, DeleteFile(""))
	assert.NoError(t, DeleteFile("static/uploads/user/photo/does-not-exist.jpg"))
}
