package filemgr

import "errors"

type EntityType string
type FileType string

const (
	EntityUser      EntityType = "user"
	EntityCandidate EntityType = "candidate"
	EntityJob       EntityType = "job"
	EntityBike      EntityType = "bike"
	EntityChat      EntityType = "chat"

	FilePhoto    FileType = "photo"
	FileCV       FileType = "cv"
	FilePassport FileType = "passport"
	FileLicense  FileType = "drivingLicense"
	FileLogo     FileType = "logo"
	FileImage    FileType = "image"
)

var (
	AllowedExtensions = map[FileType][]string{
		FilePhoto:    {".jpg", ".jpeg", ".png", ".webp"},
		FileLogo:     {".jpg", ".jpeg", ".png", ".webp"},
		FileImage:    {".jpg", ".jpeg", ".png", ".webp"},
		FilePassport: {".jpg", ".jpeg", ".png", ".pdf"},
		FileLicense:  {".jpg", ".jpeg", ".png", ".pdf"},
		FileCV:       {".pdf", ".doc", ".docx"},
	}

	AllowedMIMEs = map[FileType][]string{
		FilePhoto:    {"image/jpeg", "image/png", "image/webp"},
		FileLogo:     {"image/jpeg", "image/png", "image/webp"},
		FileImage:    {"image/jpeg", "image/png", "image/webp"},
		FilePassport: {"image/jpeg", "image/png", "application/pdf"},
		FileLicense:  {"image/jpeg", "image/png", "application/pdf"},
		FileCV: {
			"application/pdf", "application/msword",
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		},
	}

	// Upload ceilings per slot, enforced before any controller runs.
	MaxFileSizes = map[FileType]int64{
		FilePhoto:    5 << 20,
		FileLogo:     5 << 20,
		FileImage:    8 << 20,
		FilePassport: 8 << 20,
		FileLicense:  8 << 20,
		FileCV:       10 << 20,
	}

	FileSubfolders = map[FileType]string{
		FilePhoto:    "photo",
		FileLogo:     "logo",
		FileImage:    "images",
		FilePassport: "passport",
		FileLicense:  "license",
		FileCV:       "cv",
	}

	ErrInvalidExtension = errors.New("invalid file extension")
	ErrInvalidMIME      = errors.New("invalid MIME type")
	ErrFileTooLarge     = errors.New("file size exceeds limit")
)

// ForDocumentType maps a document type discriminator (which doubles as the
// upload form-field name) to its slot.
func ForDocumentType(docType string) (FileType, bool) {
	switch docType {
	case "photo":
		return FilePhoto, true
	case "cv":
		return FileCV, true
	case "passport":
		return FilePassport, true
	case "drivingLicense":
		return FileLicense, true
	default:
		return "", false
	}
}
