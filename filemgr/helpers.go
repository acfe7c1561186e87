package filemgr

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_\-]`)

func ensureSafeFilename(name, ext string) string {
	name = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	name = strings.ToLower(strings.ReplaceAll(name, " ", "_"))
	name = unsafeChars.ReplaceAllString(name, "")
	if name == "" {
		name = "file"
	}
	return name + ext
}

func isExtensionAllowed(ext string, fileType FileType) bool {
	for _, a := range AllowedExtensions[fileType] {
		if ext == a {
			return true
		}
	}
	return false
}

func isMIMEAllowed(mimeType string, fileType FileType) bool {
	for _, a := range AllowedMIMEs[fileType] {
		if mimeType == a {
			return true
		}
	}
	return false
}

func isImageType(fileType FileType) bool {
	switch fileType {
	case FilePhoto, FileLogo, FileImage:
		return true
	default:
		return false
	}
}

// ResolvePath returns the storage directory for an entity/slot pair, e.g.
// static/uploads/user/photo.
func ResolvePath(entity EntityType, fileType FileType) string {
	subfolder := FileSubfolders[fileType]
	if subfolder == "" {
		subfolder = "misc"
	}
	return filepath.Join("static", "uploads", strings.ToLower(string(entity)), subfolder)
}

func maxSizeFor(fileType FileType) int64 {
	if s, ok := MaxFileSizes[fileType]; ok {
		return s
	}
	return 10 << 20
}

// DeleteFile purges a stored object by its public path. A missing file is
// not an error; the record is the source of truth.
func DeleteFile(path string) error {
	if path == "" {
		return nil
	}
	err := os.Remove(filepath.Clean(strings.TrimPrefix(path, "/")))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
