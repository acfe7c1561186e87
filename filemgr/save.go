package filemgr

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// SaveFormFile validates and stores the first file under formKey and
// returns its public path. Missing optional files return "".
func SaveFormFile(form *multipart.Form, formKey string, entity EntityType, fileType FileType, required bool) (string, error) {
	files := form.File[formKey]
	if len(files) == 0 {
		if required {
			return "", fmt.Errorf("missing required file: %s", formKey)
		}
		return "", nil
	}
	file, err := files[0].Open()
	if err != nil {
		return "", fmt.Errorf("open %s: %w", formKey, err)
	}
	return SaveFileForEntity(file, files[0], entity, fileType)
}

// SaveFormFiles stores every file under formKey.
func SaveFormFiles(form *multipart.Form, formKey string, entity EntityType, fileType FileType, required bool) ([]string, error) {
	files := form.File[formKey]
	if len(files) == 0 {
		if required {
			return nil, fmt.Errorf("missing required files: %s", formKey)
		}
		return nil, nil
	}

	var saved []string
	var errs []string

	for _, hdr := range files {
		file, err := hdr.Open()
		if err != nil {
			errs = append(errs, fmt.Sprintf("open %s: %v", hdr.Filename, err))
			continue
		}
		name, err := SaveFileForEntity(file, hdr, entity, fileType)
		if err != nil {
			errs = append(errs, fmt.Sprintf("save %s: %v", hdr.Filename, err))
			continue
		}
		saved = append(saved, name)
	}

	if len(errs) > 0 {
		return saved, fmt.Errorf("one or more errors saving files: %s", strings.Join(errs, "; "))
	}
	return saved, nil
}

// SaveFileForEntity stores one upload under the entity's directory for the
// slot. Images are re-encoded (stripping EXIF) and get a thumbnail.
func SaveFileForEntity(file multipart.File, header *multipart.FileHeader, entity EntityType, fileType FileType) (string, error) {
	defer file.Close()
	dest := ResolvePath(entity, fileType)

	buf, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}

	if isImageType(fileType) {
		img, _, err := image.Decode(bytes.NewReader(buf))
		if err == nil {
			stripped := new(bytes.Buffer)
			if err := jpeg.Encode(stripped, img, &jpeg.Options{Quality: 90}); err == nil {
				buf = stripped.Bytes()
			}

			fileName, err := saveFile(bytes.NewReader(buf), header, dest, fileType)
			if err != nil {
				return "", err
			}

			_ = generateThumbnail(img, entity, fileName)
			return fileName, nil
		}
		// fall through to the plain save if decode fails
	}

	return saveFile(bytes.NewReader(buf), header, dest, fileType)
}

func saveFile(reader io.Reader, header *multipart.FileHeader, destDir string, fileType FileType) (string, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !isExtensionAllowed(ext, fileType) {
		return "", fmt.Errorf("%w: %s for %s", ErrInvalidExtension, ext, fileType)
	}
	if header.Size > maxSizeFor(fileType) {
		return "", fmt.Errorf("%w: %d bytes for %s", ErrFileTooLarge, header.Size, fileType)
	}

	head := make([]byte, 512)
	n, err := reader.Read(head)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read header: %w", err)
	}
	mimeType := http.DetectContentType(head[:n])
	if mimeType == "application/octet-stream" {
		if formMime := header.Header.Get("Content-Type"); formMime != "" {
			mimeType = formMime
		}
	}
	if !isMIMEAllowed(mimeType, fileType) {
		return "", fmt.Errorf("%w: %s for %s", ErrInvalidMIME, mimeType, fileType)
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", destDir, err)
	}

	filename := uuid.NewString()[:8] + "_" + ensureSafeFilename(header.Filename, ext)
	fullPath := filepath.Join(destDir, filename)

	out, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", fullPath, err)
	}
	defer out.Close()

	if _, err := out.Write(head[:n]); err != nil {
		return "", fmt.Errorf("write %s: %w", fullPath, err)
	}
	if _, err := io.Copy(out, reader); err != nil {
		return "", fmt.Errorf("write %s: %w", fullPath, err)
	}

	return "/" + filepath.ToSlash(fullPath), nil
}

func generateThumbnail(img image.Image, entity EntityType, fileName string) error {
	thumbDir := filepath.Join("static", "uploads", strings.ToLower(string(entity)), "thumb")
	if err := os.MkdirAll(thumbDir, 0o755); err != nil {
		return err
	}

	thumb := imaging.Resize(img, 160, 0, imaging.Lanczos)
	thumbPath := filepath.Join(thumbDir, filepath.Base(fileName))
	return imaging.Save(thumb, thumbPath)
}
