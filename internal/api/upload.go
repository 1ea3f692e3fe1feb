package api

import (
	"cat_api/internal/apperror" // Classified errors
	"errors"                    // Error inspection
	"mime/multipart"            // Uploaded file headers
	"net/http"                  // Multipart sentinel errors
	"os"                        // File removal
	"path/filepath"             // Path handling

	"github.com/gabriel-vasile/mimetype" // Content sniffing
	"github.com/gin-gonic/gin"           // Gin web framework
	"github.com/google/uuid"             // Collision free file names
	"github.com/sirupsen/logrus"         // Logging library
)

const uploadField = "file" // Multipart field carrying the cat image

// NotAnImageMessage is returned when the attached file is not an allowed image
const NotAnImageMessage = "Only jpeg, png, gif or webp images are allowed"

// allowedImages lists the content types served back from /uploads
var allowedImages = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// Uploader stores attached files on local disk under generated names
type Uploader struct {
	dir string // Target directory
}

// NewUploader returns an Uploader writing into dir
func NewUploader(dir string) *Uploader {
	return &Uploader{dir: dir}
}

// Dir returns the directory files are written to
func (u *Uploader) Dir() string {
	return u.dir
}

// Save stores the attached file, if any, and returns its generated name.
// A request without a file yields a nil name.
func (u *Uploader) Save(c *gin.Context) (*string, error) {
	fh, err := c.FormFile(uploadField) // Look for the attached file
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil // No file attached
	}
	if err != nil {
		return nil, apperror.BadRequest("Invalid file upload")
	}
	ext, err := imageExtension(fh)
	if err != nil {
		return nil, err
	}
	name := uuid.NewString() + ext // Extension follows the content, not the client's file name
	if err := c.SaveUploadedFile(fh, filepath.Join(u.dir, name)); err != nil {
		return nil, apperror.Internal(err)
	}
	return &name, nil
}

// imageExtension sniffs the upload and returns the extension of its image type
func imageExtension(fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", apperror.BadRequest("Invalid file upload")
	}
	defer f.Close()

	mt, err := mimetype.DetectReader(f) // Reads only the header bytes
	if err != nil {
		return "", apperror.Internal(err)
	}
	for _, allowed := range allowedImages {
		if mt.Is(allowed) {
			return mt.Extension(), nil
		}
	}
	logrus.WithFields(logrus.Fields{
		"file": fh.Filename, // Client supplied name
		"mime": mt.String(), // Detected type
	}).Info("Rejected upload")
	return "", apperror.BadRequest(NotAnImageMessage)
}

// Remove deletes a previously saved file; failures are only logged
func (u *Uploader) Remove(name *string) {
	if name == nil {
		return
	}
	if err := os.Remove(filepath.Join(u.dir, *name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		logrus.WithFields(logrus.Fields{
			"file":  *name,       // Stored file name
			"error": err.Error(), // Error message
		}).Warn("Failed to remove upload")
	}
}
