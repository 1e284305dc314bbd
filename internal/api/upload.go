package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	"github.com/pageza/fridge-recipes/backend/internal/types"
)

// PhotoField is the multipart field carrying the fridge photo
const PhotoField = "photo"

// multipartOverhead is allowed on top of the file limit for boundaries and part headers
const multipartOverhead = 1 << 20

// UploadError is a rejected upload, rendered as {error, message}
type UploadError struct {
	Status  int
	Title   string
	Message string
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Title, e.Message)
}

func errFileTooLarge(maxBytes int64) *UploadError {
	return &UploadError{
		Status:  http.StatusRequestEntityTooLarge,
		Title:   "File too large",
		Message: fmt.Sprintf("The photo must be at most %d MB", maxBytes>>20),
	}
}

// ReadPhoto validates the multipart "photo" field and buffers it in memory.
// The body is capped before parsing, so an oversized upload is never fully read.
func ReadPhoto(c *gin.Context, maxBytes int64) (*types.UploadedImage, *UploadError) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes+multipartOverhead)

	header, err := c.FormFile(PhotoField)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, errFileTooLarge(maxBytes)
		}
		return nil, &UploadError{
			Status:  http.StatusBadRequest,
			Title:   "No photo uploaded",
			Message: "Attach an image in the \"photo\" field",
		}
	}

	if header.Size > maxBytes {
		return nil, errFileTooLarge(maxBytes)
	}

	file, err := header.Open()
	if err != nil {
		return nil, &UploadError{
			Status:  http.StatusBadRequest,
			Title:   "No photo uploaded",
			Message: "The uploaded photo could not be read",
		}
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		return nil, &UploadError{
			Status:  http.StatusBadRequest,
			Title:   "No photo uploaded",
			Message: "The uploaded photo could not be read",
		}
	}
	if int64(len(data)) > maxBytes {
		return nil, errFileTooLarge(maxBytes)
	}
	if len(data) == 0 {
		return nil, &UploadError{
			Status:  http.StatusBadRequest,
			Title:   "No photo uploaded",
			Message: "The uploaded photo is empty",
		}
	}

	mimeType := detectMIMEType(header.Header.Get("Content-Type"), data)
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, &UploadError{
			Status:  http.StatusBadRequest,
			Title:   "Only image files are allowed!",
			Message: fmt.Sprintf("Unsupported file type %q", mimeType),
		}
	}

	return &types.UploadedImage{
		Data:     data,
		MIMEType: mimeType,
		Filename: header.Filename,
		Size:     int64(len(data)),
	}, nil
}

// detectMIMEType trusts the declared part type unless it is missing or generic,
// in which case the type is sniffed from the content.
func detectMIMEType(declared string, data []byte) string {
	declared = strings.ToLower(strings.TrimSpace(strings.SplitN(declared, ";", 2)[0]))
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	detected := mimetype.Detect(data).String()
	return strings.TrimSpace(strings.SplitN(detected, ";", 2)[0])
}
