package utils

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"lend/models"
)

// SaveUploadedFile writes an uploaded document to destDir under a fresh
// uuid filename and returns the document reference the engine tracks.
func SaveUploadedFile(file *multipart.FileHeader, destDir string) (*models.Document, error) {
	// Open the uploaded file
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	// Create destination directory if it doesn't exist
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, err
	}

	// Create a unique filename
	id := uuid.NewString()
	ext := filepath.Ext(file.Filename)
	filePath := filepath.Join(destDir, id+ext)

	// Create destination file
	dst, err := os.Create(filePath)
	if err != nil {
		return nil, err
	}
	defer dst.Close()

	// Copy the file content
	if _, err := io.Copy(dst, src); err != nil {
		return nil, err
	}

	mimeType := file.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	return &models.Document{
		ID:       id,
		URI:      filePath,
		Name:     file.Filename,
		MimeType: mimeType,
	}, nil
}
