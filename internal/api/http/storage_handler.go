package http

import (
	"io"
	"net/http"
	"path/filepath"

	"rentfolio-backend/internal/storage"

	"github.com/gorilla/mux"
)

// DocumentHandler handles HTTP uploads and downloads for mock storage.
// Listing photos, proof-of-payment files and insurance policy documents all
// flow through the same presigned-URL shape the cloud backends use.
type DocumentHandler struct {
	mockStorage *storage.MockStorageService
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(mockStorage *storage.MockStorageService) *DocumentHandler {
	return &DocumentHandler{
		mockStorage: mockStorage,
	}
}

var allowedUploadTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"application/pdf": true,
}

// HandleMockUpload handles HTTP PUT requests to mock presigned URLs
func (h *DocumentHandler) HandleMockUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	key := r.URL.Query().Get("key")
	if key == "" {
		http.Error(w, "Missing key parameter", http.StatusBadRequest)
		return
	}

	if !allowedUploadTypes[r.Header.Get("Content-Type")] {
		http.Error(w, "Invalid content type", http.StatusBadRequest)
		return
	}

	err := h.mockStorage.SaveFile(key, r.Body)
	if err != nil {
		http.Error(w, "Failed to save file", http.StatusInternalServerError)
		return
	}

	// Return success (mimic S3 response)
	w.Header().Set("ETag", `"mock-etag-success"`)
	w.WriteHeader(http.StatusOK)
}

// HandleMockDownload handles HTTP GET requests to download documents
func (h *DocumentHandler) HandleMockDownload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	key := r.URL.Query().Get("key")
	if key == "" {
		http.Error(w, "Missing key parameter", http.StatusBadRequest)
		return
	}

	file, err := h.mockStorage.ReadFile(key)
	if err != nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}
	defer file.Close()

	// Determine content type from file extension
	ext := filepath.Ext(key)
	contentType := "application/octet-stream"
	switch ext {
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".png":
		contentType = "image/png"
	case ".pdf":
		contentType = "application/pdf"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "private, max-age=3600")

	io.Copy(w, file)
}

// RegisterMockStorageRoutes registers the mock storage HTTP endpoints
func RegisterMockStorageRoutes(router *mux.Router, mockStorage *storage.MockStorageService) {
	handler := NewDocumentHandler(mockStorage)
	router.HandleFunc("/api/v1/upload/{token}", handler.HandleMockUpload).Methods("PUT")
	router.HandleFunc("/api/v1/download/{key}", handler.HandleMockDownload).Methods("GET")
}
