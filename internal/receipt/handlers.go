package receipt

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/efekanoption-hub/FisTaray-c/internal/extraction"
)

const maxUploadSize = int64(50 << 20) // 50MB, high-resolution phone photos

// writeJSON encodes v as the response body
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// writeError writes a JSON error body
func writeError(w http.ResponseWriter, message string, code int) {
	writeJSON(w, code, map[string]string{"error": message})
}

// statusFor maps service errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrProfileNotFound), errors.Is(err, ErrReceiptNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDefaultProfile), errors.Is(err, ErrEmptyProfileName), errors.Is(err, ErrInvalidReceiptID):
		return http.StatusBadRequest
	case errors.Is(err, ErrRecognition):
		// An unreadable photo or an unsupported format
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError logs unexpected failures and writes the mapped status
func writeServiceError(w http.ResponseWriter, action string, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		slog.Error("Error "+action, "error", err)
		writeError(w, "Internal server error", code)
		return
	}
	writeError(w, err.Error(), code)
}

func receiptID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidReceiptID, r.PathValue("id"))
	}
	return id, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleListProfiles returns all profiles
func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.service.ListProfiles()
	if err != nil {
		writeServiceError(w, "listing profiles", err)
		return
	}
	writeJSON(w, http.StatusOK, profiles)
}

// handleCreateProfile creates a profile from {"name": "..."}
func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	profile, err := s.service.CreateProfile(req.Name)
	if err != nil {
		writeServiceError(w, "creating profile", err)
		return
	}
	writeJSON(w, http.StatusCreated, profile)
}

// handleDeleteProfile deletes a profile and its history
func (s *Server) handleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeleteProfile(r.PathValue("profileID")); err != nil {
		writeServiceError(w, "deleting profile", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleListReceipts returns a profile's receipts, newest first
func (s *Server) handleListReceipts(w http.ResponseWriter, r *http.Request) {
	receipts, err := s.service.ListReceipts(r.PathValue("profileID"))
	if err != nil {
		writeServiceError(w, "listing receipts", err)
		return
	}
	writeJSON(w, http.StatusOK, receipts)
}

// handleUploadReceipt scans an uploaded receipt photo
func (s *Server) handleUploadReceipt(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		slog.Error("Error parsing multipart form", "error", err)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, "File is too large. Maximum size is 50MB. Please compress or resize your image.", http.StatusRequestEntityTooLarge)
			return
		}
		writeError(w, "Error parsing form", http.StatusBadRequest)
		return
	}

	f, header, err := r.FormFile("file")
	if err != nil {
		slog.Error("Error getting file from form", "error", err)
		errorMsg := "No file provided"
		if errors.Is(err, http.ErrMissingFile) {
			errorMsg = "No file was selected. Please choose a file to upload."
		}
		writeError(w, errorMsg, http.StatusBadRequest)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		slog.Error("Error reading file data", "error", err, "filename", header.Filename)
		writeError(w, "Error reading file. Please try again.", http.StatusInternalServerError)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = contentTypeFromName(header.Filename)
	}

	receipt, err := s.service.ScanReceipt(r.Context(), r.PathValue("profileID"), header.Filename, data, contentType)
	if err != nil {
		writeServiceError(w, "scanning receipt", err)
		return
	}
	writeJSON(w, http.StatusCreated, receipt)
}

// contentTypeFromName guesses a type from the file extension, for phones
// that upload without one
func contentTypeFromName(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".pdf":
		return "application/pdf"
	case ".heic":
		return "image/heic"
	case ".heif":
		return "image/heif"
	default:
		return "application/octet-stream"
	}
}

// handleRecordText runs the engine over already transcribed text
func (s *Server) handleRecordText(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	receipt, err := s.service.RecordText(r.PathValue("profileID"), req.Text)
	if err != nil {
		writeServiceError(w, "recording receipt", err)
		return
	}
	writeJSON(w, http.StatusCreated, receipt)
}

// handleGetReceipt returns a single receipt
func (s *Server) handleGetReceipt(w http.ResponseWriter, r *http.Request) {
	id, err := receiptID(r)
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	receipt, err := s.service.GetReceipt(r.PathValue("profileID"), id)
	if err != nil {
		writeServiceError(w, "getting receipt", err)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}

// handleDeleteReceipt deletes a receipt
func (s *Server) handleDeleteReceipt(w http.ResponseWriter, r *http.Request) {
	id, err := receiptID(r)
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.service.DeleteReceipt(r.PathValue("profileID"), id); err != nil {
		writeServiceError(w, "deleting receipt", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleExportReceipt returns one receipt as a CSV sheet
func (s *Server) handleExportReceipt(w http.ResponseWriter, r *http.Request) {
	id, err := receiptID(r)
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	receipt, err := s.service.GetReceipt(r.PathValue("profileID"), id)
	if err != nil {
		writeServiceError(w, "getting receipt", err)
		return
	}

	var buf bytes.Buffer
	if err := s.csv.WriteReceipts(&buf, []*extraction.Receipt{receipt}); err != nil {
		writeServiceError(w, "exporting receipt", err)
		return
	}
	writeCSV(w, fmt.Sprintf("fis-%d.csv", receipt.ID), buf.Bytes())
}

// handleExportHistory returns a profile's whole history as a CSV sheet
func (s *Server) handleExportHistory(w http.ResponseWriter, r *http.Request) {
	profileID := r.PathValue("profileID")
	receipts, err := s.service.ListReceipts(profileID)
	if err != nil {
		writeServiceError(w, "listing receipts", err)
		return
	}

	var buf bytes.Buffer
	if err := s.csv.WriteReceipts(&buf, receipts); err != nil {
		writeServiceError(w, "exporting receipts", err)
		return
	}
	writeCSV(w, fmt.Sprintf("fisler-%s.csv", profileID), buf.Bytes())
}

// handleExportAnalysis returns the per-category rollup as a CSV sheet
func (s *Server) handleExportAnalysis(w http.ResponseWriter, r *http.Request) {
	profileID := r.PathValue("profileID")
	receipts, err := s.service.ListReceipts(profileID)
	if err != nil {
		writeServiceError(w, "listing receipts", err)
		return
	}

	var buf bytes.Buffer
	if err := s.csv.WriteAnalysis(&buf, receipts); err != nil {
		writeServiceError(w, "exporting analysis", err)
		return
	}
	writeCSV(w, fmt.Sprintf("analiz-%s.csv", profileID), buf.Bytes())
}

// handleSummary returns the spending summary as JSON
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.service.Summary(r.PathValue("profileID"))
	if err != nil {
		writeServiceError(w, "summarizing receipts", err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// writeCSV sends data as a file download
func writeCSV(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		slog.Error("Error writing CSV", "error", err)
	}
}
