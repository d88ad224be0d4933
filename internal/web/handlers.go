package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sitewise-app/sitewise/internal/importer"
	"github.com/sitewise-app/sitewise/internal/logging"
	"github.com/sitewise-app/sitewise/internal/ocr"
)

// kindResponse describes one registered import kind.
type kindResponse struct {
	Key             string   `json:"key"`
	Label           string   `json:"label"`
	Columns         []string `json:"columns"`
	RequiredColumns []string `json:"requiredColumns"`
}

// handleListKinds returns all registered import kinds.
func (s *Server) handleListKinds(w http.ResponseWriter, r *http.Request) {
	defs := importer.All()
	kinds := make([]kindResponse, 0, len(defs))
	for _, def := range defs {
		kinds = append(kinds, kindResponse{
			Key:             def.Info.Key,
			Label:           def.Info.Label,
			Columns:         def.Info.Columns(),
			RequiredColumns: def.Info.RequiredColumns(),
		})
	}
	writeJSON(w, r, kinds)
}

// previewResponse flattens row errors to user strings; the structured error
// kinds stay in the server log.
type previewResponse struct {
	Stats               importer.Stats          `json:"stats"`
	Errors              []string                `json:"errors"`
	Duplicates          []importer.DuplicateRow `json:"duplicates"`
	SampleValidEntities []map[string]string     `json:"sampleValidEntities"`
}

type commitResponse struct {
	ImportRunID   string   `json:"importRunId"`
	ImportedCount int      `json:"importedCount"`
	Errors        []string `json:"errors"`
}

// handleImport runs a dry-run or commit import of an uploaded spreadsheet.
// The mode form value selects the phase: "dryRun" (default) or "commit".
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	kindKey := chi.URLParam(r, "kind")
	if kindKey == "" {
		s.respondError(w, r, errors.New("unknown import kind: empty"), http.StatusBadRequest)
		return
	}

	data, filename, err := s.readUpload(w, r, "file", s.cfg.Upload.MaxFileSize)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	mode := r.FormValue("mode")
	if mode == "" {
		mode = "dryRun"
	}

	switch mode {
	case "dryRun":
		result, err := s.imports.Preview(r.Context(), kindKey, filename, data)
		if err != nil {
			s.respondError(w, r, err, importStatus(err))
			return
		}
		writeJSON(w, r, previewResponse{
			Stats:               result.Stats,
			Errors:              flattenIssues(result.Errors),
			Duplicates:          result.Duplicates,
			SampleValidEntities: result.SampleValidEntities,
		})

	case "commit":
		result, err := s.imports.Commit(r.Context(), kindKey, filename, data)
		if err != nil {
			s.respondError(w, r, err, importStatus(err))
			return
		}
		writeJSON(w, r, commitResponse{
			ImportRunID:   result.ImportRunID,
			ImportedCount: result.ImportedCount,
			Errors:        flattenIssues(result.Errors),
		})

	default:
		s.respondError(w, r, fmt.Errorf("unknown mode %q", mode), http.StatusBadRequest)
	}
}

// scanResponse is the staged candidate list for one scanned invoice.
type scanResponse struct {
	Candidates []ocr.Candidate `json:"candidates"`
}

// handleInvoiceScan extracts text from an uploaded invoice image and returns
// the detected product-code candidates for review.
func (s *Server) handleInvoiceScan(w http.ResponseWriter, r *http.Request) {
	if s.extractor == nil {
		s.respondError(w, r, errors.New("text extraction failed: not configured"), http.StatusServiceUnavailable)
		return
	}

	data, filename, err := s.readUpload(w, r, "image", s.cfg.OCR.MaxImageSize)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	text, err := s.extractor.Extract(r.Context(), data, imageMIMEType(filename))
	if err != nil {
		s.respondError(w, r, err, http.StatusBadGateway)
		return
	}

	candidates := ocr.ScanText(text)
	logging.FromContext(r.Context()).Info("invoice scanned",
		"file", filename,
		"candidates", len(candidates),
	)
	writeJSON(w, r, scanResponse{Candidates: candidates})
}

// confirmRequest carries the reviewed invoice items to save.
type confirmRequest struct {
	Items []ocr.StagedItem `json:"items"`
}

// handleInvoiceConfirm saves human-reviewed invoice items item by item.
func (s *Server) handleInvoiceConfirm(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}
	if len(req.Items) == 0 {
		s.respondError(w, r, errors.New("no items to save"), http.StatusBadRequest)
		return
	}

	result := s.review.Save(r.Context(), req.Items)
	writeJSON(w, r, result)
}

// readUpload reads one multipart file field, bounded by maxSize.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request, field string, maxSize int64) ([]byte, string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		return nil, "", fmt.Errorf("file exceeds size limit or invalid form: %w", err)
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, "", errors.New("no file provided")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", fmt.Errorf("unable to read file: %w", err)
	}
	return data, header.Filename, nil
}

// importStatus picks the HTTP status for a failed import call. Input format
// problems are the client's to fix; everything else is a server fault.
func importStatus(err error) int {
	var formatErr *importer.InputFormatError
	if errors.As(err, &formatErr) {
		return http.StatusUnprocessableEntity
	}
	if strings.Contains(err.Error(), "unknown import kind") {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// flattenIssues renders row issues as user-facing strings.
func flattenIssues(issues []importer.RowIssue) []string {
	out := make([]string, len(issues))
	for i, issue := range issues {
		out[i] = fmt.Sprintf("Row %d: %s", issue.Row, issue.Message)
	}
	return out
}

// imageMIMEType guesses the MIME type from the uploaded file name.
func imageMIMEType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	default:
		return "image/jpeg"
	}
}
