package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"docquery/internal/models"
)

// Validation messages, rendered before any I/O happens.
const (
	msgEmptyQuestion = "Please enter a question"
	msgNoFile        = "Please upload a file first"
)

// handleUploadFile ingests one multipart file and replaces the current
// selection. Only the first file part is taken. Ingestion failures surface
// through the same JSON error channel as every other failure.
func (s *Server) handleUploadFile(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > s.config.MaxUploadBytes {
		s.respondError(w, http.StatusRequestEntityTooLarge, "file too large")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.respondError(w, http.StatusRequestEntityTooLarge, "file too large")
			return
		}
		s.respondError(w, http.StatusBadRequest, "no file provided")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.logger.Error("upload read failed", zap.String("name", header.Filename), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "failed to read file: "+err.Error())
		return
	}

	mediaType := header.Header.Get("Content-Type")
	ingested, err := s.ingestor.Ingest(header.Filename, mediaType, data)
	if err != nil {
		s.logger.Error("ingestion failed", zap.String("name", header.Filename), zap.Error(err))
		s.respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.logger.Debug("file ingested",
		zap.String("id", ingested.ID),
		zap.String("name", ingested.Name),
		zap.String("category", string(ingested.Category)),
		zap.Int64("size", ingested.Size),
	)
	s.store.Set(ingested)
	s.respondJSON(w, http.StatusCreated, ingested)
}

// handleGetFile returns metadata of the current selection, or 404 when empty.
func (s *Server) handleGetFile(w http.ResponseWriter, r *http.Request) {
	f := s.store.Current()
	if f == nil {
		s.respondError(w, http.StatusNotFound, "no file uploaded")
		return
	}
	s.respondJSON(w, http.StatusOK, f)
}

// handleDeleteFile clears the current selection.
func (s *Server) handleDeleteFile(w http.ResponseWriter, r *http.Request) {
	s.store.Clear()
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// handleAsk validates, composes the prompt, and dispatches it. Validation
// failures never reach the backend.
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var q models.Question
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := q.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, msgEmptyQuestion)
		return
	}
	f := s.store.Current()
	if f == nil {
		s.respondError(w, http.StatusBadRequest, msgNoFile)
		return
	}

	promptText := s.builder.Build(f, q.Text)
	answer, err := s.asker.Ask(r.Context(), promptText)
	if err != nil {
		s.logger.Error("dispatch failed", zap.Error(err))
		s.respondError(w, http.StatusBadGateway, "Backend error: "+err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, models.Answer{Answer: answer})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
