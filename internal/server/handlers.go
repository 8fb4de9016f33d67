package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/hyperjump/kazoeru/internal/analyze"
	"github.com/hyperjump/kazoeru/internal/extract"
	"github.com/hyperjump/kazoeru/internal/models"
	"go.uber.org/zap"
)

const (
	msgNoFile       = "No file selected. Please choose a file to upload."
	msgBadFormat    = "Invalid file format. Please upload TXT, CSV, RTF, or DOCX files only."
	msgTooLarge     = "File too large. Please upload files smaller than 16MB."
	msgExtractError = "Error processing file"
)

// uploadError pairs a user-facing message with the HTTP status it should be
// served with.
type uploadError struct {
	status  int
	message string
}

func (e *uploadError) Error() string { return e.message }

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderIndex(w, http.StatusOK, "")
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	result, err := s.processUpload(w, r)
	if err != nil {
		var ue *uploadError
		if errors.As(err, &ue) {
			s.renderIndex(w, ue.status, ue.message)
			return
		}
		s.renderIndex(w, http.StatusInternalServerError, msgExtractError)
		return
	}
	s.render(w, http.StatusOK, "results.html", result)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	result, err := s.processUpload(w, r)
	if err != nil {
		var ue *uploadError
		if errors.As(err, &ue) {
			s.respondError(w, ue.status, ue.message)
			return
		}
		s.respondError(w, http.StatusInternalServerError, msgExtractError)
		return
	}
	s.respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// processUpload runs the full pipeline for one multipart upload: enforce the
// size cap, validate the format tag, spool the file to the temp directory,
// extract, analyze. The temp file is removed on every exit path. Errors
// intended for the user come back as *uploadError.
func (s *Server) processUpload(w http.ResponseWriter, r *http.Request) (*models.AnalysisResult, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.Upload.MaxBytes)
	if err := r.ParseMultipartForm(s.config.Upload.MaxBytes); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return nil, &uploadError{http.StatusRequestEntityTooLarge, msgTooLarge}
		}
		return nil, &uploadError{http.StatusBadRequest, msgNoFile}
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, &uploadError{http.StatusBadRequest, msgNoFile}
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if filename == "" {
		return nil, &uploadError{http.StatusBadRequest, msgNoFile}
	}
	format, err := extract.ParseFormat(filename)
	if err != nil {
		var ufe *extract.UnsupportedFormatError
		if errors.As(err, &ufe) {
			s.logger.Debug("rejected upload", zap.String("filename", filename), zap.String("format", ufe.Format))
		}
		return nil, &uploadError{http.StatusBadRequest, msgBadFormat}
	}

	path, err := s.spoolUpload(file, filename)
	if err != nil {
		s.logger.Error("spool upload failed", zap.Error(err))
		return nil, fmt.Errorf("spool upload: %w", err)
	}
	defer os.Remove(path)

	content, err := os.ReadFile(path)
	if err != nil {
		s.logger.Error("read upload failed", zap.Error(err))
		return nil, fmt.Errorf("read upload: %w", err)
	}
	text, err := s.extractor.ExtractBytes(content, format)
	if err != nil {
		s.logger.Warn("extraction failed",
			zap.String("filename", filename),
			zap.String("format", string(format)),
			zap.Error(err))
		return nil, &uploadError{http.StatusUnprocessableEntity, fmt.Sprintf("%s: %v", msgExtractError, err)}
	}

	stats := analyze.Analyze(text)
	s.logger.Info("document analyzed",
		zap.String("filename", filename),
		zap.String("format", string(format)),
		zap.Int("words", stats.WordCount),
		zap.Int("characters", stats.CharacterCount),
	)
	return &models.AnalysisResult{
		Filename:        filename,
		WordCount:       stats.WordCount,
		CharacterCount:  stats.CharacterCount,
		WhitespaceCount: stats.WhitespaceCount,
		LineCount:       stats.LineCount,
	}, nil
}

// spoolUpload writes the uploaded file to the configured temp directory under
// a uuid-prefixed name so concurrent uploads of the same filename cannot
// collide. Returns the path of the written file.
func (s *Server) spoolUpload(file io.Reader, filename string) (string, error) {
	path := filepath.Join(s.config.Upload.TempDir, uuid.New().String()+"-"+filename)
	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, file); err != nil {
		_ = dst.Close()
		_ = os.Remove(path)
		return "", err
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(path)
		return "", err
	}
	return path, nil
}

// sanitizeFilename reduces a client-supplied filename to a safe base name:
// path components are dropped and anything outside [A-Za-z0-9._-] becomes an
// underscore. Returns "" when nothing usable remains.
func sanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" {
		return ""
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	out := strings.Trim(b.String(), "._")
	if out == "" {
		return ""
	}
	return out
}

func (s *Server) renderIndex(w http.ResponseWriter, status int, errMsg string) {
	s.render(w, status, "index.html", map[string]string{"Error": errMsg})
}

func (s *Server) render(w http.ResponseWriter, status int, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error("render failed", zap.String("template", name), zap.Error(err))
	}
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
