// Package api exposes the assessment engine over HTTP: run an analysis,
// list stored runs, fetch a stored report, download its CSV table.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/caraga-geoinformatics/accuracy.report/internal/assess"
	"github.com/caraga-geoinformatics/accuracy.report/internal/db"
	"github.com/caraga-geoinformatics/accuracy.report/internal/report"
	"github.com/caraga-geoinformatics/accuracy.report/internal/units"
	"github.com/caraga-geoinformatics/accuracy.report/internal/version"
)

// ANSI escape codes for request logging
const colorCyan = "\033[36m"
const colorReset = "\033[0m"
const colorYellow = "\033[33m"
const colorBoldGreen = "\033[1;32m"
const colorBoldRed = "\033[1;31m"

type Server struct {
	db    *db.DB
	units string
}

// NewServer creates an API server. db may be nil, in which case analyses
// still run but nothing is persisted and the listing endpoints report an
// empty history. units is the default area unit for CSV downloads.
func NewServer(database *db.DB, areaUnits string) *Server {
	if !units.IsValid(areaUnits) {
		areaUnits = units.SQM
	}
	return &Server{db: database, units: areaUnits}
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func statusCodeColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return colorBoldGreen + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 300 && statusCode < 400:
		return colorYellow + strconv.Itoa(statusCode) + colorReset
	default:
		return colorBoldRed + strconv.Itoa(statusCode) + colorReset
	}
}

// LogRequests wraps a handler with request logging.
func LogRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(lrw, r)
		log.Printf("%s %s %s%s%s %.2fms",
			statusCodeColor(lrw.statusCode), r.Method,
			colorCyan, r.RequestURI, colorReset,
			float64(time.Since(start).Nanoseconds())/1e6,
		)
	})
}

func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/assessments", s.handleAssessments)
	mux.HandleFunc("/api/assessments/", s.handleAssessment)
	mux.HandleFunc("/api/version", s.showVersion)
	return mux
}

func (s *Server) writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// AssessmentRequest is the POST body for running an analysis.
type AssessmentRequest struct {
	Label        string                   `json:"label"`
	ErrorMatrix  assess.ErrorMatrix       `json:"error_matrix"`
	MappedPixels assess.StratumPopulation `json:"mapped_pixels"`
	PixelArea    float64                  `json:"pixel_area"`
}

// AssessmentResponse carries a completed run and, when persistence is
// configured, its stored ID.
type AssessmentResponse struct {
	ID     string                   `json:"id,omitempty"`
	Label  string                   `json:"label,omitempty"`
	Report *assess.AssessmentReport `json:"report"`
}

func (s *Server) handleAssessments(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.createAssessment(w, r)
	case http.MethodGet:
		s.listAssessments(w, r)
	default:
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (s *Server) createAssessment(w http.ResponseWriter, r *http.Request) {
	var req AssessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	in := assess.Input{
		Matrix:     req.ErrorMatrix,
		Population: req.MappedPixels,
		PixelArea:  req.PixelArea,
	}
	result, err := assess.Run(in)
	if err != nil {
		// All classified input errors are the client's to fix.
		if isInputError(err) {
			s.writeJSONError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("Assessment failed: %v", err))
		return
	}

	resp := AssessmentResponse{Label: req.Label, Report: result}
	if s.db != nil {
		id, err := s.db.CreateAssessment(req.Label, in, result)
		if err != nil {
			s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to store assessment: %v", err))
			return
		}
		resp.ID = id
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("failed to write assessment response: %v", err)
	}
}

func isInputError(err error) bool {
	var structural *assess.StructuralError
	var sample *assess.InsufficientSampleError
	var population *assess.PopulationInconsistencyError
	return errors.As(err, &structural) || errors.As(err, &sample) || errors.As(err, &population)
}

func (s *Server) listAssessments(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	limit := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil || parsed < 1 {
			s.writeJSONError(w, http.StatusBadRequest, "Invalid 'limit' parameter")
			return
		}
		limit = parsed
	}

	list := []db.Assessment{}
	if s.db != nil {
		stored, err := s.db.ListAssessments(limit)
		if err != nil {
			s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to list assessments: %v", err))
			return
		}
		if stored != nil {
			list = stored
		}
	}

	if err := json.NewEncoder(w).Encode(list); err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, "Failed to write assessment list")
	}
}

// handleAssessment serves /api/assessments/{id} and
// /api/assessments/{id}/csv.
func (s *Server) handleAssessment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodDelete {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	if s.db == nil {
		s.writeJSONError(w, http.StatusNotFound, "Persistence is not configured")
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/assessments/")
	id, sub, _ := strings.Cut(rest, "/")
	if id == "" || (sub != "" && sub != "csv") {
		s.writeJSONError(w, http.StatusNotFound, "Not found")
		return
	}

	if r.Method == http.MethodDelete {
		if sub != "" {
			s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		if err := s.db.DeleteAssessment(id); err != nil {
			s.writeJSONError(w, http.StatusNotFound, err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	stored, err := s.db.GetAssessment(id)
	if err != nil {
		s.writeJSONError(w, http.StatusNotFound, err.Error())
		return
	}

	if sub == "csv" {
		areaUnit := s.units
		if u := r.URL.Query().Get("units"); u != "" {
			if !units.IsValid(u) {
				s.writeJSONError(w, http.StatusBadRequest,
					fmt.Sprintf("Invalid 'units' parameter; valid units are %s", units.GetValidUnitsString()))
				return
			}
			areaUnit = u
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=\"assessment-%s.csv\"", stored.ID))
		if err := report.WriteCSV(w, stored.Report, areaUnit); err != nil {
			log.Printf("failed to write CSV for assessment %s: %v", stored.ID, err)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(stored); err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, "Failed to write assessment")
	}
}

func (s *Server) showVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	info := map[string]string{
		"version":    version.Version,
		"git_sha":    version.GitSHA,
		"build_time": version.BuildTime,
	}
	if err := json.NewEncoder(w).Encode(info); err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, "Failed to write version")
	}
}
