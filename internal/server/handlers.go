package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Veraticus/carpicker/internal/common"
	"github.com/Veraticus/carpicker/internal/model"
)

// Response messages.
const (
	msgInvalidRequest  = "Invalid request format"
	msgPostRequired    = "POST required"
	msgCatalogMissing  = "Database file not found. Please contact support."
	msgInternalFailure = "An error occurred"
)

// maxBodyBytes bounds predict request bodies.
const maxBodyBytes = 1 << 20

// PredictMatch is one vehicle in a predict response. The display strings
// sit at the top level; the raw catalog values and numeric score sit
// alongside them.
type PredictMatch struct {
	Score   *float64      `json:"score,omitempty"`
	Vehicle model.Vehicle `json:"vehicle"`
	model.Display
}

// PredictResponse is the JSON response for POST /api/predict.
type PredictResponse struct {
	BestMatch    *PredictMatch  `json:"best_match,omitempty"`
	Mode         model.RankMode `json:"mode,omitempty"`
	Message      string         `json:"message,omitempty"`
	Matches      []PredictMatch `json:"matches"`
	TotalMatches int            `json:"total_matches"`
}

// HealthResponse is the JSON response for GET /api/health.
type HealthResponse struct {
	LoadedAt *time.Time `json:"loaded_at,omitempty"`
	Status   string     `json:"status"`
	Source   string     `json:"source,omitempty"`
	Vehicles int        `json:"vehicles"`
}

// ReloadResponse is the JSON response for POST /api/catalog/reload.
type ReloadResponse struct {
	LoadedAt time.Time `json:"loaded_at"`
	Status   string    `json:"status"`
	Source   string    `json:"source"`
	Vehicles int       `json:"vehicles"`
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeMessage(w, http.StatusMethodNotAllowed, msgPostRequired)
		return
	}

	var raw map[string]any
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil || raw == nil {
		s.log(r).Debug("Rejected predict request", "error", err)
		writeMessage(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	query, err := model.ParseQuery(raw)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.log(r).Debug("Predict request", "constraints", query.Fields(), "mode", query.Mode)

	result, err := s.snapshot.Query(s.engine, query)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newPredictResponse(result))
}

func newPredictResponse(result *model.Result) PredictResponse {
	resp := PredictResponse{
		Matches:      make([]PredictMatch, len(result.Matches)),
		TotalMatches: result.TotalSurvivors,
		Mode:         result.Mode,
	}
	for i, m := range result.Matches {
		resp.Matches[i] = newPredictMatch(m)
	}
	if result.BestMatch != nil {
		best := newPredictMatch(*result.BestMatch)
		resp.BestMatch = &best
	}
	if result.Empty() {
		resp.Message = model.NoMatchesMessage
	}
	return resp
}

func newPredictMatch(m model.Match) PredictMatch {
	return PredictMatch{Score: m.Score, Vehicle: m.Vehicle, Display: m.Display}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	c, err := s.snapshot.Load()
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "unavailable"})
		return
	}

	loadedAt := c.LoadedAt
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:   "ok",
		Source:   c.Source,
		Vehicles: len(c.Vehicles),
		LoadedAt: &loadedAt,
	})
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if s.loader == nil {
		writeMessage(w, http.StatusNotImplemented, "Catalog reload is not configured")
		return
	}

	vehicles, source, err := s.loader(r.Context())
	if err != nil {
		s.log(r).Error("Catalog reload failed", "error", err)
		s.writeError(w, r, err)
		return
	}

	s.snapshot.Replace(vehicles, source)
	c, err := s.snapshot.Load()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.log(r).Info("Reloaded catalog", "source", source, "vehicles", len(vehicles))

	writeJSON(w, http.StatusOK, ReloadResponse{
		Status:   "ok",
		Source:   c.Source,
		Vehicles: len(c.Vehicles),
		LoadedAt: c.LoadedAt,
	})
}

func (s *Server) log(r *http.Request) *slog.Logger {
	return requestLogger(r, s.logger)
}

// writeError maps err onto a status code and message.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrInvalidQueryValue), errors.Is(err, common.ErrInvalidMode):
		writeMessage(w, http.StatusBadRequest, common.UserMessage(err))
	case errors.Is(err, common.ErrSchemaMismatch):
		s.log(r).Error("Catalog schema mismatch", "error", err)
		var schemaErr *common.SchemaError
		msg := "Missing data column"
		if errors.As(err, &schemaErr) && len(schemaErr.Missing) > 0 {
			msg += ": " + schemaErr.Missing[0]
		}
		writeMessage(w, http.StatusInternalServerError, msg)
	case errors.Is(err, common.ErrCatalogEmpty), errors.Is(err, common.ErrCatalogNotFound):
		writeMessage(w, http.StatusServiceUnavailable, msgCatalogMissing)
	default:
		s.log(r).Error("Request failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, msgInternalFailure)
	}
}

// writeMessage writes the error envelope shared by every endpoint.
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, PredictResponse{
		Matches: []PredictMatch{},
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
