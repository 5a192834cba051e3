package api

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/weakspot/internal/errors"
	"github.com/vytor/weakspot/internal/logger"
	"github.com/vytor/weakspot/internal/models"
	"github.com/vytor/weakspot/internal/services"
)

type createReportResponse struct {
	ID     string              `json:"id"`
	Status models.ReportStatus `json:"status"`
}

type listReportsResponse struct {
	Reports []models.Report `json:"reports"`
	Total   int             `json:"total"`
	Limit   int             `json:"limit"`
	Offset  int             `json:"offset"`
}

// handleCreateReport accepts either a JSON body {player, pgn, max_games} or
// raw PGN text with player and max_games in the query string.
// ?sync=1 builds the report before responding.
func (s *Server) handleCreateReport(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	req, err := s.decodeCreateReport(w, r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	sync := false
	if v := r.URL.Query().Get("sync"); v != "" {
		sync, err = strconv.ParseBool(v)
		if err != nil {
			handleError(w, r, errors.NewBadRequestError("sync must be a boolean"))
			return
		}
	}

	log.Debug("create report request: player=%s, bytes=%d, sync=%v", req.Player, len(req.PGN), sync)
	view, err := s.ReportService.Create(r.Context(), req, sync)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if sync {
		writeJSON(w, r, http.StatusCreated, view)
		return
	}
	w.Header().Set("Location", "/api/reports/"+view.PublicID)
	writeJSON(w, r, http.StatusAccepted, createReportResponse{ID: view.PublicID, Status: view.Status})
}

func (s *Server) decodeCreateReport(w http.ResponseWriter, r *http.Request) (services.CreateReportRequest, error) {
	var req services.CreateReportRequest
	body := http.MaxBytesReader(w, r.Body, s.maxBodyBytes())

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := json.NewDecoder(body).Decode(&req); err != nil {
			return req, errors.NewBadRequestError("invalid JSON body: " + err.Error())
		}
		return req, nil
	}

	raw, err := io.ReadAll(body)
	if err != nil {
		return req, errors.NewBadRequestError("could not read body: " + err.Error())
	}
	req.PGN = string(raw)
	req.Player = r.URL.Query().Get("player")
	if v := r.URL.Query().Get("max_games"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return req, errors.NewValidationError("max_games", "must be an integer")
		}
		req.MaxGames = n
	}
	return req, nil
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	view, err := s.ReportService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.ReportFilter{
		Player: strings.TrimSpace(q.Get("player")),
		Status: models.ReportStatus(strings.ToLower(strings.TrimSpace(q.Get("status")))),
		Limit:  50,
	}

	var err error
	if filter.Limit, err = intParam(q.Get("limit"), filter.Limit); err != nil || filter.Limit < 1 || filter.Limit > 200 {
		handleError(w, r, errors.NewValidationError("limit", "must be between 1 and 200"))
		return
	}
	if filter.Offset, err = intParam(q.Get("offset"), 0); err != nil || filter.Offset < 0 {
		handleError(w, r, errors.NewValidationError("offset", "must be a non-negative integer"))
		return
	}

	reports, total, err := s.ReportService.List(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, listReportsResponse{
		Reports: reports,
		Total:   total,
		Limit:   filter.Limit,
		Offset:  filter.Offset,
	})
}

func (s *Server) handleDeleteReport(w http.ResponseWriter, r *http.Request) {
	if err := s.ReportService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func intParam(v string, def int) (int, error) {
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}
