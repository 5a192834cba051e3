package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/vytor/weakspot/internal/logger"
	"github.com/vytor/weakspot/internal/services"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	ReportService services.ReportService
	DB            Pinger
	MaxBodyBytes  int64
}

const defaultMaxBodyBytes = 8 << 20

func (s *Server) maxBodyBytes() int64 {
	if s.MaxBodyBytes > 0 {
		return s.MaxBodyBytes
	}
	return defaultMaxBodyBytes
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response: %v", err)
	}
}
