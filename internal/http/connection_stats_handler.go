package http

import (
	"database/sql"
	"net/http"

	"github.com/Notifuse/mailcanvas/pkg/logger"
)

// ConnectionStats is the runtime load of the server
type ConnectionStats struct {
	Database       DatabaseStats `json:"database"`
	EditorSessions int           `json:"editor_sessions"`
}

type DatabaseStats struct {
	MaxOpenConnections int   `json:"max_open_connections"`
	OpenConnections    int   `json:"open_connections"`
	InUse              int   `json:"in_use"`
	Idle               int   `json:"idle"`
	WaitCount          int64 `json:"wait_count"`
	WaitDurationMs     int64 `json:"wait_duration_ms"`
}

type ConnectionStatsHandler struct {
	logger   logger.Logger
	dbStats  func() sql.DBStats
	sessions func() int
}

func NewConnectionStatsHandler(logger logger.Logger, dbStats func() sql.DBStats, sessions func() int) *ConnectionStatsHandler {
	return &ConnectionStatsHandler{
		logger:   logger,
		dbStats:  dbStats,
		sessions: sessions,
	}
}

func (h *ConnectionStatsHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/admin.connectionStats", h.getConnectionStats)
}

func (h *ConnectionStatsHandler) getConnectionStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	db := h.dbStats()
	writeJSON(w, http.StatusOK, ConnectionStats{
		Database: DatabaseStats{
			MaxOpenConnections: db.MaxOpenConnections,
			OpenConnections:    db.OpenConnections,
			InUse:              db.InUse,
			Idle:               db.Idle,
			WaitCount:          db.WaitCount,
			WaitDurationMs:     db.WaitDuration.Milliseconds(),
		},
		EditorSessions: h.sessions(),
	})
}
