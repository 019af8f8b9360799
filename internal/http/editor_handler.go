package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/Notifuse/mailcanvas/internal/domain"
	"github.com/Notifuse/mailcanvas/pkg/logger"
)

// defaultMaxUploadBytes bounds a multipart drop when no image limit is configured
const defaultMaxUploadBytes = 10 << 20

type EditorHandler struct {
	service        domain.EditorService
	logger         logger.Logger
	maxUploadBytes int64
}

// NewEditorHandler creates the editor session endpoints. maxUploadBytes caps
// the size of a dropped file; 0 uses a 10 MiB limit.
func NewEditorHandler(service domain.EditorService, maxUploadBytes int64, logger logger.Logger) *EditorHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &EditorHandler{
		service:        service,
		logger:         logger,
		maxUploadBytes: maxUploadBytes,
	}
}

func (h *EditorHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/editor.open", h.handleOpen)
	mux.HandleFunc("/api/editor.dispatch", h.handleDispatch)
	mux.HandleFunc("/api/editor.drop_file", h.handleDropFile)
	mux.HandleFunc("/api/editor.interact", h.handleInteract)
	mux.HandleFunc("/api/editor.preview", h.handlePreview)
	mux.HandleFunc("/api/editor.snapshot", h.handleSnapshot)
	mux.HandleFunc("/api/editor.close", h.handleClose)
}

// writeServiceError reports a service failure, logging only unexpected ones
func (h *EditorHandler) writeServiceError(w http.ResponseWriter, err error, action string) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		h.logger.WithField("error", err.Error()).Error(fmt.Sprintf("Failed to %s", action))
		WriteJSONError(w, fmt.Sprintf("Failed to %s", action), status)
		return
	}
	WriteJSONError(w, err.Error(), status)
}

func (h *EditorHandler) handleOpen(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.OpenEditorRequest
	// an empty body opens a blank document
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	state, err := h.service.Open(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, err, "open editor")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"state": state,
	})
}

func (h *EditorHandler) handleDispatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.DispatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	state, err := h.service.Dispatch(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, err, "dispatch command")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"state": state,
	})
}

// handleDropFile accepts a multipart upload with session_id, the target
// (element_id, or row_id and column_id) and the file part. The decode runs
// after the response, so the state returned only counts it as pending.
func (h *EditorHandler) handleDropFile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// room for the form fields around the file
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+(64<<10))
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteJSONError(w, "File too large", http.StatusRequestEntityTooLarge)
			return
		}
		WriteJSONError(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	req, err := dropFileRequestFromForm(r)
	if err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	state, err := h.service.DropFile(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, err, "drop file")
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]interface{}{
		"state": state,
	})
}

func dropFileRequestFromForm(r *http.Request) (domain.DropFileRequest, error) {
	req := domain.DropFileRequest{
		SessionID: r.FormValue("session_id"),
		ColumnID:  r.FormValue("column_id"),
	}

	var err error
	if v := r.FormValue("element_id"); v != "" {
		if req.ElementID, err = strconv.Atoi(v); err != nil {
			return req, fmt.Errorf("invalid drop file request: element_id must be a valid integer")
		}
	}
	if v := r.FormValue("row_id"); v != "" {
		if req.RowID, err = strconv.Atoi(v); err != nil {
			return req, fmt.Errorf("invalid drop file request: row_id must be a valid integer")
		}
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return req, fmt.Errorf("invalid drop file request: file is required")
	}
	defer file.Close()

	req.FileName = header.Filename
	if req.Data, err = io.ReadAll(file); err != nil {
		return req, fmt.Errorf("invalid drop file request: failed to read file")
	}
	return req, nil
}

func (h *EditorHandler) handleInteract(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.InteractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	state, err := h.service.Interact(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, err, "apply interaction")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"state": state,
	})
}

func (h *EditorHandler) handlePreview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.PreviewRequest
	if err := req.FromURLParams(r.URL.Query()); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp, err := h.service.Preview(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, err, "render preview")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *EditorHandler) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.SessionRequest
	if err := req.FromURLParams(r.URL.Query()); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	state, err := h.service.Snapshot(r.Context(), req.SessionID)
	if err != nil {
		h.writeServiceError(w, err, "get editor state")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"state": state,
	})
}

func (h *EditorHandler) handleClose(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.Close(r.Context(), req.SessionID); err != nil {
		h.writeServiceError(w, err, "close editor")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}
