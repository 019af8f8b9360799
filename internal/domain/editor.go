package domain

import (
	"context"
	"fmt"
	"net/url"

	"github.com/asaskevich/govalidator"

	"github.com/Notifuse/mailcanvas/pkg/canvas"
	"github.com/Notifuse/mailcanvas/pkg/composer"
	"github.com/Notifuse/mailcanvas/pkg/preview"
)

//go:generate mockgen -destination mocks/mock_editor_service.go -package mocks github.com/Notifuse/mailcanvas/internal/domain EditorService

// EditorState is a snapshot of one editing session
type EditorState struct {
	SessionID    string                 `json:"session_id"`
	TemplateID   string                 `json:"template_id,omitempty"`
	Version      int64                  `json:"version,omitempty"`
	Document     Document               `json:"document"`
	Selection    *canvas.Selection      `json:"selection"`
	Notification *composer.Notification `json:"notification,omitempty"`
	// PendingDecodes counts dropped images still being decoded
	PendingDecodes int `json:"pending_decodes"`
}

// OpenEditorRequest starts a session, from a saved template or from scratch
type OpenEditorRequest struct {
	TemplateID string `json:"template_id,omitempty"`
	Version    int64  `json:"version,omitempty"`
}

func (r *OpenEditorRequest) Validate() error {
	if r.TemplateID == "" {
		if r.Version != 0 {
			return fmt.Errorf("invalid open editor request: version requires template_id")
		}
		return nil
	}
	if len(r.TemplateID) > 36 {
		return fmt.Errorf("invalid open editor request: template_id length must be between 1 and 36")
	}
	if r.Version < 0 {
		return fmt.Errorf("invalid open editor request: version must not be negative")
	}
	return nil
}

// DispatchRequest applies one command to a session
type DispatchRequest struct {
	SessionID string           `json:"session_id"`
	Command   composer.Command `json:"command"`
}

func (r *DispatchRequest) Validate() error {
	if err := validateSessionID(r.SessionID); err != nil {
		return fmt.Errorf("invalid dispatch request: %w", err)
	}
	if r.Command.Operation == "" {
		return fmt.Errorf("invalid dispatch request: command.operation is required")
	}
	return nil
}

// DropFileRequest carries an image file dropped onto an image element or a
// layout column. Exactly one of ElementID or RowID/ColumnID addresses the target.
type DropFileRequest struct {
	SessionID string `json:"session_id"`
	ElementID int    `json:"element_id,omitempty"`
	RowID     int    `json:"row_id,omitempty"`
	ColumnID  string `json:"column_id,omitempty"`
	FileName  string `json:"file_name"`
	Data      []byte `json:"data"`
}

func (r *DropFileRequest) Validate() error {
	if err := validateSessionID(r.SessionID); err != nil {
		return fmt.Errorf("invalid drop file request: %w", err)
	}
	if len(r.Data) == 0 {
		return fmt.Errorf("invalid drop file request: data is required")
	}

	onElement := r.ElementID > 0
	onColumn := r.RowID > 0 || r.ColumnID != ""
	if onElement == onColumn {
		return fmt.Errorf("invalid drop file request: either element_id or row_id and column_id is required")
	}
	if onColumn {
		rowID, _, err := canvas.ParseColumnKey(r.ColumnID)
		if err != nil {
			return fmt.Errorf("invalid drop file request: %w", err)
		}
		if rowID != r.RowID {
			return fmt.Errorf("invalid drop file request: column %s does not belong to row %d", r.ColumnID, r.RowID)
		}
	}
	return nil
}

// PreviewRequest renders the editing surface of a session
type PreviewRequest struct {
	SessionID string         `json:"session_id"`
	Device    preview.Device `json:"device"`
}

func (r *PreviewRequest) FromURLParams(queryParams url.Values) error {
	r.SessionID = queryParams.Get("session_id")
	r.Device = preview.Device(queryParams.Get("device"))

	if err := validateSessionID(r.SessionID); err != nil {
		return fmt.Errorf("invalid preview request: %w", err)
	}

	switch r.Device {
	case "":
		r.Device = preview.DeviceDesktop
	case preview.DeviceDesktop, preview.DeviceMobile:
	default:
		return fmt.Errorf("invalid preview request: unknown device %q", r.Device)
	}
	return nil
}

type PreviewResponse struct {
	HTML  string `json:"html"`
	Width int    `json:"width"`
}

// InteractRequest forwards a gesture captured on the rendered preview
type InteractRequest struct {
	SessionID   string              `json:"session_id"`
	Interaction preview.Interaction `json:"interaction"`
}

func (r *InteractRequest) Validate() error {
	if err := validateSessionID(r.SessionID); err != nil {
		return fmt.Errorf("invalid interact request: %w", err)
	}
	return nil
}

// SessionRequest addresses a session by id, for snapshot and close
type SessionRequest struct {
	SessionID string `json:"session_id"`
}

func (r *SessionRequest) Validate() error {
	if err := validateSessionID(r.SessionID); err != nil {
		return fmt.Errorf("invalid session request: %w", err)
	}
	return nil
}

func (r *SessionRequest) FromURLParams(queryParams url.Values) error {
	r.SessionID = queryParams.Get("session_id")
	return r.Validate()
}

func validateSessionID(id string) error {
	if id == "" {
		return fmt.Errorf("session_id is required")
	}
	if !govalidator.IsUUID(id) {
		return fmt.Errorf("session_id must be a uuid")
	}
	return nil
}

// EditorService keeps editing sessions in memory and routes gestures to the
// composition engine
type EditorService interface {
	// Open creates a session, loading the template document when an id is given
	Open(ctx context.Context, req OpenEditorRequest) (*EditorState, error)

	// Dispatch applies a command to the session document
	Dispatch(ctx context.Context, req DispatchRequest) (*EditorState, error)

	// DropFile starts decoding a dropped image. The session is updated once the
	// decode completes; the returned state only reflects the pending decode.
	DropFile(ctx context.Context, req DropFileRequest) (*EditorState, error)

	// Interact translates a preview gesture into commands
	Interact(ctx context.Context, req InteractRequest) (*EditorState, error)

	// Preview renders the editing surface
	Preview(ctx context.Context, req PreviewRequest) (*PreviewResponse, error)

	// Snapshot returns the current state without changing it
	Snapshot(ctx context.Context, sessionID string) (*EditorState, error)

	// Close discards a session
	Close(ctx context.Context, sessionID string) error
}
