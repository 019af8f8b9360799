package domain

import (
	"bytes"
	"context"
	"database/sql/driver"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/asaskevich/govalidator"

	"github.com/Notifuse/mailcanvas/pkg/canvas"
	"github.com/Notifuse/mailcanvas/pkg/emailhtml"
)

//go:generate mockgen -destination mocks/mock_template_service.go -package mocks github.com/Notifuse/mailcanvas/internal/domain TemplateService
//go:generate mockgen -destination mocks/mock_template_repository.go -package mocks github.com/Notifuse/mailcanvas/internal/domain TemplateRepository

type TemplateCategory string

const (
	TemplateCategoryMarketing     TemplateCategory = "marketing"
	TemplateCategoryTransactional TemplateCategory = "transactional"
	TemplateCategoryNewsletter    TemplateCategory = "newsletter"
	TemplateCategoryOther         TemplateCategory = "other"
)

func (t TemplateCategory) Validate() error {
	switch t {
	case TemplateCategoryMarketing, TemplateCategoryTransactional, TemplateCategoryNewsletter, TemplateCategoryOther:
		return nil
	}
	return fmt.Errorf("invalid template category: %s", t)
}

// Document is the canvas document persisted as template JSON
type Document struct {
	canvas.Document
}

// Scan implements the sql.Scanner interface
func (d *Document) Scan(val interface{}) error {
	var data []byte

	if b, ok := val.([]byte); ok {
		// the driver reuses the buffer for later rows
		data = bytes.Clone(b)
	} else if s, ok := val.(string); ok {
		data = []byte(s)
	} else if val == nil {
		d.Document = canvas.NewDocument()
		return nil
	}

	doc, err := canvas.LoadTemplate(data)
	if err != nil {
		return fmt.Errorf("failed to scan template document: %w", err)
	}
	d.Document = doc
	return nil
}

// Value implements the driver.Valuer interface
func (d Document) Value() (driver.Value, error) {
	return canvas.Marshal(d.Document)
}

func (d Document) MarshalJSON() ([]byte, error) {
	return canvas.Marshal(d.Document)
}

// UnmarshalJSON loads the document the way a stored template is loaded, so
// an invalid document is refused
func (d *Document) UnmarshalJSON(data []byte) error {
	doc, err := canvas.LoadTemplate(data)
	if err != nil {
		return err
	}
	d.Document = doc
	return nil
}

// Template is one version of a saved email. Every save writes a new version.
type Template struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Version     int64      `json:"version"`
	Category    string     `json:"category"`
	Subject     string     `json:"subject"`
	PreviewText string     `json:"preview_text,omitempty"`
	Document    Document   `json:"document"`
	HTML        string     `json:"html"`
	Text        string     `json:"text"`
	TestData    MapOfAny   `json:"test_data,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

func (t *Template) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("invalid template: id is required")
	}
	if len(t.ID) > 36 {
		return fmt.Errorf("invalid template: id length must be between 1 and 36")
	}

	if t.Name == "" {
		return fmt.Errorf("invalid template: name is required")
	}
	if len(t.Name) > 64 {
		return fmt.Errorf("invalid template: name length must be between 1 and 64")
	}

	if t.Version <= 0 {
		return fmt.Errorf("invalid template: version must be positive")
	}

	if err := TemplateCategory(t.Category).Validate(); err != nil {
		return fmt.Errorf("invalid template: %w", err)
	}

	if len(t.Subject) > 255 {
		return fmt.Errorf("invalid template: subject length must be at most 255")
	}
	if len(t.PreviewText) > 255 {
		return fmt.Errorf("invalid template: preview_text length must be at most 255")
	}

	if err := t.Document.Validate(); err != nil {
		return fmt.Errorf("invalid template: %w", err)
	}

	if t.TestData == nil {
		t.TestData = MapOfAny{}
	}

	return nil
}

// Request/Response types

// SaveTemplateRequest saves the document of an editing session, or a document
// given inline, as a new template version
type SaveTemplateRequest struct {
	ID          string    `json:"id,omitempty"`
	SessionID   string    `json:"session_id,omitempty"`
	Document    *Document `json:"document,omitempty"`
	Name        string    `json:"name"`
	Category    string    `json:"category,omitempty"`
	Subject     string    `json:"subject,omitempty"`
	PreviewText string    `json:"preview_text,omitempty"`
	TestData    MapOfAny  `json:"test_data,omitempty"`
}

func (r *SaveTemplateRequest) Validate() error {
	if r.SessionID == "" && r.Document == nil {
		return fmt.Errorf("invalid save template request: session_id or document is required")
	}
	if r.SessionID != "" && r.Document != nil {
		return fmt.Errorf("invalid save template request: session_id and document are mutually exclusive")
	}
	if r.ID != "" && !govalidator.IsUUID(r.ID) {
		return fmt.Errorf("invalid save template request: id must be a uuid")
	}

	if r.Name == "" {
		return fmt.Errorf("invalid save template request: name is required")
	}
	if len(r.Name) > 64 {
		return fmt.Errorf("invalid save template request: name length must be between 1 and 64")
	}

	if r.Category == "" {
		r.Category = string(TemplateCategoryOther)
	}
	if err := TemplateCategory(r.Category).Validate(); err != nil {
		return fmt.Errorf("invalid save template request: %w", err)
	}

	return nil
}

// Template builds the template to persist around a document
func (r *SaveTemplateRequest) Template(doc canvas.Document) *Template {
	return &Template{
		ID:          r.ID,
		Name:        r.Name,
		Category:    r.Category,
		Subject:     r.Subject,
		PreviewText: r.PreviewText,
		Document:    Document{Document: doc},
		TestData:    r.TestData,
	}
}

type GetTemplatesRequest struct {
	Category string `json:"category,omitempty"`
}

func (r *GetTemplatesRequest) FromURLParams(queryParams url.Values) (err error) {
	r.Category = queryParams.Get("category")

	if r.Category != "" {
		if err := TemplateCategory(r.Category).Validate(); err != nil {
			return fmt.Errorf("invalid get templates request: %w", err)
		}
	}

	return nil
}

type GetTemplateRequest struct {
	ID      string `json:"id"`
	Version int64  `json:"version,omitempty"`
}

func (r *GetTemplateRequest) FromURLParams(queryParams url.Values) (err error) {
	r.ID = queryParams.Get("id")
	versionStr := queryParams.Get("version")

	if r.ID == "" {
		return fmt.Errorf("invalid get template request: id is required")
	}
	if len(r.ID) > 36 {
		return fmt.Errorf("invalid get template request: id length must be between 1 and 36")
	}

	if versionStr != "" {
		version, err := strconv.ParseInt(versionStr, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid get template request: version must be a valid integer")
		}
		r.Version = version
	}

	return nil
}

type DeleteTemplateRequest struct {
	ID string `json:"id"`
}

func (r *DeleteTemplateRequest) Validate() (id string, err error) {
	if r.ID == "" {
		return "", fmt.Errorf("invalid delete template request: id is required")
	}
	if len(r.ID) > 36 {
		return "", fmt.Errorf("invalid delete template request: id length must be between 1 and 36")
	}
	return r.ID, nil
}

// --- Compile Request/Response ---

type CompileTemplateRequest struct {
	Document     Document       `json:"document"`
	Mode         emailhtml.Mode `json:"mode,omitempty"`
	TemplateData MapOfAny       `json:"template_data,omitempty"`
	Subject      string         `json:"subject,omitempty"`
	PreviewText  string         `json:"preview_text,omitempty"`
}

func (r *CompileTemplateRequest) Validate() error {
	if r.Mode == "" {
		r.Mode = emailhtml.ModeEmail
	}
	if err := r.Mode.Validate(); err != nil {
		return fmt.Errorf("invalid compile template request: %w", err)
	}
	if err := r.Document.Validate(); err != nil {
		return fmt.Errorf("invalid compile template request: %w", err)
	}
	return nil
}

type CompileTemplateResponse struct {
	Success bool    `json:"success"`
	HTML    *string `json:"html,omitempty"`
	MJML    *string `json:"mjml,omitempty"`
	Text    *string `json:"text,omitempty"`
	Error   *string `json:"error,omitempty"`
}

// TemplateService provides operations for managing templates
type TemplateService interface {
	// SaveTemplate renders and persists a new version, creating the template
	// when it does not exist yet
	SaveTemplate(ctx context.Context, template *Template) (*Template, error)

	// GetTemplateByID retrieves a template by ID and optional version
	GetTemplateByID(ctx context.Context, id string, version int64) (*Template, error)

	// GetTemplates retrieves the latest version of every template
	GetTemplates(ctx context.Context, category string) ([]*Template, error)

	// DeleteTemplate soft deletes every version of a template
	DeleteTemplate(ctx context.Context, id string) error

	// CompileTemplate renders a document without persisting it
	CompileTemplate(ctx context.Context, req CompileTemplateRequest) (*CompileTemplateResponse, error)
}

// TemplateRepository provides database operations for templates
type TemplateRepository interface {
	// CreateTemplate creates the first version of a template
	CreateTemplate(ctx context.Context, template *Template) error

	// GetTemplateByID retrieves a template by its ID and optional version, 0 being the latest
	GetTemplateByID(ctx context.Context, id string, version int64) (*Template, error)

	// GetTemplateLatestVersion retrieves the latest version of a template
	GetTemplateLatestVersion(ctx context.Context, id string) (int64, error)

	// GetTemplates retrieves the latest version of every template
	GetTemplates(ctx context.Context, category string) ([]*Template, error)

	// UpdateTemplate stores a new version of an existing template
	UpdateTemplate(ctx context.Context, template *Template) error

	// DeleteTemplate soft deletes a template
	DeleteTemplate(ctx context.Context, id string) error
}

// ErrTemplateNotFound is returned when a template is not found
type ErrTemplateNotFound struct {
	Message string
}

func (e *ErrTemplateNotFound) Error() string {
	return e.Message
}
