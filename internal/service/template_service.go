package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Notifuse/mailcanvas/config"
	"github.com/Notifuse/mailcanvas/internal/domain"
	"github.com/Notifuse/mailcanvas/pkg/canvas"
	"github.com/Notifuse/mailcanvas/pkg/emailhtml"
	"github.com/Notifuse/mailcanvas/pkg/logger"
	"github.com/Notifuse/mailcanvas/pkg/tracing"
)

type TemplateService struct {
	repo   domain.TemplateRepository
	logger logger.Logger
	render config.RenderConfig
}

func NewTemplateService(repo domain.TemplateRepository, logger logger.Logger, render config.RenderConfig) *TemplateService {
	return &TemplateService{
		repo:   repo,
		logger: logger,
		render: render,
	}
}

// SaveTemplate renders the document to email HTML and its text alternative and
// stores the result as a new version. Merge tags are kept in the stored HTML;
// they are filled per recipient at send time.
func (s *TemplateService) SaveTemplate(ctx context.Context, template *domain.Template) (*domain.Template, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "TemplateService", "SaveTemplate")
	defer span.End()

	if template.ID == "" {
		template.ID = uuid.New().String()
	}
	tracing.AddAttribute(ctx, "template.id", template.ID)

	if err := template.Document.Validate(); err != nil {
		tracing.MarkSpanError(ctx, err)
		return nil, domain.NewValidationError(fmt.Sprintf("invalid document: %v", err))
	}

	html, text, err := s.renderTemplate(ctx, template.Document.Document, template.Subject, template.PreviewText)
	if err != nil {
		tracing.MarkSpanError(ctx, err)
		return nil, err
	}
	template.HTML = html
	template.Text = text

	existing, err := s.repo.GetTemplateByID(ctx, template.ID, 0)
	var notFound *domain.ErrTemplateNotFound
	switch {
	case errors.As(err, &notFound):
		template.Version = 1
		if err := template.Validate(); err != nil {
			return nil, domain.NewValidationError(err.Error())
		}
		if err := s.repo.CreateTemplate(ctx, template); err != nil {
			s.logger.WithField("template_id", template.ID).Error(fmt.Sprintf("Failed to create template: %v", err))
			tracing.MarkSpanError(ctx, err)
			return nil, fmt.Errorf("failed to create template: %w", err)
		}
		s.logger.WithField("template_id", template.ID).Info("Template created")

	case err != nil:
		s.logger.WithField("template_id", template.ID).Error(fmt.Sprintf("Failed to check if template exists: %v", err))
		tracing.MarkSpanError(ctx, err)
		return nil, fmt.Errorf("failed to check if template exists: %w", err)

	default:
		// version from the existing row satisfies validation; the repository
		// assigns the next one
		template.Version = existing.Version
		if err := template.Validate(); err != nil {
			return nil, domain.NewValidationError(err.Error())
		}
		template.CreatedAt = existing.CreatedAt
		if err := s.repo.UpdateTemplate(ctx, template); err != nil {
			s.logger.WithField("template_id", template.ID).Error(fmt.Sprintf("Failed to update template: %v", err))
			tracing.MarkSpanError(ctx, err)
			return nil, fmt.Errorf("failed to update template: %w", err)
		}
		s.logger.WithFields(map[string]interface{}{
			"template_id": template.ID,
			"version":     template.Version,
		}).Info("Template version saved")
	}

	tracing.AddAttribute(ctx, "template.version", template.Version)
	return template, nil
}

func (s *TemplateService) GetTemplateByID(ctx context.Context, id string, version int64) (*domain.Template, error) {
	template, err := s.repo.GetTemplateByID(ctx, id, version)
	if err != nil {
		var notFound *domain.ErrTemplateNotFound
		if errors.As(err, &notFound) {
			return nil, err
		}
		s.logger.WithField("template_id", id).Error(fmt.Sprintf("Failed to get template: %v", err))
		return nil, fmt.Errorf("failed to get template: %w", err)
	}

	return template, nil
}

func (s *TemplateService) GetTemplates(ctx context.Context, category string) ([]*domain.Template, error) {
	templates, err := s.repo.GetTemplates(ctx, category)
	if err != nil {
		s.logger.Error(fmt.Sprintf("Failed to get templates: %v", err))
		return nil, fmt.Errorf("failed to get templates: %w", err)
	}

	return templates, nil
}

func (s *TemplateService) DeleteTemplate(ctx context.Context, id string) error {
	if err := s.repo.DeleteTemplate(ctx, id); err != nil {
		var notFound *domain.ErrTemplateNotFound
		if errors.As(err, &notFound) {
			return err
		}
		s.logger.WithField("template_id", id).Error(fmt.Sprintf("Failed to delete template: %v", err))
		return fmt.Errorf("failed to delete template: %w", err)
	}

	return nil
}

// CompileTemplate renders a document without storing it. Rendering problems
// are reported in the response; the error is reserved for unusable requests.
func (s *TemplateService) CompileTemplate(ctx context.Context, req domain.CompileTemplateRequest) (*domain.CompileTemplateResponse, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "TemplateService", "CompileTemplate")
	defer span.End()

	if err := req.Validate(); err != nil {
		tracing.MarkSpanError(ctx, err)
		return nil, domain.NewValidationError(err.Error())
	}
	tracing.AddAttribute(ctx, "compile.mode", string(req.Mode))

	started := time.Now()
	out, err := emailhtml.Convert(ctx, req.Document.Document, emailhtml.Options{
		Mode:          req.Mode,
		TemplateData:  req.TemplateData.Data(),
		Title:         req.Subject,
		PreviewText:   req.PreviewText,
		ContentWidth:  s.render.ContentWidth,
		LiquidTimeout: s.render.LiquidTimeout,
	})
	tracing.RecordRender(ctx, started, string(req.Mode))

	resp := &domain.CompileTemplateResponse{}
	if out.MJML != "" {
		resp.MJML = &out.MJML
	}
	if err != nil {
		tracing.MarkSpanError(ctx, err)
		message := err.Error()
		resp.Error = &message
		return resp, nil
	}

	text, err := emailhtml.PlainText(out.HTML)
	if err != nil {
		s.logger.Warn(fmt.Sprintf("Failed to derive text alternative: %v", err))
	} else {
		resp.Text = &text
	}

	resp.Success = true
	resp.HTML = &out.HTML
	return resp, nil
}

func (s *TemplateService) renderTemplate(ctx context.Context, doc canvas.Document, subject, previewText string) (string, string, error) {
	started := time.Now()
	out, err := emailhtml.Convert(ctx, doc, emailhtml.Options{
		Mode:         emailhtml.ModeEmail,
		Title:        subject,
		PreviewText:  previewText,
		ContentWidth: s.render.ContentWidth,
	})
	tracing.RecordRender(ctx, started, string(emailhtml.ModeEmail))
	if err != nil {
		return "", "", fmt.Errorf("failed to render template: %w", err)
	}

	text, err := emailhtml.PlainText(out.HTML)
	if err != nil {
		return "", "", fmt.Errorf("failed to render text alternative: %w", err)
	}
	return out.HTML, text, nil
}
