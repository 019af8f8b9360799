package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Notifuse/mailcanvas/internal/domain"
	"github.com/Notifuse/mailcanvas/pkg/canvas"
	"github.com/Notifuse/mailcanvas/pkg/composer"
	"github.com/Notifuse/mailcanvas/pkg/logger"
	"github.com/Notifuse/mailcanvas/pkg/preview"
	"github.com/Notifuse/mailcanvas/pkg/tracing"
)

const (
	decodeFailedMessage    = "The dropped image could not be loaded"
	invalidTemplateMessage = "The saved template could not be read, starting from an empty document"
)

// editorSession is the state of one open editor. Every field is guarded by mu.
type editorSession struct {
	mu           sync.Mutex
	id           string
	templateID   string
	version      int64
	doc          canvas.Document
	selection    *canvas.Selection
	notification *composer.Notification
	pending      int
	lastUsed     time.Time
	closed       bool
}

func (s *editorSession) state() *domain.EditorState {
	return &domain.EditorState{
		SessionID:      s.id,
		TemplateID:     s.templateID,
		Version:        s.version,
		Document:       domain.Document{Document: s.doc},
		Selection:      s.selection,
		Notification:   s.notification,
		PendingDecodes: s.pending,
	}
}

// apply dispatches cmd against the session; the caller holds mu
func (s *editorSession) apply(ctx context.Context, engine *composer.Engine, cmd composer.Command) error {
	res, err := engine.Dispatch(s.doc, s.selection, cmd)

	outcome := "ok"
	switch {
	case err != nil:
		outcome = "error"
	case !res.Changed:
		outcome = "noop"
	}
	tracing.RecordDispatch(ctx, string(cmd.Operation), outcome)

	s.doc = res.Document
	s.selection = res.Selection
	s.notification = res.Notification
	return err
}

// EditorService keeps editing sessions in memory. Each session serializes its
// own commands; different sessions never contend.
type EditorService struct {
	mu       sync.RWMutex
	sessions map[string]*editorSession

	templates domain.TemplateRepository
	engine    *composer.Engine
	decoder   *composer.ImageDecoder
	logger    logger.Logger
	ttl       time.Duration
	now       func() time.Time

	decodes sync.WaitGroup
}

func NewEditorService(templates domain.TemplateRepository, engine *composer.Engine, decoder *composer.ImageDecoder, ttl time.Duration, logger logger.Logger) *EditorService {
	return &EditorService{
		sessions:  make(map[string]*editorSession),
		templates: templates,
		engine:    engine,
		decoder:   decoder,
		logger:    logger,
		ttl:       ttl,
		now:       time.Now,
	}
}

func (s *EditorService) Open(ctx context.Context, req domain.OpenEditorRequest) (*domain.EditorState, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "EditorService", "Open")
	defer span.End()

	session := &editorSession{
		id:       uuid.New().String(),
		doc:      canvas.NewDocument(),
		lastUsed: s.now(),
	}

	if req.TemplateID != "" {
		template, err := s.templates.GetTemplateByID(ctx, req.TemplateID, req.Version)
		var notFound *domain.ErrTemplateNotFound
		switch {
		case errors.As(err, &notFound):
			tracing.MarkSpanError(ctx, err)
			return nil, err
		case errors.Is(err, canvas.ErrInvalidTemplate):
			// unreadable documents open empty so the template can be rebuilt
			s.logger.WithField("template_id", req.TemplateID).Warn(fmt.Sprintf("Stored template document is invalid: %v", err))
			session.templateID = req.TemplateID
			session.version = req.Version
			session.notification = &composer.Notification{Level: composer.LevelError, Message: invalidTemplateMessage}
		case err != nil:
			tracing.MarkSpanError(ctx, err)
			return nil, fmt.Errorf("failed to load template: %w", err)
		default:
			session.templateID = template.ID
			session.version = template.Version
			session.doc = template.Document.Document
		}
	}

	s.mu.Lock()
	s.sessions[session.id] = session
	s.mu.Unlock()

	tracing.AddAttribute(ctx, "session.id", session.id)
	s.logger.WithFields(map[string]interface{}{
		"session_id":  session.id,
		"template_id": session.templateID,
	}).Info("Editor session opened")

	return session.state(), nil
}

// session returns the open session with id, dropping it when it has expired
func (s *EditorService) session(id string) (*editorSession, error) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, &domain.ErrSessionNotFound{SessionID: id}
	}

	session.mu.Lock()
	now := s.now()
	expired := s.ttl > 0 && now.Sub(session.lastUsed) > s.ttl
	if expired {
		session.closed = true
	} else {
		session.lastUsed = now
	}
	session.mu.Unlock()

	if expired {
		s.mu.Lock()
		if s.sessions[id] == session {
			delete(s.sessions, id)
		}
		s.mu.Unlock()
		return nil, &domain.ErrSessionNotFound{SessionID: id}
	}
	return session, nil
}

// Dispatch applies one command. A command the engine rejects is reported
// through the state notification, not as an error.
func (s *EditorService) Dispatch(ctx context.Context, req domain.DispatchRequest) (*domain.EditorState, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "EditorService", "Dispatch")
	defer span.End()
	tracing.AddAttribute(ctx, "command.operation", string(req.Command.Operation))

	session, err := s.session(req.SessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	if session.closed {
		return nil, &domain.ErrSessionNotFound{SessionID: req.SessionID}
	}

	if err := session.apply(ctx, s.engine, req.Command); err != nil {
		s.logger.WithFields(map[string]interface{}{
			"session_id": session.id,
			"operation":  string(req.Command.Operation),
		}).Warn(fmt.Sprintf("Command rejected: %v", err))
	}
	return session.state(), nil
}

// DropFile decodes a dropped image off the request path. When the decode
// completes the image is appended to the column, or fills the element, as a
// single command against whatever the document is at that moment.
func (s *EditorService) DropFile(ctx context.Context, req domain.DropFileRequest) (*domain.EditorState, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "EditorService", "DropFile")
	defer span.End()

	session, err := s.session(req.SessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	if session.closed {
		session.mu.Unlock()
		return nil, &domain.ErrSessionNotFound{SessionID: req.SessionID}
	}
	if err := checkDropTarget(session.doc, req); err != nil {
		session.mu.Unlock()
		tracing.MarkSpanError(ctx, err)
		return nil, err
	}
	session.pending++
	state := session.state()
	session.mu.Unlock()

	started := time.Now()
	s.decodes.Add(1)
	// the decode outlives the request
	future := s.decoder.Decode(context.WithoutCancel(ctx), composer.DroppedFile{Name: req.FileName, Data: req.Data})
	future.OnComplete(func(dataURI string, err error) {
		defer s.decodes.Done()
		s.applyDecoded(session, req, dataURI, err, started)
	})

	return state, nil
}

func checkDropTarget(doc canvas.Document, req domain.DropFileRequest) error {
	if req.ElementID > 0 {
		el, _, ok := doc.FindElement(req.ElementID)
		if !ok {
			return domain.NewValidationError(fmt.Sprintf("element %d not found", req.ElementID))
		}
		if !el.Kind.IsImage() {
			return domain.NewValidationError(fmt.Sprintf("element %d is a %s, images can only be dropped on Image or Logo elements", req.ElementID, el.Kind))
		}
		return nil
	}

	rowIdx := doc.RowIndex(req.RowID)
	if rowIdx < 0 {
		return domain.NewValidationError(fmt.Sprintf("row %d not found", req.RowID))
	}
	if _, ok := doc.LayoutRows[rowIdx].Elements[req.ColumnID]; !ok {
		return domain.NewValidationError(fmt.Sprintf("column %s not found", req.ColumnID))
	}
	return nil
}

func (s *EditorService) applyDecoded(session *editorSession, req domain.DropFileRequest, dataURI string, decodeErr error, started time.Time) {
	ctx := context.Background()

	session.mu.Lock()
	defer session.mu.Unlock()
	session.pending--

	if decodeErr != nil {
		tracing.RecordDecode(ctx, started, "error")
		if session.closed {
			return
		}
		session.notification = &composer.Notification{Level: composer.LevelError, Message: decodeFailedMessage}
		s.logger.WithFields(map[string]interface{}{
			"session_id": session.id,
			"file":       req.FileName,
		}).Warn(fmt.Sprintf("Dropped image rejected: %v", decodeErr))
		return
	}
	tracing.RecordDecode(ctx, started, "ok")

	if session.closed {
		return
	}

	var cmd composer.Command
	if req.ElementID > 0 {
		cmd = composer.SetImageCommand(req.ElementID, dataURI)
	} else {
		cmd = composer.AppendImageCommand(req.RowID, req.ColumnID, dataURI)
	}
	if err := session.apply(ctx, s.engine, cmd); err != nil {
		s.logger.WithField("session_id", session.id).Error(fmt.Sprintf("Failed to apply decoded image: %v", err))
	}
}

// Interact turns a gesture captured on the preview into engine commands
func (s *EditorService) Interact(ctx context.Context, req domain.InteractRequest) (*domain.EditorState, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "EditorService", "Interact")
	defer span.End()
	tracing.AddAttribute(ctx, "interaction.type", string(req.Interaction.Type))

	var (
		commands []composer.Command
		drop     *domain.DropFileRequest
	)
	err := preview.HandleInteraction(req.Interaction, preview.Callbacks{
		OnSelect: func(sel canvas.Selection) {
			commands = append(commands, composer.Command{
				Operation: composer.OpSelectElement,
				Target:    composer.Target{ElementID: sel.ID},
			})
		},
		OnDelete: func(id int, loc canvas.Location) {
			commands = append(commands, composer.Command{
				Operation: composer.OpDeleteElement,
				Target:    locatedTarget(id, loc),
			})
		},
		OnContentChange: func(id int, loc canvas.Location, content string) {
			payload, _ := json.Marshal(map[string]string{"content": content})
			commands = append(commands, composer.Command{
				Operation: composer.OpUpdateElement,
				Payload:   payload,
				Target:    locatedTarget(id, loc),
			})
		},
		OnImageDrop: func(id int, loc canvas.Location, name string, data []byte) {
			drop = &domain.DropFileRequest{SessionID: req.SessionID, ElementID: id, FileName: name, Data: data}
		},
	})
	if err != nil {
		tracing.MarkSpanError(ctx, err)
		return nil, domain.NewValidationError(err.Error())
	}

	if drop != nil {
		if err := drop.Validate(); err != nil {
			return nil, domain.NewValidationError(err.Error())
		}
		return s.DropFile(ctx, *drop)
	}

	var state *domain.EditorState
	for _, cmd := range commands {
		if state, err = s.Dispatch(ctx, domain.DispatchRequest{SessionID: req.SessionID, Command: cmd}); err != nil {
			return nil, err
		}
	}
	if state == nil {
		return s.Snapshot(ctx, req.SessionID)
	}
	return state, nil
}

func locatedTarget(id int, loc canvas.Location) composer.Target {
	return composer.Target{
		ElementID: id,
		Location:  loc.Kind,
		RowID:     loc.RowID,
		ColumnID:  loc.ColumnKey,
	}
}

func (s *EditorService) Preview(ctx context.Context, req domain.PreviewRequest) (*domain.PreviewResponse, error) {
	_, span := tracing.StartServiceSpan(ctx, "EditorService", "Preview")
	defer span.End()

	session, err := s.session(req.SessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	doc, sel, closed := session.doc, session.selection, session.closed
	session.mu.Unlock()
	if closed {
		return nil, &domain.ErrSessionNotFound{SessionID: req.SessionID}
	}

	return &domain.PreviewResponse{
		HTML:  preview.RenderCanvas(doc, preview.RenderContext{Selection: sel, Device: req.Device}),
		Width: req.Device.Width(),
	}, nil
}

func (s *EditorService) Snapshot(ctx context.Context, sessionID string) (*domain.EditorState, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	if session.closed {
		return nil, &domain.ErrSessionNotFound{SessionID: sessionID}
	}
	return session.state(), nil
}

// Close discards a session. Decodes still running for it are dropped when
// they complete.
func (s *EditorService) Close(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	session, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	if !ok {
		return &domain.ErrSessionNotFound{SessionID: sessionID}
	}

	session.mu.Lock()
	session.closed = true
	session.mu.Unlock()

	s.logger.WithField("session_id", sessionID).Info("Editor session closed")
	return nil
}

// Sweep closes sessions idle for longer than the TTL and returns how many
func (s *EditorService) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	expired := 0
	for id, session := range s.sessions {
		session.mu.Lock()
		if now.Sub(session.lastUsed) > s.ttl {
			session.closed = true
			delete(s.sessions, id)
			expired++
		}
		session.mu.Unlock()
	}
	if expired > 0 {
		s.logger.WithField("count", expired).Info("Expired editor sessions closed")
	}
	return expired
}

// OpenSessions returns the number of sessions currently held
func (s *EditorService) OpenSessions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Drain waits for in-flight image decodes to finish or ctx to end
func (s *EditorService) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.decodes.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("pending image decodes: %w", ctx.Err())
	}
}
