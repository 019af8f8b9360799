package emailhtml

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/osteele/liquid"
)

// Security limits for merge tag rendering
const (
	DefaultRenderTimeout   = 5 * time.Second
	DefaultMaxTemplateSize = 100 * 1024 // 100KB
)

// SecureLiquidEngine renders Liquid merge tags with a size limit, a timeout and
// panic recovery. Operator content is trusted but template data is not: use
// RenderEscaped where the output is inserted as raw HTML.
type SecureLiquidEngine struct {
	timeout time.Duration
	maxSize int
	engine  *liquid.Engine
}

// NewSecureLiquidEngine creates an engine with the default limits
func NewSecureLiquidEngine() *SecureLiquidEngine {
	return NewSecureLiquidEngineWithOptions(DefaultRenderTimeout, DefaultMaxTemplateSize)
}

// NewSecureLiquidEngineWithOptions creates an engine with custom limits. Zero
// values fall back to the defaults.
func NewSecureLiquidEngineWithOptions(timeout time.Duration, maxSize int) *SecureLiquidEngine {
	if timeout <= 0 {
		timeout = DefaultRenderTimeout
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxTemplateSize
	}
	return &SecureLiquidEngine{
		timeout: timeout,
		maxSize: maxSize,
		engine:  liquid.NewEngine(),
	}
}

// HasMarkup reports whether content contains Liquid output or tag delimiters
func HasMarkup(content string) bool {
	return strings.Contains(content, "{{") || strings.Contains(content, "{%")
}

// Render renders content against data. Content without Liquid markup is
// returned untouched.
func (s *SecureLiquidEngine) Render(ctx context.Context, content string, data map[string]interface{}) (string, error) {
	if !HasMarkup(content) {
		return content, nil
	}
	if len(content) > s.maxSize {
		return "", fmt.Errorf("template size (%d bytes) exceeds maximum allowed size (%d bytes)", len(content), s.maxSize)
	}
	if data == nil {
		data = map[string]interface{}{}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resultChan := make(chan string, 1)
	errorChan := make(chan error, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				errorChan <- fmt.Errorf("panic during liquid rendering: %v", r)
			}
		}()

		rendered, err := s.engine.ParseAndRenderString(content, data)
		if err != nil {
			errorChan <- fmt.Errorf("liquid rendering failed: %w", err)
			return
		}
		resultChan <- rendered
	}()

	select {
	case result := <-resultChan:
		return result, nil
	case err := <-errorChan:
		return "", err
	case <-ctx.Done():
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("liquid rendering timeout after %v (possible infinite loop or excessive computation)", s.timeout)
		}
		return "", ctx.Err()
	}
}

// RenderEscaped renders content with every string in data HTML-escaped, so
// merge values cannot add markup to content emitted verbatim
func (s *SecureLiquidEngine) RenderEscaped(ctx context.Context, content string, data map[string]interface{}) (string, error) {
	if !HasMarkup(content) {
		return content, nil
	}
	escaped, _ := escapeValue(data).(map[string]interface{})
	return s.Render(ctx, content, escaped)
}

func escapeValue(v interface{}) interface{} {
	switch val := v.(type) {
	case string:
		return html.EscapeString(val)
	case []string:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = html.EscapeString(item)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = escapeValue(item)
		}
		return out
	case map[string]string:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			out[k] = html.EscapeString(item)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			out[k] = escapeValue(item)
		}
		return out
	}
	return v
}
