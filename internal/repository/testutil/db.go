package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

// TemplateColumns is the column order templates are selected in
var TemplateColumns = []string{
	"id", "name", "version", "category", "subject", "preview_text", "document",
	"html", "text", "test_data", "created_at", "updated_at", "deleted_at",
}

// EmptyDocument is the stored form of a document without content
const EmptyDocument = `{"canvasItems":[],"layoutRows":[],"nextId":1}`

// SetupMockDB creates a mock database connection for testing
func SetupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
	}

	return db, mock, cleanup
}

// TemplateRow describes one stored template version
type TemplateRow struct {
	ID       string
	Name     string
	Version  int64
	Category string
	Document string
}

// NewTemplateRows builds the rows a template select returns
func NewTemplateRows(templates ...TemplateRow) *sqlmock.Rows {
	now := time.Now().UTC()
	rows := sqlmock.NewRows(TemplateColumns)
	for _, tpl := range templates {
		document := tpl.Document
		if document == "" {
			document = EmptyDocument
		}
		category := tpl.Category
		if category == "" {
			category = "other"
		}
		rows.AddRow(tpl.ID, tpl.Name, tpl.Version, category, "Subject", nil, []byte(document),
			"<html></html>", "text", []byte(`{}`), now, now, nil)
	}
	return rows
}
