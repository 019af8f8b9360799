package domain

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Notifuse/mailcanvas/pkg/composer"
	"github.com/Notifuse/mailcanvas/pkg/preview"
)

const testSessionID = "8f4c3c0e-7f4b-4c1a-9f55-5d3a1b9c2e11"

func TestOpenEditorRequest_Validate(t *testing.T) {
	assert.NoError(t, (&OpenEditorRequest{}).Validate())
	assert.NoError(t, (&OpenEditorRequest{TemplateID: "welcome", Version: 2}).Validate())
	assert.Error(t, (&OpenEditorRequest{Version: 2}).Validate())
	assert.Error(t, (&OpenEditorRequest{TemplateID: "welcome", Version: -1}).Validate())
}

func TestDispatchRequest_Validate(t *testing.T) {
	req := DispatchRequest{SessionID: testSessionID, Command: composer.Command{Operation: composer.OpSelectElement}}
	assert.NoError(t, req.Validate())

	req.Command.Operation = ""
	assert.ErrorContains(t, req.Validate(), "command.operation is required")

	req = DispatchRequest{SessionID: "session-1", Command: composer.Command{Operation: composer.OpSelectElement}}
	assert.ErrorContains(t, req.Validate(), "session_id must be a uuid")
}

func TestDropFileRequest_Validate(t *testing.T) {
	data := []byte{0x89, 'P', 'N', 'G'}

	tests := []struct {
		name    string
		req     DropFileRequest
		wantErr string
	}{
		{"on element", DropFileRequest{SessionID: testSessionID, ElementID: 3, Data: data}, ""},
		{"on column", DropFileRequest{SessionID: testSessionID, RowID: 2, ColumnID: "2-col-1", Data: data}, ""},
		{"missing session", DropFileRequest{ElementID: 3, Data: data}, "session_id is required"},
		{"no data", DropFileRequest{SessionID: testSessionID, ElementID: 3}, "data is required"},
		{"no target", DropFileRequest{SessionID: testSessionID, Data: data}, "either element_id"},
		{"both targets", DropFileRequest{SessionID: testSessionID, ElementID: 3, RowID: 2, ColumnID: "2-col-1", Data: data}, "either element_id"},
		{"bad column key", DropFileRequest{SessionID: testSessionID, RowID: 2, ColumnID: "left", Data: data}, "invalid drop file request"},
		{"column of another row", DropFileRequest{SessionID: testSessionID, RowID: 5, ColumnID: "2-col-1", Data: data}, "does not belong to row 5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPreviewRequest_FromURLParams(t *testing.T) {
	var req PreviewRequest
	require.NoError(t, req.FromURLParams(url.Values{"session_id": {testSessionID}}))
	assert.Equal(t, preview.DeviceDesktop, req.Device)

	require.NoError(t, req.FromURLParams(url.Values{"session_id": {testSessionID}, "device": {"mobile"}}))
	assert.Equal(t, preview.DeviceMobile, req.Device)

	assert.Error(t, req.FromURLParams(url.Values{"session_id": {testSessionID}, "device": {"tablet"}}))
	assert.Error(t, req.FromURLParams(url.Values{}))
}

func TestSessionRequest(t *testing.T) {
	var req SessionRequest
	require.NoError(t, req.FromURLParams(url.Values{"session_id": {testSessionID}}))
	assert.Equal(t, testSessionID, req.SessionID)

	assert.Error(t, (&SessionRequest{}).Validate())
	assert.Error(t, (&InteractRequest{SessionID: "nope"}).Validate())
	assert.NoError(t, (&InteractRequest{SessionID: testSessionID}).Validate())
}
