package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BaSui01/arcbridge/federation"
	"github.com/BaSui01/arcbridge/types"
)

// --- Shared helpers ---

func newTestState(t *testing.T) *federation.State {
	t.Helper()
	return federation.NewState(zap.NewNop())
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func get(t *testing.T, handler http.HandlerFunc, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func decodeResponse(w *httptest.ResponseRecorder, resp *Response) error {
	return json.NewDecoder(w.Body).Decode(resp)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}

// --- Tests ---

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSON(w, http.StatusOK, map[string]string{"message": "hello"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestWriteSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	WriteSuccess(w, map[string]string{"key": "value"})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp Response
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.NotNil(t, resp.Data)
	assert.Nil(t, resp.Error)
	assert.False(t, resp.Timestamp.IsZero())
}

func TestWriteError_StatusMapping(t *testing.T) {
	logger := zap.NewNop()

	tests := []struct {
		name           string
		err            *types.Error
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "missing field",
			err:            types.NewError(types.ErrMissingField, "target is required"),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "MISSING_FIELD",
		},
		{
			name:           "invalid action type",
			err:            types.NewError(types.ErrInvalidActionType, "unknown action type: NUKE"),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_ACTION_TYPE",
		},
		{
			name:           "internal error",
			err:            types.NewError(types.ErrInternalError, "boom"),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   "INTERNAL_ERROR",
		},
		{
			name:           "explicit status wins",
			err:            types.NewError(types.ErrInvalidRequest, "nope").WithHTTPStatus(http.StatusTeapot),
			expectedStatus: http.StatusTeapot,
			expectedCode:   "INVALID_REQUEST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tt.err, logger)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var resp Response
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.expectedCode, resp.Error.Code)
		})
	}
}

func TestDecodeJSONBody(t *testing.T) {
	type target struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid", body: `{"name":"ok"}`, wantErr: false},
		{name: "empty body", body: "", wantErr: true},
		{name: "unknown field", body: `{"name":"ok","extra":1}`, wantErr: true},
		{name: "not json", body: "hello", wantErr: true},
		{name: "two values", body: `{"name":"a"}{"name":"b"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			var dst target
			err := DecodeJSONBody(w, req, &dst)
			if tt.wantErr {
				require.NotNil(t, err)
				assert.Equal(t, types.ErrInvalidRequest, err.Code)
			} else {
				require.Nil(t, err)
				assert.Equal(t, "ok", dst.Name)
			}
		})
	}
}

func TestRequireMethod(t *testing.T) {
	req := httptest.NewRequest(http.MethodDelete, "/x", nil)
	w := httptest.NewRecorder()

	ok := RequireMethod(w, req, http.MethodGet, zap.NewNop())
	assert.False(t, ok)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, http.MethodGet, w.Header().Get("Allow"))
}
