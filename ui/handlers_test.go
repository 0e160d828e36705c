package ui

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clientapp "dataview/app"
	"dataview/domain/analysis"
	"dataview/internal/session"
	"dataview/ports"
)

type stubAnalyzer struct {
	result  *analysis.Result
	entries []analysis.HistoryEntry
}

func (s *stubAnalyzer) Login(ctx context.Context, username, password string) (string, error) {
	return "tok", nil
}

func (s *stubAnalyzer) Register(ctx context.Context, email, password, name string) (string, error) {
	return "tok", nil
}

func (s *stubAnalyzer) Upload(ctx context.Context, file ports.UploadFile, token string) (*analysis.Result, error) {
	return s.result, nil
}

func (s *stubAnalyzer) History(ctx context.Context, token string) ([]analysis.HistoryEntry, error) {
	return s.entries, nil
}

func (s *stubAnalyzer) Result(ctx context.Context, id, token string) (*analysis.Result, error) {
	return s.result, nil
}

type passthroughResolver struct{}

func (passthroughResolver) ResolveArtifact(ref string) string { return ref }

func newTestApp(t *testing.T, remote *stubAnalyzer) *httptest.Server {
	t.Helper()

	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"), remote, nil)
	store.Restore()
	pipeline := clientapp.NewUploadPipeline(remote, nil)
	history := clientapp.NewHistoryCache(remote, nil)
	pipeline.AttachHistory(history)

	viewApp := NewApp(store, pipeline, history, passthroughResolver{}, nil)
	srv := httptest.NewServer(viewApp.Router())
	t.Cleanup(srv.Close)
	return srv
}

func decodeEnvelope(t *testing.T, resp *http.Response) APIResponse {
	t.Helper()
	defer resp.Body.Close()
	var envelope APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope
}

func TestViewsWithoutActiveResultReturn404(t *testing.T) {
	srv := newTestApp(t, &stubAnalyzer{})

	resp, err := http.Get(srv.URL + "/api/views/completeness")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	assert.False(t, envelope.Success)
	assert.NotEmpty(t, envelope.Error)
}

func multipartBody(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func TestUploadThenViews(t *testing.T) {
	remote := &stubAnalyzer{
		result: &analysis.Result{
			ID:   "r1",
			Rows: 2,
			Cols: 2,
			Columns: []analysis.ColumnStat{
				{Column: "a", Kind: analysis.KindNumeric, Missing: 5},
				{Column: "b", Kind: analysis.KindText},
			},
		},
	}
	srv := newTestApp(t, remote)

	body, contentType := multipartBody(t, "file", "data.csv", "a,b\n1,x\n")
	resp, err := http.Post(srv.URL+"/api/upload", contentType, body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decodeEnvelope(t, resp)

	resp, err = http.Get(srv.URL + "/api/views/completeness")
	require.NoError(t, err)
	envelope := decodeEnvelope(t, resp)
	require.True(t, envelope.Success)

	raw, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	var points []analysis.CompletenessPoint
	require.NoError(t, json.Unmarshal(raw, &points))
	require.Len(t, points, 2)
	assert.Equal(t, analysis.CompletenessPoint{Column: "a", Filled: 95, Missing: 5}, points[0])
}

func TestUploadRejectsBadExtension(t *testing.T) {
	srv := newTestApp(t, &stubAnalyzer{})

	body, contentType := multipartBody(t, "file", "data.txt", "nope")
	resp, err := http.Post(srv.URL+"/api/upload", contentType, body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	assert.False(t, envelope.Success)
	assert.Contains(t, envelope.Error, "CSV or XLSX")
}

func TestSessionEndpointReflectsLogin(t *testing.T) {
	srv := newTestApp(t, &stubAnalyzer{})

	resp, err := http.Get(srv.URL + "/api/session")
	require.NoError(t, err)
	envelope := decodeEnvelope(t, resp)
	data := envelope.Data.(map[string]interface{})
	assert.Equal(t, false, data["authenticated"])

	payload, _ := json.Marshal(map[string]string{"email": "u@example.com", "password": "pw"})
	resp, err = http.Post(srv.URL+"/api/auth/login", "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/api/session")
	require.NoError(t, err)
	envelope = decodeEnvelope(t, resp)
	data = envelope.Data.(map[string]interface{})
	assert.Equal(t, true, data["authenticated"])
}
