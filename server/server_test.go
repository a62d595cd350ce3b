package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helios-eng/helios/ai/mock"
	"github.com/helios-eng/helios/assistant"
	"github.com/helios-eng/helios/core"
	"github.com/helios-eng/helios/retrieval"
	"github.com/helios-eng/helios/storage"
	"github.com/helios-eng/helios/storage/badger"
)

func newTestServer(t *testing.T) (*Server, storage.MaterialRepository) {
	t.Helper()

	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	records := []*core.MaterialRecord{
		{Name: "Titanium Grade 5", Category: "Metal", Notes: "High strength titanium alloy",
			Density: 4.43, TensileUltimate: 950, Vector: []float32{1, 0, 0}},
		{Name: "Oak Wood", Category: "Wood", Notes: "Hardwood for furniture", Vector: []float32{0, 0, 1}},
	}
	_, err = repo.AddMaterials(context.Background(), records...)
	require.NoError(t, err)

	provider := mock.NewMockProvider().(*mock.MockProvider)
	provider.GetMockEmbedder().EmbedTextFunc = func(_ context.Context, _ string) ([]float32, error) {
		return []float32{1, 0, 0}, nil
	}

	semantic, err := retrieval.NewVectorIndex(repo, provider.Embedder())
	require.NoError(t, err)

	documents := make([]*core.Document, len(records))
	for i, r := range records {
		documents[i] = core.RenderDocument(r)
	}
	keyword := retrieval.NewBM25Index(documents)

	retriever, err := retrieval.NewHybridRetriever(semantic, keyword)
	require.NoError(t, err)

	assist, err := assistant.NewAssistant(retriever, provider)
	require.NoError(t, err)

	srv, err := NewServer(assist, repo)
	require.NoError(t, err)
	return srv, repo
}

func doJSON(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestQueryEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/query",
		`{"question": "How strong is Titanium Grade 5?", "use_hybrid": true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp assistant.QueryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Answer)
	assert.Equal(t, "hybrid", resp.RetrievalMethod)
	assert.Equal(t, "Titanium Grade 5", resp.DetectedMaterial)
	require.NotEmpty(t, resp.Sources)
}

func TestQueryEndpointEmptyQuestion(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/query", `{"question": "  "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQueryEndpointWithHistory(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/query",
		`{"question": "what about its density?", "use_hybrid": true, "chat_history": [
			{"role": "user", "content": "Tell me about Titanium Grade 5"},
			{"role": "assistant", "content": "It is a strong alloy."}
		]}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestExportEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		format    string
		mediaType string
	}{
		{"json", "application/json"},
		{"csv", "text/csv"},
		{"txt", "text/plain"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			rec := doJSON(t, srv, http.MethodPost, "/export",
				`{"material_name": "Titanium Grade 5", "export_format": "`+tt.format+`"}`)
			require.Equal(t, http.StatusOK, rec.Code)

			assert.Contains(t, rec.Header().Get("Content-Type"), tt.mediaType)
			disposition := rec.Header().Get("Content-Disposition")
			assert.Contains(t, disposition, "attachment")
			assert.Contains(t, disposition, "Titanium Grade 5."+tt.format)
			assert.Contains(t, rec.Body.String(), "Titanium")
		})
	}
}

func TestExportEndpointUnknownMaterial(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/export",
		`{"material_name": "Unobtainium", "export_format": "json"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExportEndpointBadFormat(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/export",
		`{"material_name": "Titanium Grade 5", "export_format": "xml"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompareEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/compare?q=titanium+alloy&k=3", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var comparison retrieval.Comparison
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &comparison))
	assert.NotEmpty(t, comparison.Hybrid)
}

func TestCompareEndpointMissingQuery(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/compare", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthzEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestStatsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var stats map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.EqualValues(t, 2, stats["materials"])
	assert.EqualValues(t, 2, stats["embedded"])
}

func TestNewServerRequiredDependencies(t *testing.T) {
	srv, repo := newTestServer(t)

	_, err := NewServer(nil, repo)
	assert.ErrorIs(t, err, ErrAssistantRequired)

	_, err = NewServer(srv.assistant, nil)
	assert.ErrorIs(t, err, ErrRepositoryRequired)
}
