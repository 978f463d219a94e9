package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jd-tailor/internal/retrieval"
	"github.com/jonathan/jd-tailor/internal/skills"
	"github.com/jonathan/jd-tailor/internal/types"
)

type fakeIndex struct {
	candidates []retrieval.Candidate
	err        error
}

func (f *fakeIndex) Query(_ context.Context, _ string, limit int) ([]retrieval.Candidate, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.candidates) > limit {
		return f.candidates[:limit], nil
	}
	return f.candidates, nil
}

func newTestServer(t *testing.T, index retrieval.Index) *Server {
	t.Helper()
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	return New(Config{
		Port: 0,
		SkillMap: skills.Map{
			"kubernetes": {"k8s"},
			"terraform":  {},
		},
		Index: index,
	})
}

func postJSON(t *testing.T, handler http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHandleParse(t *testing.T) {
	s := newTestServer(t, nil)

	rec := postJSON(t, s.Handler(), "/api/v1/parse", ParseRequest{
		Text: "Title: Senior Platform Engineer\nCompany: Initech\n\nMust have:\n- 5+ years with k8s\n- terraform in production\n",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var record types.JobDescription
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &record))

	assert.Equal(t, "Senior Platform Engineer", record.Title)
	assert.Equal(t, "Initech", record.Company)
	assert.Equal(t, "Senior", record.Seniority)
	assert.Contains(t, record.NormalizedSkills, "kubernetes")
	assert.Contains(t, record.NormalizedSkills, "terraform")
}

func TestHandleParse_BadRequests(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		name string
		body string
	}{
		{name: "empty text", body: `{"text": ""}`},
		{name: "missing text", body: `{}`},
		{name: "malformed json", body: `{"text": `},
		{name: "top_keywords out of range", body: `{"text": "hello", "top_keywords": 5000}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/parse", bytes.NewReader([]byte(tt.body)))
			rec := httptest.NewRecorder()
			s.Handler().ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "error")
		})
	}
}

func TestHandleRetrieve(t *testing.T) {
	index := &fakeIndex{
		candidates: []retrieval.Candidate{
			{Text: "Scaled Kubernetes clusters to 400 nodes", Tags: []string{"kubernetes"}, Distance: 0.3},
			{Text: "Wrote a Django billing portal", Tags: []string{"django"}, Distance: 0.2},
		},
	}
	s := newTestServer(t, index)

	rec := postJSON(t, s.Handler(), "/api/v1/retrieve", RetrieveRequest{
		Query:  "kubernetes platform work",
		Skills: []string{"kubernetes"},
		TopK:   2,
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp RetrieveResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	require.Equal(t, 2, resp.Count)
	assert.Equal(t, "Scaled Kubernetes clusters to 400 nodes", resp.Snippets[0].Text,
		"tag overlap should outrank the closer but unrelated snippet")
	assert.Greater(t, resp.Snippets[0].Score, resp.Snippets[1].Score)
}

func TestHandleRetrieve_DefaultTopK(t *testing.T) {
	index := &fakeIndex{}
	s := newTestServer(t, index)

	rec := postJSON(t, s.Handler(), "/api/v1/retrieve", RetrieveRequest{Query: "anything"})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp RetrieveResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Count)
	assert.NotNil(t, resp.Snippets)
}

func TestHandleRetrieve_NoIndex(t *testing.T) {
	s := newTestServer(t, nil)

	rec := postJSON(t, s.Handler(), "/api/v1/retrieve", RetrieveRequest{Query: "anything"})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandleRetrieve_IndexError(t *testing.T) {
	s := newTestServer(t, &fakeIndex{err: errors.New("connection refused")})

	rec := postJSON(t, s.Handler(), "/api/v1/retrieve", RetrieveRequest{Query: "anything"})
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "connection refused")
}

func TestHandleRetrieve_Validation(t *testing.T) {
	s := newTestServer(t, &fakeIndex{})

	rec := postJSON(t, s.Handler(), "/api/v1/retrieve", RetrieveRequest{Query: "ok", TopK: 500})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/parse", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimitHeaders(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	s := New(Config{Port: 0, SkillMap: skills.Map{}})

	rec := postJSON(t, s.Handler(), "/api/v1/parse", ParseRequest{Text: "some posting"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Limit"))
	assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Remaining"))
}
