package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/jd-tailor/internal/parsing"
)

// maxRequestBody caps request bodies at 1 MB; job postings are text, not uploads.
const maxRequestBody = 1 << 20

// ParseRequest is the body of POST /api/v1/parse.
type ParseRequest struct {
	Text        string `json:"text" validate:"required,min=1"`
	TopKeywords int    `json:"top_keywords" validate:"omitempty,min=1,max=200"`
}

// RetrieveRequest is the body of POST /api/v1/retrieve.
type RetrieveRequest struct {
	Query  string   `json:"query" validate:"required,min=1"`
	Skills []string `json:"skills" validate:"omitempty,dive,min=1"`
	TopK   int      `json:"top_k" validate:"omitempty,min=1,max=50"`
}

// RetrieveResponse is the body returned by POST /api/v1/retrieve.
type RetrieveResponse struct {
	Snippets []RetrievedSnippet `json:"snippets"`
	Count    int                `json:"count"`
}

// RetrievedSnippet is one ranked result.
type RetrievedSnippet struct {
	Text  string   `json:"text"`
	Tags  []string `json:"tags,omitempty"`
	Score float64  `json:"score"`
}

// defaultTopK is used when a retrieve request omits top_k.
const defaultTopK = 5

// handleParse parses raw job description text into a structured record.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	topKeywords := req.TopKeywords
	if topKeywords == 0 {
		topKeywords = s.topKeywords
	}

	record := parsing.ParseJD(req.Text, s.skillMap, topKeywords)
	s.jsonResponse(w, http.StatusOK, record)
}

// handleRetrieve returns the top ranked snippets for a query.
func (s *Server) handleRetrieve(w http.ResponseWriter, r *http.Request) {
	if s.retriever == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Snippet index is not configured")
		return
	}

	var req RetrieveRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	topK := req.TopK
	if topK == 0 {
		topK = defaultTopK
	}

	ranked, err := s.retriever.RetrieveRanked(r.Context(), req.Query, req.Skills, topK)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, "Index query failed: "+err.Error())
		return
	}

	snippets := make([]RetrievedSnippet, 0, len(ranked))
	for _, snippet := range ranked {
		snippets = append(snippets, RetrievedSnippet{
			Text:  snippet.Text,
			Tags:  snippet.Tags,
			Score: snippet.Score,
		})
	}

	s.jsonResponse(w, http.StatusOK, RetrieveResponse{
		Snippets: snippets,
		Count:    len(snippets),
	})
}

// decodeAndValidate decodes the JSON body into dst and runs struct validation.
// On failure it writes the error response and returns false.
func (s *Server) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON body: "+err.Error())
		return false
	}

	if err := s.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			s.errorResponse(w, http.StatusBadRequest, "Invalid field: "+verrs[0].Namespace())
			return false
		}
		s.errorResponse(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return false
	}

	return true
}
