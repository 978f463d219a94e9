package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body>Job posting</body></html>"))
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Contains(t, result.HTML, "Job posting")
}

func TestURLInvalid(t *testing.T) {
	_, err := URL(context.Background(), "not-a-url")
	require.Error(t, err)

	var fetchErr *Error
	assert.ErrorAs(t, err, &fetchErr)
}

func TestURLNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL)
	assert.Error(t, err)
	require.NotNil(t, result)
	assert.Equal(t, http.StatusNotFound, result.StatusCode)
}

func TestExtractMainText(t *testing.T) {
	html := `<html><body>
		<nav>Navigation</nav>
		<main><h1>Senior Engineer</h1><p>Build things.</p></main>
		<footer>Footer stuff</footer>
	</body></html>`

	text, err := ExtractMainText(html, JobPostingSelectors())
	require.NoError(t, err)

	assert.Contains(t, text, "Senior Engineer")
	assert.Contains(t, text, "Build things.")
	assert.NotContains(t, text, "Navigation")
	assert.NotContains(t, text, "Footer stuff")
}

func TestExtractMainTextFallsBackToBody(t *testing.T) {
	html := `<html><body><div>Plain content</div></body></html>`

	text, err := ExtractMainText(html, []string{".job-description"})
	require.NoError(t, err)

	assert.Contains(t, text, "Plain content")
}

func TestShouldUseBrowser(t *testing.T) {
	assert.True(t, ShouldUseBrowser("short"))
	assert.True(t, ShouldUseBrowser(""))

	long := make([]byte, MinContentLength)
	for i := range long {
		long[i] = 'x'
	}
	assert.False(t, ShouldUseBrowser(string(long)))
}
