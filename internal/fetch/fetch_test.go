package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body><h1>Backend Engineer</h1></body></html>"))
	}))
	defer server.Close()

	result, err := Get(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, server.URL, result.URL)
	assert.Contains(t, result.HTML, "Backend Engineer")
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Equal(t, "text/html", result.ContentType)
}

func TestGet_InvalidURL(t *testing.T) {
	_, err := Get(context.Background(), "not-a-valid-url", nil)
	require.Error(t, err)

	var fetchErr *Error
	assert.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, err.Error(), "invalid URL")
}

func TestGet_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	result, err := Get(context.Background(), server.URL, nil)
	require.Error(t, err)
	require.NotNil(t, result, "partial result carries the status code")
	assert.Equal(t, http.StatusNotFound, result.StatusCode)
	assert.Contains(t, err.Error(), "404")
}

func TestGet_CustomHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "en", r.Header.Get("Accept-Language"))
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	opts := DefaultOptions()
	opts.Headers = map[string]string{"Accept-Language": "en"}
	_, err := Get(context.Background(), server.URL, opts)
	require.NoError(t, err)
}

func TestExtractText_PostingSelectors(t *testing.T) {
	html := `
	<html>
		<body>
			<nav>Site navigation</nav>
			<div class="sidebar">Similar jobs</div>
			<div class="job-description">
				<h2>Requirements</h2>
				<p>5 years of Go experience</p>
			</div>
			<footer>Copyright</footer>
		</body>
	</html>`

	text, err := ExtractText(html, PostingSelectors())
	require.NoError(t, err)
	assert.Contains(t, text, "Requirements")
	assert.Contains(t, text, "5 years of Go experience")
	assert.NotContains(t, text, "Site navigation")
	assert.NotContains(t, text, "Similar jobs")
	assert.NotContains(t, text, "Copyright")
}

func TestExtractText_NoiseSelectorsRemoved(t *testing.T) {
	html := `
	<html>
		<body>
			<main>
				<p>Join our team as a data engineer.</p>
				<div class="eeo-statement">Equal opportunity boilerplate</div>
			</main>
		</body>
	</html>`

	text, err := ExtractText(html, PostingSelectors(), ".eeo-statement")
	require.NoError(t, err)
	assert.Contains(t, text, "data engineer")
	assert.NotContains(t, text, "boilerplate")
}

func TestExtractText_FallbackToBody(t *testing.T) {
	html := `<html><body><div>Plain content with no landmarks.</div></body></html>`

	text, err := ExtractText(html, PostingSelectors())
	require.NoError(t, err)
	assert.Contains(t, text, "Plain content with no landmarks")
}

func TestCollapseWhitespace(t *testing.T) {
	in := "  Title  \n\n\n   Body line   \n"
	assert.Equal(t, "Title\nBody line", collapseWhitespace(in))
}

func TestNeedsBrowser(t *testing.T) {
	assert.True(t, NeedsBrowser("   "))
	assert.True(t, NeedsBrowser("Loading..."))

	long := make([]byte, MinContentLength)
	for i := range long {
		long[i] = 'a'
	}
	assert.False(t, NeedsBrowser(string(long)))
}
