package ingestion

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTextPlainText(t *testing.T) {
	text, err := ExtractText("cv.txt", []byte("Jane Doe\r\nSoftware Engineer\r\n"))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nSoftware Engineer", text)
}

func TestExtractTextMarkdown(t *testing.T) {
	text, err := ExtractText("cv.md", []byte("# Jane Doe\n\n\n\n## Experience\n"))
	require.NoError(t, err)
	assert.Equal(t, "# Jane Doe\n\n## Experience", text)
}

func TestExtractTextHTML(t *testing.T) {
	html := `<html><head><script>track()</script></head><body>
<nav>Home | Jobs</nav>
<main>
  <h1>Senior Backend Engineer</h1>
  <p>Acme Corp is hiring.</p>
</main>
<footer>Copyright</footer>
</body></html>`

	text, err := ExtractText("posting.html", []byte(html))
	require.NoError(t, err)
	assert.Contains(t, text, "Senior Backend Engineer")
	assert.Contains(t, text, "Acme Corp is hiring.")
	assert.NotContains(t, text, "Home | Jobs")
	assert.NotContains(t, text, "Copyright")
	assert.NotContains(t, text, "track()")
}

func TestExtractTextHTMLPrefersJobDescriptionContainer(t *testing.T) {
	html := `<html><body>
<div class="sidebar">Related jobs</div>
<div class="job-description">
  <p>Build backend services in Go.</p>
</div>
<div>Other page text</div>
</body></html>`

	text, err := ExtractText("posting.html", []byte(html))
	require.NoError(t, err)
	assert.Contains(t, text, "Build backend services in Go.")
	assert.NotContains(t, text, "Related jobs")
	assert.NotContains(t, text, "Other page text")
}

func TestExtractTextUnsupportedFormat(t *testing.T) {
	_, err := ExtractText("cv.rtf", []byte("{\\rtf1}"))
	require.Error(t, err)

	var unsupported *UnsupportedFormatError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "cv.rtf", unsupported.Filename)
}

func TestExtractTextCorruptPDF(t *testing.T) {
	_, err := ExtractText("cv.pdf", []byte("not a pdf"))
	require.Error(t, err)

	var extraction *ExtractionError
	require.ErrorAs(t, err, &extraction)
	assert.Equal(t, "cv.pdf", extraction.Filename)
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "windows line endings",
			input: "a\r\nb\r\n",
			want:  "a\nb",
		},
		{
			name:  "trailing whitespace per line",
			input: "a  \t\nb\t\n",
			want:  "a\nb",
		},
		{
			name:  "blank runs collapse to one blank line",
			input: "a\n\n\n\n\nb",
			want:  "a\n\nb",
		},
		{
			name:  "surrounding whitespace trimmed",
			input: "\n\n  a\n",
			want:  "a",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.input))
		})
	}
}

func TestFetchPosting(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`<html><body><main><p>We need Python and SQL.</p></main></body></html>`))
	}))
	defer server.Close()

	text, err := FetchPosting(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "We need Python and SQL.", text)
}

func TestFetchPostingHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	_, err := FetchPosting(context.Background(), server.URL)
	require.Error(t, err)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, fetchErr.Message, "404")
}

func TestFetchPostingInvalidURL(t *testing.T) {
	_, err := FetchPosting(context.Background(), "not-a-url")
	require.Error(t, err)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "invalid URL", fetchErr.Message)
}
