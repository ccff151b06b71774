package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractText(t *testing.T) {
	rawHTML := `<html><head><title>T</title><style>p{color:red}</style></head>
<body><script>var x = 1;</script><h1>Headline</h1><p>Body text here.</p></body></html>`

	text, err := ExtractText(rawHTML)

	require.NoError(t, err)
	assert.Contains(t, text, "Headline")
	assert.Contains(t, text, "Body text here.")
	assert.NotContains(t, text, "var x")
	assert.NotContains(t, text, "color:red")
}

func TestFetchText_HTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<html><body><p>hello from page</p></body></html>"))
	}))
	defer srv.Close()

	f := New(5*time.Second, 1<<20)
	text, err := f.FetchText(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Equal(t, "hello from page", text)
}

func TestFetchText_PlainText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("raw transcript text"))
	}))
	defer srv.Close()

	f := New(5*time.Second, 1<<20)
	text, err := f.FetchText(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Equal(t, "raw transcript text", text)
}

func TestFetchText_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	f := New(5*time.Second, 1<<20)
	_, err := f.FetchText(context.Background(), srv.URL)

	assert.Error(t, err)
}

func TestFetchText_InvalidURL(t *testing.T) {
	f := New(5*time.Second, 1<<20)

	for _, bad := range []string{"", "not a url", "ftp://example.com/x"} {
		_, err := f.FetchText(context.Background(), bad)
		assert.Error(t, err, "url=%q", bad)
	}
}
