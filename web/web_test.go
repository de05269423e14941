package web

import (
	"io/fs"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexStructure(t *testing.T) {
	f, err := Static().Open("index.html")
	require.NoError(t, err)
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	require.NoError(t, err)

	assert.Equal(t, 1, doc.Find("textarea#redacao-input").Length())
	assert.Equal(t, 1, doc.Find("#word-count").Length())
	assert.Equal(t, 1, doc.Find("#clear-btn").Length())
	assert.Equal(t, 1, doc.Find("#loading").Length())
	assert.Equal(t, 1, doc.Find("#results-content").Length())

	btn := doc.Find("button#analyze-btn")
	require.Equal(t, 1, btn.Length())
	_, disabled := btn.Attr("disabled")
	assert.True(t, disabled, "analyze button starts disabled")

	src, ok := doc.Find("script").Attr("src")
	require.True(t, ok)
	assert.Equal(t, "/assets/script.js", src)
}

func TestScriptContract(t *testing.T) {
	script, err := fs.ReadFile(Static(), "script.js")
	require.NoError(t, err)

	body := string(script)
	assert.Contains(t, body, "const MIN_WORDS = 20;")
	assert.Contains(t, body, "'/api/analyze'")
	assert.Contains(t, body, "JSON.stringify({ redacao })")
}

func TestRegister(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	Register(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html"))
	assert.Contains(t, rec.Body.String(), "redacao-input")

	for _, asset := range []string{"/assets/script.js", "/assets/style.css"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, asset, nil))
		assert.Equal(t, http.StatusOK, rec.Code, asset)
	}
}
