package app

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/justrob12/seclab/internal/config"
	"github.com/justrob12/seclab/internal/content"
	"github.com/justrob12/seclab/internal/sec"
	"github.com/justrob12/seclab/internal/storage"
	"github.com/justrob12/seclab/internal/storage/db"
)

func TestApp(t *testing.T) {
	t.Parallel()

	store, err := storage.NewDB(t.Context(), filepath.Join(t.TempDir(), "db.sqlite"), slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	hasher := sec.Hasher{Cost: bcrypt.MinCost}
	for name, password := range map[string]string{
		"alice":  "wonderland",
		"bob_99": "builder",
		"carol":  "colon:in:password",
	} {
		digest, err := hasher.Hash(sec.NewSecret(password))
		require.NoError(t, err)
		_, err = store.UpsertUser(t.Context(), db.User{Name: name, PasswordHash: digest})
		require.NoError(t, err)
	}

	srv := New(config.Default(), slog.Default(), store)

	t.Run("greeting", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name  string
			query string
			want  string
		}{
			{name: "absent", query: "", want: "Hello, Guest!"},
			{name: "empty", query: "?name=", want: "Hello, Guest!"},
			{name: "blank", query: "?name=" + url.QueryEscape("   "), want: "Hello, Guest!"},
			{name: "accepted", query: "?name=Alice", want: "Hello, Alice!"},
			{name: "script", query: "?name=" + url.QueryEscape("<script>alert(1)</script>"), want: "Hello, Guest!"},
			{name: "handler", query: "?name=" + url.QueryEscape("x onload=alert(1)"), want: "Hello, Guest!"},
		}

		for _, test := range tests {
			t.Run(test.name, func(t *testing.T) {
				t.Parallel()
				rec := serve(srv, httptest.NewRequest(http.MethodGet, "/greeting"+test.query, nil))

				assert.Equal(t, http.StatusOK, rec.Code)
				assert.Equal(t, echo.MIMETextHTMLCharsetUTF8, rec.Header().Get(echo.HeaderContentType))
				assertSecurityHeaders(t, rec.Header())
				assert.Equal(t, test.want, heading(t, rec.Body.Bytes()))
				assert.NotContains(t, rec.Body.String(), "alert")
			})
		}
	})

	t.Run("greeting exact document", func(t *testing.T) {
		t.Parallel()
		rec := serve(srv, httptest.NewRequest(http.MethodGet, "/greeting?name=Alice", nil))
		assert.Equal(t, string(content.Render(t.Context(), "Alice").Body), rec.Body.String())
		assert.Contains(t, rec.Body.String(), "<h1>Hello, Alice!</h1>")
	})

	t.Run("not found carries headers", func(t *testing.T) {
		t.Parallel()
		rec := serve(srv, httptest.NewRequest(http.MethodGet, "/nope", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, http.StatusText(http.StatusNotFound), rec.Body.String())
		assertSecurityHeaders(t, rec.Header())
	})

	t.Run("me", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name     string
			user     string
			password string
			wantCode int
			want     string
		}{
			{name: "valid", user: "alice", password: "wonderland", wantCode: http.StatusOK, want: "Hello, alice!"},
			{name: "stored name outside alphabet", user: "bob_99", password: "builder", wantCode: http.StatusOK, want: "Hello, Guest!"},
			{name: "password containing colons", user: "carol", password: "colon:in:password", wantCode: http.StatusOK, want: "Hello, carol!"},
			{name: "password prefix", user: "carol", password: "colon", wantCode: http.StatusUnauthorized},
			{name: "wrong password", user: "alice", password: "nope", wantCode: http.StatusUnauthorized},
			{name: "unknown user", user: "mallory", password: "wonderland", wantCode: http.StatusUnauthorized},
			{name: "no credentials", wantCode: http.StatusUnauthorized},
		}

		for _, test := range tests {
			t.Run(test.name, func(t *testing.T) {
				t.Parallel()
				req := httptest.NewRequest(http.MethodGet, "/me", nil)
				if test.user != "" {
					req.SetBasicAuth(test.user, test.password)
				}
				rec := serve(srv, req)

				assert.Equal(t, test.wantCode, rec.Code)
				assertSecurityHeaders(t, rec.Header())
				if test.wantCode != http.StatusOK {
					assert.NotEmpty(t, rec.Header().Get(echo.HeaderWWWAuthenticate))
					assert.Equal(t, http.StatusText(test.wantCode), rec.Body.String())
					return
				}
				assert.Equal(t, test.want, heading(t, rec.Body.Bytes()))
			})
		}
	})
}

func TestHandleError_HidesDetails(t *testing.T) {
	t.Parallel()

	srv := New(config.Default(), slog.Default(), nil)
	srv.GET("/boom", func(echo.Context) error { panic("internal secret state") })

	rec := serve(srv, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), rec.Body.String())
	assertSecurityHeaders(t, rec.Header())
}

func serve(srv *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func assertSecurityHeaders(t *testing.T, hdr http.Header) {
	t.Helper()
	for name, values := range sec.SecurityHeaders() {
		assert.Equal(t, values, hdr.Values(name), name)
	}
}

func heading(t *testing.T, body []byte) string {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	require.NoError(t, err)
	return doc.Find("h1").Text()
}
