package http

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func corsRouter(middleware gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	if middleware != nil {
		router.Use(middleware)
	}
	router.POST("/v1/supervision-requests", func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"status": "pending"})
	})
	return router
}

func TestParseOrigins(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantOrigins  []string
		wantRejected []string
	}{
		{name: "empty", input: ""},
		{
			name:        "comma separated with whitespace and trailing slash",
			input:       " https://desk.example.com , https://apply.example.com/ ",
			wantOrigins: []string{"https://desk.example.com", "https://apply.example.com"},
		},
		{name: "wildcard", input: "*", wantOrigins: []string{"*"}},
		{
			name:         "invalid entries rejected",
			input:        "https://desk.example.com,desk.example.com,ftp://x.example.com,https://x.example.com/path",
			wantOrigins:  []string{"https://desk.example.com"},
			wantRejected: []string{"desk.example.com", "ftp://x.example.com", "https://x.example.com/path"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			origins, rejected := parseOrigins(tt.input)
			assert.Equal(t, tt.wantOrigins, origins)
			assert.Equal(t, tt.wantRejected, rejected)
		})
	}
}

func TestCreateCORSMiddleware(t *testing.T) {
	logger := slog.Default()

	assert.Nil(t, createCORSMiddleware(false, "https://desk.example.com", logger))
	assert.Nil(t, createCORSMiddleware(true, "", logger))
	assert.Nil(t, createCORSMiddleware(true, "not-an-origin", logger))
	assert.NotNil(t, createCORSMiddleware(true, "https://desk.example.com", logger))
}

func TestCORSAllowedOrigin(t *testing.T) {
	router := corsRouter(createCORSMiddleware(true, "https://apply.example.com", slog.Default()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/supervision-requests", nil)
	req.Header.Set("Origin", "https://apply.example.com")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "https://apply.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSDisallowedOrigin(t *testing.T) {
	router := corsRouter(createCORSMiddleware(true, "https://apply.example.com", slog.Default()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/supervision-requests", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSWildcardDisablesCredentials(t *testing.T) {
	router := corsRouter(createCORSMiddleware(true, "*", slog.Default()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/supervision-requests", nil)
	req.Header.Set("Origin", "https://anyone.example.com")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSPreflight(t *testing.T) {
	router := corsRouter(createCORSMiddleware(true, "https://desk.example.com", slog.Default()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/v1/supervision-requests", nil)
	req.Header.Set("Origin", "https://desk.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://desk.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
}
