package middlewares

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fittrack/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

func protectedRouter(secret []byte) *gin.Engine {
	r := gin.New()
	g := r.Group("/api/users/:userId", AuthMiddleware(secret), RequireOwner())
	g.GET("", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(ContextUserID)) })
	return r
}

func get(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth_DisabledWithoutSecret(t *testing.T) {
	w := get(protectedRouter(nil), "/api/users/u1", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuth_TokenAndOwner(t *testing.T) {
	secret := []byte("s3cret")
	r := protectedRouter(secret)
	tok, err := utils.GenerateJWT(secret, "u1", time.Hour)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, get(r, "/api/users/u1", "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/api/users/u1", "garbage").Code)

	w := get(r, "/api/users/u1", tok)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", w.Body.String())

	assert.Equal(t, http.StatusForbidden, get(r, "/api/users/u2", tok).Code)
}

func TestRequestIDAndLogger(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	r := gin.New()
	r.Use(RequestID(), RequestLogger(log))
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set(HeaderRequestID, "req-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-42", w.Header().Get(HeaderRequestID))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "ERROR", line["level"])
	assert.Equal(t, "/boom", line["path"])
	assert.Equal(t, float64(500), line["status"])
	assert.Equal(t, "req-42", line["request_id"])

	w = get(r, "/boom", "")
	assert.NotEmpty(t, w.Header().Get(HeaderRequestID))
}

func TestAuth_QueryTokenFallback(t *testing.T) {
	secret := []byte("s3cret")
	tok, err := utils.GenerateJWT(secret, "u1", time.Hour)
	require.NoError(t, err)

	w := get(protectedRouter(secret), "/api/users/u1?access_token="+tok, "")
	assert.Equal(t, http.StatusOK, w.Code)
}
