package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newProtectedRouter(codec Codec) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", RequireAuth(codec), func(c *gin.Context) {
		ident, ok := IdentityFromContext(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "identity missing"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": ident.ID.String(), "email": ident.Email, "username": ident.Username})
	})
	return r
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	t.Parallel()

	r := newProtectedRouter(NewCodec([]byte("secret")))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_BadScheme(t *testing.T) {
	t.Parallel()

	codec := NewCodec([]byte("secret"))
	token, err := codec.Issue(uuid.New(), "a@x.com", "alice")
	require.NoError(t, err)

	r := newProtectedRouter(codec)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Basic "+token)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	t.Parallel()

	r := newProtectedRouter(NewCodec([]byte("secret")))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_ValidToken(t *testing.T) {
	t.Parallel()

	codec := NewCodec([]byte("secret"))
	id := uuid.New()
	token, err := codec.Issue(id, "a@x.com", "alice")
	require.NoError(t, err)

	r := newProtectedRouter(codec)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), id.String())
	require.Contains(t, w.Body.String(), "alice")
}
