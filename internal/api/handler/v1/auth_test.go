package v1

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rifasoft/raffle-admin/internal/pkg/jwthelper"
	"github.com/rifasoft/raffle-admin/internal/service"
)

type stubAuth struct {
	err error
}

func (s *stubAuth) Login(string, string) error {
	return s.err
}

func newAuthRouter(svc *stubAuth, signingKey []byte) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := NewAuthHandler(svc, signingKey)

	router := gin.New()
	router.POST("/auth/login", handler.HandleLogin)

	return router
}

func TestHandleLogin_IssuesParsableToken(t *testing.T) {
	signingKey := []byte("test-signing-key")
	router := newAuthRouter(&stubAuth{}, signingKey)

	resp := doRequest(t, router, http.MethodPost, "/auth/login",
		`{"username":"admin","password":"secret123"}`)

	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.NotEmpty(t, body.Token)

	claims, err := jwthelper.ParseToken(signingKey, body.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
}

func TestHandleLogin_WrongCredentials(t *testing.T) {
	router := newAuthRouter(&stubAuth{err: service.ErrWrongCredentials}, []byte("k"))

	resp := doRequest(t, router, http.MethodPost, "/auth/login",
		`{"username":"admin","password":"wrong"}`)

	require.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestHandleLogin_MissingFields(t *testing.T) {
	router := newAuthRouter(&stubAuth{}, []byte("k"))

	resp := doRequest(t, router, http.MethodPost, "/auth/login", `{"username":"admin"}`)

	require.Equal(t, http.StatusBadRequest, resp.Code)
}
