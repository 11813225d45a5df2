package controllers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/Adithyan-707/StyleNest/config"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func googleTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	config.App = &config.Config{
		GoogleClientID:     "test-client",
		GoogleClientSecret: "test-secret",
		GoogleRedirectURL:  "http://localhost/v1/auth/google/callback",
	}
	config.InitGoogleOAuth()

	router := gin.New()
	store := cookie.NewStore([]byte("test-session-secret"))
	router.Use(sessions.Sessions("stylenest_session", store))
	router.GET("/v1/auth/google/login", GoogleLogin)
	router.GET("/v1/auth/google/callback", GoogleCallback)
	return router
}

func TestGoogleLoginStoresStateInSession(t *testing.T) {
	router := googleTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/v1/auth/google/login", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)

	location, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	assert.NotEmpty(t, location.Query().Get("state"))
	assert.Equal(t, "test-client", location.Query().Get("client_id"))

	// The state lives in the session cookie, not a bespoke one
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "stylenest_session", cookies[0].Name)
}

func TestGoogleCallbackRejectsStateMismatch(t *testing.T) {
	router := googleTestRouter(t)

	// Start a login to get a session carrying a real state
	loginRec := httptest.NewRecorder()
	router.ServeHTTP(loginRec, httptest.NewRequest("GET", "/v1/auth/google/login", nil))
	require.Equal(t, http.StatusFound, loginRec.Code)
	sessionCookie := loginRec.Result().Cookies()[0]

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/v1/auth/google/callback?state=forged&code=whatever", nil)
	req.AddCookie(sessionCookie)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGoogleCallbackRejectsMissingSession(t *testing.T) {
	router := googleTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/v1/auth/google/callback?state=anything&code=whatever", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
