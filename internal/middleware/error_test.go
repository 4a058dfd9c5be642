package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ojas8taori/trash-taste-ai/pkg/errors"
	"github.com/ojas8taori/trash-taste-ai/pkg/logger"
	"github.com/stretchr/testify/assert"
)

func init() {
	logger.Init("test")
	gin.SetMode(gin.TestMode)
}

func errorTestRouter() *gin.Engine {
	r := gin.New()
	r.Use(ErrorHandlerMiddleware())
	r.GET("/panics", func(c *gin.Context) {
		panic("boom")
	})
	r.GET("/app-error", func(c *gin.Context) {
		c.Error(errors.NewAppError(http.StatusConflict, "Username already taken"))
	})
	r.GET("/plain-error", func(c *gin.Context) {
		c.Error(assertErr{})
	})
	return r
}

type assertErr struct{}

func (assertErr) Error() string { return "db connection lost" }

func TestErrorHandler_RecoversFromPanic(t *testing.T) {
	r := errorTestRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panics", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "unexpected error")
}

func TestErrorHandler_MapsAppErrorStatus(t *testing.T) {
	r := errorTestRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/app-error", nil))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Username already taken")
}

func TestErrorHandler_HidesInternalErrorDetails(t *testing.T) {
	r := errorTestRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/plain-error", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "db connection lost")
}
