package middleware_test

import (
	"bytes"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/unifiedui/docsession/internal/api/dto"
	"github.com/unifiedui/docsession/internal/api/middleware"
	domainerrors "github.com/unifiedui/docsession/internal/domain/errors"
	"github.com/unifiedui/docsession/internal/testutils"
)

func TestLogger_AssignsRequestID(t *testing.T) {
	var buf bytes.Buffer
	mw := middleware.NewLoggingMiddlewareWithLogger(zerolog.New(&buf))

	router := testutils.SetupTestRouter()
	router.Use(mw.Logger())
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, middleware.GetRequestID(c))
	})

	w := testutils.PerformRequest(router, "GET", "/ping", nil, nil)

	testutils.AssertStatusCode(t, http.StatusOK, w)
	id := w.Header().Get(middleware.RequestIDHeader)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, w.Body.String())
	assert.Contains(t, buf.String(), `"request_id":"`+id+`"`)
	assert.Contains(t, buf.String(), `"status":200`)
}

func TestLogger_KeepsIncomingRequestID(t *testing.T) {
	mw := middleware.NewLoggingMiddlewareWithLogger(zerolog.Nop())

	router := testutils.SetupTestRouter()
	router.Use(mw.Logger())
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := testutils.PerformRequest(router, "GET", "/ping", nil, map[string]string{middleware.RequestIDHeader: "abc"})

	assert.Equal(t, "abc", w.Header().Get(middleware.RequestIDHeader))
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", domainerrors.NewNotFoundError("document", "age=1"), http.StatusNotFound, domainerrors.ErrCodeNotFound},
		{"precondition", domainerrors.NewPreconditionError("InsertOne", "targeted"), http.StatusPreconditionFailed, domainerrors.ErrCodePrecondition},
		{"write", domainerrors.NewWriteError("insert", errors.New("boom")), http.StatusBadGateway, domainerrors.ErrCodeWrite},
		{"plain", errors.New("boom"), http.StatusInternalServerError, domainerrors.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := testutils.SetupTestRouter()
			router.GET("/fail", func(c *gin.Context) { middleware.HandleError(c, tt.err) })

			w := testutils.PerformRequest(router, "GET", "/fail", nil, nil)

			testutils.AssertStatusCode(t, tt.status, w)
			var resp dto.ErrorResponse
			testutils.ParseJSONResponse(t, w, &resp)
			assert.Equal(t, tt.code, resp.Code)
		})
	}
}

func TestRecovery(t *testing.T) {
	router := testutils.SetupTestRouter()
	router.Use(middleware.Recovery())
	router.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := testutils.PerformRequest(router, "GET", "/panic", nil, nil)

	testutils.AssertStatusCode(t, http.StatusInternalServerError, w)
}
