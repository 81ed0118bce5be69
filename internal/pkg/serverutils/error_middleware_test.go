package serverutils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"focusforge-be/internal/apperrors"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appReturning(err error) *fiber.App {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/", func(ctx *fiber.Ctx) error {
		return err
	})
	return app
}

func TestErrorMiddlewareStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   string
	}{
		{"validation", apperrors.Validation("bad input"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"not found", apperrors.SessionNotFound("abc"), http.StatusNotFound, "SESSION_NOT_FOUND"},
		{"duplicate", apperrors.DuplicateSession("abc"), http.StatusConflict, "DUPLICATE_SESSION"},
		{"classification", apperrors.Classification("llm failed", nil), http.StatusBadGateway, "CLASSIFICATION_ERROR"},
		{"generation", apperrors.Generation("llm failed", nil), http.StatusBadGateway, "GENERATION_ERROR"},
		{"persistence", apperrors.Persistence("db failed", nil), http.StatusInternalServerError, "PERSISTENCE_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := appReturning(tt.err)
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			var body ErrorBody
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantKind, body.ErrorKind)
		})
	}
}

func TestErrorMiddlewareUnknownErrorIs500(t *testing.T) {
	app := appReturning(assert.AnError)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestErrorMiddlewarePassesSuccessThrough(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(SuccessResponse("ok", fiber.Map{"hello": "world"}))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
