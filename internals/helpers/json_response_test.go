package helper

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolvePagingFor(t *testing.T, target string, defaultPerPage, maxPerPage int) Paging {
	t.Helper()
	var got Paging
	app := fiber.New()
	app.Get("/items", func(c *fiber.Ctx) error {
		got = ResolvePaging(c, defaultPerPage, maxPerPage)
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil), -1)
	require.NoError(t, err)
	resp.Body.Close()
	return got
}

func TestResolvePaging(t *testing.T) {
	t.Run("default tanpa query", func(t *testing.T) {
		p := resolvePagingFor(t, "/items", 20, 100)
		assert.Equal(t, Paging{Page: 1, PerPage: 20, Offset: 0, Limit: 20}, p)
	})

	t.Run("per_page dipatok maksimum", func(t *testing.T) {
		p := resolvePagingFor(t, "/items?page=3&per_page=500", 20, 100)
		assert.Equal(t, 100, p.PerPage)
		assert.Equal(t, 3, p.Page)
		assert.Equal(t, 200, p.Offset)
	})

	t.Run("alias limit tetap didukung", func(t *testing.T) {
		p := resolvePagingFor(t, "/items?limit=50", 20, 100)
		assert.Equal(t, 50, p.PerPage)
	})

	t.Run("nilai rusak jatuh ke default", func(t *testing.T) {
		p := resolvePagingFor(t, "/items?page=-2&per_page=abc", 20, 100)
		assert.Equal(t, 1, p.Page)
		assert.Equal(t, 20, p.PerPage)
	})
}

func TestBuildPaginationFromPage(t *testing.T) {
	p := BuildPaginationFromPage(45, 2, 20)
	assert.Equal(t, 3, p.TotalPages, "45 item / 20 per halaman = 3 halaman")
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)

	p = BuildPaginationFromPage(0, 1, 20)
	assert.Equal(t, 1, p.TotalPages, "kosong tetap satu halaman")
	assert.False(t, p.HasNext)
	assert.False(t, p.HasPrev)

	p = BuildPaginationFromPage(45, 3, 20)
	assert.False(t, p.HasNext)
	assert.True(t, p.HasPrev)
}

func TestStatusToErrorCode(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", statusToErrorCode(fiber.StatusBadRequest))
	assert.Equal(t, "UNAUTHORIZED", statusToErrorCode(fiber.StatusUnauthorized))
	assert.Equal(t, "FORBIDDEN", statusToErrorCode(fiber.StatusForbidden))
	assert.Equal(t, "NOT_FOUND", statusToErrorCode(fiber.StatusNotFound))
	assert.Equal(t, "VALIDATION_ERROR", statusToErrorCode(fiber.StatusUnprocessableEntity))
	assert.Equal(t, "CONFLICT", statusToErrorCode(fiber.StatusConflict))
	assert.Equal(t, "INTERNAL_ERROR", statusToErrorCode(fiber.StatusBadGateway))
	assert.Equal(t, "ERROR", statusToErrorCode(fiber.StatusTeapot))
}

func TestValidationErrorsToMap_NonValidatorError(t *testing.T) {
	out := ValidationErrorsToMap(errors.New("kacau"))
	assert.Contains(t, out, "_payload")

	assert.Empty(t, ValidationErrorsToMap(nil))
}

func TestCoercePagination(t *testing.T) {
	p, ok := coercePagination(Pagination{Page: 2, Total: 99})
	require.True(t, ok)
	assert.EqualValues(t, 99, p.Total)

	_, ok = coercePagination(nil)
	assert.False(t, ok)

	p, ok = coercePagination(fiber.Map{"page": 4, "per_page": 10})
	require.True(t, ok)
	assert.Equal(t, 4, p.Page)
	assert.Equal(t, 1, p.TotalPages, "total_pages kosong dihitung ulang")

	// map tanpa per_page tidak memenuhi syarat minimal
	_, ok = coercePagination(fiber.Map{"page": 4})
	assert.False(t, ok)
}
