package auth

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTokenExpiry(t *testing.T) {
	skew := 30 * time.Second

	t.Run("tanpa exp ditolak", func(t *testing.T) {
		assert.Error(t, validateTokenExpiry(jwt.MapClaims{}, skew))
	})

	t.Run("exp masih jauh lolos", func(t *testing.T) {
		claims := jwt.MapClaims{"exp": float64(time.Now().Add(time.Hour).Unix())}
		assert.NoError(t, validateTokenExpiry(claims, skew))
	})

	t.Run("lewat sedikit masih dalam toleransi", func(t *testing.T) {
		claims := jwt.MapClaims{"exp": float64(time.Now().Add(-5 * time.Second).Unix())}
		assert.NoError(t, validateTokenExpiry(claims, skew))
	})

	t.Run("lewat jauh ditolak", func(t *testing.T) {
		claims := jwt.MapClaims{"exp": float64(time.Now().Add(-2 * time.Minute).Unix())}
		assert.Error(t, validateTokenExpiry(claims, skew))
	})

	t.Run("exp string angka diterima", func(t *testing.T) {
		claims := jwt.MapClaims{"exp": "1893456000"} // 2030-01-01
		assert.NoError(t, validateTokenExpiry(claims, skew))
	})

	t.Run("exp string rusak ditolak", func(t *testing.T) {
		claims := jwt.MapClaims{"exp": "12x3"}
		assert.Error(t, validateTokenExpiry(claims, skew))
	})
}

func TestExtractUserID(t *testing.T) {
	uid := uuid.New()

	got, err := extractUserID(jwt.MapClaims{"id": uid.String()})
	require.NoError(t, err)
	assert.Equal(t, uid, got)

	got, err = extractUserID(jwt.MapClaims{"id": "  " + uid.String() + " "})
	require.NoError(t, err)
	assert.Equal(t, uid, got, "spasi di klaim dibersihkan")

	_, err = extractUserID(jwt.MapClaims{})
	assert.Error(t, err)

	_, err = extractUserID(jwt.MapClaims{"id": float64(42)})
	assert.Error(t, err, "id numerik bukan format yang dikenal")

	_, err = extractUserID(jwt.MapClaims{"id": "bukan-uuid"})
	assert.Error(t, err)
}

// probeApp mengekspos hasil extractBearerToken lewat body response.
func probeApp() *fiber.App {
	app := fiber.New()
	app.Get("/probe", func(c *fiber.Ctx) error {
		tok, err := extractBearerToken(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).SendString(err.Error())
		}
		return c.SendString(tok)
	})
	return app
}

func probe(t *testing.T, app *fiber.App, mutate func(*http.Request)) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if mutate != nil {
		mutate(req)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(raw)
}

func TestExtractBearerToken(t *testing.T) {
	app := probeApp()

	t.Run("header standar", func(t *testing.T) {
		status, body := probe(t, app, func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer abc.def.ghi")
		})
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "abc.def.ghi", body)
	})

	t.Run("case-insensitive dan kutip dibersihkan", func(t *testing.T) {
		status, body := probe(t, app, func(r *http.Request) {
			r.Header.Set("Authorization", `bearer  "abc.def.ghi"`)
		})
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "abc.def.ghi", body)
	})

	t.Run("fallback cookie access_token", func(t *testing.T) {
		status, body := probe(t, app, func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: "access_token", Value: "cookie.tok"})
		})
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "cookie.tok", body)
	})

	t.Run("tanpa token ditolak", func(t *testing.T) {
		status, _ := probe(t, app, nil)
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("skema selain bearer ditolak", func(t *testing.T) {
		status, _ := probe(t, app, func(r *http.Request) {
			r.Header.Set("Authorization", "Token abc")
		})
		assert.Equal(t, http.StatusUnauthorized, status)
	})
}
