package auth

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"latihanku_backend/internals/configs"
)

// OptionalAuthMiddleware mengisi user context kalau ada token valid,
// tapi TIDAK pernah menolak request. Dipakai di grup /api/public supaya
// log katalog bisa mengenali user yang kebetulan login.
func OptionalAuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			// Tidak ada token, lanjutkan tanpa user context
			return c.Next()
		}

		secretKey := configs.JWTSecret
		if secretKey == "" {
			log.Println("[ERROR] JWT_SECRET kosong, lanjut sebagai anonymous")
			return c.Next()
		}

		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true}
		_, err = parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(secretKey), nil
		})
		if err != nil {
			log.Println("[WARNING] Gagal parse token, lanjut sebagai anonymous:", err)
			return c.Next()
		}

		if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
			log.Println("[WARNING] Token expired, lanjut sebagai anonymous")
			return c.Next()
		}

		userID, err := extractUserID(claims)
		if err != nil {
			log.Println("[WARNING] Token tidak memiliki ID valid, lanjut sebagai anonymous")
			return c.Next()
		}

		// Simpan user context
		c.Locals("user_id", userID.String())
		storeBasicClaimsToLocals(c, claims)

		return c.Next()
	}
}
