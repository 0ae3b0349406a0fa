package middleware

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"latihanku_backend/internals/constants"
	roleservice "latihanku_backend/internals/features/users/roles/service"
	helper "latihanku_backend/internals/helpers"
)

// IsPracticeAdmin menjaga grup /api/a/practice.
// Role SELALU di-resolve dari tabel user_practice_roles per request,
// tidak pernah percaya klaim role di token dan tidak ada cache modul.
func IsPracticeAdmin(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		log.Println("🔍 [MIDDLEWARE] IsPracticeAdmin active")
		log.Println("    Path  :", c.Path())
		log.Println("    Method:", c.Method())

		userID, err := helper.GetUserIDFromToken(c)
		if err != nil {
			return helper.JsonErrorCode(c, fiber.StatusUnauthorized, "UNAUTHORIZED", constants.AuthErrorRequired("kelola latihan"))
		}

		role := roleservice.ResolveRole(c.Context(), db, userID)

		// ✅ Inject role efektif ke locals (dipakai OnlyRolesSlice & logging)
		c.Locals("userRole", role)
		c.Locals("is_admin", role == constants.RoleAdmin)

		if role != constants.RoleAdmin {
			log.Printf("[MIDDLEWARE] Akses DITOLAK, user_id=%s role=%s\n", userID, role)
			return helper.JsonErrorCode(c, fiber.StatusForbidden, "FORBIDDEN", constants.RoleErrorAdmin("kelola latihan"))
		}

		log.Println("[MIDDLEWARE] Akses DIIJINKAN, user_id:", userID)
		return c.Next()
	}
}
