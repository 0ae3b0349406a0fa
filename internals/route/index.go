// file: internals/route/index.go
package routes

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	practiceRoute "latihanku_backend/internals/features/practice/materials/route"
	roleRoute "latihanku_backend/internals/features/users/roles/route"
	"latihanku_backend/internals/middlewares"
	authMiddleware "latihanku_backend/internals/middlewares/auth"
	featuresMiddleware "latihanku_backend/internals/middlewares/features"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	// ===================== BASE =====================
	log.Println("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, db)

	// ===================== GROUPS =====================

	// PUBLIC → JWT opsional (katalog bisa diakses tanpa login)
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public",
		authMiddleware.OptionalAuthMiddleware(),
		setPublicCache(60),
	)

	// ===================== PRIVATE (USER) =====================
	log.Println("[INFO] Setting up PRIVATE group...")
	private := app.Group("/api/u",
		authMiddleware.AuthMiddleware(),
	)

	// ===================== ADMIN =====================
	// Role TIDAK diambil dari klaim token, selalu dicek ke tabel
	// user_practice_roles lewat IsPracticeAdmin.
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		authMiddleware.AuthMiddleware(),
		featuresMiddleware.IsPracticeAdmin(db),
		middlewares.AdminWriteRateLimiter(),
	)

	// ===================== MOUNT ROUTES =====================

	log.Println("[INFO] Mounting Practice routes...")
	practiceRoute.PracticePublicRoutes(public, db)
	practiceRoute.PracticeAdminRoutes(admin, db)

	log.Println("[INFO] Mounting Role routes...")
	roleRoute.PracticeRoleUserRoutes(private, db)
}

// setPublicCache memasang Cache-Control publik untuk GET pada grup public.
func setPublicCache(seconds int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() == fiber.MethodGet {
			c.Set("Cache-Control", fmt.Sprintf("public, max-age=%d, stale-while-revalidate=%d", seconds, seconds*2))
		}
		return c.Next()
	}
}
