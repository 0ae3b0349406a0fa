package route

import (
	roleController "latihanku_backend/internals/features/users/roles/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Rute role untuk user login (prefix /api/u).
func PracticeRoleUserRoutes(app fiber.Router, db *gorm.DB) {
	ctrl := roleController.NewUserPracticeRoleController(db)

	role := app.Group("/practice")
	role.Get("/role", ctrl.GetMyRole)
}
