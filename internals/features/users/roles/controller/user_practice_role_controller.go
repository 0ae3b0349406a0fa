// file: internals/features/users/roles/controller/user_practice_role_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"latihanku_backend/internals/constants"
	roleservice "latihanku_backend/internals/features/users/roles/service"
	helper "latihanku_backend/internals/helpers"
)

type UserPracticeRoleController struct {
	DB *gorm.DB
}

func NewUserPracticeRoleController(db *gorm.DB) *UserPracticeRoleController {
	return &UserPracticeRoleController{DB: db}
}

// =====================================================
// GET /api/u/practice/role
// Role efektif user login. Baris role dibuat otomatis (student)
// kalau belum ada, jadi endpoint ini tidak pernah 404.
// =====================================================

func (ctl *UserPracticeRoleController) GetMyRole(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonErrorCode(c, fiber.StatusUnauthorized, "UNAUTHORIZED", constants.AuthErrorRequired("melihat role latihan"))
	}

	role := roleservice.ResolveRole(c.Context(), ctl.DB, userID)

	return helper.JsonOK(c, "Role latihan berhasil diambil", fiber.Map{
		"user_id":  userID,
		"role":     role,
		"is_admin": role == constants.RoleAdmin,
	})
}
