package auth

import (
	"github.com/gofiber/fiber/v2"

	helper "latihanku_backend/internals/helpers"
)

// OnlyRolesSlice memungkinkan akses jika user memiliki salah satu dari role yang diizinkan.
func OnlyRolesSlice(message string, allowedRoles []string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("userRole").(string)
		if !ok || role == "" {
			return helper.JsonErrorCode(c, fiber.StatusForbidden, "FORBIDDEN", message)
		}

		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}

		return helper.JsonErrorCode(c, fiber.StatusForbidden, "FORBIDDEN", message)
	}
}
