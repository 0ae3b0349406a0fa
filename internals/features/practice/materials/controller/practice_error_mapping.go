// file: internals/features/practice/materials/controller/practice_error_mapping.go
package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"latihanku_backend/internals/features/practice/materials/service"
	helper "latihanku_backend/internals/helpers"
)

// writeServiceError memetakan error pipeline/service ke envelope standar.
func writeServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrForbidden):
		return helper.JsonErrorCode(c, fiber.StatusForbidden, "FORBIDDEN", service.ErrForbidden.Error())

	case errors.Is(err, service.ErrCategoryResolution):
		return helper.JsonErrorCode(c, fiber.StatusInternalServerError, "CATEGORY_RESOLUTION_FAILED", service.ErrCategoryResolution.Error())

	case errors.Is(err, service.ErrUploadCollision):
		return helper.JsonErrorCode(c, fiber.StatusConflict, "UPLOAD_REJECTED", service.ErrUploadCollision.Error())

	case errors.Is(err, service.ErrThumbnailRejected):
		return helper.JsonUploadRejected(c, map[string][]string{
			"thumbnail": {service.ErrThumbnailRejected.Error()},
		})

	case errors.Is(err, service.ErrStorageUnavailable):
		return helper.JsonErrorCode(c, fiber.StatusBadGateway, "STORAGE_UNAVAILABLE", service.ErrStorageUnavailable.Error())

	case errors.Is(err, gorm.ErrRecordNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Data tidak ditemukan")

	default:
		return helper.WriteDBError(c, err)
	}
}

// mergeFieldErrors menggabungkan beberapa map pelanggaran jadi satu batch.
func mergeFieldErrors(dst map[string][]string, src map[string][]string) map[string][]string {
	if dst == nil {
		dst = map[string][]string{}
	}
	for k, v := range src {
		dst[k] = append(dst[k], v...)
	}
	return dst
}

// roleFromLocals membaca role efektif yang dipasang guard.
func roleFromLocals(c *fiber.Ctx) string {
	if role, ok := c.Locals("userRole").(string); ok {
		return role
	}
	return ""
}
