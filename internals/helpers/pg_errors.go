// file: internals/helpers/pg_errors.go
package helper

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

/* =========================
   PG error mapping
   ========================= */

// 23505 unique_violation, 23503 foreign_key_violation
type pgSQLErr interface {
	SQLState() string
	Error() string
}

func sqlStateOf(err error) string {
	var pgErr pgSQLErr
	if errors.As(err, &pgErr) {
		return pgErr.SQLState()
	}
	return ""
}

// IsDuplicateKeyError: unique violation, lewat SQLSTATE atau fragmen pesan.
func IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if sqlStateOf(err) == "23505" {
		return true
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}

// IsForeignKeyError: referensi kategori (atau FK lain) tidak ditemukan.
func IsForeignKeyError(err error) bool {
	if err == nil {
		return false
	}
	if sqlStateOf(err) == "23503" {
		return true
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "foreign key") ||
		strings.Contains(msg, "23503")
}

// MapDBError memetakan error persistensi ke (status, error_code, pesan).
func MapDBError(err error) (int, string, string) {
	switch {
	case IsDuplicateKeyError(err):
		return fiber.StatusConflict, "CONFLICT", "Data duplikat (unique violation)."
	case IsForeignKeyError(err):
		return fiber.StatusBadRequest, "FK_VIOLATION", "Referensi tidak ditemukan (FK violation)."
	default:
		return fiber.StatusInternalServerError, "INTERNAL_ERROR", "Gagal menyimpan data."
	}
}

// WriteDBError menulis error persistensi memakai envelope standar.
func WriteDBError(c *fiber.Ctx, err error) error {
	status, code, msg := MapDBError(err)
	return JsonErrorCode(c, status, code, msg)
}
