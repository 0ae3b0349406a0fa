package constants

import "fmt"

// Role yang dikenal practice zone. Setiap user punya tepat satu baris role;
// user tanpa baris dianggap student.
const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

// Role default saat baris role dibuat otomatis.
const DefaultAssignedRole = RoleStudent

// Template pesan error role
const (
	ErrOnlyAdminsCanAccess = "❌ Hanya admin yang boleh mengakses fitur %s."
	ErrAuthRequired        = "❌ Harus login untuk mengakses fitur %s."
)

// Fungsi helper untuk menghasilkan pesan error dinamis
func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func AuthErrorRequired(feature string) string {
	return fmt.Sprintf(ErrAuthRequired, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleAdmin,
		RoleStudent,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)

// ValidRole memastikan nilai role dikenal sebelum disimpan.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleStudent:
		return true
	default:
		return false
	}
}
