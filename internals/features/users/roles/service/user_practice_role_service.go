package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"latihanku_backend/internals/constants"
	rolemodel "latihanku_backend/internals/features/users/roles/model"
)

// ResolveRole mengembalikan role efektif user untuk zona latihan.
// Kalau user belum punya baris role, dibuatkan dengan role default (student).
// Fail-safe: error apapun di jalur resolve mengembalikan student, BUKAN error,
// supaya kegagalan lookup tidak pernah meng-escalate hak akses.
func ResolveRole(ctx context.Context, db *gorm.DB, userID uuid.UUID) string {
	var row rolemodel.UserPracticeRoleModel
	err := db.WithContext(ctx).
		Where("user_practice_role_user_id = ?", userID).
		First(&row).Error
	if err == nil {
		if constants.ValidRole(row.UserPracticeRoleRole) {
			return row.UserPracticeRoleRole
		}
		log.Printf("[ResolveRole] role tidak dikenal %q untuk user_id=%s, fallback student", row.UserPracticeRoleRole, userID)
		return constants.RoleStudent
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[ResolveRole] ERROR lookup user_id=%s: %v, fallback student", userID, err)
		return constants.RoleStudent
	}

	// Belum ada baris, buat dengan role default.
	assigned, cerr := EnsureRoleRow(ctx, db, userID)
	if cerr != nil {
		log.Printf("[ResolveRole] ERROR create user_id=%s: %v, fallback student", userID, cerr)
		return constants.RoleStudent
	}
	return assigned
}

// EnsureRoleRow membuat baris role default untuk user kalau belum ada.
// Aman dipanggil berulang (ON CONFLICT DO NOTHING pada unique user_id).
func EnsureRoleRow(ctx context.Context, db *gorm.DB, userID uuid.UUID) (string, error) {
	row := rolemodel.UserPracticeRoleModel{
		UserPracticeRoleUserID: userID,
		UserPracticeRoleRole:   constants.DefaultAssignedRole,
	}
	err := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_practice_role_user_id"}},
			DoNothing: true,
		}).
		Create(&row).Error
	if err != nil {
		return "", err
	}

	// Kalau insert di-skip karena race, baca ulang role yang menang.
	var existing rolemodel.UserPracticeRoleModel
	if rerr := db.WithContext(ctx).
		Where("user_practice_role_user_id = ?", userID).
		First(&existing).Error; rerr == nil {
		return existing.UserPracticeRoleRole, nil
	}
	return row.UserPracticeRoleRole, nil
}

// AssignRole menimpa role user (dipakai seeder & tooling internal).
func AssignRole(ctx context.Context, db *gorm.DB, userID uuid.UUID, role string) error {
	if !constants.ValidRole(role) {
		return errors.New("role tidak dikenal: " + role)
	}
	row := rolemodel.UserPracticeRoleModel{
		UserPracticeRoleUserID: userID,
		UserPracticeRoleRole:   role,
	}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_practice_role_user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"user_practice_role_role"}),
		}).
		Create(&row).Error
}
