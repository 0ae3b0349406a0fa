package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"latihanku_backend/internals/constants"
)

// UserPracticeRoleModel: tepat satu baris role per user (admin | student).
// Baris dibuat otomatis sebagai student saat pertama kali dicek.
type UserPracticeRoleModel struct {
	UserPracticeRoleID     uuid.UUID `gorm:"column:user_practice_role_id;type:uuid;primaryKey" json:"user_practice_role_id"`
	UserPracticeRoleUserID uuid.UUID `gorm:"column:user_practice_role_user_id;type:uuid;not null;uniqueIndex:uq_user_practice_roles_user" json:"user_practice_role_user_id"`
	UserPracticeRoleRole   string    `gorm:"column:user_practice_role_role;type:varchar(16);not null" json:"user_practice_role_role"`

	UserPracticeRoleCreatedAt time.Time `gorm:"column:user_practice_role_created_at;not null;autoCreateTime" json:"user_practice_role_created_at"`
	UserPracticeRoleUpdatedAt time.Time `gorm:"column:user_practice_role_updated_at;not null;autoUpdateTime" json:"user_practice_role_updated_at"`
}

func (UserPracticeRoleModel) TableName() string {
	return "user_practice_roles"
}

func (m *UserPracticeRoleModel) BeforeCreate(tx *gorm.DB) error {
	if m.UserPracticeRoleID == uuid.Nil {
		m.UserPracticeRoleID = uuid.New()
	}
	if !constants.ValidRole(m.UserPracticeRoleRole) {
		m.UserPracticeRoleRole = constants.DefaultAssignedRole
	}
	return nil
}
