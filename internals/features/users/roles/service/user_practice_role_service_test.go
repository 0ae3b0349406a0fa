package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"latihanku_backend/internals/constants"
	database "latihanku_backend/internals/databases"
	rolemodel "latihanku_backend/internals/features/users/roles/model"
)

func setupRoleDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "roles.db") + "?_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func countRoleRows(t *testing.T, db *gorm.DB, userID uuid.UUID) int64 {
	t.Helper()
	var total int64
	require.NoError(t, db.Model(&rolemodel.UserPracticeRoleModel{}).
		Where("user_practice_role_user_id = ?", userID).
		Count(&total).Error)
	return total
}

func TestResolveRole_CreatesStudentRowExactlyOnce(t *testing.T) {
	db := setupRoleDB(t)
	ctx := context.Background()
	uid := uuid.New()

	assert.Equal(t, constants.RoleStudent, ResolveRole(ctx, db, uid))
	assert.Equal(t, constants.RoleStudent, ResolveRole(ctx, db, uid))
	assert.EqualValues(t, 1, countRoleRows(t, db, uid), "resolve berulang tidak boleh menggandakan baris")
}

func TestResolveRole_ReadsAdminFromTable(t *testing.T) {
	db := setupRoleDB(t)
	ctx := context.Background()
	uid := uuid.New()

	require.NoError(t, AssignRole(ctx, db, uid, constants.RoleAdmin))
	assert.Equal(t, constants.RoleAdmin, ResolveRole(ctx, db, uid))
}

func TestResolveRole_FailsSafeToStudentOnLookupError(t *testing.T) {
	db := setupRoleDB(t)
	require.NoError(t, db.Migrator().DropTable(&rolemodel.UserPracticeRoleModel{}))

	// tabel hilang = error lookup, resolusi tidak boleh meng-escalate
	assert.Equal(t, constants.RoleStudent, ResolveRole(context.Background(), db, uuid.New()))
}

func TestResolveRole_UnknownStoredRoleFallsBackToStudent(t *testing.T) {
	db := setupRoleDB(t)
	ctx := context.Background()
	uid := uuid.New()

	require.NoError(t, AssignRole(ctx, db, uid, constants.RoleAdmin))
	require.NoError(t, db.Model(&rolemodel.UserPracticeRoleModel{}).
		Where("user_practice_role_user_id = ?", uid).
		Update("user_practice_role_role", "superuser").Error)

	assert.Equal(t, constants.RoleStudent, ResolveRole(ctx, db, uid))
}

func TestEnsureRoleRow_NeverDemotesExistingAdmin(t *testing.T) {
	db := setupRoleDB(t)
	ctx := context.Background()
	uid := uuid.New()

	require.NoError(t, AssignRole(ctx, db, uid, constants.RoleAdmin))

	got, err := EnsureRoleRow(ctx, db, uid)
	require.NoError(t, err)
	assert.Equal(t, constants.RoleAdmin, got, "ensure pada baris yang ada mengembalikan role pemenang")
	assert.EqualValues(t, 1, countRoleRows(t, db, uid))
}

func TestAssignRole_RejectsUnknownRole(t *testing.T) {
	db := setupRoleDB(t)
	uid := uuid.New()

	err := AssignRole(context.Background(), db, uid, "guru")
	require.Error(t, err)
	assert.Zero(t, countRoleRows(t, db, uid))
}

func TestAssignRole_UpsertsInsteadOfDuplicating(t *testing.T) {
	db := setupRoleDB(t)
	ctx := context.Background()
	uid := uuid.New()

	// baris student dibuat otomatis, assign berikutnya harus menimpa
	require.Equal(t, constants.RoleStudent, ResolveRole(ctx, db, uid))

	var before rolemodel.UserPracticeRoleModel
	require.NoError(t, db.Where("user_practice_role_user_id = ?", uid).First(&before).Error)

	require.NoError(t, AssignRole(ctx, db, uid, constants.RoleAdmin))
	assert.Equal(t, constants.RoleAdmin, ResolveRole(ctx, db, uid))
	assert.EqualValues(t, 1, countRoleRows(t, db, uid))

	var after rolemodel.UserPracticeRoleModel
	require.NoError(t, db.Where("user_practice_role_user_id = ?", uid).First(&after).Error)
	assert.Equal(t, before.UserPracticeRoleID, after.UserPracticeRoleID, "upsert menimpa baris yang sama")
}
