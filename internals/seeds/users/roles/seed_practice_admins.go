package role

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"latihanku_backend/internals/constants"
	roleService "latihanku_backend/internals/features/users/roles/service"
)

type PracticeAdminSeed struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// SeedPracticeAdminsFromJSON menetapkan role latihan dari file JSON.
// File-nya opsional; kalau tidak ada, seeding dilewati tanpa error.
func SeedPracticeAdminsFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Membaca file role latihan:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("ℹ️ File %s tidak ditemukan, seeding role dilewati.", filePath)
			return
		}
		log.Printf("❌ Gagal membaca file JSON: %v", err)
		return
	}

	var inputs []PracticeAdminSeed
	if err := json.Unmarshal(file, &inputs); err != nil {
		log.Printf("❌ Gagal decode JSON: %v", err)
		return
	}

	for _, data := range inputs {
		userID, err := uuid.Parse(data.UserID)
		if err != nil {
			log.Printf("❌ user_id '%s' bukan UUID, dilewati.", data.UserID)
			continue
		}

		role := data.Role
		if role == "" {
			role = constants.RoleAdmin
		}

		if err := roleService.AssignRole(context.Background(), db, userID, role); err != nil {
			log.Printf("❌ Gagal set role '%s' untuk %s: %v", role, userID, err)
			continue
		}
		log.Printf("✅ Role '%s' terpasang untuk user %s", role, userID)
	}
}
