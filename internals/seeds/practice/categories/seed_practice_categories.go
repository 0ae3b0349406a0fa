package category

import (
	"context"
	"log"

	"gorm.io/gorm"

	categoryService "latihanku_backend/internals/features/practice/materials/service"
)

// SeedPracticeCategories memasang kategori latihan bawaan.
// Insert-nya idempoten (ON CONFLICT DO NOTHING), jadi aman dijalankan berulang.
func SeedPracticeCategories(db *gorm.DB) {
	log.Println("📥 Seeding kategori latihan bawaan...")

	if err := categoryService.EnsureDefaultCategories(context.Background(), db); err != nil {
		log.Printf("❌ Gagal seeding kategori latihan: %v", err)
		return
	}

	log.Println("✅ Kategori latihan bawaan siap.")
}
