// file: internals/features/practice/materials/controller/practice_public_controller.go
package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"latihanku_backend/internals/features/practice/materials/dto"
	"latihanku_backend/internals/features/practice/materials/service"
	helper "latihanku_backend/internals/helpers"
)

// Permukaan browse siswa. Gagal fetch TIDAK mematikan layar:
// balas 200 + list kosong + notice, biar frontend tetap rendering.
type PracticePublicController struct {
	DB *gorm.DB
}

func NewPracticePublicController(db *gorm.DB) *PracticePublicController {
	return &PracticePublicController{DB: db}
}

const catalogDegradeNotice = "Materi belum bisa dimuat, coba beberapa saat lagi"

// =====================================================
// GET /api/public/practice/categories
// =====================================================

func (ctl *PracticePublicController) ListCategories(c *fiber.Ctx) error {
	rows, err := service.ListCategories(c.Context(), ctl.DB, true)
	if err != nil {
		log.Printf("[PracticePublic] ⚠️ gagal memuat kategori: %v", err)
		return helper.JsonOK(c, catalogDegradeNotice, []dto.PracticeCategoryResponse{})
	}
	return helper.JsonOK(c, "Daftar kategori berhasil diambil", dto.FromCategoryModels(rows))
}

// =====================================================
// GET /api/public/practice/catalog/questions
// Soal aktif digrup per kategori aktif; grup kosong disembunyikan.
// =====================================================

func (ctl *PracticePublicController) QuestionCatalog(c *fiber.Ctx) error {
	groups, err := service.BuildQuestionCatalog(c.Context(), ctl.DB)
	if err != nil {
		log.Printf("[PracticePublic] ⚠️ gagal memuat katalog soal: %v", err)
		return helper.JsonOK(c, catalogDegradeNotice, []dto.QuestionCatalogGroup{})
	}
	return helper.JsonOK(c, "Katalog soal berhasil diambil", groups)
}

// =====================================================
// GET /api/public/practice/catalog/notes
// =====================================================

func (ctl *PracticePublicController) NoteCatalog(c *fiber.Ctx) error {
	groups, err := service.BuildNoteCatalog(c.Context(), ctl.DB)
	if err != nil {
		log.Printf("[PracticePublic] ⚠️ gagal memuat katalog catatan: %v", err)
		return helper.JsonOK(c, catalogDegradeNotice, []dto.NoteCatalogGroup{})
	}
	return helper.JsonOK(c, "Katalog catatan berhasil diambil", groups)
}
