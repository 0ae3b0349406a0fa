// file: internals/features/practice/materials/controller/practice_category_controller.go
package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"latihanku_backend/internals/features/practice/materials/dto"
	"latihanku_backend/internals/features/practice/materials/model"
	"latihanku_backend/internals/features/practice/materials/service"
	helper "latihanku_backend/internals/helpers"
)

type PracticeCategoryController struct {
	DB *gorm.DB
}

func NewPracticeCategoryController(db *gorm.DB) *PracticeCategoryController {
	return &PracticeCategoryController{DB: db}
}

// =====================================================
// LIST: GET /api/a/practice/categories
// Tabel kosong → pasang kategori bawaan dulu, lalu balas
// baris hasil seeding (admin tidak pernah lihat layar kosong).
// =====================================================

func (ctl *PracticeCategoryController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := ctl.DB.WithContext(c.Context()).
		Model(&model.PracticeCategoryModel{}).
		Count(&total).Error; err != nil {
		return helper.WriteDBError(c, err)
	}

	if total == 0 {
		if err := service.EnsureDefaultCategories(c.Context(), ctl.DB); err != nil {
			return helper.JsonErrorCode(c, fiber.StatusInternalServerError, "CATEGORY_RESOLUTION_FAILED", "Gagal memasang kategori bawaan, coba lagi")
		}
		if err := ctl.DB.WithContext(c.Context()).
			Model(&model.PracticeCategoryModel{}).
			Count(&total).Error; err != nil {
			return helper.WriteDBError(c, err)
		}
	}

	var rows []model.PracticeCategoryModel
	if err := ctl.DB.WithContext(c.Context()).
		Order("practice_category_order_index ASC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&rows).Error; err != nil {
		return helper.WriteDBError(c, err)
	}

	return helper.JsonList(c, "Daftar kategori berhasil diambil",
		dto.FromCategoryModels(rows),
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// =====================================================
// CREATE: POST /api/a/practice/categories
// =====================================================

func (ctl *PracticeCategoryController) Create(c *fiber.Ctx) error {
	var req dto.CreatePracticeCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonErrorCode(c, fiber.StatusBadRequest, "REQUIRED_FIELD_MISSING", "Payload tidak valid")
	}
	req.Normalize()

	if ferrs := req.ValidateBatch(); len(ferrs) > 0 {
		return helper.JsonValidationError(c, ferrs)
	}

	m := req.ToModel()
	if err := ctl.DB.WithContext(c.Context()).Create(m).Error; err != nil {
		if helper.IsDuplicateKeyError(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Nama kategori sudah dipakai")
		}
		return helper.WriteDBError(c, err)
	}

	log.Printf("[PracticeCategory] ✅ dibuat: %s (%s)", m.PracticeCategoryName, m.PracticeCategoryID)
	return helper.JsonCreated(c, "Kategori dibuat", dto.FromCategoryModel(m))
}

// =====================================================
// UPDATE (PATCH): PATCH /api/a/practice/categories/:id
// =====================================================

func (ctl *PracticeCategoryController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var req dto.UpdatePracticeCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonErrorCode(c, fiber.StatusBadRequest, "REQUIRED_FIELD_MISSING", "Payload tidak valid")
	}
	req.Normalize()

	if ferrs := req.ValidateBatch(); len(ferrs) > 0 {
		return helper.JsonValidationError(c, ferrs)
	}

	var m model.PracticeCategoryModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("practice_category_id = ?", id).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Kategori tidak ditemukan")
		}
		return helper.WriteDBError(c, err)
	}

	req.ApplyToModel(&m)
	if err := ctl.DB.WithContext(c.Context()).Save(&m).Error; err != nil {
		if helper.IsDuplicateKeyError(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Nama kategori sudah dipakai")
		}
		return helper.WriteDBError(c, err)
	}

	return helper.JsonUpdated(c, "Kategori diperbarui", dto.FromCategoryModel(&m))
}

// =====================================================
// DELETE: DELETE /api/a/practice/categories/:id
// Hard delete; materi di bawahnya ikut terhapus (CASCADE).
// =====================================================

func (ctl *PracticeCategoryController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var m model.PracticeCategoryModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("practice_category_id = ?", id).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Kategori tidak ditemukan")
		}
		return helper.WriteDBError(c, err)
	}

	if err := ctl.DB.WithContext(c.Context()).
		Select("PracticeCategoryQuestions", "PracticeCategoryNotes").
		Delete(&m).Error; err != nil {
		return helper.WriteDBError(c, err)
	}

	log.Printf("[PracticeCategory] 🗑️ dihapus: %s (%s)", m.PracticeCategoryName, id)
	return helper.JsonDeleted(c, "Kategori dihapus", fiber.Map{"practice_category_id": id})
}
