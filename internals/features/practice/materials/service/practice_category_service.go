// file: internals/features/practice/materials/service/practice_category_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"latihanku_backend/internals/features/practice/materials/model"
)

// Empat kategori bawaan practice zone, urut sesuai tampilan.
func DefaultPracticeCategories() []model.PracticeCategoryModel {
	return []model.PracticeCategoryModel{
		{PracticeCategoryName: "Question Papers", PracticeCategoryIcon: "📄", PracticeCategoryOrderIndex: 1, PracticeCategoryIsActive: true},
		{PracticeCategoryName: "Study Notes", PracticeCategoryIcon: "📚", PracticeCategoryOrderIndex: 2, PracticeCategoryIsActive: true},
		{PracticeCategoryName: "Practice Tests", PracticeCategoryIcon: "✏️", PracticeCategoryOrderIndex: 3, PracticeCategoryIsActive: true},
		{PracticeCategoryName: "Reference Materials", PracticeCategoryIcon: "🔖", PracticeCategoryOrderIndex: 4, PracticeCategoryIsActive: true},
	}
}

// EnsureDefaultCategories memasang kategori bawaan dalam satu batch.
// Idempoten lewat ON CONFLICT DO NOTHING pada unique name: panggilan kedua
// (atau balapan dua request) tidak menambah baris dan tidak error.
func EnsureDefaultCategories(ctx context.Context, db *gorm.DB) error {
	cats := DefaultPracticeCategories()
	err := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "practice_category_name"}},
			DoNothing: true,
		}).
		Create(&cats).Error
	if err != nil {
		log.Printf("[EnsureDefaultCategories] ERROR: %v", err)
		return err
	}
	log.Println("🌱 [EnsureDefaultCategories] kategori bawaan terpasang (insert atau skip)")
	return nil
}

// ResolveDefaultCategory mengembalikan kategori pertama berdasar order index.
// Tabel kosong → bootstrap dulu → baca ulang. Tetap kosong atau gagal baca →
// ErrCategoryResolution.
func ResolveDefaultCategory(ctx context.Context, db *gorm.DB) (uuid.UUID, error) {
	first, err := firstCategoryByOrder(ctx, db)
	if err == nil {
		return first.PracticeCategoryID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrCategoryResolution, err)
	}

	if err := EnsureDefaultCategories(ctx, db); err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrCategoryResolution, err)
	}

	first, err = firstCategoryByOrder(ctx, db)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrCategoryResolution, err)
	}
	return first.PracticeCategoryID, nil
}

func firstCategoryByOrder(ctx context.Context, db *gorm.DB) (*model.PracticeCategoryModel, error) {
	var m model.PracticeCategoryModel
	err := db.WithContext(ctx).
		Order("practice_category_order_index ASC").
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListCategories: urut order index. activeOnly untuk permukaan browse publik.
func ListCategories(ctx context.Context, db *gorm.DB, activeOnly bool) ([]model.PracticeCategoryModel, error) {
	var rows []model.PracticeCategoryModel
	tx := db.WithContext(ctx).Order("practice_category_order_index ASC")
	if activeOnly {
		tx = tx.Where("practice_category_is_active = ?", true)
	}
	if err := tx.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
