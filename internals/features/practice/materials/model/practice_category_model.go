package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Icon default kategori saat tidak diisi.
const DefaultCategoryIcon = "📚"

// PracticeCategoryModel: kategori materi practice zone (mis. "Study Notes").
// Nama kategori unik; urutan tampilan pakai order_index.
type PracticeCategoryModel struct {
	PracticeCategoryID          uuid.UUID `gorm:"column:practice_category_id;type:uuid;primaryKey" json:"practice_category_id"`
	PracticeCategoryName        string    `gorm:"column:practice_category_name;type:varchar(100);not null;uniqueIndex:uq_practice_categories_name" json:"practice_category_name"`
	PracticeCategoryDescription *string   `gorm:"column:practice_category_description;type:text" json:"practice_category_description,omitempty"`
	PracticeCategoryIcon        string    `gorm:"column:practice_category_icon;type:varchar(16);not null" json:"practice_category_icon"`
	PracticeCategoryOrderIndex  int       `gorm:"column:practice_category_order_index;not null;default:0" json:"practice_category_order_index"`
	PracticeCategoryIsActive    bool      `gorm:"column:practice_category_is_active;not null;default:true" json:"practice_category_is_active"`

	PracticeCategoryCreatedAt time.Time `gorm:"column:practice_category_created_at;not null;autoCreateTime" json:"practice_category_created_at"`
	PracticeCategoryUpdatedAt time.Time `gorm:"column:practice_category_updated_at;not null;autoUpdateTime" json:"practice_category_updated_at"`

	// Relasi (hapus kategori ikut menghapus materinya)
	PracticeCategoryQuestions []PracticeQuestionModel `gorm:"foreignKey:PracticeQuestionCategoryID;constraint:OnDelete:CASCADE" json:"-"`
	PracticeCategoryNotes     []PracticeNoteModel     `gorm:"foreignKey:PracticeNoteCategoryID;constraint:OnDelete:CASCADE" json:"-"`
}

func (PracticeCategoryModel) TableName() string {
	return "practice_categories"
}

func (m *PracticeCategoryModel) BeforeCreate(tx *gorm.DB) error {
	if m.PracticeCategoryID == uuid.Nil {
		m.PracticeCategoryID = uuid.New()
	}
	if strings.TrimSpace(m.PracticeCategoryIcon) == "" {
		m.PracticeCategoryIcon = DefaultCategoryIcon
	}
	return nil
}
