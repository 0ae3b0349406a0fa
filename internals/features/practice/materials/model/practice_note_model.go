package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PracticeNoteModel: catatan belajar ber-PDF. Bentuknya sama dengan soal
// minus tingkat kesulitan.
type PracticeNoteModel struct {
	PracticeNoteID          uuid.UUID `gorm:"column:practice_note_id;type:uuid;primaryKey" json:"practice_note_id"`
	PracticeNoteCategoryID  uuid.UUID `gorm:"column:practice_note_category_id;type:uuid;not null;index" json:"practice_note_category_id"`
	PracticeNoteTitle       string    `gorm:"column:practice_note_title;type:varchar(255);not null" json:"practice_note_title"`
	PracticeNoteDescription *string   `gorm:"column:practice_note_description;type:text" json:"practice_note_description,omitempty"`
	PracticeNotePDFURL      *string   `gorm:"column:practice_note_pdf_url;type:text" json:"practice_note_pdf_url,omitempty"`
	PracticeNoteThumbnail   *string   `gorm:"column:practice_note_thumbnail_url;type:text" json:"practice_note_thumbnail_url,omitempty"`
	PracticeNoteSubject     *string   `gorm:"column:practice_note_subject;type:varchar(100)" json:"practice_note_subject,omitempty"`
	PracticeNoteClassLevel  *string   `gorm:"column:practice_note_class_level;type:varchar(50)" json:"practice_note_class_level,omitempty"`
	PracticeNoteOrderIndex  int       `gorm:"column:practice_note_order_index;not null;default:0" json:"practice_note_order_index"`
	PracticeNoteIsActive    bool      `gorm:"column:practice_note_is_active;not null;default:true" json:"practice_note_is_active"`

	PracticeNoteCreatedAt time.Time `gorm:"column:practice_note_created_at;not null;autoCreateTime" json:"practice_note_created_at"`
	PracticeNoteUpdatedAt time.Time `gorm:"column:practice_note_updated_at;not null;autoUpdateTime" json:"practice_note_updated_at"`
}

func (PracticeNoteModel) TableName() string {
	return "practice_notes"
}

func (m *PracticeNoteModel) BeforeCreate(tx *gorm.DB) error {
	if m.PracticeNoteID == uuid.Nil {
		m.PracticeNoteID = uuid.New()
	}
	return nil
}
