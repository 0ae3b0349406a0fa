package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tingkat kesulitan soal.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// PracticeQuestionModel: soal latihan ber-PDF di bawah satu kategori.
type PracticeQuestionModel struct {
	PracticeQuestionID          uuid.UUID `gorm:"column:practice_question_id;type:uuid;primaryKey" json:"practice_question_id"`
	PracticeQuestionCategoryID  uuid.UUID `gorm:"column:practice_question_category_id;type:uuid;not null;index" json:"practice_question_category_id"`
	PracticeQuestionTitle       string    `gorm:"column:practice_question_title;type:varchar(255);not null" json:"practice_question_title"`
	PracticeQuestionDescription *string   `gorm:"column:practice_question_description;type:text" json:"practice_question_description,omitempty"`
	PracticeQuestionPDFURL      *string   `gorm:"column:practice_question_pdf_url;type:text" json:"practice_question_pdf_url,omitempty"`
	PracticeQuestionThumbnail   *string   `gorm:"column:practice_question_thumbnail_url;type:text" json:"practice_question_thumbnail_url,omitempty"`
	PracticeQuestionDifficulty  string    `gorm:"column:practice_question_difficulty;type:varchar(10);not null" json:"practice_question_difficulty"`
	PracticeQuestionSubject     *string   `gorm:"column:practice_question_subject;type:varchar(100)" json:"practice_question_subject,omitempty"`
	PracticeQuestionClassLevel  *string   `gorm:"column:practice_question_class_level;type:varchar(50)" json:"practice_question_class_level,omitempty"`
	PracticeQuestionOrderIndex  int       `gorm:"column:practice_question_order_index;not null;default:0" json:"practice_question_order_index"`
	PracticeQuestionIsActive    bool      `gorm:"column:practice_question_is_active;not null;default:true" json:"practice_question_is_active"`

	PracticeQuestionCreatedAt time.Time `gorm:"column:practice_question_created_at;not null;autoCreateTime" json:"practice_question_created_at"`
	PracticeQuestionUpdatedAt time.Time `gorm:"column:practice_question_updated_at;not null;autoUpdateTime" json:"practice_question_updated_at"`
}

func (PracticeQuestionModel) TableName() string {
	return "practice_questions"
}

func (m *PracticeQuestionModel) BeforeCreate(tx *gorm.DB) error {
	if m.PracticeQuestionID == uuid.Nil {
		m.PracticeQuestionID = uuid.New()
	}
	if strings.TrimSpace(m.PracticeQuestionDifficulty) == "" {
		m.PracticeQuestionDifficulty = DifficultyMedium
	}
	return nil
}
