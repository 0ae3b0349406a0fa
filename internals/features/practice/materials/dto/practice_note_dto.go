// file: internals/features/practice/materials/dto/practice_note_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"latihanku_backend/internals/features/practice/materials/model"
	helper "latihanku_backend/internals/helpers"
	helperOSS "latihanku_backend/internals/helpers/oss"
)

/* =========================
 * Request DTO (create)
 * ========================= */

// Draft catatan belajar. Bentuknya sama dengan soal minus difficulty.
type NoteDraft struct {
	PracticeNoteCategoryID  *uuid.UUID `json:"practice_note_category_id" form:"practice_note_category_id"`
	PracticeNoteTitle       string     `json:"practice_note_title" form:"practice_note_title" validate:"required,max=255"`
	PracticeNoteDescription *string    `json:"practice_note_description" form:"practice_note_description" validate:"omitempty,max=1000"`
	PracticeNoteSubject     *string    `json:"practice_note_subject" form:"practice_note_subject" validate:"omitempty,max=100"`
	PracticeNoteClassLevel  *string    `json:"practice_note_class_level" form:"practice_note_class_level" validate:"omitempty,max=50"`
	PracticeNoteOrderIndex  *int       `json:"practice_note_order_index" form:"practice_note_order_index"`
}

func NoteDraftFromRequest(c *fiber.Ctx) (*NoteDraft, map[string][]string, error) {
	d := &NoteDraft{}
	ferrs := map[string][]string{}

	if helperOSS.IsMultipart(c) {
		d.PracticeNoteTitle, _ = formValue(c, "practice_note_title")
		if v, ok := formValue(c, "practice_note_description"); ok {
			d.PracticeNoteDescription = &v
		}
		if v, ok := formValue(c, "practice_note_category_id"); ok {
			d.PracticeNoteCategoryID = parseUUIDField(v, "practice_note_category_id", ferrs)
		}
		if v, ok := formValue(c, "practice_note_subject"); ok {
			d.PracticeNoteSubject = &v
		}
		if v, ok := formValue(c, "practice_note_class_level"); ok {
			d.PracticeNoteClassLevel = &v
		}
		if v, ok := formValue(c, "practice_note_order_index"); ok {
			d.PracticeNoteOrderIndex = parseIntField(v, "practice_note_order_index", ferrs)
		}
	} else {
		if err := c.BodyParser(d); err != nil {
			return nil, nil, err
		}
	}

	d.Normalize()
	return d, ferrs, nil
}

func (d *NoteDraft) Normalize() {
	d.PracticeNoteTitle = strings.TrimSpace(d.PracticeNoteTitle)
	d.PracticeNoteDescription = trimPtr(d.PracticeNoteDescription)
	d.PracticeNoteSubject = trimPtr(d.PracticeNoteSubject)
	d.PracticeNoteClassLevel = trimPtr(d.PracticeNoteClassLevel)
}

func (d *NoteDraft) ValidateBatch() map[string][]string {
	if err := validate.Struct(d); err != nil {
		return helper.ValidationErrorsToMap(err)
	}
	return nil
}

func (d *NoteDraft) ToModel() *model.PracticeNoteModel {
	m := &model.PracticeNoteModel{
		PracticeNoteTitle:       d.PracticeNoteTitle,
		PracticeNoteDescription: d.PracticeNoteDescription,
		PracticeNoteSubject:     d.PracticeNoteSubject,
		PracticeNoteClassLevel:  d.PracticeNoteClassLevel,
		PracticeNoteIsActive:    true,
	}
	if d.PracticeNoteCategoryID != nil {
		m.PracticeNoteCategoryID = *d.PracticeNoteCategoryID
	}
	if d.PracticeNoteOrderIndex != nil {
		m.PracticeNoteOrderIndex = *d.PracticeNoteOrderIndex
	}
	return m
}

/* =========================
 * Request DTO (update/PATCH)
 * ========================= */

type UpdateNoteDraft struct {
	PracticeNoteCategoryID  *uuid.UUID `json:"practice_note_category_id" form:"practice_note_category_id"`
	PracticeNoteTitle       *string    `json:"practice_note_title" form:"practice_note_title" validate:"omitempty,max=255"`
	PracticeNoteDescription *string    `json:"practice_note_description" form:"practice_note_description" validate:"omitempty,max=1000"`
	PracticeNoteSubject     *string    `json:"practice_note_subject" form:"practice_note_subject" validate:"omitempty,max=100"`
	PracticeNoteClassLevel  *string    `json:"practice_note_class_level" form:"practice_note_class_level" validate:"omitempty,max=50"`
	PracticeNoteOrderIndex  *int       `json:"practice_note_order_index" form:"practice_note_order_index"`
}

func UpdateNoteDraftFromRequest(c *fiber.Ctx) (*UpdateNoteDraft, map[string][]string, error) {
	d := &UpdateNoteDraft{}
	ferrs := map[string][]string{}

	if helperOSS.IsMultipart(c) {
		if v, ok := formValue(c, "practice_note_title"); ok {
			d.PracticeNoteTitle = &v
		}
		if v, ok := formValue(c, "practice_note_description"); ok {
			d.PracticeNoteDescription = &v
		}
		if v, ok := formValue(c, "practice_note_category_id"); ok {
			d.PracticeNoteCategoryID = parseUUIDField(v, "practice_note_category_id", ferrs)
		}
		if v, ok := formValue(c, "practice_note_subject"); ok {
			d.PracticeNoteSubject = &v
		}
		if v, ok := formValue(c, "practice_note_class_level"); ok {
			d.PracticeNoteClassLevel = &v
		}
		if v, ok := formValue(c, "practice_note_order_index"); ok {
			d.PracticeNoteOrderIndex = parseIntField(v, "practice_note_order_index", ferrs)
		}
	} else {
		if err := c.BodyParser(d); err != nil {
			return nil, nil, err
		}
	}

	d.Normalize()
	return d, ferrs, nil
}

func (d *UpdateNoteDraft) Normalize() {
	if d.PracticeNoteTitle != nil {
		v := strings.TrimSpace(*d.PracticeNoteTitle)
		d.PracticeNoteTitle = &v
	}
	d.PracticeNoteDescription = trimPtr(d.PracticeNoteDescription)
	d.PracticeNoteSubject = trimPtr(d.PracticeNoteSubject)
	d.PracticeNoteClassLevel = trimPtr(d.PracticeNoteClassLevel)
}

func (d *UpdateNoteDraft) ValidateBatch() map[string][]string {
	errs := map[string][]string{}
	if err := validate.Struct(d); err != nil {
		errs = helper.ValidationErrorsToMap(err)
	}
	if d.PracticeNoteTitle != nil && *d.PracticeNoteTitle == "" {
		errs["practice_note_title"] = append(errs["practice_note_title"], "tidak boleh kosong")
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (d *UpdateNoteDraft) ApplyToModel(m *model.PracticeNoteModel) {
	if d.PracticeNoteCategoryID != nil {
		m.PracticeNoteCategoryID = *d.PracticeNoteCategoryID
	}
	if d.PracticeNoteTitle != nil {
		m.PracticeNoteTitle = *d.PracticeNoteTitle
	}
	if d.PracticeNoteDescription != nil {
		m.PracticeNoteDescription = d.PracticeNoteDescription
	}
	if d.PracticeNoteSubject != nil {
		m.PracticeNoteSubject = d.PracticeNoteSubject
	}
	if d.PracticeNoteClassLevel != nil {
		m.PracticeNoteClassLevel = d.PracticeNoteClassLevel
	}
	if d.PracticeNoteOrderIndex != nil {
		m.PracticeNoteOrderIndex = *d.PracticeNoteOrderIndex
	}
}

/* =========================
 * Response DTO
 * ========================= */

type PracticeNoteResponse struct {
	PracticeNoteID          uuid.UUID `json:"practice_note_id"`
	PracticeNoteCategoryID  uuid.UUID `json:"practice_note_category_id"`
	PracticeNoteTitle       string    `json:"practice_note_title"`
	PracticeNoteDescription *string   `json:"practice_note_description,omitempty"`
	PracticeNotePDFURL      string    `json:"practice_note_pdf_url"`
	PracticeNoteThumbnail   *string   `json:"practice_note_thumbnail_url,omitempty"`
	PracticeNoteSubject     *string   `json:"practice_note_subject,omitempty"`
	PracticeNoteClassLevel  *string   `json:"practice_note_class_level,omitempty"`
	PracticeNoteOrderIndex  int       `json:"practice_note_order_index"`
	PracticeNoteIsActive    bool      `json:"practice_note_is_active"`
	PracticeNoteCreatedAt   string    `json:"practice_note_created_at"`
}

func FromNoteModel(m *model.PracticeNoteModel) PracticeNoteResponse {
	pdfURL := ""
	if m.PracticeNotePDFURL != nil {
		pdfURL = *m.PracticeNotePDFURL
	}
	return PracticeNoteResponse{
		PracticeNoteID:          m.PracticeNoteID,
		PracticeNoteCategoryID:  m.PracticeNoteCategoryID,
		PracticeNoteTitle:       m.PracticeNoteTitle,
		PracticeNoteDescription: m.PracticeNoteDescription,
		PracticeNotePDFURL:      pdfURL,
		PracticeNoteThumbnail:   m.PracticeNoteThumbnail,
		PracticeNoteSubject:     m.PracticeNoteSubject,
		PracticeNoteClassLevel:  m.PracticeNoteClassLevel,
		PracticeNoteOrderIndex:  m.PracticeNoteOrderIndex,
		PracticeNoteIsActive:    m.PracticeNoteIsActive,
		PracticeNoteCreatedAt:   m.PracticeNoteCreatedAt.Format(time.RFC3339),
	}
}

func FromNoteModels(ms []model.PracticeNoteModel) []PracticeNoteResponse {
	out := make([]PracticeNoteResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromNoteModel(&ms[i]))
	}
	return out
}

/* =========================
 * Catalog DTO (public browse)
 * ========================= */

type NoteCatalogGroup struct {
	Category PracticeCategoryResponse `json:"category"`
	Notes    []PracticeNoteResponse   `json:"notes"`
}
