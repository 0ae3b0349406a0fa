// file: internals/features/practice/materials/dto/practice_question_dto.go
package dto

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"latihanku_backend/internals/features/practice/materials/model"
	helper "latihanku_backend/internals/helpers"
	helperOSS "latihanku_backend/internals/helpers/oss"
)

/* =========================
 * Form parsing helpers
 * ========================= */

// formValue membaca field multipart + menandai apakah field-nya dikirim.
// PATCH butuh bedanya "dikirim kosong" vs "tidak dikirim".
func formValue(c *fiber.Ctx, key string) (string, bool) {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return "", false
	}
	vals, ok := form.Value[key]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

func parseUUIDField(raw string, field string, errs map[string][]string) *uuid.UUID {
	v := strings.TrimSpace(raw)
	if v == "" {
		return nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		errs[field] = append(errs[field], "harus UUID yang valid")
		return nil
	}
	return &id
}

func parseIntField(raw string, field string, errs map[string][]string) *int {
	v := strings.TrimSpace(raw)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		errs[field] = append(errs[field], "harus angka")
		return nil
	}
	return &n
}

/* =========================
 * Request DTO (create)
 * ========================= */

// Draft soal dari form admin. Category boleh kosong: service yang
// me-resolve kategori default sebelum tulis.
type QuestionDraft struct {
	PracticeQuestionCategoryID  *uuid.UUID `json:"practice_question_category_id" form:"practice_question_category_id"`
	PracticeQuestionTitle       string     `json:"practice_question_title" form:"practice_question_title" validate:"required,max=255"`
	PracticeQuestionDescription *string    `json:"practice_question_description" form:"practice_question_description" validate:"omitempty,max=1000"`
	PracticeQuestionDifficulty  string     `json:"practice_question_difficulty" form:"practice_question_difficulty" validate:"omitempty,oneof=easy medium hard"`
	PracticeQuestionSubject     *string    `json:"practice_question_subject" form:"practice_question_subject" validate:"omitempty,max=100"`
	PracticeQuestionClassLevel  *string    `json:"practice_question_class_level" form:"practice_question_class_level" validate:"omitempty,max=50"`
	PracticeQuestionOrderIndex  *int       `json:"practice_question_order_index" form:"practice_question_order_index"`
}

// QuestionDraftFromRequest membaca draft dari multipart ATAU JSON.
// Pelanggaran format field form (UUID/angka) masuk map, bukan fail-fast.
func QuestionDraftFromRequest(c *fiber.Ctx) (*QuestionDraft, map[string][]string, error) {
	d := &QuestionDraft{}
	ferrs := map[string][]string{}

	if helperOSS.IsMultipart(c) {
		// ✅ JANGAN BodyParser untuk multipart
		d.PracticeQuestionTitle, _ = formValue(c, "practice_question_title")
		if v, ok := formValue(c, "practice_question_description"); ok {
			d.PracticeQuestionDescription = &v
		}
		if v, ok := formValue(c, "practice_question_category_id"); ok {
			d.PracticeQuestionCategoryID = parseUUIDField(v, "practice_question_category_id", ferrs)
		}
		if v, ok := formValue(c, "practice_question_difficulty"); ok {
			d.PracticeQuestionDifficulty = v
		}
		if v, ok := formValue(c, "practice_question_subject"); ok {
			d.PracticeQuestionSubject = &v
		}
		if v, ok := formValue(c, "practice_question_class_level"); ok {
			d.PracticeQuestionClassLevel = &v
		}
		if v, ok := formValue(c, "practice_question_order_index"); ok {
			d.PracticeQuestionOrderIndex = parseIntField(v, "practice_question_order_index", ferrs)
		}
	} else {
		if err := c.BodyParser(d); err != nil {
			return nil, nil, err
		}
	}

	d.Normalize()
	return d, ferrs, nil
}

func (d *QuestionDraft) Normalize() {
	d.PracticeQuestionTitle = strings.TrimSpace(d.PracticeQuestionTitle)
	d.PracticeQuestionDescription = trimPtr(d.PracticeQuestionDescription)
	d.PracticeQuestionDifficulty = strings.ToLower(strings.TrimSpace(d.PracticeQuestionDifficulty))
	d.PracticeQuestionSubject = trimPtr(d.PracticeQuestionSubject)
	d.PracticeQuestionClassLevel = trimPtr(d.PracticeQuestionClassLevel)
}

func (d *QuestionDraft) ValidateBatch() map[string][]string {
	if err := validate.Struct(d); err != nil {
		return helper.ValidationErrorsToMap(err)
	}
	return nil
}

func (d *QuestionDraft) ToModel() *model.PracticeQuestionModel {
	m := &model.PracticeQuestionModel{
		PracticeQuestionTitle:       d.PracticeQuestionTitle,
		PracticeQuestionDescription: d.PracticeQuestionDescription,
		PracticeQuestionDifficulty:  d.PracticeQuestionDifficulty,
		PracticeQuestionSubject:     d.PracticeQuestionSubject,
		PracticeQuestionClassLevel:  d.PracticeQuestionClassLevel,
		PracticeQuestionIsActive:    true,
	}
	if d.PracticeQuestionCategoryID != nil {
		m.PracticeQuestionCategoryID = *d.PracticeQuestionCategoryID
	}
	if d.PracticeQuestionOrderIndex != nil {
		m.PracticeQuestionOrderIndex = *d.PracticeQuestionOrderIndex
	}
	return m
}

/* =========================
 * Request DTO (update/PATCH)
 * ========================= */

// Field nil = tidak dikirim = nilai lama dipertahankan.
type UpdateQuestionDraft struct {
	PracticeQuestionCategoryID  *uuid.UUID `json:"practice_question_category_id" form:"practice_question_category_id"`
	PracticeQuestionTitle       *string    `json:"practice_question_title" form:"practice_question_title" validate:"omitempty,max=255"`
	PracticeQuestionDescription *string    `json:"practice_question_description" form:"practice_question_description" validate:"omitempty,max=1000"`
	PracticeQuestionDifficulty  *string    `json:"practice_question_difficulty" form:"practice_question_difficulty" validate:"omitempty,oneof=easy medium hard"`
	PracticeQuestionSubject     *string    `json:"practice_question_subject" form:"practice_question_subject" validate:"omitempty,max=100"`
	PracticeQuestionClassLevel  *string    `json:"practice_question_class_level" form:"practice_question_class_level" validate:"omitempty,max=50"`
	PracticeQuestionOrderIndex  *int       `json:"practice_question_order_index" form:"practice_question_order_index"`
}

func UpdateQuestionDraftFromRequest(c *fiber.Ctx) (*UpdateQuestionDraft, map[string][]string, error) {
	d := &UpdateQuestionDraft{}
	ferrs := map[string][]string{}

	if helperOSS.IsMultipart(c) {
		if v, ok := formValue(c, "practice_question_title"); ok {
			d.PracticeQuestionTitle = &v
		}
		if v, ok := formValue(c, "practice_question_description"); ok {
			d.PracticeQuestionDescription = &v
		}
		if v, ok := formValue(c, "practice_question_category_id"); ok {
			d.PracticeQuestionCategoryID = parseUUIDField(v, "practice_question_category_id", ferrs)
		}
		if v, ok := formValue(c, "practice_question_difficulty"); ok {
			d.PracticeQuestionDifficulty = &v
		}
		if v, ok := formValue(c, "practice_question_subject"); ok {
			d.PracticeQuestionSubject = &v
		}
		if v, ok := formValue(c, "practice_question_class_level"); ok {
			d.PracticeQuestionClassLevel = &v
		}
		if v, ok := formValue(c, "practice_question_order_index"); ok {
			d.PracticeQuestionOrderIndex = parseIntField(v, "practice_question_order_index", ferrs)
		}
	} else {
		if err := c.BodyParser(d); err != nil {
			return nil, nil, err
		}
	}

	d.Normalize()
	return d, ferrs, nil
}

func (d *UpdateQuestionDraft) Normalize() {
	if d.PracticeQuestionTitle != nil {
		v := strings.TrimSpace(*d.PracticeQuestionTitle)
		d.PracticeQuestionTitle = &v
	}
	d.PracticeQuestionDescription = trimPtr(d.PracticeQuestionDescription)
	if d.PracticeQuestionDifficulty != nil {
		v := strings.ToLower(strings.TrimSpace(*d.PracticeQuestionDifficulty))
		d.PracticeQuestionDifficulty = &v
	}
	d.PracticeQuestionSubject = trimPtr(d.PracticeQuestionSubject)
	d.PracticeQuestionClassLevel = trimPtr(d.PracticeQuestionClassLevel)
}

func (d *UpdateQuestionDraft) ValidateBatch() map[string][]string {
	errs := map[string][]string{}
	if err := validate.Struct(d); err != nil {
		errs = helper.ValidationErrorsToMap(err)
	}
	if d.PracticeQuestionTitle != nil && *d.PracticeQuestionTitle == "" {
		errs["practice_question_title"] = append(errs["practice_question_title"], "tidak boleh kosong")
	}
	if d.PracticeQuestionDifficulty != nil && *d.PracticeQuestionDifficulty == "" {
		errs["practice_question_difficulty"] = append(errs["practice_question_difficulty"], "tidak boleh kosong")
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ApplyToModel: hanya timpa field yang != nil. pdf_url tidak disentuh
// di sini; penggantian file diurus pipeline upload.
func (d *UpdateQuestionDraft) ApplyToModel(m *model.PracticeQuestionModel) {
	if d.PracticeQuestionCategoryID != nil {
		m.PracticeQuestionCategoryID = *d.PracticeQuestionCategoryID
	}
	if d.PracticeQuestionTitle != nil {
		m.PracticeQuestionTitle = *d.PracticeQuestionTitle
	}
	if d.PracticeQuestionDescription != nil {
		m.PracticeQuestionDescription = d.PracticeQuestionDescription
	}
	if d.PracticeQuestionDifficulty != nil {
		m.PracticeQuestionDifficulty = *d.PracticeQuestionDifficulty
	}
	if d.PracticeQuestionSubject != nil {
		m.PracticeQuestionSubject = d.PracticeQuestionSubject
	}
	if d.PracticeQuestionClassLevel != nil {
		m.PracticeQuestionClassLevel = d.PracticeQuestionClassLevel
	}
	if d.PracticeQuestionOrderIndex != nil {
		m.PracticeQuestionOrderIndex = *d.PracticeQuestionOrderIndex
	}
}

/* =========================
 * Response DTO
 * ========================= */

type PracticeQuestionResponse struct {
	PracticeQuestionID          uuid.UUID `json:"practice_question_id"`
	PracticeQuestionCategoryID  uuid.UUID `json:"practice_question_category_id"`
	PracticeQuestionTitle       string    `json:"practice_question_title"`
	PracticeQuestionDescription *string   `json:"practice_question_description,omitempty"`
	PracticeQuestionPDFURL      string    `json:"practice_question_pdf_url"`
	PracticeQuestionThumbnail   *string   `json:"practice_question_thumbnail_url,omitempty"`
	PracticeQuestionDifficulty  string    `json:"practice_question_difficulty"`
	PracticeQuestionSubject     *string   `json:"practice_question_subject,omitempty"`
	PracticeQuestionClassLevel  *string   `json:"practice_question_class_level,omitempty"`
	PracticeQuestionOrderIndex  int       `json:"practice_question_order_index"`
	PracticeQuestionIsActive    bool      `json:"practice_question_is_active"`
	PracticeQuestionCreatedAt   string    `json:"practice_question_created_at"`
}

func FromQuestionModel(m *model.PracticeQuestionModel) PracticeQuestionResponse {
	pdfURL := ""
	if m.PracticeQuestionPDFURL != nil {
		pdfURL = *m.PracticeQuestionPDFURL
	}
	return PracticeQuestionResponse{
		PracticeQuestionID:          m.PracticeQuestionID,
		PracticeQuestionCategoryID:  m.PracticeQuestionCategoryID,
		PracticeQuestionTitle:       m.PracticeQuestionTitle,
		PracticeQuestionDescription: m.PracticeQuestionDescription,
		PracticeQuestionPDFURL:      pdfURL,
		PracticeQuestionThumbnail:   m.PracticeQuestionThumbnail,
		PracticeQuestionDifficulty:  m.PracticeQuestionDifficulty,
		PracticeQuestionSubject:     m.PracticeQuestionSubject,
		PracticeQuestionClassLevel:  m.PracticeQuestionClassLevel,
		PracticeQuestionOrderIndex:  m.PracticeQuestionOrderIndex,
		PracticeQuestionIsActive:    m.PracticeQuestionIsActive,
		PracticeQuestionCreatedAt:   m.PracticeQuestionCreatedAt.Format(time.RFC3339),
	}
}

func FromQuestionModels(ms []model.PracticeQuestionModel) []PracticeQuestionResponse {
	out := make([]PracticeQuestionResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromQuestionModel(&ms[i]))
	}
	return out
}

/* =========================
 * Catalog DTO (public browse)
 * ========================= */

type QuestionCatalogGroup struct {
	Category  PracticeCategoryResponse   `json:"category"`
	Questions []PracticeQuestionResponse `json:"questions"`
}
