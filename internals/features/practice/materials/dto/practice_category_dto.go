// file: internals/features/practice/materials/dto/practice_category_dto.go
package dto

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"latihanku_backend/internals/features/practice/materials/model"
	helper "latihanku_backend/internals/helpers"
)

/* =========================
 * Validator instance
 * ========================= */

var validate = newValidator()

// key error validasi pakai nama json, bukan nama field Go
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

/* =========================
 * Helpers
 * ========================= */

func trimPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}

/* =========================
 * Request DTO
 * ========================= */

// POST /api/a/practice/categories
type CreatePracticeCategoryRequest struct {
	PracticeCategoryName        string  `json:"practice_category_name" form:"practice_category_name" validate:"required,max=100"`
	PracticeCategoryDescription *string `json:"practice_category_description" form:"practice_category_description" validate:"omitempty,max=1000"`
	PracticeCategoryIcon        *string `json:"practice_category_icon" form:"practice_category_icon" validate:"omitempty,max=16"`
	PracticeCategoryOrderIndex  *int    `json:"practice_category_order_index" form:"practice_category_order_index"`
}

func (r *CreatePracticeCategoryRequest) Normalize() {
	r.PracticeCategoryName = strings.TrimSpace(r.PracticeCategoryName)
	r.PracticeCategoryDescription = trimPtr(r.PracticeCategoryDescription)
	r.PracticeCategoryIcon = trimPtr(r.PracticeCategoryIcon)
}

// Semua pelanggaran sekaligus, bukan fail-fast.
func (r *CreatePracticeCategoryRequest) ValidateBatch() map[string][]string {
	if err := validate.Struct(r); err != nil {
		return helper.ValidationErrorsToMap(err)
	}
	return nil
}

func (r *CreatePracticeCategoryRequest) ToModel() *model.PracticeCategoryModel {
	m := &model.PracticeCategoryModel{
		PracticeCategoryName:        r.PracticeCategoryName,
		PracticeCategoryDescription: r.PracticeCategoryDescription,
		PracticeCategoryIsActive:    true,
	}
	if r.PracticeCategoryIcon != nil {
		m.PracticeCategoryIcon = *r.PracticeCategoryIcon
	}
	if r.PracticeCategoryOrderIndex != nil {
		m.PracticeCategoryOrderIndex = *r.PracticeCategoryOrderIndex
	}
	return m
}

// PATCH /api/a/practice/categories/:id (partial)
// is_active sengaja tidak di-expose: flag aktif write-once saat create.
type UpdatePracticeCategoryRequest struct {
	PracticeCategoryName        *string `json:"practice_category_name" form:"practice_category_name" validate:"omitempty,max=100"`
	PracticeCategoryDescription *string `json:"practice_category_description" form:"practice_category_description" validate:"omitempty,max=1000"`
	PracticeCategoryIcon        *string `json:"practice_category_icon" form:"practice_category_icon" validate:"omitempty,max=16"`
	PracticeCategoryOrderIndex  *int    `json:"practice_category_order_index" form:"practice_category_order_index"`
}

func (r *UpdatePracticeCategoryRequest) Normalize() {
	if r.PracticeCategoryName != nil {
		v := strings.TrimSpace(*r.PracticeCategoryName)
		r.PracticeCategoryName = &v
	}
	r.PracticeCategoryDescription = trimPtr(r.PracticeCategoryDescription)
	r.PracticeCategoryIcon = trimPtr(r.PracticeCategoryIcon)
}

func (r *UpdatePracticeCategoryRequest) ValidateBatch() map[string][]string {
	errs := map[string][]string{}
	if err := validate.Struct(r); err != nil {
		errs = helper.ValidationErrorsToMap(err)
	}
	// nama boleh tidak dikirim, tapi kalau dikirim tidak boleh kosong
	if r.PracticeCategoryName != nil && *r.PracticeCategoryName == "" {
		errs["practice_category_name"] = append(errs["practice_category_name"], "tidak boleh kosong")
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ApplyToModel: hanya timpa field yang != nil
func (r *UpdatePracticeCategoryRequest) ApplyToModel(m *model.PracticeCategoryModel) {
	if r.PracticeCategoryName != nil {
		m.PracticeCategoryName = *r.PracticeCategoryName
	}
	if r.PracticeCategoryDescription != nil {
		m.PracticeCategoryDescription = r.PracticeCategoryDescription
	}
	if r.PracticeCategoryIcon != nil {
		m.PracticeCategoryIcon = *r.PracticeCategoryIcon
	}
	if r.PracticeCategoryOrderIndex != nil {
		m.PracticeCategoryOrderIndex = *r.PracticeCategoryOrderIndex
	}
}

/* =========================
 * Response DTO
 * ========================= */

type PracticeCategoryResponse struct {
	PracticeCategoryID          uuid.UUID `json:"practice_category_id"`
	PracticeCategoryName        string    `json:"practice_category_name"`
	PracticeCategoryDescription *string   `json:"practice_category_description,omitempty"`
	PracticeCategoryIcon        string    `json:"practice_category_icon"`
	PracticeCategoryOrderIndex  int       `json:"practice_category_order_index"`
	PracticeCategoryIsActive    bool      `json:"practice_category_is_active"`
	PracticeCategoryCreatedAt   string    `json:"practice_category_created_at"`
}

func FromCategoryModel(m *model.PracticeCategoryModel) PracticeCategoryResponse {
	return PracticeCategoryResponse{
		PracticeCategoryID:          m.PracticeCategoryID,
		PracticeCategoryName:        m.PracticeCategoryName,
		PracticeCategoryDescription: m.PracticeCategoryDescription,
		PracticeCategoryIcon:        m.PracticeCategoryIcon,
		PracticeCategoryOrderIndex:  m.PracticeCategoryOrderIndex,
		PracticeCategoryIsActive:    m.PracticeCategoryIsActive,
		PracticeCategoryCreatedAt:   m.PracticeCategoryCreatedAt.Format(time.RFC3339),
	}
}

func FromCategoryModels(ms []model.PracticeCategoryModel) []PracticeCategoryResponse {
	out := make([]PracticeCategoryResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromCategoryModel(&ms[i]))
	}
	return out
}
