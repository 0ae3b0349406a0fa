// file: internals/features/practice/materials/controller/practice_question_controller.go
package controller

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"latihanku_backend/internals/features/practice/materials/dto"
	"latihanku_backend/internals/features/practice/materials/service"
	helper "latihanku_backend/internals/helpers"
	helperOSS "latihanku_backend/internals/helpers/oss"
)

type PracticeQuestionController struct {
	DB   *gorm.DB
	Blob helperOSS.BlobService
}

func NewPracticeQuestionController(db *gorm.DB, blob helperOSS.BlobService) *PracticeQuestionController {
	return &PracticeQuestionController{DB: db, Blob: blob}
}

// field form yang dicoba untuk tiap lampiran
var (
	pdfFieldNames   = []string{"pdf", "file", "practice_question_pdf"}
	thumbFieldNames = []string{"thumbnail", "image", "practice_question_thumbnail"}
)

// uploadCtx: upload PDF bisa lama, jangan pakai timeout request pendek.
func uploadCtx(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Context(), 45*time.Second)
}

// =====================================================
// LIST: GET /api/a/practice/questions?category_id=&difficulty=
// Tanpa filter aktif: admin melihat semuanya.
// =====================================================

func (ctl *PracticeQuestionController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	opts := service.QuestionListOpts{
		Difficulty: strings.ToLower(strings.TrimSpace(c.Query("difficulty"))),
		Limit:      p.Limit,
		Offset:     p.Offset,
	}
	if raw := strings.TrimSpace(c.Query("category_id")); raw != "" {
		catID, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "category_id tidak valid")
		}
		opts.CategoryID = &catID
	}

	rows, total, err := service.ListQuestions(c.Context(), ctl.DB, opts)
	if err != nil {
		return helper.WriteDBError(c, err)
	}

	return helper.JsonList(c, "Daftar soal berhasil diambil",
		dto.FromQuestionModels(rows),
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// =====================================================
// CREATE: POST /api/a/practice/questions
// multipart (field + pdf/thumbnail opsional) atau JSON murni.
// Urutan pipeline: validasi batch → otorisasi → resolusi kategori →
// upload → tulis record. Pelanggaran file membuat batch ber-kode
// UPLOAD_REJECTED; selain itu VALIDATION_ERROR.
// =====================================================

func (ctl *PracticeQuestionController) Create(c *fiber.Ctx) error {
	draft, ferrs, err := dto.QuestionDraftFromRequest(c)
	if err != nil {
		return helper.JsonErrorCode(c, fiber.StatusBadRequest, "REQUIRED_FIELD_MISSING", "Payload tidak valid")
	}

	ferrs = mergeFieldErrors(ferrs, draft.ValidateBatch())

	pdfFH, _ := helperOSS.GetFormFile(c, pdfFieldNames...)
	thumbFH, _ := helperOSS.GetFormFile(c, thumbFieldNames...)

	fileViolation := false
	if msgs := dto.CheckPDFUpload(pdfFH); len(msgs) > 0 {
		ferrs = mergeFieldErrors(ferrs, map[string][]string{"pdf": msgs})
		fileViolation = true
	}
	if msgs := dto.CheckThumbnailUpload(thumbFH); len(msgs) > 0 {
		ferrs = mergeFieldErrors(ferrs, map[string][]string{"thumbnail": msgs})
		fileViolation = true
	}

	if len(ferrs) > 0 {
		if fileViolation {
			return helper.JsonUploadRejected(c, ferrs)
		}
		return helper.JsonValidationError(c, ferrs)
	}

	ctx, cancel := uploadCtx(c)
	defer cancel()

	m, err := service.CreateQuestion(ctx, ctl.DB, ctl.Blob, roleFromLocals(c), draft, service.MaterialFiles{
		PDF:       pdfFH,
		Thumbnail: thumbFH,
	})
	if err != nil {
		return writeServiceError(c, err)
	}

	log.Printf("[PracticeQuestion] ✅ dibuat: %s (%s)", m.PracticeQuestionTitle, m.PracticeQuestionID)
	return helper.JsonCreated(c, "Soal dibuat", dto.FromQuestionModel(m))
}

// =====================================================
// UPDATE (PATCH): PATCH /api/a/practice/questions/:id
// Tanpa file pdf baru → pdf_url lama dipertahankan apa adanya.
// =====================================================

func (ctl *PracticeQuestionController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	draft, ferrs, err := dto.UpdateQuestionDraftFromRequest(c)
	if err != nil {
		return helper.JsonErrorCode(c, fiber.StatusBadRequest, "REQUIRED_FIELD_MISSING", "Payload tidak valid")
	}

	ferrs = mergeFieldErrors(ferrs, draft.ValidateBatch())

	pdfFH, _ := helperOSS.GetFormFile(c, pdfFieldNames...)
	thumbFH, _ := helperOSS.GetFormFile(c, thumbFieldNames...)

	fileViolation := false
	if msgs := dto.CheckPDFUpload(pdfFH); len(msgs) > 0 {
		ferrs = mergeFieldErrors(ferrs, map[string][]string{"pdf": msgs})
		fileViolation = true
	}
	if msgs := dto.CheckThumbnailUpload(thumbFH); len(msgs) > 0 {
		ferrs = mergeFieldErrors(ferrs, map[string][]string{"thumbnail": msgs})
		fileViolation = true
	}

	if len(ferrs) > 0 {
		if fileViolation {
			return helper.JsonUploadRejected(c, ferrs)
		}
		return helper.JsonValidationError(c, ferrs)
	}

	ctx, cancel := uploadCtx(c)
	defer cancel()

	m, err := service.UpdateQuestion(ctx, ctl.DB, ctl.Blob, roleFromLocals(c), id, draft, service.MaterialFiles{
		PDF:       pdfFH,
		Thumbnail: thumbFH,
	})
	if err != nil {
		return writeServiceError(c, err)
	}

	return helper.JsonUpdated(c, "Soal diperbarui", dto.FromQuestionModel(m))
}

// =====================================================
// DELETE: DELETE /api/a/practice/questions/:id (hard delete)
// =====================================================

func (ctl *PracticeQuestionController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	m, err := service.DeleteQuestion(c.Context(), ctl.DB, ctl.Blob, roleFromLocals(c), id)
	if err != nil {
		return writeServiceError(c, err)
	}

	log.Printf("[PracticeQuestion] 🗑️ dihapus: %s (%s)", m.PracticeQuestionTitle, id)
	return helper.JsonDeleted(c, "Soal dihapus", fiber.Map{"practice_question_id": id})
}
