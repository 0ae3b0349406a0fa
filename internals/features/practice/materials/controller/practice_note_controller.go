// file: internals/features/practice/materials/controller/practice_note_controller.go
package controller

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"latihanku_backend/internals/features/practice/materials/dto"
	"latihanku_backend/internals/features/practice/materials/service"
	helper "latihanku_backend/internals/helpers"
	helperOSS "latihanku_backend/internals/helpers/oss"
)

type PracticeNoteController struct {
	DB   *gorm.DB
	Blob helperOSS.BlobService
}

func NewPracticeNoteController(db *gorm.DB, blob helperOSS.BlobService) *PracticeNoteController {
	return &PracticeNoteController{DB: db, Blob: blob}
}

var notePDFFieldNames = []string{"pdf", "file", "practice_note_pdf"}

var noteThumbFieldNames = []string{"thumbnail", "image", "practice_note_thumbnail"}

// =====================================================
// LIST: GET /api/a/practice/notes?category_id=
// =====================================================

func (ctl *PracticeNoteController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	opts := service.NoteListOpts{
		Limit:  p.Limit,
		Offset: p.Offset,
	}
	if raw := strings.TrimSpace(c.Query("category_id")); raw != "" {
		catID, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "category_id tidak valid")
		}
		opts.CategoryID = &catID
	}

	rows, total, err := service.ListNotes(c.Context(), ctl.DB, opts)
	if err != nil {
		return helper.WriteDBError(c, err)
	}

	return helper.JsonList(c, "Daftar catatan berhasil diambil",
		dto.FromNoteModels(rows),
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// =====================================================
// CREATE: POST /api/a/practice/notes
// =====================================================

func (ctl *PracticeNoteController) Create(c *fiber.Ctx) error {
	draft, ferrs, err := dto.NoteDraftFromRequest(c)
	if err != nil {
		return helper.JsonErrorCode(c, fiber.StatusBadRequest, "REQUIRED_FIELD_MISSING", "Payload tidak valid")
	}

	ferrs = mergeFieldErrors(ferrs, draft.ValidateBatch())

	pdfFH, _ := helperOSS.GetFormFile(c, notePDFFieldNames...)
	thumbFH, _ := helperOSS.GetFormFile(c, noteThumbFieldNames...)

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

	m, err := service.CreateNote(ctx, ctl.DB, ctl.Blob, roleFromLocals(c), draft, service.MaterialFiles{
		PDF:       pdfFH,
		Thumbnail: thumbFH,
	})
	if err != nil {
		return writeServiceError(c, err)
	}

	log.Printf("[PracticeNote] ✅ dibuat: %s (%s)", m.PracticeNoteTitle, m.PracticeNoteID)
	return helper.JsonCreated(c, "Catatan dibuat", dto.FromNoteModel(m))
}

// =====================================================
// UPDATE (PATCH): PATCH /api/a/practice/notes/:id
// =====================================================

func (ctl *PracticeNoteController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	draft, ferrs, err := dto.UpdateNoteDraftFromRequest(c)
	if err != nil {
		return helper.JsonErrorCode(c, fiber.StatusBadRequest, "REQUIRED_FIELD_MISSING", "Payload tidak valid")
	}

	ferrs = mergeFieldErrors(ferrs, draft.ValidateBatch())

	pdfFH, _ := helperOSS.GetFormFile(c, notePDFFieldNames...)
	thumbFH, _ := helperOSS.GetFormFile(c, noteThumbFieldNames...)

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

	m, err := service.UpdateNote(ctx, ctl.DB, ctl.Blob, roleFromLocals(c), id, draft, service.MaterialFiles{
		PDF:       pdfFH,
		Thumbnail: thumbFH,
	})
	if err != nil {
		return writeServiceError(c, err)
	}

	return helper.JsonUpdated(c, "Catatan diperbarui", dto.FromNoteModel(m))
}

// =====================================================
// DELETE: DELETE /api/a/practice/notes/:id (hard delete)
// =====================================================

func (ctl *PracticeNoteController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	m, err := service.DeleteNote(c.Context(), ctl.DB, ctl.Blob, roleFromLocals(c), id)
	if err != nil {
		return writeServiceError(c, err)
	}

	log.Printf("[PracticeNote] 🗑️ dihapus: %s (%s)", m.PracticeNoteTitle, id)
	return helper.JsonDeleted(c, "Catatan dihapus", fiber.Map{"practice_note_id": id})
}
