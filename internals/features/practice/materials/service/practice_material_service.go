// file: internals/features/practice/materials/service/practice_material_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"latihanku_backend/internals/constants"
	"latihanku_backend/internals/features/practice/materials/dto"
	"latihanku_backend/internals/features/practice/materials/model"
	helperOSS "latihanku_backend/internals/helpers/oss"
)

// Direktori objek per jenis materi.
const (
	QuestionUploadDir = "practice/questions"
	NoteUploadDir     = "practice/notes"
)

// MaterialFiles membungkus lampiran multipart opsional dari form admin.
type MaterialFiles struct {
	PDF       *multipart.FileHeader
	Thumbnail *multipart.FileHeader
}

/* =========================================================
   Upload helpers
========================================================= */

func classifyUploadError(err error) error {
	switch {
	case err == nil:
		return nil
	case helperOSS.IsObjectCollision(err):
		return fmt.Errorf("%w: %v", ErrUploadCollision, err)
	case errors.Is(err, helperOSS.ErrNotAnImage):
		return fmt.Errorf("%w: %v", ErrThumbnailRejected, err)
	case helperOSS.IsStorageUnavailable(err):
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	default:
		return err
	}
}

// uploadMaterialFiles menjalankan langkah upload pipeline: PDF apa adanya,
// thumbnail di-encode WebP. Dipanggil SETELAH otorisasi dan resolusi
// kategori beres.
func uploadMaterialFiles(ctx context.Context, blob helperOSS.BlobService, dir string, files MaterialFiles) (pdfURL, thumbURL *string, err error) {
	if blob == nil {
		if files.PDF != nil || files.Thumbnail != nil {
			return nil, nil, fmt.Errorf("%w: blob service belum dikonfigurasi", ErrStorageUnavailable)
		}
		return nil, nil, nil
	}

	if files.PDF != nil {
		url, ct, upErr := blob.UploadPDF(ctx, dir, files.PDF)
		if upErr != nil {
			return nil, nil, classifyUploadError(upErr)
		}
		if ct != "" && ct != constants.MIMEApplicationPDF {
			log.Printf("[uploadMaterialFiles] ⚠️ content-type hasil upload %q bukan %s", ct, constants.MIMEApplicationPDF)
		}
		pdfURL = &url
	}

	if files.Thumbnail != nil {
		url, upErr := blob.UploadThumbnail(ctx, dir, files.Thumbnail)
		if upErr != nil {
			return nil, nil, classifyUploadError(upErr)
		}
		thumbURL = &url
	}

	return pdfURL, thumbURL, nil
}

// moveAsideOldObject menyingkirkan objek lama best-effort; tidak pernah
// menggagalkan tulis record.
func moveAsideOldObject(ctx context.Context, blob helperOSS.BlobService, oldURL *string) {
	if oldURL == nil || *oldURL == "" {
		return
	}
	if spamURL, err := blob.MoveToSpam(ctx, *oldURL); err != nil {
		log.Printf("[moveAsideOldObject] ⚠️ gagal memindahkan objek lama %s: %v", *oldURL, err)
	} else {
		log.Printf("[moveAsideOldObject] objek lama dipindah ke %s", spamURL)
	}
}

// deleteObjectBestEffort menghapus objek storage saat record dihapus.
func deleteObjectBestEffort(ctx context.Context, blob helperOSS.BlobService, url *string) {
	if blob == nil || url == nil || *url == "" {
		return
	}
	if err := blob.DeleteByPublicURL(ctx, *url); err != nil {
		log.Printf("[deleteObjectBestEffort] ⚠️ gagal hapus objek %s: %v", *url, err)
	}
}

/* =========================================================
   Questions
========================================================= */

// CreateQuestion menjalankan pipeline submit untuk soal:
// otorisasi → resolusi kategori (kalau kosong) → upload → tulis record.
// Validasi batch sudah dikerjakan controller sebelum sampai sini.
func CreateQuestion(ctx context.Context, db *gorm.DB, blob helperOSS.BlobService, role string, d *dto.QuestionDraft, files MaterialFiles) (*model.PracticeQuestionModel, error) {
	if role != constants.RoleAdmin {
		return nil, ErrForbidden
	}

	m := d.ToModel()
	if m.PracticeQuestionCategoryID == uuid.Nil {
		catID, err := ResolveDefaultCategory(ctx, db)
		if err != nil {
			return nil, err
		}
		m.PracticeQuestionCategoryID = catID
	}

	pdfURL, thumbURL, err := uploadMaterialFiles(ctx, blob, QuestionUploadDir, files)
	if err != nil {
		return nil, err
	}
	if pdfURL != nil {
		m.PracticeQuestionPDFURL = pdfURL
	}
	if thumbURL != nil {
		m.PracticeQuestionThumbnail = thumbURL
	}

	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

// UpdateQuestion: PATCH parsial. File PDF baru menggantikan URL lama
// (objek lama disingkirkan best-effort); tanpa file, pdf_url tidak berubah.
func UpdateQuestion(ctx context.Context, db *gorm.DB, blob helperOSS.BlobService, role string, id uuid.UUID, d *dto.UpdateQuestionDraft, files MaterialFiles) (*model.PracticeQuestionModel, error) {
	if role != constants.RoleAdmin {
		return nil, ErrForbidden
	}

	var m model.PracticeQuestionModel
	if err := db.WithContext(ctx).
		Where("practice_question_id = ?", id).
		First(&m).Error; err != nil {
		return nil, err
	}

	d.ApplyToModel(&m)
	if m.PracticeQuestionCategoryID == uuid.Nil {
		catID, err := ResolveDefaultCategory(ctx, db)
		if err != nil {
			return nil, err
		}
		m.PracticeQuestionCategoryID = catID
	}

	oldPDF := m.PracticeQuestionPDFURL
	oldThumb := m.PracticeQuestionThumbnail

	pdfURL, thumbURL, err := uploadMaterialFiles(ctx, blob, QuestionUploadDir, files)
	if err != nil {
		return nil, err
	}
	if pdfURL != nil {
		m.PracticeQuestionPDFURL = pdfURL
		moveAsideOldObject(ctx, blob, oldPDF)
	}
	if thumbURL != nil {
		m.PracticeQuestionThumbnail = thumbURL
		moveAsideOldObject(ctx, blob, oldThumb)
	}

	if err := db.WithContext(ctx).Save(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// DeleteQuestion: hard delete + bersihkan objek storage best-effort.
func DeleteQuestion(ctx context.Context, db *gorm.DB, blob helperOSS.BlobService, role string, id uuid.UUID) (*model.PracticeQuestionModel, error) {
	if role != constants.RoleAdmin {
		return nil, ErrForbidden
	}

	var m model.PracticeQuestionModel
	if err := db.WithContext(ctx).
		Where("practice_question_id = ?", id).
		First(&m).Error; err != nil {
		return nil, err
	}

	if err := db.WithContext(ctx).Delete(&m).Error; err != nil {
		return nil, err
	}

	deleteObjectBestEffort(ctx, blob, m.PracticeQuestionPDFURL)
	deleteObjectBestEffort(ctx, blob, m.PracticeQuestionThumbnail)
	return &m, nil
}

// QuestionListOpts: filter list admin; ActiveOnly untuk permukaan publik.
type QuestionListOpts struct {
	CategoryID *uuid.UUID
	Difficulty string
	ActiveOnly bool
	Limit      int
	Offset     int
}

func ListQuestions(ctx context.Context, db *gorm.DB, opts QuestionListOpts) ([]model.PracticeQuestionModel, int64, error) {
	tx := db.WithContext(ctx).Model(&model.PracticeQuestionModel{})
	if opts.ActiveOnly {
		tx = tx.Where("practice_question_is_active = ?", true)
	}
	if opts.CategoryID != nil {
		tx = tx.Where("practice_question_category_id = ?", *opts.CategoryID)
	}
	if opts.Difficulty != "" {
		tx = tx.Where("practice_question_difficulty = ?", opts.Difficulty)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	tx = tx.Order("practice_question_order_index ASC")
	if opts.Limit > 0 {
		tx = tx.Limit(opts.Limit).Offset(opts.Offset)
	}

	var rows []model.PracticeQuestionModel
	if err := tx.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

/* =========================================================
   Notes
========================================================= */

func CreateNote(ctx context.Context, db *gorm.DB, blob helperOSS.BlobService, role string, d *dto.NoteDraft, files MaterialFiles) (*model.PracticeNoteModel, error) {
	if role != constants.RoleAdmin {
		return nil, ErrForbidden
	}

	m := d.ToModel()
	if m.PracticeNoteCategoryID == uuid.Nil {
		catID, err := ResolveDefaultCategory(ctx, db)
		if err != nil {
			return nil, err
		}
		m.PracticeNoteCategoryID = catID
	}

	pdfURL, thumbURL, err := uploadMaterialFiles(ctx, blob, NoteUploadDir, files)
	if err != nil {
		return nil, err
	}
	if pdfURL != nil {
		m.PracticeNotePDFURL = pdfURL
	}
	if thumbURL != nil {
		m.PracticeNoteThumbnail = thumbURL
	}

	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

func UpdateNote(ctx context.Context, db *gorm.DB, blob helperOSS.BlobService, role string, id uuid.UUID, d *dto.UpdateNoteDraft, files MaterialFiles) (*model.PracticeNoteModel, error) {
	if role != constants.RoleAdmin {
		return nil, ErrForbidden
	}

	var m model.PracticeNoteModel
	if err := db.WithContext(ctx).
		Where("practice_note_id = ?", id).
		First(&m).Error; err != nil {
		return nil, err
	}

	d.ApplyToModel(&m)
	if m.PracticeNoteCategoryID == uuid.Nil {
		catID, err := ResolveDefaultCategory(ctx, db)
		if err != nil {
			return nil, err
		}
		m.PracticeNoteCategoryID = catID
	}

	oldPDF := m.PracticeNotePDFURL
	oldThumb := m.PracticeNoteThumbnail

	pdfURL, thumbURL, err := uploadMaterialFiles(ctx, blob, NoteUploadDir, files)
	if err != nil {
		return nil, err
	}
	if pdfURL != nil {
		m.PracticeNotePDFURL = pdfURL
		moveAsideOldObject(ctx, blob, oldPDF)
	}
	if thumbURL != nil {
		m.PracticeNoteThumbnail = thumbURL
		moveAsideOldObject(ctx, blob, oldThumb)
	}

	if err := db.WithContext(ctx).Save(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func DeleteNote(ctx context.Context, db *gorm.DB, blob helperOSS.BlobService, role string, id uuid.UUID) (*model.PracticeNoteModel, error) {
	if role != constants.RoleAdmin {
		return nil, ErrForbidden
	}

	var m model.PracticeNoteModel
	if err := db.WithContext(ctx).
		Where("practice_note_id = ?", id).
		First(&m).Error; err != nil {
		return nil, err
	}

	if err := db.WithContext(ctx).Delete(&m).Error; err != nil {
		return nil, err
	}

	deleteObjectBestEffort(ctx, blob, m.PracticeNotePDFURL)
	deleteObjectBestEffort(ctx, blob, m.PracticeNoteThumbnail)
	return &m, nil
}

// NoteListOpts: filter list catatan.
type NoteListOpts struct {
	CategoryID *uuid.UUID
	ActiveOnly bool
	Limit      int
	Offset     int
}

func ListNotes(ctx context.Context, db *gorm.DB, opts NoteListOpts) ([]model.PracticeNoteModel, int64, error) {
	tx := db.WithContext(ctx).Model(&model.PracticeNoteModel{})
	if opts.ActiveOnly {
		tx = tx.Where("practice_note_is_active = ?", true)
	}
	if opts.CategoryID != nil {
		tx = tx.Where("practice_note_category_id = ?", *opts.CategoryID)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	tx = tx.Order("practice_note_order_index ASC")
	if opts.Limit > 0 {
		tx = tx.Limit(opts.Limit).Offset(opts.Offset)
	}

	var rows []model.PracticeNoteModel
	if err := tx.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
