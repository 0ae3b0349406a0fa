package dto

import (
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"latihanku_backend/internals/features/practice/materials/model"
)

func strPtr(s string) *string { return &s }

// fileHeader bikin FileHeader sintetis untuk pemeriksaan metadata
// (size/ekstensi/header). Isi file tidak bisa dibuka → sniff dilewati.
func fileHeader(name string, size int64, contentType string) *multipart.FileHeader {
	h := textproto.MIMEHeader{}
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	return &multipart.FileHeader{
		Filename: name,
		Size:     size,
		Header:   h,
	}
}

// Validasi batch harus mengumpulkan SEMUA pelanggaran, bukan berhenti
// di pelanggaran pertama.
func TestQuestionDraftValidateBatch_CollectsAllViolations(t *testing.T) {
	longDesc := strings.Repeat("x", 1001)
	d := &QuestionDraft{
		PracticeQuestionTitle:       "",
		PracticeQuestionDescription: &longDesc,
		PracticeQuestionDifficulty:  "impossible",
	}
	d.Normalize()

	errs := d.ValidateBatch()
	require.NotEmpty(t, errs)
	assert.Contains(t, errs, "practice_question_title")
	assert.Contains(t, errs, "practice_question_description")
	assert.Contains(t, errs, "practice_question_difficulty")
}

func TestQuestionDraftValidateBatch_TitleTooLong(t *testing.T) {
	d := &QuestionDraft{PracticeQuestionTitle: strings.Repeat("a", 256)}
	d.Normalize()

	errs := d.ValidateBatch()
	require.Contains(t, errs, "practice_question_title")
}

func TestQuestionDraftValidateBatch_ValidDraftPasses(t *testing.T) {
	d := &QuestionDraft{
		PracticeQuestionTitle:      "Algebra Basics",
		PracticeQuestionDifficulty: "easy",
		PracticeQuestionSubject:    strPtr("Math"),
		PracticeQuestionClassLevel: strPtr("9"),
	}
	d.Normalize()

	assert.Nil(t, d.ValidateBatch())
}

func TestQuestionDraftNormalize_TrimsAndLowercases(t *testing.T) {
	d := &QuestionDraft{
		PracticeQuestionTitle:      "  Aljabar Dasar  ",
		PracticeQuestionDifficulty: " EASY ",
		PracticeQuestionSubject:    strPtr("   "),
	}
	d.Normalize()

	assert.Equal(t, "Aljabar Dasar", d.PracticeQuestionTitle)
	assert.Equal(t, "easy", d.PracticeQuestionDifficulty)
	assert.Nil(t, d.PracticeQuestionSubject, "subject spasi doang dianggap tidak dikirim")
}

func TestQuestionDraftToModel_ActiveByDefault(t *testing.T) {
	d := &QuestionDraft{PracticeQuestionTitle: "Trigonometri"}
	m := d.ToModel()

	assert.True(t, m.PracticeQuestionIsActive)
	assert.Equal(t, "Trigonometri", m.PracticeQuestionTitle)
	assert.Nil(t, m.PracticeQuestionPDFURL)
}

// PATCH: title boleh tidak dikirim, tapi kalau dikirim kosong harus ditolak.
func TestUpdateQuestionDraftValidateBatch_SentEmptyTitle(t *testing.T) {
	d := &UpdateQuestionDraft{PracticeQuestionTitle: strPtr("   ")}
	d.Normalize()

	errs := d.ValidateBatch()
	require.Contains(t, errs, "practice_question_title")

	// tidak dikirim sama sekali → tidak ada pelanggaran
	d2 := &UpdateQuestionDraft{}
	d2.Normalize()
	assert.Nil(t, d2.ValidateBatch())
}

// ApplyToModel hanya menimpa field yang dikirim; pdf_url tidak disentuh.
func TestUpdateQuestionDraftApplyToModel_PartialOverwrite(t *testing.T) {
	pdfURL := "https://cdn.example.com/practice/questions/lama.pdf"
	m := &model.PracticeQuestionModel{
		PracticeQuestionTitle:      "Judul Lama",
		PracticeQuestionDifficulty: "hard",
		PracticeQuestionPDFURL:     &pdfURL,
		PracticeQuestionOrderIndex: 7,
	}

	d := &UpdateQuestionDraft{PracticeQuestionTitle: strPtr("Judul Baru")}
	d.Normalize()
	d.ApplyToModel(m)

	assert.Equal(t, "Judul Baru", m.PracticeQuestionTitle)
	assert.Equal(t, "hard", m.PracticeQuestionDifficulty)
	assert.Equal(t, 7, m.PracticeQuestionOrderIndex)
	require.NotNil(t, m.PracticeQuestionPDFURL)
	assert.Equal(t, pdfURL, *m.PracticeQuestionPDFURL)
}

func TestCreateCategoryRequestValidateBatch(t *testing.T) {
	r := &CreatePracticeCategoryRequest{PracticeCategoryName: "  "}
	r.Normalize()
	require.Contains(t, r.ValidateBatch(), "practice_category_name")

	r2 := &CreatePracticeCategoryRequest{PracticeCategoryName: strings.Repeat("n", 101)}
	r2.Normalize()
	require.Contains(t, r2.ValidateBatch(), "practice_category_name")

	r3 := &CreatePracticeCategoryRequest{PracticeCategoryName: "Question Papers"}
	r3.Normalize()
	assert.Nil(t, r3.ValidateBatch())
}

func TestUpdateCategoryRequest_SentEmptyNameRejected(t *testing.T) {
	r := &UpdatePracticeCategoryRequest{PracticeCategoryName: strPtr("")}
	r.Normalize()
	require.Contains(t, r.ValidateBatch(), "practice_category_name")
}

/* =========================
 * Pemeriksaan file upload
 * ========================= */

func TestCheckPDFUpload_NilPasses(t *testing.T) {
	assert.Nil(t, CheckPDFUpload(nil))
}

func TestCheckPDFUpload_Oversize(t *testing.T) {
	fh := fileHeader("soal.pdf", 10*1024*1024+1, "application/pdf")
	msgs := CheckPDFUpload(fh)
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "maksimal 10MB")
}

func TestCheckPDFUpload_WrongExtension(t *testing.T) {
	fh := fileHeader("catatan.txt", 100, "application/pdf")
	msgs := CheckPDFUpload(fh)
	require.NotEmpty(t, msgs)
	assert.Contains(t, msgs[0], ".pdf")
}

func TestCheckPDFUpload_WrongDeclaredContentType(t *testing.T) {
	fh := fileHeader("soal.pdf", 100, "text/plain; charset=utf-8")
	msgs := CheckPDFUpload(fh)
	require.NotEmpty(t, msgs)
	assert.Contains(t, msgs[0], "application/pdf")
}

// Satu file bisa melanggar beberapa aturan sekaligus; semua pesan terkumpul.
func TestCheckPDFUpload_AccumulatesViolations(t *testing.T) {
	fh := fileHeader("gambar.png", 11*1024*1024, "image/png")
	msgs := CheckPDFUpload(fh)
	assert.GreaterOrEqual(t, len(msgs), 3)
}

func TestCheckPDFUpload_ValidHeaderPasses(t *testing.T) {
	fh := fileHeader("soal.pdf", 5*1024*1024, "application/pdf")
	assert.Nil(t, CheckPDFUpload(fh))
}

func TestCheckThumbnailUpload(t *testing.T) {
	assert.Nil(t, CheckThumbnailUpload(nil))

	oversize := fileHeader("thumb.png", 5*1024*1024+1, "image/png")
	require.NotEmpty(t, CheckThumbnailUpload(oversize))

	wrongExt := fileHeader("thumb.pdf", 100, "application/pdf")
	require.NotEmpty(t, CheckThumbnailUpload(wrongExt))

	ok := fileHeader("thumb.jpg", 100, "image/jpeg")
	assert.Nil(t, CheckThumbnailUpload(ok))
}
