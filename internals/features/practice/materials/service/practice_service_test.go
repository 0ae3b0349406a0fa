package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"latihanku_backend/internals/constants"
	database "latihanku_backend/internals/databases"
	"latihanku_backend/internals/features/practice/materials/dto"
	"latihanku_backend/internals/features/practice/materials/model"
	helperOSS "latihanku_backend/internals/helpers/oss"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "practice.db") + "?_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func seedCategory(t *testing.T, db *gorm.DB, name string, orderIndex int, active bool) *model.PracticeCategoryModel {
	t.Helper()
	m := &model.PracticeCategoryModel{
		PracticeCategoryName:       name,
		PracticeCategoryOrderIndex: orderIndex,
		PracticeCategoryIsActive:   true,
	}
	require.NoError(t, db.Create(m).Error)
	if !active {
		// kolom punya default true, nonaktif harus lewat update eksplisit
		require.NoError(t, db.Model(m).Update("practice_category_is_active", false).Error)
		m.PracticeCategoryIsActive = false
	}
	return m
}

func attachment(name string) *multipart.FileHeader {
	h := textproto.MIMEHeader{}
	h.Set("Content-Type", "application/pdf")
	return &multipart.FileHeader{Filename: name, Size: 1024, Header: h}
}

// countingBlob menghitung sentuhan storage per operasi.
type countingBlob struct {
	pdfUploads   int
	thumbUploads int
	deletes      []string
	spammed      []string
	pdfURL       string
	thumbURL     string
}

func (cb *countingBlob) mock() *helperOSS.MockBlobService {
	return &helperOSS.MockBlobService{
		UploadPDFFn: func(ctx context.Context, dir string, fh *multipart.FileHeader) (string, string, error) {
			cb.pdfUploads++
			return cb.pdfURL, "application/pdf", nil
		},
		UploadThumbnailFn: func(ctx context.Context, dir string, fh *multipart.FileHeader) (string, error) {
			cb.thumbUploads++
			return cb.thumbURL, nil
		},
		DeleteByPublicURLFn: func(ctx context.Context, publicURL string) error {
			cb.deletes = append(cb.deletes, publicURL)
			return nil
		},
		MoveToSpamFn: func(ctx context.Context, publicURL string) (string, error) {
			cb.spammed = append(cb.spammed, publicURL)
			return "https://cdn.example.com/spam/" + publicURL, nil
		},
	}
}

/* =========================================================
   Bootstrap & resolusi kategori
========================================================= */

func TestEnsureDefaultCategories_IdempotentExactlyFour(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, EnsureDefaultCategories(ctx, db))
	require.NoError(t, EnsureDefaultCategories(ctx, db))

	var total int64
	require.NoError(t, db.Model(&model.PracticeCategoryModel{}).Count(&total).Error)
	assert.EqualValues(t, 4, total)

	first, err := firstCategoryByOrder(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, "Question Papers", first.PracticeCategoryName)
	assert.True(t, first.PracticeCategoryIsActive)
}

func TestResolveDefaultCategory_PicksFirstByOrderIndex(t *testing.T) {
	db := setupTestDB(t)
	seedCategory(t, db, "Belakangan", 5, true)
	wanted := seedCategory(t, db, "Terdepan", 1, true)

	got, err := ResolveDefaultCategory(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, wanted.PracticeCategoryID, got)
}

func TestResolveDefaultCategory_BootstrapsWhenEmpty(t *testing.T) {
	db := setupTestDB(t)

	got, err := ResolveDefaultCategory(context.Background(), db)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got)

	var total int64
	require.NoError(t, db.Model(&model.PracticeCategoryModel{}).Count(&total).Error)
	assert.EqualValues(t, 4, total)
}

func TestResolveDefaultCategory_WrapsFailure(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Migrator().DropTable(&model.PracticeCategoryModel{}))

	_, err := ResolveDefaultCategory(context.Background(), db)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCategoryResolution))
}

/* =========================================================
   Pipeline submit soal
========================================================= */

func TestCreateQuestion_ResolvesEmptyCategoryToFirst(t *testing.T) {
	db := setupTestDB(t)
	seedCategory(t, db, "Nomor Dua", 2, true)
	first := seedCategory(t, db, "Nomor Satu", 1, true)

	d := &dto.QuestionDraft{PracticeQuestionTitle: "Soal tanpa kategori"}
	m, err := CreateQuestion(context.Background(), db, nil, constants.RoleAdmin, d, MaterialFiles{})
	require.NoError(t, err)
	assert.Equal(t, first.PracticeCategoryID, m.PracticeQuestionCategoryID)
	assert.Equal(t, model.DifficultyMedium, m.PracticeQuestionDifficulty, "difficulty kosong default medium")
}

func TestCreateQuestion_BootstrapsDefaultsWhenNoCategories(t *testing.T) {
	db := setupTestDB(t)

	d := &dto.QuestionDraft{PracticeQuestionTitle: "Soal pertama"}
	m, err := CreateQuestion(context.Background(), db, nil, constants.RoleAdmin, d, MaterialFiles{})
	require.NoError(t, err)

	var cats int64
	require.NoError(t, db.Model(&model.PracticeCategoryModel{}).Count(&cats).Error)
	assert.EqualValues(t, 4, cats)

	var first model.PracticeCategoryModel
	require.NoError(t, db.Order("practice_category_order_index ASC").First(&first).Error)
	assert.Equal(t, first.PracticeCategoryID, m.PracticeQuestionCategoryID)
}

func TestCreateQuestion_ForbiddenForStudent_NoWriteNoStorage(t *testing.T) {
	db := setupTestDB(t)
	cb := &countingBlob{pdfURL: "https://cdn.example.com/q.pdf"}

	d := &dto.QuestionDraft{PracticeQuestionTitle: "Soal siswa"}
	_, err := CreateQuestion(context.Background(), db, cb.mock(), constants.RoleStudent, d, MaterialFiles{PDF: attachment("soal.pdf")})
	require.ErrorIs(t, err, ErrForbidden)

	var total int64
	require.NoError(t, db.Model(&model.PracticeQuestionModel{}).Count(&total).Error)
	assert.Zero(t, total)
	assert.Zero(t, cb.pdfUploads, "storage tidak boleh tersentuh")

	// kategori juga tidak boleh ikut ter-bootstrap oleh caller non-admin
	var cats int64
	require.NoError(t, db.Model(&model.PracticeCategoryModel{}).Count(&cats).Error)
	assert.Zero(t, cats)
}

func TestUpdateQuestion_ForbiddenForStudent_RowUntouched(t *testing.T) {
	db := setupTestDB(t)
	cat := seedCategory(t, db, "Utama", 1, true)
	q := &model.PracticeQuestionModel{
		PracticeQuestionCategoryID: cat.PracticeCategoryID,
		PracticeQuestionTitle:      "Judul Asli",
	}
	require.NoError(t, db.Create(q).Error)

	newTitle := "Diubah Siswa"
	_, err := UpdateQuestion(context.Background(), db, nil, constants.RoleStudent, q.PracticeQuestionID,
		&dto.UpdateQuestionDraft{PracticeQuestionTitle: &newTitle}, MaterialFiles{})
	require.ErrorIs(t, err, ErrForbidden)

	var got model.PracticeQuestionModel
	require.NoError(t, db.First(&got, "practice_question_id = ?", q.PracticeQuestionID).Error)
	assert.Equal(t, "Judul Asli", got.PracticeQuestionTitle)
}

func TestCreateQuestion_UploadsAndStoresURLs(t *testing.T) {
	db := setupTestDB(t)
	seedCategory(t, db, "Utama", 1, true)
	cb := &countingBlob{
		pdfURL:   "https://cdn.example.com/practice/questions/aljabar.pdf",
		thumbURL: "https://cdn.example.com/practice/questions/aljabar.webp",
	}

	d := &dto.QuestionDraft{PracticeQuestionTitle: "Aljabar", PracticeQuestionDifficulty: "easy"}
	m, err := CreateQuestion(context.Background(), db, cb.mock(), constants.RoleAdmin, d, MaterialFiles{
		PDF:       attachment("aljabar.pdf"),
		Thumbnail: attachment("aljabar.png"),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, cb.pdfUploads)
	assert.Equal(t, 1, cb.thumbUploads)
	require.NotNil(t, m.PracticeQuestionPDFURL)
	assert.Equal(t, cb.pdfURL, *m.PracticeQuestionPDFURL)
	require.NotNil(t, m.PracticeQuestionThumbnail)
	assert.Equal(t, cb.thumbURL, *m.PracticeQuestionThumbnail)
}

func TestCreateQuestion_StorageUnavailableWhenBlobMissing(t *testing.T) {
	db := setupTestDB(t)
	seedCategory(t, db, "Utama", 1, true)

	d := &dto.QuestionDraft{PracticeQuestionTitle: "Tanpa storage"}
	_, err := CreateQuestion(context.Background(), db, nil, constants.RoleAdmin, d, MaterialFiles{PDF: attachment("x.pdf")})
	require.ErrorIs(t, err, ErrStorageUnavailable)

	var total int64
	require.NoError(t, db.Model(&model.PracticeQuestionModel{}).Count(&total).Error)
	assert.Zero(t, total, "gagal upload tidak boleh meninggalkan record")
}

func TestCreateQuestion_ThumbnailDecodeFailureClassified(t *testing.T) {
	db := setupTestDB(t)
	seedCategory(t, db, "Utama", 1, true)

	blob := &helperOSS.MockBlobService{
		UploadThumbnailFn: func(ctx context.Context, dir string, fh *multipart.FileHeader) (string, error) {
			return "", fmt.Errorf("%w: decode png gagal", helperOSS.ErrNotAnImage)
		},
	}

	d := &dto.QuestionDraft{PracticeQuestionTitle: "Thumbnail rusak"}
	_, err := CreateQuestion(context.Background(), db, blob, constants.RoleAdmin, d, MaterialFiles{Thumbnail: attachment("rusak.png")})
	require.ErrorIs(t, err, ErrThumbnailRejected)
}

func TestUpdateQuestion_KeepsPDFURLWithoutNewFile(t *testing.T) {
	db := setupTestDB(t)
	cat := seedCategory(t, db, "Utama", 1, true)
	oldURL := "https://cdn.example.com/practice/questions/lama.pdf"
	q := &model.PracticeQuestionModel{
		PracticeQuestionCategoryID: cat.PracticeCategoryID,
		PracticeQuestionTitle:      "Judul Lama",
		PracticeQuestionPDFURL:     &oldURL,
	}
	require.NoError(t, db.Create(q).Error)

	newTitle := "Judul Baru"
	m, err := UpdateQuestion(context.Background(), db, nil, constants.RoleAdmin, q.PracticeQuestionID,
		&dto.UpdateQuestionDraft{PracticeQuestionTitle: &newTitle}, MaterialFiles{})
	require.NoError(t, err)

	assert.Equal(t, "Judul Baru", m.PracticeQuestionTitle)
	require.NotNil(t, m.PracticeQuestionPDFURL)
	assert.Equal(t, oldURL, *m.PracticeQuestionPDFURL, "tanpa file baru pdf_url harus utuh")
}

func TestUpdateQuestion_NewPDFReplacesAndMovesOldAside(t *testing.T) {
	db := setupTestDB(t)
	cat := seedCategory(t, db, "Utama", 1, true)
	oldURL := "https://cdn.example.com/practice/questions/lama.pdf"
	q := &model.PracticeQuestionModel{
		PracticeQuestionCategoryID: cat.PracticeCategoryID,
		PracticeQuestionTitle:      "Soal",
		PracticeQuestionPDFURL:     &oldURL,
	}
	require.NoError(t, db.Create(q).Error)

	cb := &countingBlob{pdfURL: "https://cdn.example.com/practice/questions/baru.pdf"}
	m, err := UpdateQuestion(context.Background(), db, cb.mock(), constants.RoleAdmin, q.PracticeQuestionID,
		&dto.UpdateQuestionDraft{}, MaterialFiles{PDF: attachment("baru.pdf")})
	require.NoError(t, err)

	require.NotNil(t, m.PracticeQuestionPDFURL)
	assert.Equal(t, cb.pdfURL, *m.PracticeQuestionPDFURL)
	assert.Equal(t, []string{oldURL}, cb.spammed, "objek lama disingkirkan best-effort")
}

func TestDeleteQuestion_LeavesNotesIntact(t *testing.T) {
	db := setupTestDB(t)
	cat := seedCategory(t, db, "Utama", 1, true)

	pdfURL := "https://cdn.example.com/practice/questions/hapus.pdf"
	q := &model.PracticeQuestionModel{
		PracticeQuestionCategoryID: cat.PracticeCategoryID,
		PracticeQuestionTitle:      "Soal dihapus",
		PracticeQuestionPDFURL:     &pdfURL,
	}
	require.NoError(t, db.Create(q).Error)
	n := &model.PracticeNoteModel{
		PracticeNoteCategoryID: cat.PracticeCategoryID,
		PracticeNoteTitle:      "Catatan selamat",
	}
	require.NoError(t, db.Create(n).Error)

	cb := &countingBlob{}
	_, err := DeleteQuestion(context.Background(), db, cb.mock(), constants.RoleAdmin, q.PracticeQuestionID)
	require.NoError(t, err)

	var qTotal, nTotal int64
	require.NoError(t, db.Model(&model.PracticeQuestionModel{}).Count(&qTotal).Error)
	require.NoError(t, db.Model(&model.PracticeNoteModel{}).Count(&nTotal).Error)
	assert.Zero(t, qTotal)
	assert.EqualValues(t, 1, nTotal, "hapus soal tidak boleh menyentuh catatan")
	assert.Contains(t, cb.deletes, pdfURL)
}

func TestListQuestions_FilterAndOrder(t *testing.T) {
	db := setupTestDB(t)
	cat := seedCategory(t, db, "Utama", 1, true)
	other := seedCategory(t, db, "Lainnya", 2, true)

	mk := func(title, diff string, order int, catID uuid.UUID, active bool) {
		q := &model.PracticeQuestionModel{
			PracticeQuestionCategoryID: catID,
			PracticeQuestionTitle:      title,
			PracticeQuestionDifficulty: diff,
			PracticeQuestionOrderIndex: order,
			PracticeQuestionIsActive:   true,
		}
		require.NoError(t, db.Create(q).Error)
		if !active {
			require.NoError(t, db.Model(q).Update("practice_question_is_active", false).Error)
		}
	}
	mk("Ketiga", "easy", 3, cat.PracticeCategoryID, true)
	mk("Pertama", "hard", 1, cat.PracticeCategoryID, true)
	mk("Kedua", "easy", 2, other.PracticeCategoryID, true)
	mk("Nonaktif", "easy", 0, cat.PracticeCategoryID, false)

	rows, total, err := ListQuestions(context.Background(), db, QuestionListOpts{})
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	require.Len(t, rows, 4)
	assert.Equal(t, "Nonaktif", rows[0].PracticeQuestionTitle, "admin melihat yang nonaktif juga")

	rows, total, err = ListQuestions(context.Background(), db, QuestionListOpts{Difficulty: "easy", ActiveOnly: true})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, rows, 2)
	assert.Equal(t, "Kedua", rows[0].PracticeQuestionTitle)

	rows, _, err = ListQuestions(context.Background(), db, QuestionListOpts{CategoryID: &cat.PracticeCategoryID, ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Pertama", rows[0].PracticeQuestionTitle)
}

/* =========================================================
   Katalog browse publik
========================================================= */

func TestBuildQuestionCatalog_OmitsEmptyAndInactiveGroups(t *testing.T) {
	db := setupTestDB(t)
	filled := seedCategory(t, db, "Berisi", 1, true)
	seedCategory(t, db, "Kosong", 2, true)
	hidden := seedCategory(t, db, "Nonaktif", 3, false)

	mk := func(title string, catID uuid.UUID, active bool) {
		q := &model.PracticeQuestionModel{
			PracticeQuestionCategoryID: catID,
			PracticeQuestionTitle:      title,
			PracticeQuestionIsActive:   true,
		}
		require.NoError(t, db.Create(q).Error)
		if !active {
			require.NoError(t, db.Model(q).Update("practice_question_is_active", false).Error)
		}
	}
	mk("Tampil", filled.PracticeCategoryID, true)
	mk("Disembunyikan karena nonaktif", filled.PracticeCategoryID, false)
	mk("Kategorinya nonaktif", hidden.PracticeCategoryID, true)

	groups, err := BuildQuestionCatalog(context.Background(), db)
	require.NoError(t, err)
	require.Len(t, groups, 1, "grup kosong & kategori nonaktif tidak boleh muncul")
	assert.Equal(t, "Berisi", groups[0].Category.PracticeCategoryName)
	require.Len(t, groups[0].Questions, 1)
	assert.Equal(t, "Tampil", groups[0].Questions[0].PracticeQuestionTitle)
}

func TestBuildNoteCatalog_GroupsByCategoryOrder(t *testing.T) {
	db := setupTestDB(t)
	second := seedCategory(t, db, "Kedua", 2, true)
	first := seedCategory(t, db, "Pertama", 1, true)

	mkNote := func(title string, catID uuid.UUID, order int) {
		require.NoError(t, db.Create(&model.PracticeNoteModel{
			PracticeNoteCategoryID: catID,
			PracticeNoteTitle:      title,
			PracticeNoteOrderIndex: order,
			PracticeNoteIsActive:   true,
		}).Error)
	}
	mkNote("Catatan B", second.PracticeCategoryID, 1)
	mkNote("Catatan A2", first.PracticeCategoryID, 2)
	mkNote("Catatan A1", first.PracticeCategoryID, 1)

	groups, err := BuildNoteCatalog(context.Background(), db)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "Pertama", groups[0].Category.PracticeCategoryName, "urut order index kategori")
	require.Len(t, groups[0].Notes, 2)
	assert.Equal(t, "Catatan A1", groups[0].Notes[0].PracticeNoteTitle, "materi urut order index")
}
