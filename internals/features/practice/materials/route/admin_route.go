package route

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"latihanku_backend/internals/constants"
	practiceController "latihanku_backend/internals/features/practice/materials/controller"
	helperOSS "latihanku_backend/internals/helpers/oss"
	authMiddleware "latihanku_backend/internals/middlewares/auth"
)

// Rute kelola materi (prefix /api/a, guard IsPracticeAdmin sudah jalan duluan).
func PracticeAdminRoutes(app fiber.Router, db *gorm.DB) {
	// Blob service dibuat sekali; kalau ENV OSS belum lengkap, endpoint file
	// akan balas STORAGE_UNAVAILABLE tapi rute non-file tetap hidup.
	var blob helperOSS.BlobService
	if svc, err := helperOSS.NewOSSBlobServiceFromEnv(""); err != nil {
		log.Printf("⚠️ OSS tidak dikonfigurasi: %v", err)
	} else {
		blob = svc
	}

	categoryCtrl := practiceController.NewPracticeCategoryController(db)
	questionCtrl := practiceController.NewPracticeQuestionController(db, blob)
	noteCtrl := practiceController.NewPracticeNoteController(db, blob)

	practice := app.Group("/practice",
		authMiddleware.OnlyRolesSlice(constants.RoleErrorAdmin("Practice Zone"), constants.AdminOnly),
	)

	categories := practice.Group("/categories")
	categories.Get("/", categoryCtrl.List)
	categories.Post("/", categoryCtrl.Create)
	categories.Patch("/:id", categoryCtrl.Update)
	categories.Delete("/:id", categoryCtrl.Delete)

	questions := practice.Group("/questions")
	questions.Get("/", questionCtrl.List)
	questions.Post("/", questionCtrl.Create)
	questions.Patch("/:id", questionCtrl.Update)
	questions.Delete("/:id", questionCtrl.Delete)

	notes := practice.Group("/notes")
	notes.Get("/", noteCtrl.List)
	notes.Post("/", noteCtrl.Create)
	notes.Patch("/:id", noteCtrl.Update)
	notes.Delete("/:id", noteCtrl.Delete)
}
