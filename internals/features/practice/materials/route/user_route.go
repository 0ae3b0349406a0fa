package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	practiceController "latihanku_backend/internals/features/practice/materials/controller"
)

// Rute browse publik (prefix /api/public, tanpa auth wajib).
func PracticePublicRoutes(app fiber.Router, db *gorm.DB) {
	publicCtrl := practiceController.NewPracticePublicController(db)

	practice := app.Group("/practice")
	practice.Get("/categories", publicCtrl.ListCategories)

	catalog := practice.Group("/catalog")
	catalog.Get("/questions", publicCtrl.QuestionCatalog)
	catalog.Get("/notes", publicCtrl.NoteCatalog)
}
