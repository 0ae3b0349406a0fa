package seeds

import (
	"gorm.io/gorm"

	categories "latihanku_backend/internals/seeds/practice/categories"
	roles "latihanku_backend/internals/seeds/users/roles"
)

func RunAllSeeds(db *gorm.DB) {

	//* Practice
	categories.SeedPracticeCategories(db)

	//* User roles (file opsional)
	roles.SeedPracticeAdminsFromJSON(db, "internals/seeds/users/roles/data_practice_admins.json")
}
