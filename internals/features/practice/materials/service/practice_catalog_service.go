// file: internals/features/practice/materials/service/practice_catalog_service.go
package service

import (
	"context"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"latihanku_backend/internals/features/practice/materials/dto"
	"latihanku_backend/internals/features/practice/materials/model"
)

/*
Katalog browse publik: kategori aktif + materi aktif, digrup per kategori.
Dua read jalan paralel di errgroup. Grup tanpa materi TIDAK dimunculkan.
*/

// BuildQuestionCatalog menyusun katalog soal untuk permukaan publik.
func BuildQuestionCatalog(ctx context.Context, db *gorm.DB) ([]dto.QuestionCatalogGroup, error) {
	var (
		cats  []model.PracticeCategoryModel
		items []model.PracticeQuestionModel
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cats, err = ListCategories(gctx, db, true)
		return err
	})
	g.Go(func() error {
		var err error
		items, _, err = ListQuestions(gctx, db, QuestionListOpts{ActiveOnly: true})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byCategory := make(map[string][]dto.PracticeQuestionResponse, len(cats))
	for i := range items {
		key := items[i].PracticeQuestionCategoryID.String()
		byCategory[key] = append(byCategory[key], dto.FromQuestionModel(&items[i]))
	}

	groups := make([]dto.QuestionCatalogGroup, 0, len(cats))
	for i := range cats {
		matched := byCategory[cats[i].PracticeCategoryID.String()]
		if len(matched) == 0 {
			continue
		}
		groups = append(groups, dto.QuestionCatalogGroup{
			Category:  dto.FromCategoryModel(&cats[i]),
			Questions: matched,
		})
	}
	return groups, nil
}

// BuildNoteCatalog menyusun katalog catatan untuk permukaan publik.
func BuildNoteCatalog(ctx context.Context, db *gorm.DB) ([]dto.NoteCatalogGroup, error) {
	var (
		cats  []model.PracticeCategoryModel
		items []model.PracticeNoteModel
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cats, err = ListCategories(gctx, db, true)
		return err
	})
	g.Go(func() error {
		var err error
		items, _, err = ListNotes(gctx, db, NoteListOpts{ActiveOnly: true})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byCategory := make(map[string][]dto.PracticeNoteResponse, len(cats))
	for i := range items {
		key := items[i].PracticeNoteCategoryID.String()
		byCategory[key] = append(byCategory[key], dto.FromNoteModel(&items[i]))
	}

	groups := make([]dto.NoteCatalogGroup, 0, len(cats))
	for i := range cats {
		matched := byCategory[cats[i].PracticeCategoryID.String()]
		if len(matched) == 0 {
			continue
		}
		groups = append(groups, dto.NoteCatalogGroup{
			Category: dto.FromCategoryModel(&cats[i]),
			Notes:    matched,
		})
	}
	return groups, nil
}
