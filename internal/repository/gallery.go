package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fansite-cms/api/internal/database"
	"github.com/fansite-cms/api/internal/model"
	"github.com/surrealdb/surrealdb.go/pkg/models"
)

const galleryTable = "gallery"

// GalleryRepository handles gallery image data access
type GalleryRepository struct {
	db database.Database
}

// NewGalleryRepository creates a new gallery repository
func NewGalleryRepository(db database.Database) *GalleryRepository {
	return &GalleryRepository{db: db}
}

// List returns all gallery images, newest first
func (r *GalleryRepository) List(ctx context.Context) ([]*model.GalleryImage, error) {
	query := `SELECT * FROM gallery ORDER BY created_on DESC`

	results, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, fmt.Errorf("list gallery: %w", err)
	}
	return parseGalleryRows(resultRows(results)), nil
}

// GetByID retrieves a gallery image by ID. Returns nil if it does not exist.
func (r *GalleryRepository) GetByID(ctx context.Context, id string) (*model.GalleryImage, error) {
	query := `SELECT * FROM type::thing($tb, $id)`
	vars := map[string]interface{}{"tb": galleryTable, "id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get gallery image: %w", err)
	}

	row, ok := result.(map[string]interface{})
	if !ok {
		return nil, nil
	}
	return parseGalleryImage(row), nil
}

// GetByIDs returns the images that exist among ids, in no particular order
func (r *GalleryRepository) GetByIDs(ctx context.Context, ids []string) ([]*model.GalleryImage, error) {
	if len(ids) == 0 {
		return []*model.GalleryImage{}, nil
	}

	things := make([]models.RecordID, 0, len(ids))
	for _, id := range ids {
		things = append(things, thing(galleryTable, id))
	}

	results, err := r.db.Query(ctx, `SELECT * FROM $ids`, map[string]interface{}{"ids": things})
	if err != nil {
		return nil, fmt.Errorf("get gallery images: %w", err)
	}
	return parseGalleryRows(resultRows(results)), nil
}

// CreateMany inserts one document per URL in a single statement. The
// returned images are in the order of urls.
func (r *GalleryRepository) CreateMany(ctx context.Context, urls []string) ([]*model.GalleryImage, error) {
	if len(urls) == 0 {
		return []*model.GalleryImage{}, nil
	}

	now := time.Now().UTC()
	docs := make([]map[string]interface{}, 0, len(urls))
	for _, u := range urls {
		docs = append(docs, map[string]interface{}{
			"url":        u,
			"created_on": now,
		})
	}

	results, err := r.db.Query(ctx, `INSERT INTO gallery $docs`, map[string]interface{}{"docs": docs})
	if err != nil {
		return nil, fmt.Errorf("insert gallery images: %w", err)
	}

	images := parseGalleryRows(resultRows(results))
	if len(images) != len(urls) {
		return nil, fmt.Errorf("insert gallery images: expected %d records, got %d: %w", len(urls), len(images), database.ErrQuery)
	}

	byURL := make(map[string]*model.GalleryImage, len(images))
	for _, img := range images {
		byURL[img.URL] = img
	}
	ordered := make([]*model.GalleryImage, 0, len(urls))
	for _, u := range urls {
		if img, ok := byURL[u]; ok {
			ordered = append(ordered, img)
		}
	}
	return ordered, nil
}

// Delete removes one image. Returns database.ErrNotFound if it did not exist.
func (r *GalleryRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE type::thing($tb, $id) RETURN BEFORE`
	vars := map[string]interface{}{"tb": galleryTable, "id": id}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return fmt.Errorf("delete gallery image: %w", err)
	}
	if len(resultRows(results)) == 0 {
		return database.ErrNotFound
	}
	return nil
}

// DeleteMany removes all ids in one transaction
func (r *GalleryRepository) DeleteMany(ctx context.Context, ids []string) error {
	batch := database.NewAtomicBatch()
	for _, id := range ids {
		batch.Add(`DELETE type::thing($tb, $id)`, map[string]interface{}{"tb": galleryTable, "id": id})
	}
	if err := batch.Execute(ctx, r.db); err != nil {
		return fmt.Errorf("delete gallery images: %w", err)
	}
	return nil
}

func parseGalleryRows(rows []map[string]interface{}) []*model.GalleryImage {
	images := make([]*model.GalleryImage, 0, len(rows))
	for _, row := range rows {
		images = append(images, parseGalleryImage(row))
	}
	return images
}

func parseGalleryImage(row map[string]interface{}) *model.GalleryImage {
	return &model.GalleryImage{
		ID:        recordKey(row["id"]),
		URL:       getString(row, "url"),
		CreatedAt: getTime(row, "created_on"),
	}
}
