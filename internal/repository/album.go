package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/fansite-cms/api/internal/database"
	"github.com/fansite-cms/api/internal/model"
)

const albumTable = "album"

// AlbumRepository handles album data access
type AlbumRepository struct {
	db database.Database
}

// NewAlbumRepository creates a new album repository
func NewAlbumRepository(db database.Database) *AlbumRepository {
	return &AlbumRepository{db: db}
}

// List returns all albums, newest release first
func (r *AlbumRepository) List(ctx context.Context) ([]*model.Album, error) {
	query := `SELECT * FROM album ORDER BY date DESC, created_on DESC`

	results, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, fmt.Errorf("list albums: %w", err)
	}

	rows := resultRows(results)
	albums := make([]*model.Album, 0, len(rows))
	for _, row := range rows {
		albums = append(albums, parseAlbum(row))
	}
	return albums, nil
}

// GetByID retrieves an album by ID. Returns nil if it does not exist.
func (r *AlbumRepository) GetByID(ctx context.Context, id string) (*model.Album, error) {
	query := `SELECT * FROM type::thing($tb, $id)`
	vars := map[string]interface{}{"tb": albumTable, "id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get album: %w", err)
	}

	row, ok := result.(map[string]interface{})
	if !ok {
		return nil, nil
	}
	return parseAlbum(row), nil
}

// Create stores a new album and sets its ID
func (r *AlbumRepository) Create(ctx context.Context, album *model.Album) error {
	query := `
		CREATE album CONTENT {
			title: $title,
			date: $date,
			description: $description,
			tracks: $tracks,
			video_url: $video_url,
			image: $image,
			created_on: time::now(),
			updated_on: time::now()
		}
	`

	results, err := r.db.Query(ctx, query, albumVars(album))
	if err != nil {
		return fmt.Errorf("create album: %w", err)
	}

	rows := resultRows(results)
	if len(rows) == 0 {
		return fmt.Errorf("create album: %w", database.ErrQuery)
	}
	album.ID = recordKey(rows[0]["id"])
	return nil
}

// Update overwrites the stored fields of an existing album
func (r *AlbumRepository) Update(ctx context.Context, album *model.Album) error {
	query := `
		UPDATE type::thing($tb, $id) MERGE {
			title: $title,
			date: $date,
			description: $description,
			tracks: $tracks,
			video_url: $video_url,
			image: $image,
			updated_on: time::now()
		} RETURN AFTER
	`

	vars := albumVars(album)
	vars["tb"] = albumTable
	vars["id"] = album.ID

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return fmt.Errorf("update album: %w", err)
	}
	if len(resultRows(results)) == 0 {
		return database.ErrNotFound
	}
	return nil
}

// Delete removes an album. Returns database.ErrNotFound if it did not exist.
func (r *AlbumRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE type::thing($tb, $id) RETURN BEFORE`
	vars := map[string]interface{}{"tb": albumTable, "id": id}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return fmt.Errorf("delete album: %w", err)
	}
	if len(resultRows(results)) == 0 {
		return database.ErrNotFound
	}
	return nil
}

func albumVars(a *model.Album) map[string]interface{} {
	return map[string]interface{}{
		"title":       a.Title,
		"date":        a.Date,
		"description": a.Description,
		"tracks":      emptyIfNil(a.Tracks),
		"video_url":   a.VideoURL,
		"image":       a.Image,
	}
}

func parseAlbum(row map[string]interface{}) *model.Album {
	return &model.Album{
		ID:          recordKey(row["id"]),
		Title:       getString(row, "title"),
		Date:        getString(row, "date"),
		Description: getString(row, "description"),
		Tracks:      getStringSlice(row, "tracks"),
		VideoURL:    getString(row, "video_url"),
		Image:       getString(row, "image"),
	}
}
