package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/fansite-cms/api/internal/database"
	"github.com/fansite-cms/api/internal/model"
)

const videoTable = "video"

// VideoRepository handles video data access
type VideoRepository struct {
	db database.Database
}

// NewVideoRepository creates a new video repository
func NewVideoRepository(db database.Database) *VideoRepository {
	return &VideoRepository{db: db}
}

// List returns all videos, newest first
func (r *VideoRepository) List(ctx context.Context) ([]*model.Video, error) {
	results, err := r.db.Query(ctx, `SELECT * FROM video ORDER BY created_on DESC`, nil)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}

	rows := resultRows(results)
	videos := make([]*model.Video, 0, len(rows))
	for _, row := range rows {
		videos = append(videos, parseVideo(row))
	}
	return videos, nil
}

// GetByID retrieves a video by ID. Returns nil if it does not exist.
func (r *VideoRepository) GetByID(ctx context.Context, id string) (*model.Video, error) {
	query := `SELECT * FROM type::thing($tb, $id)`
	vars := map[string]interface{}{"tb": videoTable, "id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get video: %w", err)
	}

	row, ok := result.(map[string]interface{})
	if !ok {
		return nil, nil
	}
	return parseVideo(row), nil
}

// Create stores a new video and fills in its ID and creation time
func (r *VideoRepository) Create(ctx context.Context, video *model.Video) error {
	query := `
		CREATE video CONTENT {
			title: $title,
			src: $src,
			created_on: time::now()
		}
	`
	vars := map[string]interface{}{"title": video.Title, "src": video.Src}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return fmt.Errorf("create video: %w", err)
	}

	rows := resultRows(results)
	if len(rows) == 0 {
		return fmt.Errorf("create video: %w", database.ErrQuery)
	}
	created := parseVideo(rows[0])
	video.ID = created.ID
	video.CreatedAt = created.CreatedAt
	video.VideoID = created.VideoID
	return nil
}

// Update overwrites title and src of an existing video
func (r *VideoRepository) Update(ctx context.Context, video *model.Video) error {
	query := `
		UPDATE type::thing($tb, $id) MERGE {
			title: $title,
			src: $src,
			updated_on: time::now()
		} RETURN AFTER
	`
	vars := map[string]interface{}{
		"tb":    videoTable,
		"id":    video.ID,
		"title": video.Title,
		"src":   video.Src,
	}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return fmt.Errorf("update video: %w", err)
	}
	if len(resultRows(results)) == 0 {
		return database.ErrNotFound
	}
	return nil
}

// Delete removes a video. Returns database.ErrNotFound if it did not exist.
func (r *VideoRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE type::thing($tb, $id) RETURN BEFORE`
	vars := map[string]interface{}{"tb": videoTable, "id": id}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return fmt.Errorf("delete video: %w", err)
	}
	if len(resultRows(results)) == 0 {
		return database.ErrNotFound
	}
	return nil
}

// parseVideo derives videoId from src on every read
func parseVideo(row map[string]interface{}) *model.Video {
	src := getString(row, "src")
	videoID, _ := model.YouTubeID(src)
	return &model.Video{
		ID:        recordKey(row["id"]),
		Title:     getString(row, "title"),
		Src:       src,
		VideoID:   videoID,
		CreatedAt: getTime(row, "created_on"),
	}
}
