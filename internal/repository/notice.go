package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/fansite-cms/api/internal/database"
	"github.com/fansite-cms/api/internal/model"
)

const noticeTable = "notice"

// NoticeRepository handles notice data access
type NoticeRepository struct {
	db database.Database
}

// NewNoticeRepository creates a new notice repository
func NewNoticeRepository(db database.Database) *NoticeRepository {
	return &NoticeRepository{db: db}
}

// List returns all notices, newest first
func (r *NoticeRepository) List(ctx context.Context) ([]*model.Notice, error) {
	results, err := r.db.Query(ctx, `SELECT * FROM notice ORDER BY created_on DESC`, nil)
	if err != nil {
		return nil, fmt.Errorf("list notices: %w", err)
	}

	rows := resultRows(results)
	notices := make([]*model.Notice, 0, len(rows))
	for _, row := range rows {
		notices = append(notices, parseNotice(row))
	}
	return notices, nil
}

// GetByID retrieves a notice by ID. Returns nil if it does not exist.
func (r *NoticeRepository) GetByID(ctx context.Context, id string) (*model.Notice, error) {
	query := `SELECT * FROM type::thing($tb, $id)`
	vars := map[string]interface{}{"tb": noticeTable, "id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get notice: %w", err)
	}

	row, ok := result.(map[string]interface{})
	if !ok {
		return nil, nil
	}
	return parseNotice(row), nil
}

// Create stores a new notice and fills in its ID and creation time
func (r *NoticeRepository) Create(ctx context.Context, notice *model.Notice) error {
	query := `
		CREATE notice CONTENT {
			type: $type,
			title: $title,
			content: $content,
			created_on: time::now()
		}
	`
	vars := map[string]interface{}{
		"type":    string(notice.Type),
		"title":   notice.Title,
		"content": notice.Content,
	}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return fmt.Errorf("create notice: %w", err)
	}

	rows := resultRows(results)
	if len(rows) == 0 {
		return fmt.Errorf("create notice: %w", database.ErrQuery)
	}
	created := parseNotice(rows[0])
	notice.ID = created.ID
	notice.CreatedAt = created.CreatedAt
	return nil
}

// Update overwrites type, title and content and stamps updated_on
func (r *NoticeRepository) Update(ctx context.Context, notice *model.Notice) error {
	query := `
		UPDATE type::thing($tb, $id) MERGE {
			type: $type,
			title: $title,
			content: $content,
			updated_on: time::now()
		} RETURN AFTER
	`
	vars := map[string]interface{}{
		"tb":      noticeTable,
		"id":      notice.ID,
		"type":    string(notice.Type),
		"title":   notice.Title,
		"content": notice.Content,
	}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return fmt.Errorf("update notice: %w", err)
	}

	rows := resultRows(results)
	if len(rows) == 0 {
		return database.ErrNotFound
	}
	notice.UpdatedAt = parseNotice(rows[0]).UpdatedAt
	return nil
}

// Delete removes a notice. Returns database.ErrNotFound if it did not exist.
func (r *NoticeRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE type::thing($tb, $id) RETURN BEFORE`
	vars := map[string]interface{}{"tb": noticeTable, "id": id}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return fmt.Errorf("delete notice: %w", err)
	}
	if len(resultRows(results)) == 0 {
		return database.ErrNotFound
	}
	return nil
}

func parseNotice(row map[string]interface{}) *model.Notice {
	return &model.Notice{
		ID:        recordKey(row["id"]),
		Type:      model.NoticeType(getString(row, "type")),
		Title:     getString(row, "title"),
		Content:   getString(row, "content"),
		CreatedAt: getTime(row, "created_on"),
		UpdatedAt: getTimePtr(row, "updated_on"),
	}
}
