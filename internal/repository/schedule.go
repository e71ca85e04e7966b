package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fansite-cms/api/internal/database"
	"github.com/fansite-cms/api/internal/model"
)

const scheduleTable = "schedule"

// ScheduleRepository handles persisted calendar events
type ScheduleRepository struct {
	db database.Database
}

// NewScheduleRepository creates a new schedule repository
func NewScheduleRepository(db database.Database) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// List returns every stored event, latest start first
func (r *ScheduleRepository) List(ctx context.Context) ([]*model.ScheduleEvent, error) {
	results, err := r.db.Query(ctx, `SELECT * FROM schedule ORDER BY starts_at DESC`, nil)
	if err != nil {
		return nil, fmt.Errorf("list schedule: %w", err)
	}
	return parseScheduleRows(resultRows(results)), nil
}

// ListRange returns stored events overlapping [from, to]
func (r *ScheduleRepository) ListRange(ctx context.Context, from, to time.Time) ([]*model.ScheduleEvent, error) {
	query := `SELECT * FROM schedule WHERE starts_at <= $to AND ends_at >= $from ORDER BY starts_at ASC`
	vars := map[string]interface{}{"from": from.UTC(), "to": to.UTC()}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, fmt.Errorf("list schedule range: %w", err)
	}
	return parseScheduleRows(resultRows(results)), nil
}

// GetByID retrieves an event by ID. Returns nil if it does not exist.
func (r *ScheduleRepository) GetByID(ctx context.Context, id string) (*model.ScheduleEvent, error) {
	query := `SELECT * FROM type::thing($tb, $id)`
	vars := map[string]interface{}{"tb": scheduleTable, "id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get schedule event: %w", err)
	}

	row, ok := result.(map[string]interface{})
	if !ok {
		return nil, nil
	}
	return parseScheduleEvent(row), nil
}

// Create stores a new event and sets its ID
func (r *ScheduleRepository) Create(ctx context.Context, event *model.ScheduleEvent) error {
	query := `
		CREATE schedule CONTENT {
			starts_at: $starts_at,
			ends_at: $ends_at,
			type: $type,
			title: $title,
			all_day: $all_day,
			created_on: time::now(),
			updated_on: time::now()
		}
	`

	results, err := r.db.Query(ctx, query, scheduleVars(event))
	if err != nil {
		return fmt.Errorf("create schedule event: %w", err)
	}

	rows := resultRows(results)
	if len(rows) == 0 {
		return fmt.Errorf("create schedule event: %w", database.ErrQuery)
	}
	event.ID = recordKey(rows[0]["id"])
	return nil
}

// Update overwrites the stored fields of an existing event
func (r *ScheduleRepository) Update(ctx context.Context, event *model.ScheduleEvent) error {
	query := `
		UPDATE type::thing($tb, $id) MERGE {
			starts_at: $starts_at,
			ends_at: $ends_at,
			type: $type,
			title: $title,
			all_day: $all_day,
			updated_on: time::now()
		} RETURN AFTER
	`
	vars := scheduleVars(event)
	vars["tb"] = scheduleTable
	vars["id"] = event.ID

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return fmt.Errorf("update schedule event: %w", err)
	}
	if len(resultRows(results)) == 0 {
		return database.ErrNotFound
	}
	return nil
}

// Delete removes an event. Returns database.ErrNotFound if it did not exist.
func (r *ScheduleRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE type::thing($tb, $id) RETURN BEFORE`
	vars := map[string]interface{}{"tb": scheduleTable, "id": id}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return fmt.Errorf("delete schedule event: %w", err)
	}
	if len(resultRows(results)) == 0 {
		return database.ErrNotFound
	}
	return nil
}

func scheduleVars(e *model.ScheduleEvent) map[string]interface{} {
	return map[string]interface{}{
		"starts_at": e.Start.UTC(),
		"ends_at":   e.End.UTC(),
		"type":      string(e.Type),
		"title":     e.Title,
		"all_day":   e.AllDay,
	}
}

func parseScheduleRows(rows []map[string]interface{}) []*model.ScheduleEvent {
	events := make([]*model.ScheduleEvent, 0, len(rows))
	for _, row := range rows {
		events = append(events, parseScheduleEvent(row))
	}
	return events
}

func parseScheduleEvent(row map[string]interface{}) *model.ScheduleEvent {
	return &model.ScheduleEvent{
		ID:     recordKey(row["id"]),
		Start:  getTime(row, "starts_at"),
		End:    getTime(row, "ends_at"),
		Type:   model.ScheduleType(getString(row, "type")),
		Title:  getString(row, "title"),
		AllDay: getBool(row, "all_day"),
	}
}
