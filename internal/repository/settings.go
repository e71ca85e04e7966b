package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/fansite-cms/api/internal/database"
	"github.com/fansite-cms/api/internal/model"
)

const settingsTable = "settings"

// SettingsRepository reads and writes the singleton settings:main document
type SettingsRepository struct {
	db database.Database
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db database.Database) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get returns the stored settings, or nil if none were saved yet
func (r *SettingsRepository) Get(ctx context.Context) (*model.Settings, error) {
	query := `SELECT * FROM type::thing($tb, $id)`
	vars := map[string]interface{}{"tb": settingsTable, "id": model.SettingsID}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}

	row, ok := result.(map[string]interface{})
	if !ok {
		return nil, nil
	}
	return parseSettings(row), nil
}

// Put replaces the settings document
func (r *SettingsRepository) Put(ctx context.Context, settings *model.Settings) error {
	query := `
		UPSERT type::thing($tb, $id) CONTENT {
			main_image: $main_image,
			sns_links: $sns_links,
			updated_on: time::now()
		}
	`

	links := make([]map[string]interface{}, 0, len(settings.SNSLinks))
	for _, l := range settings.SNSLinks {
		links = append(links, map[string]interface{}{"id": l.ID, "url": l.URL})
	}
	vars := map[string]interface{}{
		"tb":         settingsTable,
		"id":         model.SettingsID,
		"main_image": settings.MainImage,
		"sns_links":  links,
	}

	if err := r.db.Execute(ctx, query, vars); err != nil {
		return fmt.Errorf("put settings: %w", err)
	}
	return nil
}

func parseSettings(row map[string]interface{}) *model.Settings {
	settings := &model.Settings{
		MainImage: getString(row, "main_image"),
		SNSLinks:  []model.SNSLink{},
	}
	if links, ok := row["sns_links"].([]interface{}); ok {
		for _, item := range links {
			if m, ok := item.(map[string]interface{}); ok {
				settings.SNSLinks = append(settings.SNSLinks, model.SNSLink{
					ID:  getString(m, "id"),
					URL: getString(m, "url"),
				})
			}
		}
	}
	return settings
}
