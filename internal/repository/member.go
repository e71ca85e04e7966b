package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/fansite-cms/api/internal/database"
	"github.com/fansite-cms/api/internal/model"
)

const memberTable = "member"

// MemberRepository stores member profiles keyed by roster id
type MemberRepository struct {
	db database.Database
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(db database.Database) *MemberRepository {
	return &MemberRepository{db: db}
}

// List returns all stored profiles
func (r *MemberRepository) List(ctx context.Context) ([]*model.MemberProfile, error) {
	results, err := r.db.Query(ctx, `SELECT * FROM member`, nil)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}

	rows := resultRows(results)
	profiles := make([]*model.MemberProfile, 0, len(rows))
	for _, row := range rows {
		profiles = append(profiles, parseMember(row))
	}
	return profiles, nil
}

// GetByID retrieves a stored profile. Returns nil if none was saved yet.
func (r *MemberRepository) GetByID(ctx context.Context, id string) (*model.MemberProfile, error) {
	query := `SELECT * FROM type::thing($tb, $id)`
	vars := map[string]interface{}{"tb": memberTable, "id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get member: %w", err)
	}

	row, ok := result.(map[string]interface{})
	if !ok {
		return nil, nil
	}
	return parseMember(row), nil
}

// Upsert replaces the profile document for profile.ID
func (r *MemberRepository) Upsert(ctx context.Context, profile *model.MemberProfile) error {
	query := `
		UPSERT type::thing($tb, $id) CONTENT {
			name: $name,
			texts: $texts,
			images: $images,
			sns: $sns,
			updated_on: time::now()
		}
	`
	sns := profile.SNS
	if sns == nil {
		sns = map[string]string{}
	}
	vars := map[string]interface{}{
		"tb":     memberTable,
		"id":     profile.ID,
		"name":   profile.Name,
		"texts":  emptyIfNil(profile.Texts),
		"images": emptyIfNil(profile.Images),
		"sns":    sns,
	}

	if err := r.db.Execute(ctx, query, vars); err != nil {
		return fmt.Errorf("upsert member: %w", err)
	}
	return nil
}

func parseMember(row map[string]interface{}) *model.MemberProfile {
	return &model.MemberProfile{
		ID:     recordKey(row["id"]),
		Name:   getString(row, "name"),
		Texts:  getStringSlice(row, "texts"),
		Images: getStringSlice(row, "images"),
		SNS:    getStringMap(row, "sns"),
	}
}
