package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fansite-cms/api/internal/model"
)

func TestSettingsService_Get_DefaultsWhenAbsent(t *testing.T) {
	svc := NewSettingsService(SettingsServiceConfig{Repo: &mockSettingsRepo{}, Blobs: newMemStore()})

	settings, err := svc.Get(context.Background())

	require.NoError(t, err)
	assert.Equal(t, model.DefaultSettings(), settings)
}

func TestSettingsService_Get_ReadsEveryTime(t *testing.T) {
	calls := 0
	repo := &mockSettingsRepo{
		getFunc: func(ctx context.Context) (*model.Settings, error) {
			calls++
			return &model.Settings{MainImage: "https://cdn.test/settings/a.png"}, nil
		},
	}
	svc := NewSettingsService(SettingsServiceConfig{Repo: repo, Blobs: newMemStore()})

	_, _ = svc.Get(context.Background())
	_, _ = svc.Get(context.Background())

	assert.Equal(t, 2, calls)
}

func TestSettingsService_Update_ReplacesBannerAndLinks(t *testing.T) {
	store := newMemStore()
	store.put("https://cdn.test/settings/old.png")
	var saved *model.Settings
	repo := &mockSettingsRepo{
		getFunc: func(ctx context.Context) (*model.Settings, error) {
			return &model.Settings{
				MainImage: "https://cdn.test/settings/old.png",
				SNSLinks:  []model.SNSLink{{ID: "x", URL: "https://x.com/group"}},
			}, nil
		},
		putFunc: func(ctx context.Context, settings *model.Settings) error {
			saved = settings
			return nil
		},
	}
	svc := NewSettingsService(SettingsServiceConfig{Repo: repo, Blobs: store})

	req := &model.UpdateSettingsRequest{SNSLinks: []model.SNSLink{
		{ID: "instagram", URL: "https://instagram.com/group"},
		{ID: "x", URL: ""},
	}}
	settings, err := svc.Update(context.Background(), req, newFakeFile("banner.png", "banner"))

	require.NoError(t, err)
	assert.Same(t, saved, settings)
	assert.Equal(t, []model.SNSLink{{ID: "instagram", URL: "https://instagram.com/group"}}, settings.SNSLinks)
	assert.NotEqual(t, "https://cdn.test/settings/old.png", settings.MainImage)
	assert.Equal(t, []string{"https://cdn.test/settings/old.png"}, store.deleted)
}

func TestSettingsService_Update_NilLinksKeepsStored(t *testing.T) {
	repo := &mockSettingsRepo{
		getFunc: func(ctx context.Context) (*model.Settings, error) {
			return &model.Settings{SNSLinks: []model.SNSLink{{ID: "x", URL: "https://x.com/group"}}}, nil
		},
	}
	svc := NewSettingsService(SettingsServiceConfig{Repo: repo, Blobs: newMemStore()})

	settings, err := svc.Update(context.Background(), &model.UpdateSettingsRequest{}, nil)

	require.NoError(t, err)
	assert.Len(t, settings.SNSLinks, 1)
}

func TestSettingsService_Update_WriteFailureRemovesNewBanner(t *testing.T) {
	store := newMemStore()
	repo := &mockSettingsRepo{
		putFunc: func(ctx context.Context, settings *model.Settings) error {
			return errors.New("db down")
		},
	}
	svc := NewSettingsService(SettingsServiceConfig{Repo: repo, Blobs: store})

	_, err := svc.Update(context.Background(), &model.UpdateSettingsRequest{}, newFakeFile("b.png", "b"))

	require.Error(t, err)
	assert.Empty(t, store.urls())
}
