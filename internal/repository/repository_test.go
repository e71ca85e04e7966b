package repository_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fansite-cms/api/internal/database"
	"github.com/fansite-cms/api/internal/model"
	"github.com/fansite-cms/api/internal/repository"
	"github.com/fansite-cms/api/internal/testing/fixtures"
	"github.com/fansite-cms/api/internal/testing/testdb"
)

func TestAlbumRepository_CreateGetDelete(t *testing.T) {
	tdb := testdb.New(t)
	repo := repository.NewAlbumRepository(tdb.DB)

	album := &model.Album{
		Title:  "Test",
		Date:   "2025-01-01",
		Tracks: []string{"A", "B"},
		Image:  "https://cdn.test/a.jpg",
	}
	require.NoError(t, repo.Create(tdb.Ctx(), album))
	require.NotEmpty(t, album.ID)
	assert.NotContains(t, album.ID, ":")

	got, err := repo.GetByID(tdb.Ctx(), album.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, album, got)

	require.NoError(t, repo.Delete(tdb.Ctx(), album.ID))

	got, err = repo.GetByID(tdb.Ctx(), album.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	err = repo.Delete(tdb.Ctx(), album.ID)
	assert.True(t, errors.Is(err, database.ErrNotFound))
}

func TestAlbumRepository_ListOrdersByDateDesc(t *testing.T) {
	tdb := testdb.New(t)
	f := fixtures.New(tdb.DB)
	repo := repository.NewAlbumRepository(tdb.DB)

	old := f.CreateAlbum(t, fixtures.WithAlbumDate("2022-07-22"))
	recent := f.CreateAlbum(t, fixtures.WithAlbumDate("2025-03-01"))

	albums, err := repo.List(tdb.Ctx())
	require.NoError(t, err)
	require.Len(t, albums, 2)
	assert.Equal(t, recent.ID, albums[0].ID)
	assert.Equal(t, old.ID, albums[1].ID)
}

func TestAlbumRepository_UpdateMissing(t *testing.T) {
	tdb := testdb.New(t)
	repo := repository.NewAlbumRepository(tdb.DB)

	err := repo.Update(tdb.Ctx(), &model.Album{ID: "missing", Title: "x", Date: "2025-01-01"})
	assert.True(t, errors.Is(err, database.ErrNotFound))
}

func TestGalleryRepository_BatchLifecycle(t *testing.T) {
	tdb := testdb.New(t)
	repo := repository.NewGalleryRepository(tdb.DB)

	created, err := repo.CreateMany(tdb.Ctx(), []string{"https://cdn.test/1.png", "https://cdn.test/2.png", "https://cdn.test/3.png"})
	require.NoError(t, err)
	require.Len(t, created, 3)
	assert.Equal(t, "https://cdn.test/1.png", created[0].URL)

	found, err := repo.GetByIDs(tdb.Ctx(), []string{created[0].ID, created[1].ID, "unknown"})
	require.NoError(t, err)
	assert.Len(t, found, 2)

	require.NoError(t, repo.DeleteMany(tdb.Ctx(), []string{created[0].ID, created[1].ID}))

	remaining, err := repo.List(tdb.Ctx())
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, created[2].ID, remaining[0].ID)
}

func TestGalleryRepository_ListNewestFirst(t *testing.T) {
	tdb := testdb.New(t)
	f := fixtures.New(tdb.DB)
	repo := repository.NewGalleryRepository(tdb.DB)

	older := f.CreateGalleryImage(t, time.Now().Add(-time.Hour))
	newer := f.CreateGalleryImage(t, time.Now())

	images, err := repo.List(tdb.Ctx())
	require.NoError(t, err)
	require.Len(t, images, 2)
	assert.Equal(t, newer.ID, images[0].ID)
	assert.Equal(t, older.ID, images[1].ID)
}

func TestNoticeRepository_UpdateStampsUpdatedAt(t *testing.T) {
	tdb := testdb.New(t)
	f := fixtures.New(tdb.DB)
	repo := repository.NewNoticeRepository(tdb.DB)

	n := f.CreateNotice(t, model.NoticeTypeNotice)

	got, err := repo.GetByID(tdb.Ctx(), n.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.UpdatedAt)

	got.Type = model.NoticeTypeEvent
	got.Title = "changed"
	require.NoError(t, repo.Update(tdb.Ctx(), got))
	require.NotNil(t, got.UpdatedAt)

	reread, err := repo.GetByID(tdb.Ctx(), n.ID)
	require.NoError(t, err)
	assert.Equal(t, model.NoticeTypeEvent, reread.Type)
	assert.Equal(t, "changed", reread.Title)
	assert.False(t, reread.CreatedAt.IsZero())
}

func TestScheduleRepository_ListRangeOverlap(t *testing.T) {
	tdb := testdb.New(t)
	f := fixtures.New(tdb.DB)
	repo := repository.NewScheduleRepository(tdb.DB)

	day := func(m time.Month, d int) time.Time { return time.Date(2025, m, d, 0, 0, 0, 0, time.UTC) }

	inside := f.CreateScheduleEvent(t, day(3, 10), day(3, 10).Add(2*time.Hour), model.ScheduleTypeConcert)
	spanning := f.CreateScheduleEvent(t, day(2, 25), day(3, 2), model.ScheduleTypeEvent)
	f.CreateScheduleEvent(t, day(5, 1), day(5, 1).Add(time.Hour), model.ScheduleTypeEvent)

	events, err := repo.ListRange(tdb.Ctx(), day(3, 1), day(3, 31))
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, spanning.ID, events[0].ID)
	assert.Equal(t, inside.ID, events[1].ID)
}

func TestVideoRepository_DerivesVideoID(t *testing.T) {
	tdb := testdb.New(t)
	repo := repository.NewVideoRepository(tdb.DB)

	v := &model.Video{Title: "MV", Src: "https://youtu.be/dQw4w9WgXcQ"}
	require.NoError(t, repo.Create(tdb.Ctx(), v))
	assert.Equal(t, "dQw4w9WgXcQ", v.VideoID)

	list, err := repo.List(tdb.Ctx())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "dQw4w9WgXcQ", list[0].VideoID)
}

func TestMemberRepository_Upsert(t *testing.T) {
	tdb := testdb.New(t)
	repo := repository.NewMemberRepository(tdb.DB)

	got, err := repo.GetByID(tdb.Ctx(), "minji")
	require.NoError(t, err)
	assert.Nil(t, got)

	profile := &model.MemberProfile{
		ID:     "minji",
		Name:   "민지",
		Texts:  []string{"hello"},
		Images: []string{"https://cdn.test/m.jpg"},
		SNS:    map[string]string{"instagram": "https://instagram.com/minji"},
	}
	require.NoError(t, repo.Upsert(tdb.Ctx(), profile))
	require.NoError(t, repo.Upsert(tdb.Ctx(), profile))

	got, err = repo.GetByID(tdb.Ctx(), "minji")
	require.NoError(t, err)
	assert.Equal(t, profile, got)

	all, err := repo.List(tdb.Ctx())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSettingsRepository_PutGet(t *testing.T) {
	tdb := testdb.New(t)
	repo := repository.NewSettingsRepository(tdb.DB)

	got, err := repo.Get(tdb.Ctx())
	require.NoError(t, err)
	assert.Nil(t, got)

	settings := &model.Settings{
		MainImage: "https://cdn.test/banner.jpg",
		SNSLinks:  []model.SNSLink{{ID: "youtube", URL: "https://youtube.com/@group"}},
	}
	require.NoError(t, repo.Put(tdb.Ctx(), settings))

	got, err = repo.Get(tdb.Ctx())
	require.NoError(t, err)
	assert.Equal(t, settings, got)
}
