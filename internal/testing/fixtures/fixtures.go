package fixtures

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/fansite-cms/api/internal/database"
	"github.com/fansite-cms/api/internal/model"
	"github.com/surrealdb/surrealdb.go/pkg/models"
)

// Factory creates test content in the database
type Factory struct {
	db database.Database
}

// New creates a new fixture factory
func New(db database.Database) *Factory {
	return &Factory{db: db}
}

// randomID generates a random hex ID
func randomID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func (f *Factory) create(t *testing.T, query string, vars map[string]interface{}) map[string]interface{} {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := f.db.Query(ctx, query, vars)
	if err != nil {
		t.Fatalf("fixtures: %v\nQuery: %s", err, query)
	}
	rec, err := database.FirstRecord(result)
	if err != nil {
		t.Fatalf("fixtures: no record created: %v", err)
	}
	row, ok := rec.(map[string]interface{})
	if !ok {
		t.Fatalf("fixtures: unexpected record %T", rec)
	}
	return row
}

func key(row map[string]interface{}) string {
	switch v := row["id"].(type) {
	case models.RecordID:
		return fmt.Sprint(v.ID)
	case *models.RecordID:
		return fmt.Sprint(v.ID)
	}
	return fmt.Sprint(row["id"])
}

// AlbumOpts customizes album creation
type AlbumOpts struct {
	Title  string
	Date   string
	Tracks []string
	Image  string
}

// CreateAlbum inserts an album with sensible defaults
func (f *Factory) CreateAlbum(t *testing.T, opts ...func(*AlbumOpts)) *model.Album {
	t.Helper()

	o := &AlbumOpts{
		Title:  "Album " + randomID(),
		Date:   "2025-01-01",
		Tracks: []string{"Intro", "Title Track"},
		Image:  "https://cdn.test/album/" + randomID() + ".jpg",
	}
	for _, fn := range opts {
		fn(o)
	}

	row := f.create(t, `
		CREATE album CONTENT {
			title: $title, date: $date, description: "", tracks: $tracks,
			video_url: "", image: $image, created_on: time::now(), updated_on: time::now()
		}`,
		map[string]interface{}{"title": o.Title, "date": o.Date, "tracks": o.Tracks, "image": o.Image})

	return &model.Album{ID: key(row), Title: o.Title, Date: o.Date, Tracks: o.Tracks, Image: o.Image}
}

// WithAlbumDate overrides the release date
func WithAlbumDate(date string) func(*AlbumOpts) {
	return func(o *AlbumOpts) { o.Date = date }
}

// CreateGalleryImage inserts one gallery document
func (f *Factory) CreateGalleryImage(t *testing.T, createdOn time.Time) *model.GalleryImage {
	t.Helper()

	url := "https://cdn.test/gallery/" + randomID() + ".png"
	row := f.create(t, `CREATE gallery CONTENT { url: $url, created_on: $created_on }`,
		map[string]interface{}{"url": url, "created_on": createdOn.UTC()})

	return &model.GalleryImage{ID: key(row), URL: url, CreatedAt: createdOn}
}

// CreateNotice inserts a notice of the given type
func (f *Factory) CreateNotice(t *testing.T, noticeType model.NoticeType) *model.Notice {
	t.Helper()

	title := "Notice " + randomID()
	row := f.create(t, `CREATE notice CONTENT { type: $type, title: $title, content: "<p>hi</p>", created_on: time::now() }`,
		map[string]interface{}{"type": string(noticeType), "title": title})

	return &model.Notice{ID: key(row), Type: noticeType, Title: title, Content: "<p>hi</p>"}
}

// CreateScheduleEvent inserts an event spanning [start, end]
func (f *Factory) CreateScheduleEvent(t *testing.T, start, end time.Time, eventType model.ScheduleType) *model.ScheduleEvent {
	t.Helper()

	title := "Event " + randomID()
	row := f.create(t, `
		CREATE schedule CONTENT {
			starts_at: $starts_at, ends_at: $ends_at, type: $type, title: $title,
			all_day: false, created_on: time::now(), updated_on: time::now()
		}`,
		map[string]interface{}{"starts_at": start.UTC(), "ends_at": end.UTC(), "type": string(eventType), "title": title})

	return &model.ScheduleEvent{ID: key(row), Start: start, End: end, Type: eventType, Title: title}
}

// CreateVideo inserts a video for the given YouTube id
func (f *Factory) CreateVideo(t *testing.T, youTubeID string) *model.Video {
	t.Helper()

	src := "https://www.youtube.com/watch?v=" + youTubeID
	title := "Video " + randomID()
	row := f.create(t, `CREATE video CONTENT { title: $title, src: $src, created_on: time::now() }`,
		map[string]interface{}{"title": title, "src": src})

	return &model.Video{ID: key(row), Title: title, Src: src, VideoID: youTubeID}
}
