package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fansite-cms/api/internal/blob"
	"github.com/fansite-cms/api/internal/model"
)

// ============================================================================
// Mock Repositories
// ============================================================================

type mockAlbumRepo struct {
	listFunc    func(ctx context.Context) ([]*model.Album, error)
	getByIDFunc func(ctx context.Context, id string) (*model.Album, error)
	createFunc  func(ctx context.Context, album *model.Album) error
	updateFunc  func(ctx context.Context, album *model.Album) error
	deleteFunc  func(ctx context.Context, id string) error
}

func (m *mockAlbumRepo) List(ctx context.Context) ([]*model.Album, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockAlbumRepo) GetByID(ctx context.Context, id string) (*model.Album, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockAlbumRepo) Create(ctx context.Context, album *model.Album) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, album)
	}
	album.ID = "album1"
	return nil
}

func (m *mockAlbumRepo) Update(ctx context.Context, album *model.Album) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, album)
	}
	return nil
}

func (m *mockAlbumRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockGalleryRepo struct {
	listFunc       func(ctx context.Context) ([]*model.GalleryImage, error)
	getByIDFunc    func(ctx context.Context, id string) (*model.GalleryImage, error)
	getByIDsFunc   func(ctx context.Context, ids []string) ([]*model.GalleryImage, error)
	createManyFunc func(ctx context.Context, urls []string) ([]*model.GalleryImage, error)
	deleteFunc     func(ctx context.Context, id string) error
	deleteManyFunc func(ctx context.Context, ids []string) error
}

func (m *mockGalleryRepo) List(ctx context.Context) ([]*model.GalleryImage, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockGalleryRepo) GetByID(ctx context.Context, id string) (*model.GalleryImage, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockGalleryRepo) GetByIDs(ctx context.Context, ids []string) ([]*model.GalleryImage, error) {
	if m.getByIDsFunc != nil {
		return m.getByIDsFunc(ctx, ids)
	}
	return nil, nil
}

func (m *mockGalleryRepo) CreateMany(ctx context.Context, urls []string) ([]*model.GalleryImage, error) {
	if m.createManyFunc != nil {
		return m.createManyFunc(ctx, urls)
	}
	images := make([]*model.GalleryImage, 0, len(urls))
	for i, u := range urls {
		images = append(images, &model.GalleryImage{ID: string(rune('a' + i)), URL: u})
	}
	return images, nil
}

func (m *mockGalleryRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockGalleryRepo) DeleteMany(ctx context.Context, ids []string) error {
	if m.deleteManyFunc != nil {
		return m.deleteManyFunc(ctx, ids)
	}
	return nil
}

type mockNoticeRepo struct {
	listFunc    func(ctx context.Context) ([]*model.Notice, error)
	getByIDFunc func(ctx context.Context, id string) (*model.Notice, error)
	createFunc  func(ctx context.Context, notice *model.Notice) error
	updateFunc  func(ctx context.Context, notice *model.Notice) error
	deleteFunc  func(ctx context.Context, id string) error
}

func (m *mockNoticeRepo) List(ctx context.Context) ([]*model.Notice, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockNoticeRepo) GetByID(ctx context.Context, id string) (*model.Notice, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockNoticeRepo) Create(ctx context.Context, notice *model.Notice) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, notice)
	}
	notice.ID = "notice1"
	return nil
}

func (m *mockNoticeRepo) Update(ctx context.Context, notice *model.Notice) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, notice)
	}
	return nil
}

func (m *mockNoticeRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockScheduleRepo struct {
	listFunc      func(ctx context.Context) ([]*model.ScheduleEvent, error)
	listRangeFunc func(ctx context.Context, from, to time.Time) ([]*model.ScheduleEvent, error)
	getByIDFunc   func(ctx context.Context, id string) (*model.ScheduleEvent, error)
	createFunc    func(ctx context.Context, event *model.ScheduleEvent) error
	updateFunc    func(ctx context.Context, event *model.ScheduleEvent) error
	deleteFunc    func(ctx context.Context, id string) error
}

func (m *mockScheduleRepo) List(ctx context.Context) ([]*model.ScheduleEvent, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockScheduleRepo) ListRange(ctx context.Context, from, to time.Time) ([]*model.ScheduleEvent, error) {
	if m.listRangeFunc != nil {
		return m.listRangeFunc(ctx, from, to)
	}
	return nil, nil
}

func (m *mockScheduleRepo) GetByID(ctx context.Context, id string) (*model.ScheduleEvent, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockScheduleRepo) Create(ctx context.Context, event *model.ScheduleEvent) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, event)
	}
	event.ID = "sched1"
	return nil
}

func (m *mockScheduleRepo) Update(ctx context.Context, event *model.ScheduleEvent) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, event)
	}
	return nil
}

func (m *mockScheduleRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockVideoRepo struct {
	getByIDFunc func(ctx context.Context, id string) (*model.Video, error)
	createFunc  func(ctx context.Context, video *model.Video) error
	updateFunc  func(ctx context.Context, video *model.Video) error
	deleteFunc  func(ctx context.Context, id string) error
}

func (m *mockVideoRepo) List(ctx context.Context) ([]*model.Video, error) {
	return []*model.Video{}, nil
}

func (m *mockVideoRepo) GetByID(ctx context.Context, id string) (*model.Video, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockVideoRepo) Create(ctx context.Context, video *model.Video) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, video)
	}
	video.ID = "video1"
	return nil
}

func (m *mockVideoRepo) Update(ctx context.Context, video *model.Video) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, video)
	}
	return nil
}

func (m *mockVideoRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockMemberRepo struct {
	listFunc    func(ctx context.Context) ([]*model.MemberProfile, error)
	getByIDFunc func(ctx context.Context, id string) (*model.MemberProfile, error)
	upsertFunc  func(ctx context.Context, profile *model.MemberProfile) error
}

func (m *mockMemberRepo) List(ctx context.Context) ([]*model.MemberProfile, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockMemberRepo) GetByID(ctx context.Context, id string) (*model.MemberProfile, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockMemberRepo) Upsert(ctx context.Context, profile *model.MemberProfile) error {
	if m.upsertFunc != nil {
		return m.upsertFunc(ctx, profile)
	}
	return nil
}

type mockSettingsRepo struct {
	getFunc func(ctx context.Context) (*model.Settings, error)
	putFunc func(ctx context.Context, settings *model.Settings) error
}

func (m *mockSettingsRepo) Get(ctx context.Context) (*model.Settings, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx)
	}
	return nil, nil
}

func (m *mockSettingsRepo) Put(ctx context.Context, settings *model.Settings) error {
	if m.putFunc != nil {
		return m.putFunc(ctx, settings)
	}
	return nil
}

// ============================================================================
// Blob store and files
// ============================================================================

var errStorage = errors.New("storage unavailable")

// memStore records puts and deletes. Put fails for object names whose
// source file name contains failOn.
type memStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
	failOn  string
}

func newMemStore() *memStore {
	return &memStore{objects: make(map[string][]byte)}
}

func (s *memStore) Put(ctx context.Context, obj blob.Object) (string, error) {
	data, err := io.ReadAll(obj.Body)
	if err != nil {
		return "", err
	}
	if s.failOn != "" && strings.Contains(string(data), s.failOn) {
		return "", errStorage
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	url := "https://cdn.test/" + obj.Name
	s.objects[url] = data
	return url, nil
}

func (s *memStore) Delete(ctx context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[url]; !ok {
		return blob.ErrNotFound
	}
	delete(s.objects, url)
	s.deleted = append(s.deleted, url)
	return nil
}

func (s *memStore) urls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.objects))
	for u := range s.objects {
		out = append(out, u)
	}
	sort.Strings(out)
	return out
}

func (s *memStore) put(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[url] = []byte("seed")
}

type fakeFile struct {
	name        string
	contentType string
	body        string
}

func newFakeFile(name, body string) *fakeFile {
	return &fakeFile{name: name, contentType: "image/png", body: body}
}

func (f *fakeFile) Name() string        { return f.name }
func (f *fakeFile) ContentType() string { return f.contentType }
func (f *fakeFile) Size() int64         { return int64(len(f.body)) }
func (f *fakeFile) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader([]byte(f.body))), nil
}

func strPtr(s string) *string { return &s }
