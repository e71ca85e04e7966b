package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fansite-cms/api/internal/model"
	"github.com/fansite-cms/api/internal/service"
)

// ============================================================================
// Mock services
// ============================================================================

type mockAlbumService struct {
	ListFunc   func(ctx context.Context) ([]*model.Album, error)
	GetFunc    func(ctx context.Context, id string) (*model.Album, error)
	CreateFunc func(ctx context.Context, req *model.CreateAlbumRequest, cover service.File) (*model.Album, error)
	UpdateFunc func(ctx context.Context, id string, req *model.UpdateAlbumRequest, cover service.File) (*model.Album, error)
	DeleteFunc func(ctx context.Context, id string) error
}

func (m *mockAlbumService) List(ctx context.Context) ([]*model.Album, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []*model.Album{}, nil
}

func (m *mockAlbumService) Get(ctx context.Context, id string) (*model.Album, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, service.ErrAlbumNotFound
}

func (m *mockAlbumService) Create(ctx context.Context, req *model.CreateAlbumRequest, cover service.File) (*model.Album, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, req, cover)
	}
	return &model.Album{ID: "a1", Title: req.Title}, nil
}

func (m *mockAlbumService) Update(ctx context.Context, id string, req *model.UpdateAlbumRequest, cover service.File) (*model.Album, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, req, cover)
	}
	return &model.Album{ID: id}, nil
}

func (m *mockAlbumService) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

type mockGalleryService struct {
	CreateBatchFunc func(ctx context.Context, files []service.File) ([]*model.GalleryImage, error)
	DeleteBatchFunc func(ctx context.Context, req *model.DeleteGalleryRequest) error
}

func (m *mockGalleryService) List(ctx context.Context) ([]*model.GalleryImage, error) {
	return []*model.GalleryImage{}, nil
}

func (m *mockGalleryService) Get(ctx context.Context, id string) (*model.GalleryImage, error) {
	return nil, service.ErrGalleryImageNotFound
}

func (m *mockGalleryService) CreateBatch(ctx context.Context, files []service.File) ([]*model.GalleryImage, error) {
	if m.CreateBatchFunc != nil {
		return m.CreateBatchFunc(ctx, files)
	}
	return []*model.GalleryImage{}, nil
}

func (m *mockGalleryService) Delete(ctx context.Context, id string) error {
	return nil
}

func (m *mockGalleryService) DeleteBatch(ctx context.Context, req *model.DeleteGalleryRequest) error {
	if m.DeleteBatchFunc != nil {
		return m.DeleteBatchFunc(ctx, req)
	}
	return nil
}

type mockNoticeService struct {
	CreateFunc func(ctx context.Context, req *model.CreateNoticeRequest) (*model.Notice, error)
	UpdateFunc func(ctx context.Context, id string, req *model.UpdateNoticeRequest) (*model.Notice, error)
}

func (m *mockNoticeService) List(ctx context.Context) ([]*model.Notice, error) {
	return []*model.Notice{}, nil
}

func (m *mockNoticeService) Get(ctx context.Context, id string) (*model.Notice, error) {
	return nil, service.ErrNoticeNotFound
}

func (m *mockNoticeService) Create(ctx context.Context, req *model.CreateNoticeRequest) (*model.Notice, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, req)
	}
	return &model.Notice{ID: "n1", Title: req.Title, Type: req.Type}, nil
}

func (m *mockNoticeService) Update(ctx context.Context, id string, req *model.UpdateNoticeRequest) (*model.Notice, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, req)
	}
	return &model.Notice{ID: id}, nil
}

func (m *mockNoticeService) Delete(ctx context.Context, id string) error {
	return nil
}

type mockVideoService struct{}

func (m *mockVideoService) List(ctx context.Context) ([]*model.Video, error) {
	return []*model.Video{}, nil
}

func (m *mockVideoService) Get(ctx context.Context, id string) (*model.Video, error) {
	return nil, service.ErrVideoNotFound
}

func (m *mockVideoService) Create(ctx context.Context, req *model.CreateVideoRequest) (*model.Video, error) {
	return &model.Video{ID: "v1", Title: req.Title, Src: req.Src}, nil
}

func (m *mockVideoService) Update(ctx context.Context, id string, req *model.UpdateVideoRequest) (*model.Video, error) {
	return &model.Video{ID: id}, nil
}

func (m *mockVideoService) Delete(ctx context.Context, id string) error {
	return nil
}

type mockScheduleService struct {
	ParseRangeFunc func(start, end string) (time.Time, time.Time, error)
	CalendarFunc   func(ctx context.Context, from, to time.Time) ([]model.CalendarEvent, error)
}

func (m *mockScheduleService) Get(ctx context.Context, id string) (*model.ScheduleEvent, error) {
	return nil, service.ErrScheduleNotFound
}

func (m *mockScheduleService) Create(ctx context.Context, req *model.CreateScheduleRequest) (*model.ScheduleEvent, error) {
	return &model.ScheduleEvent{ID: "s1", Title: req.Title, Type: req.Type}, nil
}

func (m *mockScheduleService) Update(ctx context.Context, id string, req *model.UpdateScheduleRequest) (*model.ScheduleEvent, error) {
	return &model.ScheduleEvent{ID: id}, nil
}

func (m *mockScheduleService) Delete(ctx context.Context, id string) error {
	return nil
}

func (m *mockScheduleService) ParseRange(start, end string) (time.Time, time.Time, error) {
	if m.ParseRangeFunc != nil {
		return m.ParseRangeFunc(start, end)
	}
	return time.Time{}, time.Time{}, nil
}

func (m *mockScheduleService) Calendar(ctx context.Context, from, to time.Time) ([]model.CalendarEvent, error) {
	if m.CalendarFunc != nil {
		return m.CalendarFunc(ctx, from, to)
	}
	return []model.CalendarEvent{}, nil
}

type mockMemberService struct {
	UpdateFunc func(ctx context.Context, id string, req *model.UpdateMemberRequest, files []service.File) (*model.MemberProfile, error)
}

func (m *mockMemberService) List(ctx context.Context) ([]*model.MemberProfile, error) {
	return []*model.MemberProfile{}, nil
}

func (m *mockMemberService) Get(ctx context.Context, id string) (*model.MemberProfile, error) {
	return nil, service.ErrMemberNotFound
}

func (m *mockMemberService) Update(ctx context.Context, id string, req *model.UpdateMemberRequest, files []service.File) (*model.MemberProfile, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, req, files)
	}
	return &model.MemberProfile{ID: id}, nil
}

type mockSettingsService struct {
	UpdateFunc func(ctx context.Context, req *model.UpdateSettingsRequest, banner service.File) (*model.Settings, error)
}

func (m *mockSettingsService) Get(ctx context.Context) (*model.Settings, error) {
	return model.DefaultSettings(), nil
}

func (m *mockSettingsService) Update(ctx context.Context, req *model.UpdateSettingsRequest, banner service.File) (*model.Settings, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, req, banner)
	}
	return model.DefaultSettings(), nil
}

type mockAuthService struct {
	LoginFunc func(ctx context.Context, req *model.LoginRequest) (*model.Session, error)
}

func (m *mockAuthService) Login(ctx context.Context, req *model.LoginRequest) (*model.Session, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, req)
	}
	return nil, service.ErrInvalidCredentials
}

type mockVerifier struct {
	valid string
}

func (m *mockVerifier) Verify(token string) (*model.AdminIdentity, error) {
	if token == "" || token != m.valid {
		return nil, service.ErrUnauthorized
	}
	return &model.AdminIdentity{Email: "admin@example.com", Role: "admin"}, nil
}

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(ctx context.Context) error { return m.err }

type loginCounter map[string]int

func (c loginCounter) RecordLogin(result string) { c[result]++ }

// ============================================================================
// Request helpers
// ============================================================================

var (
	pngBytes  = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)
	jpegBytes = append([]byte("\xff\xd8\xff\xe0"), bytes.Repeat([]byte{0}, 64)...)
)

type formFile struct {
	field    string
	filename string
	body     []byte
}

// multipartRequest builds a multipart/form-data request. Each field value
// becomes its own part, so repeated keys produce repeated values.
func multipartRequest(t *testing.T, method, target string, fields [][2]string, files ...formFile) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range fields {
		require.NoError(t, mw.WriteField(f[0], f[1]))
	}
	for _, f := range files {
		part, err := mw.CreateFormFile(f.field, f.filename)
		require.NoError(t, err)
		_, err = part.Write(f.body)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func jsonRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// envelope decodes a response body; Data is left raw for the caller.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func decodeEnvelope(t *testing.T, body io.Reader) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(body).Decode(&env))
	return env
}

// serve routes a single request through a mux so PathValue works.
func serve(pattern string, h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	mux.HandleFunc(pattern, h)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}
