package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
)

const (
	MB = 1 << 20

	// DefaultMaxMemory is how much of a multipart body stays in memory
	// before parts spill to temp files.
	DefaultMaxMemory = 8 * MB

	sniffLen = 512
)

var (
	ErrNotMultipart    = errors.New("request is not multipart/form-data")
	ErrFileTooLarge    = errors.New("file exceeds the size limit")
	ErrTotalTooLarge   = errors.New("files exceed the total size limit")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrTooManyFiles    = errors.New("too many files")
	ErrEmptyFile       = errors.New("file is empty")
)

// Rules are the server-side limits for one file field.
type Rules struct {
	MaxFileSize  int64
	MaxTotalSize int64
	MaxFiles     int
	AllowedTypes []string
}

var (
	AlbumCover = Rules{
		MaxFileSize:  20 * MB,
		MaxFiles:     1,
		AllowedTypes: []string{"image/jpeg", "image/png"},
	}
	GalleryImages = Rules{
		MaxFileSize:  30 * MB,
		MaxTotalSize: 30 * MB,
		MaxFiles:     50,
		AllowedTypes: []string{"image/jpeg", "image/png", "image/webp", "image/gif"},
	}
	MemberImages = Rules{
		MaxFileSize:  20 * MB,
		MaxFiles:     10,
		AllowedTypes: []string{"image/jpeg", "image/png", "image/webp"},
	}
	SettingsBanner = Rules{
		MaxFileSize:  20 * MB,
		MaxFiles:     1,
		AllowedTypes: []string{"image/jpeg", "image/png", "image/webp"},
	}
)

func (r Rules) allows(contentType string) bool {
	for _, t := range r.AllowedTypes {
		if t == contentType {
			return true
		}
	}
	return false
}

// Form owns a parsed multipart body. Release removes any temp files and
// must run on every exit path:
//
//	form, err := upload.Parse(r, upload.DefaultMaxMemory)
//	if err != nil { ... }
//	defer form.Release()
type Form struct {
	form     *multipart.Form
	released bool
}

// Parse reads a multipart/form-data request body.
func Parse(r *http.Request, maxMemory int64) (*Form, error) {
	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "multipart/form-data") {
		return nil, ErrNotMultipart
	}

	mr, err := r.MultipartReader()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotMultipart, err)
	}
	form, err := mr.ReadForm(maxMemory)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, ErrTotalTooLarge
		}
		if errors.Is(err, multipart.ErrMessageTooLarge) {
			return nil, ErrTotalTooLarge
		}
		return nil, fmt.Errorf("read multipart form: %w", err)
	}
	return &Form{form: form}, nil
}

// Release removes temp files backing the form. Safe to call more than once.
func (f *Form) Release() error {
	if f == nil || f.released {
		return nil
	}
	f.released = true
	return f.form.RemoveAll()
}

// Has reports whether the form carried the field at all.
func (f *Form) Has(key string) bool {
	_, ok := f.form.Value[key]
	return ok
}

// Value returns the first value of a text field.
func (f *Form) Value(key string) string {
	if vs := f.form.Value[key]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// Values returns all values of a text field.
func (f *Form) Values(key string) []string {
	return f.form.Value[key]
}

// Files validates and returns the files of a field. Field names with and
// without a trailing "[]" are both accepted.
func (f *Form) Files(field string, rules Rules) ([]*File, error) {
	headers := f.form.File[field]
	if len(headers) == 0 {
		headers = f.form.File[field+"[]"]
	}
	if rules.MaxFiles > 0 && len(headers) > rules.MaxFiles {
		return nil, fmt.Errorf("%w: %s allows at most %d", ErrTooManyFiles, field, rules.MaxFiles)
	}

	var total int64
	files := make([]*File, 0, len(headers))
	for _, fh := range headers {
		file, err := inspect(fh, rules)
		if err != nil {
			return nil, err
		}
		total += file.size
		if rules.MaxTotalSize > 0 && total > rules.MaxTotalSize {
			return nil, fmt.Errorf("%w: %s allows %d MB in total", ErrTotalTooLarge, field, rules.MaxTotalSize/MB)
		}
		files = append(files, file)
	}
	return files, nil
}

// File returns the single file of a field, or nil when none was sent.
func (f *Form) File(field string, rules Rules) (*File, error) {
	rules.MaxFiles = 1
	files, err := f.Files(field, rules)
	if err != nil || len(files) == 0 {
		return nil, err
	}
	return files[0], nil
}

func inspect(fh *multipart.FileHeader, rules Rules) (*File, error) {
	if fh.Size == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, fh.Filename)
	}
	if rules.MaxFileSize > 0 && fh.Size > rules.MaxFileSize {
		return nil, fmt.Errorf("%w: %s is larger than %d MB", ErrFileTooLarge, fh.Filename, rules.MaxFileSize/MB)
	}

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", fh.Filename, err)
	}
	defer src.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(src, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read %s: %w", fh.Filename, err)
	}

	contentType := http.DetectContentType(head[:n])
	if len(rules.AllowedTypes) > 0 && !rules.allows(contentType) {
		return nil, fmt.Errorf("%w: %s is %s", ErrUnsupportedType, fh.Filename, contentType)
	}

	return &File{header: fh, contentType: contentType, size: fh.Size}, nil
}

// File is a validated uploaded file.
type File struct {
	header      *multipart.FileHeader
	contentType string
	size        int64
}

// Name is the client-supplied file name.
func (f *File) Name() string { return f.header.Filename }

// ContentType is the sniffed content type.
func (f *File) ContentType() string { return f.contentType }

// Size in bytes.
func (f *File) Size() int64 { return f.size }

// Open returns a fresh reader over the file contents.
func (f *File) Open() (io.ReadCloser, error) {
	return f.header.Open()
}
