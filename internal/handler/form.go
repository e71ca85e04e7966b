package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/fansite-cms/api/internal/service"
	"github.com/fansite-cms/api/internal/upload"
)

// multipart form overhead on top of the file limits
const formOverhead = 1 * upload.MB

// parseForm bounds the body to limit plus form overhead and parses it.
// The caller must defer Release on the returned form.
func parseForm(w http.ResponseWriter, r *http.Request, limit int64) (*upload.Form, error) {
	r.Body = http.MaxBytesReader(w, r.Body, limit+formOverhead)
	return upload.Parse(r, upload.DefaultMaxMemory)
}

// optionalString returns a pointer to the field value, or nil when the
// field was not sent.
func optionalString(form *upload.Form, key string) *string {
	if !form.Has(key) {
		return nil
	}
	v := form.Value(key)
	return &v
}

// stringList reads a list field sent either as one JSON array or as
// repeated values ("tracks" or "tracks[]").
func stringList(form *upload.Form, key string) ([]string, bool, error) {
	values := form.Values(key)
	if values == nil {
		values = form.Values(key + "[]")
	}
	if values == nil {
		return nil, false, nil
	}

	if len(values) == 1 && strings.HasPrefix(strings.TrimSpace(values[0]), "[") {
		var list []string
		if err := json.Unmarshal([]byte(values[0]), &list); err != nil {
			return nil, true, errBadBody("%s must be a JSON array of strings", key)
		}
		if list == nil {
			list = []string{}
		}
		return list, true, nil
	}

	list := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			list = append(list, v)
		}
	}
	return list, true, nil
}

// jsonField decodes a JSON-encoded text field into v. It reports whether
// the field was present.
func jsonField(form *upload.Form, key string, v interface{}) (bool, error) {
	if !form.Has(key) {
		return false, nil
	}
	raw := strings.TrimSpace(form.Value(key))
	if raw == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return true, errBadBody("%s must be valid JSON", key)
	}
	return true, nil
}

// asFile converts an optional upload into the service's File interface,
// keeping an absent file a nil interface.
func asFile(f *upload.File) service.File {
	if f == nil {
		return nil
	}
	return f
}

func asFiles(files []*upload.File) []service.File {
	out := make([]service.File, len(files))
	for i, f := range files {
		out[i] = f
	}
	return out
}
