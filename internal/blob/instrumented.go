package blob

import (
	"context"
	"time"
)

// Recorder receives blob operation outcomes.
type Recorder interface {
	RecordBlobOp(op string, err error, bytes int64, elapsed time.Duration)
}

// Instrumented wraps a Store and reports every operation to a Recorder.
type Instrumented struct {
	Store
	rec Recorder
}

// NewInstrumented wraps store.
func NewInstrumented(store Store, rec Recorder) *Instrumented {
	return &Instrumented{Store: store, rec: rec}
}

func (s *Instrumented) Put(ctx context.Context, obj Object) (string, error) {
	start := time.Now()
	url, err := s.Store.Put(ctx, obj)
	s.rec.RecordBlobOp("put", err, obj.Size, time.Since(start))
	return url, err
}

func (s *Instrumented) Delete(ctx context.Context, url string) error {
	start := time.Now()
	err := s.Store.Delete(ctx, url)
	s.rec.RecordBlobOp("delete", err, 0, time.Since(start))
	return err
}
