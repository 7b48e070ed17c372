package parsing

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"golang.org/x/sync/singleflight"

	"cv-reader/cv/model"
	"cv-reader/cv/pipeline"
	"cv-reader/internal/cache"
	"cv-reader/internal/telemetry"
	"cv-reader/internal/textprovider"
	"cv-reader/internal/util"
)

// ExtractFunc supplies document text from uploaded bytes. Tests stub it;
// production wires textprovider.Extract.
type ExtractFunc func(data []byte, fileName string) (string, error)

// Service runs the parse path: fingerprint, cache lookup, text extraction,
// pipeline, cache fill. Concurrent requests for the same fingerprint share
// one pipeline invocation per process via singleflight; the pipeline
// itself is stateless, so duplicates across processes are merely
// redundant.
type Service struct {
	Cache   cache.Store
	TTL     time.Duration
	Extract ExtractFunc

	group singleflight.Group
}

// Result is the outcome of one parse request.
type Result struct {
	Fingerprint string
	Cached      bool
	Record      model.CVRecord
}

// ParseUpload parses an uploaded document. The fingerprint is taken over
// the original file bytes, so re-uploads of the same file hit the cache
// regardless of filename.
func (s *Service) ParseUpload(ctx context.Context, fileName string, data []byte) (Result, error) {
	extract := s.Extract
	if extract == nil {
		extract = textprovider.Extract
	}
	fingerprint := util.Fingerprint(data)
	return s.parse(ctx, fingerprint, func() (string, error) {
		return extract(data, fileName)
	})
}

// ParseText parses pre-extracted text, fingerprinted over the text itself.
func (s *Service) ParseText(ctx context.Context, text string) (Result, error) {
	fingerprint := util.Fingerprint([]byte(text))
	return s.parse(ctx, fingerprint, func() (string, error) {
		return text, nil
	})
}

func (s *Service) parse(ctx context.Context, fingerprint string, text func() (string, error)) (Result, error) {
	key := cache.Key(fingerprint)

	if record, ok := s.cacheGet(ctx, key); ok {
		return Result{Fingerprint: fingerprint, Cached: true, Record: record}, nil
	}

	value, err, _ := s.group.Do(key, func() (interface{}, error) {
		// Re-check under the flight: a concurrent duplicate may have
		// filled the cache while this request waited.
		if record, ok := s.cacheGet(ctx, key); ok {
			return Result{Fingerprint: fingerprint, Cached: true, Record: record}, nil
		}
		documentText, err := text()
		if err != nil {
			return Result{}, err
		}
		record := pipeline.Parse(documentText)
		s.cachePut(ctx, key, record)
		return Result{Fingerprint: fingerprint, Record: record}, nil
	})
	if err != nil {
		return Result{}, err
	}
	return value.(Result), nil
}

// cacheGet reads a record; a backend failure degrades to a miss so the
// request parses through instead of failing.
func (s *Service) cacheGet(ctx context.Context, key string) (model.CVRecord, bool) {
	if s.Cache == nil {
		return model.CVRecord{}, false
	}
	data, err := s.Cache.Get(ctx, key)
	if errors.Is(err, cache.ErrMiss) {
		return model.CVRecord{}, false
	}
	if err != nil {
		telemetry.Warn("cache.get_failed", map[string]any{"key": key, "error": err.Error()})
		return model.CVRecord{}, false
	}
	var record model.CVRecord
	if err := json.Unmarshal(data, &record); err != nil {
		telemetry.Warn("cache.decode_failed", map[string]any{"key": key, "error": err.Error()})
		return model.CVRecord{}, false
	}
	return record, true
}

func (s *Service) cachePut(ctx context.Context, key string, record model.CVRecord) {
	if s.Cache == nil {
		return
	}
	data, err := json.Marshal(record)
	if err != nil {
		telemetry.Warn("cache.encode_failed", map[string]any{"key": key, "error": err.Error()})
		return
	}
	ttl := s.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if err := s.Cache.Set(ctx, key, data, ttl); err != nil {
		telemetry.Warn("cache.set_failed", map[string]any{"key": key, "error": err.Error()})
	}
}
