package filestore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/questionboard/core/internal/domain/entities"
	"github.com/questionboard/core/internal/infrastructure/config"
)

// File is the JSON collection file backing the question store. It holds no
// cached state; every read goes to disk.
type File struct {
	path   string
	indent bool
	mode   os.FileMode
	mu     sync.Mutex
}

// New creates a handle for the configured collection file. The file is not
// touched until the first read or write.
func New(cfg config.StoreConfig) *File {
	mode := cfg.FileMode
	if mode == 0 {
		mode = 0o644
	}
	return &File{
		path:   cfg.Path,
		indent: cfg.Indent,
		mode:   mode,
	}
}

// Path returns the collection file path
func (f *File) Path() string {
	return f.path
}

// ReadAll loads and decodes the whole collection
func (f *File) ReadAll() ([]entities.Question, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, f.storageErr("read", err)
	}
	return f.decode(data)
}

// WriteAll serializes the whole collection and overwrites the file. The file
// must already exist.
func (f *File) WriteAll(questions []entities.Question) error {
	data, err := f.encode(questions)
	if err != nil {
		return f.storageErr("encode", err)
	}

	w, err := os.OpenFile(f.path, os.O_WRONLY|os.O_TRUNC, f.mode)
	if err != nil {
		return f.storageErr("write", err)
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return f.storageErr("write", err)
	}
	if err := w.Close(); err != nil {
		return f.storageErr("write", err)
	}
	return nil
}

// WithLock runs fn as one read-modify-write cycle. Cycles issued through the
// same File never interleave. The context is only checked before the cycle
// starts.
func (f *File) WithLock(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	return fn()
}

// Init creates the collection file holding an empty array. It reports false
// without touching the file when one already exists.
func (f *File) Init(ctx context.Context) (bool, error) {
	created := false
	err := f.WithLock(ctx, func() error {
		if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
			return f.storageErr("init", err)
		}
		w, err := os.OpenFile(f.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, f.mode)
		if err != nil {
			if errors.Is(err, os.ErrExist) {
				return nil
			}
			return f.storageErr("init", err)
		}
		if _, err := w.Write([]byte("[]")); err != nil {
			_ = w.Close()
			return f.storageErr("init", err)
		}
		if err := w.Close(); err != nil {
			return f.storageErr("init", err)
		}
		created = true
		return nil
	})
	return created, err
}

// HealthCheck verifies the file exists and decodes as a collection
func (f *File) HealthCheck(ctx context.Context) error {
	return f.WithLock(ctx, func() error {
		if _, err := f.ReadAll(); err != nil {
			return fmt.Errorf("collection health check failed: %w", err)
		}
		return nil
	})
}

func (f *File) decode(data []byte) ([]entities.Question, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		if len(trimmed) > 0 && !json.Valid(trimmed) {
			return nil, f.storageErr("decode", errors.New("invalid JSON"))
		}
		return nil, f.storageErr("decode", entities.ErrNotArray)
	}

	var questions []entities.Question
	if err := json.Unmarshal(trimmed, &questions); err != nil {
		return nil, f.storageErr("decode", err)
	}

	for i := range questions {
		questions[i].Normalize()
	}
	if questions == nil {
		questions = []entities.Question{}
	}
	return questions, nil
}

func (f *File) encode(questions []entities.Question) ([]byte, error) {
	if questions == nil {
		questions = []entities.Question{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if f.indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(questions); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func (f *File) storageErr(op string, err error) error {
	return &entities.StorageError{Op: op, Path: f.path, Err: err}
}
