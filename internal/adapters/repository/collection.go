package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/learningjournal/core/internal/domain/entities"
	"github.com/learningjournal/core/internal/infrastructure/logger"
)

const maxIDAttempts = 8

// Collection names, used in logs and metric labels
const (
	CollectionReflections = "reflections"
	CollectionProjects    = "projects"
)

// Record is anything stored in a Collection
type Record interface {
	RecordID() string
}

// Observer receives store-level events. The metrics package implements it.
type Observer interface {
	ObserveOperation(collection, operation string, duration time.Duration, err error)
	ObserveUnreadable(collection string)
}

type nopObserver struct{}

func (nopObserver) ObserveOperation(string, string, time.Duration, error) {}
func (nopObserver) ObserveUnreadable(string)                              {}

// Collection is an ordered set of records persisted as one JSON array
// document. Every mutation runs load -> compute -> persist under the
// collection's write lock, and persistence replaces the document atomically.
type Collection[T Record] struct {
	name     string
	fs       afero.Fs
	path     string
	perm     os.FileMode
	assignID func(*T, string)
	newID    func() string
	logger   *logger.Logger
	observer Observer

	mu sync.RWMutex
}

// CollectionOption configures a Collection
type CollectionOption func(*collectionOptions)

type collectionOptions struct {
	perm     os.FileMode
	newID    func() string
	logger   *logger.Logger
	observer Observer
}

// WithFileMode sets the permissions of the persisted document
func WithFileMode(perm os.FileMode) CollectionOption {
	return func(o *collectionOptions) { o.perm = perm }
}

// WithIDGenerator replaces the default UUIDv4 generator
func WithIDGenerator(fn func() string) CollectionOption {
	return func(o *collectionOptions) { o.newID = fn }
}

// WithLogger attaches a logger
func WithLogger(l *logger.Logger) CollectionOption {
	return func(o *collectionOptions) { o.logger = l }
}

// WithObserver attaches an Observer
func WithObserver(obs Observer) CollectionOption {
	return func(o *collectionOptions) { o.observer = obs }
}

// NewUUID is the default identifier generator
func NewUUID() string {
	return uuid.NewString()
}

// NewCollection creates a collection backed by the document at path.
// assignID writes an identifier into a record.
func NewCollection[T Record](name string, fs afero.Fs, path string, assignID func(*T, string), opts ...CollectionOption) *Collection[T] {
	o := collectionOptions{
		perm:     0o644,
		newID:    NewUUID,
		logger:   logger.NewNop(),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Collection[T]{
		name:     name,
		fs:       fs,
		path:     path,
		perm:     o.perm,
		assignID: assignID,
		newID:    o.newID,
		logger:   o.logger.WithComponent("collection").WithFields("collection", name),
		observer: o.observer,
	}
}

// Name returns the collection name
func (c *Collection[T]) Name() string { return c.name }

// Path returns the backing document path
func (c *Collection[T]) Path() string { return c.path }

// All returns every record in insertion order. An absent or unreadable
// document yields an empty slice.
func (c *Collection[T]) All(ctx context.Context) []T {
	start := time.Now()
	c.mu.RLock()
	defer c.mu.RUnlock()

	records, _, err := c.load()
	if err != nil {
		c.logger.Errorw("Failed to read collection, serving empty", "path", c.path, "error", err)
		records = []T{}
	}
	c.observer.ObserveOperation(c.name, "list", time.Since(start), err)
	return records
}

// Find returns the record with the given id
func (c *Collection[T]) Find(ctx context.Context, id string) (T, bool, error) {
	start := time.Now()
	c.mu.RLock()
	defer c.mu.RUnlock()

	var zero T
	records, _, err := c.load()
	if err != nil {
		c.observer.ObserveOperation(c.name, "get", time.Since(start), err)
		return zero, false, err
	}

	i := indexOf(records, id)
	c.observer.ObserveOperation(c.name, "get", time.Since(start), nil)
	if i < 0 {
		return zero, false, nil
	}
	return records[i], true, nil
}

// Insert assigns a fresh identifier to record, appends it and persists the
// collection.
func (c *Collection[T]) Insert(ctx context.Context, record T) (T, error) {
	var created T
	err := c.mutate(ctx, "create", func(records []T) ([]T, error) {
		id, err := c.uniqueID(records)
		if err != nil {
			return nil, err
		}
		c.assignID(&record, id)
		created = record
		return append(records, record), nil
	})
	return created, err
}

// Modify applies fn to the record with the given id and persists the
// collection. The identifier is restored after fn runs. found is false when
// no record matches; nothing is written in that case or when fn fails.
func (c *Collection[T]) Modify(ctx context.Context, id string, fn func(*T) error) (updated T, found bool, err error) {
	err = c.mutate(ctx, "update", func(records []T) ([]T, error) {
		i := indexOf(records, id)
		if i < 0 {
			return nil, errNoMatch
		}
		found = true

		next := records[i]
		if err := fn(&next); err != nil {
			return nil, err
		}
		c.assignID(&next, id)
		records[i] = next
		updated = next
		return records, nil
	})
	if errors.Is(err, errNoMatch) {
		return updated, false, nil
	}
	return updated, found, err
}

// Remove deletes the record with the given id and persists the remaining
// collection.
func (c *Collection[T]) Remove(ctx context.Context, id string) (bool, error) {
	err := c.mutate(ctx, "delete", func(records []T) ([]T, error) {
		i := indexOf(records, id)
		if i < 0 {
			return nil, errNoMatch
		}
		return append(records[:i], records[i+1:]...), nil
	})
	if errors.Is(err, errNoMatch) {
		return false, nil
	}
	return err == nil, err
}

// Seed writes records with fresh identifiers when the backing document does
// not exist yet. It reports whether anything was written; an existing
// document, even an empty or unreadable one, is never touched.
func (c *Collection[T]) Seed(ctx context.Context, records []T) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	exists, err := afero.Exists(c.fs, c.path)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", c.path, err)
	}
	if exists {
		return false, nil
	}

	seeded := make([]T, 0, len(records))
	for _, r := range records {
		id, err := c.uniqueID(seeded)
		if err != nil {
			return false, err
		}
		c.assignID(&r, id)
		seeded = append(seeded, r)
	}

	if err := c.save(seeded); err != nil {
		return false, err
	}
	c.logger.Infow("Collection seeded", "path", c.path, "records", len(seeded))
	return true, nil
}

// Exists reports whether the backing document is present
func (c *Collection[T]) Exists() (bool, error) {
	return afero.Exists(c.fs, c.path)
}

// CollectionInfo describes the backing document
type CollectionInfo struct {
	Name       string    `json:"name"`
	Path       string    `json:"path"`
	Exists     bool      `json:"exists"`
	Readable   bool      `json:"readable"`
	Records    int       `json:"records"`
	SizeBytes  int64     `json:"size_bytes"`
	ModifiedAt time.Time `json:"modified_at,omitempty"`
}

// Info inspects the backing document
func (c *Collection[T]) Info() (CollectionInfo, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	info := CollectionInfo{Name: c.name, Path: c.path}
	st, err := c.fs.Stat(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return info, nil
		}
		return info, fmt.Errorf("stat %s: %w", c.path, err)
	}
	info.Exists = true
	info.SizeBytes = st.Size()
	info.ModifiedAt = st.ModTime().UTC()

	records, unreadable, err := c.load()
	if err != nil {
		return info, err
	}
	info.Readable = !unreadable
	info.Records = len(records)
	return info, nil
}

var errNoMatch = errors.New("no matching record")

// mutate is the single read-modify-write path. compute works on a private
// copy of the collection; a compute error aborts without persisting.
func (c *Collection[T]) mutate(ctx context.Context, operation string, compute func([]T) ([]T, error)) (err error) {
	start := time.Now()
	defer func() {
		if errors.Is(err, errNoMatch) || entities.IsValidation(err) {
			c.observer.ObserveOperation(c.name, operation, time.Since(start), nil)
			return
		}
		c.observer.ObserveOperation(c.name, operation, time.Since(start), err)
	}()

	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	records, unreadable, err := c.load()
	if err != nil {
		return err
	}

	next, err := compute(records)
	if err != nil {
		return err
	}

	if unreadable {
		c.preserveUnreadable()
	}
	return c.save(next)
}

// load reads and decodes the document. A missing document is an empty
// collection. A document that does not parse is an empty collection with
// unreadable set. Only I/O failures are returned as errors.
func (c *Collection[T]) load() (records []T, unreadable bool, err error) {
	data, err := afero.ReadFile(c.fs, c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []T{}, false, nil
		}
		return nil, false, fmt.Errorf("read %s: %w", c.path, err)
	}

	if decodeErr := decodeArray(data, &records); decodeErr != nil {
		c.observer.ObserveUnreadable(c.name)
		c.logger.Warnw("Collection document unreadable, treating as empty",
			"path", c.path,
			"error", fmt.Errorf("%w: %v", entities.ErrStorageUnreadable, decodeErr),
		)
		return []T{}, true, nil
	}

	if records == nil {
		records = []T{}
	}
	return records, false, nil
}

// save writes records to a temp file in the same directory and renames it
// over the document.
func (c *Collection[T]) save(records []T) error {
	if records == nil {
		records = []T{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.name, err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(c.path)
	if err := c.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	tmp, err := afero.TempFile(c.fs, dir, "."+filepath.Base(c.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	cleanup := func(cause error) error {
		tmp.Close()
		c.fs.Remove(tmpName)
		return cause
	}

	if _, err := tmp.Write(data); err != nil {
		return cleanup(fmt.Errorf("write temp file: %w", err))
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(fmt.Errorf("sync temp file: %w", err))
	}
	if err := tmp.Close(); err != nil {
		c.fs.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := c.fs.Chmod(tmpName, c.perm); err != nil {
		c.fs.Remove(tmpName)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := c.fs.Rename(tmpName, c.path); err != nil {
		c.fs.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", c.path, err)
	}
	return nil
}

// preserveUnreadable copies an unparseable document aside before it is
// replaced, so its content can be recovered by hand.
func (c *Collection[T]) preserveUnreadable() {
	data, err := afero.ReadFile(c.fs, c.path)
	if err != nil {
		return
	}
	backup := fmt.Sprintf("%s.corrupt-%d", c.path, time.Now().UnixNano())
	if err := afero.WriteFile(c.fs, backup, data, c.perm); err != nil {
		c.logger.Warnw("Failed to preserve unreadable document", "path", c.path, "error", err)
		return
	}
	c.logger.Warnw("Unreadable document preserved before overwrite", "path", c.path, "backup", backup)
}

func decodeArray[T any](data []byte, records *[]T) error {
	if !bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")) {
		return errors.New("document is not a JSON array")
	}
	return json.Unmarshal(data, records)
}

func (c *Collection[T]) uniqueID(records []T) (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id := c.newID()
		if id != "" && indexOf(records, id) < 0 {
			return id, nil
		}
	}
	return "", fmt.Errorf("generate unique id for %s: gave up after %d attempts", c.name, maxIDAttempts)
}

func indexOf[T Record](records []T, id string) int {
	for i, r := range records {
		if r.RecordID() == id {
			return i
		}
	}
	return -1
}
