package datastore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/learningjournal/core/internal/infrastructure/config"
)

// Store owns the data directory that holds the collection documents
type Store struct {
	Fs     afero.Fs
	config config.StorageConfig
	perm   os.FileMode
}

// New opens the data directory on the OS filesystem, creating it if needed
func New(cfg config.StorageConfig) (*Store, error) {
	return NewWithFs(afero.NewOsFs(), cfg)
}

// NewWithFs opens the data directory on fs
func NewWithFs(fs afero.Fs, cfg config.StorageConfig) (*Store, error) {
	perm, err := cfg.Perm()
	if err != nil {
		return nil, err
	}

	if err := fs.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	info, err := fs.Stat(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to stat data directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("data path %s is not a directory", cfg.DataDir)
	}

	return &Store{
		Fs:     fs,
		config: cfg,
		perm:   perm,
	}, nil
}

// Dir returns the data directory
func (s *Store) Dir() string {
	return s.config.DataDir
}

// FileMode returns the permission used for collection documents
func (s *Store) FileMode() os.FileMode {
	return s.perm
}

// ReflectionsPath returns the reflections document path
func (s *Store) ReflectionsPath() string {
	return filepath.Join(s.config.DataDir, s.config.ReflectionsFile)
}

// ProjectsPath returns the projects document path
func (s *Store) ProjectsPath() string {
	return filepath.Join(s.config.DataDir, s.config.ProjectsFile)
}

// HealthCheck verifies the data directory exists and accepts writes
func (s *Store) HealthCheck() error {
	info, err := s.Fs.Stat(s.config.DataDir)
	if err != nil {
		return fmt.Errorf("data directory health check failed: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("data directory health check failed: %s is not a directory", s.config.DataDir)
	}

	probe := filepath.Join(s.config.DataDir, ".health-"+uuid.NewString())
	if err := afero.WriteFile(s.Fs, probe, []byte("ok"), s.perm); err != nil {
		return fmt.Errorf("data directory is not writable: %w", err)
	}
	if err := s.Fs.Remove(probe); err != nil {
		return fmt.Errorf("failed to remove health probe: %w", err)
	}

	return nil
}

// Ping checks that the data directory is still reachable
func (s *Store) Ping() error {
	_, err := s.Fs.Stat(s.config.DataDir)
	return err
}

// GetStorageInfo returns basic information about the data directory
func (s *Store) GetStorageInfo() map[string]interface{} {
	info := map[string]interface{}{
		"data_dir":  s.config.DataDir,
		"file_mode": s.perm.String(),
	}

	if abs, err := filepath.Abs(s.config.DataDir); err == nil {
		info["absolute_path"] = abs
	}

	entries, err := afero.ReadDir(s.Fs, s.config.DataDir)
	if err != nil {
		info["error"] = err.Error()
		return info
	}

	var total int64
	for _, e := range entries {
		if !e.IsDir() {
			total += e.Size()
		}
	}
	info["files"] = len(entries)
	info["total_bytes"] = total

	return info
}
