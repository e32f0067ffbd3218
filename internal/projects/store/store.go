package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/mcardoso/portfolio-backend/internal/projects/domain"
)

// FileStore persists the whole project collection in one JSON file.
//
// Every write is read-modify-write over the full file with no locking:
// two overlapping writes resolve as last-writer-wins. That matches the
// single-administrator usage this service is built for and must not be
// "fixed" with transactions or file locks.
type FileStore struct {
	path string
}

func New(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the location of the backing file.
func (s *FileStore) Path() string {
	return s.path
}

// Ensure creates the data directory and seeds an empty collection when
// the backing file does not exist yet.
func (s *FileStore) Ensure() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return os.WriteFile(s.path, []byte("[]"), 0o644)
	} else if err != nil {
		return err
	}
	return nil
}

// List reads and parses the full collection, newest first. Legacy or
// hand-edited entries are coerced field by field and records without an
// id get one synthesized.
func (s *FileStore) List() ([]domain.Project, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read projects file: %w", err)
	}

	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, domain.ErrCorruptStore
	}

	projects := make([]domain.Project, 0, len(raw))
	for _, entry := range raw {
		p := domain.Project{
			ID:          asString(entry["id"]),
			Title:       asString(entry["title"]),
			Description: asString(entry["description"]),
			Image:       asString(entry["image"]),
			Tags:        domain.NormalizeTags(entry["tags"]),
			GithubURL:   asString(entry["githubUrl"]),
			LiveURL:     asString(entry["liveUrl"]),
		}
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		projects = append(projects, p)
	}
	return projects, nil
}

// Create validates the input, prepends the new record and rewrites the
// whole file in one pass.
func (s *FileStore) Create(in domain.NewProjectInput) (domain.Project, error) {
	project, err := in.Normalize()
	if err != nil {
		return domain.Project{}, err
	}

	projects, err := s.List()
	if err != nil {
		return domain.Project{}, err
	}

	updated := append([]domain.Project{project}, projects...)
	if err := s.write(updated); err != nil {
		return domain.Project{}, err
	}
	return project, nil
}

// Delete removes the record whose id matches exactly, rewriting the file.
func (s *FileStore) Delete(id string) error {
	projects, err := s.List()
	if err != nil {
		return err
	}

	idx := -1
	for i, p := range projects {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return domain.ErrNotFound
	}

	return s.write(append(projects[:idx], projects[idx+1:]...))
}

func (s *FileStore) write(projects []domain.Project) error {
	data, err := json.MarshalIndent(projects, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, append(data, '\n'), 0o644)
}

func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}
