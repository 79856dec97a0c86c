package activity

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/five82/gtimer/internal/effects"
)

// ErrNoActivity is returned when the status file is absent or belongs to a
// different activity.
var ErrNoActivity = errors.New("no live activity")

const activityName = "gtimer"

// Status is the on-disk activity record.
type Status struct {
	ID               string    `yaml:"id"`
	Name             string    `yaml:"name"`
	RemainingSeconds int       `yaml:"remaining_seconds"`
	End              time.Time `yaml:"end"`
	Started          time.Time `yaml:"started"`
	Updated          time.Time `yaml:"updated"`
}

// Content returns the display state stored in the record.
func (s Status) Content() effects.ContentState {
	return effects.ContentState{RemainingSeconds: s.RemainingSeconds, End: s.End}
}

// RemainingAt is the remaining seconds as of now. The file is rewritten once
// per tick, so a reader between writes derives the value from End.
func (s Status) RemainingAt(now time.Time) int {
	live := int(s.End.Sub(now) / time.Second)
	if live > s.RemainingSeconds {
		live = s.RemainingSeconds
	}
	if live < 0 {
		return 0
	}
	return live
}

// ProgressAt is the elapsed fraction of the countdown in [0, 1], measured
// from Started to End.
func (s Status) ProgressAt(now time.Time) float64 {
	total := s.End.Sub(s.Started)
	if total <= 0 {
		if now.Before(s.End) {
			return 0
		}
		return 1
	}
	return min(1, max(0, float64(now.Sub(s.Started))/float64(total)))
}

// FileService keeps the activity as a YAML file that shell prompts and
// status bars can read. Only one activity exists at a time.
type FileService struct {
	path string
	now  func() time.Time

	mu sync.Mutex
}

// NewFileService writes to path.
func NewFileService(path string) *FileService {
	return &FileService{path: path, now: time.Now}
}

// Path returns the status file location.
func (s *FileService) Path() string {
	return s.path
}

// Create starts a new activity and returns its id. An existing file is
// replaced.
func (s *FileService) Create(ctx context.Context, content effects.ContentState) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	status := Status{
		ID:               uuid.New().String(),
		Name:             activityName,
		RemainingSeconds: content.RemainingSeconds,
		End:              content.End,
		Started:          now,
		Updated:          now,
	}
	if err := s.writeLocked(status); err != nil {
		return "", fmt.Errorf("create activity: %w", err)
	}
	return status.ID, nil
}

// Update rewrites the content of activity id.
func (s *FileService) Update(ctx context.Context, id string, content effects.ContentState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	status, err := s.ownedLocked(id)
	if err != nil {
		return fmt.Errorf("update activity: %w", err)
	}
	status.RemainingSeconds = content.RemainingSeconds
	status.End = content.End
	status.Updated = s.now()
	if err := s.writeLocked(status); err != nil {
		return fmt.Errorf("update activity: %w", err)
	}
	return nil
}

// End removes the status file for activity id.
func (s *FileService) End(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.ownedLocked(id); err != nil {
		return fmt.Errorf("end activity: %w", err)
	}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("end activity: %w", err)
	}
	return nil
}

func (s *FileService) ownedLocked(id string) (Status, error) {
	status, err := Read(s.path)
	if err != nil {
		return Status{}, err
	}
	if status.ID != id {
		return Status{}, fmt.Errorf("%w: file holds %s, not %s", ErrNoActivity, status.ID, id)
	}
	return status, nil
}

func (s *FileService) writeLocked(status Status) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create activity directory: %w", err)
	}
	data, err := yaml.Marshal(status)
	if err != nil {
		return fmt.Errorf("marshal activity yaml: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write activity file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace activity file: %w", err)
	}
	return nil
}

// Read loads the status file at path. A missing file yields ErrNoActivity.
func Read(path string) (Status, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Status{}, ErrNoActivity
		}
		return Status{}, fmt.Errorf("read activity file: %w", err)
	}
	var status Status
	if err := yaml.Unmarshal(data, &status); err != nil {
		return Status{}, fmt.Errorf("parse activity yaml: %w", err)
	}
	if status.ID == "" {
		return Status{}, ErrNoActivity
	}
	return status, nil
}
