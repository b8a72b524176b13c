// Package backup takes point-in-time copies of the store file and prunes old ones.
//
// Snapshots are named kanban_<label>_YYYYMMDD_HHMMSS.db in UTC. When two snapshots land
// in the same second a _NNN sequence is appended so names stay unique and
// sort in creation order.
package backup

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/natefinch/atomic"
)

const (
	filePrefix      = "kanban_"
	fileExt         = ".db"
	timestampLayout = "20060102_150405"
)

// SideFileSuffixes are the write-ahead log companions of a store file.
var SideFileSuffixes = []string{"-wal", "-shm"}

var (
	labelPattern = regexp.MustCompile(`^[A-Za-z0-9-]+$`)
	namePattern  = regexp.MustCompile(`^kanban_[A-Za-z0-9-]+_(\d{8}_\d{6})(?:_(\d{3}))?\.db$`)
)

// Info describes one snapshot in the backup directory.
type Info struct {
	Filename  string    `json:"filename"`
	Path      string    `json:"path"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"createdAt"`
}

// Service owns one backup directory for one store file.
type Service struct {
	dbPath string
	dir    string
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for best-effort failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithClock overrides time.Now for snapshot names.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a Service copying dbPath into backupDir.
func NewService(dbPath, backupDir string, opts ...Option) *Service {
	s := &Service{
		dbPath: dbPath,
		dir:    backupDir,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the backup directory.
func (s *Service) Dir() string {
	return s.dir
}

// Snapshot copies the store file into the backup directory and returns the
// new file's path. Side files are copied when present; failing to copy one is
// logged and does not fail the snapshot.
func (s *Service) Snapshot(label string) (string, error) {
	if !labelPattern.MatchString(label) {
		return "", fmt.Errorf("%w: %q", ErrInvalidLabel, label)
	}

	src, err := os.Open(s.dbPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNoDatabase, s.dbPath)
		}
		return "", fmt.Errorf("failed to open database file: %w", err)
	}
	defer src.Close()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	dest, err := s.nextPath(label)
	if err != nil {
		return "", err
	}
	if err := atomic.WriteFile(dest, src); err != nil {
		return "", fmt.Errorf("failed to copy database to %s: %w", dest, err)
	}

	for _, suffix := range SideFileSuffixes {
		s.copySideFile(s.dbPath+suffix, dest+suffix)
	}

	s.logger.Info("Created backup", "path", dest, "label", label)
	return dest, nil
}

// nextPath picks the first unused name for label at the current second.
// Names use UTC so a DST fall-back never produces a name older than the last one.
func (s *Service) nextPath(label string) (string, error) {
	base := filePrefix + label + "_" + s.now().UTC().Format(timestampLayout)

	candidate := filepath.Join(s.dir, base+fileExt)
	for seq := 1; ; seq++ {
		if _, err := os.Stat(candidate); errors.Is(err, fs.ErrNotExist) {
			return candidate, nil
		} else if err != nil {
			return "", fmt.Errorf("failed to check %s: %w", candidate, err)
		}
		if seq > 999 {
			return "", fmt.Errorf("too many backups named %s in one second", base)
		}
		candidate = filepath.Join(s.dir, fmt.Sprintf("%s_%03d%s", base, seq, fileExt))
	}
}

func (s *Service) copySideFile(src, dest string) {
	f, err := os.Open(src)
	if errors.Is(err, fs.ErrNotExist) {
		return
	}
	if err != nil {
		s.logger.Warn("Failed to open side file for backup", "path", src, "error", err)
		return
	}
	defer f.Close()

	if err := atomic.WriteFile(dest, f); err != nil {
		s.logger.Warn("Failed to copy side file", "path", src, "error", err)
	}
}

// List returns the snapshots in the backup directory, newest first.
// Side files and unrelated files are ignored. A missing directory is an empty list.
func (s *Service) List() ([]Info, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []Info{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	type entry struct {
		info Info
		seq  string
	}
	var found []entry
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), fileExt) {
			continue
		}
		m := namePattern.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		createdAt, err := time.ParseInLocation(timestampLayout, m[1], time.UTC)
		if err != nil {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			s.logger.Warn("Failed to stat backup", "file", e.Name(), "error", err)
			continue
		}
		found = append(found, entry{
			info: Info{
				Filename:  e.Name(),
				Path:      filepath.Join(s.dir, e.Name()),
				Size:      fi.Size(),
				CreatedAt: createdAt,
			},
			seq: m[2],
		})
	}

	sort.SliceStable(found, func(i, j int) bool {
		a, b := found[i], found[j]
		if !a.info.CreatedAt.Equal(b.info.CreatedAt) {
			return a.info.CreatedAt.After(b.info.CreatedAt)
		}
		if a.seq != b.seq {
			return a.seq > b.seq
		}
		return a.info.Filename > b.info.Filename
	})

	backups := make([]Info, len(found))
	for i, f := range found {
		backups[i] = f.info
	}
	return backups, nil
}

// Retain keeps the keep newest snapshots and removes the rest together with
// their side files. Removal is best effort: failures are logged and skipped.
// Returns the number of snapshots removed.
func (s *Service) Retain(keep int) (int, error) {
	if keep < 0 {
		return 0, fmt.Errorf("keep must not be negative, got %d", keep)
	}

	backups, err := s.List()
	if err != nil {
		return 0, err
	}
	if len(backups) <= keep {
		return 0, nil
	}

	removed := 0
	for _, b := range backups[keep:] {
		if err := os.Remove(b.Path); err != nil {
			s.logger.Warn("Failed to remove old backup", "path", b.Path, "error", err)
			continue
		}
		removed++
		for _, suffix := range SideFileSuffixes {
			if err := os.Remove(b.Path + suffix); err != nil && !errors.Is(err, fs.ErrNotExist) {
				s.logger.Warn("Failed to remove backup side file", "path", b.Path+suffix, "error", err)
			}
		}
	}

	if removed > 0 {
		s.logger.Info("Removed old backups", "removed", removed, "kept", keep)
	}
	return removed, nil
}
