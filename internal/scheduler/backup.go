package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/library/internal/config"
)

const (
	backupPrefix     = "library-"
	backupSuffix     = ".db"
	backupTimeLayout = "20060102-150405.000"
)

var ErrBackupInProgress = errors.New("backup already in progress")

// Backuper writes a consistent copy of the catalog to destPath.
type Backuper interface {
	Backup(ctx context.Context, destPath string) error
}

// BackupScheduler takes periodic snapshots of the library database file
type BackupScheduler struct {
	db  Backuper
	cfg config.Backup
	now func() time.Time

	cron        *cron.Cron
	entryID     cron.EntryID
	mu          sync.RWMutex
	isRunning   bool
	isBackingUp bool
	cancelFunc  context.CancelFunc
}

// NewBackupScheduler creates a new scheduler instance
func NewBackupScheduler(db Backuper, cfg config.Backup) *BackupScheduler {
	return &BackupScheduler{
		db:   db,
		cfg:  cfg,
		now:  time.Now,
		cron: cron.New(cron.WithParser(scheduleParser)),
	}
}

// BackupFileName names the backup taken at t.
func BackupFileName(t time.Time) string {
	return backupPrefix + t.Format(backupTimeLayout) + backupSuffix
}

// Start begins the scheduler if backups are enabled
func (s *BackupScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.cfg.Enabled {
		log.Printf("Backup scheduler: disabled")
		return nil
	}

	if err := ValidateCronSchedule(s.cfg.Schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.cfg.Schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.cfg.Schedule, func() {
		s.runBackup()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule backup job: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	nextRun, _ := NextRunAfter(s.cfg.Schedule, s.now())
	log.Printf("Backup scheduler: started with schedule '%s' (%s) into %s. Next run: %v",
		s.cfg.Schedule,
		GetCronDescription(s.cfg.Schedule),
		s.cfg.Dir,
		nextRun)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for a running backup and stops the scheduler
func (s *BackupScheduler) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	entryID := s.entryID
	cancel := s.cancelFunc
	s.cancelFunc = nil
	s.mu.Unlock()

	// A job in flight takes the lock in RunNow, so wait without holding it
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.cron.Remove(entryID)

	if cancel != nil {
		cancel()
	}

	log.Printf("Backup scheduler: stopped")
}

// RunNow takes a backup immediately and returns the file written.
func (s *BackupScheduler) RunNow(ctx context.Context) (string, error) {
	s.mu.Lock()
	if s.isBackingUp {
		s.mu.Unlock()
		return "", ErrBackupInProgress
	}
	s.isBackingUp = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.isBackingUp = false
		s.mu.Unlock()
	}()

	if err := os.MkdirAll(s.cfg.Dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	dest := nextBackupPath(s.cfg.Dir, s.now())
	if err := s.db.Backup(ctx, dest); err != nil {
		return "", fmt.Errorf("failed to back up library: %w", err)
	}

	removed, err := PruneBackups(s.cfg.Dir, s.cfg.Keep)
	if err != nil {
		return dest, fmt.Errorf("backup written but pruning failed: %w", err)
	}
	if len(removed) > 0 {
		log.Printf("Backup: pruned %d old backup(s)", len(removed))
	}

	return dest, nil
}

// IsRunning returns whether the scheduler is active
func (s *BackupScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// IsBackingUp returns whether a backup is currently being written
func (s *BackupScheduler) IsBackingUp() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isBackingUp
}

// GetNextRunTime returns when the next backup will occur
func (s *BackupScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

func (s *BackupScheduler) runBackup() {
	start := time.Now()
	dest, err := s.RunNow(context.Background())
	if errors.Is(err, ErrBackupInProgress) {
		log.Printf("Backup: skipped (already running)")
		return
	}
	if err != nil {
		log.Printf("Backup: failed: %v", err)
		return
	}
	log.Printf("Backup: wrote %s in %v", dest, time.Since(start).Round(time.Millisecond))
}

// PruneBackups deletes the oldest backups in dir so that at most keep remain.
// A keep of zero or less keeps everything. Files not named by BackupFileName
// are left alone.
func PruneBackups(dir string, keep int) ([]string, error) {
	if keep <= 0 {
		return nil, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var backups []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !isBackupName(name) {
			continue
		}
		backups = append(backups, name)
	}

	if len(backups) <= keep {
		return nil, nil
	}

	// Timestamped names sort chronologically
	sort.Sort(sort.Reverse(sort.StringSlice(backups)))

	var removed []string
	for _, name := range backups[keep:] {
		path := filepath.Join(dir, name)
		if err := os.Remove(path); err != nil {
			return removed, err
		}
		removed = append(removed, path)
	}
	return removed, nil
}

// nextBackupPath names the backup for at, moving forward a millisecond at a
// time past names already taken so VACUUM INTO never meets an existing file.
func nextBackupPath(dir string, at time.Time) string {
	for {
		dest := filepath.Join(dir, BackupFileName(at))
		if _, err := os.Stat(dest); os.IsNotExist(err) {
			return dest
		}
		at = at.Add(time.Millisecond)
	}
}

func isBackupName(name string) bool {
	if !strings.HasPrefix(name, backupPrefix) || !strings.HasSuffix(name, backupSuffix) {
		return false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, backupPrefix), backupSuffix)
	_, err := time.Parse(backupTimeLayout, stamp)
	return err == nil
}
