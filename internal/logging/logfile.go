package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const logFilePrefix = "tgwops-"

// LogConfig holds configuration for log output.
type LogConfig struct {
	Format        string // "human" (default), "text" or "json"
	Level         string // "DEBUG", "INFO" (default), "WARN", "ERROR"
	Output        string // "-" or empty for stderr, "none" to disable, "auto" for a file in Dir, or a path
	Dir           string // Directory for "auto" and relative paths
	RetentionDays int    // Days to retain auto-generated log files (0 keeps everything)
}

// LogFile manages the lifecycle of the log destination.
type LogFile struct {
	Path   string   // Full path to the log file (empty for stderr or disabled output)
	file   *os.File // Opened file handle (nil for stderr or disabled output)
	writer io.Writer
}

// NewLogFile opens the log destination described by cfg.
// Files are opened in append mode so consecutive runs share a path-specified file.
func NewLogFile(cfg *LogConfig) (*LogFile, error) {
	lf := &LogFile{}

	switch out := strings.TrimSpace(cfg.Output); strings.ToLower(out) {
	case "", "-":
		lf.writer = os.Stderr
		return lf, nil
	case "none":
		lf.writer = io.Discard
		return lf, nil
	case "auto":
		if cfg.Dir == "" {
			return nil, fmt.Errorf("log output %q requires a log directory", out)
		}
		lf.Path = filepath.Join(cfg.Dir, GenerateLogFilename(time.Now().UTC()))
	default:
		if filepath.IsAbs(out) || cfg.Dir == "" {
			lf.Path = out
		} else {
			lf.Path = filepath.Join(cfg.Dir, out)
		}
	}

	dir := filepath.Dir(lf.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory %q: %w", dir, err)
	}
	f, err := os.OpenFile(lf.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file %q: %w", lf.Path, err)
	}
	lf.file = f
	lf.writer = f
	return lf, nil
}

// Writer returns the io.Writer for log output.
func (lf *LogFile) Writer() io.Writer { return lf.writer }

// IsStderr reports whether log output goes to the process stderr.
func (lf *LogFile) IsStderr() bool { return lf.writer == os.Stderr }

// Close closes the log file if one was opened.
func (lf *LogFile) Close() error {
	if lf.file != nil {
		return lf.file.Close()
	}
	return nil
}

// GenerateLogFilename returns tgwops-YYYYMMDD-HHMMSS-sss.log for t.
func GenerateLogFilename(t time.Time) string {
	return fmt.Sprintf("%s%s-%03d.log", logFilePrefix, t.Format("20060102-150405"), t.Nanosecond()/1_000_000)
}

// CleanupOldLogFiles removes tgwops-*.log files older than retentionDays from dir.
// Files that cannot be inspected or removed are skipped.
func CleanupOldLogFiles(dir string, retentionDays int) error {
	if retentionDays <= 0 || dir == "" {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading log directory %q: %w", dir, err)
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, logFilePrefix) || !strings.HasSuffix(name, ".log") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			_ = os.Remove(filepath.Join(dir, name))
		}
	}
	return nil
}
