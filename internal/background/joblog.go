package background

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"
)

// JobLog is the plain-text log of the scheduled cleanup job. Each line is
// "2006-01-02 15:04:05 - message".
type JobLog struct {
	path     string
	maxBytes int64
	now      func() time.Time
}

func NewJobLog(path string, maxBytes int64) *JobLog {
	return &JobLog{path: path, maxBytes: maxBytes, now: time.Now}
}

// Rotate empties the log once it has grown past maxBytes. A missing file is fine.
func (l *JobLog) Rotate() error {
	info, err := os.Stat(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	if l.maxBytes > 0 && info.Size() > l.maxBytes {
		return os.Truncate(l.path, 0)
	}
	return nil
}

// Append writes one timestamped line
func (l *JobLog) Append(msg string) error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = fmt.Fprintf(f, "%s - %s\n", l.now().Format("2006-01-02 15:04:05"), msg)
	return err
}

// PurgeSucceeded is the log message for a completed purge
func PurgeSucceeded(rows int64, days int) string {
	return fmt.Sprintf("OK: removidas %d linhas (retenção: %d dias).", rows, days)
}

// PurgeFailed is the log message for a failed purge
func PurgeFailed(err error) string {
	return "ERRO: " + err.Error()
}
