package background

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobLog_AppendFormatsLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cleanup.log")
	log := NewJobLog(path, 1024)
	log.now = func() time.Time { return time.Date(2024, 3, 10, 3, 0, 5, 0, time.UTC) }

	require.NoError(t, log.Append(PurgeSucceeded(2, 2)))
	require.NoError(t, log.Append(PurgeFailed(errors.New("connection refused"))))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"2024-03-10 03:00:05 - OK: removidas 2 linhas (retenção: 2 dias).\n"+
			"2024-03-10 03:00:05 - ERRO: connection refused\n",
		string(data))
}

func TestJobLog_RotateTruncatesOversizedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cleanup.log")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("x", 2048)), 0o640))

	log := NewJobLog(path, 1024)
	require.NoError(t, log.Rotate())
	require.NoError(t, log.Append("OK"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(data), " - OK\n"))
	assert.Less(t, len(data), 100)
}

func TestJobLog_RotateKeepsSmallFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cleanup.log")
	require.NoError(t, os.WriteFile(path, []byte("earlier line\n"), 0o640))

	require.NoError(t, NewJobLog(path, 1024).Rotate())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "earlier line\n", string(data))
}

func TestJobLog_RotateMissingFile(t *testing.T) {
	log := NewJobLog(filepath.Join(t.TempDir(), "absent.log"), 1024)
	assert.NoError(t, log.Rotate())
}
