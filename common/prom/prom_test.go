package prom

import (
	"io/ioutil"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkRun(t *testing.T) {
	now := time.Unix(1700000000, 0)

	MarkRun(true, now)
	assert.Equal(t, float64(1), testutil.ToFloat64(LastRunSuccess))
	assert.Equal(t, float64(1700000000), testutil.ToFloat64(LastSuccess))

	MarkRun(false, now.Add(time.Hour))
	assert.Equal(t, float64(0), testutil.ToFloat64(LastRunSuccess))
	// a failed run keeps the last success time
	assert.Equal(t, float64(1700000000), testutil.ToFloat64(LastSuccess))
}

func TestWriteTextfile(t *testing.T) {
	Subscribers.Set(7)

	path := filepath.Join(t.TempDir(), "patreonsync.prom")
	require.NoError(t, WriteTextfile(path))

	b, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "patreonsync_subscribers 7")
	assert.NotContains(t, string(b), "go_goroutines")
}

func TestWriteTextfileDisabled(t *testing.T) {
	assert.NoError(t, WriteTextfile(""))
}
