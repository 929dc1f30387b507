package sentryhook

import (
	"sync"
	"testing"
	"time"

	"emperror.dev/errors"
	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureTransport struct {
	mu     sync.Mutex
	events []*sentry.Event
}

func (t *captureTransport) Configure(options sentry.ClientOptions) {}

func (t *captureTransport) SendEvent(event *sentry.Event) {
	t.mu.Lock()
	t.events = append(t.events, event)
	t.mu.Unlock()
}

func (t *captureTransport) Flush(timeout time.Duration) bool {
	return true
}

func TestHookCapturesErrors(t *testing.T) {
	transport := &captureTransport{}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:        "https://public@sentry.example.com/1",
		Transport:  transport,
		SampleRate: 1,
	})
	require.NoError(t, err)

	logger := logrus.New()
	logger.AddHook(Hook{})

	logger.WithField("p", "patreon").WithField("campaign", "c42").WithError(errors.New("boom")).Error("Sync failed")
	logger.Warn("not sent")
	logger.WithField("pages", 3).Error("plain message")

	require.Len(t, transport.events, 2)

	first := transport.events[0]
	assert.Equal(t, "patreon", first.Tags["component"])
	assert.Equal(t, "c42", first.Tags["campaign_id"])
	assert.Equal(t, "Sync failed", first.Extra["message"])
	require.NotEmpty(t, first.Exception)
	assert.Equal(t, "boom", first.Exception[0].Value)

	second := transport.events[1]
	assert.Equal(t, "plain message", second.Message)
	assert.Equal(t, "3", second.Extra["pages"])
}

func TestHookTagsErrorDetails(t *testing.T) {
	transport := &captureTransport{}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:        "https://public@sentry.example.com/1",
		Transport:  transport,
		SampleRate: 1,
	})
	require.NoError(t, err)

	logger := logrus.New()
	logger.AddHook(Hook{})

	pageErr := errors.WithDetails(errors.New("fetch members page 3: bad response code"), "page", 3, "status_code", 502, "path", "/campaigns/c42/members")
	logger.WithField("p", "patreon").WithField("member", "m7").WithError(pageErr).Error("Sync failed")

	require.Len(t, transport.events, 1)

	ev := transport.events[0]
	assert.Equal(t, "3", ev.Tags["page"])
	assert.Equal(t, "502", ev.Tags["status_code"])
	assert.Equal(t, "m7", ev.Tags["member_id"])
	assert.Equal(t, "patreon", ev.Tags["component"])
	assert.Equal(t, "/campaigns/c42/members", ev.Extra["path"])
}

func TestHookLevels(t *testing.T) {
	assert.Equal(t, []logrus.Level{logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel}, Hook{}.Levels())
}
