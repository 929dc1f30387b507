package common

import (
	"net/http"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/StikStore/stikstore.github.io/common/prom"
	"github.com/sirupsen/logrus"
)

type ContextHook struct{}

func (hook ContextHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (hook ContextHook) Fire(entry *logrus.Entry) error {
	// Skip if already provided
	if _, ok := entry.Data["stck"]; ok {
		return nil
	}

	pc := make([]uintptr, 3)
	cnt := runtime.Callers(6, pc)

	for i := 0; i < cnt; i++ {
		fu := runtime.FuncForPC(pc[i] - 1)
		if fu == nil {
			continue
		}

		name := fu.Name()
		if !strings.Contains(name, "github.com/sirupsen/logrus") {
			file, line := fu.FileLine(pc[i] - 1)

			entry.Data["stck"] = filepath.Base(name) + ":" + filepath.Base(file) + ":" + strconv.Itoa(line)
			break
		}
	}
	return nil
}

// MetricsTransport counts api responses by status class and logs every
// request at debug level.
type MetricsTransport struct {
	Inner http.RoundTripper
}

func (t *MetricsTransport) RoundTrip(request *http.Request) (*http.Response, error) {
	inner := t.Inner
	if inner == nil {
		inner = http.DefaultTransport
	}

	resp, err := inner.RoundTrip(request)

	class := "error"
	if resp != nil {
		class = strconv.Itoa(resp.StatusCode/100) + "xx"
	}
	prom.APIResponses.WithLabelValues(class).Inc()

	logrus.WithField("class", class).Debug("patreon api ", request.Method, " ", request.URL.Path)

	return resp, err
}
