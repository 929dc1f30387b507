package sentryhook

import (
	"fmt"

	"emperror.dev/errors"
	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

// Hook forwards error level log entries to sentry.
type Hook struct{}

func (hook Hook) Levels() []logrus.Level {
	return []logrus.Level{
		logrus.ErrorLevel,
		logrus.FatalLevel,
		logrus.PanicLevel,
	}
}

func (hook Hook) Fire(entry *logrus.Entry) error {
	hub := sentry.CurrentHub().Clone()
	if hub == nil {
		return nil
	}

	hub.WithScope(func(s *sentry.Scope) {
		for k, v := range entry.Data {
			setField(s, k, v)
		}

		if err, ok := entry.Data[logrus.ErrorKey].(error); ok {
			// details attached with errors.WithDetails, e.g. the failed page
			// or the api status code
			details := errors.GetDetails(err)
			for i := 0; i+1 < len(details); i += 2 {
				setField(s, fmt.Sprint(details[i]), details[i+1])
			}

			s.SetExtra("message", entry.Message)
			hub.CaptureException(err)
		} else {
			hub.CaptureMessage(entry.Message)
		}
	})

	return nil
}

// setField files a log field or error detail as a tag when it is something
// events are grouped or searched by, and as an extra otherwise.
func setField(s *sentry.Scope, k string, v interface{}) {
	strV := fmt.Sprint(v)
	switch k {
	case "p":
		s.SetTag("component", strV)
	case "campaign":
		s.SetTag("campaign_id", strV)
	case "member":
		s.SetTag("member_id", strV)
	case "tier":
		s.SetTag("tier_id", strV)
	case "page", "status_code":
		s.SetTag(k, strV)
	case "stck", logrus.ErrorKey:
	default:
		s.SetExtra(k, strV)
	}
}
