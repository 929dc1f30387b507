package run

import (
	"log/syslog"

	"github.com/StikStore/stikstore.github.io/common"
	"github.com/sirupsen/logrus"
	lsyslog "github.com/sirupsen/logrus/hooks/syslog"
)

// AddSyslogHooks mirrors log entries to the local syslog daemon, useful when
// the sync runs from a cron job instead of CI.
func AddSyslogHooks() {
	logrus.Println("Adding syslog hook")

	hook, err := lsyslog.NewSyslogHook("", "", syslog.LOG_INFO|syslog.LOG_DAEMON, flagLogAppName)
	if err == nil {
		common.AddLogHook(hook)
	} else {
		logrus.WithError(err).Println("failed initializing syslog hook")
	}
}
