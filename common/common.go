package common

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

const VERSION = "1.2.0"

var (
	// Testing is set when running under a CI test job, makes log output colored and timestamped
	Testing = os.Getenv("PATREONSYNC_TESTING") != ""
)

func AddLogHook(hook logrus.Hook) {
	logrus.AddHook(hook)
}

func SetLogFormatter(formatter logrus.Formatter) {
	logrus.SetFormatter(formatter)
}

// AddLogOutput makes the standard logger write to w in addition to its
// current output.
func AddLogOutput(w io.Writer) {
	logrus.SetOutput(io.MultiWriter(logrus.StandardLogger().Out, w))
}
