package run

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"emperror.dev/errors"
	"github.com/StikStore/stikstore.github.io/common"
	"github.com/StikStore/stikstore.github.io/common/config"
	"github.com/StikStore/stikstore.github.io/common/patreon"
	"github.com/StikStore/stikstore.github.io/common/prom"
	"github.com/StikStore/stikstore.github.io/common/sentryhook"
	"github.com/getsentry/sentry-go"
	"github.com/natefinch/lumberjack"
	log "github.com/sirupsen/logrus"
)

const (
	ExitOK     = 0
	ExitError  = 1
	ExitConfig = 2
)

var (
	flagOutput string
	flagDryRun bool
	flagDebug  bool

	flagLogTimestamp bool

	flagSysLog        bool
	flagGenConfigDocs bool

	flagLogAppName string

	flagVersion bool
)

var (
	confSentryDSN = config.RegisterOption("patreonsync.sentry_dsn", "Sentry credentials for sentry logging hook", "")
	confLogFile   = config.RegisterOption("patreonsync.log_file", "Also write logs to this file, rotated every 10MB", "")
)

func init() {
	flag.StringVar(&flagOutput, "o", "", "Write the snapshot here instead of the configured output file")
	flag.BoolVar(&flagDryRun, "dry", false, "Do a dryrun, fetch and rank everything but don't write the snapshot")
	flag.BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	flag.BoolVar(&flagSysLog, "syslog", false, "Set to log to syslog (only linux)")
	flag.StringVar(&flagLogAppName, "logappname", "patreonsync", "When using syslog, the application name will be set to this")
	flag.BoolVar(&flagGenConfigDocs, "genconfigdocs", false, "Generate config docs and exit")

	flag.BoolVar(&flagLogTimestamp, "ts", false, "Set to include timestamps in log")
	flag.BoolVar(&flagVersion, "version", false, "Print the version and exit")
}

// Init parses the flags, loads the config sources and sets up logging.
func Init() {
	if !flag.Parsed() {
		flag.Parse()
	}

	if flagVersion {
		fmt.Println(common.VERSION)
		os.Exit(ExitOK)
	}

	config.AddSource(&config.EnvSource{})
	config.AddSource(config.MapSource{"patreonsync.output_file": flagOutput})
	config.Load()

	common.AddLogHook(common.ContextHook{})

	common.SetLogFormatter(&log.TextFormatter{
		DisableTimestamp: !flagLogTimestamp && !common.Testing,
		ForceColors:      common.Testing,
		SortingFunc:      logrusSortingFunc,
	})

	if flagDebug {
		log.SetLevel(log.DebugLevel)
	}

	if flagSysLog {
		AddSyslogHooks()
	}

	if path := confLogFile.GetString(); path != "" {
		common.AddLogOutput(&lumberjack.Logger{
			Filename:   path,
			MaxSize:    10,
			MaxBackups: 3,
		})
	}

	if confSentryDSN.GetString() != "" {
		addSentryHook()
	}
}

// Run performs one sync and returns the process exit code.
func Run() int {
	if flagGenConfigDocs {
		GenConfigDocs(os.Stdout)
		return ExitOK
	}

	log.Info("Starting patreonsync version " + common.VERSION)

	conf, err := patreon.LoadConfig()
	if err != nil {
		log.WithError(err).Error("Invalid configuration")
		flushSentry()
		return ExitCode(err)
	}

	conf.DryRun = flagDryRun

	code := Sync(conf, nil)
	flushSentry()
	return code
}

// Sync runs the pipeline against the api reached through base (the default
// pooled transport if nil), records metrics and maps the outcome to an
// exit code.
func Sync(conf *patreon.Config, base http.RoundTripper) int {
	started := time.Now()

	syncer := patreon.NewSyncer(conf, patreon.NewClient(conf, base))
	_, err := syncer.Run()

	prom.MarkRun(err == nil, time.Now())
	if werr := prom.WriteTextfile(prom.ConfMetricsFile.GetString()); werr != nil {
		log.WithError(werr).Warn("Failed writing metrics textfile")
	}

	if err != nil {
		log.WithError(err).Error("Sync failed")
		return ExitCode(err)
	}

	log.Info("Done in ", time.Since(started).Round(time.Millisecond))
	return ExitOK
}

// ExitCode maps an error from LoadConfig or Sync to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var confErr *patreon.ConfigError
	if errors.As(err, &confErr) {
		return ExitConfig
	}

	return ExitError
}

func addSentryHook() {
	err := sentry.Init(sentry.ClientOptions{
		Dsn:     confSentryDSN.GetString(),
		Release: "patreonsync@" + common.VERSION,
		Debug:   false,
	})

	if err == nil {
		hook := &sentryhook.Hook{}
		common.AddLogHook(hook)
		log.Info("Added Sentry Hook")
	} else {
		log.WithError(err).Error("Failed adding sentry hook")
	}
}

// the process exits right after a run, give queued events a chance to go out
func flushSentry() {
	if confSentryDSN.GetString() != "" {
		sentry.Flush(5 * time.Second)
	}
}

var logSortPriority = []string{
	"time",
	"level",
	"p",
	"msg",
	"stck",
}

func logrusSortingFunc(fields []string) {
	sort.Slice(fields, func(i, j int) bool {

		iPriority := findStringIndex(logSortPriority, fields[i])
		jPriority := findStringIndex(logSortPriority, fields[j])

		if iPriority != -1 && jPriority == -1 {
			return true
		} else if jPriority != -1 && iPriority == -1 {
			return false
		} else if iPriority == -1 && jPriority == -1 {
			return strings.Compare(fields[i], fields[j]) < 0
		}

		// both has priority
		return iPriority < jPriority
	})
}

func findStringIndex(slice []string, s string) int {
	for i, v := range slice {
		if v == s {
			return i
		}
	}

	return -1
}
