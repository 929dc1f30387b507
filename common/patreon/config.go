package patreon

import (
	"strconv"
	"strings"

	"github.com/StikStore/stikstore.github.io/common/config"
	"github.com/StikStore/stikstore.github.io/common/patreon/patreonapi"
)

const (
	DefaultOutputFile = "subscribers.json"
	DefaultTopTiers   = 2
)

var (
	confAccessToken = config.RegisterRequiredOption("patreon.access_token", "Patreon creator access token, sent as a bearer token", true)
	confOutputFile  = config.RegisterOption("patreonsync.output_file", "File the subscriber snapshot is written to", DefaultOutputFile)
	confUserAgent   = config.RegisterOption("patreonsync.user_agent", "User-Agent sent to the patreon api", patreonapi.DefaultUserAgent)
	confAPIBase     = config.RegisterOption("patreonsync.api_base", "Base url of the patreon v2 api", patreonapi.APIBase)
	confPageSize    = config.RegisterOption("patreonsync.page_size", "Members requested per page (1-1000)", patreonapi.DefaultPageSize)
	confTopTiers    = config.RegisterOption("patreonsync.top_tiers", "How many of the most expensive tiers qualify a patron", DefaultTopTiers)
	confRateLimit   = config.RegisterOption("patreonsync.requests_per_second", "Max api requests per second, 0 disables the limit", DefaultRequestsPerSecond)
)

// Config is built once at startup and passed to everything that talks to
// the api or writes the snapshot.
type Config struct {
	AccessToken string
	OutputFile  string
	UserAgent   string
	APIBase     string
	PageSize    int
	TopTiers    int

	// RequestsPerSecond limits the api request rate, 0 means unlimited
	RequestsPerSecond int

	// DryRun runs the whole pipeline but skips writing the snapshot
	DryRun bool
}

// ConfigError is a configuration problem detected before any network call.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return "config: " + e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// LoadConfig loads the registered options from the configured sources.
func LoadConfig() (*Config, error) {
	config.Load()
	if err := config.Validate(); err != nil {
		return nil, &ConfigError{Err: err}
	}

	conf := &Config{
		AccessToken: strings.TrimSpace(confAccessToken.GetString()),
		OutputFile:  confOutputFile.GetString(),
		UserAgent:   confUserAgent.GetString(),
		APIBase:     confAPIBase.GetString(),
		PageSize:    confPageSize.GetInt(),
		TopTiers:    confTopTiers.GetInt(),

		RequestsPerSecond: confRateLimit.GetInt(),
	}

	if err := conf.Validate(); err != nil {
		return nil, err
	}

	return conf, nil
}

func (c *Config) Validate() error {
	if c.AccessToken == "" {
		return &ConfigError{Err: &config.MissingError{Options: []*config.ConfigOption{confAccessToken}}}
	}

	if c.OutputFile == "" {
		return &ConfigError{Err: invalidOption(confOutputFile, "must not be empty")}
	}

	if c.PageSize < 1 || c.PageSize > 1000 {
		return &ConfigError{Err: invalidOption(confPageSize, "must be between 1 and 1000, got "+strconv.Itoa(c.PageSize))}
	}

	if c.TopTiers < 1 {
		return &ConfigError{Err: invalidOption(confTopTiers, "must be at least 1, got "+strconv.Itoa(c.TopTiers))}
	}

	if c.RequestsPerSecond < 0 {
		return &ConfigError{Err: invalidOption(confRateLimit, "must not be negative, got "+strconv.Itoa(c.RequestsPerSecond))}
	}

	return nil
}

type invalidOptionError struct {
	env string
	msg string
}

func (e *invalidOptionError) Error() string {
	return e.env + " " + e.msg
}

func invalidOption(opt *config.ConfigOption, msg string) error {
	return &invalidOptionError{env: opt.EnvName(), msg: msg}
}
