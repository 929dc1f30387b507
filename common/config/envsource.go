package config

import (
	"os"
	"strings"
)

// EnvSource reads options from the environment, "patreon.access_token" is
// looked up as PATREON_ACCESS_TOKEN.
type EnvSource struct {
	// Getenv defaults to os.Getenv
	Getenv func(key string) string
}

func (e *EnvSource) GetValue(key string) interface{} {
	getenv := e.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	v := getenv(EnvKey(key))
	if v == "" {
		return nil
	}
	return v
}

func (e *EnvSource) Name() string {
	return "env"
}

func EnvKey(key string) string {
	properKey := strings.ToUpper(key)
	return strings.Replace(properKey, ".", "_", -1)
}

// MapSource serves values from a fixed map, used for command line overrides.
type MapSource map[string]string

func (m MapSource) GetValue(key string) interface{} {
	v, ok := m[key]
	if !ok || v == "" {
		return nil
	}
	return v
}

func (m MapSource) Name() string {
	return "flags"
}
