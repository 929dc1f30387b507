package config

import (
	"sort"
	"strconv"
	"strings"
)

type ConfigSource interface {
	GetValue(key string) interface{}
	Name() string
}

type ConfigOption struct {
	Name         string
	Description  string
	DefaultValue interface{}
	LoadedValue  interface{}
	Manager      *ConfigManager

	// Required options fail Validate when no source provides a value
	Required bool

	// Secret options are never printed by the config docs or debug logs
	Secret bool

	ConfigSource ConfigSource
}

func (opt *ConfigOption) LoadValue() {
	newVal := opt.DefaultValue
	opt.ConfigSource = nil

	// later sources take precedence
	for i := len(opt.Manager.sources) - 1; i >= 0; i-- {
		source := opt.Manager.sources[i]

		v := source.GetValue(opt.Name)
		if v != nil {
			newVal = v
			opt.ConfigSource = source
			break
		}
	}

	// parse ahead of time
	if opt.DefaultValue != nil {
		if _, ok := opt.DefaultValue.(int); ok {
			newVal = interface{}(intVal(newVal))
		} else if _, ok := opt.DefaultValue.(bool); ok {
			newVal = interface{}(boolVal(newVal))
		}
	}

	opt.LoadedValue = newVal
}

func (opt *ConfigOption) GetString() string {
	return strVal(opt.LoadedValue)
}

func (opt *ConfigOption) GetInt() int {
	return intVal(opt.LoadedValue)
}

func (opt *ConfigOption) GetBool() bool {
	return boolVal(opt.LoadedValue)
}

// EnvName is the environment variable the option is read from by EnvSource.
func (opt *ConfigOption) EnvName() string {
	return EnvKey(opt.Name)
}

// IsSet reports whether a source provided a value for the option.
func (opt *ConfigOption) IsSet() bool {
	return opt.ConfigSource != nil
}

type ConfigManager struct {
	sources []ConfigSource
	Options map[string]*ConfigOption
}

func NewConfigManager() *ConfigManager {
	return &ConfigManager{
		Options: make(map[string]*ConfigOption),
	}
}

func (c *ConfigManager) AddSource(source ConfigSource) {
	c.sources = append(c.sources, source)
}

func (c *ConfigManager) RegisterOption(name, desc string, defaultValue interface{}) *ConfigOption {
	opt := &ConfigOption{
		Name:         name,
		Description:  desc,
		DefaultValue: defaultValue,
		Manager:      c,
	}

	c.Options[name] = opt
	return opt
}

// RegisterRequiredOption registers an option that has no default and must be
// provided by a source.
func (c *ConfigManager) RegisterRequiredOption(name, desc string, secret bool) *ConfigOption {
	opt := c.RegisterOption(name, desc, nil)
	opt.Required = true
	opt.Secret = secret
	return opt
}

func (c *ConfigManager) Load() {
	for _, v := range c.Options {
		v.LoadValue()
	}
}

// Validate returns a *MissingError naming every required option without a
// value. Load must have been called first.
func (c *ConfigManager) Validate() error {
	var missing []*ConfigOption
	for _, v := range c.Options {
		if v.Required && strings.TrimSpace(v.GetString()) == "" {
			missing = append(missing, v)
		}
	}

	if len(missing) == 0 {
		return nil
	}

	sort.Slice(missing, func(i, j int) bool {
		return missing[i].Name < missing[j].Name
	})

	return &MissingError{Options: missing}
}

// SortedKeys returns the names of all registered options in order.
func (c *ConfigManager) SortedKeys() []string {
	keys := make([]string, 0, len(c.Options))
	for k := range c.Options {
		keys = append(keys, k)
	}

	sort.Strings(keys)
	return keys
}

// MissingError is returned by Validate.
type MissingError struct {
	Options []*ConfigOption
}

func (e *MissingError) Error() string {
	names := make([]string, len(e.Options))
	for i, v := range e.Options {
		names[i] = v.EnvName()
	}

	return "missing required configuration: " + strings.Join(names, ", ")
}

func strVal(i interface{}) string {
	switch t := i.(type) {
	case string:
		return t
	case int:
		return strconv.FormatInt(int64(t), 10)
	case Stringer:
		return t.String()
	}

	return ""
}

type Stringer interface {
	String() string
}

func intVal(i interface{}) int {
	switch t := i.(type) {
	case string:
		n, _ := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		return int(n)
	case int:
		return t
	}

	return 0
}

func boolVal(i interface{}) bool {
	switch t := i.(type) {
	case string:
		lower := strings.ToLower(strings.TrimSpace(t))
		if lower == "true" || lower == "yes" || lower == "on" || lower == "enabled" || lower == "1" {
			return true
		}

		return false
	case int:
		return t > 0
	case bool:
		return t
	}

	return false
}
