package config

var Singleton = NewConfigManager()

func AddSource(source ConfigSource) {
	Singleton.AddSource(source)
}

func RegisterOption(name, desc string, defaultValue interface{}) *ConfigOption {
	return Singleton.RegisterOption(name, desc, defaultValue)
}

func RegisterRequiredOption(name, desc string, secret bool) *ConfigOption {
	return Singleton.RegisterRequiredOption(name, desc, secret)
}

func Load() {
	Singleton.Load()
}

func Validate() error {
	return Singleton.Validate()
}
