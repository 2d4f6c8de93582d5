package config

import "github.com/spf13/viper"

// Default configuration values.
const (
	// DefaultImplicitQualification is the always-in-scope namespace that is
	// never reported unused.
	DefaultImplicitQualification = "Prelude"

	// DefaultRegistryBinary queries the installed-package registry.
	DefaultRegistryBinary = "ghc-pkg"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

func applyDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("includes", []string{"."})
	viperCfg.SetDefault("import_order_first", []string{})
	viperCfg.SetDefault("import_order_last", []string{})
	viperCfg.SetDefault("prio_module_high", []string{})
	viperCfg.SetDefault("prio_package_high", []string{})
	viperCfg.SetDefault("implicit_qualification", DefaultImplicitQualification)

	viperCfg.SetDefault("registry.binary", DefaultRegistryBinary)

	viperCfg.SetDefault("logging.level", DefaultLogLevel)
	viperCfg.SetDefault("logging.format", DefaultLogFormat)
}
