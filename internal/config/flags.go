package config

import (
	"flag"
)

// Command-line overrides for the fixed launch parameters. Flags are applied
// after environment defaults, so arguments given on the command line always
// win; repeated flags resolve to the last occurrence per normal flag
// semantics.
func init() {
	RegisterOverrideFlags(flag.CommandLine)
}

// RegisterOverrideFlags declares the launch-parameter override flags on fs.
func RegisterOverrideFlags(fs *flag.FlagSet) {
	fs.Int("netuid", 0, "override the subnet identifier")
	fs.String("subtensor.network", "", "override the subtensor network name")
	fs.Int("axon.port", 0, "override the miner axon listen port")
	fs.Int("axon.external-port", 0, "override the externally advertised port")
	fs.Int("validator.port", 0, "override the validator listen port")
}

func applyOverrides(cfg *AppConfig) {
	if flag.CommandLine.Parsed() {
		ApplyFlagOverrides(cfg, flag.CommandLine)
	}
}

// ApplyFlagOverrides copies explicitly-set override flags from fs into cfg.
// Unset flags leave the environment-derived values untouched.
func ApplyFlagOverrides(cfg *AppConfig, fs *flag.FlagSet) {
	fs.Visit(func(f *flag.Flag) {
		getter, ok := f.Value.(flag.Getter)
		if !ok {
			return
		}
		switch f.Name {
		case "netuid":
			cfg.Netuid = getter.Get().(int)
		case "subtensor.network":
			cfg.SubtensorNetwork = getter.Get().(string)
		case "axon.port":
			cfg.Port = getter.Get().(int)
		case "axon.external-port":
			cfg.ExternalPort = getter.Get().(int)
		case "validator.port":
			cfg.ValidatorPort = getter.Get().(int)
		}
	})
}
