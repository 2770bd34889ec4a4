package config

import "flag"

// unsetInt marks an integer flag the user did not pass.
const unsetInt = -1 << 31

var flags = flag.NewFlagSet("vatbake", flag.ExitOnError)

var (
	flagConfig  = flags.String("config", "", "Path to config file")
	flagDebug   = flags.Bool("debug", false, "Enable debug logging")
	flagPattern = flags.String("objs", "", "Printf pattern for per-frame OBJ files")
	flagStart   = flags.Int("start", unsetInt, "First frame to sample")
	flagEnd     = flags.Int("end", unsetInt, "Last frame to sample")
	flagStep    = flags.Int("step", unsetInt, "Frame step")
	flagZCurve  = flags.Bool("zcurve", false, "Lay pixels out along a z-order curve")
	flagLinear  = flags.Bool("linear", false, "Lay pixels out row by row")
	flagMesh    = flags.Bool("mesh", false, "Export the remapped playback mesh")
	flagNoMesh  = flags.Bool("no-mesh", false, "Skip the playback mesh")
	flagPreview = flags.Bool("preview", false, "Also export 8-bit PNG previews")
	flagOut     = flags.String("out", "", "Output directory")
	flagPrefix  = flags.String("prefix", "", "Output filename prefix")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags(args []string) error {
	return flags.Parse(args)
}

// Args returns the non-flag arguments left after ParseFlags.
func Args() []string {
	return flags.Args()
}

// Usage prints flag documentation to the flag set's output.
func Usage() {
	flags.PrintDefaults()
}

// ConfigPath returns the explicit config path if provided via -config.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagPattern != "" {
		cfg.Input.Pattern = *flagPattern
	}
	if *flagStart != unsetInt {
		cfg.Frames.Start = *flagStart
	}
	if *flagEnd != unsetInt {
		cfg.Frames.End = *flagEnd
	}
	if *flagStep != unsetInt {
		cfg.Frames.Step = *flagStep
	}
	if *flagZCurve {
		cfg.Bake.ZCurve = true
	}
	if *flagLinear {
		cfg.Bake.ZCurve = false
	}
	if *flagMesh {
		cfg.Bake.GenerateMesh = true
	}
	if *flagNoMesh {
		cfg.Bake.GenerateMesh = false
	}
	if *flagPreview {
		cfg.Export.Preview = true
	}
	if *flagOut != "" {
		cfg.Export.Dir = *flagOut
	}
	if *flagPrefix != "" {
		cfg.Export.Prefix = *flagPrefix
	}
}
