package config

// Merge layers override on top of base: every non-zero field of override
// wins. Neither argument is modified.
func Merge(base, override *Config) *Config {
	result := &Config{}
	if base != nil {
		*result = *base
	}
	if override == nil {
		return result
	}

	if override.DataFile != "" {
		result.DataFile = override.DataFile
	}
	if override.OutputFormat != "" {
		result.OutputFormat = override.OutputFormat
	}
	if override.LogFormat != "" {
		result.LogFormat = override.LogFormat
	}
	if override.Severity.Light != 0 {
		result.Severity.Light = override.Severity.Light
	}
	if override.Severity.Moderate != 0 {
		result.Severity.Moderate = override.Severity.Moderate
	}
	if override.Display.Cards != 0 {
		result.Display.Cards = override.Display.Cards
	}
	if override.Display.SparklinePoints != 0 {
		result.Display.SparklinePoints = override.Display.SparklinePoints
	}
	if override.Display.MAWindow != 0 {
		result.Display.MAWindow = override.Display.MAWindow
	}
	return result
}
