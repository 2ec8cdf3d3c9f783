package config

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func FuzzConfigUnmarshal(f *testing.F) {
	f.Add([]byte("output_format: json\n"))
	f.Add([]byte("severity:\n  light: 0.1\n  moderate: 0.2\n"))
	f.Add([]byte("display:\n  cards: 6\n  ma_window: 3\n"))
	f.Add([]byte("data_file: [\n"))
	f.Add([]byte(""))

	f.Fuzz(func(t *testing.T, data []byte) {
		var cfg Config
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return
		}
		_ = Validate(&cfg)
		_ = Merge(&cfg, &cfg)
	})
}
