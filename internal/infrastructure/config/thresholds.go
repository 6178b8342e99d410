package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Hec-S/Supplement-Guard-sub003/internal/domain/service"
)

// LoadThresholds overlays the YAML document at path onto the default
// thresholds. Keys absent from the file keep their defaults; an empty path or
// a missing file yields the defaults unchanged. The result is validated.
func LoadThresholds(path string) (service.Thresholds, error) {
	th := service.DefaultThresholds()
	if path == "" {
		return th, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return th, nil
	}
	if err != nil {
		return service.Thresholds{}, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &th); err != nil {
		return service.Thresholds{}, fmt.Errorf("unmarshal %s: %w", path, err)
	}
	if err := th.Validate(); err != nil {
		return service.Thresholds{}, fmt.Errorf("invalid thresholds in %s: %w", path, err)
	}
	return th, nil
}
