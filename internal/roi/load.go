package roi

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadProfile reads a firm profile from a YAML file. Keys missing from the file keep
// their DefaultProfile values.
func LoadProfile(path string) (FirmProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FirmProfile{}, fmt.Errorf("read profile: %w", err)
	}
	p := DefaultProfile()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return FirmProfile{}, fmt.Errorf("parse profile: %w", err)
	}
	return p, nil
}
