package config

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// readSourceFile reads a system-of-record's YAML configuration from fs.
// These files belong to other systems, so no environment overrides apply.
func readSourceFile(fs afero.Fs, path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetFs(fs)
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return v, nil
}
