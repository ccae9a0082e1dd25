package config

import (
	gotoml "github.com/pelletier/go-toml/v2"

	rigerrors "github.com/testrig-dev/testrig/pkg/errors"
)

// Generate renders a config as TOML, for writing a starter testrig.toml.
func Generate(cfg *Config) ([]byte, error) {
	data, err := gotoml.Marshal(cfg)
	if err != nil {
		return nil, rigerrors.Wrap(err, rigerrors.ErrInternal, "failed to render configuration")
	}
	return data, nil
}

// GenerateDefault returns the embedded defaults file verbatim, comments
// included, for `testrig config init`.
func GenerateDefault() []byte {
	out := make([]byte, len(defaultConfig))
	copy(out, defaultConfig)
	return out
}
