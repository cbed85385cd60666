package config

import (
	"github.com/akeeba/buildfiles/pkg/errors"
	"github.com/pelletier/go-toml/v2"
)

// ToTOML renders the configuration in the same shape as the defaults file
func (c *Config) ToTOML() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode configuration")
	}
	return data, nil
}
