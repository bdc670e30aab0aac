package hashgrid

import "github.com/hupe1980/hashgrid/sh"

// NewDirectionalEncoder returns a spherical-harmonic encoder of view
// directions with degree² outputs. A degree outside [1, 5] is a *ConfigError.
func NewDirectionalEncoder(degree int) (*sh.Encoder, error) {
	enc, err := sh.New(degree)
	if err != nil {
		return nil, translateError(err)
	}
	return enc, nil
}
