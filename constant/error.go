package constant

import "errors"

// Structured error codes returned by the configuration library
var (
	ErrInternalServer       = errors.New("DXC-0000")
	ErrUnknownKey           = errors.New("DXC-0001")
	ErrUnknownRule          = errors.New("DXC-0002")
	ErrInvalidDocument      = errors.New("DXC-0003")
	ErrUnresolvedToken      = errors.New("DXC-0004")
	ErrMissingAPIKey        = errors.New("DXC-0005")
	ErrInvalidSecretPayload = errors.New("DXC-0006")
	ErrConfigFileExists     = errors.New("DXC-0007")
)
