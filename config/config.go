// Package config loads the chaincode's runtime settings from the environment.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

// Config holds runtime settings for the chaincode process.
//
// When both ChaincodeID and ServerAddress are set the chaincode runs as an
// external service that the peer dials; otherwise the peer launches it and
// it connects back using the CORE_* variables Fabric injects.
type Config struct {
	ChaincodeID      string `env:"CHAINCODE_ID"`
	ServerAddress    string `env:"CHAINCODE_SERVER_ADDRESS"`
	TLSDisabled      bool   `env:"CHAINCODE_TLS_DISABLED"        envDefault:"true"`
	TLSKeyFile       string `env:"CHAINCODE_TLS_KEY_FILE"`
	TLSCertFile      string `env:"CHAINCODE_TLS_CERT_FILE"`
	ClientCACertFile string `env:"CHAINCODE_CLIENT_CA_CERT_FILE"`
	LogSpec          string `env:"CHAINCODE_LOG_SPEC"            envDefault:"info"`
}

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ExternalService reports whether the chaincode should serve connections
// itself instead of being launched by the peer.
func (c Config) ExternalService() bool {
	return c.ChaincodeID != "" && c.ServerAddress != ""
}

// Validate checks that settings which only make sense together are complete.
func (c Config) Validate() error {
	if (c.ChaincodeID == "") != (c.ServerAddress == "") {
		return fmt.Errorf("CHAINCODE_ID and CHAINCODE_SERVER_ADDRESS must be set together")
	}
	if c.ExternalService() && !c.TLSDisabled {
		if c.TLSKeyFile == "" || c.TLSCertFile == "" {
			return fmt.Errorf("CHAINCODE_TLS_KEY_FILE and CHAINCODE_TLS_CERT_FILE are required when TLS is enabled")
		}
	}
	return nil
}

// TLSMaterial holds the PEM contents referenced by the TLS file settings.
type TLSMaterial struct {
	Key           []byte
	Cert          []byte
	ClientCACerts []byte
}

// LoadTLS reads the TLS files. It returns an empty TLSMaterial when TLS is
// disabled.
func (c Config) LoadTLS() (TLSMaterial, error) {
	var m TLSMaterial
	if c.TLSDisabled {
		return m, nil
	}
	var err error
	if m.Key, err = os.ReadFile(c.TLSKeyFile); err != nil {
		return TLSMaterial{}, fmt.Errorf("read TLS key: %w", err)
	}
	if m.Cert, err = os.ReadFile(c.TLSCertFile); err != nil {
		return TLSMaterial{}, fmt.Errorf("read TLS cert: %w", err)
	}
	if c.ClientCACertFile != "" {
		if m.ClientCACerts, err = os.ReadFile(c.ClientCACertFile); err != nil {
			return TLSMaterial{}, fmt.Errorf("read client CA certs: %w", err)
		}
	}
	return m, nil
}
