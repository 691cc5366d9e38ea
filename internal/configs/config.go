package configs

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultBlockWidth is the line width used when re-flowing block ciphertext.
const DefaultBlockWidth = 60

type UserConfig struct {
	Keys KeysConfig `toml:"keys"`
	Edit EditConfig `toml:"edit"`
}

type KeysConfig struct {
	PrivateKey  string `toml:"private_key"`
	Certificate string `toml:"certificate"`
}

type EditConfig struct {
	Editor     string `toml:"editor"`
	BlockWidth int    `toml:"block_width"`
}

// LoadUserConfig loads the user configuration from the config file.
// A missing config file is not an error; defaults are returned.
func LoadUserConfig() (*UserConfig, error) {
	configPath := filepath.Join(UserEnveilSettings.UserConfigsPath, "config.toml")

	config := &UserConfig{
		Edit: EditConfig{BlockWidth: DefaultBlockWidth},
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}

	if err := LoadTOML(configPath, config); err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}

	if config.Edit.BlockWidth <= 0 {
		config.Edit.BlockWidth = DefaultBlockWidth
	}

	return config, nil
}

// SaveUserConfig saves the user configuration to the config file.
func SaveUserConfig(config *UserConfig) error {
	configPath := filepath.Join(UserEnveilSettings.UserConfigsPath, "config.toml")

	if err := SaveTOML(configPath, config); err != nil {
		return fmt.Errorf("failed to save user config: %w", err)
	}

	return nil
}

// PrivateKeyPath returns the configured private key path, or the default.
func (c *UserConfig) PrivateKeyPath() string {
	if c.Keys.PrivateKey != "" {
		return c.Keys.PrivateKey
	}
	return DefaultPrivateKeyPath()
}

// CertificatePath returns the configured certificate path, or the default.
func (c *UserConfig) CertificatePath() string {
	if c.Keys.Certificate != "" {
		return c.Keys.Certificate
	}
	return DefaultCertificatePath()
}
