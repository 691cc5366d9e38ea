package configs

import (
	"log"
	"os"
	"path/filepath"
)

type UserSettings struct {
	UserKeysPath    string
	UserConfigsPath string
	UserStatePath   string
}

var UserEnveilSettings *UserSettings

func init() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("error getting home directory: %s", err)
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		log.Fatalf("error getting config directory: %s", err)
	}

	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		stateDir = filepath.Join(homeDir, ".local", "state")
	}

	// This is independent of what document you are editing, so it is ok to init here
	UserEnveilSettings = &UserSettings{
		UserKeysPath:    filepath.Join(configDir, "enveil", "keys"),
		UserConfigsPath: filepath.Join(configDir, "enveil"),
		UserStatePath:   filepath.Join(stateDir, "enveil"),
	}
}

// DefaultPrivateKeyPath returns the default location of the private key.
func DefaultPrivateKeyPath() string {
	return filepath.Join(UserEnveilSettings.UserKeysPath, "private_key.pem")
}

// DefaultCertificatePath returns the default location of the public certificate.
func DefaultCertificatePath() string {
	return filepath.Join(UserEnveilSettings.UserKeysPath, "public_cert.pem")
}
