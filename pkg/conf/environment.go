package conf

import (
	"os"
	"path/filepath"
)

const (
	// Igloo environment variables

	// RCPathEnvVar overrides the profile file location
	RCPathEnvVar = "IGLOORC"

	// rcFileName is the default profile file name inside the user home
	rcFileName = ".igloorc"
)

// GetRCPath returns the profile file location, preferring the environment
// override, then the user home, then the working directory.
func GetRCPath() string {
	if rcPath := os.Getenv(RCPathEnvVar); rcPath != "" {
		return rcPath
	}
	userHome, err := os.UserHomeDir()
	if err == nil {
		return filepath.Join(userHome, rcFileName)
	}
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	return filepath.Join(cwd, rcFileName)
}

// GetKnownHostsPath returns the OpenSSH known hosts file location.
func GetKnownHostsPath() string {
	userHome, err := os.UserHomeDir()
	if err != nil {
		userHome = "."
	}
	return filepath.Join(userHome, ".ssh", "known_hosts")
}
