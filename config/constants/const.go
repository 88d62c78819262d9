package constants

import (
	"os"
	"path/filepath"
)

const DefaultHomeEnv string = "XCMBRIDGE_HOME"
const ConfigEnv string = "XCMBRIDGE_CONFIG"

// Name of the config file, without extension
const ConfigName string = "xcmbridge"

var DefaultHome string

func init() {
	if home := os.Getenv(DefaultHomeEnv); home != "" {
		DefaultHome = home
		return
	}
	// ~/.xcmbridge default
	userHomeDir, err := os.UserHomeDir()
	if err != nil {
		DefaultHome = "/data"
	} else {
		DefaultHome = filepath.Join(userHomeDir, ".xcmbridge")
	}
}
