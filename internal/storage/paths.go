package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const appName = "chessrules"

// A dataRoot says where per-user application data lives on one platform:
// an environment variable, if set, or a path below the home directory.
type dataRoot struct {
	env  string
	home []string
}

var dataRoots = map[string]dataRoot{
	"darwin":  {home: []string{"Library", "Application Support"}},
	"windows": {env: "APPDATA", home: []string{"AppData", "Roaming"}},
}

// Linux and other Unix-like systems.
var defaultDataRoot = dataRoot{env: "XDG_DATA_HOME", home: []string{".local", "share"}}

func (r dataRoot) resolve(getenv func(string) string, homeDir func() (string, error)) (string, error) {
	if r.env != "" {
		if dir := getenv(r.env); dir != "" {
			return dir, nil
		}
	}
	home, err := homeDir()
	if err != nil {
		return "", fmt.Errorf("home directory: %w", err)
	}
	return filepath.Join(append([]string{home}, r.home...)...), nil
}

func rootFor(goos string) dataRoot {
	if r, ok := dataRoots[goos]; ok {
		return r
	}
	return defaultDataRoot
}

func ensureDir(parts ...string) (string, error) {
	dir := filepath.Join(parts...)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// DataDir returns the chessrules directory under the platform data root,
// e.g. ~/.local/share/chessrules, creating it if needed.
func DataDir() (string, error) {
	root, err := rootFor(runtime.GOOS).resolve(os.Getenv, os.UserHomeDir)
	if err != nil {
		return "", err
	}
	return ensureDir(root, appName)
}

// DatabaseDir returns the default badger directory used by Open.
func DatabaseDir() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return ensureDir(dataDir, "perft")
}
