package utils

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// DirCheckResult reports whether a directory exists (or could be
// created) and whether it accepts writes.
type DirCheckResult struct {
	Exists   bool
	Writable bool
	Error    error
}

// FileExists reports whether path names an existing file.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// EnsureDir creates dirPath and any missing parents.
func EnsureDir(dirPath string) error {
	return os.MkdirAll(dirPath, 0755)
}

// SaveTOMLFile encodes data as TOML into filePath, replacing any
// previous content.
func SaveTOMLFile(data any, filePath string) error {
	file, err := os.Create(filePath)
	if err != nil {
		log.Errorf("Failed to create %s: %v", filePath, err)
		return err
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Errorf("closing config file: %v", err)
		}
	}()
	return toml.NewEncoder(file).Encode(data)
}

// GetAbsolutePath makes configPath absolute when it can, for display in
// logs and status output.
func GetAbsolutePath(configPath string) string {
	if configPath == "" {
		return "unknown"
	}
	if filepath.IsAbs(configPath) {
		return configPath
	}
	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return configPath
	}
	return absPath
}

// writableDir probes a directory with a throwaway file. Permission bits
// alone are not trusted; read-only mounts pass them.
func writableDir(dirPath string) bool {
	probe := filepath.Join(dirPath, ".wlex_write_probe")
	if err := os.WriteFile(probe, []byte{'w'}, 0644); err != nil {
		log.Debugf("Cannot write to directory %s: %v", dirPath, err)
		return false
	}
	os.Remove(probe)
	return true
}

// GetExecutableDir returns the directory of the current executable.
// If this fails too, config init falls back to builtin defaults.
func GetExecutableDir() (string, error) {
	execPath, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(execPath), nil
}

// CheckDirStatus makes sure dirPath exists, creating it when missing,
// and probes it for writability.
func CheckDirStatus(dirPath string) DirCheckResult {
	if _, err := os.Stat(dirPath); err != nil {
		if err := os.MkdirAll(dirPath, 0755); err != nil {
			log.Warnf("Could not create directory %s: %v", dirPath, err)
			return DirCheckResult{Error: err}
		}
	}
	return DirCheckResult{Exists: true, Writable: writableDir(dirPath)}
}
