package utils

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

// dictFilePatterns are the glob patterns a usable dictionary directory
// must match at least one of.
var dictFilePatterns = []string{"*.txt", "*.csv", "*.bin"}

// PathResolver locates the dictionary and config files around the
// wordlex binary, wherever it was installed or launched from.
type PathResolver struct {
	executableDir string
	homeDir       string
	configDir     string
}

// NewPathResolver anchors a resolver at the running executable, with
// symlinks resolved to the real binary location.
func NewPathResolver() (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("No home directory, using /tmp: %v", err)
		homeDir = "/tmp"
	}

	pr := &PathResolver{
		executableDir: filepath.Dir(execPath),
		homeDir:       homeDir,
		configDir:     getConfigDir(homeDir),
	}

	log.Debugf("Path resolver anchored: exec=%s config=%s",
		pr.executableDir, pr.configDir)

	return pr, nil
}

// getConfigDir picks the per-platform config home.
func getConfigDir(homeDir string) string {
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir, ".config", "wordlex")
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, "wordlex")
		}
		return filepath.Join(homeDir, ".config", "wordlex")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "wordlex")
		}
		return filepath.Join(homeDir, "AppData", "Roaming", "wordlex")
	default:
		return filepath.Join(homeDir, ".wordlex")
	}
}

// GetDataDir resolves the directory holding dictionary files. The first
// candidate actually containing loadable files wins; when none does, the
// executable-relative path comes back anyway so the caller has a concrete
// path to report.
func (pr *PathResolver) GetDataDir(userSpecifiedPath string) (string, error) {
	for _, path := range pr.dataDirCandidates(userSpecifiedPath) {
		if pr.isValidDataDir(path) {
			log.Debugf("Using data directory %s", path)
			return path, nil
		}
		log.Debugf("No dictionary files under %s, trying next", path)
	}
	return filepath.Join(pr.executableDir, userSpecifiedPath), nil
}

// dataDirCandidates orders the search: an absolute user path first, then
// the user path relative to the executable and the working directory,
// then the conventional data locations.
func (pr *PathResolver) dataDirCandidates(userSpecifiedPath string) []string {
	var candidates []string

	if filepath.IsAbs(userSpecifiedPath) {
		candidates = append(candidates, userSpecifiedPath)
	}
	candidates = append(candidates, filepath.Join(pr.executableDir, userSpecifiedPath))
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, userSpecifiedPath))
	}

	return append(candidates,
		filepath.Join(pr.executableDir, "data"),
		filepath.Join(filepath.Dir(pr.executableDir), "data"),
		filepath.Join(pr.configDir, "data"),
	)
}

// isValidDataDir accepts only directories holding at least one
// dictionary file.
func (pr *PathResolver) isValidDataDir(path string) bool {
	if stat, err := os.Stat(path); err != nil || !stat.IsDir() {
		return false
	}
	return len(pr.listDictFiles(path)) > 0
}

func (pr *PathResolver) listDictFiles(path string) []string {
	var matches []string
	for _, pattern := range dictFilePatterns {
		found, err := filepath.Glob(filepath.Join(path, pattern))
		if err != nil {
			continue
		}
		matches = append(matches, found...)
	}
	return matches
}

// GetConfigPath returns the full path for a config file, preferring the
// platform config directory and walking down a fallback chain when that
// is not writable. The directory it settles on exists on return.
func (pr *PathResolver) GetConfigPath(filename string) (string, error) {
	if pr.ensureConfigDir(pr.configDir) {
		return filepath.Join(pr.configDir, filename), nil
	}

	fallbackDirs := []string{
		filepath.Join(pr.homeDir, ".wordlex"),
		filepath.Join(os.TempDir(), "wordlex"),
		pr.executableDir,
	}
	for _, dir := range fallbackDirs {
		if pr.ensureConfigDir(dir) {
			path := filepath.Join(dir, filename)
			log.Warnf("Config falling back to %s", path)
			return path, nil
		}
	}

	tempPath := filepath.Join(os.TempDir(), filename)
	log.Warnf("No writable config dir found, using %s", tempPath)
	return tempPath, nil
}

// ensureConfigDir creates dir when missing and verifies it takes writes.
func (pr *PathResolver) ensureConfigDir(dir string) bool {
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Debugf("Could not create config dir %s: %v", dir, err)
		return false
	}
	return writableDir(dir)
}

// GetExecutableDir reports the resolved binary location.
func (pr *PathResolver) GetExecutableDir() string {
	return pr.executableDir
}

// GetConfigDir reports the platform config home the resolver settled on.
func (pr *PathResolver) GetConfigDir() string {
	return pr.configDir
}
