package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

const appName = "tock"

var (
	// ErrNoHome indicates that the user's home directory could not be determined
	ErrNoHome = errors.New("unable to determine home directory")

	// ErrPathManagerInit indicates that the PathManager failed to initialize
	ErrPathManagerInit = errors.New("failed to initialize path manager")
)

// PathManager manages all file system paths for tock
type PathManager struct {
	configDir   string // User config directory
	dataDir     string // User data directory (task and stats documents)
	stateDir    string // User state directory (log file)
	projectRoot string // Current working directory
}

// newPathManager creates and initializes a new PathManager
func newPathManager() (*PathManager, error) {
	configDir, err := getUserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("get config directory: %w", err)
	}

	dataDir, err := getUserDataDir()
	if err != nil {
		return nil, fmt.Errorf("get data directory: %w", err)
	}

	stateDir, err := getUserStateDir()
	if err != nil {
		return nil, fmt.Errorf("get state directory: %w", err)
	}

	projectRoot, err := getProjectRoot()
	if err != nil {
		return nil, fmt.Errorf("get project root: %w", err)
	}

	return &PathManager{
		configDir:   configDir,
		dataDir:     dataDir,
		stateDir:    stateDir,
		projectRoot: projectRoot,
	}, nil
}

// getUserConfigDir returns the platform-appropriate user config directory
func getUserConfigDir() (string, error) {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, appName), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", ErrNoHome
	}

	switch runtime.GOOS {
	case "darwin":
		// prefer ~/.config/tock when ~/.config exists, else the native location
		dotConfigDir := filepath.Join(homeDir, ".config")
		if info, err := os.Stat(dotConfigDir); err == nil && info.IsDir() {
			return filepath.Join(dotConfigDir, appName), nil
		}
		return filepath.Join(homeDir, "Library", "Application Support", appName), nil

	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, appName), nil
		}
		return filepath.Join(homeDir, "AppData", "Roaming", appName), nil

	default:
		return filepath.Join(homeDir, ".config", appName), nil
	}
}

// getUserDataDir returns the platform-appropriate user data directory
func getUserDataDir() (string, error) {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, appName), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", ErrNoHome
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir, "Library", "Application Support", appName, "data"), nil

	case "windows":
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			return filepath.Join(localAppData, appName, "data"), nil
		}
		return filepath.Join(homeDir, "AppData", "Local", appName, "data"), nil

	default:
		return filepath.Join(homeDir, ".local", "share", appName), nil
	}
}

// getUserStateDir returns the platform-appropriate user state directory
func getUserStateDir() (string, error) {
	if xdgState := os.Getenv("XDG_STATE_HOME"); xdgState != "" {
		return filepath.Join(xdgState, appName), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", ErrNoHome
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir, "Library", "Logs", appName), nil

	case "windows":
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			return filepath.Join(localAppData, appName, "state"), nil
		}
		return filepath.Join(homeDir, "AppData", "Local", appName, "state"), nil

	default:
		return filepath.Join(homeDir, ".local", "state", appName), nil
	}
}

// getProjectRoot returns the current working directory
func getProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get current directory: %w", err)
	}
	return cwd, nil
}

// ConfigDir returns the user config directory
func (pm *PathManager) ConfigDir() string {
	return pm.configDir
}

// DataDir returns the default directory for persisted tasks and stats
func (pm *PathManager) DataDir() string {
	return pm.dataDir
}

// StateDir returns the user state directory
func (pm *PathManager) StateDir() string {
	return pm.stateDir
}

// ConfigFile returns the path to the user config file
func (pm *PathManager) ConfigFile() string {
	return filepath.Join(pm.configDir, "config.yaml")
}

// LogFile returns the path the TUI logs to
func (pm *PathManager) LogFile() string {
	return filepath.Join(pm.stateDir, appName+".log")
}

// ProjectConfigDir returns the project-level config directory (.tock/)
func (pm *PathManager) ProjectConfigDir() string {
	return filepath.Join(pm.projectRoot, "."+appName)
}

// ProjectConfigFile returns the path to the project-local config file
func (pm *PathManager) ProjectConfigFile() string {
	return filepath.Join(pm.ProjectConfigDir(), "config.yaml")
}

// EnvFile returns the .env file loaded before config
func (pm *PathManager) EnvFile() string {
	return filepath.Join(pm.projectRoot, ".env")
}

// EnsureDirs creates all necessary directories with appropriate permissions
func (pm *PathManager) EnsureDirs() error {
	//nolint:gosec // G301: 0755 is appropriate for config directory
	if err := os.MkdirAll(pm.configDir, 0755); err != nil {
		return fmt.Errorf("create config directory %s: %w", pm.configDir, err)
	}

	//nolint:gosec // G301: 0755 is appropriate for data directory
	if err := os.MkdirAll(pm.dataDir, 0755); err != nil {
		return fmt.Errorf("create data directory %s: %w", pm.dataDir, err)
	}

	// state directory is non-fatal; logging falls back to stderr
	//nolint:gosec // G301: 0755 is appropriate for state directory
	_ = os.MkdirAll(pm.stateDir, 0755)

	return nil
}

// Package-level singleton with lazy initialization
var (
	pathManager     *PathManager
	pathManagerOnce sync.Once
	pathManagerErr  error
	pathManagerMu   sync.RWMutex // Protects pathManager for reset operations
)

// getPathManager returns the global PathManager, initializing it on first call
func getPathManager() (*PathManager, error) {
	pathManagerMu.RLock()
	if pathManager != nil {
		defer pathManagerMu.RUnlock()
		return pathManager, pathManagerErr
	}
	pathManagerMu.RUnlock()

	pathManagerMu.Lock()
	defer pathManagerMu.Unlock()

	// Double-check after acquiring write lock
	if pathManager != nil {
		return pathManager, pathManagerErr
	}

	pathManagerOnce.Do(func() {
		pathManager, pathManagerErr = newPathManager()
	})
	return pathManager, pathManagerErr
}

// InitPaths initializes the path manager. Must be called early in application startup.
func InitPaths() error {
	_, err := getPathManager()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPathManagerInit, err)
	}
	return nil
}

// ResetPathManager resets the path manager singleton for testing purposes.
func ResetPathManager() {
	pathManagerMu.Lock()
	defer pathManagerMu.Unlock()
	pathManager = nil
	pathManagerErr = nil
	pathManagerOnce = sync.Once{}
}

// mustGetPathManager returns the global PathManager or panics if not initialized.
func mustGetPathManager() *PathManager {
	pm, err := getPathManager()
	if err != nil {
		panic(fmt.Sprintf("path manager not initialized: %v (call InitPaths() first)", err))
	}
	return pm
}

// Exported accessor functions. These panic if InitPaths() has not been called successfully.

func GetConfigDir() string {
	return mustGetPathManager().ConfigDir()
}

func GetStateDir() string {
	return mustGetPathManager().StateDir()
}

func GetConfigFile() string {
	return mustGetPathManager().ConfigFile()
}

func GetLogFile() string {
	return mustGetPathManager().LogFile()
}

func GetProjectConfigDir() string {
	return mustGetPathManager().ProjectConfigDir()
}

func GetProjectConfigFile() string {
	return mustGetPathManager().ProjectConfigFile()
}

// EnsureDirs creates the user directories
func EnsureDirs() error {
	return mustGetPathManager().EnsureDirs()
}
