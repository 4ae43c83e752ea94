package commands

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/taskdock/taskdock/internal/core/config"
	"github.com/taskdock/taskdock/internal/core/todo"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string

	// Global and Workspace select the scope a command acts on. Global wins
	// when both are set; neither means the current working directory.
	Global    bool
	Workspace string

	// Yes skips interactive confirmations for scripted use.
	Yes bool

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config
}

// Scope resolves the scope flags to a target. With neither flag set the
// current working directory is the workspace.
func (f *Flags) Scope() (todo.ScopeTarget, error) {
	if f.Global {
		return todo.GlobalTarget(), nil
	}
	if f.Workspace != "" {
		abs, err := filepath.Abs(f.Workspace)
		if err != nil {
			return todo.ScopeTarget{}, err
		}
		return todo.WorkspaceTarget(abs), nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return todo.ScopeTarget{}, err
	}
	return todo.WorkspaceTarget(cwd), nil
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "taskdock", "config.yaml")
}

// DefaultDataDir returns the default data directory using XDG_DATA_HOME.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "taskdock")
}

// DefaultLogFile returns the default log file path using the system's state
// directory. On macOS: ~/Library/Logs/taskdock/taskdock.log. On Linux:
// $XDG_STATE_HOME/taskdock/taskdock.log (defaults to ~/.local/state).
func DefaultLogFile() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome != "" {
		return filepath.Join(stateHome, "taskdock", "taskdock.log")
	}

	home, _ := os.UserHomeDir()

	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Logs", "taskdock", "taskdock.log")
	}

	return filepath.Join(home, ".local", "state", "taskdock", "taskdock.log")
}
