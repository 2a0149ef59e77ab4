package standalone

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/user-none/padnav/standalone/storage"
	"github.com/user-none/padnav/standalone/style"
)

// maxListedProblems caps the validation errors shown in the reset prompt
const maxListedProblems = 5

// ResetPrompt asks whether a broken settings file may be reset. problems
// lists what is wrong with it.
type ResetPrompt func(file, path string, problems []string) bool

// NativeResetPrompt asks through a native message box
func NativeResetPrompt(file, path string, problems []string) bool {
	return dialog.Message("%s", resetMessage(file, path, problems)).
		Title("Invalid Settings").
		YesNo()
}

// ShowStartupError reports a fatal startup error in a native message box
func ShowStartupError(err error) {
	dialog.Message("%v", err).Title("padnav").Error()
}

func resetMessage(file, path string, problems []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The file %q contains invalid settings:\n\n", file)
	for i, p := range problems {
		if i == maxListedProblems {
			fmt.Fprintf(&b, "...and %d more\n", len(problems)-maxListedProblems)
			break
		}
		fmt.Fprintf(&b, "- %s\n", p)
	}
	fmt.Fprintf(&b, "\n%s\n\nReset the invalid values and continue?", path)
	return b.String()
}

// loadSettings loads config.json and library.json. Unreadable or invalid
// files are reset when prompt agrees; otherwise loading fails.
func loadSettings(prompt ResetPrompt, logger *zap.Logger) (*storage.Config, *storage.Library, error) {
	if err := storage.EnsureDirectories(); err != nil {
		return nil, nil, fmt.Errorf("failed to create directories: %w", err)
	}
	if err := storage.CreateConfigIfMissing(); err != nil {
		logger.Warn("Failed to create config", zap.Error(err))
	}

	cfg, err := loadConfig(prompt, logger)
	if err != nil {
		return nil, nil, err
	}
	lib, err := loadLibrary(prompt, logger)
	if err != nil {
		return nil, nil, err
	}
	return cfg, lib, nil
}

func loadConfig(prompt ResetPrompt, logger *zap.Logger) (*storage.Config, error) {
	path, _ := storage.GetConfigPath()

	cfg, err := storage.LoadConfig()
	if err != nil {
		if !prompt("config.json", path, []string{err.Error()}) {
			return nil, fmt.Errorf("config.json: %w", err)
		}
		cfg = storage.DefaultConfig()
		logger.Warn("Replaced corrupted config with defaults", zap.String("path", path), zap.Error(err))
	} else if problems := storage.ValidateConfig(cfg, style.ThemeNames()); len(problems) > 0 {
		if !prompt("config.json", path, problems) {
			return nil, fmt.Errorf("config.json: %w", problemsError(problems))
		}
		storage.CorrectConfig(cfg, style.ThemeNames())
		logger.Warn("Corrected invalid config values", zap.Strings("problems", problems))
	} else {
		return cfg, nil
	}

	if err := storage.SaveConfig(cfg); err != nil {
		logger.Error("Failed to save corrected config", zap.Error(err))
	}
	return cfg, nil
}

func loadLibrary(prompt ResetPrompt, logger *zap.Logger) (*storage.Library, error) {
	path, _ := storage.GetLibraryPath()

	lib, err := storage.LoadLibrary()
	if err != nil {
		if !prompt("library.json", path, []string{err.Error()}) {
			return nil, fmt.Errorf("library.json: %w", err)
		}
		lib = storage.DefaultLibrary()
		logger.Warn("Replaced corrupted library with an empty one", zap.String("path", path), zap.Error(err))
	} else if problems := storage.ValidateLibrary(lib); len(problems) > 0 {
		if !prompt("library.json", path, problems) {
			return nil, fmt.Errorf("library.json: %w", problemsError(problems))
		}
		storage.CorrectLibrary(lib)
		logger.Warn("Corrected invalid library values", zap.Strings("problems", problems))
	} else {
		return lib, nil
	}

	if err := storage.SaveLibrary(lib); err != nil {
		logger.Error("Failed to save corrected library", zap.Error(err))
	}
	return lib, nil
}

func problemsError(problems []string) error {
	errs := make([]error, len(problems))
	for i, p := range problems {
		errs[i] = errors.New(p)
	}
	return errors.Join(errs...)
}
