package standalone

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/user-none/padnav/standalone/storage"
)

// useTempSettings points storage at a fresh directory
func useTempSettings(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	storage.SetBaseDir(dir)
	t.Cleanup(func() { storage.SetBaseDir("") })
	return dir
}

type recordingPrompt struct {
	answer   bool
	files    []string
	problems [][]string
}

func (p *recordingPrompt) ask(file, _ string, problems []string) bool {
	p.files = append(p.files, file)
	p.problems = append(p.problems, problems)
	return p.answer
}

func TestLoadSettingsFresh(t *testing.T) {
	dir := useTempSettings(t)
	prompt := &recordingPrompt{}

	cfg, lib, err := loadSettings(prompt.ask, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, storage.DefaultConfig().Display, cfg.Display)
	assert.Empty(t, lib.Profiles)
	assert.Empty(t, prompt.files)
	assert.FileExists(t, filepath.Join(dir, "config.json"))
}

func TestLoadSettingsCorruptedConfig(t *testing.T) {
	dir := useTempSettings(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte("{not json"), 0644))

	declined := &recordingPrompt{answer: false}
	_, _, err := loadSettings(declined.ask, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config.json")
	assert.Equal(t, []string{"config.json"}, declined.files)

	accepted := &recordingPrompt{answer: true}
	cfg, _, err := loadSettings(accepted.ask, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, storage.DefaultConfig().Performance, cfg.Performance)

	// The reset file loads cleanly on the next start
	again := &recordingPrompt{}
	_, _, err = loadSettings(again.ask, zap.NewNop())
	require.NoError(t, err)
	assert.Empty(t, again.files)
}

func TestLoadSettingsInvalidValues(t *testing.T) {
	useTempSettings(t)
	bad := storage.DefaultConfig()
	bad.Display.Brightness = 33
	bad.Performance.CPUBoost = true
	require.NoError(t, storage.SaveConfig(bad))

	prompt := &recordingPrompt{answer: true}
	cfg, _, err := loadSettings(prompt.ask, zap.NewNop())
	require.NoError(t, err)

	require.Len(t, prompt.problems, 1)
	require.Len(t, prompt.problems[0], 1)
	assert.True(t, strings.HasPrefix(prompt.problems[0][0], "display.brightness"))
	assert.Equal(t, storage.DefaultConfig().Display.Brightness, cfg.Display.Brightness)
	assert.True(t, cfg.Performance.CPUBoost, "valid values are kept")
}

func TestLoadSettingsInvalidLibraryDeclined(t *testing.T) {
	useTempSettings(t)
	lib := storage.DefaultLibrary()
	lib.Version = 7
	require.NoError(t, storage.SaveLibrary(lib))

	prompt := &recordingPrompt{answer: false}
	_, _, err := loadSettings(prompt.ask, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "version: 7")
	assert.Equal(t, []string{"library.json"}, prompt.files)
}

func TestResetMessageCapsProblems(t *testing.T) {
	problems := []string{"a", "b", "c", "d", "e", "f", "g"}
	msg := resetMessage("config.json", "/tmp/config.json", problems)

	assert.Contains(t, msg, "- e\n")
	assert.NotContains(t, msg, "- f\n")
	assert.Contains(t, msg, "...and 2 more")
	assert.Contains(t, msg, "/tmp/config.json")
}
