package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/jask/panesync/internal/config"
	"github.com/jask/panesync/internal/page"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	if os.Getenv("PANESYNC_CONFIG") == "" {
		t.Setenv("PANESYNC_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	}
	keysWrite = false
	renderEvents = nil
	renderScript = ""
	renderWidth = 80
	renderState = false
	configPath = ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return ansi.Strip(out.String()), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	require.Equal(t, "panesync dev\n", out)
}

func TestRenderInitialPage(t *testing.T) {
	out, err := execute(t, "render", "--width", "90", "--state")
	require.NoError(t, err)
	require.Contains(t, out, "Initial Header")
	require.Contains(t, out, "Initial Children")
	require.Contains(t, out, `headerString: "Initial Header", headerNumber: 0`)
	require.Contains(t, out, "leftChildrenNumber: 0, rightChildrenNumber: 0")
}

func TestRenderAppliesEventsInOrder(t *testing.T) {
	out, err := execute(t, "render", "--width", "90", "--state",
		"-e", "left+", "-e", "left+", "-e", "right.dec", "-e", "left.header", "-e", "right.header")
	require.NoError(t, err)
	require.Contains(t, out, `headerString: "Modified by Right container"`)
	require.Contains(t, out, "leftChildrenNumber: 2, rightChildrenNumber: -1")
	require.Contains(t, out, "count of left children: 2")
}

func TestRenderRejectsUnknownEvent(t *testing.T) {
	_, err := execute(t, "render", "-e", "header.children")
	require.ErrorIs(t, err, page.ErrUnknownEvent)
}

func TestRenderScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.toml")
	script := `
[[step]]
event = "header.inc"
repeat = 3

[[step]]
event = "left.children"
`
	require.NoError(t, os.WriteFile(path, []byte(script), 0o600))

	out, err := execute(t, "render", "--width", "90", "--state", "--script", path, "-e", "header.dec")
	require.NoError(t, err)
	require.Contains(t, out, "headerNumber: 2")
	require.Contains(t, out, `childrenString: "Modified by left container"`)
}

func TestLoadScriptErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := loadScript(filepath.Join(dir, "nope.toml"))
	require.Error(t, err)

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[[step]]\nevent = \"left.sideways\"\n"), 0o600))
	_, err = loadScript(bad)
	require.ErrorIs(t, err, page.ErrUnknownEvent)
	require.Contains(t, err.Error(), "step 1")
}

func TestKeysRoundTripsThroughConfig(t *testing.T) {
	out, err := execute(t, "keys")
	require.NoError(t, err)

	var doc struct {
		Keybindings []config.KeybindingConfig `toml:"keybindings"`
	}
	_, err = toml.Decode(out, &doc)
	require.NoError(t, err)

	byAction := map[string][]string{}
	for _, kb := range doc.Keybindings {
		byAction[kb.Action] = kb.Keys
	}
	require.Contains(t, byAction, "increment")
	require.Contains(t, byAction["command_palette"], ":")
	require.True(t, strings.Contains(out, "[[keybindings]]"))
}

func TestKeysWriteSavesBindingsIntoConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "panesync", "config.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(`
[ui]
accent = "teal"

[[keybindings]]
action = "increment"
keys = ["i"]
`), 0o600))
	t.Setenv("PANESYNC_CONFIG", path)

	out, err := execute(t, "keys", "--write")
	require.NoError(t, err)
	require.Contains(t, out, path)

	saved, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "teal", saved.UI.Accent)

	byAction := map[string][]string{}
	for _, kb := range saved.Keybindings {
		byAction[kb.Action] = kb.Keys
	}
	require.Equal(t, []string{"i"}, byAction["increment"])
	require.Contains(t, byAction["command_palette"], ":")
	require.Contains(t, byAction, "quit")
}
