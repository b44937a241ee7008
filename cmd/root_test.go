package cmd

import (
	"testing"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	expected := []string{"list", "desktop", "activate", "close", "name", "get", "set", "wm", "icon", "serve"}
	commands := rootCmd.Commands()

	found := make(map[string]bool)
	for _, c := range commands {
		found[c.Name()] = true
	}

	for _, name := range expected {
		if !found[name] {
			t.Errorf("expected subcommand %q not found", name)
		}
	}
}

func TestRootCommand_Version(t *testing.T) {
	if rootCmd.Version == "" {
		t.Error("root command version should be set")
	}
}

func TestDefaultFormat(t *testing.T) {
	if got := defaultFormat(false); got != "yaml" {
		t.Errorf("terminal default: got %q, want yaml", got)
	}
	if got := defaultFormat(true); got != "json" {
		t.Errorf("piped default: got %q, want json", got)
	}
}

func TestRootCommand_PersistentFlags(t *testing.T) {
	for _, name := range []string{"format", "display"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("expected persistent flag %q not found", name)
		}
	}
}
