package args

import (
	"reflect"
	"testing"
)

func TestMerge_OverrideWins(t *testing.T) {
	base, err := Parse([]string{"--port", "9090", "--auth", "none", "--app-name", "base"}, SourceConfigFile)
	if err != nil {
		t.Fatalf("parse base: %v", err)
	}
	override, err := Parse([]string{"--port", "7070", "--welcome-text", "hi"}, SourceCLI)
	if err != nil {
		t.Fatalf("parse override: %v", err)
	}

	merged := Merge(base, override)

	if merged.Port != 7070 {
		t.Errorf("Port = %d, want 7070", merged.Port)
	}
	if merged.Auth != AuthNone {
		t.Errorf("Auth = %q, want %q", merged.Auth, AuthNone)
	}
	if merged.AppName != "base" {
		t.Errorf("AppName = %q, want %q", merged.AppName, "base")
	}
	if merged.WelcomeText != "hi" {
		t.Errorf("WelcomeText = %q, want %q", merged.WelcomeText, "hi")
	}
	for _, name := range []string{"port", "auth", "app-name", "welcome-text"} {
		if !merged.IsSet(name) {
			t.Errorf("IsSet(%q) = false after merge", name)
		}
	}
	if merged.IsSet("host") {
		t.Error("IsSet(host) = true, want false")
	}
}

func TestMerge_ListsAreCopied(t *testing.T) {
	base, err := Parse([]string{"--proxy-domain", "a.example.com"}, SourceCLI)
	if err != nil {
		t.Fatalf("parse base: %v", err)
	}
	merged := Merge(base, NewArgSet())

	if !reflect.DeepEqual(merged.ProxyDomains, []string{"a.example.com"}) {
		t.Fatalf("ProxyDomains = %v", merged.ProxyDomains)
	}
	merged.ProxyDomains[0] = "mutated"
	if base.ProxyDomains[0] != "a.example.com" {
		t.Error("merge aliased the base slice")
	}
}

func TestMerge_Positionals(t *testing.T) {
	base := NewArgSet()
	base.Positional = []string{"from-file"}
	override := NewArgSet()

	if got := Merge(base, override).Positional; !reflect.DeepEqual(got, []string{"from-file"}) {
		t.Errorf("Positional = %v, want base's", got)
	}

	override.Positional = []string{"from-cli"}
	if got := Merge(base, override).Positional; !reflect.DeepEqual(got, []string{"from-cli"}) {
		t.Errorf("Positional = %v, want override's", got)
	}
}

func TestMerge_EmptyInputs(t *testing.T) {
	merged := Merge(NewArgSet(), NewArgSet())
	if names := merged.SetNames(); len(names) != 0 {
		t.Errorf("SetNames = %v, want none", names)
	}
	if merged.FlagCount() != 0 {
		t.Errorf("FlagCount = %d, want 0", merged.FlagCount())
	}
}
