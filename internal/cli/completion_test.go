package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestGenerateCompletion(t *testing.T) {
	t.Parallel()
	operations := []string{"add", "divrem", "modpow"}

	tests := []struct {
		shell    string
		contains []string
	}{
		{"bash", []string{"complete -F _bigcalc_completions bigcalc", `operations="add divrem modpow"`, "-ops)", "-output|-o)", "compgen -f", "-karatsuba-threshold"}},
		{"zsh", []string{"#compdef bigcalc", "operations=(add divrem modpow)", "'1:operation:($operations)'", "{-q,-quiet}", ":file:_files"}},
		{"fish", []string{"complete -c bigcalc -n '__fish_is_first_arg' -a 'add divrem modpow'", "-o verify", "-o ops -d 'Operations to verify' -xa 'add divrem modpow all'", "-o output -s o"}},
	}
	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			if err := GenerateCompletion(&buf, tt.shell, operations); err != nil {
				t.Fatalf("GenerateCompletion(%s): %v", tt.shell, err)
			}
			script := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(script, want) {
					t.Errorf("%s script missing %q", tt.shell, want)
				}
			}
		})
	}
}

func TestGenerateCompletionUnsupportedShell(t *testing.T) {
	t.Parallel()
	err := GenerateCompletion(&bytes.Buffer{}, "powershell", nil)
	if err == nil || !strings.Contains(err.Error(), "unsupported shell") {
		t.Errorf("GenerateCompletion(powershell) error = %v", err)
	}
}

// Every flag in the registry must appear in every script.
func TestCompletionCoversRegistry(t *testing.T) {
	t.Parallel()
	for _, shell := range []string{"bash", "zsh", "fish"} {
		var buf bytes.Buffer
		if err := GenerateCompletion(&buf, shell, []string{"add"}); err != nil {
			t.Fatal(err)
		}
		for _, f := range flagRegistry {
			if !strings.Contains(buf.String(), f.Name) {
				t.Errorf("%s completion is missing -%s", shell, f.Name)
			}
		}
	}
}
