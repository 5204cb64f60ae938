package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/cnlearn/internal/domain"
)

// executeCmd runs the root command with args and returns what it printed on
// stdout.
func executeCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestNewRootCmd(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "cnlearn" {
			t.Errorf("expected use 'cnlearn', got %q", cmd.Use)
		}
	})

	t.Run("has short description", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" {
			t.Error("expected non-empty short description")
		}
	})

	t.Run("has long description", func(t *testing.T) {
		t.Parallel()
		if cmd.Long == "" {
			t.Error("expected non-empty long description")
		}
	})

	t.Run("has version", func(t *testing.T) {
		t.Parallel()
		if cmd.Version == "" {
			t.Error("expected non-empty version")
		}
	})

	t.Run("has verbose flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.PersistentFlags().Lookup("verbose")
		if flag == nil {
			t.Fatal("expected verbose flag")
		}
		if flag.Shorthand != "v" {
			t.Errorf("expected shorthand 'v', got %q", flag.Shorthand)
		}
		if flag.DefValue != "false" {
			t.Errorf("expected default 'false', got %q", flag.DefValue)
		}
	})

	t.Run("has config flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.PersistentFlags().Lookup("config")
		if flag == nil {
			t.Fatal("expected config flag")
		}
		if flag.Shorthand != "c" {
			t.Errorf("expected shorthand 'c', got %q", flag.Shorthand)
		}
	})

	t.Run("has subcommands", func(t *testing.T) {
		t.Parallel()
		want := map[string]bool{
			"lookup": false, "search": false, "char": false, "pinyin": false,
			"seed": false, "migrate": false, "version": false,
		}
		for _, sub := range cmd.Commands() {
			if _, ok := want[sub.Name()]; ok {
				want[sub.Name()] = true
			}
		}
		for name, found := range want {
			if !found {
				t.Errorf("expected %s subcommand", name)
			}
		}
	})
}

func TestReadCommandsHaveFormatFlag(t *testing.T) {
	t.Parallel()

	cmds := map[string]*cobra.Command{
		"lookup": NewLookupCmd(),
		"search": NewSearchCmd(),
		"char":   NewCharCmd(),
	}
	for name, cmd := range cmds {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			flag := cmd.Flags().Lookup("format")
			if flag == nil {
				t.Fatal("expected format flag")
			}
			if flag.Shorthand != "f" {
				t.Errorf("expected shorthand 'f', got %q", flag.Shorthand)
			}
			if flag.DefValue != "markdown" {
				t.Errorf("expected default 'markdown', got %q", flag.DefValue)
			}
			style := cmd.Flags().Lookup("pinyin-style")
			if style == nil || style.DefValue != "accent" {
				t.Errorf("expected pinyin-style flag defaulting to accent, got %v", style)
			}
		})
	}
}

func TestLookupCmd_RequiresArgs(t *testing.T) {
	t.Parallel()

	if _, err := executeCmd(t, "lookup"); err == nil {
		t.Error("expected error without text")
	}
}

func TestLookupCmd_InvalidPinyinStyle(t *testing.T) {
	t.Parallel()

	_, err := executeCmd(t, "lookup", "--pinyin-style", "tone", "好")
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestLookupCmd_InvalidFormat(t *testing.T) {
	t.Parallel()

	if _, err := executeCmd(t, "lookup", "-f", "xml", "好"); err == nil {
		t.Error("expected error for unknown format")
	}
}
