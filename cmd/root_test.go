package cmd

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestRootCommandFlags(t *testing.T) {
	flags := map[string]string{
		"input":     "i",
		"output":    "o",
		"width":     "w",
		"artifacts": "a",
		"format":    "f",
		"sniff":     "",
		"config":    "",
		"verbose":   "v",
	}

	for name, shorthand := range flags {
		f := rootCmd.Flags().Lookup(name)
		if f == nil {
			t.Errorf("flag --%s not registered", name)
			continue
		}
		if f.Shorthand != shorthand {
			t.Errorf("flag --%s shorthand = %q, want %q", name, f.Shorthand, shorthand)
		}
	}
}

func TestInputFlagRequired(t *testing.T) {
	f := rootCmd.Flags().Lookup("input")
	if f == nil {
		t.Fatal("flag --input not registered")
	}
	if f.Annotations[cobra.BashCompOneRequiredFlag] == nil {
		t.Error("flag --input is not marked required")
	}
}

func TestOutputFlagUsageStatesSyntax(t *testing.T) {
	f := rootCmd.Flags().Lookup("output")
	if f == nil {
		t.Fatal("flag --output not registered")
	}
	// The two values arrive comma-separated or via a repeated flag; the
	// help text must say so.
	if !strings.Contains(f.Usage, ",") || !strings.Contains(f.Usage, "-o") {
		t.Errorf("--output usage does not document the accepted syntax: %q", f.Usage)
	}
}

func writeZip(t *testing.T, name, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "input.zip")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	w, err := zw.Create(name)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte(body)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestConfigFileDefaultsYieldToFlags(t *testing.T) {
	input := writeZip(t, "a.html", "<p>Hi <b>Bye</b></p>")

	out := t.TempDir()
	textFile := filepath.Join(out, "from_config.txt")
	outDir := filepath.Join(out, "from_config_dir")

	cfgPath := filepath.Join(t.TempDir(), ".ziptext.yaml")
	cfg := "output:\n" +
		"  text_file: " + textFile + "\n" +
		"  dir: " + outDir + "\n" +
		"artifacts: true\n" +
		"format: rich\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0644); err != nil {
		t.Fatal(err)
	}

	// --format is given explicitly, so the file's "rich" must lose to
	// "trivial"; the remaining options take the file's values.
	rootCmd.SetArgs([]string{"-i", input, "--config", cfgPath, "-f", "trivial"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	text, err := os.ReadFile(textFile)
	if err != nil {
		t.Fatalf("output text file did not take the config file's path: %v", err)
	}
	if _, err := os.Stat(outDir); err != nil {
		t.Errorf("output directory did not take the config file's path: %v", err)
	}

	if !strings.Contains(string(text), "# begin a.html") {
		t.Errorf("artifacts from config file not applied:\n%s", text)
	}
	if strings.Contains(string(text), "**Bye**") {
		t.Errorf("explicit --format trivial did not win over the config file:\n%s", text)
	}
	if !strings.Contains(string(text), "Bye") {
		t.Errorf("rendered content missing:\n%s", text)
	}
}
