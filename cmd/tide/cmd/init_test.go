package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateProjectName(t *testing.T) {
	valid := []string{"mygame", "my-game", "my_game", "Game2"}
	for _, name := range valid {
		if err := validateProjectName(name); err != nil {
			t.Errorf("%q should be valid: %v", name, err)
		}
	}

	invalid := []string{"", ".", "..", "2game", "-game", "my game", "my/game"}
	for _, name := range invalid {
		if err := validateProjectName(name); err == nil {
			t.Errorf("%q should be rejected", name)
		}
	}
}

func TestScaffoldProject(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "mygame")

	if err := scaffoldProject(dir, "github.com/example/mygame", "mygame"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	goMod, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		t.Fatalf("go.mod missing: %v", err)
	}
	if !strings.Contains(string(goMod), "module github.com/example/mygame") {
		t.Fatalf("go.mod should declare the module path, got:\n%s", goMod)
	}

	mainGo, err := os.ReadFile(filepath.Join(dir, "main.go"))
	if err != nil {
		t.Fatalf("main.go missing: %v", err)
	}
	if !strings.Contains(string(mainGo), "navigation.NewRouter") {
		t.Fatal("main.go should contain the starter application")
	}

	yaml, err := os.ReadFile(filepath.Join(dir, "tide.yaml"))
	if err != nil {
		t.Fatalf("tide.yaml missing: %v", err)
	}
	if !strings.Contains(string(yaml), "name: mygame") {
		t.Fatalf("tide.yaml should carry the project name, got:\n%s", yaml)
	}
}

func TestScaffoldProject_ExistingDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := scaffoldProject(dir, "example.com/x", "x"); err == nil {
		t.Fatal("expected an error for an existing directory")
	}
}

func TestRunInit_RequiresDirectory(t *testing.T) {
	if err := runInit(nil); err == nil {
		t.Fatal("expected an error when no directory is given")
	}
}

func TestRunInit_RejectsTilde(t *testing.T) {
	if err := runInit([]string{"~/mygame"}); err == nil {
		t.Fatal("expected an error for a tilde path")
	}
}

func TestRunInit_RejectsBadModulePath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "mygame")
	if err := runInit([]string{dir, "github.com/Bad Path/x"}); err == nil {
		t.Fatal("expected an error for an invalid module path")
	}
}
