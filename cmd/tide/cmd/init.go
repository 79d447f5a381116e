package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"

	"golang.org/x/mod/module"
)

func init() {
	RegisterCommand(&Command{
		Name:  "init",
		Short: "Create a new Tide project",
		Long: `Create a new Tide project in a new directory.

This command creates:
  - A new directory at the specified path
  - go.mod with the specified module path
  - main.go with a starter application
  - tide.yaml with default engine settings

The project name is derived from the directory basename.
The module path defaults to the project name if not specified.

Examples:
  tide init mygame
  tide init mygame github.com/username/mygame`,
		Usage: "tide init <directory> [module-path]",
		Run:   runInit,
	})
}

// initTemplateData contains the data for init template substitution.
type initTemplateData struct {
	ModulePath  string
	ProjectName string
}

func runInit(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("directory is required\n\nUsage: tide init <directory> [module-path]")
	}

	raw := args[0]
	if strings.HasPrefix(raw, "~") {
		return fmt.Errorf("tilde (~) is not expanded by tide; use an absolute path or $HOME instead")
	}

	dir := filepath.Clean(raw)
	projectName := filepath.Base(dir)
	if err := validateProjectName(projectName); err != nil {
		return fmt.Errorf("invalid project name %q (derived from directory basename): %w", projectName, err)
	}

	modulePath := projectName
	if len(args) > 1 {
		modulePath = args[1]
	}
	if strings.Contains(modulePath, "/") {
		if err := module.CheckPath(modulePath); err != nil {
			return fmt.Errorf("invalid module path %q: %w", modulePath, err)
		}
	}

	if err := scaffoldProject(dir, modulePath, projectName); err != nil {
		return err
	}

	fmt.Printf("Project created successfully!\n\n")
	fmt.Printf("Next steps:\n")
	fmt.Printf("  cd %s\n", dir)
	fmt.Printf("  go mod tidy\n")
	fmt.Printf("  go run .\n")
	return nil
}

var projectNamePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`)

func validateProjectName(name string) error {
	if name == "" || name == "." || name == ".." || name == string(filepath.Separator) {
		return fmt.Errorf("name must not be empty or a path element")
	}
	if !projectNamePattern.MatchString(name) {
		return fmt.Errorf("name must start with a letter and contain only letters, digits, '-' and '_'")
	}
	return nil
}

// scaffoldProject creates the project directory and writes the template
// files. It has no side effects beyond the filesystem, making it safe to
// call from tests without network access.
func scaffoldProject(dir, modulePath, projectName string) error {
	if _, err := os.Stat(dir); err == nil {
		return fmt.Errorf("directory %q already exists", dir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}

	data := initTemplateData{ModulePath: modulePath, ProjectName: projectName}
	files := map[string]string{
		"go.mod":    goModTemplate,
		"main.go":   mainTemplate,
		"tide.yaml": yamlTemplate,
	}
	for name, tmpl := range files {
		content, err := renderTemplate(name, tmpl, data)
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
	}
	return nil
}

func renderTemplate(name, tmpl string, data initTemplateData) (string, error) {
	t, err := template.New(name).Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", name, err)
	}
	return sb.String(), nil
}

const goModTemplate = `module {{.ModulePath}}

go 1.24.0

require github.com/go-tide/tide v0.1.0
`

const mainTemplate = `package main

import (
	"context"
	"log"
	"time"

	"github.com/go-tide/tide/pkg/engine"
	"github.com/go-tide/tide/pkg/navigation"
	"github.com/go-tide/tide/pkg/rendering"
	"github.com/go-tide/tide/pkg/scene"
	"github.com/go-tide/tide/pkg/sprites"
)

func buildHome() scene.Component {
	page := scene.NewGroup()
	page.Add(sprites.NewRectShape(
		rendering.RectFromLTWH(40, 40, 240, 160),
		rendering.FillPaint(rendering.ColorBlue),
	))
	return page
}

func main() {
	router := navigation.NewRouter(navigation.RouterConfig{
		Routes: map[string]navigation.Route{
			"home": navigation.NewPageRoute(navigation.RouteConfig{Builder: buildHome}),
		},
		InitialRoute: "home",
	})

	eng := engine.New(engine.Config{
		Size: rendering.Size{Width: 320, Height: 240},
		OnFrame: func(frame *rendering.DisplayList) {
			// Hand the frame to your output backend here.
		},
	})

	root := scene.NewGroup()
	eng.SetRoot(root)
	root.Add(router)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := eng.Run(ctx, 60); err != nil && err != context.DeadlineExceeded {
		log.Fatal(err)
	}
}
`

const yamlTemplate = `app:
  name: {{.ProjectName}}
engine:
  fps: 60
  width: 320
  height: 240
`
