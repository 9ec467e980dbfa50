package tools

import (
	"context"

	"github.com/mwozniczak/agenttools/internal/domain/tool"
	"github.com/mwozniczak/agenttools/internal/infra/execx"
)

// PyLinting runs the Ruff linter through uv.
type PyLinting struct {
	runner execx.Runner
}

func NewPyLinting(runner execx.Runner) *PyLinting {
	return &PyLinting{runner: runner}
}

func (*PyLinting) Name() string { return "py_linting_tool" }

func (*PyLinting) Description() string {
	return "Runs the Ruff linter on the given Python files or directories to detect and fix coding style or syntax issues. " +
		"Supports configurable rule selection, automatic fixes, unsafe fixes, adding noqa directives, and watch mode. " +
		"Returns the linter output as a string."
}

func (*PyLinting) Schema() tool.Schema {
	return tool.NewSchema(
		tool.Field{
			Name:        "paths",
			Type:        tool.TypeStringList,
			Description: "List of file or directory paths to lint. Defaults to current directory if none provided.",
		},
		tool.Field{
			Name:        "fix",
			Type:        tool.TypeBoolean,
			Default:     false,
			Description: "Whether to automatically fix fixable issues.",
		},
		tool.Field{
			Name:        "unsafe_fixes",
			Type:        tool.TypeBoolean,
			Default:     false,
			Description: "Enable unsafe fixes.",
		},
		tool.Field{
			Name:        "add_noqa",
			Type:        tool.TypeBoolean,
			Default:     false,
			Description: "Add noqa directives to all lines with violations.",
		},
		tool.Field{
			Name:        "select",
			Type:        tool.TypeStringList,
			Description: "List of rule codes to exclusively enforce.",
		},
		tool.Field{
			Name:        "extend_select",
			Type:        tool.TypeStringList,
			Description: "List of additional rule codes to enforce alongside the default selection.",
		},
		tool.Field{
			Name:        "watch",
			Type:        tool.TypeBoolean,
			Default:     false,
			Description: "Watch for file changes and re-run linting on change.",
		},
		tool.Field{
			Name:        "exit_zero",
			Type:        tool.TypeBoolean,
			Default:     false,
			Description: "Exit with code 0 even if violations are found.",
		},
		tool.Field{
			Name:        "exit_non_zero_on_fix",
			Type:        tool.TypeBoolean,
			Default:     false,
			Description: "Exit with non-zero even if all violations were fixed automatically.",
		},
	)
}

func (t *PyLinting) Run(ctx context.Context, args tool.Args) []tool.Content {
	cmd := []string{"run", "ruff", "check"}

	flags := []struct {
		name string
		flag string
	}{
		{"fix", "--fix"},
		{"unsafe_fixes", "--unsafe-fixes"},
		{"add_noqa", "--add-noqa"},
		{"watch", "--watch"},
		{"exit_zero", "--exit-zero"},
		{"exit_non_zero_on_fix", "--exit-non-zero-on-fix"},
	}
	for _, f := range flags {
		if args.Bool(f.name) {
			cmd = append(cmd, f.flag)
		}
	}

	for _, rule := range args.StringSlice("select") {
		cmd = append(cmd, "--select", rule)
	}
	for _, rule := range args.StringSlice("extend_select") {
		cmd = append(cmd, "--extend-select", rule)
	}

	paths := args.StringSlice("paths")
	if len(paths) == 0 {
		paths = []string{"."}
	}
	cmd = append(cmd, paths...)

	res, err := t.runner.Run(ctx, "uv", cmd...)
	if err != nil {
		return tool.Textf("Error running ruff check: %v", err)
	}
	// Ruff exits non-zero when violations exist; the findings are the output.
	return tool.Textf("%s", res.Stdout+res.Stderr)
}
