package tools

import (
	"context"

	"github.com/mwozniczak/agenttools/internal/domain/tool"
	"github.com/mwozniczak/agenttools/internal/infra/execx"
)

// UVPackageManager wraps the uv Python package manager: pip-compatible
// package operations, project scaffolding, venvs, and interpreter
// management.
type UVPackageManager struct {
	runner execx.Runner
}

func NewUVPackageManager(runner execx.Runner) *UVPackageManager {
	return &UVPackageManager{runner: runner}
}

func (*UVPackageManager) Name() string { return "os_uv_package_manager" }

func (*UVPackageManager) Description() string {
	return "Comprehensive interface to the uv package manager providing package management, " +
		"project management, Python version management, tool management, and script support. " +
		"Supports all major platforms with pip compatibility."
}

func (*UVPackageManager) Schema() tool.Schema {
	return tool.NewSchema(
		tool.Field{
			Name:        "command",
			Type:        tool.TypeString,
			Required:    true,
			Description: "Primary command (install, remove, update, init, venv, etc.)",
		},
		tool.Field{
			Name:        "packages",
			Type:        tool.TypeStringList,
			Description: "List of packages to operate on",
		},
		tool.Field{
			Name:        "python_version",
			Type:        tool.TypeString,
			Description: "Python version for operations that require it",
		},
		tool.Field{
			Name:        "project_path",
			Type:        tool.TypeString,
			Default:     ".",
			Description: "Path to project directory",
		},
		tool.Field{
			Name:        "requirements_file",
			Type:        tool.TypeString,
			Description: "Path to requirements file",
		},
		tool.Field{
			Name:        "global_install",
			Type:        tool.TypeBoolean,
			Default:     false,
			Description: "Whether to install packages globally",
		},
		tool.Field{
			Name:        "script",
			Type:        tool.TypeString,
			Description: "Script path for the run command",
		},
	)
}

func (t *UVPackageManager) Run(ctx context.Context, args tool.Args) []tool.Content {
	command := args.String("command")
	packages := args.StringSlice("packages")
	pythonVersion := args.String("python_version")
	projectPath := args.String("project_path")
	requirementsFile := args.String("requirements_file")
	globalInstall := args.Bool("global_install")

	var uvArgs []string
	switch command {
	case "install":
		uvArgs = []string{"pip", "install"}
		if globalInstall {
			uvArgs = append(uvArgs, "--global")
		}
		if requirementsFile != "" {
			uvArgs = append(uvArgs, "-r", requirementsFile)
		}
		uvArgs = append(uvArgs, packages...)
	case "remove":
		uvArgs = append([]string{"pip", "uninstall", "-y"}, packages...)
	case "update":
		uvArgs = append([]string{"pip", "install", "--upgrade"}, packages...)
	case "list":
		uvArgs = []string{"pip", "list"}
	case "init":
		uvArgs = []string{"init", projectPath}
	case "venv":
		uvArgs = []string{"venv"}
		if pythonVersion != "" {
			uvArgs = append(uvArgs, "--python", pythonVersion)
		}
		uvArgs = append(uvArgs, projectPath)
	case "python":
		if pythonVersion == "" {
			uvArgs = []string{"python", "list"}
		} else {
			uvArgs = []string{"python", "install", pythonVersion}
		}
	case "compile":
		uvArgs = []string{"pip", "compile", "requirements.in"}
	case "run":
		uvArgs = []string{"run"}
		if len(packages) > 0 {
			uvArgs = append(uvArgs, "--with")
			uvArgs = append(uvArgs, packages...)
		}
		uvArgs = append(uvArgs, "--", "python", args.String("script"))
	default:
		return tool.Textf("Unknown command: %s", command)
	}

	res, err := t.runner.Run(ctx, "uv", uvArgs...)
	if err != nil {
		return tool.Textf("Error: %v", err)
	}
	if res.ExitCode != 0 {
		return tool.Textf("UV command failed: exit status %d\n%s", res.ExitCode, res.Combined())
	}
	return tool.Textf("%s", res.Stdout)
}
