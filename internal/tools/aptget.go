package tools

import (
	"context"
	"strings"

	"github.com/mwozniczak/agenttools/internal/domain/tool"
	"github.com/mwozniczak/agenttools/internal/infra/execx"
)

// AptPackageManager drives apt-get for install, remove, and upgrade
// operations on Debian-family hosts.
type AptPackageManager struct {
	runner execx.Runner
}

func NewAptPackageManager(runner execx.Runner) *AptPackageManager {
	return &AptPackageManager{runner: runner}
}

func (*AptPackageManager) Name() string { return "apt_package_manager" }

func (*AptPackageManager) Description() string {
	return "Manages package installation and removal on Ubuntu/Debian systems using apt-get.\n" +
		"Supports:\n" +
		"- Installing packages\n" +
		"- Removing packages\n" +
		"- Updating package lists\n" +
		"- Upgrading system packages\n" +
		"- Optional sudo execution for system-level operations\n" +
		"Provides a safe and flexible interface for package management."
}

func (*AptPackageManager) Schema() tool.Schema {
	return tool.NewSchema(
		tool.Field{
			Name:        "command",
			Type:        tool.TypeString,
			Required:    true,
			Description: "The apt-get command to execute",
			Examples:    []any{"install", "remove", "update", "upgrade", "autoremove"},
		},
		tool.Field{
			Name:        "packages",
			Type:        tool.TypeStringList,
			Description: "List of packages to install or remove",
		},
		tool.Field{
			Name:        "use_sudo",
			Type:        tool.TypeBoolean,
			Default:     false,
			Description: "Whether to run the command with sudo privileges",
		},
		tool.Field{
			Name:        "assume_yes",
			Type:        tool.TypeBoolean,
			Default:     true,
			Description: "Automatically answer yes to prompts",
		},
	)
}

func (t *AptPackageManager) Run(ctx context.Context, args tool.Args) []tool.Content {
	command := args.String("command")
	packages := args.StringSlice("packages")
	useSudo := args.Bool("use_sudo")
	assumeYes := args.Bool("assume_yes")

	cmd := []string{"apt-get"}
	if useSudo {
		cmd = append([]string{"sudo"}, cmd...)
	}
	if assumeYes {
		cmd = append(cmd, "-y")
	}

	switch command {
	case "install", "remove":
		cmd = append(cmd, command)
		cmd = append(cmd, packages...)
	case "update", "upgrade", "autoremove":
		cmd = append(cmd, command)
	default:
		return tool.Textf("Unsupported command: %s", command)
	}

	res, err := t.runner.Run(ctx, cmd[0], cmd[1:]...)
	if err != nil {
		return tool.Textf("Unexpected error in AptPackageManager: %v", err)
	}
	if res.ExitCode != 0 {
		return tool.Textf("Error executing apt-get command:\nCommand: %s\nReturn Code: %d\nStandard Output: %s\nStandard Error: %s",
			strings.Join(cmd, " "), res.ExitCode, res.Stdout, res.Stderr)
	}
	return tool.Textf("Command '%s' executed successfully:\n%s\n%s",
		strings.Join(cmd, " "), res.Stdout, res.Stderr)
}
