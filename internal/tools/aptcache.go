package tools

import (
	"context"

	"github.com/mwozniczak/agenttools/internal/domain/tool"
	"github.com/mwozniczak/agenttools/internal/infra/execx"
)

// AptCacheInfo queries the apt-cache metadata database.
type AptCacheInfo struct {
	runner execx.Runner
}

func NewAptCacheInfo(runner execx.Runner) *AptCacheInfo {
	return &AptCacheInfo{runner: runner}
}

func (*AptCacheInfo) Name() string { return "apt_cache_info" }

func (*AptCacheInfo) Description() string {
	return "Retrieves and displays information about the APT package cache. " +
		"Provides details about installed, available, and cached packages."
}

func (*AptCacheInfo) Schema() tool.Schema {
	return tool.NewSchema(
		tool.Field{
			Name:        "operation",
			Type:        tool.TypeString,
			Default:     "stats",
			Description: "Type of cache information to retrieve",
			Examples:    []any{"stats", "search", "policy"},
		},
		tool.Field{
			Name:        "package_name",
			Type:        tool.TypeString,
			Default:     "",
			Description: "Optional package name for specific queries",
		},
		tool.Field{
			Name:        "use_sudo",
			Type:        tool.TypeBoolean,
			Default:     false,
			Description: "Whether to use sudo for the command",
		},
	)
}

func (t *AptCacheInfo) Run(ctx context.Context, args tool.Args) []tool.Content {
	operation := args.String("operation")
	packageName := args.String("package_name")
	useSudo := args.Bool("use_sudo")

	cmd := []string{"apt-cache"}
	if useSudo {
		cmd = append([]string{"sudo"}, cmd...)
	}

	switch operation {
	case "show", "search":
		cmd = append(cmd, operation, packageName)
	case "policy":
		cmd = append(cmd, "policy")
		if packageName != "" {
			cmd = append(cmd, packageName)
		}
	default:
		cmd = append(cmd, "stats")
	}

	res, err := t.runner.Run(ctx, cmd[0], cmd[1:]...)
	if err != nil {
		return tool.Textf("Unexpected error: %v", err)
	}
	if res.ExitCode != 0 {
		return tool.Textf("Error: %s", res.Stderr)
	}
	return tool.Textf("%s", res.Stdout)
}
