package tools

import (
	"context"
	"strings"
	"time"

	"github.com/mwozniczak/agenttools/internal/domain/tool"
)

// isoLayout mirrors ISO 8601 with a numeric offset, e.g.
// 2022-03-01T12:00:00+00:00.
const isoLayout = "2006-01-02T15:04:05-07:00"

const inputLayout = "2006-01-02 15:04:05"

// TimeConverter converts a timestamp between IANA time zones.
type TimeConverter struct {
	now func() time.Time
}

func NewTimeConverter() *TimeConverter {
	return &TimeConverter{now: time.Now}
}

func (*TimeConverter) Name() string { return "time_converter" }

func (*TimeConverter) Description() string {
	return "Converts time between different formats and time zones. " +
		"Supports various input formats and can convert to different time zones."
}

func (*TimeConverter) Schema() tool.Schema {
	return tool.NewSchema(
		tool.Field{
			Name:        "date_time_str",
			Type:        tool.TypeString,
			Default:     "NOW",
			Description: "The time to convert. Can be 'NOW' or a specific date and time.",
			Examples:    []any{"2022-03-01 12:00:00", "NOW"},
		},
		tool.Field{
			Name:        "from_timezone",
			Type:        tool.TypeString,
			Default:     "UTC",
			Description: "Source timezone (default: UTC)",
			Examples:    []any{"America/New_York", "Asia/Tokyo", "Europe/London"},
		},
		tool.Field{
			Name:        "to_timezone",
			Type:        tool.TypeString,
			Default:     "UTC",
			Description: "Target timezone (default: UTC)",
			Examples:    []any{"America/New_York", "Asia/Tokyo", "Europe/London"},
		},
	)
}

func (t *TimeConverter) Run(_ context.Context, args tool.Args) []tool.Content {
	dateTimeStr := args.String("date_time_str")
	fromTZ := args.String("from_timezone")
	toTZ := args.String("to_timezone")

	if dateTimeStr == "" {
		return tool.Textf("Missing required argument: date_time_str")
	}

	var ts time.Time
	if strings.EqualFold(dateTimeStr, "NOW") {
		ts = t.now().UTC()
	} else {
		parsed, err := time.ParseInLocation(inputLayout, dateTimeStr, time.UTC)
		if err != nil {
			return tool.Textf("Invalid date and time format. Use 'YYYY-MM-DD HH:MM:SS' or 'NOW'")
		}
		ts = parsed
	}

	target, err := time.LoadLocation(toTZ)
	if err != nil {
		return tool.Textf("Unknown timezone: '%s'", toTZ)
	}
	if fromTZ != "" {
		if _, err := time.LoadLocation(fromTZ); err != nil {
			return tool.Textf("Unknown timezone: '%s'", fromTZ)
		}
	}

	converted := ts.In(target)
	return tool.Textf("<%s> %s", target.String(), converted.Format(isoLayout))
}
