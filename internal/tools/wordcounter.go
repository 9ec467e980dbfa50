package tools

import (
	"context"
	"strings"

	"github.com/mwozniczak/agenttools/internal/domain/tool"
)

// WordCounter counts whitespace-separated words in a text.
type WordCounter struct{}

func NewWordCounter() *WordCounter { return &WordCounter{} }

func (*WordCounter) Name() string { return "word_counter" }

func (*WordCounter) Description() string {
	return "Counts the number of words in a given text."
}

func (*WordCounter) Schema() tool.Schema {
	return tool.NewSchema(
		tool.Field{
			Name:        "text",
			Type:        tool.TypeString,
			Required:    true,
			Description: "The text to count words in.",
		},
	)
}

func (*WordCounter) Run(_ context.Context, args tool.Args) []tool.Content {
	count := len(strings.Fields(args.String("text")))
	return tool.Textf("Word count: %d", count)
}
