package utils

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
)

// RenderMarkdown highlights content as markdown with the chroma theme and writes it to w.
func RenderMarkdown(w io.Writer, content string, theme string) error {
	return RenderMarkdownWithContext(context.Background(), w, content, theme)
}

// RenderMarkdownWithContext renders line by line and stops when ctx is done.
// Fenced blocks are highlighted in the language named after the opening fence.
func RenderMarkdownWithContext(ctx context.Context, w io.Writer, content string, theme string) error {
	language := "markdown"

	for _, line := range strings.Split(content, "\n") {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if strings.HasPrefix(line, "```") {
			if language == "markdown" {
				language = DetectLanguageFromCodeBlock(line)
			} else {
				language = "markdown"
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
			continue
		}

		if err := quick.Highlight(w, line+"\n", language, "terminal256", theme); err != nil {
			return fmt.Errorf("error rendering markdown: %w", err)
		}
	}

	return nil
}

// DetectLanguageFromCodeBlock returns the language of a "```lang" fence, or "plaintext".
func DetectLanguageFromCodeBlock(fence string) string {
	language := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(fence), "```"))
	if language == "" {
		return "plaintext"
	}
	return strings.Fields(language)[0]
}
