package utils

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/meysamhadeli/susi/constants/lipgloss"
)

// InputPrompt reads one trimmed line. EOF yields "" with io.EOF so callers can end the session.
func InputPrompt(reader *bufio.Reader) (string, error) {
	fmt.Print(lipgloss.BlueSky.Render("> "))

	userInput, err := reader.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			return strings.TrimSpace(userInput), io.EOF
		}
		return "", fmt.Errorf("error reading input: %w", err)
	}

	return strings.TrimSpace(userInput), nil
}

// InputPromptWithContext is InputPrompt that returns ctx.Err() as soon as ctx is done.
func InputPromptWithContext(ctx context.Context, reader *bufio.Reader) (string, error) {
	type line struct {
		text string
		err  error
	}
	lineChan := make(chan line, 1)

	go func() {
		text, err := InputPrompt(reader)
		lineChan <- line{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		fmt.Println()
		return "", ctx.Err()
	case l := <-lineChan:
		return l.text, l.err
	}
}

// ConfirmPrompt asks a yes/no question; anything but y/yes is a no.
func ConfirmPrompt(question string, reader *bufio.Reader) (bool, error) {
	fmt.Print(lipgloss.Yellow.Render(fmt.Sprintf("%s (y/N): ", question)))

	answer, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("error reading input: %w", err)
	}

	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}
