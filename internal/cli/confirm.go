package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/zkcli/zk/internal/ui"
)

var (
	stdin         io.Reader = os.Stdin
	isInteractive           = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) && isatty.IsTerminal(os.Stdin.Fd())
	}

	// answers buffers stdin across prompts; it is rebuilt when stdin is
	// swapped.
	answers       *bufio.Reader
	answersSource io.Reader
)

func answerReader() *bufio.Reader {
	if answers == nil || answersSource != stdin {
		answers = bufio.NewReader(stdin)
		answersSource = stdin
	}
	return answers
}

func shouldPromptForConfirm() bool {
	if jsonOutput {
		return false
	}
	return isInteractive()
}

// confirm asks a yes/no question. Without a terminal to ask on it returns
// errNeedsForceFlag; a "no" answer returns errNotConfirmed.
func confirm(message string) error {
	if !shouldPromptForConfirm() {
		return fmt.Errorf("%s: %w", message, errNeedsForceFlag)
	}
	fmt.Fprintf(stdout, "%s %s ", message, ui.Hint("[y/N]"))
	response, _ := answerReader().ReadString('\n')
	response = strings.TrimSpace(strings.ToLower(response))
	if response == "y" || response == "yes" {
		return nil
	}
	return errNotConfirmed
}
