package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ConfirmDanger asks a yes/no question in the error color, for destructive
// actions such as removing a wallet and its key. Returns true for yes.
func ConfirmDanger(prompt string) bool {
	return confirm(os.Stdin, os.Stdout, StyleError, "⚠ "+prompt)
}

func confirm(in io.Reader, out io.Writer, style lipgloss.Style, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", style.Render(prompt))
	line, _ := bufio.NewReader(in).ReadString('\n')
	line = strings.TrimSpace(strings.ToLower(line))
	return line == "y" || line == "yes"
}
