package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// isTerminal reports whether a writer is a TTY.
var isTerminal = defaultIsTerminal

type styles struct {
	title   lipgloss.Style
	heading lipgloss.Style
	danger  lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
}

func newStyles(renderer *lipgloss.Renderer) styles {
	return styles{
		title:   renderer.NewStyle().Foreground(lipgloss.Color("1")),
		heading: renderer.NewStyle().Background(lipgloss.Color("4")),
		danger:  renderer.NewStyle().Background(lipgloss.Color("1")),
		success: renderer.NewStyle().Foreground(lipgloss.Color("2")),
		failure: renderer.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

// console is the styled view of an output stream for the length of a run.
// Release must be called to put the terminal back the way it was found.
type console struct {
	out     io.Writer
	output  *termenv.Output
	styles  styles
	restore func() error
}

func acquireConsole(out io.Writer) (*console, error) {
	output := termenv.NewOutput(out)
	restore, err := termenv.EnableVirtualTerminalProcessing(output)
	if err != nil {
		return nil, fmt.Errorf("enable terminal styling: %w", err)
	}

	renderer := lipgloss.NewRenderer(out)
	renderer.SetColorProfile(output.Profile)

	return &console{
		out:     out,
		output:  output,
		styles:  newStyles(renderer),
		restore: restore,
	}, nil
}

func (c *console) Release() error {
	if c.output.Profile != termenv.Ascii {
		fmt.Fprint(c.out, termenv.CSI+termenv.ResetSeq+"m")
	}
	return c.restore()
}

// defaultIsTerminal inspects a writer for TTY support.
func defaultIsTerminal(w io.Writer) bool {
	if w == nil {
		return false
	}
	if file, ok := w.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	if fder, ok := w.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(fder.Fd()))
	}
	return false
}
