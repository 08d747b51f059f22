// Package report prints the result of a check and maps it to an exit code.
package report

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/chmouel/stageguard/internal/git"
	"github.com/chmouel/stageguard/internal/models"
	"github.com/chmouel/stageguard/internal/theme"
)

// Exit codes consumed by git to allow or block the commit.
const (
	ExitAllowed     = 0
	ExitBlocked     = 1
	ExitEnvironment = 2
)

// Colour modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

const (
	headerText = "⛔  Potential Security Risk: Sensitive files are staged!"
	hintText   = "❗ Please unstage or remove these files from the commit to avoid leaking sensitive information."
	envErrText = "Error: Not a git repository or git is not installed."
)

// Options configure a Reporter.
type Options struct {
	Color     string // auto, always or never
	Theme     string
	ShowIcons bool
	Width     int // wrap width for the hint; 0 detects it from the terminal
}

// Reporter writes check results for a human reading a terminal.
type Reporter struct {
	out       io.Writer
	errOut    io.Writer
	styles    theme.Styles
	errStyles theme.Styles
	width     int
	icons     bool
}

// New returns a Reporter writing results to out and environment errors to
// errOut.
func New(out, errOut io.Writer, opts Options) *Reporter {
	th := theme.GetTheme(opts.Theme)
	width := opts.Width
	if width == 0 {
		width = terminalWidth(out)
	}
	return &Reporter{
		out:       out,
		errOut:    errOut,
		styles:    theme.NewStyles(NewRenderer(out, opts.Color), th),
		errStyles: theme.NewStyles(NewRenderer(errOut, opts.Color), th),
		width:     width,
		icons:     opts.ShowIcons,
	}
}

// NewRenderer returns a lipgloss renderer for w. ColorAuto leaves colour
// detection to lipgloss, which also honours NO_COLOR.
func NewRenderer(w io.Writer, mode string) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	switch mode {
	case ColorAlways:
		r.SetColorProfile(termenv.TrueColor)
	case ColorNever:
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}

func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 0
	}
	fd := int(f.Fd()) //nolint:gosec
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return width
}

// Report prints matches, if any, and returns the exit code for them.
// Nothing is printed when matches is empty.
func (r *Reporter) Report(matches []models.MatchResult) int {
	if len(matches) == 0 {
		return ExitAllowed
	}

	fmt.Fprintln(r.out, r.styles.Header.Render(headerText))
	for _, m := range matches {
		line := " - " + m.Path
		if r.icons {
			if icon := deviconForPath(m.Path); icon != "" {
				line = " - " + icon + " " + m.Path
			}
		}
		fmt.Fprintln(r.out, r.styles.Item.Render(line))
	}

	hint := hintText
	if r.width > 0 {
		hint = wordwrap.String(hint, r.width)
	}
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, r.styles.Hint.Render(hint))

	return ExitBlocked
}

// ReportError prints the user-facing message for a failed status read and
// returns ExitEnvironment. Every error blocks the commit.
func (r *Reporter) ReportError(err error) int {
	msg := envErrText
	var envErr *git.EnvironmentError
	if !errors.As(err, &envErr) {
		msg = "Error: " + err.Error()
	}
	fmt.Fprintln(r.errOut, r.errStyles.Item.Render(msg))
	return ExitEnvironment
}
