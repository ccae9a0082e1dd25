// Package output renders user-facing messages for the CLI driver. Logs go
// through zerolog; this package only owns what the user sees on stderr and
// stdout.
package output

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/testrig-dev/testrig/pkg/errors"
	"github.com/testrig-dev/testrig/pkg/options"
)

// Renderer renders messages in a given format
type Renderer struct {
	format Format
}

// NewRenderer creates a renderer for the given format
func NewRenderer(format Format) *Renderer {
	return &Renderer{format: format}
}

// RenderError formats a structured error for the user
func (r *Renderer) RenderError(err error) string {
	code := errors.GetErrorCode(err)
	msg := err.Error()

	// Strip the [CODE] prefix; it is rendered separately
	var rigErr *errors.RigError
	if stderrors.As(err, &rigErr) {
		msg = rigErr.Message
		if rigErr.Wrapped != nil {
			msg = fmt.Sprintf("%s: %v", rigErr.Message, rigErr.Wrapped)
		}
	}

	if r.format != FormatTerminal {
		return fmt.Sprintf("error: %s (%s)", msg, code)
	}

	return fmt.Sprintf("%s %s %s",
		styleFor("error").Render("error:"),
		msg,
		styleFor("errorCode").Render("("+string(code)+")"))
}

// RenderSummary formats the post-run option summary
func (r *Renderer) RenderSummary(opts *options.CommandLineOptions) string {
	var b strings.Builder

	line := func(label, value string) {
		if value == "" {
			return
		}
		if r.format == FormatTerminal {
			fmt.Fprintf(&b, "%s %s\n", styleFor("label").Render(label+":"), styleFor("path").Render(value))
		} else {
			fmt.Fprintf(&b, "%s: %s\n", label, value)
		}
	}

	line("Test adapter path", opts.TestAdapterPath)
	line("Run settings", opts.SettingsFile)
	line("Sources", strings.Join(opts.Sources, ", "))

	return b.String()
}
