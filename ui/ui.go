// Package ui is everything the explorer shows to, and reads from, the person
// at the terminal. Background diagnostics go to logx instead.
package ui

import (
	"io"

	"github.com/cuiweiyuan/explorer/jsonx"
)

// Severity is the visual weight of a piece of inline text.
type Severity uint8

const (
	SeverityInfo    Severity = iota // plain
	SeveritySuccess                 // green
	SeverityWarn                    // yellow
	SeverityError                   // red
	SeverityTitle                   // bold
)

// StyledText is a plain string plus the Severity it should be shown with.
// It marshals to JSON as the bare string.
type StyledText struct {
	Text     string
	Severity Severity
}

func (s StyledText) MarshalJSON() ([]byte, error) {
	return jsonx.Marshal(s.Text)
}

// UI is implemented by TerminalUI for real runs and RecordingUI for tests.
//
// A command shows either a result or a single consolidated error, so the
// usual shape of a command is
//
//	stop := u.Spinner("Resolving 0x1...")
//	res, err := ...
//	stop()
//	if err != nil {
//		u.Error("%s", err)
//		return
//	}
//	u.Title(...)
type UI interface {
	// Style colours t for embedding inside another line. Without colours
	// the plain text comes back.
	Style(t StyledText) string

	Info(format string, args ...any)
	Success(format string, args ...any)
	Warn(format string, args ...any)
	// Error reports a failure. It does not exit.
	Error(format string, args ...any)
	// Title is the bold heading of a result, e.g. the resolved address.
	Title(format string, args ...any)

	// Section writes a separator line centred around title.
	Section(title string)

	// KeyValue writes label/value rows with the values aligned.
	KeyValue(rows [][2]string)

	// Table writes a bordered table. A nil headers slice skips the header
	// row.
	Table(headers []string, rows [][]string)

	// Spinner animates msg until the returned stop function is called. It is
	// a no-op animation when output is not a terminal.
	Spinner(msg string) func()

	// Ask shows a "> " prompt and reads one line, repeating until validate
	// accepts it. A nil validate accepts anything.
	Ask(validate func(string) error) string

	// Confirm asks a yes/no question.
	Confirm(prompt string, defaultYes bool) bool

	// Indent returns a UI one level deeper sharing this one's streams.
	Indent() UI

	// Writer is an io.Writer honouring the current indentation.
	Writer() io.Writer
}
