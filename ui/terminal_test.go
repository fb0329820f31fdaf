package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableAlignsColumns(t *testing.T) {
	out := &bytes.Buffer{}
	u := NewTerminalUIWith(out, strings.NewReader(""), false)
	u.Table([]string{"Version", "Type"}, [][]string{
		{"7", "User Transaction"},
		{"1000", "Block Metadata Transaction"},
	})

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	assert.Len(t, lines, 6)
	width := displayWidth(lines[0])
	for _, l := range lines {
		assert.Equal(t, width, displayWidth(l), l)
	}
	assert.True(t, strings.HasPrefix(lines[0], "┌"))
	assert.Contains(t, lines[1], "Version")
}

func TestKeyValueAndIndent(t *testing.T) {
	out := &bytes.Buffer{}
	u := NewTerminalUIWith(out, strings.NewReader(""), false)
	u.Indent().KeyValue([][2]string{{"Kind", "account"}, {"Sequence", "3"}})
	assert.Equal(t, "  Kind      account\n  Sequence  3\n", out.String())
}

func TestAskRetriesUntilValid(t *testing.T) {
	out := &bytes.Buffer{}
	u := NewTerminalUIWith(out, strings.NewReader("x\n42\n"), false)
	got := u.Ask(func(s string) error {
		if s != "42" {
			return errors.New("not 42")
		}
		return nil
	})
	assert.Equal(t, "42", got)
	assert.Contains(t, out.String(), "not 42")
}

func TestAskOnClosedInput(t *testing.T) {
	u := NewTerminalUIWith(&bytes.Buffer{}, strings.NewReader(""), false)
	assert.Equal(t, "", u.Ask(nil))
}

func TestConfirmDefault(t *testing.T) {
	u := NewTerminalUIWith(&bytes.Buffer{}, strings.NewReader("\nn\n"), false)
	assert.True(t, u.Confirm("add?", true))
	assert.False(t, u.Confirm("add?", true))
}

func TestNoColoursWithoutTTY(t *testing.T) {
	out := &bytes.Buffer{}
	u := NewTerminalUIWith(out, strings.NewReader(""), false)
	u.Error("boom")
	assert.Equal(t, "boom\n", out.String())
	assert.Equal(t, "x", u.Style(StyledText{Text: "x", Severity: SeverityError}))
}

func TestRecordingUI(t *testing.T) {
	r := NewRecordingUI("yes", "page 2")
	r.Title("0x1")
	r.Indent().Error("Not Found")
	assert.True(t, r.Confirm("sure?", false))
	assert.Equal(t, "page 2", r.Ask(nil))
	r.Table([]string{"a", "b"}, [][]string{{"1", "2"}})

	assert.Equal(t, []string{"0x1"}, r.TitleMessages())
	assert.Equal(t, []string{"Not Found"}, r.ErrorMessages())
	assert.Equal(t, []string{"1 | 2"}, r.TableRows())
	assert.True(t, r.HasMessage("not found"))
	assert.Panics(t, func() { r.Ask(nil) })
}
