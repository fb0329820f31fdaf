package common

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const UnknownLabel = "unknown"

var (
	titleCaser     = cases.Title(language.English)
	numberPrinter  = message.NewPrinter(language.English)
	timestampStyle = "2006-01-02 15:04:05 MST"
)

// Label is an address paired with its address book description.
type Label struct {
	Address string `json:"address"`
	Desc    string `json:"desc"`
}

func (l Label) Known() bool {
	return l.Desc != "" && l.Desc != UnknownLabel
}

// PlainLabel formats a Label with no ANSI colour codes. Use it for data
// (JSON, tests); VerboseLabel is for the terminal.
func PlainLabel(l Label) string {
	if l.Address == "" {
		return ""
	}
	if l.Known() {
		return fmt.Sprintf("%s (%s)", l.Address, l.Desc)
	}
	return l.Address
}

func VerboseLabel(l Label) string {
	if l.Address == "" {
		return ""
	}
	return fmt.Sprintf("%s (%s)", l.Address, NameWithColor(l.Desc))
}

func ReadableNumber(value string) string {
	if len(value) <= 4 {
		return value
	}

	digits := []string{}
	for i := range value {
		digits = append([]string{string(value[len(value)-1-i])}, digits...)
		if (i+1)%3 == 0 && i < len(value)-1 {
			if (i+1)%9 == 0 {
				digits = append([]string{"‸"}, digits...)
			} else {
				digits = append([]string{"￺"}, digits...)
			}
		}
	}
	return fmt.Sprintf("%s (%s)", value, strings.Join(digits, ""))
}

func RenderSuccess(success bool) string {
	if success {
		return "Success"
	}
	return "Failed"
}

// RenderTimestamp renders a microsecond unix timestamp as UTC wall time.
// Genesis has no timestamp and renders empty, as does anything unparsable.
func RenderTimestamp(tx Transaction) string {
	if tx.Type == GenesisTransaction || tx.Timestamp == "" {
		return ""
	}
	usecs, err := strconv.ParseInt(tx.Timestamp, 10, 64)
	if err != nil {
		return ""
	}
	return time.UnixMicro(usecs).UTC().Format(timestampStyle)
}

// RenderTransactionType turns "user_transaction" into "User Transaction".
func RenderTransactionType(t string) string {
	if t == "" {
		return ""
	}
	return titleCaser.String(strings.ReplaceAll(t, "_", " "))
}

func RenderGas(gasUsed string) string {
	gas, err := strconv.ParseUint(gasUsed, 10, 64)
	if err != nil {
		return gasUsed
	}
	return numberPrinter.Sprintf("%d", gas)
}
