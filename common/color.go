package common

import (
	"github.com/logrusorgru/aurora"
)

func AlertColor(str string) string {
	return aurora.Red(str).String()
}

func InfoColor(str string) string {
	return aurora.Green(str).String()
}

// NameWithColor colours an address book label; addresses without a label
// read "unknown" and show in red.
func NameWithColor(name string) string {
	if name == "" || name == UnknownLabel {
		return AlertColor(UnknownLabel)
	}
	return InfoColor(name)
}
