package util

import "github.com/cuiweiyuan/explorer/ui"

// ResolutionDisplay is the view-model of a settled address lookup. Error is
// set instead of the other fields when the lookup failed, a page never
// shows both.
type ResolutionDisplay struct {
	Label    ui.StyledText `json:"label"`
	Kind     string        `json:"kind,omitempty"`
	Deleted  bool          `json:"deleted,omitempty"`
	Rows     [][2]string   `json:"rows,omitempty"`
	Tabs     []string      `json:"tabs,omitempty"`
	Redirect string        `json:"redirect,omitempty"`
	Error    *ErrorDisplay `json:"error,omitempty"`
}

// ErrorDisplay is the single consolidated error of a page.
type ErrorDisplay struct {
	Type    string `json:"type"`
	Message string `json:"message,omitempty"`
}

// TxRowDisplay is one line of a transaction table.
type TxRowDisplay struct {
	Version   string        `json:"version"`
	Type      string        `json:"type"`
	Status    ui.StyledText `json:"status"`
	Timestamp string        `json:"timestamp,omitempty"`
	Sender    string        `json:"sender,omitempty"`
	Gas       string        `json:"gas"`
}

// PageDisplay is the view-model of one page of the transaction listing.
type PageDisplay struct {
	Title      string         `json:"title"`
	Rows       []TxRowDisplay `json:"rows"`
	Navigation string         `json:"navigation"`
}

// TxDisplay is the view-model of a single transaction.
type TxDisplay struct {
	Title string      `json:"title"`
	Rows  [][2]string `json:"rows"`
}
