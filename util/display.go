package util

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cuiweiyuan/explorer/common"
	"github.com/cuiweiyuan/explorer/pagination"
	"github.com/cuiweiyuan/explorer/resolver"
	"github.com/cuiweiyuan/explorer/txlist"
	"github.com/cuiweiyuan/explorer/ui"
)

// ── Build phase (pure: no UI side-effects) ──────────────────────────────────

// styledLabel is green for an address with a book entry and yellow for an
// unknown one.
func styledLabel(l common.Label) ui.StyledText {
	if !l.Known() {
		return ui.StyledText{Text: common.PlainLabel(l) + " (unknown)", Severity: ui.SeverityWarn}
	}
	return ui.StyledText{Text: common.PlainLabel(l), Severity: ui.SeveritySuccess}
}

func styledStatus(success bool) ui.StyledText {
	if success {
		return ui.StyledText{Text: common.RenderSuccess(success), Severity: ui.SeveritySuccess}
	}
	return ui.StyledText{Text: common.RenderSuccess(success), Severity: ui.SeverityError}
}

func buildErrorDisplay(err error) *ErrorDisplay {
	var re *common.ResponseError
	if errors.As(err, &re) {
		return &ErrorDisplay{Type: string(re.Type), Message: re.Message}
	}
	return &ErrorDisplay{Type: string(common.Transport), Message: err.Error()}
}

func buildResolutionDisplay(res *resolver.Resolution, label common.Label, tabs []resolver.Tab) *ResolutionDisplay {
	if res.Err != nil {
		return &ResolutionDisplay{
			Label: ui.StyledText{Text: res.Input, Severity: ui.SeverityError},
			Error: buildErrorDisplay(res.Err),
		}
	}
	d := &ResolutionDisplay{
		Label:    styledLabel(label),
		Kind:     string(res.Kind),
		Deleted:  res.Kind == resolver.Object && res.Deleted,
		Redirect: res.Redirect,
	}
	d.Rows = append(d.Rows, [2]string{"Kind", string(res.Kind)})
	if d.Deleted {
		d.Rows = append(d.Rows, [2]string{"Deleted", "yes"})
	}
	if res.Account != nil {
		d.Rows = append(d.Rows,
			[2]string{"Sequence number", res.Account.SequenceNumber},
			[2]string{"Authentication key", res.Account.AuthenticationKey},
		)
	}
	d.Rows = append(d.Rows, [2]string{"Resources", strconv.Itoa(len(res.Resources))})
	for _, t := range tabs {
		d.Tabs = append(d.Tabs, string(t))
	}
	return d
}

func buildTxRow(tx common.Transaction) TxRowDisplay {
	return TxRowDisplay{
		Version:   tx.Version,
		Type:      common.RenderTransactionType(tx.Type),
		Status:    styledStatus(tx.Success),
		Timestamp: common.RenderTimestamp(tx),
		Sender:    tx.Sender,
		Gas:       common.RenderGas(tx.GasUsed),
	}
}

func buildTxRows(txs []common.Transaction) []TxRowDisplay {
	rows := make([]TxRowDisplay, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, buildTxRow(tx))
	}
	return rows
}

// NavigationBar renders items on one line, e.g. "« ‹ [1] 2 3 … › »". A
// disabled control shows as "-".
func NavigationBar(items []pagination.Item) string {
	parts := []string{}
	for _, it := range items {
		var p string
		switch it.Type {
		case pagination.First:
			p = "«"
		case pagination.Previous:
			p = "‹"
		case pagination.Next:
			p = "›"
		case pagination.Last:
			p = "»"
		case pagination.StartEllipsis, pagination.EndEllipsis:
			p = "…"
		default:
			p = strconv.FormatUint(it.Page, 10)
			if it.Selected {
				p = "[" + p + "]"
			}
		}
		if it.Disabled {
			p = "-"
		}
		parts = append(parts, p)
	}
	return strings.Join(parts, " ")
}

func buildPageDisplay(page *txlist.Page) *PageDisplay {
	d := page.Descriptor
	return &PageDisplay{
		Title:      fmt.Sprintf("%s: page %d of %d", page.Network, d.CurrentPage, d.TotalPages),
		Rows:       buildTxRows(page.Transactions),
		Navigation: NavigationBar(page.Items),
	}
}

func buildTxDisplay(tx *common.Transaction) *TxDisplay {
	d := &TxDisplay{Title: "Transaction " + tx.Version}
	d.Rows = [][2]string{
		{"Type", common.RenderTransactionType(tx.Type)},
		{"Hash", tx.Hash},
		{"Status", common.RenderSuccess(tx.Success)},
		{"VM status", tx.VMStatus},
		{"Gas used", common.RenderGas(tx.GasUsed)},
	}
	if ts := common.RenderTimestamp(*tx); ts != "" {
		d.Rows = append(d.Rows, [2]string{"Timestamp", ts})
	}
	if tx.Sender != "" {
		d.Rows = append(d.Rows,
			[2]string{"Sender", tx.Sender},
			[2]string{"Sequence number", tx.SequenceNumber},
			[2]string{"Max gas", common.ReadableNumber(tx.MaxGasAmount)},
			[2]string{"Gas unit price", tx.GasUnitPrice},
		)
	}
	return d
}

// ── Print phase ─────────────────────────────────────────────────────────────

var txHeaders = []string{"Version", "Type", "Status", "Timestamp", "Sender", "Gas"}

func printError(u ui.UI, d *ErrorDisplay) {
	u.Error("%s", d.Type)
	if d.Message != "" {
		u.Indent().Error("%s", d.Message)
	}
}

func printTxRows(u ui.UI, rows []TxRowDisplay) {
	if len(rows) == 0 {
		u.Warn("No transactions")
		return
	}
	table := make([][]string, 0, len(rows))
	for _, r := range rows {
		table = append(table, []string{r.Version, r.Type, u.Style(r.Status), r.Timestamp, r.Sender, r.Gas})
	}
	u.Table(txHeaders, table)
}

// ── Public API ───────────────────────────────────────────────────────────────

// DisplayError writes err as its type followed by its message.
func DisplayError(u ui.UI, err error) *ErrorDisplay {
	d := buildErrorDisplay(err)
	printError(u, d)
	return d
}

// DisplayResolution writes a settled lookup: either its error alone or the
// entity with its detail tabs.
func DisplayResolution(u ui.UI, res *resolver.Resolution, label common.Label, tabs []resolver.Tab) *ResolutionDisplay {
	d := buildResolutionDisplay(res, label, tabs)
	if d.Error != nil {
		printError(u, d.Error)
		return d
	}
	u.Title("%s", u.Style(d.Label))
	u.KeyValue(d.Rows)
	if len(d.Tabs) > 0 {
		u.Info("Tabs: %s", strings.Join(d.Tabs, ", "))
	}
	return d
}

// DisplayTransactions writes txs as a table.
func DisplayTransactions(u ui.UI, txs []common.Transaction) []TxRowDisplay {
	rows := buildTxRows(txs)
	printTxRows(u, rows)
	return rows
}

// DisplayPage writes one listing page followed by its navigation bar.
func DisplayPage(u ui.UI, page *txlist.Page) *PageDisplay {
	d := buildPageDisplay(page)
	u.Section(d.Title)
	printTxRows(u, d.Rows)
	u.Info("%s", d.Navigation)
	return d
}

func DisplayTransaction(u ui.UI, tx *common.Transaction) *TxDisplay {
	d := buildTxDisplay(tx)
	u.Title("%s", d.Title)
	u.KeyValue(d.Rows)
	return d
}
