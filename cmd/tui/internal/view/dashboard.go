package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/cedar/internal/budget"
	"github.com/MrJamesThe3rd/cedar/internal/currency"
	"github.com/MrJamesThe3rd/cedar/internal/transaction"
)

type dashboardState int

const (
	dashboardStateBrowse dashboardState = iota
	dashboardStateTimeframe
	dashboardStateConfirmDelete
)

var (
	typeFilters     = []transaction.Type{"", transaction.TypeExpense, transaction.TypeIncome}
	currencyFilters = append([]currency.Currency{""}, currency.All()...)
)

type DashboardModel struct {
	CommonModel
	txService     *transaction.Service
	budgetService *budget.Service

	state  dashboardState
	table  table.Model
	picker TimeframePicker
	txs    []*transaction.Transaction
	sum    budget.Summary

	typeIdx     int
	currencyIdx int
	period      string

	filter  transaction.ListFilter
	loading bool
	err     error
	status  string
}

func NewDashboardModel(txSvc *transaction.Service, budgetSvc *budget.Service) DashboardModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Type", Width: 9},
		{Title: "Category", Width: 27},
		{Title: "Amount", Width: 34},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("28")).
		Bold(false)
	t.SetStyles(s)

	return DashboardModel{
		txService:     txSvc,
		budgetService: budgetSvc,
		table:         t,
		picker:        NewTimeframePicker(TimeframeToday),
		period:        TimeframeAll.String(),
		loading:       true,
	}
}

func (m DashboardModel) Title() string { return "Dashboard" }

func (m DashboardModel) ShortHelp() string {
	switch m.state {
	case dashboardStateTimeframe:
		return "Enter: select | Esc: cancel"
	case dashboardStateConfirmDelete:
		return "y: delete | n: keep"
	}

	return "Esc: back | t: type | c: currency | f: timeframe | x: delete | r: refresh"
}

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.txs = msg.txs
		m.sum = msg.sum
		m.refreshTable()

		return m, nil

	case dashboardDeleteMsg:
		m.state = dashboardStateBrowse
		m.table.Focus()

		if msg.err != nil {
			m.status = errStyle.Render(fmt.Sprintf("Delete failed: %v", msg.err))
			return m, nil
		}

		m.status = okStyle.Render("Transaction deleted.")

		return m, m.loadCmd()

	case TimeframeSelectedMsg:
		msg.Apply(&m.filter)
		m.period = msg.Label
		m.state = dashboardStateBrowse
		m.table.Focus()

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(max(msg.Height-18, 5))

		return m, nil
	}

	switch m.state {
	case dashboardStateTimeframe:
		return m.updateTimeframe(msg)
	case dashboardStateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	return m.updateBrowse(msg)
}

func (m DashboardModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			m.status = ""
			return m, m.loadCmd()
		case "t":
			m.typeIdx = (m.typeIdx + 1) % len(typeFilters)
			m.filter.Type = nil
			if t := typeFilters[m.typeIdx]; t != "" {
				m.filter.Type = new(t)
			}

			return m, m.loadCmd()
		case "c":
			m.currencyIdx = (m.currencyIdx + 1) % len(currencyFilters)
			m.filter.Currency = nil
			if c := currencyFilters[m.currencyIdx]; c != "" {
				m.filter.Currency = new(c)
			}

			return m, m.loadCmd()
		case "f":
			m.picker.Reset()
			m.state = dashboardStateTimeframe
			m.table.Blur()

			return m, m.picker.Init()
		case "x":
			if m.selected() == nil {
				return m, nil
			}

			m.state = dashboardStateConfirmDelete
			m.table.Blur()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m DashboardModel) updateTimeframe(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc && m.picker.IsSelecting() {
		m.state = dashboardStateBrowse
		m.table.Focus()

		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	return m, cmd
}

func (m DashboardModel) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "Y":
		return m, m.deleteCmd(m.selected())
	case "n", "N", "esc":
		m.state = dashboardStateBrowse
		m.table.Focus()
	}

	return m, nil
}

func (m DashboardModel) selected() *transaction.Transaction {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.txs) {
		return nil
	}

	return m.txs[idx]
}

func (m DashboardModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading transactions...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	if m.state == dashboardStateTimeframe {
		return lipgloss.NewStyle().Padding(2).Render(m.picker.View())
	}

	header := fmt.Sprintf(
		"Filter: [t] Type: %s | [c] Currency: %s | [f] Period: %s",
		activeStyle(m.typeLabel()),
		activeStyle(m.currencyLabel()),
		activeStyle(m.period),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.summaryPanel(),
		lipgloss.NewStyle().PaddingTop(1).PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state == dashboardStateConfirmDelete {
		if tx := m.selected(); tx != nil {
			content += "\n\n" + errStyle.Render(fmt.Sprintf(
				"Delete %s %s of %s? (y/n)", strings.ToLower(string(tx.Type)), tx.Category, FormatTxAmount(tx),
			))
		}
	}

	if m.status != "" {
		content = m.status + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m DashboardModel) summaryPanel() string {
	remaining := incomeStyle
	if m.sum.Overspent() {
		remaining = expenseStyle
	}

	totals := fmt.Sprintf(
		"Income    %s\nExpenses  %s\nRemaining %s  %s",
		incomeStyle.Render(currency.FormatUSD(m.sum.TotalIncome)),
		expenseStyle.Render(currency.FormatUSD(m.sum.TotalExpenses)),
		remaining.Render(currency.FormatUSD(m.sum.RemainingBudget)),
		faintStyle.Render("~ "+currency.FormatLBP(currency.LBPEquivalent(m.sum.RemainingBudget))),
	)

	top := "Top expenses\n"
	if len(m.sum.TopExpenses) == 0 {
		top += faintStyle.Render("No expenses yet.")
	}

	for i, e := range m.sum.TopExpenses {
		top += fmt.Sprintf("%d. %-27s %s\n", i+1, e.Category, currency.FormatUSD(e.Amount))
	}

	box := lipgloss.NewStyle().
		Padding(0, 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("28"))

	return lipgloss.JoinHorizontal(lipgloss.Top,
		box.Render(totals),
		box.Render(strings.TrimRight(top, "\n")),
	)
}

func (m DashboardModel) typeLabel() string {
	if t := typeFilters[m.typeIdx]; t != "" {
		return string(t)
	}

	return "All"
}

func (m DashboardModel) currencyLabel() string {
	if c := currencyFilters[m.currencyIdx]; c != "" {
		return string(c)
	}

	return "All"
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func (m *DashboardModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.txs))
	for _, tx := range m.txs {
		rows = append(rows, table.Row{
			FormatDate(tx.Date),
			string(tx.Type),
			string(tx.Category),
			FormatTxAmount(tx),
		})
	}

	m.table.SetRows(rows)
}

// Messages

type dashboardLoadMsg struct {
	txs []*transaction.Transaction
	sum budget.Summary
	err error
}

type dashboardDeleteMsg struct {
	err error
}

// loadCmd fetches rows and the summary under the same filter.
func (m DashboardModel) loadCmd() tea.Cmd {
	filter := m.filter

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		txs, err := m.txService.List(ctx, filter)
		if err != nil {
			return dashboardLoadMsg{err: err}
		}

		sum, err := m.budgetService.Summary(ctx, filter)
		if err != nil {
			return dashboardLoadMsg{err: err}
		}

		return dashboardLoadMsg{txs: txs, sum: sum}
	}
}

func (m DashboardModel) deleteCmd(tx *transaction.Transaction) tea.Cmd {
	if tx == nil {
		return nil
	}

	id := tx.ID

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		return dashboardDeleteMsg{err: m.txService.Delete(ctx, id)}
	}
}
