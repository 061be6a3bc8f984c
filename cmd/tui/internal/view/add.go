package view

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/cedar/internal/currency"
	"github.com/MrJamesThe3rd/cedar/internal/transaction"
)

// addFields holds the form bindings. It lives on the heap so huh keeps
// writing to the same values while the model is copied around.
type addFields struct {
	typ      transaction.Type
	currency currency.Currency
	category transaction.Category
	amount   string
}

type AddModel struct {
	CommonModel
	txService *transaction.Service

	fields *addFields
	form   *huh.Form
	saving bool
	status string
}

func NewAddModel(txSvc *transaction.Service) AddModel {
	f := &addFields{typ: transaction.TypeExpense, currency: currency.LBP}

	return AddModel{
		txService: txSvc,
		fields:    f,
		form:      newAddForm(f),
	}
}

func newAddForm(f *addFields) *huh.Form {
	currencies := make([]huh.Option[currency.Currency], 0, len(currency.All()))
	for _, c := range currency.All() {
		currencies = append(currencies, huh.NewOption(string(c), c))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[transaction.Type]().
				Title("Type").
				Options(
					huh.NewOption("Expense", transaction.TypeExpense),
					huh.NewOption("Income", transaction.TypeIncome),
				).
				Value(&f.typ),

			huh.NewSelect[currency.Currency]().
				Title("Currency").
				Options(currencies...).
				Value(&f.currency),

			huh.NewInput().
				Title("Amount").
				Placeholder("895,000").
				Value(&f.amount).
				Validate(func(s string) error {
					v, err := currency.ParseAmount(s)
					if err != nil {
						return err
					}

					if v <= 0 {
						return fmt.Errorf("amount must be positive")
					}

					return nil
				}),
		),
		huh.NewGroup(
			huh.NewSelect[transaction.Category]().
				Title("Category").
				OptionsFunc(func() []huh.Option[transaction.Category] {
					cats := transaction.Categories(f.typ)
					opts := make([]huh.Option[transaction.Category], 0, len(cats))
					for _, c := range cats {
						opts = append(opts, huh.NewOption(string(c), c))
					}

					return opts
				}, &f.typ).
				Value(&f.category),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m AddModel) Title() string { return "Add Transaction" }

func (m AddModel) ShortHelp() string {
	if m.form.State == huh.StateCompleted {
		return "Enter: add another | Esc: back"
	}

	return "Tab: next field | Esc: back"
}

func (m AddModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m AddModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case addResultMsg:
		m.saving = false
		if msg.err != nil {
			m.status = errStyle.Render(fmt.Sprintf("Not added: %v", msg.err))
			return m, nil
		}

		m.status = okStyle.Render(fmt.Sprintf("Added %s for %s.", FormatTxAmount(msg.tx), msg.tx.Category))

		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}

		if m.form.State == huh.StateCompleted && !m.saving && msg.Type == tea.KeyEnter {
			m.fields = &addFields{typ: m.fields.typ, currency: m.fields.currency}
			m.form = newAddForm(m.fields)
			m.status = ""

			return m, m.form.Init()
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted && !m.saving && m.status == "" {
		m.saving = true
		return m, tea.Batch(cmd, m.addCmd())
	}

	return m, cmd
}

func (m AddModel) View() string {
	content := m.form.View()
	if m.saving {
		content = "Saving..."
	}

	if m.status != "" {
		content = m.status + "\n\n" + faintStyle.Render("(Enter to add another, Esc to go back)")
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}

type addResultMsg struct {
	tx  *transaction.Transaction
	err error
}

func (m AddModel) addCmd() tea.Cmd {
	f := *m.fields

	return func() tea.Msg {
		amount, err := currency.ParseAmount(f.amount)
		if err != nil {
			return addResultMsg{err: err}
		}

		ctx, cancel := StoreCtx()
		defer cancel()

		tx, err := m.txService.Admit(ctx, transaction.Candidate{
			Amount:   amount,
			Currency: f.currency,
			Type:     f.typ,
			Category: f.category,
		})

		return addResultMsg{tx: tx, err: err}
	}
}
