package view

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/cedar/internal/assistant"
	"github.com/MrJamesThe3rd/cedar/internal/transaction"
)

const (
	chatTimeout    = 2 * time.Minute
	receiptCommand = "/receipt "
)

var (
	userStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	cedarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("28")).Bold(true)
)

// Assistant is the part of the assistant client the chat screen talks to.
type Assistant interface {
	Chat(ctx context.Context, prompt string, txs []*transaction.Transaction, mode assistant.Mode) (*assistant.Reply, error)
	AnalyzeReceipt(ctx context.Context, mimeType string, data []byte) (*assistant.Reply, error)
}

type chatLine struct {
	user bool
	text string
}

type ChatModel struct {
	CommonModel
	ai        Assistant
	txService *transaction.Service

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	mode     assistant.Mode
	lines    []chatLine
	pending  *assistant.Proposal
	thinking bool
}

func NewChatModel(ai Assistant, txSvc *transaction.Service) ChatModel {
	ti := textinput.New()
	ti.Placeholder = "Ask Cedar, or type /receipt <path>"
	ti.CharLimit = 500
	ti.Width = 70
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = cedarStyle

	m := ChatModel{
		ai:        ai,
		txService: txSvc,
		input:     ti,
		viewport:  viewport.New(80, 16),
		spinner:   sp,
		mode:      assistant.ModeFast,
		lines: []chatLine{{text: "Marhaba! I'm Cedar. Tell me what you spent or earned, " +
			"or ask me anything about your budget."}},
	}
	m.refreshViewport()

	return m
}

func (m ChatModel) Title() string { return "Ask Cedar" }

func (m ChatModel) ShortHelp() string {
	if m.pending != nil {
		return "y: add transaction | n: discard"
	}

	return "Enter: send | Tab: mode | Esc: back"
}

func (m ChatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case chatReplyMsg:
		m.thinking = false
		if msg.err != nil {
			m.say(false, errStyle.Render(fmt.Sprintf("Sorry, that failed: %v", msg.err)))
			return m, nil
		}

		m.say(false, replyText(msg.reply))
		if msg.reply.Proposal != nil {
			m.pending = msg.reply.Proposal
			m.input.Blur()
		}

		return m, nil

	case chatConfirmMsg:
		if msg.err != nil {
			m.say(false, errStyle.Render(fmt.Sprintf("I couldn't add that: %v", msg.err)))
			return m, nil
		}

		m.say(false, assistant.ConfirmationMessage(msg.tx.Category))

		return m, nil

	case spinner.TickMsg:
		if !m.thinking {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.viewport.Width = max(msg.Width-4, 20)
		m.viewport.Height = max(msg.Height-10, 5)
		m.refreshViewport()

		return m, nil

	case tea.KeyMsg:
		if m.pending != nil {
			return m.updateConfirm(msg)
		}

		switch msg.Type {
		case tea.KeyEsc:
			return m, Back
		case tea.KeyTab:
			modes := assistant.Modes()
			m.mode = modes[(slices.Index(modes, m.mode)+1)%len(modes)]

			return m, nil
		case tea.KeyEnter:
			return m.send()
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)

			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m ChatModel) send() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" || m.thinking {
		return m, nil
	}

	m.input.SetValue("")
	m.say(true, text)
	m.thinking = true

	if path, ok := strings.CutPrefix(text, receiptCommand); ok {
		return m, tea.Batch(m.spinner.Tick, m.receiptCmd(strings.TrimSpace(path)))
	}

	return m, tea.Batch(m.spinner.Tick, m.chatCmd(text, m.mode))
}

// updateConfirm gates a proposed transaction on an explicit yes.
func (m ChatModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		p := *m.pending
		m.pending = nil
		m.input.Focus()

		return m, m.confirmCmd(p)
	case "n", "N", "esc":
		m.pending = nil
		m.input.Focus()
		m.say(false, "No problem, I won't add it.")
	}

	return m, nil
}

func (m *ChatModel) say(user bool, text string) {
	m.lines = append(m.lines, chatLine{user: user, text: text})
	m.refreshViewport()
}

func (m *ChatModel) refreshViewport() {
	width := max(m.viewport.Width-2, 20)

	var b strings.Builder
	for _, l := range m.lines {
		who := cedarStyle.Render("Cedar")
		if l.user {
			who = userStyle.Render("You")
		}

		b.WriteString(who + "\n")
		b.WriteString(lipgloss.NewStyle().Width(width).Render(l.text) + "\n\n")
	}

	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

func (m ChatModel) View() string {
	footer := m.input.View()

	switch {
	case m.pending != nil:
		footer = m.proposalView()
	case m.thinking:
		footer = m.spinner.View() + " Cedar is thinking..."
	}

	header := fmt.Sprintf("Mode: %s", activeStyle(string(m.mode)))

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Render(m.viewport.View()),
		footer,
	))
}

func (m ChatModel) proposalView() string {
	p := m.pending

	return lipgloss.NewStyle().
		Padding(0, 1).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("205")).
		Render(fmt.Sprintf(
			"Add this transaction?\n\n%s  %s\n%.2f %s\n\n(y/n)",
			p.Type, p.Category, p.Amount, p.Currency,
		))
}

func replyText(r *assistant.Reply) string {
	if r.Proposal != nil {
		return fmt.Sprintf("I found a %s of %.2f %s for %s.",
			strings.ToLower(r.Proposal.Type), r.Proposal.Amount, r.Proposal.Currency, r.Proposal.Category)
	}

	text := r.Text
	if len(r.Sources) > 0 {
		text += "\n\n" + faintStyle.Render("Sources:")
		for _, s := range r.Sources {
			text += "\n" + faintStyle.Render(fmt.Sprintf("- %s (%s)", s.Title, s.URI))
		}
	}

	return text
}

// Messages

type chatReplyMsg struct {
	reply *assistant.Reply
	err   error
}

type chatConfirmMsg struct {
	tx  *transaction.Transaction
	err error
}

func (m ChatModel) chatCmd(prompt string, mode assistant.Mode) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), chatTimeout)
		defer cancel()

		txs, err := m.txService.List(ctx, transaction.ListFilter{})
		if err != nil {
			return chatReplyMsg{err: err}
		}

		reply, err := m.ai.Chat(ctx, prompt, txs, mode)

		return chatReplyMsg{reply: reply, err: err}
	}
}

func (m ChatModel) receiptCmd(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return chatReplyMsg{err: err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), chatTimeout)
		defer cancel()

		reply, err := m.ai.AnalyzeReceipt(ctx, http.DetectContentType(data), data)

		return chatReplyMsg{reply: reply, err: err}
	}
}

func (m ChatModel) confirmCmd(p assistant.Proposal) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		tx, err := m.txService.Admit(ctx, p.Candidate())

		return chatConfirmMsg{tx: tx, err: err}
	}
}
