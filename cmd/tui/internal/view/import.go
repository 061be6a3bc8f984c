package view

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/cedar/internal/importer"
	"github.com/MrJamesThe3rd/cedar/internal/transaction"
)

const importTimeout = 2 * time.Minute

// charsets offered before picking a file. An empty name means detect.
var charsets = []string{"", "utf-8", "windows-1256", "iso-8859-6", "windows-1252"}

type importState int

const (
	importStateCharset importState = iota
	importStateFilePick
	importStateImporting
	importStateResult
)

type ImportModel struct {
	CommonModel
	importService *importer.Service

	state         importState
	filePicker    filepicker.Model
	charsetCursor int

	imported []*transaction.Transaction
	status   string
	err      error
}

func NewImportModel(impSvc *importer.Service) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		importService: impSvc,
		filePicker:    fp,
	}
}

func (m ImportModel) Title() string { return "Import CSV" }

func (m ImportModel) ShortHelp() string {
	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		if m.state == importStateCharset {
			return m.updateCharset(msg)
		}

	case importResultMsg:
		m.state = importStateResult
		m.err = msg.err
		m.imported = msg.txs

		if msg.err != nil {
			m.status = fmt.Sprintf("Nothing imported: %v", msg.err)
			return m, nil
		}

		m.status = fmt.Sprintf("Imported %d transactions.", len(msg.txs))

		return m, nil
	}

	if m.state != importStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateImporting
		m.status = fmt.Sprintf("Importing from %s...", path)

		return m, m.importCmd(path, charsets[m.charsetCursor])
	}

	return m, cmd
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateFilePick:
		m.state = importStateCharset
		return m, nil
	case importStateResult:
		m.state = importStateCharset
		m.err = nil
		m.status = ""
		m.imported = nil

		return m, nil
	}

	return m, Back
}

func (m ImportModel) updateCharset(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.charsetCursor > 0 {
			m.charsetCursor--
		}
	case tea.KeyDown:
		if m.charsetCursor < len(charsets)-1 {
			m.charsetCursor++
		}
	case tea.KeyEnter:
		m.state = importStateFilePick
		return m, m.filePicker.Init()
	}

	return m, nil
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateCharset:
		return m.viewCharset()
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("Select CSV file (%s):\n\n%s", charsetLabel(charsets[m.charsetCursor]), m.filePicker.View()),
		)
	case importStateImporting:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStateResult:
		return m.viewResult()
	}

	return ""
}

func charsetLabel(name string) string {
	if name == "" {
		return "detect encoding"
	}

	return name
}

func (m ImportModel) viewCharset() string {
	s := "File encoding:\n\n"

	for i, name := range charsets {
		cursor := " "
		if i == m.charsetCursor {
			cursor = ">"
		}

		s += fmt.Sprintf("%s %s\n", cursor, charsetLabel(name))
	}

	s += "\n" + faintStyle.Render("Columns: amount, currency, type, category")

	return lipgloss.NewStyle().Padding(2).Render(s)
}

func (m ImportModel) viewResult() string {
	style := lipgloss.NewStyle().Padding(2)
	if m.err != nil {
		return style.Render(errStyle.Render(m.status) + "\n\n(Esc to go back)")
	}

	s := okStyle.Render(m.status) + "\n\n"
	for _, tx := range m.imported {
		s += fmt.Sprintf("%s  %-27s %s\n", typeStyle(tx.Type).Render(fmt.Sprintf("%-7s", tx.Type)), tx.Category, FormatTxAmount(tx))
	}

	return style.Render(s + "\n(Esc to go back)")
}

// Messages

type importResultMsg struct {
	txs []*transaction.Transaction
	err error
}

func (m ImportModel) importCmd(path, charset string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importResultMsg{err: err}
		}
		defer f.Close()

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		txs, err := m.importService.Import(ctx, f, charset)

		return importResultMsg{txs: txs, err: err}
	}
}
