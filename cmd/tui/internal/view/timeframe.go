package view

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/cedar/internal/transaction"
)

// Timeframe is a predefined or custom date range.
type Timeframe int

const (
	TimeframeToday Timeframe = iota
	TimeframeThisWeek
	TimeframeThisMonth
	TimeframeLastMonth
	TimeframeAll
	TimeframeCustom
)

func (t Timeframe) String() string {
	switch t {
	case TimeframeToday:
		return "Today"
	case TimeframeThisWeek:
		return "This Week"
	case TimeframeThisMonth:
		return "This Month"
	case TimeframeLastMonth:
		return "Last Month"
	case TimeframeAll:
		return "All Time"
	case TimeframeCustom:
		return "Custom Range"
	}

	return "Unknown"
}

// dateRange resolves a predefined timeframe relative to now. Weeks start on Monday.
func (t Timeframe) dateRange(now time.Time) (time.Time, time.Time) {
	switch t {
	case TimeframeToday:
		return now, now
	case TimeframeThisWeek:
		offset := int(now.Weekday())
		if offset == 0 {
			offset = 7
		}

		return now.AddDate(0, 0, -offset+1), now
	case TimeframeThisMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), now
	case TimeframeLastMonth:
		start := time.Date(now.Year(), now.Month()-1, 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(0, 1, -1)
	}

	return time.Time{}, time.Time{}
}

// wholeDays widens a range to cover both end days completely, in local time
// since admission dates use the local clock.
func wholeDays(start, end time.Time) (time.Time, time.Time) {
	return time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.Local),
		time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), time.Local)
}

// TimeframeSelectedMsg is emitted when the user has selected a valid date range.
// Start and End are zero values when All is true.
type TimeframeSelectedMsg struct {
	Label string
	Start time.Time
	End   time.Time
	All   bool
}

// Apply narrows f to the selected range.
func (msg TimeframeSelectedMsg) Apply(f *transaction.ListFilter) {
	if msg.All {
		f.StartDate, f.EndDate = nil, nil
		return
	}

	f.StartDate, f.EndDate = new(msg.Start), new(msg.End)
}

// rangeFields backs the custom range form.
type rangeFields struct {
	start string
	end   string
}

func validDate(s string) error {
	if _, err := time.Parse(time.DateOnly, s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}

	return nil
}

func newRangeForm(f *rangeFields) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("From").Placeholder("YYYY-MM-DD").CharLimit(10).Value(&f.start).Validate(validDate),
			huh.NewInput().Title("To").Placeholder("YYYY-MM-DD").CharLimit(10).Value(&f.end).Validate(func(s string) error {
				if err := validDate(s); err != nil {
					return err
				}

				if s < f.start {
					return fmt.Errorf("before the start date")
				}

				return nil
			}),
		),
	).WithWidth(30).WithShowHelp(false)
}

// TimeframePicker selects a period. Choosing Custom Range opens a small form.
type TimeframePicker struct {
	cursor   Timeframe
	first    Timeframe
	fields   *rangeFields
	rangeFrm *huh.Form
}

// NewTimeframePicker offers every timeframe from first onwards.
func NewTimeframePicker(first Timeframe) TimeframePicker {
	return TimeframePicker{cursor: first, first: first}
}

func (m TimeframePicker) Init() tea.Cmd {
	return nil
}

func (m TimeframePicker) Update(msg tea.Msg) (TimeframePicker, tea.Cmd) {
	if m.rangeFrm != nil {
		return m.updateRange(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		m.cursor = max(m.cursor-1, m.first)
	case "down", "j":
		m.cursor = min(m.cursor+1, TimeframeCustom)
	case "enter":
		return m.choose()
	}

	return m, nil
}

func (m TimeframePicker) choose() (TimeframePicker, tea.Cmd) {
	selected := m.cursor

	switch selected {
	case TimeframeCustom:
		m.fields = &rangeFields{}
		m.rangeFrm = newRangeForm(m.fields)

		return m, m.rangeFrm.Init()
	case TimeframeAll:
		return m, func() tea.Msg {
			return TimeframeSelectedMsg{Label: selected.String(), All: true}
		}
	}

	start, end := wholeDays(selected.dateRange(time.Now()))

	return m, func() tea.Msg {
		return TimeframeSelectedMsg{Label: selected.String(), Start: start, End: end}
	}
}

func (m TimeframePicker) updateRange(msg tea.Msg) (TimeframePicker, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.rangeFrm = nil
		return m, nil
	}

	form, cmd := m.rangeFrm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.rangeFrm = f
	}

	if m.rangeFrm.State != huh.StateCompleted {
		return m, cmd
	}

	m.rangeFrm = nil

	// Both values passed validDate.
	from, _ := time.Parse(time.DateOnly, m.fields.start)
	to, _ := time.Parse(time.DateOnly, m.fields.end)
	start, end := wholeDays(from, to)
	label := FormatDate(start) + " to " + FormatDate(end)

	return m, func() tea.Msg {
		return TimeframeSelectedMsg{Label: label, Start: start, End: end}
	}
}

func (m TimeframePicker) View() string {
	if m.rangeFrm != nil {
		return "Custom range\n\n" + m.rangeFrm.View() + "\n" + faintStyle.Render("(Esc to go back)")
	}

	s := "Select timeframe:\n\n"
	for t := m.first; t <= TimeframeCustom; t++ {
		cursor := "  "
		if t == m.cursor {
			cursor = "> "
		}

		s += cursor + t.String() + "\n"
	}

	return s + "\n" + faintStyle.Render("(Enter to select, Esc to cancel)")
}

// IsSelecting reports whether the list is showing rather than the custom range form.
func (m TimeframePicker) IsSelecting() bool {
	return m.rangeFrm == nil
}

// Reset returns to the list with the cursor on the first entry.
func (m *TimeframePicker) Reset() {
	m.cursor = m.first
	m.rangeFrm = nil
	m.fields = nil
}
