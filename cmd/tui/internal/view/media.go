package view

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/cedar/internal/assistant"
)

// Video generation polls for minutes; the client's poller bounds it first.
const mediaTimeout = 15 * time.Minute

type mediaKind string

const (
	mediaSpeech mediaKind = "speech"
	mediaImage  mediaKind = "image"
	mediaVideo  mediaKind = "video"
)

// Studio is the part of the assistant client that produces media.
type Studio interface {
	Speak(ctx context.Context, text string) ([]byte, error)
	GenerateImage(ctx context.Context, prompt string, aspect assistant.AspectRatio, size assistant.ImageSize) (string, error)
	GenerateVideo(ctx context.Context, prompt string, aspect assistant.AspectRatio) (*assistant.Video, error)
}

type mediaState int

const (
	mediaStateForm mediaState = iota
	mediaStateGenerating
	mediaStateResult
)

type mediaFields struct {
	kind   mediaKind
	prompt string
	aspect assistant.AspectRatio
	size   assistant.ImageSize
	dir    string
}

type MediaModel struct {
	CommonModel
	studio Studio

	state   mediaState
	fields  *mediaFields
	form    *huh.Form
	spinner spinner.Model

	cancel context.CancelFunc
	path   string
	err    error
}

func NewMediaModel(studio Studio) MediaModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	f := &mediaFields{kind: mediaSpeech, aspect: "1:1", size: "1K", dir: "./media"}

	return MediaModel{
		studio:  studio,
		fields:  f,
		form:    newMediaForm(f),
		spinner: s,
	}
}

func newMediaForm(f *mediaFields) *huh.Form {
	sizes := make([]huh.Option[assistant.ImageSize], 0, len(assistant.ImageSizes))
	for _, s := range assistant.ImageSizes {
		sizes = append(sizes, huh.NewOption(string(s), s))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[mediaKind]().
				Title("Create").
				Options(
					huh.NewOption("Spoken summary (WAV)", mediaSpeech),
					huh.NewOption("Image", mediaImage),
					huh.NewOption("Video", mediaVideo),
				).
				Value(&f.kind),

			huh.NewText().
				Title("Prompt").
				Placeholder("A cedar tree over Beirut at sunset").
				Value(&f.prompt).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return assistant.ErrEmptyPrompt
					}

					return nil
				}),
		),
		huh.NewGroup(
			huh.NewSelect[assistant.AspectRatio]().
				Title("Aspect ratio").
				OptionsFunc(func() []huh.Option[assistant.AspectRatio] {
					ratios := assistant.ImageAspectRatios
					if f.kind == mediaVideo {
						ratios = assistant.VideoAspectRatios
					}

					opts := make([]huh.Option[assistant.AspectRatio], 0, len(ratios))
					for _, r := range ratios {
						opts = append(opts, huh.NewOption(string(r), r))
					}

					return opts
				}, &f.kind).
				Value(&f.aspect),
		).WithHideFunc(func() bool { return f.kind == mediaSpeech }),
		huh.NewGroup(
			huh.NewSelect[assistant.ImageSize]().
				Title("Size").
				Options(sizes...).
				Value(&f.size),
		).WithHideFunc(func() bool { return f.kind != mediaImage }),
		huh.NewGroup(
			huh.NewInput().
				Title("Output directory").
				Description("Created if it doesn't exist").
				Value(&f.dir),
		),
	).WithWidth(60).WithShowHelp(false)
}

func (m MediaModel) Title() string { return "Media Studio" }

func (m MediaModel) ShortHelp() string {
	switch m.state {
	case mediaStateGenerating:
		return "Esc: cancel"
	case mediaStateResult:
		return "Enter: create another | Esc: back"
	}

	return "Tab: next field | Esc: back"
}

func (m MediaModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m MediaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if res, ok := msg.(mediaResultMsg); ok {
		m.state = mediaStateResult
		m.path = res.path
		m.err = res.err
		m.cancel = nil

		return m, nil
	}

	switch m.state {
	case mediaStateGenerating:
		return m.updateGenerating(msg)
	case mediaStateResult:
		return m.updateResult(msg)
	}

	return m.updateForm(msg)
}

func (m MediaModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	ctx, cancel := context.WithTimeout(context.Background(), mediaTimeout)
	m.cancel = cancel
	m.state = mediaStateGenerating
	m.err = nil

	return m, tea.Batch(m.spinner.Tick, m.generateCmd(ctx, cancel, *m.fields))
}

func (m MediaModel) updateGenerating(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		if m.cancel != nil {
			m.cancel()
		}

		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func (m MediaModel) updateResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.Type {
	case tea.KeyEsc:
		return m, Back
	case tea.KeyEnter:
		prev := m.fields
		m.fields = &mediaFields{kind: prev.kind, aspect: prev.aspect, size: prev.size, dir: prev.dir}
		m.form = newMediaForm(m.fields)
		m.state = mediaStateForm

		return m, m.form.Init()
	}

	return m, nil
}

func (m MediaModel) View() string {
	switch m.state {
	case mediaStateGenerating:
		wait := "this takes a few seconds"
		if m.fields.kind == mediaVideo {
			wait = "videos can take several minutes"
		}

		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Generating %s, %s...", m.spinner.View(), m.fields.kind, wait),
		)

	case mediaStateResult:
		if m.err != nil {
			return lipgloss.NewStyle().Padding(1).Render(errStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		}

		return lipgloss.NewStyle().Padding(1).Render(
			okStyle.Bold(true).Render("Saved!") + "\n\n" + m.path,
		)
	}

	return lipgloss.NewStyle().Padding(1).Render(m.form.View())
}

type mediaResultMsg struct {
	path string
	err  error
}

func (m MediaModel) generateCmd(ctx context.Context, cancel context.CancelFunc, f mediaFields) tea.Cmd {
	return func() tea.Msg {
		defer cancel()

		data, ext, err := m.generate(ctx, f)
		if err != nil {
			return mediaResultMsg{err: err}
		}

		path, err := save(f.dir, string(f.kind), ext, data)

		return mediaResultMsg{path: path, err: err}
	}
}

func (m MediaModel) generate(ctx context.Context, f mediaFields) ([]byte, string, error) {
	switch f.kind {
	case mediaSpeech:
		pcm, err := m.studio.Speak(ctx, f.prompt)
		if err != nil {
			return nil, "", err
		}

		return assistant.WAV(pcm), ".wav", nil

	case mediaImage:
		dataURL, err := m.studio.GenerateImage(ctx, f.prompt, f.aspect, f.size)
		if err != nil {
			return nil, "", err
		}

		return decodeDataURL(dataURL)

	case mediaVideo:
		v, err := m.studio.GenerateVideo(ctx, f.prompt, f.aspect)
		if err != nil {
			return nil, "", err
		}

		return v.Data, ".mp4", nil
	}

	return nil, "", fmt.Errorf("%w: media kind %q", assistant.ErrInvalidOption, f.kind)
}

// decodeDataURL splits a base64 data URL into its bytes and a file extension.
func decodeDataURL(s string) ([]byte, string, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(s, "data:"), ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return nil, "", fmt.Errorf("malformed data url")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("decoding image: %w", err)
	}

	ext := ".png"
	if strings.HasPrefix(meta, "image/jpeg") {
		ext = ".jpg"
	}

	return data, ext, nil
}

func save(dir, name, ext string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("cedar-%s-%s%s", name, time.Now().Format("20060102-150405"), ext))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}

	return path, nil
}
