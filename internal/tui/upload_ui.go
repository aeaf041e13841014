package tui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"ghup.dev/ghup/internal/uploader"
)

// UploadUI displays the progress of an upload
type UploadUI interface {
	// Start announces what is being uploaded
	Start(description string)

	// FileDone reports one finished file. Calls are serialised by the uploader.
	FileDone(res uploader.Result)

	// Complete ends the display without a summary (single file uploads)
	Complete()

	// CompleteWithSummary ends the display with the "Uploaded N out of M files" line
	CompleteWithSummary(succeeded, total int)
}

// NewUploadUI creates the appropriate UI based on TTY availability
func NewUploadUI(splog *Splog, animate bool) UploadUI {
	if animate && IsTTY() {
		return NewTTYUploadUI(splog, os.Stdout)
	}
	return NewSimpleUploadUI(splog)
}

// ============================================================================
// SimpleUploadUI - Non-bubbletea implementation for non-TTY environments
// ============================================================================

// SimpleUploadUI implements UploadUI with line-by-line output
type SimpleUploadUI struct {
	splog *Splog
}

// NewSimpleUploadUI creates a new simple upload UI
func NewSimpleUploadUI(splog *Splog) *SimpleUploadUI {
	return &SimpleUploadUI{splog: splog}
}

func (u *SimpleUploadUI) Start(description string) {
	u.splog.Debug("%s", description)
}

func (u *SimpleUploadUI) FileDone(res uploader.Result) {
	u.splog.Result(res)
}

func (u *SimpleUploadUI) Complete() {}

func (u *SimpleUploadUI) CompleteWithSummary(succeeded, total int) {
	u.splog.Summary(succeeded, total)
}

// ============================================================================
// TTYUploadUI - Bubbletea implementation for TTY environments
// ============================================================================

// TTYUploadUI implements UploadUI with a bubbletea spinner while files upload
type TTYUploadUI struct {
	splog   *Splog
	output  io.Writer
	program *tea.Program
	done    chan struct{}
}

// NewTTYUploadUI creates a new TTY upload UI
func NewTTYUploadUI(splog *Splog, output io.Writer) *TTYUploadUI {
	return &TTYUploadUI{splog: splog, output: output}
}

func (u *TTYUploadUI) Start(description string) {
	// The program owns the terminal until Complete
	u.splog.SetQuiet(true)
	u.done = make(chan struct{})
	u.program = tea.NewProgram(newUploadModel(description), tea.WithInput(nil), tea.WithOutput(u.output))

	go func() {
		defer close(u.done)
		_, _ = u.program.Run()
	}()
}

func (u *TTYUploadUI) FileDone(res uploader.Result) {
	// Quiet: this only reaches the log file
	u.splog.Result(res)
	if u.program != nil {
		u.program.Send(fileDoneMsg{result: res})
	}
}

func (u *TTYUploadUI) Complete() {
	u.finish(uploadCompleteMsg{})
}

func (u *TTYUploadUI) CompleteWithSummary(succeeded, total int) {
	u.splog.Summary(succeeded, total)
	u.finish(uploadCompleteMsg{summary: true, succeeded: succeeded, total: total})
}

func (u *TTYUploadUI) finish(msg uploadCompleteMsg) {
	if u.program != nil {
		u.program.Send(msg)
		<-u.done
	}
	u.splog.SetQuiet(false)
}

// ============================================================================
// Internal bubbletea model for TTY upload progress
// ============================================================================

type fileDoneMsg struct {
	result uploader.Result
}

type uploadCompleteMsg struct {
	summary   bool
	succeeded int
	total     int
}

type uploadModel struct {
	description string
	lines       []string
	spinner     spinner.Model
	done        bool
	summary     string
}

func newUploadModel(description string) *uploadModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = accentStyle

	return &uploadModel{
		description: description,
		spinner:     s,
	}
}

func (m *uploadModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *uploadModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case fileDoneMsg:
		m.lines = append(m.lines, FormatResult(msg.result))
		return m, nil

	case uploadCompleteMsg:
		m.done = true
		if msg.summary {
			m.summary = FormatSummary(msg.succeeded, msg.total)
		}
		return m, tea.Quit
	}

	return m, nil
}

func (m *uploadModel) View() string {
	var b strings.Builder

	for _, line := range m.lines {
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.done {
		if m.summary != "" {
			b.WriteString(m.summary)
			b.WriteString("\n")
		}
		return b.String()
	}

	b.WriteString(fmt.Sprintf("%s %s", m.spinner.View(), accentStyle.Render(m.description)))
	b.WriteString(ColorDim(fmt.Sprintf(" (%d done)", len(m.lines))))
	b.WriteString("\n")
	return b.String()
}
