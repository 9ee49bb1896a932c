package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sevigo/code-mentor/internal/app"
	"github.com/sevigo/code-mentor/internal/core"
)

const asciiLogo = `
╔═══════════════════════════════════════════════════════════════════════╗
║                                                                       ║
║    ██████╗ ██████╗ ██████╗ ███████╗                                   ║
║   ██╔════╝██╔═══██╗██╔══██╗██╔════╝                                   ║
║   ██║     ██║   ██║██║  ██║█████╗                                     ║
║   ██║     ██║   ██║██║  ██║██╔══╝                                     ║
║   ╚██████╗╚██████╔╝██████╔╝███████╗                                   ║
║    ╚═════╝ ╚═════╝ ╚═════╝ ╚══════╝                                   ║
║   ███╗   ███╗███████╗███╗   ██╗████████╗ ██████╗ ██████╗              ║
║   ████╗ ████║██╔════╝████╗  ██║╚══██╔══╝██╔═══██╗██╔══██╗             ║
║   ██╔████╔██║█████╗  ██╔██╗ ██║   ██║   ██║   ██║██████╔╝             ║
║   ██║╚██╔╝██║██╔══╝  ██║╚██╗██║   ██║   ██║   ██║██╔══██╗             ║
║   ██║ ╚═╝ ██║███████╗██║ ╚████║   ██║   ╚██████╔╝██║  ██║             ║
║   ╚═╝     ╚═╝╚══════╝╚═╝  ╚═══╝   ╚═╝    ╚═════╝ ╚═╝  ╚═╝             ║
║                                                                       ║
║                 EMPATHETIC CODE REVIEW COMPANION                      ║
║                                                                       ║
╚═══════════════════════════════════════════════════════════════════════╝
`

type model struct {
	styles styles
	app    *app.App

	// UI Components
	viewport  viewport.Model
	textarea  textarea.Model
	spinner   spinner.Model
	isLoading bool

	// Session State
	request       *core.ReviewRequest
	requestSource string
	lastReport    *core.ReviewReport
	lastMarkdown  string
	history       []string
	width         int
}

func initialModel(theme ThemeName) *model {
	styles := GetTheme(theme)
	ta := textarea.New()
	ta.Placeholder = "Enter a command, e.g. /load input.json"
	ta.Focus()
	ta.Prompt = styles.prompt.Render("► ")
	ta.CharLimit = 500
	ta.SetWidth(50)
	ta.SetHeight(1)
	ta.ShowLineNumbers = false

	sp := spinner.New()
	sp.Spinner = spinner.Points
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("51"))

	return &model{
		styles:    styles,
		textarea:  ta,
		spinner:   sp,
		isLoading: true,
		width:     80,
		history:   []string{styles.ascii.Render(asciiLogo), "", "⚙ STARTING CODE MENTOR..."},
	}
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(initializeAppCmd(), m.spinner.Tick)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		spCmd tea.Cmd
	)

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.viewport, vpCmd = m.viewport.Update(msg)
	m.spinner, spCmd = m.spinner.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				return m, nil
			}

			m.textarea.Reset()
			return m, m.processCommand(input)
		}

	case appInitializedMsg:
		m.isLoading = false
		if msg.err != nil {
			fmt.Fprintf(os.Stderr, "ERROR initializing app: %v\n", msg.err)
			m.appendHistory("", m.styles.error.Render(msg.err.Error()))
			return m, nil
		}
		m.app = msg.app
		m.appendHistory("",
			m.styles.success.Render("✓ SYSTEM ONLINE"),
			m.styles.inactive.Render(fmt.Sprintf("Backend: %s (%s)", m.app.Cfg.GeneratorModelName, m.app.Cfg.LLMProvider)),
			"",
			"Type /help for commands, or /example to load a sample request.")
		return m, nil

	case requestLoadedMsg:
		m.isLoading = false
		m.request = msg.request
		m.requestSource = msg.source
		m.appendHistory("",
			m.styles.success.Render(fmt.Sprintf("✓ REQUEST LOADED: %s", msg.source)),
			m.styles.inactive.Render(fmt.Sprintf("%d comments queued. Run /review to analyze them.", len(msg.request.ReviewComments))))
		return m, nil

	case reviewCompleteMsg:
		m.isLoading = false
		m.lastReport = msg.report
		m.lastMarkdown = msg.markdown
		m.appendHistory("", msg.rendered)
		if degraded := msg.report.DegradedCount(); degraded > 0 {
			m.appendHistory(m.styles.error.Render(fmt.Sprintf("⚠ %d of %d comments could not be fully analyzed", degraded, len(msg.report.Analyses))))
		}
		m.appendHistory(m.styles.inactive.Render("Use /save [path] to write the report to disk."))
		return m, nil

	case reportSavedMsg:
		m.isLoading = false
		m.appendHistory("", m.styles.success.Render(fmt.Sprintf("✓ REPORT SAVED: %s", msg.path)))
		return m, nil

	case errorMsg:
		m.isLoading = false
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", msg.err)
		m.appendHistory("", m.styles.error.Render("⚠ "+msg.err.Error()))
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = msg.Height - 8
		m.textarea.SetWidth(msg.Width - 10)
		m.viewport.SetContent(strings.Join(m.history, "\n"))
	}

	return m, tea.Batch(tiCmd, vpCmd, spCmd)
}

func (m *model) View() string {
	if m.app == nil {
		return fmt.Sprintf("\n  %s STARTING...\n\n", m.spinner.View())
	}

	var statusParts []string
	if m.request != nil {
		statusParts = append(statusParts, fmt.Sprintf("REQUEST: %s (%d comments)", m.requestSource, len(m.request.ReviewComments)))
	} else {
		statusParts = append(statusParts, "REQUEST: None Loaded")
	}

	if m.lastReport != nil {
		if degraded := m.lastReport.DegradedCount(); degraded > 0 {
			statusParts = append(statusParts, fmt.Sprintf("● REPORT READY (%d degraded)", degraded))
		} else {
			statusParts = append(statusParts, m.styles.success.Render("● REPORT READY"))
		}
	} else {
		statusParts = append(statusParts, m.styles.inactive.Render("○ NO REPORT"))
	}

	if m.app.Cfg != nil {
		statusParts = append(statusParts, fmt.Sprintf("🤖 %s (%s)", m.app.Cfg.GeneratorModelName, m.app.Cfg.LLMProvider))
	}

	status := m.styles.inactive.Render(strings.Join(statusParts, " │ "))

	var loadingIndicator string
	if m.isLoading {
		loadingIndicator = " " + m.spinner.View() + " " + m.styles.success.Render("PROCESSING...")
	}

	return m.styles.app.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.styles.viewport.Render(m.viewport.View()),
			"",
			m.styles.footer.Render(
				lipgloss.JoinHorizontal(lipgloss.Left,
					m.textarea.View(),
					loadingIndicator,
				),
			),
			status,
		),
	)
}

// appendHistory adds lines to the transcript and scrolls the viewport.
func (m *model) appendHistory(lines ...string) {
	m.history = append(m.history, lines...)
	m.viewport.SetContent(strings.Join(m.history, "\n"))
	m.viewport.GotoBottom()
}

func (m *model) processCommand(input string) tea.Cmd {
	m.appendHistory(m.styles.prompt.Render("► ") + input)

	parts := strings.Fields(input)
	if len(parts) == 0 {
		return nil
	}
	command := parts[0]
	args := parts[1:]

	switch command {
	case "/load":
		if len(args) != 1 {
			m.appendHistory(m.styles.error.Render("USAGE: /load [path_to_request.json]"))
			return nil
		}
		m.isLoading = true
		m.appendHistory("", m.styles.command.Render(fmt.Sprintf("→ Loading %s...", args[0])))
		return tea.Batch(m.spinner.Tick, loadRequestCmd(args[0]))

	case "/example":
		return loadExampleCmd()

	case "/review", "/run":
		if m.request == nil {
			m.appendHistory("", m.styles.error.Render("No request loaded. Use '/load [path]' or '/example' first."))
			return nil
		}
		m.isLoading = true
		m.appendHistory("", m.styles.command.Render(fmt.Sprintf("→ Analyzing %d comments... (this may take a while)", len(m.request.ReviewComments))))
		return tea.Batch(m.spinner.Tick, runReviewCmd(m.app, m.request, m.viewport.Width))

	case "/save":
		if m.lastMarkdown == "" {
			m.appendHistory("", m.styles.error.Render("No report to save. Run /review first."))
			return nil
		}
		path := "review-report.md"
		if len(args) == 1 {
			path = args[0]
		}
		m.isLoading = true
		return tea.Batch(m.spinner.Tick, saveReportCmd(m.lastMarkdown, path))

	case "/show":
		if m.request == nil {
			m.appendHistory("", m.styles.error.Render("No request loaded."))
			return nil
		}
		var b strings.Builder
		b.WriteString(m.styles.success.Render("CURRENT REQUEST:"))
		b.WriteString("\n\n" + m.request.CodeSnippet + "\n")
		for i, comment := range m.request.ReviewComments {
			b.WriteString(fmt.Sprintf("\n  %d. %s", i+1, comment))
		}
		m.appendHistory("", b.String())
		return nil

	case "/help", "/h":
		helpText := m.styles.success.Render("AVAILABLE COMMANDS:") + `

  /load [path]     Load a JSON review request from a file.
  /example         Load the built-in sample request.
  /show            Show the loaded code snippet and comments.
  /review, /run    Analyze all loaded comments and render the report.
  /save [path]     Write the last report as markdown (default review-report.md).
  /help            Show this help message.
  /exit, /quit     Exit Code Mentor.`
		m.appendHistory("", helpText)
		return nil

	case "/exit", "/quit":
		return tea.Quit

	default:
		m.appendHistory("", m.styles.error.Render(fmt.Sprintf("UNKNOWN COMMAND: %s", command)), m.styles.inactive.Render("Type /help for the command list."))
		return nil
	}
}
