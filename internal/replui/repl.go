// Package replui implements SimpleScript's interactive REPL: a
// bubbletea program wrapping a bubbles textinput, with lipgloss-styled
// output and sahilm/fuzzy tab completion over keywords and builtins.
package replui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/LaputanMachines/simplescript/internal/builtins"
	"github.com/LaputanMachines/simplescript/internal/config"
	"github.com/LaputanMachines/simplescript/internal/evaluator"
	"github.com/LaputanMachines/simplescript/internal/lexer"
	"github.com/LaputanMachines/simplescript/internal/parser"
	"github.com/LaputanMachines/simplescript/internal/runtime"
	"github.com/LaputanMachines/simplescript/internal/token"
)

// Candidates is the fixed vocabulary tab-completion matches against:
// every reserved word plus every registered builtin name.
func candidates() []string {
	names := make([]string, 0, len(token.Keywords)+8)
	for kw := range token.Keywords {
		names = append(names, kw)
	}
	// Environment only exposes Get/GetLocal/Define/Has, not enumeration, so the
	// builtin list is named directly rather than walked.
	names = append(names,
		"PRINT", "PRINT_RET", "INPUT", "INPUT_INT", "CLEAR",
		"IS_NUMBER", "IS_STRING", "IS_LIST", "IS_FUNCTION",
		"APPEND", "POP", "EXTEND", "LEN", "TYPE",
	)
	return names
}

type model struct {
	input     textinput.Model
	env       *runtime.Environment
	ctx       *runtime.Context
	lines     []string
	lineNo    int
	quitting  bool
	matches   fuzzy.Matches
	candidate []string

	promptStyle lipgloss.Style
	resultStyle lipgloss.Style
	errorStyle  lipgloss.Style
	hintStyle   lipgloss.Style
}

// New builds the initial REPL model, sharing a single persistent
// Environment across every evaluated line so variables and function
// definitions survive from one input to the next.
func New(cfg *config.Config) model {
	ti := textinput.New()
	ti.Prompt = cfg.REPL.Prompt
	ti.Focus()
	ti.CharLimit = 4096
	ti.Width = 78

	env := runtime.NewEnvironment()
	builtins.Register(env)

	return model{
		input:       ti,
		env:         env,
		ctx:         runtime.NewContext("<repl>", env),
		candidate:   candidates(),
		promptStyle: lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Theme.PromptColor)).Bold(true),
		resultStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		errorStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Theme.ErrorColor)),
		hintStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// Run starts the bubbletea program and blocks until the user exits.
func Run(cfg *config.Config) error {
	m := New(cfg)
	p := tea.NewProgram(m)
	_, err := p.Run()
	return err
}

func (m model) Init() tea.Cmd { return textinput.Blink }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			return m.evaluateLine()
		case tea.KeyTab:
			return m.completeWord()
		}
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - len(m.input.Prompt) - 2
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.refreshMatches()
	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if len(m.matches) > 0 {
		var names []string
		for _, match := range m.matches {
			names = append(names, match.Str)
		}
		b.WriteString(m.hintStyle.Render(strings.Join(names, "  ")))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *model) refreshMatches() {
	word := currentWord(m.input.Value(), m.input.Position())
	if word == "" {
		m.matches = nil
		return
	}
	m.matches = fuzzy.Find(word, m.candidate)
}

// currentWord returns the identifier-like token the cursor sits inside,
// for fuzzy-completion lookups.
func currentWord(line string, cursor int) string {
	if cursor > len(line) {
		cursor = len(line)
	}
	start := cursor
	for start > 0 && isWordByte(line[start-1]) {
		start--
	}
	return line[start:cursor]
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func (m model) completeWord() (tea.Model, tea.Cmd) {
	if len(m.matches) == 0 {
		return m, nil
	}
	best := m.matches[0].Str
	line := m.input.Value()
	cursor := m.input.Position()
	word := currentWord(line, cursor)
	start := cursor - len(word)
	newLine := line[:start] + best + line[cursor:]
	m.input.SetValue(newLine)
	m.input.SetCursor(start + len(best))
	m.refreshMatches()
	return m, nil
}

func (m model) evaluateLine() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")
	m.lineNo++
	if input == "" {
		return m, nil
	}

	echo := tea.Println(m.promptStyle.Render(m.input.Prompt) + input)

	toks, err := lexer.New(fmt.Sprintf("<repl:%d>", m.lineNo), input).Tokenize()
	if err != nil {
		return m, tea.Sequence(echo, tea.Println(m.errorStyle.Render(err.Error())))
	}
	program, err := parser.Parse(toks)
	if err != nil {
		return m, tea.Sequence(echo, tea.Println(m.errorStyle.Render(err.Error())))
	}

	value, rtErr := evaluator.Run(m.ctx, program)
	if rtErr != nil {
		return m, tea.Sequence(echo, tea.Println(m.errorStyle.Render(rtErr.Error())))
	}

	return m, tea.Sequence(echo, tea.Println(m.resultStyle.Render(value.String())))
}
