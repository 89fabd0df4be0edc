package repl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/dataindex/index"
	"github.com/ardnew/dataindex/log"
	"github.com/ardnew/dataindex/value"
)

type (
	// editDoneMsg carries the index rebuilt by the editor.
	editDoneMsg struct{ idx *index.Index }
	// editCancelledMsg is sent when the user cleared the editor content.
	editCancelledMsg struct{}
	// editDeclinedMsg is sent when the user declined to re-edit.
	editDeclinedMsg struct{}
	// editErrorMsg is sent when the editor could not run.
	editErrorMsg struct{ err error }
)

const (
	evalPrompt = "➜ "
	ctrlPrompt = ":"
)

// inputMode is either expression evaluation or REPL commands.
type inputMode int

const (
	modeEval inputMode = iota
	modeCtrl
)

// prefix marks the mode of a persisted history line.
func (m inputMode) prefix() string {
	if m == modeCtrl {
		return "C:"
	}

	return "E:"
}

// ctrlCommand describes a command available in command mode.
type ctrlCommand struct {
	name, alias, usage string
	help               string
	takesName          bool
}

var ctrlCommands = []ctrlCommand{
	{"help", "h", "help", "Print this help", false},
	{"ls", "l", "ls [prefix]", "List names visible from the current scope", true},
	{"cd", "", "cd [name|..|/]", "Change scope to a container", true},
	{"pwd", "", "pwd", "Print the current scope", false},
	{"get", "g", "get NAME", "Print the value a name resolves to", true},
	{"describe", "d", "describe NAME", "Print the type of a name", true},
	{"serialize", "s", "serialize NAME", "Print the markup for a name", true},
	{"edit", "e", "edit", "Edit the index as markup in $EDITOR", false},
	{"clear", "c", "clear", "Clear screen", false},
	{"quit", "q", "quit", "Exit REPL", false},
}

func ctrlCommandNames() []string {
	names := make([]string, len(ctrlCommands))
	for i, c := range ctrlCommands {
		names[i] = c.name
	}

	return names
}

func lookupCtrl(name string) (ctrlCommand, bool) {
	for _, c := range ctrlCommands {
		if name == c.name || (c.alias != "" && name == c.alias) {
			return c, true
		}
	}

	return ctrlCommand{}, false
}

func helpMessage() string {
	var b strings.Builder

	b.WriteString("\n: Commands (press Esc to toggle mode):\n\n")

	for _, c := range ctrlCommands {
		fmt.Fprintf(&b, "  %-18s %s\n", c.usage, c.help)
	}

	b.WriteString(`
Usage:
  Type an expression to evaluate it; every name visible from the current
    scope is a variable and containers are nested maps (stella.eyes)
  Completions appear as you type; Tab / Shift-Tab cycle through them
  Press Esc to toggle between eval and command modes
  Use Up/Down for history, Shift+Up/Shift+Down within the current mode
  Press Ctrl+C on an empty line or Ctrl+D to exit
`)

	return b.String()
}

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	ctrlPromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true)
	scopeStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	matchStyle      = lipgloss.NewStyle().
			Foreground(lipgloss.Color("4")).
			Bold(true)
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
	selectedMatchStyle = selectedStyle.Bold(true)
)

const defaultWidth = 80

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc func() context.Context
	input   textinput.Model
	idx     *index.Index
	scope   string
	logger  log.Logger

	history    *History
	historyIdx int

	matches      fuzzy.Matches
	wordStart    int
	wordEnd      int
	suggIdx      int
	tabActive    bool
	preTabText   string
	preTabCursor int

	width    int
	quitting bool
	mode     inputMode

	evalText, ctrlText     string
	evalCursor, ctrlCursor int
}

// Run starts an interactive session over idx with scope as the initial
// scope. History is kept in historyDir when it is not empty.
func Run(
	ctx context.Context,
	idx *index.Index,
	scope string,
	historyDir string,
	logger log.Logger,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if idx == nil {
		return ErrNoIndex
	}

	history := NewHistory(historyDir)
	if err := history.Load(); err != nil {
		logger.WarnContext(ctx, "could not load history", slog.Any("error", err))
	}

	logger.TraceContext(ctx, "repl start",
		slog.Int("entries", idx.Len()),
		slog.String("scope", scope),
		slog.Int("history", history.Len()),
	)

	p := tea.NewProgram(newModel(ctx, idx, scope, history, logger), tea.WithContext(ctx))
	_, err = p.Run()

	return err
}

func newModel(
	ctx context.Context,
	idx *index.Index,
	scope string,
	history *History,
	logger log.Logger,
) model {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	m := model{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		idx:        idx,
		scope:      index.Join(scope),
		logger:     logger,
		history:    history,
		historyIdx: history.Len(),
		width:      defaultWidth,
		mode:       modeEval,
		suggIdx:    -1,
	}

	m.input.Prompt = m.prompt()

	return m
}

// prompt renders the current scope followed by the mode's prompt.
func (m model) prompt() string {
	if m.mode == modeCtrl {
		return ctrlPromptStyle.Render(ctrlPrompt) + " "
	}

	return scopeStyle.Render(index.Separator+m.scope) + " " + promptStyle.Render(evalPrompt)
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-lipgloss.Width(m.prompt())-2, 1)

		return m, nil

	case editDoneMsg:
		m.idx = msg.idx
		m.logger.TraceContext(m.ctxFunc(), "repl edit complete",
			slog.Int("entries", m.idx.Len()),
		)

		return m, tea.Println(resultStyle.Render("index updated"))

	case editCancelledMsg:
		return m, tea.Println(hintStyle.Render("edit cancelled"))

	case editDeclinedMsg:
		m.quitting = true

		return m, tea.Quit

	case editErrorMsg:
		return m, tea.Println(errorStyle.Render("error: " + msg.err.Error()))
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.hintView())
	b.WriteString("\n")

	return b.String()
}

// hintView renders the line under the input: the history position, a usage
// hint, a function signature, or the completion candidates.
func (m model) hintView() string {
	input := m.input.Value()

	if m.historyIdx < m.history.Len() {
		pos := lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx + 1))

		return hintStyle.Render(fmt.Sprintf("%s/%d", pos, m.history.Len()))
	}

	if strings.TrimSpace(input) == "" {
		if m.mode == modeEval {
			return hintStyle.Render("Type an expression or press Esc for commands")
		}

		return hintStyle.Render("Type a command, e.g. help, ls, cd (press Esc to return)")
	}

	if len(m.matches) == 0 && m.mode == modeEval {
		if call := detectFunctionCall(input, m.input.Position()); call.inCall {
			if params, ok := signatureOf(m.idx.Env(m.scope), call.name); ok {
				return renderSignatureHint(call.name, params, call.argIndex)
			}
		}
	}

	return renderCandidateBar(m.matches, m.suggIdx, m.tabActive, m.width)
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		m.refreshMatches(false)

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if m.tabActive && len(m.matches) > 0 {
			m.tabActive = false
			m.refreshMatches(true)

			return m, nil
		}

		return m.executeInput()

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		return m.historyStep(-1, false), nil

	case tea.KeyDown:
		return m.historyStep(1, false), nil

	case tea.KeyShiftUp:
		return m.historyStep(-1, true), nil

	case tea.KeyShiftDown:
		return m.historyStep(1, true), nil

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			m.refreshMatches(false)

			return m, nil
		}

		return m.switchToMode(1 - m.mode), nil

	case tea.KeyRunes, tea.KeySpace:
		if m.tabActive && msg.String() == " " {
			m.tabActive = false
		}

		var cmd tea.Cmd

		m.historyIdx = m.history.Len()
		m.input, cmd = m.input.Update(msg)
		m.refreshMatches(true)

		return m, cmd
	}

	var cmd tea.Cmd

	m.tabActive = false
	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	m.refreshMatches(false)

	return m, cmd
}

// cycle moves the tab selection by step, completing the word with the
// selected candidate. A sole candidate is accepted immediately.
func (m model) cycle(step int) model {
	n := len(m.matches)
	if n == 0 {
		return m
	}

	if n == 1 {
		m.replaceWord(m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m
	}

	if m.tabActive {
		m.suggIdx = (m.suggIdx + step + n) % n
	} else {
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()

		m.suggIdx = 0
		if step < 0 {
			m.suggIdx = n - 1
		}
	}

	m.replaceWord(m.matches[m.suggIdx].Str)

	return m
}

// replaceWord replaces the current word with s and moves the cursor past
// it.
func (m *model) replaceWord(s string) {
	input := m.input.Value()

	m.input.SetValue(input[:m.wordStart] + s + input[m.wordEnd:])
	m.input.SetCursor(m.wordStart + len(s))

	m.wordEnd = m.wordStart + len(s)
}

// refreshMatches recomputes the candidates for the word at the cursor.
// With accept, a word that already equals its sole candidate is taken as
// completed.
func (m *model) refreshMatches(accept bool) {
	m.matches, m.wordStart, m.wordEnd = m.computeMatches()

	if !m.tabActive {
		m.suggIdx = -1
	}

	if !accept || len(m.matches) != 1 {
		return
	}

	if m.input.Value()[m.wordStart:m.wordEnd] == m.matches[0].Str {
		m.matches = nil
	}
}

// historyStep moves through history by step. With sameMode, entries from
// the other mode are skipped; otherwise the mode follows the entry.
func (m model) historyStep(step int, sameMode bool) model {
	for i := m.historyIdx + step; i >= 0 && i < m.history.Len(); i += step {
		e, err := m.history.At(i)
		if err != nil {
			break
		}

		if sameMode && e.Mode != m.mode {
			continue
		}

		if e.Mode != m.mode {
			m = m.switchToMode(e.Mode)
		}

		m.historyIdx = i
		m.input.SetValue(e.Line)
		m.input.SetCursor(len(e.Line))
		m.refreshMatches(false)

		return m
	}

	if step > 0 {
		m.historyIdx = m.history.Len()
		m.input.SetValue("")
		m.refreshMatches(false)
	}

	return m
}

// switchToMode saves the input of the current mode and restores that of
// mode.
func (m model) switchToMode(mode inputMode) model {
	if m.mode == modeEval {
		m.evalText, m.evalCursor = m.input.Value(), m.input.Position()
	} else {
		m.ctrlText, m.ctrlCursor = m.input.Value(), m.input.Position()
	}

	m.mode = mode
	m.input.Prompt = m.prompt()

	if mode == modeEval {
		m.input.SetValue(m.evalText)
		m.input.SetCursor(m.evalCursor)
	} else {
		m.input.SetValue(m.ctrlText)
		m.input.SetCursor(m.ctrlCursor)
	}

	m.refreshMatches(false)

	return m
}

func (m model) executeInput() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	if err := m.history.Add(input, m.mode); err != nil {
		m.logger.WarnContext(m.ctxFunc(), "could not save history", slog.Any("error", err))
	}

	m.historyIdx = m.history.Len()
	m.evalText, m.evalCursor = "", 0
	m.ctrlText, m.ctrlCursor = "", 0
	m.input.SetValue("")
	m.matches = nil

	if m.mode == modeCtrl {
		return m.executeCommand(input)
	}

	echo := tea.Println(m.prompt() + inputStyle.Render(input))

	out, err := m.evaluate(input)
	if err != nil {
		return m, tea.Sequence(echo, tea.Println(errorStyle.Render("error: "+err.Error())))
	}

	return m, tea.Sequence(echo, tea.Println(resultStyle.Render(out)))
}

// evaluate runs an expression against the current scope.
func (m model) evaluate(input string) (string, error) {
	result, err := m.idx.Eval(m.ctxFunc(), input, m.scope)

	m.logger.TraceContext(m.ctxFunc(), "repl eval",
		slog.String("input", input),
		slog.Bool("ok", err == nil),
	)

	if err != nil {
		return "", err
	}

	return fmt.Sprint(result), nil
}

func (m model) executeCommand(input string) (model, tea.Cmd) {
	echo := tea.Println(ctrlPromptStyle.Render(ctrlPrompt) + " " + inputStyle.Render(input))

	fields := strings.Fields(input)

	cmd, ok := lookupCtrl(fields[0])
	if !ok {
		return m, tea.Sequence(echo,
			tea.Println(errorStyle.Render("unknown command: "+fields[0]+" (try 'help')")))
	}

	m.logger.TraceContext(m.ctxFunc(), "repl command",
		slog.String("command", cmd.name),
		slog.Any("args", fields[1:]),
	)

	switch cmd.name {
	case "quit":
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)

	case "clear":
		return m, tea.ClearScreen

	case "edit":
		return m, tea.Sequence(echo, m.edit())
	}

	next, out, err := m.runCommand(cmd.name, fields[1:])
	if err != nil {
		return next, tea.Sequence(echo, tea.Println(errorStyle.Render("error: "+err.Error())))
	}

	if out == "" {
		return next, echo
	}

	return next, tea.Sequence(echo, tea.Println(out))
}

// runCommand executes a command that only reads the index or changes the
// scope, returning the text to print.
func (m model) runCommand(name string, args []string) (model, string, error) {
	arg := strings.Join(args, " ")

	switch name {
	case "help":
		return m, helpMessage(), nil

	case "pwd":
		return m, index.Separator + m.scope, nil

	case "cd":
		next, err := m.changeScope(arg)

		return next, "", err

	case "ls":
		return m, m.list(arg), nil
	}

	if arg == "" {
		cmd, _ := lookupCtrl(name)

		return m, "", ErrUsage.With(slog.String("usage", cmd.usage))
	}

	switch name {
	case "get":
		v, err := m.idx.Get(arg, m.scope)
		if err != nil {
			return m, "", err
		}

		if c, ok := v.(*value.Container); ok {
			return m, strings.Join(c.Children(), "\n"), nil
		}

		return m, resultStyle.Render(v.Payload()), nil

	case "describe":
		s, err := m.idx.Describe(arg, m.scope)

		return m, s, err

	case "serialize":
		s, err := m.idx.Serialize(arg, m.scope)

		return m, s, err
	}

	return m, "", nil
}

// changeScope makes the container name resolves to the current scope. ".."
// moves to the enclosing scope and "" or "/" to the root.
func (m model) changeScope(name string) (model, error) {
	switch name {
	case "", index.Separator:
		m.scope = ""

	case "..":
		if i := strings.LastIndex(m.scope, index.Separator); i >= 0 {
			m.scope = m.scope[:i]
		} else {
			m.scope = ""
		}

	default:
		fqn, ok := m.idx.Resolve(name, m.scope)
		if !ok {
			return m, index.ErrNotFound.With(
				slog.String("name", name),
				slog.String("scope", m.scope),
			)
		}

		v, err := m.idx.Lookup(fqn)
		if err != nil {
			return m, err
		}

		if v.Kind() != value.KindContainer {
			return m, ErrNotContainer.With(
				slog.String("name", name),
				slog.String("type", v.Kind().String()),
			)
		}

		m.scope = strings.TrimPrefix(index.Canonical(fqn), index.Separator)
	}

	m.input.Prompt = m.prompt()

	return m, nil
}

// list renders the names visible from the current scope, optionally only
// those starting with prefix, each with its type.
func (m model) list(prefix string) string {
	var b strings.Builder

	for _, name := range m.idx.Visible(m.scope) {
		if !strings.HasPrefix(name, prefix) {
			continue
		}

		v, err := m.idx.Get(name, m.scope)
		if err != nil {
			continue
		}

		fmt.Fprintf(&b, "  %s %s\n", name, hintStyle.Render(v.Kind().String()))
	}

	return strings.TrimRight(b.String(), "\n")
}

// edit opens the index in $EDITOR and replaces it with the result.
func (m model) edit() tea.Cmd {
	cmd := &editCommand{
		idx:     m.idx,
		ctxFunc: m.ctxFunc,
		logger:  m.logger,
	}

	return tea.Exec(cmd, func(err error) tea.Msg {
		switch {
		case errors.Is(err, ErrEditDeclined):
			return editDeclinedMsg{}
		case err != nil:
			return editErrorMsg{err: err}
		case cmd.result == nil:
			return editCancelledMsg{}
		}

		return editDoneMsg{idx: cmd.result}
	})
}
