package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"EnvFlip/internal/commands"
	"EnvFlip/internal/config"
	"EnvFlip/internal/console"
	"EnvFlip/internal/logger"
	"EnvFlip/internal/strutil"
	"EnvFlip/internal/tree"
	"EnvFlip/internal/version"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/atotto/clipboard"
	zone "github.com/lrstanley/bubblezone/v2"
)

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// headerHeight is the title line plus the filter message line.
const headerHeight = 2

// variableIndent is the number of columns variable rows are indented by.
const variableIndent = 4

// Model is the root Bubble Tea model of the tree view.
type Model struct {
	ctx      context.Context
	config   config.AppConfig
	provider *tree.Provider
	cmds     *commands.Commands

	styles Styles
	glyphs Glyphs
	help   help.Model
	filter textinput.Model

	// Terminal dimensions
	width  int
	height int

	rows      []row
	cursor    int
	offset    int
	collapsed map[string]bool
	filtering bool

	status    string
	statusErr bool
	statusSeq int
}

// NewModel creates the model. cmds must report through a notifier that
// delivers its messages to the same program.
func NewModel(ctx context.Context, cfg config.AppConfig, p *tree.Provider, cmds *commands.Commands) Model {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "filter by key or value"

	return Model{
		ctx:       ctx,
		config:    cfg,
		provider:  p,
		cmds:      cmds,
		styles:    DefaultStyles(),
		glyphs:    GlyphSet(cfg.UI.ASCII),
		help:      help.New(),
		filter:    ti,
		collapsed: make(map[string]bool),
	}
}

// Init loads the files.
func (m Model) Init() tea.Cmd {
	ctx, p := m.ctx, m.provider
	return logger.RecoverTUI(m.ctx, func() tea.Msg {
		if err := p.Refresh(ctx); err != nil {
			return statusMsg{text: fmt.Sprintf("Failed to load environment files: %v", err), isErr: true}
		}
		return treeChangedMsg{}
	})
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			// Suppress further panics during recovery
			defer func() { _ = recover() }()

			if console.TUIShutdown != nil {
				console.TUIShutdown()
			}
			console.SetTUIEnabled(false)

			if _, ok := r.(logger.FatalError); ok {
				return
			}
			logger.FatalWithStackSkip(m.ctx, 2, "TUI Update Panic: %v", r)
		}
	}()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.SetWidth(msg.Width)
		m.filter.SetWidth(msg.Width - 4)
		m.scrollToCursor()
		return m, nil

	case treeChangedMsg:
		m.reload()
		return m, nil

	case statusMsg:
		m.status = msg.text
		m.statusErr = msg.isErr
		m.statusSeq++
		if msg.ttl <= 0 {
			return m, nil
		}
		seq := m.statusSeq
		return m, tea.Tick(msg.ttl, func(time.Time) tea.Msg { return clearStatusMsg{seq: seq} })

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusErr = false
		}
		return m, nil

	case tea.MouseClickMsg:
		if msg.Button != tea.MouseLeft {
			return m, nil
		}
		start, end := m.visibleRange()
		for i := start; i < end; i++ {
			if zi := zone.Get(rowZoneID(i)); zi != nil && zi.InBounds(msg) {
				m.cursor = i
				cmd := m.activate()
				return m, logger.RecoverTUI(m.ctx, cmd)
			}
		}
		return m, nil

	case tea.MouseWheelMsg:
		switch msg.Button {
		case tea.MouseWheelUp:
			m.move(-1)
		case tea.MouseWheelDown:
			m.move(1)
		}
		return m, nil

	case tea.KeyPressMsg:
		if m.filtering {
			return m.updateFilter(msg)
		}
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m Model) updateFilter(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, FilterKeys.Apply):
		m.filtering = false
		m.filter.Blur()
		m.cmds.SetSearchFilter(m.filter.Value())
		m.reload()
		return m, nil
	case key.Matches(msg, FilterKeys.Cancel):
		m.filtering = false
		m.filter.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	return m, cmd
}

func (m Model) updateKeys(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, Keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.scrollToCursor()
	case key.Matches(msg, Keys.Up):
		m.move(-1)
	case key.Matches(msg, Keys.Down):
		m.move(1)
	case key.Matches(msg, Keys.PageUp):
		m.move(-m.viewHeight())
	case key.Matches(msg, Keys.PageDown):
		m.move(m.viewHeight())
	case key.Matches(msg, Keys.Home):
		m.move(-len(m.rows))
	case key.Matches(msg, Keys.End):
		m.move(len(m.rows))
	case key.Matches(msg, Keys.Toggle):
		cmd := m.activate()
		return m, logger.RecoverTUI(m.ctx, cmd)
	case key.Matches(msg, Keys.Refresh):
		ctx, cmds := m.ctx, m.cmds
		return m, logger.RecoverTUI(m.ctx, func() tea.Msg {
			_ = cmds.RefreshAll(ctx)
			return nil
		})
	case key.Matches(msg, Keys.Filter):
		m.filtering = true
		m.filter.SetValue(m.provider.Filter())
		m.filter.CursorEnd()
		cmd := m.filter.Focus()
		return m, cmd
	case key.Matches(msg, Keys.ClearFilter):
		if m.provider.Filter() != "" {
			m.cmds.ClearFilter()
			m.reload()
		}
	case key.Matches(msg, Keys.Copy):
		return m, logger.RecoverTUI(m.ctx, m.copySelected())
	}
	return m, nil
}

// activate toggles the selected variable, or collapses or expands the
// selected file.
func (m *Model) activate() tea.Cmd {
	sel, ok := m.selected()
	if !ok {
		return nil
	}
	if sel.node.Kind == tree.FileKind {
		path := sel.node.File.Path
		m.collapsed[path] = !m.collapsed[path]
		m.reload()
		return nil
	}

	ctx, cmds := m.ctx, m.cmds
	ref := commands.Ref{File: sel.node.File, Variable: sel.node.Variable}
	return func() tea.Msg {
		_ = cmds.ToggleVariable(ctx, ref)
		return nil
	}
}

func (m Model) copySelected() tea.Cmd {
	sel, ok := m.selected()
	if !ok || sel.node.Kind != tree.VariableKind {
		return nil
	}
	text := sel.node.Tooltip
	ttl := m.config.StatusTTL()
	return func() tea.Msg {
		if err := writeClipboard(text); err != nil {
			return statusMsg{text: fmt.Sprintf("Failed to copy to clipboard: %v", err), isErr: true}
		}
		return statusMsg{text: fmt.Sprintf("Copied %s", sel.node.Label), ttl: ttl}
	}
}

// reload rebuilds the rows and keeps the cursor on the same node when it is
// still visible.
func (m *Model) reload() {
	prev, hadPrev := m.selected()
	m.rows = buildRows(m.provider, m.collapsed)
	if hadPrev {
		if i := rowIndex(m.rows, prev.node); i >= 0 {
			m.cursor = i
		}
	}
	m.clampCursor()
	m.scrollToCursor()
}

func (m Model) selected() (row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return row{}, false
	}
	return m.rows[m.cursor], true
}

func (m *Model) move(delta int) {
	m.cursor += delta
	m.clampCursor()
	m.scrollToCursor()
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) scrollToCursor() {
	h := m.viewHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
	if last := len(m.rows) - h; m.offset > last {
		m.offset = last
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// viewHeight is the number of tree rows that fit between header and footer.
func (m Model) viewHeight() int {
	if m.height == 0 {
		return len(m.rows)
	}
	h := m.height - headerHeight - 1 - lipgloss.Height(m.helpView())
	if h < 1 {
		return 1
	}
	return h
}

func (m Model) visibleRange() (int, int) {
	end := m.offset + m.viewHeight()
	if end > len(m.rows) {
		end = len(m.rows)
	}
	return m.offset, end
}

func rowZoneID(i int) string {
	return fmt.Sprintf("row-%d", i)
}

func (m Model) helpView() string {
	if m.filtering {
		return m.help.View(FilterKeys)
	}
	return m.help.View(Keys)
}

// View implements tea.Model
func (m Model) View() tea.View {
	v := tea.NewView(zone.Scan(m.ViewString()))
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}

// ViewString renders the screen without zone scanning.
func (m Model) ViewString() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render(version.ApplicationName))
	b.WriteString(" ")
	b.WriteString(m.styles.Root.Render(m.config.Root))
	b.WriteString("\n")
	b.WriteString(m.styles.Message.Render(m.provider.Message()))
	b.WriteString("\n")

	start, end := m.visibleRange()
	lines := 0
	if len(m.rows) == 0 {
		b.WriteString(m.styles.Empty.Render("No .env files found"))
		b.WriteString("\n")
		lines++
	}
	for i := start; i < end; i++ {
		b.WriteString(zone.Mark(rowZoneID(i), m.renderRow(i)))
		b.WriteString("\n")
		lines++
	}
	if m.height > 0 {
		for ; lines < m.viewHeight(); lines++ {
			b.WriteString("\n")
		}
	}

	switch {
	case m.filtering:
		b.WriteString(m.filter.View())
	case m.statusErr:
		b.WriteString(m.styles.StatusError.Render(m.status))
	default:
		b.WriteString(m.styles.Status.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.HelpLine.Render(m.helpView()))

	return b.String()
}

func (m Model) renderRow(i int) string {
	r := m.rows[i]
	s := m.styles

	label := func(st lipgloss.Style, text string) string {
		if i == m.cursor {
			st = s.Selected.Inherit(st)
		}
		return st.Render(text)
	}

	var line string
	if r.node.Kind == tree.FileKind {
		glyph := m.glyphs.Expanded
		if r.collapsed {
			glyph = m.glyphs.Collapsed
		}
		line = glyph + " " + label(s.File, r.node.Label) + "  " + s.FilePath.Render(m.relPath(r.node.Tooltip))
		if r.empty && !r.collapsed {
			hint := "no variables"
			if m.provider.Filter() != "" {
				hint = "no matches"
			}
			line += "  " + s.Empty.Render("("+hint+")")
		}
	} else {
		glyph := s.Active.Render(m.glyphs.Active)
		keyStyle := s.Key
		valueStyle := s.Value
		if !r.node.Active {
			glyph = s.Inactive.Render(m.glyphs.Inactive)
			keyStyle = s.Inactive
			valueStyle = s.Inactive
		}
		line = strutil.Repeat(" ", variableIndent) + glyph + " " + label(keyStyle, r.node.Label)
		if m.config.UI.ShowValues {
			line += valueStyle.Render(" = " + r.node.Description)
		}
	}

	return strutil.Limit(line, m.width)
}

func (m Model) relPath(path string) string {
	if m.config.Root == "" {
		return path
	}
	rel, err := filepath.Rel(m.config.Root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
