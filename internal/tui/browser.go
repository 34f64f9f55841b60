// Package tui is an interactive terminal browser for the archive. It hosts
// the list and detail controllers on in-memory page regions and redraws
// from those regions after every load.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/user/archiveview/internal/controller"
	"github.com/user/archiveview/internal/page"
	"github.com/user/archiveview/internal/view"
	"github.com/user/archiveview/pkg/archive"
)

type mode int

const (
	modeList mode = iota
	modeSearch
	modeDetail
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// loadedMsg is sent when a controller run finishes.
type loadedMsg struct{}

// Browser is the bubbletea model.
type Browser struct {
	ctx context.Context

	list   *controller.List
	detail *controller.Detail

	entries    *page.NodeMount
	listStatus *page.TextBox
	query      *page.TextInput
	submit     *page.Button
	clear      *page.Button

	transcript *page.NodeMount
	meta       *page.TextBox
	address    *page.Address

	search   textinput.Model
	viewport viewport.Model
	cursor   int
	offset   int
	width    int
	height   int
	mode     mode
}

// New creates a Browser over source. The initial location is the archive
// root; the list loads when the program starts.
func New(ctx context.Context, source archive.Source, opts ...controller.Option) *Browser {
	si := textinput.New()
	si.Placeholder = "search..."
	si.CharLimit = 200

	b := &Browser{
		ctx:        ctx,
		entries:    page.NewNodeMount(),
		listStatus: page.NewTextBox(),
		query:      page.NewTextInput(""),
		submit:     page.NewButton(),
		clear:      page.NewButton(),
		transcript: page.NewNodeMount(),
		meta:       page.NewTextBox(),
		address:    page.NewAddress("/archive/"),
		search:     si,
		viewport:   viewport.New(80, 20),
		width:      80,
		height:     24,
	}

	listPage := &page.Page{
		List:         b.entries,
		Status:       b.listStatus,
		Search:       b.query,
		SearchSubmit: b.submit,
		SearchClear:  b.clear,
	}
	b.list = controller.NewList(source, listPage, page.StatusFor(listPage), opts...)
	b.list.Attach(ctx)

	detailPage := &page.Page{
		Transcript: b.transcript,
		Meta:       b.meta,
		Location:   b.address,
	}
	b.detail = controller.NewDetail(source, detailPage, page.StatusFor(detailPage), opts...)

	return b
}

func (b *Browser) Init() tea.Cmd {
	return b.run(b.submit.Press)
}

// run executes fn off the update loop and reports completion.
func (b *Browser) run(fn func()) tea.Cmd {
	return func() tea.Msg {
		fn()
		return loadedMsg{}
	}
}

func (b *Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		b.viewport.Width = msg.Width
		b.viewport.Height = b.detailRows()
		b.refreshTranscript()
		b.clampOffset()
		return b, nil

	case loadedMsg:
		if b.mode != modeSearch {
			b.search.SetValue(b.query.Value())
		}
		entries := b.entries.Nodes()
		if b.cursor >= len(entries) {
			b.cursor = max(0, len(entries)-1)
		}
		b.clampOffset()
		b.refreshTranscript()
		return b, nil

	case tea.KeyMsg:
		switch b.mode {
		case modeList:
			return b.updateList(msg)
		case modeSearch:
			return b.updateSearch(msg)
		case modeDetail:
			return b.updateDetail(msg)
		}
	}
	return b, nil
}

func (b *Browser) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(b.entries.Nodes())
	switch msg.String() {
	case "q", "ctrl+c":
		return b, tea.Quit

	case "up", "k":
		if b.cursor > 0 {
			b.cursor--
			b.clampOffset()
		}

	case "down", "j":
		if b.cursor < count-1 {
			b.cursor++
			b.clampOffset()
		}

	case "home", "g":
		b.cursor = 0
		b.clampOffset()

	case "end", "G":
		b.cursor = max(0, count-1)
		b.clampOffset()

	case "/":
		b.search.Focus()
		b.mode = modeSearch
		return b, textinput.Blink

	case "r":
		return b, b.run(b.submit.Press)

	case "x":
		b.cursor = 0
		b.offset = 0
		return b, b.run(b.clear.Press)

	case "enter":
		return b, b.open()
	}
	return b, nil
}

func (b *Browser) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return b, tea.Quit
	case "esc":
		b.search.Blur()
		b.mode = modeList
		return b, nil
	case "enter":
		b.search.Blur()
		b.mode = modeList
		b.cursor = 0
		b.offset = 0
		b.query.SetValue(b.search.Value())
		return b, b.run(func() { b.query.Press(controller.KeyEnter) })
	}

	var cmd tea.Cmd
	b.search, cmd = b.search.Update(msg)
	b.query.SetValue(b.search.Value())
	return b, cmd
}

func (b *Browser) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return b, tea.Quit
	case "q", "esc", "backspace":
		b.mode = modeList
		return b, nil
	case "r":
		return b, b.run(func() { b.detail.Load(b.ctx) })
	}

	var cmd tea.Cmd
	b.viewport, cmd = b.viewport.Update(msg)
	return b, cmd
}

// open navigates to the selected entry and loads its transcript. Placeholder
// rows carry no link and are ignored.
func (b *Browser) open() tea.Cmd {
	entries := b.entries.Nodes()
	if b.cursor >= len(entries) {
		return nil
	}
	href, ok := entries[b.cursor].Attr("href")
	if !ok {
		return nil
	}
	b.address.Go(href)
	b.mode = modeDetail
	b.transcript.Replace(nil)
	b.meta.SetText("")
	b.viewport.GotoTop()
	b.refreshTranscript()
	return b.run(func() { b.detail.Load(b.ctx) })
}

func (b *Browser) refreshTranscript() {
	b.viewport.SetContent(view.Terminal{Width: b.width}.Render(b.transcript.Nodes()))
}

func (b *Browser) View() string {
	if b.mode == modeDetail {
		return b.viewDetail()
	}
	return b.viewList()
}

func (b *Browser) viewList() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Archive"))
	sb.WriteString("\n")
	if b.mode == modeSearch || b.search.Value() != "" {
		sb.WriteString(b.search.View())
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	entries := b.entries.Nodes()
	end := min(b.offset+b.visibleRows(), len(entries))
	for i := b.offset; i < end; i++ {
		sb.WriteString(b.renderRow(entries[i], i == b.cursor))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(statusStyle.Render(b.listStatus.Text()))
	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("↑/↓ move • enter open • / search • x clear • r reload • q quit"))
	return sb.String()
}

// renderRow draws one entry on a single line: its logged label and preview,
// or the placeholder text.
func (b *Browser) renderRow(n view.Node, selected bool) string {
	line := n.TextContent()
	if meta, ok := n.Find(view.ClassMeta); ok {
		preview, _ := n.Find(view.ClassPreview)
		line = fmt.Sprintf("%-32s %s", meta.TextContent(), preview.TextContent())
	}
	line = strings.ReplaceAll(line, "\n", " ")
	if b.width > 4 {
		line = truncate(line, b.width-4)
	}
	if selected {
		return selectedStyle.Render("> " + line)
	}
	return "  " + line
}

func (b *Browser) viewDetail() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(b.address.Path()))
	sb.WriteString("\n")
	sb.WriteString(statusStyle.Render(b.meta.Text()))
	sb.WriteString("\n\n")
	sb.WriteString(b.viewport.View())
	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("↑/↓ scroll • r reload • esc back • ctrl+c quit"))
	return sb.String()
}

func (b *Browser) visibleRows() int {
	// title, search, blank, blank, status, help
	return max(1, b.height-6)
}

func (b *Browser) detailRows() int {
	// title, meta, blank, help
	return max(1, b.height-4)
}

func (b *Browser) clampOffset() {
	visible := b.visibleRows()
	if b.cursor < b.offset {
		b.offset = b.cursor
	}
	if b.cursor >= b.offset+visible {
		b.offset = b.cursor - visible + 1
	}
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
