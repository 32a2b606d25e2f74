// ABOUTME: Interactive bubbletea application: article list, reading pane, search
// ABOUTME: Consumes only the Store, Syncer, and search public operations

package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/quillfeed/quill/internal/content"
	"github.com/quillfeed/quill/internal/models"
	"github.com/quillfeed/quill/internal/search"
	"github.com/quillfeed/quill/internal/storage"
	feedsync "github.com/quillfeed/quill/internal/sync"
)

// listFilter selects which articles the list shows.
type listFilter int

const (
	filterUnread listFilter = iota
	filterAll
	filterStarred
)

func (f listFilter) String() string {
	switch f {
	case filterAll:
		return "all"
	case filterStarred:
		return "starred"
	default:
		return "unread"
	}
}

// mode is the active screen.
type mode int

const (
	modeList mode = iota
	modeReading
	modeSearching
)

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
)

// Messages

type articlesLoadedMsg struct {
	items []list.Item
	err   error
}

type searchDoneMsg struct {
	items []list.Item
	err   error
}

type refreshDoneMsg struct {
	results []feedsync.Result
	err     error
}

type articleOpenedMsg struct {
	article  *models.Article
	rendered string
	err      error
}

// Model is the bubbletea model for the reader.
type Model struct {
	store  storage.Store
	syncer *feedsync.Syncer

	mode        mode
	filter      listFilter
	list        list.Model
	viewport    viewport.Model
	searchInput textinput.Model

	glamourStyle string
	searchLimit  int

	current    *models.Article
	status     string
	refreshing bool
	width      int
	height     int
	ready      bool
}

// New creates the TUI model.
func New(store storage.Store, syncer *feedsync.Syncer, glamourStyle string, searchLimit int) Model {
	delegate := list.NewDefaultDelegate()
	l := list.New(nil, delegate, 0, 0)
	l.Title = "quill · unread"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)

	input := textinput.New()
	input.Placeholder = "search articles"
	input.Prompt = "/ "

	return Model{
		store:        store,
		syncer:       syncer,
		list:         l,
		searchInput:  input,
		glamourStyle: glamourStyle,
		searchLimit:  searchLimit,
	}
}

// Run starts the interactive reader and blocks until it exits.
func Run(store storage.Store, syncer *feedsync.Syncer, glamourStyle string, searchLimit int) error {
	p := tea.NewProgram(New(store, syncer, glamourStyle, searchLimit), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.loadArticles()
}

// Commands

func (m Model) loadArticles() tea.Cmd {
	filter := m.filter
	return func() tea.Msg {
		f := &storage.ArticleFilter{
			UnreadOnly:  filter == filterUnread,
			StarredOnly: filter == filterStarred,
		}
		articles, err := m.store.ListArticles(f)
		if err != nil {
			return articlesLoadedMsg{err: err}
		}

		titles, err := feedTitles(m.store)
		if err != nil {
			return articlesLoadedMsg{err: err}
		}

		items := make([]list.Item, 0, len(articles))
		for _, a := range articles {
			items = append(items, itemFromArticle(a, titles))
		}
		return articlesLoadedMsg{items: items}
	}
}

func (m Model) runSearch(query string) tea.Cmd {
	return func() tea.Msg {
		results, err := search.Articles(m.store, query, m.searchLimit)
		if err != nil {
			return searchDoneMsg{err: err}
		}
		items := make([]list.Item, 0, len(results))
		for _, r := range results {
			items = append(items, itemFromSearchResult(r))
		}
		return searchDoneMsg{items: items}
	}
}

func (m Model) refreshAll() tea.Cmd {
	return func() tea.Msg {
		results, err := m.syncer.RefreshAll(context.Background())
		return refreshDoneMsg{results: results, err: err}
	}
}

func (m Model) openArticle(id string) tea.Cmd {
	width := m.width
	style := m.glamourStyle
	return func() tea.Msg {
		article, err := m.store.GetArticle(id)
		if err != nil {
			return articleOpenedMsg{err: err}
		}
		// Opening implies reading
		if !article.IsRead {
			if err := m.store.MarkArticleRead(article.ID, true); err != nil {
				return articleOpenedMsg{err: err}
			}
			article.IsRead = true
		}

		rendered, err := renderArticle(article, style, width)
		if err != nil {
			return articleOpenedMsg{err: err}
		}
		return articleOpenedMsg{article: article, rendered: rendered}
	}
}

func renderArticle(a *models.Article, style string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	body := a.Content
	if body == "" {
		body = a.Summary
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", a.Title)
	if a.Author != "" {
		fmt.Fprintf(&b, "*%s*", a.Author)
	}
	if a.PublishedAt != nil {
		if a.Author != "" {
			b.WriteString(" · ")
		}
		b.WriteString(a.PublishedAt.Format("02 Jan 2006 15:04"))
	}
	b.WriteString("\n\n")
	b.WriteString(content.ToMarkdown(body))
	if a.Link != "" {
		fmt.Fprintf(&b, "\n\n---\n%s\n", a.Link)
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width-2),
	)
	if err != nil {
		return "", fmt.Errorf("create renderer: %w", err)
	}
	return renderer.Render(b.String())
}

func feedTitles(store storage.Store) (map[string]string, error) {
	feeds, err := store.ListFeeds()
	if err != nil {
		return nil, err
	}
	titles := make(map[string]string, len(feeds))
	for _, f := range feeds {
		titles[f.ID] = f.DisplayName()
	}
	return titles, nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-2)
		m.viewport = viewport.New(msg.Width, msg.Height-2)
		m.ready = true
		return m, nil

	case articlesLoadedMsg:
		if msg.err != nil {
			m.status = errorStyle.Render(msg.err.Error())
			return m, nil
		}
		cmd := m.list.SetItems(msg.items)
		m.list.Title = "quill · " + m.filter.String()
		return m, cmd

	case searchDoneMsg:
		if msg.err != nil {
			m.status = errorStyle.Render(msg.err.Error())
			return m, nil
		}
		cmd := m.list.SetItems(msg.items)
		m.list.Title = fmt.Sprintf("quill · search %q", m.searchInput.Value())
		m.status = fmt.Sprintf("%d result(s) · esc to clear", len(msg.items))
		return m, cmd

	case refreshDoneMsg:
		m.refreshing = false
		if msg.err != nil {
			m.status = errorStyle.Render(msg.err.Error())
			return m, nil
		}
		var added, failed int
		for _, r := range msg.results {
			added += r.Added
			if len(r.Errors) > 0 {
				failed++
			}
		}
		m.status = fmt.Sprintf("refreshed %d feed(s): %d new, %d failed", len(msg.results), added, failed)
		return m, m.loadArticles()

	case articleOpenedMsg:
		if msg.err != nil {
			m.status = errorStyle.Render(msg.err.Error())
			return m, nil
		}
		m.current = msg.article
		m.mode = modeReading
		m.viewport.SetContent(msg.rendered)
		m.viewport.GotoTop()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateChildren(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the list's own fuzzy filter is active, let it have the keys
	if m.mode == modeList && m.list.FilterState() == list.Filtering {
		return m.updateChildren(msg)
	}

	switch m.mode {
	case modeSearching:
		switch msg.Type {
		case tea.KeyEscape:
			m.mode = modeList
			m.searchInput.Blur()
			return m, m.loadArticles()
		case tea.KeyEnter:
			m.mode = modeList
			m.searchInput.Blur()
			return m, m.runSearch(m.searchInput.Value())
		}
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd

	case modeReading:
		switch msg.String() {
		case "q", "esc":
			m.mode = modeList
			return m, m.loadArticles()
		case "s":
			return m.toggleStar()
		case "m":
			return m.toggleRead()
		}

	case modeList:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "enter":
			if item, ok := m.list.SelectedItem().(articleItem); ok {
				return m, m.openArticle(item.id)
			}
		case "/":
			m.mode = modeSearching
			m.searchInput.SetValue("")
			m.searchInput.Focus()
			return m, textinput.Blink
		case "r":
			if !m.refreshing {
				m.refreshing = true
				m.status = "refreshing feeds..."
				return m, m.refreshAll()
			}
		case "f":
			m.filter = (m.filter + 1) % 3
			return m, m.loadArticles()
		case "s":
			return m.toggleStar()
		case "m":
			return m.toggleRead()
		}
	}

	return m.updateChildren(msg)
}

// selectedID returns the id of the article the UI is acting on.
func (m Model) selectedID() (string, bool) {
	if m.mode == modeReading && m.current != nil {
		return m.current.ID, true
	}
	if item, ok := m.list.SelectedItem().(articleItem); ok {
		return item.id, true
	}
	return "", false
}

func (m Model) toggleStar() (tea.Model, tea.Cmd) {
	id, ok := m.selectedID()
	if !ok {
		return m, nil
	}
	starred, err := m.store.ToggleArticleStarred(id)
	if err != nil {
		m.status = errorStyle.Render(err.Error())
		return m, nil
	}
	if m.current != nil && m.current.ID == id {
		m.current.IsStarred = starred
	}
	if starred {
		m.status = "starred"
	} else {
		m.status = "unstarred"
	}
	if m.mode == modeList {
		return m, m.loadArticles()
	}
	return m, nil
}

func (m Model) toggleRead() (tea.Model, tea.Cmd) {
	id, ok := m.selectedID()
	if !ok {
		return m, nil
	}
	article, err := m.store.GetArticle(id)
	if err != nil {
		m.status = errorStyle.Render(err.Error())
		return m, nil
	}
	if err := m.store.MarkArticleRead(id, !article.IsRead); err != nil {
		m.status = errorStyle.Render(err.Error())
		return m, nil
	}
	if m.current != nil && m.current.ID == id {
		m.current.IsRead = !article.IsRead
	}
	if m.mode == modeList {
		return m, m.loadArticles()
	}
	return m, nil
}

func (m Model) updateChildren(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch m.mode {
	case modeList:
		m.list, cmd = m.list.Update(msg)
		cmds = append(cmds, cmd)
	case modeReading:
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	case modeSearching:
		m.searchInput, cmd = m.searchInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	switch m.mode {
	case modeReading:
		header := ""
		if m.current != nil {
			header = headerStyle.Render(m.current.Title)
		}
		return header + "\n" + m.viewport.View() + "\n" + m.statusLine("q back · s star · m read/unread · ↑/↓ scroll")

	case modeSearching:
		return m.list.View() + "\n" + m.searchInput.View()

	default:
		return m.list.View() + "\n" + m.statusLine("enter open · r refresh · / search · f filter · s star · m read · q quit")
	}
}

func (m Model) statusLine(help string) string {
	if m.status != "" {
		return statusStyle.Render(m.status)
	}
	return statusStyle.Render(help)
}
