package tui

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/beatlib/internal/catalog"
	"github.com/mmcdole/beatlib/internal/config"
	"github.com/mmcdole/beatlib/internal/domain"
	"github.com/mmcdole/beatlib/internal/search"
	"github.com/mmcdole/beatlib/internal/service"
	"github.com/mmcdole/beatlib/internal/tui/styles"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateFiltering
	StateImporting
	StateConfirmDelete
	StateHelp
)

// ChromeHeight is the number of lines taken by header, detail and footer
const ChromeHeight = 6

// Model is the main Bubble Tea model for the application
type Model struct {
	State ApplicationState

	Catalog *service.CatalogService
	Sort    config.SortOrder

	// Browser
	Cursor  int
	Offset  int
	Input   textinput.Model
	Query   string
	Matches []search.SongMatch

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg   string
	StatusIsErr bool

	pendingDelete string
	logger        *slog.Logger
}

// NewModel creates the catalog browser. A nil logger uses slog.Default.
func NewModel(svc *service.CatalogService, sortOrder config.SortOrder, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}

	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 40
	ti.Prompt = ""
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return Model{
		State:   StateBrowsing,
		Catalog: svc,
		Sort:    sortOrder,
		Input:   ti,
		logger:  logger,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case CatalogUpdatedMsg:
		m.setStatus(msg.Status, false)
		m.refreshMatches()
		m.clampCursor()
		return m, nil

	case SongOpenedMsg:
		// Opening stamps the song, which can move it under the recent sort
		m.setStatus("Opened "+msg.Song.Title(), false)
		m.refreshMatches()
		m.selectSong(msg.Song.ID)
		m.clampCursor()
		return m, nil

	case SongImportedMsg:
		m.setStatus("Imported "+msg.Song.Title(), false)
		m.refreshMatches()
		m.selectSong(msg.Song.ID)
		m.clampCursor()
		return m, nil

	case ErrMsg:
		m.logger.Error("catalog operation failed", "context", msg.Context, "error", msg.Err)
		m.setStatus(msg.Error(), true)
		return m, nil
	}

	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.State {
	case StateFiltering:
		return m.handleFilterKey(msg)
	case StateImporting:
		return m.handleImportKey(msg)
	case StateConfirmDelete:
		return m.handleConfirmKey(msg)
	case StateHelp:
		m.State = StateBrowsing
		return m, nil
	}

	songs := m.VisibleSongs()

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Up):
		if m.Cursor > 0 {
			m.Cursor--
		}
	case key.Matches(msg, Keys.Down):
		if m.Cursor < len(songs)-1 {
			m.Cursor++
		}
	case key.Matches(msg, Keys.Home):
		m.Cursor = 0
	case key.Matches(msg, Keys.End):
		m.Cursor = max(len(songs)-1, 0)

	case key.Matches(msg, Keys.Open):
		if song := m.CursorSong(); song != nil {
			return m, OpenSongCmd(m.Catalog, song.ID)
		}

	case key.Matches(msg, Keys.Leave):
		if m.Query != "" {
			m.clearFilter()
			return m, nil
		}
		if catalog.SelectedSongID(m.Catalog) != "" {
			return m, DispatchCmd(m.Catalog, catalog.LeaveEditor{}, "Closed song")
		}

	case key.Matches(msg, Keys.NextDifficulty):
		return m, m.nextDifficultyCmd()

	case key.Matches(msg, Keys.ToggleColors):
		return m, m.toggleModCmd(domain.ModCustomColors, "custom colors")
	case key.Matches(msg, Keys.ToggleExtensions):
		return m, m.toggleModCmd(domain.ModMappingExtensions, "mapping extensions")

	case key.Matches(msg, Keys.Delete):
		if song := m.CursorSong(); song != nil {
			m.pendingDelete = song.ID
			m.State = StateConfirmDelete
		}

	case key.Matches(msg, Keys.Import):
		m.Input.Placeholder = "path to song folder or info.dat"
		m.Input.SetValue("")
		m.State = StateImporting
		return m, m.Input.Focus()

	case key.Matches(msg, Keys.Filter):
		m.Input.Placeholder = "title, artist or mapper"
		m.Input.SetValue(m.Query)
		m.State = StateFiltering
		return m, m.Input.Focus()

	case key.Matches(msg, Keys.Sort):
		if m.Sort == config.SortName {
			m.Sort = config.SortRecent
		} else {
			m.Sort = config.SortName
		}
		m.Cursor = 0
		m.setStatus("Sorted by "+string(m.Sort), false)

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
	}

	m.clampCursor()
	return m, nil
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.State = StateBrowsing
		m.Input.Blur()
		return m, nil
	case "esc":
		m.State = StateBrowsing
		m.Input.Blur()
		m.clearFilter()
		return m, nil
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	m.Query = m.Input.Value()
	m.refreshMatches()
	m.Cursor = 0
	return m, cmd
}

func (m Model) handleImportKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		path := strings.TrimSpace(m.Input.Value())
		m.State = StateBrowsing
		m.Input.Blur()
		if path == "" {
			return m, nil
		}
		m.setStatus("Importing "+path+"...", false)
		return m, ImportPackageCmd(m.Catalog, path)
	case "esc":
		m.State = StateBrowsing
		m.Input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id := m.pendingDelete
	switch {
	case key.Matches(msg, Keys.Confirm):
		m.State = StateBrowsing
		m.pendingDelete = ""
		return m, DispatchCmd(m.Catalog, catalog.DeleteSong{SongID: id}, "Deleted "+id)
	case key.Matches(msg, Keys.Deny):
		m.State = StateBrowsing
		m.pendingDelete = ""
	}
	return m, nil
}

// nextDifficultyCmd cycles the open song to its next beatmap
func (m Model) nextDifficultyCmd() tea.Cmd {
	song := catalog.SelectedSong(m.Catalog)
	if song == nil {
		return func() tea.Msg {
			return ErrMsg{Err: domain.ErrSongNotFound, Context: "changing difficulty"}
		}
	}
	ids := catalog.SelectedSongDifficultyIDs(m.Catalog)
	if len(ids) < 2 {
		return nil
	}

	next := ids[0]
	for i, id := range ids {
		if id == song.SelectedDifficulty {
			next = ids[(i+1)%len(ids)]
			break
		}
	}
	return DispatchCmd(m.Catalog, catalog.ChangeSelectedDifficulty{SongID: song.ID, Difficulty: next},
		"Editing "+next.DisplayName())
}

func (m Model) toggleModCmd(mod domain.ModName, label string) tea.Cmd {
	song := catalog.SelectedSong(m.Catalog)
	if song == nil {
		return func() tea.Msg {
			return ErrMsg{Err: domain.ErrSongNotFound, Context: "toggling " + label}
		}
	}
	state := "on"
	if song.IsModEnabled(mod) {
		state = "off"
	}
	return DispatchCmd(m.Catalog, catalog.ToggleModForSong{Mod: mod}, fmt.Sprintf("Turned %s %s", label, state))
}

// VisibleSongs returns the songs listed in the browser: the filter matches
// when a query is active, otherwise every song in the configured order.
func (m Model) VisibleSongs() []*domain.Song {
	if m.Query != "" {
		songs := make([]*domain.Song, len(m.Matches))
		for i, match := range m.Matches {
			songs[i] = match.Song
		}
		return songs
	}

	if m.Sort == config.SortName {
		songs := catalog.AllSongs(m.Catalog)
		sort.SliceStable(songs, func(i, j int) bool {
			return strings.ToLower(songs[i].Title()) < strings.ToLower(songs[j].Title())
		})
		return songs
	}
	return catalog.AllSongsChronologically(m.Catalog)
}

// CursorSong returns the song under the cursor, or nil
func (m Model) CursorSong() *domain.Song {
	songs := m.VisibleSongs()
	if m.Cursor < 0 || m.Cursor >= len(songs) {
		return nil
	}
	return songs[m.Cursor]
}

func (m *Model) selectSong(id string) {
	for i, song := range m.VisibleSongs() {
		if song.ID == id {
			m.Cursor = i
			return
		}
	}
}

func (m *Model) refreshMatches() {
	if m.Query == "" {
		m.Matches = nil
		return
	}
	m.Matches = search.FilterSongs(m.Query, catalog.AllSongs(m.Catalog))
}

func (m *Model) clearFilter() {
	m.Query = ""
	m.Matches = nil
	m.Input.SetValue("")
	m.Cursor = 0
}

func (m *Model) clampCursor() {
	n := len(m.VisibleSongs())
	if m.Cursor >= n {
		m.Cursor = n - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}

	rows := m.listHeight()
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+rows {
		m.Offset = m.Cursor - rows + 1
	}
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.StatusMsg = msg
	m.StatusIsErr = isErr
}

func (m Model) listHeight() int {
	if m.Height <= ChromeHeight {
		return 10
	}
	return m.Height - ChromeHeight
}

// View implements tea.Model
func (m Model) View() string {
	if m.State == StateHelp {
		return m.renderHelp()
	}

	sections := []string{
		m.renderHeader(),
		m.renderList(),
		m.renderDetail(),
		m.renderFooter(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	count := len(catalog.AllSongIDs(m.Catalog))
	title := styles.TitleStyle.Render("beatlib")
	meta := styles.DimStyle.Render(fmt.Sprintf("  %d songs · sorted by %s", count, m.Sort))
	if catalog.ProcessingImport(m.Catalog) {
		meta += styles.AccentStyle.Render("  importing…")
	}
	return title + meta
}

func (m Model) renderList() string {
	songs := m.VisibleSongs()
	if len(songs) == 0 {
		if m.Query != "" {
			return styles.DimStyle.Render("No matches for " + m.Query)
		}
		return styles.DimStyle.Render("Catalog is empty. Press i to import a song.")
	}

	width := max(m.Width, 40)
	openID := catalog.SelectedSongID(m.Catalog)
	end := min(m.Offset+m.listHeight(), len(songs))

	var rows []string
	for i := m.Offset; i < end; i++ {
		song := songs[i]
		marker := "  "
		if song.ID == openID {
			marker = styles.OpenChar + " "
		}

		title := styles.Truncate(song.Title(), width/2)
		if m.Query != "" && i < len(m.Matches) {
			title = m.highlightTitle(m.Matches[i], width/2)
		}

		artist := styles.DimGray
		parts := []styles.RowPart{
			{Text: marker},
			{Text: title},
			{Text: "  " + styles.Truncate(song.ArtistName, width/4), Foreground: &artist},
		}
		rows = append(rows, styles.RenderListRow(parts, i == m.Cursor, width))
	}
	return strings.Join(rows, "\n")
}

// highlightTitle renders the title portion of a filter match with its
// matched characters emphasized.
func (m Model) highlightTitle(match search.SongMatch, width int) string {
	title := match.Song.Title()
	if len(title) > width {
		return styles.Truncate(title, width)
	}
	var idx []int
	for _, i := range match.MatchedIndexes {
		if i < len(title) {
			idx = append(idx, i)
		}
	}
	return styles.RenderHighlighted(title, idx)
}

func (m Model) renderDetail() string {
	song := catalog.SelectedSong(m.Catalog)
	if song == nil {
		return styles.DimStyle.Render("No song open")
	}

	var tags []string
	for _, id := range catalog.SelectedSongDifficultyIDs(m.Catalog) {
		tags = append(tags, styles.RenderDifficulty(song.DifficultiesByID[id], id == song.SelectedDifficulty))
	}

	line := styles.TitleStyle.Render(song.Title()) +
		styles.SubtitleStyle.Render(fmt.Sprintf("  %s · %.0f BPM · %s", song.ArtistName, song.BPM, song.Environment))

	var mods []string
	if ms := song.ModSettings; ms != nil {
		if ext := ms.MappingExtensions; ext != nil {
			mods = append(mods, fmt.Sprintf("grid %dx%d", ext.NumCols, ext.NumRows))
		}
		if colors := ms.CustomColors; colors != nil {
			mods = append(mods, "colors "+styles.RenderSwatch(colors.ColorLeft)+styles.RenderSwatch(colors.ColorRight))
		}
	}
	modLine := styles.DimStyle.Render("no mods")
	if len(mods) > 0 {
		modLine = strings.Join(mods, "  ")
	}

	return styles.DetailStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		line,
		strings.Join(tags, " ")+"   "+modLine,
	))
}

func (m Model) renderFooter() string {
	switch m.State {
	case StateFiltering:
		return styles.FilterPromptStyle.Render("/ ") + m.Input.View()
	case StateImporting:
		return styles.FilterPromptStyle.Render("import: ") + m.Input.View()
	case StateConfirmDelete:
		return styles.ErrorStyle.Render(fmt.Sprintf("Delete %s? ", m.pendingDelete)) +
			styles.HelpDescStyle.Render("(y/n)")
	}

	if m.StatusMsg != "" {
		if m.StatusIsErr {
			return styles.ErrorStyle.Render(m.StatusMsg)
		}
		return styles.SuccessStyle.Render(m.StatusMsg)
	}

	var hints []string
	for _, b := range []key.Binding{Keys.Open, Keys.Filter, Keys.Import, Keys.Help, Keys.Quit} {
		h := b.Help()
		hints = append(hints, styles.HelpKeyStyle.Render(h.Key)+" "+styles.HelpDescStyle.Render(h.Desc))
	}
	return strings.Join(hints, "  ")
}

func (m Model) renderHelp() string {
	var lines []string
	lines = append(lines, styles.ModalTitleStyle.Render("Keys"))
	for _, b := range helpBindings() {
		h := b.Help()
		lines = append(lines, fmt.Sprintf("%s  %s",
			styles.HelpKeyStyle.Render(fmt.Sprintf("%-8s", h.Key)),
			styles.HelpDescStyle.Render(h.Desc)))
	}
	return styles.ModalStyle.Render(strings.Join(lines, "\n"))
}
