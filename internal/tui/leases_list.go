package tui

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"nathanbeddoewebdev/leasedns/internal/dhcpd"
	"nathanbeddoewebdev/leasedns/internal/tinydns"
	"nathanbeddoewebdev/leasedns/internal/tui/components"
	"nathanbeddoewebdev/leasedns/internal/tui/styles"
	"nathanbeddoewebdev/leasedns/internal/zonegen"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"golang.org/x/sync/errgroup"
)

// --- Messages ---

type leasesLoadedMsg struct {
	leases    []dhcpd.Lease
	published map[string]bool
}

type leasesErrorMsg struct {
	err error
}

// --- Leases list model ---

type leasesListModel struct {
	leasesPath string
	zoneRoot   string // optional; enables the ZONE column

	leases    []dhcpd.Lease
	published map[string]bool
	filtered  []dhcpd.Lease
	cursor    int
	listStart int // for scrolling
	now       time.Time

	stateFilter  string // "", "active", "expired"
	stateFilters []string

	width  int
	height int

	loading       bool
	spinner       spinner.Model
	err           error
	status        string
	statusIsError bool
}

func newLeasesListModel(leasesPath, zoneRoot string) leasesListModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Blue)

	return leasesListModel{
		leasesPath:   leasesPath,
		zoneRoot:     zoneRoot,
		stateFilters: []string{"", "active", "expired"},
		stateFilter:  "",
		loading:      true,
		spinner:      s,
	}
}

// RunLeasesList opens the interactive leases browser. zoneRoot may be
// empty, in which case the ZONE column stays blank.
func RunLeasesList(leasesPath, zoneRoot string) error {
	m := newLeasesListModel(leasesPath, zoneRoot)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m leasesListModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadLeasesCmd())
}

// loadLeasesCmd reads the lease log and, when a zone root is
// configured, the zone's static sections in parallel, so the browser
// can mark leases whose host name is already published.
func (m leasesListModel) loadLeasesCmd() tea.Cmd {
	leasesPath, zoneRoot := m.leasesPath, m.zoneRoot
	return func() tea.Msg {
		var (
			set  dhcpd.LeaseSet
			zone = tinydns.NewZone()
		)

		g := new(errgroup.Group)
		g.Go(func() error {
			var err error
			set, err = dhcpd.ParseFile(leasesPath)
			return err
		})
		if zoneRoot != "" {
			g.Go(func() error {
				files, err := zonegen.StaticFiles(zoneRoot)
				if err != nil {
					return err
				}
				return zone.ReadNamed(files...)
			})
		}
		if err := g.Wait(); err != nil {
			return leasesErrorMsg{err}
		}

		var leases []dhcpd.Lease
		for lease := range set.Unique() {
			leases = append(leases, lease)
		}

		published := make(map[string]bool)
		if zoneRoot != "" {
			for _, lease := range leases {
				if lease.Hostname == "" || published[lease.Hostname] {
					continue
				}
				matches, err := zone.Search("host_name", "^"+regexp.QuoteMeta(lease.Hostname)+`\.`)
				if err != nil {
					return leasesErrorMsg{err}
				}
				if len(matches) > 0 {
					published[lease.Hostname] = true
				}
			}
		}

		return leasesLoadedMsg{leases: leases, published: published}
	}
}

// leaseState buckets a lease by how much time it has left.
func leaseState(lease dhcpd.Lease, now time.Time) string {
	switch {
	case lease.Ends.IsZero():
		return "unknown"
	case lease.Ends.Before(now):
		return "expired"
	case lease.Ends.Sub(now) < time.Hour:
		return "expiring"
	default:
		return "active"
	}
}

// matchesFilter reports whether a lease survives the current state
// filter. "active" includes leases about to expire; "expired" catches
// everything without time left, unknown expirations included.
func (m leasesListModel) matchesFilter(lease dhcpd.Lease) bool {
	switch m.stateFilter {
	case "active":
		return lease.Ends.After(m.now)
	case "expired":
		return !lease.Ends.After(m.now)
	default:
		return true
	}
}

func (m *leasesListModel) applyFilter() {
	m.filtered = make([]dhcpd.Lease, 0)
	for _, lease := range m.leases {
		if m.matchesFilter(lease) {
			m.filtered = append(m.filtered, lease)
		}
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
		if m.cursor < 0 {
			m.cursor = 0
		}
	}
	m.updateScroll()
}

func (m *leasesListModel) updateScroll() {
	headerH, footerH, statusH := 3, 1, 1 // approximate
	contentH := max(m.height-headerH-footerH-statusH, 1)
	filterBarH := 1
	tableH := max(contentH-filterBarH-1, 1)
	visibleRows := max(tableH-3, 1)

	if m.cursor < m.listStart {
		m.listStart = m.cursor
	} else if m.cursor >= m.listStart+visibleRows {
		m.listStart = m.cursor - visibleRows + 1
	}
}

func (m leasesListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		if m.loading {
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
			m.updateScroll()
		case "down", "j":
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
			}
			m.updateScroll()
		case "g":
			m.cursor = 0
			m.updateScroll()
		case "G":
			if len(m.filtered) > 0 {
				m.cursor = len(m.filtered) - 1
			}
			m.updateScroll()
		case "f":
			idx := 0
			for i, f := range m.stateFilters {
				if f == m.stateFilter {
					idx = i
					break
				}
			}
			idx = (idx + 1) % len(m.stateFilters)
			m.stateFilter = m.stateFilters[idx]
			m.applyFilter()
		case "r":
			m.loading = true
			m.err = nil
			return m, tea.Batch(m.spinner.Tick, m.loadLeasesCmd())
		}

	case leasesLoadedMsg:
		m.loading = false
		m.leases = msg.leases
		m.published = msg.published
		m.now = time.Now()
		m.applyFilter()
		m.status = fmt.Sprintf("%d lease(s)", len(m.leases))

	case leasesErrorMsg:
		m.loading = false
		m.err = msg.err
		m.status = msg.err.Error()
		m.statusIsError = true

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m leasesListModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	header := components.Header(m.width, "leases", m.leasesPath)

	var footerBindings []components.KeyBinding
	if m.loading {
		footerBindings = []components.KeyBinding{
			{Key: "ctrl+c", Desc: "quit"},
		}
	} else {
		footerBindings = []components.KeyBinding{
			{Key: "j/k", Desc: "nav"},
			{Key: "g/G", Desc: "top/end"},
			{Key: "f", Desc: "filter"},
			{Key: "r", Desc: "reload"},
			{Key: "q", Desc: "quit"},
		}
	}
	footer := components.Footer(m.width, footerBindings)

	statusBar := ""
	if m.err != nil {
		statusBar = components.StatusBar(m.width, "Error: "+m.err.Error(), true)
	} else if m.status != "" {
		statusBar = components.StatusBar(m.width, m.status, m.statusIsError)
	}

	headerH := lipgloss.Height(header)
	footerH := lipgloss.Height(footer)
	statusH := lipgloss.Height(statusBar)
	contentH := max(m.height-headerH-footerH-statusH, 1)

	content := m.renderContent(contentH)

	sections := []string{header, content}
	if statusBar != "" {
		sections = append(sections, statusBar)
	}
	sections = append(sections, footer)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m leasesListModel) renderContent(height int) string {
	if m.loading {
		loadingText := m.spinner.View() + "  Reading leases…"
		return lipgloss.Place(
			m.width, height,
			lipgloss.Center, lipgloss.Center,
			styles.MutedText.Render(loadingText),
		)
	}

	if m.err != nil {
		return lipgloss.Place(
			m.width, height,
			lipgloss.Center, lipgloss.Center,
			styles.ErrorText.Render(fmt.Sprintf("Error: %v", m.err)),
		)
	}

	if len(m.leases) == 0 {
		return lipgloss.Place(
			m.width, height,
			lipgloss.Center, lipgloss.Center,
			styles.MutedText.Render("No leases found in the lease log."),
		)
	}

	filterBar := m.renderFilterBar()
	tableH := max(height-lipgloss.Height(filterBar)-1, 1) // -1 for margin
	table := m.renderTable(tableH)

	content := lipgloss.JoinVertical(lipgloss.Left, filterBar, "", table)

	contentLines := strings.Split(content, "\n")
	if len(contentLines) < height {
		padding := strings.Repeat("\n", height-len(contentLines))
		content += padding
	}

	return content
}

func (m leasesListModel) renderFilterBar() string {
	var parts []string
	parts = append(parts, "  Filter: ")

	for _, f := range m.stateFilters {
		label := f
		if f == "" {
			label = "All"
		}

		if f == m.stateFilter {
			parts = append(parts, fmt.Sprintf("[%s]", styles.AccentText.Render(label)))
		} else {
			parts = append(parts, fmt.Sprintf(" %s ", styles.MutedText.Render(label)))
		}
	}

	return strings.Join(parts, "")
}

func (m leasesListModel) renderTable(height int) string {
	if len(m.filtered) == 0 {
		return lipgloss.Place(
			m.width, height,
			lipgloss.Center, lipgloss.Top,
			styles.MutedText.Render("\nNo leases match the current filter."),
		)
	}

	type column struct {
		title string
		width int
	}

	available := m.width - 4

	cols := []column{
		{title: "HOSTNAME", width: 22},
		{title: "IP", width: 16},
		{title: "MAC", width: 19},
		{title: "EXPIRES", width: 18},
		{title: "STATE", width: 12},
		{title: "ZONE", width: 6},
	}

	// Distribute remaining width to the HOSTNAME column
	total := 0
	for _, c := range cols {
		total += c.width
	}
	if available > total {
		extra := available - total
		for i := range cols {
			if cols[i].title == "HOSTNAME" {
				cols[i].width += extra
				break
			}
		}
	}

	headerCells := make([]string, len(cols))
	for i, col := range cols {
		headerCells[i] = styles.TableHeader.
			Width(col.width).
			Render(col.title)
	}
	headerRow := lipgloss.JoinHorizontal(lipgloss.Top, headerCells...)

	sep := styles.MutedText.Render(strings.Repeat("─", available))

	visibleRows := max(height-3, 1)

	end := m.listStart + visibleRows
	if end > len(m.filtered) {
		end = len(m.filtered)
	}

	var rows []string
	rows = append(rows, headerRow, sep)

	for i := m.listStart; i < end; i++ {
		lease := m.filtered[i]

		hostname := lease.Hostname
		if hostname == "" {
			hostname = styles.MutedText.Render("(unnamed)")
		}
		hostname = ansi.Truncate(hostname, cols[0].width-2, "…")

		expires := "-"
		if !lease.Ends.IsZero() {
			expires = lease.Ends.Format("2006-01-02 15:04")
		}

		zoneMark := ""
		if m.published[lease.Hostname] {
			zoneMark = styles.SuccessText.Render("✓")
		}

		cells := []string{
			lipgloss.NewStyle().Width(cols[0].width).Render(hostname),
			lipgloss.NewStyle().Width(cols[1].width).Render(lease.IP),
			lipgloss.NewStyle().Width(cols[2].width).Render(lease.MAC),
			lipgloss.NewStyle().Width(cols[3].width).Render(expires),
			lipgloss.NewStyle().Width(cols[4].width).Render(styles.StateIndicator(leaseState(lease, m.now))),
			lipgloss.NewStyle().Width(cols[5].width).Render(zoneMark),
		}

		rowContent := lipgloss.JoinHorizontal(lipgloss.Top, cells...)

		cursor := "  "
		rowStyle := styles.TableCell
		if i == m.cursor {
			cursor = styles.AccentText.Render("> ")
			rowStyle = styles.TableSelectedRow
		}

		renderedRow := lipgloss.JoinHorizontal(lipgloss.Top, cursor, rowStyle.Render(rowContent))
		rows = append(rows, renderedRow)
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
