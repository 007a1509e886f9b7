// Package tui is the interactive terminal front end: pick a city, search an
// address, browse its upcoming pickups.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/list"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/tonneli/tonneli/internal/model"
	"github.com/tonneli/tonneli/internal/ports"
	"github.com/tonneli/tonneli/internal/service"
	"github.com/tonneli/tonneli/internal/ui"
)

const (
	searchDebounce = 300 * time.Millisecond
	searchLimit    = 50
)

// Options configures the app.
type Options struct {
	// Days is the length of the schedule window starting today.
	Days int
	// Timeout bounds each backend query.
	Timeout time.Duration
	// Today overrides the current date.
	Today func() time.Time
}

type screen int

const (
	screenCities screen = iota
	screenSearch
	screenSchedule
)

type cityItem struct{ meta model.CityMeta }

func (i cityItem) Title() string       { return i.meta.Name }
func (i cityItem) Description() string { return ui.Dim.Render(string(i.meta.ID)) }
func (i cityItem) FilterValue() string { return i.meta.Name }

type addressItem struct{ addr model.Address }

func (i addressItem) Title() string       { return i.addr.Label }
func (i addressItem) Description() string { return ui.Dim.Render("id " + string(i.addr.ID)) }
func (i addressItem) FilterValue() string { return i.addr.Label }

type searchDebounceMsg struct{ seq int }

type searchResultMsg struct {
	seq   int
	addrs []model.Address
	err   error
}

// scheduleMsg answers the schedule request numbered seq.
type scheduleMsg struct {
	seq    int
	events []model.PickupEvent
	err    error
}

// Model is the bubbletea model of the app.
type Model struct {
	ctx    context.Context
	facade service.Facade
	opts   Options

	screen  screen
	cities  list.Model
	input   textinput.Model
	results list.Model

	city    model.CityMeta
	address model.Address
	events  []model.PickupEvent

	seq      int
	schedSeq int
	loading  bool
	err      error
	quitting bool
	width    int
	height   int
}

// New builds the app around facade.
func New(ctx context.Context, facade service.Facade, opts Options) *Model {
	if opts.Days <= 0 {
		opts.Days = 28
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.Today == nil {
		opts.Today = model.Today
	}

	cityItems := make([]list.Item, 0)
	for _, c := range facade.Cities() {
		cityItems = append(cityItems, cityItem{meta: c})
	}
	cities := list.New(cityItems, newDelegate(), 0, 0)
	cities.Title = "Choose a city"
	cities.SetShowStatusBar(false)
	cities.SetFilteringEnabled(false)
	cities.Styles.Title = titleStyle

	ti := textinput.New()
	ti.Placeholder = "Street and house number, e.g. Hauptstraße 10"
	ti.CharLimit = 120
	ti.SetWidth(50)

	results := list.New([]list.Item{}, newDelegate(), 0, 0)
	results.Title = "Addresses"
	results.SetShowStatusBar(true)
	results.SetFilteringEnabled(false)
	results.Styles.Title = titleStyle

	m := &Model{
		ctx:     ctx,
		facade:  facade,
		opts:    opts,
		cities:  cities,
		input:   ti,
		results: results,
	}
	m.resize(80, 24)
	return m
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.cities.SetSize(width-4, max(height-8, 4))
	m.results.SetSize(width-4, max(height-12, 4))
}

var titleStyle = lipgloss.NewStyle().Foreground(ui.ColorPrimary).Bold(true).Padding(0, 0, 1, 0)

func newDelegate() list.DefaultDelegate {
	d := list.NewDefaultDelegate()
	d.SetSpacing(0)
	d.Styles.SelectedTitle = d.Styles.SelectedTitle.
		Foreground(ui.ColorHighlight).
		BorderForeground(ui.ColorPrimary)
	d.Styles.SelectedDesc = d.Styles.SelectedDesc.
		Foreground(ui.ColorTextDim).
		BorderForeground(ui.ColorPrimary)
	return d
}

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.screen {
		case screenCities:
			return m.updateCities(msg)
		case screenSearch:
			return m.updateSearch(msg)
		case screenSchedule:
			return m.updateSchedule(msg)
		}

	case searchDebounceMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		return m, m.search()

	case searchResultMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.loading = false
		m.err = msg.err
		items := make([]list.Item, 0, len(msg.addrs))
		for _, a := range msg.addrs {
			items = append(items, addressItem{addr: a})
		}
		return m, m.results.SetItems(items)

	case scheduleMsg:
		if msg.seq != m.schedSeq || m.screen != screenSchedule {
			return m, nil
		}
		m.loading = false
		m.err = msg.err
		m.events = msg.events
		return m, nil
	}

	var cmd tea.Cmd
	if m.screen == screenCities {
		m.cities, cmd = m.cities.Update(msg)
	} else if m.screen == screenSearch && !m.input.Focused() {
		m.results, cmd = m.results.Update(msg)
	}
	return m, cmd
}

func (m *Model) updateCities(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.quitting = true
		return m, tea.Quit
	case "enter":
		item, ok := m.cities.SelectedItem().(cityItem)
		if !ok {
			return m, nil
		}
		m.city = item.meta
		m.screen = screenSearch
		m.err = nil
		m.input.SetValue("")
		m.seq++
		cmd := m.results.SetItems(nil)
		return m, tea.Batch(cmd, m.input.Focus())
	}
	var cmd tea.Cmd
	m.cities, cmd = m.cities.Update(msg)
	return m, cmd
}

func (m *Model) updateSearch(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if m.input.Focused() {
		switch msg.String() {
		case "esc":
			m.screen = screenCities
			m.input.Blur()
			return m, nil
		case "enter", "down":
			if len(m.results.Items()) > 0 {
				m.input.Blur()
			}
			return m, nil
		}
		var cmd tea.Cmd
		before := m.input.Value()
		m.input, cmd = m.input.Update(msg)
		if m.input.Value() != before {
			m.seq++
			seq := m.seq
			return m, tea.Batch(cmd, tea.Tick(searchDebounce, func(time.Time) tea.Msg {
				return searchDebounceMsg{seq: seq}
			}))
		}
		return m, cmd
	}

	switch msg.String() {
	case "esc", "/":
		return m, m.input.Focus()
	case "enter":
		item, ok := m.results.SelectedItem().(addressItem)
		if !ok {
			return m, nil
		}
		m.address = item.addr
		m.screen = screenSchedule
		m.events = nil
		return m, m.loadSchedule()
	}
	var cmd tea.Cmd
	m.results, cmd = m.results.Update(msg)
	return m, cmd
}

func (m *Model) updateSchedule(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "esc", "backspace":
		m.screen = screenSearch
		m.loading = false
		m.err = nil
		m.schedSeq++
	}
	return m, nil
}

func (m *Model) search() tea.Cmd {
	q := ports.ParseAddressInput(m.input.Value())
	seq, city := m.seq, m.city.ID
	m.loading = !q.IsEmpty()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(m.ctx, m.opts.Timeout)
		defer cancel()
		addrs, err := m.facade.SearchAddresses(ctx, city, q, searchLimit)
		return searchResultMsg{seq: seq, addrs: addrs, err: err}
	}
}

func (m *Model) loadSchedule() tea.Cmd {
	m.loading = true
	m.schedSeq++
	seq, city, id := m.schedSeq, m.city.ID, m.address.ID
	r := model.NextDays(m.opts.Today(), m.opts.Days)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(m.ctx, m.opts.Timeout)
		defer cancel()
		events, err := m.facade.ScheduleFor(ctx, city, id, r)
		return scheduleMsg{seq: seq, events: events, err: err}
	}
}

func (m *Model) View() tea.View {
	return tea.NewView(m.render())
}

func (m *Model) render() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(ui.RenderBanner(ui.BannerASCII))
	b.WriteString("\n")

	help := lipgloss.NewStyle().Foreground(ui.ColorTextDim)
	switch m.screen {
	case screenCities:
		b.WriteString(m.cities.View())
		b.WriteString("\n")
		b.WriteString(help.Render("↑/↓: navigate · enter: select · q: quit"))

	case screenSearch:
		b.WriteString(ui.SectionHeader.Render(m.city.Name))
		b.WriteString("\n\n")
		b.WriteString(ui.Dim.Render("Search: "))
		b.WriteString(m.input.View())
		if m.loading {
			b.WriteString(ui.Dim.Render(" (searching...)"))
		}
		b.WriteString("\n\n")
		b.WriteString(m.results.View())
		b.WriteString("\n")
		if m.input.Focused() {
			b.WriteString(help.Render("enter/↓: move to results · esc: back to cities"))
		} else {
			b.WriteString(help.Render("↑/↓: navigate · enter: show schedule · /: search"))
		}

	case screenSchedule:
		if m.loading {
			b.WriteString(ui.Dim.Render("Loading schedule for " + m.address.Label + "..."))
		} else if m.err == nil {
			title := fmt.Sprintf("%s, %s · next %d days", m.address.Label, m.city.Name, m.opts.Days)
			ui.PrintSchedule(&b, title, m.events, m.opts.Today())
		}
		b.WriteString("\n")
		b.WriteString(help.Render("esc: back · q: quit"))
	}

	if m.err != nil {
		b.WriteString("\n\n")
		b.WriteString(ui.Error.Render(fmt.Sprintf("Error: %v", m.err)))
	}
	return b.String()
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, facade service.Facade, opts Options) error {
	p := tea.NewProgram(New(ctx, facade, opts), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
