package ui

import (
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/laagtabai/laag-tui/internal/catalog"
	"github.com/laagtabai/laag-tui/internal/locale"
	"github.com/laagtabai/laag-tui/internal/nav"
	"github.com/laagtabai/laag-tui/internal/platform"
	"github.com/laagtabai/laag-tui/internal/scan"
)

const (
	scanTips = 4
	maxZoom  = 5
)

// entry is one selectable row of a list screen.
type entry struct {
	label  string
	detail string
	open   func() error
}

func (m *model) moveCursor(msg tea.KeyMsg, n int) bool {
	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return true
	case key.Matches(msg, keys.Down):
		if m.cursor < n-1 {
			m.cursor++
		}
		return true
	}
	return false
}

func (m *model) openEntry(entries []entry) {
	if m.cursor < 0 || m.cursor >= len(entries) || entries[m.cursor].open == nil {
		return
	}
	m.check(entries[m.cursor].open())
}

// onboarding -----------------------------------------------------------------

func (m *model) keyOnboarding(msg tea.KeyMsg) {
	last := len(m.cat.Onboarding) - 1
	switch {
	case key.Matches(msg, keys.Skip):
		m.check(m.nav.Replace(nav.RoutePermissions, nil))
	case key.Matches(msg, keys.Left):
		if m.slide > 0 {
			m.slide--
		}
	case key.Matches(msg, keys.Right), key.Matches(msg, keys.Enter):
		if m.slide >= last {
			m.check(m.nav.Replace(nav.RoutePermissions, nil))
			return
		}
		m.slide++
	}
}

func (m *model) keyPermissions(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, keys.Allow):
		m.device.Permissions.GrantAll()
		m.logger.Info("permissions granted")
	case key.Matches(msg, keys.Later):
		m.device.Permissions.DenyAll()
		m.logger.Info("permissions deferred")
	default:
		return
	}
	m.check(m.nav.Replace(nav.RouteWelcome, nil))
}

// welcomeOptions are the gateway choices, in display order.
var welcomeOptions = []nav.Tab{nav.TabScan, nav.TabMastery, nav.TabProfile, nav.TabExplore}

func (m *model) keyWelcome(msg tea.KeyMsg) {
	if m.moveCursor(msg, len(welcomeOptions)) {
		return
	}
	if key.Matches(msg, keys.Enter) {
		m.check(m.nav.NavigateToTab(welcomeOptions[m.cursor]))
		return
	}
	for i, b := range keys.TabNums[:len(welcomeOptions)] {
		if key.Matches(msg, b) {
			m.check(m.nav.NavigateToTab(welcomeOptions[i]))
			return
		}
	}
}

// tabs -----------------------------------------------------------------------

func (m *model) keyTabs(tab nav.Tab, msg tea.KeyMsg) tea.Cmd {
	switch tab {
	case nav.TabExplore:
		entries := m.exploreEntries()
		if !m.moveCursor(msg, len(entries)) && key.Matches(msg, keys.Enter) {
			m.openEntry(entries)
		}
	case nav.TabArchives:
		if key.Matches(msg, keys.Search) {
			m.searching = true
			return m.search.Focus()
		}
		entries := m.archiveEntries()
		if !m.moveCursor(msg, len(entries)) && key.Matches(msg, keys.Enter) {
			m.openEntry(entries)
		}
	case nav.TabScan:
		return m.keyScan(msg)
	case nav.TabMastery:
		entries := m.badgeEntries()
		if !m.moveCursor(msg, len(entries)) && key.Matches(msg, keys.Enter) {
			m.openEntry(entries)
		}
	case nav.TabProfile:
		m.keyProfile(msg)
	}
	return nil
}

func (m *model) pushLandmark(l catalog.Landmark) error {
	return m.nav.Push(nav.RouteLandmarkDetails, nav.LandmarkDetailsParams{LandmarkID: l.ID, Title: l.Title})
}

func (m *model) exploreEntries() []entry {
	out := []entry{
		{label: "Open full map", detail: "Cebu City", open: func() error { return m.nav.Push(nav.RouteFullMap, nil) }},
		{label: "Local commute", detail: "Jeepneys, taxis and more", open: func() error { return m.nav.Push(nav.RouteTransitInfo, nil) }},
	}
	for _, group := range [][]catalog.Landmark{m.cat.NearbyPlaces(), m.cat.PopularLandmarks()} {
		for _, l := range group {
			l := l
			out = append(out, entry{label: l.Title, detail: l.Category + " · " + l.Location, open: func() error { return m.pushLandmark(l) }})
		}
	}
	return out
}

func (m *model) favoriteLandmarks() []catalog.Landmark {
	out := make([]catalog.Landmark, 0, len(m.favorites))
	for _, id := range m.favorites {
		if l, ok := m.cat.Landmark(id); ok {
			out = append(out, l)
		}
	}
	return out
}

func (m *model) archiveEntries() []entry {
	var out []entry
	for _, l := range catalog.Search(m.favoriteLandmarks(), m.search.Value()) {
		l := l
		out = append(out, entry{label: "★ " + l.Title, detail: l.Location, open: func() error { return m.pushLandmark(l) }})
	}
	var history []catalog.Landmark
	saved := map[string]string{}
	for _, h := range m.cat.History {
		if l, ok := m.cat.Landmark(h.LandmarkID); ok {
			history = append(history, l)
			saved[l.ID] = h.SavedAt
		}
	}
	for _, l := range catalog.Search(history, m.search.Value()) {
		l := l
		out = append(out, entry{label: l.Title, detail: "Saved " + saved[l.ID], open: func() error { return m.pushLandmark(l) }})
	}
	return out
}

func (m *model) badgeEntries() []entry {
	out := make([]entry, 0, len(m.cat.Achievements))
	for _, a := range m.cat.Achievements {
		a := a
		detail := "Locked"
		if a.Unlocked {
			detail = "Level " + strconv.Itoa(a.Level)
		}
		out = append(out, entry{label: a.Icon + " " + a.Title, detail: detail, open: func() error {
			return m.nav.Push(nav.RouteAchievementDetails, nav.AchievementDetailsParams{Achievement: a})
		}})
	}
	return out
}

func (m *model) keyProfile(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, keys.Language):
		next := "ceb"
		if m.tr.Tag().String() == locale.Cebuano.String() {
			next = "en"
		}
		m.setLanguage(next)
	case key.Matches(msg, keys.Dark):
		m.darkMode = !m.darkMode
		if m.darkMode {
			m.setTheme(defaultTheme)
		} else {
			m.setTheme("laag_light")
		}
	case key.Matches(msg, keys.Theme):
		m.setTheme(nextThemeName(m.theme, 1))
	case key.Matches(msg, keys.Notify):
		m.notifications = !m.notifications
	case key.Matches(msg, keys.Exit):
		m.exitConfirm = true
	}
}

// scan -----------------------------------------------------------------------

func (m *model) keyScan(msg tea.KeyMsg) tea.Cmd {
	if m.scanToken != uuid.Nil {
		return nil
	}
	switch {
	case key.Matches(msg, keys.Grant):
		return m.grant()
	case key.Matches(msg, keys.Shutter):
		return m.captureCmd(platform.PermissionCamera)
	case key.Matches(msg, keys.Gallery):
		return m.captureCmd(platform.PermissionPhotos)
	case key.Matches(msg, keys.Flip):
		m.frontCamera = !m.frontCamera
	case key.Matches(msg, keys.Flash):
		m.flash = !m.flash
	case key.Matches(msg, keys.ZoomIn):
		if m.zoom < maxZoom {
			m.zoom++
		}
	case key.Matches(msg, keys.ZoomOut):
		if m.zoom > 1 {
			m.zoom--
		}
	}
	return nil
}

// captureCmd takes a picture with the camera, or picks one from the gallery
// when perm is PermissionPhotos.
func (m *model) captureCmd(perm platform.Permission) tea.Cmd {
	frame := m.nav.Top().ID
	cam, gal, ctx := m.device.Camera, m.device.Gallery, m.ctx
	return func() tea.Msg {
		var img platform.Image
		var err error
		if perm == platform.PermissionPhotos {
			img, err = gal.Pick(ctx)
		} else {
			img, err = cam.Capture(ctx)
		}
		return capturedMsg{frame: frame, tab: nav.TabScan, image: img, perm: perm, err: err}
	}
}

func (m *model) captured(msg capturedMsg) tea.Cmd {
	switch {
	case platform.IsCancelledPick(msg.err):
		m.status = "No image selected"
		return nil
	case m.offerGrant(msg.err, msg.perm, m.captureCmd(msg.perm)):
		return nil
	case msg.err != nil:
		m.status = m.describe(msg.err, msg.perm)
		return nil
	}
	return m.startIdentify(msg.image)
}

// startIdentify runs an identification session owned by the scan tab's
// scope, so leaving the tab cancels it.
func (m *model) startIdentify(img platform.Image) tea.Cmd {
	token := uuid.New()
	m.scanToken = token
	m.scanStep = 0
	m.status = ""
	m.scanner.Start(m.ctx, img,
		func(step int) { m.post(identifyStepMsg{token: token, step: step}) },
		func(res scan.Result, err error) { m.deliver(identifyDoneMsg{token: token, res: res, err: err}) },
	)
	m.nav.Top().Scope().Acquire(func() {
		if m.scanToken == token {
			m.scanner.Cancel()
			m.scanToken = uuid.Nil
		}
	})
	return m.spinner.Tick
}

func (m *model) identified(msg identifyDoneMsg) tea.Cmd {
	if msg.token != m.scanToken {
		return nil
	}
	m.scanToken = uuid.Nil
	if msg.err != nil {
		if errors.Is(msg.err, scan.ErrTimeout) {
			m.status = "bAI could not recognise this place in time. Try again."
		} else {
			m.status = "Identification failed: " + msg.err.Error()
		}
		return nil
	}
	m.scanStep = m.scanner.Config().Steps - 1
	m.check(m.nav.Push(nav.RouteLandmarkDetails, nav.LandmarkDetailsParams{
		LandmarkID: msg.res.LandmarkID,
		Title:      msg.res.Title,
	}))
	return nil
}

// stacked screens ------------------------------------------------------------

func (m *model) keyFullMap(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.MapType):
		m.satellite = !m.satellite
	case key.Matches(msg, keys.Compass):
		m.check(m.nav.Push(nav.RouteTransitInfo, nil))
	case key.Matches(msg, keys.Grant):
		return m.grant()
	case key.Matches(msg, keys.Recenter):
		return m.locateCmd()
	}
	return nil
}

func (m *model) locateCmd() tea.Cmd {
	frame := m.nav.Top().ID
	loc, ctx := m.device.Locator, m.ctx
	return func() tea.Msg {
		c, err := loc.Locate(ctx)
		return locatedMsg{frame: frame, coords: c, err: err}
	}
}

func (m *model) keyTransit(msg tea.KeyMsg) {
	n := len(m.cat.CommuterTips)
	if n == 0 {
		return
	}
	switch {
	case key.Matches(msg, keys.Right):
		m.transitTip = (m.transitTip + 1) % n
	case key.Matches(msg, keys.Left):
		m.transitTip = (m.transitTip - 1 + n) % n
	}
}

// landmark resolves the details frame's landmark: the embedded item, then
// the id, then the featured landmark.
func (m *model) landmark(p nav.LandmarkDetailsParams) catalog.Landmark {
	if p.Item != nil {
		return *p.Item
	}
	if l, ok := m.cat.Landmark(p.LandmarkID); ok {
		return l
	}
	return m.cat.Featured()
}

func (m *model) keyDetails(msg tea.KeyMsg) tea.Cmd {
	p, _ := m.nav.Top().Params.(nav.LandmarkDetailsParams)
	l := m.landmark(p)
	switch {
	case key.Matches(msg, keys.Favorite):
		m.addFavorite(l.ID)
		m.nav.PopToRoot()
		m.check(m.nav.NavigateToTab(nav.TabArchives))
	case key.Matches(msg, keys.Chat):
		m.check(m.nav.Push(nav.RouteAIChat, nav.AIChatParams{Title: l.Title, LandmarkID: l.ID}))
	case key.Matches(msg, keys.Speak):
		m.speaking = !m.speaking
	case key.Matches(msg, keys.Web):
		links := m.device.Links
		u := links.SearchURL(l.Title + " Cebu")
		ctx := m.ctx
		return func() tea.Msg {
			return linkOpenedMsg{url: u, err: links.Open(ctx, u)}
		}
	}
	return nil
}

func (m *model) setLanguage(lang string) {
	m.tr = locale.New(m.bundle, lang)
	m.logger.Info("language changed", "lang", m.tr.Tag().String())
}

func (m *model) addFavorite(id string) {
	for _, f := range m.favorites {
		if f == id {
			return
		}
	}
	m.favorites = append(m.favorites, id)
}

func (m *model) keyChat(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, keys.Enter) {
		return m.chatInput.Focus()
	}
	return nil
}

// send posts the typed question and asks the guide in the background.
func (m *model) send() tea.Cmd {
	q := strings.TrimSpace(m.chatInput.Value())
	if q == "" || m.awaitingBAI {
		return nil
	}
	m.chatInput.SetValue("")
	m.chat = append(m.chat, catalog.ChatMessage{ID: uuid.NewString(), Text: q, Sender: catalog.SenderUser, Timestamp: "now"})
	m.awaitingBAI = true

	top := m.nav.Top()
	p, _ := top.Params.(nav.AIChatParams)
	topic := p.LandmarkID
	if topic == "" {
		topic = p.Title
	}
	history := append([]catalog.ChatMessage(nil), m.chat...)
	guide, ctx, frame := m.guide, m.ctx, top.ID
	return func() tea.Msg {
		reply, err := guide.Reply(ctx, topic, history, q)
		return guideReplyMsg{frame: frame, text: reply, err: err}
	}
}
