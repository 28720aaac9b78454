package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/glamour"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/laagtabai/laag-tui/internal/catalog"
	"github.com/laagtabai/laag-tui/internal/nav"
)

func (m *model) View() string {
	if m.quitting {
		return ""
	}
	if m.exitConfirm {
		return m.renderExitDialog()
	}
	s := m.nav.Visible()
	top := s.Frame

	var body string
	switch s.Route {
	case nav.RouteSplash:
		body = m.renderSplash()
	case nav.RouteOnboarding:
		body = m.renderOnboarding()
	case nav.RoutePermissions:
		body = m.renderPermissions()
	case nav.RouteWelcome:
		body = m.renderWelcome()
	case nav.RouteMainTabs:
		body = m.renderTab(s.Tab)
	case nav.RouteFullMap:
		body = m.renderFullMap()
	case nav.RouteTransitInfo:
		body = m.renderTransit()
	case nav.RouteLandmarkDetails:
		p, _ := top.Params.(nav.LandmarkDetailsParams)
		body = m.renderDetails(p)
	case nav.RouteAIChat:
		p, _ := top.Params.(nav.AIChatParams)
		body = m.renderChat(p)
	case nav.RouteAchievementDetails:
		p, _ := top.Params.(nav.AchievementDetailsParams)
		body = m.renderAchievement(p.Achievement)
	default:
		body = m.styles.warning.Render("Unknown screen " + s.String())
	}

	parts := []string{}
	if top.Transition.BackGesture && m.nav.Depth() > 1 {
		parts = append(parts, m.styles.muted.Render("‹ back (esc)"))
	}
	parts = append(parts, body)
	if m.status != "" {
		parts = append(parts, m.styles.warning.Render(m.status))
	}
	switch top.Transition.Chrome {
	case nav.ChromeShowsTabBar:
		parts = append(parts, m.renderTabBar(s.Tab, true))
	case nav.ChromeAboveTabBar:
		// the tabs stay mounted underneath but are not interactive
		if tabs := m.nav.Tabs(); tabs != nil {
			parts = append(parts, m.renderTabBar(tabs.Active(), false))
		}
	}
	if m.showHelp {
		parts = append(parts, m.help.ShortHelpView(m.bindings(s)))
	} else {
		parts = append(parts, m.styles.muted.Render("? help"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *model) contentWidth() int {
	if m.width <= 0 {
		return 80
	}
	return m.width
}

// renderMarkdown renders md with glamour; on failure the source is shown.
func (m *model) renderMarkdown(md string) string {
	style := glamourstyles.DarkStyle
	if !m.darkMode {
		style = glamourstyles.LightStyle
	}
	r, err := glamour.NewTermRenderer(glamour.WithStandardStyle(style), glamour.WithWordWrap(m.contentWidth()-4))
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

func (m *model) renderList(entries []entry) string {
	var b strings.Builder
	for i, e := range entries {
		label := "  " + e.label
		if i == m.cursor {
			label = m.styles.selected.Render("› " + e.label)
		}
		b.WriteString(label)
		if e.detail != "" {
			b.WriteString("  " + m.styles.muted.Render(e.detail))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *model) renderTabBar(active nav.Tab, interactive bool) string {
	cells := make([]string, 0, len(nav.AllTabs))
	for i, t := range nav.AllTabs {
		label := fmt.Sprintf("%d %s", i+1, m.tr.T("Tab"+t.String()))
		switch {
		case !interactive:
			cells = append(cells, m.styles.muted.Render(label))
		case t == active:
			cells = append(cells, m.styles.tabOn.Render(label))
		default:
			cells = append(cells, m.styles.tab.Render(label))
		}
	}
	return lipgloss.NewStyle().BorderTop(true).BorderStyle(lipgloss.NormalBorder()).BorderForeground(m.pal.Border).
		Render(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
}

func (m *model) renderExitDialog() string {
	body := m.styles.title.Render(m.tr.T("ExitTitle")) + "\n\n" + m.tr.T("ExitBody") + "\n\n" +
		m.help.ShortHelpView([]key.Binding{keys.Yes, keys.No})
	return m.styles.dialog.Render(body)
}

// onboarding flow ------------------------------------------------------------

func (m *model) renderSplash() string {
	return lipgloss.JoinVertical(lipgloss.Center,
		m.styles.title.Render("LAAG TA bAI"),
		m.styles.muted.Render(m.tr.T("SplashTagline")),
	)
}

func (m *model) renderOnboarding() string {
	slides := m.cat.Onboarding
	if len(slides) == 0 {
		return ""
	}
	i := m.slide
	if i >= len(slides) {
		i = len(slides) - 1
	}
	dots := make([]string, len(slides))
	for j := range slides {
		if j == i {
			dots[j] = m.styles.accent.Render("●")
		} else {
			dots[j] = m.styles.muted.Render("○")
		}
	}
	return m.styles.card.Render(
		m.styles.title.Render(slides[i].Title) + "\n\n" + slides[i].Description + "\n\n" + strings.Join(dots, " "),
	)
}

func (m *model) renderPermissions() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render(m.tr.T("PermissionsTitle")) + "\n")
	b.WriteString(m.tr.T("PermissionsBody") + "\n\n")
	for _, line := range []string{
		"📷 Camera: scan landmarks",
		"🎤 Microphone: talk to bAI",
		"🖼  Photos: identify saved pictures",
		"📍 Location: find nearby places",
	} {
		b.WriteString("  " + line + "\n")
	}
	b.WriteString("\n" + m.styles.muted.Render(m.tr.T("PermissionsLater")))
	return b.String()
}

func (m *model) renderWelcome() string {
	labels := map[nav.Tab]string{
		nav.TabScan:    "Scan a landmark",
		nav.TabMastery: "View your mastery",
		nav.TabProfile: "Your profile",
		nav.TabExplore: "Start exploring",
	}
	entries := make([]entry, len(welcomeOptions))
	for i, t := range welcomeOptions {
		entries[i] = entry{label: fmt.Sprintf("%d. %s", i+1, labels[t])}
	}
	return m.styles.accent.Render(m.tr.T("WelcomeGreeting")) + "\n" +
		m.styles.title.Render(m.tr.T("WelcomeTitle")) + "\n" +
		m.tr.T("WelcomeBody") + "\n\n" + m.renderList(entries)
}

// tabs -----------------------------------------------------------------------

func (m *model) renderTab(t nav.Tab) string {
	switch t {
	case nav.TabExplore:
		return m.renderExplore()
	case nav.TabArchives:
		return m.renderArchives()
	case nav.TabScan:
		return m.renderScan()
	case nav.TabMastery:
		return m.renderMastery()
	case nav.TabProfile:
		return m.renderProfile()
	}
	return ""
}

func (m *model) renderExplore() string {
	f := m.cat.Featured()
	head := m.styles.title.Render(m.tr.T("TabExplore")) + "\n" +
		m.styles.card.Render(m.styles.subtitle.Render(f.Title)+"\n"+m.styles.muted.Render(fmt.Sprintf("%s · ★ %.1f", f.Location, f.Rating)))
	return head + "\n" + m.renderList(m.exploreEntries())
}

func (m *model) renderArchives() string {
	entries := m.archiveEntries()
	search := m.styles.muted.Render("/ to search")
	if m.searching || m.search.Value() != "" {
		search = m.search.View()
	}
	return m.styles.title.Render(m.tr.T("TabArchives")) + "  " +
		m.styles.muted.Render(m.tr.Plural("LandmarksFound", len(entries))) + "\n" +
		search + "\n\n" + m.renderList(entries)
}

func (m *model) renderScan() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render(m.tr.T("TabScan")) + "\n")
	camera := "rear"
	if m.frontCamera {
		camera = "front"
	}
	flash := "off"
	if m.flash {
		flash = "on"
	}
	b.WriteString(m.styles.muted.Render(fmt.Sprintf("camera %s · flash %s · zoom %dx", camera, flash, m.zoom)) + "\n\n")

	if m.scanToken != uuid.Nil {
		steps := m.scanner.Config().Steps
		pct := 100
		if steps > 1 {
			pct = m.scanStep * 100 / (steps - 1)
		}
		b.WriteString(m.spinner.View() + " " + m.styles.subtitle.Render(m.tr.T("IdentifyTitle")) + "\n")
		b.WriteString(m.tr.Indexed("IdentifyStep", m.scanStep) + "\n")
		b.WriteString(bar(m.pal, pct, 30))
		return m.styles.card.Render(b.String())
	}
	frame := lipgloss.NewStyle().Width(40).Height(8).Border(lipgloss.RoundedBorder()).
		BorderForeground(m.pal.AccentAlt).Align(lipgloss.Center, lipgloss.Center).
		Render(m.tr.Indexed("ScanTip", m.tip%scanTips))
	b.WriteString(frame)
	return b.String()
}

func (m *model) renderMastery() string {
	p := m.cat.Profile
	var b strings.Builder
	b.WriteString(m.styles.title.Render(m.tr.T("TabMastery")) + "\n")
	pct := 0
	if p.NextXP > 0 {
		pct = p.XP * 100 / p.NextXP
	}
	b.WriteString(fmt.Sprintf("Level %d %s  %s %d/%d XP\n\n", p.Level, p.Title, bar(m.pal, pct, 20), p.XP, p.NextXP))
	b.WriteString(m.styles.subtitle.Render("Active quests") + "\n")
	for _, q := range m.cat.Quests {
		b.WriteString(fmt.Sprintf("  %s %s  %s %d/%d  +%d XP\n", q.Icon, q.Title, bar(m.pal, q.Percent(), 12), q.Progress, q.Total, q.Reward))
	}
	b.WriteString("\n" + m.styles.subtitle.Render("Badges") + "\n")
	b.WriteString(m.renderList(m.badgeEntries()))
	return b.String()
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func (m *model) renderProfile() string {
	p := m.cat.Profile
	var b strings.Builder
	b.WriteString(m.styles.title.Render(p.Name) + "  " + m.styles.muted.Render(p.Title) + "\n")
	b.WriteString(p.Bio + "\n")
	b.WriteString(fmt.Sprintf("%d scans · %d badges · %d visited\n\n", p.Scans, p.Badges, p.Visited))
	b.WriteString(fmt.Sprintf("Language       %s\n", m.tr.Tag().String()))
	b.WriteString(fmt.Sprintf("Dark mode      %s\n", onOff(m.darkMode)))
	b.WriteString(fmt.Sprintf("Notifications  %s\n", onOff(m.notifications)))
	b.WriteString(fmt.Sprintf("Theme          %s\n\n", m.theme))
	b.WriteString(m.styles.subtitle.Render("About") + "\n" + p.About + "\n")
	b.WriteString(m.styles.subtitle.Render("Team") + "\n")
	for _, name := range p.Team {
		b.WriteString("  " + name + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// stacked screens ------------------------------------------------------------

func (m *model) renderFullMap() string {
	kind := "Standard"
	if m.satellite {
		kind = "Satellite"
	}
	var b strings.Builder
	b.WriteString(m.styles.title.Render("Cebu City Map") + "  " + m.styles.muted.Render(kind) + "\n")
	b.WriteString(m.styles.muted.Render("You are near "+m.position.String()) + "\n\n")
	for _, l := range m.cat.Landmarks {
		b.WriteString(fmt.Sprintf("  📍 %-28s %8.4f %9.4f\n", l.Title, l.Latitude, l.Longitude))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *model) renderTransit() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render("Local Commute") + "\n")
	for _, t := range m.cat.TransitModes {
		b.WriteString(fmt.Sprintf("  %s %-12s %s\n", t.Icon, t.Title, m.styles.accent.Render(t.Fare)))
		b.WriteString("     " + m.styles.muted.Render(t.Description) + "\n")
	}
	if n := len(m.cat.CommuterTips); n > 0 {
		tip := m.cat.CommuterTips[m.transitTip%n]
		b.WriteString("\n" + m.styles.card.Render(m.styles.subtitle.Render(tip.Title)+"\n"+tip.Content+
			"\n"+m.styles.muted.Render(fmt.Sprintf("%d/%d", m.transitTip%n+1, n))))
	}
	return b.String()
}

func (m *model) renderDetails(p nav.LandmarkDetailsParams) string {
	l := m.landmark(p)
	title := l.Title
	if p.Title != "" {
		title = p.Title
	}
	md := fmt.Sprintf("# %s\n\n*%s · %s · ★ %.1f*\n\n## About\n\n%s\n\n## Significance\n\n%s\n\n## History\n\n%s\n\n## Did you know?\n\n%s\n",
		title, l.Category, l.Location, l.Rating, l.About, l.Significance, l.History, l.Trivia)
	out := m.renderMarkdown(md)
	if m.speaking {
		out += "\n" + m.styles.accent.Render("🔊 Reading aloud...")
	}
	return out
}

func (m *model) renderChat(p nav.AIChatParams) string {
	var md strings.Builder
	fmt.Fprintf(&md, "# bAI Guide\n\n*%s*\n\n", p.Title)
	for _, c := range m.chat {
		who := "**bAI**"
		if c.Sender == catalog.SenderUser {
			who = "**You**"
		}
		fmt.Fprintf(&md, "%s: %s\n\n", who, c.Text)
	}
	out := m.renderMarkdown(md.String())
	if m.awaitingBAI {
		out += "\n" + m.styles.muted.Render("bAI is typing...")
	}
	return out + "\n" + m.chatInput.View()
}

func (m *model) renderAchievement(a catalog.Achievement) string {
	var md strings.Builder
	fmt.Fprintf(&md, "# %s %s\n\n", a.Icon, a.Title)
	if a.Unlocked {
		fmt.Fprintf(&md, "Unlocked on **%s** at level %d.\n\n", a.EarnedOn, a.Level)
	} else {
		md.WriteString("This badge is still locked. Keep exploring to earn it.\n\n")
	}
	md.WriteString("## Journey\n\n")
	for _, ms := range m.cat.Milestones {
		mark := "[ ]"
		if ms.Completed {
			mark = "[x]"
		}
		fmt.Fprintf(&md, "- %s %s\n", mark, ms.Label)
	}
	fmt.Fprintf(&md, "\n## Reward\n\n+%d XP\n", a.Reward)
	return m.renderMarkdown(md.String())
}

// bindings lists the keys active on screen s for the help line.
func (m *model) bindings(s nav.Screen) []key.Binding {
	common := []key.Binding{keys.Back, keys.Help}
	switch s.Route {
	case nav.RouteOnboarding:
		return []key.Binding{keys.Left, keys.Right, keys.Skip}
	case nav.RoutePermissions:
		return []key.Binding{keys.Allow, keys.Later}
	case nav.RouteWelcome:
		return []key.Binding{keys.Up, keys.Down, keys.Enter}
	case nav.RouteFullMap:
		return append([]key.Binding{keys.MapType, keys.Recenter, keys.Compass, keys.Grant}, common...)
	case nav.RouteTransitInfo:
		return append([]key.Binding{keys.Left, keys.Right}, common...)
	case nav.RouteLandmarkDetails:
		return append([]key.Binding{keys.Favorite, keys.Chat, keys.Speak, keys.Web}, common...)
	case nav.RouteAIChat:
		return append([]key.Binding{keys.Enter}, common...)
	case nav.RouteMainTabs:
		tabs := []key.Binding{keys.NextTab, keys.PrevTab, keys.Exit}
		switch s.Tab {
		case nav.TabArchives:
			tabs = append(tabs, keys.Search, keys.Enter)
		case nav.TabScan:
			tabs = append(tabs, keys.Shutter, keys.Gallery, keys.Grant, keys.Flip, keys.Flash, keys.ZoomIn, keys.ZoomOut)
		case nav.TabProfile:
			tabs = append(tabs, keys.Language, keys.Dark, keys.Notify, keys.Theme)
		default:
			tabs = append(tabs, keys.Up, keys.Down, keys.Enter)
		}
		return tabs
	}
	return common
}
