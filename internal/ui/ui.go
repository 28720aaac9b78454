package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/nicksnyder/go-i18n/v2/i18n"

	"github.com/laagtabai/laag-tui/internal/catalog"
	"github.com/laagtabai/laag-tui/internal/locale"
	"github.com/laagtabai/laag-tui/internal/nav"
	"github.com/laagtabai/laag-tui/internal/platform"
	"github.com/laagtabai/laag-tui/internal/scan"
	"github.com/laagtabai/laag-tui/internal/text"
	"github.com/laagtabai/laag-tui/internal/util"
)

// Deps is everything the UI needs. Navigator may be nil, in which case one
// is started on the splash screen.
type Deps struct {
	Config    util.Config
	Catalog   *catalog.Catalog
	Bundle    *i18n.Bundle
	Device    *platform.Device
	Scanner   *scan.Scanner
	Guide     text.Guide
	Logger    *slog.Logger
	Navigator *nav.Navigator
}

// messages delivered from timers and background commands
type (
	splashDoneMsg struct{ frame uuid.UUID }
	tipMsg        struct {
		frame   uuid.UUID
		transit bool
	}
	identifyStepMsg struct {
		token uuid.UUID
		step  int
	}
	identifyDoneMsg struct {
		token uuid.UUID
		res   scan.Result
		err   error
	}
	capturedMsg struct {
		frame uuid.UUID
		tab   nav.Tab
		image platform.Image
		perm  platform.Permission
		err   error
	}
	locatedMsg struct {
		frame  uuid.UUID
		coords platform.Coordinates
		err    error
	}
	guideReplyMsg struct {
		frame uuid.UUID
		text  string
		err   error
	}
	linkOpenedMsg struct {
		url string
		err error
	}
	// asyncMsg wraps everything read from the events channel so the
	// listener can be re-armed.
	asyncMsg struct{ msg tea.Msg }
)

const eventBuffer = 64

// grantRequest is a denied capability the user can grant from the screen
// that asked for it, and the command that retries the request.
type grantRequest struct {
	perm  platform.Permission
	retry tea.Cmd
}

type model struct {
	ctx     context.Context
	cancel  context.CancelFunc
	cfg     util.Config
	cat     *catalog.Catalog
	bundle  *i18n.Bundle
	tr      *locale.Translator
	device  *platform.Device
	scanner *scan.Scanner
	guide   text.Guide
	logger  *slog.Logger
	nav     *nav.Navigator
	events  chan tea.Msg

	theme   string
	pal     palette
	styles  styles
	help    help.Model
	spinner spinner.Model
	width   int
	height  int

	status      string
	pending     *grantRequest
	showHelp    bool
	exitConfirm bool
	quitting    bool

	// per-screen state, reset whenever a new frame is entered
	cursor     int
	slide      int
	tip        int
	transitTip int
	search     textinput.Model
	searching  bool
	favorites  []string

	frontCamera bool
	flash       bool
	zoom        int
	scanToken   uuid.UUID
	scanStep    int

	satellite bool
	position  platform.Coordinates
	speaking  bool

	chat        []catalog.ChatMessage
	chatInput   textinput.Model
	awaitingBAI bool

	darkMode      bool
	notifications bool
}

func newModel(ctx context.Context, d Deps) (*model, error) {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cat := d.Catalog
	if cat == nil {
		var err error
		if cat, err = catalog.Default(); err != nil {
			return nil, err
		}
	}
	bundle := d.Bundle
	if bundle == nil {
		var err error
		if bundle, err = locale.Bundle(); err != nil {
			return nil, err
		}
	}
	device := d.Device
	if device == nil {
		device = platform.NewStubDevice()
	}
	guide := d.Guide
	if guide == nil {
		guide = text.WithFallback(text.NewScriptedGuide(cat), text.NewMinimalGuide())
	}
	scanner := d.Scanner
	if scanner == nil {
		cfg := scan.DefaultConfig()
		if d.Config.StepInterval > 0 {
			cfg.StepInterval = d.Config.StepInterval
		}
		cfg.Timeout = d.Config.IdentifyTimeout
		scanner = scan.NewScanner(scan.NewSimulated(d.Config.IdentifyDuration), cfg, logger)
	}
	navigator := d.Navigator
	if navigator == nil {
		root, params := nav.RouteSplash, nav.Params(nav.SplashParams{})
		if d.Config.SkipOnboarding {
			root, params = nav.RouteMainTabs, nav.MainTabsParams{Screen: nav.TabExplore}
		}
		var err error
		navigator, err = nav.New(nav.DefaultRegistry(), root, params,
			nav.WithLogger(logger), nav.WithStrict(d.Config.IsDev()))
		if err != nil {
			return nil, err
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	m := &model{
		ctx:           ctx,
		cancel:        cancel,
		cfg:           d.Config,
		cat:           cat,
		bundle:        bundle,
		tr:            locale.New(bundle, d.Config.Locale),
		device:        device,
		scanner:       scanner,
		guide:         guide,
		logger:        logger,
		nav:           navigator,
		events:        make(chan tea.Msg, eventBuffer),
		help:          help.New(),
		spinner:       spinner.New(spinner.WithSpinner(spinner.Dot)),
		favorites:     append([]string(nil), cat.Favorites...),
		zoom:          1,
		darkMode:      true,
		notifications: true,
	}
	m.setTheme(d.Config.Theme)
	m.search = textinput.New()
	m.search.Placeholder = "Search landmarks..."
	m.search.CharLimit = 60
	m.chatInput = textinput.New()
	m.chatInput.Placeholder = "Ask bAI anything..."
	m.chatInput.CharLimit = 200
	m.nav.OnChange(m.onNav)
	return m, nil
}

func (m *model) setTheme(name string) {
	if _, ok := palettes[name]; !ok {
		name = defaultTheme
	}
	m.theme = name
	m.pal = paletteFor(name)
	m.styles = newStyles(m.pal)
	m.spinner.Style = m.styles.accent
}

// tea.Model implementation ---------------------------------------------------

func (m *model) Init() tea.Cmd {
	m.activate()
	return m.listen()
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case asyncMsg:
		next, cmd := m.Update(msg.msg)
		return next, tea.Batch(cmd, m.listen())
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case spinner.TickMsg:
		if m.scanToken == uuid.Nil {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case splashDoneMsg:
		if m.isTop(msg.frame) {
			m.check(m.nav.Replace(nav.RouteOnboarding, nil))
		}
		return m, nil
	case tipMsg:
		if !m.isTop(msg.frame) {
			return m, nil
		}
		if msg.transit {
			if n := len(m.cat.CommuterTips); n > 0 {
				m.transitTip = (m.transitTip + 1) % n
			}
		} else if s := m.nav.Visible(); s.InTabs && s.Tab == nav.TabScan && m.scanToken == uuid.Nil {
			m.tip = (m.tip + 1) % scanTips
		}
		return m, nil
	case identifyStepMsg:
		if msg.token == m.scanToken {
			m.scanStep = msg.step
		}
		return m, nil
	case identifyDoneMsg:
		return m, m.identified(msg)
	case capturedMsg:
		// a capture that resolves after the user left the scan tab is dropped
		if !m.isTop(msg.frame) || msg.tab != nav.TabScan || !m.onScanTab() {
			return m, nil
		}
		return m, m.captured(msg)
	case locatedMsg:
		if !m.isTop(msg.frame) {
			return m, nil
		}
		if m.offerGrant(msg.err, platform.PermissionLocation, m.locateCmd()) {
			return m, nil
		}
		if msg.err != nil {
			m.status = m.describe(msg.err, platform.PermissionLocation)
			return m, nil
		}
		m.position = msg.coords
		m.status = "Centered on " + msg.coords.String()
		return m, nil
	case guideReplyMsg:
		if !m.isTop(msg.frame) {
			return m, nil
		}
		m.awaitingBAI = false
		if msg.err != nil {
			m.status = "bAI is unavailable: " + msg.err.Error()
			return m, nil
		}
		m.chat = append(m.chat, catalog.ChatMessage{ID: uuid.NewString(), Text: msg.text, Sender: catalog.SenderAI, Timestamp: "now"})
		return m, nil
	case linkOpenedMsg:
		if msg.err != nil {
			m.status = "Could not open browser: " + msg.err.Error()
		} else {
			m.status = "Opened " + msg.url
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Quit) {
		return m.quit()
	}
	if m.exitConfirm {
		switch {
		case key.Matches(msg, keys.Yes):
			return m.quit()
		case key.Matches(msg, keys.No):
			m.exitConfirm = false
		}
		return m, nil
	}
	// text entry owns the keyboard
	if m.searching || (m.chatInput.Focused() && m.nav.Top().Route == nav.RouteAIChat) {
		return m.handleInput(msg)
	}
	if key.Matches(msg, keys.Help) {
		m.showHelp = !m.showHelp
		return m, nil
	}
	if key.Matches(msg, keys.Back) {
		m.back()
		return m, nil
	}

	s := m.nav.Visible()
	if s.InTabs && m.nav.Top().Transition.Chrome == nav.ChromeShowsTabBar {
		if cmd, handled := m.handleTabBar(msg); handled {
			return m, cmd
		}
	}
	switch s.Route {
	case nav.RouteOnboarding:
		m.keyOnboarding(msg)
	case nav.RoutePermissions:
		m.keyPermissions(msg)
	case nav.RouteWelcome:
		m.keyWelcome(msg)
	case nav.RouteMainTabs:
		return m, m.keyTabs(s.Tab, msg)
	case nav.RouteFullMap:
		return m, m.keyFullMap(msg)
	case nav.RouteTransitInfo:
		m.keyTransit(msg)
	case nav.RouteLandmarkDetails:
		return m, m.keyDetails(msg)
	case nav.RouteAIChat:
		return m, m.keyChat(msg)
	}
	return m, nil
}

func (m *model) handleTabBar(msg tea.KeyMsg) (tea.Cmd, bool) {
	tabs := m.nav.Tabs()
	switch {
	case key.Matches(msg, keys.NextTab):
		tabs.Next()
		return nil, true
	case key.Matches(msg, keys.PrevTab):
		tabs.Prev()
		return nil, true
	case key.Matches(msg, keys.Exit):
		m.exitConfirm = true
		return nil, true
	}
	for i, b := range keys.TabNums {
		if key.Matches(msg, b) {
			_, err := tabs.OnTabPress(nav.AllTabs[i])
			m.check(err)
			return nil, true
		}
	}
	return nil, false
}

func (m *model) handleInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.searching {
		switch msg.Type {
		case tea.KeyEsc, tea.KeyEnter:
			m.searching = false
			m.search.Blur()
			m.cursor = 0
			return m, nil
		}
		m.search, cmd = m.search.Update(msg)
		m.cursor = 0
		return m, cmd
	}
	switch msg.Type {
	case tea.KeyEsc:
		m.chatInput.Blur()
		return m, nil
	case tea.KeyEnter:
		return m, m.send()
	}
	m.chatInput, cmd = m.chatInput.Update(msg)
	return m, cmd
}

// back is the user's back gesture. Where going back is not possible the
// exit confirmation is offered instead.
func (m *model) back() {
	err := m.nav.Back()
	if errors.Is(err, nav.ErrBackDisabled) || errors.Is(err, nav.ErrAtRoot) {
		m.exitConfirm = true
		return
	}
	m.check(err)
}

func (m *model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.exitConfirm = false
	m.scanner.Cancel()
	m.nav.Close()
	m.cancel()
	return m, tea.Quit
}

// navigation -----------------------------------------------------------------

func (m *model) onNav(e nav.Event) {
	m.cursor = 0
	m.status = ""
	m.pending = nil
	m.showHelp = false
	m.chatInput.Blur()
	switch e.Kind {
	case nav.EventPush, nav.EventReplace:
		m.enter(e.Top)
	case nav.EventTab:
		m.searching = false
		m.search.Blur()
	}
	m.activate()
}

// enter resets the screen-local state of a newly created frame.
func (m *model) enter(f *nav.Frame) {
	switch p := f.Params.(type) {
	case nav.OnboardingParams:
		m.slide = 0
	case nav.TransitInfoParams:
		m.transitTip = 0
	case nav.FullMapParams:
		m.satellite = false
		m.position = platform.CebuCity
	case nav.LandmarkDetailsParams:
		m.speaking = false
	case nav.AIChatParams:
		m.chat = append([]catalog.ChatMessage(nil), m.cat.Transcript...)
		if greet, err := m.guide.Greeting(m.ctx, p.Title); err == nil && len(m.chat) == 0 {
			m.chat = append(m.chat, catalog.ChatMessage{ID: uuid.NewString(), Text: greet, Sender: catalog.SenderAI, Timestamp: "now"})
		}
		m.chatInput.SetValue("")
		m.chatInput.Focus()
		m.awaitingBAI = false
	case nav.MainTabsParams:
		m.tip = 0
	}
}

// activate acquires the timers of the visible screen into its scope. The
// scope is released by the navigator when the screen is covered, removed or
// its tab is switched away.
func (m *model) activate() {
	s := m.nav.Visible()
	scope := s.Frame.Scope()
	id := s.Frame.ID
	switch {
	case s.Route == nav.RouteSplash:
		scope.AfterFunc(m.cfg.SplashDelay, func() { m.post(splashDoneMsg{frame: id}) })
	case s.Route == nav.RouteTransitInfo:
		scope.Every(m.cfg.TransitTipInterval, func() { m.post(tipMsg{frame: id, transit: true}) })
	case s.InTabs && s.Tab == nav.TabScan:
		scope.Every(m.cfg.TipInterval, func() { m.post(tipMsg{frame: id}) })
	}
}

func (m *model) isTop(frame uuid.UUID) bool {
	return m.nav.Top().ID == frame
}

func (m *model) onScanTab() bool {
	s := m.nav.Visible()
	return s.Route == nav.RouteMainTabs && s.InTabs && s.Tab == nav.TabScan
}

// post hands a message from a timer or session goroutine to the event loop.
func (m *model) post(msg tea.Msg) {
	select {
	case m.events <- msg:
	default:
		m.logger.Warn("ui event dropped", "type", fmt.Sprintf("%T", msg))
	}
}

// deliver is post for messages that must not be lost, such as session
// completions: it waits for room in the queue until the model shuts down.
func (m *model) deliver(msg tea.Msg) {
	select {
	case m.events <- msg:
	case <-m.ctx.Done():
		m.logger.Debug("ui event discarded after shutdown", "type", fmt.Sprintf("%T", msg))
	}
}

func (m *model) listen() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-m.events:
			return asyncMsg{msg: msg}
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m *model) check(err error) {
	if err == nil {
		return
	}
	m.logger.Error("navigation failed", "error", err)
	m.status = err.Error()
}

// offerGrant turns a denied capability into an inline message with a grant
// key. It reports whether err was a denial.
func (m *model) offerGrant(err error, perm platform.Permission, retry tea.Cmd) bool {
	if !platform.IsPermissionDenied(err) {
		return false
	}
	m.pending = &grantRequest{perm: perm, retry: retry}
	m.status = m.describe(err, perm) + ". " + m.tr.T("PermissionRetry")
	return true
}

// grant allows the pending capability and retries the request that needed it.
func (m *model) grant() tea.Cmd {
	req := m.pending
	if req == nil {
		return nil
	}
	m.pending = nil
	m.status = ""
	m.device.Permissions.Set(req.perm, true)
	m.logger.Info("permission granted", "permission", req.perm.String())
	return req.retry
}

func (m *model) describe(err error, perm platform.Permission) string {
	if platform.IsPermissionDenied(err) {
		return m.tr.Tf("PermissionDenied", map[string]any{"Capability": perm.String()})
	}
	return err.Error()
}
