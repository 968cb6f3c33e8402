package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/drift-im/drift/internal/core/chat"
	"github.com/drift-im/drift/internal/core/config"
	"github.com/drift-im/drift/internal/core/identity"
	"github.com/drift-im/drift/internal/messenger"
	"github.com/drift-im/drift/internal/styles"
)

// UIState represents the current state of the TUI.
type UIState int

const (
	stateNormal UIState = iota
	stateLoggingIn
	stateConfirmingLogout
)

// Key constants for event handling.
const (
	keyEnter = "enter"
	keyCtrlC = "ctrl+c"
)

// Model is the main Bubble Tea model for the TUI.
type Model struct {
	cfg      *config.Config
	svc      *messenger.Service
	list     list.Model
	thread   *ThreadView
	composer textinput.Model
	spinner  spinner.Model

	screen      Screen
	state       UIState
	loginForm   *LoginForm
	profileForm *ProfileForm
	modal       Modal
	partition   messenger.Partition

	width    int
	height   int
	err      error
	quitting bool
}

// loginResultMsg is sent when the sign-in attempt completes.
type loginResultMsg struct {
	user identity.User
	err  error
}

// logoutDoneMsg is sent when the session has been cleared.
type logoutDoneMsg struct {
	err error
}

// New creates a new TUI model.
func New(svc *messenger.Service, cfg *config.Config) Model {
	l := list.New([]list.Item{}, NewConversationDelegate(), 0, 0)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowTitle(false) // Title shown in tab bar instead
	l.Styles.TitleBar = lipgloss.NewStyle()
	l.FilterInput.Prompt = "Filter: "
	l.FilterInput.PromptStyle = lipgloss.NewStyle().PaddingLeft(1).Foreground(colorBlue).Bold(true)

	// Style help to a consistent gray with bullet separators
	l.Help.Styles.ShortKey = helpStyle.UnsetPaddingLeft()
	l.Help.Styles.ShortDesc = helpStyle.UnsetPaddingLeft()
	l.Help.Styles.ShortSeparator = helpStyle.UnsetPaddingLeft()
	l.Help.ShortSeparator = " • "
	l.Styles.HelpStyle = lipgloss.NewStyle().PaddingLeft(1)

	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
			key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch tab")),
			key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "profile")),
		}
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	composer := textinput.New()
	composer.Placeholder = "Type a message"
	composer.Prompt = "> "
	composer.PromptStyle = composerPromptStyle

	m := Model{
		cfg:       cfg,
		svc:       svc,
		list:      l,
		thread:    NewThreadView(),
		composer:  composer,
		spinner:   s,
		partition: messenger.PartitionAll,
	}

	if _, ok := svc.Session().Current(); ok {
		m.screen = ScreenRoster
		m.refreshConversations()
	} else {
		m.screen = ScreenLogin
		m.loginForm = NewLoginForm()
	}

	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, m.scheduleRefreshTick()}
	if m.screen == ScreenLogin {
		cmds = append(cmds, m.loginForm.Form().Init())
	}
	return tea.Batch(cmds...)
}

// login returns a command that signs in with the given credentials.
func (m Model) login(username, password string) tea.Cmd {
	return func() tea.Msg {
		user, err := m.svc.Session().Login(context.Background(), username, password)
		return loginResultMsg{user: user, err: err}
	}
}

// logout returns a command that tears down the session.
func (m Model) logout() tea.Cmd {
	return func() tea.Msg {
		return logoutDoneMsg{err: m.svc.Logout(context.Background())}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Account for: banner (5 lines) + tab bar (1)
		contentHeight := msg.Height - 6
		if contentHeight < 1 {
			contentHeight = 1
		}

		m.list.SetSize(msg.Width, contentHeight)
		// Thread shares the space with a header (1), composer (2), help (1)
		m.thread.SetSize(msg.Width, contentHeight-4)
		m.composer.Width = msg.Width - 4
		return m, nil

	case refreshTickMsg:
		if m.screen == ScreenRoster && !m.list.SettingFilter() {
			m.refreshConversations()
		}
		if m.screen == ScreenThread {
			m.thread.SetMessages(m.svc.Thread())
		}
		return m, m.scheduleRefreshTick()

	case loginResultMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = stateNormal
			m.loginForm = NewLoginForm()
			return m, m.loginForm.Form().Init()
		}
		m.err = nil
		m.state = stateNormal
		m.screen = ScreenRoster
		m.loginForm = nil
		m.refreshConversations()
		return m, nil

	case logoutDoneMsg:
		if msg.err != nil {
			m.err = msg.err
		}
		m.state = stateNormal
		m.screen = ScreenLogin
		m.loginForm = NewLoginForm()
		return m, m.loginForm.Form().Init()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// Route all other messages to whichever component is active
	switch m.screen {
	case ScreenLogin:
		if m.loginForm != nil && m.state != stateLoggingIn {
			return m.updateLoginForm(msg)
		}
	case ScreenProfile:
		if m.profileForm != nil {
			return m.updateProfileForm(msg)
		}
	case ScreenThread:
		var cmd tea.Cmd
		m.composer, cmd = m.composer.Update(msg)
		return m, cmd
	case ScreenRoster:
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey processes key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()

	if m.state == stateConfirmingLogout {
		return m.handleLogoutModalKey(keyStr)
	}

	switch m.screen {
	case ScreenLogin:
		return m.handleLoginKey(msg, keyStr)
	case ScreenThread:
		return m.handleThreadKey(msg, keyStr)
	case ScreenProfile:
		return m.handleProfileKey(msg, keyStr)
	default:
		return m.handleRosterKey(msg, keyStr)
	}
}

// handleLogoutModalKey handles keys when the logout confirmation is shown.
func (m Model) handleLogoutModalKey(keyStr string) (tea.Model, tea.Cmd) {
	switch keyStr {
	case keyEnter:
		m.state = stateNormal
		if m.modal.ConfirmSelected() {
			return m, m.logout()
		}
		return m, nil
	case "esc":
		m.state = stateNormal
		return m, nil
	case "left", "right", "h", "l", "tab":
		m.modal.ToggleSelection()
		return m, nil
	}
	return m, nil
}

// handleLoginKey handles keys on the login screen.
func (m Model) handleLoginKey(msg tea.Msg, keyStr string) (tea.Model, tea.Cmd) {
	if keyStr == keyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}
	if m.state == stateLoggingIn {
		return m, nil
	}
	return m.updateLoginForm(msg)
}

// updateLoginForm routes a message to the login form and triggers the
// sign-in attempt on submit.
func (m Model) updateLoginForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.loginForm.Form().Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.loginForm.SetForm(f)

		if m.loginForm.Completed() {
			username, password := m.loginForm.Credentials()
			m.state = stateLoggingIn
			m.err = nil
			return m, tea.Batch(m.login(username, password), m.spinner.Tick)
		}
	}
	return m, cmd
}

// handleRosterKey handles keys on the conversation list screen.
func (m Model) handleRosterKey(msg tea.KeyMsg, keyStr string) (tea.Model, tea.Cmd) {
	// When filtering, pass everything except quit to the list
	if m.list.SettingFilter() {
		if keyStr == keyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch keyStr {
	case "q", keyCtrlC:
		m.quitting = true
		return m, tea.Quit
	case "tab":
		m.partition = nextPartition(m.partition)
		m.refreshConversations()
		return m, nil
	case keyEnter:
		return m.openSelected()
	case "p":
		return m.openProfile()
	case "ctrl+d":
		m.state = stateConfirmingLogout
		m.modal = NewModal("Log out", "End your session and return to the login screen?")
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleThreadKey handles keys in the open thread.
func (m Model) handleThreadKey(msg tea.KeyMsg, keyStr string) (tea.Model, tea.Cmd) {
	switch keyStr {
	case keyCtrlC:
		m.quitting = true
		return m, tea.Quit
	case "esc":
		m.svc.CloseConversation()
		m.screen = ScreenRoster
		m.composer.Blur()
		m.composer.SetValue("")
		m.refreshConversations()
		return m, nil
	case "up", "ctrl+k":
		m.thread.ScrollUp()
		return m, nil
	case "down", "ctrl+j":
		m.thread.ScrollDown()
		return m, nil
	case "end":
		m.thread.ScrollToBottom()
		return m, nil
	case keyEnter:
		return m.sendComposed()
	}

	var cmd tea.Cmd
	m.composer, cmd = m.composer.Update(msg)
	return m, cmd
}

// handleProfileKey handles keys on the profile screen.
func (m Model) handleProfileKey(msg tea.Msg, keyStr string) (tea.Model, tea.Cmd) {
	switch keyStr {
	case keyCtrlC:
		m.quitting = true
		return m, tea.Quit
	case "esc":
		m.screen = ScreenRoster
		m.profileForm = nil
		return m, nil
	case "ctrl+d":
		m.state = stateConfirmingLogout
		m.modal = NewModal("Log out", "End your session and return to the login screen?")
		return m, nil
	}
	return m.updateProfileForm(msg)
}

// updateProfileForm routes a message to the profile form and applies
// the update on submit.
func (m Model) updateProfileForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.profileForm.Form().Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.profileForm.SetForm(f)

		if m.profileForm.Completed() {
			update := m.profileForm.Result()
			if _, err := m.svc.Session().UpdateProfile(context.Background(), update); err != nil {
				m.err = err
			}
			m.screen = ScreenRoster
			m.profileForm = nil
			return m, nil
		}
	}
	return m, cmd
}

// openSelected opens the conversation under the cursor.
func (m Model) openSelected() (tea.Model, tea.Cmd) {
	item, ok := m.list.SelectedItem().(ConversationItem)
	if !ok {
		return m, nil
	}

	msgs, err := m.svc.OpenConversation(item.Conv.ID)
	if err != nil {
		m.err = err
		return m, nil
	}

	m.err = nil
	m.screen = ScreenThread
	m.thread.SetMessages(msgs)
	m.thread.ScrollToBottom()
	m.composer.Focus()
	return m, textinput.Blink
}

// openProfile switches to the profile editor.
func (m Model) openProfile() (tea.Model, tea.Cmd) {
	user, ok := m.svc.Session().Current()
	if !ok {
		return m, nil
	}

	m.profileForm = NewProfileForm(user)
	m.screen = ScreenProfile
	return m, m.profileForm.Form().Init()
}

// sendComposed sends the composer content into the open conversation.
func (m Model) sendComposed() (tea.Model, tea.Cmd) {
	content := strings.TrimSpace(m.composer.Value())
	if content == "" {
		return m, nil
	}

	if _, err := m.svc.Send(content, chat.KindText); err != nil {
		m.err = err
		return m, nil
	}

	m.err = nil
	m.composer.SetValue("")
	m.thread.SetMessages(m.svc.Thread())
	m.thread.ScrollToBottom()
	return m, nil
}

// refreshConversations re-reads the roster for the active partition.
func (m *Model) refreshConversations() {
	convs := m.svc.Conversations(messenger.Filter{Partition: m.partition})
	items := make([]list.Item, len(convs))
	for i, c := range convs {
		items[i] = ConversationItem{Conv: c}
	}
	m.list.SetItems(items)
}

// nextPartition cycles through the roster tabs.
func nextPartition(p messenger.Partition) messenger.Partition {
	switch p {
	case messenger.PartitionAll:
		return messenger.PartitionDirect
	case messenger.PartitionDirect:
		return messenger.PartitionGroups
	default:
		return messenger.PartitionAll
	}
}

// View renders the TUI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.state == stateConfirmingLogout {
		w, h := m.width, m.height
		if w == 0 {
			w = 80
		}
		if h == 0 {
			h = 24
		}
		return m.modal.Render(w, h)
	}

	bannerView := styles.BannerStyle.Render(styles.Banner)

	var content string
	switch m.screen {
	case ScreenLogin:
		content = m.renderLogin()
	case ScreenThread:
		content = m.renderThread()
	case ScreenProfile:
		content = m.renderProfile()
	default:
		content = m.renderRoster()
	}

	view := lipgloss.JoinVertical(lipgloss.Left, bannerView, content)
	if m.err != nil {
		view = lipgloss.JoinVertical(lipgloss.Left, view, errorStyle.Render("✘ "+m.err.Error()))
	}
	return view
}

// renderLogin renders the login screen.
func (m Model) renderLogin() string {
	if m.state == stateLoggingIn {
		return lipgloss.NewStyle().PaddingLeft(1).Render(
			m.spinner.View() + " Signing in...")
	}
	return lipgloss.NewStyle().PaddingLeft(1).Render(m.loginForm.View())
}

// renderRoster renders the tab bar and conversation list.
func (m Model) renderRoster() string {
	tabs := make([]string, 0, 3)
	for _, p := range []messenger.Partition{
		messenger.PartitionAll,
		messenger.PartitionDirect,
		messenger.PartitionGroups,
	} {
		label := partitionLabel(p)
		if p == m.partition {
			tabs = append(tabs, tabSelectedStyle.Render(label))
		} else {
			tabs = append(tabs, tabNormalStyle.Render(label))
		}
	}
	tabBar := lipgloss.NewStyle().PaddingLeft(1).Render(strings.Join(tabs, " | "))

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, m.list.View())
}

// renderThread renders the open conversation.
func (m Model) renderThread() string {
	header := ""
	if conv, ok := m.svc.ActiveConversation(); ok {
		header = " " + senderStyle.Render(conv.Name) + "  " + subtleStyle.Render(conv.PresenceLabel())
	}

	composerBar := composerBarStyle.Width(m.width).Render(" " + m.composer.View())
	help := helpStyle.Render("enter send • ↑/↓ scroll • esc back")

	return lipgloss.JoinVertical(lipgloss.Left, header, m.thread.View(), composerBar, help)
}

// renderProfile renders the profile editor.
func (m Model) renderProfile() string {
	var b strings.Builder
	if user, ok := m.svc.Session().Current(); ok {
		b.WriteString(" " + subtleStyle.Render("@"+user.Username+"  "+user.Avatar) + "\n\n")
	}
	b.WriteString(m.profileForm.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter submit • esc back • ctrl+d log out"))
	return lipgloss.NewStyle().PaddingLeft(1).Render(b.String())
}

// partitionLabel returns the tab label for a roster partition.
func partitionLabel(p messenger.Partition) string {
	switch p {
	case messenger.PartitionDirect:
		return "Direct"
	case messenger.PartitionGroups:
		return "Groups"
	default:
		return "All"
	}
}
