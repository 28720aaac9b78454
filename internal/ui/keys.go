package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Enter    key.Binding
	Back     key.Binding
	NextTab  key.Binding
	PrevTab  key.Binding
	TabNums  []key.Binding
	Skip     key.Binding
	Allow    key.Binding
	Later    key.Binding
	Search   key.Binding
	Shutter  key.Binding
	Gallery  key.Binding
	Flip     key.Binding
	Flash    key.Binding
	ZoomIn   key.Binding
	ZoomOut  key.Binding
	MapType  key.Binding
	Recenter key.Binding
	Compass  key.Binding
	Grant    key.Binding
	Favorite key.Binding
	Chat     key.Binding
	Speak    key.Binding
	Web      key.Binding
	Language key.Binding
	Dark     key.Binding
	Notify   key.Binding
	Theme    key.Binding
	Exit     key.Binding
	Yes      key.Binding
	No       key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous")),
	Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next")),
	Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	NextTab:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
	PrevTab:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tab")),
	TabNums: []key.Binding{
		key.NewBinding(key.WithKeys("1")),
		key.NewBinding(key.WithKeys("2")),
		key.NewBinding(key.WithKeys("3")),
		key.NewBinding(key.WithKeys("4")),
		key.NewBinding(key.WithKeys("5")),
	},
	Skip:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "skip")),
	Allow:    key.NewBinding(key.WithKeys("a", "enter"), key.WithHelp("a", "allow access")),
	Later:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "maybe later")),
	Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Shutter:  key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "shutter")),
	Gallery:  key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "gallery")),
	Flip:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "flip camera")),
	Flash:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "flash")),
	ZoomIn:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
	ZoomOut:  key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "zoom out")),
	MapType:  key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "map type")),
	Recenter: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "recenter")),
	Compass:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "transit")),
	Grant:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "grant permission")),
	Favorite: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "favourite")),
	Chat:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "ask bAI")),
	Speak:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "listen")),
	Web:      key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "web search")),
	Language: key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "language")),
	Dark:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dark mode")),
	Notify:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "notifications")),
	Theme:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
	Exit:     key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "exit")),
	Yes:      key.NewBinding(key.WithKeys("y", "enter"), key.WithHelp("y", "exit")),
	No:       key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "cancel")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:     key.NewBinding(key.WithKeys("ctrl+c")),
}
