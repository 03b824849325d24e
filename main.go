package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"uicanvas/console"
	"uicanvas/docfile"
	"uicanvas/editor"
	"uicanvas/render"
)

func main() {
	consoleMode := flag.Bool("console", false, "run the command console instead of the canvas")
	script := flag.String("script", "", "run console commands from `file` and exit")
	open := flag.String("open", "", "open the document `file` at startup")
	flag.Parse()

	config := loadConfig()
	logger := log.New(io.Discard, "", 0)
	if config.LogFile != "" {
		f, err := tea.LogToFile(config.LogFile, "uicanvas")
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer f.Close()
		logger = log.Default()
	}
	session := editor.NewSession(
		editor.WithLogger(logger),
		editor.WithNudge(config.Nudge, config.BigNudge),
	)

	if *open != "" {
		spec, err := docfile.Load(*open)
		if err != nil {
			log.Fatal(err)
		}
		if err := session.LoadDocument(spec.Components); err != nil {
			log.Fatal(err)
		}
	}

	switch {
	case *script != "":
		c := console.New(session, os.Stdout)
		c.View.CellWidth, c.View.CellHeight = config.CellWidth, config.CellHeight
		if err := c.ExecuteFile(*script); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
		return
	case *consoleMode:
		rl, err := console.NewReadline(config.HistoryFile)
		if err != nil {
			log.Fatalf("Failed to initialize readline: %v", err)
		}
		defer rl.Close()
		c := console.New(session, rl.Stdout())
		c.View.CellWidth, c.View.CellHeight = config.CellWidth, config.CellHeight
		fmt.Fprintln(c.Out, "uicanvas console. Use 'help' for the list of commands.")
		if err := c.Run(rl); err != nil {
			log.Fatal(err)
		}
		return
	}

	m := initialModel(config, session)
	m.filename = *open
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

func initialModel(config *Config, session *editor.Session) model {
	input := textinput.New()
	input.CharLimit = 200

	return model{
		session: session,
		config:  config,
		view: render.View{
			Width:      80,
			Height:     24 - statusHeight,
			CellWidth:  config.CellWidth,
			CellHeight: config.CellHeight,
		},
		input:             input,
		selectedFileIndex: -1,
		now:               time.Now,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.view.Width = max(msg.Width, 1)
		m.view.Height = max(msg.Height-statusHeight, 1)
		m.input.Width = max(msg.Width-20, 10)

	case tea.MouseMsg:
		if !m.help && (m.mode == ModeCanvas || m.mode == ModeEditing) {
			cmd = m.handleMouse(msg)
		}

	case tea.KeyMsg:
		switch {
		case m.help:
			m.handleHelpKey(msg)
		case m.mode == ModeEditing || m.mode == ModeRename:
			cmd = m.handleTextInput(msg)
		case m.mode == ModeFileInput:
			cmd = m.handleFileInput(msg)
		case m.mode == ModeConfirm:
			cmd = m.handleConfirm(msg)
		default:
			cmd = m.handleCanvasKey(msg)
		}
	}
	return m, cmd
}

func (m *model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Y >= m.view.Height || msg.X >= m.canvasView().Width {
		return nil
	}
	p := m.view.Point(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.view.PanY--
			return nil
		case tea.MouseButtonWheelDown:
			m.view.PanY++
			return nil
		case tea.MouseButtonLeft:
		default:
			return nil
		}
		m.sealNudge()
		m.clearMessages()
		now, cell := m.now(), [2]int{msg.X, msg.Y}
		m.doubleClick = cell == m.lastClickCell && now.Sub(m.lastClick) < doubleClickInterval
		m.lastClick, m.lastClickCell = now, cell
		if m.mode == ModeEditing {
			m.session.SetDraft(m.input.Value())
		}
		m.session.PointerDown(editor.Pointer{Pos: p, Toggle: msg.Shift || msg.Ctrl})
	case tea.MouseActionMotion:
		m.session.PointerMove(p)
	case tea.MouseActionRelease:
		m.session.PointerUp(p)
		if m.doubleClick {
			m.doubleClick = false
			m.session.DoubleClick(p)
		}
	}
	return m.syncEditing()
}

// syncEditing opens or closes the text input to follow the session's
// text-editing phase.
func (m *model) syncEditing() tea.Cmd {
	g := m.session.Gesture()
	switch {
	case g.Phase == editor.EditingText && m.mode != ModeEditing:
		m.mode = ModeEditing
		return m.startInput("Text: ", g.Draft)
	case g.Phase != editor.EditingText && m.mode == ModeEditing:
		m.mode = ModeCanvas
		m.input.Blur()
	}
	return nil
}

func (m *model) startInput(prompt, value string) tea.Cmd {
	m.input.Prompt = prompt
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *model) handleTextInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		if m.mode == ModeEditing {
			m.session.SetDraft(m.input.Value())
			m.session.CommitText()
		} else {
			m.report(m.session.Rename(m.renameTarget, m.input.Value()))
		}
		m.mode = ModeCanvas
		m.input.Blur()
		return nil
	case tea.KeyEsc:
		if m.mode == ModeEditing {
			m.session.CancelText()
		}
		m.mode = ModeCanvas
		m.input.Blur()
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.mode == ModeEditing {
		m.session.SetDraft(m.input.Value())
	}
	return cmd
}

func (m *model) handleCanvasKey(msg tea.KeyMsg) tea.Cmd {
	s := m.session
	key := msg.String()
	if _, ok := arrowKeys[key]; !ok {
		m.sealNudge()
	}
	m.clearMessages()

	switch key {
	case "ctrl+c", "q":
		return m.confirm(ConfirmQuit)
	case "n":
		return m.confirm(ConfirmNewChart)
	case "?":
		m.help = true
	case "esc":
		m.zPanMode = false
		m.report(s.KeyDown(editor.KeyEscape, editor.Modifiers{}))
	case "z":
		m.zPanMode = !m.zPanMode
	case "tab":
		m.showLayers = !m.showLayers

	case "delete", "backspace", "x":
		if s.Primary() != "" {
			return m.confirm(ConfirmDeleteSelection)
		}
	case "ctrl+d":
		m.report(s.KeyDown(editor.KeyD, editor.Modifiers{Ctrl: true}))
	case "g", "ctrl+g":
		m.report(s.KeyDown(editor.KeyG, editor.Modifiers{Ctrl: true}))
	case "G":
		m.report(s.KeyDown(editor.KeyG, editor.Modifiers{Ctrl: true, Shift: true}))
	case "u", "ctrl+z":
		m.report(s.KeyDown(editor.KeyZ, editor.Modifiers{Ctrl: true}))
	case "U", "ctrl+y":
		m.report(s.KeyDown(editor.KeyZ, editor.Modifiers{Ctrl: true, Shift: true}))
	case "[", "]", "{", "}":
		if id := s.Primary(); id != "" {
			dir := map[string]editor.Direction{"[": editor.Down, "]": editor.Up, "{": editor.Bottom, "}": editor.Top}[key]
			m.report(s.Reorder(id, dir))
		}
	case "ctrl+l":
		if n, ok := s.GetNode(s.Primary()); ok {
			if n.Kind != editor.KindContainer {
				m.errorMessage = "only containers can be locked"
				return nil
			}
			m.report(s.ToggleLock(n.ID))
		}
	case "r":
		if n, ok := s.GetNode(s.Primary()); ok {
			m.mode = ModeRename
			m.renameTarget = n.ID
			return m.startInput("Name: ", n.Name)
		}
	case "c":
		m.report(m.copySelection())
	case "p":
		m.report(m.pasteClipboard())

	case "s":
		return m.startFileInput(FileOpSave)
	case "S":
		return m.startFileInput(FileOpSavePNG)
	case "T":
		return m.startFileInput(FileOpSaveVisualTXT)
	case "o":
		return m.startFileInput(FileOpOpen)

	case "0":
		m.report(s.SetTool(""))
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		m.report(s.SetTool(toolbox[key[0]-'1']))
	case "t":
		m.report(s.SetTool(nextTool(s.Tool())))

	default:
		m.handleNavigation(key)
	}
	return nil
}

// nextTool cycles through every creatable kind, ending at no tool.
func nextTool(k editor.Kind) editor.Kind {
	var kinds []editor.Kind
	for _, kind := range editor.Kinds {
		if kind != editor.KindGroup {
			kinds = append(kinds, kind)
		}
	}
	if k == "" {
		return kinds[0]
	}
	for i, kind := range kinds {
		if kind == k && i+1 < len(kinds) {
			return kinds[i+1]
		}
	}
	return ""
}

func (m *model) confirm(action ConfirmAction) tea.Cmd {
	if !m.config.Confirmations {
		return m.runConfirmed(action)
	}
	m.mode = ModeConfirm
	m.confirmAction = action
	return nil
}

func (m *model) handleConfirm(msg tea.KeyMsg) tea.Cmd {
	action := m.confirmAction
	switch msg.String() {
	case "y", "Y":
		m.mode = ModeCanvas
		return m.runConfirmed(action)
	case "n", "N", "esc":
		m.mode = ModeCanvas
		if action == ConfirmOverwriteFile {
			m.mode = ModeFileInput
		}
	}
	return nil
}

func (m *model) runConfirmed(action ConfirmAction) tea.Cmd {
	switch action {
	case ConfirmQuit:
		return tea.Quit
	case ConfirmDeleteSelection:
		m.report(m.session.KeyDown(editor.KeyDelete, editor.Modifiers{}))
	case ConfirmNewChart:
		m.report(m.session.LoadDocument(nil))
		m.filename = ""
	case ConfirmOverwriteFile:
		m.writeFile(m.pendingPath)
	}
	return nil
}

func (m *model) startFileInput(op FileOperation) tea.Cmd {
	m.mode = ModeFileInput
	m.fileOp = op
	m.errorMessage = ""
	name := strings.TrimSuffix(filepath.Base(m.filename), filepath.Ext(m.filename))
	if m.filename == "" {
		name = ""
	}
	cmd := m.startInput(fileOpLabel(op)+" filename: ", name)
	if op == FileOpOpen {
		m.scanDocumentFiles()
	}
	return cmd
}

func (m *model) handleFileInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = ModeCanvas
		m.errorMessage = ""
		m.input.Blur()
		return nil
	case tea.KeyUp, tea.KeyDown:
		if m.fileOp == FileOpOpen && len(m.fileList) > 0 {
			if msg.Type == tea.KeyUp && m.selectedFileIndex > 0 {
				m.selectedFileIndex--
			}
			if msg.Type == tea.KeyDown && m.selectedFileIndex < len(m.fileList)-1 {
				m.selectedFileIndex++
			}
			file := m.fileList[m.selectedFileIndex]
			m.input.SetValue(strings.TrimSuffix(file, filepath.Ext(file)))
			m.input.CursorEnd()
		}
		return nil
	case tea.KeyEnter:
		name := strings.TrimSpace(m.input.Value())
		if name == "" {
			m.errorMessage = "Filename cannot be empty"
			return nil
		}
		path := m.config.GetSavePath(withExtension(name, fileExtensions[m.fileOp]))
		if m.fileOp == FileOpOpen {
			m.openFile(path)
			return nil
		}
		if m.config.Confirmations && fileExists(path) {
			m.pendingPath = path
			return m.confirm(ConfirmOverwriteFile)
		}
		m.writeFile(path)
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *model) openFile(path string) {
	spec, err := docfile.Load(path)
	if err == nil {
		err = m.session.LoadDocument(spec.Components)
	}
	if err != nil {
		m.errorMessage = err.Error()
		return
	}
	m.filename = path
	m.mode = ModeCanvas
	m.input.Blur()
	m.successMessage = fmt.Sprintf("Opened %s (%d nodes)", filepath.Base(path), len(spec.Components))
}

func (m *model) writeFile(path string) {
	var err error
	switch m.fileOp {
	case FileOpSave:
		err = docfile.Save(path, m.session.Document())
	case FileOpSavePNG:
		err = m.exportPNG(path)
	case FileOpSaveVisualTXT:
		err = m.exportVisualTXT(path)
	}
	if err != nil {
		m.mode = ModeFileInput
		m.errorMessage = err.Error()
		return
	}
	if m.fileOp == FileOpSave {
		m.filename = path
	}
	m.mode = ModeCanvas
	m.input.Blur()
	m.successMessage = "Saved " + filepath.Base(path)
}

func (m *model) report(err error) {
	if err != nil {
		m.errorMessage = err.Error()
	}
}

func (m *model) clearMessages() {
	m.errorMessage = ""
	m.successMessage = ""
}

var (
	modeStyle    = lipgloss.NewStyle().Bold(true).Reverse(true).Padding(0, 1)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	hintStyle    = lipgloss.NewStyle().Faint(true)
)

func (m model) View() string {
	if m.help {
		return m.helpView()
	}

	var body string
	switch {
	case m.mode == ModeFileInput && m.fileOp == FileOpOpen:
		body = strings.Join(m.fileListLines(), "\n")
	case m.showLayers:
		grid := render.Grid(m.session.Document(), m.canvasView(), render.SessionOverlay(m.session))
		body = lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(grid, "\n"), m.layersPanel())
	default:
		grid := render.Grid(m.session.Document(), m.view, render.SessionOverlay(m.session))
		body = strings.Join(grid, "\n")
	}
	return body + "\n" + m.statusLine()
}

// canvasView is the part of the view left to the canvas grid.
func (m model) canvasView() render.View {
	v := m.view
	if m.showLayers {
		v.Width = max(v.Width-layersWidth, 1)
	}
	return v
}

// layersPanel lists nodes front to back, indented by group depth.
func (m model) layersPanel() string {
	doc := m.session.Document()
	selection := m.session.GetSelection()
	lines := []string{lipgloss.NewStyle().Bold(true).Render("Layers")}
	order := doc.PaintOrder()
	for i := len(order) - 1; i >= 0 && len(lines) < m.view.Height; i-- {
		n := order[i]
		mark := " "
		switch {
		case len(selection) > 0 && selection[len(selection)-1] == n.ID:
			mark = "*"
		case lo.Contains(selection, n.ID):
			mark = "+"
		}
		line := mark + strings.Repeat("  ", len(doc.Ancestors(n.ID))) + n.Name
		if n.Locked {
			line += " (locked)"
		}
		lines = append(lines, line)
	}
	return lipgloss.NewStyle().
		Width(layersWidth - 1).
		Height(m.view.Height).
		MaxWidth(layersWidth).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		Render(strings.Join(lines, "\n"))
}

func (m model) fileListLines() []string {
	width := max(m.view.Width, 1)
	lines := []string{"Select a saved document:", strings.Repeat("─", width)}
	if len(m.fileList) == 0 {
		lines = append(lines, "(No .json files found)")
	}

	maxFiles := max(m.view.Height-len(lines), 1)
	startIdx := 0
	if m.selectedFileIndex >= maxFiles {
		startIdx = m.selectedFileIndex - maxFiles + 1
	}
	endIdx := min(startIdx+maxFiles, len(m.fileList))
	for i := startIdx; i < endIdx; i++ {
		if i == m.selectedFileIndex {
			lines = append(lines, "> "+m.fileList[i]+" <")
		} else {
			lines = append(lines, "  "+m.fileList[i])
		}
	}
	for len(lines) < m.view.Height {
		lines = append(lines, "")
	}
	return lines
}

func (m model) statusLine() string {
	status := modeStyle.Render(m.modeString())
	switch m.mode {
	case ModeEditing, ModeRename:
		status += " " + m.input.View() + hintStyle.Render("  Enter=save, Esc=cancel")
	case ModeFileInput:
		status += " " + m.input.View()
		if m.fileOp == FileOpOpen {
			status += hintStyle.Render("  ↑/↓=navigate, Enter=confirm, Esc=cancel")
		} else {
			status += hintStyle.Render("  Enter=confirm, Esc=cancel")
		}
	case ModeConfirm:
		status += " " + m.confirmMessage()
	default:
		if tool := m.session.Tool(); tool != "" {
			status += fmt.Sprintf(" Tool: %s", tool)
			if i := toolIndex(tool); i > 0 {
				status += fmt.Sprintf(" (%d)", i)
			}
		}
		if sel := m.session.GetSelection(); len(sel) > 0 {
			n, _ := m.session.GetNode(sel[len(sel)-1])
			status += fmt.Sprintf(" | Selected: %s", n.Name)
			if len(sel) > 1 {
				status += fmt.Sprintf(" +%d", len(sel)-1)
			}
		}
		if m.filename != "" {
			status += " | " + filepath.Base(m.filename)
		}
	}

	switch {
	case m.errorMessage != "":
		status += " | " + errorStyle.Render("ERROR: "+m.errorMessage)
	case m.successMessage != "":
		status += " | " + successStyle.Render(m.successMessage)
	case m.mode == ModeCanvas:
		status += hintStyle.Render(" | ? for help | q to quit")
	}
	return status
}

func (m model) confirmMessage() string {
	switch m.confirmAction {
	case ConfirmDeleteSelection:
		return fmt.Sprintf("Delete %d selected nodes? (y/n)", len(m.session.GetSelection()))
	case ConfirmQuit:
		return "Quit uicanvas? (y/n)"
	case ConfirmNewChart:
		return "Start a new canvas? Unsaved changes will be lost. (y/n)"
	case ConfirmOverwriteFile:
		return fmt.Sprintf("File %s already exists. Overwrite? (y/n)", filepath.Base(m.pendingPath))
	}
	return ""
}

func (m model) modeString() string {
	switch m.mode {
	case ModeEditing:
		return "EDIT"
	case ModeRename:
		return "RENAME"
	case ModeFileInput:
		return "FILE"
	case ModeConfirm:
		return "CONFIRM"
	}
	if m.zPanMode {
		return "PAN"
	}
	if phase := m.session.Gesture().Phase; phase != editor.Idle {
		return strings.ToUpper(phase.String())
	}
	return "NORMAL"
}

func fileOpLabel(op FileOperation) string {
	switch op {
	case FileOpSave:
		return "Save"
	case FileOpSavePNG:
		return "Export PNG"
	case FileOpSaveVisualTXT:
		return "Export TXT"
	case FileOpOpen:
		return "Open"
	}
	return ""
}
