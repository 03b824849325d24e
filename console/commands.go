package console

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"uicanvas/docfile"
	"uicanvas/editor"
	"uicanvas/render"
)

var commandNames = []string{
	"tool", "down", "move", "up", "dbl", "text", "commit", "cancel", "key", "keyup",
	"create", "select", "toggle", "delete", "dup", "group", "ungroup", "reorder",
	"rename", "describe", "lock", "prop", "style", "undo", "redo",
	"ls", "tree", "show", "save", "savespec", "load", "png", "thumb", "txt", "help", "quit",
}

var keyNames = map[string]editor.Key{
	"delete":    editor.KeyDelete,
	"backspace": editor.KeyBackspace,
	"up":        editor.KeyUp,
	"down":      editor.KeyDown,
	"left":      editor.KeyLeft,
	"right":     editor.KeyRight,
	"d":         editor.KeyD,
	"g":         editor.KeyG,
	"z":         editor.KeyZ,
	"escape":    editor.KeyEscape,
	"esc":       editor.KeyEscape,
}

// ExecuteCommand dispatches one parsed command.
func (c *Console) ExecuteCommand(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no command provided")
	}
	s := c.Session
	cmd, rest := strings.ToLower(args[0]), args[1:]

	switch cmd {
	case "tool":
		if len(rest) == 0 || rest[0] == "none" {
			return s.SetTool("")
		}
		k, err := editor.ParseKind(rest[0])
		if err != nil {
			return err
		}
		return s.SetTool(k)

	case "down":
		p, err := parsePoint(rest)
		if err != nil {
			return err
		}
		toggle := len(rest) > 2 && rest[2] == "toggle"
		s.PointerDown(editor.Pointer{Pos: p, Toggle: toggle})
	case "move":
		p, err := parsePoint(rest)
		if err != nil {
			return err
		}
		s.PointerMove(p)
	case "up":
		p, err := parsePoint(rest)
		if err != nil {
			return err
		}
		s.PointerUp(p)
	case "dbl":
		p, err := parsePoint(rest)
		if err != nil {
			return err
		}
		s.DoubleClick(p)
	case "text":
		s.SetDraft(strings.Join(rest, " "))
	case "commit":
		s.CommitText()
	case "cancel":
		s.CancelGesture()
		s.CancelText()

	case "key":
		if len(rest) == 0 {
			return fmt.Errorf("usage: key <name> [ctrl] [shift]")
		}
		k, ok := keyNames[strings.ToLower(rest[0])]
		if !ok {
			return fmt.Errorf("unknown key %q", rest[0])
		}
		var m editor.Modifiers
		for _, mod := range rest[1:] {
			switch strings.ToLower(mod) {
			case "ctrl", "cmd":
				m.Ctrl = true
			case "shift":
				m.Shift = true
			default:
				return fmt.Errorf("unknown modifier %q", mod)
			}
		}
		return s.KeyDown(k, m)
	case "keyup":
		if len(rest) == 0 {
			return fmt.Errorf("usage: keyup <name>")
		}
		k, ok := keyNames[strings.ToLower(rest[0])]
		if !ok {
			return fmt.Errorf("unknown key %q", rest[0])
		}
		s.KeyUp(k)

	case "create":
		if len(rest) < 5 {
			return fmt.Errorf("usage: create <kind> <x> <y> <width> <height>")
		}
		k, err := editor.ParseKind(rest[0])
		if err != nil {
			return err
		}
		v, err := parseFloats(rest[1:], 4)
		if err != nil {
			return err
		}
		id, err := s.CreateNode(k, editor.Point{X: v[0], Y: v[1]}, editor.Size{Width: v[2], Height: v[3]})
		if err != nil {
			return err
		}
		fmt.Fprintln(c.Out, id)
	case "select":
		ids := make([]string, 0, len(rest))
		for _, ref := range rest {
			id, err := c.resolve(ref)
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
		s.SetSelection(ids...)
	case "toggle":
		id, err := c.target(rest)
		if err != nil {
			return err
		}
		s.ToggleMember(id)

	case "delete":
		if len(rest) == 0 {
			return c.forSelection(s.Delete)
		}
		id, err := c.resolve(rest[0])
		if err != nil {
			return err
		}
		return s.Delete(id)
	case "dup":
		id, err := c.target(rest)
		if err != nil {
			return err
		}
		clone, err := s.Duplicate(id)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.Out, clone)
	case "group":
		ids := s.GetSelection()
		if len(rest) > 0 {
			ids = make([]string, 0, len(rest))
			for _, ref := range rest {
				id, err := c.resolve(ref)
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}
		}
		g, err := s.Group(ids)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.Out, g)
	case "ungroup":
		id, err := c.target(rest)
		if err != nil {
			return err
		}
		_, err = s.Ungroup(id)
		return err
	case "reorder":
		if len(rest) == 0 {
			return fmt.Errorf("usage: reorder <up|down|top|bottom> [node]")
		}
		dir, err := editor.ParseDirection(rest[0])
		if err != nil {
			return err
		}
		id, err := c.target(rest[1:])
		if err != nil {
			return err
		}
		return s.Reorder(id, dir)

	case "rename", "describe":
		if len(rest) < 2 {
			return fmt.Errorf("usage: %s <node> <text>", cmd)
		}
		id, err := c.resolve(rest[0])
		if err != nil {
			return err
		}
		text := strings.Join(rest[1:], " ")
		if cmd == "rename" {
			return s.Rename(id, text)
		}
		return s.SetDescription(id, text)
	case "lock":
		id, err := c.target(rest)
		if err != nil {
			return err
		}
		if n, _ := s.GetNode(id); n.Kind != editor.KindContainer {
			return fmt.Errorf("only containers can be locked")
		}
		return s.ToggleLock(id)
	case "prop", "style":
		if len(rest) < 3 {
			return fmt.Errorf("usage: %s <node> <key> <value>", cmd)
		}
		id, err := c.resolve(rest[0])
		if err != nil {
			return err
		}
		partial := map[string]any{rest[1]: parseValue(strings.Join(rest[2:], " "))}
		if cmd == "prop" {
			return s.UpdateProperties(id, partial)
		}
		return s.UpdateStyle(id, partial)

	case "undo":
		if !s.Undo() {
			fmt.Fprintln(c.Out, "nothing to undo")
		}
	case "redo":
		if !s.Redo() {
			fmt.Fprintln(c.Out, "nothing to redo")
		}

	case "ls":
		c.list(s.ListRootNodes(), 0)
	case "tree":
		c.tree()
	case "show":
		for _, line := range c.grid() {
			fmt.Fprintln(c.Out, strings.TrimRight(line, " "))
		}

	case "save":
		if len(rest) == 0 {
			return fmt.Errorf("usage: save <file>")
		}
		return docfile.Save(rest[0], s.Document())
	case "savespec":
		if len(rest) < 3 {
			return fmt.Errorf("usage: savespec <file> <app name> <app description>")
		}
		return docfile.SaveSpec(rest[0], docfile.Spec{
			Application: docfile.Info{Name: rest[1], Description: strings.Join(rest[2:], " ")},
			Screen:      docfile.Info{Name: docfile.DefaultScreenName, Description: c.Screen},
			Components:  s.Document(),
		})
	case "load":
		if len(rest) == 0 {
			return fmt.Errorf("usage: load <file>")
		}
		spec, err := docfile.Load(rest[0])
		if err != nil {
			return err
		}
		if err := s.LoadDocument(spec.Components); err != nil {
			return err
		}
		c.App, c.Screen = spec.Application.Name, spec.Screen.Description
		fmt.Fprintf(c.Out, "loaded %d nodes\n", len(spec.Components))
	case "png":
		if len(rest) == 0 {
			return fmt.Errorf("usage: png <file> [scale]")
		}
		opts := render.DefaultImageOptions
		if len(rest) > 1 {
			scale, err := strconv.ParseFloat(rest[1], 64)
			if err != nil {
				return fmt.Errorf("bad scale %q", rest[1])
			}
			opts.Scale = scale
		}
		return render.ExportPNG(s.Document(), rest[0], opts)
	case "thumb":
		if len(rest) < 3 {
			return fmt.Errorf("usage: thumb <file> <width> <height>")
		}
		v, err := parseFloats(rest[1:], 2)
		if err != nil {
			return err
		}
		return render.ExportThumbnail(s.Document(), rest[0], int(v[0]), int(v[1]))
	case "txt":
		if len(rest) == 0 {
			return fmt.Errorf("usage: txt <file>")
		}
		return render.ExportTXT(rest[0], c.grid())

	case "help":
		fmt.Fprintln(c.Out, "commands:", strings.Join(commandNames, " "))
		fmt.Fprintln(c.Out, "kinds:", strings.Join(kindsByName(), " "))
	case "quit", "exit":
		return ErrQuit
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
	return nil
}

func (c *Console) forSelection(fn func(string) error) error {
	for _, id := range c.Session.GetSelection() {
		if _, ok := c.Session.GetNode(id); !ok {
			continue
		}
		if err := fn(id); err != nil {
			return err
		}
	}
	return nil
}

func (c *Console) grid() []string {
	return render.Grid(c.Session.Document(), c.View, render.SessionOverlay(c.Session))
}

func (c *Console) describe(n editor.Node) string {
	var b strings.Builder
	mark := " "
	if sel := c.Session.GetSelection(); len(sel) > 0 && sel[len(sel)-1] == n.ID {
		mark = "*"
	} else if lo.Contains(sel, n.ID) {
		mark = "+"
	}
	fmt.Fprintf(&b, "%s %s %-9s %q at (%g, %g) size %gx%g", mark, n.ID, n.Kind, n.Name,
		n.Position.X, n.Position.Y, n.Size.Width, n.Size.Height)
	if n.Locked {
		b.WriteString(" locked")
	}
	return b.String()
}

func (c *Console) list(nodes []editor.Node, depth int) {
	for _, n := range nodes {
		fmt.Fprintf(c.Out, "%s%s\n", strings.Repeat("  ", depth), c.describe(n))
	}
}

func (c *Console) tree() {
	doc := c.Session.Document()
	for _, n := range doc.PaintOrder() {
		depth := len(doc.Ancestors(n.ID))
		fmt.Fprintf(c.Out, "%s%s\n", strings.Repeat("  ", depth), c.describe(n))
	}
	if len(doc) > 0 {
		return
	}
	fmt.Fprintln(c.Out, "(empty)")
}

// kindsByName lists kinds alphabetically for help output.
func kindsByName() []string {
	names := make([]string, len(editor.Kinds))
	for i, k := range editor.Kinds {
		names[i] = string(k)
	}
	sort.Strings(names)
	return names
}
