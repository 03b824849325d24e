// Package console drives an editor session from line commands, either
// interactively through readline or from a script file.
package console

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/samber/lo"

	"uicanvas/editor"
	"uicanvas/render"
)

// ErrQuit is returned by the quit command.
var ErrQuit = errors.New("quit requested")

type Console struct {
	Session *editor.Session
	Out     io.Writer
	View    render.View

	// Application and screen descriptions carried into design spec saves.
	App, Screen string
}

func New(s *editor.Session, out io.Writer) *Console {
	return &Console{
		Session: s,
		Out:     out,
		View:    render.View{Width: 80, Height: 24, CellWidth: 8, CellHeight: 16},
	}
}

// ParseArgs splits a command line on spaces, keeping double-quoted runs
// together.
func ParseArgs(input string) []string {
	var args []string
	var currentArg strings.Builder
	inQuotes, quoted := false, false

	for _, char := range input {
		switch char {
		case '"':
			inQuotes = !inQuotes
			quoted = true
		case ' ', '\t':
			if inQuotes {
				currentArg.WriteRune(char)
				continue
			}
			if currentArg.Len() > 0 || quoted {
				args = append(args, currentArg.String())
				currentArg.Reset()
			}
			quoted = false
		default:
			currentArg.WriteRune(char)
		}
	}
	if currentArg.Len() > 0 || quoted {
		args = append(args, currentArg.String())
	}
	return args
}

// Execute runs one command line. Blank lines and # comments do nothing.
func (c *Console) Execute(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	return c.ExecuteCommand(ParseArgs(line))
}

// ExecuteScript runs every line of r, stopping at the first error.
func (c *Console) ExecuteScript(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := c.Execute(scanner.Text()); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	return scanner.Err()
}

// ExecuteFile runs a script file.
func (c *Console) ExecuteFile(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	return c.ExecuteScript(file)
}

// Run reads commands from rl until quit or EOF. Command errors are printed
// and the loop continues.
func (c *Console) Run(rl *readline.Instance) error {
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			fmt.Fprintln(c.Out, "Use 'quit' to exit.")
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := c.Execute(line); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			fmt.Fprintln(c.Out, "Error:", err)
		}
		rl.SetPrompt(c.Prompt())
	}
}

// Prompt shows the interaction phase and the armed tool.
func (c *Console) Prompt() string {
	g := c.Session.Gesture()
	if tool := c.Session.Tool(); tool != "" {
		return fmt.Sprintf("uicanvas [%s %s]> ", g.Phase, tool)
	}
	return fmt.Sprintf("uicanvas [%s]> ", g.Phase)
}

// NewReadline builds the interactive line reader with command completion.
func NewReadline(historyFile string) (*readline.Instance, error) {
	kinds := func(string) []string {
		return lo.Map(editor.Kinds, func(k editor.Kind, _ int) string { return string(k) })
	}
	items := []readline.PrefixCompleterInterface{
		readline.PcItem("tool", readline.PcItemDynamic(kinds)),
		readline.PcItem("create", readline.PcItemDynamic(kinds)),
		readline.PcItem("reorder",
			readline.PcItem("up"), readline.PcItem("down"),
			readline.PcItem("top"), readline.PcItem("bottom")),
	}
	for _, name := range commandNames {
		if name != "tool" && name != "create" && name != "reorder" {
			items = append(items, readline.PcItem(name))
		}
	}
	return readline.NewEx(&readline.Config{
		Prompt:          "uicanvas [idle]> ",
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
		AutoComplete:    readline.NewPrefixCompleter(items...),
	})
}

// resolve accepts a node id or, failing that, a node name.
func (c *Console) resolve(ref string) (string, error) {
	doc := c.Session.Document()
	if doc.Index(ref) >= 0 {
		return ref, nil
	}
	if n, ok := lo.Find(doc, func(n editor.Node) bool { return n.Name == ref }); ok {
		return n.ID, nil
	}
	return "", fmt.Errorf("no node %q", ref)
}

// target resolves args[0], or the primary selection when args is empty.
func (c *Console) target(args []string) (string, error) {
	if len(args) > 0 {
		return c.resolve(args[0])
	}
	if id := c.Session.Primary(); id != "" {
		return id, nil
	}
	return "", fmt.Errorf("nothing selected")
}

func parseFloats(args []string, n int) ([]float64, error) {
	if len(args) < n {
		return nil, fmt.Errorf("need %d numbers", n)
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		v, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			return nil, fmt.Errorf("bad number %q", args[i])
		}
		out[i] = v
	}
	return out, nil
}

func parsePoint(args []string) (editor.Point, error) {
	v, err := parseFloats(args, 2)
	if err != nil {
		return editor.Point{}, err
	}
	return editor.Point{X: v[0], Y: v[1]}, nil
}

// parseValue reads a JSON literal, falling back to the raw string.
func parseValue(s string) any {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err == nil {
		return v
	}
	return s
}
