package main

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/samber/lo"

	"uicanvas/docfile"
	"uicanvas/editor"
)

// copySelection puts the selected root nodes and their subtrees on the
// system clipboard as a JSON node array.
func (m *model) copySelection() error {
	doc := m.session.Document()
	selected := m.session.GetSelection()
	var fragment []editor.Node
	for _, n := range doc {
		root, ok := doc.RootAncestor(n.ID)
		if ok && lo.Contains(selected, root.ID) {
			fragment = append(fragment, n)
		}
	}
	if len(fragment) == 0 {
		return fmt.Errorf("nothing selected")
	}
	var buf bytes.Buffer
	if err := docfile.Encode(&buf, fragment); err != nil {
		return err
	}
	if err := clipboard.WriteAll(buf.String()); err != nil {
		return err
	}
	m.successMessage = fmt.Sprintf("Copied %d nodes", len(fragment))
	return nil
}

func (m *model) pasteClipboard() error {
	text, err := readClipboardText()
	if err != nil {
		return err
	}
	spec, err := docfile.Decode(strings.NewReader(cleanClipboardText(text)))
	if err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	roots, err := m.session.Paste(spec.Components)
	if err != nil {
		return err
	}
	m.successMessage = fmt.Sprintf("Pasted %d nodes", len(roots))
	return nil
}

func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}

// cleanClipboardText drops control characters other than whitespace and
// normalizes line endings.
func cleanClipboardText(text string) string {
	var result strings.Builder
	result.Grow(len(text))
	for _, r := range text {
		if r == '\n' || r == '\r' || r == '\t' || r >= 32 {
			result.WriteRune(r)
		}
	}
	normalized := strings.ReplaceAll(result.String(), "\r\n", "\n")
	return strings.ReplaceAll(normalized, "\r", "\n")
}

// scanDocumentFiles lists .json files in the save directory, or the
// working directory when none is configured.
func (m *model) scanDocumentFiles() {
	m.fileList = nil
	m.selectedFileIndex = -1

	dir := m.config.SaveDirectory
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return
		}
		dir = wd
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(strings.ToLower(entry.Name()), ".json") {
			m.fileList = append(m.fileList, entry.Name())
		}
	}
	sort.Strings(m.fileList)

	if len(m.fileList) > 0 {
		m.selectedFileIndex = 0
		m.input.SetValue(strings.TrimSuffix(m.fileList[0], filepath.Ext(m.fileList[0])))
		m.input.CursorEnd()
	}
}

// withExtension appends ext unless name already carries an extension.
func withExtension(name, ext string) string {
	if filepath.Ext(name) != "" {
		return name
	}
	return name + ext
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// toolIndex returns the 1-based toolbox slot of k, or 0.
func toolIndex(k editor.Kind) int {
	_, i, ok := lo.FindIndexOf(toolbox, func(t editor.Kind) bool { return t == k })
	if !ok {
		return 0
	}
	return i + 1
}
