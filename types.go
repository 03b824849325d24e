package main

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"

	"uicanvas/editor"
	"uicanvas/render"
)

type model struct {
	session *editor.Session
	config  *Config
	view    render.View

	width      int
	height     int
	mode       Mode
	help       bool
	helpScroll int
	zPanMode   bool
	showLayers bool

	input             textinput.Model
	filename          string // current document file
	fileOp            FileOperation
	fileList          []string
	selectedFileIndex int
	pendingPath       string
	renameTarget      string
	confirmAction     ConfirmAction

	// Double clicks are detected from press timing; the terminal reports
	// single presses only.
	lastClick     time.Time
	lastClickCell [2]int
	doubleClick   bool
	lastArrow     editor.Key

	errorMessage   string
	successMessage string

	now func() time.Time
}
