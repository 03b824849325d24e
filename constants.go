package main

import (
	"time"

	"uicanvas/editor"
)

type Mode int

const (
	ModeCanvas Mode = iota
	ModeEditing
	ModeRename
	ModeFileInput
	ModeConfirm
)

type FileOperation int

const (
	FileOpSave FileOperation = iota
	FileOpSavePNG
	FileOpSaveVisualTXT
	FileOpOpen
)

type ConfirmAction int

const (
	ConfirmDeleteSelection ConfirmAction = iota
	ConfirmQuit
	ConfirmNewChart
	ConfirmOverwriteFile
)

const (
	doubleClickInterval = 400 * time.Millisecond
	statusHeight        = 1
	panSpeed            = 4
	layersWidth         = 28
)

// toolbox maps the number keys 1-9 to creation tools.
var toolbox = []editor.Kind{
	editor.KindButton,
	editor.KindText,
	editor.KindInput,
	editor.KindCheckbox,
	editor.KindDropdown,
	editor.KindContainer,
	editor.KindImage,
	editor.KindSlider,
	editor.KindBarChart,
}

// fileExtensions is the default suffix per file operation.
var fileExtensions = map[FileOperation]string{
	FileOpSave:          ".json",
	FileOpOpen:          ".json",
	FileOpSavePNG:       ".png",
	FileOpSaveVisualTXT: ".txt",
}
