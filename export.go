package main

import (
	"uicanvas/render"
)

// exportVisualTXT writes the canvas as it appears, without selection marks.
func (m *model) exportVisualTXT(filename string) error {
	v := m.view
	if v.Width < 1 {
		v.Width = 80
	}
	if v.Height < 1 {
		v.Height = 24
	}
	return render.ExportTXT(filename, render.Grid(m.session.Document(), v, render.Overlay{}))
}

func (m *model) exportPNG(filename string) error {
	opts := render.DefaultImageOptions
	opts.FontSize = m.config.CellHeight * 0.75
	return render.ExportPNG(m.session.Document(), filename, opts)
}
