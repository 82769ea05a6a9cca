package main

import (
	"encoding/hex"
	"fmt"
	"log"
	"path/filepath"
	"runtime"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const cellWidth = 170

// gridView is one table widget plus the selection made in it
type gridView struct {
	target Target
	table  *widget.Table
	cursor Position
	anchor *Position
	// highlighted cells, kept by position
	marks map[Position]bool
}

// selection returns the range between the anchor and the cursor, or just the
// cursor cell when no anchor is set
func (v *gridView) selection() Range {
	if v.anchor == nil {
		return CellRange(v.cursor)
	}
	return NewRange(*v.anchor, v.cursor)
}

// GUI represents the GUI application
type GUI struct {
	app       fyne.App
	window    fyne.Window
	bench     *Workbench
	views     [2]*gridView
	active    Target
	status    binding.String
	gadgetOut *widget.Label

	blockSelect    *widget.Select
	encodingSelect *widget.Select
	modeSelect     *widget.Select
	cipherSelect   *widget.Select

	initialFile string
}

// NewGUI creates a new GUI
func NewGUI(initialFile string) *GUI {
	a := app.New()
	a.Settings().SetTheme(theme.DarkTheme())
	return newGUI(a, initialFile)
}

func newGUI(a fyne.App, initialFile string) *GUI {
	window := a.NewWindow("Block Gadget Workbench")
	window.Resize(fyne.NewSize(1000, 650))

	g := &GUI{
		app:         a,
		window:      window,
		bench:       NewWorkbench(DefaultSession(), a.Clipboard()),
		status:      binding.NewString(),
		initialFile: initialFile,
	}
	g.bench.SetUpdateCallback(g.refresh)
	return g
}

// Run builds the window and blocks until it is closed
func (g *GUI) Run() {
	g.build()
	g.window.ShowAndRun()
}

// build lays out the window content and loads the initial file
func (g *GUI) build() {
	g.views[CipherGrid] = g.newGridView(CipherGrid)
	g.views[PlainGrid] = g.newGridView(PlainGrid)

	g.status.Set("Welcome to the Block Gadget Workbench")
	statusBar := widget.NewLabelWithData(g.status)
	statusBar.Truncation = fyne.TextTruncateEllipsis

	g.gadgetOut = widget.NewLabel("No gadget recovered")
	g.gadgetOut.Wrapping = fyne.TextWrapBreak

	g.window.SetMainMenu(g.buildMenu())
	g.addShortcuts()

	grids := container.NewVSplit(
		container.NewBorder(widget.NewLabel("Ciphertext"), nil, nil, nil, g.views[CipherGrid].table),
		container.NewBorder(widget.NewLabel("Plaintext"), nil, nil, nil, g.views[PlainGrid].table),
	)

	content := container.NewBorder(
		nil,
		container.NewVBox(widget.NewSeparator(), g.gadgetOut, statusBar),
		g.buildOptions(),
		nil,
		grids,
	)
	g.window.SetContent(content)

	if g.initialFile != "" {
		if err := g.bench.Load(g.initialFile); err != nil {
			g.showError(err)
		}
	}
}

func (g *GUI) newGridView(t Target) *gridView {
	v := &gridView{target: t, marks: map[Position]bool{}}
	v.table = widget.NewTable(
		func() (int, int) {
			grid := g.bench.Grid(t)
			return grid.Rows(), grid.Columns()
		},
		func() fyne.CanvasObject {
			label := widget.NewLabel("")
			label.Truncation = fyne.TextTruncateEllipsis
			return label
		},
		func(id widget.TableCellID, obj fyne.CanvasObject) {
			label := obj.(*widget.Label)
			text, _, err := g.bench.Grid(t).Cell(id.Row, id.Col)
			if err != nil {
				text = ""
			}
			label.Importance = widget.MediumImportance
			if IsPlaceholder(text) {
				label.Importance = widget.LowImportance
			}
			if v.marks[Position{Row: id.Row, Col: id.Col}] {
				label.Importance = widget.WarningImportance
			}
			label.TextStyle.Bold = g.active == t && v.anchor != nil && rangeContains(v.selection(), id.Row, id.Col)
			label.SetText(text)
		},
	)
	v.table.ShowHeaderRow = true
	v.table.ShowHeaderColumn = true
	v.table.OnSelected = func(id widget.TableCellID) {
		g.active = t
		v.cursor = Position{Row: id.Row, Col: id.Col}
		g.setStatus(fmt.Sprintf("%v cell %v", t, v.cursor))
		if v.anchor != nil {
			v.table.Refresh()
		}
	}
	g.resizeColumns(v)
	return v
}

func rangeContains(r Range, row, col int) bool {
	return row >= r.Top && row <= r.Bottom && col >= r.Left && col <= r.Right
}

func (g *GUI) resizeColumns(v *gridView) {
	for i, n := 0, g.bench.Grid(v.target).Columns(); i < n; i++ {
		v.table.SetColumnWidth(i, cellWidth)
	}
}

// buildOptions creates the selectors on the left side of the window
func (g *GUI) buildOptions() fyne.CanvasObject {
	g.modeSelect = widget.NewSelect(enumNames(CipherModes), nil)
	g.modeSelect.SetSelected(g.bench.Session().Mode.String())
	g.modeSelect.OnChanged = func(s string) {
		m, err := ParseCipherMode(s)
		if err == nil {
			err = g.bench.SetMode(m)
		}
		if err != nil {
			g.showError(err)
		}
	}

	g.cipherSelect = widget.NewSelect(enumNames(Ciphers), nil)
	g.cipherSelect.SetSelected(g.bench.Session().Cipher.String())
	g.cipherSelect.OnChanged = func(s string) {
		c, err := ParseCipher(s)
		if err != nil {
			g.showError(err)
			return
		}
		suggested, err := g.bench.SetCipher(c)
		if err != nil {
			g.showError(err)
			return
		}
		if suggested != g.bench.Session().BlockSize {
			g.setStatus(fmt.Sprintf("%v uses %d-bit blocks", c, int(suggested)))
		}
	}

	g.blockSelect = widget.NewSelect(enumNames(BlockSizes), nil)
	g.blockSelect.SetSelected(g.bench.Session().BlockSize.String())
	g.blockSelect.OnChanged = func(s string) {
		bs, err := ParseBlockSize(s)
		if err == nil {
			err = g.bench.SetBlockSize(bs)
		}
		if err != nil {
			g.showError(err)
			g.syncSelectors()
		}
	}

	g.encodingSelect = widget.NewSelect(enumNames(Encodings), nil)
	g.encodingSelect.SetSelected(g.bench.Encoding().String())
	g.encodingSelect.OnChanged = func(s string) {
		enc, err := ParseEncoding(s)
		if err == nil {
			err = g.bench.SetEncoding(enc, g.views[CipherGrid].selection().Origin())
		}
		if err != nil {
			g.showError(err)
			g.syncSelectors()
		}
	}

	findButton := widget.NewButtonWithIcon("Find Gadget", theme.SearchIcon(), g.findGadget)
	forgeButton := widget.NewButtonWithIcon("Forge Block", theme.ContentRedoIcon(), g.forgeBlock)

	return container.NewVBox(
		widget.NewLabel("Select Gadget:"), g.modeSelect,
		widget.NewLabel("Select Cipher:"), g.cipherSelect,
		widget.NewLabel("Select Blocksize:"), g.blockSelect,
		widget.NewLabel("Select Encoding:"), g.encodingSelect,
		widget.NewSeparator(),
		findButton,
		forgeButton,
	)
}

// syncSelectors puts the selectors back to the workbench state without
// firing their callbacks
func (g *GUI) syncSelectors() {
	for _, s := range []struct {
		sel   *widget.Select
		value string
	}{
		{g.blockSelect, g.bench.Session().BlockSize.String()},
		{g.encodingSelect, g.bench.Encoding().String()},
		{g.modeSelect, g.bench.Session().Mode.String()},
		{g.cipherSelect, g.bench.Session().Cipher.String()},
	} {
		changed := s.sel.OnChanged
		s.sel.OnChanged = nil
		s.sel.SetSelected(s.value)
		s.sel.OnChanged = changed
	}
}

func enumNames[T fmt.Stringer](values []T) []string {
	names := make([]string, len(values))
	for i, v := range values {
		names[i] = v.String()
	}
	return names
}

func (g *GUI) buildMenu() *fyne.MainMenu {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Load...", g.openFile),
		fyne.NewMenuItem("Save...", g.saveFile),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Load CSV...", g.openCSV),
		fyne.NewMenuItem("Save CSV...", g.saveCSV),
	)
	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Edit cell", g.editCell),
		fyne.NewMenuItem("Mark selection start", g.markAnchor),
		fyne.NewMenuItem("Highlight cell", g.toggleHighlight),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Copy", g.copySelection),
		fyne.NewMenuItem("Extract", g.extractSelection),
		fyne.NewMenuItem("Paste", g.paste),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Add row", func() {
			g.report(g.bench.InsertRow(g.activeView().cursor.Row))
		}),
		fyne.NewMenuItem("Add column", func() {
			g.report(g.bench.InsertColumn(g.activeView().cursor.Col))
		}),
		fyne.NewMenuItem("Delete row", func() {
			g.report(g.bench.RemoveRow(g.active, g.activeView().cursor.Row))
		}),
		fyne.NewMenuItem("Delete column", func() {
			g.report(g.bench.RemoveColumn(g.active, g.activeView().cursor.Col))
		}),
	)
	viewMenu := fyne.NewMenu("View")
	for _, enc := range Encodings {
		enc := enc
		viewMenu.Items = append(viewMenu.Items, fyne.NewMenuItem("Convert to "+enc.String(), func() {
			g.encodingSelect.SetSelected(enc.String())
		}))
	}
	return fyne.NewMainMenu(fileMenu, editMenu, viewMenu)
}

func (g *GUI) addShortcuts() {
	bind := func(key fyne.KeyName, fn func()) {
		g.window.Canvas().AddShortcut(
			&desktop.CustomShortcut{KeyName: key, Modifier: fyne.KeyModifierShortcutDefault},
			func(fyne.Shortcut) { fn() },
		)
	}
	bind(fyne.KeyC, g.copySelection)
	bind(fyne.KeyX, g.extractSelection)
	bind(fyne.KeyV, g.paste)
	bind(fyne.KeyE, g.editCell)
	bind(fyne.KeyM, g.markAnchor)
	bind(fyne.KeyG, g.findGadget)
	bind(fyne.KeyH, g.toggleHighlight)
}

func (g *GUI) activeView() *gridView {
	return g.views[g.active]
}

// markAnchor fixes one corner of the range; the selected cell is the other
func (g *GUI) markAnchor() {
	v := g.activeView()
	anchor := v.cursor
	v.anchor = &anchor
	g.setStatus(fmt.Sprintf("Selection starts at %v", anchor))
	v.table.Refresh()
}

// toggleHighlight marks or unmarks the selected cell
func (g *GUI) toggleHighlight() {
	v := g.activeView()
	if v.marks[v.cursor] {
		delete(v.marks, v.cursor)
	} else {
		v.marks[v.cursor] = true
	}
	v.table.Refresh()
}

func (g *GUI) clearAnchor() {
	v := g.activeView()
	if v.anchor != nil {
		v.anchor = nil
		v.table.Refresh()
	}
}

func (g *GUI) copySelection() {
	g.report(g.bench.Copy(g.active, g.activeView().selection()))
	g.clearAnchor()
}

func (g *GUI) extractSelection() {
	g.report(g.bench.Extract(g.active, g.activeView().selection()))
	g.clearAnchor()
}

func (g *GUI) paste() {
	g.report(g.bench.Paste(g.active, g.activeView().selection().Origin()))
	g.clearAnchor()
}

func (g *GUI) editCell() {
	v := g.activeView()
	p := v.cursor
	text, _, err := g.bench.Grid(v.target).Cell(p.Row, p.Col)
	if err != nil {
		g.showError(err)
		return
	}
	entry := widget.NewEntry()
	entry.SetText(text)
	items := []*widget.FormItem{widget.NewFormItem(g.bench.Encoding().String(), entry)}
	dialog.ShowForm(fmt.Sprintf("Edit %v cell %v", v.target, p), "Set", "Cancel", items, func(ok bool) {
		if ok {
			g.report(g.bench.EditCell(v.target, p, entry.Text))
		}
	}, g.window)
}

func (g *GUI) findGadget() {
	gadget, err := g.bench.FindGadget()
	if err != nil {
		g.showError(err)
		return
	}
	log.Println(gadget)
	g.app.Clipboard().SetContent(hex.EncodeToString(gadget.Keystream))
}

// forgeBlock asks for the plaintext wanted at the gadget position and puts
// the forged ciphertext block on the clipboard
func (g *GUI) forgeBlock() {
	gadget, ok := g.bench.Gadget()
	if !ok {
		dialog.ShowInformation("Forge Block", "Find a gadget first", g.window)
		return
	}
	entry := widget.NewEntry()
	items := []*widget.FormItem{widget.NewFormItem("Plaintext ("+g.bench.Encoding().String()+")", entry)}
	dialog.ShowForm("Forge Block", "Forge", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		want, err := Decode(entry.Text, g.bench.Encoding())
		if err != nil {
			g.showError(err)
			return
		}
		forged, err := Forge(gadget, want)
		if err != nil {
			g.showError(err)
			return
		}
		text, err := Encode(forged, g.bench.Encoding())
		if err != nil {
			text = hex.EncodeToString(forged)
		}
		g.app.Clipboard().SetContent(text)
		g.setStatus(fmt.Sprintf("Forged block %s copied to clipboard", text))
	}, g.window)
}

func (g *GUI) openFile() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			g.showError(err)
			return
		}
		if reader == nil {
			return // User cancelled
		}
		reader.Close()
		g.report(g.bench.Load(uriPath(reader.URI())))
	}, g.window)
	fd.Show()
}

func (g *GUI) saveFile() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			g.showError(err)
			return
		}
		if writer == nil {
			return // User cancelled
		}
		// The workbench replaces the file itself
		writer.Close()
		g.report(g.bench.Save(uriPath(writer.URI())))
	}, g.window)
	fd.Show()
}

func (g *GUI) openCSV() {
	target := g.active
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			g.showError(err)
			return
		}
		if reader == nil {
			return // User cancelled
		}
		reader.Close()
		path := uriPath(reader.URI())
		g.chooseCharset(func(cs Charset) {
			g.report(g.bench.LoadCSV(target, path, cs))
		})
	}, g.window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".csv", ".CSV"}))
	fd.Show()
}

func (g *GUI) saveCSV() {
	target := g.active
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			g.showError(err)
			return
		}
		if writer == nil {
			return // User cancelled
		}
		writer.Close()
		path := uriPath(writer.URI())
		g.chooseCharset(func(cs Charset) {
			g.report(g.bench.SaveCSV(target, path, cs))
		})
	}, g.window)
	fd.SetFileName(target.String() + ".csv")
	fd.Show()
}

func (g *GUI) chooseCharset(done func(Charset)) {
	sel := widget.NewSelect(enumNames(Charsets), nil)
	sel.SetSelected(UTF8.String())
	items := []*widget.FormItem{widget.NewFormItem("Charset", sel)}
	dialog.ShowForm("CSV Charset", "OK", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		cs, err := ParseCharset(sel.Selected)
		if err != nil {
			g.showError(err)
			return
		}
		done(cs)
	}, g.window)
}

// uriPath converts a dialog URI to a local file path
func uriPath(uri fyne.URI) string {
	path := uri.Path()
	if runtime.GOOS == "windows" {
		// Convert URI path to Windows path
		path = filepath.FromSlash(strings.TrimPrefix(path, "/"))
	}
	return path
}

// refresh redraws both grids after the workbench changed
func (g *GUI) refresh() {
	for _, v := range g.views {
		if v == nil {
			continue
		}
		g.resizeColumns(v)
		v.table.Refresh()
	}
	if g.gadgetOut != nil {
		if gadget, ok := g.bench.Gadget(); ok {
			g.gadgetOut.SetText(gadget.String())
		} else {
			g.gadgetOut.SetText("No gadget recovered")
		}
	}
	if g.encodingSelect != nil {
		g.syncSelectors()
	}
	g.setStatus(g.bench.Status())
}

func (g *GUI) setStatus(text string) {
	g.status.Set(text)
}

// report shows err if the action failed
func (g *GUI) report(err error) {
	if err != nil {
		g.showError(err)
	}
}

// showError displays an error dialog
func (g *GUI) showError(err error) {
	log.Println(err)
	g.setStatus("Error: " + err.Error())
	dialog.ShowError(err, g.window)
}
