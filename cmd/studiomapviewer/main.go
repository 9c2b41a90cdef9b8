package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/murasaqi/anime-studio-positioning-map/src/dataset"
	"github.com/murasaqi/anime-studio-positioning-map/src/positioning"
)

type uiState struct {
	app    fyne.App
	window fyne.Window

	store *dataset.Store
	res   *positioning.Result
	coord *positioning.Coordinator

	logScale  bool
	showLines bool
	dirty     bool

	mapCanvas *canvas.Image
	points    []renderedPoint
	overlay   *hoverOverlay

	countLabel *widget.Label
	list       *widget.List
	listIDs    []int

	yearMin, yearMax *widget.Entry
	sizeMin, sizeMax *widget.Entry
	search           *widget.Entry
	domesticChk      *widget.Check
	intlChk          *widget.Check
	aiChks           map[string]*widget.Check
	ownChks          map[string]*widget.Check
}

// canvasSurface is the desktop render target: the coordinator and filter
// engine mutate the build result directly, so the surface just marks the
// frame stale and the next refresh redraws it wholesale.
type canvasSurface struct {
	state *uiState
}

func (s *canvasSurface) SetVisible(int, bool) error { s.state.dirty = true; return nil }

func (s *canvasSurface) Restyle(int, positioning.StylePatch) error {
	s.state.dirty = true
	return nil
}

func (s *canvasSurface) Relayout(positioning.ViewConfig) error {
	s.state.dirty = true
	return nil
}

func main() {
	var dataPath string
	var logLevel string
	var screenshotsDir string
	flag.StringVar(&dataPath, "data", "studios.yaml", "Path to the studio dataset (YAML)")
	flag.StringVar(&logLevel, "loglevel", "info", "Log level: debug, info, warn, error")
	flag.StringVar(&screenshotsDir, "screenshots", "", "Render every view to PNGs in this directory and exit")
	flag.Parse()
	dataset.SetLogLevel(logLevel)

	store, err := dataset.Load(dataPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	res := positioning.Build(store)

	if screenshotsDir != "" {
		if err := runScreenshotsMode(store, res, screenshotsDir); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	a := app.NewWithID("com.murasaqi.studiomapviewer")
	w := a.NewWindow("Studio Positioning Map")
	w.Resize(fyne.NewSize(1280, 860))

	state := &uiState{
		app: a, window: w,
		store: store, res: res,
		logScale: true, showLines: true,
	}
	state.coord = positioning.NewCoordinator(store, res, &canvasSurface{state: state})

	buildControls(state)
	loadPrefs(state)
	state.window.SetContent(buildLayout(state))
	redraw(state)
	w.ShowAndRun()
}

func buildControls(state *uiState) {
	state.countLabel = widget.NewLabel("")

	state.yearMin = widget.NewEntry()
	state.yearMin.SetPlaceHolder("min")
	state.yearMax = widget.NewEntry()
	state.yearMax.SetPlaceHolder("max")
	state.sizeMin = widget.NewEntry()
	state.sizeMin.SetPlaceHolder("min")
	state.sizeMax = widget.NewEntry()
	state.sizeMax.SetPlaceHolder("max")
	state.search = widget.NewEntry()
	state.search.SetPlaceHolder("name, works...")

	state.domesticChk = widget.NewCheck("Domestic", nil)
	state.domesticChk.SetChecked(true)
	state.intlChk = widget.NewCheck("International", nil)
	state.intlChk.SetChecked(true)

	state.aiChks = map[string]*widget.Check{}
	for key, label := range map[string]string{
		"none": "None", "experimental": "Experimental",
		"production": "Production", "core": "Core",
	} {
		chk := widget.NewCheck(label, nil)
		chk.SetChecked(true)
		state.aiChks[key] = chk
	}
	state.ownChks = map[string]*widget.Check{}
	for key, label := range map[string]string{
		"independent": "Independent", "subsidiary": "Subsidiary", "group_company": "Group",
	} {
		chk := widget.NewCheck(label, nil)
		chk.SetChecked(true)
		state.ownChks[key] = chk
	}

	state.list = widget.NewList(
		func() int { return len(state.listIDs) },
		func() fyne.CanvasObject {
			name := widget.NewLabel("")
			name.TextStyle = fyne.TextStyle{Bold: true}
			meta := widget.NewLabel("")
			return container.NewVBox(name, meta)
		},
		func(i widget.ListItemID, o fyne.CanvasObject) {
			if i >= len(state.listIDs) {
				return
			}
			e := state.store.ByID(state.listIDs[i])
			box := o.(*fyne.Container)
			box.Objects[0].(*widget.Label).SetText(e.Name)
			box.Objects[1].(*widget.Label).SetText(entityMeta(e))
		},
	)
}

// entityMeta is the one-line summary shown under each name in the side list.
func entityMeta(e *dataset.Entity) string {
	founded := "est. ?"
	if e.Founded != nil {
		founded = fmt.Sprintf("est. %d", *e.Founded)
	}
	staff := "? staff"
	if e.SizeCurrent != nil {
		staff = fmt.Sprintf("%.0f staff", *e.SizeCurrent)
	}
	parts := []string{e.RegionLabel(), founded, staff}
	if e.ParentCompany != "" {
		parts = append(parts, e.ParentCompany)
	}
	return strings.Join(parts, " | ")
}

func buildLayout(state *uiState) fyne.CanvasObject {
	viewBtns := make([]fyne.CanvasObject, 0, len(positioning.ViewOrder)+3)
	for _, key := range positioning.ViewOrder {
		k := key
		viewBtns = append(viewBtns, widget.NewButton(state.res.Views[k].Button, func() {
			state.coord.SwitchView(k)
			savePrefs(state)
			redraw(state)
		}))
	}
	linesChk := widget.NewCheck("Trajectories", func(v bool) {
		state.showLines = v
		state.coord.SetTrajectories(v)
		savePrefs(state)
		redraw(state)
	})
	linesChk.SetChecked(state.showLines)
	logChk := widget.NewCheck("Log Y", func(v bool) {
		state.logScale = v
		state.dirty = true
		savePrefs(state)
		redraw(state)
	})
	logChk.SetChecked(state.logScale)
	viewBtns = append(viewBtns, widget.NewSeparator(), linesChk, logChk)
	viewBar := container.NewHBox(viewBtns...)

	applyBtn := widget.NewButton("Apply", func() { applyFilterFromUI(state) })
	resetBtn := widget.NewButton("Reset", func() { resetFilterUI(state) })

	filterBar := container.NewHBox(
		widget.NewLabel("Founded:"), compact(state.yearMin), widget.NewLabel("–"), compact(state.yearMax),
		widget.NewSeparator(),
		state.domesticChk, state.intlChk,
		widget.NewSeparator(),
		widget.NewLabel("Staff:"), compact(state.sizeMin), widget.NewLabel("–"), compact(state.sizeMax),
		widget.NewSeparator(),
		widget.NewLabel("Search:"), wide(state.search),
		widget.NewSeparator(),
		widget.NewLabel("AI:"),
		state.aiChks["none"], state.aiChks["experimental"], state.aiChks["production"], state.aiChks["core"],
		widget.NewSeparator(),
		widget.NewLabel("Own:"),
		state.ownChks["independent"], state.ownChks["subsidiary"], state.ownChks["group_company"],
		widget.NewSeparator(),
		applyBtn, resetBtn, state.countLabel,
	)

	state.mapCanvas = canvas.NewImageFromImage(blank(chartWidth, chartHeight))
	state.mapCanvas.FillMode = canvas.ImageFillContain
	state.overlay = newHoverOverlay(state)
	chartStack := container.NewStack(state.mapCanvas, state.overlay)

	listPanel := container.NewBorder(widget.NewLabel("Studios"), nil, nil, nil, state.list)
	split := container.NewHSplit(chartStack, listPanel)
	split.SetOffset(0.78)

	return container.NewBorder(container.NewVBox(viewBar, filterBar), nil, nil, nil, split)
}

func compact(e *widget.Entry) fyne.CanvasObject {
	return container.NewGridWrap(fyne.NewSize(70, 36), e)
}

func wide(e *widget.Entry) fyne.CanvasObject {
	return container.NewGridWrap(fyne.NewSize(160, 36), e)
}

const (
	chartWidth  = 1200
	chartHeight = 760
)

func fieldsFromUI(state *uiState) positioning.FilterFields {
	return positioning.FilterFields{
		YearMin: state.yearMin.Text, YearMax: state.yearMax.Text,
		SizeMin: state.sizeMin.Text, SizeMax: state.sizeMax.Text,
		Search:         state.search.Text,
		Domestic:       state.domesticChk.Checked,
		International:  state.intlChk.Checked,
		AINone:         state.aiChks["none"].Checked,
		AIExperimental: state.aiChks["experimental"].Checked,
		AIProduction:   state.aiChks["production"].Checked,
		AICore:         state.aiChks["core"].Checked,
		OwnIndependent: state.ownChks["independent"].Checked,
		OwnSubsidiary:  state.ownChks["subsidiary"].Checked,
		OwnGroup:       state.ownChks["group_company"].Checked,
	}
}

func applyFilterFromUI(state *uiState) {
	fields := fieldsFromUI(state)
	state.coord.ApplyFilter(fields)
	shown, total := state.coord.MatchCounts()
	fmt.Printf("[viewer] filter applied; showing %d/%d studios\n", shown, total)
	savePrefs(state)
	redraw(state)
}

func resetFilterUI(state *uiState) {
	state.yearMin.SetText("")
	state.yearMax.SetText("")
	state.sizeMin.SetText("")
	state.sizeMax.SetText("")
	state.search.SetText("")
	state.domesticChk.SetChecked(true)
	state.intlChk.SetChecked(true)
	for _, chk := range state.aiChks {
		chk.SetChecked(true)
	}
	for _, chk := range state.ownChks {
		chk.SetChecked(true)
	}
	state.coord.ResetFilter()
	savePrefs(state)
	redraw(state)
}

// redraw re-renders the frame and the side list from the current model
// state.
func redraw(state *uiState) {
	cfg := state.coord.ActiveConfig()
	img, pts := renderMap(state.res, cfg, state.logScale, chartWidth, chartHeight)
	state.points = pts
	if state.mapCanvas != nil {
		state.mapCanvas.Image = img
		state.mapCanvas.Refresh()
	}
	state.dirty = false

	shown, total := state.coord.MatchCounts()
	if state.countLabel != nil {
		state.countLabel.SetText(fmt.Sprintf("Showing %d/%d", shown, total))
	}

	state.listIDs = state.listIDs[:0]
	all := state.store.All()
	for i := range all {
		if state.coord.Matches(&all[i]) {
			state.listIDs = append(state.listIDs, all[i].ID)
		}
	}
	if state.list != nil {
		state.list.Refresh()
	}
}

func savePrefs(state *uiState) {
	if state == nil || state.app == nil {
		return
	}
	prefs := state.app.Preferences()
	prefs.SetString("activeView", string(state.coord.ActiveView()))
	prefs.SetBool("logScale", state.logScale)
	prefs.SetBool("showLines", state.showLines)
	f := state.coord.Filter()
	prefs.SetString("yearMin", f.YearMin)
	prefs.SetString("yearMax", f.YearMax)
	prefs.SetString("sizeMin", f.SizeMin)
	prefs.SetString("sizeMax", f.SizeMax)
	prefs.SetString("search", f.Search)
}

func loadPrefs(state *uiState) {
	if state == nil || state.app == nil {
		return
	}
	prefs := state.app.Preferences()
	state.logScale = prefs.BoolWithFallback("logScale", true)
	state.showLines = prefs.BoolWithFallback("showLines", true)
	if v := prefs.StringWithFallback("activeView", ""); v != "" {
		for _, key := range positioning.ViewOrder {
			if string(key) == v {
				state.coord.SwitchView(key)
				break
			}
		}
	}
	state.yearMin.SetText(prefs.StringWithFallback("yearMin", ""))
	state.yearMax.SetText(prefs.StringWithFallback("yearMax", ""))
	state.sizeMin.SetText(prefs.StringWithFallback("sizeMin", ""))
	state.sizeMax.SetText(prefs.StringWithFallback("sizeMax", ""))
	state.search.SetText(prefs.StringWithFallback("search", ""))
}
