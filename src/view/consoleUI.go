package view

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"

	"torlife/src/simulation"
	"torlife/src/universe"
)

const (
	fieldView  = "battlefield"
	headerView = "header"

	sidebarWidth    = 28
	minWindowHeight = 20
	footerHeight    = 5
	headerHeight    = 3
)

//keyBinding binds the key to the handler, bindings with empty label are hidden from the help line
type keyBinding struct {
	key     interface{}
	label   string
	descr   string
	handler func(v *gocui.View) error
	view    string
}

//panel is the framed view of the layout
//rect returns its corners for the terminal size, text returns its content for the inner size
type panel struct {
	name  string
	title string
	rect  func(maxX, maxY int) (x0, y0, x1, y1 int)
	text  func(maxW, maxH int) string
}

//ConsoleUI is the interactive terminal viewer
type ConsoleUI struct {
	s      simulation.Simulation
	g      *gocui.Gui
	keys   []keyBinding
	panels []panel
	live   string
	dead   string
}

var runningStateDescr = map[simulation.RunningState]string{
	simulation.RunningStateManual:   aurora.Colorize("waiting", aurora.BlueFg).String(),
	simulation.RunningStateStep:     "do the step",
	simulation.RunningStateRun:      aurora.Colorize("running", aurora.CyanFg).String(),
	simulation.RunningStateFinished: aurora.Colorize("finished", aurora.RedFg).String(),
}

//NewViewTerminal creates the terminal UI, panics if the terminal can't be initialized
func NewViewTerminal() *ConsoleUI {
	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		log.Panicln(err)
	}
	g.Mouse = true

	t := &ConsoleUI{
		g:    g,
		live: aurora.Green("█").BgBrightGreen().String(),
		dead: "░",
	}
	t.keys = []keyBinding{
		{gocui.KeyCtrlC, "^C", "Exit", quit, ""},
		{'n', "N", "Next step", t.do(func(s simulation.Simulation) { s.Step() }), ""},
		{'r', "R", "Run", t.do(func(s simulation.Simulation) { s.Run() }), ""},
		{'s', "S", "Stop", t.do(func(s simulation.Simulation) { s.Stop() }), ""},
		{'c', "C", "Clear", t.do(func(s simulation.Simulation) { s.Clear() }), ""},
		{'w', "W", "Random", t.do(func(s simulation.Simulation) { s.SettleWithRandomData() }), ""},
		{'g', "G", "Glider", t.do(addGlider), ""},
		{'p', "P", "Pulsar", t.do(addPulsar), ""},
		{gocui.KeyArrowRight, "→/←", "Width", t.do(resize(1, 0)), ""},
		{gocui.KeyArrowLeft, "", "", t.do(resize(-1, 0)), ""},
		{gocui.KeyArrowDown, "↓/↑", "Height", t.do(resize(0, 1)), ""},
		{gocui.KeyArrowUp, "", "", t.do(resize(0, -1)), ""},
		{gocui.MouseLeft, "MOUSE", "Toggle the cell", t.toggleUnderCursor, fieldView},
	}
	t.panels = []panel{
		{"configuration", "Configuration", func(_, maxY int) (int, int, int, int) {
			return 0, headerHeight, sidebarWidth, headerHeight + (maxY-footerHeight-headerHeight)/2
		}, t.configurationText},
		{"status", "Status", func(_, maxY int) (int, int, int, int) {
			return 0, headerHeight + (maxY-footerHeight-headerHeight)/2 + 1, sidebarWidth, maxY - footerHeight
		}, t.statusText},
		{fieldView, "Torus", func(maxX, maxY int) (int, int, int, int) {
			return sidebarWidth + 1, headerHeight, maxX - 1, maxY - footerHeight
		}, t.torusText},
	}

	g.SetManagerFunc(t.layout)
	for _, kb := range t.keys {
		h := kb.handler
		if err := g.SetKeybinding(kb.view, kb.key, gocui.ModNone, func(_ *gocui.Gui, v *gocui.View) error { return h(v) }); err != nil {
			log.Panicln(err)
		}
	}
	return t
}

func (t *ConsoleUI) Register(s simulation.Simulation) {
	t.s = s
}

func (t *ConsoleUI) Start() {
	if err := t.g.MainLoop(); err != nil && err != gocui.ErrQuit {
		log.Panicln(err)
	}
	t.g.Close()
}

//Refresh redraws all panels, may be called from any goroutine
//the views are changed by the gui goroutine
func (t *ConsoleUI) Refresh() {
	t.g.Update(func(g *gocui.Gui) error {
		for _, p := range t.panels {
			//the view is not created yet or removed on the small terminal
			if v, err := g.View(p.name); err == nil {
				fill(v, p.text)
			}
		}
		return nil
	})
}

func fill(v *gocui.View, text func(maxW, maxH int) string) {
	v.Clear()
	maxW, maxH := v.Size()
	_, _ = fmt.Fprint(v, text(maxW, maxH))
}

func (t *ConsoleUI) torusText(maxW int, maxH int) string {
	return fieldText(t.s.Snapshot(), maxW, maxH, t.live, t.dead)
}

func (t *ConsoleUI) statusText(_, _ int) string {
	s := t.s.Status()
	return props(
		"Step", s.IterationNum,
		"Live cells", s.LiveCells,
		"Born / Died", fmt.Sprintf("%v / %v", detail(s, simulation.DetailBorn), detail(s, simulation.DetailDied)),
		"Evaluation time", s.IterationTime.Round(time.Microsecond),
		"Mode", runningStateDescr[s.RunningMode],
	)
}

func (t *ConsoleUI) configurationText(_, _ int) string {
	o := t.s.Options()
	return props(
		"Dimension", fmt.Sprintf("%v x %v", o.Width, o.Height),
		"Interval", o.Interval,
		"Iterations", fmt.Sprintf("%v steps", o.MaxSteps),
	)
}

func (t *ConsoleUI) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()

	if maxY < minWindowHeight {
		for _, p := range t.panels {
			_ = g.DeleteView(p.name)
		}
		_ = g.DeleteView("help")
		return t.header(g, maxX, maxY, "Terminal height too small")
	}
	if err := t.header(g, maxX, headerHeight, "\"The Life\" on the torus"); err != nil {
		return err
	}

	for _, p := range t.panels {
		x0, y0, x1, y1 := p.rect(maxX, maxY)
		v, err := g.SetView(p.name, x0, y0, x1, y1)
		if err != nil && err != gocui.ErrUnknownView {
			return err
		}
		if err == gocui.ErrUnknownView {
			v.Title = p.title
			v.Frame = true
		}
		fill(v, p.text)
	}

	v, err := g.SetView("help", -1, maxY-footerHeight, maxX, maxY-headerHeight)
	if err != nil && err != gocui.ErrUnknownView {
		return err
	}
	v.Frame = false
	v.Clear()
	_, _ = fmt.Fprintln(v, helpLine(t.keys))
	return nil
}

func (t *ConsoleUI) header(g *gocui.Gui, maxX int, height int, text string) error {
	v, err := g.SetView(headerView, -1, -1, maxX+1, height)
	if err != nil && err != gocui.ErrUnknownView {
		return err
	}
	v.Frame = false
	v.BgColor = gocui.ColorCyan
	v.FgColor = gocui.ColorBlack
	v.Clear()
	_, _ = fmt.Fprint(v, centered(text, maxX, height))
	return nil
}

//do adapts the simulation command to the key handler
func (t *ConsoleUI) do(cmd func(s simulation.Simulation)) func(v *gocui.View) error {
	return func(_ *gocui.View) error {
		cmd(t.s)
		return nil
	}
}

func (t *ConsoleUI) toggleUnderCursor(v *gocui.View) error {
	col, row := v.Cursor()
	t.s.ToggleCell(row, col)
	return nil
}

func quit(_ *gocui.View) error {
	return gocui.ErrQuit
}

func addGlider(s simulation.Simulation) {
	o := s.Options()
	s.AddSpaceship(o.Height/2, o.Width/2)
}

func addPulsar(s simulation.Simulation) {
	o := s.Options()
	//the pulsar occupies 13x13 cells, the controller wraps the anchor
	s.AddPulsar(o.Height/2-6, o.Width/2-6)
}

func resize(dw int, dh int) func(s simulation.Simulation) {
	return func(s simulation.Simulation) {
		o := s.Options()
		s.Resize(o.Width+dw, o.Height+dh)
	}
}

//fieldText renders the part of the universe fitting into maxW x maxH
//the last visible line is replaced by the warning when the universe is cropped
func fieldText(u *universe.Universe, maxW int, maxH int, live string, dead string) string {
	crop := u.Width() > maxW || u.Height() > maxH
	rows := u.Height()
	if rows > maxH {
		rows = maxH
	}
	lines := make([]string, 0, rows)
	var b strings.Builder
	for row := 0; row < rows; row++ {
		if crop && row == rows-1 {
			lines = append(lines, aurora.Red("The field size is larger than the viewing area").BgBlack().String())
			break
		}
		b.Reset()
		for col := 0; col < u.Width() && col < maxW; col++ {
			if u.IsAlive(row, col) {
				b.WriteString(live)
			} else {
				b.WriteString(dead)
			}
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

//helpLine lists the labelled key bindings
func helpLine(keys []keyBinding) string {
	items := make([]string, 0, len(keys))
	for _, k := range keys {
		if k.label == "" {
			continue
		}
		items = append(items, aurora.Green(k.label).String()+": "+k.descr)
	}
	return "KEYBINDINGS: " + strings.Join(items, ", ")
}

//centered places the text in the middle of width x height block, the text is cut when it doesn't fit
func centered(text string, width int, height int) string {
	r := []rune(text)
	if width < 0 {
		width = 0
	}
	if len(r) > width {
		r = r[:width]
	}
	return strings.Repeat("\n", height/2) + strings.Repeat(" ", (width-len(r))/2) + string(r)
}

//props renders name, value pairs one per line
func props(kv ...interface{}) string {
	var b strings.Builder
	for i := 0; i+1 < len(kv); i += 2 {
		fmt.Fprintf(&b, " %s: %v\n", aurora.Colorize(kv[i], aurora.GreenFg), kv[i+1])
	}
	return b.String()
}

func detail(s simulation.Status, key string) interface{} {
	if v, ok := s.Details[key]; ok {
		return v
	}
	return "-"
}
