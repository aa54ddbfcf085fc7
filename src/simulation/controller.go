package simulation

import (
	"math/bits"
	"sync"
	"time"

	"torlife/src/universe"
)

var _ Simulation = (*Controller)(nil)

//Controller is the simulation engine
//implements Simulation interface
//the Universe is owned by the controller: commands are executed by the main loop goroutine,
//direct edits and snapshots are serialized by the area mutex
type Controller struct {
	options Options
	state   struct {
		Status
		runID int //the generation of the run loop, the stale loop exits on mismatch
		views []Viewer
		sync.Mutex
	}
	area struct {
		u    *universe.Universe
		prev []byte //the previous generation, used to detect changes
		sync.Mutex
	}
	stateCh   chan Status
	templates map[string]Template
	controlCh chan func()
	closeCh   chan struct{}
	closeOnce sync.Once
}

//New creates the Controller, settles the universe with the seeder and starts the main loop
func New(o *Options, stateCh chan Status, seed universe.Seeder) *Controller {
	if o == nil {
		o = &DefaultOptions
	}
	c := Controller{
		options:   *o,
		controlCh: make(chan func(), 1),
		closeCh:   make(chan struct{}),
		stateCh:   stateCh,
		templates: map[string]Template{},
	}
	c.options.Advanced = make(map[string]interface{}, len(o.Advanced))
	for k, v := range o.Advanced {
		c.options.Advanced[k] = v
	}

	var uo []universe.Option
	if o.Seed != 0 {
		uo = append(uo, universe.WithSeed(o.Seed))
	}
	c.area.u = universe.New(o.Width, o.Height, seed, uo...)
	for _, tmpl := range BuiltinTemplates {
		c.AddTemplate(tmpl)
	}
	c.state.Details = make(map[string]interface{})
	c.state.LiveCells = c.area.u.LiveCount()

	go c.mainLoop()
	return &c
}

//AddTemplate adds the seeding template to the internal storage
//the universe can be populated with this template by call SettleTemplate
func (c *Controller) AddTemplate(tmpl Template) {
	c.area.Lock()
	c.templates[tmpl.Name] = tmpl
	c.area.Unlock()
}

//Settle kills all cells and settles the universe with data
//coords - array of row,col coordinates, the coordinates outside the area are skipped
func (c *Controller) Settle(coords [][2]int) {
	c.area.Lock()
	w, h := c.area.u.Width(), c.area.u.Height()
	valid := make([][2]int, 0, len(coords))
	for _, v := range coords {
		if v[0] < 0 || v[1] < 0 || v[0] >= h || v[1] >= w {
			continue
		}
		valid = append(valid, v)
	}
	c.area.u.SetCells(valid)
	live := c.area.u.LiveCount()
	c.area.Unlock()
	c.setLiveCells(live)
	c.refreshView()
}

//SettleTemplate populates the universe with the seeding template
func (c *Controller) SettleTemplate(name string) {
	c.area.Lock()
	tmpl, ok := c.templates[name]
	c.area.Unlock()
	if !ok {
		return
	}
	c.Settle(tmpl.Coordinates)
}

//SettleWithRandomData populates the universe with random data
//does nothing while the simulation is running
func (c *Controller) SettleWithRandomData() {
	c.exec(func() {
		mode := c.Status().RunningMode
		if mode != RunningStateManual && mode != RunningStateFinished {
			return
		}
		c.area.Lock()
		c.area.u.RandomCells()
		live := c.area.u.LiveCount()
		c.area.Unlock()
		c.setLiveCells(live)
		c.refreshView()
	})
}

//ToggleCell inverses the cell state at row, col
func (c *Controller) ToggleCell(row int, col int) {
	c.edit(func(u *universe.Universe) bool {
		if row < 0 || col < 0 || row >= u.Height() || col >= u.Width() {
			return false
		}
		u.ToggleCell(row, col)
		return true
	})
}

//AddSpaceship stamps the glider at row, col
//the anchor outside the area is wrapped onto the torus
func (c *Controller) AddSpaceship(row int, col int) {
	c.edit(func(u *universe.Universe) bool {
		u.AddSpaceship(wrap(row, u.Height()), wrap(col, u.Width()))
		return true
	})
}

//AddPulsar stamps the pulsar at row, col
//the anchor outside the area is wrapped onto the torus
func (c *Controller) AddPulsar(row int, col int) {
	c.edit(func(u *universe.Universe) bool {
		u.AddPulsar(wrap(row, u.Height()), wrap(col, u.Width()))
		return true
	})
}

func wrap(v int, n int) int {
	return (v%n + n) % n
}

//Resize changes the universe dimension, all cells are killed
//non positive dimensions are ignored
func (c *Controller) Resize(width int, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.area.Lock()
	if width != c.area.u.Width() {
		c.area.u.SetWidth(width)
	}
	if height != c.area.u.Height() {
		c.area.u.SetHeight(height)
	}
	live := c.area.u.LiveCount()
	c.area.Unlock()

	c.state.Lock()
	c.options.Width = width
	c.options.Height = height
	c.state.LiveCells = live
	c.state.Unlock()
	c.refreshView()
}

//RegisterViewer registers the viewer - the controller will call the viewer when the state is changed
//may be called while the simulation is running
func (c *Controller) RegisterViewer(v Viewer) {
	c.state.Lock()
	c.state.views = append(c.state.views, v)
	c.state.Unlock()
	v.Register(c)
}

//StateCh returns the channel with the simulation's status updates
func (c *Controller) StateCh() chan Status {
	return c.stateCh
}

//Status returns current simulation status represented by Status struct
func (c *Controller) Status() Status {
	c.state.Lock()
	defer c.state.Unlock()
	st := c.state.Status
	st.Details = make(map[string]interface{}, len(c.state.Details))
	for k, v := range c.state.Details {
		st.Details[k] = v
	}
	return st
}

//Options returns current simulation configuration represented by Options struct
func (c *Controller) Options() Options {
	c.state.Lock()
	defer c.state.Unlock()
	return c.options
}

//Snapshot returns the copy of the universe, safe to read from any goroutine
func (c *Controller) Snapshot() *universe.Universe {
	c.area.Lock()
	defer c.area.Unlock()
	return c.area.u.Clone()
}

//Run starts the simulation, returns immediately
func (c *Controller) Run() {
	c.exec(c.run)
}

//Stop stops the simulation, returns immediately
//the Status struct will be written the stateCh on finish
func (c *Controller) Stop() {
	c.exec(c.stop)
}

//Step do one simulation step, returns immediately
//the Status struct will be written to the stateCh on start and on finish
func (c *Controller) Step() {
	c.exec(c.step)
}

//Clear clears the universe (kill all cells and reset all counters), returns immediately
//the Status struct will be written to the stateCh on finish
func (c *Controller) Clear() {
	c.exec(c.clear)
}

//Close stops the main loop, returns immediately
func (c *Controller) Close() {
	c.closeOnce.Do(func() {
		close(c.closeCh)
	})
}

//exec sends the command to the main loop
//the command is dropped when the controller is closed
func (c *Controller) exec(cmd func()) bool {
	select {
	case c.controlCh <- cmd:
		return true
	case <-c.closeCh:
		return false
	}
}

//edit applies the change to the universe and refreshes the views if the change was made
func (c *Controller) edit(change func(u *universe.Universe) bool) {
	changed, live := func() (bool, int) {
		c.area.Lock()
		defer c.area.Unlock()
		return change(c.area.u), c.area.u.LiveCount()
	}()
	if !changed {
		return
	}
	c.setLiveCells(live)
	c.refreshView()
}

//mainLoop - the main cycle, should start as a goroutine
//waits for command and executes
func (c *Controller) mainLoop() {
	for {
		select {
		case cmd := <-c.controlCh:
			cmd()
		case <-c.closeCh:
			return
		}
	}
}

//newRun starts the new generation of the run loop, the previous loop exits on its next check
func (c *Controller) newRun() int {
	c.state.Lock()
	defer c.state.Unlock()
	c.state.runID++
	return c.state.runID
}

func (c *Controller) isCurrentRun(id int) bool {
	c.state.Lock()
	defer c.state.Unlock()
	return c.state.runID == id
}

func (c *Controller) setLiveCells(live int) {
	c.state.Lock()
	c.state.LiveCells = live
	c.state.Unlock()
}

//switchRunningState switch the state of the simulation to RunningState
//also writes the new state to the stateCh to signal upper control software
func (c *Controller) switchRunningState(to RunningState) {
	c.state.Lock()
	c.state.RunningMode = to
	c.state.Unlock()
	if c.stateCh != nil {
		c.stateCh <- c.Status()
	}
}

//run starts the simulation
//simulation will stop on Stop() calling or when the boundary conditions are reached
func (c *Controller) run() {
	if c.Status().RunningMode == RunningStateRun {
		return
	}
	id := c.newRun()
	c.switchRunningState(RunningStateRun)
	go func() {
		skipped := 0
		done := make(chan struct{}, 1)
		for {
			if !c.isCurrentRun(id) {
				return
			}
			mode := c.Status().RunningMode
			if mode != RunningStateRun && mode != RunningStateStep {
				return
			}
			if skipped > c.options.MaxSkippedTicks {
				c.exec(func() {
					if c.isCurrentRun(id) {
						c.switchRunningState(RunningStateFinished)
					}
				})
				return
			}
			//skip the tick if the universe is still in the calculation mode
			if mode != RunningStateStep {
				skipped = 0
				ok := c.exec(func() {
					if c.isCurrentRun(id) {
						c.step()
					}
					done <- struct{}{}
				})
				if !ok {
					return
				}
				select {
				case <-done:
				case <-c.closeCh:
					return
				}
			} else {
				skipped++
			}
			if c.options.Interval > 0 {
				select {
				case <-time.After(c.options.Interval):
				case <-c.closeCh:
					return
				}
			}
		}
	}()
}

//stop stops the simulation running cycle
func (c *Controller) stop() {
	if c.Status().RunningMode == RunningStateRun {
		c.newRun()
		c.switchRunningState(RunningStateManual)
	}
}

//step does the new one state calculation for entire universe
func (c *Controller) step() {
	finished := false
	st := c.Status()
	rm := st.RunningMode
	if rm == RunningStateFinished {
		rm = RunningStateManual
	}
	maxIter := c.options.MaxSteps
	defer func() {
		if finished {
			c.switchRunningState(RunningStateFinished)
		} else {
			c.switchRunningState(rm)
		}
		c.refreshView()
	}()

	if maxIter != 0 && st.IterationNum >= maxIter {
		finished = true
		return
	}
	c.switchRunningState(RunningStateStep)
	hasLiveCells, changed := c.nextIteration()
	if !hasLiveCells || !changed || (maxIter != 0 && c.Status().IterationNum >= maxIter) {
		finished = true
	}
}

//clear kills all cells, reset all counters
func (c *Controller) clear() {
	c.newRun()
	c.area.Lock()
	c.area.u.ClearCells()
	c.area.Unlock()

	c.state.Lock()
	c.state.IterationNum = 0
	c.state.LiveCells = 0
	c.state.IterationTime = 0
	c.state.Details = make(map[string]interface{})
	c.state.Unlock()
	c.switchRunningState(RunningStateManual)
	c.refreshView()
}

//nextIteration does one simulation cycle
//the universe ticks into its second buffer, then the previous generation is compared to the new one
func (c *Controller) nextIteration() (hasLiveCells bool, changed bool) {
	c.area.Lock()
	start := time.Now()
	c.area.prev = append(c.area.prev[:0], c.area.u.Cells()...)
	c.area.u.Tick()
	born, died := diff(c.area.prev, c.area.u.Cells())
	liveCells := c.area.u.LiveCount()
	elapsed := time.Since(start)
	c.area.Unlock()

	c.state.Lock()
	c.state.IterationNum++
	c.state.LiveCells = liveCells
	c.state.IterationTime = elapsed
	c.state.Details[DetailBorn] = born
	c.state.Details[DetailDied] = died
	c.state.Unlock()
	return liveCells > 0, born+died > 0
}

//diff counts the cells which became alive and the cells which died between two packed generations
func diff(prev []byte, next []byte) (born int, died int) {
	for i := range next {
		born += bits.OnesCount8(next[i] &^ prev[i])
		died += bits.OnesCount8(prev[i] &^ next[i])
	}
	return
}

//refreshView calls Refresh event for all registered views
func (c *Controller) refreshView() {
	c.state.Lock()
	views := append([]Viewer(nil), c.state.views...)
	c.state.Unlock()
	for _, v := range views {
		v.Refresh()
	}
}
