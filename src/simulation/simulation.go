package simulation

import (
	"time"

	"torlife/src/universe"
)

//Simulation drives the Universe: runs it, steps it and lets viewers and users change it
//all the commands return immediately, the result is signalled through the StateCh and viewers
type Simulation interface {
	Status() Status
	Options() Options
	Snapshot() *universe.Universe
	StateCh() chan Status
	AddTemplate(tmpl Template)
	SettleTemplate(name string)
	SettleWithRandomData()
	Settle(coords [][2]int)
	ToggleCell(row int, col int)
	AddSpaceship(row int, col int)
	AddPulsar(row int, col int)
	Resize(width int, height int)
	RegisterViewer(v Viewer)
	Run()
	Stop()
	Step()
	Clear()
	Close()
}

//Options represents the simulation's configurable options
type Options struct {
	Width           int
	Height          int
	Interval        time.Duration
	MaxSteps        int
	MaxSkippedTicks int
	Seed            int64                  //random seed, 0 means the current time
	Advanced        map[string]interface{} //advanced options, printed by viewers
}

//Status represents the status of the simulation at concrete moment
type Status struct {
	IterationNum  int
	RunningMode   RunningState
	LiveCells     int
	IterationTime time.Duration
	Details       map[string]interface{} //per iteration details
}

//Viewer is the interface to any Viewer - the object who can display simulation data or control the simulation
type Viewer interface {
	Refresh()
	Register(s Simulation)
	Start()
}

//Template represent the seeding template which can used to settle the universe with predefined data
type Template struct {
	Name        string   //template name
	Descr       string   //template descr
	Coordinates [][2]int //array of [row,col] coordinates
}

//The simulation running status at the concrete moment
type RunningState int

//default options
const (
	DefSimulationInterval = time.Millisecond * 100
	DefMaxSteps           = 1000
	DefWidth              = 64
	DefHeight             = 32
	DefMaxSkippedTicks    = 5
)

const (
	RunningStateManual   RunningState = 0x0
	RunningStateStep     RunningState = 0x1
	RunningStateRun      RunningState = 0x2
	RunningStateFinished RunningState = 0x3
)

//details keys
const (
	DetailBorn = "Born"
	DetailDied = "Died"
)

var DefaultOptions = Options{
	Width:           DefWidth,
	Height:          DefHeight,
	Interval:        DefSimulationInterval,
	MaxSteps:        DefMaxSteps,
	MaxSkippedTicks: DefMaxSkippedTicks,
}

//BuiltinTemplates are added to every new controller
var BuiltinTemplates = []Template{
	{"glider", "the spaceship moving one cell diagonally each 4 steps", universe.Spaceship()},
	{"pulsar", "the period 3 oscillator", universe.Pulsar()},
	{"testSample", "the test sample with 3 stable patterns", [][2]int{
		{1, 1}, {2, 1},
		{1, 2}, {2, 2},
		{3, 3},
		{2, 4},
		{3, 4},
		{3, 5},
	}},
}

func (s RunningState) String() string {
	switch s {
	case RunningStateManual:
		return "manual"
	case RunningStateStep:
		return "step"
	case RunningStateRun:
		return "run"
	case RunningStateFinished:
		return "finished"
	}
	return "unknown"
}
