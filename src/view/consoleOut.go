package view

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"torlife/src/simulation"
)

//ConsoleOut prints the simulation progress as plain text
type ConsoleOut struct {
	s          simulation.Simulation
	w          io.Writer
	startTime  time.Time
	printField bool
	progress   int //print the progress every progress iterations
}

//NewConsoleOut creates ConsoleOut writing to stdout
//printField enables printing of the universe when the simulation is finished
func NewConsoleOut(printField bool) *ConsoleOut {
	return NewConsoleOutWriter(os.Stdout, printField)
}

//NewConsoleOutWriter creates ConsoleOut writing to w
func NewConsoleOutWriter(w io.Writer, printField bool) *ConsoleOut {
	return &ConsoleOut{w: w, printField: printField, progress: 10}
}

func (c *ConsoleOut) Refresh() {
	st := c.s.Status()
	if st.RunningMode == simulation.RunningStateFinished {
		totalTime := time.Since(c.startTime).Round(time.Millisecond)
		resultData := map[string]interface{}{
			"Last iteration": st.IterationNum,
			"Total time":     totalTime,
			"Live cells":     st.LiveCells,
		}
		_, _ = fmt.Fprintln(c.w, "\nFinished:")
		c.printHashData(resultData)
		if c.printField {
			_, _ = fmt.Fprint(c.w, c.s.Snapshot())
		}
	} else if st.RunningMode == simulation.RunningStateRun {
		if st.IterationNum > 0 && st.IterationNum%c.progress == 0 {
			_, _ = fmt.Fprintf(c.w, "  Iterations done: %v\n", st.IterationNum)
		}
	}
}

func (c *ConsoleOut) Register(s simulation.Simulation) {
	c.s = s
	o := c.s.Options()
	_, _ = fmt.Fprintln(c.w, "Running configuration:")
	_, _ = fmt.Fprintf(c.w, "  Dimension: %v x %v\n", o.Width, o.Height)
	_, _ = fmt.Fprintf(c.w, "  Interval: %v\n", o.Interval)
	_, _ = fmt.Fprintf(c.w, "  Max iterations: %v steps\n", o.MaxSteps)
	c.printHashData(o.Advanced)
}

func (c *ConsoleOut) Start() {
	c.startTime = time.Now()
	_, _ = fmt.Fprintln(c.w, "\nSimulation started...")
}

func (c *ConsoleOut) printHashData(d map[string]interface{}) {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		_, _ = fmt.Fprintf(c.w, "  %s: %v\n", propName, d[propName])
	}
}
