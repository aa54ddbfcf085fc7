package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/integrii/flaggy"

	"torlife/src/simulation"
	"torlife/src/universe"
	"torlife/src/view"
)

const templateSeed = "template"

var (
	//seeders settle the universe on start, "template" starts empty and settles the template
	seeders = map[string]universe.Seeder{
		"dead":       universe.Dead,
		"random":     universe.Random,
		"pattern":    universe.Pattern,
		templateSeed: universe.Dead,
	}
)

type EnvOptions struct {
	interactive bool
	printField  bool
	seed        string
	template    string
}

func main() {
	eo, so := initOptions()

	var stateCh chan simulation.Status

	if !eo.interactive {
		stateCh = make(chan simulation.Status, 10) //the buffered channel to getting the simulation status
	}

	s := simulation.New(so, stateCh, seeders[eo.seed])

	if eo.seed == templateSeed {
		s.SettleTemplate(eo.template)
	}

	if eo.interactive {
		v := view.NewViewTerminal()
		s.RegisterViewer(v)
		v.Start()
		s.Close()
		return
	}

	fmt.Printf("\"The Life\" game simulation on the torus started...\n")
	v := view.NewConsoleOut(eo.printField)
	s.RegisterViewer(v)
	v.Start()

	startTime := time.Now()
	s.Run()
	for {
		st := <-stateCh
		if st.RunningMode == simulation.RunningStateFinished {
			totalTime := time.Since(startTime).Round(time.Millisecond)
			fmt.Printf("Finished, iteration is: %v, total running time: %v\n", st.IterationNum, totalTime)
			break
		}
	}
	s.Close()
}

func initOptions() (eo *EnvOptions, so *simulation.Options) {

	o := simulation.DefaultOptions
	so = &o
	seedNames := make([]string, 0, len(seeders))
	for k := range seeders {
		seedNames = append(seedNames, k)
	}
	sort.Strings(seedNames)
	templateNames := make([]string, 0, len(simulation.BuiltinTemplates))
	for _, t := range simulation.BuiltinTemplates {
		templateNames = append(templateNames, t.Name)
	}

	eo = &EnvOptions{seed: "random", template: "glider"}
	flaggy.SetName("torlife")
	flaggy.SetDescription("Conway's \"The Life\" game on the toroidal field")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.Int(&so.Width, "x", "width", "Width of a simulation field")
	flaggy.Int(&so.Height, "y", "height", "Height of a simulation field")
	flaggy.Duration(&so.Interval, "i", "interval", "Simulation speed (interval between the steps) in format the number with 'ms' suffix, for example 150ms")
	flaggy.Int(&so.MaxSteps, "s", "maxSteps", "Limit the simulation to maxSteps, 0 means no limit")
	flaggy.Int(&so.MaxSkippedTicks, "k", "maxSkipped", "Finish the simulation when more than maxSkipped ticks are skipped in a row")
	flaggy.Int64(&so.Seed, "r", "rand", "Random seed, 0 means the current time")
	flaggy.Bool(&eo.interactive, "n", "interactive", "Start interactive mode")
	flaggy.Bool(&eo.printField, "p", "print", "Print the field when the simulation is finished")
	flaggy.String(&eo.seed, "e", "seed", "Seed policy ["+strings.Join(seedNames, "|")+"]")
	flaggy.String(&eo.template, "t", "template", "Template for the template seed policy ["+strings.Join(templateNames, "|")+"]")

	flaggy.Parse()

	if _, ok := seeders[eo.seed]; !ok {
		flaggy.ShowHelpAndExit("unknown seed policy")
	}
	if so.Width <= 0 || so.Height <= 0 {
		flaggy.ShowHelpAndExit("the field dimension must be positive")
	}

	so.Advanced = map[string]interface{}{"Seed policy": eo.seed}
	if eo.seed == templateSeed {
		so.Advanced["Template"] = eo.template
	}

	if !eo.interactive {
		flaggy.ShowHelp("")
	}

	return
}
