package main

import (
	"sort"
	"testing"

	"torlife/src/simulation"
)

const (
	benchWidth  = 200
	benchHeight = 200
)

func simulationStep(s simulation.Simulation, b *testing.B) {
	stateCh := s.StateCh()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Step()
		for {
			st := <-stateCh
			if st.RunningMode != simulation.RunningStateStep {
				break
			}
		}
	}
	s.Close()
}

func simulationRun(s simulation.Simulation, b *testing.B) {
	stateCh := s.StateCh()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		s.Clear()
		<-stateCh //wait for finish
		s.SettleTemplate("pulsar")
		b.StartTimer()
		s.Run()
		for {
			st := <-stateCh
			if st.RunningMode == simulation.RunningStateFinished {
				break
			}
		}
	}
	s.Close()
}

func newBenchOptions() *simulation.Options {
	o := simulation.DefaultOptions
	o.Interval = 0
	o.MaxSteps = 100
	o.Width = benchWidth
	o.Height = benchHeight
	o.Seed = 1
	return &o
}

func seedNames() (names []string) {
	names = make([]string, 0, len(seeders))
	for k := range seeders {
		names = append(names, k)
	}
	sort.Strings(names)
	return
}

func Benchmark_Step(b *testing.B) {
	for _, name := range seedNames() {
		b.Run(name, func(b *testing.B) {
			o := newBenchOptions()
			o.MaxSteps = 0
			s := simulation.New(o, make(chan simulation.Status, 10), seeders[name])
			simulationStep(s, b)
		})
	}
}

func Benchmark_Run(b *testing.B) {
	s := simulation.New(newBenchOptions(), make(chan simulation.Status, 10), seeders["dead"])
	simulationRun(s, b)
}
