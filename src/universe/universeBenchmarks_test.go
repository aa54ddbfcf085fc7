package universe

import (
	"fmt"
	"testing"
)

var benchSizes = [][2]int{{40, 15}, {200, 200}, {1024, 1024}}

func Benchmark_Tick(b *testing.B) {
	for _, s := range benchSizes {
		b.Run(fmt.Sprintf("%vx%v", s[0], s[1]), func(b *testing.B) {
			u := New(s[0], s[1], Random, WithSeed(1))
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				u.Tick()
			}
		})
	}
}

func Benchmark_AliveCells(b *testing.B) {
	u := New(200, 200, Random, WithSeed(1))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = u.AliveCells()
	}
}
