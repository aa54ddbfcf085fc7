package universe

import (
	"math/rand"
	"time"
)

//Source is the uniform random number source on [0,1)
//*rand.Rand satisfies it
type Source interface {
	Float64() float64
}

//liveThreshold is the probability of a random cell to be alive
const liveThreshold = 0.5

//Seeder decides the initial state of the cell with the given index
type Seeder func(u *Universe, idx int) bool

var (
	//Dead leaves all cells dead
	Dead Seeder = func(*Universe, int) bool { return false }

	//Random makes each cell alive with 50% probability using the universe's random source
	Random Seeder = func(u *Universe, _ int) bool { return u.rnd.Float64() < liveThreshold }

	//Pattern is the deterministic arithmetic pattern used for reproducible fixtures
	Pattern Seeder = func(_ *Universe, idx int) bool { return idx%2 == 0 || idx%7 == 0 }
)

//Option configures the Universe on creation
type Option func(u *Universe)

//WithSource sets the random source used by Random seeding and RandomCells
func WithSource(s Source) Option {
	return func(u *Universe) {
		u.rnd = s
	}
}

//WithSeed sets a deterministic math/rand source
func WithSeed(seed int64) Option {
	return WithSource(rand.New(rand.NewSource(seed)))
}

func defaultSource() Source {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
