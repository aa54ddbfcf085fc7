package universe

var (
	// .#.
	// ..#
	// ###
	spaceship = [][2]int{{0, 1}, {1, 2}, {2, 0}, {2, 1}, {2, 2}}

	pulsar = pulsarOffsets()
)

//Spaceship returns the glider offsets as row, col pairs
func Spaceship() [][2]int {
	return append([][2]int(nil), spaceship...)
}

//Pulsar returns the pulsar offsets as row, col pairs
func Pulsar() [][2]int {
	return append([][2]int(nil), pulsar...)
}

//pulsarOffsets builds the period 3 oscillator inside the 13x13 box
func pulsarOffsets() [][2]int {
	offsets := make([][2]int, 0, 48)
	for _, a := range [4]int{0, 5, 7, 12} {
		for _, b := range [6]int{2, 3, 4, 8, 9, 10} {
			offsets = append(offsets, [2]int{a, b}, [2]int{b, a})
		}
	}
	return offsets
}

//Stamp makes alive the cells at row, col shifted by offsets
//the shifted positions wrap around the edges, other cells are untouched
func (u *Universe) Stamp(row int, col int, offsets [][2]int) {
	for _, o := range offsets {
		r := (row + u.height + o[0]) % u.height
		c := (col + u.width + o[1]) % u.width
		u.cells.set(u.GetIndex(r, c), true)
	}
}

//AddSpaceship stamps the glider with its top left corner at row, col
func (u *Universe) AddSpaceship(row int, col int) {
	u.Stamp(row, col, spaceship)
}

//AddPulsar stamps the pulsar with its top left corner at row, col
func (u *Universe) AddPulsar(row int, col int) {
	u.Stamp(row, col, pulsar)
}

//InitSpaceship stamps the glider at the top left corner of the universe
func (u *Universe) InitSpaceship() {
	u.AddSpaceship(0, 0)
}
