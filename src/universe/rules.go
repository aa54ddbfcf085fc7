package universe

//transition is the next state of a cell keyed by the live neighbours count
type transition [9]bool

//lifeRules is the classic Life rule table: rules[alive][neighbours]
var lifeRules = [2]transition{
	//dead cell
	{
		0: false,
		1: false,
		2: false,
		3: true, //birth
		4: false,
		5: false,
		6: false,
		7: false,
		8: false,
	},
	//live cell
	{
		0: false, //underpopulation
		1: false, //underpopulation
		2: true,
		3: true,
		4: false, //overcrowding
		5: false,
		6: false,
		7: false,
		8: false,
	},
}

//NextState returns the state of the cell in the next generation
//n is the count of live cells in the Moore neighbourhood and must be in [0,8]
func NextState(alive bool, n uint8) bool {
	if alive {
		return lifeRules[1][n]
	}
	return lifeRules[0][n]
}
