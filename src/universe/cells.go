package universe

//cells is the packed cell storage, one bit per cell
//cell idx lives in byte idx>>3, bit 1<<(idx&7)
type cells struct {
	n    int
	bits []byte
}

func newCells(n int) cells {
	return cells{n: n, bits: make([]byte, packedLen(n))}
}

//packedLen returns the number of bytes required for n cells
func packedLen(n int) int {
	return (n + 7) >> 3
}

func (c *cells) get(idx int) bool {
	return c.bits[idx>>3]&(1<<uint(idx&7)) != 0
}

func (c *cells) set(idx int, alive bool) {
	if alive {
		c.bits[idx>>3] |= 1 << uint(idx&7)
	} else {
		c.bits[idx>>3] &^= 1 << uint(idx&7)
	}
}

func (c *cells) toggle(idx int) {
	c.bits[idx>>3] ^= 1 << uint(idx&7)
}

//reset resizes the storage to n cells and kills all of them
//the backing array is reused when it is big enough
func (c *cells) reset(n int) {
	l := packedLen(n)
	if cap(c.bits) < l {
		c.bits = make([]byte, l)
	} else {
		c.bits = c.bits[:l]
		for i := range c.bits {
			c.bits[i] = 0
		}
	}
	c.n = n
}

//count returns the number of live cells
func (c *cells) count() int {
	total := 0
	for _, b := range c.bits {
		for ; b != 0; b &= b - 1 {
			total++
		}
	}
	return total
}

func (c *cells) clone() cells {
	b := make([]byte, len(c.bits))
	copy(b, c.bits)
	return cells{n: c.n, bits: b}
}
