// Package cm implements the adaptive binary range coder and the
// context-mixing model of the BCM compression format. The model predicts
// each bit of a byte from three counter banks whose estimates are mixed
// and corrected by a secondary estimation table; the same model drives
// the encoder and the decoder, so both sides stay in sync bit for bit.
package cm

// Adaption rates of the three counter banks. Larger banks see fewer
// updates per counter and adapt more slowly.
const (
	shift0   = 2
	shift1   = 4
	shiftSSE = 6
)

// model holds the adaptive state shared by Encoder and Decoder: the
// per-position counters, the two order-1 banks indexed by the previous
// bytes and the SSE correction table. The state persists for a whole
// session; blocks must not reset it.
type model struct {
	counter0 [256]prob
	counter1 [256][256]prob
	counter2 [2][256][17]prob

	c1  int // previous byte
	c2  int // byte before the previous byte
	run int // length of the current byte run
}

func newModel() *model {
	m := new(model)
	for i := range m.counter0 {
		m.counter0[i] = probInit
	}
	for i := range m.counter1 {
		for j := range m.counter1[i] {
			m.counter1[i][j] = probInit
		}
	}
	// The SSE bins start out as the identity mapping over 16 probability
	// bins; the last two entries coincide because 16<<12 does not fit
	// into a prob. Bin 16 only serves as the upper neighbor of bin 15.
	for f := range m.counter2 {
		for ctx := range m.counter2[f] {
			for k := range m.counter2[f][ctx] {
				v := k
				if k == 16 {
					v--
				}
				m.counter2[f][ctx][k] = prob(v << 12)
			}
		}
	}
	return m
}

// begin starts a new byte. It updates the run length from the context
// established by the previous bytes and returns the run feature used to
// select the SSE table half. The run accounting happens before any bit
// of the byte is coded; the order is part of the format.
func (m *model) begin() int {
	if m.c1 == m.c2 {
		m.run++
	} else {
		m.run = 0
	}
	if m.run > 2 {
		return 1
	}
	return 0
}

// predict returns the scaled probability for the next bit in [0, 1<<18)
// together with the SSE bin that produced it. ctx is the bit context,
// the partial byte prefixed with a one bit.
func (m *model) predict(f, ctx int) (q uint32, j int) {
	p0 := int(m.counter0[ctx])
	p1 := int(m.counter1[m.c1][ctx])
	p2 := int(m.counter1[m.c2][ctx])
	p := (4*p0 + 3*p1 + p2) >> 3

	j = p >> 12
	x1 := int(m.counter2[f][ctx][j])
	x2 := int(m.counter2[f][ctx][j+1])
	ssep := x1 + ((x2-x1)*(p&4095))>>12

	return uint32(p + 3*ssep), j
}

// update adapts the counters consulted for the bit. The bank indexed by
// c2 contributes to the mix but is deliberately not updated; the format
// depends on this asymmetry.
func (m *model) update(f, ctx, j int, b bit) {
	m.counter0[ctx].update(b, shift0)
	m.counter1[m.c1][ctx].update(b, shift1)
	m.counter2[f][ctx][j].update(b, shiftSSE)
	m.counter2[f][ctx][j+1].update(b, shiftSSE)
}

// end completes a byte. ctx must be the final bit context in [256, 511];
// its low eight bits are the byte just coded.
func (m *model) end(ctx int) byte {
	c := ctx & 255
	m.c2 = m.c1
	m.c1 = c
	return byte(c)
}
