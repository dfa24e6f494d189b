package output

import (
	"encoding/binary"
	"fmt"
)

// pcmStream streams headerless 16-bit little-endian mono PCM.
type pcmStream struct {
	data []byte
	pos  int
}

func newPCMStream(data []byte) *pcmStream {
	return &pcmStream{data: data}
}

func (p *pcmStream) Stream(samples [][2]float64) (int, bool) {
	total := p.Len()
	n := 0
	for n < len(samples) && p.pos < total {
		v := int16(binary.LittleEndian.Uint16(p.data[2*p.pos:]))
		x := float64(v) / 32768
		samples[n] = [2]float64{x, x}
		n++
		p.pos++
	}
	return n, n > 0
}

func (p *pcmStream) Err() error { return nil }

func (p *pcmStream) Len() int { return len(p.data) / 2 }

func (p *pcmStream) Position() int { return p.pos }

func (p *pcmStream) Seek(pos int) error {
	if pos < 0 || pos > p.Len() {
		return fmt.Errorf("seek position %d out of range [0, %d]", pos, p.Len())
	}
	p.pos = pos
	return nil
}

func (p *pcmStream) Close() error { return nil }
