package synth

import "errors"

// recordSink keeps every chunk it is given.
type recordSink struct {
	chunks [][]byte
	ended  int
	failAt int
}

var errSinkFull = errors.New("sink full")

func (s *recordSink) Consume(chunk []byte) error {
	if chunk == nil {
		s.ended++
		return nil
	}
	if s.failAt > 0 && len(s.chunks)+1 == s.failAt {
		return errSinkFull
	}
	s.chunks = append(s.chunks, append([]byte(nil), chunk...))
	return nil
}

func (s *recordSink) bytes() []byte {
	var out []byte
	for _, c := range s.chunks {
		out = append(out, c...)
	}
	return out
}
