package main

// snapshotStack keeps recent canvas states as binary16 buffers. Taking a
// snapshot packs the live float32 channels; restoring pops and unpacks the
// most recent one. The stack is bounded, dropping the oldest entry when full.
type snapshotStack struct {
	frames [][]uint16
	limit  int
}

// newSnapshotStack returns a stack holding at most limit snapshots.
func newSnapshotStack(limit int) *snapshotStack {
	if limit < 1 {
		limit = 1
	}
	return &snapshotStack{limit: limit}
}

// take records the current canvas state.
func (s *snapshotStack) take(cv *canvas) {
	frame := make([]uint16, len(cv.channels))
	packHalfChannels(frame, cv.channels)
	if len(s.frames) >= s.limit {
		copy(s.frames, s.frames[1:])
		s.frames = s.frames[:len(s.frames)-1]
	}
	s.frames = append(s.frames, frame)
}

// restore pops the most recent snapshot back into the canvas. Returns false
// when the stack is empty or the snapshot no longer matches the canvas size.
func (s *snapshotStack) restore(cv *canvas) bool {
	if len(s.frames) == 0 {
		return false
	}
	frame := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	if len(frame) != len(cv.channels) {
		return false
	}
	unpackHalfChannels(cv.channels, frame)
	cv.writeGen++
	return true
}

// depth returns how many snapshots are currently held.
func (s *snapshotStack) depth() int { return len(s.frames) }
