package io

// Record keeps every value sent to it, up to an optional Capacity.
type Record struct {
	Capacity int // Maximum values held; zero is unlimited.
	Data     []uint64
}

var _ Channel = (*Record)(nil)

// Rewind discards all recorded values.
func (rc *Record) Rewind() {
	rc.Data = rc.Data[:0]
}

// Send appends a value to the record.
func (rc *Record) Send(value uint64) (err error) {
	if rc.Capacity > 0 && len(rc.Data) >= rc.Capacity {
		err = ErrChannelFull
		return
	}

	rc.Data = append(rc.Data, value)

	return
}
