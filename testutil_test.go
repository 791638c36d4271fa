package tensix

import (
	"encoding/binary"
	"testing"
)

// newTestDevice creates a Wormhole B0 device, the primary target
// architecture for the pipeline tests.
func newTestDevice(t *testing.T) *Device {
	t.Helper()
	d, err := NewDevice(WormholeB0)
	if err != nil {
		t.Fatalf("NewDevice: %v", err)
	}
	return d
}

// pattern returns n distinguishable bytes derived from seed.
func pattern(n int, seed byte) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = seed + byte(i*7)
	}
	return b
}

// cmdStream builds prefetch command streams byte-for-byte as host software
// would lay them out.
type cmdStream struct {
	buf []byte
}

func (s *cmdStream) bytes() []byte {
	return s.buf
}

func (s *cmdStream) pad(n int) {
	s.buf = append(s.buf, make([]byte, n)...)
}

func (s *cmdStream) header(cmdID byte) int {
	offset := len(s.buf)
	s.pad(CQPrefetchCmdSize)
	s.buf[offset] = cmdID
	return offset
}

func put32(b []byte, v uint32) { binary.LittleEndian.PutUint32(b, v) }
func put16(b []byte, v uint16) { binary.LittleEndian.PutUint16(b, v) }

// relayLinear appends a RELAY_LINEAR command (fixed 32-byte stride).
func (s *cmdStream) relayLinear(nocXY, addr, length uint32) {
	offset := s.header(CQPrefetchCmdRelayLinear)
	put32(s.buf[offset+4:], nocXY)
	put32(s.buf[offset+8:], addr)
	put32(s.buf[offset+12:], length)
	s.pad(CQPrefetchCmdBareMinSize - CQPrefetchCmdSize)
}

// relayPaged appends a RELAY_PAGED command (fixed 32-byte stride).
func (s *cmdStream) relayPaged(isDRAM bool, startPage uint8, baseAddr, pageSize, pages uint32, lengthAdjust uint16) {
	offset := s.header(CQPrefetchCmdRelayPaged)
	flags := startPage << CQPrefetchRelayPagedStartPageShift
	if isDRAM {
		flags |= 1 << CQPrefetchRelayPagedIsDRAMShift
	}
	s.buf[offset+1] = flags
	put16(s.buf[offset+2:], lengthAdjust)
	put32(s.buf[offset+4:], baseAddr)
	put32(s.buf[offset+8:], pageSize)
	put32(s.buf[offset+12:], pages)
	s.pad(CQPrefetchCmdBareMinSize - CQPrefetchCmdSize)
}

type pagedPackedSub struct {
	startPage   uint16
	logPageSize uint16
	baseAddr    uint32
	length      uint32
}

// relayPagedPacked appends a RELAY_PAGED_PACKED command with its
// sub-commands, padded to the 32-byte command alignment.
func (s *cmdStream) relayPagedPacked(totalLength uint32, subs []pagedPackedSub) {
	offset := s.header(CQPrefetchCmdRelayPagedPacked)
	size := CQPrefetchCmdSize + len(subs)*CQPrefetchRelayPagedPackedSubCmdSize
	stride := int(alignUpPow2(uint32(size), CQPrefetchCmdBareMinSize))
	put16(s.buf[offset+2:], uint16(len(subs)))
	put32(s.buf[offset+4:], totalLength)
	put32(s.buf[offset+8:], uint32(stride))
	for _, sub := range subs {
		base := len(s.buf)
		s.pad(CQPrefetchRelayPagedPackedSubCmdSize)
		put16(s.buf[base:], sub.startPage)
		put16(s.buf[base+2:], sub.logPageSize)
		put32(s.buf[base+4:], sub.baseAddr)
		put32(s.buf[base+8:], sub.length)
	}
	s.pad(offset + stride - len(s.buf))
}

func (s *cmdStream) relayInlineCmd(cmdID byte, payload []byte) {
	offset := s.header(cmdID)
	stride := int(alignUpPow2(uint32(CQPrefetchCmdSize+len(payload)), CQPrefetchCmdBareMinSize))
	put32(s.buf[offset+4:], uint32(len(payload)))
	put32(s.buf[offset+8:], uint32(stride))
	s.buf = append(s.buf, payload...)
	s.pad(offset + stride - len(s.buf))
}

// relayInline appends a RELAY_INLINE command carrying payload and flushing
// the staging buffer to the dispatcher.
func (s *cmdStream) relayInline(payload []byte) {
	s.relayInlineCmd(CQPrefetchCmdRelayInline, payload)
}

// relayInlineNoFlush appends a RELAY_INLINE_NOFLUSH command.
func (s *cmdStream) relayInlineNoFlush(payload []byte) {
	s.relayInlineCmd(CQPrefetchCmdRelayInlineNoFlush, payload)
}

func (s *cmdStream) stall() {
	s.header(CQPrefetchCmdStall)
	s.pad(CQPrefetchCmdBareMinSize - CQPrefetchCmdSize)
}

func (s *cmdStream) terminate() {
	s.header(CQPrefetchCmdTerminate)
	s.pad(CQPrefetchCmdBareMinSize - CQPrefetchCmdSize)
}

// Dispatch command builders produce the byte layout embedded in inline
// prefetch payloads (or fed straight to Dispatch.Run).

func dispatchHeader(cmdID byte) []byte {
	b := make([]byte, CQDispatchCmdSize)
	b[0] = cmdID
	return b
}

func dispatchWriteLinear(numMcastDests uint8, nocXY, addr uint32, data []byte) []byte {
	b := dispatchHeader(CQDispatchCmdWriteLinear)
	b[1] = numMcastDests
	put32(b[4:], nocXY)
	put32(b[8:], addr)
	put32(b[12:], uint32(len(data)))
	return append(b, data...)
}

func dispatchWritePaged(isDRAM bool, startPage uint16, baseAddr, pageSize, pages uint32, data []byte) []byte {
	b := dispatchHeader(CQDispatchCmdWritePaged)
	if isDRAM {
		b[1] = 1
	}
	put16(b[2:], startPage)
	put32(b[4:], baseAddr)
	put32(b[8:], pageSize)
	put32(b[12:], pages)
	return append(b, data...)
}

// writePackedSub describes one WRITE_PACKED destination; numMcastDests is
// used only when the command carries the MCAST flag.
type writePackedSub struct {
	nocXY         uint32
	numMcastDests uint32
}

func dispatchWritePacked(flags uint8, size uint16, addr uint32, subs []writePackedSub, records [][]byte) []byte {
	b := dispatchHeader(CQDispatchCmdWritePacked)
	b[1] = flags
	put16(b[2:], uint16(len(subs)))
	put32(b[4:], addr)
	put16(b[8:], size)
	mcast := flags&CQDispatchCmdPackedWriteFlagMcast != 0
	for _, sub := range subs {
		base := len(b)
		if mcast {
			b = append(b, make([]byte, CQDispatchWritePackedMulticastSubCmdSize)...)
			put32(b[base:], sub.nocXY)
			put32(b[base+4:], sub.numMcastDests)
		} else {
			b = append(b, make([]byte, CQDispatchWritePackedUnicastSubCmdSize)...)
			put32(b[base:], sub.nocXY)
		}
	}
	b = append(b, make([]byte, int(alignUpPow2(uint32(len(b)), l1NocAlignment))-len(b))...)
	padded := int(alignUpPow2(uint32(size), l1NocAlignment))
	for _, rec := range records {
		base := len(b)
		b = append(b, make([]byte, padded)...)
		copy(b[base:], rec)
	}
	return b
}

func dispatchWriteHost(payload []byte) []byte {
	b := dispatchHeader(CQDispatchCmdWriteLinearHHost)
	put32(b[12:], uint32(CQDispatchCmdSize+len(payload)))
	return append(b, payload...)
}

func dispatchWait() []byte {
	return dispatchHeader(CQDispatchCmdWait)
}

func dispatchTerminate() []byte {
	return dispatchHeader(CQDispatchCmdTerminate)
}

// concat joins dispatch command encodings into one stream.
func concat(cmds ...[]byte) []byte {
	var b []byte
	for _, c := range cmds {
		b = append(b, c...)
	}
	return b
}
