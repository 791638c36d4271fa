package tensix

import (
	"bytes"
	"testing"
)

func newTestPipeline(t *testing.T) (*Prefetch, *Dispatch, *Soc) {
	t.Helper()
	soc := newTestSoc(t)
	dispatch := NewDispatch(soc, NocArchWormholeB0())
	prefetch := NewPrefetch(soc, NocArchWormholeB0(), dispatch)
	return prefetch, dispatch, soc
}

func TestPrefetchRelayInline(t *testing.T) {
	p, _, soc := newTestPipeline(t)
	arch := NocArchWormholeB0()

	data := []byte{0, 1, 2, 3, 4, 5, 6, 7}
	var s cmdStream
	s.relayInline(dispatchWriteLinear(0, arch.NocXYEncoding(1, 1), 0x2000, data))
	if err := p.Run(s.bytes()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got, err := soc.MapL1(1, 1, 0x2000, 8)
	if err != nil {
		t.Fatalf("MapL1: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("inline write landed %x, want %x", got, data)
	}

	// The staging buffer is empty after a flush.
	if len(p.dispatchData) != 0 {
		t.Errorf("staging buffer holds %d bytes after flush", len(p.dispatchData))
	}
	// The cursor consumed the region exactly.
	if p.cmdPtr != len(s.bytes()) {
		t.Errorf("cursor = %d, want %d", p.cmdPtr, len(s.bytes()))
	}
}

func TestPrefetchRelayInlineNoFlush(t *testing.T) {
	p, _, _ := newTestPipeline(t)

	staged := pattern(CQDispatchCmdSize, 71)
	var s cmdStream
	s.relayInlineNoFlush(staged)
	if err := p.Run(s.bytes()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// No flush: the bytes stay staged for a later relay to complete.
	if !bytes.Equal(p.dispatchData, staged) {
		t.Errorf("staging buffer holds %x, want %x", p.dispatchData, staged)
	}
}

func TestPrefetchRelayLinear(t *testing.T) {
	p, _, soc := newTestPipeline(t)
	arch := NocArchWormholeB0()

	// Payload staged in worker (2, 2) L1, assembled with a no-flush header
	// and flushed by an empty inline command.
	payload := pattern(48, 81)
	l1, err := soc.MapL1(2, 2, 0x9000, 48)
	if err != nil {
		t.Fatalf("MapL1: %v", err)
	}
	copy(l1, payload)

	header := dispatchWriteLinear(0, arch.NocXYEncoding(1, 1), 0x4000, nil)
	put32(header[12:], 48) // length arrives out of band

	var s cmdStream
	s.relayInlineNoFlush(header)
	s.relayLinear(arch.NocXYEncoding(2, 2), 0x9000, 48)
	s.relayInline(nil)
	if err := p.Run(s.bytes()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got, err := soc.MapL1(1, 1, 0x4000, 48)
	if err != nil {
		t.Fatalf("MapL1: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("relayed write landed %x, want %x", got, payload)
	}
}

func TestPrefetchRelayPaged(t *testing.T) {
	p, _, soc := newTestPipeline(t)
	noc := NewNoc(soc, NocArchWormholeB0())
	arch := NocArchWormholeB0()

	// Stage four interleaved DRAM pages, then relay three of them (starting
	// at page 1) into a dispatch write, trimming 8 bytes off the tail.
	const pageSize = 32
	var all []byte
	for id := uint32(0); id < 4; id++ {
		page := pattern(pageSize, byte(0x10+id))
		all = append(all, page...)
		if err := noc.Write(page, noc.InterleavedAddr(true, 0x200, pageSize, id, 0)); err != nil {
			t.Fatalf("Write page %d: %v", id, err)
		}
	}
	want := all[pageSize : 4*pageSize-8]

	header := dispatchWriteLinear(0, arch.NocXYEncoding(1, 1), 0x5000, nil)
	put32(header[12:], uint32(len(want)))

	var s cmdStream
	s.relayInlineNoFlush(header)
	s.relayPaged(true, 1, 0x200, pageSize, 3, 8)
	s.relayInline(nil)
	if err := p.Run(s.bytes()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got, err := soc.MapL1(1, 1, 0x5000, uint32(len(want)))
	if err != nil {
		t.Fatalf("MapL1: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("paged relay landed %x, want %x", got, want)
	}
}

func TestPrefetchRelayPagedLengthAdjustInvariant(t *testing.T) {
	p, _, _ := newTestPipeline(t)

	var s cmdStream
	s.relayPaged(true, 0, 0, 32, 1, 32) // length_adjust == page_size
	if err := p.Run(s.bytes()); err == nil {
		t.Errorf("expected error for length_adjust >= page_size")
	}
}

func TestPrefetchRelayPagedPacked(t *testing.T) {
	p, _, soc := newTestPipeline(t)
	noc := NewNoc(soc, NocArchWormholeB0())
	arch := NocArchWormholeB0()

	// Two runs of interleaved DRAM data with different page sizes.
	first := pattern(96, 0x21) // 64-byte pages at base 0x1000, 1.5 pages
	for id := uint32(0); id < 2; id++ {
		end := min(uint32(len(first)), (id+1)*64)
		if err := noc.Write(first[id*64:end], noc.InterleavedAddr(true, 0x1000, 64, id, 0)); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	second := pattern(32, 0x51) // one 32-byte page at base 0x2000, page 3
	if err := noc.Write(second, noc.InterleavedAddr(true, 0x2000, 32, 3, 0)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := append(append([]byte{}, first...), second...)

	header := dispatchWriteLinear(0, arch.NocXYEncoding(1, 1), 0x6000, nil)
	put32(header[12:], uint32(len(want)))

	var s cmdStream
	s.relayInlineNoFlush(header)
	s.relayPagedPacked(uint32(len(want)), []pagedPackedSub{
		{startPage: 0, logPageSize: 6, baseAddr: 0x1000, length: 96},
		{startPage: 3, logPageSize: 5, baseAddr: 0x2000, length: 32},
	})
	s.relayInline(nil)
	if err := p.Run(s.bytes()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got, err := soc.MapL1(1, 1, 0x6000, uint32(len(want)))
	if err != nil {
		t.Fatalf("MapL1: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("packed paged relay mismatch")
	}
}

func TestPrefetchStallTerminate(t *testing.T) {
	p, _, _ := newTestPipeline(t)

	var s cmdStream
	s.stall()
	s.terminate()
	if err := p.Run(s.bytes()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if p.cmdPtr != len(s.bytes()) {
		t.Errorf("cursor = %d, want %d", p.cmdPtr, len(s.bytes()))
	}
}

func TestPrefetchErrors(t *testing.T) {
	arch := NocArchWormholeB0()

	t.Run("unknown command", func(t *testing.T) {
		p, _, _ := newTestPipeline(t)
		var s cmdStream
		s.header(0x7F)
		s.pad(CQPrefetchCmdBareMinSize - CQPrefetchCmdSize)
		if err := p.Run(s.bytes()); err == nil {
			t.Errorf("expected error for unknown command id")
		}
	})

	t.Run("out-of-scope command", func(t *testing.T) {
		p, _, _ := newTestPipeline(t)
		var s cmdStream
		s.header(CQPrefetchCmdExecBuf)
		s.pad(CQPrefetchCmdBareMinSize - CQPrefetchCmdSize)
		if err := p.Run(s.bytes()); err == nil {
			t.Errorf("expected error for EXEC_BUF")
		}
	})

	t.Run("truncated header", func(t *testing.T) {
		p, _, _ := newTestPipeline(t)
		if err := p.Run(make([]byte, CQPrefetchCmdSize-1)); err == nil {
			t.Errorf("expected error for truncated header")
		}
	})

	t.Run("truncated inline payload", func(t *testing.T) {
		p, _, _ := newTestPipeline(t)
		var s cmdStream
		s.relayInlineNoFlush(pattern(64, 1))
		if err := p.Run(s.bytes()[:CQPrefetchCmdSize+32]); err == nil {
			t.Errorf("expected error for truncated payload")
		}
	})

	t.Run("staging kept on failure", func(t *testing.T) {
		p, _, _ := newTestPipeline(t)
		var s cmdStream
		s.relayInlineNoFlush(pattern(16, 5))
		s.header(0x7F)
		s.pad(CQPrefetchCmdBareMinSize - CQPrefetchCmdSize)
		if err := p.Run(s.bytes()); err == nil {
			t.Fatalf("expected error")
		}
		if len(p.dispatchData) != 16 {
			t.Errorf("staging buffer lost on failure: %d bytes", len(p.dispatchData))
		}
	})

	t.Run("dispatch error aborts run", func(t *testing.T) {
		p, _, _ := newTestPipeline(t)
		// Inline flush carrying a write to a router-only cell.
		var s cmdStream
		s.relayInline(dispatchWriteLinear(0, arch.NocXYEncoding(0, 2), 0, pattern(4, 1)))
		s.stall()
		if err := p.Run(s.bytes()); err == nil {
			t.Errorf("expected error from dispatch stage")
		}
	})
}
