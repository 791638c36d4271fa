package tensix

import "fmt"

// Soc is the memory fabric of one die: the host-visible system memory
// buffer, one buffer per DRAM channel, and an L1 scratchpad slot per worker
// core. It translates validated addresses into byte windows; every access
// path into device memory goes through one of the Map functions.
//
// Worker L1 buffers are installed separately with SetWorkerL1 so a
// higher-level runtime can supply over-sized memories; the fabric borrows
// the buffers and never copies them.
type Soc struct {
	arch *SocArch

	xSize       int
	ySize       int
	workerXSize int
	workerYSize int

	sysMem    []byte
	dramBanks [][]byte

	// Indexed x*ySize+y; nil for cells without a worker core.
	cores []*socCore
}

type socCore struct {
	coreType CoreType
	l1       []byte
}

// NewSoc builds the fabric for an architecture. DRAM buffers are allocated
// eagerly; worker L1 slots start empty.
func NewSoc(arch *SocArch, sysMemSize uint32) *Soc {
	s := &Soc{
		arch:        arch,
		xSize:       arch.XSize(),
		ySize:       arch.YSize(),
		workerXSize: arch.WorkerXSize(),
		workerYSize: arch.WorkerYSize(),
		sysMem:      make([]byte, sysMemSize),
	}
	s.dramBanks = make([][]byte, arch.NumDRAMChannels())
	for i := range s.dramBanks {
		s.dramBanks[i] = make([]byte, arch.DRAMBankSize())
	}
	s.cores = make([]*socCore, s.xSize*s.ySize)
	for x := 0; x < s.xSize; x++ {
		for y := 0; y < s.ySize; y++ {
			ct, _ := arch.CoreTypeAt(x, y)
			// so far, only worker cores are relevant
			if ct == CoreWorker {
				s.cores[s.xy(x, y)] = &socCore{coreType: ct}
			}
		}
	}
	return s
}

func (s *Soc) xy(x, y int) int {
	return x*s.ySize + y
}

// Arch returns the architecture table this fabric was built from.
func (s *Soc) Arch() *SocArch { return s.arch }

// WorkerXSize returns the number of worker columns.
func (s *Soc) WorkerXSize() int { return s.workerXSize }

// WorkerYSize returns the number of worker rows.
func (s *Soc) WorkerYSize() int { return s.workerYSize }

// WorkerL1Size returns the per-worker L1 size in bytes.
func (s *Soc) WorkerL1Size() uint32 { return s.arch.WorkerL1Size() }

// DRAMBankSize returns the size of one DRAM channel in bytes.
func (s *Soc) DRAMBankSize() uint32 { return s.arch.DRAMBankSize() }

// CoreTypeAt returns the core type at routing coordinates (x,y).
func (s *Soc) CoreTypeAt(x, y int) (CoreType, error) {
	return s.arch.CoreTypeAt(x, y)
}

// WorkerCoreTypeAt returns the worker core type at (x,y).
func (s *Soc) WorkerCoreTypeAt(x, y int) (WorkerCoreType, error) {
	return s.arch.WorkerCoreTypeAt(x, y)
}

// CoreDRAMChannel resolves the DRAM channel reached through (x,y).
func (s *Soc) CoreDRAMChannel(x, y int) (int, error) {
	return s.arch.CoreDRAMChannel(x, y)
}

// LogicalToRoutingCoord maps logical worker coordinates to routing
// coordinates.
func (s *Soc) LogicalToRoutingCoord(logicalX, logicalY int) (x, y int, err error) {
	x, err = s.arch.WorkerLogicalToRoutingX(logicalX)
	if err != nil {
		return 0, 0, err
	}
	y, err = s.arch.WorkerLogicalToRoutingY(logicalY)
	if err != nil {
		return 0, 0, err
	}
	if x < 0 || y < 0 {
		return 0, 0, fmt.Errorf(
			"tensix: invalid logical worker core coordinates (%d, %d)", logicalX, logicalY)
	}
	return x, y, nil
}

// SysMemSize returns the system memory size in bytes.
func (s *Soc) SysMemSize() uint32 {
	return uint32(len(s.sysMem))
}

// MapSysMem returns the size-byte window of system memory at addr.
func (s *Soc) MapSysMem(addr, size uint32) ([]byte, error) {
	end := uint64(addr) + uint64(size)
	if end > uint64(len(s.sysMem)) {
		return nil, fmt.Errorf(
			"tensix: sysmem address range [0x%x, 0x%x) is out of bounds", addr, end)
	}
	return s.sysMem[addr:end], nil
}

// DRAMSize returns the size of one DRAM channel buffer.
func (s *Soc) DRAMSize(dramChannel int) (uint32, error) {
	if dramChannel < 0 || dramChannel >= len(s.dramBanks) {
		return 0, fmt.Errorf("tensix: DRAM channel %d is out of range", dramChannel)
	}
	return uint32(len(s.dramBanks[dramChannel])), nil
}

// MapDRAM returns the size-byte window of a DRAM channel at addr.
func (s *Soc) MapDRAM(dramChannel int, addr, size uint32) ([]byte, error) {
	if dramChannel < 0 || dramChannel >= len(s.dramBanks) {
		return nil, fmt.Errorf("tensix: DRAM channel %d is out of range", dramChannel)
	}
	bank := s.dramBanks[dramChannel]
	end := uint64(addr) + uint64(size)
	if end > uint64(len(bank)) {
		return nil, fmt.Errorf(
			"tensix: DRAM channel %d address range [0x%x, 0x%x) is out of bounds",
			dramChannel, addr, end)
	}
	return bank[addr:end], nil
}

// L1Size returns the size of the L1 buffer attached at (x,y).
func (s *Soc) L1Size(x, y int) (uint32, error) {
	l1, err := s.workerL1(x, y)
	if err != nil {
		return 0, err
	}
	return uint32(len(l1)), nil
}

// MapL1 returns the size-byte window of the worker L1 at (x,y).
func (s *Soc) MapL1(x, y int, addr, size uint32) ([]byte, error) {
	l1, err := s.workerL1(x, y)
	if err != nil {
		return nil, err
	}
	end := uint64(addr) + uint64(size)
	if end > uint64(len(l1)) {
		return nil, fmt.Errorf(
			"tensix: L1 address range [0x%x, 0x%x) at (%d, %d) is out of bounds",
			addr, end, x, y)
	}
	return l1[addr:end], nil
}

func (s *Soc) workerL1(x, y int) ([]byte, error) {
	if x < 0 || x >= s.xSize || y < 0 || y >= s.ySize {
		return nil, fmt.Errorf("tensix: core coordinates (%d, %d) are out of range", x, y)
	}
	core := s.cores[s.xy(x, y)]
	if core == nil || core.coreType != CoreWorker {
		return nil, fmt.Errorf("tensix: no worker core at (%d, %d)", x, y)
	}
	if core.l1 == nil {
		return nil, fmt.Errorf("tensix: no L1 attached to worker core at (%d, %d)", x, y)
	}
	return core.l1, nil
}

// SetWorkerL1 installs the L1 buffer of the worker at logical coordinates.
// The buffer must be at least WorkerL1Size bytes; larger buffers are allowed
// so an external runtime can over-size L1. The fabric borrows buf.
func (s *Soc) SetWorkerL1(logicalX, logicalY int, buf []byte) error {
	if uint32(len(buf)) < s.arch.WorkerL1Size() {
		return fmt.Errorf(
			"tensix: L1 buffer of %d bytes is smaller than worker L1 size %d",
			len(buf), s.arch.WorkerL1Size())
	}
	x, y, err := s.LogicalToRoutingCoord(logicalX, logicalY)
	if err != nil {
		return err
	}
	core := s.cores[s.xy(x, y)]
	if core == nil || core.coreType != CoreWorker {
		return fmt.Errorf("tensix: no worker core at (%d, %d)", x, y)
	}
	core.l1 = buf
	return nil
}
