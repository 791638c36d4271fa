package tensix

import (
	"encoding/binary"
	"fmt"
)

// Host-visible sysmem offsets polled as doorbells by host busy-wait loops.
// The emulator has no command processor advancing them, so reads are stubbed:
// the read pointer reads as 0 and the finish pointer as 1, which is exactly
// enough for the host loops to observe progress.
const (
	HostCQReadPtr   = 16
	HostCQFinishPtr = 20
)

// RunMsgAddr is the worker mailbox word holding the run-message handshake.
// Reads of exactly this word clear it, standing in for the firmware that
// would acknowledge the message on real hardware.
const RunMsgAddr = 28

// KernelLauncher is the external compute collaborator notified by
// LaunchKernels. The core treats kernel execution as opaque.
type KernelLauncher interface {
	LaunchKernels()
}

// Device is the host-facing wrapper over one emulated chip: the memory
// fabric plus the Prefetch/Dispatch command pipeline. All methods are
// blocking and must be serialized by the caller.
type Device struct {
	arch     Arch
	socArch  *SocArch
	nocArch  NocArch
	soc      *Soc
	dispatch *Dispatch
	prefetch *Prefetch
	launcher KernelLauncher
}

// NewDevice creates a device for the given architecture profile with all
// worker L1 buffers allocated. An external runtime may replace individual
// L1 buffers through SetWorkerL1 before use.
func NewDevice(arch Arch) (*Device, error) {
	var socArch *SocArch
	var nocArch NocArch
	switch arch {
	case Grayskull:
		socArch = SocArchGrayskull()
		nocArch = NocArchGrayskull()
	case WormholeB0:
		socArch = SocArchWormholeB0()
		nocArch = NocArchWormholeB0()
	default:
		return nil, fmt.Errorf("tensix: unknown architecture %d", arch)
	}

	d := &Device{
		arch:    arch,
		socArch: socArch,
		nocArch: nocArch,
		soc:     NewSoc(socArch, sysMemSize),
	}
	for lx := 0; lx < socArch.WorkerXSize(); lx++ {
		for ly := 0; ly < socArch.WorkerYSize(); ly++ {
			if err := d.soc.SetWorkerL1(lx, ly, make([]byte, socArch.WorkerL1Size())); err != nil {
				return nil, err
			}
		}
	}
	d.dispatch = NewDispatch(d.soc, nocArch)
	d.prefetch = NewPrefetch(d.soc, nocArch, d.dispatch)
	return d, nil
}

// Arch returns the device's architecture profile.
func (d *Device) Arch() Arch { return d.arch }

// Soc returns the device's memory fabric.
func (d *Device) Soc() *Soc { return d.soc }

// NocArch returns the device's NoC address table.
func (d *Device) NocArch() NocArch { return d.nocArch }

// SetWorkerL1 replaces the L1 buffer of the worker at logical coordinates.
func (d *Device) SetWorkerL1(logicalX, logicalY int, buf []byte) error {
	return d.soc.SetWorkerL1(logicalX, logicalY, buf)
}

// SetKernelLauncher installs the compute collaborator signalled by
// LaunchKernels.
func (d *Device) SetKernelLauncher(l KernelLauncher) {
	d.launcher = l
}

// Start is a lifecycle no-op; the emulator has no clocks to start.
func (d *Device) Start() {}

// Stop is a lifecycle no-op.
func (d *Device) Stop() {}

// DeassertRISCReset is a lifecycle no-op; per-RISC state is not modeled.
func (d *Device) DeassertRISCReset() {}

// AssertRISCReset is a lifecycle no-op.
func (d *Device) AssertRISCReset() {}

// Write stores data at addr on the core at routing coordinates (x,y).
// DRAM cells route through the resolved channel, worker cells to L1; any
// other core type is an error.
func (d *Device) Write(data []byte, x, y int, addr uint64) error {
	ct, err := d.soc.CoreTypeAt(x, y)
	if err != nil {
		return err
	}
	switch ct {
	case CoreDRAM:
		dst, err := d.mapDRAM(x, y, addr, uint32(len(data)))
		if err != nil {
			return err
		}
		copy(dst, data)
		return nil
	case CoreWorker:
		if addr > 0xFFFFFFFF {
			return fmt.Errorf("tensix: L1 address 0x%x at (%d, %d) is out of bounds", addr, x, y)
		}
		dst, err := d.soc.MapL1(x, y, uint32(addr), uint32(len(data)))
		if err != nil {
			return err
		}
		copy(dst, data)
		return nil
	default:
		return fmt.Errorf("tensix: unsupported device write for core type %v at (%d, %d)", ct, x, y)
	}
}

// Read loads len(data) bytes from addr on the core at (x,y).
func (d *Device) Read(data []byte, x, y int, addr uint64) error {
	ct, err := d.soc.CoreTypeAt(x, y)
	if err != nil {
		return err
	}
	switch ct {
	case CoreDRAM:
		src, err := d.mapDRAM(x, y, addr, uint32(len(data)))
		if err != nil {
			return err
		}
		copy(data, src)
		return nil
	case CoreWorker:
		if addr > 0xFFFFFFFF {
			return fmt.Errorf("tensix: L1 address 0x%x at (%d, %d) is out of bounds", addr, x, y)
		}
		src, err := d.soc.MapL1(x, y, uint32(addr), uint32(len(data)))
		if err != nil {
			return err
		}
		copy(data, src)
		if addr == RunMsgAddr && len(data) == 4 {
			clear(src)
		}
		return nil
	default:
		return fmt.Errorf("tensix: unsupported device read for core type %v at (%d, %d)", ct, x, y)
	}
}

func (d *Device) mapDRAM(x, y int, addr uint64, size uint32) ([]byte, error) {
	channel, err := d.soc.CoreDRAMChannel(x, y)
	if err != nil {
		return nil, err
	}
	if addr > 0xFFFFFFFF {
		return nil, fmt.Errorf("tensix: DRAM address 0x%x at (%d, %d) is out of bounds", addr, x, y)
	}
	return d.soc.MapDRAM(channel, uint32(addr), size)
}

// WriteToSysMem stores data into system memory at addr.
func (d *Device) WriteToSysMem(data []byte, addr uint64) error {
	if addr > 0xFFFFFFFF {
		return fmt.Errorf("tensix: sysmem address 0x%x is out of bounds", addr)
	}
	dst, err := d.soc.MapSysMem(uint32(addr), uint32(len(data)))
	if err != nil {
		return err
	}
	copy(dst, data)
	return nil
}

// ReadFromSysMem loads len(data) bytes of system memory at addr. Reads
// starting at the host command-queue doorbell words return the stubbed
// values regardless of prior writes.
func (d *Device) ReadFromSysMem(data []byte, addr uint64) error {
	if addr > 0xFFFFFFFF {
		return fmt.Errorf("tensix: sysmem address 0x%x is out of bounds", addr)
	}
	src, err := d.soc.MapSysMem(uint32(addr), uint32(len(data)))
	if err != nil {
		return err
	}
	switch uint32(addr) {
	case HostCQReadPtr:
		if len(src) >= 4 {
			binary.LittleEndian.PutUint32(src, 0)
		}
	case HostCQFinishPtr:
		if len(src) >= 4 {
			binary.LittleEndian.PutUint32(src, 1)
		}
	}
	copy(data, src)
	return nil
}

// HostDMAAddress returns the system memory window starting at offset, for
// zero-copy producer access.
func (d *Device) HostDMAAddress(offset uint64) ([]byte, error) {
	if offset >= uint64(d.soc.SysMemSize()) {
		return nil, fmt.Errorf("tensix: sysmem offset 0x%x is out of bounds", offset)
	}
	return d.soc.MapSysMem(uint32(offset), d.soc.SysMemSize()-uint32(offset))
}

// ConfigureReadBuffer registers the host destination for dispatch commands
// that return data to the host. It must be called before running a command
// stream containing WRITE_LINEAR_H_HOST.
func (d *Device) ConfigureReadBuffer(paddedPageSize uint32, dst []byte, dstOffset, numPagesRead uint32) {
	d.dispatch.ConfigureReadBuffer(paddedPageSize, dst, dstOffset, numPagesRead)
}

// RunCommands drives the prefetch stage over the command stream and blocks
// until every effect is observable.
func (d *Device) RunCommands(cmdReg []byte) error {
	return d.prefetch.Run(cmdReg)
}

// LaunchKernels signals the external compute collaborator, if any.
func (d *Device) LaunchKernels() {
	if d.launcher != nil {
		d.launcher.LaunchKernels()
	}
}
