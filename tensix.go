// Package tensix implements a software emulator for a tile-based AI
// accelerator: a grid of compute cores joined by a Network-on-Chip (NoC),
// backed by banked off-chip DRAM, per-worker L1 scratchpads, and a
// host-visible system memory region.
//
// The emulator reproduces the observable memory effects of the real device's
// command-queue pipeline so that host software built for the hardware runs
// unchanged against it. It models memory transport and addressing only:
// there is no per-RISC simulation, no cycle timing, and no arithmetic.
//
// Host software drives a Device by enqueuing a packed byte stream of
// command-queue commands. The stream is interpreted by a two-stage
// Prefetch -> Dispatch pipeline: Prefetch assembles Dispatch input (copying
// inline bytes or pulling data from NoC-addressed memory), and Dispatch
// issues the resulting writes into the memory fabric or back to host
// buffers. Execution is single-threaded and strictly synchronous; effects
// are observable in program order when RunCommands returns.
package tensix

// Arch selects a device architecture profile.
type Arch int

const (
	Grayskull Arch = iota
	WormholeB0
)

// String returns a human-readable name for this architecture.
func (a Arch) String() string {
	switch a {
	case Grayskull:
		return "grayskull"
	case WormholeB0:
		return "wormhole_b0"
	default:
		return "unknown"
	}
}

// CoreType identifies the function of a grid cell. It is fixed per (x,y)
// when the SoC architecture table is built.
type CoreType int

const (
	CoreInvalid CoreType = iota
	CoreARC
	CoreDRAM
	CoreEth
	CorePCIe
	CoreWorker
	CoreHarvested
	CoreRouterOnly
)

// String returns a human-readable name for this core type.
func (t CoreType) String() string {
	switch t {
	case CoreARC:
		return "arc"
	case CoreDRAM:
		return "dram"
	case CoreEth:
		return "eth"
	case CorePCIe:
		return "pcie"
	case CoreWorker:
		return "worker"
	case CoreHarvested:
		return "harvested"
	case CoreRouterOnly:
		return "router_only"
	default:
		return "invalid"
	}
}

// WorkerCoreType refines CoreWorker cells by their role.
type WorkerCoreType int

const (
	WorkerNone WorkerCoreType = iota
	WorkerComputeAndStorage
	WorkerStorageOnly
	WorkerDispatch
)

// String returns a human-readable name for this worker core type.
func (t WorkerCoreType) String() string {
	switch t {
	case WorkerComputeAndStorage:
		return "compute_and_storage"
	case WorkerStorageOnly:
		return "storage_only"
	case WorkerDispatch:
		return "dispatch"
	default:
		return "none"
	}
}
