package tensix

// SocArchWormholeB0 returns the shared Wormhole B0 die description:
// a 10x12 grid with 12 DRAM channels spread over shared NoC endpoints,
// ethernet cores along rows 0 and 6, and 1,499,136-byte worker L1.
func SocArchWormholeB0() *SocArch { return socArchWormholeB0Table }

var socArchWormholeB0Table = newSocArchWormholeB0()

func newSocArchWormholeB0() *SocArch {
	b := socArchBuilder{NewSocArch(
		10,         // x size
		12,         // y size
		1499136,    // worker L1 size
		1499136,    // storage core L1 bank size
		1073741824, // DRAM bank size
		262144,     // eth L1 size
		12,         // DRAM channels
	)}

	b.core(CoreARC, 0, 10)

	b.core(CorePCIe, 0, 3)

	b.core(CoreDRAM, 0, 0) // channel 0, 1
	b.core(CoreDRAM, 0, 1)
	b.core(CoreDRAM, 0, 11)
	b.core(CoreDRAM, 0, 5) // channel 2, 3
	b.core(CoreDRAM, 0, 6)
	b.core(CoreDRAM, 0, 7)
	b.core(CoreDRAM, 5, 0) // channel 4, 5
	b.core(CoreDRAM, 5, 1)
	b.core(CoreDRAM, 5, 11)
	b.core(CoreDRAM, 5, 2) // channel 6, 7
	b.core(CoreDRAM, 5, 9)
	b.core(CoreDRAM, 5, 10)
	b.core(CoreDRAM, 5, 3) // channel 8, 9
	b.core(CoreDRAM, 5, 4)
	b.core(CoreDRAM, 5, 8)
	b.core(CoreDRAM, 5, 5) // channel 10, 11
	b.core(CoreDRAM, 5, 6)
	b.core(CoreDRAM, 5, 7)

	for _, x := range []int{1, 2, 3, 4, 6, 7, 8, 9} {
		b.core(CoreEth, x, 0)
		b.core(CoreEth, x, 6)
	}

	for _, x := range []int{1, 2, 3, 4, 6, 7, 8, 9} {
		b.coreRange(CoreWorker, x, 1, 5)
		b.coreRange(CoreWorker, x, 7, 11)
	}

	// routing, absolute
	b.worker(WorkerDispatch, 1, 11)

	b.core(CoreRouterOnly, 0, 2)
	b.core(CoreRouterOnly, 0, 4)
	b.core(CoreRouterOnly, 0, 8)
	b.core(CoreRouterOnly, 0, 9)

	b.dramEndpoint(0, 0, 11)
	b.dramEndpoint(1, 0, 1)
	b.dramEndpoint(2, 0, 5)
	b.dramEndpoint(3, 0, 7)
	b.dramEndpoint(4, 5, 1)
	b.dramEndpoint(5, 5, 11)
	b.dramEndpoint(6, 5, 2)
	b.dramEndpoint(7, 5, 9)
	b.dramEndpoint(8, 5, 8)
	b.dramEndpoint(9, 5, 3)
	b.dramEndpoint(10, 5, 5)
	b.dramEndpoint(11, 5, 7)

	b.a.Finalize()
	return b.a
}
