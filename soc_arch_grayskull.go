package tensix

// The static architecture tables are program constants; assignment errors in
// them are construction bugs, so the builder panics instead of returning
// errors.
type socArchBuilder struct {
	a *SocArch
}

func (b socArchBuilder) core(ct CoreType, x, y int) {
	if err := b.a.SetCoreType(ct, x, y); err != nil {
		panic(err)
	}
}

func (b socArchBuilder) coreRange(ct CoreType, x, y0, y1 int) {
	if err := b.a.SetCoreTypeRange(ct, x, y0, y1); err != nil {
		panic(err)
	}
}

func (b socArchBuilder) worker(wct WorkerCoreType, x, y int) {
	if err := b.a.SetWorkerCoreType(wct, x, y); err != nil {
		panic(err)
	}
}

func (b socArchBuilder) workerRange(wct WorkerCoreType, x, y0, y1 int) {
	if err := b.a.SetWorkerCoreTypeRange(wct, x, y0, y1); err != nil {
		panic(err)
	}
}

func (b socArchBuilder) dramEndpoint(ch, x, y int) {
	if err := b.a.SetDRAMPreferredWorkerEndpoint(ch, x, y); err != nil {
		panic(err)
	}
}

// SocArchGrayskull returns the shared Grayskull die description:
// a 13x12 grid with 8 DRAM channels and 1 MiB worker L1.
func SocArchGrayskull() *SocArch { return socArchGrayskullTable }

var socArchGrayskullTable = newSocArchGrayskull()

func newSocArchGrayskull() *SocArch {
	b := socArchBuilder{NewSocArch(
		13,         // x size
		12,         // y size
		1048576,    // worker L1 size
		524288,     // storage core L1 bank size
		1073741824, // DRAM bank size
		0,          // eth L1 size
		8,          // DRAM channels
	)}

	b.core(CoreARC, 0, 2)

	b.core(CorePCIe, 0, 4)

	b.core(CoreDRAM, 1, 0)
	b.core(CoreDRAM, 1, 6)
	b.core(CoreDRAM, 4, 0)
	b.core(CoreDRAM, 4, 6)
	b.core(CoreDRAM, 7, 0)
	b.core(CoreDRAM, 7, 6)
	b.core(CoreDRAM, 10, 0)
	b.core(CoreDRAM, 10, 6)

	for x := 1; x <= 12; x++ {
		b.coreRange(CoreWorker, x, 1, 5)
		b.coreRange(CoreWorker, x, 7, 11)
	}

	for x := 1; x <= 12; x++ {
		b.workerRange(WorkerComputeAndStorage, x, 1, 5)
		b.workerRange(WorkerComputeAndStorage, x, 7, 10)
	}

	// routing, absolute
	b.worker(WorkerStorageOnly, 2, 11)
	b.worker(WorkerStorageOnly, 3, 11)
	b.worker(WorkerStorageOnly, 4, 11)
	b.worker(WorkerStorageOnly, 5, 11)
	b.worker(WorkerStorageOnly, 6, 11)
	b.worker(WorkerStorageOnly, 8, 11)
	b.worker(WorkerStorageOnly, 9, 11)
	b.worker(WorkerStorageOnly, 10, 11)
	b.worker(WorkerStorageOnly, 11, 11)
	b.worker(WorkerStorageOnly, 12, 11)

	// routing, absolute
	b.worker(WorkerDispatch, 1, 11)
	b.worker(WorkerDispatch, 7, 11)

	b.core(CoreRouterOnly, 0, 0)
	b.core(CoreRouterOnly, 0, 1)
	b.core(CoreRouterOnly, 0, 3)
	b.coreRange(CoreRouterOnly, 0, 5, 11)
	b.core(CoreRouterOnly, 2, 0)
	b.core(CoreRouterOnly, 3, 0)
	b.core(CoreRouterOnly, 5, 0)
	b.core(CoreRouterOnly, 6, 0)
	b.core(CoreRouterOnly, 8, 0)
	b.core(CoreRouterOnly, 9, 0)
	b.core(CoreRouterOnly, 11, 0)
	b.core(CoreRouterOnly, 12, 0)
	b.core(CoreRouterOnly, 2, 6)
	b.core(CoreRouterOnly, 3, 6)
	b.core(CoreRouterOnly, 5, 6)
	b.core(CoreRouterOnly, 6, 6)
	b.core(CoreRouterOnly, 8, 6)
	b.core(CoreRouterOnly, 9, 6)
	b.core(CoreRouterOnly, 11, 6)
	b.core(CoreRouterOnly, 12, 6)

	b.dramEndpoint(0, 1, 0)
	b.dramEndpoint(1, 1, 6)
	b.dramEndpoint(2, 4, 0)
	b.dramEndpoint(3, 4, 6)
	b.dramEndpoint(4, 7, 0)
	b.dramEndpoint(5, 7, 6)
	b.dramEndpoint(6, 10, 0)
	b.dramEndpoint(7, 10, 6)

	b.a.Finalize()
	return b.a
}
