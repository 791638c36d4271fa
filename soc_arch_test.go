package tensix

import "testing"

func TestSocArchSetters(t *testing.T) {
	a := NewSocArch(4, 4, 1024, 1024, 4096, 0, 2)

	if err := a.SetCoreType(CoreWorker, 1, 1); err != nil {
		t.Fatalf("SetCoreType: %v", err)
	}
	if err := a.SetCoreType(CoreDRAM, 1, 1); err == nil {
		t.Errorf("expected error re-assigning core type")
	}
	if err := a.SetCoreType(CoreWorker, 4, 0); err == nil {
		t.Errorf("expected error for out-of-range x")
	}
	if err := a.SetCoreType(CoreWorker, 0, -1); err == nil {
		t.Errorf("expected error for out-of-range y")
	}

	if err := a.SetWorkerCoreType(WorkerDispatch, 1, 1); err != nil {
		t.Fatalf("SetWorkerCoreType: %v", err)
	}
	if err := a.SetWorkerCoreType(WorkerDispatch, 1, 1); err == nil {
		t.Errorf("expected error re-assigning worker core type")
	}
	if err := a.SetWorkerCoreType(WorkerDispatch, 0, 0); err == nil {
		t.Errorf("expected error refining a non-worker cell")
	}

	if err := a.SetDRAMPreferredWorkerEndpoint(2, 0, 0); err == nil {
		t.Errorf("expected error for out-of-range DRAM channel")
	}
}

func TestSocArchFinalize(t *testing.T) {
	// Workers in columns 1 and 3, rows 0 and 2; column 2 has none.
	a := NewSocArch(4, 3, 1024, 1024, 4096, 0, 1)
	for _, x := range []int{1, 3} {
		for _, y := range []int{0, 2} {
			if err := a.SetCoreType(CoreWorker, x, y); err != nil {
				t.Fatalf("SetCoreType: %v", err)
			}
		}
	}
	if err := a.SetWorkerCoreType(WorkerComputeAndStorage, 1, 0); err != nil {
		t.Fatalf("SetWorkerCoreType: %v", err)
	}
	a.Finalize()

	if got := a.WorkerXSize(); got != 2 {
		t.Errorf("WorkerXSize = %d, want 2", got)
	}
	if got := a.WorkerYSize(); got != 2 {
		t.Errorf("WorkerYSize = %d, want 2", got)
	}
	if got := a.ComputeAndStorageXSize(); got != 1 {
		t.Errorf("ComputeAndStorageXSize = %d, want 1", got)
	}
	if got := a.ComputeAndStorageYSize(); got != 1 {
		t.Errorf("ComputeAndStorageYSize = %d, want 1", got)
	}

	logicalToRouting := [][2]int{{0, 1}, {1, 3}}
	for _, m := range logicalToRouting {
		x, err := a.WorkerLogicalToRoutingX(m[0])
		if err != nil || x != m[1] {
			t.Errorf("WorkerLogicalToRoutingX(%d) = (%d, %v), want %d", m[0], x, err, m[1])
		}
		lx, err := a.WorkerRoutingToLogicalX(m[1])
		if err != nil || lx != m[0] {
			t.Errorf("WorkerRoutingToLogicalX(%d) = (%d, %v), want %d", m[1], lx, err, m[0])
		}
	}
	if lx, err := a.WorkerRoutingToLogicalX(2); err != nil || lx != -1 {
		t.Errorf("WorkerRoutingToLogicalX(2) = (%d, %v), want no-worker sentinel -1", lx, err)
	}
	if _, err := a.WorkerLogicalToRoutingX(2); err == nil {
		t.Errorf("expected error for out-of-range logical x")
	}
}

func TestSocArchGrayskull(t *testing.T) {
	a := SocArchGrayskull()

	if got := a.XSize(); got != 13 {
		t.Errorf("XSize = %d, want 13", got)
	}
	if got := a.YSize(); got != 12 {
		t.Errorf("YSize = %d, want 12", got)
	}
	if got := a.NumDRAMChannels(); got != 8 {
		t.Errorf("NumDRAMChannels = %d, want 8", got)
	}
	if got := a.WorkerL1Size(); got != 1048576 {
		t.Errorf("WorkerL1Size = %d, want 1048576", got)
	}
	if got := a.WorkerXSize(); got != 12 {
		t.Errorf("WorkerXSize = %d, want 12", got)
	}
	if got := a.WorkerYSize(); got != 10 {
		t.Errorf("WorkerYSize = %d, want 10", got)
	}

	cells := []struct {
		x, y int
		want CoreType
	}{
		{0, 2, CoreARC},
		{0, 4, CorePCIe},
		{1, 0, CoreDRAM},
		{10, 6, CoreDRAM},
		{1, 1, CoreWorker},
		{12, 11, CoreWorker},
		{0, 0, CoreRouterOnly},
		{6, 6, CoreRouterOnly},
	}
	for _, c := range cells {
		got, err := a.CoreTypeAt(c.x, c.y)
		if err != nil || got != c.want {
			t.Errorf("CoreTypeAt(%d, %d) = (%v, %v), want %v", c.x, c.y, got, err, c.want)
		}
	}

	if wct, _ := a.WorkerCoreTypeAt(1, 11); wct != WorkerDispatch {
		t.Errorf("WorkerCoreTypeAt(1, 11) = %v, want dispatch", wct)
	}
	if wct, _ := a.WorkerCoreTypeAt(2, 11); wct != WorkerStorageOnly {
		t.Errorf("WorkerCoreTypeAt(2, 11) = %v, want storage_only", wct)
	}

	if ch, err := a.CoreDRAMChannel(1, 0); err != nil || ch != 0 {
		t.Errorf("CoreDRAMChannel(1, 0) = (%d, %v), want 0", ch, err)
	}
	if ch, err := a.CoreDRAMChannel(10, 6); err != nil || ch != 7 {
		t.Errorf("CoreDRAMChannel(10, 6) = (%d, %v), want 7", ch, err)
	}
}

func TestSocArchWormholeB0(t *testing.T) {
	a := SocArchWormholeB0()

	if got := a.XSize(); got != 10 {
		t.Errorf("XSize = %d, want 10", got)
	}
	if got := a.NumDRAMChannels(); got != 12 {
		t.Errorf("NumDRAMChannels = %d, want 12", got)
	}
	if got := a.WorkerL1Size(); got != 1499136 {
		t.Errorf("WorkerL1Size = %d, want 1499136", got)
	}
	if got := a.EthL1Size(); got != 262144 {
		t.Errorf("EthL1Size = %d, want 262144", got)
	}
	// Worker columns are 1-4 and 6-9; worker rows are 1-5 and 7-11.
	if got := a.WorkerXSize(); got != 8 {
		t.Errorf("WorkerXSize = %d, want 8", got)
	}
	if got := a.WorkerYSize(); got != 10 {
		t.Errorf("WorkerYSize = %d, want 10", got)
	}
	if x, err := a.WorkerLogicalToRoutingX(4); err != nil || x != 6 {
		t.Errorf("WorkerLogicalToRoutingX(4) = (%d, %v), want 6", x, err)
	}
	if y, err := a.WorkerLogicalToRoutingY(5); err != nil || y != 7 {
		t.Errorf("WorkerLogicalToRoutingY(5) = (%d, %v), want 7", y, err)
	}

	if ct, _ := a.CoreTypeAt(1, 0); ct != CoreEth {
		t.Errorf("CoreTypeAt(1, 0) = %v, want eth", ct)
	}
	if ct, _ := a.CoreTypeAt(0, 3); ct != CorePCIe {
		t.Errorf("CoreTypeAt(0, 3) = %v, want pcie", ct)
	}

	// Channel resolution succeeds only at preferred endpoints.
	if ch, err := a.CoreDRAMChannel(0, 11); err != nil || ch != 0 {
		t.Errorf("CoreDRAMChannel(0, 11) = (%d, %v), want 0", ch, err)
	}
	if ch, err := a.CoreDRAMChannel(5, 7); err != nil || ch != 11 {
		t.Errorf("CoreDRAMChannel(5, 7) = (%d, %v), want 11", ch, err)
	}
	if _, err := a.CoreDRAMChannel(1, 1); err == nil {
		t.Errorf("expected error resolving DRAM channel at a worker cell")
	}
	// (0, 0) is a DRAM cell but not a preferred endpoint.
	if _, err := a.CoreDRAMChannel(0, 0); err == nil {
		t.Errorf("expected error resolving DRAM channel at a non-preferred DRAM cell")
	}

	endpoints := [][3]int{{0, 0, 11}, {4, 5, 1}, {11, 5, 7}}
	for _, e := range endpoints {
		x, y, err := a.DRAMPreferredWorkerEndpoint(e[0])
		if err != nil || x != e[1] || y != e[2] {
			t.Errorf("DRAMPreferredWorkerEndpoint(%d) = (%d, %d, %v), want (%d, %d)",
				e[0], x, y, err, e[1], e[2])
		}
	}
}
