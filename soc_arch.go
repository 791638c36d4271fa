package tensix

import "fmt"

// SocArch is the immutable description of a die: grid size, core type per
// (x,y), DRAM channel layout, and the logical<->routing worker coordinate
// maps. It is built once per architecture with the setters below, finalized,
// and then shared read-only.
type SocArch struct {
	xSize                 int
	ySize                 int
	workerL1Size          uint32
	storageCoreL1BankSize uint32
	dramBankSize          uint32
	ethL1Size             uint32
	numDRAMChannels       int

	coreTypes       []CoreType
	workerCoreTypes []WorkerCoreType

	dramPreferredWorkerEndpoints [][2]int

	workerXSize            int
	workerYSize            int
	computeAndStorageXSize int
	computeAndStorageYSize int

	workerLogicalToRoutingX []int
	workerLogicalToRoutingY []int
	workerRoutingToLogicalX []int
	workerRoutingToLogicalY []int
}

// NewSocArch creates an empty architecture table for the given grid.
// All cells start as CoreInvalid.
func NewSocArch(
	xSize, ySize int,
	workerL1Size, storageCoreL1BankSize, dramBankSize, ethL1Size uint32,
	numDRAMChannels int,
) *SocArch {
	return &SocArch{
		xSize:                        xSize,
		ySize:                        ySize,
		workerL1Size:                 workerL1Size,
		storageCoreL1BankSize:        storageCoreL1BankSize,
		dramBankSize:                 dramBankSize,
		ethL1Size:                    ethL1Size,
		numDRAMChannels:              numDRAMChannels,
		coreTypes:                    make([]CoreType, xSize*ySize),
		workerCoreTypes:              make([]WorkerCoreType, xSize*ySize),
		dramPreferredWorkerEndpoints: make([][2]int, numDRAMChannels),
	}
}

func (a *SocArch) xy(x, y int) int {
	return x*a.ySize + y
}

func (a *SocArch) checkCoord(x, y int) error {
	if x < 0 || x >= a.xSize || y < 0 || y >= a.ySize {
		return fmt.Errorf("tensix: core coordinates (%d, %d) are out of range", x, y)
	}
	return nil
}

// SetCoreType assigns the core type of one cell. A cell may be assigned
// at most once.
func (a *SocArch) SetCoreType(ct CoreType, x, y int) error {
	if err := a.checkCoord(x, y); err != nil {
		return err
	}
	xy := a.xy(x, y)
	if a.coreTypes[xy] != CoreInvalid {
		return fmt.Errorf("tensix: core type at (%d, %d) is already set", x, y)
	}
	a.coreTypes[xy] = ct
	return nil
}

// SetCoreTypeRange assigns the core type of the column range (x, y0..y1).
func (a *SocArch) SetCoreTypeRange(ct CoreType, x, y0, y1 int) error {
	for y := y0; y <= y1; y++ {
		if err := a.SetCoreType(ct, x, y); err != nil {
			return err
		}
	}
	return nil
}

// SetWorkerCoreType refines a WORKER cell with its role. The cell must
// already be a WORKER and may be refined at most once.
func (a *SocArch) SetWorkerCoreType(wct WorkerCoreType, x, y int) error {
	if err := a.checkCoord(x, y); err != nil {
		return err
	}
	xy := a.xy(x, y)
	if a.coreTypes[xy] != CoreWorker {
		return fmt.Errorf("tensix: core at (%d, %d) is not worker", x, y)
	}
	if a.workerCoreTypes[xy] != WorkerNone {
		return fmt.Errorf("tensix: worker core type at (%d, %d) is already set", x, y)
	}
	a.workerCoreTypes[xy] = wct
	return nil
}

// SetWorkerCoreTypeRange refines the column range (x, y0..y1).
func (a *SocArch) SetWorkerCoreTypeRange(wct WorkerCoreType, x, y0, y1 int) error {
	for y := y0; y <= y1; y++ {
		if err := a.SetWorkerCoreType(wct, x, y); err != nil {
			return err
		}
	}
	return nil
}

// SetDRAMPreferredWorkerEndpoint records the single (x,y) a client uses to
// reach the given DRAM channel through the NoC.
func (a *SocArch) SetDRAMPreferredWorkerEndpoint(dramChannel, x, y int) error {
	if dramChannel < 0 || dramChannel >= a.numDRAMChannels {
		return fmt.Errorf("tensix: DRAM channel %d is out of range", dramChannel)
	}
	if err := a.checkCoord(x, y); err != nil {
		return err
	}
	a.dramPreferredWorkerEndpoints[dramChannel] = [2]int{x, y}
	return nil
}

// Finalize derives the worker coordinate maps. A row or column is a worker
// row/column iff at least one of its cells is a WORKER; logical coordinates
// number the worker columns and rows in grid order. After Finalize the table
// is read-only.
func (a *SocArch) Finalize() {
	isWorkerX := make([]bool, a.xSize)
	isWorkerY := make([]bool, a.ySize)
	isCSX := make([]bool, a.xSize)
	isCSY := make([]bool, a.ySize)

	for x := 0; x < a.xSize; x++ {
		for y := 0; y < a.ySize; y++ {
			xy := a.xy(x, y)
			if a.coreTypes[xy] == CoreWorker {
				isWorkerX[x] = true
				isWorkerY[y] = true
				if a.workerCoreTypes[xy] == WorkerComputeAndStorage {
					isCSX[x] = true
					isCSY[y] = true
				}
			}
		}
	}

	a.workerXSize = 0
	a.workerYSize = 0
	a.computeAndStorageXSize = 0
	a.computeAndStorageYSize = 0
	a.workerRoutingToLogicalX = make([]int, a.xSize)
	a.workerRoutingToLogicalY = make([]int, a.ySize)
	for i := range a.workerRoutingToLogicalX {
		a.workerRoutingToLogicalX[i] = -1
	}
	for i := range a.workerRoutingToLogicalY {
		a.workerRoutingToLogicalY[i] = -1
	}

	for x := 0; x < a.xSize; x++ {
		if isWorkerX[x] {
			a.workerRoutingToLogicalX[x] = a.workerXSize
			a.workerXSize++
			if isCSX[x] {
				a.computeAndStorageXSize++
			}
		}
	}
	for y := 0; y < a.ySize; y++ {
		if isWorkerY[y] {
			a.workerRoutingToLogicalY[y] = a.workerYSize
			a.workerYSize++
			if isCSY[y] {
				a.computeAndStorageYSize++
			}
		}
	}

	a.workerLogicalToRoutingX = make([]int, a.workerXSize)
	a.workerLogicalToRoutingY = make([]int, a.workerYSize)
	for x := 0; x < a.xSize; x++ {
		if lx := a.workerRoutingToLogicalX[x]; lx >= 0 {
			a.workerLogicalToRoutingX[lx] = x
		}
	}
	for y := 0; y < a.ySize; y++ {
		if ly := a.workerRoutingToLogicalY[y]; ly >= 0 {
			a.workerLogicalToRoutingY[ly] = y
		}
	}
}

// XSize returns the grid width.
func (a *SocArch) XSize() int { return a.xSize }

// YSize returns the grid height.
func (a *SocArch) YSize() int { return a.ySize }

// WorkerL1Size returns the per-worker L1 scratchpad size in bytes.
func (a *SocArch) WorkerL1Size() uint32 { return a.workerL1Size }

// StorageCoreL1BankSize returns the L1 bank size of storage-only cores.
func (a *SocArch) StorageCoreL1BankSize() uint32 { return a.storageCoreL1BankSize }

// DRAMBankSize returns the size of one DRAM channel in bytes.
func (a *SocArch) DRAMBankSize() uint32 { return a.dramBankSize }

// EthL1Size returns the L1 size of ethernet cores.
func (a *SocArch) EthL1Size() uint32 { return a.ethL1Size }

// NumDRAMChannels returns the number of DRAM channels.
func (a *SocArch) NumDRAMChannels() int { return a.numDRAMChannels }

// WorkerXSize returns the number of worker columns.
func (a *SocArch) WorkerXSize() int { return a.workerXSize }

// WorkerYSize returns the number of worker rows.
func (a *SocArch) WorkerYSize() int { return a.workerYSize }

// ComputeAndStorageXSize returns the number of worker columns containing
// compute-and-storage cells.
func (a *SocArch) ComputeAndStorageXSize() int { return a.computeAndStorageXSize }

// ComputeAndStorageYSize returns the number of worker rows containing
// compute-and-storage cells.
func (a *SocArch) ComputeAndStorageYSize() int { return a.computeAndStorageYSize }

// CoreTypeAt returns the core type of the cell at routing coordinates (x,y).
func (a *SocArch) CoreTypeAt(x, y int) (CoreType, error) {
	if err := a.checkCoord(x, y); err != nil {
		return CoreInvalid, err
	}
	return a.coreTypes[a.xy(x, y)], nil
}

// WorkerCoreTypeAt returns the worker core type of the cell at (x,y).
// Non-worker cells report WorkerNone.
func (a *SocArch) WorkerCoreTypeAt(x, y int) (WorkerCoreType, error) {
	if err := a.checkCoord(x, y); err != nil {
		return WorkerNone, err
	}
	return a.workerCoreTypes[a.xy(x, y)], nil
}

// CoreDRAMChannel resolves the DRAM channel whose preferred worker endpoint
// is (x,y). Only preferred endpoints resolve; any other coordinate is an
// error. The channel count is small, so a linear scan suffices.
func (a *SocArch) CoreDRAMChannel(x, y int) (int, error) {
	for ch, coord := range a.dramPreferredWorkerEndpoints {
		if coord[0] == x && coord[1] == y {
			return ch, nil
		}
	}
	return -1, fmt.Errorf("tensix: DRAM channel not found for core at (%d, %d)", x, y)
}

// DRAMPreferredWorkerEndpoint returns the (x,y) endpoint of a DRAM channel.
func (a *SocArch) DRAMPreferredWorkerEndpoint(dramChannel int) (x, y int, err error) {
	if dramChannel < 0 || dramChannel >= a.numDRAMChannels {
		return 0, 0, fmt.Errorf("tensix: DRAM channel %d is out of range", dramChannel)
	}
	coord := a.dramPreferredWorkerEndpoints[dramChannel]
	return coord[0], coord[1], nil
}

// WorkerLogicalToRoutingX maps a logical worker column to its routing column.
func (a *SocArch) WorkerLogicalToRoutingX(logicalX int) (int, error) {
	if logicalX < 0 || logicalX >= a.workerXSize {
		return -1, fmt.Errorf("tensix: logical core x coordinate %d is out of range", logicalX)
	}
	return a.workerLogicalToRoutingX[logicalX], nil
}

// WorkerLogicalToRoutingY maps a logical worker row to its routing row.
func (a *SocArch) WorkerLogicalToRoutingY(logicalY int) (int, error) {
	if logicalY < 0 || logicalY >= a.workerYSize {
		return -1, fmt.Errorf("tensix: logical core y coordinate %d is out of range", logicalY)
	}
	return a.workerLogicalToRoutingY[logicalY], nil
}

// WorkerRoutingToLogicalX maps a routing column to its logical worker column,
// or -1 if the column holds no workers.
func (a *SocArch) WorkerRoutingToLogicalX(x int) (int, error) {
	if x < 0 || x >= a.xSize {
		return -1, fmt.Errorf("tensix: core x coordinate %d is out of range", x)
	}
	return a.workerRoutingToLogicalX[x], nil
}

// WorkerRoutingToLogicalY maps a routing row to its logical worker row,
// or -1 if the row holds no workers.
func (a *SocArch) WorkerRoutingToLogicalY(y int) (int, error) {
	if y < 0 || y >= a.ySize {
		return -1, fmt.Errorf("tensix: core y coordinate %d is out of range", y)
	}
	return a.workerRoutingToLogicalY[y], nil
}
