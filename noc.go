package tensix

import (
	"fmt"
	"log"
)

// nocPageAlignment is the slot alignment of interleaved pages: consecutive
// pages within a bank are spaced by the page size rounded up to this.
const nocPageAlignment = 32

func alignUp(v, alignment uint32) uint32 {
	return ((v - 1) | (alignment - 1)) + 1
}

func alignUpPow2(v, pow2 uint32) uint32 {
	return (v + (pow2 - 1)) &^ (pow2 - 1)
}

// Noc performs reads and writes through the NoC address space: given a
// 64-bit NoC address and a length, it locates the backing byte region in the
// memory fabric and copies. It also implements the interleaved-page address
// arithmetic used by paged DRAM/L1 access.
type Noc struct {
	soc  *Soc
	arch NocArch

	numDRAMBanks uint32
	numL1Banks   uint32
}

// NewNoc creates a transport over the given fabric and NoC table.
func NewNoc(soc *Soc, arch NocArch) *Noc {
	return &Noc{
		soc:          soc,
		arch:         arch,
		numDRAMBanks: arch.NumDRAMBanks(),
		numL1Banks:   arch.NumL1Banks(),
	}
}

// InterleavedAddr computes the NoC address of interleaved page id: the page
// lands in bank (id mod numBanks) at slot (id div numBanks), slots spaced by
// the 32-byte-aligned page size above bankBaseAddr.
func (n *Noc) InterleavedAddr(isDRAM bool, bankBaseAddr, pageSize, id, offset uint32) uint64 {
	if isDRAM {
		bankID := id % n.numDRAMBanks
		addr := (id/n.numDRAMBanks)*alignUp(pageSize, nocPageAlignment) + bankBaseAddr + offset
		addr += n.arch.BankToDRAMOffset(bankID)
		// noc_index 0 is assumed throughout
		xy := n.arch.DRAMBankToNocXY(0, bankID)
		return NocAddr(xy, addr)
	}
	bankID := id % n.numL1Banks
	addr := (id/n.numL1Banks)*alignUp(pageSize, nocPageAlignment) + bankBaseAddr + offset
	addr += n.arch.BankToL1Offset(bankID)
	// noc_index 0 is assumed throughout
	xy := n.arch.L1BankToNocXY(0, bankID)
	return NocAddr(xy, addr)
}

// Read copies len(dst) bytes from the NoC address into dst.
func (n *Noc) Read(srcNocAddr uint64, dst []byte) error {
	src, err := n.mapRemoteNocAddr(srcNocAddr, uint32(len(dst)))
	if err != nil {
		return err
	}
	copy(dst, src)
	return nil
}

// Write copies src to the NoC address.
func (n *Noc) Write(src []byte, dstNocAddr uint64) error {
	dst, err := n.mapRemoteNocAddr(dstNocAddr, uint32(len(src)))
	if err != nil {
		return err
	}
	copy(dst, src)
	return nil
}

// WriteMulticast writes src to every WORKER cell inside the rectangle packed
// in the multicast address. Cells of any other type inside the rectangle are
// skipped. numDests is the hardware's completion count; it does not bound or
// validate the iteration.
func (n *Noc) WriteMulticast(src []byte, dstNocAddrMulticast uint64, numDests uint32) error {
	xStart, yStart, xEnd, yEnd, addr := n.arch.ParseNocMulticastAddr(dstNocAddrMulticast)
	if xStart > xEnd {
		xStart, xEnd = xEnd, xStart
	}
	if yStart > yEnd {
		yStart, yEnd = yEnd, yStart
	}
	for x := xStart; x <= xEnd; x++ {
		for y := yStart; y <= yEnd; y++ {
			ct, err := n.soc.CoreTypeAt(int(x), int(y))
			if err != nil {
				return err
			}
			if ct != CoreWorker {
				continue
			}
			dst, err := n.mapRemoteAddr(x, y, addr, uint32(len(src)))
			if err != nil {
				return err
			}
			copy(dst, src)
		}
	}
	return nil
}

func (n *Noc) mapRemoteNocAddr(nocAddr uint64, size uint32) ([]byte, error) {
	x, y, addr := n.arch.ParseNocAddr(nocAddr)
	return n.mapRemoteAddr(x, y, addr, size)
}

func (n *Noc) mapRemoteAddr(x, y, addr, size uint32) ([]byte, error) {
	ct, err := n.soc.CoreTypeAt(int(x), int(y))
	if err != nil {
		return nil, err
	}
	switch ct {
	case CoreDRAM:
		// Banks that share a physical endpoint carry a whole-bank base
		// offset, which pushes the local address past the bank size; it is
		// folded back here. Logged because the root cause on Wormhole B0 is
		// still unresolved upstream.
		if bankSize := n.soc.DRAMBankSize(); addr >= bankSize {
			log.Printf("tensix: dram local address 0x%x at (%d, %d) truncated modulo bank size 0x%x",
				addr, x, y, bankSize)
			addr %= bankSize
		}
		channel, err := n.soc.CoreDRAMChannel(int(x), int(y))
		if err != nil {
			return nil, err
		}
		return n.soc.MapDRAM(channel, addr, size)
	case CoreWorker:
		if end := uint64(addr) + uint64(size); end > uint64(n.soc.WorkerL1Size()) {
			return nil, fmt.Errorf(
				"tensix: L1 address range [0x%x, 0x%x) at (%d, %d) is out of bounds",
				addr, end, x, y)
		}
		return n.soc.MapL1(int(x), int(y), addr, size)
	default:
		return nil, fmt.Errorf("tensix: no DRAM or worker core at (%d, %d)", x, y)
	}
}
