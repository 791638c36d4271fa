package tensix

// NocArch is the immutable bit-layout of NoC addresses for one architecture:
// local-address width, node-ID width, bank-to-endpoint tables, and per-bank
// base offsets. Implementations are pure lookup tables with no mutable state.
//
// A unicast NoC address packs [y x local]: the local offset in the low L
// bits, the X node-ID in the next N bits, the Y node-ID above it. A multicast
// address packs [y_start x_start y_end x_end local] across the same width.
type NocArch interface {
	NumDRAMBanks() uint32
	NumL1Banks() uint32
	NocSizeX() uint32
	NocSizeY() uint32
	PCIeNocX() uint32
	PCIeNocY() uint32

	// NocXYAddr packs a unicast NoC address from node IDs and local offset.
	NocXYAddr(x, y, addr uint32) uint64
	// NocMulticastAddr packs a multicast NoC address from the rectangle
	// (xStart,yStart)-(xEnd,yEnd) and local offset.
	NocMulticastAddr(xStart, yStart, xEnd, yEnd, addr uint32) uint64
	// NocXYEncoding returns the 32-bit node-ID form with the fields placed
	// at bit position L mod 32. The PCIe endpoint cell additionally carries
	// bit 3, which selects the host window on real hardware.
	NocXYEncoding(x, y uint32) uint32
	// NocMulticastEncoding is the 32-bit form of a multicast rectangle.
	NocMulticastEncoding(xStart, yStart, xEnd, yEnd uint32) uint32
	// NocXYAddr2 packs a pre-composed xy identifier with a local offset.
	NocXYAddr2(xy, addr uint32) uint64

	// ParseNocAddr is the inverse of NocXYAddr.
	ParseNocAddr(nocAddr uint64) (x, y, addr uint32)
	// ParseNocMulticastAddr is the inverse of NocMulticastAddr.
	ParseNocMulticastAddr(nocAddr uint64) (xStart, yStart, xEnd, yEnd, addr uint32)

	// DRAMBankToNocXY returns the pre-shifted XY identifier of a DRAM bank
	// endpoint on the given NoC. Compose with NocAddr.
	DRAMBankToNocXY(nocIndex, bankID uint32) uint32
	// BankToDRAMOffset returns the byte offset a DRAM bank adds to local
	// addresses. Banks sharing a physical endpoint carry non-zero offsets.
	BankToDRAMOffset(bankID uint32) uint32
	// L1BankToNocXY returns the pre-shifted XY identifier of an L1 bank.
	L1BankToNocXY(nocIndex, bankID uint32) uint32
	// BankToL1Offset returns the byte offset an L1 bank adds to local
	// addresses. Negative offsets are encoded as two's-complement unsigned.
	BankToL1Offset(bankID uint32) uint32
}

// NocAddr composes a pre-shifted XY identifier with a local address.
// The shift is by 32 even when the local-address width exceeds 32 bits:
// the bank tables already place XY at bit position L mod 32.
func NocAddr(xy uint32, addr uint32) uint64 {
	return uint64(xy)<<32 | uint64(addr)
}

// nocAddrLayout implements the pack/parse arithmetic shared by all
// architectures; only the field widths differ.
type nocAddrLayout struct {
	localBits  uint32
	nodeIDBits uint32
}

func (l nocAddrLayout) nocXYAddr(x, y, addr uint32) uint64 {
	return uint64(y)<<(l.localBits+l.nodeIDBits) |
		uint64(x)<<l.localBits |
		uint64(addr)
}

func (l nocAddrLayout) nocMulticastAddr(xStart, yStart, xEnd, yEnd, addr uint32) uint64 {
	return uint64(xStart)<<(l.localBits+2*l.nodeIDBits) |
		uint64(yStart)<<(l.localBits+3*l.nodeIDBits) |
		uint64(xEnd)<<l.localBits |
		uint64(yEnd)<<(l.localBits+l.nodeIDBits) |
		uint64(addr)
}

func (l nocAddrLayout) nocXYEncoding(x, y, pcieX, pcieY uint32) uint32 {
	enc := y<<(l.localBits%32+l.nodeIDBits) | x<<(l.localBits%32)
	if x == pcieX && y == pcieY {
		enc |= 0x8
	}
	return enc
}

func (l nocAddrLayout) nocMulticastEncoding(xStart, yStart, xEnd, yEnd uint32) uint32 {
	return xStart<<(l.localBits%32+2*l.nodeIDBits) |
		yStart<<(l.localBits%32+3*l.nodeIDBits) |
		xEnd<<(l.localBits%32) |
		yEnd<<(l.localBits%32+l.nodeIDBits)
}

func (l nocAddrLayout) nocXYAddr2(xy, addr uint32) uint64 {
	return uint64(xy)<<l.localBits | uint64(addr)
}

func (l nocAddrLayout) parseNocAddr(nocAddr uint64) (x, y, addr uint32) {
	// [y x addr]
	mask := uint64(1)<<l.localBits - 1
	addr = uint32(nocAddr & mask)
	nocAddr >>= l.localBits
	mask = uint64(1)<<l.nodeIDBits - 1
	x = uint32(nocAddr & mask)
	nocAddr >>= l.nodeIDBits
	y = uint32(nocAddr)
	return x, y, addr
}

func (l nocAddrLayout) parseNocMulticastAddr(nocAddr uint64) (xStart, yStart, xEnd, yEnd, addr uint32) {
	// [y_start x_start y_end x_end addr]
	mask := uint64(1)<<l.localBits - 1
	addr = uint32(nocAddr & mask)
	nocAddr >>= l.localBits
	mask = uint64(1)<<l.nodeIDBits - 1
	xEnd = uint32(nocAddr & mask)
	nocAddr >>= l.nodeIDBits
	yEnd = uint32(nocAddr & mask)
	nocAddr >>= l.nodeIDBits
	xStart = uint32(nocAddr & mask)
	nocAddr >>= l.nodeIDBits
	yStart = uint32(nocAddr)
	return xStart, yStart, xEnd, yEnd, addr
}
