package tensix

// NocArchWormholeB0 returns the shared Wormhole B0 NoC description:
// 36-bit local addresses, 6-bit node IDs, 12 DRAM banks, 64 L1 banks.
func NocArchWormholeB0() NocArch { return nocArchWormholeB0Table }

var nocArchWormholeB0Table = &nocArchWormholeB0{
	nocAddrLayout: nocAddrLayout{localBits: 36, nodeIDBits: 6},
}

type nocArchWormholeB0 struct {
	nocAddrLayout
}

const (
	whNumNocs      = 2
	whNumDRAMBanks = 12
	whNumL1Banks   = 64
	whNocSizeX     = 10
	whNocSizeY     = 12
	whPCIeNocX     = 0
	whPCIeNocY     = 3
)

func (a *nocArchWormholeB0) NumDRAMBanks() uint32 { return whNumDRAMBanks }
func (a *nocArchWormholeB0) NumL1Banks() uint32   { return whNumL1Banks }
func (a *nocArchWormholeB0) NocSizeX() uint32     { return whNocSizeX }
func (a *nocArchWormholeB0) NocSizeY() uint32     { return whNocSizeY }
func (a *nocArchWormholeB0) PCIeNocX() uint32     { return whPCIeNocX }
func (a *nocArchWormholeB0) PCIeNocY() uint32     { return whPCIeNocY }

func (a *nocArchWormholeB0) NocXYAddr(x, y, addr uint32) uint64 {
	return a.nocXYAddr(x, y, addr)
}

func (a *nocArchWormholeB0) NocMulticastAddr(xStart, yStart, xEnd, yEnd, addr uint32) uint64 {
	return a.nocMulticastAddr(xStart, yStart, xEnd, yEnd, addr)
}

func (a *nocArchWormholeB0) NocXYEncoding(x, y uint32) uint32 {
	return a.nocXYEncoding(x, y, whPCIeNocX, whPCIeNocY)
}

func (a *nocArchWormholeB0) NocMulticastEncoding(xStart, yStart, xEnd, yEnd uint32) uint32 {
	return a.nocMulticastEncoding(xStart, yStart, xEnd, yEnd)
}

func (a *nocArchWormholeB0) NocXYAddr2(xy, addr uint32) uint64 {
	return a.nocXYAddr2(xy, addr)
}

func (a *nocArchWormholeB0) ParseNocAddr(nocAddr uint64) (x, y, addr uint32) {
	return a.parseNocAddr(nocAddr)
}

func (a *nocArchWormholeB0) ParseNocMulticastAddr(nocAddr uint64) (xStart, yStart, xEnd, yEnd, addr uint32) {
	return a.parseNocMulticastAddr(nocAddr)
}

func (a *nocArchWormholeB0) DRAMBankToNocXY(nocIndex, bankID uint32) uint32 {
	return whDRAMBankToNocXY[nocIndex][bankID]
}

func (a *nocArchWormholeB0) BankToDRAMOffset(bankID uint32) uint32 {
	return whBankToDRAMOffset[bankID]
}

func (a *nocArchWormholeB0) L1BankToNocXY(nocIndex, bankID uint32) uint32 {
	return whL1BankToNocXY[nocIndex][bankID]
}

func (a *nocArchWormholeB0) BankToL1Offset(bankID uint32) uint32 {
	return whBankToL1Offset[bankID]
}

var whDRAMBankToNocXY = [whNumNocs][whNumDRAMBanks]uint32{
	{11264, 1024, 5120, 7168, 1104, 11344, 2128, 9296, 8272, 3152, 5200, 7248},
	{144, 10384, 6288, 4240, 10304, 64, 9280, 2112, 3136, 8256, 6208, 4160},
}

// Odd banks share a physical DRAM endpoint with the preceding even bank and
// carry a full bank-size offset; see the local-address truncation note in
// the NoC transport.
var whBankToDRAMOffset = [whNumDRAMBanks]uint32{
	0, 1073741824,
	0, 1073741824,
	0, 1073741824,
	0, 1073741824,
	0, 1073741824,
	0, 1073741824,
}

var whL1BankToNocXY = [whNumNocs][whNumL1Banks]uint32{
	{
		5184, 8304, 4192, 2144, 7280, 8240, 4128, 5152,
		4160, 8288, 9312, 7264, 3120, 2064, 7184, 1152,
		1168, 1040, 8208, 4144, 4208, 4224, 8320, 3216,
		7216, 3200, 2176, 1056, 5232, 5264, 5216, 2080,
		2192, 1088, 9328, 7312, 9344, 4112, 7232, 8336,
		5248, 8224, 1120, 3168, 5168, 7296, 3104, 3136,
		9280, 5136, 2096, 3088, 8256, 7200, 3184, 4240,
		9248, 9360, 1072, 9232, 2160, 1136, 9264, 2112,
	},
	{
		6224, 3104, 7216, 9264, 4128, 3168, 7280, 6256,
		7248, 3120, 2096, 4144, 8288, 9344, 4224, 10256,
		10240, 10368, 3200, 7264, 7200, 7184, 3088, 8192,
		4192, 8208, 9232, 10352, 6176, 6144, 6192, 9328,
		9216, 10320, 2080, 4096, 2064, 7296, 4176, 3072,
		6160, 3184, 10288, 8240, 6240, 4112, 8304, 8272,
		2128, 6272, 9312, 8320, 3152, 4208, 8224, 7168,
		2160, 2048, 10336, 2176, 9248, 10272, 2144, 9296,
	},
}

var whBankToL1Offset = [whNumL1Banks]uint32{}
