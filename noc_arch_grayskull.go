package tensix

// E150 board is assumed for the L1 bank mapping.

// NocArchGrayskull returns the shared Grayskull NoC description:
// 32-bit local addresses, 6-bit node IDs, 8 DRAM banks, 128 L1 banks.
func NocArchGrayskull() NocArch { return nocArchGrayskullTable }

var nocArchGrayskullTable = &nocArchGrayskull{
	nocAddrLayout: nocAddrLayout{localBits: 32, nodeIDBits: 6},
}

type nocArchGrayskull struct {
	nocAddrLayout
}

const (
	gsNumNocs      = 2
	gsNumDRAMBanks = 8
	gsNumL1Banks   = 128
	gsNocSizeX     = 13
	gsNocSizeY     = 12
	gsPCIeNocX     = 0
	gsPCIeNocY     = 4
)

func (a *nocArchGrayskull) NumDRAMBanks() uint32 { return gsNumDRAMBanks }
func (a *nocArchGrayskull) NumL1Banks() uint32   { return gsNumL1Banks }
func (a *nocArchGrayskull) NocSizeX() uint32     { return gsNocSizeX }
func (a *nocArchGrayskull) NocSizeY() uint32     { return gsNocSizeY }
func (a *nocArchGrayskull) PCIeNocX() uint32     { return gsPCIeNocX }
func (a *nocArchGrayskull) PCIeNocY() uint32     { return gsPCIeNocY }

func (a *nocArchGrayskull) NocXYAddr(x, y, addr uint32) uint64 {
	return a.nocXYAddr(x, y, addr)
}

func (a *nocArchGrayskull) NocMulticastAddr(xStart, yStart, xEnd, yEnd, addr uint32) uint64 {
	return a.nocMulticastAddr(xStart, yStart, xEnd, yEnd, addr)
}

func (a *nocArchGrayskull) NocXYEncoding(x, y uint32) uint32 {
	return a.nocXYEncoding(x, y, gsPCIeNocX, gsPCIeNocY)
}

func (a *nocArchGrayskull) NocMulticastEncoding(xStart, yStart, xEnd, yEnd uint32) uint32 {
	return a.nocMulticastEncoding(xStart, yStart, xEnd, yEnd)
}

func (a *nocArchGrayskull) NocXYAddr2(xy, addr uint32) uint64 {
	return a.nocXYAddr2(xy, addr)
}

func (a *nocArchGrayskull) ParseNocAddr(nocAddr uint64) (x, y, addr uint32) {
	return a.parseNocAddr(nocAddr)
}

func (a *nocArchGrayskull) ParseNocMulticastAddr(nocAddr uint64) (xStart, yStart, xEnd, yEnd, addr uint32) {
	return a.parseNocMulticastAddr(nocAddr)
}

func (a *nocArchGrayskull) DRAMBankToNocXY(nocIndex, bankID uint32) uint32 {
	return gsDRAMBankToNocXY[nocIndex][bankID]
}

func (a *nocArchGrayskull) BankToDRAMOffset(bankID uint32) uint32 {
	return gsBankToDRAMOffset[bankID]
}

func (a *nocArchGrayskull) L1BankToNocXY(nocIndex, bankID uint32) uint32 {
	return gsL1BankToNocXY[nocIndex][bankID]
}

func (a *nocArchGrayskull) BankToL1Offset(bankID uint32) uint32 {
	return gsBankToL1Offset[bankID]
}

var gsDRAMBankToNocXY = [gsNumNocs][gsNumDRAMBanks]uint32{
	{1, 385, 4, 388, 7, 391, 10, 394},
	{715, 331, 712, 328, 709, 325, 706, 322},
}

var gsBankToDRAMOffset = [gsNumDRAMBanks]uint32{}

var gsL1BankToNocXY = [gsNumNocs][gsNumL1Banks]uint32{
	{
		204, 581, 197, 648, 578, 323, 194, 706,
		196, 325, 513, 265, 135, 73, 261, 514,
		72, 516, 321, 195, 583, 199, 459, 140,
		263, 139, 708, 523, 585, 712, 586, 644,
		710, 68, 643, 268, 707, 193, 645, 515,
		458, 715, 522, 137, 203, 267, 134, 647,
		646, 715, 75, 133, 324, 582, 138, 200,
		330, 709, 67, 709, 130, 70, 577, 76,
		453, 264, 652, 707, 136, 259, 327, 521,
		649, 71, 714, 65, 716, 74, 714, 262,
		326, 69, 588, 457, 331, 708, 460, 66,
		455, 713, 706, 651, 258, 257, 519, 713,
		650, 587, 450, 518, 454, 332, 517, 129,
		449, 579, 580, 641, 198, 642, 451, 712,
		266, 131, 710, 329, 132, 452, 260, 456,
		584, 520, 328, 202, 201, 716, 524, 322,
	},
	{
		512, 135, 519, 68, 138, 393, 522, 10,
		520, 391, 203, 451, 581, 643, 455, 202,
		644, 200, 395, 521, 133, 517, 257, 576,
		453, 577, 8, 193, 131, 4, 130, 72,
		6, 648, 73, 448, 9, 523, 71, 201,
		258, 1, 194, 579, 513, 449, 582, 69,
		70, 1, 641, 583, 392, 134, 578, 516,
		386, 7, 649, 7, 586, 646, 139, 640,
		263, 452, 64, 9, 580, 457, 389, 195,
		67, 645, 2, 651, 0, 642, 2, 454,
		390, 647, 128, 259, 385, 8, 256, 650,
		261, 3, 10, 65, 458, 459, 197, 3,
		66, 129, 266, 198, 262, 384, 199, 587,
		267, 137, 136, 75, 518, 74, 265, 4,
		450, 585, 6, 387, 584, 264, 456, 260,
		132, 196, 388, 514, 515, 0, 192, 394,
	},
}

// A handful of banks sit in the upper half of their core's L1 and carry a
// negative base offset (-524288), encoded as two's-complement unsigned.
var gsBankToL1Offset = [gsNumL1Banks]uint32{
	29: 4294443008,
	32: 4294443008,
	49: 4294443008,
	57: 4294443008,
	67: 4294443008,
	74: 4294443008,
	76: 4294443008,
	85: 4294443008,
	90: 4294443008,
	95: 4294443008,
}
