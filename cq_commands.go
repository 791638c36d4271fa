package tensix

import "encoding/binary"

// Command-queue wire format. The byte layouts here are shared with host
// software and must stay bit-for-bit stable: every command starts with a
// fixed 16-byte little-endian header whose first byte selects the variant,
// with explicit reserved bytes where the variant leaves gaps.

// CQPrefetchCmdSize is the size of the fixed prefetch command header.
const CQPrefetchCmdSize = 16

// CQDispatchCmdSize is the size of the fixed dispatch command header.
const CQDispatchCmdSize = 16

// CQPrefetchCmdBareMinSize is the stride of fixed-size prefetch commands,
// dictated by PCIe alignment of the host command queue.
const CQPrefetchCmdBareMinSize = 32

// Prefetch command IDs (header byte 0).
const (
	CQPrefetchCmdIllegal byte = iota
	CQPrefetchCmdRelayLinear
	CQPrefetchCmdRelayPaged
	CQPrefetchCmdRelayPagedPacked
	CQPrefetchCmdRelayInline
	CQPrefetchCmdRelayInlineNoFlush
	CQPrefetchCmdExecBuf
	CQPrefetchCmdExecBufEnd
	CQPrefetchCmdStall
	CQPrefetchCmdDebug
	CQPrefetchCmdTerminate
)

// RELAY_PAGED packs is_dram and the start page into packed_page_flags.
const (
	CQPrefetchRelayPagedIsDRAMShift    = 0
	CQPrefetchRelayPagedStartPageShift = 1
	CQPrefetchRelayPagedStartPageMask  = 0x7F
)

// CQPrefetchRelayPagedPackedMaxSubCmds bounds the sub-command list of one
// RELAY_PAGED_PACKED command.
const CQPrefetchRelayPagedPackedMaxSubCmds = 35

// CQPrefetchRelayPagedPackedSubCmdSize is the size of one packed-relay
// sub-command on the wire.
const CQPrefetchRelayPagedPackedSubCmdSize = 12

// Dispatch command IDs (header byte 0).
const (
	CQDispatchCmdIllegal byte = iota
	CQDispatchCmdWriteLinear
	CQDispatchCmdWriteLinearH
	CQDispatchCmdWriteLinearHHost
	CQDispatchCmdWritePaged
	CQDispatchCmdWritePacked
	CQDispatchCmdWait
	CQDispatchCmdGo
	CQDispatchCmdSink
	CQDispatchCmdDebug
	CQDispatchCmdDelay
	CQDispatchCmdTerminate
)

// WRITE_PACKED flag bits.
const (
	CQDispatchCmdPackedWriteFlagMcast    = 1 << 0
	CQDispatchCmdPackedWriteFlagNoStride = 1 << 1
)

// WRITE_PACKED sub-command sizes on the wire.
const (
	CQDispatchWritePackedUnicastSubCmdSize   = 4
	CQDispatchWritePackedMulticastSubCmdSize = 8
)

// l1NocAlignment pads WRITE_PACKED data records to the L1 NoC transfer
// granularity.
const l1NocAlignment = 16

// cqRelayLinearCmd is CQ_PREFETCH_CMD_RELAY_LINEAR:
// [0] cmd_id, [1:4] reserved, [4] noc_xy_addr, [8] addr, [12] length.
type cqRelayLinearCmd struct {
	nocXYAddr uint32
	addr      uint32
	length    uint32
}

func decodeRelayLinearCmd(b []byte) cqRelayLinearCmd {
	return cqRelayLinearCmd{
		nocXYAddr: binary.LittleEndian.Uint32(b[4:]),
		addr:      binary.LittleEndian.Uint32(b[8:]),
		length:    binary.LittleEndian.Uint32(b[12:]),
	}
}

// cqRelayPagedCmd is CQ_PREFETCH_CMD_RELAY_PAGED:
// [0] cmd_id, [1] packed_page_flags, [2] length_adjust (u16),
// [4] base_addr, [8] page_size, [12] pages.
type cqRelayPagedCmd struct {
	packedPageFlags uint8
	lengthAdjust    uint16
	baseAddr        uint32
	pageSize        uint32
	pages           uint32
}

func decodeRelayPagedCmd(b []byte) cqRelayPagedCmd {
	return cqRelayPagedCmd{
		packedPageFlags: b[1],
		lengthAdjust:    binary.LittleEndian.Uint16(b[2:]),
		baseAddr:        binary.LittleEndian.Uint32(b[4:]),
		pageSize:        binary.LittleEndian.Uint32(b[8:]),
		pages:           binary.LittleEndian.Uint32(b[12:]),
	}
}

// cqRelayPagedPackedCmd is CQ_PREFETCH_CMD_RELAY_PAGED_PACKED:
// [0] cmd_id, [1] reserved, [2] count (u16), [4] total_length, [8] stride,
// [12:16] reserved. count sub-commands follow the header.
type cqRelayPagedPackedCmd struct {
	count       uint16
	totalLength uint32
	stride      uint32
}

func decodeRelayPagedPackedCmd(b []byte) cqRelayPagedPackedCmd {
	return cqRelayPagedPackedCmd{
		count:       binary.LittleEndian.Uint16(b[2:]),
		totalLength: binary.LittleEndian.Uint32(b[4:]),
		stride:      binary.LittleEndian.Uint32(b[8:]),
	}
}

// cqRelayPagedPackedSubCmd is one 12-byte sub-command:
// [0] start_page (u16), [2] log_page_size (u16), [4] base_addr, [8] length.
type cqRelayPagedPackedSubCmd struct {
	startPage   uint16
	logPageSize uint16
	baseAddr    uint32
	length      uint32
}

func decodeRelayPagedPackedSubCmd(b []byte) cqRelayPagedPackedSubCmd {
	return cqRelayPagedPackedSubCmd{
		startPage:   binary.LittleEndian.Uint16(b),
		logPageSize: binary.LittleEndian.Uint16(b[2:]),
		baseAddr:    binary.LittleEndian.Uint32(b[4:]),
		length:      binary.LittleEndian.Uint32(b[8:]),
	}
}

// cqRelayInlineCmd is CQ_PREFETCH_CMD_RELAY_INLINE and _NOFLUSH:
// [0] cmd_id, [1:4] reserved, [4] length, [8] stride, [12:16] reserved.
// length payload bytes follow the header; stride skips header plus payload
// plus alignment padding.
type cqRelayInlineCmd struct {
	length uint32
	stride uint32
}

func decodeRelayInlineCmd(b []byte) cqRelayInlineCmd {
	return cqRelayInlineCmd{
		length: binary.LittleEndian.Uint32(b[4:]),
		stride: binary.LittleEndian.Uint32(b[8:]),
	}
}

// cqWriteLinearCmd is CQ_DISPATCH_CMD_WRITE_LINEAR:
// [0] cmd_id, [1] num_mcast_dests, [2:4] reserved, [4] noc_xy_addr,
// [8] addr, [12] length. length payload bytes follow the header.
type cqWriteLinearCmd struct {
	numMcastDests uint8
	nocXYAddr     uint32
	addr          uint32
	length        uint32
}

func decodeWriteLinearCmd(b []byte) cqWriteLinearCmd {
	return cqWriteLinearCmd{
		numMcastDests: b[1],
		nocXYAddr:     binary.LittleEndian.Uint32(b[4:]),
		addr:          binary.LittleEndian.Uint32(b[8:]),
		length:        binary.LittleEndian.Uint32(b[12:]),
	}
}

// cqWritePagedCmd is CQ_DISPATCH_CMD_WRITE_PAGED:
// [0] cmd_id, [1] is_dram, [2] start_page (u16), [4] base_addr,
// [8] page_size, [12] pages. pages*page_size payload bytes follow.
type cqWritePagedCmd struct {
	isDRAM    bool
	startPage uint16
	baseAddr  uint32
	pageSize  uint32
	pages     uint32
}

func decodeWritePagedCmd(b []byte) cqWritePagedCmd {
	return cqWritePagedCmd{
		isDRAM:    b[1] != 0,
		startPage: binary.LittleEndian.Uint16(b[2:]),
		baseAddr:  binary.LittleEndian.Uint32(b[4:]),
		pageSize:  binary.LittleEndian.Uint32(b[8:]),
		pages:     binary.LittleEndian.Uint32(b[12:]),
	}
}

// cqWritePackedCmd is CQ_DISPATCH_CMD_WRITE_PACKED:
// [0] cmd_id, [1] flags, [2] count (u16), [4] addr, [8] size (u16),
// [10:16] reserved. count sub-commands follow the header, padded to L1 NoC
// alignment, then the data records.
type cqWritePackedCmd struct {
	flags uint8
	count uint16
	addr  uint32
	size  uint16
}

func decodeWritePackedCmd(b []byte) cqWritePackedCmd {
	return cqWritePackedCmd{
		flags: b[1],
		count: binary.LittleEndian.Uint16(b[2:]),
		addr:  binary.LittleEndian.Uint32(b[4:]),
		size:  binary.LittleEndian.Uint16(b[8:]),
	}
}

// WRITE_PACKED sub-commands: unicast is a bare noc_xy_addr, multicast adds
// num_mcast_dests.
func decodeWritePackedSubNocXY(b []byte) uint32 {
	return binary.LittleEndian.Uint32(b)
}

func decodeWritePackedSubNumDests(b []byte) uint32 {
	return binary.LittleEndian.Uint32(b[4:])
}

// cqWriteHostCmd is CQ_DISPATCH_CMD_WRITE_LINEAR_H_HOST:
// [0] cmd_id, [1] is_event, [2:12] reserved, [12] length.
// length counts the header plus the payload that follows it.
type cqWriteHostCmd struct {
	isEvent bool
	length  uint32
}

func decodeWriteHostCmd(b []byte) cqWriteHostCmd {
	return cqWriteHostCmd{
		isEvent: b[1] != 0,
		length:  binary.LittleEndian.Uint32(b[12:]),
	}
}
