package tensix

import (
	"fmt"
	"log"
)

// Prefetch is the first stage of the command-queue pipeline. It walks the
// host-supplied command stream, assembling Dispatch input in a staging
// buffer: inline commands copy raw bytes into it, relay commands pull data
// from NoC-addressed memory into it, and a flushing command hands the
// accumulated bytes to Dispatch.
//
// A Prefetch is stateful across commands (the staging buffer spans them) but
// must not be reused after Run returns an error.
type Prefetch struct {
	soc      *Soc
	noc      *Noc
	dispatch *Dispatch

	// Staging buffer of assembled Dispatch input.
	dispatchData []byte

	// Scratch copy of RELAY_PAGED_PACKED sub-commands, one extra slot for
	// the sentinel terminator.
	subCmds []cqRelayPagedPackedSubCmd

	// Valid only within one Run call.
	cmdReg []byte
	cmdPtr int
}

// NewPrefetch creates the prefetch stage feeding the given dispatcher.
func NewPrefetch(soc *Soc, nocArch NocArch, dispatch *Dispatch) *Prefetch {
	return &Prefetch{
		soc:      soc,
		noc:      NewNoc(soc, nocArch),
		dispatch: dispatch,
		subCmds:  make([]cqRelayPagedPackedSubCmd, CQPrefetchRelayPagedPackedMaxSubCmds+1),
	}
}

// Run interprets cmdReg as a sequence of variable-length prefetch commands,
// consuming it exactly. Any failure aborts the run at the offending command;
// prior effects remain applied and the interpreter must be discarded.
func (p *Prefetch) Run(cmdReg []byte) error {
	p.cmdReg = cmdReg
	p.cmdPtr = 0
	for p.cmdPtr < len(p.cmdReg) {
		stride, err := p.processCmd()
		if err != nil {
			return err
		}
		p.cmdPtr += int(stride)
	}
	if p.cmdPtr != len(p.cmdReg) {
		return fmt.Errorf(
			"tensix: prefetch command stream overran its region by %d bytes",
			p.cmdPtr-len(p.cmdReg))
	}
	return nil
}

func (p *Prefetch) processCmd() (stride uint32, err error) {
	if err := p.checkCmdRegLimit(CQPrefetchCmdSize); err != nil {
		return 0, err
	}

	cmdID := p.cmdReg[p.cmdPtr]
	if cqDiag {
		log.Printf("tensix: prefetch cmd %d at offset %d", cmdID, p.cmdPtr)
	}

	switch cmdID {
	case CQPrefetchCmdRelayLinear:
		return p.processRelayLinearCmd()

	case CQPrefetchCmdRelayPaged:
		cmd := decodeRelayPagedCmd(p.header())
		isDRAM := cmd.packedPageFlags&(1<<CQPrefetchRelayPagedIsDRAMShift) != 0
		startPage := uint32(cmd.packedPageFlags>>CQPrefetchRelayPagedStartPageShift) &
			CQPrefetchRelayPagedStartPageMask
		return p.processRelayPagedCmd(cmd, isDRAM, startPage)

	case CQPrefetchCmdRelayPagedPacked:
		return p.processRelayPagedPackedCmd()

	case CQPrefetchCmdRelayInline:
		return p.processRelayInlineCmd()

	case CQPrefetchCmdRelayInlineNoFlush:
		return p.processRelayInlineNoFlushCmd()

	// EXEC_BUF, EXEC_BUF_END and DEBUG are outside the emulated subset and
	// fall through to the invalid-command error.

	case CQPrefetchCmdStall:
		// Real hardware waits for in-flight DMA here; the pipeline is
		// synchronous, so there is nothing to wait for.
		return CQPrefetchCmdBareMinSize, nil

	case CQPrefetchCmdTerminate:
		return CQPrefetchCmdBareMinSize, nil

	default:
		return 0, fmt.Errorf("tensix: invalid prefetch command %d at offset %d", cmdID, p.cmdPtr)
	}
}

func (p *Prefetch) header() []byte {
	return p.cmdReg[p.cmdPtr : p.cmdPtr+CQPrefetchCmdSize]
}

func (p *Prefetch) processRelayLinearCmd() (uint32, error) {
	cmd := decodeRelayLinearCmd(p.header())

	nocAddr := NocAddr(cmd.nocXYAddr, cmd.addr)
	dst := p.growDispatchData(cmd.length)
	if err := p.noc.Read(nocAddr, dst); err != nil {
		return 0, err
	}

	return CQPrefetchCmdBareMinSize, nil
}

func (p *Prefetch) processRelayPagedCmd(cmd cqRelayPagedCmd, isDRAM bool, startPage uint32) (uint32, error) {
	if uint32(cmd.lengthAdjust) >= cmd.pageSize {
		return 0, fmt.Errorf(
			"tensix: relay paged length_adjust %d exceeds page size %d at offset %d",
			cmd.lengthAdjust, cmd.pageSize, p.cmdPtr)
	}

	readLength := cmd.pages * cmd.pageSize
	dst := p.growDispatchData(readLength)

	pageID := startPage
	for len(dst) > 0 {
		nocAddr := p.noc.InterleavedAddr(isDRAM, cmd.baseAddr, cmd.pageSize, pageID, 0)
		if err := p.noc.Read(nocAddr, dst[:cmd.pageSize]); err != nil {
			return 0, err
		}
		pageID++
		dst = dst[cmd.pageSize:]
	}

	p.dispatchData = p.dispatchData[:len(p.dispatchData)-int(cmd.lengthAdjust)]

	return CQPrefetchCmdBareMinSize, nil
}

func (p *Prefetch) processRelayPagedPackedCmd() (uint32, error) {
	cmd := decodeRelayPagedPackedCmd(p.header())
	if cmd.totalLength == 0 {
		return 0, fmt.Errorf("tensix: relay paged packed with zero total length at offset %d", p.cmdPtr)
	}
	count := int(cmd.count)
	if count > CQPrefetchRelayPagedPackedMaxSubCmds {
		return 0, fmt.Errorf(
			"tensix: relay paged packed sub-command count %d exceeds %d at offset %d",
			count, CQPrefetchRelayPagedPackedMaxSubCmds, p.cmdPtr)
	}
	if err := p.checkCmdRegLimit(CQPrefetchCmdSize + count*CQPrefetchRelayPagedPackedSubCmdSize); err != nil {
		return 0, err
	}

	data := p.cmdReg[p.cmdPtr+CQPrefetchCmdSize:]
	for i := 0; i < count; i++ {
		p.subCmds[i] = decodeRelayPagedPackedSubCmd(data[i*CQPrefetchRelayPagedPackedSubCmdSize:])
	}
	// Sentinel terminator: a non-zero length stops the read loop without a
	// separate bounds test once total_length is exhausted.
	p.subCmds[count] = cqRelayPagedPackedSubCmd{length: 1}

	if err := p.processRelayPagedPackedSubCmds(cmd.totalLength, count); err != nil {
		return 0, err
	}
	return cmd.stride, nil
}

func (p *Prefetch) processRelayPagedPackedSubCmds(totalLength uint32, count int) error {
	dst := p.growDispatchData(totalLength)

	amtToRead := totalLength
	i := 0
	readLength := p.subCmds[0].length
	for readLength <= amtToRead {
		sub := p.subCmds[i]
		i++
		pageID := uint32(sub.startPage)
		pageSize := uint32(1) << sub.logPageSize

		amtRead := uint32(0)
		for amtRead < readLength {
			nocAddr := p.noc.InterleavedAddr(true, sub.baseAddr, pageSize, pageID, 0)
			readSize := min(pageSize, readLength-amtRead)
			if err := p.noc.Read(nocAddr, dst[:readSize]); err != nil {
				return err
			}
			pageID++
			amtRead += readSize
			dst = dst[readSize:]
		}

		amtToRead -= amtRead
		if i > count {
			break
		}
		readLength = p.subCmds[i].length
	}
	return nil
}

func (p *Prefetch) processRelayInlineCmd() (uint32, error) {
	cmd := decodeRelayInlineCmd(p.header())

	if err := p.checkCmdRegLimit(CQPrefetchCmdSize + int(cmd.length)); err != nil {
		return 0, err
	}

	data := p.cmdReg[p.cmdPtr+CQPrefetchCmdSize:]
	p.dispatchData = append(p.dispatchData, data[:cmd.length]...)

	if err := p.flushDispatchData(); err != nil {
		return 0, err
	}

	return cmd.stride, nil
}

// RELAY_INLINE_NOFLUSH stages inline bytes without handing them to the
// dispatcher; it assembles dispatch commands whose payload arrives out of
// band from a later relay. The command is stateful: the staging buffer must
// be flushed by a subsequent RELAY_INLINE.
func (p *Prefetch) processRelayInlineNoFlushCmd() (uint32, error) {
	cmd := decodeRelayInlineCmd(p.header())

	if err := p.checkCmdRegLimit(CQPrefetchCmdSize + int(cmd.length)); err != nil {
		return 0, err
	}

	data := p.cmdReg[p.cmdPtr+CQPrefetchCmdSize:]
	p.dispatchData = append(p.dispatchData, data[:cmd.length]...)

	return cmd.stride, nil
}

func (p *Prefetch) flushDispatchData() error {
	if err := p.dispatch.Run(p.dispatchData); err != nil {
		return err
	}
	p.dispatchData = p.dispatchData[:0]
	return nil
}

// growDispatchData extends the staging buffer by n zero bytes and returns
// the window covering them.
func (p *Prefetch) growDispatchData(n uint32) []byte {
	offset := len(p.dispatchData)
	p.dispatchData = append(p.dispatchData, make([]byte, n)...)
	return p.dispatchData[offset:]
}

func (p *Prefetch) checkCmdRegLimit(length int) error {
	if p.cmdPtr+length > len(p.cmdReg) {
		return fmt.Errorf(
			"tensix: prefetch command region overflow at offset %d: have %d bytes, want %d",
			p.cmdPtr, len(p.cmdReg)-p.cmdPtr, length)
	}
	return nil
}
