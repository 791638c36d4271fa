package tensix

import (
	"fmt"
	"log"
)

// maxWritePackedCores bounds the destination list of one WRITE_PACKED
// command (unicast; multicast commands carry at most half as many).
const maxWritePackedCores = 108

// ReadBufferDescriptor is the host-side sink for WRITE_LINEAR_H_HOST: a
// destination buffer registered out of band before the command stream that
// returns data to the host is processed.
type ReadBufferDescriptor struct {
	PaddedPageSize uint32
	Dst            []byte
	DstOffset      uint32
	NumPagesRead   uint32
}

// Dispatch is the second stage of the command-queue pipeline. It walks the
// stream assembled by Prefetch and executes write-family commands: linear
// and multicast writes, interleaved paged writes, packed multi-destination
// writes, and copies back to the registered host read buffer.
type Dispatch struct {
	soc *Soc
	noc *Noc

	readBuffer ReadBufferDescriptor

	// Valid only within one Run call.
	cmdReg []byte
	cmdPtr int
}

// NewDispatch creates the dispatch stage over the given fabric.
func NewDispatch(soc *Soc, nocArch NocArch) *Dispatch {
	return &Dispatch{
		soc: soc,
		noc: NewNoc(soc, nocArch),
	}
}

// ConfigureReadBuffer registers the host destination for subsequent
// WRITE_LINEAR_H_HOST commands.
func (d *Dispatch) ConfigureReadBuffer(paddedPageSize uint32, dst []byte, dstOffset, numPagesRead uint32) {
	d.readBuffer = ReadBufferDescriptor{
		PaddedPageSize: paddedPageSize,
		Dst:            dst,
		DstOffset:      dstOffset,
		NumPagesRead:   numPagesRead,
	}
}

// Run interprets cmdReg as a sequence of dispatch commands, consuming it
// exactly. Failures abort the run at the offending command; prior writes
// remain applied.
func (d *Dispatch) Run(cmdReg []byte) error {
	d.cmdReg = cmdReg
	d.cmdPtr = 0
	for d.cmdPtr < len(d.cmdReg) {
		if err := d.processCmd(); err != nil {
			return err
		}
	}
	if d.cmdPtr != len(d.cmdReg) {
		return fmt.Errorf(
			"tensix: dispatch command stream overran its region by %d bytes",
			d.cmdPtr-len(d.cmdReg))
	}
	return nil
}

func (d *Dispatch) processCmd() error {
	if err := d.checkCmdRegLimit(CQDispatchCmdSize); err != nil {
		return err
	}

	cmdID := d.cmdReg[d.cmdPtr]
	if cqDiag {
		log.Printf("tensix: dispatch cmd %d at offset %d", cmdID, d.cmdPtr)
	}

	switch cmdID {
	case CQDispatchCmdWriteLinear:
		return d.processWriteLinear()

	case CQDispatchCmdWritePaged:
		return d.processWritePaged()

	case CQDispatchCmdWritePacked:
		cmd := decodeWritePackedCmd(d.header())
		return d.processWritePacked(cmd, cmd.flags&CQDispatchCmdPackedWriteFlagMcast != 0)

	case CQDispatchCmdWriteLinearHHost:
		return d.processWriteHost()

	// WRITE_LINEAR_H, GO, SINK, DEBUG and DELAY are outside the emulated
	// subset and fall through to the invalid-command error.

	case CQDispatchCmdWait:
		d.cmdPtr += CQDispatchCmdSize
		return nil

	case CQDispatchCmdTerminate:
		d.cmdPtr += CQDispatchCmdSize
		return nil

	default:
		return fmt.Errorf("tensix: invalid dispatch command %d at offset %d", cmdID, d.cmdPtr)
	}
}

func (d *Dispatch) header() []byte {
	return d.cmdReg[d.cmdPtr : d.cmdPtr+CQDispatchCmdSize]
}

func (d *Dispatch) processWriteLinear() error {
	cmd := decodeWriteLinearCmd(d.header())

	if err := d.checkCmdRegLimit(CQDispatchCmdSize + int(cmd.length)); err != nil {
		return err
	}
	data := d.cmdReg[d.cmdPtr+CQDispatchCmdSize:][:cmd.length]

	dst := NocAddr(cmd.nocXYAddr, cmd.addr)
	var err error
	if cmd.numMcastDests == 0 {
		err = d.noc.Write(data, dst)
	} else {
		err = d.noc.WriteMulticast(data, dst, uint32(cmd.numMcastDests))
	}
	if err != nil {
		return err
	}

	d.cmdPtr += CQDispatchCmdSize + int(cmd.length)
	return nil
}

func (d *Dispatch) processWritePaged() error {
	cmd := decodeWritePagedCmd(d.header())

	writeLength := cmd.pages * cmd.pageSize
	if err := d.checkCmdRegLimit(CQDispatchCmdSize + int(writeLength)); err != nil {
		return err
	}
	data := d.cmdReg[d.cmdPtr+CQDispatchCmdSize:][:writeLength]

	pageID := uint32(cmd.startPage)
	for len(data) > 0 {
		dst := d.noc.InterleavedAddr(cmd.isDRAM, cmd.baseAddr, cmd.pageSize, pageID, 0)
		if err := d.noc.Write(data[:cmd.pageSize], dst); err != nil {
			return err
		}
		pageID++
		data = data[cmd.pageSize:]
	}

	d.cmdPtr += CQDispatchCmdSize + int(writeLength)
	return nil
}

// WRITE_PACKED layout following the header: count sub-commands, padding to
// L1 NoC alignment, then count data records of the padded transfer size.
// With NO_STRIDE set all destinations share the first record.
func (d *Dispatch) processWritePacked(cmd cqWritePackedCmd, mcast bool) error {
	count := int(cmd.count)
	maxCount := maxWritePackedCores
	subCmdSize := CQDispatchWritePackedUnicastSubCmdSize
	if mcast {
		maxCount /= 2
		subCmdSize = CQDispatchWritePackedMulticastSubCmdSize
	}
	if count > maxCount {
		return fmt.Errorf(
			"tensix: packed write count %d exceeds %d at offset %d", count, maxCount, d.cmdPtr)
	}

	dataStart := int(alignUpPow2(uint32(CQDispatchCmdSize+count*subCmdSize), l1NocAlignment))
	paddedXferSize := alignUpPow2(uint32(cmd.size), l1NocAlignment)
	stride := paddedXferSize
	if cmd.flags&CQDispatchCmdPackedWriteFlagNoStride != 0 {
		stride = 0
	}

	if err := d.checkCmdRegLimit(dataStart + int(stride)*(count-1) + int(paddedXferSize)); err != nil {
		return err
	}

	subCmds := d.cmdReg[d.cmdPtr+CQDispatchCmdSize:]
	dataPos := d.cmdPtr + dataStart
	for i := 0; i < count; i++ {
		sub := subCmds[i*subCmdSize:]
		dstNoc := decodeWritePackedSubNocXY(sub)
		numDests := uint32(1)
		if mcast {
			numDests = decodeWritePackedSubNumDests(sub)
		}
		dst := NocAddr(dstNoc, cmd.addr)
		data := d.cmdReg[dataPos:][:cmd.size]

		var err error
		if mcast {
			err = d.noc.WriteMulticast(data, dst, numDests)
		} else {
			err = d.noc.Write(data, dst)
		}
		if err != nil {
			return err
		}

		dataPos += int(stride)
	}

	if stride == 0 {
		dataPos += int(paddedXferSize)
	}

	d.cmdPtr = dataPos
	return nil
}

func (d *Dispatch) processWriteHost() error {
	cmd := decodeWriteHostCmd(d.header())

	if cmd.length < CQDispatchCmdSize {
		return fmt.Errorf(
			"tensix: host write length %d at offset %d does not cover its header",
			cmd.length, d.cmdPtr)
	}
	if err := d.checkCmdRegLimit(int(cmd.length)); err != nil {
		return err
	}

	if d.readBuffer.Dst == nil {
		return fmt.Errorf(
			"tensix: host write at offset %d without a configured read buffer", d.cmdPtr)
	}

	// The command struct is not copied to the host; by construction, length
	// includes it.
	payload := d.cmdReg[d.cmdPtr+CQDispatchCmdSize:][:cmd.length-CQDispatchCmdSize]

	if expect := d.readBuffer.PaddedPageSize * d.readBuffer.NumPagesRead; expect != uint32(len(payload)) {
		return fmt.Errorf(
			"tensix: host write payload of %d bytes does not match read buffer of %d pages x %d bytes",
			len(payload), d.readBuffer.NumPagesRead, d.readBuffer.PaddedPageSize)
	}

	dstEnd := uint64(d.readBuffer.DstOffset) + uint64(len(payload))
	if dstEnd > uint64(len(d.readBuffer.Dst)) {
		return fmt.Errorf(
			"tensix: host write range [0x%x, 0x%x) is out of read buffer bounds",
			d.readBuffer.DstOffset, dstEnd)
	}
	copy(d.readBuffer.Dst[d.readBuffer.DstOffset:dstEnd], payload)

	d.cmdPtr += int(cmd.length)
	return nil
}

func (d *Dispatch) checkCmdRegLimit(length int) error {
	if d.cmdPtr+length > len(d.cmdReg) {
		return fmt.Errorf(
			"tensix: dispatch command region overflow at offset %d: have %d bytes, want %d",
			d.cmdPtr, len(d.cmdReg)-d.cmdPtr, length)
	}
	return nil
}
