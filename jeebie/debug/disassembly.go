package debug

import (
	"github.com/valerio/jeebie-core/jeebie/disasm"
)

type DisasmLine struct {
	Address     uint16
	Instruction string
	IsCurrent   bool
}

// DisasmBuffer holds pre-allocated buffers for disassembly lines
type DisasmBuffer struct {
	Lines    []DisasmLine
	AllLines []DisasmLine
}

func NewDisasmBuffer(maxLines int) *DisasmBuffer {
	return &DisasmBuffer{
		Lines:    make([]DisasmLine, 0, maxLines),
		AllLines: make([]DisasmLine, 0, maxLines*3),
	}
}

// backwardBytes is how far before PC decoding starts. Decoding from an
// arbitrary byte may land mid instruction; the stream usually resyncs well
// before PC.
const backwardBytes = 30

func CreateDisassembly(snapshot *MemorySnapshot, pc uint16, maxLines int) []DisasmLine {
	return CreateDisassemblyWithBuffer(snapshot, pc, maxLines, NewDisasmBuffer(maxLines))
}

// CreateDisassemblyWithBuffer decodes the snapshot and returns at most
// maxLines lines centered on the instruction at pc, reusing buf.
func CreateDisassemblyWithBuffer(snapshot *MemorySnapshot, pc uint16, maxLines int, buf *DisasmBuffer) []DisasmLine {
	if snapshot == nil || maxLines <= 0 {
		return nil
	}

	if !snapshot.Contains(pc) {
		buf.Lines = buf.Lines[:0]
		for i := 0; i < len(snapshot.Bytes) && len(buf.Lines) < maxLines-1; {
			instruction, length := decodeAt(snapshot, i)
			buf.Lines = append(buf.Lines, DisasmLine{
				Address:     snapshot.StartAddr + uint16(i),
				Instruction: instruction,
			})
			i += length
		}
		buf.Lines = append(buf.Lines, DisasmLine{
			Address:     pc,
			Instruction: "[PC outside snapshot range]",
			IsCurrent:   true,
		})
		return buf.Lines
	}

	pcOffset := int(pc - snapshot.StartAddr)
	buf.AllLines = buf.AllLines[:0]
	after := 0
	for i := max(pcOffset-backwardBytes, 0); i < len(snapshot.Bytes); {
		address := snapshot.StartAddr + uint16(i)
		instruction, length := decodeAt(snapshot, i)
		buf.AllLines = append(buf.AllLines, DisasmLine{
			Address:     address,
			Instruction: instruction,
			IsCurrent:   address == pc,
		})

		i += length
		if address > pc {
			after++
			if after >= maxLines {
				break
			}
		}
	}

	// center on PC, or on the closest line when decoding never hit PC exactly
	center := 0
	closest := 0x10000
	for i, line := range buf.AllLines {
		dist := int(line.Address) - int(pc)
		if dist < 0 {
			dist = -dist
		}
		if dist < closest {
			closest = dist
			center = i
		}
	}

	start := max(center-maxLines/2, 0)
	end := min(start+maxLines, len(buf.AllLines))
	start = max(end-maxLines, 0)

	buf.Lines = append(buf.Lines[:0], buf.AllLines[start:end]...)
	return buf.Lines
}

// decodeAt disassembles the instruction at offset i of the snapshot at its
// real address, so relative jumps show their actual targets.
func decodeAt(snapshot *MemorySnapshot, i int) (string, int) {
	line := disasm.DisassembleAt(snapshot.StartAddr+uint16(i), snapshot)
	if i+line.Length > len(snapshot.Bytes) {
		return line.Instruction + " (truncated)", len(snapshot.Bytes) - i
	}
	return line.Instruction, line.Length
}
