package mips

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/NM711/MIPS-Emulator/log"
)

// StepRecord is one executed instruction, as emitted by the tracer.
type StepRecord struct {
	Step uint64 `json:"step"`
	PC   uint32 `json:"pc"`
	Word uint32 `json:"word"`
	Asm  string `json:"asm"`
}

// Tracer writes one JSON line per executed instruction.
type Tracer struct {
	w io.Writer
}

func NewTracer(w io.Writer) *Tracer {
	return &Tracer{w: w}
}

func (t *Tracer) Record(rec StepRecord) {
	line, err := json.Marshal(rec)
	if err != nil {
		log.Warn(log.ExecModule, "trace record dropped", "err", err)
		return
	}
	fmt.Fprintf(t.w, "%s\n", line)
}
