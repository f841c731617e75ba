package codegen

import (
	"fmt"

	"github.com/lithic-lang/lithic/mods/lang"
)

// variables mirrors the shape of the runtime stack at compile time.
// Slot 0 is the bottom; the last slot is the word at [rsp]. A slot
// holding an unnamed temporary is recorded as "".
type variables struct {
	slots []lang.Identifier
}

// extendVar returns a copy with a named slot pushed. Extension copies
// so sibling branches of a conditional cannot alias each other's table.
func (v *variables) extendVar(name lang.Identifier) *variables {
	slots := make([]lang.Identifier, len(v.slots)+1)
	copy(slots, v.slots)
	slots[len(v.slots)] = name
	return &variables{slots: slots}
}

// extendTemp returns a copy with an unnamed slot pushed.
func (v *variables) extendTemp() *variables {
	return v.extendVar("")
}

// position returns the distance in words from the stack top to the
// nearest binding of name.
func (v *variables) position(name lang.Identifier) (int, bool) {
	if name == "" {
		return 0, false
	}
	for i := len(v.slots) - 1; i >= 0; i-- {
		if v.slots[i] == name {
			return len(v.slots) - 1 - i, true
		}
	}
	return 0, false
}

func (v *variables) depth() int {
	return len(v.slots)
}

// labelSeq hands out program-unique label names.
type labelSeq struct {
	count int
}

func (s *labelSeq) fresh(prefix string) string {
	s.count++
	return fmt.Sprintf("%s_%d", prefix, s.count)
}
