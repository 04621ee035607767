package operation

import (
	"errors"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  Operation
	}{
		{"correct", Correct},
		{"SHORTEN", Shorten},
		{"  rephrase\n", Rephrase},
		{"formalize", Formalize},
		{"formal", Formalize},
		{"Respectful", Respectful},
		{"positive", Positive},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseUnknown(t *testing.T) {
	for _, input := range []string{"", "summarize", "correct!"} {
		_, err := Parse(input)
		if !errors.Is(err, ErrUnknown) {
			t.Errorf("Parse(%q): got %v, want ErrUnknown", input, err)
		}
	}
}

func TestInstructionTable(t *testing.T) {
	seen := make(map[string]Operation)
	for _, op := range All() {
		instr := op.Instruction()
		if instr == "" {
			t.Fatalf("%s: empty instruction", op)
		}
		if !strings.Contains(instr, "Return ONLY") {
			t.Errorf("%s: instruction does not ask for bare output", op)
		}
		if prev, dup := seen[instr]; dup {
			t.Errorf("%s shares its instruction with %s", op, prev)
		}
		seen[instr] = op
		if !op.Valid() {
			t.Errorf("%s: not valid", op)
		}
	}
	if len(seen) != 6 {
		t.Errorf("operations: got %d, want 6", len(seen))
	}
}

func TestInvalidOperation(t *testing.T) {
	op := Operation("translate")
	if op.Valid() {
		t.Error("expected invalid operation")
	}
	if op.Instruction() != "" {
		t.Errorf("instruction: got %q, want empty", op.Instruction())
	}
}
