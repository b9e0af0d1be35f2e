package control

import (
	"fmt"
	"strconv"
	"strings"
)

// Command is the normalized result of classifying one tick's raw input into
// a single logical action.
type Command uint8

const (
	None Command = iota
	PowerToggle
	BrightnessUp
	BrightnessDown
	Slower
	Faster
	Left
	Right
	ModeChange
	Play
	Pause
	SelectRed
	SelectGreen
	SelectYellow
	SelectBlue
	SelectWhite
)

var commandNames = map[Command]string{
	None:           "none",
	PowerToggle:    "power",
	BrightnessUp:   "brightness_up",
	BrightnessDown: "brightness_down",
	Slower:         "slower",
	Faster:         "faster",
	Left:           "left",
	Right:          "right",
	ModeChange:     "mode",
	Play:           "play",
	Pause:          "pause",
	SelectRed:      "red",
	SelectGreen:    "green",
	SelectYellow:   "yellow",
	SelectBlue:     "blue",
	SelectWhite:    "white",
}

func (c Command) String() string {
	if s, ok := commandNames[c]; ok {
		return s
	}
	return "unknown"
}

// ParseCommand maps a config-file command name to a Command.
func ParseCommand(s string) (Command, error) {
	for c, name := range commandNames {
		if name == s {
			return c, nil
		}
	}
	return None, fmt.Errorf("unknown command %q", s)
}

// Repeatable reports whether an IR repeat signal may re-trigger c. Only the
// stepwise adjustments auto-repeat while a remote button is held.
func (c Command) Repeatable() bool {
	switch c {
	case BrightnessUp, BrightnessDown, Slower, Faster:
		return true
	}
	return false
}

// CodeTable maps decoded 64-bit remote codes to commands. Codes absent from
// the table classify as None.
type CodeTable map[uint64]Command

// DefaultCodes is the table for the LG remote the device ships against.
func DefaultCodes() CodeTable {
	return CodeTable{
		0x20DF10EF: PowerToggle,    // Stand-by/On
		0x20DF00FF: BrightnessUp,   // +
		0x20DF807F: BrightnessDown, // -
		0x20DFAE51: ModeChange,     // OK
		0x20DF0BF4: Play,
		0x20DF738C: Pause,
		0x20DF5AA5: Slower, // Reverse
		0x20DFFD02: Faster, // Forward
		0x20DF04FB: Left,   // Previous
		0x20DF6B94: Right,
		0x20DF4EB1: SelectRed,
		0x20DF8E71: SelectGreen,
		0x20DFC639: SelectYellow,
		0x20DF8679: SelectBlue,
		0x20DF55AA: SelectWhite, // Info
	}
}

// ParseCodes builds a CodeTable from a config map of hex code -> command
// name.
func ParseCodes(m map[string]string) (CodeTable, error) {
	t := CodeTable{}
	for k, v := range m {
		code, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(k), "0x"), 16, 64)
		if err != nil {
			return nil, fmt.Errorf("bad IR code %q: %w", k, err)
		}
		cmd, err := ParseCommand(v)
		if err != nil {
			return nil, err
		}
		t[code] = cmd
	}
	return t, nil
}

// Input is the raw per-tick input snapshot handed to the classifier.
type Input struct {
	ButtonReleased bool // debounced release edge this tick

	CodeReady bool // a decoded remote code is pending
	Code      uint64
	Repeat    bool // the code is a repeat of the previous transmission
}

// Classifier merges the button channel and the remote channel into at most
// one logical command per tick. A button release always classifies as
// PowerToggle. Repeat signals re-trigger only the remembered last command,
// and only when that command is repeatable; any other repeat is discarded
// and also forgets the last command so later repeats stay inert. A fresh
// code always replaces the remembered last command, recognized or not.
type Classifier struct {
	table CodeTable
	last  Command
}

func NewClassifier(t CodeTable) *Classifier {
	if t == nil {
		t = DefaultCodes()
	}
	return &Classifier{table: t}
}

func (c *Classifier) Classify(in Input) Command {
	if in.ButtonReleased {
		return PowerToggle
	}
	if !in.CodeReady {
		return None
	}
	if in.Repeat {
		if c.last.Repeatable() {
			return c.last
		}
		c.last = None
		return None
	}
	cmd := c.table[in.Code]
	c.last = cmd
	return cmd
}
