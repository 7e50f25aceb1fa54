// Package options contains the program options.
package options

// Defaults of the host loop.
const (
	DefaultRate       ClockRate = 600 // instructions per second
	DefaultHoldFrames           = 6
	DefaultFrames               = 600
)

// Parameters contains file path options.
type Parameters struct {
	Input string // ROM file to run
}

// Flags contains behavior options.
type Flags struct {
	Rate       ClockRate // instruction rate
	HoldFrames int       // frames a key stays pressed after a terminal key event
	Headless   bool      // run without terminal and print the final frame
	Frames     int       // frames to run in headless mode
	Seed       uint64    // random seed, 0 picks a time based seed
	StackDepth int       // maximum nested calls
	Trace      bool      // log every executed instruction
	Debug      bool
	Quiet      bool
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
}

// New returns program options with all defaults set.
func New() Program {
	return Program{
		Flags: Flags{
			Rate:       DefaultRate,
			HoldFrames: DefaultHoldFrames,
			Frames:     DefaultFrames,
			StackDepth: 16,
		},
	}
}

// Disassembler defines options to control the listing output.
type Disassembler struct {
	Input          string
	Output         string
	HexComments    bool
	OffsetComments bool
	Quiet          bool
}

// NewDisassembler returns a new options instance with default options.
func NewDisassembler() Disassembler {
	return Disassembler{
		HexComments:    true,
		OffsetComments: true,
	}
}
