package options

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ClockRate is a frequency in Hz. It implements flag.Value and accepts
// values like 500, 600Hz or 1KHz.
type ClockRate int64

func (c ClockRate) String() string {
	rate := int64(c)
	suffix := "Hz"
	switch {
	case rate >= 1e6 && rate%1e6 == 0:
		rate /= 1e6
		suffix = "MHz"
	case rate >= 1e3 && rate%1e3 == 0:
		rate /= 1e3
		suffix = "KHz"
	}
	return fmt.Sprintf("%d%s", rate, suffix)
}

// Set parses a clock rate with an optional Hz, KHz or MHz suffix.
func (c *ClockRate) Set(str string) error {
	number, suffix := str, ""
	if i := strings.IndexFunc(str, unicode.IsLetter); i >= 0 {
		number, suffix = str[:i], str[i:]
	}

	rate, err := strconv.ParseInt(number, 10, 64)
	if err != nil {
		return fmt.Errorf("parsing clock rate '%s': %w", str, err)
	}
	if rate <= 0 {
		return errors.New("clock rate must be positive")
	}

	var multiplier int64
	switch strings.ToLower(suffix) {
	case "mhz":
		multiplier = 1e6
	case "khz":
		multiplier = 1e3
	case "hz", "":
		multiplier = 1
	default:
		return fmt.Errorf("unknown clock rate suffix '%s'", suffix)
	}
	if rate > math.MaxInt64/multiplier {
		return fmt.Errorf("clock rate '%s' is out of range", str)
	}

	*c = ClockRate(rate * multiplier)
	return nil
}
