package rule

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is a display color written as "#RRGGBB" (or "#RGB"). The empty Color
// means "use the default style".
type Color string

// Muted is the fixed style of the ignored-files group
const Muted Color = "#808080"

// RGB returns the color's components. ok is false for the empty or malformed colors.
func (c Color) RGB() (r, g, b uint8, ok bool) {
	hex := strings.TrimPrefix(strings.TrimSpace(string(c)), "#")
	if len(hex) == 3 {
		hex = strings.Repeat(hex[0:1], 2) + strings.Repeat(hex[1:2], 2) + strings.Repeat(hex[2:3], 2)
	}
	if len(hex) != 6 {
		return 0, 0, 0, false
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), true
}

// IsZero reports whether the color is unset
func (c Color) IsZero() bool {
	return strings.TrimSpace(string(c)) == ""
}

// Validate returns an error for a set but unparseable color
func (c Color) Validate() error {
	if c.IsZero() {
		return nil
	}
	if _, _, _, ok := c.RGB(); !ok {
		return fmt.Errorf("rule: invalid color %q, want #RRGGBB", string(c))
	}
	return nil
}

// String implements fmt.Stringer
func (c Color) String() string {
	r, g, b, ok := c.RGB()
	if !ok {
		return string(c)
	}
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}
