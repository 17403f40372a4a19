package imaging

import "strings"

// interpolatorWindows maps interpolator names to the side length of the
// pixel window each one samples. A window size of 4 means a 4x4 grid.
var interpolatorWindows = map[string]int{
	"nearest":  1,
	"bilinear": 2,
	"bicubic":  4,
	"lbb":      4,
	"nohalo":   4,
	"vsqbs":    4,
}

// InterpolatorWindowSize returns the window size for the named interpolator,
// or 0 if the name is unknown. Names are matched case-insensitively.
func InterpolatorWindowSize(name string) int {
	return interpolatorWindows[strings.ToLower(strings.TrimSpace(name))]
}
