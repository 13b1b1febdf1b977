package lanes

// Palette is the fixed set of branch colors, as hex strings. Color
// derivation always indexes with modulo len(Palette), so lookups never go
// out of range.
var Palette = [...]string{
	"#4e79a7", // blue
	"#f28e2b", // orange
	"#59a14f", // green
	"#e15759", // red
	"#b07aa1", // purple
	"#76b7b2", // teal
	"#edc948", // yellow
	"#ff9da7", // pink
}

// RefColor derives a deterministic color from a branch or tag name. The
// same name maps to the same color across invocations and processes.
func RefColor(name string) string {
	return Palette[refIndex(name)]
}

// refIndex folds the ref name into a palette index using the classic
// shift-and-subtract string hash (h*31 + c in 32-bit arithmetic).
func refIndex(name string) int {
	var h int32
	for i := 0; i < len(name); i++ {
		h = h<<5 - h + int32(name[i])
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return int(v % int64(len(Palette)))
}

// laneColor returns the positional default color for a lane index.
// Negative indices are folded into range so arbitrary arithmetic on lane
// numbers stays safe.
func laneColor(i int) string {
	n := len(Palette)
	return Palette[((i%n)+n)%n]
}
