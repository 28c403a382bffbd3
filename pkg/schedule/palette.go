package schedule

// Palette is the rotating set of display color tokens. A job's color is
// stable within one computation but is not a persistent identity.
var Palette = []string{
	"bg-blue-500",
	"bg-green-500",
	"bg-yellow-500",
	"bg-purple-500",
	"bg-pink-500",
	"bg-indigo-500",
	"bg-red-500",
	"bg-orange-500",
	"bg-teal-500",
	"bg-cyan-500",
}

// ColorFor returns the palette token for the i-th job of a pass
func ColorFor(i int) string {
	return Palette[i%len(Palette)]
}
