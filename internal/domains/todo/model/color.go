package model

type ColorTarget int

const (
	ColorGradient ColorTarget = iota
	ColorBackground
)

type colorPair struct {
	gradient   string
	background string
	hex        string
}

var (
	statusColors = map[Status]colorPair{
		StatusTodo:       {gradient: "from-rose-50", background: "bg-rose-500", hex: "#f43f5e"},
		StatusInProgress: {gradient: "from-orange-50", background: "bg-orange-500", hex: "#f97316"},
		StatusDone:       {gradient: "from-emerald-50", background: "bg-emerald-500", hex: "#10b981"},
	}
	defaultColor = colorPair{gradient: "from-zinc-300", background: "bg-zinc-300", hex: "#d4d4d8"}
)

func colorFor(status Status) colorPair {
	if pair, ok := statusColors[status]; ok {
		return pair
	}

	return defaultColor
}

// ColorClass returns the style class for status on the given target.
func ColorClass(status Status, target ColorTarget) string {
	pair := colorFor(status)

	if target == ColorBackground {
		return pair.background
	}

	return pair.gradient
}

// ColorHex is the terminal colour matching the background class of status.
func ColorHex(status Status) string {
	return colorFor(status).hex
}
