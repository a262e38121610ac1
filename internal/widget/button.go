package widget

import "strings"

const buttonBase = "inline-flex items-center justify-center rounded-xl font-semibold transition-all " +
	"focus:outline-none focus:ring-2 focus:ring-offset-2 disabled:opacity-60 disabled:cursor-not-allowed " +
	"relative overflow-hidden select-none active:scale-95 shadow-lg"

var buttonSizes = map[string]string{
	"sm": "px-4 py-2 text-sm h-10",
	"md": "px-6 py-3 text-base h-12",
	"lg": "px-8 py-4 text-lg h-16",
}

var buttonVariants = map[string]string{
	"primary":       "bg-gradient-to-r from-blue-500 via-indigo-500 to-purple-500 hover:shadow-xl",
	"secondary":     "bg-gray-900 hover:bg-gray-800 shadow-md",
	"neon":          "bg-black border-2 border-cyan-400 hover:bg-cyan-500",
	"glassmorphism": "bg-white/10 backdrop-blur-md border border-white/20 hover:bg-white/20",
	"gradient":      "bg-gradient-to-r from-yellow-500 to-red-500 shadow-md hover:shadow-xl",
	"success":       "bg-gradient-to-r from-green-500 via-teal-500 to-blue-500 hover:shadow-xl",
	"danger":        "bg-gradient-to-r from-red-500 to-pink-500 hover:shadow-xl",
	"premium":       "bg-gradient-to-r from-purple-600 to-pink-500 hover:shadow-xl",
}

// Button describes how a button partial is drawn.
type Button struct {
	Variant      string
	Size         string
	IconPosition string // "left" or "right"
	Loading      bool
	FullWidth    bool
}

// NewButton builds a Button from template arguments. Each option is one
// of "full", "loading" or "icon-right"; others are ignored.
func NewButton(variant, size string, opts ...string) Button {
	b := Button{Variant: variant, Size: size, IconPosition: "left"}
	for _, o := range opts {
		switch o {
		case "full":
			b.FullWidth = true
		case "loading":
			b.Loading = true
		case "icon-right":
			b.IconPosition = "right"
		}
	}
	return b
}

// Classes returns the CSS class list. Unknown variants and sizes fall
// back to primary and md.
func (b Button) Classes() string {
	variant, ok := buttonVariants[b.Variant]
	if !ok {
		variant = buttonVariants["primary"]
	}
	size, ok := buttonSizes[b.Size]
	if !ok {
		size = buttonSizes["md"]
	}

	parts := []string{buttonBase, size, variant}
	if b.FullWidth {
		parts = append(parts, "w-full")
	}
	if b.Loading {
		parts = append(parts, "is-loading")
	}
	return strings.Join(parts, " ")
}

func (b Button) IconRight() bool { return b.IconPosition == "right" }
