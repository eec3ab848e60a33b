package langstats

// palette maps languages to their display color as hex RGB.
var palette = map[string]string{
	"C":          "#555555",
	"C++":        "#F34B7D",
	"CSS":        "#563D7C",
	"Clojure":    "#5BB800",
	"Crystal":    "#000000",
	"Elixir":     "#6E4A7E",
	"Erlang":     "#B83950",
	"Go":         "#00ADD8",
	"HTML":       "#E34C26",
	"Haskell":    "#5E5086",
	"Java":       "#B07219",
	"JavaScript": "#F1E05A",
	"Kotlin":     "#A97BFF",
	"Lua":        "#000080",
	"Nim":        "#FFE953",
	"OCaml":      "#EE7A00",
	"PHP":        "#777BB4",
	"Python":     "#3776AB",
	"Ruby":       "#CC342D",
	"Rust":       "#DEA584",
	"Scala":      "#DC322F",
	"Shell":      "#89E051",
	"Svelte":     "#FF3E00",
	"Swift":      "#F05138",
	"TSX":        "#61DAFB",
	"TypeScript": "#3178C6",
	"Vue":        "#41B883",
	"Zig":        "#EC915C",
}

// Color returns the display color of lang, or "" when it has none.
func Color(lang string) string {
	return palette[lang]
}
