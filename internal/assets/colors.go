package assets

import rl "github.com/gen2brain/raylib-go/raylib"

// Color name mapping for documents
var colorByName = map[string]rl.Color{
	"Red":       rl.Red,
	"Blue":      rl.Blue,
	"Green":     rl.Green,
	"Purple":    rl.Purple,
	"Orange":    rl.Orange,
	"Yellow":    rl.Yellow,
	"Gold":      rl.Gold,
	"White":     rl.White,
	"Gray":      rl.Gray,
	"LightGray": rl.LightGray,
	"DarkGray":  rl.DarkGray,
	"Black":     rl.Black,
	"Pink":      rl.Pink,
	"Maroon":    rl.Maroon,
	"Brown":     rl.Brown,
	"Beige":     rl.Beige,
	"SkyBlue":   rl.SkyBlue,
	"DarkBlue":  rl.DarkBlue,
	"Lime":      rl.Lime,
	"DarkGreen": rl.DarkGreen,
	"Violet":    rl.Violet,
	"Magenta":   rl.Magenta,
}

// LookupColor returns a raylib color from a name string. Unknown names
// are white.
func LookupColor(name string) rl.Color {
	if c, ok := colorByName[name]; ok {
		return c
	}
	return rl.White
}

// ColorName is the inverse of LookupColor.
func ColorName(c rl.Color) (string, bool) {
	for name, candidate := range colorByName {
		if candidate == c {
			return name, true
		}
	}
	return "", false
}
