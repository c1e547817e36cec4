package display

import (
	"fmt"
	"os"
)

// PrintBanner prints the ASCII art banner; bold magenta when colorsOn.
func PrintBanner(colorsOn bool) {
	if colorsOn {
		fmt.Fprint(os.Stdout, "\033[1;95m")
	}
	fmt.Fprint(os.Stdout, `  ____ _                 _ __  __
 / ___| | ___  _   _  __| |  \/  |_   ___  __
| |   | |/ _ \| | | |/ _` + "`" + ` | |\/| | | | \ \/ /
| |___| | (_) | |_| | (_| | |  | | |_| |>  <
 \____|_|\___/ \__,_|\__,_|_|  |_|\__,_/_/\_\
`)
	if colorsOn {
		fmt.Fprintln(os.Stdout, "\033[0m")
	}
}
