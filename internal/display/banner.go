package display

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// PrintBanner prints the ASCII art banner; magenta when colors are enabled.
func PrintBanner() {
	banner := ` _   _                  _____     _
| \ | | __ _ _ __   ___|_   _| __(_)_ __ ___
|  \| |/ _` + "`" + ` | '_ \ / _ \ | || '__| | '_ ` + "`" + ` _ \
| |\  | (_| | | | | (_) || || |  | | | | | | |
|_| \_|\__,_|_| |_|\___/ |_||_|  |_|_| |_| |_|
`
	color.New(color.FgHiMagenta, color.Bold).Fprint(os.Stdout, banner)
	fmt.Fprintln(os.Stdout)
}
