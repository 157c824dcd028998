package cli

import (
	"fmt"
	"strings"

	"github.com/deepnoodle-ai/skillset/skill"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

var (
	boldStyle    = color.New(color.Bold)
	headerStyle  = color.New(color.FgCyan, color.Bold)
	errorStyle   = color.New(color.FgRed, color.Bold)
	warningStyle = color.New(color.FgYellow, color.Bold)
	mutedStyle   = color.New(color.FgWhite, color.Faint)
	okStyle      = color.New(color.FgGreen)
)

const (
	checkmark = "✓"
	xmark     = "✗"
)

// padRight pads text with spaces to the given display width, counting
// wide runes correctly.
func padRight(text string, width int) string {
	gap := width - runewidth.StringWidth(text)
	if gap <= 0 {
		return text
	}
	return text + strings.Repeat(" ", gap)
}

// printSkillTable renders registry entries as an aligned table.
func printSkillTable(infos []skill.Info) {
	nameWidth := len("NAME")
	descWidth := len("DESCRIPTION")
	for _, info := range infos {
		if w := runewidth.StringWidth(info.Name); w > nameWidth {
			nameWidth = w
		}
		if w := runewidth.StringWidth(info.Description); w > descWidth {
			descWidth = w
		}
	}

	fmt.Printf("%s  %s  %s\n",
		boldStyle.Sprint(padRight("NAME", nameWidth)),
		boldStyle.Sprint(padRight("DESCRIPTION", descWidth)),
		boldStyle.Sprint("PATH"))
	for _, info := range infos {
		name := padRight(info.Name, nameWidth)
		if info.UserInvocable {
			name = okStyle.Sprint(name)
		}
		fmt.Printf("%s  %s  %s\n",
			name,
			padRight(info.Description, descWidth),
			mutedStyle.Sprint(info.Path))
	}
}

// printScanErrors lists the documents a scan could not register.
func printScanErrors(errs []skill.ScanError) {
	if len(errs) == 0 {
		return
	}
	fmt.Println()
	fmt.Println(warningStyle.Sprintf("%d document(s) skipped:", len(errs)))
	for _, scanErr := range errs {
		fmt.Printf("  %s %s\n", warningStyle.Sprint(xmark), scanErr.Error())
	}
}
