package cli

import (
	"fmt"
	"strings"

	"github.com/deepnoodle-ai/skillset/frontmatter"
	"github.com/deepnoodle-ai/wonton/cli"
)

func registerShowCommand(app *cli.App) {
	app.Command("show").
		Description("Show a skill document").
		Long("Display the header fields and body of one skill document, found by name within a directory.").
		Args("name").
		Flags(
			cli.String("dir", "d").Help("Directory to search (defaults to the current directory)"),
			cli.Bool("body", "b").Help("Include the document body"),
		).
		Run(func(ctx *cli.Context) error {
			parseGlobalFlags(ctx)
			name := ctx.Arg(0)

			registry, err := scanDirectory(ctx.String("dir"))
			if err != nil {
				return cli.Errorf("%v", err)
			}
			info, ok := registry.Get(name)
			if !ok {
				return cli.Errorf("no skill named %q in %s", name, registry.Root())
			}

			doc, err := frontmatter.ParseFile(info.Path)
			if err != nil {
				return cli.Errorf("%v", err)
			}

			fmt.Println(headerStyle.Sprint(info.Name))
			fmt.Printf("  %s %s\n", boldStyle.Sprint("path:"), info.Path)
			for _, field := range doc.Fields {
				fmt.Printf("  %s %s\n",
					boldStyle.Sprint(field.Name+":"),
					formatValue(field.Value))
			}
			if ctx.Bool("body") {
				fmt.Println()
				fmt.Println(doc.Body)
			}
			return nil
		})
}

func formatValue(value frontmatter.Value) string {
	switch value.Kind() {
	case frontmatter.KindBool:
		return fmt.Sprintf("%t", value.Truth())
	case frontmatter.KindList:
		return strings.Join(value.Items(), ", ")
	default:
		return value.Text()
	}
}
