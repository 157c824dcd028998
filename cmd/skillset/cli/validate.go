package cli

import (
	"fmt"

	"github.com/deepnoodle-ai/skillset/frontmatter"
	"github.com/deepnoodle-ai/skillset/skill"
	"github.com/deepnoodle-ai/wonton/cli"
)

func registerValidateCommand(app *cli.App) {
	app.Command("validate").
		Description("Validate skill document files").
		Long("Parse each file and check its metadata. Exits non-zero if any file is malformed or invalid.").
		Args("file...").
		Run(func(ctx *cli.Context) error {
			parseGlobalFlags(ctx)
			if ctx.NArg() == 0 {
				return cli.Errorf("no files given")
			}

			failures := 0
			for i := 0; i < ctx.NArg(); i++ {
				path := ctx.Arg(i)
				if err := validateFile(path); err != nil {
					failures++
					fmt.Printf("%s %s: %v\n", errorStyle.Sprint(xmark), path, err)
				} else {
					fmt.Printf("%s %s\n", okStyle.Sprint(checkmark), path)
				}
			}
			if failures > 0 {
				return cli.Errorf("%d of %d file(s) failed validation", failures, ctx.NArg())
			}
			return nil
		})
}

func validateFile(path string) error {
	doc, err := frontmatter.ParseFile(path)
	if err != nil {
		return err
	}
	_, err = skill.ValidateFields(doc.Fields)
	return err
}
