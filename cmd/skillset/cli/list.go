package cli

import (
	"fmt"
	"os"

	"github.com/deepnoodle-ai/skillset/skill"
	"github.com/deepnoodle-ai/wonton/cli"
)

// scanDirectory builds a registry over the given directory, defaulting
// to the current working directory.
func scanDirectory(dir string) (*skill.Registry, error) {
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return nil, err
		}
	}
	registry := skill.New(skill.Options{Logger: getLogger()})
	if err := registry.Scan(dir); err != nil {
		return nil, err
	}
	return registry, nil
}

func registerListCommand(app *cli.App) {
	app.Command("list").
		Description("List skill documents in a directory").
		Long("Scan a directory for skill documents and list the valid ones sorted by name. Documents that fail to parse or validate are reported separately.").
		Args("directory?").
		Flags(
			cli.String("pattern", "p").Help("Only list skills whose name matches this glob (e.g. 'review-*')"),
			cli.Bool("quiet", "q").Help("Print skill names only"),
		).
		Run(func(ctx *cli.Context) error {
			parseGlobalFlags(ctx)

			var dir string
			if ctx.NArg() > 0 {
				dir = ctx.Arg(0)
			}
			registry, err := scanDirectory(dir)
			if err != nil {
				return cli.Errorf("%v", err)
			}

			infos := registry.List()
			if pattern := ctx.String("pattern"); pattern != "" {
				infos, err = registry.ListMatching(pattern)
				if err != nil {
					return cli.Errorf("%v", err)
				}
			}

			if ctx.Bool("quiet") {
				for _, info := range infos {
					fmt.Println(info.Name)
				}
				return nil
			}

			if len(infos) == 0 {
				fmt.Println("No skill documents found in", registry.Root())
			} else {
				printSkillTable(infos)
			}
			printScanErrors(registry.Errors())
			return nil
		})
}
