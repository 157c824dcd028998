package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/deepnoodle-ai/skillset/frontmatter"
	"github.com/deepnoodle-ai/skillset/skill"
	"github.com/deepnoodle-ai/wonton/cli"
)

func registerEditCommand(app *cli.App) {
	app.Command("edit").
		Description("Edit a skill document's header fields").
		Long("Stage changes to the known header fields of one document and save them atomically. Unknown fields, field order, and the document body are preserved. With --dry-run the pending diff is printed and nothing is written.").
		Args("file").
		Flags(
			cli.String("name", "").Help("New skill name"),
			cli.String("description", "").Help("New description"),
			cli.String("license", "").Help("New license"),
			cli.String("compatibility", "").Help("New compatibility constraint"),
			cli.String("user-invocable", "").Help("Whether users may invoke the skill directly (yes/no)"),
			cli.Bool("clear-license", "").Help("Remove the license field"),
			cli.Bool("clear-compatibility", "").Help("Remove the compatibility field"),
			cli.Bool("dry-run", "n").Help("Print the pending diff without saving"),
			cli.String("root", "r").Help("Skill directory used for rename conflict checks (defaults to the file's parent's parent)"),
		).
		Run(func(ctx *cli.Context) error {
			parseGlobalFlags(ctx)
			path := ctx.Arg(0)

			root := ctx.String("root")
			if root == "" {
				root = filepath.Dir(filepath.Dir(path))
			}
			registry, err := scanDirectory(root)
			if err != nil {
				return cli.Errorf("%v", err)
			}

			session, err := skill.OpenEdit(path, skill.EditOptions{
				Registry: registry,
				Logger:   getLogger(),
			})
			if err != nil {
				return cli.Errorf("%v", err)
			}

			if err := stageFlags(ctx, session); err != nil {
				return cli.Errorf("%v", err)
			}
			if !session.Dirty() {
				return cli.Errorf("nothing to change; pass at least one field flag")
			}

			diff, err := session.Diff()
			if err != nil {
				return cli.Errorf("%v", err)
			}
			if diff == "" {
				fmt.Println("No changes.")
				return nil
			}
			fmt.Print(diff)

			if ctx.Bool("dry-run") {
				fmt.Println(mutedStyle.Sprint("dry run, nothing written"))
				return nil
			}

			info, err := session.Save()
			if err != nil {
				return cli.Errorf("%v", err)
			}
			fmt.Printf("%s saved %s (%s)\n", okStyle.Sprint(checkmark), info.Name, info.Path)
			return nil
		})
}

// stageFlags applies the field flags to the session. Clear flags win
// over value flags for the same field.
func stageFlags(ctx *cli.Context, session *skill.EditSession) error {
	set := func(field, value string) error {
		return session.SetField(field, frontmatter.String(value))
	}

	if v := ctx.String("name"); v != "" {
		if err := set(skill.FieldName, v); err != nil {
			return err
		}
	}
	if v := ctx.String("description"); v != "" {
		if err := set(skill.FieldDescription, v); err != nil {
			return err
		}
	}
	if v := ctx.String("license"); v != "" {
		if err := set(skill.FieldLicense, v); err != nil {
			return err
		}
	}
	if v := ctx.String("compatibility"); v != "" {
		if err := set(skill.FieldCompatibility, v); err != nil {
			return err
		}
	}
	if v := ctx.String("user-invocable"); v != "" {
		invocable, err := parseInvocable(v)
		if err != nil {
			return err
		}
		if err := session.SetField(skill.FieldUserInvocable, frontmatter.Bool(invocable)); err != nil {
			return err
		}
	}
	if ctx.Bool("clear-license") {
		if err := set(skill.FieldLicense, ""); err != nil {
			return err
		}
	}
	if ctx.Bool("clear-compatibility") {
		if err := set(skill.FieldCompatibility, ""); err != nil {
			return err
		}
	}
	return nil
}

func parseInvocable(value string) (bool, error) {
	switch strings.ToLower(value) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("invalid --user-invocable value %q (want yes or no)", value)
}
