package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/deepnoodle-ai/skillset/skill"
	"github.com/deepnoodle-ai/wonton/cli"
)

func registerWatchCommand(app *cli.App) {
	app.Command("watch").
		Description("Watch a directory and keep listing its skills").
		Long("Scan a directory, then keep the registry current by rescanning whenever skill documents change. Runs until interrupted; use --log-level debug to see rescans.").
		Args("directory?").
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

			watcher, err := skill.NewWatcher(registry, skill.WatchOptions{
				Logger: getLogger(),
			})
			if err != nil {
				return cli.Errorf("%v", err)
			}
			defer watcher.Close()

			signalCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := watcher.Start(signalCtx); err != nil {
				return cli.Errorf("%v", err)
			}

			fmt.Println(headerStyle.Sprintf("Watching %s", registry.Root()))
			printSkillTable(registry.List())
			printScanErrors(registry.Errors())

			<-signalCtx.Done()
			fmt.Println()
			fmt.Println(mutedStyle.Sprint("stopped"))
			return nil
		})
}
