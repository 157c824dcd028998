package cli

import (
	"os"

	"github.com/deepnoodle-ai/skillset/log"
	"github.com/deepnoodle-ai/wonton/cli"
)

var (
	logLevel string
	app      *cli.App
)

func getLogger() log.Logger {
	return log.New(log.LevelFromString(logLevel))
}

func Execute() {
	app = cli.New("skillset").
		Description("Browse, validate, and edit skill documents").
		Version("0.1.0").
		GlobalFlags(
			cli.String("log-level", "").
				Default("warn").
				Help("Log level to use (debug, info, warn, error)"),
		)

	registerListCommand(app)
	registerShowCommand(app)
	registerValidateCommand(app)
	registerEditCommand(app)
	registerWatchCommand(app)

	if err := app.Execute(); err != nil {
		if cli.IsHelpRequested(err) {
			os.Exit(0)
		}
		os.Exit(cli.GetExitCode(err))
	}
}

// parseGlobalFlags extracts global flag values from context
func parseGlobalFlags(ctx *cli.Context) {
	logLevel = ctx.String("log-level")
}
