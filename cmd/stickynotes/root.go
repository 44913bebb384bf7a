package main

import (
	"github.com/spf13/cobra"

	"stickynotes/internal/app"
	"stickynotes/internal/logger"
)

func newRootCmd() *cobra.Command {
	opts := app.OptionsFromEnv()
	var verbose, noWatch bool

	cmd := &cobra.Command{
		Use:          "stickynotes",
		Short:        "Colored sticky notes for the desktop",
		Long:         "Shows one small window per note and keeps their text, size and color in a JSON file.",
		Version:      app.AppVersion,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				opts.LogLevel = logger.DebugLevel
			}
			if noWatch {
				opts.Watch = false
			}
			return run(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", opts.ConfigPath, "path of the notes file")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	cmd.Flags().BoolVar(&opts.JSONLogs, "json-logs", opts.JSONLogs, "log as JSON lines")
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "do not reload settings when the file changes on disk")

	return cmd
}

func run(opts app.Options) error {
	log := opts.NewLogger()

	application, err := app.NewApplication(opts, log)
	if err != nil {
		log.Error("Main", err, map[string]interface{}{"config": opts.ConfigPath})
		return err
	}
	return application.Run()
}
