package main

import (
	"prayerd/internal/di"
	"prayerd/internal/structures"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := di.InitApp(cliFlags())
		if err != nil {
			return err
		}
		return app.Run()
	},
}

func cliFlags() *structures.CliFlags {
	return &structures.CliFlags{
		ConfigPath: configPath,
		EnvPath:    envPath,
		DebugMode:  debugMode,
	}
}
