package main

import (
	"fmt"
	"os"
	_ "time/tzdata"

	"github.com/spf13/cobra"
)

var (
	configPath string
	envPath    string
	debugMode  bool
)

var rootCmd = &cobra.Command{
	Use:   "prayerd",
	Short: "Prayer time resolution daemon",
	Long: `prayerd resolves the day's five prayer times for a location.

Times come from the prayer time provider when it is reachable and from the
local store otherwise; built-in defaults are served when nothing is stored.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to the YAML config file")
	rootCmd.PersistentFlags().StringVar(&envPath, "env", ".env", "path to a dotenv file (ignored when missing)")
	rootCmd.PersistentFlags().BoolVarP(&debugMode, "debug", "d", false, "mirror logs to the console")

	rootCmd.AddCommand(serveCmd, resolveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
