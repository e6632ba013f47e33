package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	_ "portfolio-backend/docs" // Important for Swagger
)

// @title           Portfolio Backend API
// @version         1.0
// @description     Content management API for a personal portfolio site.
// @host            localhost:8080
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "portfolio",
	Short:         "Portfolio content backend",
	SilenceUsage:  true,
	SilenceErrors: true,
	// no subcommand starts the server
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, hashPasswordCmd, watchCmd)
}
