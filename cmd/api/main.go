// Command api levanta la API de pet-care y expone utilidades de operación.
//
// @title Pet Care API
// @version 1.0
// @description Perfil de mascotas, historial médico firmado, peso, recordatorios, chapitas y recomendación nutricional.
// @BasePath /
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:           "api",
	Short:         "Pet care API server",
	SilenceUsage:  true,
	SilenceErrors: true,
	// Sin subcomando => serve
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "archivo .env opcional")
	rootCmd.AddCommand(serveCmd, migrateCmd, feedingCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
