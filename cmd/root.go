package cmd

import (
	"fmt"
	"os"

	"github.com/Octaviomaldonado/GestorClientes/internal/config"
	"github.com/Octaviomaldonado/GestorClientes/internal/db"
	"github.com/Octaviomaldonado/GestorClientes/internal/validate"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	cfgPath string
	dbPath  string
	rootCmd = &cobra.Command{
		Use:   "gestor",
		Short: "Gestor de clientes: customers, notes, turnos and mail settings",
	}
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to the SQLite database (overrides config)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(customerCmd)
	rootCmd.AddCommand(noteCmd)
	rootCmd.AddCommand(appointmentCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(sendmailCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(shellCmd)
}

// loadConfig reads config and applies the --db override.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if dbPath != "" {
		cfg.SQLite.Path = dbPath
	}
	return cfg, nil
}

// openDB connects and ensures the schema exists, so any command works
// against a fresh database file.
func openDB(cfg config.Config) (*sqlx.DB, error) {
	dbx, err := db.NewSQLiteConnection(cfg.SQLite.Path, db.SQLiteOpts{
		MaxOpenConns:    cfg.SQLite.MaxOpenConns,
		MaxIdleConns:    cfg.SQLite.MaxIdleConns,
		ConnMaxLifetime: cfg.SQLite.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.SQLite.ConnMaxIdleTime,
		PingTimeout:     cfg.SQLite.PingTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("sqlite connect: %w", err)
	}
	if err := db.Migrate(dbx); err != nil {
		_ = dbx.Close()
		return nil, err
	}
	return dbx, nil
}

func newValidator(cfg config.Config) *validate.Validator {
	return validate.New(cfg.Validation.DefaultRegion, cfg.Validation.CheckMX)
}
