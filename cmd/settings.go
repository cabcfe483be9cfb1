package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/Octaviomaldonado/GestorClientes/internal/mail"
	"github.com/Octaviomaldonado/GestorClientes/internal/model"
	"github.com/Octaviomaldonado/GestorClientes/internal/repository"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Read and write stored settings (SMTP credentials and the like)",
}

func init() {
	settingsCmd.AddCommand(settingsListCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsSMTPCmd)
}

var settingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored settings (passwords are masked)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		dbx, err := openDB(cfg)
		if err != nil {
			return err
		}
		defer dbx.Close()

		stored, err := repository.NewSettingsRepository(dbx).All(context.Background())
		if err != nil {
			return err
		}

		keys := make([]string, 0, len(stored))
		for k := range stored {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Key", "Value"})
		for _, k := range keys {
			v := stored[k]
			if k == model.SettingSMTPPass && v != "" {
				v = "********"
			}
			table.Append([]string{k, v})
		}
		table.Render()
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Store a setting, replacing any previous value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		dbx, err := openDB(cfg)
		if err != nil {
			return err
		}
		defer dbx.Close()

		if err := repository.NewSettingsRepository(dbx).Set(context.Background(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("Saved %s.\n", args[0])
		return nil
	},
}

var settingsSMTPCmd = &cobra.Command{
	Use:   "smtp",
	Short: "Show the resolved SMTP configuration (settings, then env, then defaults)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		dbx, err := openDB(cfg)
		if err != nil {
			return err
		}
		defer dbx.Close()

		resolved, err := mail.NewResolver(repository.NewSettingsRepository(dbx), nil).Resolve(context.Background())
		if err != nil {
			return err
		}

		fmt.Printf("host:  %s\n", resolved.Host)
		fmt.Printf("port:  %d\n", resolved.Port)
		fmt.Printf("user:  %s\n", resolved.User)
		fmt.Printf("from:  %s\n", resolved.From)
		if resolved.Complete() {
			fmt.Println("ready: yes")
		} else {
			fmt.Println("ready: no (host, user and password are required)")
		}
		return nil
	},
}
