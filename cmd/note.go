package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/Octaviomaldonado/GestorClientes/internal/repository"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage customer notes",
}

func init() {
	noteCmd.AddCommand(noteAddCmd)
	noteCmd.AddCommand(noteListCmd)
	noteCmd.AddCommand(noteDeleteCmd)

	noteAddCmd.Flags().Int64("customer", 0, "owning customer id")
	noteAddCmd.Flags().String("content", "", "note text")
	_ = noteAddCmd.MarkFlagRequired("customer")
	_ = noteAddCmd.MarkFlagRequired("content")

	noteListCmd.Flags().Int64("customer", 0, "filter by customer id (0 = all)")

	noteDeleteCmd.Flags().Int64("id", 0, "note id")
	_ = noteDeleteCmd.MarkFlagRequired("id")
}

var noteAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Attach a note to a customer",
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

		customerID, _ := cmd.Flags().GetInt64("customer")
		content, _ := cmd.Flags().GetString("content")

		id, err := repository.NewNotesRepository(dbx).Add(context.Background(), customerID, content)
		if errors.Is(err, repository.ErrMissingCustomer) {
			return fmt.Errorf("customer %d does not exist", customerID)
		}
		if err != nil {
			return err
		}
		fmt.Printf("Note added (id=%d).\n", id)
		return nil
	},
}

var noteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes, newest first",
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

		var customerID *int64
		if id, _ := cmd.Flags().GetInt64("customer"); id > 0 {
			customerID = &id
		}

		rows, err := repository.NewNotesRepository(dbx).List(context.Background(), customerID)
		if err != nil {
			return err
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"ID", "Cliente", "Email", "Contenido", "Fecha"})
		for _, n := range rows {
			table.Append([]string{
				strconv.FormatInt(n.ID, 10),
				n.CustomerLastName + ", " + n.CustomerFirstName,
				n.CustomerEmail,
				n.Content,
				n.CreatedAt,
			})
		}
		table.Render()
		fmt.Printf("%d note(s)\n", len(rows))
		return nil
	},
}

var noteDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a note by id",
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

		id, _ := cmd.Flags().GetInt64("id")
		deleted, err := repository.NewNotesRepository(dbx).Delete(context.Background(), id)
		if err != nil {
			return err
		}
		if deleted {
			fmt.Println("Note deleted.")
		} else {
			fmt.Println("Note not found.")
		}
		return nil
	},
}
