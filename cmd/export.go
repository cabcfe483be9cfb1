package cmd

import (
	"context"
	"fmt"

	"github.com/Octaviomaldonado/GestorClientes/internal/export"
	"github.com/Octaviomaldonado/GestorClientes/internal/model"
	"github.com/Octaviomaldonado/GestorClientes/internal/repository"
	"github.com/Octaviomaldonado/GestorClientes/internal/validate"
	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export listings to XLSX",
}

func init() {
	exportCmd.AddCommand(exportCustomersCmd)
	exportCmd.AddCommand(exportAppointmentsCmd)

	exportCustomersCmd.Flags().StringP("out", "o", "", "output path (default clientes_<timestamp>.xlsx)")
	exportCustomersCmd.Flags().String("active", "all", "filter: all | active | inactive")

	exportAppointmentsCmd.Flags().StringP("out", "o", "", "output path (default turnos_<timestamp>.xlsx)")
	exportAppointmentsCmd.Flags().String("when", "all", "filter: all | future | past")
}

func saveWorkbook(f *excelize.File, out string, count int) error {
	if err := f.SaveAs(out); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	fmt.Printf("Wrote %d row(s) to %s\n", count, out)
	return nil
}

var exportCustomersCmd = &cobra.Command{
	Use:   "customers",
	Short: "Export customers to an XLSX workbook",
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

		raw, _ := cmd.Flags().GetString("active")
		filter, ok := model.ParseActiveFilter(raw)
		if !ok {
			return fmt.Errorf("invalid --active value %q (all | active | inactive)", raw)
		}

		rows, err := repository.NewCustomersRepository(dbx).List(context.Background(), filter, "")
		if err != nil {
			return err
		}
		f, err := export.Customers(rows)
		if err != nil {
			return err
		}

		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			out = export.Filename("clientes")
		}
		return saveWorkbook(f, out, len(rows))
	},
}

var exportAppointmentsCmd = &cobra.Command{
	Use:     "appointments",
	Aliases: []string{"turnos"},
	Short:   "Export appointments to an XLSX workbook",
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

		raw, _ := cmd.Flags().GetString("when")
		filter, ok := model.ParseTimeFilter(raw)
		if !ok {
			return fmt.Errorf("invalid --when value %q (all | future | past)", raw)
		}

		rows, err := repository.NewAppointmentsRepository(dbx).List(context.Background(), filter, validate.Now())
		if err != nil {
			return err
		}
		f, err := export.Appointments(rows)
		if err != nil {
			return err
		}

		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			out = export.Filename("turnos")
		}
		return saveWorkbook(f, out, len(rows))
	},
}
