package cmd

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/Octaviomaldonado/GestorClientes/internal/model"
	"github.com/Octaviomaldonado/GestorClientes/internal/repository"
	"github.com/Octaviomaldonado/GestorClientes/internal/validate"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var appointmentCmd = &cobra.Command{
	Use:     "appointment",
	Aliases: []string{"turno"},
	Short:   "Manage appointments (turnos)",
}

func init() {
	appointmentCmd.AddCommand(appointmentAddCmd)
	appointmentCmd.AddCommand(appointmentListCmd)
	appointmentCmd.AddCommand(appointmentGetCmd)
	appointmentCmd.AddCommand(appointmentUpdateCmd)
	appointmentCmd.AddCommand(appointmentDeleteCmd)

	af := appointmentAddCmd.Flags()
	af.Int64("customer", 0, "optional customer id")
	af.String("date", "", "date, YYYY-MM-DD")
	af.String("time", "", "time, HH:MM")
	af.String("reason", "", "reason")
	_ = appointmentAddCmd.MarkFlagRequired("date")
	_ = appointmentAddCmd.MarkFlagRequired("time")
	_ = appointmentAddCmd.MarkFlagRequired("reason")

	appointmentListCmd.Flags().String("when", "all", "filter: all | future | past")

	appointmentGetCmd.Flags().Int64("id", 0, "appointment id")
	_ = appointmentGetCmd.MarkFlagRequired("id")

	uf := appointmentUpdateCmd.Flags()
	uf.Int64("id", 0, "appointment id")
	uf.Int64("customer", 0, "new customer id")
	uf.Bool("clear-customer", false, "detach the appointment from its customer")
	uf.String("date", "", "new date, YYYY-MM-DD")
	uf.String("time", "", "new time, HH:MM")
	uf.String("reason", "", "new reason")
	_ = appointmentUpdateCmd.MarkFlagRequired("id")

	appointmentDeleteCmd.Flags().Int64("id", 0, "appointment id")
	_ = appointmentDeleteCmd.MarkFlagRequired("id")
}

func printAppointments(rows []model.Appointment) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Inicio", "Motivo", "Cliente", "Email"})
	for _, t := range rows {
		name, email := "-", "-"
		if t.CustomerID.Valid {
			name = t.CustomerLastName.String + ", " + t.CustomerFirstName.String
			email = t.CustomerEmail.String
		}
		table.Append([]string{strconv.FormatInt(t.ID, 10), t.Start, t.Reason, name, email})
	}
	table.Render()
	fmt.Printf("%d appointment(s)\n", len(rows))
}

var appointmentAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create an appointment; the slot is not checked for conflicts",
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

		date, _ := cmd.Flags().GetString("date")
		clock, _ := cmd.Flags().GetString("time")
		start, err := validate.CombineDateTime(date, clock)
		if err != nil {
			return err
		}

		var customerID *int64
		if id, _ := cmd.Flags().GetInt64("customer"); id > 0 {
			customerID = &id
		}
		reason, _ := cmd.Flags().GetString("reason")

		id, err := repository.NewAppointmentsRepository(dbx).Add(context.Background(), customerID, start, reason)
		if errors.Is(err, repository.ErrMissingCustomer) {
			return fmt.Errorf("customer %d does not exist", *customerID)
		}
		if err != nil {
			return err
		}
		fmt.Printf("Appointment created (id=%d, start=%s).\n", id, start)
		return nil
	},
}

var appointmentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List appointments (future ascending, past descending)",
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
		printAppointments(rows)
		return nil
	},
}

var appointmentGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show one appointment",
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
		turno, err := repository.NewAppointmentsRepository(dbx).Get(context.Background(), id)
		if err != nil {
			return err
		}
		if turno == nil {
			fmt.Println("Appointment not found.")
			return nil
		}
		printAppointments([]model.Appointment{*turno})
		return nil
	},
}

var appointmentUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update appointment fields (only supplied flags change)",
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

		var patch model.AppointmentPatch

		clear, _ := cmd.Flags().GetBool("clear-customer")
		switch {
		case clear:
			patch.CustomerID = &sql.NullInt64{}
		case cmd.Flags().Changed("customer"):
			cid, _ := cmd.Flags().GetInt64("customer")
			patch.CustomerID = &sql.NullInt64{Int64: cid, Valid: true}
		}

		if cmd.Flags().Changed("date") != cmd.Flags().Changed("time") {
			return errors.New("--date and --time must be supplied together")
		}
		if cmd.Flags().Changed("date") {
			date, _ := cmd.Flags().GetString("date")
			clock, _ := cmd.Flags().GetString("time")
			start, verr := validate.CombineDateTime(date, clock)
			if verr != nil {
				return verr
			}
			patch.Start = &start
		}
		if cmd.Flags().Changed("reason") {
			s, _ := cmd.Flags().GetString("reason")
			patch.Reason = &s
		}

		id, _ := cmd.Flags().GetInt64("id")
		updated, err := repository.NewAppointmentsRepository(dbx).Update(context.Background(), id, patch)
		if errors.Is(err, repository.ErrMissingCustomer) {
			return errors.New("the new customer does not exist")
		}
		if err != nil {
			return err
		}
		if updated {
			fmt.Println("Appointment updated.")
		} else {
			fmt.Println("No changes made.")
		}
		return nil
	},
}

var appointmentDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete an appointment by id",
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
		deleted, err := repository.NewAppointmentsRepository(dbx).Delete(context.Background(), id)
		if err != nil {
			return err
		}
		if deleted {
			fmt.Println("Appointment deleted.")
		} else {
			fmt.Println("Appointment not found.")
		}
		return nil
	},
}
