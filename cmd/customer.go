package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Octaviomaldonado/GestorClientes/internal/model"
	"github.com/Octaviomaldonado/GestorClientes/internal/repository"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var customerCmd = &cobra.Command{
	Use:   "customer",
	Short: "Manage customers",
}

func init() {
	customerCmd.AddCommand(customerAddCmd)
	customerCmd.AddCommand(customerListCmd)
	customerCmd.AddCommand(customerGetCmd)
	customerCmd.AddCommand(customerUpdateCmd)
	customerCmd.AddCommand(customerDeleteCmd)
	customerCmd.AddCommand(customerToggleCmd)

	f := customerAddCmd.Flags()
	f.String("first", "", "first name")
	f.String("last", "", "last name")
	f.String("phone", "", "phone number (validated and stored as E.164)")
	f.String("email", "", "email address (validated and lower-cased)")
	f.String("region", "", "region to validate the phone against (US, AR, ...)")
	f.String("notes", "", "optional notes")
	f.Bool("inactive", false, "create the customer as inactive")
	_ = customerAddCmd.MarkFlagRequired("first")
	_ = customerAddCmd.MarkFlagRequired("last")
	_ = customerAddCmd.MarkFlagRequired("phone")
	_ = customerAddCmd.MarkFlagRequired("email")

	customerListCmd.Flags().String("active", "all", "filter: all | active | inactive")
	customerListCmd.Flags().String("q", "", "substring search over name, email and phone")

	customerGetCmd.Flags().Int64("id", 0, "customer id")
	customerGetCmd.Flags().String("email", "", "customer email")

	uf := customerUpdateCmd.Flags()
	uf.Int64("id", 0, "customer id (or use --email)")
	uf.String("email", "", "current email of the customer to update")
	uf.String("first", "", "new first name")
	uf.String("last", "", "new last name")
	uf.String("phone", "", "new phone (validated)")
	uf.String("region", "", "region for phone validation")
	uf.String("new-email", "", "new email (validated)")
	uf.Bool("active", false, "new active state")
	uf.String("notes", "", "new notes")

	customerDeleteCmd.Flags().Int64("id", 0, "customer id")
	customerDeleteCmd.Flags().String("email", "", "customer email")
	customerDeleteCmd.Flags().Bool("force", false, "skip confirmation")

	customerToggleCmd.Flags().Int64("id", 0, "customer id")
	_ = customerToggleCmd.MarkFlagRequired("id")
}

func printCustomers(rows []model.Customer) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Apellido", "Nombre", "Teléfono", "Email", "Activo", "Notas"})
	for _, c := range rows {
		activo := "no"
		if c.Active {
			activo = "sí"
		}
		table.Append([]string{
			strconv.FormatInt(c.ID, 10), c.LastName, c.FirstName, c.Phone, c.Email, activo, c.Notes,
		})
	}
	table.Render()
	fmt.Printf("%d customer(s)\n", len(rows))
}

var customerAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a customer (validates email and phone)",
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

		v := newValidator(cfg)
		rawEmail, _ := cmd.Flags().GetString("email")
		email, err := v.NormalizeEmail(rawEmail)
		if err != nil {
			return err
		}
		rawPhone, _ := cmd.Flags().GetString("phone")
		region, _ := cmd.Flags().GetString("region")
		phone, err := v.NormalizePhone(rawPhone, region)
		if err != nil {
			return err
		}

		first, _ := cmd.Flags().GetString("first")
		last, _ := cmd.Flags().GetString("last")
		notes, _ := cmd.Flags().GetString("notes")
		inactive, _ := cmd.Flags().GetBool("inactive")

		id, err := repository.NewCustomersRepository(dbx).Create(context.Background(), model.Customer{
			FirstName: strings.TrimSpace(first),
			LastName:  strings.TrimSpace(last),
			Phone:     phone,
			Email:     email,
			Active:    !inactive,
			Notes:     strings.TrimSpace(notes),
		})
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return fmt.Errorf("email already exists: %s", email)
		}
		if err != nil {
			return err
		}

		fmt.Printf("Customer added (id=%d).\n", id)
		return nil
	},
}

var customerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List customers",
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
		q, _ := cmd.Flags().GetString("q")

		rows, err := repository.NewCustomersRepository(dbx).List(context.Background(), filter, q)
		if err != nil {
			return err
		}
		printCustomers(rows)
		return nil
	},
}

var customerGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show one customer by id or email",
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

		repo := repository.NewCustomersRepository(dbx)
		var cust *model.Customer

		if id, _ := cmd.Flags().GetInt64("id"); id > 0 {
			cust, err = repo.GetByID(context.Background(), id)
		} else if email, _ := cmd.Flags().GetString("email"); email != "" {
			norm, verr := newValidator(cfg).NormalizeEmail(email)
			if verr != nil {
				return verr
			}
			cust, err = repo.GetByEmail(context.Background(), norm)
		} else {
			return errors.New("provide --id or --email")
		}
		if err != nil {
			return err
		}
		if cust == nil {
			fmt.Println("Customer not found.")
			return nil
		}

		printCustomers([]model.Customer{*cust})
		fmt.Printf("created_at=%s updated_at=%s\n", cust.CreatedAt, cust.UpdatedAt)
		return nil
	},
}

var customerUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update customer fields (only supplied flags change)",
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

		v := newValidator(cfg)
		var patch model.CustomerPatch

		if cmd.Flags().Changed("first") {
			s, _ := cmd.Flags().GetString("first")
			patch.FirstName = &s
		}
		if cmd.Flags().Changed("last") {
			s, _ := cmd.Flags().GetString("last")
			patch.LastName = &s
		}
		if cmd.Flags().Changed("phone") {
			raw, _ := cmd.Flags().GetString("phone")
			region, _ := cmd.Flags().GetString("region")
			phone, verr := v.NormalizePhone(raw, region)
			if verr != nil {
				return verr
			}
			patch.Phone = &phone
		}
		if cmd.Flags().Changed("new-email") {
			raw, _ := cmd.Flags().GetString("new-email")
			email, verr := v.NormalizeEmail(raw)
			if verr != nil {
				return verr
			}
			patch.Email = &email
		}
		if cmd.Flags().Changed("active") {
			b, _ := cmd.Flags().GetBool("active")
			patch.Active = &b
		}
		if cmd.Flags().Changed("notes") {
			s, _ := cmd.Flags().GetString("notes")
			patch.Notes = &s
		}

		repo := repository.NewCustomersRepository(dbx)
		var updated bool

		if id, _ := cmd.Flags().GetInt64("id"); id > 0 {
			updated, err = repo.UpdateByID(context.Background(), id, patch)
		} else if email, _ := cmd.Flags().GetString("email"); email != "" {
			norm, verr := v.NormalizeEmail(email)
			if verr != nil {
				return verr
			}
			updated, err = repo.UpdateByEmail(context.Background(), norm, patch)
		} else {
			return errors.New("provide --id or --email")
		}
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return errors.New("the new email already belongs to another customer")
		}
		if err != nil {
			return err
		}

		if updated {
			fmt.Println("Customer updated.")
		} else {
			fmt.Println("No changes made.")
		}
		return nil
	},
}

var customerDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a customer (notes cascade, turnos keep a null reference)",
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

		force, _ := cmd.Flags().GetBool("force")
		if !force {
			fmt.Print("Delete permanently? [y/N] ")
			line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			if answer := strings.ToLower(strings.TrimSpace(line)); answer != "y" && answer != "yes" {
				fmt.Println("Cancelled.")
				return nil
			}
		}

		repo := repository.NewCustomersRepository(dbx)
		var deleted bool

		if id, _ := cmd.Flags().GetInt64("id"); id > 0 {
			deleted, err = repo.DeleteByID(context.Background(), id)
		} else if email, _ := cmd.Flags().GetString("email"); email != "" {
			norm, verr := newValidator(cfg).NormalizeEmail(email)
			if verr != nil {
				return verr
			}
			deleted, err = repo.DeleteByEmail(context.Background(), norm)
		} else {
			return errors.New("provide --id or --email")
		}
		if err != nil {
			return err
		}

		if deleted {
			fmt.Println("Customer deleted.")
		} else {
			fmt.Println("Customer not found.")
		}
		return nil
	},
}

var customerToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Flip a customer's active flag",
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
		repo := repository.NewCustomersRepository(dbx)

		cust, err := repo.GetByID(context.Background(), id)
		if err != nil {
			return err
		}
		if cust == nil {
			fmt.Println("Customer not found.")
			return nil
		}

		next := !cust.Active
		if _, err := repo.UpdateByID(context.Background(), id, model.CustomerPatch{Active: &next}); err != nil {
			return err
		}
		fmt.Printf("Customer %d active=%v.\n", id, next)
		return nil
	},
}
