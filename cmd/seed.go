package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Octaviomaldonado/GestorClientes/internal/model"
	"github.com/Octaviomaldonado/GestorClientes/internal/repository"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert a few demo customers, notes and turnos",
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

		ctx := context.Background()
		customers := repository.NewCustomersRepository(dbx)
		notes := repository.NewNotesRepository(dbx)
		turnos := repository.NewAppointmentsRepository(dbx)

		demo := []model.Customer{
			{FirstName: "Ana", LastName: "García", Phone: "+14155552671", Email: "ana.garcia@example.com", Active: true, Notes: "Prefiere turnos por la mañana"},
			{FirstName: "Bruno", LastName: "López", Phone: "+14155552672", Email: "bruno.lopez@example.com", Active: true},
			{FirstName: "Carla", LastName: "Pérez", Phone: "+14155552673", Email: "carla.perez@example.com", Active: false, Notes: "Dada de baja en 2024"},
		}

		inserted := 0
		ids := make([]int64, 0, len(demo))
		for _, c := range demo {
			id, err := customers.Create(ctx, c)
			if errors.Is(err, repository.ErrDuplicateEmail) {
				continue // already seeded
			}
			if err != nil {
				return err
			}
			ids = append(ids, id)
			inserted++
		}

		if len(ids) > 0 {
			if _, err := notes.Add(ctx, ids[0], "Consulta inicial completada"); err != nil {
				return err
			}
			start := time.Now().Add(48 * time.Hour).Format("2006-01-02 15:04")
			if _, err := turnos.Add(ctx, &ids[0], start, "Control de rutina"); err != nil {
				return err
			}
		}

		fmt.Printf("Seeded %d customer(s).\n", inserted)
		return nil
	},
}
