package app

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/database/seeders"
	"github.com/shashiranjanraj/storefront/pkg/database"
	"github.com/shashiranjanraj/storefront/pkg/migration"
	"gorm.io/gorm"
)

// Migrate runs all pending migrations and reports what ran to w.
func (a *Application) Migrate(ctx context.Context, w io.Writer) error {
	return withDB(ctx, func(db *gorm.DB) error {
		applied, err := migration.New(db).Run(ctx)
		for _, name := range applied {
			fmt.Fprintf(w, "Migrated:  %s\n", name)
		}
		if err != nil {
			return err
		}
		if len(applied) == 0 {
			fmt.Fprintln(w, "Nothing to migrate.")
		}
		return nil
	})
}

// Rollback reverses the last migration batch.
func (a *Application) Rollback(ctx context.Context, w io.Writer) error {
	return withDB(ctx, func(db *gorm.DB) error {
		rolled, err := migration.New(db).Rollback(ctx)
		for _, name := range rolled {
			fmt.Fprintf(w, "Rolled back:  %s\n", name)
		}
		if err != nil {
			return err
		}
		if len(rolled) == 0 {
			fmt.Fprintln(w, "Nothing to rollback.")
		}
		return nil
	})
}

// MigrateStatus prints every registered migration and its batch.
func (a *Application) MigrateStatus(ctx context.Context, w io.Writer) error {
	return withDB(ctx, func(db *gorm.DB) error {
		statuses, err := migration.New(db).Status(ctx)
		if err != nil {
			return err
		}
		return writeStatus(w, statuses)
	})
}

// RouteList prints every named route without opening the store.
func (a *Application) RouteList(w io.Writer) error {
	infos := a.router(nil, nil).Routes()
	if len(infos) == 0 {
		fmt.Fprintln(w, "No named routes registered.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "METHOD\tPATH\tNAME")
	fmt.Fprintln(tw, "------\t----\t----")
	for _, ri := range infos {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
	}
	return tw.Flush()
}

func writeStatus(w io.Writer, statuses []migration.Status) error {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "RAN?\tBATCH\tMIGRATION")
	for _, s := range statuses {
		ran, batch := "No", "-"
		if s.Ran {
			ran, batch = "Yes", fmt.Sprint(s.Batch)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", ran, batch, s.Name)
	}
	return tw.Flush()
}

func withDB(ctx context.Context, fn func(db *gorm.DB) error) error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	db, err := database.Open(ctx, database.OptionsFromConfig())
	if err != nil {
		return err
	}
	defer database.Close(db) //nolint:errcheck

	return fn(db)
}

// Seed runs every registered seeder.
func (a *Application) Seed(ctx context.Context, w io.Writer) error {
	return withDB(ctx, func(db *gorm.DB) error {
		return seeders.RunAll(ctx, db, w)
	})
}
