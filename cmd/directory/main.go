package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/anonto42/introhub/backend/internal/cache"
	"github.com/anonto42/introhub/backend/internal/models"
	"github.com/anonto42/introhub/backend/internal/repositories"
	"github.com/anonto42/introhub/backend/internal/router"
	"github.com/anonto42/introhub/backend/internal/services"
	"github.com/anonto42/introhub/backend/internal/storage"
	"github.com/anonto42/introhub/backend/internal/validators"
	"github.com/anonto42/introhub/backend/pkg/config"
	"github.com/anonto42/introhub/backend/pkg/logger"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "directory",
		Short:         "Maintain the IntroHub company directory",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(migrateCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// env is what every subcommand needs: the config and open databases.
type env struct {
	cfg *config.Config
	db  *config.DB
}

func setup() (*env, error) {
	config.LoadEnv()
	cfg := config.Load()
	logger.New(cfg.Env)

	db, err := config.InitDB(cfg)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, db: db}, nil
}

func (e *env) companyService() (*services.CompanyService, error) {
	store, err := storage.New(e.cfg.Storage)
	if err != nil {
		return nil, err
	}
	mdb := e.db.Mongo.Database(e.cfg.MongoDatabase)
	return services.NewCompanyService(
		repositories.NewMongoCompanyRepository(mdb),
		repositories.NewMongoCompanyMemberRepository(mdb),
		store,
		// zero ttl: one-shot commands always read through
		cache.New[[]models.Company](0, 0),
		validators.NewValidator(),
	), nil
}

func importCmd() *cobra.Command {
	var (
		file   string
		dryRun bool
	)
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Bulk load companies from a CSV file",
		Long: `Bulk load companies from a CSV file with a header row.

company_name and email columns are required, industry is optional.
Rows that fail validation or name a company that already exists are
skipped.

Examples:
  directory import --file companies.csv
  directory import --file companies.csv --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()

			rows, err := services.ParseCompanyCSV(f)
			if err != nil {
				return fmt.Errorf("reading %s: %w", file, err)
			}
			if dryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "Parsed %d rows, dry run - no changes made\n", len(rows))
				return nil
			}

			e, err := setup()
			if err != nil {
				return err
			}
			defer e.db.Close()

			svc, err := e.companyService()
			if err != nil {
				return err
			}
			result, err := svc.Import(cmd.Context(), rows)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Inserted %d, skipped %d\n", result.Inserted, result.Skipped)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "path to the CSV file")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse the file without writing")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func listCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list [search-text]",
		Short: "List companies, optionally filtered by name",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var text string
			if len(args) == 1 {
				text = args[0]
			}

			e, err := setup()
			if err != nil {
				return err
			}
			defer e.db.Close()

			svc, err := e.companyService()
			if err != nil {
				return err
			}
			companies, err := svc.List(cmd.Context(), text)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(companies)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tEMAIL\tSTATUS")
			for _, c := range companies {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.CompanyID, c.CompanyName, c.Email, c.Status)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVarP(&asJSON, "json", "j", false, "output as JSON")
	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the postgres tables and mongo indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.db.Close()

			if err := router.Migrate(cmd.Context(), e.db.Postgres, e.db.Mongo.Database(e.cfg.MongoDatabase)); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied")
			return nil
		},
	}
}
