package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"collection-export/internal/export/adapter/output"
	"collection-export/internal/export/adapter/persistence/mongodb"
	"collection-export/internal/export/config"
	"collection-export/internal/export/usecase"
	"collection-export/internal/shared/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type globalOptions struct {
	envFile string
}

type exportOptions struct {
	collection string
	database   string
	format     string
	output     string
}

func main() {
	globalOpts := &globalOptions{}

	root := &cobra.Command{
		Use:           "collection-export",
		Short:         "Export MongoDB collections as tables",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&globalOpts.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	root.AddCommand(exportCommand(globalOpts))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func exportCommand(globalOpts *globalOptions) *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Read a whole collection and write it as CSV or JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), globalOpts, opts, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&opts.collection, "collection", "c", "", "collection to export")
	cmd.Flags().StringVarP(&opts.database, "database", "d", "", "database to read from (defaults to DATABASE_NAME)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", output.FormatCSV, "output format: csv or json")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "-", "output file, - for stdout")
	_ = cmd.MarkFlagRequired("collection")

	return cmd
}

func runExport(ctx context.Context, globalOpts *globalOptions, opts *exportOptions, stdout io.Writer) error {
	// Load environment variables from .env file
	if err := godotenv.Load(globalOpts.envFile); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Could not load %s file: %v", globalOpts.envFile, err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	appLogger, err := logger.New(cfg.Log.Backend, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.SetDefault(appLogger)
	if z, ok := appLogger.(*logger.ZapLogger); ok {
		defer z.Sync()
	}
	cliLog := logger.WithComponent("cli")

	writer, err := output.NewWriter(opts.format)
	if err != nil {
		return err
	}

	exporter, err := usecase.NewCollectionExporter(ctx, cfg, mongodb.Connect, appLogger)
	if err != nil {
		return err
	}
	defer func() {
		if err := mongodb.CloseAll(context.Background()); err != nil {
			cliLog.Errorf("Failed to disconnect MongoDB: %v", err)
		}
	}()

	table, err := exporter.ExportCollectionAsTable(ctx, opts.collection, opts.database)
	if err != nil {
		return err
	}

	dst := stdout
	if opts.output != "" && opts.output != "-" {
		f, err := os.Create(opts.output)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", opts.output, err)
		}
		defer f.Close()
		dst = f
	}

	if err := writer.Write(dst, table); err != nil {
		return fmt.Errorf("failed to write %s output: %w", opts.format, err)
	}
	cliLog.Infof("Exported %d rows from %s", table.Len(), opts.collection)
	return nil
}
