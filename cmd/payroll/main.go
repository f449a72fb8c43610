// Command payroll extracts employee payment data from Brazilian payroll
// PDFs and writes the result to the terminal, an export file or PostgreSQL.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/folhapay/payroll-extract/internal/domain/export"
	"github.com/folhapay/payroll-extract/internal/domain/extract/parser"
	"github.com/folhapay/payroll-extract/internal/domain/extract/service"
	"github.com/folhapay/payroll-extract/internal/domain/payroll/repository"
	"github.com/folhapay/payroll-extract/pkg/config"
	"github.com/folhapay/payroll-extract/pkg/pdftext"
	"github.com/folhapay/payroll-extract/pkg/period"
)

var (
	periodFlag string
	formatFlag string
	outFlag    string
)

var rootCmd = &cobra.Command{
	Use:           "payroll",
	Short:         "Extract employee payment data from payroll PDFs",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a payroll PDF and print the result",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Parse a payroll PDF and write it to an export file",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

var saveCmd = &cobra.Command{
	Use:   "save [file]",
	Short: "Parse a payroll PDF and store it in PostgreSQL",
	Args:  cobra.ExactArgs(1),
	RunE:  runSave,
}

var periodsCmd = &cobra.Command{
	Use:   "periods",
	Short: "List the periods stored in PostgreSQL",
	Args:  cobra.NoArgs,
	RunE:  runPeriods,
}

var deleteCmd = &cobra.Command{
	Use:   "delete [period]",
	Short: "Delete the stored payroll for a period (MM/YYYY)",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&periodFlag, "period", "", "force the payroll period (MM/YYYY)")
	exportCmd.Flags().StringVar(&formatFlag, "format", "csv", "export format: csv, csv-summary, json or xlsx")
	exportCmd.Flags().StringVar(&outFlag, "out", "", "output path (default: <export dir>/payroll_<period>.<format>)")
	rootCmd.AddCommand(parseCmd, exportCmd, saveCmd, periodsCmd, deleteCmd)
}

func main() {
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelInfo,
			TimeFormat: time.Kitchen,
		}),
	))

	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

// newService assembles the extraction pipeline from configuration and flags.
// The --period flag takes precedence over the PAYROLL_MONTH_YEAR override.
func newService(cfg *config.Config, repo repository.PayrollRepository) *service.ExtractService {
	override := cfg.Extract.PeriodOverride
	if periodFlag != "" {
		override = periodFlag
	}

	dateParser := parser.NewDateParser(
		parser.WithMaxHeaderLines(cfg.Extract.MaxHeaderLines),
		parser.WithPeriodOverride(override),
	)

	var opts []parser.PDFParserOption
	if def, err := period.FromString(cfg.Extract.DefaultPeriod); err == nil {
		opts = append(opts, parser.WithDefaultPeriod(def))
	}

	pdfParser := parser.NewPDFParser(
		parser.NewTextParser(pdftext.NewReader()),
		dateParser,
		parser.NewEmployeeParser(),
		opts...,
	)

	return service.NewExtractService(pdfParser, repo, slog.Default())
}

// openRepository connects to PostgreSQL and ensures the payroll schema.
func openRepository(ctx context.Context, cfg *config.Config) (*repository.PostgresPayrollRepository, *pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	repo := repository.NewPostgresPayrollRepository(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return repo, pool, nil
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	result, err := newService(cfg, nil).Extract(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(result.Payroll.Snapshot(), "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(data))
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	exporter, err := export.ByFormat(formatFlag)
	if err != nil {
		return err
	}

	svc := newService(cfg, nil)
	result, err := svc.Extract(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out := outFlag
	if out == "" {
		name := fmt.Sprintf("payroll_%s.%s",
			strings.ReplaceAll(result.Payroll.Period().String(), "/", "-"),
			exporter.FormatName())
		out = filepath.Join(cfg.Export.Dir, name)
	}

	if err := exporter.Export(result.Payroll, out); err != nil {
		return err
	}
	cmd.Printf("exported %d employees for %s to %s\n",
		result.Payroll.EmployeeCount(), result.Payroll.Period(), out)
	return nil
}

func runSave(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	repo, pool, err := openRepository(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	result, err := newService(cfg, repo).ExtractAndSave(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	cmd.Printf("saved %d employees for %s\n",
		result.Payroll.EmployeeCount(), result.Payroll.Period())
	return nil
}

func runPeriods(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	repo, pool, err := openRepository(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	periods, err := repo.ListPeriods(cmd.Context())
	if err != nil {
		return err
	}
	if len(periods) == 0 {
		cmd.Println("no payrolls stored")
		return nil
	}
	for _, per := range periods {
		cmd.Printf("%s (%s)\n", per, per.FullName())
	}
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	per, err := period.FromString(args[0])
	if err != nil {
		return err
	}

	repo, pool, err := openRepository(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := repo.DeleteByPeriod(cmd.Context(), per); err != nil {
		return err
	}
	cmd.Printf("deleted payroll for %s\n", per)
	return nil
}
