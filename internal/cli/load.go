package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mrlokans/booksales/internal/audit"
	"github.com/mrlokans/booksales/internal/config"
	"github.com/mrlokans/booksales/internal/seed"
)

// LoadCommand applies a seed file to the catalog.
type LoadCommand struct {
	Database DatabaseFlags
	File     string
	AuditDir string
	DryRun   bool
	Verbose  bool

	Out io.Writer
}

func NewLoadCommand() *LoadCommand {
	return &LoadCommand{}
}

func (cmd *LoadCommand) ParseFlags(args []string, cfg *config.Config) error {
	fs := flag.NewFlagSet("load", flag.ContinueOnError)

	cmd.Database.Register(fs, cfg.Database)
	fs.StringVar(&cmd.File, "file", cfg.Seed.File, "Path to the seed JSON file")
	fs.StringVar(&cmd.AuditDir, "audit-dir", cfg.Audit.Dir, "Directory for load reports (empty disables reports)")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Show what would be inserted without making changes")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "List every record that would be inserted or skipped")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s load [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Load publishers, shops, books, stock and sales from a seed file.\n")
		fmt.Fprintf(os.Stderr, "Records whose primary key already exists are skipped, so the\n")
		fmt.Fprintf(os.Stderr, "same file can be loaded any number of times.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s load -file data.json\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s load -file data.json -dry-run -verbose\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.File == "" {
		return fmt.Errorf("required flag -file not provided")
	}
	return nil
}

func (cmd *LoadCommand) Run() error {
	out := stdout(cmd.Out)

	fmt.Fprintln(out, "Seed Load")
	fmt.Fprintln(out, "=========")
	if cmd.DryRun {
		fmt.Fprintln(out, "DRY RUN MODE - No changes will be made")
	}
	fmt.Fprintf(out, "File: %s\n", cmd.File)

	records, err := seed.ReadFile(cmd.File)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Found %d records\n", len(records))

	open := cmd.Database.open
	if cmd.DryRun {
		open = cmd.Database.openReadOnly
	}
	db, err := open()
	if err != nil {
		return err
	}
	defer db.Close()

	loader := seed.NewLoader(db.DB)
	ctx := context.Background()

	if cmd.DryRun {
		result, err := loader.Plan(ctx, records)
		if err != nil {
			return err
		}
		printResult(out, result, "would be inserted")
		if cmd.Verbose {
			fmt.Fprintln(out, "\n=== Records ===")
			for _, rec := range records {
				fmt.Fprintf(out, "  %s pk=%d\n", rec.Kind, rec.PK)
			}
		}
		fmt.Fprintln(out, "\nDry run complete. Use without -dry-run to load.")
		return nil
	}

	startedAt := time.Now()
	result, loadErr := loader.Load(ctx, records)
	cmd.saveReport(out, audit.NewLoadReport("cli", cmd.File, startedAt, result, loadErr))
	if loadErr != nil {
		return loadErr
	}

	printResult(out, result, "inserted")
	return nil
}

func (cmd *LoadCommand) saveReport(out io.Writer, report audit.LoadReport) {
	if cmd.AuditDir == "" {
		return
	}
	filename, err := audit.NewAuditor(cmd.AuditDir).SaveReport(report)
	if err != nil {
		fmt.Fprintf(out, "Warning: failed to save load report: %v\n", err)
		return
	}
	if cmd.Verbose {
		fmt.Fprintf(out, "Load report: %s\n", filename)
	}
}

func printResult(out io.Writer, result seed.Result, verb string) {
	fmt.Fprintln(out, "\n=== Summary ===")
	for _, kind := range seed.Kinds() {
		fmt.Fprintf(out, "%-10s %d %s, %d skipped\n", kind.String()+":", result.Inserted[kind], verb, result.Skipped[kind])
	}
	fmt.Fprintf(out, "Total: %d %s, %d skipped\n", result.TotalInserted(), verb, result.TotalSkipped())
}
