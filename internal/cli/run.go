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
	"github.com/mrlokans/booksales/internal/database"
	"github.com/mrlokans/booksales/internal/database/sales"
	"github.com/mrlokans/booksales/internal/seed"
)

// RunCommand is the default flow: create the schema, load the seed file,
// then answer publisher queries until an empty line.
type RunCommand struct {
	Database DatabaseFlags
	File     string
	AuditDir string
	Drop     bool

	In  io.Reader
	Out io.Writer
}

func NewRunCommand() *RunCommand {
	return &RunCommand{}
}

func (cmd *RunCommand) ParseFlags(args []string, cfg *config.Config) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)

	cmd.Database.Register(fs, cfg.Database)
	fs.StringVar(&cmd.File, "file", cfg.Seed.File, "Path to the seed JSON file")
	fs.StringVar(&cmd.AuditDir, "audit-dir", cfg.Audit.Dir, "Directory for load reports (empty disables reports)")
	fs.BoolVar(&cmd.Drop, "drop", cfg.Seed.DropOnStart, "Drop catalog tables before loading")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [run] [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create the catalog tables, load the seed file and query sales by publisher.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.File == "" {
		return fmt.Errorf("required flag -file not provided")
	}
	return nil
}

func (cmd *RunCommand) Run() error {
	out := stdout(cmd.Out)
	ctx := context.Background()

	gdb, err := database.Open(cmd.Database.Config())
	if err != nil {
		return err
	}
	db := &database.Database{DB: gdb}
	defer db.Close()

	if cmd.Drop {
		if err := database.DropTables(gdb); err != nil {
			return err
		}
	}
	if err := database.CreateTables(gdb); err != nil {
		return err
	}

	startedAt := time.Now()
	result, loadErr := seed.NewLoader(gdb).LoadFile(ctx, cmd.File)
	if cmd.AuditDir != "" {
		report := audit.NewLoadReport("cli", cmd.File, startedAt, result, loadErr)
		if _, err := audit.NewAuditor(cmd.AuditDir).SaveReport(report); err != nil {
			fmt.Fprintf(out, "Warning: failed to save load report: %v\n", err)
		}
	}
	if loadErr != nil {
		return loadErr
	}

	fmt.Fprintf(out, "Loaded %s: %d inserted, %d skipped\n", cmd.File, result.TotalInserted(), result.TotalSkipped())

	return RunQueryLoop(ctx, stdin(cmd.In), out, sales.NewRepository(gdb))
}
