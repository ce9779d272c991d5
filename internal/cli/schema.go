package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/booksales/internal/config"
	"github.com/mrlokans/booksales/internal/database"
)

// SchemaCommand creates, recreates or drops the catalog tables.
type SchemaCommand struct {
	Database DatabaseFlags
	Drop     bool
	DropOnly bool

	Out io.Writer
}

func NewSchemaCommand() *SchemaCommand {
	return &SchemaCommand{}
}

func (cmd *SchemaCommand) ParseFlags(args []string, cfg *config.Config) error {
	fs := flag.NewFlagSet("schema", flag.ContinueOnError)

	cmd.Database.Register(fs, cfg.Database)
	fs.BoolVar(&cmd.Drop, "drop", false, "Drop existing catalog tables before creating them")
	fs.BoolVar(&cmd.DropOnly, "drop-only", false, "Drop catalog tables and exit")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s schema [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create the publisher, shop, book, stock and sale tables.\n")
		fmt.Fprintf(os.Stderr, "Existing tables are left as they are unless -drop is given.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *SchemaCommand) Run() error {
	out := stdout(cmd.Out)

	db, err := database.Open(cmd.Database.Config())
	if err != nil {
		return err
	}
	conn := &database.Database{DB: db}
	defer conn.Close()

	if cmd.Drop || cmd.DropOnly {
		if err := database.DropTables(db); err != nil {
			return err
		}
		fmt.Fprintln(out, "Dropped catalog tables")
		if cmd.DropOnly {
			return nil
		}
	}

	if err := database.CreateTables(db); err != nil {
		return err
	}
	fmt.Fprintln(out, "Catalog tables are ready")
	return nil
}
