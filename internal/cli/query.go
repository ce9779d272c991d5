package cli

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mrlokans/booksales/internal/config"
	"github.com/mrlokans/booksales/internal/database/sales"
)

const QueryPrompt = "Enter publisher name or id: "

// SalesFinder looks up sales rows for a publisher key.
type SalesFinder interface {
	SalesByPublisher(ctx context.Context, key string) ([]sales.Row, error)
}

// QueryCommand prints sales for publishers, either for a single -publisher
// key or interactively until an empty line.
type QueryCommand struct {
	Database  DatabaseFlags
	Publisher string

	In  io.Reader
	Out io.Writer
}

func NewQueryCommand() *QueryCommand {
	return &QueryCommand{}
}

func (cmd *QueryCommand) ParseFlags(args []string, cfg *config.Config) error {
	fs := flag.NewFlagSet("query", flag.ContinueOnError)

	cmd.Database.Register(fs, cfg.Database)
	fs.StringVar(&cmd.Publisher, "publisher", "", "Publisher id or name fragment; prompts interactively when omitted")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s query [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Print book sales for a publisher. A numeric key matches the publisher id,\n")
		fmt.Fprintf(os.Stderr, "any other key matches publishers whose name contains it (case-sensitive).\n")
		fmt.Fprintf(os.Stderr, "An empty key ends the interactive prompt.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *QueryCommand) Run() error {
	db, err := cmd.Database.open()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := sales.NewRepository(db.DB)
	ctx := context.Background()

	if cmd.Publisher != "" {
		return PrintSales(ctx, stdout(cmd.Out), repo, cmd.Publisher)
	}
	return RunQueryLoop(ctx, stdin(cmd.In), stdout(cmd.Out), repo)
}

// RunQueryLoop prompts for publisher keys and prints matching sales until
// it reads an empty line or reaches end of input.
func RunQueryLoop(ctx context.Context, in io.Reader, out io.Writer, finder SalesFinder) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, QueryPrompt)

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("failed to read publisher key: %w", err)
			}
			fmt.Fprintln(out)
			return nil
		}

		key := strings.TrimRight(scanner.Text(), "\r")
		if key == "" {
			return nil
		}

		if err := PrintSales(ctx, out, finder, key); err != nil {
			return err
		}
	}
}

// PrintSales writes one formatted line per sale of the matching publishers.
func PrintSales(ctx context.Context, out io.Writer, finder SalesFinder, key string) error {
	rows, err := finder.SalesByPublisher(ctx, key)
	if err != nil {
		return err
	}
	for _, row := range rows {
		fmt.Fprintln(out, sales.FormatRow(row))
	}
	return nil
}
