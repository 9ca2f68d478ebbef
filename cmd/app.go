// Package cmd implements the inv command line application: one subcommand
// per ledger operation or report.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/inventory"
	"github.com/google/subcommands"
	"github.com/mattn/go-isatty"
)

// Entry is a subcommand and the group it is listed in.
type Entry struct {
	Group   string
	Command subcommands.Command
}

// Commands lists all the inv subcommands.
var Commands = []Entry{
	{"products", &addCmd{}},
	{"products", &updateCmd{}},
	{"products", &deleteCmd{}},
	{"products", &productsCmd{}},

	{"sales", &sellCmd{}},
	{"sales", &invoicesCmd{}},
	{"sales", &invoiceCmd{}},

	{"reports", &dashboardCmd{}},
	{"reports", &reportCmd{}},

	{"data", &importCmd{}},
	{"data", &exportCmd{}},
	{"data", &queryCmd{}},
	{"data", &fmtCmd{}},

	{"help", &topicCmd{}},
	{"help", &assistCmd{}},
}

// Register registers all the inv subcommands in c.
func Register(c *subcommands.Commander) {
	for _, e := range Commands {
		c.Register(e.Command, e.Group)
	}
}

// IsCommand reports whether name is an inv subcommand.
func IsCommand(name string) bool {
	for _, e := range Commands {
		if e.Command.Name() == name {
			return true
		}
	}
	return false
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	storeFlag    = flag.String("store", "", "Location of the store: a directory, redis://host:port/db or mem: (default \".inventory\")")
	currencyFlag = flag.String("currency", "", "Reporting currency (default \"USD\")")
	lowStockFlag = flag.Int("low-stock", 0, "Quantity under which a product is low on stock (default 10)")
	configFlag   = flag.String("config", DefaultConfigFile, "Path to the YAML configuration file")
	Verbose      = flag.Bool("v", false, "Enable verbose logging")
)

// config is the configuration resolved by Setup.
var config = DefaultConfig()

// Setup resolves the configuration from the parsed command line flags, the
// environment and the configuration file, and configures logging.
func Setup() error {
	cfg, err := LoadConfig(flag.CommandLine, os.Getenv)
	if err != nil {
		return err
	}
	config = cfg
	*Verbose = cfg.Verbose
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
	}
	log.Printf("config store=%q currency=%q low-stock=%d", cfg.Store, cfg.Currency, cfg.LowStock)
	return nil
}

// clock returns the ledger clock, fixed when EnvTestingNow is set.
func clock() (func() time.Time, error) {
	v := os.Getenv(EnvTestingNow)
	if v == "" {
		return time.Now, nil
	}
	now, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", EnvTestingNow, err)
	}
	return func() time.Time { return now }, nil
}

// OpenLedger opens the ledger of the configured store. Close it when done.
func OpenLedger(ctx context.Context) (*inventory.Ledger, error) {
	now, err := clock()
	if err != nil {
		return nil, err
	}
	store, err := inventory.OpenStore(ctx, config.Store)
	if err != nil {
		return nil, err
	}
	l, err := inventory.Open(store,
		inventory.WithClock(now),
		inventory.WithCurrency(config.Currency),
		inventory.WithLowStockThreshold(config.LowStock),
	)
	if err != nil {
		if c, ok := store.(io.Closer); ok {
			c.Close()
		}
		return nil, err
	}
	return l, nil
}

// failure prints err and returns the matching exit status.
func failure(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	if errors.Is(err, inventory.ErrInvalidInput) {
		return subcommands.ExitUsageError
	}
	return subcommands.ExitFailure
}

// saved checks the last save of l, the operation is applied either way.
func saved(l *inventory.Ledger) subcommands.ExitStatus {
	if err := l.PersistErr(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: changes could not be saved: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// printMarkdown prints md styled for the terminal, or raw if stdout is not a terminal.
func printMarkdown(md string) {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Println(md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		log.Printf("glamour error=%q", err)
		fmt.Println(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		log.Printf("glamour error=%q", err)
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}
