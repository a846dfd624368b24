// Package cmd implements the cgtcalc CLI: computing UK capital gains tax
// figures from a transaction file.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cgt"
	"github.com/google/subcommands"
	"github.com/phuslu/log"
)

// Commands is the list of subcommands a main package registers.
var Commands = []subcommands.Command{
	&reportCmd{},
	&disposalsCmd{},
	&queryCmd{},
	&topicCmd{},
	&assistCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to
// use global variables for the shared flags.

var transactionsFile = flag.String("f", "transactions.csv", "Path to the transactions file (CSV import format, see 'topic importing')")
var configFile = flag.String("config", "", "Path to the TOML config file. Defaults to $HOME/.config/cgtcalc/config.toml")
var Verbose = flag.Bool("v", false, "Enable verbose logging")

// InitLogger configures the process logger. Called by main after flag
// parsing.
func InitLogger() {
	level := log.InfoLevel
	if *Verbose {
		level = log.DebugLevel
	}
	log.DefaultLogger = log.Logger{
		Level:  level,
		Caller: 0,
		Writer: &log.ConsoleWriter{
			Writer:         os.Stderr,
			ColorOutput:    true,
			EndWithMessage: true,
		},
	}
}

// TransactionsFile returns the path of the transaction file in use.
func TransactionsFile() string { return *transactionsFile }

// LoadTransactions imports the transactions from the app transaction file.
func LoadTransactions() ([]cgt.Transaction, error) {
	f, err := os.Open(*transactionsFile)
	if err != nil {
		return nil, fmt.Errorf("could not open transactions file %q: %w", *transactionsFile, err)
	}
	defer f.Close()

	txs, err := cgt.ImportTransactions(f)
	if err != nil {
		return nil, fmt.Errorf("could not import transactions from %q: %w", *transactionsFile, err)
	}
	log.Debug().Int("transactions", len(txs)).Str("file", *transactionsFile).Msg("transactions imported")
	return txs, nil
}

// NewCalculator builds a calculator from the app configuration and the given
// brought-forward loss in sterling.
func NewCalculator(broughtForwardLoss float64) (*cgt.Calculator, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	exempt, err := cfg.ExemptAmounts()
	if err != nil {
		return nil, err
	}
	return &cgt.Calculator{
		Exempt:             exempt,
		BroughtForwardLoss: cgt.GBP(broughtForwardLoss),
	}, nil
}
