// Package cmd implements the CLI for wikitables using Cobra.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/gaurav-prasanna/wikitables/core"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Flag variables.
var (
	cfgFile   string
	batchFile string
	strict    bool
	runOpts   = core.DefaultOptions()
)

// v holds settings merged from flags, WIKITABLES_* variables and the config file.
var v = viper.New()

var rootCmd = &cobra.Command{
	Use:   "wikitables [url]",
	Short: "Scrape and clean tables from Wikipedia pages",
	Long: `wikitables downloads a Wikipedia page, finds the tables carrying a CSS class
(default "wikitable"), cleans them and saves every table as its own file.

Cleaning strips footnote markers like [1], flattens multi-row headers, turns
placeholders such as "—" or "N/A" into missing values, drops empty rows and
columns, and converts numeric columns ("1,234", "$5", "12%") into numbers.

Examples:
  wikitables https://en.wikipedia.org/wiki/List_of_World_Heritage_Sites_in_India
  wikitables https://en.wikipedia.org/wiki/List_of_tallest_buildings -f json -o ./out
  wikitables https://en.wikipedia.org/wiki/Some_page -c "wikitable sortable" -n towers
  wikitables --batch-file urls.txt -f xlsx`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runScrape,
}

func init() {
	flags := rootCmd.Flags()
	core.BindFlags(flags, &runOpts)
	flags.StringVar(&batchFile, "batch-file", "", "file with one URL (and optional flags) per line")
	flags.BoolVar(&strict, "strict", false, "exit non-zero if any batch line fails")

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default $HOME/.wikitables.yaml)")
	pf.String("user-agent", "", "User-Agent header sent to Wikipedia")
	pf.Duration("timeout", 0, "request timeout (default 15s)")
	pf.Bool("debug", false, "enable debug logging")
	pf.BoolP("quiet", "q", false, "only log errors")
	pf.Bool("log-json", false, "log as JSON")

	// Bind to viper
	_ = v.BindPFlag("user_agent", pf.Lookup("user-agent"))
	_ = v.BindPFlag("timeout", pf.Lookup("timeout"))
	_ = v.BindPFlag("debug", pf.Lookup("debug"))
	_ = v.BindPFlag("quiet", pf.Lookup("quiet"))
	_ = v.BindPFlag("log_json", pf.Lookup("log-json"))
	_ = v.BindPFlag("output_dir", flags.Lookup("output-dir"))
	_ = v.BindPFlag("format", flags.Lookup("format"))
	_ = v.BindPFlag("class", flags.Lookup("class"))
}

// loggedError marks an error that has already been reported through the logger.
type loggedError struct {
	err error
}

func (e *loggedError) Error() string { return e.err.Error() }

func (e *loggedError) Unwrap() error { return e.err }

// Execute runs the root command and exits with status 1 on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var le *loggedError
		if !errors.As(err, &le) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
