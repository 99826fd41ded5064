// Command xml-migrator inspects legacy XML documents and migrates them into
// the current warehouse schema.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"xml-migrator/migrator"
)

var (
	rootCmd = &cobra.Command{
		Use:          "xml-migrator",
		Short:        "Migrate XML documents written with an obsolete schema",
		SilenceUsage: true,
	}
	configPath string
	verbose    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML migrator configuration")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log dropped and degraded nodes to stderr")

	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(canonicalCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(typesCmd)
}

// newMigrator builds a migrator from the command line flags. Environment
// overrides are applied last.
func newMigrator(extra ...migrator.Option) (*migrator.Migrator, error) {
	var out io.Writer = io.Discard
	if verbose {
		out = os.Stderr
	}

	opts := []migrator.Option{migrator.WithLogger(log.New(out, "xml-migrator: ", 0))}
	if configPath != "" {
		opts = append(opts, migrator.WithConfigFile(configPath))
	} else {
		opts = append(opts, migrator.WithEnv())
	}
	opts = append(opts, extra...)

	return migrator.New(opts...)
}
