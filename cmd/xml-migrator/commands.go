package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"xml-migrator/internal/mapping"
	"xml-migrator/migrator"
	"xml-migrator/node"
)

var (
	typeName    string
	suggestPath string
)

func init() {
	for _, cmd := range []*cobra.Command{canonicalCmd, suggestCmd} {
		cmd.Flags().StringVarP(&typeName, "type", "t", "warehouse.Order", "Current type to migrate into")
	}
	suggestCmd.Flags().StringVarP(&suggestPath, "out", "o", "", "Write the draft mapping to a file instead of stdout")
}

// migrateFile runs one session of the type named by --type over path.
func migrateFile(path string) (*migrator.Session, error) {
	t, ok := knownTypes[typeName]
	if !ok {
		return nil, fmt.Errorf("unknown type %q, known types: %s", typeName, strings.Join(typeNames(), ", "))
	}

	var opts []migrator.Option
	for _, c := range casters {
		opts = append(opts, migrator.WithCaster(c))
	}

	m, err := newMigrator(opts...)
	if err != nil {
		return nil, err
	}

	s, err := m.NewSession(t)
	if err != nil {
		return nil, err
	}

	if _, err := s.MigrateFile(path); err != nil {
		return nil, err
	}

	return s, nil
}

var treeCmd = &cobra.Command{
	Use:   "tree <file>",
	Short: "Print the node tree of an XML document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		doc, err := node.Parse(f)
		if err != nil {
			return fmt.Errorf("%w: %w", migrator.ErrMalformed, err)
		}

		return node.Dump(cmd.OutOrStdout(), doc.Root())
	},
}

var canonicalCmd = &cobra.Command{
	Use:   "canonical <file>",
	Short: "Migrate a legacy document and print it in the current schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := migrateFile(args[0])
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", s.Canonical())

		d := s.Diagnostics()
		for _, diag := range d.All() {
			fmt.Fprintln(cmd.ErrOrStderr(), diag.String())
		}

		return nil
	},
}

var suggestCmd = &cobra.Command{
	Use:   "suggest <file>",
	Short: "Draft an alias mapping for the nodes a migration drops",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := migrateFile(args[0])
		if err != nil {
			return err
		}

		d := s.Diagnostics()
		mf := mapping.ExportSuggestions(d.All())

		if suggestPath != "" {
			return mapping.WriteFile(mf, suggestPath)
		}

		data, err := mapping.Marshal(mf)
		if err != nil {
			return err
		}

		_, err = cmd.OutOrStdout().Write(data)

		return err
	},
}

var checkCmd = &cobra.Command{
	Use:   "check <mapping.yaml>",
	Short: "Validate an alias mapping file against the known types",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mf, err := mapping.LoadFile(args[0])
		if err != nil {
			return err
		}

		res := mapping.Validate(mf, typeList()...)
		for _, diag := range res.All() {
			fmt.Fprintln(cmd.OutOrStdout(), diag.String())
		}

		if err := res.Error(); err != nil {
			return fmt.Errorf("mapping %s is invalid", args[0])
		}

		fmt.Fprintf(cmd.OutOrStdout(), "mapping %s is valid (%d types)\n", args[0], len(mf.Types))

		return nil
	},
}

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the types documents can be migrated into",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		for _, name := range typeNames() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
	},
}
