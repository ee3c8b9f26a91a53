package main

import (
	"fmt"
	"os"

	"relision/internal/repl"
	"relision/internal/termfacts"
	"relision/internal/terms"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rawFacts bool

// termsCmd prints the well-known terms
var termsCmd = &cobra.Command{
	Use:   "terms [NAME...]",
	Short: "Print well-known terms in ELI notation",
	RunE: func(cmd *cobra.Command, args []string) error {
		f := terms.NewFactory()
		logger.Debug("Printing terms", zap.String("factory", f.ID()), zap.Strings("names", args))
		return repl.WriteTerms(os.Stdout, f, args)
	},
}

// factsCmd exports well-known terms as Mangle facts
var factsCmd = &cobra.Command{
	Use:   "facts [NAME...]",
	Short: "Derive type chains of well-known terms with Mangle",
	Long: `Exports the well-known terms (or the named ones) as Datalog facts and
evaluates the type_chain, well_known and anchored rules over them.

With --datalog the exported facts are printed in Mangle syntax instead.`,
	RunE: runFacts,
}

func runFacts(cmd *cobra.Command, args []string) error {
	f := terms.NewFactory()
	if !rawFacts {
		return repl.WriteFacts(os.Stdout, f, args)
	}

	roots := make([]terms.Term, 0, len(args))
	for _, name := range args {
		t, ok := f.NamedRootTerm(name)
		if !ok {
			return fmt.Errorf("no well-known term named %s", name)
		}
		roots = append(roots, t)
	}
	g := termfacts.Export(f, roots...)
	logger.Debug("Exported facts", zap.Int("terms", g.Len()), zap.Int("facts", len(g.Facts())))
	fmt.Print(g.String())
	return nil
}
