package main

import (
	"hash/maphash"
	"math/rand/v2"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vancomm/proxx/internal/holes"
)

var (
	log = logrus.New()

	side      int
	holeCount int
	seed      uint64
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "proxx",
	Short: "Play PROXX in the terminal",
	Long: `proxx is a minesweeper-like game played on a square field of black
holes. Open every cell that is not a hole to win.

Run with no arguments to be asked for the field size
	proxx

Or pass the parameters directly
	proxx -s 10 -n 12
`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		level := logrus.WarnLevel
		if verbose {
			level = logrus.DebugLevel
		}
		for _, l := range []*logrus.Logger{log, holes.Log} {
			l.SetOutput(os.Stderr)
			l.SetLevel(level)
			l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
		}

		log.WithFields(logrus.Fields{
			"side":  side,
			"holes": holeCount,
			"seed":  seed,
		}).Debug("starting")

		c := newConsole(cmd.InOrStdin(), cmd.OutOrStdout(), newRand(seed))
		return c.run(side, holeCount)
	},
}

func newRand(seed uint64) *rand.Rand {
	if seed != 0 {
		return rand.New(rand.NewPCG(seed, seed))
	}
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func init() {
	rootCmd.Flags().IntVarP(&side, "side", "s", 0, "Side length of the field, in cells")
	rootCmd.Flags().IntVarP(&holeCount, "holes", "n", 0, "Number of black holes on the field")
	rootCmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for hole placement, 0 picks a random one")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
