// Command logos is a thin CLI shell around the kernel in pkg/logos. It
// is explicitly outside the kernel's library contract (§6): it exists
// to make the prover and oracles runnable from a terminal, the way the
// teacher's cmd/nerd wraps its Mangle kernel in a Cobra CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"logos/config"
	"logos/logging"
	"logos/pkg/logos"
)

var (
	configPath string
	classical  bool
	verbose    bool

	logger *zap.Logger
	cfg    config.Config
)

var rootCmd = &cobra.Command{
	Use:   "logos",
	Short: "A backward proof-search kernel for propositional and first-order logic",
	Long: `logos proves propositions from a set of premises via backward,
goal-directed proof search over a fixed rule table (§4.4), and can defer
ground arithmetic and inspection facts to external oracles (§4.5).`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.LoadYAML(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
		if classical {
			cfg.UseClassicalLogic = true
		}
		if verbose {
			cfg.Logging.Level = "debug"
		}
		logger, err = logging.New(cfg.Logging)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a fixed end-to-end proof scenario and print the derivation",
	RunE:  runDemo,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the effective classical-logic and max-depth settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("classical logic: %v, default max depth: %d\n", cfg.UseClassicalLogic, cfg.Prover.DefaultMaxDepth)
		return nil
	},
}

func runDemo(cmd *cobra.Command, args []string) error {
	p := logos.NewAtom("P")
	q := logos.NewAtom("Q")
	r := logos.NewAtom("R")
	s := logos.NewAtom("S")

	premises := []logos.Proposition{
		p,
		logos.NewImplies(p, logos.NewOr(q, r)),
		logos.NewImplies(logos.NewOr(q, r), logos.NewNot(s)),
	}
	goal := logos.NewNot(s)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, log, err := logos.Prove(ctx, premises, goal, cfg)
	if err != nil {
		return fmt.Errorf("prove: %w", err)
	}
	fmt.Println(logos.RenderProof(result, log))
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "logos.yaml", "path to a YAML config file")
	rootCmd.PersistentFlags().BoolVar(&classical, "classical", false, "force classical logic on, overriding the config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(demoCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
