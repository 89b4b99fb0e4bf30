package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/daleel-app/daleel/internal/classify"
	"github.com/daleel-app/daleel/internal/llm"
	"github.com/daleel-app/daleel/internal/pipeline"
	"github.com/daleel-app/daleel/internal/registry"
	"github.com/daleel-app/daleel/internal/server"
	"github.com/daleel-app/daleel/internal/store"
	"github.com/daleel-app/daleel/internal/throttle"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the chat API server",
	Long: `Serve starts the HTTP API. Each POST /chat request is admitted
through per-user throttling and message quotas, answered by the
configured generator, and every answer is validated for verifiable
citations before being returned.

Example:
  daleel serve
  daleel serve --addr :9000 --config ./config.yaml`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return fmt.Errorf("configure generator: %w", err)
	}
	if provider == nil {
		return fmt.Errorf("no generator provider configured (set llm.provider)")
	}

	known, err := registry.LoadKnownCitations()
	if err != nil {
		return err
	}

	reg := registry.Default(cfg.Scoring)
	memStore := store.NewMemoryStore(0, cfg.Quota.Window)

	p := pipeline.New(
		provider,
		reg,
		known,
		classify.NewKeywordClassifier(),
		memStore,
		cfg.Scoring,
	)

	srv := server.New(
		cfg,
		p,
		memStore,
		throttle.NewCounter(cfg.Throttle.ChatLimit, cfg.Throttle.ChatWindow),
		throttle.NewLimiter(cfg.Throttle.GeneratorRPS, cfg.Throttle.GeneratorBurst),
	)

	if verbose {
		fmt.Fprintf(os.Stderr, "Generator: %s\n", provider.Name())
		fmt.Fprintf(os.Stderr, "Registry: %s (%d rules)\n", reg.Version(), len(reg.Rules()))
		fmt.Fprintf(os.Stderr, "Listening on %s\n", cfg.Server.Addr)
	}

	return srv.Run()
}
