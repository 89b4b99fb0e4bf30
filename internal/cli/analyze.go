package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/daleel-app/daleel/internal/extract"
	"github.com/daleel-app/daleel/internal/model"
	"github.com/daleel-app/daleel/internal/registry"
	"github.com/daleel-app/daleel/internal/score"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Run citation extraction and quality analysis over a saved answer",
	Long: `Analyze reads an answer text from a file (or stdin with "-") and
prints the extracted references and the citation-quality report as
JSON. No generator credentials are needed: this exercises only the
local pattern pipeline.

Example:
  daleel analyze answer.txt
  cat answer.txt | daleel analyze -`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

// analyzeReport is the JSON shape printed by the analyze command
type analyzeReport struct {
	RegistryVersion string                `json:"registry_version"`
	References      []model.Reference     `json:"references"`
	Quality         model.QualityAnalysis `json:"quality"`
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	var (
		text []byte
		err  error
	)
	if args[0] == "-" {
		text, err = io.ReadAll(os.Stdin)
	} else {
		text, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("read answer text: %w", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	reg := registry.Default(cfg.Scoring)
	extractor := extract.NewExtractor(reg, cfg.Scoring)
	analyzer := score.NewAnalyzer(reg, cfg.Scoring)

	report := analyzeReport{
		RegistryVersion: reg.Version(),
		References:      extractor.Extract(string(text)),
		Quality:         analyzer.Analyze(string(text)),
	}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	fmt.Println(string(out))

	return nil
}
