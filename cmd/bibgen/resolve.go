package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/bibgen/internal/export"
	"github.com/pdiddy/bibgen/internal/extract"
	"github.com/pdiddy/bibgen/internal/resolve"
	"github.com/pdiddy/bibgen/pkg/types"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [citation text...]",
	Short: "Resolve citation text to BibTeX or RIS records",
	Long: `Resolve takes free-form citation text (pasted references, DOIs, arXiv IDs,
or bare titles; one entry per numbered reference or line) and resolves each
entry to a canonical bibliography record. The combined document is printed
to stdout; per-entry progress goes to stderr.`,
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().Int("threshold", types.DefaultThreshold, "fuzzy match acceptance threshold (60-95)")
	resolveCmd.Flags().String("format", string(types.FormatBibTeX), "output format: bibtex or ris")
	resolveCmd.Flags().String("file", "", "read citation text from a file (- for stdin)")
	resolveCmd.Flags().String("out", "", `write the combined document to a file ("default" selects references.bib / references.ris)`)
	resolveCmd.Flags().String("save", "", "save a YAML report of the run to a file")
	resolveCmd.Flags().String("contact", "", "contact email for the polite API pools")
	resolveCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	raw, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	entries := extract.SplitEntries(raw)
	if len(entries) == 0 {
		return fmt.Errorf("provide citation text as arguments, via --file, or on stdin")
	}

	threshold, _ := cmd.Flags().GetInt("threshold")
	if threshold < types.MinThreshold || threshold > types.MaxThreshold {
		return fmt.Errorf("threshold %d out of range [%d, %d]", threshold, types.MinThreshold, types.MaxThreshold)
	}

	formatStr, _ := cmd.Flags().GetString("format")
	format := types.ExportFormat(formatStr)
	if format != types.FormatBibTeX && format != types.FormatRIS {
		return fmt.Errorf("unknown format %q (want bibtex or ris)", formatStr)
	}

	cfg := types.DefaultResolveConfig()
	cfg.Threshold = threshold
	contactFlag, _ := cmd.Flags().GetString("contact")
	if contactFlag == "" {
		contactFlag = viper.GetString("contact")
	}
	cfg.Contact = secretDefault("openalex-email", contactFlag)
	cfg.SemanticScholarAPIKey = secretDefault("semantic-scholar-api-key", "")
	if cfg.Contact != "" {
		cfg.UserAgent = fmt.Sprintf("bibgen/0.1 (mailto:%s)", cfg.Contact)
	}

	r := resolve.New(nil, cfg)
	results := r.ResolveAll(cmd.Context(), entries, threshold, os.Stderr)

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return fmt.Errorf("encoding results: %w", err)
		}
	} else if combined := export.Combine(results, format); combined != "" {
		fmt.Println(combined)
	}

	if outPath, _ := cmd.Flags().GetString("out"); outPath != "" {
		if outPath == "default" {
			outPath = export.DefaultFilename(format)
		}
		if err := export.WriteFile(outPath, export.Combine(results, format)); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", outPath)
	}

	if savePath, _ := cmd.Flags().GetString("save"); savePath != "" {
		if err := export.WriteReportFile(savePath, results, threshold, format); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved report to %s\n", savePath)
	}

	failed := 0
	for _, res := range results {
		if !res.OK {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d entr%s failed to resolve", failed, plural(failed, "y", "ies"))
	}
	return nil
}

// readInput gathers citation text from --file, stdin, or the arguments.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	file, _ := cmd.Flags().GetString("file")
	switch {
	case file == "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading input file: %w", err)
		}
		return string(data), nil
	default:
		return strings.Join(args, "\n"), nil
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
