package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/FaizanAhmed099/tarjama"
	"github.com/FaizanAhmed099/tarjama/processor"
	"github.com/spf13/cobra"
)

type htmlFlags struct {
	output     string
	dryRun     bool
	jsonOutput bool
	quiet      bool
}

func newHTMLCmd(global *globalFlags) *cobra.Command {
	flags := &htmlFlags{}

	cmd := &cobra.Command{
		Use:   "html [file]",
		Short: "Translate the text of an HTML file or fragment to Arabic",
		Long: `Translate every visible text node and the alt, title, placeholder and
aria-label attributes. Reads standard input when no file is given. Full
documents get lang="ar" dir="rtl" on the <html> element.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHTML(cmd, global, flags, args)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "List the texts that would be translated")
	cmd.Flags().BoolVar(&flags.jsonOutput, "json", false, "Output result as JSON")
	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "Suppress progress output")
	return cmd
}

func runHTML(cmd *cobra.Command, global *globalFlags, flags *htmlFlags, args []string) error {
	input, inputName, err := readInput(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	if flags.dryRun {
		return runDryRun(input, inputName, stdout, flags.jsonOutput)
	}

	a, err := newApp(global, stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	if !flags.quiet {
		fmt.Fprintf(stderr, "Translating %s to Arabic...\n", inputName)
	}

	start := time.Now()
	result, err := a.translator.ProcessHTML(cmd.Context(), input)
	if err != nil {
		return fmt.Errorf("translation failed: %w", err)
	}
	elapsed := time.Since(start)

	var out io.Writer = stdout
	if flags.output != "" {
		f, err := os.Create(flags.output)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if flags.jsonOutput {
		return outputJSON(out, result, elapsed)
	}

	fmt.Fprint(out, result.Content)

	if !flags.quiet {
		fmt.Fprintf(stderr, "\nDone in %v\n", elapsed.Round(time.Millisecond))
		fmt.Fprintf(stderr, "  Nodes found:     %d\n", result.TotalNodes)
		fmt.Fprintf(stderr, "  Translated:      %d\n", result.TranslatedCount)
		fmt.Fprintf(stderr, "  From cache:      %d\n", result.CachedCount)
		fmt.Fprintf(stderr, "  Transliterated:  %d\n", result.TransliteratedCount)
		fmt.Fprintf(stderr, "  Left unchanged:  %d\n", result.FailedCount)
	}
	return nil
}

func readInput(stdin io.Reader, args []string) (string, string, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), "stdin", nil
	}

	data, err := os.ReadFile(args[0]) // #nosec G304 - CLI tool reads user-specified files
	if err != nil {
		return "", "", fmt.Errorf("reading file: %w", err)
	}
	return string(data), filepath.Base(args[0]), nil
}

// runDryRun lists the translatable texts without calling any provider.
func runDryRun(input, inputName string, stdout io.Writer, jsonOut bool) error {
	_, nodes, err := processor.NewHTMLProcessor().Extract(input)
	if err != nil {
		return fmt.Errorf("extracting text: %w", err)
	}

	if jsonOut {
		type dryRunOutput struct {
			InputFile string   `json:"input_file"`
			NodeCount int      `json:"node_count"`
			Texts     []string `json:"texts"`
		}

		texts := make([]string, len(nodes))
		for i, n := range nodes {
			texts[i] = n.Text
		}

		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(dryRunOutput{InputFile: inputName, NodeCount: len(nodes), Texts: texts})
	}

	fmt.Fprintf(stdout, "Dry run: %s\n", inputName)
	fmt.Fprintf(stdout, "Found %d translatable texts:\n\n", len(nodes))

	for i, node := range nodes {
		text := []rune(node.Text)
		if len(text) > 60 {
			text = append(text[:57], []rune("...")...)
		}
		fmt.Fprintf(stdout, "%3d. %q\n", i+1, string(text))
		if node.Context != "" {
			fmt.Fprintf(stdout, "     Context: %s\n", node.Context)
		}
	}
	return nil
}

func outputJSON(w io.Writer, result *tarjama.ProcessedContent, elapsed time.Duration) error {
	type jsonOutput struct {
		Content             string `json:"content"`
		TotalNodes          int    `json:"total_nodes"`
		TranslatedCount     int    `json:"translated_count"`
		CachedCount         int    `json:"cached_count"`
		TransliteratedCount int    `json:"transliterated_count"`
		FailedCount         int    `json:"failed_count"`
		ElapsedMs           int64  `json:"elapsed_ms"`
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonOutput{
		Content:             result.Content,
		TotalNodes:          result.TotalNodes,
		TranslatedCount:     result.TranslatedCount,
		CachedCount:         result.CachedCount,
		TransliteratedCount: result.TransliteratedCount,
		FailedCount:         result.FailedCount,
		ElapsedMs:           elapsed.Milliseconds(),
	})
}
