package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/FaizanAhmed099/tarjama"
	"github.com/spf13/cobra"
)

type translateFlags struct {
	source     string
	jsonOutput bool
	noFallback bool
}

type translateOutput struct {
	Text           string   `json:"text"`
	TranslatedText string   `json:"translatedText"`
	Provider       string   `json:"provider,omitempty"`
	Cached         bool     `json:"cached"`
	Transliterated bool     `json:"transliterated"`
	Chunks         int      `json:"chunks"`
	Failures       []string `json:"failures,omitempty"`
	ElapsedMs      int64    `json:"elapsed_ms"`
}

func newTranslateCmd(global *globalFlags) *cobra.Command {
	flags := &translateFlags{}

	cmd := &cobra.Command{
		Use:   "translate [text]",
		Short: "Translate English text to Arabic",
		Long:  "Translate the arguments, or standard input when none are given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(cmd, global, flags, args)
		},
	}

	cmd.Flags().StringVar(&flags.source, "source", tarjama.LangEnglish, `Source language ("en" or "auto")`)
	cmd.Flags().BoolVar(&flags.jsonOutput, "json", false, "Output result as JSON")
	cmd.Flags().BoolVar(&flags.noFallback, "no-fallback", false, "Fail instead of transliterating")
	return cmd
}

func runTranslate(cmd *cobra.Command, global *globalFlags, flags *translateFlags, args []string) error {
	text := strings.Join(args, " ")
	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		text = string(data)
	}

	var extra []tarjama.TranslatorOption
	if flags.noFallback {
		extra = append(extra, tarjama.WithTransliteration(false))
	}

	a, err := newApp(global, cmd.ErrOrStderr(), extra...)
	if err != nil {
		return err
	}
	defer a.Close()

	start := time.Now()
	res, err := a.translator.Translate(cmd.Context(), tarjama.TranslationRequest{
		Text:       text,
		SourceLang: flags.source,
		TargetLang: tarjama.LangArabic,
	})
	if err != nil {
		var exhausted *tarjama.ExhaustedError
		if errors.As(err, &exhausted) {
			return fmt.Errorf("%s (%s)", exhausted.Error(), exhausted.Reason())
		}
		return err
	}

	out := cmd.OutOrStdout()
	if !flags.jsonOutput {
		fmt.Fprintln(out, res.Text)
		return nil
	}

	result := translateOutput{
		Text:           strings.TrimSpace(text),
		TranslatedText: res.Text,
		Provider:       res.Provider,
		Cached:         res.Cached,
		Transliterated: res.Transliterated,
		Chunks:         res.Chunks,
		ElapsedMs:      time.Since(start).Milliseconds(),
	}
	for _, att := range res.Attempts {
		if !att.Success {
			result.Failures = append(result.Failures, fmt.Sprintf("%s: %s", att.Provider, att.Kind))
		}
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
