// Command tarjama translates English text to Arabic from the command line
// or over HTTP.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/FaizanAhmed099/tarjama"
	"github.com/spf13/cobra"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configFile string
	logLevel   string
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	root := newRootCmd(stdin, stdout, stderr)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   tarjama.Name,
		Short: tarjama.Description,
		Long: `tarjama translates English text to Arabic through a chain of translation
providers, with caching, rate limiting and a transliteration fallback.

Providers are configured through the environment (or a .env file):
  TRANSLATE_COM_API_KEY   translate.com API key
  LIBRETRANSLATE_URL      LibreTranslate instance URL
  OPENAI_API_KEY          OpenAI API key
  REDIS_URL               optional shared cache

Examples:
  tarjama translate "Board of Directors"
  echo "Our Projects" | tarjama translate --json
  tarjama html index.html -o index.ar.html
  tarjama serve --port 5000`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.CompletionOptions.DisableDefaultCmd = true

	root.PersistentFlags().StringVar(&flags.configFile, "config", "", "YAML config file")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level (overrides log.level)")

	root.AddCommand(
		newTranslateCmd(flags),
		newHTMLCmd(flags),
		newServeCmd(flags),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", tarjama.Name, tarjama.FullVersion())
			if tarjama.BuildDate != "" {
				fmt.Fprintf(out, "  built:   %s\n", tarjama.BuildDate)
			}
			fmt.Fprintf(out, "  source:  %s\n", tarjama.Repository)
			return nil
		},
	}
}
