package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziptext/ziptext/internal/config"
	"github.com/ziptext/ziptext/internal/pipeline"
)

var (
	opts   config.Options
	output []string
)

var rootCmd = &cobra.Command{
	Use:   "ziptext",
	Short: "Extract text from zipped HTML files",
	Long: `ziptext unpacks a zip archive, converts every entry recognized as an HTML
document into plain text appended to a single output text file, and copies
all other entries into an output directory, preserving relative paths.

Entries are classified by file extension (.html) by default. With --sniff,
the archive is first extracted to a temporary directory and each file is
identified by running the file(1) utility against its extracted copy.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVarP(&opts.InputFile, "input", "i", "", "input zip archive (required)")
	rootCmd.Flags().StringSliceVarP(&output, "output", "o", nil,
		"output text file path and output directory path, given as '-o text.txt,dir' or '-o text.txt -o dir' (default ./html_text.txt, ./rest)")
	rootCmd.Flags().IntVarP(&opts.Width, "width", "w", config.DefaultWidth,
		"wrap rendered text at this column width (0 disables wrapping)")
	rootCmd.Flags().BoolVarP(&opts.Artifacts, "artifacts", "a", false,
		"wrap each rendered entry in '# begin'/'# end' marker lines naming the source entry")
	rootCmd.Flags().StringVarP(&opts.Format, "format", "f", config.DefaultFormat,
		"text decoration style: trivial, plain or rich")
	rootCmd.Flags().BoolVar(&opts.Sniff, "sniff", false,
		"classify entries with file(1) instead of by extension")
	rootCmd.Flags().StringVar(&opts.ConfigFile, "config", "", "path to a YAML defaults file")
	rootCmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose logging")

	rootCmd.MarkFlagRequired("input")
}

func run(cmd *cobra.Command, args []string) error {
	opts.OutputTextFile = config.DefaultOutputTextFile
	opts.OutputDir = config.DefaultOutputDir

	if err := applyConfigFile(cmd); err != nil {
		return err
	}

	if len(output) > 0 {
		if len(output) != 2 {
			return fmt.Errorf("--output takes exactly two values: text file path and directory path")
		}
		opts.OutputTextFile = output[0]
		opts.OutputDir = output[1]
	}

	if err := opts.Validate(); err != nil {
		return err
	}

	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	return pipeline.Run(&opts, logger)
}

// applyConfigFile loads the optional YAML defaults file. File values only
// apply to options whose flags were not set on the command line.
func applyConfigFile(cmd *cobra.Command) error {
	path := config.FindConfigFile(opts.ConfigFile)
	if path == "" {
		if opts.ConfigFile != "" {
			return fmt.Errorf("%w: %s", config.ErrConfigNotFound, opts.ConfigFile)
		}
		return nil
	}

	cf, err := config.LoadConfigFile(path)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if !flags.Changed("output") {
		if cf.Output.TextFile != "" {
			opts.OutputTextFile = cf.Output.TextFile
		}
		if cf.Output.Dir != "" {
			opts.OutputDir = cf.Output.Dir
		}
	}
	if !flags.Changed("width") && cf.Width != nil {
		opts.Width = *cf.Width
	}
	if !flags.Changed("artifacts") && cf.Artifacts != nil {
		opts.Artifacts = *cf.Artifacts
	}
	if !flags.Changed("format") && cf.Format != "" {
		opts.Format = cf.Format
	}
	if !flags.Changed("sniff") && cf.Sniff != nil {
		opts.Sniff = *cf.Sniff
	}
	return nil
}

// Execute runs the root command, printing any error to stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	return err
}
