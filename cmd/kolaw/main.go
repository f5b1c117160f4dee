package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/coolbeans/kolaw/pkg/merge"
	"github.com/coolbeans/kolaw/pkg/pipeline"
	"github.com/coolbeans/kolaw/pkg/watch"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "kolaw",
		Short: "Korean statute structure extractor",
		Long: `kolaw normalizes raw Korean statute payloads — navigation-index DOM
fragments, the legislation service's XML attribute tree, or rendered
page text — into one hierarchical document model, and renders it as
markdown and as a structured record.

Retrieval is out of scope: feed it files an upstream fetcher produced.`,
		Version: version,
	}

	rootCmd.AddCommand(extractCmd())
	rootCmd.AddCommand(watchCmd())
	rootCmd.AddCommand(statsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func extractCmd() *cobra.Command {
	var (
		shape        string
		contentPath  string
		contentShape string
		outputPath   string
		recordPath   string
		format       string
		title        string
	)

	cmd := &cobra.Command{
		Use:   "extract <payload-file>",
		Short: "Extract one statute payload into markdown and a structured record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := runExtraction(args[0], shape, contentPath, contentShape, title)
			if err != nil {
				return err
			}

			stats := result.Document.Statistics()
			fmt.Printf("Run %s: %d articles, %d paragraphs, %d items, %d diagnostics\n",
				result.RunID, stats.Articles, stats.Paragraphs, stats.Items, stats.Diagnostics)

			if outputPath != "" {
				if err := os.WriteFile(outputPath, []byte(result.Markdown), 0o644); err != nil {
					return fmt.Errorf("writing markdown: %w", err)
				}
				fmt.Printf("Markdown written to %s\n", outputPath)
			} else {
				fmt.Print(result.Markdown)
			}

			if recordPath != "" {
				record, err := encodeRecord(result, format)
				if err != nil {
					return err
				}
				if err := os.WriteFile(recordPath, record, 0o644); err != nil {
					return fmt.Errorf("writing record: %w", err)
				}
				fmt.Printf("Record written to %s\n", recordPath)
			}

			for _, diag := range result.Document.Diagnostics {
				fmt.Fprintf(os.Stderr, "  diagnostic: %s\n", diag)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&shape, "shape", "s", "text", "payload shape: index, tree, or text")
	cmd.Flags().StringVar(&contentPath, "content", "", "optional content-pass payload to merge")
	cmd.Flags().StringVar(&contentShape, "content-shape", "text", "shape of the content-pass payload")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "markdown output file (default stdout)")
	cmd.Flags().StringVar(&recordPath, "record", "", "structured-record output file")
	cmd.Flags().StringVar(&format, "format", "json", "record format: json or yaml")
	cmd.Flags().StringVar(&title, "title", "", "statute title override")
	return cmd
}

func runExtraction(payloadPath, shape, contentPath, contentShape, title string) (*pipeline.Result, error) {
	data, err := os.ReadFile(payloadPath)
	if err != nil {
		return nil, fmt.Errorf("reading payload: %w", err)
	}
	input, err := watch.InputForShape(shape, data)
	if err != nil {
		return nil, err
	}

	opts := pipeline.Options{Title: title}

	if contentPath != "" {
		contentData, err := os.ReadFile(contentPath)
		if err != nil {
			return nil, fmt.Errorf("reading content pass: %w", err)
		}
		contentInput, err := watch.InputForShape(contentShape, contentData)
		if err != nil {
			return nil, err
		}
		contentResult, err := pipeline.Run(contentInput, pipeline.Options{})
		if err != nil {
			return nil, fmt.Errorf("extracting content pass: %w", err)
		}
		opts.ContentPass = merge.FromDocument(contentResult.Document)
	}

	return pipeline.Run(input, opts)
}

func encodeRecord(result *pipeline.Result, format string) ([]byte, error) {
	switch format {
	case "json":
		return result.RecordJSON()
	case "yaml":
		return result.RecordYAML()
	default:
		return nil, fmt.Errorf("unknown record format %q (want json or yaml)", format)
	}
}

func watchCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-extract payload files whenever they change",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := watch.LoadConfig(configPath)
			if err != nil {
				return err
			}

			watcher := watch.New(cfg, func(source watch.Source, result *pipeline.Result, err error) {
				if err != nil {
					fmt.Fprintf(os.Stderr, "[%s] %v\n", source.Name, err)
					return
				}
				stats := result.Document.Statistics()
				fmt.Printf("[%s] re-extracted: %d articles, %d diagnostics\n",
					source.Name, stats.Articles, stats.Diagnostics)
			})

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Printf("Watching %d sources every %s\n", len(cfg.Sources), cfg.Interval)
			if err := watcher.Run(ctx); err != nil && err != context.Canceled {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "kolaw-watch.yaml", "watch source list (YAML)")
	return cmd
}

func statsCmd() *cobra.Command {
	var shape string

	cmd := &cobra.Command{
		Use:   "stats <payload-file>",
		Short: "Print entity counts for one payload without writing outputs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading payload: %w", err)
			}
			input, err := watch.InputForShape(shape, data)
			if err != nil {
				return err
			}
			result, err := pipeline.Run(input, pipeline.Options{})
			if err != nil {
				return err
			}

			stats := result.Document.Statistics()
			fmt.Printf("Title:       %s\n", result.Document.Title)
			fmt.Printf("Chapters:    %d\n", stats.Chapters)
			fmt.Printf("Sections:    %d\n", stats.Sections)
			fmt.Printf("SubSections: %d\n", stats.SubSections)
			fmt.Printf("Articles:    %d\n", stats.Articles)
			fmt.Printf("Paragraphs:  %d\n", stats.Paragraphs)
			fmt.Printf("Items:       %d\n", stats.Items)
			fmt.Printf("Addenda:     %d\n", stats.Addenda)
			fmt.Printf("Tables:      %d\n", stats.Tables)
			fmt.Printf("Diagnostics: %d\n", stats.Diagnostics)
			return nil
		},
	}

	cmd.Flags().StringVarP(&shape, "shape", "s", "text", "payload shape: index, tree, or text")
	return cmd
}
