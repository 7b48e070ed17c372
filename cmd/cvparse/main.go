package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"cv-reader/cv/model"
	"cv-reader/cv/pipeline"
	"cv-reader/internal/textprovider"
)

type fileResult struct {
	File   string         `json:"file"`
	Record model.CVRecord `json:"data"`
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cvparse",
		Short:         "Parse CV documents into structured JSON",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newParseCmd())
	return root
}

func newParseCmd() *cobra.Command {
	var pretty bool
	var concurrency int

	cmd := &cobra.Command{
		Use:   "parse [files...]",
		Short: "Extract structured records from one or more documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := make([]fileResult, len(args))

			var group errgroup.Group
			if concurrency < 1 {
				concurrency = 1
			}
			group.SetLimit(concurrency)
			for i, path := range args {
				i, path := i, path
				group.Go(func() error {
					record, err := parseFile(path)
					if err != nil {
						return fmt.Errorf("%s: %w", path, err)
					}
					results[i] = fileResult{File: path, Record: record}
					return nil
				})
			}
			if err := group.Wait(); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			if pretty {
				enc.SetIndent("", "  ")
			}
			for _, result := range results {
				if err := enc.Encode(result); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent JSON output")
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "maximum files parsed in parallel")
	return cmd
}

func parseFile(path string) (model.CVRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.CVRecord{}, err
	}
	text, err := textprovider.Extract(data, filepath.Base(path))
	if err != nil {
		return model.CVRecord{}, err
	}
	return pipeline.Parse(text), nil
}
