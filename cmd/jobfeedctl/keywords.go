package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/honeycarbs/jobfeed/internal/domain/keyword"
	"github.com/honeycarbs/jobfeed/internal/domain/resume"
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "Print the keyword set extracted from résumé JSON",
	Long:  "Read one résumé object or an array of résumés and print the deduplicated keyword set, one per line.",
	RunE:  runKeywords,
}

var keywordsFile string

func init() {
	keywordsCmd.Flags().StringVarP(&keywordsFile, "file", "f", "", "Path to résumé JSON (required)")
	_ = keywordsCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(keywordsCmd)
}

func runKeywords(cmd *cobra.Command, _ []string) error {
	data, err := os.ReadFile(keywordsFile)
	if err != nil {
		return fmt.Errorf("failed to read résumé file: %w", err)
	}

	resumes, err := resume.DecodeMany(data)
	if err != nil {
		return fmt.Errorf("failed to decode résumés: %w", err)
	}

	keywords := keyword.Extract(resumes)
	sort.Strings(keywords)

	if len(keywords) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(keywords, "\n"))
	}
	return nil
}
