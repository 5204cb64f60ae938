package main

import (
	"github.com/spf13/cobra"
)

// NewSearchCmd creates the search command.
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <text>",
		Short: "List dictionary words containing the given text",
		Long: `Search lists the words whose simplified form contains the given text,
most frequent first.

Examples:
  # Words containing 学
  cnlearn search 学

  # Only words read "xue xi"
  cnlearn search 学 --pinyin "xue xi"`,
		Args: cobra.ExactArgs(1),
		RunE: runSearchCmd,
	}
	addFormatFlag(cmd)
	cmd.Flags().StringP("pinyin", "p", "", "Only words with this toneless pinyin")
	cmd.Flags().IntP("limit", "n", 20, "Maximum number of words (at most 50)")
	return cmd
}

func runSearchCmd(cmd *cobra.Command, args []string) error {
	pinyinFilter, err := cmd.Flags().GetString("pinyin")
	if err != nil {
		return err
	}
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	w, err := newWriter(cmd)
	if err != nil {
		return err
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	words, err := a.Catalog().Search(cmd.Context(), args[0], pinyinFilter, limit)
	if err != nil {
		return err
	}
	_, err = w.WriteWords(args[0], words)
	return err
}
