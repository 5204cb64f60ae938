package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/cnlearn/internal/pinyin"
)

// NewPinyinCmd creates the pinyin command.
func NewPinyinCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pinyin <syllables...>",
		Short: "Convert numbered pinyin to tone marks or plain letters",
		Long: `Pinyin converts numbered syllables such as "hao3" or "lu:4" to their
tone-marked form ("hǎo", "lǜ") or strips the tone numbers ("hao", "lu:").

No dictionary is needed.

Examples:
  cnlearn pinyin bu4 hao3 yi4 si5
  cnlearn pinyin "Zhong1 guo2" --mode clean`,
		Args: cobra.MinimumNArgs(1),
		RunE: runPinyinCmd,
	}
	cmd.Flags().StringP("mode", "m", string(pinyin.ModeAccent), "Conversion mode: accent or clean")
	return cmd
}

func runPinyinCmd(cmd *cobra.Command, args []string) error {
	modeFlag, err := cmd.Flags().GetString("mode")
	if err != nil {
		return err
	}
	mode, err := pinyin.ParseMode(modeFlag)
	if err != nil {
		return err
	}

	var syllables []string
	for _, arg := range args {
		syllables = append(syllables, strings.Fields(arg)...)
	}
	converted, err := pinyin.Convert(syllables, mode)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(converted.([]string), " "))
	return err
}
