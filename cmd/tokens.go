package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Jaymon/DateParser/pkg/datefind"
	"github.com/Jaymon/DateParser/pkg/terrors"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(tokensCmd, rulesCmd)
	setRulesCmdFlags()
}

var tokensCmd = &cobra.Command{
	Use:   "tokens <text>...",
	Short: "print the date tokens found in text",
	Long: `tokens <text>...
  print the date tokens the matcher would see, one row per token.
  all arguments are joined with a space.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) < 1 {
			return terrors.ErrorArgNotProvided("text")
		}
		text := strings.TrimSpace(strings.Join(args, " "))
		if text == "" {
			return terrors.ErrEmptyText
		}
		tzOffset, now, err := reference(cmd)
		if err != nil {
			return err
		}
		p, err := datefind.NewParser()
		if err != nil {
			return err
		}
		tokens := p.Tokens(text, tzOffset, now)
		if len(tokens) == 0 {
			return fmt.Errorf("%w: no date tokens in '%s'", terrors.ErrNotFound, text)
		}
		table, err := tokenTable(tokens).Srender()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), table)
		return nil
	},
}

func tokenTable(tokens datefind.Tokens) *pterm.TablePrinter {
	data := pterm.TableData{{"#", "kind", "text", "value", "word", "chars", "clock"}}
	for ndx, tk := range tokens {
		clock := ""
		switch tk.Kind {
		case datefind.KindTime:
			clock = tk.Clock.String()
		case datefind.KindTimeInterval:
			clock = tk.Interval.Start.String() + " - " + tk.Interval.Stop.String()
		}
		value := ""
		if tk.Value != 0 {
			value = strconv.Itoa(tk.Value)
		}
		data = append(data, []string{
			strconv.Itoa(ndx),
			tk.Kind.String(),
			tk.Text,
			value,
			strconv.Itoa(tk.WordOffset),
			fmt.Sprintf("%d:%d", tk.CharStart, tk.CharStop),
			clock,
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data)
}

var rulesCmd = &cobra.Command{
	Use:   "rules [--field]",
	Short: "list the grammar rule-sets in the order they are tried",
	Long: `rules [--field]
  list the grammar rule-sets in the order they are tried.
  text mode (the default) leaves out the rule-sets that only apply to fields.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		field, err := cmd.Flags().GetBool("field")
		if err != nil {
			return err
		}
		if !cmd.Flags().Changed("field") {
			field = viper.GetString("parser.mode") == "field"
		}
		p, err := datefind.NewParser()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for ndx, rs := range p.Rules(field) {
			line := fmt.Sprintf("%3d  %s", ndx, rs.String())
			if rs.Recur != datefind.RecurNone {
				line += "  " + pterm.Cyan("["+rs.Recur.String()+"]")
			}
			if rs.FieldOnly {
				line += "  " + pterm.Gray("(field)")
			}
			fmt.Fprintln(out, line)
			if rs.Example != "" {
				fmt.Fprintf(out, "     %s\n", pterm.Gray("e.g. "+rs.Example))
			}
		}
		return nil
	},
}

func setRulesCmdFlags() {
	rulesCmd.Flags().BoolP("field", "f", false, "list the rule-sets used for fields")
}
