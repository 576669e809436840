package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/Jaymon/DateParser/pkg/calendar"
	"github.com/Jaymon/DateParser/pkg/datefind"
	"github.com/Jaymon/DateParser/pkg/terrors"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(recurCmd)
	setRecurCmdFlags()
}

var recurCmd = &cobra.Command{
	Use:   "recur <field>... [--count=<n>]",
	Short: "list the next occurrences of a recurring date",
	Long: `recur <field>... [--count=<n>]
  read the arguments as a date field and list the next occurrences
  of every recurring date found in it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) < 1 {
			return terrors.ErrorArgNotProvided("field")
		}
		count := viper.GetInt("output.recur-count")
		if count < 1 || count > 100 {
			return fmt.Errorf("%w: %w: count must be '1' <= count <= '100' and not '%d'", terrors.ErrArg, terrors.ErrValue, count)
		}
		tzOffset, now, err := reference(cmd)
		if err != nil {
			return err
		}
		p, err := datefind.NewParser()
		if err != nil {
			return err
		}

		field := strings.Join(args, " ")
		dates := p.FindInField(field, tzOffset, now)
		if len(dates) == 0 {
			return fmt.Errorf("%w: no date in '%s'", terrors.ErrNotFound, field)
		}
		loc := calendar.Location(tzOffset)
		out := cmd.OutOrStdout()
		found := false
		for _, d := range dates {
			if !d.IsRecurring() {
				continue
			}
			found = true
			occ, err := d.Occurrences(loc, count)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s (%s)\n", d.Text, d.Recurrence)
			for _, t := range occ {
				fmt.Fprintf(out, "  %s\n", t.Format(time.RFC3339))
			}
		}
		if !found {
			return fmt.Errorf("%w: '%s' does not recur", terrors.ErrValue, field)
		}
		return nil
	},
}

func setRecurCmdFlags() {
	recurCmd.Flags().IntP("count", "n", 5, "number of occurrences")
	viper.BindPFlag("output.recur-count", recurCmd.Flags().Lookup("count"))
}
