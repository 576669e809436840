package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Jaymon/DateParser/config"
	"github.com/Jaymon/DateParser/pkg/calendar"
	"github.com/Jaymon/DateParser/pkg/datefind"
	"github.com/Jaymon/DateParser/pkg/logging"
	"github.com/Jaymon/DateParser/pkg/terrors"

	"github.com/araddon/dateparse"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "dateparser [<text>...]",
	Short: fmt.Sprintf("dateparser %s: find natural language dates in text", version),
	Long: `dateparser [<text>...] [--text=<text>]... [--field=<field>]...
  find the first date described in each input and print its unix start/stop.
  positional arguments are read in the configured parser.mode.`,
	Example: `  dateparser "dinner next tuesday at 7pm"
  dateparser -f "every 24-26 september" --describe
  dateparser -t "call mom tomorrow" --timestamp "2010-10-06 12:00"`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return logging.Close()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		texts, err := cmd.Flags().GetStringArray("text")
		if err != nil {
			return err
		}
		fields, err := cmd.Flags().GetStringArray("field")
		if err != nil {
			return err
		}
		if viper.GetString("parser.mode") == "field" {
			fields = append(fields, args...)
		} else {
			texts = append(texts, args...)
		}
		if len(texts) == 0 && len(fields) == 0 {
			return terrors.ErrNoArgsProvided
		}

		tzOffset, now, err := reference(cmd)
		if err != nil {
			return err
		}
		p, err := datefind.NewParser()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		loc := calendar.Location(tzOffset)
		describe := viper.GetBool("output.describe")
		for _, text := range texts {
			printDates(out, p.FindInText(text, tzOffset, now), loc, describe)
		}
		for _, field := range fields {
			printDates(out, p.FindInField(field, tzOffset, now), loc, describe)
		}
		return nil
	},
}

func init() {
	rootCmd.SetHelpTemplate(`
{{ with (or .Long .Short) }}{{ . | trimTrailingWhitespaces }}

{{ end}}Usage:{{if .Runnable}}
  {{ .UseLine }}{{end}}{{if .HasAvailableSubCommands}}
  {{ .CommandPath }} [command]{{end}}{{if gt (len .Aliases) 0 }}

Aliases:
  {{ .NameAndAliases }}{{end}}{{if .HasExample}}

Examples:
{{ .Example }}{{end}}{{if .HasAvailableSubCommands}}

Available Commands:
{{- range .Commands }}
  {{ rpad .NameAndAliases 20 }} {{ .Short }}
{{- end}}{{end}}{{if .HasAvailableFlags}}{{if not .Parent}}

Flags:
{{ .Flags.FlagUsages | trimTrailingWhitespaces }}{{else}}

{{ if .HasInheritedFlags }}Local {{end}}Flags:
{{ .LocalFlags.FlagUsages | trimTrailingWhitespaces }}{{if .HasInheritedFlags}}

Global Flags:
{{ .InheritedFlags.FlagUsages | trimTrailingWhitespaces }}{{end}}{{end}}{{end}}
`)
	cobra.OnInitialize(func() {
		arg, err := rootCmd.PersistentFlags().GetString("config")
		cobra.CheckErr(err)
		cobra.CheckErr(config.InitViper(arg))
		cobra.CheckErr(logging.Initialize())
	})
	rootCmd.PersistentFlags().StringP("config", "c", "", "config directory")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debugging mode")
	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	rootCmd.PersistentFlags().Int("tz-offset", 0, "seconds east of UTC")
	viper.BindPFlag("parser.tz-offset", rootCmd.PersistentFlags().Lookup("tz-offset"))
	rootCmd.PersistentFlags().String("timestamp", "", "reference time instead of now, in (almost) any format")

	rootCmd.Flags().StringArrayP("text", "t", nil, "free text that may mention a date")
	rootCmd.Flags().StringArrayP("field", "f", nil, "a value that is expected to be a date")
	rootCmd.Flags().Bool("describe", false, "print iso dates, length and tags of each date")
	viper.BindPFlag("output.describe", rootCmd.Flags().Lookup("describe"))
}

// reference reads the zone and the reference time from config and flags. A
// zero time means the parser reads its own clock.
func reference(cmd *cobra.Command) (int, time.Time, error) {
	tzOffset := viper.GetInt("parser.tz-offset")
	raw, err := cmd.Flags().GetString("timestamp")
	if err != nil {
		return 0, time.Time{}, err
	}
	if strings.TrimSpace(raw) == "" {
		return tzOffset, time.Time{}, nil
	}
	now, err := dateparse.ParseIn(raw, calendar.Location(tzOffset))
	if err != nil {
		return 0, time.Time{}, terrors.ErrorArgParse("timestamp '"+raw+"'", err)
	}
	return tzOffset, now, nil
}

func hours(d datefind.Date) decimal.Decimal {
	return decimal.NewFromInt(d.Stop - d.Start).Div(decimal.NewFromInt(calendar.Hour)).Round(2)
}

func printDates(w io.Writer, dates []datefind.Date, loc *time.Location, describe bool) {
	for _, d := range dates {
		fmt.Fprintln(w, d.String())
		if !describe {
			continue
		}
		start, stop := d.ISO8601(loc)
		fmt.Fprintf(w, "  iso:   %s / %s\n", start, stop)
		fmt.Fprintf(w, "  hours: %s\n", hours(d).String())
		var tags []string
		if d.IsAllDay(loc) {
			tags = append(tags, "all-day")
		}
		if d.IsMultiDay(loc) {
			tags = append(tags, "multi-day")
		}
		if tod := d.TimeOfDay(); tod != "" {
			tags = append(tags, tod)
		}
		if d.IsRecurring() {
			tags = append(tags, d.Recurrence.String())
		}
		if len(tags) > 0 {
			fmt.Fprintf(w, "  tags:  %s\n", strings.Join(tags, ", "))
		}
	}
}

func Execute() error {
	return rootCmd.Execute()
}
