package app

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bontastic/printerctl/internal/ble"
	"github.com/bontastic/printerctl/internal/field"
	"github.com/bontastic/printerctl/internal/settings"
)

func init() { //nolint: gochecknoinits
	fieldsCmd.Flags().StringVar(&fieldsVariant, "variant", "extended", "Field set to list: basic or extended")

	rootCmd.AddCommand(fieldsCmd)
}

var (
	fieldsVariant string

	fieldsCmd = &cobra.Command{
		Use:   "fields",
		Short: "List the remote fields, their ranges, defaults and BLE characteristic UUIDs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			variant, err := field.ParseVariant(fieldsVariant)
			if err != nil {
				return err
			}

			defaults := settings.Defaults()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0) //nolint:mnd
			_, _ = fmt.Fprintln(w, "#\tLABEL\tKEY\tRANGE\tDEFAULT\tUUID")

			for _, d := range variant.Fields() {
				def, _ := settings.Encode(&defaults, d.Field)

				_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
					d.Field, d.Label, orDash(d.Key), describeRange(d), orDash(string(def)), ble.FieldUUID(d.Field))
			}

			return w.Flush() //nolint:wrapcheck
		},
	}
)

func describeRange(d field.Descriptor) string {
	switch d.Kind {
	case field.Numeric:
		return strconv.Itoa(int(d.Range.Min)) + "-" + strconv.Itoa(int(d.Range.Max))
	case field.Text:
		return "max " + strconv.Itoa(d.MaxLen()) + " bytes"
	default:
		return "trigger"
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}

	return s
}
