package app

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/bontastic/printerctl/internal/db/dsn"
	"github.com/bontastic/printerctl/internal/field"
	"github.com/bontastic/printerctl/internal/persist"
)

var errNotPersisted = errors.New("field is not persisted")

func init() { //nolint: gochecknoinits
	resetCmd.Flags().StringVar(&resetField, "field", "", "Reset a single field (label, key or index)")
	resetCmd.Flags().BoolVar(&resetDryRun, "dry-run", false, "List the stored values without deleting them")

	rootCmd.AddCommand(resetCmd)
}

var (
	resetField  string
	resetDryRun bool

	resetCmd = &cobra.Command{
		Use:   "reset",
		Short: "Delete stored settings so the next start uses the compiled defaults",
		PreRunE: func(_ *cobra.Command, _ []string) error {
			return loadConfig()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			prefs := persist.NewPrefs(cfg.Printer.Namespace, func() (*gorm.DB, error) {
				return dsn.Open(cfg.DB)
			})
			defer prefs.Close()

			out := cmd.OutOrStdout()

			if resetDryRun {
				entries, err := prefs.Entries()
				if err != nil {
					return err //nolint:wrapcheck
				}

				for _, e := range entries {
					_, _ = fmt.Fprintf(out, "%s/%s = %q\n", e.Namespace, e.Name, e.Value)
				}

				return nil
			}

			if resetField != "" {
				return resetOne(cmd, prefs, resetField)
			}

			n, err := prefs.Clear()
			if err != nil {
				return err //nolint:wrapcheck
			}

			_, _ = fmt.Fprintf(out, "removed %d stored settings from %q\n", n, cfg.Printer.Namespace)

			return nil
		},
	}
)

func resetOne(cmd *cobra.Command, prefs *persist.Prefs, name string) error {
	f, ok := field.ByName(name)
	if !ok {
		return errors.Errorf("unknown field %q", name)
	}

	d, _ := field.Lookup(f)
	if !d.Persisted() {
		return errors.Wrap(errNotPersisted, d.Label)
	}

	if err := prefs.Remove(d.Key); err != nil {
		return errors.Wrap(err, d.Label)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", d.Label)

	return nil
}
