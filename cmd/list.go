package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/docker/go-units"
	"github.com/spf13/cobra"

	"kvcrud/record"
	"kvcrud/store"
)

func newListCmd() *cobra.Command {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List records page by page",
		Long: `kvcrud list command.

The list command prints one page of records ordered by creation time.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			page, _ := cmd.Flags().GetInt("page")
			size, _ := cmd.Flags().GetInt("size")
			sortFlag, _ := cmd.Flags().GetString("sort")

			sort, err := store.ParseSort(sortFlag)
			if err != nil {
				return fmt.Errorf("%w: %q", err, sortFlag)
			}

			return withStore(cmd, func(s store.Store[string, record.Record]) error {
				recs, err := s.FindAllWithPageAndSort(store.NewPage(page, size), sort)
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 5, ' ', tabwriter.TabIndent)
				fmt.Fprintln(w, "ID\tVALUE\tTAGS\tCREATED\t")
				now := time.Now().UTC()
				for _, r := range recs {
					created := fmt.Sprintf("%s ago", units.HumanDuration(now.Sub(r.Created)))
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n", r.ID, r.Value, strings.Join(r.Tags, ","), created)
				}
				return w.Flush()
			})
		},
	}

	listCmd.Flags().IntP("page", "p", 0, "Zero based page number")
	listCmd.Flags().IntP("size", "s", 20, "Records per page")
	listCmd.Flags().String("sort", "asc", "Sort direction (asc or desc)")

	return listCmd
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the number of stored records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			s, closeFn, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer closeStore(closeFn, &err)

			count, err := s.Count()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "backend: %s\n", cfg.Store.Backend)
			fmt.Fprintf(out, "records: %d\n", count)
			if store.Type(cfg.Store.Backend) == store.Persistent {
				if fi, err := os.Stat(cfg.Store.Path); err == nil {
					fmt.Fprintf(out, "file:    %s (%s)\n", cfg.Store.Path, units.HumanSize(float64(fi.Size())))
				}
			}

			return nil
		},
	}
}
