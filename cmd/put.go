package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"kvcrud/record"
	"kvcrud/store"
)

func newPutCmd() *cobra.Command {
	putCmd := &cobra.Command{
		Use:   "put",
		Short: "Save a record",
		Long: `kvcrud put command.

The put command saves a record, replacing any record with the same id.
A new id is generated when --id is not given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := cmd.Flags().GetString("id")
			value, _ := cmd.Flags().GetString("value")
			tags, _ := cmd.Flags().GetStringSlice("tag")

			rec := record.New(value, tags...)
			if id != "" {
				rec.ID = id
			}

			return withStore(cmd, func(s store.Store[string, record.Record]) error {
				if err := s.Save(rec); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), rec.ID)
				return nil
			})
		},
	}

	putCmd.Flags().String("id", "", "Record id (generated when empty)")
	putCmd.Flags().StringP("value", "v", "", "Record value")
	putCmd.Flags().StringSliceP("tag", "t", nil, "Record tag, may be repeated")

	return putCmd
}

func newUpdateCmd() *cobra.Command {
	updateCmd := &cobra.Command{
		Use:   "update ID",
		Short: "Replace the record stored under ID",
		Long: `kvcrud update command.

The update command stores a record under ID. The record is created if it
does not exist yet.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, _ := cmd.Flags().GetString("value")
			tags, _ := cmd.Flags().GetStringSlice("tag")

			rec := record.New(value, tags...)
			rec.ID = args[0]

			return withStore(cmd, func(s store.Store[string, record.Record]) error {
				if err := s.Update(rec); err != nil {
					return err
				}
				return printJSON(cmd, rec)
			})
		},
	}

	updateCmd.Flags().StringP("value", "v", "", "Record value")
	updateCmd.Flags().StringSliceP("tag", "t", nil, "Record tag, may be repeated")

	return updateCmd
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Print the record stored under ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(s store.Store[string, record.Record]) error {
				rec, err := s.FindByID(args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd, rec)
			})
		},
	}
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Remove the record stored under ID",
		Long: `kvcrud delete command.

Deleting an id that is not stored is not an error.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(s store.Store[string, record.Record]) error {
				return s.RemoveByID(args[0])
			})
		},
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	e := json.NewEncoder(cmd.OutOrStdout())
	e.SetIndent("", "  ")
	return e.Encode(v)
}
