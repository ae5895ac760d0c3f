package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"kvcrud/record"
	"kvcrud/store"
)

func newLoadCmd() *cobra.Command {
	loadCmd := &cobra.Command{
		Use:   "load",
		Short: "Save every record from a JSON file",
		Long: `kvcrud load command.

The load command reads a JSON array of records and saves them in order,
so a later record replaces an earlier one with the same id. Records
without an id get a generated one.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filename, _ := cmd.Flags().GetString("filename")

			recs, err := readSeedFile(filename)
			if err != nil {
				return err
			}

			return withStore(cmd, func(s store.Store[string, record.Record]) error {
				for _, r := range recs {
					if err := s.Save(r); err != nil {
						return err
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "loaded %d records\n", len(recs))
				return nil
			})
		},
	}

	loadCmd.Flags().StringP("filename", "f", "records.json", "JSON file holding an array of records")

	return loadCmd
}

func readSeedFile(filename string) ([]record.Record, error) {
	fullFilePath, err := filepath.Abs(filename)
	if err != nil {
		return nil, err
	}

	if !fileExists(fullFilePath) {
		return nil, fmt.Errorf("file %s does not exist", fullFilePath)
	}

	f, err := os.Open(fullFilePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return record.LoadSeed(f)
}

func fileExists(filename string) bool {
	_, err := os.Stat(filename)

	return !errors.Is(err, fs.ErrNotExist)
}
