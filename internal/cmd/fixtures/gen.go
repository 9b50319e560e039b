package fixtures

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
)

var shopTypes = []string{
	"bakery",
	"butcher",
	"convenience",
	"greengrocer",
	"newsagent",
	"supermarket",
}

func newGenerateCommand() *cobra.Command {
	var dir string
	var files int
	var rows int

	var cmd = &cobra.Command{
		Use:   "generate",
		Short: "Generates sample CSV files for testing the importer",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}

			for i := 0; i < files; i++ {
				fpath := filepath.Join(dir, fmt.Sprintf("shops_%03d.csv", i+1))

				f, err := os.Create(fpath)
				if err != nil {
					return err
				}

				w := csv.NewWriter(f)
				if err := w.Write([]string{"osm_id", "lat", "lon", "shop_type", "city", "postcode"}); err != nil {
					f.Close()
					return err
				}

				for j := 0; j < rows; j++ {
					record := []string{
						strconv.Itoa(i*rows + j + 1),
						fmt.Sprintf("%.6f", 49.9+rand.Float64()*8.7),
						fmt.Sprintf("%.6f", -7.6+rand.Float64()*9.3),
						shopTypes[rand.Intn(len(shopTypes))],
						fmt.Sprintf("%d Town", j+1),
						fmt.Sprintf("SY%d %dAA", rand.Intn(25), rand.Intn(9)),
					}
					if err := w.Write(record); err != nil {
						f.Close()
						return err
					}
				}

				w.Flush()
				if err := w.Error(); err != nil {
					f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return err
				}
			}

			fmt.Printf("Wrote %d files of %d rows to %s\n", files, rows, dir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "./dev/data", "Directory to write the CSV files to")
	cmd.Flags().IntVarP(&files, "files", "f", 1, "Number of CSV files to generate")
	cmd.Flags().IntVarP(&rows, "rows", "r", 10, "Number of rows per file")
	return cmd
}
