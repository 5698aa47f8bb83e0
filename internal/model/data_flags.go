package model

import (
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/wildstyl3r/dustheat/internal/utils"
)

type DataItem struct {
	saveFlag   *bool
	fileSuffix string
}

type TableDataItem struct {
	DataItem
	columnNames []string
	rows        func(*DataExtractor) [][]string
}

type DataFlags struct {
	all        *bool
	stdout     *bool
	plot       DataItem
	tables     map[string]TableDataItem
	outputPath string
	out        io.Writer
}

func sampleRows(de *DataExtractor, columns func(i int) []float64) (rows [][]string) {
	for i := range de.model.Samples {
		row := []string{utils.FormatFloat(de.model.Samples[i].Temperature)}
		for _, v := range columns(i) {
			row = append(row, utils.FormatFloat(v))
		}
		rows = append(rows, row)
	}
	return rows
}

// NewDataFlags registers one flag per output on fs.
func NewDataFlags(fs *pflag.FlagSet) DataFlags {
	return DataFlags{
		all:    fs.Bool("all", false, "save every available output"),
		stdout: fs.Bool("stdout", false, "write the heating coefficient table to stdout instead of files"),
		plot: DataItem{
			saveFlag:   fs.Bool("plot", false, "save a log-log plot of the heating coefficient"),
			fileSuffix: "plot",
		},
		out: os.Stdout,
		tables: map[string]TableDataItem{
			"Heating coefficient": {
				DataItem: DataItem{
					saveFlag:   fs.Bool("lambda", true, "save heating coefficient (H_coll + H_el) / n_H"),
					fileSuffix: "lambda",
				},
				columnNames: []string{"T (K)", "lambda (erg s^-1)", "valid"},
				rows: func(de *DataExtractor) (rows [][]string) {
					rows = sampleRows(de, func(i int) []float64 {
						return []float64{de.model.Samples[i].Coefficient}
					})
					for i := range rows {
						if de.model.Samples[i].Valid {
							rows[i] = append(rows[i], "1")
						} else {
							rows[i] = append(rows[i], "0")
						}
					}
					return rows
				},
			},
			"Heating channels": {
				DataItem: DataItem{
					saveFlag:   fs.Bool("channels", false, "save collisional and electron heating per hydrogen atom"),
					fileSuffix: "channels",
				},
				columnNames: []string{"T (K)", "H_coll/n_H (erg s^-1)", "H_el/n_H (erg s^-1)"},
				rows: func(de *DataExtractor) [][]string {
					return sampleRows(de, func(i int) []float64 {
						s := de.model.Samples[i]
						return []float64{s.CollisionalCoefficient(), s.ElectronCoefficient()}
					})
				},
			},
			"Efficiency factors": {
				DataItem: DataItem{
					saveFlag:   fs.Bool("efficiency", false, "save efficiency factors h_n and h_e"),
					fileSuffix: "efficiency",
				},
				columnNames: []string{"T (K)", "h_n", "h_e"},
				rows: func(de *DataExtractor) [][]string {
					return sampleRows(de, func(i int) []float64 {
						s := de.model.Samples[i]
						return []float64{s.CollisionalEfficiency, s.ElectronEfficiency}
					})
				},
			},
			"Transition temperatures": {
				DataItem: DataItem{
					saveFlag:   fs.Bool("transition", false, "save temperatures where the efficiencies fall to 1/2"),
					fileSuffix: "transition",
				},
				columnNames: []string{"channel", "T (K)"},
				rows: func(de *DataExtractor) (rows [][]string) {
					for _, tr := range de.model.Transitions() {
						rows = append(rows, []string{tr.Channel, utils.FormatFloat(tr.Temperature)})
					}
					return rows
				},
			},
		},
	}
}

func (df *DataFlags) SetOutputPath(path string) {
	df.outputPath = path
}

func (df *DataFlags) GetOutputPath() string {
	return df.outputPath
}

func (df *DataFlags) SetOutput(w io.Writer) {
	df.out = w
}
