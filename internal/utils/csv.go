package utils

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"

	"github.com/facette/natsort"
)

// Names orders model names naturally: "grain_l2" before "grain_l10".
type Names []string

func (n Names) Less(i, j int) bool {
	return natsort.Compare(n[i], n[j])
}

func (n Names) Len() int {
	return len(n)
}
func (n Names) Swap(i, j int) {
	n[i], n[j] = n[j], n[i]
}

func SortedKeys[V any](m map[string]V) []string {
	keys := make(Names, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Sort(keys)
	return keys
}

func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteCSV writes the header and rows in the given order.
func WriteCSV(w io.Writer, columns []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}
