package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	mix "MixLab/internal/calc/mix"
)

type Row struct {
	Label  string     `json:"label"`
	Result mix.Result `json:"result"`
}

type MixImportResult struct {
	Count   int   `json:"count"`
	Skipped int   `json:"skipped"`
	Results []Row `json:"results"`
}

// Import reads the first sheet of an xlsx workbook and evaluates one mix per
// data row. Expected columns: label, water_cement_ratio, scm_percent and an
// optional density_kg_m3 overriding base. The first row is a header.
func Import(r io.Reader, base mix.Params) (MixImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return MixImportResult{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return MixImportResult{}, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) < 2 {
		return MixImportResult{}, fmt.Errorf("empty sheet")
	}

	out := MixImportResult{Results: []Row{}}
	for _, row := range rows[1:] {
		label, wc, scm, params, err := parseMixRow(row, base)
		if err != nil {
			out.Skipped++
			continue
		}
		res, err := mix.Compute(wc, scm, params)
		if err != nil {
			out.Skipped++
			continue
		}
		out.Results = append(out.Results, Row{Label: label, Result: res})
	}
	out.Count = len(out.Results)
	return out, nil
}

func parseMixRow(row []string, base mix.Params) (string, float64, float64, mix.Params, error) {
	if len(row) < 3 {
		return "", 0, 0, base, fmt.Errorf("bad row")
	}
	wc, err := toFloat(row[1])
	if err != nil {
		return "", 0, 0, base, err
	}
	scm, err := toFloat(row[2])
	if err != nil {
		return "", 0, 0, base, err
	}
	if len(row) > 3 && strings.TrimSpace(row[3]) != "" {
		density, err := toFloat(row[3])
		if err != nil {
			return "", 0, 0, base, err
		}
		base.DensityKgM3 = density
	}
	return row[0], wc, scm, base, nil
}

func toFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
