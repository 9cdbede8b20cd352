package report

import (
	"fmt"
	"io"
	"time"

	"github.com/phpdave11/gofpdf"
	"github.com/xuri/excelize/v2"

	mix "MixLab/internal/calc/mix"
	optimize "MixLab/internal/calc/premium/optimize"
)

type Input struct {
	Project          string     `json:"project"`
	Author           string     `json:"author"`
	Title            string     `json:"title"`
	Optimize         bool       `json:"optimize"`
	WaterCementRatio float64    `json:"water_cement_ratio"`
	SCMPercent       float64    `json:"scm_percent"`
	Params           mix.Params `json:"params"`
}

// Mix is the evaluated design a report is rendered from.
type Mix struct {
	Input     Input
	Optimized bool
	Summary   mix.Summary
	Date      time.Time
}

// Evaluate runs the same computation the calc and optimize endpoints run.
func Evaluate(in Input, now time.Time) (Mix, error) {
	if in.Title == "" {
		in.Title = "Concrete Mix Design Report"
	}
	m := Mix{Input: in, Date: now}
	if in.Optimize {
		out, err := optimize.Run(optimize.Input{
			WaterCementRatio: in.WaterCementRatio,
			SCMPercent:       in.SCMPercent,
			Params:           in.Params,
		})
		if err != nil {
			return Mix{}, err
		}
		m.Optimized = out.Optimized
		m.Summary = out.Summary
		return m, nil
	}
	res, err := mix.Compute(in.WaterCementRatio, in.SCMPercent, in.Params)
	if err != nil {
		return Mix{}, err
	}
	m.Summary = mix.Summarize(res, in.Params)
	return m, nil
}

func WritePDF(w io.Writer, m Mix) error {
	res := m.Summary.Result
	p := m.Input.Params

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, m.Input.Title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Project: %s", m.Input.Project))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Author: %s", m.Input.Author))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", m.Date.Format("2006-01-02")))
	pdf.Ln(10)

	section(pdf, "Parameters")
	line(pdf, "Cement type", p.CementType)
	line(pdf, "Exposure", p.Exposure)
	line(pdf, "Max aggregate size", fmt.Sprintf("%g mm", p.MaxAggregateSizeMM))
	line(pdf, "Slump", fmt.Sprintf("%g mm", p.SlumpMM))
	line(pdf, "Density", fmt.Sprintf("%g kg/m3", p.DensityKgM3))
	if p.UseAdmixture {
		line(pdf, "Admixture", fmt.Sprintf("%s, %g%%", p.AdmixtureType, p.AdmixtureDosage))
	}
	line(pdf, "Water-cement ratio", fmt.Sprintf("%.2f", res.WaterCementRatio))
	line(pdf, "SCM replacement", fmt.Sprintf("%g%%", res.SCMPercent))
	if m.Input.Optimize {
		status := "no feasible mix on the grid, unoptimized values shown"
		if m.Optimized {
			status = "cheapest feasible grid point"
		}
		line(pdf, "Optimizer", status)
	}
	pdf.Ln(4)

	table(pdf, "Quantities (kg/m3)", m.Summary.Composition, "%.1f")
	table(pdf, "Cost", m.Summary.Cost, "%.2f")
	table(pdf, "CO2 (kg)", m.Summary.CO2, "%.2f")

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Total cost: %.2f    Total CO2: %.2f kg", res.TotalCost, res.TotalCO2Kg))
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, "Simplified estimate with a fixed 186 kg/m3 water demand and a 35/65 aggregate split. Lab trials are necessary.", "", "L", false)

	return pdf.Output(w)
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
}

func line(pdf *gofpdf.Fpdf, key, value string) {
	pdf.CellFormat(60, 6, key, "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, value, "", 1, "L", false, 0, "")
}

func table(pdf *gofpdf.Fpdf, title string, items []mix.Item, format string) {
	section(pdf, title)
	for _, it := range items {
		pdf.CellFormat(60, 6, it.Material, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf(format, it.Value), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}

// WriteXLSX writes one sheet per table: Mix, Cost and CO2.
func WriteXLSX(w io.Writer, m Mix) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "Mix"); err != nil {
		return err
	}
	res := m.Summary.Result
	header := [][]any{
		{"Title", m.Input.Title},
		{"Project", m.Input.Project},
		{"Author", m.Input.Author},
		{"Date", m.Date.Format("2006-01-02")},
		{"Water-cement ratio", res.WaterCementRatio},
		{"SCM %", res.SCMPercent},
		{"Optimized", m.Optimized},
		{"Total cost", res.TotalCost},
		{"Total CO2 (kg)", res.TotalCO2Kg},
		{},
		{"Material", "kg/m3"},
	}
	if err := writeRows(f, "Mix", header, m.Summary.Composition); err != nil {
		return err
	}
	if _, err := f.NewSheet("Cost"); err != nil {
		return err
	}
	if err := writeRows(f, "Cost", [][]any{{"Material", "Cost"}}, m.Summary.Cost); err != nil {
		return err
	}
	if _, err := f.NewSheet("CO2"); err != nil {
		return err
	}
	if err := writeRows(f, "CO2", [][]any{{"Material", "CO2 (kg)"}}, m.Summary.CO2); err != nil {
		return err
	}
	return f.Write(w)
}

func writeRows(f *excelize.File, sheet string, head [][]any, items []mix.Item) error {
	row := 1
	for _, vals := range head {
		if len(vals) > 0 {
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(sheet, cell, &vals); err != nil {
				return err
			}
		}
		row++
	}
	for _, it := range items {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		vals := []any{it.Material, it.Value}
		if err := f.SetSheetRow(sheet, cell, &vals); err != nil {
			return err
		}
		row++
	}
	return nil
}
