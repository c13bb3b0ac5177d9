package portal

import (
	"fmt"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Result is the parsed marks table for a single exam.
type Result struct {
	Semester string              `json:"semester"`
	Papers   map[string][]string `json:"papers"`
}

// ParseProfile extracts the student profile from the personal details
// page. The page lays the profile out as two side-by-side tables, one
// holding labels and one holding values, under a centered cell.
func ParseProfile(html string) (map[string]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing profile page: %w", err)
	}

	anchor := doc.Find(`td[align="center"]`).First()
	if anchor.Length() == 0 {
		return nil, fmt.Errorf("profile page missing expected layout")
	}

	var columns [][]string
	anchor.Parent().Find("table").Each(func(_ int, table *goquery.Selection) {
		var cells []string
		table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(tr.Find("td").First().Text()))
		})
		columns = append(columns, cells)
	})

	if len(columns) < 2 {
		return nil, fmt.Errorf("profile page missing label/value tables")
	}

	labels, values := columns[0], columns[1]
	profile := make(map[string]string, len(labels))
	for i, label := range labels {
		if label == "" || i >= len(values) {
			continue
		}
		profile[label] = values[i]
	}

	return profile, nil
}

// ParseExamCodes extracts the available exam codes from the results
// page. Each <option> value carries the exam code with a trailing digit
// naming the div that holds its marks table; the digit is stripped.
func ParseExamCodes(html string) []string {
	codes := examCodeIndex(html)

	out := make([]string, 0, len(codes))
	for code := range codes {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// ParseResult extracts the marks table for examCode from the results
// page. It returns an error naming the valid codes when examCode is not
// among them.
func ParseResult(html, examCode string) (*Result, error) {
	codes := examCodeIndex(html)

	divIndex, ok := codes[examCode]
	if !ok {
		valid := make([]string, 0, len(codes))
		for code := range codes {
			valid = append(valid, code)
		}
		sort.Strings(valid)
		return nil, fmt.Errorf("invalid exam code %s, available exam codes: %s",
			examCode, strings.Join(valid, ", "))
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing results page: %w", err)
	}

	var rows [][]string
	doc.Find("div#div_"+divIndex).Find("tr.row1").Each(func(_ int, tr *goquery.Selection) {
		var cells []string
		tr.Find("td.tablecol2").Each(func(_ int, td *goquery.Selection) {
			cells = append(cells, strings.ReplaceAll(strings.TrimSpace(td.Text()), "$", ""))
		})
		rows = append(rows, cells)
	})

	if len(rows) == 0 {
		return nil, fmt.Errorf("no marks table found for exam code %s", examCode)
	}

	result := &Result{
		Semester: rows[0][0],
		Papers:   make(map[string][]string, len(rows)),
	}
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		result.Papers[row[1]] = row[2:]
	}

	return result, nil
}

// examCodeIndex maps exam code -> div index digit from the results page
// option list.
func examCodeIndex(html string) map[string]string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	codes := make(map[string]string)
	doc.Find("option").Each(func(_ int, opt *goquery.Selection) {
		value := strings.TrimSpace(opt.AttrOr("value", ""))
		if len(value) < 2 {
			return
		}
		codes[value[:len(value)-1]] = value[len(value)-1:]
	})
	return codes
}

// ParseHallticketCodes extracts the exam codes with downloadable
// halltickets from the hallticket parameter page.
func ParseHallticketCodes(html string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	seen := make(map[string]struct{})
	var codes []string
	doc.Find(`input#exam_cd`).Each(func(_ int, input *goquery.Selection) {
		value := strings.TrimSpace(input.AttrOr("value", ""))
		if value == "" {
			return
		}
		if _, dup := seen[value]; dup {
			return
		}
		seen[value] = struct{}{}
		codes = append(codes, value)
	})
	return codes
}
