package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

var requiredCSVColumns = []string{"company_name", "email"}

// ParseCompanyCSV reads rows with a header naming at least company_name and
// email. Column order is free and industry is optional.
func ParseCompanyCSV(r io.Reader) ([]AddCompanyInput, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("csv is empty")
		}
		return nil, fmt.Errorf("reading csv header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}
	for _, col := range requiredCSVColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("csv header is missing %q", col)
		}
	}

	field := func(record []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	var rows []AddCompanyInput
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv line %d: %w", line, err)
		}
		rows = append(rows, AddCompanyInput{
			CompanyName: field(record, "company_name"),
			Industry:    field(record, "industry"),
			Email:       field(record, "email"),
		})
	}
	return rows, nil
}
