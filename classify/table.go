package classify

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"DistributedRainbow/page"

	"github.com/pkg/errors"
)

var tableHeader = []string{"page", "colormap", "colormap_coverage", "page_coverage"}

type tableRow struct {
	Page             string  `json:"page"`
	Colormap         string  `json:"colormap"`
	ColormapCoverage float64 `json:"colormap_coverage"`
	PageCoverage     float64 `json:"page_coverage"`
}

func toTableRow(c CoverageStats) tableRow {
	return tableRow{
		Page:             c.Page.String(),
		Colormap:         c.Colormap,
		ColormapCoverage: c.ColormapCoverage,
		PageCoverage:     c.PageCoverage,
	}
}

func (r tableRow) stats() (CoverageStats, error) {
	id, err := page.ParseLabel(r.Page)
	if err != nil {
		return CoverageStats{}, err
	}
	if r.Colormap == "" {
		return CoverageStats{}, errors.Errorf("page %s: empty colormap name", r.Page)
	}
	for _, v := range []float64{r.ColormapCoverage, r.PageCoverage} {
		if !(v >= 0 && v <= 1) {
			return CoverageStats{}, errors.Errorf("page %s, %s: coverage %g outside [0, 1]", r.Page, r.Colormap, v)
		}
	}
	return CoverageStats{
		Page:             id,
		Colormap:         r.Colormap,
		ColormapCoverage: r.ColormapCoverage,
		PageCoverage:     r.PageCoverage,
	}, nil
}

// MarshalJSON uses the column names of the CSV table as keys.
func (c CoverageStats) MarshalJSON() ([]byte, error) {
	return json.Marshal(toTableRow(c))
}

func (c *CoverageStats) UnmarshalJSON(data []byte) error {
	var row tableRow
	if err := json.Unmarshal(data, &row); err != nil {
		return err
	}
	stats, err := row.stats()
	if err != nil {
		return err
	}
	*c = stats
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteCSV writes rows with the header page,colormap,colormap_coverage,page_coverage.
func WriteCSV(w io.Writer, rows []CoverageStats) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(tableHeader); err != nil {
		return errors.Wrap(err, "writing header")
	}
	for _, c := range rows {
		r := toTableRow(c)
		if err := cw.Write([]string{r.Page, r.Colormap, formatFloat(r.ColormapCoverage), formatFloat(r.PageCoverage)}); err != nil {
			return errors.Wrapf(err, "writing %s", c)
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flushing coverage table")
}

// ReadCSV reads a table written by WriteCSV.
func ReadCSV(r io.Reader) ([]CoverageStats, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(tableHeader)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("coverage table has no header")
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading header")
	}
	for i, name := range tableHeader {
		if header[i] != name {
			return nil, errors.Errorf("column %d is %q, want %q", i+1, header[i], name)
		}
	}

	var rows []CoverageStats
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		row := tableRow{Page: record[0], Colormap: record[1]}
		if row.ColormapCoverage, err = strconv.ParseFloat(record[2], 64); err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		if row.PageCoverage, err = strconv.ParseFloat(record[3], 64); err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		c, err := row.stats()
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		rows = append(rows, c)
	}
	return rows, nil
}

// WriteJSON writes rows as a JSON array using the CSV column names as keys.
func WriteJSON(w io.Writer, rows []CoverageStats) error {
	if rows == nil {
		rows = []CoverageStats{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(rows), "encoding coverage table")
}

func ReadJSON(r io.Reader) ([]CoverageStats, error) {
	var rows []CoverageStats
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, errors.Wrap(err, "decoding coverage table")
	}
	return rows, nil
}
