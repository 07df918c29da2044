// Package roster holds the row types of a bulk-create run and the CSV
// reader/writer that moves them across the process boundary.
package roster

// Input column names.
const (
	ColumnDisplayName  = "DisplayName"
	ColumnLicenseSkuID = "LicenseSkuId"
)

// Output column names, in the order Entra's bulk-create template expects.
const (
	ColumnUserPrincipalName = "UserPrincipalName"
	ColumnPassword          = "PasswordProfile_password"
)

// OutputHeader is the fixed header row of the bulk-create file.
var OutputHeader = []string{
	ColumnDisplayName,
	ColumnUserPrincipalName,
	ColumnPassword,
	ColumnLicenseSkuID,
}

// Table is a delimited table held in memory: a header plus records in file order.
type Table struct {
	Header  []string
	Records [][]string
}

// Column returns the index of the named header cell, or -1.
func (t Table) Column(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Len reports the number of records.
func (t Table) Len() int {
	return len(t.Records)
}

// InputRow is one account request read from the roster.
type InputRow struct {
	DisplayName  string
	LicenseSkuID string
}

// OutputRow is one line of the bulk-create file.
type OutputRow struct {
	DisplayName       string
	UserPrincipalName string
	Password          string
	LicenseSkuID      string
}

// Record renders the row in OutputHeader order.
func (r OutputRow) Record() []string {
	return []string{r.DisplayName, r.UserPrincipalName, r.Password, r.LicenseSkuID}
}

// OutputTable is the ordered result of a run.
type OutputTable []OutputRow

// Table converts the rows into a delimited table with OutputHeader.
func (o OutputTable) Table() Table {
	records := make([][]string, 0, len(o))
	for _, row := range o {
		records = append(records, row.Record())
	}
	header := make([]string, len(OutputHeader))
	copy(header, OutputHeader)
	return Table{Header: header, Records: records}
}

// InputColumns names the columns InputRows reads.
type InputColumns struct {
	DisplayName string
	License     string
}

// DefaultInputColumns matches the roster template.
func DefaultInputColumns() InputColumns {
	return InputColumns{DisplayName: ColumnDisplayName, License: ColumnLicenseSkuID}
}

// InputRows projects a table onto InputRows. Extra columns are ignored; every
// missing required column is reported in a single FormatError.
func InputRows(path string, t Table, cols InputColumns) ([]InputRow, error) {
	nameIdx := t.Column(cols.DisplayName)
	licenseIdx := t.Column(cols.License)
	var missing []string
	if nameIdx < 0 {
		missing = append(missing, cols.DisplayName)
	}
	if licenseIdx < 0 {
		missing = append(missing, cols.License)
	}
	if len(missing) > 0 {
		return nil, &FormatError{Path: path, Missing: missing}
	}

	rows := make([]InputRow, 0, len(t.Records))
	for _, rec := range t.Records {
		rows = append(rows, InputRow{
			DisplayName:  cell(rec, nameIdx),
			LicenseSkuID: cell(rec, licenseIdx),
		})
	}
	return rows, nil
}

// OutputRows parses a table written by WriteOutput back into rows.
func OutputRows(path string, t Table) (OutputTable, error) {
	idx := make([]int, len(OutputHeader))
	var missing []string
	for i, name := range OutputHeader {
		idx[i] = t.Column(name)
		if idx[i] < 0 {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &FormatError{Path: path, Missing: missing}
	}
	out := make(OutputTable, 0, len(t.Records))
	for _, rec := range t.Records {
		out = append(out, OutputRow{
			DisplayName:       cell(rec, idx[0]),
			UserPrincipalName: cell(rec, idx[1]),
			Password:          cell(rec, idx[2]),
			LicenseSkuID:      cell(rec, idx[3]),
		})
	}
	return out, nil
}

func cell(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return rec[idx]
}
