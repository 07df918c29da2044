package roster

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadTablePreservesOrderAndColumns(t *testing.T) {
	path := writeFile(t, t.TempDir(), "user_data.csv", strings.Join([]string{
		"\ufeffDisplayName,LicenseSkuId,Department",
		"Jane Doe,X,Math",
		`"Doe, John",Y,Art`,
		"",
		"Bob Lee Smith,Z",
	}, "\n")+"\n")

	table, err := ReadTable(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"DisplayName", "LicenseSkuId", "Department"}, table.Header)
	require.Equal(t, 3, table.Len())

	rows, err := InputRows(path, table, DefaultInputColumns())
	require.NoError(t, err)
	assert.Equal(t, []InputRow{
		{DisplayName: "Jane Doe", LicenseSkuID: "X"},
		{DisplayName: "Doe, John", LicenseSkuID: "Y"},
		{DisplayName: "Bob Lee Smith", LicenseSkuID: "Z"},
	}, rows)
}

func TestReadTableMissingFile(t *testing.T) {
	_, err := ReadTable(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIO))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "open", ioErr.Op)
}

func TestReadTableEmptyFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "empty.csv", "")
	_, err := ReadTable(path)
	assert.True(t, errors.Is(err, ErrFormat))
}

func TestReadTableBadQuoting(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.csv", "DisplayName,LicenseSkuId\n\"Jane,X\n")
	_, err := ReadTable(path)
	assert.True(t, errors.Is(err, ErrFormat))
}

func TestInputRowsMissingColumns(t *testing.T) {
	table := Table{Header: []string{"Name", "Sku"}}
	_, err := InputRows("in.csv", table, DefaultInputColumns())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFormat))

	var fmtErr *FormatError
	require.True(t, errors.As(err, &fmtErr))
	assert.Equal(t, []string{"DisplayName", "LicenseSkuId"}, fmtErr.Missing)
	assert.Contains(t, err.Error(), "missing required columns: DisplayName, LicenseSkuId")
}

func TestInputRowsCustomLicenseColumn(t *testing.T) {
	table := Table{
		Header:  []string{"SkuName", "DisplayName"},
		Records: [][]string{{"Office 365 A1 for faculty", "Ann Lee"}},
	}
	rows, err := InputRows("in.csv", table, InputColumns{DisplayName: "DisplayName", License: "SkuName"})
	require.NoError(t, err)
	assert.Equal(t, []InputRow{{DisplayName: "Ann Lee", LicenseSkuID: "Office 365 A1 for faculty"}}, rows)
}

func TestWriteOutputRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bulk_create.csv")
	rows := OutputTable{
		{DisplayName: "Jane Doe", UserPrincipalName: "janedoe@penguincoding.org", Password: "kite4821!", LicenseSkuID: "X"},
		{DisplayName: "Doe, John", UserPrincipalName: "doejohn@penguincoding.org", Password: "sun1000!", LicenseSkuID: ""},
	}
	require.NoError(t, WriteOutput(path, rows))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "DisplayName,UserPrincipalName,PasswordProfile_password,LicenseSkuId\n"))

	back, err := ReadOutput(path)
	require.NoError(t, err)
	assert.Equal(t, rows, back)
}

func TestWriteOutputOverwrites(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bulk_create.csv", "stale,content\nthat,is\nlonger,than\nthe,new\n")

	require.NoError(t, WriteOutput(path, OutputTable{{DisplayName: "A B", UserPrincipalName: "ab@x", Password: "ball1000!", LicenseSkuID: "L"}}))

	back, err := ReadOutput(path)
	require.NoError(t, err)
	assert.Len(t, back, 1)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file must not be left behind")
}

func TestWriteOutputFailureLeavesNoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "bulk_create.csv")
	err := WriteOutput(path, OutputTable{{DisplayName: "A B"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIO))

	_, statErr := os.Stat(path)
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}

func TestOutputRowsMissingHeader(t *testing.T) {
	_, err := OutputRows("out.csv", Table{Header: []string{"DisplayName"}})
	assert.True(t, errors.Is(err, ErrFormat))
}
