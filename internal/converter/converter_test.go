package converter

import (
	"bytes"
	stderrors "errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/XML-to-CSV-conversion/internal/config"
	"github.com/ginjaninja78/XML-to-CSV-conversion/internal/errors"
	"github.com/ginjaninja78/XML-to-CSV-conversion/internal/logging"
)

const sampleXML = `<Messages xmlns="urn:test">
  <ASBO><Id>1</Id><Status>Open</Status></ASBO>
  <ASBO><Id>2</Id></ASBO>
</Messages>`

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func run(t *testing.T, input string, cfg *config.Config) Result {
	t.Helper()
	return New(input, cfg, logging.Discard()).Run()
}

func TestRun_SampleMessages(t *testing.T) {
	input := writeInput(t, "messages.xml", sampleXML)

	result := run(t, input, nil)
	require.NoError(t, result.Error)
	assert.True(t, result.Success)
	assert.Empty(t, result.Warning)

	want := filepath.Join(filepath.Dir(input), "messages.csv")
	assert.Equal(t, want, result.OutputFile)
	assert.Empty(t, result.XLSXFile)

	data, err := os.ReadFile(want)
	require.NoError(t, err)
	assert.Equal(t, "\"Id\",\"Status\"\r\n\"1\",\"Open\"\r\n\"2\",\"\"\r\n", string(data))

	assert.Equal(t, "urn:test", result.Stats.Namespace)
	assert.Equal(t, 2, result.Stats.Records)
	assert.Equal(t, 2, result.Stats.Columns)
	assert.Equal(t, int64(len(data)), result.Stats.BytesWritten)
}

func TestRun_Deterministic(t *testing.T) {
	input := writeInput(t, "messages.xml", `<Root>
  <ASBO><B>1</B><A>2</A></ASBO>
  <ASBO><C>3</C><A>4</A><B>5</B></ASBO>
  <ASBO><D>6</D></ASBO>
</Root>`)

	first := run(t, input, nil)
	require.NoError(t, first.Error)
	a, err := os.ReadFile(first.OutputFile)
	require.NoError(t, err)

	second := run(t, input, nil)
	require.NoError(t, second.Error)
	b, err := os.ReadFile(second.OutputFile)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, "\"B\",\"A\",\"C\",\"D\"\r\n\"1\",\"2\",\"\",\"\"\r\n\"5\",\"4\",\"3\",\"\"\r\n\"\",\"\",\"\",\"6\"\r\n", string(a))
}

func TestRun_NamespaceStripping(t *testing.T) {
	input := writeInput(t, "ns.xml", `<Messages xmlns="urn:test" xmlns:x="urn:x">
  <ASBO><x:Status>A</x:Status></ASBO>
  <ASBO><Status>B</Status></ASBO>
</Messages>`)

	result := run(t, input, nil)
	require.NoError(t, result.Error)

	data, err := os.ReadFile(result.OutputFile)
	require.NoError(t, err)
	assert.Equal(t, "\"Status\"\r\n\"A\"\r\n\"B\"\r\n", string(data))
}

func TestRun_NoRecords(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no ASBO anywhere", `<Messages><Other><Id>1</Id></Other></Messages>`},
		{"records in a different namespace", `<Messages xmlns="urn:a"><ASBO xmlns="urn:b"><Id>1</Id></ASBO></Messages>`},
		{"empty root", `<Messages/>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := writeInput(t, "empty.xml", tt.content)

			result := run(t, input, nil)
			require.NoError(t, result.Error)
			assert.True(t, result.Success)
			assert.Equal(t, EmptyRecordSetWarning("ASBO"), result.Warning)
			assert.Zero(t, result.Stats.Records)

			info, err := os.Stat(result.OutputFile)
			require.NoError(t, err)
			assert.Zero(t, info.Size())
		})
	}
}

func TestRun_NoRecordsSkipsWorkbook(t *testing.T) {
	input := writeInput(t, "empty.xml", `<Messages/>`)
	cfg := config.Default()
	cfg.XLSXExport = true

	result := run(t, input, cfg)
	require.NoError(t, result.Error)
	assert.Empty(t, result.XLSXFile)
	assert.NoFileExists(t, filepath.Join(filepath.Dir(input), "empty.xlsx"))
}

func TestRun_RecordsWithoutFields(t *testing.T) {
	input := writeInput(t, "bare.xml", `<Messages><ASBO/><ASBO></ASBO></Messages>`)

	result := run(t, input, nil)
	require.NoError(t, result.Error)
	assert.Empty(t, result.Warning)
	assert.Equal(t, 2, result.Stats.Records)
	assert.Zero(t, result.Stats.Columns)

	data, err := os.ReadFile(result.OutputFile)
	require.NoError(t, err)
	assert.Equal(t, "\r\n\r\n\r\n", string(data))
}

func TestRun_ParseError(t *testing.T) {
	input := writeInput(t, "bad.xml", `<Messages><ASBO></Messages>`)

	result := run(t, input, nil)
	require.Error(t, result.Error)
	assert.False(t, result.Success)
	assert.True(t, stderrors.Is(result.Error, errors.ErrParse))
	assert.Empty(t, result.OutputFile)
	assert.NoFileExists(t, filepath.Join(filepath.Dir(input), "bad.csv"))
}

func TestRun_NotFound(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "missing.xml")

	result := run(t, input, nil)
	require.Error(t, result.Error)
	assert.True(t, stderrors.Is(result.Error, errors.ErrNotFound))
	assert.NoFileExists(t, filepath.Join(dir, "missing.csv"))
}

func TestRun_WriteError(t *testing.T) {
	input := writeInput(t, "messages.xml", sampleXML)
	// A directory where the output file should go makes creation fail.
	require.NoError(t, os.Mkdir(filepath.Join(filepath.Dir(input), "messages.csv"), 0755))

	result := run(t, input, nil)
	require.Error(t, result.Error)
	assert.True(t, stderrors.Is(result.Error, errors.ErrWrite))
	assert.False(t, result.Success)
}

func TestRun_CustomRecordTagAndExtension(t *testing.T) {
	input := writeInput(t, "orders.xml", `<Orders><Order><No>7</No></Order><ASBO><Id>1</Id></ASBO></Orders>`)
	cfg := config.Default()
	cfg.RecordTag = "Order"
	cfg.OutputExtension = ".txt"

	result := run(t, input, cfg)
	require.NoError(t, result.Error)
	assert.Equal(t, filepath.Join(filepath.Dir(input), "orders.txt"), result.OutputFile)

	data, err := os.ReadFile(result.OutputFile)
	require.NoError(t, err)
	assert.Equal(t, "\"No\"\r\n\"7\"\r\n", string(data))
}

func TestRun_XLSXExport(t *testing.T) {
	input := writeInput(t, "messages.xml", sampleXML)
	cfg := config.Default()
	cfg.XLSXExport = true

	result := run(t, input, cfg)
	require.NoError(t, result.Error)
	require.Equal(t, filepath.Join(filepath.Dir(input), "messages.xlsx"), result.XLSXFile)

	f, err := excelize.OpenFile(result.XLSXFile)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("ASBO")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Id", "Status"}, rows[0])
	assert.Equal(t, []string{"1", "Open"}, rows[1])
	assert.Equal(t, "2", rows[2][0])
}

func TestOutputPaths(t *testing.T) {
	c := New("/data/in/messages.xml", nil, logging.Discard())
	assert.Equal(t, "/data/in/messages.csv", c.OutputPath())
	assert.Equal(t, "/data/in/messages.xlsx", c.XLSXPath())
}

func TestRun_LogsRecordsAtDebug(t *testing.T) {
	input := writeInput(t, "messages.xml", `<Messages><Batch><ASBO><Id>1</Id></ASBO></Batch></Messages>`)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	result := New(input, nil, logger).Run()
	require.NoError(t, result.Error)

	out := buf.String()
	assert.Contains(t, out, "msg=\"Found record\"")
	assert.Contains(t, out, "record=1")
	assert.Contains(t, out, "path=/Messages/Batch/ASBO")
	assert.Contains(t, out, "fields=1")
}

func TestRun_FailuresAreNotLoggedAboveDebug(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"parse error", `<Messages><ASBO></Messages>`},
		{"no records", `<Messages/>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := writeInput(t, "in.xml", tt.content)

			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

			New(input, nil, logger).Run()
			assert.NotContains(t, buf.String(), "level=ERROR")
			assert.NotContains(t, buf.String(), "level=WARN")
		})
	}
}
