package pipeline_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"mrtcli/internal/config"
	"mrtcli/internal/dataprocessing"
	"mrtcli/internal/pipeline"
	"mrtcli/pkg/contracts/domain"
)

// testConfig builds a config rooted in a temp directory with the data
// directory already in place.
func testConfig(t *testing.T) (*config.Config, string) {
	t.Helper()

	cfg := config.Default()
	cfg.Paths.ExecutableDir = t.TempDir()

	dataDir := filepath.Join(cfg.Paths.ExecutableDir, "data")
	require.NoError(t, os.MkdirAll(dataDir, 0755))
	return cfg, dataDir
}

// writeWorkbook builds a single-sheet workbook from a row-major grid and
// saves it under dir. Nil entries leave the cell unset.
func writeWorkbook(t *testing.T, dir, name, sheet string, rows [][]interface{}) {
	t.Helper()

	f := excelize.NewFile()
	f.SetSheetName(f.GetSheetName(0), sheet)

	for r, row := range rows {
		for c, val := range row {
			if val == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, val))
		}
	}

	require.NoError(t, f.SaveAs(filepath.Join(dir, name)))
}

// monthRows builds the recorded sheet shape: a header row naming the time
// column and the stations, the Entry marker row, then one row per hour with
// base+hour counts per station.
func monthRows(stations []string, bases []int) [][]interface{} {
	header := []interface{}{"time"}
	for _, s := range stations {
		header = append(header, s)
	}

	rows := [][]interface{}{header, {nil, "Entry"}}
	for h := 0; h < 24; h++ {
		row := []interface{}{h}
		for _, base := range bases {
			row = append(row, base+h)
		}
		rows = append(rows, row)
	}
	return rows
}

// entryLayout mirrors the sheet shape monthRows produces, where the first
// station column doubles as the qualifying signal.
func entryLayout() dataprocessing.Layout {
	layout := dataprocessing.LayoutV1()
	layout.TimeField = domain.TimeFieldTime
	return layout
}

func TestRunnerRun(t *testing.T) {
	cfg, dataDir := testConfig(t)
	writeWorkbook(t, dataDir, "2024-01.xlsx", "Daily", monthRows([]string{"North", "Central"}, []int{0, 200}))
	writeWorkbook(t, dataDir, "2024-02.xlsx", "Daily", monthRows([]string{"North", "Central"}, []int{0, 400}))

	runner, err := pipeline.NewRunner(cfg, pipeline.WithLayout(entryLayout()))
	require.NoError(t, err)

	result, err := runner.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, result.Files)
	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, 0, result.Skipped)
	assert.Positive(t, result.Elapsed)

	require.Len(t, result.Summaries, 2)
	assert.Equal(t, "2024-01.xlsx", result.Summaries[0].File)
	assert.Equal(t, "2024-02.xlsx", result.Summaries[1].File)
	assert.Equal(t, 24, result.Summaries[0].Times)
	assert.Equal(t, 24, result.Summaries[0].Dates)
	assert.False(t, result.Summaries[0].Skipped)

	ds := result.Dataset
	assert.Equal(t, []string{"date", "time", "North", "Central"}, ds.Keys())
	require.Len(t, ds.Dates, 48)
	require.Len(t, ds.Times, 48)
	assert.Equal(t, "2024-01-1", ds.Dates[0])
	assert.Equal(t, "2024-01-1", ds.Dates[23])
	assert.Equal(t, "2024-02-1", ds.Dates[24])
	assert.Equal(t, domain.NumberToken(0), ds.Times[0])
	assert.Equal(t, domain.NumberToken(23), ds.Times[23])
	assert.Equal(t, domain.NumberToken(0), ds.Times[24])

	// North repeats 0..23 for each month; Central distinguishes the files.
	north, ok := ds.Station("North")
	require.True(t, ok)
	require.Len(t, north.Counts, 48)
	assert.Equal(t, domain.NewCount(0), north.Counts[0])
	assert.Equal(t, domain.NewCount(23), north.Counts[23])
	assert.Equal(t, domain.NewCount(0), north.Counts[24])
	assert.Equal(t, domain.NewCount(23), north.Counts[47])
	assert.Equal(t, domain.NewCount(200), mustStation(t, ds, "Central").Counts[0])
	assert.Equal(t, domain.NewCount(423), mustStation(t, ds, "Central").Counts[47])

	// The exported document keeps the deterministic key order on disk.
	assert.Equal(t, filepath.Join(cfg.Paths.ExecutableDir, "cleaned", "mrt_data.json"), result.OutputPath)
	raw, err := os.ReadFile(result.OutputPath)
	require.NoError(t, err)
	text := string(raw)
	assert.True(t, strings.HasPrefix(text, "{\n    \"date\""), "document should open with the date key")
	assert.Less(t, strings.Index(text, `"time"`), strings.Index(text, `"North"`))
	assert.Less(t, strings.Index(text, `"North"`), strings.Index(text, `"Central"`))

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Len(t, doc, 4)
}

func mustStation(t *testing.T, ds domain.Dataset, name string) domain.StationSeries {
	t.Helper()
	s, ok := ds.Station(name)
	require.True(t, ok, "station %s should be present", name)
	return s
}

func TestRunnerWritesDiagnostics(t *testing.T) {
	cfg, dataDir := testConfig(t)
	writeWorkbook(t, dataDir, "2024-01.xlsx", "Daily", monthRows([]string{"North"}, []int{100}))

	runner, err := pipeline.NewRunner(cfg, pipeline.WithLayout(entryLayout()))
	require.NoError(t, err)

	_, err = runner.Run(context.Background())
	require.NoError(t, err)

	logs, err := filepath.Glob(filepath.Join(cfg.Paths.ExecutableDir, "logs", "*-log.txt"))
	require.NoError(t, err)
	require.Len(t, logs, 1)

	content, err := os.ReadFile(logs[0])
	require.NoError(t, err)
	assert.Contains(t, string(content), "2024-01.xlsx Summary")
	assert.Contains(t, string(content), "Time element count: 24")
	assert.Contains(t, string(content), "Station North: 24")
}

func TestRunnerSkipsUnreadableWorkbook(t *testing.T) {
	cfg, dataDir := testConfig(t)
	// The January workbook has no Daily sheet at all.
	writeWorkbook(t, dataDir, "2024-01.xlsx", "Wrong", monthRows([]string{"North"}, []int{100}))
	writeWorkbook(t, dataDir, "2024-02.xlsx", "Daily", monthRows([]string{"North"}, []int{300}))

	runner, err := pipeline.NewRunner(cfg, pipeline.WithLayout(entryLayout()))
	require.NoError(t, err)

	result, err := runner.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, result.Files)
	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 1, result.Skipped)

	require.Len(t, result.Summaries, 2)
	assert.True(t, result.Summaries[0].Skipped)
	assert.Equal(t, "2024-01.xlsx", result.Summaries[0].File)
	assert.Contains(t, result.Summaries[0].Reason, "failed to read sheet")
	assert.False(t, result.Summaries[1].Skipped)

	// The surviving month still ships in full.
	ds := result.Dataset
	require.Len(t, ds.Dates, 24)
	assert.Equal(t, "2024-02-1", ds.Dates[0])
	assert.Equal(t, domain.NewCount(300), mustStation(t, ds, "North").Counts[0])

	logs, err := filepath.Glob(filepath.Join(cfg.Paths.ExecutableDir, "logs", "*-log.txt"))
	require.NoError(t, err)
	require.Len(t, logs, 1)
	content, err := os.ReadFile(logs[0])
	require.NoError(t, err)
	assert.Contains(t, string(content), "skipped: ")
}

func TestRunnerCorruptWorkbookSkipped(t *testing.T) {
	cfg, dataDir := testConfig(t)
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "2024-01.xlsx"), []byte("not a workbook"), 0644))
	writeWorkbook(t, dataDir, "2024-02.xlsx", "Daily", monthRows([]string{"North"}, []int{300}))

	runner, err := pipeline.NewRunner(cfg, pipeline.WithLayout(entryLayout()))
	require.NoError(t, err)

	result, err := runner.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 1, result.Processed)
	require.Len(t, result.Summaries, 2)
	assert.True(t, result.Summaries[0].Skipped)
	assert.Contains(t, result.Summaries[0].Reason, "failed to open workbook")
}

func TestRunnerParallelMatchesSequential(t *testing.T) {
	cfg, dataDir := testConfig(t)
	writeWorkbook(t, dataDir, "2024-01.xlsx", "Daily", monthRows([]string{"North", "Central"}, []int{100, 200}))
	writeWorkbook(t, dataDir, "2024-02.xlsx", "Daily", monthRows([]string{"North", "Central", "South"}, []int{300, 400, 500}))
	writeWorkbook(t, dataDir, "2024-03.xlsx", "Daily", monthRows([]string{"North", "Central"}, []int{600, 700}))
	writeWorkbook(t, dataDir, "2024-04.xlsx", "Daily", monthRows([]string{"North", "Central"}, []int{800, 900}))

	sequential, err := pipeline.NewRunner(cfg, pipeline.WithLayout(entryLayout()), pipeline.WithWorkers(1))
	require.NoError(t, err)
	seqResult, err := sequential.Run(context.Background())
	require.NoError(t, err)

	parallel, err := pipeline.NewRunner(cfg, pipeline.WithLayout(entryLayout()), pipeline.WithWorkers(4))
	require.NoError(t, err)
	parResult, err := parallel.Run(context.Background())
	require.NoError(t, err)

	// Worker count must never change the merged output.
	assert.Equal(t, seqResult.Dataset, parResult.Dataset)
	assert.Equal(t, seqResult.Summaries, parResult.Summaries)
	assert.Equal(t, []string{"date", "time", "North", "Central", "South"}, parResult.Dataset.Keys())

	// South appears only in February, so it carries a single month.
	assert.Len(t, mustStation(t, parResult.Dataset, "South").Counts, 24)
	assert.Len(t, mustStation(t, parResult.Dataset, "North").Counts, 96)
}

func TestRunnerProgressCallback(t *testing.T) {
	cfg, dataDir := testConfig(t)
	writeWorkbook(t, dataDir, "2024-01.xlsx", "Daily", monthRows([]string{"North"}, []int{100}))
	writeWorkbook(t, dataDir, "2024-02.xlsx", "Daily", monthRows([]string{"North"}, []int{300}))

	type call struct {
		done, total int
		file        string
	}
	var calls []call

	runner, err := pipeline.NewRunner(cfg,
		pipeline.WithLayout(entryLayout()),
		pipeline.WithProgress(func(done, total int, file string) {
			calls = append(calls, call{done, total, file})
		}))
	require.NoError(t, err)

	_, err = runner.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []call{
		{1, 2, "2024-01.xlsx"},
		{2, 2, "2024-02.xlsx"},
	}, calls)
}

func TestRunnerEmptyDataDir(t *testing.T) {
	cfg, _ := testConfig(t)

	runner, err := pipeline.NewRunner(cfg)
	require.NoError(t, err)

	result, err := runner.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, result.Files)
	assert.Empty(t, result.Summaries)

	// The dataset artifact is written even when no workbook survives.
	raw, err := os.ReadFile(result.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"date\": [],\n    \"time\": []\n}", string(raw))
}

func TestRunnerMissingDataDir(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.ExecutableDir = t.TempDir()

	runner, err := pipeline.NewRunner(cfg)
	require.NoError(t, err)

	_, err = runner.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to discover workbooks")
}

func TestRunnerCancelledContext(t *testing.T) {
	cfg, dataDir := testConfig(t)
	writeWorkbook(t, dataDir, "2024-01.xlsx", "Daily", monthRows([]string{"North"}, []int{100}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner, err := pipeline.NewRunner(cfg, pipeline.WithLayout(entryLayout()))
	require.NoError(t, err)

	_, err = runner.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewRunnerUnknownVersion(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.ExecutableDir = t.TempDir()
	cfg.Extraction.DatasetVersion = "v9"

	_, err := pipeline.NewRunner(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown dataset version")

	// An explicit layout bypasses the configured version entirely.
	_, err = pipeline.NewRunner(cfg, pipeline.WithLayout(entryLayout()))
	assert.NoError(t, err)
}
