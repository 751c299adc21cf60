package transfer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mmcdole/chronicle/internal/catalog"
	"github.com/mmcdole/chronicle/internal/domain"
	"github.com/mmcdole/chronicle/internal/log"
	"github.com/mmcdole/chronicle/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `title,type,genres,description,rating,status,inWatchlist,watchlistStatus,imageUrl
Naruto,Anime,"Action, Adventure",Ninja,8,Ended,false,,
Solo Leveling,Manhwa,Fantasy,,9.5,Ongoing,true,Current,
`

func setup(t *testing.T) (*Service, *catalog.Collection, *catalog.Queries) {
	mem, err := store.NewLibraryStore("")
	require.NoError(t, err)
	t.Cleanup(func() { mem.Close() })

	c := catalog.NewCollection(mem, log.NullLogger())
	require.NoError(t, c.Load())
	return NewService(c, "otaku-chronicle", log.NullLogger()), c, catalog.NewQueries(c)
}

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestImportFile(t *testing.T) {
	svc, c, q := setup(t)
	_, err := c.Add(domain.MediaItem{Title: "Existing", Type: domain.MediaTypeAnime, Status: domain.StatusLive})
	require.NoError(t, err)

	added, err := svc.ImportFile(writeFile(t, "backup.csv", sampleCSV))
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	items := q.All()
	require.Len(t, items, 3)
	assert.Equal(t, "Existing", items[0].Title)
	assert.Equal(t, "Naruto", items[1].Title)
	assert.Equal(t, "Solo Leveling", items[2].Title)
	assert.NotEmpty(t, items[1].ID)
	assert.NotEqual(t, items[1].ID, items[2].ID)
	assert.Equal(t, domain.WatchlistCurrent, items[2].WatchlistStatus)
}

func TestImportFile_RejectsNonCSV(t *testing.T) {
	svc, _, q := setup(t)

	_, err := svc.ImportFile(writeFile(t, "backup.json", sampleCSV))
	assert.ErrorIs(t, err, domain.ErrNotCSV)
	assert.Zero(t, q.Count())
}

func TestImportFile_MalformedCSV(t *testing.T) {
	svc, _, q := setup(t)

	_, err := svc.ImportFile(writeFile(t, "broken.csv", "title,type\n\"never closed,Anime\n"))
	assert.ErrorIs(t, err, domain.ErrNotCSV)
	assert.Zero(t, q.Count())
}

func TestImportFile_Empty(t *testing.T) {
	svc, _, q := setup(t)

	_, err := svc.ImportFile(writeFile(t, "empty.csv", "title,type,genres\n\n"))
	assert.ErrorIs(t, err, domain.ErrEmptyImport)
	assert.Zero(t, q.Count())
}

func TestImportFile_Missing(t *testing.T) {
	svc, _, _ := setup(t)

	_, err := svc.ImportFile(filepath.Join(t.TempDir(), "nope.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestExportFile(t *testing.T) {
	svc, _, _ := setup(t)
	_, err := svc.ImportFile(writeFile(t, "backup.csv", sampleCSV))
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "exports")
	now := time.Date(2025, time.January, 2, 10, 0, 0, 0, time.UTC)

	path, err := svc.ExportFile(dir, now)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "otaku-chronicle-export-2025-01-02.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, sampleCSV, string(data))
}

func TestExportFile_NothingToExport(t *testing.T) {
	svc, _, _ := setup(t)
	dir := t.TempDir()

	_, err := svc.ExportFile(dir, time.Now())
	assert.ErrorIs(t, err, domain.ErrNothingToExport)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExportImport_RoundTrip(t *testing.T) {
	svc, _, q := setup(t)
	_, err := svc.ImportFile(writeFile(t, "backup.csv", sampleCSV))
	require.NoError(t, err)
	before := q.All()

	path, err := svc.ExportFile(t.TempDir(), time.Now())
	require.NoError(t, err)

	other, _, otherQ := setup(t)
	_, err = other.ImportFile(path)
	require.NoError(t, err)

	after := otherQ.All()
	require.Len(t, after, len(before))
	for i := range before {
		after[i].ID = before[i].ID
		assert.Equal(t, before[i], after[i])
	}
}

func TestImportFile_UnencodableRatingKeepsStoreWritable(t *testing.T) {
	svc, c, q := setup(t)
	csv := "title,rating\nBroken,NaN\nHuge,1e999\nScored,8/10\n"

	added, err := svc.ImportFile(writeFile(t, "backup.csv", csv))
	require.NoError(t, err)
	assert.Equal(t, 3, added)

	items := q.All()
	assert.Equal(t, 0.0, items[0].Rating)
	assert.Equal(t, 0.0, items[1].Rating)
	assert.Equal(t, 8.0, items[2].Rating)

	_, err = c.Add(domain.MediaItem{Title: "After", Type: domain.MediaTypeAnime, Status: domain.StatusLive})
	assert.NoError(t, err)
	assert.Equal(t, 4, q.Count())
}

func TestExportImport_CRLFDescription(t *testing.T) {
	svc, c, q := setup(t)
	_, err := c.Add(domain.MediaItem{
		Title:       "Notes",
		Type:        domain.MediaTypeAnime,
		Genres:      []domain.Genre{domain.GenreDrama},
		Description: "line one\r\nline two",
		Status:      domain.StatusEnded,
	})
	require.NoError(t, err)
	stored := q.All()[0]
	assert.Equal(t, "line one\nline two", stored.Description)

	path, err := svc.ExportFile(t.TempDir(), time.Now())
	require.NoError(t, err)

	other, _, otherQ := setup(t)
	_, err = other.ImportFile(path)
	require.NoError(t, err)
	assert.Equal(t, stored.Description, otherQ.All()[0].Description)
}

func TestReadFile_LeavesCollectionAlone(t *testing.T) {
	svc, _, q := setup(t)

	items, err := svc.ReadFile(writeFile(t, "backup.csv", sampleCSV))
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Solo Leveling", items[1].Title)
	assert.Zero(t, q.Count())
}

func TestWriteFile_Snapshot(t *testing.T) {
	svc, _, _ := setup(t)
	dir := filepath.Join(t.TempDir(), "nested")

	path, err := svc.WriteFile(dir, []domain.MediaItem{
		{Title: "Bleach", Type: domain.MediaTypeAnime, Status: domain.StatusEnded},
	}, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "otaku-chronicle-export-2026-03-01.csv"), path)

	_, err = svc.WriteFile(dir, nil, time.Now())
	assert.ErrorIs(t, err, domain.ErrNothingToExport)
}
