package dictionary

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/bastiangx/wordlex/pkg/index"
	"github.com/bastiangx/wordlex/pkg/suggest"
)

func TestLoadText(t *testing.T) {
	input := `# core vocabulary
the
of

and
`
	l := NewLoader()
	n, err := l.LoadText(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	want := []Entry{
		{Word: "the", Count: 65535},
		{Word: "of", Count: 65534},
		{Word: "and", Count: 65533},
	}
	assert.Equal(t, want, l.Entries())

	stats := l.Stats()
	assert.Equal(t, 3, stats.TotalWords)
	assert.Equal(t, 65535, stats.MaxCount)
}

func TestLoadCSV(t *testing.T) {
	input := `hello,100
world,50
bad line
word,-3
other,abc

# comment
hello,20
`
	l := NewLoader()
	n, err := l.LoadCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 3, n, "only well-formed lines count")

	want := []Entry{
		{Word: "hello", Count: 120},
		{Word: "world", Count: 50},
	}
	assert.Equal(t, want, l.Entries())
}

func TestAddMergesDuplicateSpellings(t *testing.T) {
	l := NewLoader()
	l.Add("word", 10)
	l.Add("word", 5)
	l.Add("Word", 3)

	want := []Entry{
		{Word: "word", Count: 15},
		{Word: "Word", Count: 3},
	}
	assert.Equal(t, want, l.Entries())
	assert.Equal(t, 2, l.Stats().TotalWords)
	assert.Equal(t, 15, l.Stats().MaxCount)
}

func TestSnapshotRoundTrip(t *testing.T) {
	entries := []Entry{
		{Word: "fiancé", Count: 120},
		{Word: "fiance", Count: 80},
		{Word: "word", Count: 1},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSnapshot(&buf, entries))

	got, err := ReadSnapshot(&buf)
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}

func TestLoadSnapshot(t *testing.T) {
	entries := []Entry{
		{Word: "alpha", Count: 7},
		{Word: "beta", Count: 3},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteSnapshot(&buf, entries))

	l := NewLoader()
	n, err := l.LoadSnapshot(&buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, entries, l.Entries())
}

func TestReadSnapshotRejectsBadStreams(t *testing.T) {
	t.Run("garbage bytes", func(t *testing.T) {
		_, err := ReadSnapshot(strings.NewReader("not a snapshot"))
		assert.Error(t, err)
	})

	t.Run("wrong magic", func(t *testing.T) {
		var buf bytes.Buffer
		enc := msgpack.NewEncoder(&buf)
		require.NoError(t, enc.Encode(&snapshotHeader{Magic: "NOPE", Version: snapshotVersion}))
		_, err := ReadSnapshot(&buf)
		assert.Error(t, err)
	})

	t.Run("wrong version", func(t *testing.T) {
		var buf bytes.Buffer
		enc := msgpack.NewEncoder(&buf)
		require.NoError(t, enc.Encode(&snapshotHeader{Magic: snapshotMagic, Version: 99}))
		_, err := ReadSnapshot(&buf)
		assert.Error(t, err)
	})

	t.Run("truncated records", func(t *testing.T) {
		var buf bytes.Buffer
		enc := msgpack.NewEncoder(&buf)
		require.NoError(t, enc.Encode(&snapshotHeader{Magic: snapshotMagic, Version: snapshotVersion, Count: 2}))
		require.NoError(t, enc.Encode(&snapshotRecord{Word: "only", Count: 1}))
		_, err := ReadSnapshot(&buf)
		assert.Error(t, err)
	})
}

func TestLoadFileDetectsFormats(t *testing.T) {
	dir := t.TempDir()

	textPath := filepath.Join(dir, "words.txt")
	require.NoError(t, os.WriteFile(textPath, []byte("the\nof\n"), 0o644))

	csvPath := filepath.Join(dir, "words.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("hello,100\n"), 0o644))

	binPath := filepath.Join(dir, "words.bin")
	var buf bytes.Buffer
	require.NoError(t, WriteSnapshot(&buf, []Entry{{Word: "snap", Count: 9}}))
	require.NoError(t, os.WriteFile(binPath, buf.Bytes(), 0o644))

	l := NewLoader()
	for _, path := range []string{textPath, csvPath, binPath} {
		n, err := l.LoadFile(path)
		require.NoError(t, err, path)
		assert.Greater(t, n, 0, path)
	}

	stats := l.Stats()
	assert.Equal(t, 4, stats.TotalWords)
	assert.Equal(t, 3, stats.FilesLoaded)

	_, err := l.LoadFile(filepath.Join(dir, "words.json"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"), []byte("alpha,40\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("beta\ngamma\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.json"), []byte("{}"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))

	l := NewLoader()
	total, err := l.LoadDirectory(dir)
	require.NoError(t, err)
	assert.Equal(t, 3, total)

	stats := l.Stats()
	assert.Equal(t, 3, stats.TotalWords)
	assert.Equal(t, 2, stats.FilesLoaded)

	_, err = l.LoadDirectory(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	l := NewLoader()
	l.Add("low", 10)
	l.Add("high", 900)
	l.Add("tie1", 50)
	l.Add("tie2", 50)
	l.Add("mid", 100)

	l.Truncate(3)

	want := []Entry{{Word: "high", Count: 900}, {Word: "tie1", Count: 50}, {Word: "mid", Count: 100}}
	assert.Equal(t, want, l.Entries())

	stats := l.Stats()
	assert.Equal(t, 3, stats.TotalWords)
	assert.Equal(t, 900, stats.MaxCount)

	// survivors stay addressable for merges
	l.Add("tie1", 5)
	assert.Equal(t, 55, l.Entries()[1].Count)

	l.Truncate(0)
	assert.Len(t, l.Entries(), 3)
	l.Truncate(10)
	assert.Len(t, l.Entries(), 3)
}

func TestDetectFileFormat(t *testing.T) {
	dir := t.TempDir()
	var snapshot bytes.Buffer
	require.NoError(t, WriteSnapshot(&snapshot, []Entry{{Word: "snap", Count: 9}}))

	testCases := []struct {
		filename    string
		content     []byte
		expected    FileFormat
		wantErr     bool
		description string
	}{
		{"words.txt", []byte("the\n"), FormatText, false, "Plain word list"},
		{"words.csv", []byte("hello,100\n"), FormatCSV, false, "Counted CSV"},
		{"words.bin", snapshot.Bytes(), FormatSnapshot, false, "Snapshot"},
		{"WORDS.TXT", []byte("the\n"), FormatText, false, "Extension match ignores case"},
		{"words.json", []byte("{}"), FormatUnknown, true, "Unsupported extension"},
		{"mislabeled.bin", []byte("plain text, not msgpack"), FormatUnknown, true, "Extension and content disagree"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			path := filepath.Join(dir, tc.filename)
			require.NoError(t, os.WriteFile(path, tc.content, 0o644))

			format, err := DetectFileFormat(path)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, format)
		})
	}

	_, err := DetectFileFormat(filepath.Join(dir, "missing.txt"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestValidateFileFormat(t *testing.T) {
	dir := t.TempDir()

	binPath := filepath.Join(dir, "words.bin")
	var buf bytes.Buffer
	require.NoError(t, WriteSnapshot(&buf, []Entry{{Word: "snap", Count: 9}}))
	require.NoError(t, os.WriteFile(binPath, buf.Bytes(), 0o644))
	assert.NoError(t, ValidateFileFormat(binPath, FormatSnapshot))

	fakePath := filepath.Join(dir, "fake.bin")
	require.NoError(t, os.WriteFile(fakePath, []byte("plain text, not msgpack"), 0o644))
	assert.Error(t, ValidateFileFormat(fakePath, FormatSnapshot))

	emptyPath := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(emptyPath, nil, 0o644))
	assert.Error(t, ValidateFileFormat(emptyPath, FormatText))

	assert.Error(t, ValidateFileFormat(filepath.Join(dir, "missing.txt"), FormatText))
}

func TestPopulate(t *testing.T) {
	l := NewLoader()
	l.Add("fiancé", 120)
	l.Add("fiance", 80)
	l.Add("finance", 2000)

	b := index.NewBuilder()
	c := suggest.NewCompleter()
	l.Populate(b, c)

	ix := b.Seal()
	assert.True(t, ix.Contains("fiancé"))
	assert.True(t, ix.Contains("finance"))
	assert.Equal(t, 3, ix.Len())

	got := c.Complete("fin", 5)
	require.Len(t, got, 1)
	assert.Equal(t, "finance", got[0].Word)
	assert.Equal(t, 2000, got[0].Frequency)
}

func TestPopulateNilTargets(t *testing.T) {
	l := NewLoader()
	l.Add("word", 1)

	assert.NotPanics(t, func() { l.Populate(nil, nil) })

	b := index.NewBuilder()
	assert.NotPanics(t, func() { l.Populate(b, nil) })
	assert.Equal(t, 1, b.Len())
}
