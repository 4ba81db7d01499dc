package dictionary

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frequencyRows() string {
	rows := []string{
		"1\t500\tthe\tDET\tx\ty",
		"2\t300\t,\tPUNCT\tx\ty",
		"3\t200\t42\tNUM\tx\ty",
		"4\t150\ts\tPART\tx\ty",
		"5\t140\t%\tSYM\tx\ty",
		"6\t100\twww.site\tNOUN\tx\ty",
		"7\t90\temail@host\tNOUN\tx\ty",
		"8\t80\tthe\tNOUN\tx\ty",
		"9\tbad\tword\tNOUN\tx\ty",
		"short\trow",
		"10\t70\tcafé\tNOUN\tx\ty",
		"11\t60\tzebra\tVERB\tx\ty",
	}
	return strings.Join(rows, "\n") + "\n"
}

func TestParseFrequencyList(t *testing.T) {
	entries, err := ParseFrequencyList(strings.NewReader(frequencyRows()))
	require.NoError(t, err)

	want := []Entry{
		{Word: "café", Count: 70},
		{Word: "the", Count: 580},
		{Word: "zebra", Count: 60},
	}
	assert.Equal(t, want, entries,
		"ignored types and junk words dropped, duplicates summed, output sorted")
}

func TestParseFrequencyListJunkWords(t *testing.T) {
	testCases := []struct {
		word        string
		kept        bool
		description string
	}{
		{"hello", true, "Plain word"},
		{"it's", true, "Apostrophe is fine"},
		{"semi-final", true, "Hyphen is fine"},
		{"www", false, "Web noise"},
		{"site(1)", false, "Parenthesis"},
		{"a,b", false, "Embedded comma"},
		{"#tag", false, "Hash"},
		{"50%", false, "Percent"},
		{"under_score", false, "Underscore"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			row := "1\t100\t" + tc.word + "\tNOUN\tx\ty\n"
			entries, err := ParseFrequencyList(strings.NewReader(row))
			require.NoError(t, err)
			if tc.kept {
				require.Len(t, entries, 1)
				assert.Equal(t, tc.word, entries[0].Word)
			} else {
				assert.Empty(t, entries)
			}
		})
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, []Entry{
		{Word: "the", Count: 580},
		{Word: "café", Count: 70},
	})
	require.NoError(t, err)
	assert.Equal(t, "the,580\ncafé,70\n", buf.String())
}

func TestConvertFrequencyList(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "corpus.tsv")
	outPath := filepath.Join(dir, "words.csv")
	require.NoError(t, os.WriteFile(inPath, []byte(frequencyRows()), 0o644))

	require.NoError(t, ConvertFrequencyList(inPath, outPath))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "café,70\nthe,580\nzebra,60\n", string(data))

	// the emitted file loads straight back through the loader
	l := NewLoader()
	n, err := l.LoadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, 580, l.Stats().MaxCount)

	assert.Error(t, ConvertFrequencyList(filepath.Join(dir, "missing.tsv"), outPath))
}
