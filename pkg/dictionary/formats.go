package dictionary

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// ErrUnknownFormat is returned when a file matches none of the supported
// dictionary formats.
var ErrUnknownFormat = errors.New("dictionary: unknown file format")

// FileFormat identifies a dictionary file layout on disk.
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatText                // one word per line, rank by position
	FormatCSV                 // word,count lines
	FormatSnapshot            // msgpack snapshot
)

// formatSpec pins what a format requires of a file before any parsing
// starts: the extension it must carry and the smallest size that could
// possibly hold one record.
type formatSpec struct {
	name    string
	ext     string
	minSize int64
}

var formatSpecs = map[FileFormat]formatSpec{
	FormatText:     {name: "plain word list", ext: ".txt", minSize: 1},
	FormatCSV:      {name: "counted csv", ext: ".csv", minSize: 3},
	FormatSnapshot: {name: "dictionary snapshot", ext: ".bin", minSize: 8},
}

func (f FileFormat) String() string {
	if spec, ok := formatSpecs[f]; ok {
		return spec.name
	}
	return "unknown"
}

// ValidateFileFormat checks that filename plausibly holds the given
// format: right extension, enough bytes, and for snapshots a readable
// header. Record level problems still surface at load time.
func ValidateFileFormat(filename string, format FileFormat) error {
	spec, ok := formatSpecs[format]
	if !ok {
		return fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}

	if ext := strings.ToLower(filepath.Ext(filename)); ext != spec.ext {
		return fmt.Errorf("file %s has extension %s, want %s for a %s",
			filename, ext, spec.ext, spec.name)
	}

	info, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", filename, err)
	}
	if info.Size() < spec.minSize {
		return fmt.Errorf("file %s is too small for a %s: %d bytes, want at least %d",
			filename, spec.name, info.Size(), spec.minSize)
	}

	if format == FormatSnapshot {
		return validateSnapshotHeader(filename)
	}
	return nil
}

// validateSnapshotHeader decodes just the header, not the records.
func validateSnapshotHeader(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	var header snapshotHeader
	if err := msgpack.NewDecoder(file).Decode(&header); err != nil {
		return fmt.Errorf("failed to read snapshot header from %s: %w", filename, err)
	}
	if header.Magic != snapshotMagic {
		return fmt.Errorf("file %s is not a dictionary snapshot (magic %q)", filename, header.Magic)
	}
	if header.Version != snapshotVersion {
		return fmt.Errorf("unsupported snapshot version %d in %s", header.Version, filename)
	}
	if header.Count < 0 {
		return fmt.Errorf("invalid entry count in %s: %d (negative)", filename, header.Count)
	}

	log.Debugf("Snapshot file %s validated: %d entries", filename, header.Count)
	return nil
}

// DetectFileFormat maps a filename to its format by extension, then runs
// that format's validation. Anything that fails either step is reported
// as ErrUnknownFormat so directory scans can skip it.
func DetectFileFormat(filename string) (FileFormat, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	for format, spec := range formatSpecs {
		if spec.ext != ext {
			continue
		}
		if err := ValidateFileFormat(filename, format); err != nil {
			return FormatUnknown, fmt.Errorf("%w: %s: %v", ErrUnknownFormat, filename, err)
		}
		return format, nil
	}
	return FormatUnknown, fmt.Errorf("%w: %s", ErrUnknownFormat, filename)
}
