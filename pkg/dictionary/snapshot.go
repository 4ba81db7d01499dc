package dictionary

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Snapshot framing: one msgpack-encoded header followed by Count records.
// Records carry the original spelling and its accumulated count; nothing
// about the built tree is persisted, a snapshot is just a word list that
// decodes faster than CSV.
const (
	snapshotMagic   = "WLEX"
	snapshotVersion = 1
)

type snapshotHeader struct {
	Magic   string `msgpack:"m"`
	Version int    `msgpack:"v"`
	Count   int    `msgpack:"c"`
}

type snapshotRecord struct {
	Word  string `msgpack:"w"`
	Count int    `msgpack:"f"`
}

// WriteSnapshot encodes entries onto w in snapshot framing.
func WriteSnapshot(w io.Writer, entries []Entry) error {
	enc := msgpack.NewEncoder(w)

	header := snapshotHeader{
		Magic:   snapshotMagic,
		Version: snapshotVersion,
		Count:   len(entries),
	}
	if err := enc.Encode(&header); err != nil {
		return fmt.Errorf("failed to write snapshot header: %w", err)
	}

	for _, e := range entries {
		rec := snapshotRecord{Word: e.Word, Count: e.Count}
		if err := enc.Encode(&rec); err != nil {
			return fmt.Errorf("failed to write snapshot record for %q: %w", e.Word, err)
		}
	}
	return nil
}

// ReadSnapshot decodes a snapshot stream back into entries.
func ReadSnapshot(r io.Reader) ([]Entry, error) {
	dec := msgpack.NewDecoder(r)

	var header snapshotHeader
	if err := dec.Decode(&header); err != nil {
		return nil, fmt.Errorf("failed to read snapshot header: %w", err)
	}
	if header.Magic != snapshotMagic {
		return nil, fmt.Errorf("not a dictionary snapshot (magic %q)", header.Magic)
	}
	if header.Version != snapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", header.Version)
	}
	if header.Count < 0 {
		return nil, fmt.Errorf("invalid snapshot entry count %d", header.Count)
	}

	entries := make([]Entry, 0, header.Count)
	for i := 0; i < header.Count; i++ {
		var rec snapshotRecord
		if err := dec.Decode(&rec); err != nil {
			return nil, fmt.Errorf("failed to read snapshot record %d: %w", i, err)
		}
		entries = append(entries, Entry{Word: rec.Word, Count: rec.Count})
	}
	return entries, nil
}

// SaveSnapshot writes entries to a snapshot file.
func SaveSnapshot(filename string, entries []Entry) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create snapshot file %s: %w", filename, err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Errorf("closing snapshot file: %v", err)
		}
	}()

	if err := WriteSnapshot(file, entries); err != nil {
		return err
	}
	log.Debugf("Snapshot saved: %s (%d entries)", filename, len(entries))
	return nil
}
