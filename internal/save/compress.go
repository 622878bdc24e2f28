package save

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"github.com/udisondev/monench/internal/ench"
)

// Marshal encodes t and compresses it with zstd at the given level.
func Marshal(t *ench.Table, level zstd.EncoderLevel) ([]byte, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(level))
	if err != nil {
		return nil, fmt.Errorf("creating zstd encoder: %w", err)
	}
	defer enc.Close()
	return enc.EncodeAll(Encode(t), nil), nil
}

// Unmarshal reverses Marshal.
func Unmarshal(data []byte) (*ench.Table, error) {
	raw, err := decompress(data)
	if err != nil {
		return nil, err
	}
	return Decode(raw)
}

// UnmarshalRecords is Unmarshal without building a table.
func UnmarshalRecords(data []byte) ([]ench.Record, error) {
	raw, err := decompress(data)
	if err != nil {
		return nil, err
	}
	return DecodeRecords(raw)
}

func decompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("creating zstd decoder: %w", err)
	}
	defer dec.Close()
	raw, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decode: %w", err)
	}
	return raw, nil
}

// Entry is one monster's saved enchantments.
type Entry struct {
	Monster uint32
	Records []ench.Record
}

// WriteSnapshot writes entries for a whole level to path as one zstd
// stream.
func WriteSnapshot(path string, level zstd.EncoderLevel, entries []Entry) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating snapshot dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("creating snapshot %s: %w", path, err)
	}
	// On success both are closed below with their errors checked.
	var enc *zstd.Encoder
	defer func() {
		if err == nil {
			return
		}
		if enc != nil {
			_ = enc.Close()
		}
		_ = f.Close()
	}()

	enc, err = zstd.NewWriter(f, zstd.WithEncoderLevel(level))
	if err != nil {
		return fmt.Errorf("creating zstd encoder: %w", err)
	}

	bw := bufio.NewWriterSize(enc, 64*1024)

	w := NewWriter(256)
	w.WriteBytes(magic[:])
	w.WriteShort(Version)
	w.WriteUint(uint32(len(entries)))
	for _, e := range entries {
		t := ench.NewTable()
		for _, rec := range e.Records {
			t.Install(rec)
		}
		blob := Encode(t)
		w.WriteUint(e.Monster)
		w.WriteUint(uint32(len(blob)))
		w.WriteBytes(blob)
		if _, err := bw.Write(w.Bytes()); err != nil {
			return fmt.Errorf("writing snapshot: %w", err)
		}
		w.Reset()
	}
	if _, err := bw.Write(w.Bytes()); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flushing snapshot: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("closing zstd stream: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing snapshot %s: %w", path, err)
	}
	return nil
}

// ReadSnapshot reads a file written by WriteSnapshot.
func ReadSnapshot(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot %s: %w", path, err)
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("creating zstd decoder: %w", err)
	}
	defer dec.Close()

	data, err := io.ReadAll(bufio.NewReaderSize(dec, 64*1024))
	if err != nil {
		return nil, fmt.Errorf("zstd decode: %w", err)
	}

	r := NewReader(data)
	head, err := r.ReadBytes(len(magic))
	if err != nil {
		return nil, fmt.Errorf("reading snapshot header: %w", err)
	}
	if [4]byte(head) != magic {
		return nil, ErrBadMagic
	}
	if _, err := r.ReadShort(); err != nil {
		return nil, fmt.Errorf("reading snapshot version: %w", err)
	}
	count, err := r.ReadUint()
	if err != nil {
		return nil, fmt.Errorf("reading snapshot count: %w", err)
	}

	entries := make([]Entry, 0, min(int(count), r.Remaining()/8))
	for i := range int(count) {
		id, err := r.ReadUint()
		if err != nil {
			return nil, fmt.Errorf("reading entry %d: %w", i, err)
		}
		size, err := r.ReadUint()
		if err != nil {
			return nil, fmt.Errorf("reading entry %d: %w", i, err)
		}
		blob, err := r.ReadBytes(int(size))
		if err != nil {
			return nil, fmt.Errorf("reading entry %d: %w", i, err)
		}
		recs, err := DecodeRecords(blob)
		if err != nil {
			return nil, fmt.Errorf("decoding entry %d (monster %d): %w", i, id, err)
		}
		entries = append(entries, Entry{Monster: id, Records: recs})
	}
	return entries, nil
}
