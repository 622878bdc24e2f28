// Package save encodes enchantment tables for persistence.
//
// A table is written as a header ("ENCH", format version, record count)
// followed by length-prefixed records. Only the authoritative record
// fields are stored. Loading is lenient: unknown kinds are dropped and
// out-of-range numbers are clamped; only broken framing is an error.
package save

import (
	"errors"
	"fmt"

	"github.com/udisondev/monench/internal/ench"
)

// Version is the current format version.
const Version = 1

var magic = [4]byte{'E', 'N', 'C', 'H'}

// recordSize is the payload size of a version 1 record.
const recordSize = 1 + 2 + 4 + 4 + 1 + 4 + 4 + 4 + 1

var (
	// ErrBadMagic means the data is not an enchantment table.
	ErrBadMagic = errors.New("bad enchantment table magic")

	// ErrTruncated means the data ended inside a header or record.
	ErrTruncated = errors.New("truncated enchantment data")
)

// WriteRecord appends rec. Layout (LE): kind u8, degree u16, duration i32,
// max duration i32, category u8, source u32, stash hp i32, stash max hp
// i32, stash attitude u8; prefixed by the payload length as u16.
func (w *Writer) WriteRecord(rec ench.Record) {
	w.WriteShort(recordSize)
	_ = w.WriteByte(byte(rec.Kind))
	w.WriteShort(uint16(clamp(rec.Degree, 0, 0xFFFF)))
	w.WriteInt(int32(rec.Duration))
	w.WriteInt(int32(rec.MaxDuration))
	_ = w.WriteByte(byte(rec.Who.Category))
	w.WriteUint(rec.Who.Source)
	w.WriteInt(int32(rec.Stash.HP))
	w.WriteInt(int32(rec.Stash.MaxHP))
	_ = w.WriteByte(byte(rec.Stash.Attitude))
}

// ReadRecord reads one record. ok is false when the record names a kind
// this build does not know; the record is consumed either way. Unknown
// trailing fields written by newer versions are skipped.
func (r *Reader) ReadRecord() (rec ench.Record, ok bool, err error) {
	size, err := r.ReadShort()
	if err != nil {
		return rec, false, err
	}
	if int(size) > r.Remaining() {
		return rec, false, fmt.Errorf("record of %d bytes with %d left: %w", size, r.Remaining(), ErrTruncated)
	}
	// A shorter record than we know is padded with zeros.
	payload, _ := r.ReadBytes(int(size))
	if len(payload) < recordSize {
		padded := make([]byte, recordSize)
		copy(padded, payload)
		payload = padded
	}
	pr := NewReader(payload)

	kind, _ := pr.ReadByte()
	degree, _ := pr.ReadShort()
	duration, _ := pr.ReadInt()
	maxDuration, _ := pr.ReadInt()
	category, _ := pr.ReadByte()
	source, _ := pr.ReadUint()
	hp, _ := pr.ReadInt()
	maxHP, _ := pr.ReadInt()
	attitude, _ := pr.ReadByte()

	rec = ench.Record{
		Kind:        ench.Kind(kind),
		Degree:      int(degree),
		Duration:    int(duration),
		MaxDuration: int(maxDuration),
		Who: ench.Attribution{
			Category: ench.Category(category),
			Source:   source,
		},
		Stash: ench.Stash{
			HP:       int(hp),
			MaxHP:    int(maxHP),
			Attitude: int(attitude),
		},
	}
	if !rec.Kind.Valid() {
		return rec, false, nil
	}
	return Sanitize(rec), true, nil
}

// Sanitize clamps loaded numbers into their legal ranges.
func Sanitize(rec ench.Record) ench.Record {
	rec.Degree = max(rec.Degree, 0)
	rec.CapDegree()
	rec.Duration = clamp(rec.Duration, 1, ench.InfiniteDuration)
	rec.MaxDuration = clamp(rec.MaxDuration, rec.Duration, ench.InfiniteDuration)
	if rec.Who.Category > ench.CategoryOther {
		rec.Who.Category = ench.CategoryOther
	}
	return rec
}

// Encode writes every record of t.
func Encode(t *ench.Table) []byte {
	recs := t.Records()
	w := NewWriter(4 + 2 + 2 + len(recs)*(2+recordSize))
	w.WriteBytes(magic[:])
	w.WriteShort(Version)
	w.WriteShort(uint16(len(recs)))
	for _, rec := range recs {
		w.WriteRecord(rec)
	}
	return w.Bytes()
}

// Decode rebuilds a table from data. Records of unknown kinds are
// dropped; a repeated kind keeps its first record.
func Decode(data []byte) (*ench.Table, error) {
	recs, err := DecodeRecords(data)
	if err != nil {
		return nil, err
	}
	t := ench.NewTable()
	for _, rec := range recs {
		t.Install(rec)
	}
	return t, nil
}

// DecodeRecords is Decode without building a table.
func DecodeRecords(data []byte) ([]ench.Record, error) {
	r := NewReader(data)
	head, err := r.ReadBytes(len(magic))
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if [4]byte(head) != magic {
		return nil, ErrBadMagic
	}
	version, err := r.ReadShort()
	if err != nil {
		return nil, fmt.Errorf("reading version: %w", err)
	}
	if version == 0 {
		return nil, fmt.Errorf("unsupported version %d: %w", version, ErrBadMagic)
	}
	count, err := r.ReadShort()
	if err != nil {
		return nil, fmt.Errorf("reading record count: %w", err)
	}

	recs := make([]ench.Record, 0, count)
	for i := range int(count) {
		rec, ok, err := r.ReadRecord()
		if err != nil {
			return nil, fmt.Errorf("reading record %d: %w", i, err)
		}
		if ok {
			recs = append(recs, rec)
		}
	}
	return recs, nil
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
