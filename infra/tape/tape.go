package tape

import (
	"encoding/binary"
	"fmt"
	"os"
)

type Config struct {
	Dir         string
	SegmentSize int64
}

// Tape is an append-only, CRC-framed journal of the events the engine
// emits. It is an output artifact for audit and downstream recovery;
// the engine never reads it back into the book.
type Tape struct {
	dir      string
	segSize  int64
	current  *segment
	segIndex int
}

// Open creates the directory if needed and starts a fresh segment
// after any existing ones, so a restart never appends into an old
// file.
func Open(cfg Config) (*Tape, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("tape: create dir: %w", err)
	}

	index := 0
	files, err := segmentFiles(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("tape: list segments: %w", err)
	}
	for _, path := range files {
		if idx, ok := segmentIndex(path); ok && idx >= index {
			index = idx + 1
		}
	}

	seg, err := openSegment(cfg.Dir, index)
	if err != nil {
		return nil, fmt.Errorf("tape: open segment: %w", err)
	}

	return &Tape{
		dir:      cfg.Dir,
		segSize:  cfg.SegmentSize,
		current:  seg,
		segIndex: index,
	}, nil
}

// Append frames and writes one record:
//
//	[type:1][seq:8][time:8][len:4][payload][crc:4]
//
// The CRC covers everything before it. A full segment rotates after
// the write, so a record never splits across segments.
func (t *Tape) Append(r *Record) error {
	payloadLen := uint32(len(r.Data))

	buf := make([]byte, 1+8+8+4+payloadLen+4)
	buf[0] = byte(r.Type)
	binary.BigEndian.PutUint64(buf[1:9], r.Seq)
	binary.BigEndian.PutUint64(buf[9:17], uint64(r.Time))
	binary.BigEndian.PutUint32(buf[17:21], payloadLen)
	copy(buf[21:], r.Data)

	crc := checksum(buf[:21+payloadLen])
	binary.BigEndian.PutUint32(buf[21+payloadLen:], crc)

	if err := t.current.append(buf); err != nil {
		return fmt.Errorf("tape: append: %w", err)
	}

	if t.current.offset >= t.segSize {
		return t.rotate()
	}
	return nil
}

func (t *Tape) rotate() error {
	_ = t.current.close()
	t.segIndex++

	seg, err := openSegment(t.dir, t.segIndex)
	if err != nil {
		return fmt.Errorf("tape: rotate: %w", err)
	}
	t.current = seg
	return nil
}

func (t *Tape) Close() error {
	return t.current.close()
}

// TruncateBefore removes every segment whose records all carry
// sequence numbers at or below seq. The current segment is never
// removed.
func (t *Tape) TruncateBefore(seq uint64) error {
	files, err := segmentFiles(t.dir)
	if err != nil {
		return fmt.Errorf("tape: list segments: %w", err)
	}

	for _, path := range files {
		if idx, ok := segmentIndex(path); !ok || idx == t.segIndex {
			continue
		}
		maxSeq, err := maxSeqInSegment(path)
		if err != nil {
			continue
		}
		if maxSeq <= seq {
			_ = os.Remove(path)
		}
	}
	return nil
}
