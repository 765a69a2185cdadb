package tape

import (
	"fmt"
	"os"
	"path/filepath"
)

const segmentPattern = "segment-%06d.tape"

type segment struct {
	file   *os.File
	offset int64
}

func openSegment(dir string, index int) (*segment, error) {
	path := filepath.Join(dir, fmt.Sprintf(segmentPattern, index))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return &segment{file: f}, nil
}

func (s *segment) append(b []byte) error {
	n, err := s.file.Write(b)
	if err != nil {
		return err
	}
	s.offset += int64(n)
	return nil
}

func (s *segment) close() error {
	return s.file.Close()
}

// segmentFiles lists the directory's segments in index order. The
// zero-padded naming makes lexical glob order numeric order.
func segmentFiles(dir string) ([]string, error) {
	return filepath.Glob(filepath.Join(dir, "segment-*.tape"))
}

func segmentIndex(path string) (int, bool) {
	var idx int
	if _, err := fmt.Sscanf(filepath.Base(path), segmentPattern, &idx); err != nil {
		return 0, false
	}
	return idx, true
}
