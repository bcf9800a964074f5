package dtf

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strings"
)

// Header holds the fixed-layout metadata stored before the main section.
type Header struct {
	// Symbol is the stored symbol including its trailing padding spaces.
	Symbol       string
	RecordCount  uint64
	MaxTimestamp uint32
}

// writeHeader writes the fixed header at the start of f using absolute
// offsets. Bytes between the max-timestamp field and the main section are
// left untouched.
func writeHeader(f *os.File, symbol string, recordCount uint64, maxTimestamp uint32) error {
	padded, err := padSymbol(symbol)
	if err != nil {
		return err
	}

	if _, err := f.WriteAt(magicValue, 0); err != nil {
		return fmt.Errorf("failed to write magic value: %w", err)
	}
	if _, err := f.WriteAt(padded, symbolOffset); err != nil {
		return fmt.Errorf("failed to write symbol: %w", err)
	}
	if err := writeRecordCount(f, recordCount); err != nil {
		return err
	}
	return writeMaxTimestamp(f, maxTimestamp)
}

func writeRecordCount(f *os.File, recordCount uint64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], recordCount)
	if _, err := f.WriteAt(buf[:], lenOffset); err != nil {
		return fmt.Errorf("failed to write record count: %w", err)
	}
	return nil
}

func writeMaxTimestamp(f *os.File, maxTimestamp uint32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], maxTimestamp)
	if _, err := f.WriteAt(buf[:], maxTSOffset); err != nil {
		return fmt.Errorf("failed to write max timestamp: %w", err)
	}
	return nil
}

// padSymbol right-pads symbol with spaces to the fixed width.
func padSymbol(symbol string) ([]byte, error) {
	if len(symbol) > symbolLen {
		return nil, formatViolation(
			fmt.Sprintf("symbol %q exceeds %d bytes", symbol, symbolLen), "symbol")
	}
	return []byte(symbol + strings.Repeat(" ", symbolLen-len(symbol))), nil
}

// checkMagic reads and validates the magic value at the start of r.
func checkMagic(r io.ReadSeeker) error {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek to magic value: %w", err)
	}
	buf := make([]byte, len(magicValue))
	if _, err := io.ReadFull(r, buf); err != nil {
		return formatViolation("file too short to hold magic value", "magic")
	}
	if !bytes.Equal(buf, magicValue) {
		return formatViolation("magic value incorrect", "magic")
	}
	return nil
}

// readHeader reads the fixed header from r. The magic value must already
// have been validated.
func readHeader(r io.ReadSeeker) (Header, error) {
	var header Header

	if _, err := r.Seek(symbolOffset, io.SeekStart); err != nil {
		return header, fmt.Errorf("failed to seek to symbol: %w", err)
	}
	symbol := make([]byte, symbolLen)
	if _, err := io.ReadFull(r, symbol); err != nil {
		return header, formatViolation("file too short to hold symbol", "symbol")
	}
	header.Symbol = string(symbol)

	if _, err := r.Seek(lenOffset, io.SeekStart); err != nil {
		return header, fmt.Errorf("failed to seek to record count: %w", err)
	}
	if err := binary.Read(r, binary.BigEndian, &header.RecordCount); err != nil {
		return header, formatViolation("file too short to hold record count", "record_count")
	}

	if _, err := r.Seek(maxTSOffset, io.SeekStart); err != nil {
		return header, fmt.Errorf("failed to seek to max timestamp: %w", err)
	}
	if err := binary.Read(r, binary.BigEndian, &header.MaxTimestamp); err != nil {
		return header, formatViolation("file too short to hold max timestamp", "max_timestamp")
	}

	return header, nil
}

// ReadHeader opens a DTF file and returns its header metadata without
// touching the main section.
func ReadHeader(path string) (Header, error) {
	f, err := openValidated(path)
	if err != nil {
		return Header{}, err
	}
	defer f.Close()

	return readHeader(f)
}

// openValidated opens path read-only and validates the magic value.
func openValidated(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	if err := checkMagic(f); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}
