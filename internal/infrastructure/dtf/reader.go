package dtf

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	v1 "github.com/waytrylee/tectonicdb/internal/domain/update/v1"
)

// Decode reads every update stored in the DTF file at path, in file order,
// which equals non-decreasing sequence order. A file without records decodes
// to an empty slice. A file that ends mid-batch is a format violation and
// yields no partial result.
func Decode(path string) ([]v1.Update, error) {
	f, err := openValidated(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if _, err := f.Seek(mainOffset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to seek to main section: %w", err)
	}

	var updates []v1.Update
	r := bufio.NewReader(f)
	for {
		flag, err := r.ReadByte()
		if err != nil {
			// end of data, including a clean EOF right at a batch boundary
			return updates, nil
		}
		if flag != flagReference {
			continue
		}
		if err := r.UnreadByte(); err != nil {
			return nil, fmt.Errorf("failed to rewind flag byte: %w", err)
		}
		batch, err := readBatch(r)
		if err != nil {
			return nil, err
		}
		updates = append(updates, batch...)
	}
}

// ReadFirst decodes only the first batch at path and returns its first
// update, the one with the smallest sequence number. It is the cheap way to
// learn the minimum timestamp without a full scan.
func ReadFirst(path string) (v1.Update, error) {
	f, err := openValidated(path)
	if err != nil {
		return v1.Update{}, err
	}
	defer f.Close()

	if _, err := f.Seek(mainOffset, io.SeekStart); err != nil {
		return v1.Update{}, fmt.Errorf("failed to seek to main section: %w", err)
	}

	r := bufio.NewReader(f)
	if _, err := r.Peek(1); err != nil {
		return v1.Update{}, noRecords("file holds no records")
	}
	batch, err := readBatch(r)
	if err != nil {
		return v1.Update{}, err
	}
	if len(batch) == 0 {
		return v1.Update{}, noRecords("first batch holds no records")
	}
	return batch[0], nil
}

// readBatch reads one reference record and its batch_len delta records,
// reconstructing absolute timestamps and sequence numbers. Any short read
// after the reference flag has been seen is a format violation, not an end
// of file.
func readBatch(r *bufio.Reader) ([]v1.Update, error) {
	flag, err := r.ReadByte()
	if err != nil {
		return nil, formatViolation("failed to read reference flag", "flag")
	}
	if flag != flagReference {
		return nil, formatViolation(
			fmt.Sprintf("expected reference flag, got 0x%02x", flag), "flag")
	}

	header := make([]byte, refRecordSize-1)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, formatViolation("truncated reference record", "reference")
	}
	refTS := binary.BigEndian.Uint32(header[0:4])
	refSeq := binary.BigEndian.Uint16(header[4:6])
	batchLen := binary.BigEndian.Uint16(header[6:8])

	updates := make([]v1.Update, 0, batchLen)
	rec := make([]byte, deltaRecordSize)
	for i := uint16(0); i < batchLen; i++ {
		if _, err := io.ReadFull(r, rec); err != nil {
			return nil, formatViolation(
				fmt.Sprintf("truncated batch: %d of %d delta records read", i, batchLen), "batch")
		}
		if rec[0] != flagDelta {
			return nil, formatViolation(
				fmt.Sprintf("expected delta flag, got 0x%02x", rec[0]), "flag")
		}
		updates = append(updates, v1.Update{
			Timestamp: refTS + uint32(binary.BigEndian.Uint16(rec[1:3])),
			Sequence:  refSeq + uint16(rec[3]),
			IsTrade:   rec[4] == 0x01,
			IsBid:     rec[5] == 0x01,
			Price:     math.Float32frombits(binary.BigEndian.Uint32(rec[6:10])),
			Size:      math.Float32frombits(binary.BigEndian.Uint32(rec[10:14])),
		})
	}

	return updates, nil
}
