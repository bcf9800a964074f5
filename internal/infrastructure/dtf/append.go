package dtf

import (
	"bufio"
	"fmt"
	"io"
	"os"

	v1 "github.com/waytrylee/tectonicdb/internal/domain/update/v1"
)

// Append merges updates into the existing DTF file at path. The new data
// must strictly follow the stored data: its minimum timestamp must exceed
// the stored maximum timestamp and its minimum sequence number must exceed
// the last stored sequence number. Validation completes before any byte is
// written, so a rejected append leaves the file untouched. On success the
// updates are written as fresh batches after the last existing batch, and
// the record count and max timestamp header fields are rewritten as the
// final step. A failure while the batches are being written truncates the
// file back to its previous size, so the stored data stays decodable.
func Append(path string, updates []v1.Update) error {
	if len(updates) == 0 {
		return nil
	}

	incoming := make([]v1.Update, len(updates))
	copy(incoming, updates)
	v1.Sort(incoming)

	f, err := os.OpenFile(path, os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	if err := checkMagic(f); err != nil {
		return err
	}
	header, err := readHeader(f)
	if err != nil {
		return err
	}

	last, haveLast, err := lastStored(f)
	if err != nil {
		return err
	}
	if haveLast {
		minTS := incoming[0].Timestamp
		for _, update := range incoming[1:] {
			if update.Timestamp < minTS {
				minTS = update.Timestamp
			}
		}
		if minTS <= header.MaxTimestamp {
			return orderingViolation(
				fmt.Sprintf("new minimum timestamp %d does not exceed stored maximum %d",
					minTS, header.MaxTimestamp), "timestamp")
		}
		// sequence is the true ordering key, so it is checked as well
		if incoming[0].Sequence <= last.Sequence {
			return orderingViolation(
				fmt.Sprintf("new minimum sequence %d does not exceed stored maximum %d",
					incoming[0].Sequence, last.Sequence), "sequence")
		}
	}

	end, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return fmt.Errorf("failed to seek to end of file: %w", err)
	}
	if end < mainOffset {
		// header-only file, position at the main section start
		if _, err := f.Seek(mainOffset, io.SeekStart); err != nil {
			return fmt.Errorf("failed to seek to main section: %w", err)
		}
	}

	if err := appendBatches(f, incoming); err != nil {
		// roll back any partial tail, a torn batch would fail every
		// later decode
		if truncErr := f.Truncate(end); truncErr != nil {
			return fmt.Errorf("failed to truncate partial append: %w", truncErr)
		}
		return err
	}

	// header rewrite is the last step
	if err := writeRecordCount(f, header.RecordCount+uint64(len(incoming))); err != nil {
		return err
	}
	newMax := header.MaxTimestamp
	if m := v1.MaxTimestamp(incoming); m > newMax {
		newMax = m
	}
	if err := writeMaxTimestamp(f, newMax); err != nil {
		return err
	}
	return sync(f)
}

// appendBatches writes incoming as fresh batches at the current position.
func appendBatches(f *os.File, incoming []v1.Update) error {
	w := bufio.NewWriter(f)
	if err := writeBatches(w, incoming); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush appended batches: %w", err)
	}
	return sync(f)
}

// lastStored walks every batch and returns the final stored update. The
// second return is false when the file holds no records.
func lastStored(f *os.File) (v1.Update, bool, error) {
	if _, err := f.Seek(mainOffset, io.SeekStart); err != nil {
		return v1.Update{}, false, fmt.Errorf("failed to seek to main section: %w", err)
	}

	var last v1.Update
	var have bool
	r := bufio.NewReader(f)
	for {
		flag, err := r.ReadByte()
		if err != nil {
			return last, have, nil
		}
		if flag != flagReference {
			continue
		}
		if err := r.UnreadByte(); err != nil {
			return v1.Update{}, false, fmt.Errorf("failed to rewind flag byte: %w", err)
		}
		batch, err := readBatch(r)
		if err != nil {
			return v1.Update{}, false, err
		}
		if len(batch) > 0 {
			last = batch[len(batch)-1]
			have = true
		}
	}
}
