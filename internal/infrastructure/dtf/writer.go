package dtf

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	v1 "github.com/waytrylee/tectonicdb/internal/domain/update/v1"
)

// Encode writes updates for symbol to a new DTF file at path. The updates
// must be in non-decreasing sequence order; unsorted input is rejected
// before anything is written. The file is assembled in a temporary sibling
// and renamed into place, so a failed encode never leaves a readable but
// wrong file behind.
func Encode(path string, symbol string, updates []v1.Update) error {
	if _, err := padSymbol(symbol); err != nil {
		return err
	}
	if !v1.IsSorted(updates) {
		return orderingViolation("updates are not in sequence order", "updates")
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".dtf-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := encodeTo(tmp, symbol, updates); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

func encodeTo(f *os.File, symbol string, updates []v1.Update) error {
	if err := writeHeader(f, symbol, uint64(len(updates)), v1.MaxTimestamp(updates)); err != nil {
		return err
	}
	if len(updates) == 0 {
		return sync(f)
	}

	if _, err := f.Seek(mainOffset, io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek to main section: %w", err)
	}
	w := bufio.NewWriter(f)
	if err := writeBatches(w, updates); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush main section: %w", err)
	}
	return sync(f)
}

func sync(f *os.File) error {
	if err := f.Sync(); err != nil {
		return fmt.Errorf("failed to sync file: %w", err)
	}
	return nil
}

// writeBatches partitions updates into reference-anchored batches and writes
// them to w. A batch is flushed once it holds at least one record and the
// next update no longer fits the relative encoding width.
func writeBatches(w io.Writer, updates []v1.Update) error {
	refTS := updates[0].Timestamp
	refSeq := updates[0].Sequence
	var count uint16
	var pending bytes.Buffer

	for _, update := range updates {
		if count != 0 {
			// Delta arithmetic assumes ts >= ref_ts; a regression would wrap
			// the subtraction, so it is rejected instead of encoded.
			if update.Timestamp < refTS {
				return orderingViolation(
					fmt.Sprintf("timestamp %d regresses below reference %d", update.Timestamp, refTS),
					"timestamp")
			}
			if batchFull(update, refTS, refSeq, count) {
				if err := flushBatch(w, refTS, refSeq, count, &pending); err != nil {
					return err
				}
				refTS = update.Timestamp
				refSeq = update.Sequence
				count = 0
			}
		}

		pending.Write(encodeDelta(update, refTS, refSeq))
		count++
	}

	return flushBatch(w, refTS, refSeq, count, &pending)
}

func batchFull(update v1.Update, refTS uint32, refSeq uint16, count uint16) bool {
	return update.Timestamp-refTS >= maxDeltaTS ||
		update.Sequence-refSeq >= maxDeltaSeq ||
		count == math.MaxUint16
}

// flushBatch writes the reference record followed by the buffered delta
// records, then resets the buffer.
func flushBatch(w io.Writer, refTS uint32, refSeq uint16, count uint16, pending *bytes.Buffer) error {
	ref := make([]byte, refRecordSize)
	ref[0] = flagReference
	binary.BigEndian.PutUint32(ref[1:5], refTS)
	binary.BigEndian.PutUint16(ref[5:7], refSeq)
	binary.BigEndian.PutUint16(ref[7:9], count)

	if _, err := w.Write(ref); err != nil {
		return fmt.Errorf("failed to write reference record: %w", err)
	}
	if _, err := w.Write(pending.Bytes()); err != nil {
		return fmt.Errorf("failed to write delta records: %w", err)
	}
	pending.Reset()
	return nil
}

func encodeDelta(update v1.Update, refTS uint32, refSeq uint16) []byte {
	rec := make([]byte, deltaRecordSize)
	rec[0] = flagDelta
	binary.BigEndian.PutUint16(rec[1:3], uint16(update.Timestamp-refTS))
	rec[3] = byte(update.Sequence - refSeq)
	rec[4] = boolByte(update.IsTrade)
	rec[5] = boolByte(update.IsBid)
	binary.BigEndian.PutUint32(rec[6:10], math.Float32bits(update.Price))
	binary.BigEndian.PutUint32(rec[10:14], math.Float32bits(update.Size))
	return rec
}

func boolByte(b bool) byte {
	if b {
		return 0x01
	}
	return 0x00
}
