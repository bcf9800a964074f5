// Package dtf implements the Dense Tick Format, a delta-compressed binary
// layout for time-ordered market updates.
//
// File layout (all multi-byte fields big-endian):
//
//	Offset 00: magic value 0x44 0x54 0x46 0x90 0x01 ("DTF" 9001)
//	Offset 05: symbol, right-padded with spaces to 9 bytes
//	Offset 14: number of records (u64)
//	Offset 22: max timestamp (u32)
//	Offset 80: main section, a run of batches
//
// A batch is one reference record followed by its delta records:
//
//	reference: flag(1)=1 | ref_ts(u32) | ref_seq(u16) | batch_len(u16)
//	delta:     flag(1)=0 | dts(u16) | dseq(u8) | is_trade(u8) | is_bid(u8) | price(f32) | size(f32)
//
// Every member of a batch satisfies ts-ref_ts < 65535 and seq-ref_seq < 255
// so the deltas fit their encoding width.
package dtf

import (
	"github.com/waytrylee/tectonicdb/pkg/errors"
)

var magicValue = []byte{0x44, 0x54, 0x46, 0x90, 0x01}

const (
	symbolLen = 9

	symbolOffset = 5
	lenOffset    = 14
	maxTSOffset  = 22
	mainOffset   = 80

	refRecordSize   = 9
	deltaRecordSize = 14

	maxDeltaTS  = 65535
	maxDeltaSeq = 255

	flagReference = 0x01
	flagDelta     = 0x00
)

// formatViolation reports a malformed file or field. No partial result is
// returned alongside it.
func formatViolation(message, field string) error {
	return errors.NewErrorDetails(message, string(errors.DTFFormatViolation), field)
}

// orderingViolation reports input that breaks the sequence ordering contract.
func orderingViolation(message, field string) error {
	return errors.NewErrorDetails(message, string(errors.DTFOrderingViolation), field)
}

// noRecords reports a read against a file without any records.
func noRecords(message string) error {
	return errors.NewErrorDetails(message, string(errors.DTFNoRecords), "")
}
