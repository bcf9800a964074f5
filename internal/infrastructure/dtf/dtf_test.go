package dtf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/waytrylee/tectonicdb/internal/domain/update/v1"
	"github.com/waytrylee/tectonicdb/pkg/errors"
)

func sampleUpdates() []v1.Update {
	return []v1.Update{
		{Timestamp: 100, Sequence: 113, IsTrade: false, IsBid: false, Price: 5100.01, Size: 1.14564564645},
		{Timestamp: 101, Sequence: 113, IsTrade: false, IsBid: false, Price: 5100.01, Size: 2.14564564645},
		{Timestamp: 1000000, Sequence: 123, IsTrade: true, IsBid: false, Price: 5100.01, Size: 1.123465},
	}
}

func tempFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "test.dtf")
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	path := tempFile(t)
	updates := sampleUpdates()

	require.NoError(t, Encode(path, "NEO_BTC", updates))

	decoded, err := Decode(path)
	require.NoError(t, err)
	assert.Equal(t, updates, decoded)
}

func TestEncode_HeaderIntegrity(t *testing.T) {
	path := tempFile(t)
	updates := sampleUpdates()

	require.NoError(t, Encode(path, "NEO_BTC", updates))

	header, err := ReadHeader(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(len(updates)), header.RecordCount)
	assert.Equal(t, uint32(1000000), header.MaxTimestamp)
}

func TestEncode_SymbolPadding(t *testing.T) {
	path := tempFile(t)

	require.NoError(t, Encode(path, "NEO_BTC", sampleUpdates()))

	header, err := ReadHeader(path)
	require.NoError(t, err)
	assert.Equal(t, "NEO_BTC  ", header.Symbol)
}

func TestEncode_SymbolTooLong(t *testing.T) {
	path := tempFile(t)

	err := Encode(path, "TOO_LONG_SYMBOL", sampleUpdates())
	require.Error(t, err)
	assert.True(t, errors.ErrorCodeEquals(err, string(errors.DTFFormatViolation)))

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "failed encode must not leave a file behind")
}

func TestEncode_RejectsUnsortedInput(t *testing.T) {
	path := tempFile(t)
	updates := []v1.Update{
		{Timestamp: 100, Sequence: 50},
		{Timestamp: 101, Sequence: 10},
	}

	err := Encode(path, "NEO_BTC", updates)
	require.Error(t, err)
	assert.True(t, errors.ErrorCodeEquals(err, string(errors.DTFOrderingViolation)))
}

func TestEncode_RejectsTimestampRegression(t *testing.T) {
	path := tempFile(t)
	// sorted by sequence, but the timestamp falls below the active reference
	updates := []v1.Update{
		{Timestamp: 500, Sequence: 1},
		{Timestamp: 200, Sequence: 2},
	}

	err := Encode(path, "NEO_BTC", updates)
	require.Error(t, err)
	assert.True(t, errors.ErrorCodeEquals(err, string(errors.DTFOrderingViolation)))
}

func TestEncode_EmptyInput(t *testing.T) {
	path := tempFile(t)

	require.NoError(t, Encode(path, "NEO_BTC", nil))

	header, err := ReadHeader(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), header.RecordCount)
	assert.Equal(t, uint32(0), header.MaxTimestamp)

	decoded, err := Decode(path)
	require.NoError(t, err)
	assert.Empty(t, decoded)
}

func TestReadFirst(t *testing.T) {
	path := tempFile(t)
	updates := sampleUpdates()

	require.NoError(t, Encode(path, "NEO_BTC", updates))

	first, err := ReadFirst(path)
	require.NoError(t, err)
	assert.Equal(t, updates[0], first)
}

func TestReadFirst_NoRecords(t *testing.T) {
	path := tempFile(t)

	require.NoError(t, Encode(path, "NEO_BTC", nil))

	_, err := ReadFirst(path)
	require.Error(t, err)
	assert.True(t, errors.ErrorCodeEquals(err, string(errors.DTFNoRecords)))
}

func TestDecode_BatchBoundaries(t *testing.T) {
	testCases := []struct {
		name    string
		updates []v1.Update
	}{
		{
			name: "timestamp span overflows the u16 delta",
			updates: []v1.Update{
				{Timestamp: 100, Sequence: 1, Price: 1, Size: 1},
				{Timestamp: 100 + 65534, Sequence: 2, Price: 2, Size: 2},
				{Timestamp: 100 + 65535, Sequence: 3, Price: 3, Size: 3},
				{Timestamp: 100 + 200000, Sequence: 4, Price: 4, Size: 4},
			},
		},
		{
			name: "sequence span overflows the u8 delta",
			updates: []v1.Update{
				{Timestamp: 100, Sequence: 10, Price: 1, Size: 1},
				{Timestamp: 101, Sequence: 10 + 254, Price: 2, Size: 2},
				{Timestamp: 102, Sequence: 10 + 255, Price: 3, Size: 3},
				{Timestamp: 103, Sequence: 10 + 600, Price: 4, Size: 4},
			},
		},
		{
			name: "both spans overflow",
			updates: []v1.Update{
				{Timestamp: 100, Sequence: 1, Price: 1, Size: 1},
				{Timestamp: 70000, Sequence: 300, Price: 2, Size: 2},
				{Timestamp: 140000, Sequence: 600, Price: 3, Size: 3},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := tempFile(t)
			require.NoError(t, Encode(path, "NEO_BTC", tc.updates))

			decoded, err := Decode(path)
			require.NoError(t, err)
			assert.Equal(t, tc.updates, decoded)
		})
	}
}

func TestDecode_SingleUpdateIsOneBatch(t *testing.T) {
	// The batch-full guard only applies to a non-empty batch, so a lone
	// update always lands in exactly one batch.
	path := tempFile(t)
	updates := []v1.Update{{Timestamp: 100, Sequence: 1, Price: 1, Size: 1}}

	require.NoError(t, Encode(path, "NEO_BTC", updates))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(mainOffset+refRecordSize+deltaRecordSize), info.Size())

	decoded, err := Decode(path)
	require.NoError(t, err)
	assert.Equal(t, updates, decoded)
}

func TestDecode_MagicMismatch(t *testing.T) {
	path := tempFile(t)
	require.NoError(t, Encode(path, "NEO_BTC", sampleUpdates()))

	f, err := os.OpenFile(path, os.O_RDWR, 0)
	require.NoError(t, err)
	_, err = f.WriteAt([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, 0)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	decoded, err := Decode(path)
	require.Error(t, err)
	assert.True(t, errors.ErrorCodeEquals(err, string(errors.DTFFormatViolation)))
	assert.Nil(t, decoded)
}

func TestDecode_TruncatedBatch(t *testing.T) {
	path := tempFile(t)
	require.NoError(t, Encode(path, "NEO_BTC", sampleUpdates()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.NoError(t, os.Truncate(path, info.Size()-5))

	decoded, err := Decode(path)
	require.Error(t, err)
	assert.True(t, errors.ErrorCodeEquals(err, string(errors.DTFFormatViolation)))
	assert.Nil(t, decoded)
}

func TestDecode_TiedSequencePreservesOrder(t *testing.T) {
	path := tempFile(t)
	updates := []v1.Update{
		{Timestamp: 100, Sequence: 7, Price: 1, Size: 1},
		{Timestamp: 101, Sequence: 7, Price: 2, Size: 2},
		{Timestamp: 102, Sequence: 7, Price: 3, Size: 3},
	}

	require.NoError(t, Encode(path, "NEO_BTC", updates))

	decoded, err := Decode(path)
	require.NoError(t, err)
	assert.Equal(t, updates, decoded)
}
