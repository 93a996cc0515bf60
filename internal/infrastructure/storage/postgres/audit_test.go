package postgres

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecompress_UncompressedPassthrough(t *testing.T) {
	entry := AuditEntry{
		Payload:         json.RawMessage(`{"archived":true}`),
		CompressionAlgo: CompressionNone,
	}

	out, err := Decompress(entry)
	require.NoError(t, err)
	assert.JSONEq(t, `{"archived":true}`, string(out))
}

func TestDecompress_ZstdRoundTrip(t *testing.T) {
	log, err := NewAuditLog(nil)
	require.NoError(t, err)

	payload := json.RawMessage(`{"archive_points":["company","user"],"archived":true}`)
	entry := AuditEntry{
		PayloadCompressed: log.encoder.EncodeAll(payload, nil),
		CompressionAlgo:   CompressionZstd,
	}

	out, err := Decompress(entry)
	require.NoError(t, err)
	assert.JSONEq(t, string(payload), string(out))
}

func TestAuditLog_CompressThreshold(t *testing.T) {
	log, err := NewAuditLog(nil)
	require.NoError(t, err)

	// Threshold matches snapshots small enough to stay queryable as JSONB.
	assert.Equal(t, 10*1024, log.compressThreshold)
}
