package cache

import (
	"bytes"
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"io"
)

// encodeEntry gob-encodes the entry and gzip-compresses the result.
func encodeEntry(entry CacheEntry) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)

	if err := gob.NewEncoder(zw).Encode(entry); err != nil {
		return nil, fmt.Errorf("%w: encode: %v", ErrSerialization, err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: compress: %v", ErrSerialization, err)
	}

	return buf.Bytes(), nil
}

// decodeEntry decompresses and gob-decodes an entry. Any corruption comes
// back as ErrSerialization so callers can treat it as a miss.
func decodeEntry(data []byte) (CacheEntry, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return CacheEntry{}, fmt.Errorf("%w: decompress: %v", ErrSerialization, err)
	}
	defer zr.Close()

	var entry CacheEntry
	if err := gob.NewDecoder(zr).Decode(&entry); err != nil && err != io.EOF {
		return CacheEntry{}, fmt.Errorf("%w: decode: %v", ErrSerialization, err)
	}

	return entry, nil
}
