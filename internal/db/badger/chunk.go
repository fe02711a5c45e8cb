package badger

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/kailas-cloud/pagehighlight/internal/db"
)

const (
	// DefaultChunkSize is the largest value stored under a single key.
	// In-memory databases reject values above ValueThreshold (1 MiB).
	DefaultChunkSize = 512 << 10
	maxChunkSize     = 1 << 20

	// metaChunked marks a key whose value is a manifest of chunk keys.
	metaChunked byte = 1 << 0

	manifestLen = 12 // uint64 total size + uint32 chunk count
)

var errCorruptChunks = errors.New("corrupt chunked value")

// chunkKey addresses the i-th chunk of key. The NUL separator keeps chunk
// keys out of the space of printable keys.
func chunkKey(key string, i int) []byte {
	return fmt.Appendf(nil, "%s\x00chunk\x00%06d", key, i)
}

func encodeManifest(size, count int) []byte {
	buf := make([]byte, manifestLen)
	binary.BigEndian.PutUint64(buf[:8], uint64(size))
	binary.BigEndian.PutUint32(buf[8:], uint32(count))
	return buf
}

func decodeManifest(v []byte) (size, count int, err error) {
	if len(v) != manifestLen {
		return 0, 0, fmt.Errorf("%w: manifest of %d bytes", errCorruptChunks, len(v))
	}
	return int(binary.BigEndian.Uint64(v[:8])), int(binary.BigEndian.Uint32(v[8:])), nil
}

// entries expands items into badger entries. Values above chunkSize become
// chunk entries followed by a manifest under the original key, so a reader
// that sees the manifest also sees every chunk.
func (s *Store) entries(items []db.KVItem, ttl time.Duration) []*badger.Entry {
	out := make([]*badger.Entry, 0, len(items))
	add := func(key, value []byte, meta byte) {
		e := badger.NewEntry(key, value).WithMeta(meta)
		if ttl > 0 {
			e = e.WithTTL(ttl)
		}
		out = append(out, e)
	}

	for _, item := range items {
		if len(item.Value) <= s.chunkSize {
			add([]byte(item.Key), item.Value, 0)
			continue
		}
		count := 0
		for off := 0; off < len(item.Value); off += s.chunkSize {
			end := min(off+s.chunkSize, len(item.Value))
			add(chunkKey(item.Key, count), item.Value[off:end], 0)
			count++
		}
		add([]byte(item.Key), encodeManifest(len(item.Value), count), metaChunked)
	}
	return out
}

// readValue copies the value of item, reassembling chunks when item is a manifest.
func readValue(txn *badger.Txn, key string, item *badger.Item) ([]byte, error) {
	if item.UserMeta()&metaChunked == 0 {
		return item.ValueCopy(nil)
	}

	manifest, err := item.ValueCopy(nil)
	if err != nil {
		return nil, err
	}
	size, count, err := decodeManifest(manifest)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, size)
	for i := 0; i < count; i++ {
		chunk, err := txn.Get(chunkKey(key, i))
		if err != nil {
			return nil, fmt.Errorf("%w: chunk %d: %w", errCorruptChunks, i, err)
		}
		if err := chunk.Value(func(v []byte) error {
			out = append(out, v...)
			return nil
		}); err != nil {
			return nil, err
		}
	}
	if len(out) != size {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", errCorruptChunks, len(out), size)
	}
	return out, nil
}

// chunkKeys lists the chunk keys behind key, or nil when key is not chunked.
func chunkKeys(txn *badger.Txn, key string) ([][]byte, error) {
	item, err := txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if item.UserMeta()&metaChunked == 0 {
		return nil, nil
	}

	manifest, err := item.ValueCopy(nil)
	if err != nil {
		return nil, err
	}
	_, count, err := decodeManifest(manifest)
	if err != nil {
		return nil, err
	}
	keys := make([][]byte, count)
	for i := range keys {
		keys[i] = chunkKey(key, i)
	}
	return keys, nil
}
