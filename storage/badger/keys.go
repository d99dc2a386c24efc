package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/arcatext/newsift/core"
)

// Key prefixes for different data types
const (
	articlePrefix      = "artrec"
	articleBatchPrefix = "artrecb"
	articleLinkPrefix  = "artrecl"
	articleIDSeq       = "artrecseq"
	batchPrefix        = "batrec"
	batchDatePrefix    = "batrecd"
	batchIDSeq         = "batrecseq"
)

// makeArticleKey generates a key for an article by ID.
func makeArticleKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", articlePrefix, id))
}

// makeArticleBatchKey generates a composite key for the batch index.
// Format: prefix:batchID:articleID
func makeArticleBatchKey(batchID, articleID core.ID) []byte {
	prefix := articleBatchPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for batchID + 8 bytes for articleID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(batchID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(articleID))
	return buf
}

// makePartialArticleBatchKey generates a partial key for batch-scoped scans.
// Format: prefix:batchID
func makePartialArticleBatchKey(batchID core.ID) []byte {
	prefix := articleBatchPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes for batchID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(batchID))
	return buf
}

// makeArticleLinkKey generates a composite key for per-batch link uniqueness.
// Format: prefix:batchID:link
func makeArticleLinkKey(batchID core.ID, link string) []byte {
	prefix := articleLinkPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 + len(link)
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(batchID))
	offset += 8
	copy(buf[offset:], []byte(link))
	return buf
}

// makeBatchKey generates a key for a batch by ID.
func makeBatchKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", batchPrefix, id))
}

// makeBatchDateKey generates a composite key for the batch date index.
// Format: prefix:timestamp:id
func makeBatchDateKey(timestamp time.Time, id core.ID) []byte {
	prefix := batchDatePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for timestamp + 8 bytes for ID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}
