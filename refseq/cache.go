package refseq

import (
	"fmt"
	"strings"
	"sync"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/refseq/encoding/fasta"
)

// contigCache holds the bases of one whole contig.  A request for a different
// contig replaces the cached one.  Concurrent misses are serialized.
type contigCache struct {
	mu     sync.Mutex
	loaded bool
	name   string
	bases  string
}

// get returns bases [start, end) of the contig name, loading it from raw if it
// isn't the cached contig.  The result is a copy, so it doesn't pin the cached
// contig after eviction.
func (c *contigCache) get(raw fasta.Fasta, name string, start, end uint64) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loaded || c.name != name {
		n, err := raw.Len(name)
		if err != nil {
			return "", err
		}
		bases, err := raw.Get(name, 0, n)
		if err != nil {
			return "", err
		}
		log.Debug.Printf("refseq: cached contig %s (%d bases), evicted %q", name, n, c.name)
		c.loaded, c.name, c.bases = true, name, bases
	}
	if end > uint64(len(c.bases)) {
		return "", errors.E(errors.Invalid, fmt.Sprintf("end is past end of sequence %s: %d", name, len(c.bases)))
	}
	var b strings.Builder
	b.Grow(int(end - start))
	b.WriteString(c.bases[start:end])
	return b.String(), nil
}

func (c *contigCache) reset() {
	c.mu.Lock()
	c.loaded, c.name, c.bases = false, "", ""
	c.mu.Unlock()
}
