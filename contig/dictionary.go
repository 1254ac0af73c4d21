// Package contig builds the canonical contig dictionary of a reference genome:
// a bidirectional name <-> ID <-> length table in which every contig can be
// addressed both with and without the "chr" prefix, and the mitochondrial
// contig under both its "M" and "MT" spellings.
package contig

import (
	"fmt"
	"sort"
	"strings"

	"github.com/grailbio/base/errors"
)

// Prefix is the literal prefix of UCSC-style contig names.
const Prefix = "chr"

// Record describes one physical sequence, in the order it appears in the
// sequence dictionary.
type Record struct {
	Name   string
	Length uint64
}

// Convention is the contig-naming convention of a dictionary.
type Convention int

const (
	// Bare names carry no prefix: "1", "X", "MT".
	Bare Convention = iota
	// Prefixed names start with Prefix: "chr1", "chrX", "chrM".
	Prefixed
)

// String implements fmt.Stringer.
func (c Convention) String() string {
	switch c {
	case Bare:
		return "bare"
	case Prefixed:
		return "prefixed"
	}
	return fmt.Sprintf("Convention(%d)", int(c))
}

// Apply converts name to convention c by adding or stripping Prefix.
func (c Convention) Apply(name string) string {
	if c == Prefixed {
		return WithPrefix(name)
	}
	return WithoutPrefix(name)
}

// WithPrefix returns name with Prefix prepended, unless it's already there.
func WithPrefix(name string) string {
	if strings.HasPrefix(name, Prefix) {
		return name
	}
	return Prefix + name
}

// WithoutPrefix returns name with a leading Prefix removed.
func WithoutPrefix(name string) string {
	return strings.TrimPrefix(name, Prefix)
}

// Opts controls Build.
type Opts struct {
	// RequireMitochondrial causes Build to fail when neither an "M" nor an
	// "MT" contig is present.
	RequireMitochondrial bool
}

// DefaultOpts is the default Opts value.
var DefaultOpts = Opts{RequireMitochondrial: true}

// Dictionary is an immutable contig table.  It is safe for concurrent use.
type Dictionary struct {
	convention Convention
	// names[id] is the canonical (on-disk) name of contig id.
	names   []string
	lengths []uint64
	// ids maps every alias to its contig ID.
	ids map[string]int
	// mitoID is the ID of the mitochondrial contig, or -1.
	mitoID int
}

// Mitochondrial contig spellings, without the prefix.
const (
	mitoM  = "M"
	mitoMT = "MT"
)

// Build creates a Dictionary from records.  Record i gets contig ID i.
//
// It fails with errors.Invalid if the records mix prefixed and bare names, if
// a name is empty or collides with another record's alias, or if records is
// empty.  It fails with errors.NotExist if opts.RequireMitochondrial is set and
// there is no mitochondrial contig.
func Build(records []Record, opts Opts) (*Dictionary, error) {
	if len(records) == 0 {
		return nil, errors.E(errors.Invalid, "contig.Build: no sequence records")
	}
	convention, err := detectConvention(records)
	if err != nil {
		return nil, err
	}
	d := &Dictionary{
		convention: convention,
		names:      make([]string, len(records)),
		lengths:    make([]uint64, len(records)),
		ids:        make(map[string]int, 2*len(records)+2),
		mitoID:     -1,
	}
	for id, rec := range records {
		bare := WithoutPrefix(rec.Name)
		if bare == "" {
			return nil, errors.E(errors.Invalid, fmt.Sprintf("contig.Build: invalid contig name %q", rec.Name))
		}
		for _, alias := range []string{WithPrefix(rec.Name), bare} {
			if err := d.register(alias, id); err != nil {
				return nil, err
			}
		}
		d.names[id] = convention.Apply(rec.Name)
		d.lengths[id] = rec.Length
	}
	if err := d.reconcileMitochondrial(opts); err != nil {
		return nil, err
	}
	return d, nil
}

// detectConvention requires that either every record name or none starts with
// Prefix.
func detectConvention(records []Record) (Convention, error) {
	nPrefixed := 0
	for _, rec := range records {
		if strings.HasPrefix(rec.Name, Prefix) {
			nPrefixed++
		}
	}
	switch nPrefixed {
	case len(records):
		return Prefixed, nil
	case 0:
		return Bare, nil
	}
	return Bare, errors.E(errors.Invalid, fmt.Sprintf(
		"contig.Build: mixed contig naming conventions: %d of %d names start with %q",
		nPrefixed, len(records), Prefix))
}

func (d *Dictionary) register(alias string, id int) error {
	if prev, ok := d.ids[alias]; ok && prev != id {
		return errors.E(errors.Invalid, fmt.Sprintf(
			"contig.Build: name %q refers to both contig #%d and #%d", alias, prev, id))
	}
	d.ids[alias] = id
	return nil
}

func (d *Dictionary) reconcileMitochondrial(opts Opts) error {
	id, ok := d.ids[d.convention.Apply(mitoMT)]
	if !ok {
		id, ok = d.ids[d.convention.Apply(mitoM)]
	}
	if !ok {
		if opts.RequireMitochondrial {
			return errors.E(errors.NotExist, fmt.Sprintf(
				"contig.Build: mitochondrial contig (%s or %s) not found",
				d.convention.Apply(mitoM), d.convention.Apply(mitoMT)))
		}
		return nil
	}
	switch WithoutPrefix(d.names[id]) {
	case mitoM, mitoMT:
	default:
		return errors.E(errors.Invalid, fmt.Sprintf(
			"contig.Build: malformed mitochondrial contig name %q", d.names[id]))
	}
	for _, alias := range []string{mitoM, Prefix + mitoM, mitoMT, Prefix + mitoMT} {
		if err := d.register(alias, id); err != nil {
			return err
		}
	}
	d.mitoID = id
	return nil
}

// Convention returns the detected naming convention.
func (d *Dictionary) Convention() Convention { return d.convention }

// Len returns the number of contigs.
func (d *Dictionary) Len() int { return len(d.names) }

// ID returns the ID of the contig with the given name or alias.
func (d *Dictionary) ID(name string) (int, bool) {
	id, ok := d.ids[name]
	return id, ok
}

// Name returns the canonical name of contig id.
func (d *Dictionary) Name(id int) (string, bool) {
	if id < 0 || id >= len(d.names) {
		return "", false
	}
	return d.names[id], true
}

// Length returns the length of contig id.
func (d *Dictionary) Length(id int) (uint64, bool) {
	if id < 0 || id >= len(d.lengths) {
		return 0, false
	}
	return d.lengths[id], true
}

// Canonical maps any alias to the canonical name of its contig.
func (d *Dictionary) Canonical(name string) (string, bool) {
	id, ok := d.ids[name]
	if !ok {
		return "", false
	}
	return d.names[id], true
}

// Normalize returns the canonical name of name if it is a known alias.
// Otherwise it returns name converted to the dictionary's convention.
func (d *Dictionary) Normalize(name string) string {
	if canonical, ok := d.Canonical(name); ok {
		return canonical
	}
	return d.convention.Apply(name)
}

// Mitochondrial returns the ID of the mitochondrial contig.
func (d *Dictionary) Mitochondrial() (int, bool) {
	return d.mitoID, d.mitoID >= 0
}

// Names returns the canonical names, indexed by contig ID.
func (d *Dictionary) Names() []string {
	return append([]string(nil), d.names...)
}

// IDToName returns a copy of the id -> canonical name mapping.
func (d *Dictionary) IDToName() map[int]string {
	m := make(map[int]string, len(d.names))
	for id, name := range d.names {
		m[id] = name
	}
	return m
}

// IDToLength returns a copy of the id -> length mapping.
func (d *Dictionary) IDToLength() map[int]uint64 {
	m := make(map[int]uint64, len(d.lengths))
	for id, n := range d.lengths {
		m[id] = n
	}
	return m
}

// NameToID returns a copy of the alias -> id mapping.
func (d *Dictionary) NameToID() map[string]int {
	m := make(map[string]int, len(d.ids))
	for name, id := range d.ids {
		m[name] = id
	}
	return m
}

// Aliases returns the sorted aliases of contig id.
func (d *Dictionary) Aliases(id int) []string {
	var aliases []string
	for name, i := range d.ids {
		if i == id {
			aliases = append(aliases, name)
		}
	}
	sort.Strings(aliases)
	return aliases
}

// Records returns the dictionary contents as records with canonical names.
func (d *Dictionary) Records() []Record {
	recs := make([]Record, len(d.names))
	for id := range d.names {
		recs[id] = Record{Name: d.names[id], Length: d.lengths[id]}
	}
	return recs
}
