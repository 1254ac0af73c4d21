package interval

import (
	"fmt"
	"strconv"
	"strings"
)

// Region is a contig-name-addressed range, as given on a command line.
type Region struct {
	ContigName string
	// Start0 is 0-based; End is exclusive.
	Start0 PosType
	End    PosType
}

// Start1 returns the 1-based position of the first base.
func (r Region) Start1() int { return int(r.Start0) + 1 }

// Whole returns true iff the region carried no positional restriction.
func (r Region) Whole() bool { return r.Start0 == 0 && r.End == PosTypeMax-1 }

// String prints the region in samtools format.
func (r Region) String() string {
	if r.Whole() {
		return r.ContigName
	}
	return fmt.Sprintf("%s:%d-%d", r.ContigName, r.Start1(), r.End)
}

// ParseRegionString parses a region string of one of the forms
//   [contig name]:[1-based first pos]-[last pos]
//   [contig name]:[1-based pos]
//   [contig name]
// returning the contig name and 0-based interval boundaries.  The interval
// [0, PosTypeMax - 1] is returned if there is no positional restriction.
// Thousands separators (',') in positions are accepted.
func ParseRegionString(region string) (result Region, err error) {
	if len(region) == 0 {
		err = fmt.Errorf("interval.ParseRegionString: empty region string")
		return
	}
	colonPos := strings.LastIndexByte(region, ':')
	if colonPos == -1 {
		result.ContigName = region
		result.Start0 = 0
		result.End = PosTypeMax - 1
		return
	}
	if colonPos == 0 {
		err = fmt.Errorf("interval.ParseRegionString: empty contig name")
		return
	}
	result.ContigName = region[0:colonPos]
	rangeStr := strings.Replace(region[colonPos+1:], ",", "", -1)
	dashPos := strings.IndexByte(rangeStr, '-')
	if dashPos == -1 {
		var pos1 int64
		if pos1, err = strconv.ParseInt(rangeStr, 10, 32); err != nil {
			return
		}
		if pos1 <= 0 {
			err = fmt.Errorf("interval.ParseRegionString: position %v in region string out of range", rangeStr)
			return
		}
		result.Start0 = PosType(pos1 - 1)
		result.End = PosType(pos1)
		return
	}
	start1Str := rangeStr[:dashPos]
	endStr := rangeStr[dashPos+1:]
	var start1 int
	if start1, err = strconv.Atoi(start1Str); err != nil {
		return
	}
	if start1 <= 0 {
		err = fmt.Errorf("interval.ParseRegionString: position %v in region string out of range", start1Str)
		return
	}
	var end int
	if end, err = strconv.Atoi(endStr); err != nil {
		return
	}
	// [start1, end] is closed, so end == start1 is a single base.
	if end < start1 || end >= PosTypeMax {
		err = fmt.Errorf("interval.ParseRegionString: invalid range string %v", rangeStr)
		return
	}
	result.Start0 = PosType(start1 - 1)
	result.End = PosType(end)
	return
}
