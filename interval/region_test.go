package interval

import (
	"math"
	"testing"

	"github.com/grailbio/testutil/expect"
)

func TestParseRegionString(t *testing.T) {
	tests := []struct {
		region     string
		contigName string
		start0     PosType
		end        PosType
	}{
		{
			"chr1:1-1000",
			"chr1",
			0,
			1000,
		},
		{
			"chr1:1000",
			"chr1",
			999,
			1000,
		},
		{
			"chr1:61-70",
			"chr1",
			60,
			70,
		},
		{
			"chrM:1,001-2,000",
			"chrM",
			1000,
			2000,
		},
		{
			"MT:5-5",
			"MT",
			4,
			5,
		},
		{
			"HLA-A*01:01:01:01:1-10",
			"HLA-A*01:01:01:01",
			0,
			10,
		},
		{
			"chr1",
			"chr1",
			0,
			math.MaxInt32 - 1,
		},
	}

	for _, tt := range tests {
		result, err := ParseRegionString(tt.region)
		expect.NoError(t, err)
		expect.EQ(t, tt.contigName, result.ContigName)
		expect.EQ(t, tt.start0, result.Start0)
		expect.EQ(t, tt.end, result.End)
	}
	r, err := ParseRegionString("chr1")
	expect.NoError(t, err)
	expect.True(t, r.Whole())
	expect.EQ(t, r.String(), "chr1")
	r, err = ParseRegionString("chr2:61-70")
	expect.NoError(t, err)
	expect.EQ(t, r.String(), "chr2:61-70")
	expect.EQ(t, r.Start1(), 61)

	for _, bad := range []string{"", ":1-2", "chr1:0-5", "chr1:10-9", "chr1:a-b", "chr1:0"} {
		_, err := ParseRegionString(bad)
		expect.NotNil(t, err, "region %q", bad)
	}
}
