/*Package interval defines the genomic coordinate values used by the reference
  accessors: a stranded, 0-based half-open Interval on a contig identified by
  its dictionary ID, samtools-style region strings, and region lists read
  from BED files.
  Coordinates are always expressed on the forward strand; the Strand field
  only records the orientation in which bases should be reported.
  It assumes every position fits in a PosType, which is currently defined as
  int32 since that's what BAM files are limited to.
*/
package interval
