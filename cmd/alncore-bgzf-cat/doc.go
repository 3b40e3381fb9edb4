/*Command alncore-bgzf-cat reads a .bgzf file and writes its decompressed
  payload. alncore-bgzf-cat expects the bgzf stream to arrive on stdin, and
  writes to stdout.  It has two parameters: --workers sets the worker pool
  size used by the parallel decompressor (NumCPU when unset or <= 0), and
  --buffer-capacity sets how many uncompressed bytes are fetched per
  ReadMore call (default 4MiB).

  Usage: cat foo.bam | alncore-bgzf-cat --workers=4 > foo.raw
*/
package main
