// Package alignment models aligned read pairs (templates) and the
// overlap-clipping post-processing step that trims the inferior side of a
// mate pair when the insert is shorter than the combined read lengths.
package alignment
