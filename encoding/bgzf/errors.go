package bgzf

import "github.com/pkg/errors"

var (
	// ErrDecompress is the cause of a ParallelReader failure when the
	// underlying flate decompressor rejects a member's compressed payload.
	ErrDecompress = errors.New("bgzf: decompress error")

	// ErrTruncated is the cause of a ParallelReader failure when a member
	// inflates to fewer bytes than its footer's ISIZE promised.
	ErrTruncated = errors.New("bgzf: truncated block")

	// ErrTruncatedInput is the cause of a ParallelReader failure when the
	// underlying stream ends (or errors) partway through a member.
	ErrTruncatedInput = errors.New("bgzf: truncated input")
)
