package bgzf

import (
	"io"
	"sync"

	"github.com/pkg/errors"
	"v.io/x/lib/vlog"
)

// Buffer is the uncompressed destination a ParallelReader fans blocks into.
// It has a fixed capacity (the hard cap for a single ReadMore call) and a
// length of currently-valid bytes; workers never write past capacity (§3.1).
type Buffer struct {
	data []byte
}

// NewBuffer allocates a Buffer with the given capacity and zero length.
func NewBuffer(capacity int) *Buffer {
	return &Buffer{data: make([]byte, 0, capacity)}
}

// Len returns the number of valid bytes currently in the buffer.
func (b *Buffer) Len() int { return len(b.data) }

// Cap returns the buffer's fixed capacity.
func (b *Buffer) Cap() int { return cap(b.data) }

// Bytes returns the valid prefix of the buffer.
func (b *Buffer) Bytes() []byte { return b.data }

// Reset empties the buffer without releasing its backing array.
func (b *Buffer) Reset() { b.data = b.data[:0] }

// setLen grows or shrinks the buffer's valid length in place. n must not
// exceed Cap().
func (b *Buffer) setLen(n int) {
	if n > cap(b.data) {
		panic("bgzf: Buffer grown past capacity")
	}
	b.data = b.data[:n]
}

// slotState tags what a worker slot is holding, replacing the original
// implementation's overloaded "offset == 0 means pending" sentinel (§9
// design note: "An implementer should prefer a tagged variant").
type slotState int

const (
	slotEmpty   slotState = iota // no undelivered block
	slotPending                  // block decoded in size, but dest had no room; offset TBD
	slotReady                    // offset and size both valid, awaiting Deliver
)

type workerSlot struct {
	state  slotState
	offset int
	size   int
}

// ParallelReader streams concatenated BGZF members from an input stream into
// a Buffer using a fixed pool of worker decompressors (§4.1).
//
// The zero value is not usable; construct with Open.
type ParallelReader struct {
	r       io.Reader
	workers []*worker
	slots   []workerSlot

	mu   sync.Mutex
	cond *sync.Cond

	loadSlotAvailable     bool
	computeSlotsAvailable int

	nextUncompressedOffset int
	pendingBlockSize       int
	eof                    bool
	err                    error
}

// Open binds a ParallelReader with numWorkers decompressor slots to r,
// positioned at the start of the BGZF stream.
func Open(r io.Reader, numWorkers int) *ParallelReader {
	if numWorkers <= 0 {
		panic("bgzf: numWorkers must be positive")
	}
	pr := &ParallelReader{
		r:                     r,
		workers:               make([]*worker, numWorkers),
		slots:                 make([]workerSlot, numWorkers),
		loadSlotAvailable:     true,
		computeSlotsAvailable: numWorkers,
	}
	pr.cond = sync.NewCond(&pr.mu)
	for i := range pr.workers {
		pr.workers[i] = newWorker()
	}
	vlog.VI(1).Infof("bgzf: opened parallel reader with %d workers", numWorkers)
	return pr
}

// IsEOF reports whether the underlying input has been fully consumed.
func (r *ParallelReader) IsEOF() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.eof
}

// ReadMore appends at least one more uncompressed member into dest (bounded
// by dest's capacity), fanning the work out across the reader's worker
// pool (§4.1, §5). It returns true if any progress was made or a
// previously-deferred block was placed, false once the input is exhausted
// and dest received nothing new.
//
// A non-nil error leaves the ParallelReader unusable; per §7, the caller
// must Open again to recover.
func (r *ParallelReader) ReadMore(dest *Buffer) (bool, error) {
	r.mu.Lock()
	if r.err != nil {
		err := r.err
		r.mu.Unlock()
		return false, err
	}

	hadPending := false
	for i := range r.slots {
		if r.slots[i].state == slotPending {
			r.slots[i].offset = dest.Len()
			r.slots[i].state = slotReady
			hadPending = true
		}
	}

	r.nextUncompressedOffset = r.pendingBlockSize + dest.Len()
	r.pendingBlockSize = 0
	if r.nextUncompressedOffset > dest.Cap() {
		r.mu.Unlock()
		panic("bgzf: destination buffer too small to hold the deferred block")
	}
	dest.setLen(r.nextUncompressedOffset)
	entryLen := dest.Len()
	r.mu.Unlock()

	var wg sync.WaitGroup
	wg.Add(len(r.workers))
	for i := range r.workers {
		i := i
		go func() {
			defer wg.Done()
			r.runWorker(i, dest)
		}()
	}
	wg.Wait()

	r.mu.Lock()
	err := r.err
	progressed := dest.Len() != entryLen
	r.mu.Unlock()

	return hadPending || progressed, err
}

// runWorker executes the Deliver/Terminate/Load/Back-pressure loop of §4.1
// for one worker slot until it either blocks on EOF or defers a block that
// doesn't fit in dest.
func (r *ParallelReader) runWorker(idx int, dest *Buffer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for {
		if r.err != nil {
			return
		}

		// 1. Deliver any block this worker already loaded.
		if r.slots[idx].state == slotReady {
			offset, size := r.slots[idx].offset, r.slots[idx].size
			r.acquireComputeSlot()
			r.mu.Unlock()
			n, err := r.inflateInto(idx, dest, offset, size)
			r.mu.Lock()
			r.releaseComputeSlot()
			if err != nil {
				r.fail(errors.Wrap(ErrDecompress, err.Error()))
				return
			}
			if n != size {
				r.fail(errors.Wrapf(ErrTruncated, "wanted %d bytes, got %d", size, n))
				return
			}
			r.slots[idx].state = slotEmpty
		}

		// 2. Terminate if the input is exhausted.
		if r.eof {
			return
		}

		// 3. Load the next member.
		r.acquireLoadSlot()
		loaded := r.loadNextBlock(idx, dest)
		r.releaseLoadSlot()
		if !loaded {
			return
		}
	}
}

// loadNextBlock must be called with r.mu held. It drains empty members
// until a non-empty one is found or EOF, assigns the block its destination
// offset, and reports whether the worker should keep looping (true) or stop
// (false: either EOF was reached, or the block had to be deferred for
// back-pressure and this worker has nothing left to do this round).
func (r *ParallelReader) loadNextBlock(idx int, dest *Buffer) bool {
	if r.nextUncompressedOffset >= dest.Cap() {
		return false
	}

	r.mu.Unlock()
	isize, cdataSize, eof, err := drainToNextMember(r.r, r.workers[idx])
	r.mu.Lock()

	if err != nil {
		r.fail(errors.Wrap(ErrTruncatedInput, err.Error()))
		return false
	}
	if eof {
		r.eof = true
		return false
	}

	r.workers[idx].lastCDATASize = cdataSize
	blockSize := int(isize)
	r.slots[idx].offset = r.nextUncompressedOffset
	r.slots[idx].size = blockSize
	r.nextUncompressedOffset += blockSize

	if r.nextUncompressedOffset <= dest.Cap() {
		dest.setLen(r.nextUncompressedOffset)
		r.pendingBlockSize = 0
		r.slots[idx].state = slotReady
		return true
	}

	r.slots[idx].state = slotPending
	r.pendingBlockSize = blockSize
	return false
}

func (r *ParallelReader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
	r.eof = true
	r.cond.Broadcast()
}

// acquireLoadSlot/releaseLoadSlot/acquireComputeSlot/releaseComputeSlot must
// be called with r.mu held; they implement the binary load gate and the
// N-permit compute semaphore of §4.1/§5 on top of one mutex+cond, the same
// pattern encoding/pam/fieldio/writer.go uses for its async flush barrier.
func (r *ParallelReader) acquireLoadSlot() {
	for !r.loadSlotAvailable && r.err == nil {
		r.cond.Wait()
	}
	r.loadSlotAvailable = false
}

func (r *ParallelReader) releaseLoadSlot() {
	r.loadSlotAvailable = true
	r.cond.Broadcast()
}

func (r *ParallelReader) acquireComputeSlot() {
	for r.computeSlotsAvailable == 0 && r.err == nil {
		r.cond.Wait()
	}
	r.computeSlotsAvailable--
}

func (r *ParallelReader) releaseComputeSlot() {
	r.computeSlotsAvailable++
	r.cond.Broadcast()
}

// inflateInto decompresses the worker's currently-loaded scratch block into
// dest[offset:offset+size]. Must be called without r.mu held (inflate runs
// outside the lock, §4.1 step 1).
func (r *ParallelReader) inflateInto(idx int, dest *Buffer, offset, size int) (int, error) {
	w := r.workers[idx]
	cdata := w.scratch.Bytes()[headerSize : headerSize+w.lastCDATASize]
	target := dest.data[offset : offset+size : offset+size]
	return w.inflate(cdata, target)
}
