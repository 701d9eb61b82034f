package wsdeque

// Stealer is a shareable handle to the steal end of a deque. Copying a
// Stealer clones it; all copies target the same deque and any of them may
// be used from any goroutine.
type Stealer[T any] struct {
	q *deque[T]
}

// StealAndPop transfers a batch of items from the front of the deque into
// dest and pops the newest item of the batch to the caller. It returns the
// popped item and how many items were left in dest.
//
// count receives the number of stealable items and chooses the batch size;
// the result is clamped between one and that number, so a count of zero
// still pops one item. The batch additionally shrinks so that dest keeps
// room for it; when dest is full only the popped item is taken. dest may be
// the deque's own worker, but the caller must own dest.
//
// The k-1 oldest items of the batch land in dest in source order, so dest
// pops them newest first, reversing their original order.
//
// ErrEmpty reports that no items were stealable. ErrBusy reports that the
// worker is draining or that another steal holds the front; callers retry
// later.
func (s Stealer[T]) StealAndPop(dest *Worker[T], count func(available int) int) (T, int, error) {
	q := s.q
	dq := dest.q
	var zero T

	for {
		h := q.heads.Load()
		worker, steal := unpack(h)
		if worker != steal {
			return zero, 0, ErrBusy
		}
		b := q.back.Load()
		available := b - steal
		if int32(available) <= 0 {
			return zero, 0, ErrEmpty
		}

		k := uint32(count(int(available)))
		if int32(k) < 1 {
			k = 1
		}
		if k > available {
			k = available
		}
		// All but the popped item go to dest; shrink the batch to its room.
		db := dq.back.Load()
		dWorker, _ := unpack(dq.heads.Load())
		spare := uint32(len(dq.buffer)) - (db - dWorker)
		if k-1 > spare {
			k = spare + 1
		}

		// Claim [steal, steal+k). The claim blocks concurrent steals and
		// keeps the worker from reusing the slots while they are copied.
		if !q.heads.CompareAndSwap(h, pack(worker, steal+k)) {
			continue
		}

		// The back may have moved down since it was read: the worker pops
		// one tentative slot at a time. Give up any slot the claim reached
		// past the current back before touching it.
		b = q.back.Load()
		if int32(steal+k-b) > 0 {
			k = b - steal
			if k == 0 {
				q.heads.Store(h)
				continue
			}
		}

		// Copy before committing. Until the final store the items still
		// belong to the source buffer and dest has published nothing.
		for i := uint32(0); i+1 < k; i++ {
			dq.buffer[(db+i)&dq.mask] = q.buffer[(steal+i)&q.mask]
		}
		item := q.buffer[(steal+k-1)&q.mask]

		q.heads.Store(pack(steal+k, steal+k))
		if k > 1 {
			dq.back.Store(db + k - 1)
		}
		return item, int(k - 1), nil
	}
}
