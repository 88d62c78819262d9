package stream

import "context"

// Pair is one emission of Join.
type Pair[A any, B any] struct {
	Left  A
	Right B
}

// Join combines the latest values of two streams. Nothing is emitted until both
// sides have produced a value; after that every update on either side emits the
// pair of latest values. A side that completes keeps its last value. An error on
// either side terminates the result. Closing the result closes both inputs.
func Join[A any, B any](ctx context.Context, left *Stream[A], right *Stream[B]) *Stream[Pair[A, B]] {
	return New(ctx, func(ctx context.Context, emit Emit[Pair[A, B]]) error {
		defer left.Close()
		defer right.Close()

		var latest Pair[A, B]
		var haveLeft, haveRight bool
		leftUpdates := left.Updates()
		rightUpdates := right.Updates()

		for leftUpdates != nil || rightUpdates != nil {
			select {
			case <-ctx.Done():
				return nil
			case value, ok := <-leftUpdates:
				if !ok {
					if err := left.Err(); err != nil {
						return err
					}
					leftUpdates = nil
					if !haveLeft {
						// the pair can never be completed
						return nil
					}
					continue
				}
				latest.Left = value
				haveLeft = true
			case value, ok := <-rightUpdates:
				if !ok {
					if err := right.Err(); err != nil {
						return err
					}
					rightUpdates = nil
					if !haveRight {
						return nil
					}
					continue
				}
				latest.Right = value
				haveRight = true
			}
			if haveLeft && haveRight {
				if !emit(latest) {
					return nil
				}
			}
		}
		return nil
	})
}
