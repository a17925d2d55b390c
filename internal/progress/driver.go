package progress

import (
	"context"
	"time"
)

// Drive advances sim on every interval until it is done, ctx is
// cancelled, or stop fires. The ticker is the only timer and it is
// stopped before Drive returns, so no tick outlives the call. onTick is
// invoked after each change.
func Drive(ctx context.Context, sim *Simulator, interval time.Duration, stop <-chan time.Time, onTick func(Snapshot)) error {
	if interval <= 0 {
		interval = time.Millisecond
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stop:
			return nil
		case <-ticker.C:
			if !sim.Advance() {
				return nil
			}
			if onTick != nil {
				onTick(sim.Snapshot())
			}
			if sim.Done() {
				return nil
			}
		}
	}
}
