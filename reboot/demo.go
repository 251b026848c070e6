// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package reboot

import (
	"context"
	"errors"
	"time"

	"github.com/jonboulle/clockwork"
)

// Demo shows a new random number on both displays, then again every
// interval, for rounds rounds. rounds <= 0 runs until ctx is canceled.
// Opts.DemoRound is called after each round.
//
// Demo returns nil when the rounds are done or ctx is canceled, and the first
// write error otherwise.
func (b *Board) Demo(ctx context.Context, clock clockwork.Clock, interval time.Duration, rounds int) error {
	for round := 0; rounds <= 0 || round < rounds; round++ {
		if round != 0 {
			select {
			case <-ctx.Done():
				return nil
			case <-clock.After(interval):
			}
		}
		if err := errors.Join(b.WriteRandom(4), b.WriteRandom(6)); err != nil {
			return err
		}
		if b.demoRound != nil {
			b.demoRound(round)
		}
	}
	return nil
}
