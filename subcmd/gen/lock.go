// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package gen

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/openvicproject/vicbuild/ui"
)

type errAlreadyLocked struct {
	err    error
	bufErr error
	fname  string
	owner  string
}

func (l errAlreadyLocked) Error() string {
	if l.bufErr != nil {
		return fmt.Sprintf("%s is locked, and failed to read: %v", l.fname, l.bufErr)
	}
	return fmt.Sprintf("%s is locked by %s: %v", l.fname, l.owner, l.err)
}

func (l errAlreadyLocked) Unwrap() error {
	if l.err != nil {
		return l.err
	}
	return l.bufErr
}

// acquireLock waits until fname is locked by this process.
// The returned func releases the lock.
func acquireLock(ctx context.Context, fname string) (func(), error) {
	lock, err := newLockFile(fname)
	switch {
	case errors.Is(err, errors.ErrUnsupported):
		log.Warnf("lockfile is not supported")
		return func() {}, nil
	case err != nil:
		return nil, err
	}
	var owner string
	spin := ui.Default.NewSpinner()
	for {
		err = lock.Lock()
		alreadyLocked := &errAlreadyLocked{}
		if errors.As(err, alreadyLocked) {
			if owner != alreadyLocked.owner {
				if owner != "" {
					spin.Done("lock holder %s completed", owner)
				}
				owner = alreadyLocked.owner
				spin.Start("waiting for lock holder %s..", owner)
			}
			select {
			case <-ctx.Done():
				spin.Stop(ctx.Err())
				lock.Close()
				return nil, ctx.Err()
			case <-time.After(500 * time.Millisecond):
				continue
			}
		} else if err != nil {
			if owner != "" {
				spin.Stop(err)
			}
			lock.Close()
			return nil, err
		}
		if owner != "" {
			spin.Done("lock holder %s completed", owner)
		}
		break
	}
	return func() {
		err := lock.Unlock()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to unlock %s: %v\n", fname, err)
		}
		err = lock.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to close %s: %v\n", fname, err)
		}
	}, nil
}
