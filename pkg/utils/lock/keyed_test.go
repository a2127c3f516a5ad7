package lock_test

import (
	"sync"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/saathi-app/saathi/pkg/utils/lock"
)

func TestKeyedSerializesSameKey(t *testing.T) {
	k := lock.NewKeyed()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			k.Lock("user-1")
			defer k.Unlock("user-1")
			counter++
		}()
	}
	wg.Wait()

	gt.Number(t, counter).Equal(100)
}

func TestKeyedIndependentKeys(t *testing.T) {
	k := lock.NewKeyed()

	k.Lock("user-1")
	done := make(chan struct{})
	go func() {
		k.Lock("user-2")
		defer k.Unlock("user-2")
		close(done)
	}()

	// The second key must not be blocked by the first.
	<-done
	k.Unlock("user-1")
}
