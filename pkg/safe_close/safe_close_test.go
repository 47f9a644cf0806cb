package safe_close

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSafeClose_WaitClosed(t *testing.T) {
	sc := NewSafeClose()

	stopped := make(chan struct{})
	sc.Attach(func(done func(), closeSignal <-chan struct{}) {
		defer done()
		<-closeSignal
		close(stopped)
	})

	sc.SendCloseSignal(nil)

	err := sc.WaitClosed()
	assert.NoError(t, err)

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("attached goroutine did not stop")
	}
}

func TestSafeClose_FirstErrorWins(t *testing.T) {
	sc := NewSafeClose()

	first := errors.New("first")
	sc.SendCloseSignal(first)
	sc.SendCloseSignal(errors.New("second"))

	assert.Equal(t, first, sc.WaitClosed())
}
