package fetch

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type payload []string

func TestReduceTransitionTable(t *testing.T) {
	prevErr := errors.New("previous")
	newErr := errors.New("boom")

	idle := IdleState[payload]()
	loading := LoadingState[payload]()
	success := SuccessState(payload{"old"})
	failed := ErrorState[payload](prevErr)

	start := Start{}
	succ := Succeeded[payload]{Data: payload{"new"}}
	fail := Failed{Err: newErr}
	cancel := Cancel{}

	tests := []struct {
		from State[payload]
		sig  Signal
		want State[payload]
	}{
		{idle, start, loading},
		{idle, succ, idle},
		{idle, fail, idle},
		{idle, cancel, idle},

		{loading, start, loading},
		{loading, succ, SuccessState(payload{"new"})},
		{loading, fail, ErrorState[payload](newErr)},
		{loading, cancel, idle},

		{success, start, loading},
		{success, succ, success},
		{success, fail, success},
		{success, cancel, success},

		{failed, start, loading},
		{failed, succ, failed},
		{failed, fail, failed},
		{failed, cancel, failed},
	}
	for _, tt := range tests {
		name := fmt.Sprintf("%s/%T", tt.from.Status(), tt.sig)
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, Reduce(tt.from, tt.sig))
		})
	}
}

func TestSuccessThenFailedStaysSuccess(t *testing.T) {
	s := IdleState[payload]()
	s = Reduce(s, Start{})
	assert.Equal(t, Loading, s.Status())
	s = Reduce(s, Succeeded[payload]{Data: payload{"a", "b"}})
	s = Reduce(s, Failed{Err: errors.New("late")})

	data, ok := s.Data()
	assert.True(t, ok)
	assert.Equal(t, payload{"a", "b"}, data)
	assert.NoError(t, s.Err())
}

func TestCancelThenSucceededStaysIdle(t *testing.T) {
	s := Reduce(IdleState[payload](), Start{})
	s = Reduce(s, Cancel{})
	s = Reduce(s, Succeeded[payload]{Data: payload{"late"}})

	assert.Equal(t, Idle, s.Status())
	_, ok := s.Data()
	assert.False(t, ok)
}

type bogusSignal struct{}

func (bogusSignal) isSignal() {}

func TestReducePanicsOnUnhandledSignal(t *testing.T) {
	assert.Panics(t, func() { Reduce(LoadingState[payload](), bogusSignal{}) })
	// a payload of the wrong type is not a valid completion either
	assert.Panics(t, func() { Reduce(LoadingState[payload](), Succeeded[int]{Data: 1}) })
}

func TestStatusNames(t *testing.T) {
	assert.Equal(t, "loading", Loading.String())
	assert.Equal(t, "Success", Success.Label())
	assert.Equal(t, "status(9)", Status(9).String())
}
