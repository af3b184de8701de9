package service

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type SerialExecutorTestSuite struct {
	suite.Suite
}

func TestSerialExecutor(t *testing.T) {
	suite.Run(t, new(SerialExecutorTestSuite))
}

func (s *SerialExecutorTestSuite) TestRunsTasksInOrderPerKey() {
	// Arrange
	executor := NewSerialExecutor(nil)
	var mu sync.Mutex
	var got []int

	// Act
	for i := 0; i < 100; i++ {
		i := i
		s.Require().NoError(executor.Submit("instance-a", func() {
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
		}))
	}
	executor.Close()

	// Assert
	s.Require().Len(got, 100)
	for i, v := range got {
		s.Equal(i, v)
	}
}

func (s *SerialExecutorTestSuite) TestKeysDoNotBlockEachOther() {
	// Arrange
	executor := NewSerialExecutor(nil)
	release := make(chan struct{})
	done := make(chan struct{})

	// Act
	s.Require().NoError(executor.Submit("slow", func() { <-release }))
	s.Require().NoError(executor.Submit("fast", func() { close(done) }))

	// Assert
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		s.Fail("task on another key was blocked")
	}
	close(release)
	executor.Close()
}

func (s *SerialExecutorTestSuite) TestPanicDoesNotStopLane() {
	// Arrange
	var panics []string
	executor := NewSerialExecutor(func(key string, err error) {
		panics = append(panics, key)
	})
	ran := false

	// Act
	s.Require().NoError(executor.Submit("a", func() { panic("boom") }))
	s.Require().NoError(executor.Submit("a", func() { ran = true }))
	executor.Close()

	// Assert
	s.True(ran)
	s.Equal([]string{"a"}, panics)
}

func (s *SerialExecutorTestSuite) TestSubmitAfterCloseFails() {
	// Arrange
	executor := NewSerialExecutor(nil)
	executor.Close()

	// Act
	err := executor.Submit("a", func() {})

	// Assert
	s.True(errors.Is(err, ErrExecutorClosed))
}
