package export

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestMirrorWriter_AppendsBeforeAcking(t *testing.T) {
	mockSink := new(MockTabularSink)
	log := zap.NewNop()

	var mu sync.Mutex
	var sequence []string

	mockSink.On("AppendRows", mock.Anything, mock.MatchedBy(func(rows [][]interface{}) bool {
		return len(rows) == 1
	})).Run(func(args mock.Arguments) {
		mu.Lock()
		sequence = append(sequence, "append")
		mu.Unlock()
	}).Return(nil)

	envelope := NewEnvelope(engagedClick("s1", 0), func(ctx context.Context) error {
		mu.Lock()
		sequence = append(sequence, "ack")
		mu.Unlock()
		return nil
	})

	writer := NewMirrorWriter(mockSink, log)

	in := make(chan *Envelope, 1)
	in <- envelope
	close(in)

	writer.Start(context.Background(), in)

	assert.Equal(t, []string{"append", "ack"}, sequence)
	mockSink.AssertExpectations(t)
}

func TestMirrorWriter_FailedAppendNotAcked(t *testing.T) {
	mockSink := new(MockTabularSink)
	log := zap.NewNop()

	mockSink.On("AppendRows", mock.Anything, mock.Anything).Return(errors.New("quota exceeded"))

	acked := false
	envelope := NewEnvelope(engagedClick("s1", 0), func(ctx context.Context) error {
		acked = true
		return nil
	})

	writer := NewMirrorWriter(mockSink, log)

	in := make(chan *Envelope, 1)
	in <- envelope
	close(in)

	writer.Start(context.Background(), in)

	assert.False(t, acked, "a record whose row never landed must stay unsynced")
}

func TestMirrorWriter_AckFailureDoesNotStopPipeline(t *testing.T) {
	mockSink := new(MockTabularSink)
	log := zap.NewNop()

	mockSink.On("AppendRows", mock.Anything, mock.Anything).Return(nil)

	first := NewEnvelope(engagedClick("s1", 0), func(ctx context.Context) error {
		return errors.New("write conflict")
	})

	secondAcked := false
	second := NewEnvelope(engagedClick("s2", time.Minute), func(ctx context.Context) error {
		secondAcked = true
		return nil
	})

	writer := NewMirrorWriter(mockSink, log)

	in := make(chan *Envelope, 2)
	in <- first
	in <- second
	close(in)

	writer.Start(context.Background(), in)

	assert.True(t, secondAcked)
	mockSink.AssertNumberOfCalls(t, "AppendRows", 2)
}

func TestMirrorWriter_StopsOnContextCancel(t *testing.T) {
	mockSink := new(MockTabularSink)
	log := zap.NewNop()

	writer := NewMirrorWriter(mockSink, log)

	ctx, cancel := context.WithCancel(context.Background())
	in := make(chan *Envelope)

	done := make(chan struct{})
	go func() {
		writer.Start(ctx, in)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("writer did not stop on context cancellation")
	}
}
