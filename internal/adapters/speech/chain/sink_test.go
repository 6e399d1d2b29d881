package chain

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/voicehook/internal/domain"
	"github.com/bnema/voicehook/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewSinkRejectsNil(t *testing.T) {
	t.Parallel()

	_, err := NewSink(nil, mocks.NewMockSpeechSink(t))
	require.ErrorIs(t, err, errNilPrimarySink)

	_, err = NewSink(mocks.NewMockSpeechSink(t), nil)
	require.ErrorIs(t, err, errNilFallbackSink)
}

func TestSinkPrimarySuccessSkipsFallback(t *testing.T) {
	t.Parallel()

	primary := mocks.NewMockSpeechSink(t)
	fallback := mocks.NewMockSpeechSink(t)
	primary.EXPECT().Speak(mock.Anything, "hello").Return(nil).Once()

	sink, err := NewSink(primary, fallback)
	require.NoError(t, err)
	require.NoError(t, sink.Speak(context.Background(), "hello"))
}

func TestSinkFallsBackOnPrimaryFailure(t *testing.T) {
	t.Parallel()

	primary := mocks.NewMockSpeechSink(t)
	fallback := mocks.NewMockSpeechSink(t)
	primary.EXPECT().Speak(mock.Anything, "hello").Return(domain.ErrSpeechUnavailable).Once()
	fallback.EXPECT().Speak(mock.Anything, "hello").Return(nil).Once()

	sink, err := NewSink(primary, fallback)
	require.NoError(t, err)
	require.NoError(t, sink.Speak(context.Background(), "hello"))
}

func TestSinkJoinsBothFailures(t *testing.T) {
	t.Parallel()

	primary := mocks.NewMockSpeechSink(t)
	fallback := mocks.NewMockSpeechSink(t)
	fallbackErr := errors.New("fallback broke")
	primary.EXPECT().Speak(mock.Anything, "hello").Return(domain.ErrSpeechUnavailable).Once()
	fallback.EXPECT().Speak(mock.Anything, "hello").Return(fallbackErr).Once()

	sink, err := NewSink(primary, fallback)
	require.NoError(t, err)

	err = sink.Speak(context.Background(), "hello")
	require.ErrorIs(t, err, domain.ErrSpeechUnavailable)
	require.ErrorIs(t, err, fallbackErr)
}

func TestSinkDoesNotFallBackOnCancellation(t *testing.T) {
	t.Parallel()

	primary := mocks.NewMockSpeechSink(t)
	fallback := mocks.NewMockSpeechSink(t)
	primary.EXPECT().Speak(mock.Anything, "hello").Return(context.Canceled).Once()

	sink, err := NewSink(primary, fallback)
	require.NoError(t, err)

	err = sink.Speak(context.Background(), "hello")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSinkReturnsRuntimeFailureWithoutFallback(t *testing.T) {
	t.Parallel()

	primary := mocks.NewMockSpeechSink(t)
	fallback := mocks.NewMockSpeechSink(t)
	engineErr := errors.New("espeak-ng: exit status 1: ALSA lib pcm.c: unknown PCM default")
	primary.EXPECT().Speak(mock.Anything, "hello").Return(engineErr).Once()

	sink, err := NewSink(primary, fallback)
	require.NoError(t, err)

	err = sink.Speak(context.Background(), "hello")
	require.ErrorIs(t, err, engineErr)
	fallback.AssertNotCalled(t, "Speak", mock.Anything, mock.Anything)
}
