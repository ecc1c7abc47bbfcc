package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/QuantumPhantom09/MeloTTS-Render/internal/backend"
	"github.com/QuantumPhantom09/MeloTTS-Render/internal/config"
	"github.com/QuantumPhantom09/MeloTTS-Render/internal/model"
)

// --- Mock types ---

type MockEngine struct {
	mock.Mock
}

func (m *MockEngine) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockEngine) Synthesize(ctx context.Context, req *backend.Request) (*backend.Response, error) {
	args := m.Called(ctx, req)
	if resp, ok := args.Get(0).(*backend.Response); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockEngine) Close() error {
	args := m.Called()
	return args.Error(0)
}

// --- Helpers ---

func testSettings() Settings {
	return func() config.SynthesisConfig {
		return config.SynthesisConfig{DefaultVoice: "EN-US", TimeoutSeconds: 5}
	}
}

func loadedHolder(engine backend.Engine) *model.Holder {
	h := model.NewHolder()
	h.Initialize(context.Background(), func(ctx context.Context) (*model.Handle, error) {
		return &model.Handle{
			Engine:     engine,
			SampleRate: 22050,
			Channels:   1,
			Language:   "EN",
			Device:     "cpu",
			LoadedAt:   time.Now(),
		}, nil
	})
	return h
}

func failedHolder(msg string) *model.Holder {
	h := model.NewHolder()
	h.Initialize(context.Background(), func(ctx context.Context) (*model.Handle, error) {
		return nil, errors.New(msg)
	})
	return h
}

func pcmResponse(frames int) *backend.Response {
	return &backend.Response{
		PCM:        make([]byte, frames*2),
		SampleRate: 22050,
		Channels:   1,
		Metadata:   &backend.ResponseMetadata{Engine: "mock"},
	}
}

// --- Tests ---

func TestSpeak_NotReadyWhileUnloaded(t *testing.T) {
	svc := NewTTS(model.NewHolder(), testSettings())

	_, err := svc.Speak(context.Background(), "Hello world", "", nil)
	assert.ErrorIs(t, err, ErrNotReady)
}

func TestSpeak_LoadFailureCarriesMessage(t *testing.T) {
	svc := NewTTS(failedHolder("weights missing"), testSettings())

	_, err := svc.Speak(context.Background(), "Hello world", "", nil)
	assert.ErrorIs(t, err, ErrLoadFailed)
	assert.Contains(t, err.Error(), "weights missing")
}

func TestSpeak_LoadFailureWinsOverEmptyText(t *testing.T) {
	svc := NewTTS(failedHolder("weights missing"), testSettings())

	_, err := svc.Speak(context.Background(), "", "", nil)
	assert.ErrorIs(t, err, ErrLoadFailed)
}

func TestSpeak_EmptyText(t *testing.T) {
	engine := new(MockEngine)
	engine.On("Name").Return("mock").Maybe()
	svc := NewTTS(loadedHolder(engine), testSettings())

	_, err := svc.Speak(context.Background(), "", "EN-US", nil)
	assert.ErrorIs(t, err, ErrEmptyText)
	engine.AssertNotCalled(t, "Synthesize", mock.Anything, mock.Anything)
}

func TestSpeak_Success(t *testing.T) {
	engine := new(MockEngine)
	engine.On("Name").Return("mock")
	engine.On("Synthesize", mock.Anything, mock.MatchedBy(func(req *backend.Request) bool {
		return req.Text == "Hello world" && req.Voice == "EN-US"
	})).Return(pcmResponse(2205), nil).Once()

	svc := NewTTS(loadedHolder(engine), testSettings())

	result, err := svc.Speak(context.Background(), "Hello world", "EN-US", nil)
	require.NoError(t, err)

	assert.Equal(t, "RIFF", string(result.WAV[:4]))
	assert.Equal(t, 22050, result.SampleRate)
	assert.Equal(t, "mock", result.Engine)

	engine.AssertExpectations(t)
}

func TestSpeak_DefaultVoiceApplied(t *testing.T) {
	engine := new(MockEngine)
	engine.On("Name").Return("mock")
	engine.On("Synthesize", mock.Anything, mock.MatchedBy(func(req *backend.Request) bool {
		return req.Voice == "EN-US"
	})).Return(pcmResponse(100), nil).Once()

	svc := NewTTS(loadedHolder(engine), testSettings())

	_, err := svc.Speak(context.Background(), "Hello world", "", nil)
	require.NoError(t, err)

	engine.AssertExpectations(t)
}

func TestSpeak_EngineFailureDoesNotCorruptState(t *testing.T) {
	engine := new(MockEngine)
	engine.On("Name").Return("mock").Maybe()
	engine.On("Synthesize", mock.Anything, mock.Anything).
		Return(nil, errors.New("inference blew up")).Once()

	holder := loadedHolder(engine)
	svc := NewTTS(holder, testSettings())

	_, err := svc.Speak(context.Background(), "Hello world", "EN-US", nil)

	var synthErr *SynthesisError
	require.ErrorAs(t, err, &synthErr)
	assert.Contains(t, synthErr.Err.Error(), "inference blew up")

	assert.Equal(t, model.StatusLoaded, holder.Current().Status)
}

func TestSpeak_EnginePanicMappedToError(t *testing.T) {
	engine := new(MockEngine)
	engine.On("Name").Return("mock").Maybe()
	engine.On("Synthesize", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { panic("segfault in the graph") }).
		Return(nil, nil).Once()

	holder := loadedHolder(engine)
	svc := NewTTS(holder, testSettings())

	_, err := svc.Speak(context.Background(), "Hello world", "EN-US", nil)

	var synthErr *SynthesisError
	require.ErrorAs(t, err, &synthErr)
	assert.Contains(t, synthErr.Err.Error(), "segfault")
	assert.Equal(t, model.StatusLoaded, holder.Current().Status)
}

func TestSpeak_EncodingFailureMapped(t *testing.T) {
	engine := new(MockEngine)
	engine.On("Name").Return("mock").Maybe()
	engine.On("Synthesize", mock.Anything, mock.Anything).
		Return(&backend.Response{PCM: []byte{0x01}, SampleRate: 22050, Channels: 1}, nil).Once()

	svc := NewTTS(loadedHolder(engine), testSettings())

	_, err := svc.Speak(context.Background(), "Hello world", "EN-US", nil)

	var synthErr *SynthesisError
	assert.ErrorAs(t, err, &synthErr)
}
