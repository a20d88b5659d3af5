package secret

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource is a ConfigSource that records how often it was consulted.
type fakeSource struct {
	values map[string]string
	err    error
	calls  int
}

func (f *fakeSource) Lookup(_ context.Context, key string) (string, bool, error) {
	f.calls++
	if f.err != nil {
		return "", false, f.err
	}
	v, ok := f.values[key]
	return v, ok, nil
}

func TestGetSecret_ReturnsValue(t *testing.T) {
	src := &fakeSource{values: map[string]string{
		MetadataKeyMapsAPIKey: "AIzaTest1234567890",
	}}
	h := NewHandler(src, nil)

	value, err := h.GetSecret(context.Background(), "getGoogleMapsApiKey")
	require.NoError(t, err)
	assert.Equal(t, "AIzaTest1234567890", value)
	assert.Equal(t, 1, src.calls)
}

func TestGetSecret_NotFound(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]string
	}{
		{name: "key absent", values: map[string]string{}},
		{name: "empty value", values: map[string]string{MetadataKeyMapsAPIKey: ""}},
		{name: "other keys only", values: map[string]string{"com.google.firebase.API_KEY": "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeSource{values: tt.values}, nil)

			value, err := h.GetSecret(context.Background(), MethodGetGoogleMapsAPIKey)
			require.Error(t, err)
			assert.Empty(t, value)
			assert.True(t, IsNotFound(err))
			assert.False(t, IsLookupFailed(err))
			assert.Contains(t, err.Error(), "not found or empty")
		})
	}
}

func TestGetSecret_LookupFailed(t *testing.T) {
	cause := errors.New("application identity com.example.hmapp_smartphone not found")
	h := NewHandler(&fakeSource{err: cause}, nil)

	value, err := h.GetSecret(context.Background(), MethodGetGoogleMapsAPIKey)
	require.Error(t, err)
	assert.Empty(t, value)
	assert.True(t, IsLookupFailed(err))
	assert.False(t, IsNotFound(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), cause.Error())

	var se *Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, CodeLookupFailed, se.Code)
}

func TestGetSecret_UnknownRequestSkipsSource(t *testing.T) {
	src := &fakeSource{values: map[string]string{MetadataKeyMapsAPIKey: "AIzaTest1234567890"}}
	h := NewHandler(src, nil)

	for _, req := range []string{"unknownMethod", "", "getgooglemapsapikey"} {
		value, err := h.GetSecret(context.Background(), req)
		assert.ErrorIs(t, err, ErrNotImplemented, req)
		assert.Empty(t, value)
		assert.Equal(t, Code(""), CodeOf(err))
	}
	assert.Zero(t, src.calls)
}

func TestGetSecret_Idempotent(t *testing.T) {
	src := &fakeSource{values: map[string]string{MetadataKeyMapsAPIKey: "AIzaTest1234567890"}}
	h := NewHandler(src, nil)

	first, err1 := h.GetSecret(context.Background(), MethodGetGoogleMapsAPIKey)
	second, err2 := h.GetSecret(context.Background(), MethodGetGoogleMapsAPIKey)
	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.Equal(t, first, second)
}

func TestGetSecret_DebugPrefixLogging(t *testing.T) {
	const key = "AIzaTest1234567890"

	tests := []struct {
		name        string
		debugPrefix bool
		wantPrefix  bool
	}{
		{name: "default off", debugPrefix: false, wantPrefix: false},
		{name: "enabled", debugPrefix: true, wantPrefix: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, hook := logtest.NewNullLogger()
			logger.SetLevel(logrus.DebugLevel)

			h := NewHandler(&fakeSource{values: map[string]string{MetadataKeyMapsAPIKey: key}}, logger)
			h.SetDebugSecretPrefix(tt.debugPrefix)

			_, err := h.GetSecret(context.Background(), MethodGetGoogleMapsAPIKey)
			require.NoError(t, err)

			var sawPrefix bool
			for _, entry := range hook.AllEntries() {
				assert.NotContains(t, entry.Message, key, "full secret must never be logged")
				if strings.Contains(entry.Message, key[:debugPrefixLen]) {
					sawPrefix = true
				}
			}
			assert.Equal(t, tt.wantPrefix, sawPrefix)
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 6))
	assert.Equal(t, "abcdef", truncate("abcdefgh", 6))
	assert.Equal(t, "", truncate("", 6))

	// Multi-byte characters are never split.
	assert.Equal(t, "AIzaxé", truncate("AIzaxé", 6))
	assert.Equal(t, "AIzaxé", truncate("AIzaxéz", 6))
	assert.Equal(t, "ééééé", truncate("éééééé", 5))
	assert.True(t, utf8.ValidString(truncate("AIzaxéé", 6)))
}

// staticSource is safe for concurrent reads.
type staticSource map[string]string

func (s staticSource) Lookup(_ context.Context, key string) (string, bool, error) {
	v, ok := s[key]
	return v, ok, nil
}

func TestGetSecret_Concurrent(t *testing.T) {
	h := NewHandler(staticSource{MetadataKeyMapsAPIKey: "AIzaTest1234567890"}, nil)

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			value, err := h.GetSecret(context.Background(), MethodGetGoogleMapsAPIKey)
			assert.NoError(t, err)
			assert.Equal(t, "AIzaTest1234567890", value)
		}()
		go func() {
			defer wg.Done()
			_, err := h.GetSecret(context.Background(), "unknownMethod")
			assert.ErrorIs(t, err, ErrNotImplemented)
		}()
	}
	wg.Wait()
}
