package sms

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		code, err := GenerateCode()
		require.NoError(t, err)
		assert.Len(t, code, 6)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9', "code must be digits only: %s", code)
		}
		seen[code] = true
	}
	// 20 draws from a million values should not all collide
	assert.Greater(t, len(seen), 1)
}

func TestMockProvider_RecordsMessages(t *testing.T) {
	p := NewMockProvider()

	require.NoError(t, p.Send(context.Background(), "+998901234567", "Your code is 123456"))

	msg, ok := p.LastMessage()
	require.True(t, ok)
	assert.Equal(t, "+998901234567", msg.To)
	assert.Contains(t, msg.Body, "123456")
	assert.Len(t, p.Messages(), 1)
}

func TestTwilioProvider_Send(t *testing.T) {
	var gotForm map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotForm = map[string]string{
			"To":   r.PostFormValue("To"),
			"From": r.PostFormValue("From"),
			"Body": r.PostFormValue("Body"),
		}
		user, _, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "AC123", user)
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	p := &TwilioProvider{
		accountSID: "AC123",
		authToken:  "secret",
		fromNumber: "+15005550006",
		baseURL:    server.URL,
		httpClient: &http.Client{Timeout: time.Second},
	}

	err := p.Send(context.Background(), "+998901234567", "Your code is 654321")
	require.NoError(t, err)

	assert.Equal(t, "+998901234567", gotForm["To"])
	assert.Equal(t, "+15005550006", gotForm["From"])
	assert.Equal(t, "Your code is 654321", gotForm["Body"])
}

func TestTwilioProvider_SendRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"code": 20003}`))
	}))
	defer server.Close()

	p := &TwilioProvider{
		accountSID: "AC123",
		authToken:  "wrong",
		fromNumber: "+15005550006",
		baseURL:    server.URL,
		httpClient: &http.Client{Timeout: time.Second},
	}

	err := p.Send(context.Background(), "+998901234567", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(Config{Provider: "mock"})
	require.NoError(t, err)
	assert.IsType(t, &MockProvider{}, p)

	p, err = NewProvider(Config{Provider: "twilio", AccountSID: "AC1", AuthToken: "t", FromNumber: "+1"})
	require.NoError(t, err)
	assert.IsType(t, &TwilioProvider{}, p)

	_, err = NewProvider(Config{Provider: "pigeon"})
	require.Error(t, err)
}
