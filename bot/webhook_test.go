package bot

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWebhook(t *testing.T) (*WebhookServer, ed25519.PrivateKey) {
	t.Helper()

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	return NewWebhookServer(":0", pub, newTestDispatcher(t)), priv
}

func signedRequest(t *testing.T, priv ed25519.PrivateKey, body string) *http.Request {
	t.Helper()

	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	signature := ed25519.Sign(priv, []byte(timestamp+body))

	req := httptest.NewRequest(http.MethodPost, "/interactions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Signature-Ed25519", hex.EncodeToString(signature))
	req.Header.Set("X-Signature-Timestamp", timestamp)
	return req
}

func TestParsePublicKey(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	key, err := ParsePublicKey(hex.EncodeToString(pub))
	require.NoError(t, err)
	assert.Equal(t, pub, key)

	_, err = ParsePublicKey("zz")
	assert.Error(t, err)

	_, err = ParsePublicKey("abcd")
	assert.Error(t, err)
}

func TestWebhookHealthRoutes(t *testing.T) {
	server, _ := newTestWebhook(t)

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bot is running ✅", rec.Body.String())

	rec = httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestWebhookRejectsInvalidSignature(t *testing.T) {
	server, _ := newTestWebhook(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/interactions", strings.NewReader(`{"type":1}`))
	server.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	_, otherKey, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	rec = httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, signedRequest(t, otherKey, `{"type":1}`))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWebhookRejectsOversizedBody(t *testing.T) {
	server, priv := newTestWebhook(t)

	body := `{"type":1,"padding":"` + strings.Repeat("x", MaxInteractionBodyBytes) + `"}`

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, signedRequest(t, priv, body))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestWebhookAnswersPing(t *testing.T) {
	server, priv := newTestWebhook(t)

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, signedRequest(t, priv, `{"id":"1","type":1}`))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"type":1}`, rec.Body.String())
}

func TestWebhookDispatchesCommands(t *testing.T) {
	server, priv := newTestWebhook(t)

	body := `{
		"id": "1",
		"type": 2,
		"guild_id": "555",
		"channel_id": "777",
		"locale": "en-US",
		"member": {"user": {"id": "42"}, "permissions": "0"},
		"data": {"id": "9", "name": "bet", "type": 1, "options": [{"name": "balance", "type": 1}]}
	}`

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, signedRequest(t, priv, body))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp discordgo.InteractionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, discordgo.InteractionResponseChannelMessageWithSource, resp.Type)
	require.NotNil(t, resp.Data)
	assert.Contains(t, resp.Data.Content, "**100**")
}

func TestWebhookReportsUnknownCommands(t *testing.T) {
	server, priv := newTestWebhook(t)

	body := `{"id":"1","type":2,"member":{"user":{"id":"42"}},"data":{"id":"9","name":"unknown","type":1}}`

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, signedRequest(t, priv, body))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"unknown command"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, signedRequest(t, priv, `{not json`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
