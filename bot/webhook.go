package bot

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// MaxInteractionBodyBytes bounds the request body of POST /interactions
const MaxInteractionBodyBytes = 1 << 20

// WebhookServer receives interactions over HTTP
type WebhookServer struct {
	engine     *gin.Engine
	dispatcher *Dispatcher
	publicKey  ed25519.PublicKey
	httpServer *http.Server
}

// ParsePublicKey decodes the hex application public key
func ParsePublicKey(hexKey string) (ed25519.PublicKey, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode public key: %w", err)
	}
	if len(key) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("public key has %d bytes, want %d", len(key), ed25519.PublicKeySize)
	}
	return ed25519.PublicKey(key), nil
}

// NewWebhookServer builds the HTTP routes
func NewWebhookServer(addr string, publicKey ed25519.PublicKey, dispatcher *Dispatcher) *WebhookServer {
	gin.SetMode(gin.ReleaseMode)

	s := &WebhookServer{
		dispatcher: dispatcher,
		publicKey:  publicKey,
	}

	engine := gin.New()
	engine.Use(requestLogger(), gin.Recovery())

	engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Bot is running ✅")
	})
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.POST("/interactions", s.verifySignature(), s.handleInteraction)

	s.engine = engine
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler exposes the routes, used by tests
func (s *WebhookServer) Handler() http.Handler {
	return s.engine
}

// Start serves until Shutdown is called
func (s *WebhookServer) Start() error {
	log.WithField("addr", s.httpServer.Addr).Info("Webhook server listening")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("webhook server failed: %w", err)
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *WebhookServer) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// verifySignature rejects requests whose Ed25519 signature does not match the public key
func (s *WebhookServer) verifySignature() gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, MaxInteractionBodyBytes))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body too large"})
				return
			}
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		if !discordgo.VerifyInteraction(c.Request, s.publicKey) {
			log.WithField("remote", c.ClientIP()).Warn("Rejected interaction with invalid signature")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid request signature"})
			return
		}
		c.Next()
	}
}

func (s *WebhookServer) handleInteraction(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}

	var interaction discordgo.Interaction
	if err := json.Unmarshal(body, &interaction); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid interaction payload"})
		return
	}

	resp, err := s.dispatcher.Handle(c.Request.Context(), &interaction)
	if err != nil {
		log.WithFields(log.Fields{
			"interaction_id": interaction.ID,
			"error":          err,
		}).Warn("Interaction not handled")
		c.JSON(http.StatusBadRequest, gin.H{"error": clientError(err)})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func clientError(err error) string {
	for _, known := range []error{ErrUnknownInteraction, ErrUnknownCommand, ErrUnknownSubcommand, ErrMalformed} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return "bad request"
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.WithFields(log.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start),
		}).Debug("HTTP request")
	}
}
