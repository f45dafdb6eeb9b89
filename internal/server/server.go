// Package server exposes the catalog and fuzzy lookup over a small JSON API
// that mirrors Scryfall's {"data": ...} envelope.
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/janiskrasemann/scryfetch/internal/scryfall"
)

type NameFetcher interface {
	FetchNames(ctx context.Context) ([]string, error)
}

type CardFetcher interface {
	FetchCard(ctx context.Context, query string) (scryfall.Card, error)
}

type Server struct {
	names NameFetcher
	cards CardFetcher
}

func New(names NameFetcher, cards CardFetcher) *Server {
	return &Server{names: names, cards: cards}
}

// Router returns the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/names", s.handleNames)
	r.GET("/cards/named", s.handleNamed)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}

func (s *Server) handleNames(c *gin.Context) {
	names, err := s.names.FetchNames(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": names})
}

func (s *Server) handleNamed(c *gin.Context) {
	query, ok := c.GetQuery("fuzzy")
	if !ok {
		query = c.Query("q")
	}

	card, err := s.cards.FetchCard(c.Request.Context(), query)
	if err != nil {
		writeError(c, err)
		return
	}

	if card.Raw != nil {
		c.JSON(http.StatusOK, gin.H{"data": card.Raw})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": card})
}

// writeError passes upstream status codes through and reports every other
// failure as a bad gateway.
func writeError(c *gin.Context, err error) {
	status := http.StatusBadGateway

	var statusErr *scryfall.StatusError
	switch {
	case errors.As(err, &statusErr) && statusErr.StatusCode >= 400:
		status = statusErr.StatusCode
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	}

	body := gin.H{"error": err.Error()}
	if statusErr != nil && statusErr.API != nil {
		body["code"] = statusErr.API.Code
		body["details"] = statusErr.API.Details
	}
	c.JSON(status, body)
}
