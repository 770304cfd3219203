package server

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"finnhub-bridge/src/interfaces"
	"finnhub-bridge/src/logger"
	"finnhub-bridge/src/models"
)

// -----------------------------------------------------------------------------
// Server
// -----------------------------------------------------------------------------

type Server struct {
	Config *models.MConfig
	Logger *logger.Logger
	Query  interfaces.IQueryEngine
	engine *gin.Engine

	// WebSocket clients
	clients    map[*Client]struct{}
	broadcast  chan models.MStreamUpdate
	register   chan *Client
	unregister chan *Client

	// Latest emission per refId, replayed to newly connected clients
	latestByRef map[string]models.MStreamUpdate
}

// -----------------------------------------------------------------------------
// Constructor
// -----------------------------------------------------------------------------

func NewServer(cfg *models.MConfig, log *logger.Logger, query interfaces.IQueryEngine) *Server {
	// Set Gin mode
	if cfg.LogLevel != "DEBUG" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		Config:  cfg,
		Logger:  log,
		Query:   query,
		engine:  gin.Default(),
		clients: make(map[*Client]struct{}),
		// Buffered queue so a burst of stream updates does not block producers
		broadcast:   make(chan models.MStreamUpdate, 256),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		latestByRef: make(map[string]models.MStreamUpdate),
	}

	// Add CORS Middleware
	s.engine.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if strings.HasPrefix(origin, "http://127.0.0.1:") || strings.HasPrefix(origin, "http://localhost:") {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	s.setupRoutes()
	return s
}

// -----------------------------------------------------------------------------
// Route Setup
// -----------------------------------------------------------------------------

func (s *Server) setupRoutes() {
	// REST API endpoints
	s.engine.POST("/api/query", s.postQuery)
	s.engine.GET("/api/health", s.getHealth)

	// WebSocket endpoint (multiplexed streaming feed)
	s.engine.GET("/ws", s.handleWebSocket)
}

// -----------------------------------------------------------------------------
// Server Lifecycle
// -----------------------------------------------------------------------------

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.Config.Host, s.Config.Port)
	s.Logger.Info("Starting server on %s", addr)

	go s.handleWebsockets()

	return s.engine.Run(addr)
}

// -----------------------------------------------------------------------------

func (s *Server) Stop() error {
	close(s.broadcast)
	return nil
}

// -----------------------------------------------------------------------------
// Route Handlers
// -----------------------------------------------------------------------------

func (s *Server) postQuery(c *gin.Context) {
	var req models.MQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": fmt.Sprintf("invalid query request: %v", err)})
		return
	}

	resp, err := s.Query.QueryData(req)
	if err != nil {
		s.Logger.Error("Query batch failed: %v", err)
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, resp)
}

// -----------------------------------------------------------------------------

func (s *Server) getHealth(c *gin.Context) {
	c.JSON(200, s.Query.CheckHealth())
}
