// Package web serves the local dashboard API: the same room, link and
// sync operations the CLI exposes, for a browser on the same machine.
package web

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/mkosler/linkcast/internal/config"
	"github.com/mkosler/linkcast/internal/domain"
	"github.com/mkosler/linkcast/internal/link"
	"github.com/mkosler/linkcast/internal/obs"
	"github.com/mkosler/linkcast/internal/store"
)

// Server owns the settings document while the dashboard runs. gin
// serves requests concurrently, so mutations take the lock even though
// the tool is conceptually single-user.
type Server struct {
	mu       sync.Mutex
	settings store.Settings
	path     string
	obsConf  config.OBSOverrides
}

func New(settings store.Settings, path string, obsConf config.OBSOverrides) *Server {
	return &Server{settings: settings, path: path, obsConf: obsConf}
}

func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	api.GET("/room", s.getRoom)
	api.PUT("/room", s.putRoom)
	api.GET("/links", s.getLinks)
	api.POST("/players", s.addPlayer)
	api.DELETE("/players/:username", s.removePlayer)
	api.POST("/obs/sync", s.syncOBS)

	log.Info().Str("module", "web").Msg("router setup")
	return r
}

func (s *Server) getRoom(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.settings.Room)
}

type roomRequest struct {
	Name          string `json:"room"`
	Password      string `json:"password"`
	Exclude       bool   `json:"exclude_password"`
	HostUsername  string `json:"host_username"`
	HostCharacter string `json:"host_character"`
}

func (s *Server) putRoom(c *gin.Context) {
	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room body"})
		return
	}
	policy := domain.PolicyInclude
	if req.Exclude {
		policy = domain.PolicyExclude
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.Room.SetRoom(req.Name, req.Password, policy)
	s.settings.Room.SetHost(req.HostUsername, req.HostCharacter)
	if !s.persist(c) {
		return
	}
	c.JSON(http.StatusOK, s.settings.Room)
}

type playerLinks struct {
	Username    string `json:"username"`
	Character   string `json:"character"`
	DisplayName string `json:"display_name"`
	RoomLink    string `json:"room_link"`
	SoloLink    string `json:"solo_link"`
}

func (s *Server) getLinks(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room := &s.settings.Room
	host, err := link.HostLink(room)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	players := make([]playerLinks, 0, room.Roster.Len())
	for _, p := range room.Players() {
		roomLink, err := link.PlayerLink(room, p.Username)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		solo, err := link.SoloLink(room, p.Username)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		players = append(players, playerLinks{
			Username:    p.Username,
			Character:   p.Character,
			DisplayName: p.DisplayName(),
			RoomLink:    roomLink,
			SoloLink:    solo,
		})
	}
	c.JSON(http.StatusOK, gin.H{"director": host, "players": players})
}

type playerRequest struct {
	Username  string `json:"username"`
	Character string `json:"character"`
}

func (s *Server) addPlayer(c *gin.Context) {
	var req playerRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing or invalid username"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.Room.AddPlayer(req.Username, req.Character)
	if !s.persist(c) {
		return
	}
	c.JSON(http.StatusOK, s.settings.Room)
}

func (s *Server) removePlayer(c *gin.Context) {
	username := c.Param("username")

	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.Room.RemovePlayer(username)
	if !s.persist(c) {
		return
	}
	c.JSON(http.StatusOK, s.settings.Room)
}

func (s *Server) syncOBS(c *gin.Context) {
	s.mu.Lock()
	links, err := link.RoomLinks(&s.settings.Room)
	conn := s.settings.OBS.Override(s.obsConf.Host, s.obsConf.Port, s.obsConf.Password)
	s.mu.Unlock()
	if err != nil {
		if errors.Is(err, domain.ErrRoomNotConfigured) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	client, err := obs.Connect(c.Request.Context(), conn.Host, conn.Port, conn.Password)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	defer client.Close()

	if err := obs.NewBridge(client).Sync(links); err != nil {
		log.Error().Err(err).Str("module", "web").Msg("obs sync failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"synced": len(links)})
}

// persist saves the settings document after a mutation; on failure it
// writes the error response and reports false.
func (s *Server) persist(c *gin.Context) bool {
	if err := store.Save(s.settings, s.path); err != nil {
		log.Error().Err(err).Str("module", "web").Msg("settings save failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return false
	}
	return true
}
