package auth

import (
	"server/db"
	"server/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const guardIdKey = "id"

type Session struct {
	sessions.Session
}

func LoadSession(c *gin.Context) *Session {
	return &Session{
		Session: sessions.Default(c),
	}
}

func (s *Session) LogoutGuard() {
	s.Delete(guardIdKey)
	s.Clear()
	s.Options(sessions.Options{Path: "/", MaxAge: -1})
	s.Save()
}

func (s *Session) Guard() (guard models.Guard) {
	id := s.Get(guardIdKey)
	if id == nil {
		return
	}
	guard.ID = id.(uint64)
	if db.Instance.Preload("Grants").Preload("Site").First(&guard).Error != nil {
		guard.ID = 0
	}
	return
}
