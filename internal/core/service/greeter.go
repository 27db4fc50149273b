package service

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Greeter remembers which users already received the onboarding message. State lives for the process lifetime.
type Greeter struct {
	greeted *sync.Map
}

func NewGreeter() *Greeter {
	return &Greeter{greeted: &sync.Map{}}
}

func (g *Greeter) ShouldGreet(userID int64) bool {
	_, loaded := g.greeted.LoadOrStore(userID, struct{}{})
	if !loaded {
		log.Debug().Int64("userId", userID).Msg("greeting new user")
	}

	return !loaded
}

func (g *Greeter) MarkGreeted(userID int64) {
	g.greeted.Store(userID, struct{}{})
}
