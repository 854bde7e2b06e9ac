package session

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
)

const (
	flashCookie = "flash"
	pendingKey  = "flash.pending"
)

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Category string `json:"c"`
	Message  string `json:"m"`
}

// AddFlash queues a message for the current request.
func AddFlash(c *gin.Context, category, message string) {
	c.Set(pendingKey, append(pending(c), Flash{Category: category, Message: message}))
}

// SaveFlashes carries queued messages across a redirect.
func SaveFlashes(c *gin.Context) {
	msgs := pending(c)
	if len(msgs) == 0 {
		return
	}
	if prev := fromCookie(c); len(prev) > 0 {
		msgs = append(prev, msgs...)
	}
	b, err := json.Marshal(msgs)
	if err != nil {
		return
	}
	c.SetCookie(flashCookie, string(b), 300, "/", "", false, true)
	c.Set(pendingKey, []Flash(nil))
}

// Flashes returns stored and queued messages and clears both.
func Flashes(c *gin.Context) []Flash {
	msgs := append(fromCookie(c), pending(c)...)
	if _, err := c.Cookie(flashCookie); err == nil {
		c.SetCookie(flashCookie, "", -1, "/", "", false, true)
	}
	c.Set(pendingKey, []Flash(nil))
	return msgs
}

func pending(c *gin.Context) []Flash {
	v, _ := c.Get(pendingKey)
	msgs, _ := v.([]Flash)
	return msgs
}

func fromCookie(c *gin.Context) []Flash {
	raw, err := c.Cookie(flashCookie)
	if err != nil || raw == "" {
		return nil
	}
	var msgs []Flash
	if err := json.Unmarshal([]byte(raw), &msgs); err != nil {
		return nil
	}
	return msgs
}
