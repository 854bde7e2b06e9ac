// Gen-session prints a session cookie value for a user id, for poking at the
// app with curl. Run from project root: go run ./scripts/gen-session <user-id>
package main

import (
	"fmt"
	"os"
	"strconv"

	"todo-web/internal/config"
	"todo-web/internal/session"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: gen-session <user-id>")
		os.Exit(2)
	}
	id, err := strconv.ParseInt(os.Args[1], 10, 64)
	if err != nil {
		fmt.Fprintln(os.Stderr, "bad user id:", err)
		os.Exit(2)
	}

	cfg := config.Get()
	mgr, err := session.NewManager(session.Options{Secret: cfg.SessionSecret, TTL: cfg.SessionTTL})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	token, err := mgr.Token(id)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("%s=%s\n", session.CookieName, token)
}
