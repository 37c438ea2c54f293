// Command devtoken prints an admin access token signed with JWT_SECRET, for
// local use against a server that has no auth service in front of it.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/timelazy/timelazy-server/internal/config"
	"github.com/timelazy/timelazy-server/internal/utils"
)

func main() {
	admin := flag.Uint64("admin", 1, "admin id placed in the sub claim")
	ttl := flag.Duration("ttl", 12*time.Hour, "token lifetime")
	flag.Parse()

	secret := config.MustEnv("JWT_SECRET")
	tok, err := utils.NewAccessToken(secret, *admin, utils.RoleAdmin, *ttl)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(tok.Token)
}
