// Command token mints a signed JWT for local testing against the API.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/linskybing/programhub/internal/api/middleware"
	"github.com/linskybing/programhub/internal/config"
	"github.com/linskybing/programhub/pkg/logger"
)

func main() {
	userID := flag.Uint("user", 1, "user id placed in the token")
	username := flag.String("name", "dev", "username placed in the token")
	admin := flag.Bool("admin", false, "grant admin rights")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	config.LoadConfig()
	logger.Init(config.LogLevel, config.LogFormat)
	middleware.Init()

	token, err := middleware.GenerateToken(uint(*userID), *username, *admin, *ttl)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to sign token")
		os.Exit(1)
	}
	fmt.Println(token)
}
