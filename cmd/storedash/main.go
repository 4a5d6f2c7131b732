package main

import (
	"log"

	"storedash/internal/config"
	"storedash/internal/http/handlers"
	applog "storedash/internal/log"
	"storedash/internal/querycache"
	"storedash/internal/repos"
)

func main() {
	cfg := config.Load()

	// stdout plus rotated file
	sink := applog.Setup(cfg.LogFile)
	defer sink.Close()

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	// One cache for the whole process so invalidation crosses page loads
	cache := querycache.New()
	deps := handlers.NewDeps(db, cfg, cache)

	engine := handlers.NewEngine(cfg.Templates)
	engine.Reload(true)

	app := handlers.NewApp(deps, engine, handlers.DefaultAppOptions())
	log.Printf("[app] %s dashboard on :%s (api %s, orders %s)", cfg.ShopName, cfg.Port, cfg.APIURL, cfg.OrdersAPIURL)
	log.Fatal(app.Listen(":" + cfg.Port))
}
