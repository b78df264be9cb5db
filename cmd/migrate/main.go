package main

import (
	"log"
	"os"

	"flight380/cfg"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	config, err := cfg.Load()
	if err != nil {
		log.Fatal(err)
	}

	m, err := migrate.New("file://db/migrations", config.Postgres.DSN())
	if err != nil {
		log.Fatal(err)
	}

	direction := "up"
	if len(os.Args) > 1 {
		direction = os.Args[1]
	}

	switch direction {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	default:
		log.Fatalf("unknown direction %q, want up or down", direction)
	}

	if err != nil && err != migrate.ErrNoChange {
		log.Fatal(err)
	}
	log.Println("migrations applied")
}
