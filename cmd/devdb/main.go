// main.go
//
// Vehicle catalogue and back-office API for TSE Automobiles
// Copyright (c) 2026 TSE Automobiles SARL
//
// This file is part of tse-catalogue-server.
// tse-catalogue-server is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// tse-catalogue-server is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with tse-catalogue-server.
// If not, see <https://www.gnu.org/licenses/>.

// devdb runs a throwaway MariaDB container with the catalogue schema loaded,
// for local development against a real dialect instead of sqlite.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/tse-auto/catalogue-server/data"
)

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	flag.Parse()

	usage := `
Run a disposable MariaDB container with the catalogue schema, using the
environment variables from the .env file.

Usage:

devdb [-h] [-f ENV_FILE_PATH]

ENV_FILE_PATH: path to the .env file

example
  devdb -f /path/to/something/.env
`
	if showHelp {
		fmt.Println(usage)
		return
	}

	if envFilename != "" {
		log.Printf("Loading environment variables from %s\n", envFilename)
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatalf("Failed to load environment variables: %v\n", err)
		}
	} else {
		log.Printf("No environment file specified, using current environment variables\n")
	}

	ctx := context.Background()

	image := getenv("DB_IMAGE", "mariadb:11")
	database := getenv("DB_DATABASE", "tse_catalogue")
	user := getenv("DB_USER", "catalogue")
	password := getenv("DB_PASSWORD", "catalogue")
	rootPassword := getenv("DB_ROOT_PASSWORD", "root")

	tcpPort, err := nat.NewPort("tcp", getenv("DB_PORT", "3306"))
	if err != nil {
		log.Fatalf("Failed to create DB port: %v\n", err)
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        image,
			ExposedPorts: []string{string(tcpPort)},
			Env: map[string]string{
				"MYSQL_ROOT_PASSWORD": rootPassword,
				"MYSQL_DATABASE":      database,
				"MYSQL_USER":          user,
				"MYSQL_PASSWORD":      password,
			},
			WaitingFor: wait.ForListeningPort(tcpPort).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		log.Fatalf("Failed to start MariaDB: %v\n", err)
	}

	host, _ := container.Host(ctx)
	port, _ := container.MappedPort(ctx, tcpPort)

	if err := initSchema(host, port.Port(), rootPassword, database); err != nil {
		_ = container.Terminate(ctx)
		log.Fatalf("Failed to initialize schema: %v\n", err)
	}

	log.Printf("MariaDB ready: DB_HOST=%s DB_PORT=%s DB_DATABASE=%s DB_USER=%s\n", host, port.Port(), database, user)
	log.Println("Press Ctrl+C to terminate")

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigs
	log.Printf("\nReceived signal: %v, terminating container...\n", sig)
	if err := container.Terminate(ctx); err != nil {
		log.Printf("Failed to terminate MariaDB: %v\n", err)
	}
}

// initSchema connects as root and loads the DDL so the dev database matches
// production instead of relying on auto-migration only.
func initSchema(host, port, rootPassword, database string) error {
	db, err := sql.Open("mysql", fmt.Sprintf("root:%s@tcp(%s:%s)/%s", rootPassword, host, port, database))
	if err != nil {
		return err
	}
	defer db.Close()

	for i := 0; i < 30; i++ {
		err = db.Ping()
		if err == nil {
			break
		}
		time.Sleep(1 * time.Second)
	}
	if err != nil {
		return fmt.Errorf("MariaDB not ready after 30 seconds: %w", err)
	}

	return executeSQL(db, data.InitdbMariaDBTables)
}

// executeSQL runs a semicolon-separated DDL script statement by statement,
// skipping line comments.
func executeSQL(db *sql.DB, script string) error {
	var clean []string
	for _, line := range strings.Split(script, "\n") {
		if trimmed := strings.TrimSpace(line); strings.HasPrefix(trimmed, "--") {
			continue
		}
		clean = append(clean, line)
	}

	queries := strings.Split(strings.Join(clean, "\n"), ";")
	for _, q := range queries {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.Exec(q); err != nil {
			return fmt.Errorf("%s : when executing > %s", err.Error(), q)
		}
	}
	return nil
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
