// Scans certification records and notifies scientists whose training
// expires within the warning window. Intended to run from cron once a day.
package main

import (
	"iris-api/config"
	"iris-api/services"
	"log"
	"time"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize database
	config.InitDB()

	sent, err := services.NotifyExpiringCertifications(config.DB, time.Now())
	if err != nil {
		log.Fatal("Expiry scan failed:", err)
	}

	log.Printf("Expiry scan completed, %d notification(s) sent\n", sent)
}
