// contact_dump prints the contact inbox straight from the database. The HTTP
// surface exposes no public read for contact messages; operators use this.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"sangrurestate/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	limit := flag.Int("limit", 50, "max messages to print (newest first)")
	flag.Parse()

	_ = godotenv.Load()
	dsn := os.Getenv("DB_DSN")
	if strings.TrimSpace(dsn) == "" {
		log.Fatal("DB_DSN not set in env")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	var msgs []models.Contact
	if err := db.Order("created_at desc, id desc").Limit(*limit).Find(&msgs).Error; err != nil {
		log.Fatalf("query: %v", err)
	}
	for _, m := range msgs {
		fmt.Printf("[%s] #%d %s <%s>\n  %s\n  %s\n", m.CreatedAt.Format("2006-01-02 15:04"), m.ID, m.Name, m.Email, m.Subject, m.Message)
	}
	fmt.Printf("%d message(s)\n", len(msgs))
}
