package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

// Seeds an initial admin account and a small demo catalog. Safe to rerun;
// both upserts are keyed on their natural identifiers.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	email := getenvDefault("SEED_ADMIN_EMAIL", "admin@sweetshop.local")
	pass := getenvDefault("SEED_ADMIN_PASSWORD", "Admin1234!")

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("failed to connect db: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("failed to ping db: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pass), 10)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	now := time.Now()
	var id string
	err = db.QueryRow(`
		INSERT INTO users (id, email, password, role, created_at, updated_at)
		VALUES ($1, $2, $3, 'ADMIN', $4, $4)
		ON CONFLICT (email) DO UPDATE SET
		  password = EXCLUDED.password,
		  role = EXCLUDED.role,
		  updated_at = EXCLUDED.updated_at
		RETURNING id
	`, uuid.New().String(), email, string(hash), now).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("Seeded admin: email=%s id=%s\n", email, id)

	sweets := []struct {
		name     string
		category string
		price    float64
		quantity int
	}{
		{"Gummy Bears", "gummy", 2.50, 100},
		{"Chocolate Truffle", "chocolate", 4.75, 40},
		{"Strawberry Lollipop", "lollipop", 1.25, 250},
		{"Salted Caramel Fudge", "fudge", 3.80, 60},
	}

	for _, s := range sweets {
		_, err := db.Exec(`
			INSERT INTO sweets (id, name, category, price, quantity, created_at, updated_at)
			SELECT $1, $2, $3, $4, $5, $6, $6
			WHERE NOT EXISTS (SELECT 1 FROM sweets WHERE name = $2)
		`, uuid.New().String(), s.name, s.category, s.price, s.quantity, now)
		if err != nil {
			log.Fatalf("failed to seed sweet %q: %v", s.name, err)
		}
	}
	fmt.Printf("Seeded %d sweets\n", len(sweets))
}

func getenvDefault(k, d string) string {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	return v
}
