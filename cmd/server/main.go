package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	emailPkg "kinetic/internal/adapters/email"
	web "kinetic/internal/adapters/http"
	"kinetic/internal/adapters/http/perf"
	diaryStore "kinetic/internal/adapters/storage/diary"
	"kinetic/internal/adapters/storage/kv"
	recordStore "kinetic/internal/adapters/storage/record"
	sessionStore "kinetic/internal/adapters/storage/session"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// .env is optional; real deployments set env vars directly
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded .env")
	}

	// Initialize database with WAL mode and busy timeout
	dbPath := envOrDefault("KINETIC_DB", "kinetic.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}
	if err := kv.InitSchema(db); err != nil {
		log.Fatalf("failed to initialize schema: %v", err)
	}
	log.Println("Database initialized successfully!")

	// Performance instrumentation: wrap the kv backend, create collector
	collector := perf.NewCollector(perf.DefaultRingSize)
	backend := kv.NewTimedStore(kv.NewSQLiteStore(db), collector)

	// The director account is created on first load of the aggregate.
	seed := recordStore.DefaultSeed()
	if v := os.Getenv("KINETIC_DIRECTOR_EMAIL"); v != "" {
		seed.DirectorEmail = v
	}
	if v := os.Getenv("KINETIC_DIRECTOR_PASSWORD"); v != "" {
		seed.DirectorPassword = v
	} else if os.Getenv("KINETIC_ENV") == "production" {
		log.Fatal("KINETIC_DIRECTOR_PASSWORD is required in production")
	}

	stores := &web.Stores{
		Records:  recordStore.NewStore(backend, seed),
		Sessions: sessionStore.NewStore(backend),
		Diary:    diaryStore.NewStore(backend),
	}

	// Configure email sender
	resendKey := os.Getenv("KINETIC_RESEND_KEY")
	emailFrom := envOrDefault("KINETIC_RESEND_FROM", "Kinetic Kids <noreply@kinetickids.school>")
	if resendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(resendKey, emailFrom), emailFrom)
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender(), emailFrom)
		if os.Getenv("KINETIC_ENV") == "production" {
			log.Println("WARNING: KINETIC_RESEND_KEY is not set — email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop — set KINETIC_RESEND_KEY for real delivery)")
		}
	}

	// Create HTTP handler with middleware (pass collector for timing + dashboard)
	mux := web.NewMux("static", stores, collector)

	addr := envOrDefault("KINETIC_ADDR", ":8080")
	log.Printf("Kinetic Kids %s starting on %s (env=%s)", version, addr, envOrDefault("KINETIC_ENV", "development"))

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
