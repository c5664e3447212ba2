package main

import (
	"log"
	"net/http"
	"os"

	"github.com/localfinds/discovery-engine/internal/authenticity"
	"github.com/localfinds/discovery-engine/internal/domain"
	"github.com/localfinds/discovery-engine/internal/httpapi"
	"github.com/localfinds/discovery-engine/internal/pairing"
	"github.com/localfinds/discovery-engine/internal/search"
	"github.com/localfinds/discovery-engine/internal/storage"
)

type Config struct {
	Address        string
	CandidatesPath string
	ScoringPath    string
	DBPath         string
}

func main() {
	cfg := loadConfig()

	scoring, err := authenticity.LoadConfigFromFile(cfg.ScoringPath)
	if err != nil {
		log.Printf("use default scoring config (reason: %v)", err)
		scoring = authenticity.DefaultConfig()
	}

	candidates, repo, cleanup := loadPool(cfg)
	defer cleanup()
	log.Printf("candidate pool: %d businesses", len(candidates))

	srv := httpapi.NewServer(
		authenticity.NewClassifier(scoring),
		search.NewExpander(),
		pairing.NewEngine(pairing.DefaultConfig()),
		candidates,
	)
	srv.Repo = repo

	log.Printf("API listening on %s", cfg.Address)
	if err := http.ListenAndServe(cfg.Address, srv.Routes()); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// loadPool opens the sqlite cache, seeds it from the JSON file when empty,
// and returns the full in-memory pool for scoring.
func loadPool(cfg Config) ([]domain.BusinessCandidate, httpapi.CandidateLister, func()) {
	store, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	if err := store.EnsureSchema(); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}

	n, err := store.CountCandidates()
	if err != nil {
		log.Fatalf("count candidates: %v", err)
	}
	if n == 0 {
		seed, err := storage.LoadCandidatesFromFile(cfg.CandidatesPath)
		if err != nil {
			log.Fatalf("load candidates: %v", err)
		}
		if err := store.UpsertMany(seed); err != nil {
			log.Fatalf("seed store: %v", err)
		}
		log.Printf("seeded store with %d candidates from %s", len(seed), cfg.CandidatesPath)
	}

	candidates, err := store.AllCandidates()
	if err != nil {
		log.Fatalf("read candidates: %v", err)
	}

	repo := &httpapi.SQLiteCandidatesRepo{Store: store}
	return candidates, repo, func() { _ = store.Close() }
}

func loadConfig() Config {
	return Config{
		Address:        getEnv("API_ADDRESS", ":8080"),
		CandidatesPath: getEnv("CANDIDATES_PATH", "data/candidates.json"),
		ScoringPath:    getEnv("SCORING_PATH", "configs/scoring.yaml"),
		DBPath:         getEnv("DB_PATH", "discovery.db"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
