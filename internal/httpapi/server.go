package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/localfinds/discovery-engine/internal/authenticity"
	"github.com/localfinds/discovery-engine/internal/domain"
	"github.com/localfinds/discovery-engine/internal/pairing"
	"github.com/localfinds/discovery-engine/internal/search"
)

// ListParams are the supported /businesses list filters.
type ListParams struct {
	Limit     int
	Offset    int
	Category  string
	MinRating float64
}

// CandidateLister serves paged candidate listings; the sqlite-backed
// implementation lives in candidates_repo.go.
type CandidateLister interface {
	List(p ListParams) ([]domain.BusinessCandidate, int)
}

// Server exposes the discovery engine to the web application. The engine
// itself stays pure; all boundary validation happens here.
type Server struct {
	Classifier *authenticity.Classifier
	Expander   *search.Expander
	Pairer     *pairing.Engine
	Candidates []domain.BusinessCandidate
	Repo       CandidateLister // optional; falls back to Candidates
}

func NewServer(classifier *authenticity.Classifier, expander *search.Expander, pairer *pairing.Engine, candidates []domain.BusinessCandidate) *Server {
	return &Server{
		Classifier: classifier,
		Expander:   expander,
		Pairer:     pairer,
		Candidates: candidates,
	}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/local", s.handleLocal)
	mux.HandleFunc("/search", s.handleSearch)
	mux.HandleFunc("/businesses", s.handleBusinesses)
	mux.HandleFunc("/businesses/", s.handleBusinessByID)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type LocalResponse struct {
	Total   int                  `json:"total"`
	Results []domain.LocalResult `json:"results"`
}

func (s *Server) handleLocal(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	results := s.Classifier.FilterAndRank(s.Candidates)
	total := len(results)

	if v := r.URL.Query().Get("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil && limit > 0 && limit < len(results) {
			results = results[:limit]
		}
	}

	writeJSON(w, http.StatusOK, LocalResponse{Total: total, Results: results})
}

type SearchResponse struct {
	Expansion domain.QueryExpansion      `json:"expansion"`
	Results   []domain.BusinessCandidate `json:"results"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query().Get("q")
	expansion := s.Expander.Expand(q)
	results := search.Rank(s.Candidates, expansion)

	// local=1 intersects the ranked results with the classifier verdicts.
	if r.URL.Query().Get("local") == "1" {
		localIDs := make(map[string]bool)
		for _, lr := range s.Classifier.FilterAndRank(s.Candidates) {
			localIDs[lr.ID] = true
		}
		filtered := results[:0:0]
		for _, c := range results {
			if localIDs[c.ID] {
				filtered = append(filtered, c)
			}
		}
		results = filtered
	}

	writeJSON(w, http.StatusOK, SearchResponse{Expansion: expansion, Results: results})
}

type BusinessListResponse struct {
	Limit  int                        `json:"limit"`
	Offset int                        `json:"offset"`
	Total  int                        `json:"total"`
	Items  []domain.BusinessCandidate `json:"items"`
}

func (s *Server) handleBusinesses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleBusinessCreate(w, r)
	case http.MethodGet:
		s.handleBusinessList(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleBusinessList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, offset := parseLimitOffset(r, 20, 0)
	minRating, _ := strconv.ParseFloat(q.Get("min_rating"), 64)

	params := ListParams{
		Limit:     limit,
		Offset:    offset,
		Category:  q.Get("category"),
		MinRating: minRating,
	}

	var items []domain.BusinessCandidate
	var total int
	if s.Repo != nil {
		items, total = s.Repo.List(params)
	} else {
		items, total = listFromSlice(s.Candidates, params)
	}

	if items == nil {
		items = []domain.BusinessCandidate{}
	}
	writeJSON(w, http.StatusOK, BusinessListResponse{
		Limit:  limit,
		Offset: offset,
		Total:  total,
		Items:  items,
	})
}

func listFromSlice(pool []domain.BusinessCandidate, p ListParams) ([]domain.BusinessCandidate, int) {
	var filtered []domain.BusinessCandidate
	for _, c := range pool {
		if p.Category != "" && c.Category != domain.ParseCategory(p.Category) {
			continue
		}
		if p.MinRating > 0 && c.Rating < p.MinRating {
			continue
		}
		filtered = append(filtered, c)
	}

	total := len(filtered)
	if p.Offset > total {
		p.Offset = total
	}
	end := p.Offset + p.Limit
	if end > total {
		end = total
	}
	return filtered[p.Offset:end], total
}

func (s *Server) handleBusinessCreate(w http.ResponseWriter, r *http.Request) {
	var req domain.BusinessCandidate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	// Schema validation happens at this boundary, never inside the engine.
	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	if req.ID == "" {
		req.ID = "b-" + uuid.NewString()
	}
	req.Category = domain.ParseCategory(string(req.Category))

	s.Candidates = append(s.Candidates, req)
	writeJSON(w, http.StatusCreated, req)
}

func (s *Server) handleBusinessByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/businesses/")
	if rest == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing_id"})
		return
	}

	id := rest
	action := ""
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		id, action = rest[:i], rest[i+1:]
	}

	switch action {
	case "":
		s.handleBusinessGetOrDelete(w, r, id)
	case "pairings":
		s.handlePairings(w, r, id)
	case "routes":
		s.handleRoutes(w, r, id)
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found"})
	}
}

func (s *Server) handleBusinessGetOrDelete(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodGet:
		if c, ok := s.findCandidate(id); ok {
			writeJSON(w, http.StatusOK, c)
			return
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found"})

	case http.MethodDelete:
		for i, c := range s.Candidates {
			if c.ID == id {
				s.Candidates = append(s.Candidates[:i], s.Candidates[i+1:]...)
				writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found"})

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

type PairingsResponse struct {
	SourceID string                     `json:"source_id"`
	Pairings []domain.PairingSuggestion `json:"pairings"`
}

func (s *Server) handlePairings(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	source, ok := s.findCandidate(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found"})
		return
	}

	opts := pairing.DefaultPairOptions()
	q := r.URL.Query()
	if v, err := strconv.ParseFloat(q.Get("max_distance"), 64); err == nil && v > 0 {
		opts.MaxDistanceMiles = v
	}
	if v, err := strconv.ParseFloat(q.Get("min_distance"), 64); err == nil && v >= 0 {
		opts.MinDistanceMiles = v
	}

	pairs := s.Pairer.FindPairs(source, s.Candidates, opts)
	if pairs == nil {
		pairs = []domain.PairingSuggestion{}
	}
	writeJSON(w, http.StatusOK, PairingsResponse{SourceID: id, Pairings: pairs})
}

type RoutesResponse struct {
	StartID string         `json:"start_id"`
	Routes  []domain.Route `json:"routes"`
}

func (s *Server) handleRoutes(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	start, ok := s.findCandidate(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found"})
		return
	}

	maxTotal := pairing.DefaultMaxRouteMiles
	if v, err := strconv.ParseFloat(r.URL.Query().Get("max_total"), 64); err == nil && v > 0 {
		maxTotal = v
	}

	routes := s.Pairer.FindRoute(start, s.Candidates, maxTotal)
	if routes == nil {
		routes = []domain.Route{}
	}
	writeJSON(w, http.StatusOK, RoutesResponse{StartID: id, Routes: routes})
}

func (s *Server) findCandidate(id string) (domain.BusinessCandidate, bool) {
	for _, c := range s.Candidates {
		if c.ID == id {
			return c, true
		}
	}
	return domain.BusinessCandidate{}, false
}

func parseLimitOffset(r *http.Request, defLimit, defOffset int) (int, int) {
	q := r.URL.Query()

	limit := defLimit
	if v := q.Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit <= 0 {
		limit = defLimit
	}
	// safety cap
	if limit > 200 {
		limit = 200
	}

	offset := defOffset
	if v := q.Get("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = defOffset
	}

	return limit, offset
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
