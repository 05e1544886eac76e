package routes

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/hlog"

	"github.com/briangreenhill/govtrack/govtrack"
	appmw "github.com/briangreenhill/govtrack/internal/http/middleware"
	"github.com/briangreenhill/govtrack/internal/queries"
)

type Server struct {
	Router  *chi.Mux
	Client  *govtrack.Client
	Queries *queries.Registry
}

type ServerOptions struct {
	Client   *govtrack.Client
	Gatherer prometheus.Gatherer // nil disables /metrics
}

type queryResponse struct {
	Query   string         `json:"query"`
	Arg     string         `json:"arg"`
	Mode    string         `json:"mode"`
	Results queries.Result `json:"results"`
}

type errorResponse struct {
	Error string             `json:"error"`
	Kind  govtrack.ErrorKind `json:"kind,omitempty"`
}

func New(opts ServerOptions) *Server {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(appmw.StampMode(opts.Client))

	s := &Server{Router: r, Client: opts.Client, Queries: queries.ForClient(opts.Client)}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("ok")); err != nil {
			hlog.FromRequest(r).Error().Err(err).Msg("write health check response")
		}
	})
	if opts.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Get("/api/queries", s.handleList)
	r.Get("/api/{query}", s.handleQuery)

	return s
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	type entry struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	out := []entry{}
	for _, name := range s.Queries.List() {
		q, _ := s.Queries.Get(name)
		out = append(out, entry{Name: name, Description: q.Description()})
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "query")
	q, ok := s.Queries.Get(name)
	if !ok {
		writeJSON(w, r, http.StatusNotFound, errorResponse{Error: "unknown query " + name})
		return
	}

	arg := r.URL.Query().Get("q")
	res, err := q.Run(r.Context(), arg)
	if err != nil {
		kind := govtrack.KindOf(err)
		hlog.FromRequest(r).Warn().Err(err).Str("query", name).Str("kind", string(kind)).Msg("query failed")
		writeJSON(w, r, statusFor(kind), errorResponse{Error: err.Error(), Kind: kind})
		return
	}

	if r.URL.Query().Get("format") == "markdown" {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		if _, err := w.Write([]byte(res.Markdown())); err != nil {
			hlog.FromRequest(r).Error().Err(err).Msg("write markdown response")
		}
		return
	}
	writeJSON(w, r, http.StatusOK, queryResponse{Query: name, Arg: arg, Mode: s.Client.Mode(), Results: res})
}

func statusFor(kind govtrack.ErrorKind) int {
	switch kind {
	case govtrack.KindInvalidQuery:
		return http.StatusBadRequest
	case govtrack.KindQuery, govtrack.KindMalformedResponse, govtrack.KindIncompleteData:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("encode response")
	}
}
