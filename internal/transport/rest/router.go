package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/library-backend/internal/config"
	"github.com/heartmarshall/library-backend/internal/transport/middleware"
)

// fullAuthService is the auth dependency of the router: the register/login
// handlers plus token validation for the middleware chain.
type fullAuthService interface {
	authService
	ValidateToken(ctx context.Context, token string) (uuid.UUID, error)
}

// Deps bundles the dependencies of the HTTP router.
type Deps struct {
	Log     *slog.Logger
	Auth    fullAuthService
	Catalog catalogService
	Loans   circulationService
	DB      dbPinger
	Version string
	CORS    config.CORSConfig
}

// NewRouter builds the full HTTP handler: health endpoint plus the /api/v1
// and /api/v2 mounts. The mounts share handlers and differ only in the
// notification_sent presentation flag on loan responses.
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	health := NewHealthHandler(d.DB, d.Version)
	mux.HandleFunc("GET /healthz", health.Health)

	mount(mux, "v1", d, false)
	mount(mux, "v2", d, true)

	chain := middleware.Chain(
		middleware.RequestID,
		middleware.Logger(d.Log),
		middleware.Recovery(d.Log),
		middleware.CORS(d.CORS),
		middleware.Auth(d.Auth),
	)
	return chain(mux)
}

func mount(mux *http.ServeMux, version string, d Deps, eagerNotify bool) {
	prefix := "/api/" + version

	authH := NewAuthHandler(d.Auth, d.Log)
	booksH := NewBooksHandler(d.Catalog, d.Log)
	loansH := NewLoansHandler(d.Loans, d.Log, eagerNotify)

	mux.HandleFunc("POST "+prefix+"/auth/register", authH.Register)
	mux.HandleFunc("POST "+prefix+"/auth/login", authH.Login)

	mux.Handle("POST "+prefix+"/books", middleware.RequireAuth(http.HandlerFunc(booksH.Create)))
	mux.HandleFunc("GET "+prefix+"/books/{id}", booksH.Get)

	mux.Handle("POST "+prefix+"/borrow", middleware.RequireAuth(http.HandlerFunc(loansH.Borrow)))
	mux.Handle("POST "+prefix+"/borrow/{id}/return", middleware.RequireAuth(http.HandlerFunc(loansH.Return)))
	mux.Handle("GET "+prefix+"/borrow/member/{id}", middleware.RequireAuth(http.HandlerFunc(loansH.ListByMember)))
}
