// Package handler implements the HTTP handlers for the GeoJourney API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, trip.go, etc.) but all share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nkarstens/geojourney/internal/domain"
	"github.com/nkarstens/geojourney/internal/service"
	"github.com/nkarstens/geojourney/internal/session"
)

// TripServicer defines the business operations the trip handler depends on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the storage or service layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	List(ctx context.Context) []domain.Trip
	Clear(ctx context.Context)
}

// TripExporter renders the trip collection for download.
type TripExporter interface {
	CSV(ctx context.Context) ([]byte, error)
}

// ExpenseServicer defines the business operations the expense handler depends on.
type ExpenseServicer interface {
	Add(ctx context.Context, expense domain.Expense) (domain.Expense, error)
	AddFromText(ctx context.Context, text, tripID string) (domain.Expense, error)
	List(ctx context.Context) []domain.Expense
	Clear(ctx context.Context)
	Grouped(ctx context.Context) map[string][]domain.Expense
	TotalsByCurrency(ctx context.Context) map[string]float64
}

// BudgetServicer defines the business operations the budget handler depends on.
type BudgetServicer interface {
	Get(ctx context.Context) *domain.Budget
	Save(ctx context.Context, b domain.Budget) (domain.Budget, error)
	Clear(ctx context.Context)
	Progress(ctx context.Context) (domain.BudgetProgress, error)
}

// SessionController is the live tracking state machine the session handler
// drives. Satisfied by session.Tracker.
type SessionController interface {
	Start(ctx context.Context) error
	Pause() error
	Resume(ctx context.Context) error
	Stop(ctx context.Context) (domain.Trip, error)
	SetNotes(notes string)
	Snapshot() session.Snapshot
}

// FixSink receives location fixes pushed by the client device.
// Satisfied by session.PushSource.
type FixSink interface {
	Push(c domain.Coordinates)
	PushError(err error)
}

// DashboardServicer defines the aggregation and AI commentary operations the
// dashboard handler depends on.
type DashboardServicer interface {
	Summary(ctx context.Context) service.Summary
	Insights(ctx context.Context) (string, error)
	Suggest(ctx context.Context) ([]domain.Suggestion, error)
}

// Server holds the handlers' dependencies. Methods live in domain-specific
// files but all operate on this struct.
type Server struct {
	trips     TripServicer
	export    TripExporter
	expenses  ExpenseServicer
	budget    BudgetServicer
	session   SessionController
	fixes     FixSink
	dashboard DashboardServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, export TripExporter, expenses ExpenseServicer, budget BudgetServicer, sess SessionController, fixes FixSink, dashboard DashboardServicer) *Server {
	return &Server{
		trips:     trips,
		export:    export,
		expenses:  expenses,
		budget:    budget,
		session:   sess,
		fixes:     fixes,
		dashboard: dashboard,
	}
}

// Routes mounts every API endpoint on a fresh router. Middleware is wired by
// the caller around the returned handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.Health)

	r.Get("/trips", s.ListTrips)
	r.Post("/trips", s.CreateTrip)
	r.Delete("/trips", s.ClearTrips)
	r.Get("/trips/export", s.ExportTrips)

	r.Get("/expenses", s.ListExpenses)
	r.Post("/expenses", s.CreateExpense)
	r.Delete("/expenses", s.ClearExpenses)
	r.Post("/expenses/extract", s.ExtractExpense)
	r.Get("/expenses/grouped", s.GroupedExpenses)
	r.Get("/expenses/totals", s.ExpenseTotals)

	r.Get("/budget", s.GetBudget)
	r.Put("/budget", s.SaveBudget)
	r.Delete("/budget", s.ClearBudget)
	r.Get("/budget/progress", s.BudgetProgress)

	r.Get("/session", s.SessionStatus)
	r.Post("/session/start", s.StartSession)
	r.Post("/session/pause", s.PauseSession)
	r.Post("/session/resume", s.ResumeSession)
	r.Post("/session/stop", s.StopSession)
	r.Post("/session/fixes", s.PushFix)
	r.Put("/session/notes", s.SessionNotes)

	r.Get("/dashboard/summary", s.DashboardSummary)
	r.Get("/dashboard/insights", s.DashboardInsights)
	r.Get("/suggestions", s.Suggestions)

	return r
}
