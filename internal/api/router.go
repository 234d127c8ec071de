package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"paytrack/internal/config"
	"paytrack/internal/constants"
)

// ApiDependencies contains the dependencies for the API handlers.
type ApiDependencies struct {
	Config    *config.Config
	SecretKey string
}

var deps ApiDependencies

// SetupRoutes wires every API route onto the router.
func SetupRoutes(r *chi.Mux, d ApiDependencies) {
	deps = d

	r.NotFound(NotFoundHandler)

	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSONSuccess(w, "ok", nil)
	})

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", Register)
		r.Post("/login", Login)
		r.Post("/request-otp", RequestOTP)
		r.Post("/verify-otp", VerifyOTP)
		r.With(AuthMiddleware(d.SecretKey)).Post("/telegram/link", LinkTelegram)
	})

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(d.SecretKey))

		r.Post("/api/telegram/link", LinkTelegram)

		r.Route("/api/workers", func(r chi.Router) {
			r.Get("/", ListWorkers)
			r.Post("/", CreateWorker)
			r.Get("/{id}", GetWorker)
			r.Put("/{id}", UpdateWorker)
			r.With(RoleMiddleware(constants.ROLE_ADMIN)).Delete("/{id}", DeleteWorker)
			r.Get("/{id}/payments", ListWorkerPaymentHistory)
			r.Get("/{id}/attendance", ListWorkerAttendanceHistory)
		})

		r.Route("/api/attendance", func(r chi.Router) {
			r.Get("/", ListAttendance)
			r.Post("/", CreateAttendance)
			r.Get("/{id}", GetAttendance)
			r.Put("/{id}", UpdateAttendance)
			r.Delete("/{id}", DeleteAttendance)
		})

		r.Route("/api/payments", func(r chi.Router) {
			r.Get("/", ListPayments)
			r.Post("/", CreatePayment)
			r.Get("/{id}", GetPayment)
			r.Put("/{id}", UpdatePayment)
			r.With(RoleMiddleware(constants.ROLE_ADMIN)).Delete("/{id}", DeletePayment)
			r.Get("/{id}/qr", PaymentQR)
		})

		// The category=worker view of the same ledger.
		r.Route("/api/worker-payments", func(r chi.Router) {
			r.Get("/", ListWorkerPayments)
			r.Post("/", CreateWorkerPayment)
		})

		r.Route("/api/persons", func(r chi.Router) {
			r.Get("/", ListPersons)
			r.Post("/", CreatePerson)
			r.Get("/{id}", GetPerson)
			r.Put("/{id}", UpdatePerson)
			r.With(RoleMiddleware(constants.ROLE_ADMIN)).Delete("/{id}", DeletePerson)
		})

		r.Route("/api/cultivations", func(r chi.Router) {
			r.Get("/", ListCultivations)
			r.Post("/", CreateCultivation)
			r.Get("/{id}", GetCultivation)
			r.Put("/{id}", UpdateCultivation)
			r.With(RoleMiddleware(constants.ROLE_ADMIN)).Delete("/{id}", DeleteCultivation)
		})

		r.Route("/api/properties", func(r chi.Router) {
			r.Get("/", ListProperties)
			r.Post("/", CreateProperty)
			r.Get("/{id}", GetProperty)
			r.Put("/{id}", UpdateProperty)
			r.With(RoleMiddleware(constants.ROLE_ADMIN)).Delete("/{id}", DeleteProperty)
		})

		r.Route("/api/meel", func(r chi.Router) {
			r.Get("/", ListMeel)
			r.Post("/", CreateMeel)
			r.Get("/{id}", GetMeel)
			r.Put("/{id}", UpdateMeel)
			r.With(RoleMiddleware(constants.ROLE_ADMIN)).Delete("/{id}", DeleteMeel)
		})

		r.Route("/api/analytics", func(r chi.Router) {
			r.Get("/summary", GetSummary)
			r.Get("/cultivations", GetCultivationAnalytics)
			r.Get("/attendance", GetAttendanceAnalytics)
			r.Get("/meel", GetMeelAnalytics)
		})

		r.Route("/api/export", func(r chi.Router) {
			r.Get("/payments.xlsx", ExportPayments)
			r.Get("/attendance.xlsx", ExportAttendance)
		})
	})
}
