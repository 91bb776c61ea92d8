package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /api/entries/status", handler.GetEntryStatus)
	mux.HandleFunc("POST /api/entries", handler.SubmitEntry)
	mux.HandleFunc("GET /api/standings", handler.GetStandings)
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /api/admin/login", handler.Login)

	mux.HandleFunc("GET /api/admin/tournament", handler.GetTournament)
	mux.HandleFunc("POST /api/admin/advance-team", handler.AdvanceTeam)
	mux.HandleFunc("POST /api/admin/advance-to-final", handler.AdvanceToFinal)
	mux.HandleFunc("POST /api/admin/declare-champion", handler.DeclareChampion)
	mux.HandleFunc("POST /api/admin/undo-advancement", handler.UndoAdvancement)
	mux.HandleFunc("POST /api/admin/reset-tournament", handler.ResetTournament)
	mux.HandleFunc("POST /api/admin/update-scores", handler.UpdateScores)

	mux.HandleFunc("GET /api/admin/entries", handler.ListAdminEntries)
	mux.HandleFunc("PUT /api/admin/entry/{entryID}", handler.UpdateEntry)
	mux.HandleFunc("PUT /api/admin/entry/{entryID}/payment", handler.UpdateEntryPayment)
	mux.HandleFunc("DELETE /api/admin/entry/{entryID}", handler.DeleteEntry)

	mux.HandleFunc("GET /api/admin/entry-status", handler.GetEntryStatus)
	mux.HandleFunc("POST /api/admin/toggle-entry-status", handler.ToggleEntryStatus)
	mux.HandleFunc("GET /api/admin/team-visibility", handler.GetTeamVisibility)
	mux.HandleFunc("POST /api/admin/toggle-team-visibility", handler.ToggleTeamVisibility)
	mux.HandleFunc("GET /api/admin/final-four-matchups", handler.GetFinalFourMatchups)
	mux.HandleFunc("POST /api/admin/final-four-matchups", handler.SaveFinalFourMatchups)

	mux.HandleFunc("GET /api/communications/recipients", handler.ListRecipients)
	mux.HandleFunc("POST /api/communications/send", handler.SendBulkMail)
}
