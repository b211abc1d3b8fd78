package main

import (
	"encoding/json"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/Simplici0/roicalc/internal/report"
	"github.com/Simplici0/roicalc/internal/roi"
	"github.com/Simplici0/roicalc/internal/scenario"
	"github.com/Simplici0/roicalc/web"
)

type server struct {
	auth      *authService
	scenarios *scenario.Store
	logger    *zap.Logger
}

type baseViewData struct {
	ErrorMessage   string
	SuccessMessage string
	Authenticated  bool
}

type calculatorViewData struct {
	baseViewData
	Inputs      []inputField
	Display     report.Display
	Assumptions []string
	Title       string
	Notes       string
}

type loginViewData struct {
	baseViewData
}

type scenariosViewData struct {
	baseViewData
	Query     string
	Scenarios []scenario.ListItem
}

type scenarioViewData struct {
	baseViewData
	Scenario scenario.Scenario
	Rows     []report.Row
	Query    template.URL
}

var templateFuncs = template.FuncMap{
	"currency": report.Currency,
	"percent":  report.Percent,
	"months":   report.Months,
}

func (s *server) routes(corsOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger))

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(web.Static()))))
	r.Get("/healthz", s.handleHealth)
	r.Get("/", s.handleCalculator)

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type"},
			MaxAge:         300,
		}))
		r.Get("/roi", s.handleAPIROI)
		r.Post("/roi", s.handleAPIROI)
	})

	r.Get("/login", s.handleLoginForm)
	r.Post("/login", s.handleLoginSubmit)
	r.Post("/logout", s.handleLogout)

	r.Group(func(r chi.Router) {
		r.Use(s.auth.requireAuth)
		r.Get("/scenarios", s.handleScenariosList)
		r.Post("/scenarios", s.handleScenarioCreate)
		r.Get("/scenarios/{id}", s.handleScenarioDetail)
		r.Get("/scenarios/{id}/text", s.handleScenarioText)
		r.Get("/scenarios/{id}/markdown", s.handleScenarioMarkdown)
		r.Post("/scenarios/{id}/delete", s.handleScenarioDelete)
	})

	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}

func (s *server) base(r *http.Request) baseViewData {
	_, ok := s.auth.currentUser(r)
	return baseViewData{
		ErrorMessage:   r.URL.Query().Get("error"),
		SuccessMessage: r.URL.Query().Get("success"),
		Authenticated:  ok,
	}
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleCalculator(w http.ResponseWriter, r *http.Request) {
	base := s.base(r)
	status := http.StatusOK

	profile, err := parseProfileValues(r.URL.Query())
	if err != nil {
		status = http.StatusBadRequest
		base.ErrorMessage = err.Error()
	}
	result := roi.Compute(profile)

	s.renderTemplate(w, status, "calculator.html", calculatorViewData{
		baseViewData: base,
		Inputs:       profileInputs(profile),
		Display:      report.NewDisplay(result),
		Assumptions:  roi.Assumptions(),
	})
}

func (s *server) handleAPIROI(w http.ResponseWriter, r *http.Request) {
	var (
		profile roi.FirmProfile
		err     error
	)
	if r.Method == http.MethodPost {
		profile, err = decodeProfileJSON(http.MaxBytesReader(w, r.Body, 1<<16))
	} else {
		profile, err = parseProfileValues(r.URL.Query())
	}
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, report.NewDocument(profile, roi.Compute(profile)))
}

func (s *server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.auth.currentUser(r); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.renderTemplate(w, http.StatusOK, "login.html", loginViewData{})
}

func (s *server) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	valid, err := s.auth.validateCredentials(r.Context(), email, r.FormValue("password"))
	if err != nil {
		s.logger.Error("validate credentials", zap.Error(err))
		http.Error(w, "authentication error", http.StatusInternalServerError)
		return
	}
	if !valid {
		s.renderTemplate(w, http.StatusUnauthorized, "login.html", loginViewData{
			baseViewData: baseViewData{ErrorMessage: "Invalid credentials. Please try again."},
		})
		return
	}

	s.auth.setSessionCookie(w, email)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.auth.clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *server) handleScenariosList(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	items, err := s.scenarios.List(r.Context(), query)
	if err != nil {
		s.logger.Error("list scenarios", zap.Error(err))
		http.Error(w, "failed to load scenarios", http.StatusInternalServerError)
		return
	}

	s.renderTemplate(w, http.StatusOK, "scenarios.html", scenariosViewData{
		baseViewData: s.base(r),
		Query:        query,
		Scenarios:    items,
	})
}

func (s *server) handleScenarioCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	title := strings.TrimSpace(r.PostFormValue("title"))
	if title == "" {
		http.Redirect(w, r, "/?"+profileQueryFromForm(r)+"&error=title+is+required", http.StatusSeeOther)
		return
	}

	profile, err := parseProfileValues(r.PostForm)
	if err != nil {
		base := s.base(r)
		base.ErrorMessage = err.Error()
		partial := validProfileValues(r.PostForm)
		s.renderTemplate(w, http.StatusBadRequest, "calculator.html", calculatorViewData{
			baseViewData: base,
			Inputs:       submittedInputs(r.PostForm, partial),
			Display:      report.NewDisplay(roi.Compute(partial)),
			Assumptions:  roi.Assumptions(),
			Title:        title,
			Notes:        r.PostFormValue("notes"),
		})
		return
	}

	user, _ := s.auth.currentUser(r)
	saved, err := s.scenarios.Save(r.Context(), scenario.Scenario{
		Title:     title,
		Notes:     r.PostFormValue("notes"),
		CreatedBy: user,
		Profile:   profile,
		Result:    roi.Compute(profile),
	})
	if err != nil {
		s.logger.Error("save scenario", zap.Error(err))
		http.Error(w, "failed to save scenario", http.StatusInternalServerError)
		return
	}

	s.logger.Info("scenario saved", zap.String("id", saved.ID), zap.String("title", saved.Title), zap.String("user", user))
	http.Redirect(w, r, "/scenarios/"+saved.ID+"?success=Scenario+saved", http.StatusSeeOther)
}

func profileQueryFromForm(r *http.Request) string {
	profile, err := parseProfileValues(r.PostForm)
	if err != nil {
		return ""
	}
	return profileQuery(profile)
}

func (s *server) loadScenario(w http.ResponseWriter, r *http.Request) (scenario.Scenario, bool) {
	sc, err := s.scenarios.Get(r.Context(), chi.URLParam(r, "id"))
	if eris.Is(err, scenario.ErrNotFound) {
		http.NotFound(w, r)
		return scenario.Scenario{}, false
	}
	if err != nil {
		s.logger.Error("load scenario", zap.Error(err))
		http.Error(w, "failed to load scenario", http.StatusInternalServerError)
		return scenario.Scenario{}, false
	}
	return sc, true
}

func (s *server) handleScenarioDetail(w http.ResponseWriter, r *http.Request) {
	sc, ok := s.loadScenario(w, r)
	if !ok {
		return
	}

	s.renderTemplate(w, http.StatusOK, "scenario.html", scenarioViewData{
		baseViewData: s.base(r),
		Scenario:     sc,
		Rows:         report.Rows(sc.Result),
		Query:        template.URL(profileQuery(sc.Profile)),
	})
}

func (s *server) handleScenarioText(w http.ResponseWriter, r *http.Request) {
	sc, ok := s.loadScenario(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(report.Text(sc.Title, sc.Profile, sc.Result)))
}

func (s *server) handleScenarioMarkdown(w http.ResponseWriter, r *http.Request) {
	sc, ok := s.loadScenario(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	_, _ = w.Write([]byte(report.Markdown(sc.Title, sc.Profile, sc.Result)))
}

func (s *server) handleScenarioDelete(w http.ResponseWriter, r *http.Request) {
	err := s.scenarios.Delete(r.Context(), chi.URLParam(r, "id"))
	if eris.Is(err, scenario.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.logger.Error("delete scenario", zap.Error(err))
		http.Error(w, "failed to delete scenario", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/scenarios?success=Scenario+deleted", http.StatusSeeOther)
}

func (s *server) renderTemplate(w http.ResponseWriter, status int, page string, data any) {
	templates, err := template.New(page).Funcs(templateFuncs).ParseFS(web.Templates(), "layout.html", page)
	if err != nil {
		s.logger.Error("parse template", zap.String("page", page), zap.Error(err))
		http.Error(w, "failed to parse template", http.StatusInternalServerError)
		return
	}

	var buf strings.Builder
	if err := templates.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		s.logger.Error("render template", zap.String("page", page), zap.Error(err))
		http.Error(w, "failed to render template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(buf.String()))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.L().Error("encode json response", zap.Error(err))
	}
}
