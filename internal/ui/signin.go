package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/kmoretti/marquee/internal/dispatch"
)

const (
	modeLogin    = "login"
	modeRegister = "register"
)

// signInState holds the embedded huh form and its bound field values.
type signInState struct {
	mode     string
	username string
	email    string
	password string
	form     *huh.Form
}

// openSignIn switches to the sign-in view with a fresh form.
func (m Model) openSignIn() (tea.Model, tea.Cmd) {
	if m.signIn == nil {
		m.signIn = &signInState{mode: modeLogin}
	}
	m.signIn.password = ""
	m.signIn.form = buildSignInForm(m.signIn)
	m.currentView = ViewSignIn
	return m, m.signIn.form.Init()
}

func buildSignInForm(s *signInState) *huh.Form {
	fields := []huh.Field{
		huh.NewSelect[string]().
			Title("Action").
			Options(
				huh.NewOption("Sign in", modeLogin),
				huh.NewOption("Create account", modeRegister),
			).
			Value(&s.mode),
		huh.NewInput().
			Title("Email").
			Placeholder("you@example.com").
			Value(&s.email).
			Validate(requireValue("email")),
		huh.NewInput().
			Title("Username").
			Description("Only needed when creating an account").
			Value(&s.username),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&s.password).
			Validate(requireValue("password")),
	}

	return huh.NewForm(huh.NewGroup(fields...).Title("Habitat account"))
}

func requireValue(label string) func(string) error {
	return func(v string) error {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%s is required", label)
		}
		return nil
	}
}

// updateSignIn forwards messages to the embedded form and submits when the
// form completes.
func (m Model) updateSignIn(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.signIn == nil || m.signIn.form == nil {
		return m, nil
	}

	form, cmd := m.signIn.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.signIn.form = f
	}

	if m.signIn.form.State == huh.StateCompleted {
		return m, m.submitSignIn()
	}
	return m, cmd
}

// submitSignIn runs the selected auth operation off the UI goroutine.
func (m Model) submitSignIn() tea.Cmd {
	s := *m.signIn
	inner := m.dispatchCmd(func(d *dispatch.Dispatcher) {
		if s.mode == modeRegister {
			d.Register(m.ctx, strings.TrimSpace(s.username), strings.TrimSpace(s.email), s.password)
			return
		}
		d.Login(m.ctx, strings.TrimSpace(s.email), s.password)
	})
	if inner == nil {
		return nil
	}
	return func() tea.Msg {
		inner()
		return signInDoneMsg{}
	}
}

// signInDoneMsg reports that a login or register attempt finished, either
// way.
type signInDoneMsg struct{}

// handleSignInDone reads the outcome of the attempt. Success drops back to
// the browse view; failure rebuilds the form so the user can retry while
// the normalized error shows in the header.
func (m Model) handleSignInDone(tea.Msg) (tea.Model, tea.Cmd) {
	m.snapshot = m.readSnapshot()
	if m.signIn == nil {
		return m, nil
	}
	m.signIn.password = ""
	if m.snapshot.Session.Authenticated {
		m.currentView = ViewBrowse
		m.signIn.form = nil
		return m, nil
	}
	m.signIn.form = buildSignInForm(m.signIn)
	return m, m.signIn.form.Init()
}

func (m Model) renderSignIn() string {
	if m.signIn == nil || m.signIn.form == nil {
		return ""
	}
	return m.signIn.form.View()
}
