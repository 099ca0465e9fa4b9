package ui

import (
	"embed"
	"html/template"
	"io"
)

// Fixed page content.
const (
	Title       = "Tauri + React"
	Heading     = "Welcome to Tauri + React"
	Intro       = "Click on the Tauri, Vite, and React logos to learn more."
	InputID     = "greet-input"
	Placeholder = "Enter a name..."
	ButtonLabel = "Greet"
	GreetingID  = "greet-msg"
	FormID      = "greet-form"
)

// Logo is one of the external links at the top of the page.
type Logo struct {
	Href  string
	Src   string
	Alt   string
	Class string
}

// Logos returns the three logo links in display order.
func Logos() []Logo {
	return []Logo{
		{Href: "https://vite.dev", Src: "/assets/vite.svg", Alt: "Vite logo", Class: "vite"},
		{Href: "https://tauri.app", Src: "/assets/tauri.svg", Alt: "Tauri logo", Class: "tauri"},
		{Href: "https://react.dev", Src: "/assets/react.svg", Alt: "React logo", Class: "react"},
	}
}

//go:embed templates/page.html.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html.tmpl"))

type pageData struct {
	Title       string
	Heading     string
	Intro       string
	Logos       []Logo
	FormID      string
	InputID     string
	Placeholder string
	ButtonLabel string
	GreetingID  string
	State       State
}

// RenderState writes the page for st. The output paragraph holds st.Greeting
// and nothing else.
func RenderState(w io.Writer, st State) error {
	return pageTemplate.Execute(w, pageData{
		Title:       Title,
		Heading:     Heading,
		Intro:       Intro,
		Logos:       Logos(),
		FormID:      FormID,
		InputID:     InputID,
		Placeholder: Placeholder,
		ButtonLabel: ButtonLabel,
		GreetingID:  GreetingID,
		State:       st,
	})
}

// Render writes the page for the surface's current state.
func (s *Surface) Render(w io.Writer) error {
	return RenderState(w, s.State())
}
