package views

import (
	"fmt"
	"io"
	"strings"

	"github.com/meysamhadeli/susi/constants/lipgloss"
	"github.com/meysamhadeli/susi/session_management/contracts"
)

// GeneratedFeatures are the capabilities every generated backend ships with.
var GeneratedFeatures = []string{
	"JWT Authentication",
	"User Management",
	"Email Integration",
	"Input Validation",
	"Error Handling",
	"CORS Setup",
}

// GettingStartedSteps are the instructions shown after a successful generation.
var GettingStartedSteps = []string{
	"Extract the ZIP file",
	"cd backend",
	"npm install",
	"cp .env.example .env",
	"Configure your environment variables",
	"npm start",
}

const setupNote = "Don't forget to set up your database connection and email service in the .env file"

// RenderBackend prints the generated tree, its features, the setup steps and the next actions.
func RenderBackend(w io.Writer, snapshot contracts.Snapshot) error {
	if !snapshot.HasBackend() {
		_, err := fmt.Fprintln(w, lipgloss.Info.Render("No backend generated yet. Use /generate after an analysis."))
		return err
	}

	if _, err := fmt.Fprintln(w, lipgloss.Title.Render("🎉 Backend Generated Successfully!")); err != nil {
		return err
	}
	if err := RenderBackendTree(w, snapshot); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, lipgloss.Title.Render("Features Generated:")); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, badges(GeneratedFeatures)); err != nil {
		return err
	}

	var steps strings.Builder
	steps.WriteString(lipgloss.Bold.Render("🚀 Getting Started"))
	for i, step := range GettingStartedSteps {
		steps.WriteString(fmt.Sprintf("\n%s %s", lipgloss.StepNumber.Render(fmt.Sprintf("%d.", i+1)), step))
	}
	steps.WriteString("\n\n" + lipgloss.Yellow.Render(setupNote))
	if _, err := fmt.Fprintln(w, lipgloss.BoxStyle.Render(steps.String())); err != nil {
		return err
	}

	_, err := fmt.Fprintln(w, lipgloss.Info.Render(actionHints(snapshot.DownloadURL() != "")))
	return err
}

// RenderBackendTree prints only the generated backend structure.
func RenderBackendTree(w io.Writer, snapshot contracts.Snapshot) error {
	if !snapshot.HasBackend() {
		_, err := fmt.Fprintln(w, lipgloss.Info.Render("No backend generated yet."))
		return err
	}

	header := fmt.Sprintf("🗂  Generated Backend Structure (%d files)", len(snapshot.Backend.Paths))
	if _, err := fmt.Fprintln(w, lipgloss.Title.Render(header)); err != nil {
		return err
	}
	tree, err := RenderTree(snapshot.Backend.Tree, snapshot.BackendExpanded)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, tree)
	return err
}

func actionHints(hasArchive bool) string {
	if hasArchive {
		return "/download  Download ZIP    /deploy  Deploy to Railway    /generate  Regenerate"
	}
	return "/deploy  Deploy to Railway    /generate  Regenerate"
}
