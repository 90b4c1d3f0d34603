package views

import (
	"fmt"
	"io"
	"strings"

	"github.com/meysamhadeli/susi/constants/lipgloss"
	"github.com/meysamhadeli/susi/session_management/contracts"
	"github.com/meysamhadeli/susi/utils"
)

// RenderAnalysis prints the overview, the project structure, the AI summary and the detected APIs.
func RenderAnalysis(w io.Writer, snapshot contracts.Snapshot, theme string) error {
	if !snapshot.HasAnalysis() {
		_, err := fmt.Fprintln(w, lipgloss.Info.Render("No project analyzed yet. Use /analyze <github-url> or /upload <zip>."))
		return err
	}
	project := snapshot.Project

	title := "✅ Analysis Complete"
	if snapshot.FromCache {
		title += lipgloss.Gray.Render(" (cached)")
	}
	if _, err := fmt.Fprintln(w, lipgloss.Title.Render(title)); err != nil {
		return err
	}

	overview := fmt.Sprintf("Files Detected: %d   API Endpoints: %d   Framework: %s",
		len(project.Structure), len(project.DetectedAPIs), displayFramework(project.Framework))
	if _, err := fmt.Fprintln(w, lipgloss.BoxStyle.Render(overview)); err != nil {
		return err
	}

	if err := RenderProjectTree(w, snapshot); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, lipgloss.Title.Render("🧠 AI Understanding")); err != nil {
		return err
	}
	summary := strings.TrimSpace(project.AISummary)
	if summary == "" {
		summary = "_No summary returned._"
	}
	if err := utils.RenderMarkdown(w, summary, theme); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, lipgloss.Title.Render("Detected API Endpoints:")); err != nil {
		return err
	}
	if len(project.DetectedAPIs) == 0 {
		_, err := fmt.Fprintln(w, lipgloss.Gray.Render("none"))
		return err
	}
	_, err := fmt.Fprintln(w, badges(project.DetectedAPIs))
	return err
}

// RenderProjectTree prints only the analyzed project structure.
func RenderProjectTree(w io.Writer, snapshot contracts.Snapshot) error {
	if snapshot.ProjectTree == nil {
		_, err := fmt.Fprintln(w, lipgloss.Info.Render("No project structure yet."))
		return err
	}

	if _, err := fmt.Fprintln(w, lipgloss.Title.Render("📁 Project Structure")); err != nil {
		return err
	}
	tree, err := RenderTree(snapshot.ProjectTree, snapshot.ProjectExpanded)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, tree)
	return err
}

func badges(labels []string) string {
	rendered := make([]string, 0, len(labels))
	for _, label := range labels {
		rendered = append(rendered, lipgloss.Badge.Render(label))
	}
	return strings.Join(rendered, "")
}

func displayFramework(framework string) string {
	if framework == "" {
		return "unknown"
	}
	return strings.ToUpper(framework[:1]) + framework[1:]
}
