package views

import (
	"fmt"
	"io"

	"github.com/meysamhadeli/susi/constants/lipgloss"
)

const sessionHelp = `/analyze <github-url>      Analyze a public GitHub repository
/upload <zip-file>         Analyze a zipped frontend project
/framework <name>          Set the framework hint (react, vue, angular, svelte, vanilla)
/reanalyze                 Repeat the last analysis, skipping the cache
/generate                  Generate a backend from the current analysis
/tree                      Show the project structure
/backend                   Show the generated backend
/toggle <path>             Expand or collapse a project folder
/toggle-backend <path>     Expand or collapse a backend folder
/expand-all                Expand every folder of both trees
/download [dir]            Save backend.zip
/deploy                    Open Railway to deploy the backend
/feedback                  Open the feedback form
/reset-cache               Clear the analysis cache
/cache-stats               Show analysis cache statistics
/clear                     Clear screen
/help                      Show this help
/exit                      Exit from susi`

// RenderHelp prints the session commands.
func RenderHelp(w io.Writer) error {
	_, err := fmt.Fprintln(w, lipgloss.BoxStyle.Render(sessionHelp))
	return err
}
