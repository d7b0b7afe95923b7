package integrations

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/go-shiori/go-epub"
	"github.com/kerbaras/rmwiki/pkg/data"
)

const (
	guideTitle  = "Rick and Morty Wiki"
	guideAuthor = "rickandmortyapi.com"
	guideBlurb  = "Rick and Morty is an animated science fiction sitcom about a mad scientist and his grandson " +
		"who travel to other dimensions. The show premiered on Adult Swim in 2013."
)

// EPubBuilder writes the episode guide as an EPUB file.
type EPubBuilder struct {
	outputDir string
	filename  string
}

func NewEPubBuilder(outputDir string) *EPubBuilder {
	return &EPubBuilder{outputDir: outputDir, filename: sanitizeFilename(guideTitle) + ".epub"}
}

// Publish compiles episodes (one section per season) and a character roster
// into a single EPUB and returns its path.
func (p *EPubBuilder) Publish(guide Guide) (string, error) {
	if len(guide.Episodes) == 0 && len(guide.Characters) == 0 {
		return "", fmt.Errorf("nothing to publish")
	}

	if err := os.MkdirAll(p.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	e, err := epub.NewEpub(guideTitle)
	if err != nil {
		return "", fmt.Errorf("failed to create EPub: %w", err)
	}
	e.SetAuthor(guideAuthor)
	e.SetDescription(guideBlurb)
	e.SetLang("en")

	intro := fmt.Sprintf("<h1>%s</h1>\n<p>%s</p>\n", guideTitle, html.EscapeString(guideBlurb))
	if !guide.GeneratedAt.IsZero() {
		intro += fmt.Sprintf("<p><small>Generated %s</small></p>\n", guide.GeneratedAt.Format("January 2, 2006"))
	}
	if _, err := e.AddSection(intro, guideTitle, "", ""); err != nil {
		return "", fmt.Errorf("failed to add introduction: %w", err)
	}

	for _, season := range groupBySeason(guide.Episodes) {
		if _, err := e.AddSection(seasonHTML(season), season.title, "", ""); err != nil {
			return "", fmt.Errorf("failed to add %s: %w", season.title, err)
		}
	}

	if len(guide.Characters) > 0 {
		if _, err := e.AddSection(charactersHTML(guide.Characters), "Characters", "", ""); err != nil {
			return "", fmt.Errorf("failed to add characters: %w", err)
		}
	}

	outputPath := filepath.Join(p.outputDir, p.filename)
	if err := e.Write(outputPath); err != nil {
		return "", fmt.Errorf("failed to write EPub: %w", err)
	}

	return outputPath, nil
}

type season struct {
	key      string
	number   int // -1 when the key has no season number
	title    string
	episodes []data.Episode
}

// groupBySeason keeps API order inside a season and orders seasons by their
// number. Seasons without a number follow by key, and episodes without a
// parsable code end up in a trailing "Other" group.
func groupBySeason(episodes []data.Episode) []season {
	index := map[string]int{}
	var seasons []season

	for _, ep := range episodes {
		key := strings.ToUpper(ep.Season())
		if _, ok := index[key]; !ok {
			index[key] = len(seasons)
			seasons = append(seasons, newSeason(key))
		}
		i := index[key]
		seasons[i].episodes = append(seasons[i].episodes, ep)
	}

	sort.SliceStable(seasons, func(i, j int) bool {
		a, b := seasons[i], seasons[j]
		switch {
		case a.key == "" || b.key == "":
			return b.key == "" && a.key != ""
		case a.number >= 0 && b.number >= 0:
			return a.number < b.number
		case a.number >= 0 || b.number >= 0:
			return a.number >= 0
		default:
			return a.key < b.key
		}
	})
	return seasons
}

func newSeason(key string) season {
	if key == "" {
		return season{number: -1, title: "Other episodes"}
	}
	n, err := strconv.Atoi(key[1:])
	if err != nil || n < 0 {
		return season{key: key, number: -1, title: key}
	}
	return season{key: key, number: n, title: fmt.Sprintf("Season %d", n)}
}

func seasonHTML(s season) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h1>%s</h1>\n<table>\n", html.EscapeString(s.title))
	b.WriteString("<tr><th>Code</th><th>Title</th><th>Air date</th></tr>\n")
	for _, ep := range s.episodes {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td><td>%s</td></tr>\n",
			html.EscapeString(ep.Code), html.EscapeString(ep.Name), html.EscapeString(ep.AirDate))
	}
	b.WriteString("</table>\n")
	return b.String()
}

func charactersHTML(characters []data.Character) string {
	var b strings.Builder
	b.WriteString("<h1>Characters</h1>\n<ul>\n")
	for _, c := range characters {
		fmt.Fprintf(&b, "<li><b>%s</b>: %s, %s</li>\n",
			html.EscapeString(c.Name), html.EscapeString(c.Status), html.EscapeString(c.Species))
	}
	b.WriteString("</ul>\n")
	return b.String()
}

// sanitizeFilename removes characters that are invalid in filenames
func sanitizeFilename(name string) string {
	invalid := []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|"}
	result := name
	for _, char := range invalid {
		result = strings.ReplaceAll(result, char, "_")
	}
	result = strings.TrimSpace(result)
	result = strings.Trim(result, ".")
	return result
}
