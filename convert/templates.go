package convert

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"github.com/danielegts/enex2notion/config"
	"github.com/danielegts/enex2notion/enex"
)

// Values holds the variables available for output name template expansion.
type Values struct {
	Context    string
	Title      string
	NoteID     string
	Date       string
	Tags       []string
	SourceFile string
}

func expandTemplate(note *enex.Note, name config.TemplateFieldName, field, srcName string) (string, error) {
	tmpl, err := template.New(string(name)).Funcs(sprig.FuncMap()).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	values := Values{
		Context:    string(name),
		Title:      note.Title,
		NoteID:     note.ID,
		Date:       buildDate(note),
		Tags:       note.Tags,
		SourceFile: strings.TrimSuffix(filepath.Base(srcName), filepath.Ext(srcName)),
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func buildDate(note *enex.Note) string {
	if note.Created.IsZero() {
		return ""
	}
	return note.Created.Format("2006-01-02")
}
