package convert

import (
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"github.com/danielegts/enex2notion/config"
	"github.com/danielegts/enex2notion/enex"
	"github.com/danielegts/enex2notion/state"
)

// buildOutputPath constructs the dump file path for one converted note,
// using either the default naming scheme (note title) or the user template.
// The expanded template may contain path separators for subdirectories.
func buildOutputPath(note *enex.Note, src, dst string, env *state.LocalEnv) string {
	defaultFile := buildDefaultFileName(note, env)

	if env.Cfg.Conversion.OutputNameTemplate == "" {
		return filepath.Join(dst, defaultFile)
	}

	expandedName, err := expandTemplate(note, config.OutputNameTemplateFieldName, env.Cfg.Conversion.OutputNameTemplate, src)
	if err != nil {
		env.Log.Warn("Unable to prepare output filename", zap.Error(err))
		return filepath.Join(dst, defaultFile)
	}
	expandedName = strings.TrimSpace(filepath.FromSlash(expandedName))
	if expandedName == "" {
		return filepath.Join(dst, defaultFile)
	}

	return assemblePathWithSubdirs(dst, expandedName, env)
}

func buildDefaultFileName(note *enex.Note, env *state.LocalEnv) string {
	name := note.Title
	if env.Cfg.Conversion.FileNameSlugify {
		name = slug.Make(name)
	}
	name = config.CleanFileName(name)
	if name == "" {
		name = "note"
	}
	// note ids are sortable, a short prefix keeps names unique without
	// making them unwieldy
	if suffix := note.ID; len(suffix) >= 8 {
		name += "-" + suffix[:8]
	}
	return name + ".json"
}

// assemblePathWithSubdirs cleans every segment of a template-produced
// relative path and anchors it under the output directory.
func assemblePathWithSubdirs(outDir, name string, env *state.LocalEnv) string {
	segments := strings.Split(name, string(filepath.Separator))
	cleaned := make([]string, 0, len(segments))
	for _, seg := range segments {
		if env.Cfg.Conversion.FileNameSlugify {
			seg = slug.Make(seg)
		}
		seg = config.CleanFileName(seg)
		if seg != "" {
			cleaned = append(cleaned, seg)
		}
	}
	if len(cleaned) == 0 {
		return filepath.Join(outDir, buildDefaultFileName(&enex.Note{Title: "note"}, env))
	}
	cleaned[len(cleaned)-1] += ".json"
	return filepath.Join(append([]string{outDir}, cleaned...)...)
}
