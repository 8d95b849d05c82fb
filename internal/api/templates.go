package api

import (
	"fmt"
	"html/template"
	"path/filepath"
)

func LoadTemplates() (*template.Template, error) {
	funcs := template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
		// minutes formats a second count as M:SS for the exam clock.
		"minutes": func(secs int) string {
			if secs < 0 {
				secs = 0
			}
			return fmt.Sprintf("%d:%02d", secs/60, secs%60)
		},
	}

	t := template.New("base").Funcs(funcs)

	patterns := []string{
		"web/templates/layouts/*.html",
		"web/templates/pages/*.html",
		"web/templates/partials/*.html",
	}
	for _, p := range patterns {
		if matches, _ := filepath.Glob(p); len(matches) == 0 {
			continue
		}
		if _, err := t.ParseGlob(p); err != nil {
			return nil, err
		}
	}

	return t, nil
}
