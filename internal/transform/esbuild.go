package transform

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"

	"git.home.luguber.info/inful/uibuild/internal/config"
)

var esTargets = map[string]api.Target{
	"es5":    api.ES5,
	"es2015": api.ES2015,
	"es2016": api.ES2016,
	"es2017": api.ES2017,
	"es2018": api.ES2018,
	"es2019": api.ES2019,
	"es2020": api.ES2020,
	"es2021": api.ES2021,
	"es2022": api.ES2022,
	"es2023": api.ES2023,
	"es2024": api.ES2024,
	"esnext": api.ESNext,
}

// ESTarget maps a configured language target onto esbuild's. Unknown values fall back to ES2015.
func ESTarget(name string) api.Target {
	if t, ok := esTargets[strings.ToLower(name)]; ok {
		return t
	}
	return api.ES2015
}

// ESFormat maps a module format onto esbuild's output format.
func ESFormat(format config.ModuleFormat) api.Format {
	if format == config.FormatCommonJS {
		return api.FormatCommonJS
	}
	return api.FormatESModule
}

func loaderFor(path string) api.Loader {
	switch filepath.Ext(path) {
	case ".jsx":
		return api.LoaderJSX
	case ".ts", ".mts", ".cts":
		return api.LoaderTS
	case ".tsx":
		return api.LoaderTSX
	case ".css":
		return api.LoaderCSS
	default:
		return api.LoaderJS
	}
}

// MessagesError flattens esbuild messages into a single error, or nil when there are none.
func MessagesError(msgs []api.Message) error {
	if len(msgs) == 0 {
		return nil
	}
	parts := make([]string, 0, len(msgs))
	for _, m := range msgs {
		if m.Location != nil {
			parts = append(parts, fmt.Sprintf("%s:%d:%d: %s", m.Location.File, m.Location.Line, m.Location.Column, m.Text))
			continue
		}
		parts = append(parts, m.Text)
	}
	return errors.New(strings.Join(parts, "; "))
}
