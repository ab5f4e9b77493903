// Package entry renders the package entry module that imports and installs every component.
package entry

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/uibuild/internal/config"
	"git.home.luguber.info/inful/uibuild/internal/fsutil"
)

// FileName is the package entry written at the root of the ES-module tree.
const FileName = "index.js"

var titler = cases.Title(language.Und, cases.NoLower)

// Pascalize turns a kebab-case component name into its exported identifier.
func Pascalize(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool { return r == '-' || r == '_' })
	for i, p := range parts {
		parts[i] = titler.String(p)
	}
	return strings.Join(parts, "")
}

// Options drive the rendered entry.
type Options struct {
	Components  []string
	Version     string
	SkipInstall []string // component names (kebab or Pascal case) left out of install()
	NamedExport bool     // components export { Name } instead of a default export
}

// FromConfig fills Options from the project configuration.
func FromConfig(cfg *config.Config, components []string) Options {
	return Options{
		Components:  components,
		Version:     cfg.Version,
		SkipInstall: cfg.Build.SkipInstall,
		NamedExport: cfg.Build.NamedExport,
	}
}

// Render returns the entry module source.
func Render(opts Options) string {
	names := make([]string, len(opts.Components))
	for i, c := range opts.Components {
		names[i] = Pascalize(c)
	}
	skip := make([]string, len(opts.SkipInstall))
	for i, s := range opts.SkipInstall {
		skip[i] = Pascalize(s)
	}
	installed := slices.DeleteFunc(slices.Clone(names), func(n string) bool { return slices.Contains(skip, n) })

	var b strings.Builder
	for i, c := range opts.Components {
		if opts.NamedExport {
			fmt.Fprintf(&b, "import { %s } from './%s';\n", names[i], c)
		} else {
			fmt.Fprintf(&b, "import %s from './%s';\n", names[i], c)
		}
	}
	fmt.Fprintf(&b, "\nconst version = '%s';\n\n", opts.Version)

	b.WriteString("function install(Vue) {\n  const components = [\n")
	for _, n := range installed {
		fmt.Fprintf(&b, "    %s,\n", n)
	}
	b.WriteString(`  ];

  components.forEach(item => {
    if (item.install) {
      Vue.use(item);
    } else if (item.name) {
      Vue.component(item.name, item);
    }
  });
}

if (typeof window !== 'undefined' && window.Vue) {
  install(window.Vue);
}

export {
  install,
  version,
`)
	for _, n := range names {
		fmt.Fprintf(&b, "  %s,\n", n)
	}
	b.WriteString(`};

export default {
  install,
  version
};
`)
	return b.String()
}

// Generate renders the entry and writes it to path.
func Generate(path string, opts Options) error {
	return fsutil.WriteFile(path, []byte(Render(opts)))
}
