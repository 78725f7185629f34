// Command docsgen renders markdown reference pages for every command
// declared in a commands directory. Usage: docsgen <commands-dir> <out-dir>.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/tfctl/clikit/pkg/loader"
	"github.com/tfctl/clikit/pkg/plugin"
	"github.com/tfctl/clikit/pkg/registry"
	"github.com/tfctl/clikit/pkg/schema"
)

// TemplateData is the per-command payload handed to the page template.
type TemplateData struct {
	Path        string
	Description string
	Usage       string
	Examples    []string
	Args        []schema.Arg
	Options     []schema.Option
	Date        string
	Version     string
}

const pageTemplate = `# {{.Path}}

{{.Description}}
{{if .Usage}}
## Usage

    {{.Usage}}
{{end}}{{if .Args}}
## Arguments

{{range .Args}}- ` + "`{{.Name}}`" + ` ({{.Type.Display}}{{if .Required}}, required{{end}}{{if .Variadic}}, variadic{{end}}) — {{.Description}}
{{end}}{{end}}{{if .Options}}
## Options

{{range .Options}}- ` + "`--{{.Long}}`" + `{{if .Short}} / ` + "`-{{printf \"%c\" .Short}}`" + `{{end}} — {{.Description}}
{{end}}{{end}}
---
Generated {{.Date}} for version {{.Version}}.
`

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: docsgen <commands-dir> <out-dir>")
		os.Exit(2)
	}
	commandsDir, outDir := os.Args[1], os.Args[2]

	l := loader.Loader{AllowUnbound: true}
	root, err := l.Load(os.DirFS(commandsDir), nil)
	if err != nil {
		panic(err)
	}
	comp, err := plugin.Compose(root, nil, nil)
	if err != nil {
		panic(err)
	}
	reg := registry.New(comp)

	tmpl := template.Must(template.New("page").Parse(pageTemplate))
	if err := os.MkdirAll(outDir, 0755); err != nil {
		panic(err)
	}

	for _, p := range reg.Paths() {
		node := reg.Lookup(p.Segments)
		data := TemplateData{
			Path:        p.Display(),
			Description: node.Meta.Description,
			Usage:       node.Meta.Usage,
			Examples:    node.Meta.Examples,
			Args:        node.Args,
			Options:     node.Options,
			Date:        time.Now().Format("January 2, 2006"),
			Version:     getVersion(),
		}

		name := strings.ReplaceAll(p.Display(), " ", "-") + ".md"
		file, err := os.Create(filepath.Join(outDir, name))
		if err != nil {
			panic(err)
		}
		fmt.Println("Generating", filepath.Join(outDir, name))
		if err := tmpl.Execute(file, data); err != nil {
			panic(err)
		}
		file.Close()
	}
}

// getVersion returns the version string from git tags, stripping the leading
// "v" prefix. Falls back to "dev" if git describe fails.
func getVersion() string {
	out, err := exec.Command("git", "describe", "--tags", "--abbrev=0").Output()
	if err != nil {
		return "dev"
	}

	version := strings.TrimSpace(string(out))
	return strings.TrimPrefix(version, "v")
}
