// Package apply copies a template's content tree into a target project,
// substituting variables along the way. Handlebars-marked files are
// rendered through a full engine, plain text files get literal
// replacement, and everything else is copied byte-for-byte.
package apply

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/aymerick/raymond"

	"github.com/uniwebcms/uniweb-cli/internal/debug"
	"github.com/uniwebcms/uniweb-cli/internal/template/model"
)

// textExtensions is the allow-list of extensions that get literal variable
// substitution when the file is not Handlebars-marked. Anything outside
// the list is treated as binary and copied untouched.
var textExtensions = map[string]bool{
	".js": true, ".jsx": true, ".ts": true, ".tsx": true,
	".mjs": true, ".cjs": true,
	".json": true, ".yml": true, ".yaml": true, ".toml": true,
	".css": true, ".scss": true, ".less": true,
	".html": true, ".htm": true, ".xml": true, ".svg": true,
	".md": true, ".mdx": true, ".txt": true,
	".env": true, ".sh": true, ".gitignore": true,
}

// placeholderRe matches a double-brace token that is not a block, partial,
// or comment marker and contains no internal whitespace.
var placeholderRe = regexp.MustCompile(`\{\{([^#/>!\s{}][^\s{}]*)\}\}`)

// CopyOptions adjusts a single CopyTree call.
type CopyOptions struct {
	// Skip lists output names (after the .hbs marker is stripped) to
	// exclude from the copy. Entries match the relative output path or
	// the bare file name.
	Skip []string
	// OnWarning receives unresolved placeholder reports. Optional.
	OnWarning func(message string)
	// OnProgress receives one message per file written. Optional.
	OnProgress func(message string)
}

func (o CopyOptions) warn(message string) {
	if o.OnWarning != nil {
		o.OnWarning(message)
	}
}

func (o CopyOptions) progress(message string) {
	if o.OnProgress != nil {
		o.OnProgress(message)
	}
}

// Processor copies template trees with variable substitution. It is not
// safe for concurrent use; a single invocation drives one Processor.
//
// Compiled templates are cached by source file path and never invalidated,
// so a Processor must not be reused across trees that put different
// content at the same path within one process lifetime.
type Processor struct {
	versions  map[string]string
	templates map[string]*raymond.Template
	fallbacks map[string]struct{}
}

// NewProcessor creates a Processor. versions maps package names to version
// specs for the template-engine version helper; nil is allowed.
func NewProcessor(versions map[string]string) *Processor {
	if versions == nil {
		versions = map[string]string{}
	}
	return &Processor{
		versions:  versions,
		templates: make(map[string]*raymond.Template),
		fallbacks: make(map[string]struct{}),
	}
}

// Reset clears the compiled-template cache and the fallback record. A
// long-lived process must call it between independent applies.
func (p *Processor) Reset() {
	p.templates = make(map[string]*raymond.Template)
	p.fallbacks = make(map[string]struct{})
}

// CopyTree copies sourceDir into targetDir, applying variable substitution
// and the directory renaming rule. The manifest file at the source root is
// excluded. Unresolved placeholders are reported through opts.OnWarning
// and never fail the copy.
func (p *Processor) CopyTree(sourceDir, targetDir string, vars map[string]interface{}, opts CopyOptions) error {
	debug.DebugSection("[apply] copy tree")
	debug.DebugValue("[apply] source", sourceDir)
	debug.DebugValue("[apply] target", targetDir)

	if vars == nil {
		vars = map[string]interface{}{}
	}
	return p.copyDir(sourceDir, targetDir, "", vars, opts, true)
}

func (p *Processor) copyDir(srcDir, dstDir, relDir string, vars map[string]interface{}, opts CopyOptions, isRoot bool) error {
	if err := os.MkdirAll(dstDir, 0755); err != nil {
		return newIOError("mkdir", dstDir, err)
	}

	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return newIOError("read", srcDir, err)
	}

	for _, entry := range entries {
		srcPath := filepath.Join(srcDir, entry.Name())

		if entry.IsDir() {
			outName := renameDir(entry.Name())
			if err := p.copyDir(srcPath, filepath.Join(dstDir, outName), joinRel(relDir, outName), vars, opts, false); err != nil {
				return err
			}
			continue
		}

		if isRoot && entry.Name() == model.TemplateManifestFile {
			continue
		}

		outName := strings.TrimSuffix(entry.Name(), model.HandlebarsExt)
		relOut := joinRel(relDir, outName)
		if skipped(relOut, outName, opts.Skip) {
			debug.Debug("[apply] skipping %s", relOut)
			continue
		}

		if err := p.copyFile(srcPath, filepath.Join(dstDir, outName), relOut, entry.Name(), vars, opts); err != nil {
			return err
		}
		opts.progress(relOut)
	}
	return nil
}

func (p *Processor) copyFile(srcPath, dstPath, relOut, srcName string, vars map[string]interface{}, opts CopyOptions) error {
	info, err := os.Stat(srcPath)
	if err != nil {
		return newIOError("stat", srcPath, err)
	}
	content, err := os.ReadFile(srcPath)
	if err != nil {
		return newIOError("read", srcPath, err)
	}

	switch {
	case strings.HasSuffix(srcName, model.HandlebarsExt):
		rendered, err := p.render(srcPath, string(content), vars)
		if err != nil {
			return err
		}
		reportPlaceholders(relOut, rendered, opts)
		content = []byte(rendered)
	case textExtensions[textExtKey(srcName)]:
		content = []byte(substituteLiteral(string(content), vars))
	}

	if err := os.WriteFile(dstPath, content, info.Mode().Perm()); err != nil {
		return newIOError("write", dstPath, err)
	}
	return nil
}

// render executes the Handlebars template at srcPath. Simple tokens with
// no binding are given a literal passthrough so they survive into the
// output, where the placeholder scan picks them up.
func (p *Processor) render(srcPath, source string, vars map[string]interface{}) (string, error) {
	tpl, ok := p.templates[srcPath]
	if !ok {
		var err error
		tpl, err = raymond.Parse(source)
		if err != nil {
			return "", newIOError("parse", srcPath, err)
		}
		tpl.RegisterHelper("version", func(pkg string) string {
			return p.versionFor(pkg)
		})
		p.templates[srcPath] = tpl
	}

	ctx := make(map[string]interface{}, len(vars))
	for k, v := range vars {
		ctx[k] = v
	}
	for _, m := range placeholderRe.FindAllStringSubmatch(source, -1) {
		token := m[1]
		if strings.ContainsAny(token, ".(") {
			continue
		}
		if _, bound := ctx[token]; !bound {
			ctx[token] = raymond.SafeString(m[0])
		}
	}

	out, err := tpl.Exec(ctx)
	if err != nil {
		return "", newIOError("render", srcPath, err)
	}
	return out, nil
}

// reportPlaceholders warns once per unique unresolved token left in
// rendered output.
func reportPlaceholders(relOut, rendered string, opts CopyOptions) {
	seen := map[string]bool{}
	for _, m := range placeholderRe.FindAllStringSubmatch(rendered, -1) {
		seen[m[1]] = true
	}
	tokens := make([]string, 0, len(seen))
	for token := range seen {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)
	for _, token := range tokens {
		opts.warn("unresolved placeholder {{" + token + "}} in " + relOut)
	}
}

// substituteLiteral replaces each string-valued variable's double-braced
// name verbatim. No control-flow templating for plain text files.
func substituteLiteral(content string, vars map[string]interface{}) string {
	for k, v := range vars {
		s, ok := v.(string)
		if !ok {
			continue
		}
		content = strings.ReplaceAll(content, "{{"+k+"}}", s)
	}
	return content
}

// renameDir maps a single-underscore directory prefix to a dot. Double
// underscores are reserved and pass through unchanged.
func renameDir(name string) string {
	if strings.HasPrefix(name, "__") {
		return name
	}
	if strings.HasPrefix(name, "_") {
		return "." + name[1:]
	}
	return name
}

func skipped(relOut, baseName string, skip []string) bool {
	for _, s := range skip {
		if s == relOut || s == baseName {
			return true
		}
	}
	return false
}

func joinRel(dir, name string) string {
	if dir == "" {
		return name
	}
	return dir + "/" + name
}

// textExtKey returns the lookup key for the text allow-list. For dotfiles
// like .gitignore the extension is the whole name.
func textExtKey(name string) string {
	return strings.ToLower(filepath.Ext(name))
}
