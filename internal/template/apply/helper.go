package apply

import (
	"sort"

	"github.com/uniwebcms/uniweb-cli/internal/debug"
	"github.com/uniwebcms/uniweb-cli/internal/template/model"
)

// DefaultVersionSpec is what the version helper emits when a package is
// not in the lookup table.
const DefaultVersionSpec = "latest"

// versionFor resolves a package name to a version spec: exact match first,
// then with the template scope prefixed, then the default spec. The
// fallback is silent here; callers surface one aggregate warning after the
// copy completes.
func (p *Processor) versionFor(pkg string) string {
	if v, ok := p.versions[pkg]; ok {
		return v
	}
	if v, ok := p.versions[model.NpmTemplateScope+"/"+pkg]; ok {
		return v
	}
	debug.Debug("[apply] no version for package %q, falling back to %q", pkg, DefaultVersionSpec)
	p.fallbacks[pkg] = struct{}{}
	return DefaultVersionSpec
}

// FallbackPackages returns the package names the version helper could not
// resolve during the copies performed so far, sorted.
func (p *Processor) FallbackPackages() []string {
	names := make([]string, 0, len(p.fallbacks))
	for name := range p.fallbacks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
