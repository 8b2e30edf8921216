// Package policy decides which discovered files belong in the combined output.
//
// A Policy is compiled once per run from the default exclusion set and the
// user's request, then consulted for every candidate path. Decisions are
// evaluated in a fixed order:
//
//  1. include-mode: with a non-empty include list, only paths ending with an
//     include entry are accepted and every exclusion rule is ignored;
//  2. file exclusion: the full path matches an ignore glob, or ends with an
//     ignore entry taken literally;
//  3. directory exclusion: a directory component equals an ignored name;
//  4. otherwise the path is accepted.
//
// Paths are compared as given. A pattern written for a relative path does not
// match the absolute form of the same file.
package policy

import (
	"strings"

	"repo2file/pkg/apperror"

	"github.com/gobwas/glob"
)

// Tier names the rule tier that produced a Verdict.
type Tier int

const (
	TierDefault     Tier = iota // no rule matched, path accepted
	TierInclude                 // include-mode decided
	TierFileGlob                // ignore glob matched the full path
	TierFileLiteral             // path ends with a literal ignore entry
	TierDir                     // a directory component is ignored
)

func (t Tier) String() string {
	switch t {
	case TierInclude:
		return "include"
	case TierFileGlob:
		return "file-glob"
	case TierFileLiteral:
		return "file-literal"
	case TierDir:
		return "dir"
	default:
		return "default"
	}
}

// Verdict is the outcome for a single path.
type Verdict struct {
	Include bool
	Tier    Tier
	Rule    string // Entry that matched; empty when none did.
}

type fileRule struct {
	raw     string
	pattern glob.Glob
	literal suffix
}

type includeRule struct {
	raw      string
	literal  suffix
	patterns []segmentGlob // empty unless raw has glob metacharacters
}

// segmentGlob matches a window of trailing path segments. A pattern with
// "**" may span any number of segments, so every window is tried.
type segmentGlob struct {
	pattern glob.Glob
	segs    int
	spans   bool
}

// Policy is a compiled, read-only inclusion policy.
type Policy struct {
	include []includeRule
	files   []fileRule
	dirs    map[string]struct{}
}

// Compile validates the request and compiles every pattern of the effective
// exclusion set. Malformed glob syntax fails here, never per path.
func Compile(defaults DefaultExclusionSet, req Request) (*Policy, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := defaults.Validate(); err != nil {
		return nil, apperror.Wrap(err, apperror.InvalidDefaults, "invalid default exclusion set")
	}

	p := &Policy{dirs: make(map[string]struct{})}

	fileEntries := append(append([]string{}, defaults.IgnoreFilePatterns...), req.IgnoreFiles...)
	for _, entry := range fileEntries {
		if entry == "" {
			continue
		}
		g, err := glob.Compile(entry)
		if err != nil {
			return nil, apperror.Wrap(err, apperror.InvalidPattern, "invalid ignore pattern "+quote(entry))
		}
		p.files = append(p.files, fileRule{raw: entry, pattern: g, literal: newSuffix(entry)})
	}

	for _, name := range defaults.IgnoreDirNames {
		p.dirs[name] = struct{}{}
	}
	for _, name := range req.IgnoreDirs {
		if name != "" {
			p.dirs[name] = struct{}{}
		}
	}

	for _, entry := range req.IncludeFiles {
		if entry == "" {
			continue
		}
		rule := includeRule{raw: entry, literal: newSuffix(entry)}
		if hasMeta(entry) {
			for _, variant := range includeVariants(rule.literal.segs) {
				joined := strings.Join(variant, "/")
				g, err := glob.Compile(joined, '/')
				if err != nil {
					return nil, apperror.Wrap(err, apperror.InvalidPattern, "invalid include pattern "+quote(entry))
				}
				rule.patterns = append(rule.patterns, segmentGlob{
					pattern: g,
					segs:    len(variant),
					spans:   strings.Contains(joined, "**"),
				})
			}
		}
		p.include = append(p.include, rule)
	}

	return p, nil
}

// Decide reports whether path belongs in the output.
func (p *Policy) Decide(path string) bool {
	return p.Evaluate(path).Include
}

// Evaluate is Decide with the deciding tier and rule attached.
func (p *Policy) Evaluate(path string) Verdict {
	segs := splitSegments(path)
	rooted := isRooted(path)

	if len(p.include) > 0 {
		for _, r := range p.include {
			if r.matches(segs, rooted) {
				return Verdict{Include: true, Tier: TierInclude, Rule: r.raw}
			}
		}
		return Verdict{Include: false, Tier: TierInclude}
	}

	for _, r := range p.files {
		if r.pattern.Match(path) {
			return Verdict{Tier: TierFileGlob, Rule: r.raw}
		}
	}
	for _, r := range p.files {
		if r.literal.matches(segs, rooted) {
			return Verdict{Tier: TierFileLiteral, Rule: r.raw}
		}
	}

	if len(segs) > 1 {
		for _, dir := range segs[:len(segs)-1] {
			if _, ok := p.dirs[dir]; ok {
				return Verdict{Tier: TierDir, Rule: dir}
			}
		}
	}

	return Verdict{Include: true, Tier: TierDefault}
}

// IncludeMode reports whether the policy was compiled with an include list.
func (p *Policy) IncludeMode() bool {
	return len(p.include) > 0
}

// Decide compiles a policy and evaluates a single path with it.
func Decide(path string, req Request, defaults DefaultExclusionSet) (bool, error) {
	p, err := Compile(defaults, req)
	if err != nil {
		return false, err
	}
	return p.Decide(path), nil
}

func (r includeRule) matches(segs []string, rooted bool) bool {
	if r.literal.matches(segs, rooted) {
		return true
	}
	for _, g := range r.patterns {
		if g.matches(segs) {
			return true
		}
	}
	return false
}

func (g segmentGlob) matches(segs []string) bool {
	if g.segs == 0 {
		return false
	}
	if !g.spans {
		if g.segs > len(segs) {
			return false
		}
		return g.pattern.Match(strings.Join(segs[len(segs)-g.segs:], "/"))
	}
	for start := len(segs) - 1; start >= 0; start-- {
		if g.pattern.Match(strings.Join(segs[start:], "/")) {
			return true
		}
	}
	return false
}

// includeVariants expands "**" segments that may stand for zero
// directories: "**/*.rs" also yields "*.rs", and "src/**/*.rs" also yields
// "src/*.rs".
func includeVariants(segs []string) [][]string {
	variants := [][]string{segs}
	seen := map[string]struct{}{strings.Join(segs, "/"): {}}
	for i := 0; i < len(variants); i++ {
		v := variants[i]
		for k, seg := range v {
			if seg != "**" || len(v) == 1 {
				continue
			}
			collapsed := append(append([]string{}, v[:k]...), v[k+1:]...)
			key := strings.Join(collapsed, "/")
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			variants = append(variants, collapsed)
		}
	}
	return variants
}

func hasMeta(s string) bool {
	return strings.ContainsAny(s, `*?[{\`)
}

func quote(s string) string {
	return `"` + s + `"`
}
