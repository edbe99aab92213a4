// Package categorizer resolves process names to activity categories using
// exact name lists and regex patterns. Rules are loaded from storage at
// startup and editable at runtime through the category service.
package categorizer

import (
	"regexp"
	"strings"
	"sync"
)

// Categorizer is safe for concurrent use; ingest resolves categories on
// every batch while admins may be replacing the rule set.
type Categorizer struct {
	mu       sync.RWMutex
	names    map[string][]string
	patterns map[string][]*regexp.Regexp
}

// RuleSet is the persistable form of the rules: category name to exact
// process names and to regex pattern sources.
type RuleSet struct {
	Names    map[string][]string `json:"categories"`
	Patterns map[string][]string `json:"patterns"`
}

func New(rules RuleSet) (*Categorizer, error) {
	c := &Categorizer{}
	if err := c.Replace(rules); err != nil {
		return nil, err
	}
	return c, nil
}

// NewWithDefaults builds a categorizer from the built-in rule set.
func NewWithDefaults() *Categorizer {
	c, err := New(DefaultRules())
	if err != nil {
		// Built-in patterns are compile-checked by tests.
		panic(err)
	}
	return c
}

// Categorize resolves a process name to its category, or "" when no rule
// matches. Matching is case-insensitive; exact names win over patterns.
func (c *Categorizer) Categorize(processName string) string {
	name := strings.ToLower(strings.TrimSpace(processName))
	if name == "" {
		return ""
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	for category, names := range c.names {
		for _, n := range names {
			if name == n {
				return category
			}
		}
	}

	for category, patterns := range c.patterns {
		for _, p := range patterns {
			if p.MatchString(name) {
				return category
			}
		}
	}

	return ""
}

// Replace swaps the active rule set. Invalid patterns reject the whole
// set so a bad edit cannot drop half the rules.
func (c *Categorizer) Replace(rules RuleSet) error {
	names := make(map[string][]string, len(rules.Names))
	for category, list := range rules.Names {
		lowered := make([]string, 0, len(list))
		for _, n := range list {
			lowered = append(lowered, strings.ToLower(n))
		}
		names[category] = lowered
	}

	patterns := make(map[string][]*regexp.Regexp, len(rules.Patterns))
	for category, sources := range rules.Patterns {
		compiled := make([]*regexp.Regexp, 0, len(sources))
		for _, src := range sources {
			p, err := regexp.Compile("(?i)" + src)
			if err != nil {
				return err
			}
			compiled = append(compiled, p)
		}
		patterns[category] = compiled
	}

	c.mu.Lock()
	c.names = names
	c.patterns = patterns
	c.mu.Unlock()
	return nil
}

// Rules returns a copy of the active rule set.
func (c *Categorizer) Rules() RuleSet {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rules := RuleSet{
		Names:    make(map[string][]string, len(c.names)),
		Patterns: make(map[string][]string, len(c.patterns)),
	}
	for category, list := range c.names {
		rules.Names[category] = append([]string(nil), list...)
	}
	for category, compiled := range c.patterns {
		sources := make([]string, 0, len(compiled))
		for _, p := range compiled {
			sources = append(sources, strings.TrimPrefix(p.String(), "(?i)"))
		}
		rules.Patterns[category] = sources
	}
	return rules
}

// DefaultRules mirrors the stock desktop-tracker categories.
func DefaultRules() RuleSet {
	return RuleSet{
		Names: map[string][]string{
			"Browser":       {"chrome", "firefox", "brave", "edge", "safari", "opera"},
			"Development":   {"code", "idea", "pycharm", "eclipse", "android studio", "vim", "emacs", "vscode", "atom"},
			"Communication": {"slack", "discord", "teams", "skype", "zoom", "telegram", "signal"},
			"Productivity":  {"office", "word", "excel", "powerpoint", "docs", "sheets", "slides", "notes", "onenote"},
			"Media":         {"spotify", "vlc", "music", "video", "netflix", "youtube", "media player"},
			"System":        {"explorer", "finder", "systemd", "kernel", "gnome", "kde", "xorg", "wayland"},
			"Gaming":        {"steam", "game", "epic games", "origin", "battle.net"},
		},
		Patterns: map[string][]string{
			"Browser":       {`^chrome$`, `^firefox$`, `^brave$`, `^safari$`, `^edge$`, `^opera$`},
			"Development":   {`^code`, `^idea`, `^pycharm`, `^eclipse`, `^android.?studio`, `^vim`, `^emacs`},
			"Communication": {`^slack$`, `^discord$`, `^teams$`, `^skype$`, `^zoom$`, `^telegram$`, `^signal$`},
			"System":        {`^systemd`, `^kernel`, `^gnome`, `^kde`, `^xorg`, `^wayland`, `^explorer$`, `^finder$`},
		},
	}
}
