// Package prompts loads the agent prompt catalog.
package prompts

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var catalogYAML []byte

const (
	JournalMood    = "journal_mood"
	JournalThemes  = "journal_themes"
	JournalTrigger = "journal_triggers"
	JournalInsight = "journal_insights"

	ConversationSocratic = "conversation_socratic"
	ConversationCBT      = "conversation_cbt"
	ConversationGeneral  = "conversation_general"
	ConversationOpening  = "conversation_opening"
	ConversationSummary  = "conversation_summary"

	InsightsMood     = "insights_mood"
	InsightsHabits   = "insights_habits"
	InsightsPatterns = "insights_patterns"
	InsightsWeekly   = "insights_weekly"

	PlannerThemes = "planner_themes"
	PlannerPlan   = "planner_plan"
)

var required = []string{
	JournalMood, JournalThemes, JournalTrigger, JournalInsight,
	ConversationSocratic, ConversationCBT, ConversationGeneral, ConversationOpening, ConversationSummary,
	InsightsMood, InsightsHabits, InsightsPatterns, InsightsWeekly,
	PlannerThemes, PlannerPlan,
}

type spec struct {
	Name        string  `yaml:"name"`
	Agent       string  `yaml:"agent"`
	Temperature float64 `yaml:"temperature"`
	System      string  `yaml:"system"`
	Template    string  `yaml:"template"`
}

// Template is a parsed prompt with its sampling temperature.
type Template struct {
	Name        string
	Agent       string
	Temperature float64
	system      *template.Template
	user        *template.Template
}

// Rendered is a prompt ready for the model.
type Rendered struct {
	System      string
	User        string
	Temperature float64
}

// Render fills the named placeholders from vars; missing keys render empty.
func (t *Template) Render(vars map[string]any) (Rendered, error) {
	sys, err := execute(t.system, vars)
	if err != nil {
		return Rendered{}, fmt.Errorf("render %s system: %w", t.Name, err)
	}
	usr, err := execute(t.user, vars)
	if err != nil {
		return Rendered{}, fmt.Errorf("render %s: %w", t.Name, err)
	}
	return Rendered{System: sys, User: usr, Temperature: t.Temperature}, nil
}

func execute(tpl *template.Template, vars map[string]any) (string, error) {
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, vars); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

type Catalog struct {
	templates map[string]*Template
}

// Load parses the embedded catalog.
func Load() (*Catalog, error) {
	return Parse(catalogYAML)
}

// Parse builds a catalog from YAML and checks every required template is present.
func Parse(raw []byte) (*Catalog, error) {
	var doc struct {
		Templates []spec `yaml:"templates"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse prompt catalog: %w", err)
	}
	c := &Catalog{templates: map[string]*Template{}}
	for _, s := range doc.Templates {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return nil, fmt.Errorf("prompt catalog: template without name")
		}
		if _, dup := c.templates[name]; dup {
			return nil, fmt.Errorf("prompt catalog: duplicate template %q", name)
		}
		sys, err := template.New(name + ".system").Option("missingkey=zero").Parse(s.System)
		if err != nil {
			return nil, fmt.Errorf("prompt %s system: %w", name, err)
		}
		usr, err := template.New(name).Option("missingkey=zero").Parse(s.Template)
		if err != nil {
			return nil, fmt.Errorf("prompt %s: %w", name, err)
		}
		c.templates[name] = &Template{
			Name:        name,
			Agent:       s.Agent,
			Temperature: s.Temperature,
			system:      sys,
			user:        usr,
		}
	}
	for _, name := range required {
		if _, ok := c.templates[name]; !ok {
			return nil, fmt.Errorf("prompt catalog: missing template %q", name)
		}
	}
	return c, nil
}

// Get returns the named template; names are validated at load time.
func (c *Catalog) Get(name string) *Template {
	return c.templates[name]
}

// MustLoad panics when the embedded catalog is invalid.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}
