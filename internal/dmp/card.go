package dmp

import (
	"bufio"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	frontMatterMarker     = "---"
	frontMatterAltClosing = "..."
)

var semverPattern = regexp.MustCompile(`^\d+\.\d+\.\d+([-+][0-9A-Za-z.-]+)?$`)

// Required decision card fields, in reporting order.
var RequiredCardFields = []string{
	"name",
	"version",
	"decision_model_package_version",
	"problem_class",
	"license",
	"authors",
	"tags",
}

// Author is one entry of the decision card's authors list.
type Author struct {
	Name  string `yaml:"name" json:"name"`
	Email string `yaml:"email,omitempty" json:"email,omitempty"`
}

// Card is the decision card's front matter.
type Card struct {
	Name                        string   `yaml:"name" json:"name"`
	Version                     string   `yaml:"version" json:"version"`
	DecisionModelPackageVersion string   `yaml:"decision_model_package_version" json:"decision_model_package_version"`
	ProblemClass                string   `yaml:"problem_class" json:"problem_class"`
	License                     string   `yaml:"license" json:"license"`
	Authors                     []Author `yaml:"authors" json:"authors"`
	Tags                        []string `yaml:"tags" json:"tags"`

	// Fields holds the raw front matter, including keys not modelled above.
	Fields map[string]any `yaml:"-" json:"-"`
	// Body is the free-form documentation after the front matter.
	Body string `yaml:"-" json:"-"`
}

// ParseCard extracts and validates the front matter of a decision card. It
// returns the decoded card (possibly partial) and every problem found, each
// prefixed with the card's file name.
func ParseCard(text string) (*Card, []string) {
	raw, body, problem := splitFrontMatter(text)
	if problem != "" {
		return nil, []string{cardMessage(problem)}
	}

	var fields any
	if err := yaml.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, []string{cardMessage(fmt.Sprintf("front matter is not valid YAML: %v", err))}
	}
	mapping, ok := fields.(map[string]any)
	if !ok {
		return nil, []string{cardMessage("YAML front matter must be a mapping")}
	}

	card := &Card{Fields: mapping, Body: body}
	var problems []string

	for _, field := range RequiredCardFields {
		value, present := mapping[field]
		if !present || value == nil {
			problems = append(problems, cardMessage(fmt.Sprintf("missing required field: %s", field)))
			continue
		}
		problems = append(problems, card.checkField(field, value)...)
	}

	return card, problems
}

// checkField validates one present required field and records its value on the card.
func (c *Card) checkField(field string, value any) []string {
	switch field {
	case "name", "problem_class", "license":
		text, ok := nonEmptyString(value)
		if !ok {
			return []string{cardMessage(fmt.Sprintf("%s must be a non-empty string", field))}
		}
		switch field {
		case "name":
			c.Name = text
		case "problem_class":
			c.ProblemClass = text
		default:
			c.License = text
		}

	case "version":
		text, ok := value.(string)
		if !ok || !semverPattern.MatchString(text) {
			return []string{cardMessage(fmt.Sprintf("version must be a semantic version like 1.0.0, got %v", value))}
		}
		c.Version = text

	case "decision_model_package_version":
		text, ok := value.(string)
		if !ok || text != Version {
			return []string{cardMessage(fmt.Sprintf("decision_model_package_version must be '%s'", Version))}
		}
		c.DecisionModelPackageVersion = text

	case "authors":
		return c.checkAuthors(value)

	case "tags":
		return c.checkTags(value)
	}
	return nil
}

func (c *Card) checkAuthors(value any) []string {
	list, ok := value.([]any)
	if !ok || len(list) == 0 {
		return []string{cardMessage("authors must be a non-empty list")}
	}

	var problems []string
	for i, entry := range list {
		author, ok := entry.(map[string]any)
		if !ok {
			problems = append(problems, cardMessage(fmt.Sprintf("authors[%d] must be a mapping with a name", i+1)))
			continue
		}
		name, ok := nonEmptyString(author["name"])
		if !ok {
			problems = append(problems, cardMessage(fmt.Sprintf("authors[%d].name must be a non-empty string", i+1)))
			continue
		}
		email, _ := author["email"].(string)
		c.Authors = append(c.Authors, Author{Name: name, Email: email})
	}
	return problems
}

func (c *Card) checkTags(value any) []string {
	list, ok := value.([]any)
	if !ok || len(list) == 0 {
		return []string{cardMessage("tags must be a non-empty list")}
	}

	var problems []string
	for i, entry := range list {
		tag, ok := nonEmptyString(entry)
		if !ok {
			problems = append(problems, cardMessage(fmt.Sprintf("tags[%d] must be a non-empty string", i+1)))
			continue
		}
		c.Tags = append(c.Tags, tag)
	}
	return problems
}

// splitFrontMatter returns the front matter block and the remaining body. The
// block opens with a "---" line and closes with "---" or "...".
func splitFrontMatter(text string) (string, string, string) {
	scanner := bufio.NewScanner(strings.NewReader(strings.TrimPrefix(text, "\ufeff")))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	opened := false
	var front []string
	var body []string
	closed := false

	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimRight(line, " \t\r")
		switch {
		case !opened:
			if strings.TrimSpace(trimmed) == "" {
				continue
			}
			if trimmed != frontMatterMarker {
				return "", "", "missing YAML front matter"
			}
			opened = true
		case !closed:
			if trimmed == frontMatterMarker || trimmed == frontMatterAltClosing {
				closed = true
				continue
			}
			front = append(front, line)
		default:
			body = append(body, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return "", "", fmt.Sprintf("cannot read front matter: %v", err)
	}

	if !opened {
		return "", "", "missing YAML front matter"
	}
	if !closed {
		return "", "", "incomplete YAML front matter"
	}
	return strings.Join(front, "\n"), strings.TrimSpace(strings.Join(body, "\n")), ""
}

func nonEmptyString(value any) (string, bool) {
	text, ok := value.(string)
	if !ok || strings.TrimSpace(text) == "" {
		return "", false
	}
	return text, true
}

func cardMessage(message string) string {
	return DecisionCardFile + ": " + message
}
