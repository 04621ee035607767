// Package persona tailors an instruction to the application the text was
// selected in.
package persona

var builtin = map[string]string{
	"Cursor":             "Senior Software Engineer",
	"Visual Studio Code": "Senior Software Engineer",
	"PyCharm":            "Senior Software Engineer",
	"Xcode":              "Senior Software Engineer",
	"Terminal":           "DevOps Engineer",
	"iTerm":              "DevOps Engineer",

	"Slack":           "Communication Expert",
	"Microsoft Teams": "Communication Expert",
	"Discord":         "Communication Expert",
	"Messages":        "Communication Expert",
	"Mail":            "Professional Email Writer",
	"Outlook":         "Professional Email Writer",

	"Notion":         "Technical Writer",
	"Obsidian":       "Technical Writer",
	"Bear":           "Technical Writer",
	"Notes":          "Note Taker",
	"Pages":          "Document Editor",
	"Microsoft Word": "Document Editor",
	"Google Docs":    "Document Editor",

	"Safari":        "Research Analyst",
	"Google Chrome": "Research Analyst",
	"Firefox":       "Research Analyst",
	"Arc":           "Research Analyst",

	"Figma":           "UX/UI Designer",
	"Sketch":          "UX/UI Designer",
	"Adobe Photoshop": "Creative Professional",

	"Jira":   "Project Manager",
	"Linear": "Project Manager",
	"Asana":  "Project Manager",
	"Trello": "Project Manager",
}

// Table maps application names to personas. The zero value is not usable;
// build one with New.
type Table struct {
	m map[string]string
}

// New returns the built-in table with extra layered on top. Entries in
// extra replace built-in ones; an empty persona removes the mapping.
func New(extra map[string]string) *Table {
	m := make(map[string]string, len(builtin)+len(extra))
	for app, p := range builtin {
		m[app] = p
	}
	for app, p := range extra {
		if p == "" {
			delete(m, app)
			continue
		}
		m[app] = p
	}
	return &Table{m: m}
}

// Lookup returns the persona for app.
func (t *Table) Lookup(app string) (string, bool) {
	p, ok := t.m[app]
	return p, ok
}

// Enhance prefixes instruction with the persona for app. Instructions for
// unknown or empty app names are returned unchanged.
func (t *Table) Enhance(instruction, app string) string {
	p, ok := t.Lookup(app)
	if !ok {
		return instruction
	}
	return "You are a " + p + ". " + instruction
}

// All returns a copy of the mappings.
func (t *Table) All() map[string]string {
	out := make(map[string]string, len(t.m))
	for app, p := range t.m {
		out[app] = p
	}
	return out
}
