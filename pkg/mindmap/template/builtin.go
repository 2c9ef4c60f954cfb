package template

import (
	"maps"
	"slices"
)

// builtins holds the blueprints shipped with the application.
var builtins = map[string]Blueprint{
	"project-plan": {
		Root: "Project Plan",
		Sections: []Section{
			{Title: "Goals", Children: []string{"Primary goal", "Stretch goal"}},
			{Title: "Milestones", Children: []string{"Kickoff", "Alpha", "Beta", "Launch"}},
			{Title: "Risks", Children: []string{"Schedule", "Scope", "Resourcing"}},
			{Title: "Team", Children: []string{"Engineering", "Design", "QA"}},
		},
	},
	"weekly-review": {
		Root: "Weekly Review",
		Sections: []Section{
			{Title: "Wins", Children: []string{"What went well"}},
			{Title: "Challenges", Children: []string{"What was hard"}},
			{Title: "Next Week", Children: []string{"Top priority", "Second priority", "Third priority"}},
		},
	},
	"brainstorm": {
		Root: "Brainstorm",
		Sections: []Section{
			{Title: "Ideas"},
			{Title: "Questions"},
			{Title: "Decisions"},
		},
	},
	"retrospective": {
		Root: "Retrospective",
		Sections: []Section{
			{Title: "Keep"},
			{Title: "Start"},
			{Title: "Stop"},
			{Title: "Actions", Children: []string{"Owner TBD"}},
		},
	},
}

// Builtins returns the built-in blueprint registry. The returned map is
// a copy; mutating it does not affect the registry.
func Builtins() map[string]Blueprint {
	return maps.Clone(builtins)
}

// Keys returns the built-in template keys in sorted order.
func Keys() []string {
	return slices.Sorted(maps.Keys(builtins))
}
