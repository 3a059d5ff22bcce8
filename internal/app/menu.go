// Package app provides the interactive terminal front end for document
// generation: a navigable menu over a merge.Session.
package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mergedocs/mergedocs/internal/merge"
)

/* ----------------------------------------
	MENU TREE
---------------------------------------- */

// Prompt describes one line of input collected before an action runs.
type Prompt struct {
	Label   string
	Default string // used when the user submits an empty line
}

// MenuItem is one selectable entry. An item either descends into a submenu,
// collects prompt input and runs its action, or runs its action directly.
// Items labeled "Back" are wired to the parent menu by linkParents.
type MenuItem struct {
	Label   string
	Submenu *Menu
	Prompts []Prompt
	Action  func(s *merge.Session, values []string) tea.Cmd
}

// Menu is a titled list of items with a link to its parent.
type Menu struct {
	Title  string
	Items  []MenuItem
	Parent *Menu
}

/* ----------------------------------------
	MENU TREE DEFINITION
---------------------------------------- */

func linkParents(menu *Menu, parent *Menu) {
	menu.Parent = parent

	for i := range menu.Items {
		item := &menu.Items[i]

		if item.Label == "Back" {
			item.Submenu = parent
			continue
		}

		if item.Submenu != nil {
			linkParents(item.Submenu, menu)
		}
	}
}

func buildMenuTree() *Menu {

	/* Submenus */
	generate := &Menu{
		Title: "Generate Output",
		Items: []MenuItem{
			{
				Label:   "Individual Files",
				Prompts: []Prompt{{Label: "CSV field for filenames (optional)"}},
				Action:  generateAction(merge.ModeIndividual),
			},
			{
				Label:  "Combined File",
				Action: generateAction(merge.ModeCombined),
			},
			{Label: "Back"},
		},
	}

	/* Root Menu */
	root := &Menu{
		Title: "Main Menu",
		Items: []MenuItem{
			{
				Label:   "Load Template",
				Prompts: []Prompt{{Label: "Template file path"}},
				Action:  loadTemplateAction,
			},
			{
				Label:   "Load CSV Data",
				Prompts: []Prompt{{Label: "CSV file path"}},
				Action:  loadDataAction,
			},
			{
				Label: "Set Delimiters",
				Prompts: []Prompt{
					{Label: "Start delimiter", Default: "{{"},
					{Label: "End delimiter", Default: "}}"},
				},
				Action: setDelimitersAction,
			},
			{Label: "Generate ->", Submenu: generate},
			{Label: "View Examples", Action: examplesAction},
			{Label: "Quit"},
		},
	}

	linkParents(root, nil)

	return root
}
