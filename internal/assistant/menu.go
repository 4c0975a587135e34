package assistant

import "errors"

// ErrInvalidChoice is returned by TaskForChoice for anything outside the menu.
var ErrInvalidChoice = errors.New("invalid choice")

// MenuItem is one entry of the task menu.
type MenuItem struct {
	Key   string
	Label string
	Task  string // empty means the operator describes the task
}

var menu = []MenuItem{
	{
		Key:   "1",
		Label: "Fix Render deployment issue",
		Task:  "Fix the Render deployment issue. The error is: 'Could not open requirements file: [Errno 2] No such file or requirements.txt'. Find the correct path to requirements.txt and update render.yaml accordingly.",
	},
	{
		Key:   "2",
		Label: "Implement real API integration",
		Task:  "Implement real football API integration to replace the mock data currently being used.",
	},
	{
		Key:   "3",
		Label: "Set up authentication",
		Task:  "Set up user authentication for the StatTact platform.",
	},
	{
		Key:   "4",
		Label: "Enhance UI components",
		Task:  "Enhance UI components, particularly the formation visualization with player drag-and-drop functionality.",
	},
	{
		Key:   "5",
		Label: "Custom task",
	},
}

// Menu returns the task menu in display order.
func Menu() []MenuItem {
	out := make([]MenuItem, len(menu))
	copy(out, menu)
	return out
}

// TaskForChoice maps a menu key to its item.
func TaskForChoice(choice string) (MenuItem, error) {
	for _, m := range menu {
		if m.Key == choice {
			return m, nil
		}
	}
	return MenuItem{}, ErrInvalidChoice
}
