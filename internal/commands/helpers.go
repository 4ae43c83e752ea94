package commands

import (
	"fmt"
	"strconv"

	"github.com/taskdock/taskdock/internal/core/todo"
)

// findTodo resolves a command-line reference to a todo: an exact id first,
// then a 1-based position number.
func findTodo(todos []todo.Todo, ref string) (todo.Todo, error) {
	for _, item := range todos {
		if item.ID == ref {
			return item, nil
		}
	}

	if pos, err := strconv.Atoi(ref); err == nil {
		for _, item := range todos {
			if item.Position == pos {
				return item, nil
			}
		}
	}

	return todo.Todo{}, fmt.Errorf("no todo matching %q: %w", ref, todo.ErrNotFound)
}
