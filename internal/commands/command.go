package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/taskpad/internal/model"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeEdit   Type = "edit"
	TypeDone   Type = "done"
	TypeDelete Type = "delete"
	TypeClear  Type = "clear"
	TypeFilter Type = "filter"
	TypeSort   Type = "sort"
	TypeSearch Type = "search"
	TypeTheme  Type = "theme"
	TypeMove   Type = "move"
)

// Types lists the palette commands in help order.
var Types = []Type{TypeAdd, TypeEdit, TypeDone, TypeDelete, TypeClear, TypeFilter, TypeSort, TypeSearch, TypeTheme, TypeMove}

var aliases = map[string]Type{
	"rm":     TypeDelete,
	"del":    TypeDelete,
	"toggle": TypeDone,
	"find":   TypeSearch,
}

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

const (
	dueToken      = "due:"
	priorityToken = "p:"
	// clearDue removes a due date in edit commands.
	clearDue = "none"
)

type AddArgs struct {
	Text     string
	Due      string
	Priority model.Priority
}

// EditArgs carries only the fields present in the command.
type EditArgs struct {
	Target   string
	Text     *string
	Due      *string
	Priority *model.Priority
}

type TargetArgs struct {
	Target string
}

type FilterArgs struct {
	Filter model.Filter
}

type SortArgs struct {
	Sort model.SortMode
}

type SearchArgs struct {
	Query string
}

// ThemeArgs with an empty Theme toggles.
type ThemeArgs struct {
	Theme model.Theme
}

// MoveArgs holds zero-based store positions.
type MoveArgs struct {
	From int
	To   int
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Edit   *EditArgs
	Target *TargetArgs
	Filter *FilterArgs
	Sort   *SortArgs
	Search *SearchArgs
	Theme  *ThemeArgs
	Move   *MoveArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, ":") || strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(raw[1:])
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]
	typ := Type(head)
	if alias, ok := aliases[head]; ok {
		typ = alias
	}

	switch typ {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeEdit:
		return parseEdit(input, args)
	case TypeDone, TypeDelete:
		return parseTarget(input, typ, args)
	case TypeClear:
		return Command{Type: TypeClear, Raw: input}, nil
	case TypeFilter:
		return parseFilter(input, args)
	case TypeSort:
		return parseSort(input, args)
	case TypeSearch:
		return parseSearch(input, raw)
	case TypeTheme:
		return parseTheme(input, args)
	case TypeMove:
		return parseMove(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	fields, err := splitFields(args, false)
	if err != nil {
		return Command{}, err
	}
	if fields.text == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires task text"}
	}
	add := &AddArgs{Text: fields.text, Priority: model.PriorityMedium}
	if fields.due != nil {
		add.Due = *fields.due
	}
	if fields.priority != nil {
		add.Priority = *fields.priority
	}
	return Command{Type: TypeAdd, Raw: raw, Add: add}, nil
}

func parseEdit(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "edit requires a task id and at least one change"}
	}
	fields, err := splitFields(args[1:], true)
	if err != nil {
		return Command{}, err
	}
	edit := &EditArgs{Target: args[0], Due: fields.due, Priority: fields.priority}
	if fields.text != "" {
		text := fields.text
		edit.Text = &text
	}
	if edit.Text == nil && edit.Due == nil && edit.Priority == nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "edit requires at least one change"}
	}
	return Command{Type: TypeEdit, Raw: raw, Edit: edit}, nil
}

func parseTarget(raw string, typ Type, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires exactly one task id", typ)}
	}
	return Command{Type: typ, Raw: raw, Target: &TargetArgs{Target: args[0]}}, nil
}

func parseFilter(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "filter requires one of all, pending, completed, overdue"}
	}
	f, err := model.ParseFilter(args[0])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: err.Error()}
	}
	return Command{Type: TypeFilter, Raw: raw, Filter: &FilterArgs{Filter: f}}, nil
}

func parseSort(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "sort requires one of default, priority, due, manual"}
	}
	s, err := model.ParseSortMode(args[0])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: err.Error()}
	}
	return Command{Type: TypeSort, Raw: raw, Sort: &SortArgs{Sort: s}}, nil
}

// parseSearch keeps the query verbatim after the command word; an empty
// query clears the search.
func parseSearch(raw, body string) (Command, error) {
	query := ""
	if i := strings.IndexFunc(body, isSpace); i >= 0 {
		query = strings.TrimLeftFunc(body[i:], isSpace)
	}
	return Command{Type: TypeSearch, Raw: raw, Search: &SearchArgs{Query: query}}, nil
}

func parseTheme(raw string, args []string) (Command, error) {
	switch len(args) {
	case 0:
		return Command{Type: TypeTheme, Raw: raw, Theme: &ThemeArgs{}}, nil
	case 1:
		th, err := model.ParseTheme(args[0])
		if err != nil {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: err.Error()}
		}
		return Command{Type: TypeTheme, Raw: raw, Theme: &ThemeArgs{Theme: th}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "theme takes at most one argument"}
	}
}

// parseMove reads one-based positions as shown in the list.
func parseMove(raw string, args []string) (Command, error) {
	if len(args) != 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "move requires from and to positions"}
	}
	from, err := strconv.Atoi(args[0])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid position %q", args[0])}
	}
	to, err := strconv.Atoi(args[1])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid position %q", args[1])}
	}
	return Command{Type: TypeMove, Raw: raw, Move: &MoveArgs{From: from - 1, To: to - 1}}, nil
}

type taskFields struct {
	text     string
	due      *string
	priority *model.Priority
}

// splitFields separates due:/p: tokens from free text. allowClear accepts
// due:none to unset the due date.
func splitFields(args []string, allowClear bool) (taskFields, error) {
	var out taskFields
	words := make([]string, 0, len(args))
	for _, arg := range args {
		lower := strings.ToLower(arg)
		switch {
		case strings.HasPrefix(lower, dueToken):
			v := strings.TrimSpace(arg[len(dueToken):])
			if allowClear && strings.EqualFold(v, clearDue) {
				v = ""
			} else if err := model.ValidateDue(v); err != nil || v == "" {
				return out, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid due date %q, want YYYY-MM-DD", v)}
			}
			out.due = &v
		case strings.HasPrefix(lower, priorityToken):
			p, err := model.ParsePriority(arg[len(priorityToken):])
			if err != nil || strings.TrimSpace(arg[len(priorityToken):]) == "" {
				return out, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid priority %q", arg[len(priorityToken):])}
			}
			out.priority = &p
		default:
			words = append(words, arg)
		}
	}
	out.text = strings.TrimSpace(strings.Join(words, " "))
	return out, nil
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t'
}
