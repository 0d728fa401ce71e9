package commands

import (
	"errors"
	"testing"

	"github.com/sandeepkv93/taskpad/internal/model"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{":add pay rent due:2024-06-03 p:high", TypeAdd},
		{"edit abc due:none", TypeEdit},
		{"done abc", TypeDone},
		{"toggle abc", TypeDone},
		{"/delete abc", TypeDelete},
		{"rm abc", TypeDelete},
		{"clear", TypeClear},
		{"filter overdue", TypeFilter},
		{"sort priority", TypeSort},
		{"search milk", TypeSearch},
		{"theme", TypeTheme},
		{"move 1 3", TypeMove},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseAddTokens(t *testing.T) {
	cmd, err := Parse(":add Buy oat milk due:2024-06-03 P:High")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	a := cmd.Add
	if a.Text != "Buy oat milk" || a.Due != "2024-06-03" || a.Priority != model.PriorityHigh {
		t.Fatalf("unexpected add args: %+v", a)
	}

	cmd, err = Parse("add Call mom")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Add.Priority != model.PriorityMedium || cmd.Add.Due != "" {
		t.Fatalf("expected defaults, got %+v", cmd.Add)
	}
}

func TestParseEditFields(t *testing.T) {
	cmd, err := Parse("edit abc due:none p:low")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	e := cmd.Edit
	if e.Target != "abc" || e.Text != nil {
		t.Fatalf("unexpected edit target/text: %+v", e)
	}
	if e.Due == nil || *e.Due != "" {
		t.Fatalf("due:none should clear the due date, got %v", e.Due)
	}
	if e.Priority == nil || *e.Priority != model.PriorityLow {
		t.Fatalf("unexpected priority: %v", e.Priority)
	}

	cmd, err = Parse("edit abc New title")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Edit.Text == nil || *cmd.Edit.Text != "New title" || cmd.Edit.Due != nil {
		t.Fatalf("unexpected text edit: %+v", cmd.Edit)
	}
}

func TestParseSearchKeepsQuery(t *testing.T) {
	cmd, err := Parse("search  buy   milk")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Search.Query != "buy   milk" {
		t.Fatalf("unexpected query: %q", cmd.Search.Query)
	}
	cmd, err = Parse("search")
	if err != nil || cmd.Search.Query != "" {
		t.Fatalf("bare search should clear, got %+v (%v)", cmd.Search, err)
	}
}

func TestParseMoveIsOneBased(t *testing.T) {
	cmd, err := Parse("move 1 3")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Move.From != 0 || cmd.Move.To != 2 {
		t.Fatalf("unexpected move args: %+v", cmd.Move)
	}
}

func TestParseInvalidArguments(t *testing.T) {
	for _, in := range []string{
		"add",
		"add due:2024-06-03",
		"add x due:tomorrow",
		"add x p:urgent",
		"add x due:none",
		"edit abc",
		"done",
		"done a b",
		"filter soon",
		"sort random",
		"theme sepia",
		"move 1",
		"move one 2",
	} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
			t.Fatalf("parse %q: expected invalid argument, got %v", in, err)
		}
	}
}

func TestParseUnknownCommand(t *testing.T) {
	_, err := Parse("/unknown do x")
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestParseEmpty(t *testing.T) {
	for _, in := range []string{"", "   ", ":"} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeEmptyInput {
			t.Fatalf("parse %q: expected empty input, got %v", in, err)
		}
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/add write docs")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Add: func(a AddArgs) (Result, error) {
			called = true
			if a.Text != "write docs" {
				t.Fatalf("unexpected text: %q", a.Text)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteClear(t *testing.T) {
	cmd, _ := Parse("clear")
	res, err := Execute(cmd, Handlers{Clear: func() (Result, error) { return Result{Message: "cleared"}, nil }})
	if err != nil || res.Message != "cleared" {
		t.Fatalf("unexpected clear result: %+v (%v)", res, err)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("filter pending")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected missing handler error, got %v", err)
	}
}
