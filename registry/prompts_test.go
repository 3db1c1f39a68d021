package registry

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/mdamire/mcp-serializer/mcp"
	"github.com/mdamire/mcp-serializer/typespec"
)

func greetPromptMeta() FunctionMeta {
	return FunctionMeta{
		Name:        "greet",
		Description: "greets a person",
		Args: []ArgMeta{
			{Name: "who", Type: typespec.String, Description: "person to greet", Required: true},
			{Name: "formal", Type: typespec.Optional(typespec.Boolean)},
		},
	}
}

func greetPromptHandler(ctx context.Context, args map[string]any) (*PromptResult, error) {
	result := NewPromptResult()
	if err := result.AddText("Hello, "+args["who"].(string), AsRole(mcp.RoleUser)); err != nil {
		return nil, err
	}
	return result, nil
}

func TestPrompts_ListingCarriesArguments(t *testing.T) {
	prompts := NewPrompts()
	prompts.Register(greetPromptHandler, greetPromptMeta(), Extra{})

	result, err := prompts.List(mustPaginator(t, 10), "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(result.Prompts) != 1 {
		t.Fatalf("expected 1 prompt, got %+v", result.Prompts)
	}
	args := result.Prompts[0].Arguments
	if len(args) != 2 {
		t.Fatalf("expected 2 arguments, got %+v", args)
	}
	if args[0].Name != "who" || args[0].Type != "string" || !args[0].Required {
		t.Fatalf("unexpected first argument: %+v", args[0])
	}
	if args[1].Name != "formal" || args[1].Type != "boolean" || args[1].Required {
		t.Fatalf("unexpected second argument: %+v", args[1])
	}
}

func TestPrompts_EmptyResultMarshalsEmptyMessages(t *testing.T) {
	prompts := NewPrompts()
	prompts.Register(func(ctx context.Context, args map[string]any) (*PromptResult, error) {
		return NewPromptResult(), nil
	}, FunctionMeta{Name: "blank"}, Extra{})

	result, err := prompts.Get(context.Background(), "blank", nil)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if result.Messages == nil {
		t.Fatal("messages must not be nil")
	}

	out, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(out), `"messages":[]`) {
		t.Fatalf("expected empty messages array on the wire, got %s", out)
	}
}

func TestPrompts_GetValidatesAndInvokes(t *testing.T) {
	prompts := NewPrompts()
	prompts.Register(greetPromptHandler, greetPromptMeta(), Extra{})

	result, err := prompts.Get(context.Background(), "greet", map[string]any{"who": "Ada"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if result.Description != "greets a person" {
		t.Fatalf("expected metadata description fallback, got %q", result.Description)
	}
	if len(result.Messages) != 1 || result.Messages[0].Content.Text != "Hello, Ada" {
		t.Fatalf("unexpected messages: %+v", result.Messages)
	}
	if result.Messages[0].Role != mcp.RoleUser {
		t.Fatalf("unexpected role: %v", result.Messages[0].Role)
	}
}

func TestPrompts_ExtraDescriptionWins(t *testing.T) {
	prompts := NewPrompts()
	prompts.Register(greetPromptHandler, greetPromptMeta(), Extra{Description: "friendly greeting"})

	result, err := prompts.Get(context.Background(), "greet", map[string]any{"who": "Ada"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if result.Description != "friendly greeting" {
		t.Fatalf("expected extra description, got %q", result.Description)
	}
}

func TestPrompts_GetNotFound(t *testing.T) {
	prompts := NewPrompts()
	_, err := prompts.Get(context.Background(), "missing", nil)
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestPrompts_MissingRequiredArgument(t *testing.T) {
	prompts := NewPrompts()
	prompts.Register(greetPromptHandler, greetPromptMeta(), Extra{})

	_, err := prompts.Get(context.Background(), "greet", map[string]any{})
	var missing *RequiredParameterNotFoundError
	if !errors.As(err, &missing) {
		t.Fatalf("expected RequiredParameterNotFoundError, got %v", err)
	}
	if missing.Param != "who" {
		t.Fatalf("unexpected param %q", missing.Param)
	}
}

func TestPrompts_NilResultIsUnsupported(t *testing.T) {
	prompts := NewPrompts()
	prompts.Register(func(ctx context.Context, args map[string]any) (*PromptResult, error) {
		return nil, nil
	}, FunctionMeta{Name: "empty"}, Extra{})

	_, err := prompts.Get(context.Background(), "empty", nil)
	var unsupported *UnsupportedResultTypeError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedResultTypeError, got %v", err)
	}
}

func TestPromptResult_DefaultRole(t *testing.T) {
	result := NewPromptResult()
	if err := result.AddText("no explicit role"); err != nil {
		t.Fatalf("add text: %v", err)
	}
	if result.Messages()[0].Role != mcp.RoleAssistant {
		t.Fatalf("expected assistant default, got %v", result.Messages()[0].Role)
	}

	if err := result.SetDefaultRole(mcp.RoleUser); err != nil {
		t.Fatalf("set default role: %v", err)
	}
	if err := result.AddText("after override"); err != nil {
		t.Fatalf("add text: %v", err)
	}
	if result.Messages()[1].Role != mcp.RoleUser {
		t.Fatalf("expected user role, got %v", result.Messages()[1].Role)
	}

	if err := result.SetDefaultRole("system"); err == nil {
		t.Fatalf("expected error for invalid role")
	}
}
