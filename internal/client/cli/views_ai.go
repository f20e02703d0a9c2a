package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
)

type aiTool struct {
	key   string
	title string
	run   func(ctx context.Context) error
}

// viewAIAssistant is a small menu over the assistant endpoints. It returns
// when the user picks "q" or a tool navigates elsewhere.
func (a *App) viewAIAssistant(ctx context.Context, _ Params) error {
	tools := []aiTool{
		{"1", "Enhance text", a.aiEnhance},
		{"2", "Suggest tags", a.aiSuggestTags},
		{"3", "Smart search", a.aiSearch},
		{"4", "Generate a note", a.aiGenerate},
		{"5", "Content ideas", a.aiIdeas},
	}
	start := a.Router.Current()

	for {
		a.printf("\nAI assistant\n")
		for _, t := range tools {
			a.printf("  %s) %s\n", t.key, t.title)
		}
		a.printf("  q) Back\n")

		choice, err := GetSimpleText(a.reader, "Choose a tool", a.Out)
		if err != nil {
			return err
		}
		if choice == "q" || choice == "" {
			return nil
		}

		var picked *aiTool
		for i := range tools {
			if tools[i].key == choice {
				picked = &tools[i]
			}
		}
		if picked == nil {
			a.printf("Unknown choice %q.\n", choice)
			continue
		}
		if err := picked.run(ctx); err != nil {
			return err
		}
		if a.Router.Current() != start {
			return nil
		}
	}
}

func (a *App) aiEnhance(ctx context.Context) error {
	text, err := GetMultiline(a.reader, "Text to enhance", a.Out)
	if err != nil {
		return err
	}
	raw, err := GetSimpleText(a.reader, "Enhancement: grammar, summarize or expand [grammar]", a.Out)
	if err != nil {
		return err
	}
	mode, err := models.ParseEnhanceMode(raw)
	if err != nil {
		a.printf("%s\n", err)
		return nil
	}

	out, err := a.AI.Enhance(ctx, text, mode)
	if err != nil {
		a.fail(ctx, "Failed to enhance text", err)
		return nil
	}
	a.Notifier.Success(ctx, "Text enhanced successfully!")
	a.printf("\n%s\n", out)
	return nil
}

func (a *App) aiSuggestTags(ctx context.Context) error {
	content, err := GetMultiline(a.reader, "Note content", a.Out)
	if err != nil {
		return err
	}
	tags, err := a.AI.SuggestTags(ctx, content)
	if err != nil {
		a.fail(ctx, "Failed to generate tag suggestions", err)
		return nil
	}
	a.Notifier.Success(ctx, "Tag suggestions generated!")
	for i := range tags {
		tags[i] = "#" + tags[i]
	}
	a.printf("%s\n", strings.Join(tags, " "))
	return nil
}

func (a *App) aiSearch(ctx context.Context) error {
	query, err := GetSimpleText(a.reader, "Search for", a.Out)
	if err != nil {
		return err
	}
	entries, err := a.AI.SmartSearch(ctx, query)
	if err != nil {
		a.fail(ctx, "Search failed", err)
		return nil
	}
	a.Notifier.Success(ctx, fmt.Sprintf("Found %d relevant notes", len(entries)))
	if len(entries) > 0 {
		a.printf("%s\n", entriesTable(entries))
	}
	return nil
}

func (a *App) aiGenerate(ctx context.Context) error {
	topic, err := GetSimpleText(a.reader, "Topic", a.Out)
	if err != nil {
		return err
	}
	rawStyle, err := GetSimpleText(a.reader, "Type: informative, creative, technical or personal [informative]", a.Out)
	if err != nil {
		return err
	}
	rawLength, err := GetSimpleText(a.reader, "Length: short, medium or long [medium]", a.Out)
	if err != nil {
		return err
	}

	style, err := models.ParseNoteStyle(rawStyle)
	if err != nil {
		a.printf("%s\n", err)
		return nil
	}
	length, err := models.ParseNoteLength(rawLength)
	if err != nil {
		a.printf("%s\n", err)
		return nil
	}

	e, err := a.AI.Generate(ctx, models.GenerateRequest{Topic: topic, Style: style, Length: length})
	if err != nil {
		a.fail(ctx, "Failed to generate note", err)
		return nil
	}
	a.Notifier.Success(ctx, "AI note generated successfully!")
	a.Router.Navigate(ctx, entryPath(e.ID), false)
	return nil
}

func (a *App) aiIdeas(ctx context.Context) error {
	topic, err := GetSimpleText(a.reader, "Topic", a.Out)
	if err != nil {
		return err
	}
	if strings.TrimSpace(topic) == "" {
		a.Notifier.Error(ctx, "Please enter a topic first")
		return nil
	}
	ideas, err := a.AI.ContentSuggestions(ctx, topic)
	if err != nil {
		a.fail(ctx, "Failed to generate suggestions", err)
		return nil
	}
	a.Notifier.Success(ctx, "Content suggestions generated!")
	for i, idea := range ideas {
		a.printf("%d. %s\n", i+1, idea)
	}
	return nil
}
