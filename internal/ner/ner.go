// Package ner wraps named-entity recognition used to find candidate names.
package ner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"
	"go.uber.org/zap"
)

// LabelPerson is the entity label assigned to person names.
const LabelPerson = "PERSON"

// Entity is a recognised span of text.
type Entity struct {
	Text  string
	Label string
}

// Recognizer finds named entities in text.
type Recognizer interface {
	Entities(ctx context.Context, text string) ([]Entity, error)
}

// Prose recognises entities with the prose English model.
type Prose struct {
	logger *zap.Logger
}

// NewProse returns a Recognizer backed by prose. The model ships with the
// library, so construction never touches the network.
func NewProse(logger *zap.Logger) *Prose {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Prose{logger: logger}
}

func (p *Prose) Entities(ctx context.Context, text string) ([]Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("text must not be empty")
	}

	doc, err := prose.NewDocument(text, prose.WithSegmentation(false))
	if err != nil {
		return nil, fmt.Errorf("tag document: %w", err)
	}

	found := doc.Entities()
	entities := make([]Entity, 0, len(found))
	for _, ent := range found {
		entities = append(entities, Entity{Text: ent.Text, Label: ent.Label})
	}

	p.logger.Debug("ner entities", zap.Int("count", len(entities)))

	return entities, nil
}

// FirstPerson returns the first entity labeled as a person.
func FirstPerson(entities []Entity) (string, bool) {
	for _, ent := range entities {
		if strings.EqualFold(ent.Label, LabelPerson) {
			if name := strings.TrimSpace(ent.Text); name != "" {
				return name, true
			}
		}
	}
	return "", false
}
