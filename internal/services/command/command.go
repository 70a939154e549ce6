// Package command classifies chat text into keyword commands and applies them to a registry.
package command

import (
	"fmt"
	"strings"

	"github.com/keywatch/keyword-bot/internal/keywords"
	"github.com/keywatch/keyword-bot/internal/services/keywordstore"
)

const (
	addPrefix      = "+"
	removePrefix   = "-"
	ideographSpace = "　"
)

// Kind identifies a command.
type Kind string

const (
	KindAdd    Kind = "add"
	KindRemove Kind = "remove"
	KindList   Kind = "list"
	KindEcho   Kind = "echo"
)

// Command is one classified message.
type Command struct {
	Kind Kind
	// Operand is the raw text after the +/- prefix, original casing kept.
	Operand string
	// Text is the message exactly as received.
	Text string
}

// Result is the outcome of executing a Command for one user.
type Result struct {
	Reply string
	// Mutated is set when the registry changed and has to be persisted.
	Mutated  bool
	Added    []string
	Removed  []string
	Keywords []string
}

// Parse classifies text. Ideographic spaces become ASCII spaces and surrounding
// whitespace is dropped before matching; matching itself is case-insensitive.
func Parse(text string) Command {
	cmd := strings.TrimSpace(strings.ReplaceAll(text, ideographSpace, " "))
	lower := strings.ToLower(cmd)

	switch {
	case strings.HasPrefix(lower, addPrefix):
		return Command{Kind: KindAdd, Operand: cmd[len(addPrefix):], Text: text}
	case strings.HasPrefix(lower, removePrefix):
		return Command{Kind: KindRemove, Operand: cmd[len(removePrefix):], Text: text}
	case isListRequest(lower):
		return Command{Kind: KindList, Text: text}
	default:
		return Command{Kind: KindEcho, Text: text}
	}
}

func isListRequest(lower string) bool {
	fields := strings.Fields(lower)
	if len(fields) == 0 {
		return false
	}
	_, ok := listSynonyms[fields[0]]
	return ok
}

// Execute applies cmd to userID's record in reg and composes the reply.
// Add and remove always store the record back, even when nothing changed.
func Execute(reg *keywordstore.Registry, userID string, cmd Command) Result {
	switch cmd.Kind {
	case KindAdd:
		return add(reg, userID, cmd.Operand)
	case KindRemove:
		return remove(reg, userID, cmd.Operand)
	case KindList:
		rec := reg.GetOrCreate(userID)
		return Result{
			Reply:    fmt.Sprintf(MsgCurrentKeywords, orMarker(rec.Keywords, MarkerEmpty)),
			Keywords: rec.Keywords,
		}
	default:
		return Result{Reply: fmt.Sprintf(MsgEcho, cmd.Text, userID)}
	}
}

func add(reg *keywordstore.Registry, userID, operand string) Result {
	rec := reg.GetOrCreate(userID)
	present := keywords.KeySet(rec.Keywords)
	added := []string{}
	for _, kw := range keywords.Normalize(operand) {
		key := keywords.Key(kw)
		if _, ok := present[key]; ok {
			continue
		}
		present[key] = struct{}{}
		rec.Keywords = append(rec.Keywords, kw)
		added = append(added, kw)
	}
	reg.Put(userID, rec)

	return Result{
		Reply:    fmt.Sprintf(MsgRegistered, orMarker(added, MarkerNoneAdded), orMarker(rec.Keywords, MarkerEmpty)),
		Mutated:  true,
		Added:    added,
		Keywords: rec.Keywords,
	}
}

func remove(reg *keywordstore.Registry, userID, operand string) Result {
	rec := reg.GetOrCreate(userID)
	drop := keywords.KeySet(keywords.Normalize(operand))
	kept := make([]string, 0, len(rec.Keywords))
	removed := []string{}
	for _, kw := range rec.Keywords {
		if _, ok := drop[keywords.Key(kw)]; ok {
			removed = append(removed, kw)
			continue
		}
		kept = append(kept, kw)
	}
	rec.Keywords = kept
	reg.Put(userID, rec)

	return Result{
		Reply:    fmt.Sprintf(MsgRemoved, orMarker(removed, MarkerNoneMatched), orMarker(kept, MarkerEmpty)),
		Mutated:  true,
		Removed:  removed,
		Keywords: kept,
	}
}

func orMarker(list []string, marker string) string {
	if len(list) == 0 {
		return marker
	}
	return keywords.Join(list)
}
