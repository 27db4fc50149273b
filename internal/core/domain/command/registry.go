package command

import (
	"errors"
	"ryzexbot/internal/core/port"
	"sort"
	"strings"
	"unicode"

	"github.com/rs/zerolog/log"
)

type Registry struct {
	commands map[string]port.Command
}

func (r *Registry) Register(handler port.Command) {
	if r.commands == nil {
		r.commands = make(map[string]port.Command)
	}

	log.Info().Str("handler", handler.GetCommand()).Msg("adding command handler to registry")
	r.commands[handler.GetCommand()] = handler
}

func (r *Registry) Get(command string) (port.Command, error) {
	log.Debug().Str("command", command).Msg("fetching command handler from registry")

	if r.commands == nil {
		err := errors.New("can't fetch command, registry not initialized")
		return nil, err
	}

	handler, ok := r.commands[command]
	if !ok {
		return nil, errors.New("command not found")
	}

	return handler, nil
}

// ListCommands returns the registered command identifiers in lexical order.
func (r *Registry) ListCommands() []string {
	keys := make([]string, 0, len(r.commands))
	for k := range r.commands {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// ParseCommandArgs returns everything after the command word, trimmed. Any whitespace separates the command word,
// line breaks inside the arguments are kept.
func ParseCommandArgs(args string) string {
	trimmed := strings.TrimSpace(args)

	i := strings.IndexFunc(trimmed, unicode.IsSpace)
	if i < 0 {
		return ""
	}

	return strings.TrimSpace(trimmed[i:])
}

// ParseCommand returns the lower-cased command word without a trailing @botname mention.
func ParseCommand(args string) string {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return ""
	}

	name, _, _ := strings.Cut(fields[0], "@")
	return strings.ToLower(name)
}
