package ui

import (
	"slices"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// leaderSeq is how the space leader is written in a bound sequence.
const leaderSeq = "SPC"

type binding struct {
	cmd   tea.Cmd
	desc  string
	modes []AppMode // nil = every mode
}

// KeybindRegistry maps key sequences to commands.
// Sequences use spacemacs notation: "SPC g d" is space, g, d. Single keys
// use tea's names: "j", "[", "ctrl+c".
type KeybindRegistry struct {
	bindings map[string]binding
}

// NewKeybindRegistry creates an empty registry.
func NewKeybindRegistry() *KeybindRegistry {
	return &KeybindRegistry{bindings: make(map[string]binding)}
}

// Bind registers seq without a help description.
func (r *KeybindRegistry) Bind(seq string, cmd tea.Cmd) {
	r.BindWithDescForMode(seq, cmd, "", nil)
}

// BindWithDesc registers seq for every mode.
func (r *KeybindRegistry) BindWithDesc(seq string, cmd tea.Cmd, desc string) {
	r.BindWithDescForMode(seq, cmd, desc, nil)
}

// BindWithDescForMode registers seq, active only in modes (all modes when
// empty). Rebinding seq replaces the command, the description and the modes.
func (r *KeybindRegistry) BindWithDescForMode(seq string, cmd tea.Cmd, desc string, modes []AppMode) {
	b := binding{cmd: cmd, desc: desc}
	if len(modes) > 0 {
		b.modes = slices.Clone(modes)
	}
	r.bindings[normalizeSeq(seq)] = b
}

// Lookup returns the command bound to seq in mode, or nil.
func (r *KeybindRegistry) Lookup(seq string, mode AppMode) tea.Cmd {
	b, ok := r.bindings[normalizeSeq(seq)]
	if !ok || !b.activeIn(mode) {
		return nil
	}
	return b.cmd
}

// HasPrefix reports whether a longer binding continues seq.
func (r *KeybindRegistry) HasPrefix(seq string) bool {
	prefix := normalizeSeq(seq) + " "
	for s := range r.bindings {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

// Hints returns every bound sequence with its description, or the sequence
// itself when it has none.
func (r *KeybindRegistry) Hints() map[string]string {
	out := make(map[string]string, len(r.bindings))
	for s, b := range r.bindings {
		if b.cmd == nil {
			continue
		}
		out[s] = orElse(b.desc, s)
	}
	return out
}

// submenuLabel names leader keys that open a submenu.
var submenuLabel = map[string]string{
	"g": "Go to",
}

// LeaderHints returns the keys that may follow current ("" = just after SPC)
// in mode, each with a label. A key that opens a submenu is labelled by the
// submenu rather than by any one binding below it.
func (r *KeybindRegistry) LeaderHints(current string, mode AppMode) map[string]string {
	prefix := leaderSeq + " "
	if current != "" {
		prefix = normalizeSeq(current) + " "
	}
	out := make(map[string]string)
	for s, b := range r.bindings {
		if b.cmd == nil || !b.activeIn(mode) {
			continue
		}
		rest, ok := strings.CutPrefix(s, prefix)
		if !ok || rest == "" {
			continue
		}
		next, _, _ := strings.Cut(rest, " ")
		if r.HasPrefix(prefix + next) {
			out[next] = orElse(submenuLabel[next], next+"…")
			continue
		}
		out[next] = orElse(b.desc, s)
	}
	return out
}

func (b binding) activeIn(mode AppMode) bool {
	return b.modes == nil || slices.Contains(b.modes, mode)
}

// orElse returns the first non-empty string.
func orElse(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

// normalizeSeq writes tea key strings in registry notation.
func normalizeSeq(seq string) string {
	if seq == " " {
		return leaderSeq
	}
	parts := strings.Fields(seq)
	for i, p := range parts {
		if p == "space" {
			parts[i] = leaderSeq
		}
	}
	return strings.Join(parts, " ")
}

// KeyHandler tracks the leader sequence being typed and dispatches complete
// sequences to the registry.
type KeyHandler struct {
	registry *KeybindRegistry
	seq      []string // nil outside leader mode
}

// NewKeyHandler creates a handler with space as leader.
func NewKeyHandler(reg *KeybindRegistry) *KeyHandler {
	return &KeyHandler{registry: reg}
}

// Registry returns the bindings the handler dispatches to.
func (h *KeyHandler) Registry() *KeybindRegistry { return h.registry }

// InLeader reports whether a leader sequence is being typed.
func (h *KeyHandler) InLeader() bool { return h.seq != nil }

// Pending returns the sequence typed so far in leader mode.
func (h *KeyHandler) Pending() string {
	return strings.Join(h.seq, " ")
}

// Reset leaves leader mode.
func (h *KeyHandler) Reset() {
	h.seq = nil
}

// Handle processes a key in mode. consumed means views must not see the key.
// Every key typed in leader mode is consumed, bound or not.
func (h *KeyHandler) Handle(msg tea.KeyMsg, mode AppMode) (consumed bool, cmd tea.Cmd) {
	part := normalizeSeq(msg.String())

	if !h.InLeader() {
		switch part {
		case leaderSeq:
			h.seq = []string{leaderSeq}
			return true, nil
		case "esc":
			return false, nil
		}
		cmd = h.registry.Lookup(part, mode)
		return cmd != nil, cmd
	}

	if part == "esc" {
		h.Reset()
		return true, nil
	}
	h.seq = append(h.seq, part)
	seq := h.Pending()
	if cmd = h.registry.Lookup(seq, mode); cmd != nil {
		h.Reset()
		return true, cmd
	}
	if !h.registry.HasPrefix(seq) {
		h.Reset()
	}
	return true, nil
}

// KeyMap adapts the leader hints for bubbles/help.
type KeyMap struct {
	handler *KeyHandler
	mode    AppMode
}

var _ help.KeyMap = (*KeyMap)(nil)

// NewKeyMap creates a KeyMap for the handler's current sequence in mode.
func NewKeyMap(handler *KeyHandler, mode AppMode) *KeyMap {
	return &KeyMap{handler: handler, mode: mode}
}

// ShortHelp implements help.KeyMap. Keys are sorted; esc comes last.
func (km *KeyMap) ShortHelp() []key.Binding {
	if km.handler == nil || km.handler.registry == nil {
		return nil
	}
	hints := km.handler.registry.LeaderHints(km.handler.Pending(), km.mode)
	if len(hints) == 0 {
		return nil
	}
	keys := make([]string, 0, len(hints))
	for k := range hints {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]key.Binding, 0, len(keys)+1)
	for _, k := range keys {
		out = append(out, key.NewBinding(key.WithKeys(k), key.WithHelp(k, hints[k])))
	}
	return append(out, key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")))
}

// FullHelp implements help.KeyMap.
func (km *KeyMap) FullHelp() [][]key.Binding {
	if short := km.ShortHelp(); len(short) > 0 {
		return [][]key.Binding{short}
	}
	return nil
}
