package session_test

import (
	"errors"
	"io"
	"slices"
	"strings"
	"testing"

	"charm.land/log/v2"

	"github.com/Gaurav-Gosain/dtmux/internal/keys"
	"github.com/Gaurav-Gosain/dtmux/internal/layout"
	"github.com/Gaurav-Gosain/dtmux/internal/pager"
	"github.com/Gaurav-Gosain/dtmux/internal/session"
)

type host struct {
	next      int
	destroyed []layout.PaneID
	fail      bool
}

func (h *host) CreatePane() (layout.PaneID, error) {
	if h.fail {
		return "", errors.New("spawn failed")
	}
	id := layout.PaneID(string(rune('A' + h.next)))
	h.next++
	return id, nil
}

func (h *host) DestroyPane(id layout.PaneID) {
	h.destroyed = append(h.destroyed, id)
}

type keymap map[string]string

func (k keymap) GetAction(key string) string { return k[key] }

var testKeymap = keymap{
	"ctrl+a":       "enter_mux_mode",
	"ctrl+shift+p": "toggle_paging",
	"ctrl+n":       "new_pane",
	"ctrl+t":       "new_tab",
	"ctrl+x":       "close_pane",
	"ctrl+right":   "next_pane",
	"ctrl+left":    "prev_pane",
	"ctrl+e":       "quit",
}

type events struct {
	focus     []layout.PaneID
	status    []string
	offsets   []int
	continues []int
	closed    int
}

func (e *events) hooks() session.Hooks {
	return session.Hooks{
		ActivePaneChanged: func(p layout.PaneID) { e.focus = append(e.focus, p) },
		StatusLineChanged: func(p layout.PaneID, text string) {
			e.status = append(e.status, string(p)+":"+text)
		},
		ScrollOffsetChanged: func(_ layout.PaneID, off int) { e.offsets = append(e.offsets, off) },
		PauseContinue:       func(_ layout.PaneID, limit int) { e.continues = append(e.continues, limit) },
		CloseWindow:         func() { e.closed++ },
	}
}

func newWindow(t *testing.T, opts session.Options) (*session.Window, *host, *events) {
	t.Helper()
	h := &host{}
	ev := &events{}
	opts.Logger = log.New(io.Discard)
	w := session.NewWindow(h, testKeymap, ev.hooks(), opts)
	if _, err := w.Open(); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return w, h, ev
}

func press(w *session.Window, code rune, mod keys.Mod) bool {
	return w.HandleKey(keys.Press(code, mod))
}

func TestOpenFocusesFirstPane(t *testing.T) {
	w, _, ev := newWindow(t, session.Options{})
	if s := w.Focused(); s == nil || s.ID() != "A" {
		t.Fatalf("Focused() = %v, want A", s)
	}
	if !slices.Equal(ev.focus, []layout.PaneID{"A"}) {
		t.Errorf("focus hooks = %v, want [A]", ev.focus)
	}
}

func TestMuxSplitThroughKeymap(t *testing.T) {
	w, _, ev := newWindow(t, session.Options{})

	if !press(w, 'a', keys.ModCtrl) {
		t.Fatal("mux hotkey should be consumed")
	}
	if !w.Session("A").MuxArmed() {
		t.Fatal("mux mode should be armed")
	}
	if !press(w, keys.KeyDown, keys.ModCtrl) {
		t.Fatal("mux command should be consumed")
	}

	if got := w.Tree().String(); got != "Column[A, B]" {
		t.Errorf("tree = %s, want Column[A, B]", got)
	}
	if w.Focused().ID() != "B" {
		t.Errorf("focus = %s, want B", w.Focused().ID())
	}
	if w.Session("A").MuxArmed() {
		t.Error("mux mode should be over")
	}
	want := []string{"A:(MUX mode)", "A:"}
	if !slices.Equal(ev.status, want) {
		t.Errorf("status hooks = %v, want %v", ev.status, want)
	}
}

func TestMuxNavigation(t *testing.T) {
	w, _, _ := newWindow(t, session.Options{})
	press(w, 'n', keys.ModCtrl)
	press(w, 'n', keys.ModCtrl)
	if got := len(w.Tree().Leaves()); got != 3 {
		t.Fatalf("panes = %d, want 3", got)
	}

	start := w.Focused().ID()
	for range 3 {
		press(w, 'a', keys.ModCtrl)
		press(w, keys.KeyRight, 0)
	}
	if w.Focused().ID() != start {
		t.Errorf("three steps right ended on %s, want %s", w.Focused().ID(), start)
	}
}

func TestMuxCloseLastPane(t *testing.T) {
	w, h, ev := newWindow(t, session.Options{})

	press(w, 'a', keys.ModCtrl)
	if !press(w, 'w', keys.ModCtrl) {
		t.Fatal("ctrl+w should be consumed")
	}
	if ev.closed != 1 {
		t.Errorf("CloseWindow called %d times, want 1", ev.closed)
	}
	if w.Tree().Len() != 1 || len(h.destroyed) != 0 {
		t.Error("the tree is left for the host to tear down")
	}
}

func TestPagingThroughKeymap(t *testing.T) {
	w, _, ev := newWindow(t, session.Options{})
	s := w.Focused()
	s.SetContentHeight(100)

	press(w, 'P', keys.ModCtrl|keys.ModShift)
	if s.Pager().Mode() != pager.Paused {
		t.Fatalf("Mode() = %v, want paused", s.Pager().Mode())
	}
	if !strings.HasPrefix(s.Status(), "PAUSED:") {
		t.Errorf("Status() = %q", s.Status())
	}

	if !press(w, keys.KeySpace, 0) {
		t.Error("space should scroll, not type")
	}
	if s.Scroll().Offset() != 23 {
		t.Errorf("Offset() = %d, want 23", s.Scroll().Offset())
	}
	if len(ev.offsets) == 0 {
		t.Error("scrolling should report the offset")
	}

	if press(w, 'c', keys.ModCtrl) {
		t.Error("ctrl+c must reach the program")
	}
	if len(ev.continues) == 0 {
		t.Error("ctrl+c should continue held output")
	}

	press(w, 'P', keys.ModCtrl|keys.ModShift)
	if s.Pager().Active() {
		t.Error("exit key should leave paging")
	}
	if last := ev.status[len(ev.status)-1]; last != "A:" {
		t.Errorf("last status = %q, want cleared", last)
	}
}

func TestUnboundKeysReachProgram(t *testing.T) {
	w, _, _ := newWindow(t, session.Options{})
	s := w.Focused()
	s.SetContentHeight(100)

	if press(w, 'x', 0) {
		t.Error("plain keys belong to the program")
	}
	if got, want := s.Scroll().PauseLimit(), 100-1+24; got != want {
		t.Errorf("PauseLimit() = %d, want %d", got, want)
	}
	if press(w, 'e', keys.ModCtrl) {
		t.Error("bindings for other layers are not session commands")
	}
	if w.HandleKey(keys.Event{Code: 'x'}) {
		t.Error("releases are not consumed outside modal states")
	}
}

func TestNewPaneSplitMode(t *testing.T) {
	tests := []struct {
		mode session.SplitMode
		cols int
		rows int
		want string
	}{
		{session.SplitAuto, 80, 24, "Column[A, B]"},
		{session.SplitAuto, 200, 24, "Row[A, B]"},
		{session.SplitRow, 80, 24, "Row[A, B]"},
		{session.SplitColumn, 200, 24, "Column[A, B]"},
	}
	for _, tc := range tests {
		t.Run(string(tc.mode), func(t *testing.T) {
			w, _, _ := newWindow(t, session.Options{Split: tc.mode})
			w.Focused().Resize(tc.cols, tc.rows)
			press(w, 'n', keys.ModCtrl)
			if got := w.Tree().String(); got != tc.want {
				t.Errorf("tree = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestCloseFocusedPane(t *testing.T) {
	w, h, ev := newWindow(t, session.Options{})
	press(w, 't', keys.ModCtrl)
	press(w, 't', keys.ModCtrl)
	if got := w.Tree().String(); got != "Stack[A, B, C*]" {
		t.Fatalf("tree = %s", got)
	}

	press(w, 'x', keys.ModCtrl)
	if w.Session("C") != nil {
		t.Error("session C should be gone")
	}
	if !slices.Equal(h.destroyed, []layout.PaneID{"C"}) {
		t.Errorf("destroyed = %v, want [C]", h.destroyed)
	}
	if w.Focused().ID() != "A" {
		t.Errorf("focus = %s, want A (wraps forward)", w.Focused().ID())
	}
	if ev.focus[len(ev.focus)-1] != "A" {
		t.Errorf("last focus hook = %s, want A", ev.focus[len(ev.focus)-1])
	}
}

func TestFactoryErrorKeepsLayout(t *testing.T) {
	w, h, _ := newWindow(t, session.Options{})
	h.fail = true
	if !press(w, 'n', keys.ModCtrl) {
		t.Error("bound key is consumed even when the command fails")
	}
	if w.Tree().String() != "A" {
		t.Errorf("tree = %s, want A", w.Tree())
	}
}

func TestPrevNextCommands(t *testing.T) {
	w, _, _ := newWindow(t, session.Options{})
	press(w, 'n', keys.ModCtrl)
	if w.Focused().ID() != "B" {
		t.Fatalf("focus = %s, want B", w.Focused().ID())
	}
	press(w, keys.KeyRight, keys.ModCtrl)
	if w.Focused().ID() != "A" {
		t.Errorf("next from B = %s, want A", w.Focused().ID())
	}
	press(w, keys.KeyLeft, keys.ModCtrl)
	if w.Focused().ID() != "B" {
		t.Errorf("prev from A = %s, want B", w.Focused().ID())
	}
}

func TestRunUnknownCommand(t *testing.T) {
	w, _, _ := newWindow(t, session.Options{})
	handled, err := w.Run("no_such_command")
	if handled || err != nil {
		t.Errorf("Run(unknown) = %v, %v; want false, nil", handled, err)
	}
	handled, err = w.Run("close_pane")
	if !handled || !errors.Is(err, layout.ErrLastPane) {
		t.Errorf("Run(close_pane) = %v, %v; want true, ErrLastPane", handled, err)
	}
}

func TestCommandsSorted(t *testing.T) {
	names := session.Commands()
	if !slices.IsSorted(names) {
		t.Errorf("Commands() not sorted: %v", names)
	}
	for _, want := range []string{"enter_mux_mode", "toggle_paging", "new_pane", "scroll_percentage"} {
		if !session.IsCommand(want) {
			t.Errorf("missing command %s", want)
		}
	}
}

func TestConfigureExitKeys(t *testing.T) {
	w, _, _ := newWindow(t, session.Options{})
	w.Configure(session.Options{Pager: pager.Options{ExitKeys: []string{"esc"}}})

	s := w.Focused()
	s.Pager().Enter(false)
	press(w, 'q', 0)
	if !s.Pager().Active() {
		t.Fatal("q is no longer an exit key")
	}
	press(w, keys.KeyEscape, 0)
	if s.Pager().Active() {
		t.Error("esc should exit paging")
	}
}

func TestNormalModeStatusAfterCommands(t *testing.T) {
	for _, name := range session.Commands() {
		t.Run(name, func(t *testing.T) {
			w, _, _ := newWindow(t, session.Options{})
			w.Focused().SetContentHeight(100)

			w.Run(name)
			press(w, 'x', 0)

			s := w.Focused()
			if s == nil || s.MuxArmed() || s.Pager().Active() {
				return
			}
			if st := s.Status(); st != "" {
				t.Errorf("Status() = %q in normal mode", st)
			}
		})
	}
}

func TestAutoPagingNoticeClearsOnNextKey(t *testing.T) {
	w, _, ev := newWindow(t, session.Options{})
	s := w.Focused()

	w.Run("toggle_auto_paging")
	if !s.Pager().AutoPaging() || s.Status() != "PAGER: auto paging mode on" {
		t.Fatalf("Status() = %q", s.Status())
	}
	if press(w, 'l', 0) {
		t.Error("the key after the notice belongs to the program")
	}
	if s.Status() != "" {
		t.Errorf("Status() = %q, want cleared", s.Status())
	}
	if last := ev.status[len(ev.status)-1]; last != "A:" {
		t.Errorf("last status = %q, want cleared", last)
	}
}

func TestMuxReachableWhilePaging(t *testing.T) {
	w, _, _ := newWindow(t, session.Options{})
	s := w.Focused()
	s.SetContentHeight(100)
	s.Pager().Enter(true)

	if !press(w, 'a', keys.ModCtrl) || !s.MuxArmed() {
		t.Fatal("the mux binding should work while paused")
	}
	press(w, keys.KeyEscape, 0)
	if s.MuxArmed() || s.Pager().Mode() != pager.Paused {
		t.Errorf("mux armed %v, mode %v; want paused again", s.MuxArmed(), s.Pager().Mode())
	}

	// plain keys and exit keys still belong to the pager
	press(w, 'q', 0)
	if s.Pager().Active() {
		t.Error("q should leave paging")
	}
}
