package session

import (
	"slices"
)

// Command is a named action a key can be bound to in normal mode.
type Command func(s *Session) error

var commands = map[string]Command{
	"enter_mux_mode": func(s *Session) error {
		s.EnterMux()
		return nil
	},
	"toggle_paging": func(s *Session) error {
		s.pager.Toggle()
		return nil
	},
	"enter_paging": func(s *Session) error {
		s.pager.Enter(false)
		return nil
	},
	"toggle_auto_paging": func(s *Session) error {
		s.pager.ToggleAutoPaging()
		return nil
	},
	"new_pane": func(s *Session) error {
		_, err := s.win.AddSibling(s.id, s.win.splitColumn(s), true)
		return err
	},
	"new_tab": func(s *Session) error {
		_, err := s.win.AddTab(s.id)
		return err
	},
	"close_pane": func(s *Session) error {
		return s.win.ClosePane(s.id)
	},
	"next_pane": func(s *Session) error {
		return s.focusNext(true)
	},
	"prev_pane": func(s *Session) error {
		return s.focusNext(false)
	},
	"scroll_top": func(s *Session) error {
		s.pager.PageTop()
		return nil
	},
	"scroll_bottom": func(s *Session) error {
		s.pager.PageBottom()
		return nil
	},
	"scroll_line_up": func(s *Session) error {
		s.pager.PageLine(-1)
		return nil
	},
	"scroll_line_down": func(s *Session) error {
		s.pager.PageLine(1)
		return nil
	},
	"scroll_page_up": func(s *Session) error {
		s.pager.PagePage(-1)
		return nil
	},
	"scroll_page_down": func(s *Session) error {
		s.pager.PagePage(1)
		return nil
	},
	"scroll_percentage": func(s *Session) error {
		s.pager.PageScrollAbsolute(50)
		return nil
	},
}

// Commands returns the names of all session commands, sorted.
func Commands() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsCommand reports whether name is a session command.
func IsCommand(name string) bool {
	_, ok := commands[name]
	return ok
}

// Run executes the named command on s. handled is false for names that are
// not session commands, so the caller can try its own bindings.
func (s *Session) Run(name string) (handled bool, err error) {
	cmd, ok := commands[name]
	if !ok {
		return false, nil
	}
	s.win.logger.Debug("command", "pane", s.id, "name", name)
	return true, cmd(s)
}

// Run executes the named command on the focused session.
func (w *Window) Run(name string) (handled bool, err error) {
	s := w.Focused()
	if s == nil {
		return false, nil
	}
	handled, err = s.Run(name)
	w.report(s.id, name, err)
	return handled, err
}

func (s *Session) focusNext(forward bool) error {
	next, ok := s.win.NextPane(s.id, forward)
	if ok {
		s.win.SetActive(next)
	}
	return nil
}
