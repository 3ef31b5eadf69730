package engine

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// parseThemeValue maps a stored value to a theme. Anything but "light" is dark.
func parseThemeValue(v string) Theme {
	if v == string(ThemeLight) {
		return ThemeLight
	}
	return ThemeDark
}

func ParseTheme(input string) (Theme, error) {
	switch strings.TrimSpace(strings.ToLower(input)) {
	case "dark":
		return ThemeDark, nil
	case "light":
		return ThemeLight, nil
	default:
		return "", fmt.Errorf("unknown theme %q (want dark or light)", input)
	}
}

// ParseOnOff parses a sound setting.
func ParseOnOff(input string) (bool, error) {
	switch strings.TrimSpace(strings.ToLower(input)) {
	case "on", "true", "1", "yes":
		return true, nil
	case "off", "false", "0", "no":
		return false, nil
	default:
		return false, fmt.Errorf("expected on or off, got %q", input)
	}
}

func (s *Service) Theme() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

func (s *Service) SetTheme(ctx context.Context, t Theme) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Set(ctx, ThemeKey, string(t)); err != nil {
		return err
	}
	s.theme = t
	s.log.Debug("theme set", zap.String("theme", string(t)))
	return nil
}

// ToggleTheme flips between dark and light and returns the new theme.
func (s *Service) ToggleTheme(ctx context.Context) (Theme, error) {
	next := ThemeLight
	if s.Theme() == ThemeLight {
		next = ThemeDark
	}
	if err := s.SetTheme(ctx, next); err != nil {
		return s.Theme(), err
	}
	return next, nil
}

func (s *Service) Sound() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.Sound
}

func (s *Service) SetSound(ctx context.Context, on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Set(ctx, SoundKey, soundValue(on)); err != nil {
		return err
	}
	s.rec.Sound = on
	s.log.Debug("sound set", zap.Bool("on", on))
	return nil
}

func (s *Service) ToggleSound(ctx context.Context) (bool, error) {
	next := !s.Sound()
	if err := s.SetSound(ctx, next); err != nil {
		return !next, err
	}
	return next, nil
}

func soundValue(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
