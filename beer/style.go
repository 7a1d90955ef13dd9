package beer

import (
	"encoding/json"
	"fmt"
)

// Style is the fixed set of beer categories understood by the API.
type Style string

const (
	StyleLager   Style = "LAGER"
	StylePilsner Style = "PILSNER"
	StyleStout   Style = "STOUT"
	StyleGose    Style = "GOSE"
	StylePorter  Style = "PORTER"
	StyleAle     Style = "ALE"
	StyleWheat   Style = "WHEAT"
	StyleIPA     Style = "IPA"
	StylePaleAle Style = "PALE_ALE"
	StyleSaison  Style = "SAISON"
)

var validStyles = []Style{
	StyleLager,
	StylePilsner,
	StyleStout,
	StyleGose,
	StylePorter,
	StyleAle,
	StyleWheat,
	StyleIPA,
	StylePaleAle,
	StyleSaison,
}

// Styles returns every known style in declaration order.
func Styles() []Style {
	out := make([]Style, len(validStyles))
	copy(out, validStyles)
	return out
}

// IsValid reports whether the value is one of the known styles.
func (s Style) IsValid() bool {
	for _, candidate := range validStyles {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseStyle converts the raw token to a Style.
func ParseStyle(value string) (Style, error) {
	for _, candidate := range validStyles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid beer style %q", value)
}

func (s Style) String() string {
	return string(s)
}

// UnmarshalJSON rejects tokens outside the known set. An empty string or null leaves the
// style unset.
func (s *Style) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = ""
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("beer style must be a string: %w", err)
	}
	if raw == "" {
		*s = ""
		return nil
	}

	parsed, err := ParseStyle(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
