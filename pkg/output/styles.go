package output

import (
	_ "embed"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

//go:embed styles.yaml
var stylesYAML []byte

// styleDef is one style definition in styles.yaml
type styleDef struct {
	Bold       bool   `yaml:"bold,omitempty"`
	Foreground string `yaml:"foreground,omitempty"`
}

// styleRegistry maps semantic names to lipgloss styles
var styleRegistry map[string]lipgloss.Style

func init() {
	var defs map[string]styleDef
	if err := yaml.Unmarshal(stylesYAML, &defs); err != nil {
		panic("output: malformed styles.yaml: " + err.Error())
	}

	styleRegistry = make(map[string]lipgloss.Style, len(defs))
	for name, def := range defs {
		style := lipgloss.NewStyle()
		if def.Bold {
			style = style.Bold(true)
		}
		if def.Foreground != "" {
			style = style.Foreground(lipgloss.Color(def.Foreground))
		}
		styleRegistry[name] = style
	}
}

// styleFor returns the named style, or a zero style if undefined
func styleFor(name string) lipgloss.Style {
	if s, ok := styleRegistry[name]; ok {
		return s
	}
	return lipgloss.NewStyle()
}
