package app

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/atomicstack/popup-combobox/internal/format/table"
	"github.com/atomicstack/popup-combobox/internal/page"
)

const (
	OutputYAML  = "yaml"
	OutputTable = "table"
)

// OutputFormats lists the accepted values of Config.Output.
var OutputFormats = []string{OutputYAML, OutputTable}

// WriteResult writes submitted values in the requested format. YAML output
// is a mapping of control ID to value in page order.
func WriteResult(w io.Writer, format string, values []page.Value) error {
	switch format {
	case "", OutputYAML:
		return writeYAML(w, values)
	case OutputTable:
		return writeTable(w, values)
	}
	return fmt.Errorf("unknown output format %q", format)
}

func writeYAML(w io.Writer, values []page.Value) error {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, v := range values {
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: v.ID},
			&yaml.Node{Kind: yaml.ScalarNode, Value: v.Value, Style: quoteStyle(v.Value)},
		)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode values: %w", err)
	}
	return enc.Close()
}

// quoteStyle keeps values that YAML would read back as another type, or as
// null, as strings.
func quoteStyle(value string) yaml.Style {
	var probe interface{}
	if err := yaml.Unmarshal([]byte(value), &probe); err != nil {
		return yaml.DoubleQuotedStyle
	}
	if s, ok := probe.(string); ok && s == value {
		return 0
	}
	return yaml.DoubleQuotedStyle
}

func writeTable(w io.Writer, values []page.Value) error {
	rows := [][]string{{"ID", "VALUE", "LABEL"}}
	for _, v := range values {
		rows = append(rows, []string{v.ID, v.Value, v.Label})
	}
	_, err := io.WriteString(w, strings.Join(table.Format(rows, nil), "\n")+"\n")
	return err
}
